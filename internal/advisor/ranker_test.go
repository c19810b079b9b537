package advisor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luowen/coinsight/internal/market"
	"github.com/luowen/coinsight/pkg/logger"
)

// strongBuyQuote scores 20 regardless of symbol, so ranking differences come
// only from the budget the caller hands in.
func strongBuyQuote(symbol string) market.Quote {
	return market.Quote{
		Name:             symbol,
		Symbol:           symbol,
		Price:            100,
		PercentChange24h: 12,
		PercentChange7d:  18,
		MarketCap:        60e9,
		Volume24h:        8e9,
	}
}

func sellQuote(symbol string) market.Quote {
	return market.Quote{
		Name:             symbol,
		Symbol:           symbol,
		Price:            100,
		PercentChange24h: -12,
		PercentChange7d:  -18,
		MarketCap:        1e9,
		Volume24h:        1e7,
	}
}

func TestRanker_Rank_EmptyUniverse(t *testing.T) {
	ranker := NewRanker(NewEngine(logger.NewNop()), logger.NewNop())

	got := ranker.Rank(nil, RiskMedium, 1000, 10)
	assert.Empty(t, got)

	got = ranker.Rank([]market.Quote{}, RiskMedium, 1000, 10)
	assert.Empty(t, got)
}

func TestRanker_Rank_FiltersSellSignals(t *testing.T) {
	ranker := NewRanker(NewEngine(logger.NewNop()), logger.NewNop())

	universe := []market.Quote{
		sellQuote("AAA"),
		strongBuyQuote("BBB"),
		sellQuote("CCC"),
	}

	got := ranker.Rank(universe, RiskMedium, 1000, 10)
	require.Len(t, got, 1)
	assert.Equal(t, "BBB", got[0].Symbol)
}

func TestRanker_Rank_ExcludesUnscorable(t *testing.T) {
	ranker := NewRanker(NewEngine(logger.NewNop()), logger.NewNop())

	broken := strongBuyQuote("BAD")
	broken.Price = math.NaN()

	universe := []market.Quote{broken, strongBuyQuote("OK")}

	got := ranker.Rank(universe, RiskMedium, 1000, 10)
	require.Len(t, got, 1)
	assert.Equal(t, "OK", got[0].Symbol)
}

func TestRanker_Rank_NonFiniteBudget(t *testing.T) {
	ranker := NewRanker(NewEngine(logger.NewNop()), logger.NewNop())

	universe := []market.Quote{
		strongBuyQuote("AAA"),
		strongBuyQuote("BBB"),
	}

	// A NaN budget makes every asset unscorable; nothing survives to the sort
	assert.Empty(t, ranker.Rank(universe, RiskMedium, math.NaN(), 10))
	assert.Empty(t, ranker.Rank(universe, RiskMedium, math.Inf(1), 10))
}

func TestRanker_Rank_StableTieOrder(t *testing.T) {
	ranker := NewRanker(NewEngine(logger.NewNop()), logger.NewNop())

	// Identical inputs score identically; ties keep universe order
	universe := []market.Quote{
		strongBuyQuote("AAA"),
		strongBuyQuote("BBB"),
		strongBuyQuote("CCC"),
	}

	got := ranker.Rank(universe, RiskMedium, 1000, 10)
	require.Len(t, got, 3)
	assert.Equal(t, "AAA", got[0].Symbol)
	assert.Equal(t, "BBB", got[1].Symbol)
	assert.Equal(t, "CCC", got[2].Symbol)
}

func TestRanker_Rank_TruncatesToTopN(t *testing.T) {
	ranker := NewRanker(NewEngine(logger.NewNop()), logger.NewNop())

	universe := make([]market.Quote, 0, 15)
	for _, s := range []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L", "M", "N", "O"} {
		universe = append(universe, strongBuyQuote(s))
	}

	got := ranker.Rank(universe, RiskMedium, 1000, 5)
	assert.Len(t, got, 5)

	// Non-positive topN falls back to the default cutoff
	got = ranker.Rank(universe, RiskMedium, 1000, 0)
	assert.Len(t, got, DefaultTopN)
}

func TestRanker_Rank_DescendingByRecommended(t *testing.T) {
	engine := NewEngine(logger.NewNop())
	ranker := NewRanker(engine, logger.NewNop())

	// Mix strong and moderate buys so recommendations differ
	moderate := market.Quote{
		Name:             "MOD",
		Symbol:           "MOD",
		Price:            100,
		PercentChange24h: 3,
		PercentChange7d:  6,
		MarketCap:        20e9,
		Volume24h:        0.5e9,
	}

	universe := []market.Quote{moderate, strongBuyQuote("STR")}

	got := ranker.Rank(universe, RiskMedium, 1000, 10)
	require.Len(t, got, 2)
	assert.Equal(t, "STR", got[0].Symbol)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t,
			got[i-1].InvestmentRange.Recommended,
			got[i].InvestmentRange.Recommended,
		)
	}
}
