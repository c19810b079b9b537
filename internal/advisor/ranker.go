package advisor

import (
	"sort"

	"github.com/luowen/coinsight/internal/market"
	"github.com/luowen/coinsight/pkg/logger"
)

// DefaultTopN is the ranking cutoff used when the caller passes no limit.
const DefaultTopN = 10

// Ranker scores a whole universe and surfaces the best opportunities.
type Ranker struct {
	engine *Engine
	logger *logger.Logger
}

// NewRanker creates a new ranker on top of a scoring engine
func NewRanker(engine *Engine, log *logger.Logger) *Ranker {
	return &Ranker{
		engine: engine,
		logger: log,
	}
}

// Rank scores every asset in the universe independently, keeps signals with a
// positive recommended amount, and returns the top N ordered by recommended
// amount descending. Ties keep the universe's original order, so the result
// is reproducible for a fixed input. Assets that fail to score are excluded,
// never fatal for the batch.
func (r *Ranker) Rank(universe []market.Quote, profile RiskProfile, budget float64, topN int) []*Signal {
	if topN <= 0 {
		topN = DefaultTopN
	}

	signals := make([]*Signal, 0, len(universe))
	for _, q := range universe {
		sig, err := r.engine.Score(q, profile, budget)
		if err != nil {
			r.logger.WithError(err).WithField("symbol", q.Symbol).Warn("Excluding asset from ranking")
			continue
		}
		if sig.InvestmentRange.Recommended <= 0 {
			continue
		}
		signals = append(signals, sig)
	}

	// Stable sort preserves input order among equal recommendations
	sort.SliceStable(signals, func(i, j int) bool {
		return signals[i].InvestmentRange.Recommended > signals[j].InvestmentRange.Recommended
	})

	if len(signals) > topN {
		signals = signals[:topN]
	}

	return signals
}
