package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luowen/coinsight/pkg/logger"
)

const listingsPayload = `{
	"data": [
		{
			"name": "Bitcoin",
			"symbol": "BTC",
			"circulating_supply": 19700000,
			"max_supply": 21000000,
			"quote": {
				"USD": {
					"price": 65000.5,
					"market_cap": 1280000000000,
					"volume_24h": 32000000000,
					"percent_change_1h": 0.2,
					"percent_change_24h": 1.5,
					"percent_change_7d": -2.3
				}
			}
		},
		{
			"name": "Ethereum",
			"symbol": "ETH",
			"quote": {
				"USD": {
					"price": 3500.25,
					"market_cap": 420000000000,
					"volume_24h": 15000000000,
					"percent_change_1h": -0.1,
					"percent_change_24h": 2.1,
					"percent_change_7d": 4.8
				}
			}
		}
	]
}`

const quotePayload = `{
	"data": {
		"BTC": {
			"name": "Bitcoin",
			"symbol": "BTC",
			"circulating_supply": 19700000,
			"max_supply": 21000000,
			"quote": {
				"USD": {
					"price": 65000.5,
					"market_cap": 1280000000000,
					"volume_24h": 32000000000,
					"percent_change_1h": 0.2,
					"percent_change_24h": 1.5,
					"percent_change_7d": -2.3
				}
			}
		},
		"ETH": {
			"name": "Ethereum",
			"symbol": "ETH",
			"quote": {
				"USD": {
					"price": 3500.25,
					"market_cap": 420000000000,
					"volume_24h": 15000000000,
					"percent_change_1h": -0.1,
					"percent_change_24h": 2.1,
					"percent_change_7d": 4.8
				}
			}
		}
	}
}`

func TestNormalizer_Normalize_ShapeEquivalence(t *testing.T) {
	n := NewNormalizer("USD", logger.NewNop())

	fromList, err := n.Normalize([]byte(listingsPayload))
	require.NoError(t, err)

	fromMap, err := n.Normalize([]byte(quotePayload))
	require.NoError(t, err)

	// Same records in, same records out, regardless of container shape
	require.Len(t, fromList, 2)
	assert.Equal(t, fromList, fromMap)

	btc := fromList[0]
	assert.Equal(t, "Bitcoin", btc.Name)
	assert.Equal(t, "BTC", btc.Symbol)
	assert.InDelta(t, 65000.5, btc.Price, 1e-9)
	assert.InDelta(t, 1280000000000, btc.MarketCap, 1e-3)
	assert.InDelta(t, -2.3, btc.PercentChange7d, 1e-9)
	assert.InDelta(t, 19700000, btc.CirculatingSupply, 1e-9)
	assert.InDelta(t, 21000000, btc.MaxSupply, 1e-9)
}

func TestNormalizer_Normalize_EmptyPayload(t *testing.T) {
	n := NewNormalizer("USD", logger.NewNop())

	for _, payload := range [][]byte{nil, {}} {
		quotes, err := n.Normalize(payload)
		assert.NoError(t, err)
		assert.Nil(t, quotes)
	}
}

func TestNormalizer_Normalize_Malformed(t *testing.T) {
	n := NewNormalizer("USD", logger.NewNop())

	tests := []struct {
		name    string
		payload string
	}{
		{name: "missing data key", payload: `{"status": {"error_code": 0}}`},
		{name: "data is a string", payload: `{"data": "nope"}`},
		{name: "data is a number", payload: `{"data": 42}`},
		{name: "data is null", payload: `{"data": null}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quotes, err := n.Normalize([]byte(tt.payload))
			assert.ErrorIs(t, err, ErrMalformedPayload)
			assert.Nil(t, quotes)
		})
	}
}

func TestNormalizer_Normalize_SkipsRecordsWithoutIdentity(t *testing.T) {
	n := NewNormalizer("USD", logger.NewNop())

	payload := `{
		"data": [
			{"symbol": "BTC", "quote": {"USD": {"price": 1}}},
			{"name": "Ethereum", "quote": {"USD": {"price": 2}}},
			{"name": "Tether", "symbol": "usdt", "quote": {"USD": {"price": 1.0}}}
		]
	}`

	quotes, err := n.Normalize([]byte(payload))
	require.NoError(t, err)

	// Only the record with both name and symbol survives; symbol is uppercased
	require.Len(t, quotes, 1)
	assert.Equal(t, "USDT", quotes[0].Symbol)
	assert.Equal(t, "Tether", quotes[0].Name)
}

func TestNormalizer_Normalize_MissingNumericsDefaultToZero(t *testing.T) {
	n := NewNormalizer("USD", logger.NewNop())

	payload := `{
		"data": [
			{"name": "Mystery", "symbol": "MYS", "quote": {"USD": {"price": null}}}
		]
	}`

	quotes, err := n.Normalize([]byte(payload))
	require.NoError(t, err)
	require.Len(t, quotes, 1)

	q := quotes[0]
	assert.Zero(t, q.Price)
	assert.Zero(t, q.MarketCap)
	assert.Zero(t, q.Volume24h)
	assert.Zero(t, q.PercentChange24h)
}

func TestNormalizer_Normalize_StringNumbers(t *testing.T) {
	n := NewNormalizer("USD", logger.NewNop())

	payload := `{
		"data": [
			{"name": "Bitcoin", "symbol": "BTC", "quote": {"USD": {"price": "65000.5", "market_cap": "abc"}}}
		]
	}`

	quotes, err := n.Normalize([]byte(payload))
	require.NoError(t, err)
	require.Len(t, quotes, 1)

	// Numeric strings coerce; garbage strings default to zero
	assert.InDelta(t, 65000.5, quotes[0].Price, 1e-9)
	assert.Zero(t, quotes[0].MarketCap)
}

func TestNormalizer_Normalize_MapOrderPreserved(t *testing.T) {
	n := NewNormalizer("USD", logger.NewNop())

	payload := `{
		"data": {
			"ZZZ": {"name": "Zed", "symbol": "ZZZ", "quote": {"USD": {"price": 1}}},
			"AAA": {"name": "Ay", "symbol": "AAA", "quote": {"USD": {"price": 2}}},
			"MMM": {"name": "Em", "symbol": "MMM", "quote": {"USD": {"price": 3}}}
		}
	}`

	quotes, err := n.Normalize([]byte(payload))
	require.NoError(t, err)
	require.Len(t, quotes, 3)

	// Document order, not lexical order
	assert.Equal(t, "ZZZ", quotes[0].Symbol)
	assert.Equal(t, "AAA", quotes[1].Symbol)
	assert.Equal(t, "MMM", quotes[2].Symbol)
}
