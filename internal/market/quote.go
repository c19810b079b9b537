package market

// Quote is the canonical normalized snapshot of one asset's market data.
// Every numeric field defaults to 0 when the upstream payload omits it, so
// downstream consumers never distinguish "missing" from "zero".
type Quote struct {
	Name              string  `json:"name"`
	Symbol            string  `json:"symbol"`
	Price             float64 `json:"price"`
	MarketCap         float64 `json:"market_cap"`
	Volume24h         float64 `json:"volume_24h"`
	PercentChange1h   float64 `json:"percent_change_1h"`
	PercentChange24h  float64 `json:"percent_change_24h"`
	PercentChange7d   float64 `json:"percent_change_7d"`
	CirculatingSupply float64 `json:"circulating_supply"`
	MaxSupply         float64 `json:"max_supply"`
}

// GlobalMetrics is a snapshot of aggregate market statistics.
type GlobalMetrics struct {
	TotalMarketCap         float64 `json:"total_market_cap"`
	TotalVolume24h         float64 `json:"total_volume_24h"`
	BTCDominance           float64 `json:"btc_dominance"`
	ActiveCryptocurrencies int64   `json:"active_cryptocurrencies"`
}
