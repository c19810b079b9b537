package advisor

import "encoding/json"

// Action is the discrete recommendation for one asset.
type Action int

const (
	ActionHold Action = iota
	ActionBuy
	ActionSell
)

// String returns the wire representation of the action
func (a Action) String() string {
	switch a {
	case ActionBuy:
		return "BUY"
	case ActionSell:
		return "SELL"
	default:
		return "HOLD"
	}
}

// MarshalJSON renders the action as its wire string
func (a Action) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// Timeframe is the horizon attached to a recommendation.
type Timeframe int

const (
	TimeframeShort Timeframe = iota
	TimeframeMedium
	TimeframeImmediate
)

// Display returns the user-facing label for the timeframe
func (t Timeframe) Display() string {
	switch t {
	case TimeframeMedium:
		return "中期"
	case TimeframeImmediate:
		return "立即"
	default:
		return "短期"
	}
}

// MarshalJSON renders the timeframe as its display label
func (t Timeframe) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Display())
}

// RiskRating classifies how volatile an asset currently is. It is derived
// from observed price swings, unlike RiskProfile which is caller input.
type RiskRating int

const (
	RiskRatingLow RiskRating = iota
	RiskRatingMedium
	RiskRatingHigh
)

// Display returns the user-facing label for the rating
func (r RiskRating) Display() string {
	switch r {
	case RiskRatingHigh:
		return "高"
	case RiskRatingMedium:
		return "中等"
	default:
		return "低"
	}
}

// MarshalJSON renders the rating as its display label
func (r RiskRating) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Display())
}

// RiskProfile is the caller-supplied risk appetite.
type RiskProfile string

const (
	RiskLow    RiskProfile = "low"
	RiskMedium RiskProfile = "medium"
	RiskHigh   RiskProfile = "high"
)

// Valid reports whether the profile is one of the closed set
func (p RiskProfile) Valid() bool {
	return p == RiskLow || p == RiskMedium || p == RiskHigh
}

// Multiplier returns the budget scalar for the profile. Unknown profiles fall
// back to the medium multiplier so scoring stays total over any string input.
func (p RiskProfile) Multiplier() float64 {
	switch p {
	case RiskLow:
		return 0.5
	case RiskHigh:
		return 1.5
	default:
		return 1.0
	}
}

// InvestmentRange is the suggested position size bracket in budget currency.
type InvestmentRange struct {
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
	Recommended float64 `json:"recommended"`
}

// TargetPrices holds exit levels for the recommendation.
type TargetPrices struct {
	TakeProfit float64 `json:"take_profit"`
	StopLoss   float64 `json:"stop_loss"`
}

// Disclaimer is attached verbatim to every signal. Non-negotiable.
const Disclaimer = "⚠️ 重要提示: 这只是基于技术指标的教育性分析，不构成投资建议。加密货币投资存在高风险，请谨慎决策。"

// Signal is the advisor's deterministic output for one asset. It is
// recomputed fresh on every request and never persisted.
type Signal struct {
	Symbol           string          `json:"symbol"`
	Name             string          `json:"name"`
	CurrentPrice     float64         `json:"current_price"`
	Action           Action          `json:"action"`
	Confidence       int             `json:"confidence"`
	InvestmentRange  InvestmentRange `json:"investment_range"`
	TargetPrices     TargetPrices    `json:"target_prices"`
	Timeframe        Timeframe       `json:"timeframe"`
	RiskLevel        RiskRating      `json:"risk_level"`
	Factors          []string        `json:"factors"`
	TechnicalSignals []string        `json:"technical_signals"`
	Disclaimer       string          `json:"disclaimer"`
}
