package advisor

import (
	"errors"
	"math"

	"github.com/luowen/coinsight/internal/market"
	"github.com/luowen/coinsight/pkg/logger"
)

// ErrUnscorable is returned when an asset's numeric fields are not usable.
// Callers treat it as "no signal for this asset" and keep going.
var ErrUnscorable = errors.New("advisor: asset fields not numerically usable")

// trendBucket classifies short/medium momentum into five states.
type trendBucket int

const (
	trendStrongUp trendBucket = iota
	trendMildUp
	trendNeutral
	trendMildDown
	trendStrongDown
)

// Engine derives an investment signal from a quote, a risk profile and a
// budget. It is a pure function over its inputs: no clock, no randomness,
// no state between calls.
type Engine struct {
	logger *logger.Logger
}

// NewEngine creates a new scoring engine
func NewEngine(log *logger.Logger) *Engine {
	return &Engine{logger: log}
}

// Score evaluates a single asset.
//
// The rubric is fixed and auditable: momentum buckets, a volatility risk tag,
// a market-cap tier, and a volume/market-cap ratio feed an additive integer
// score which drives action, confidence, position sizing and exit targets.
func (e *Engine) Score(q market.Quote, profile RiskProfile, budget float64) (*Signal, error) {
	if !finite(q.Price, q.PercentChange24h, q.PercentChange7d, q.MarketCap, q.Volume24h, budget) {
		return nil, ErrUnscorable
	}

	sig := &Signal{
		Symbol:       q.Symbol,
		Name:         q.Name,
		CurrentPrice: q.Price,
		Disclaimer:   Disclaimer,
	}

	// 1. Technical signal
	trend := classifyTrend(q.PercentChange24h, q.PercentChange7d)
	sig.TechnicalSignals = append(sig.TechnicalSignals, trendSignalText(trend))

	volumeRatio := 0.0
	if q.MarketCap > 0 {
		volumeRatio = q.Volume24h / q.MarketCap
	}
	if volumeRatio > 0.1 {
		sig.TechnicalSignals = append(sig.TechnicalSignals, "交易量活跃，趋势得到确认")
	}

	// 2. Risk tagging from realized volatility
	volatility := math.Abs(q.PercentChange24h) + math.Abs(q.PercentChange7d)
	switch {
	case volatility > 25:
		sig.RiskLevel = RiskRatingHigh
		sig.Factors = append(sig.Factors, "价格波动性大，属于高风险资产")
	case volatility > 15:
		sig.RiskLevel = RiskRatingMedium
		sig.Factors = append(sig.Factors, "价格波动性适中，风险中等")
	default:
		sig.RiskLevel = RiskRatingLow
		sig.Factors = append(sig.Factors, "价格相对稳定，风险较低")
	}

	// 3. Market-cap tier
	capTerm := 0
	switch {
	case q.MarketCap > 50e9:
		capTerm = 3
		sig.Factors = append(sig.Factors, "大市值币种，相对稳定")
	case q.MarketCap > 10e9:
		capTerm = 1
		sig.Factors = append(sig.Factors, "中等市值币种")
	default:
		capTerm = -2
		sig.Factors = append(sig.Factors, "小市值币种，高风险高回报")
	}

	// 4. Composite score
	score := momentumTerm(q.PercentChange24h, 10, 5) +
		momentumTerm(q.PercentChange7d, 15, 10) +
		capTerm +
		volumeTerm(volumeRatio) +
		trendTerm(trend)

	// 5. Confidence reflects conviction magnitude, not direction
	sig.Confidence = clampInt(abs(score)*10, 0, 100)

	// 6. Action decision
	switch {
	case score >= 8:
		sig.Action = ActionBuy
		sig.Timeframe = TimeframeShort
	case score >= 4:
		sig.Action = ActionBuy
		sig.Timeframe = TimeframeMedium
	case score >= -3:
		sig.Action = ActionHold
		sig.Timeframe = TimeframeShort
	case score >= -7:
		sig.Action = ActionSell
		sig.Timeframe = TimeframeShort
	default:
		sig.Action = ActionSell
		sig.Timeframe = TimeframeImmediate
	}

	// 7. Position sizing against the risk-adjusted budget
	base := budget * profile.Multiplier()
	sig.InvestmentRange = investmentRange(sig.Action, score, base)

	// 8. Exit targets
	sig.TargetPrices = targetPrices(sig.Action, score, q.Price)

	return sig, nil
}

// classifyTrend buckets the 24h/7d change pair
func classifyTrend(change24h, change7d float64) trendBucket {
	switch {
	case change24h > 5 && change7d > 10:
		return trendStrongUp
	case change24h > 2 && change7d > 5:
		return trendMildUp
	case change24h < -5 && change7d < -10:
		return trendStrongDown
	case change24h < -2 && change7d < -5:
		return trendMildDown
	default:
		return trendNeutral
	}
}

func trendSignalText(t trendBucket) string {
	switch t {
	case trendStrongUp:
		return "强势上涨趋势，买入信号"
	case trendMildUp:
		return "稳定上涨趋势，持有信号"
	case trendStrongDown:
		return "强势下跌趋势，卖出信号"
	case trendMildDown:
		return "轻微下跌趋势，谨慎信号"
	default:
		return "横盘整理，持有信号"
	}
}

func trendTerm(t trendBucket) int {
	switch t {
	case trendStrongUp:
		return 5
	case trendMildUp:
		return 3
	case trendMildDown:
		return -3
	case trendStrongDown:
		return -5
	default:
		return 0
	}
}

// momentumTerm scores a percent change against strong/mild breakpoints
func momentumTerm(change, strong, mild float64) int {
	switch {
	case change > strong:
		return 5
	case change > mild:
		return 3
	case change > 0:
		return 1
	case change < -strong:
		return -5
	case change < -mild:
		return -3
	case change < 0:
		return -1
	default:
		return 0
	}
}

func volumeTerm(ratio float64) int {
	switch {
	case ratio > 0.1:
		return 2
	case ratio > 0.05:
		return 1
	default:
		return 0
	}
}

// investmentRange sizes the position bracket. SELL always zeroes the range.
func investmentRange(action Action, score int, base float64) InvestmentRange {
	switch action {
	case ActionBuy:
		switch {
		case score >= 8:
			return InvestmentRange{Min: base * 0.3, Max: base * 0.7, Recommended: base * 0.5}
		case score >= 4:
			return InvestmentRange{Min: base * 0.2, Max: base * 0.5, Recommended: base * 0.3}
		default:
			return InvestmentRange{Min: 0, Max: base * 0.2, Recommended: base * 0.1}
		}
	case ActionSell:
		return InvestmentRange{}
	default:
		return InvestmentRange{Min: 0, Max: base * 0.3, Recommended: base * 0.1}
	}
}

// targetPrices derives exit levels from the score, clamped to sane bands
func targetPrices(action Action, score int, price float64) TargetPrices {
	magnitude := float64(abs(score))

	switch action {
	case ActionBuy:
		return TargetPrices{
			TakeProfit: price * (1 + clampFloat(float64(score)*0.03, 0, 0.2)),
			StopLoss:   price * (1 - clampFloat(magnitude*0.02, 0, 0.1)),
		}
	case ActionSell:
		return TargetPrices{
			TakeProfit: price * (1 - clampFloat(magnitude*0.02, 0, 0.1)),
			StopLoss:   price * (1 + clampFloat(magnitude*0.01, 0, 0.05)),
		}
	default:
		return TargetPrices{
			TakeProfit: price * 1.10,
			StopLoss:   price * 0.90,
		}
	}
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func clampInt(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
