package handlers

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/luowen/coinsight/internal/advisor"
	"github.com/luowen/coinsight/internal/market"
	"github.com/luowen/coinsight/pkg/config"
	"github.com/luowen/coinsight/pkg/logger"
)

// AdvisorHandler serves investment analysis endpoints. Risk level and budget
// are validated here, at the boundary; the engine itself stays total over
// any input.
type AdvisorHandler struct {
	source     MarketSource
	normalizer *market.Normalizer
	engine     *advisor.Engine
	ranker     *advisor.Ranker
	defaults   config.AdvisorConfig
	logger     *logger.Logger
}

// NewAdvisorHandler creates a new advisor handler
func NewAdvisorHandler(source MarketSource, normalizer *market.Normalizer, engine *advisor.Engine, ranker *advisor.Ranker, defaults config.AdvisorConfig, log *logger.Logger) *AdvisorHandler {
	return &AdvisorHandler{
		source:     source,
		normalizer: normalizer,
		engine:     engine,
		ranker:     ranker,
		defaults:   defaults,
		logger:     log,
	}
}

// Analyze returns the investment signal for one symbol
// GET /api/investment/analyze/{symbol}?risk_level=medium&budget=1000
func (h *AdvisorHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	symbol := strings.ToUpper(strings.TrimSpace(mux.Vars(r)["symbol"]))
	if symbol == "" {
		respondError(w, http.StatusBadRequest, "Symbol is required")
		return
	}

	profile, budget, errMsg := h.parseParams(r)
	if errMsg != "" {
		respondError(w, http.StatusBadRequest, errMsg)
		return
	}

	payload, err := h.source.Quote(ctx, symbol)
	if err != nil {
		h.logger.WithError(err).WithField("symbol", symbol).Error("Failed to fetch quote for analysis")
		respondError(w, http.StatusBadGateway, "Failed to fetch market data")
		return
	}

	quotes, err := h.normalizer.Normalize(payload)
	if err != nil {
		h.logger.WithError(err).Error("Failed to normalize quote payload")
		respondError(w, http.StatusBadGateway, "Upstream payload malformed")
		return
	}
	if len(quotes) == 0 {
		respondError(w, http.StatusNotFound, "未找到货币: "+symbol)
		return
	}

	signal, err := h.engine.Score(quotes[0], profile, budget)
	if err != nil {
		h.logger.WithError(err).WithField("symbol", symbol).Error("Scoring failed")
		respondError(w, http.StatusInternalServerError, "分析失败，请稍后重试")
		return
	}

	respondJSON(w, http.StatusOK, signal)
}

// Opportunities ranks the universe and returns the best opportunities
// GET /api/investment/opportunities?risk_level=medium&budget=1000&limit=10
func (h *AdvisorHandler) Opportunities(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	profile, budget, errMsg := h.parseParams(r)
	if errMsg != "" {
		respondError(w, http.StatusBadRequest, errMsg)
		return
	}

	topN := queryInt(r, "limit", h.defaults.DefaultTopN)

	payload, err := h.source.Listings(ctx, h.defaults.UniverseSize)
	if err != nil {
		h.logger.WithError(err).Error("Failed to fetch universe")
		respondError(w, http.StatusBadGateway, "Failed to fetch market data")
		return
	}

	universe, err := h.normalizer.Normalize(payload)
	if err != nil {
		h.logger.WithError(err).Error("Failed to normalize universe payload")
		respondError(w, http.StatusBadGateway, "Upstream payload malformed")
		return
	}

	opportunities := h.ranker.Rank(universe, profile, budget, topN)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data": map[string]interface{}{
			"count": len(opportunities),
			"items": opportunities,
		},
	})
}

// parseParams validates risk_level and budget query parameters.
// Returns a non-empty message on validation failure.
func (h *AdvisorHandler) parseParams(r *http.Request) (advisor.RiskProfile, float64, string) {
	riskParam := r.URL.Query().Get("risk_level")
	if riskParam == "" {
		riskParam = string(advisor.RiskMedium)
	}
	profile := advisor.RiskProfile(riskParam)
	if !profile.Valid() {
		return "", 0, "风险级别参数无效，必须是 low、medium 或 high"
	}

	budget := h.defaults.DefaultBudget
	if raw := r.URL.Query().Get("budget"); raw != "" {
		// ParseFloat accepts "NaN" and "Inf"; neither is a usable budget
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
			return "", 0, "预算参数格式错误，必须是数字"
		}
		budget = parsed
	}
	if budget <= 0 {
		return "", 0, "预算必须大于0"
	}

	return profile, budget, ""
}
