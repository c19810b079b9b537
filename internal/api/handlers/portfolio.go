package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/luowen/coinsight/internal/store"
	"github.com/luowen/coinsight/pkg/logger"
)

// PortfolioHandler serves portfolio endpoints
type PortfolioHandler struct {
	portfolio *store.PortfolioRepository
	logger    *logger.Logger
}

// NewPortfolioHandler creates a new portfolio handler
func NewPortfolioHandler(portfolio *store.PortfolioRepository, log *logger.Logger) *PortfolioHandler {
	return &PortfolioHandler{
		portfolio: portfolio,
		logger:    log,
	}
}

type addHoldingRequest struct {
	Symbol string   `json:"symbol"`
	Amount *float64 `json:"amount"`
	Cost   *float64 `json:"cost"`
	Notes  string   `json:"notes"`
}

// Add records a new holding
// POST /api/portfolio
func (h *PortfolioHandler) Add(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req addHoldingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	symbol := strings.ToUpper(strings.TrimSpace(req.Symbol))
	if symbol == "" {
		respondError(w, http.StatusBadRequest, "Symbol is required")
		return
	}

	if req.Amount == nil || req.Cost == nil {
		respondError(w, http.StatusBadRequest, "amount 与 cost 必须为数字")
		return
	}
	if *req.Amount <= 0 || *req.Cost <= 0 {
		respondError(w, http.StatusBadRequest, "amount 与 cost 必须为正数")
		return
	}

	id, err := h.portfolio.Add(ctx, symbol, *req.Amount, *req.Cost, time.Now().UTC(), strings.TrimSpace(req.Notes))
	if err != nil {
		h.logger.WithError(err).WithField("symbol", symbol).Error("Failed to add holding")
		respondError(w, http.StatusInternalServerError, "Failed to add holding")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"id":      id,
	})
}

// List returns all holdings
// GET /api/portfolio
func (h *PortfolioHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	holdings, err := h.portfolio.List(ctx)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list portfolio")
		respondError(w, http.StatusInternalServerError, "Failed to list portfolio")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data": map[string]interface{}{
			"count": len(holdings),
			"items": holdings,
		},
	})
}
