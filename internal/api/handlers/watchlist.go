package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/luowen/coinsight/internal/store"
	"github.com/luowen/coinsight/pkg/logger"
)

// WatchlistHandler serves watchlist endpoints
type WatchlistHandler struct {
	watchlist *store.WatchlistRepository
	logger    *logger.Logger
}

// NewWatchlistHandler creates a new watchlist handler
func NewWatchlistHandler(watchlist *store.WatchlistRepository, log *logger.Logger) *WatchlistHandler {
	return &WatchlistHandler{
		watchlist: watchlist,
		logger:    log,
	}
}

type addWatchlistRequest struct {
	Symbol     string   `json:"symbol"`
	Notes      string   `json:"notes"`
	AlertPrice *float64 `json:"alert_price"`
}

// Add adds a symbol to the watchlist
// POST /api/watchlist
func (h *WatchlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req addWatchlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	symbol := strings.ToUpper(strings.TrimSpace(req.Symbol))
	if symbol == "" {
		respondError(w, http.StatusBadRequest, "Symbol is required")
		return
	}

	if req.AlertPrice != nil && *req.AlertPrice <= 0 {
		respondError(w, http.StatusBadRequest, "alert_price 必须为正数")
		return
	}

	added, err := h.watchlist.Add(ctx, symbol, strings.TrimSpace(req.Notes), req.AlertPrice)
	if err != nil {
		h.logger.WithError(err).WithField("symbol", symbol).Error("Failed to add to watchlist")
		respondError(w, http.StatusInternalServerError, "Failed to add to watchlist")
		return
	}

	message := "Added to watchlist"
	if !added {
		message = "Already in watchlist"
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": added,
		"message": message,
	})
}

// List returns all watchlist entries
// GET /api/watchlist
func (h *WatchlistHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	items, err := h.watchlist.List(ctx)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list watchlist")
		respondError(w, http.StatusInternalServerError, "Failed to list watchlist")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data": map[string]interface{}{
			"count": len(items),
			"items": items,
		},
	})
}
