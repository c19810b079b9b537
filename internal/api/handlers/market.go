package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/luowen/coinsight/internal/history"
	"github.com/luowen/coinsight/internal/market"
	"github.com/luowen/coinsight/internal/store"
	"github.com/luowen/coinsight/pkg/logger"
	"github.com/luowen/coinsight/pkg/redis"
)

// MarketSource is the upstream quote feed the handlers depend on.
// Satisfied by the CMC client; faked in tests.
type MarketSource interface {
	Listings(ctx context.Context, limit int) ([]byte, error)
	Quote(ctx context.Context, symbol string) ([]byte, error)
	GlobalMetrics(ctx context.Context) (*market.GlobalMetrics, error)
}

// MarketHandler serves market data endpoints
type MarketHandler struct {
	source     MarketSource
	normalizer *market.Normalizer
	quotes     *store.QuoteRepository
	cache      *redis.Cache
	logger     *logger.Logger
}

// NewMarketHandler creates a new market handler
func NewMarketHandler(source MarketSource, normalizer *market.Normalizer, quotes *store.QuoteRepository, cache *redis.Cache, log *logger.Logger) *MarketHandler {
	return &MarketHandler{
		source:     source,
		normalizer: normalizer,
		quotes:     quotes,
		cache:      cache,
		logger:     log,
	}
}

// GetTop returns the top cryptocurrencies by market cap
// GET /api/market/top?limit=10
func (h *MarketHandler) GetTop(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := queryInt(r, "limit", 10)
	if limit <= 0 {
		limit = 10
	}

	var quotes []market.Quote
	cacheKey := redis.ListingsKey(limit)
	if found, _ := h.cache.Get(ctx, cacheKey, &quotes); !found {
		payload, err := h.source.Listings(ctx, limit)
		if err != nil {
			h.logger.WithError(err).Error("Failed to fetch listings")
			respondError(w, http.StatusBadGateway, "Failed to fetch market data")
			return
		}

		quotes, err = h.normalizer.Normalize(payload)
		if err != nil {
			h.logger.WithError(err).Error("Failed to normalize listings payload")
			respondError(w, http.StatusBadGateway, "Upstream payload malformed")
			return
		}

		if err := h.cache.Set(ctx, cacheKey, quotes, redis.TTLMedium); err != nil {
			h.logger.WithError(err).WithField("key", cacheKey).Warn("Failed to cache listings")
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data": map[string]interface{}{
			"count": len(quotes),
			"items": quotes,
		},
	})
}

// GetQuote returns the latest quote for one symbol
// GET /api/market/quote/{symbol}
func (h *MarketHandler) GetQuote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	symbol := strings.ToUpper(strings.TrimSpace(mux.Vars(r)["symbol"]))
	if symbol == "" {
		respondError(w, http.StatusBadRequest, "Symbol is required")
		return
	}

	var quotes []market.Quote
	cacheKey := redis.QuoteKey(symbol)
	if found, _ := h.cache.Get(ctx, cacheKey, &quotes); !found {
		payload, err := h.source.Quote(ctx, symbol)
		if err != nil {
			h.logger.WithError(err).WithField("symbol", symbol).Error("Failed to fetch quote")
			respondError(w, http.StatusBadGateway, "Failed to fetch market data")
			return
		}

		quotes, err = h.normalizer.Normalize(payload)
		if err != nil {
			h.logger.WithError(err).Error("Failed to normalize quote payload")
			respondError(w, http.StatusBadGateway, "Upstream payload malformed")
			return
		}

		if err := h.cache.Set(ctx, cacheKey, quotes, redis.TTLShort); err != nil {
			h.logger.WithError(err).WithField("key", cacheKey).Warn("Failed to cache quote")
		}
	}

	if len(quotes) == 0 {
		respondError(w, http.StatusNotFound, "Crypto not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    quotes[0],
	})
}

// GetGlobalMetrics returns aggregate market statistics
// GET /api/market/global
func (h *MarketHandler) GetGlobalMetrics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	metrics, err := h.source.GlobalMetrics(ctx)
	if err != nil {
		h.logger.WithError(err).Error("Failed to fetch global metrics")
		respondError(w, http.StatusBadGateway, "Failed to fetch market data")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    metrics,
	})
}

// GetHistory returns the chronological price series for a symbol
// GET /api/market/history/{symbol}?days=30
func (h *MarketHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	symbol := strings.ToUpper(strings.TrimSpace(mux.Vars(r)["symbol"]))
	if symbol == "" {
		respondError(w, http.StatusBadRequest, "Symbol is required")
		return
	}

	days := queryInt(r, "days", 30)
	if days <= 0 {
		days = 30
	}

	rows, err := h.quotes.GetHistory(ctx, symbol, days)
	if err != nil {
		h.logger.WithError(err).WithField("symbol", symbol).Error("Failed to query history")
		respondError(w, http.StatusInternalServerError, "Failed to query history")
		return
	}

	records := make([]history.RawRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, history.RawRecord{
			Timestamp: row.Timestamp,
			Price:     row.Price,
		})
	}

	points := history.Parse(records)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data": map[string]interface{}{
			"symbol": symbol,
			"days":   days,
			"count":  len(points),
			"points": points,
		},
	})
}

// Shared response helpers

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

func queryInt(r *http.Request, key string, defaultValue int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return value
}
