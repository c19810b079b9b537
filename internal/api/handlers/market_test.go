package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luowen/coinsight/internal/market"
	"github.com/luowen/coinsight/pkg/config"
	"github.com/luowen/coinsight/pkg/logger"
	"github.com/luowen/coinsight/pkg/redis"
)

func newMarketHandler(source MarketSource) *MarketHandler {
	log := logger.NewNop()

	// Disabled Redis degrades the cache to a pass-through
	redisClient, _ := redis.New(&config.Config{})
	cache := redis.NewCache(redisClient, "test")

	return NewMarketHandler(source, market.NewNormalizer("USD", log), nil, cache, log)
}

func TestMarketHandler_GetTop(t *testing.T) {
	listings := []byte(`{
		"data": [
			{"name": "Bitcoin", "symbol": "BTC", "quote": {"USD": {"price": 65000}}},
			{"name": "Ethereum", "symbol": "ETH", "quote": {"USD": {"price": 3500}}}
		]
	}`)
	h := newMarketHandler(&fakeSource{listings: listings})

	req := httptest.NewRequest(http.MethodGet, "/api/market/top?limit=2", nil)
	rec := httptest.NewRecorder()
	h.GetTop(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Count int            `json:"count"`
			Items []market.Quote `json:"items"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.True(t, body.Success)
	require.Equal(t, 2, body.Data.Count)
	assert.Equal(t, "BTC", body.Data.Items[0].Symbol)
	assert.Equal(t, "ETH", body.Data.Items[1].Symbol)
}

func TestMarketHandler_GetQuote_NotFound(t *testing.T) {
	h := newMarketHandler(&fakeSource{quote: []byte(`{"data": {}}`)})

	req := httptest.NewRequest(http.MethodGet, "/api/market/quote/NOPE", nil)
	req = mux.SetURLVars(req, map[string]string{"symbol": "NOPE"})
	rec := httptest.NewRecorder()
	h.GetQuote(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Crypto not found", body["error"])
}

func TestMarketHandler_GetQuote_MalformedUpstream(t *testing.T) {
	h := newMarketHandler(&fakeSource{quote: []byte(`{"status": {}}`)})

	req := httptest.NewRequest(http.MethodGet, "/api/market/quote/BTC", nil)
	req = mux.SetURLVars(req, map[string]string{"symbol": "BTC"})
	rec := httptest.NewRecorder()
	h.GetQuote(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
