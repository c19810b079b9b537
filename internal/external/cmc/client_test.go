package cmc

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luowen/coinsight/pkg/config"
	"github.com/luowen/coinsight/pkg/httputil"
	"github.com/luowen/coinsight/pkg/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	httpClient := httputil.New(logger.NewNop()).DisableRetry()

	return NewClient(config.CMCConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Convert: "USD",
	}, httpClient, logger.NewNop())
}

func TestClient_Listings(t *testing.T) {
	var gotReq *http.Request

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotReq = r.Clone(context.Background())
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": []}`))
	})

	body, err := client.Listings(context.Background(), 25)
	require.NoError(t, err)
	assert.JSONEq(t, `{"data": []}`, string(body))

	require.NotNil(t, gotReq)
	assert.Equal(t, "/v1/cryptocurrency/listings/latest", gotReq.URL.Path)
	assert.Equal(t, "test-key", gotReq.Header.Get("X-CMC_PRO_API_KEY"))
	assert.Equal(t, "application/json", gotReq.Header.Get("Accept"))

	query := gotReq.URL.Query()
	assert.Equal(t, "1", query.Get("start"))
	assert.Equal(t, "25", query.Get("limit"))
	assert.Equal(t, "market_cap", query.Get("sort"))
	assert.Equal(t, "desc", query.Get("sort_dir"))
	assert.Equal(t, "USD", query.Get("convert"))
}

func TestClient_Listings_DefaultLimit(t *testing.T) {
	var gotLimit string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotLimit = r.URL.Query().Get("limit")
		w.Write([]byte(`{"data": []}`))
	})

	_, err := client.Listings(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, "10", gotLimit)
}

func TestClient_Quote(t *testing.T) {
	var gotReq *http.Request

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotReq = r.Clone(context.Background())
		w.Write([]byte(`{"data": {}}`))
	})

	_, err := client.Quote(context.Background(), " btc ")
	require.NoError(t, err)

	require.NotNil(t, gotReq)
	assert.Equal(t, "/v1/cryptocurrency/quotes/latest", gotReq.URL.Path)
	assert.Equal(t, "BTC", gotReq.URL.Query().Get("symbol"))
}

func TestClient_Quote_EmptySymbol(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	_, err := client.Quote(context.Background(), "   ")
	assert.Error(t, err)
}

func TestClient_GlobalMetrics(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/global-metrics/quotes/latest", r.URL.Path)
		w.Write([]byte(`{
			"data": {
				"btc_dominance": 52.3,
				"active_cryptocurrencies": 9000,
				"quote": {
					"USD": {
						"total_market_cap": 2400000000000,
						"total_volume_24h": 95000000000
					}
				}
			}
		}`))
	})

	metrics, err := client.GlobalMetrics(context.Background())
	require.NoError(t, err)

	assert.InDelta(t, 2400000000000, metrics.TotalMarketCap, 1e-3)
	assert.InDelta(t, 95000000000, metrics.TotalVolume24h, 1e-3)
	assert.InDelta(t, 52.3, metrics.BTCDominance, 1e-9)
	assert.Equal(t, int64(9000), metrics.ActiveCryptocurrencies)
}

func TestClient_NonOKStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"status": {"error_code": 1002}}`))
	})

	_, err := client.Listings(context.Background(), 10)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
