package cmc

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/luowen/coinsight/internal/market"
	"github.com/luowen/coinsight/pkg/config"
	"github.com/luowen/coinsight/pkg/httputil"
	"github.com/luowen/coinsight/pkg/logger"
)

// Client handles communication with the CoinMarketCap Pro API.
// Credentials and base URL are injected explicitly; nothing here reads the
// environment. Raw listing/quote bodies are returned as-is and handed to the
// normalizer, which owns the payload shapes.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	apiKey     string
	baseURL    string
	convert    string
}

// NewClient creates a new CoinMarketCap API client
func NewClient(cfg config.CMCConfig, httpClient *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		convert:    cfg.Convert,
	}
}

// Listings fetches the top cryptocurrencies sorted by market cap.
// Returns the raw response body (list-shaped data container).
func (c *Client) Listings(ctx context.Context, limit int) ([]byte, error) {
	if limit <= 0 {
		limit = 10
	}

	params := url.Values{}
	params.Set("start", "1")
	params.Set("limit", strconv.Itoa(limit))
	params.Set("sort", "market_cap")
	params.Set("sort_dir", "desc")
	params.Set("convert", c.convert)

	return c.get(ctx, "/v1/cryptocurrency/listings/latest", params)
}

// Quote fetches the latest quote for a single symbol.
// Returns the raw response body (map-shaped data container, keyed by symbol).
func (c *Client) Quote(ctx context.Context, symbol string) ([]byte, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, fmt.Errorf("cmc: symbol is required")
	}

	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("convert", c.convert)

	return c.get(ctx, "/v1/cryptocurrency/quotes/latest", params)
}

// GlobalMetrics fetches aggregate market statistics
func (c *Client) GlobalMetrics(ctx context.Context) (*market.GlobalMetrics, error) {
	body, err := c.get(ctx, "/v1/global-metrics/quotes/latest", url.Values{})
	if err != nil {
		return nil, err
	}

	data := gjson.GetBytes(body, "data")
	if !data.Exists() {
		return nil, market.ErrMalformedPayload
	}

	quotePath := "quote." + c.convert + "."
	return &market.GlobalMetrics{
		TotalMarketCap:         data.Get(quotePath + "total_market_cap").Float(),
		TotalVolume24h:         data.Get(quotePath + "total_volume_24h").Float(),
		BTCDominance:           data.Get("btc_dominance").Float(),
		ActiveCryptocurrencies: data.Get("active_cryptocurrencies").Int(),
	}, nil
}

// get performs an authenticated GET and returns the response body
func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("cmc: failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-CMC_PRO_API_KEY", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cmc: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("cmc: failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.WithFields(map[string]interface{}{
			"path":        path,
			"status_code": resp.StatusCode,
		}).Error("CMC API returned non-OK status")
		return nil, fmt.Errorf("cmc: unexpected status %d", resp.StatusCode)
	}

	return body, nil
}
