package market

import (
	"errors"
	"strings"

	"github.com/spf13/cast"
	"github.com/tidwall/gjson"

	"github.com/luowen/coinsight/pkg/logger"
)

// ErrMalformedPayload is returned when a payload lacks the top-level data container.
var ErrMalformedPayload = errors.New("market: payload missing data container")

// Normalizer converts raw upstream payloads into canonical Quote records.
// The upstream API returns two incompatible shapes: listings are an array of
// asset records, single-asset lookups are an object keyed by symbol. Both are
// resolved here, once, so nothing downstream ever branches on payload shape.
type Normalizer struct {
	convert string // quote currency key, e.g. "USD"
	logger  *logger.Logger
}

// NewNormalizer creates a normalizer for the given quote currency
func NewNormalizer(convert string, log *logger.Logger) *Normalizer {
	if convert == "" {
		convert = "USD"
	}
	return &Normalizer{
		convert: convert,
		logger:  log,
	}
}

// Normalize converts a raw payload into canonical quotes.
//
// A nil or empty payload means "no data" and yields no output, not an error.
// A payload without a usable data container fails with ErrMalformedPayload.
// Individual malformed records are skipped and logged; the batch returns the
// records that did parse.
func (n *Normalizer) Normalize(payload []byte) ([]Quote, error) {
	if len(payload) == 0 {
		return nil, nil
	}

	data := gjson.GetBytes(payload, "data")
	if !data.Exists() {
		return nil, ErrMalformedPayload
	}

	var quotes []Quote

	switch {
	case data.IsArray():
		// Listings shape: each element is one asset record
		for _, item := range data.Array() {
			if q, ok := n.normalizeRecord(item); ok {
				quotes = append(quotes, q)
			}
		}
	case data.IsObject():
		// Lookup shape: symbol -> record, in document order
		data.ForEach(func(_, item gjson.Result) bool {
			if q, ok := n.normalizeRecord(item); ok {
				quotes = append(quotes, q)
			}
			return true
		})
	default:
		return nil, ErrMalformedPayload
	}

	return quotes, nil
}

// normalizeRecord converts a single raw record. Records without a name or
// symbol are rejected; that is a per-item failure, not a batch failure.
func (n *Normalizer) normalizeRecord(item gjson.Result) (Quote, bool) {
	name := strings.TrimSpace(item.Get("name").String())
	symbol := strings.ToUpper(strings.TrimSpace(item.Get("symbol").String()))

	if name == "" || symbol == "" {
		n.logger.WithFields(map[string]interface{}{
			"record": item.Raw,
		}).Warn("Skipping record without name or symbol")
		return Quote{}, false
	}

	quotePath := "quote." + n.convert + "."

	return Quote{
		Name:              name,
		Symbol:            symbol,
		Price:             n.num(item, quotePath+"price"),
		MarketCap:         n.num(item, quotePath+"market_cap"),
		Volume24h:         n.num(item, quotePath+"volume_24h"),
		PercentChange1h:   n.num(item, quotePath+"percent_change_1h"),
		PercentChange24h:  n.num(item, quotePath+"percent_change_24h"),
		PercentChange7d:   n.num(item, quotePath+"percent_change_7d"),
		CirculatingSupply: n.num(item, "circulating_supply"),
		MaxSupply:         n.num(item, "max_supply"),
	}, true
}

// num extracts a numeric field, defaulting absent, null or uncoercible values to 0
func (n *Normalizer) num(item gjson.Result, path string) float64 {
	v := item.Get(path)
	if !v.Exists() || v.Type == gjson.Null {
		return 0
	}

	f, err := cast.ToFloat64E(v.Value())
	if err != nil {
		return 0
	}
	return f
}
