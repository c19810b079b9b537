package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/luowen/coinsight/internal/market"
	"github.com/luowen/coinsight/internal/store"
	"github.com/luowen/coinsight/pkg/logger"
)

// ListingsSource provides raw market listings payloads
type ListingsSource interface {
	Listings(ctx context.Context, limit int) ([]byte, error)
}

// CollectJob periodically fetches the top market listings and stores a
// price snapshot for each asset. The stored snapshots feed the history
// endpoint and the history parser.
type CollectJob struct {
	source     ListingsSource
	normalizer *market.Normalizer
	quotes     *store.QuoteRepository
	universe   int
	logger     *logger.Logger
}

// NewCollectJob creates a new snapshot collection job
func NewCollectJob(
	source ListingsSource,
	normalizer *market.Normalizer,
	quotes *store.QuoteRepository,
	universe int,
	log *logger.Logger,
) *CollectJob {
	if universe <= 0 {
		universe = 50
	}
	return &CollectJob{
		source:     source,
		normalizer: normalizer,
		quotes:     quotes,
		universe:   universe,
		logger:     log,
	}
}

// Name returns the job name
func (j *CollectJob) Name() string {
	return "quote-collection"
}

// Schedule runs every 30 minutes
func (j *CollectJob) Schedule() string {
	return "0 */30 * * * *"
}

// Run fetches listings, normalizes them and persists one snapshot per asset
func (j *CollectJob) Run(ctx context.Context) error {
	payload, err := j.source.Listings(ctx, j.universe)
	if err != nil {
		return fmt.Errorf("fetch listings: %w", err)
	}

	quotes, err := j.normalizer.Normalize(payload)
	if err != nil {
		return fmt.Errorf("normalize listings: %w", err)
	}
	if len(quotes) == 0 {
		j.logger.Warn("Listings payload contained no usable records")
		return nil
	}

	ts := time.Now().UTC().Truncate(time.Minute)
	if err := j.quotes.SaveSnapshots(ctx, quotes, ts); err != nil {
		return fmt.Errorf("save snapshots: %w", err)
	}

	j.logger.WithFields(map[string]interface{}{
		"count": len(quotes),
		"ts":    ts,
	}).Info("Quote snapshots saved")

	return nil
}
