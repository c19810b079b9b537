package store

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/luowen/coinsight/internal/market"
)

// QuoteRepository persists normalized quote snapshots for historical queries.
type QuoteRepository struct {
	pool *pgxpool.Pool
}

// NewQuoteRepository creates a new quote repository
func NewQuoteRepository(pool *pgxpool.Pool) *QuoteRepository {
	return &QuoteRepository{pool: pool}
}

// HistoryRow is one stored price observation, newest-first when listed.
type HistoryRow struct {
	Timestamp        time.Time
	Price            float64
	PercentChange24h float64
}

// SaveSnapshot upserts the asset row and appends one price observation
func (r *QuoteRepository) SaveSnapshot(ctx context.Context, q market.Quote, ts time.Time) error {
	var cryptoID int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO cryptocurrencies (symbol, name, slug)
		VALUES ($1, $2, $3)
		ON CONFLICT (symbol) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, q.Symbol, q.Name, strings.ToLower(q.Symbol)).Scan(&cryptoID)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO price_history
			(crypto_id, ts, price, market_cap, volume_24h,
			 percent_change_1h, percent_change_24h, percent_change_7d, circulating_supply)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (crypto_id, ts) DO NOTHING
	`, cryptoID, ts, q.Price, q.MarketCap, q.Volume24h,
		q.PercentChange1h, q.PercentChange24h, q.PercentChange7d, q.CirculatingSupply)
	return err
}

// SaveSnapshots saves a batch of quotes taken at the same instant
func (r *QuoteRepository) SaveSnapshots(ctx context.Context, quotes []market.Quote, ts time.Time) error {
	for _, q := range quotes {
		if err := r.SaveSnapshot(ctx, q, ts); err != nil {
			return err
		}
	}
	return nil
}

// GetHistory returns stored observations for a symbol within the last N days,
// newest first. The caller hands these to the history parser, which produces
// the chronological series.
func (r *QuoteRepository) GetHistory(ctx context.Context, symbol string, days int) ([]HistoryRow, error) {
	if days <= 0 {
		days = 30
	}
	since := time.Now().UTC().AddDate(0, 0, -days)

	rows, err := r.pool.Query(ctx, `
		SELECT ph.ts, ph.price, COALESCE(ph.percent_change_24h, 0)
		FROM price_history ph
		JOIN cryptocurrencies c ON ph.crypto_id = c.id
		WHERE c.symbol = $1 AND ph.ts >= $2
		ORDER BY ph.ts DESC
	`, strings.ToUpper(symbol), since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []HistoryRow
	for rows.Next() {
		var h HistoryRow
		if err := rows.Scan(&h.Timestamp, &h.Price, &h.PercentChange24h); err != nil {
			return nil, err
		}
		history = append(history, h)
	}
	return history, rows.Err()
}
