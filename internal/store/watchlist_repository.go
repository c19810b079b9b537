package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// WatchlistRepository persists user watchlist entries.
type WatchlistRepository struct {
	pool *pgxpool.Pool
}

// NewWatchlistRepository creates a new watchlist repository
func NewWatchlistRepository(pool *pgxpool.Pool) *WatchlistRepository {
	return &WatchlistRepository{pool: pool}
}

// WatchlistItem is one watched symbol
type WatchlistItem struct {
	Symbol       string    `json:"symbol"`
	Notes        string    `json:"notes"`
	AlertPrice   *float64  `json:"alert_price,omitempty"`
	AlertEnabled bool      `json:"alert_enabled"`
	CreatedAt    time.Time `json:"created_at"`
}

// Add inserts a symbol into the watchlist.
// Returns false when the symbol is already watched.
func (r *WatchlistRepository) Add(ctx context.Context, symbol, notes string, alertPrice *float64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		INSERT INTO watchlist (symbol, notes, alert_price)
		VALUES ($1, $2, $3)
		ON CONFLICT (symbol) DO NOTHING
	`, symbol, notes, alertPrice)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// List returns all watchlist entries, newest first
func (r *WatchlistRepository) List(ctx context.Context) ([]WatchlistItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT symbol, COALESCE(notes, ''), alert_price, alert_enabled, created_at
		FROM watchlist
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]WatchlistItem, 0)
	for rows.Next() {
		var item WatchlistItem
		if err := rows.Scan(&item.Symbol, &item.Notes, &item.AlertPrice, &item.AlertEnabled, &item.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
