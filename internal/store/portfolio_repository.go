package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PortfolioRepository persists user holdings.
type PortfolioRepository struct {
	pool *pgxpool.Pool
}

// NewPortfolioRepository creates a new portfolio repository
func NewPortfolioRepository(pool *pgxpool.Pool) *PortfolioRepository {
	return &PortfolioRepository{pool: pool}
}

// Holding is one portfolio position
type Holding struct {
	ID        int64     `json:"id"`
	Symbol    string    `json:"symbol"`
	Quantity  float64   `json:"quantity"`
	BuyPrice  float64   `json:"buy_price"`
	BuyDate   time.Time `json:"buy_date"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

// Add inserts a new holding and returns its id
func (r *PortfolioRepository) Add(ctx context.Context, symbol string, quantity, buyPrice float64, buyDate time.Time, notes string) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO portfolio (symbol, quantity, buy_price, buy_date, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, symbol, quantity, buyPrice, buyDate, notes).Scan(&id)
	return id, err
}

// List returns all holdings, newest first
func (r *PortfolioRepository) List(ctx context.Context) ([]Holding, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, symbol, quantity, buy_price, buy_date, COALESCE(notes, ''), created_at
		FROM portfolio
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	holdings := make([]Holding, 0)
	for rows.Next() {
		var h Holding
		if err := rows.Scan(&h.ID, &h.Symbol, &h.Quantity, &h.BuyPrice, &h.BuyDate, &h.Notes, &h.CreatedAt); err != nil {
			return nil, err
		}
		holdings = append(holdings, h)
	}
	return holdings, rows.Err()
}
