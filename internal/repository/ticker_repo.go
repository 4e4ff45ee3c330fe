package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/anushv/investments/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrTickerNotFound = errors.New("ticker not found")

// TickerRepository handles database operations for tickers
type TickerRepository struct {
	pool *pgxpool.Pool
}

// NewTickerRepository creates a new TickerRepository
func NewTickerRepository(pool *pgxpool.Pool) *TickerRepository {
	return &TickerRepository{pool: pool}
}

// GetBySymbol retrieves a ticker by its market symbol
func (r *TickerRepository) GetBySymbol(ctx context.Context, symbol string) (*models.Ticker, error) {
	query := `SELECT id, symbol, name, class FROM ticker WHERE symbol = $1`
	t := &models.Ticker{}
	err := r.pool.QueryRow(ctx, query, symbol).Scan(&t.ID, &t.Symbol, &t.Name, &t.Class)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrTickerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ticker: %w", err)
	}
	return t, nil
}

// GetOrCreate resolves a symbol inside tx, creating the ticker lazily on the
// first transaction for a new symbol. A non-empty name refreshes the display
// name of an existing ticker; everything else is immutable after creation.
func (r *TickerRepository) GetOrCreate(ctx context.Context, tx pgx.Tx, symbol, name string, class models.InstrumentClass) (*models.Ticker, error) {
	query := `
		INSERT INTO ticker (symbol, name, class)
		VALUES ($1, $2, $3)
		ON CONFLICT (symbol) DO UPDATE
		SET name = COALESCE(NULLIF(EXCLUDED.name, ''), ticker.name)
		RETURNING id, symbol, name, class
	`
	t := &models.Ticker{}
	err := tx.QueryRow(ctx, query, symbol, name, class).Scan(&t.ID, &t.Symbol, &t.Name, &t.Class)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create ticker: %w", err)
	}
	return t, nil
}
