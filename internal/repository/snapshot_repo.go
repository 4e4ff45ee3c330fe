package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/anushv/investments/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SnapshotRepository handles database operations for dated portfolio-value snapshots
type SnapshotRepository struct {
	pool *pgxpool.Pool
}

// NewSnapshotRepository creates a new SnapshotRepository
func NewSnapshotRepository(pool *pgxpool.Pool) *SnapshotRepository {
	return &SnapshotRepository{pool: pool}
}

// Upsert writes the total value for a date. A same-day write replaces the
// existing row, so repeated valuation passes stay idempotent per day.
func (r *SnapshotRepository) Upsert(ctx context.Context, snap *models.PortfolioSnapshot) error {
	query := `
		INSERT INTO portfolio_tracker (date, value)
		VALUES ($1, $2)
		ON CONFLICT (date) DO UPDATE SET value = EXCLUDED.value
	`
	if _, err := r.pool.Exec(ctx, query, snap.Date, snap.Value); err != nil {
		return fmt.Errorf("failed to upsert snapshot: %w", err)
	}
	return nil
}

// GetOldest returns the earliest snapshot, or nil when none exists
func (r *SnapshotRepository) GetOldest(ctx context.Context) (*models.PortfolioSnapshot, error) {
	query := `SELECT date, value FROM portfolio_tracker ORDER BY date LIMIT 1`
	snap := &models.PortfolioSnapshot{}
	err := r.pool.QueryRow(ctx, query).Scan(&snap.Date, &snap.Value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get oldest snapshot: %w", err)
	}
	return snap, nil
}
