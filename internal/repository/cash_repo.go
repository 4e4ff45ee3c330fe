package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/anushv/investments/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CashRepository handles database operations for cash rows
type CashRepository struct {
	pool *pgxpool.Pool
}

// NewCashRepository creates a new CashRepository
func NewCashRepository(pool *pgxpool.Pool) *CashRepository {
	return &CashRepository{pool: pool}
}

// GetMain returns the running main balance row, creating it lazily. The row
// is locked for the duration of tx so concurrent transaction submissions
// serialize on the balance.
func (r *CashRepository) GetMain(ctx context.Context, tx pgx.Tx) (*models.Cash, error) {
	query := `SELECT id, amount, category, date FROM cash WHERE category = 'main' FOR UPDATE`
	c := &models.Cash{}
	err := tx.QueryRow(ctx, query).Scan(&c.ID, &c.Amount, &c.Category, &c.Date)
	if errors.Is(err, pgx.ErrNoRows) {
		insert := `
			INSERT INTO cash (amount, category, date)
			VALUES (0, 'main', CURRENT_DATE)
			RETURNING id, amount, category, date
		`
		if err := tx.QueryRow(ctx, insert).Scan(&c.ID, &c.Amount, &c.Category, &c.Date); err != nil {
			return nil, fmt.Errorf("failed to create main cash row: %w", err)
		}
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get main cash row: %w", err)
	}
	return c, nil
}

// SetMain writes back the running main balance
func (r *CashRepository) SetMain(ctx context.Context, tx pgx.Tx, c *models.Cash) error {
	query := `UPDATE cash SET amount = $1 WHERE id = $2`
	result, err := tx.Exec(ctx, query, c.Amount, c.ID)
	if err != nil {
		return fmt.Errorf("failed to update main cash row: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("main cash row %d disappeared", c.ID)
	}
	return nil
}

// Add inserts a deposit or interest row
func (r *CashRepository) Add(ctx context.Context, tx pgx.Tx, c *models.Cash) error {
	query := `
		INSERT INTO cash (amount, category, date)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	return tx.QueryRow(ctx, query, c.Amount, c.Category, c.Date).Scan(&c.ID)
}

// List retrieves all cash rows
func (r *CashRepository) List(ctx context.Context) ([]models.Cash, error) {
	query := `SELECT id, amount, category, date FROM cash ORDER BY date, id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query cash rows: %w", err)
	}
	defer rows.Close()

	var cash []models.Cash
	for rows.Next() {
		var c models.Cash
		if err := rows.Scan(&c.ID, &c.Amount, &c.Category, &c.Date); err != nil {
			return nil, fmt.Errorf("failed to scan cash row: %w", err)
		}
		cash = append(cash, c)
	}
	return cash, rows.Err()
}

// BeginTx starts a new transaction
func (r *CashRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	return r.pool.Begin(ctx)
}
