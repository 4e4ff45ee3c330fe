package repository

import (
	"context"
	"fmt"

	"github.com/anushv/investments/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TransactionRepository handles database operations for the append-only trade log
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Insert appends a transaction record. Records are immutable; there are no
// update or delete operations.
func (r *TransactionRepository) Insert(ctx context.Context, tx pgx.Tx, t *models.Transaction) error {
	query := `
		INSERT INTO transactions (date, price, quantity, total_value, security_type, security_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	return tx.QueryRow(ctx, query,
		t.Date, t.Price, t.Quantity, t.TotalValue, t.SecurityType, t.SecurityID,
	).Scan(&t.ID)
}

// List retrieves the full trade log, oldest first
func (r *TransactionRepository) List(ctx context.Context) ([]models.Transaction, error) {
	query := `
		SELECT id, date, price, quantity, total_value, security_type, security_id
		FROM transactions
		ORDER BY date, id
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.Date, &t.Price, &t.Quantity, &t.TotalValue, &t.SecurityType, &t.SecurityID); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}
