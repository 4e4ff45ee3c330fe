package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anushv/investments/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrSecurityNotFound = errors.New("security not found")

// SecurityRepository handles database operations for share and option positions
type SecurityRepository struct {
	pool *pgxpool.Pool
}

// NewSecurityRepository creates a new SecurityRepository
func NewSecurityRepository(pool *pgxpool.Pool) *SecurityRepository {
	return &SecurityRepository{pool: pool}
}

const shareColumns = `
	s.id, s.num_open, s.cost_basis, s.current_value, s.live_pl,
	t.id, t.symbol, t.name, t.class
`

const optionColumns = `
	o.id, o.num_open, o.cost_basis, o.current_value, o.live_pl,
	o.expiration, o.strike, o.direction,
	t.id, t.symbol, t.name, t.class
`

func scanShare(row pgx.Row) (*models.Share, error) {
	s := &models.Share{}
	err := row.Scan(
		&s.ID, &s.NumOpen, &s.CostBasis, &s.CurrentValue, &s.LivePL,
		&s.Ticker.ID, &s.Ticker.Symbol, &s.Ticker.Name, &s.Ticker.Class,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func scanOption(row pgx.Row) (*models.Option, error) {
	o := &models.Option{}
	err := row.Scan(
		&o.ID, &o.NumOpen, &o.CostBasis, &o.CurrentValue, &o.LivePL,
		&o.Expiration, &o.Strike, &o.Direction,
		&o.Ticker.ID, &o.Ticker.Symbol, &o.Ticker.Name, &o.Ticker.Class,
	)
	if err != nil {
		return nil, err
	}
	return o, nil
}

// GetShare retrieves a share position by ID
func (r *SecurityRepository) GetShare(ctx context.Context, id int64) (*models.Share, error) {
	query := `
		SELECT ` + shareColumns + `
		FROM share s JOIN ticker t ON t.id = s.ticker_id
		WHERE s.id = $1
	`
	s, err := scanShare(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSecurityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get share: %w", err)
	}
	return s, nil
}

// GetOption retrieves an option position by ID
func (r *SecurityRepository) GetOption(ctx context.Context, id int64) (*models.Option, error) {
	query := `
		SELECT ` + optionColumns + `
		FROM option_contract o JOIN ticker t ON t.id = o.ticker_id
		WHERE o.id = $1
	`
	o, err := scanOption(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSecurityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get option: %w", err)
	}
	return o, nil
}

// GetShareByTicker retrieves the share position for a ticker, or nil when the
// ticker has never been traded as shares.
func (r *SecurityRepository) GetShareByTicker(ctx context.Context, tickerID int64) (*models.Share, error) {
	query := `
		SELECT ` + shareColumns + `
		FROM share s JOIN ticker t ON t.id = s.ticker_id
		WHERE s.ticker_id = $1
	`
	s, err := scanShare(r.pool.QueryRow(ctx, query, tickerID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get share by ticker: %w", err)
	}
	return s, nil
}

// GetOptionByContract retrieves the option position matching an exact
// contract, or nil when the contract has never been traded.
func (r *SecurityRepository) GetOptionByContract(ctx context.Context, tickerID int64, expiration time.Time, strike float64, direction models.OptionDirection) (*models.Option, error) {
	query := `
		SELECT ` + optionColumns + `
		FROM option_contract o JOIN ticker t ON t.id = o.ticker_id
		WHERE o.ticker_id = $1 AND o.expiration = $2 AND o.strike = $3 AND o.direction = $4
	`
	o, err := scanOption(r.pool.QueryRow(ctx, query, tickerID, expiration, strike, direction))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get option by contract: %w", err)
	}
	return o, nil
}

// ListShares retrieves all share positions, or only open ones
func (r *SecurityRepository) ListShares(ctx context.Context, openOnly bool) ([]*models.Share, error) {
	query := `
		SELECT ` + shareColumns + `
		FROM share s JOIN ticker t ON t.id = s.ticker_id
	`
	if openOnly {
		query += ` WHERE s.num_open <> 0`
	}
	query += ` ORDER BY t.symbol`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query shares: %w", err)
	}
	defer rows.Close()

	var shares []*models.Share
	for rows.Next() {
		s, err := scanShare(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan share: %w", err)
		}
		shares = append(shares, s)
	}
	return shares, rows.Err()
}

// ListOptions retrieves all option positions, or only open ones, ordered by expiration
func (r *SecurityRepository) ListOptions(ctx context.Context, openOnly bool) ([]*models.Option, error) {
	query := `
		SELECT ` + optionColumns + `
		FROM option_contract o JOIN ticker t ON t.id = o.ticker_id
	`
	if openOnly {
		query += ` WHERE o.num_open <> 0`
	}
	query += ` ORDER BY o.expiration`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query options: %w", err)
	}
	defer rows.Close()

	var options []*models.Option
	for rows.Next() {
		o, err := scanOption(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan option: %w", err)
		}
		options = append(options, o)
	}
	return options, rows.Err()
}

// CreateShare inserts a new share position with a zeroed ledger state
func (r *SecurityRepository) CreateShare(ctx context.Context, tx pgx.Tx, s *models.Share) error {
	query := `
		INSERT INTO share (ticker_id, num_open, cost_basis, current_value, live_pl)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	return tx.QueryRow(ctx, query, s.Ticker.ID, s.NumOpen, s.CostBasis, s.CurrentValue, s.LivePL).Scan(&s.ID)
}

// CreateOption inserts a new option position with a zeroed ledger state
func (r *SecurityRepository) CreateOption(ctx context.Context, tx pgx.Tx, o *models.Option) error {
	query := `
		INSERT INTO option_contract (ticker_id, expiration, strike, direction, num_open, cost_basis, current_value, live_pl)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	return tx.QueryRow(ctx, query,
		o.Ticker.ID, o.Expiration, o.Strike, o.Direction,
		o.NumOpen, o.CostBasis, o.CurrentValue, o.LivePL,
	).Scan(&o.ID)
}

// UpdateShare persists the mutable ledger state of a share position
func (r *SecurityRepository) UpdateShare(ctx context.Context, tx pgx.Tx, s *models.Share) error {
	query := `
		UPDATE share
		SET num_open = $1, cost_basis = $2, current_value = $3, live_pl = $4
		WHERE id = $5
	`
	result, err := tx.Exec(ctx, query, s.NumOpen, s.CostBasis, s.CurrentValue, s.LivePL, s.ID)
	if err != nil {
		return fmt.Errorf("failed to update share: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrSecurityNotFound
	}
	return nil
}

// UpdateOption persists the mutable ledger state of an option position
func (r *SecurityRepository) UpdateOption(ctx context.Context, tx pgx.Tx, o *models.Option) error {
	query := `
		UPDATE option_contract
		SET num_open = $1, cost_basis = $2, current_value = $3, live_pl = $4
		WHERE id = $5
	`
	result, err := tx.Exec(ctx, query, o.NumOpen, o.CostBasis, o.CurrentValue, o.LivePL, o.ID)
	if err != nil {
		return fmt.Errorf("failed to update option: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrSecurityNotFound
	}
	return nil
}

// UpdateCurrentValues persists the live marks written by a valuation pass in
// one batched round trip.
func (r *SecurityRepository) UpdateCurrentValues(ctx context.Context, shares []*models.Share, options []*models.Option) error {
	batch := &pgx.Batch{}
	for _, s := range shares {
		batch.Queue(`UPDATE share SET current_value = $1 WHERE id = $2`, s.CurrentValue, s.ID)
	}
	for _, o := range options {
		batch.Queue(`UPDATE option_contract SET current_value = $1 WHERE id = $2`, o.CurrentValue, o.ID)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to update current values: %w", err)
		}
	}
	return nil
}

// BeginTx starts a new transaction
func (r *SecurityRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	return r.pool.Begin(ctx)
}
