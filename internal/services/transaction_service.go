package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anushv/investments/internal/ledger"
	"github.com/anushv/investments/internal/models"
	"github.com/anushv/investments/internal/repository"
	"github.com/jackc/pgx/v5"
)

// ErrObjectNotFound signals that an existing-security reference in a request
// does not resolve. Surfaced to the caller as a 400; never retried.
var ErrObjectNotFound = errors.New("referenced security does not exist")

var validClasses = map[models.InstrumentClass]struct{}{
	models.InstrumentStock:       {},
	models.InstrumentETF:         {},
	models.InstrumentMoneyMarket: {},
	models.InstrumentMutualFund:  {},
}

// TransactionService records transactions: it resolves or lazily creates the
// target security, applies the ledger mutation, moves cash, and appends the
// immutable transaction record, all inside one database transaction.
type TransactionService struct {
	tickerRepo   *repository.TickerRepository
	securityRepo *repository.SecurityRepository
	cashRepo     *repository.CashRepository
	txnRepo      *repository.TransactionRepository
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(
	tickerRepo *repository.TickerRepository,
	securityRepo *repository.SecurityRepository,
	cashRepo *repository.CashRepository,
	txnRepo *repository.TransactionRepository,
) *TransactionService {
	return &TransactionService{
		tickerRepo:   tickerRepo,
		securityRepo: securityRepo,
		cashRepo:     cashRepo,
		txnRepo:      txnRepo,
	}
}

// Record validates and applies one transaction submission. All mutations are
// committed atomically; any failure rolls the whole unit back.
func (s *TransactionService) Record(ctx context.Context, req *models.CreateTransactionRequest) (*models.Transaction, error) {
	defer TrackTime("RecordTransaction", time.Now())

	switch req.SecurityType {
	case models.SecurityTypeCash:
		return s.recordCash(ctx, req)
	case models.SecurityTypeShare, models.SecurityTypeOption:
		return s.recordTrade(ctx, req)
	default:
		return nil, fmt.Errorf("%w: unknown security type %q", ledger.ErrInvalidTransaction, req.SecurityType)
	}
}

// recordCash books a deposit or interest row. Cash rows accumulate; they
// never mutate an existing position.
func (s *TransactionService) recordCash(ctx context.Context, req *models.CreateTransactionRequest) (*models.Transaction, error) {
	if req.Category != models.CashCategoryDeposit && req.Category != models.CashCategoryInterest {
		return nil, fmt.Errorf("%w: unknown cash category %q", ledger.ErrInvalidTransaction, req.Category)
	}
	if req.Amount == 0 {
		return nil, fmt.Errorf("%w: amount is zero", ledger.ErrInvalidTransaction)
	}

	tx, err := s.cashRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	cash := &models.Cash{
		Amount:   req.Amount,
		Category: req.Category,
		Date:     req.Date.Time,
	}
	if err := s.cashRepo.Add(ctx, tx, cash); err != nil {
		return nil, fmt.Errorf("failed to add cash row: %w", err)
	}

	txn := &models.Transaction{
		Date:         req.Date.Time,
		Price:        1,
		Quantity:     req.Amount,
		TotalValue:   req.Amount,
		SecurityType: models.SecurityTypeCash,
		SecurityID:   cash.ID,
	}
	if err := s.txnRepo.Insert(ctx, tx, txn); err != nil {
		return nil, fmt.Errorf("failed to append transaction: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return txn, nil
}

// recordTrade applies a buy or sell to a share or option position.
func (s *TransactionService) recordTrade(ctx context.Context, req *models.CreateTransactionRequest) (*models.Transaction, error) {
	if req.Quantity == 0 {
		return nil, fmt.Errorf("%w: quantity is zero", ledger.ErrInvalidTransaction)
	}

	tx, err := s.securityRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	sec, err := s.resolveSecurity(ctx, tx, req)
	if err != nil {
		return nil, err
	}

	mainCash, err := s.cashRepo.GetMain(ctx, tx)
	if err != nil {
		return nil, err
	}

	// A buy against a short call is a covered-call closure and needs the
	// share position in the same ticker.
	var underlying *models.Share
	if opt, ok := sec.(*models.Option); ok && opt.IsShort() && req.Quantity > 0 && opt.Direction == models.DirectionCall {
		underlying, err = s.securityRepo.GetShareByTicker(ctx, opt.Ticker.ID)
		if err != nil {
			return nil, err
		}
	}

	if err := ledger.ApplyTransaction(sec, underlying, mainCash, req.Price, req.Quantity); err != nil {
		return nil, err
	}

	switch v := sec.(type) {
	case *models.Share:
		err = s.securityRepo.UpdateShare(ctx, tx, v)
	case *models.Option:
		err = s.securityRepo.UpdateOption(ctx, tx, v)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to persist position: %w", err)
	}

	if underlying != nil {
		if err := s.securityRepo.UpdateShare(ctx, tx, underlying); err != nil {
			return nil, fmt.Errorf("failed to persist underlying share: %w", err)
		}
	}

	if err := s.cashRepo.SetMain(ctx, tx, mainCash); err != nil {
		return nil, err
	}

	txn := &models.Transaction{
		Date:         req.Date.Time,
		Price:        req.Price,
		Quantity:     req.Quantity,
		TotalValue:   req.Price * req.Quantity,
		SecurityType: req.SecurityType,
		SecurityID:   sec.Pos().ID,
	}
	if err := s.txnRepo.Insert(ctx, tx, txn); err != nil {
		return nil, fmt.Errorf("failed to append transaction: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return txn, nil
}

// resolveSecurity finds the target position for a trade. An explicit
// security_id must resolve; otherwise the ticker and position are created
// lazily on the first transaction for a new symbol or contract.
func (s *TransactionService) resolveSecurity(ctx context.Context, tx pgx.Tx, req *models.CreateTransactionRequest) (models.Security, error) {
	if req.SecurityID != 0 {
		return s.lookupExisting(ctx, req)
	}

	if req.Symbol == "" {
		return nil, fmt.Errorf("%w: symbol is required for a new security", ledger.ErrInvalidTransaction)
	}
	class := req.Class
	if class == "" {
		class = models.InstrumentStock
	}
	if _, ok := validClasses[class]; !ok {
		return nil, fmt.Errorf("%w: unknown instrument class %q", ledger.ErrInvalidTransaction, class)
	}

	ticker, err := s.tickerRepo.GetOrCreate(ctx, tx, strings.ToUpper(req.Symbol), req.Name, class)
	if err != nil {
		return nil, err
	}

	if req.SecurityType == models.SecurityTypeShare {
		share, err := s.securityRepo.GetShareByTicker(ctx, ticker.ID)
		if err != nil {
			return nil, err
		}
		if share == nil {
			share = &models.Share{Position: models.Position{Ticker: *ticker}}
			if err := s.securityRepo.CreateShare(ctx, tx, share); err != nil {
				return nil, fmt.Errorf("failed to create share: %w", err)
			}
		}
		return share, nil
	}

	if req.Direction != models.DirectionPut && req.Direction != models.DirectionCall {
		return nil, fmt.Errorf("%w: unknown option direction %q", ledger.ErrInvalidTransaction, req.Direction)
	}
	if req.Expiration == nil {
		return nil, fmt.Errorf("%w: expiration is required for an option", ledger.ErrInvalidTransaction)
	}

	opt, err := s.securityRepo.GetOptionByContract(ctx, ticker.ID, req.Expiration.Time, req.Strike, req.Direction)
	if err != nil {
		return nil, err
	}
	if opt == nil {
		opt = &models.Option{
			Position:   models.Position{Ticker: *ticker},
			Expiration: req.Expiration.Time,
			Strike:     req.Strike,
			Direction:  req.Direction,
		}
		if err := s.securityRepo.CreateOption(ctx, tx, opt); err != nil {
			return nil, fmt.Errorf("failed to create option: %w", err)
		}
	}
	return opt, nil
}

func (s *TransactionService) lookupExisting(ctx context.Context, req *models.CreateTransactionRequest) (models.Security, error) {
	var sec models.Security
	var err error
	if req.SecurityType == models.SecurityTypeShare {
		sec, err = s.securityRepo.GetShare(ctx, req.SecurityID)
	} else {
		sec, err = s.securityRepo.GetOption(ctx, req.SecurityID)
	}
	if errors.Is(err, repository.ErrSecurityNotFound) {
		return nil, fmt.Errorf("%w: %s %d", ErrObjectNotFound, req.SecurityType, req.SecurityID)
	}
	if err != nil {
		return nil, err
	}
	return sec, nil
}
