package services

import (
	"context"
	"sync"
	"time"

	"github.com/anushv/investments/internal/cache"
	"github.com/anushv/investments/internal/ledger"
	"github.com/anushv/investments/internal/marketdata"
	"github.com/anushv/investments/internal/models"
	"github.com/anushv/investments/internal/repository"
	"github.com/anushv/investments/internal/util"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentFetches bounds the fan-out against the market data provider.
const maxConcurrentFetches = 4

// ValuationService runs the valuation pass: pull live prices for every open
// security, write the marks back, aggregate the portfolio report, and record
// today's snapshot.
type ValuationService struct {
	securityRepo *repository.SecurityRepository
	cashRepo     *repository.CashRepository
	snapshotRepo *repository.SnapshotRepository
	quotes       *cache.QuoteCache
	mdClient     *marketdata.Client
}

// NewValuationService creates a new ValuationService
func NewValuationService(
	securityRepo *repository.SecurityRepository,
	cashRepo *repository.CashRepository,
	snapshotRepo *repository.SnapshotRepository,
	quotes *cache.QuoteCache,
	mdClient *marketdata.Client,
) *ValuationService {
	return &ValuationService{
		securityRepo: securityRepo,
		cashRepo:     cashRepo,
		snapshotRepo: snapshotRepo,
		quotes:       quotes,
		mdClient:     mdClient,
	}
}

// GetLivePrices fetches quotes for every open security, consulting the TTL
// cache first. A provider failure degrades that one security to a zero quote,
// cached for the same window, instead of failing the whole pass; each
// symbol's fetch is independent of the others.
func (s *ValuationService) GetLivePrices(ctx context.Context, shares []*models.Share, options []*models.Option) models.LivePrices {
	prices := models.LivePrices{
		Options: make(map[int64]models.OptionQuote),
		Shares:  make(map[int64]float64),
	}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)

	for _, opt := range options {
		if !opt.IsOpen() {
			continue
		}
		if quote, ok := s.quotes.GetOption(opt.ID); ok {
			prices.Options[opt.ID] = quote
			continue
		}
		opt := opt
		g.Go(func() error {
			quote, err := s.mdClient.GetOptionQuote(ctx, opt.Ticker.Symbol, opt.Expiration, opt.Direction, opt.Strike)
			if err != nil {
				log.Warnf("option quote fetch failed for %s, using zero placeholder: %v", opt.Label(), err)
				quote = &models.OptionQuote{}
			}
			s.quotes.SetOption(opt.ID, *quote)
			mu.Lock()
			prices.Options[opt.ID] = *quote
			mu.Unlock()
			return nil
		})
	}

	for _, share := range shares {
		if share.NumOpen == 0 {
			continue
		}
		if mid, ok := s.quotes.GetShare(share.ID); ok {
			prices.Shares[share.ID] = mid
			continue
		}
		share := share
		g.Go(func() error {
			mid, err := s.mdClient.GetStockQuote(ctx, share.Ticker.Symbol)
			if err != nil {
				log.Warnf("stock quote fetch failed for %s, using zero placeholder: %v", share.Ticker.Symbol, err)
				mid = 0
			}
			s.quotes.SetShare(share.ID, mid)
			mu.Lock()
			prices.Shares[share.ID] = mid
			mu.Unlock()
			return nil
		})
	}

	// Workers never return errors; degraded quotes are recorded per symbol.
	g.Wait()
	return prices
}

// UpdatePrices writes the fetched marks onto every open security and
// persists the batch.
func (s *ValuationService) UpdatePrices(ctx context.Context, shares []*models.Share, options []*models.Option, prices models.LivePrices) error {
	var markedShares []*models.Share
	var markedOptions []*models.Option

	for _, share := range shares {
		if share.NumOpen == 0 {
			continue
		}
		ledger.SetCurrentValue(share, prices.Shares[share.ID])
		markedShares = append(markedShares, share)
	}
	for _, opt := range options {
		if !opt.IsOpen() {
			continue
		}
		ledger.SetCurrentValue(opt, prices.Options[opt.ID].Mid)
		markedOptions = append(markedOptions, opt)
	}

	return s.securityRepo.UpdateCurrentValues(ctx, markedShares, markedOptions)
}

// ComputePortfolioGains runs a full valuation pass and upserts today's
// snapshot with the resulting portfolio value.
func (s *ValuationService) ComputePortfolioGains(ctx context.Context) (*models.PortfolioReport, error) {
	defer TrackTime("ComputePortfolioGains", time.Now())

	shares, err := s.securityRepo.ListShares(ctx, false)
	if err != nil {
		return nil, err
	}
	options, err := s.securityRepo.ListOptions(ctx, false)
	if err != nil {
		return nil, err
	}
	cashRows, err := s.cashRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	prices := s.GetLivePrices(ctx, shares, options)
	if err := s.UpdatePrices(ctx, shares, options, prices); err != nil {
		return nil, err
	}

	oldest, err := s.snapshotRepo.GetOldest(ctx)
	if err != nil {
		return nil, err
	}

	report := ledger.ComputePortfolioGains(shares, options, cashRows, oldest, prices)

	snap := &models.PortfolioSnapshot{Date: util.Today(), Value: report.Stats.CurrPortfolioValue}
	if err := s.snapshotRepo.Upsert(ctx, snap); err != nil {
		return nil, err
	}

	return report, nil
}
