package ledger

import (
	"testing"
	"time"

	"github.com/anushv/investments/internal/models"
	"github.com/stretchr/testify/assert"
)

func emptyPrices() models.LivePrices {
	return models.LivePrices{
		Options: make(map[int64]models.OptionQuote),
		Shares:  make(map[int64]float64),
	}
}

func TestPortfolioPercentReturn(t *testing.T) {
	// Oldest snapshot 10000, no deposits, current value 11000 -> 10%.
	cash := []models.Cash{{Amount: 1000, Category: models.CashCategoryMain}}
	share := &models.Share{Position: models.Position{
		ID:           1,
		Ticker:       models.Ticker{Symbol: "VTI"},
		NumOpen:      100,
		CostBasis:    90,
		CurrentValue: 10000,
	}}
	oldest := &models.PortfolioSnapshot{
		Date:  time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
		Value: 10000,
	}

	report := ComputePortfolioGains([]*models.Share{share}, nil, cash, oldest, emptyPrices())

	assert.Equal(t, 11000.0, report.Stats.CurrPortfolioValue)
	assert.InDelta(t, 10.0, report.Stats.PLPercentage, 1e-9)
}

func TestPercentReturnMeasuresGrowthBeyondDeposits(t *testing.T) {
	cash := []models.Cash{
		{Amount: 2000, Category: models.CashCategoryDeposit},
		{Amount: 1000, Category: models.CashCategoryMain},
	}
	share := &models.Share{Position: models.Position{
		ID:           1,
		Ticker:       models.Ticker{Symbol: "VTI"},
		NumOpen:      100,
		CurrentValue: 10200,
	}}
	oldest := &models.PortfolioSnapshot{Value: 10000}

	report := ComputePortfolioGains([]*models.Share{share}, nil, cash, oldest, emptyPrices())

	// Baseline is oldest value plus contributed capital: 12000.
	assert.Equal(t, 13200.0, report.Stats.CurrPortfolioValue)
	assert.InDelta(t, 10.0, report.Stats.PLPercentage, 1e-9)
}

func TestPercentReturnGuards(t *testing.T) {
	cash := []models.Cash{{Amount: 500, Category: models.CashCategoryMain}}

	noSnapshot := ComputePortfolioGains(nil, nil, cash, nil, emptyPrices())
	assert.Zero(t, noSnapshot.Stats.PLPercentage)

	zeroBaseline := ComputePortfolioGains(nil, nil, cash, &models.PortfolioSnapshot{Value: 0}, emptyPrices())
	assert.Zero(t, zeroBaseline.Stats.PLPercentage)
}

func TestThetaAndAPY(t *testing.T) {
	cash := []models.Cash{{Amount: 10000, Category: models.CashCategoryMain}}
	opt := &models.Option{
		Position: models.Position{
			ID:      10,
			Ticker:  models.Ticker{Symbol: "TSLA"},
			NumOpen: -2,
		},
		Direction: models.DirectionCall,
	}
	prices := emptyPrices()
	prices.Options[10] = models.OptionQuote{UnderlyingPrice: 240, Mid: 3, Theta: -0.05}

	report := ComputePortfolioGains(nil, []*models.Option{opt}, cash, nil, prices)

	// theta * num_open = -0.05 * -2 = 0.1 per day, reported at contract scale.
	assert.InDelta(t, 10.0, report.Stats.CurrentTheta, 1e-9)
	// (0.1 * 100 * 365) / 10000 * 100 = 36.5% annualized.
	assert.InDelta(t, 36.5, report.Stats.APY, 1e-9)
}

func TestAPYGuardedOnZeroValue(t *testing.T) {
	opt := &models.Option{
		Position: models.Position{ID: 10, Ticker: models.Ticker{Symbol: "TSLA"}, NumOpen: -1},
	}
	prices := emptyPrices()
	prices.Options[10] = models.OptionQuote{Theta: -0.05}

	report := ComputePortfolioGains(nil, []*models.Option{opt}, nil, nil, prices)

	assert.Zero(t, report.Stats.CurrPortfolioValue)
	assert.Zero(t, report.Stats.APY)
}

func TestGainsGroupByTicker(t *testing.T) {
	share := &models.Share{Position: models.Position{
		ID:           1,
		Ticker:       models.Ticker{Symbol: "TSLA"},
		NumOpen:      10,
		CostBasis:    20,
		CurrentValue: 250,
		LivePL:       -200,
	}}
	opt := &models.Option{
		Position: models.Position{
			ID:           10,
			Ticker:       models.Ticker{Symbol: "TSLA"},
			NumOpen:      -2,
			CostBasis:    3,
			CurrentValue: -300,
			LivePL:       6,
		},
		Direction: models.DirectionCall,
	}
	closedOpt := &models.Option{
		Position: models.Position{
			ID:     11,
			Ticker: models.Ticker{Symbol: "AAPL"},
			LivePL: 2.5,
		},
		Direction: models.DirectionPut,
	}
	cash := []models.Cash{
		{Amount: 40, Category: models.CashCategoryInterest},
		{Amount: 500, Category: models.CashCategoryMain},
	}
	prices := emptyPrices()
	prices.Options[10] = models.OptionQuote{Mid: 1.5, Theta: -0.02}

	report := ComputePortfolioGains([]*models.Share{share}, []*models.Option{opt, closedOpt}, cash, nil, prices)

	// TSLA: share 50 + option (600-300) = 350; AAPL: 250 realized only.
	assert.InDelta(t, 350.0, report.GainsByTicker["TSLA"], 1e-9)
	assert.InDelta(t, 250.0, report.GainsByTicker["AAPL"], 1e-9)
	assert.InDelta(t, 350.0+250.0+40.0, report.Stats.TotalGain, 1e-9)

	// Live-only breakdown covers open positions; the closed AAPL put is absent.
	assert.InDelta(t, 50.0, report.ShareLiveGL[1], 1e-9)
	assert.InDelta(t, 300.0, report.OptionLiveGL[10], 1e-9)
	_, present := report.OptionLiveGL[11]
	assert.False(t, present)

	// current_cash sums main, deposits and interest.
	assert.InDelta(t, 540.0, report.Stats.CurrentCash, 1e-9)
	// Portfolio value: main 500 + marks (250 - 300).
	assert.InDelta(t, 450.0, report.Stats.CurrPortfolioValue, 1e-9)
}
