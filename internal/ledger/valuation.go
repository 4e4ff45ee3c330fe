package ledger

import "github.com/anushv/investments/internal/models"

const contractSize = 100

// ComputePortfolioGains aggregates the current ledger state and live prices
// into the portfolio report: per-ticker gains, total value, theta exposure,
// period return against the oldest snapshot, and an annualized-yield estimate
// extrapolated from today's aggregate theta. oldest may be nil when no
// snapshot exists yet; the period return is then zero.
//
// Recording today's snapshot is the caller's concern.
func ComputePortfolioGains(shares []*models.Share, options []*models.Option, cash []models.Cash, oldest *models.PortfolioSnapshot, prices models.LivePrices) *models.PortfolioReport {
	var depositsTotal, interestTotal, mainBalance float64
	for _, c := range cash {
		switch c.Category {
		case models.CashCategoryDeposit:
			depositsTotal += c.Amount
		case models.CashCategoryInterest:
			interestTotal += c.Amount
		case models.CashCategoryMain:
			mainBalance += c.Amount
		}
	}

	gains := make(map[string]float64)
	shareLiveGL := make(map[int64]float64)
	optionLiveGL := make(map[int64]float64)

	var currentMarkTotal, currentTheta float64

	for _, s := range shares {
		gains[s.Ticker.Symbol] += CalculatePL(s)
		currentMarkTotal += s.CurrentValue
		if s.NumOpen != 0 {
			shareLiveGL[s.ID] = LiveGL(s)
		}
	}

	for _, o := range options {
		gains[o.Ticker.Symbol] += CalculatePL(o)
		currentMarkTotal += o.CurrentValue
		if o.IsOpen() {
			currentTheta += prices.Options[o.ID].Theta * o.NumOpen
			optionLiveGL[o.ID] = LiveGL(o)
		}
	}

	totalGain := interestTotal
	for _, g := range gains {
		totalGain += g
	}

	portfolioValue := depositsTotal + mainBalance + currentMarkTotal

	// Period return measures growth beyond contributed capital.
	var plPercentage float64
	if oldest != nil {
		if baseline := oldest.Value + depositsTotal; baseline != 0 {
			plPercentage = (portfolioValue - baseline) / baseline * 100
		}
	}

	// Percent gain for the year if today's aggregate theta decays daily.
	var apy float64
	if portfolioValue != 0 {
		apy = (currentTheta * contractSize * 365) / portfolioValue * 100
	}

	return &models.PortfolioReport{
		Stats: models.PortfolioStats{
			CurrentCash:        mainBalance + depositsTotal + interestTotal,
			CurrPortfolioValue: portfolioValue,
			TotalGain:          totalGain,
			PLPercentage:       plPercentage,
			CurrentTheta:       currentTheta * contractSize,
			APY:                apy,
		},
		GainsByTicker: gains,
		ShareLiveGL:   shareLiveGL,
		OptionLiveGL:  optionLiveGL,
	}
}
