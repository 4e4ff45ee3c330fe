package models

// CreateTransactionRequest represents the request body for recording a transaction
type CreateTransactionRequest struct {
	SecurityType SecurityType `json:"security_type" binding:"required"`
	Date         FlexibleDate `json:"date" binding:"required"`

	// Trade fields for share/option transactions. SecurityID references an
	// existing position; when it is zero the new-security fields below are
	// used to create the ticker and position lazily.
	SecurityID int64   `json:"security_id"`
	Quantity   float64 `json:"quantity"`
	Price      float64 `json:"price"`

	Symbol string          `json:"symbol"`
	Name   string          `json:"name"`
	Class  InstrumentClass `json:"class"`

	// Option contract fields.
	Expiration *FlexibleDate   `json:"expiration,omitempty"`
	Strike     float64         `json:"strike"`
	Direction  OptionDirection `json:"direction"`

	// Cash fields (deposit/interest).
	Category CashCategory `json:"category"`
	Amount   float64      `json:"amount"`
}

// SecurityListing represents one open security in the listing endpoint
type SecurityListing struct {
	ID        int64   `json:"id"`
	Label     string  `json:"label"`
	NumOpen   float64 `json:"num_open"`
	CostBasis float64 `json:"cost_basis"`
}

// PortfolioStats contains the portfolio-level aggregates of a valuation pass
type PortfolioStats struct {
	CurrentCash        float64 `json:"current_cash"`
	CurrPortfolioValue float64 `json:"curr_portfolio_value"`
	TotalGain          float64 `json:"total_gain"`
	PLPercentage       float64 `json:"pl_percentage"`
	CurrentTheta       float64 `json:"current_theta"`
	APY                float64 `json:"apy"`
}

// PortfolioReport is the full valuation report: portfolio stats plus the
// per-ticker gain breakdown and the live-only gain/loss of every open
// position, keyed by security id.
type PortfolioReport struct {
	Stats         PortfolioStats     `json:"stats"`
	GainsByTicker map[string]float64 `json:"gains_by_ticker"`
	ShareLiveGL   map[int64]float64  `json:"share_live_gl"`
	OptionLiveGL  map[int64]float64  `json:"option_live_gl"`
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
