package models

// InstrumentClass categorizes what kind of instrument a ticker identifies
type InstrumentClass string

const (
	InstrumentStock       InstrumentClass = "stock"
	InstrumentETF         InstrumentClass = "etf"
	InstrumentMoneyMarket InstrumentClass = "money-market"
	InstrumentMutualFund  InstrumentClass = "mutual-fund"
)

// Ticker maps a market symbol to a logical instrument identity.
// Immutable after creation except for the display name. Securities reference
// tickers, they never own them.
type Ticker struct {
	ID     int64           `json:"id"`
	Symbol string          `json:"symbol"`
	Name   string          `json:"name"`
	Class  InstrumentClass `json:"class"`
}
