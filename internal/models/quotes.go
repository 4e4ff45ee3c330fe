package models

// OptionQuote is the live market snapshot for one option contract.
type OptionQuote struct {
	UnderlyingPrice float64 `json:"underlying_price"`
	Mid             float64 `json:"mid"`
	Theta           float64 `json:"theta"`
}

// LivePrices holds the quotes gathered for one valuation pass, keyed by
// security id.
type LivePrices struct {
	Options map[int64]OptionQuote
	Shares  map[int64]float64
}
