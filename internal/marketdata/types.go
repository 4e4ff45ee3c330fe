package marketdata

import "fmt"

// The marketdata.app API returns columnar responses: every field is an array
// with one element per contract matched by the query. We always query a
// single contract, so the first element is the one that matters.

// optionChainResponse models /v1/options/chain/{ticker}/
type optionChainResponse struct {
	Status          string    `json:"s"`
	UnderlyingPrice []float64 `json:"underlyingPrice"`
	Mid             []float64 `json:"mid"`
	Theta           []float64 `json:"theta"`
}

// stockQuoteResponse models /v1/stocks/quotes/{ticker}/
type stockQuoteResponse struct {
	Status string    `json:"s"`
	Mid    []float64 `json:"mid"`
}

// DataFetchError reports a non-success response from the market data
// provider. Callers decide whether to degrade or propagate.
type DataFetchError struct {
	Ticker       string
	StatusCode   int
	ResponseText string
}

func (e *DataFetchError) Error() string {
	return fmt.Sprintf("error fetching data for %s: HTTP %d", e.Ticker, e.StatusCode)
}
