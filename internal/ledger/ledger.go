// Package ledger implements the position accounting rules: weighted-average
// cost basis, realized P/L, the cash effect of every trade, and the
// portfolio-level valuation aggregates. Everything here is pure state
// mutation over models; persistence is the services layer's concern.
package ledger

import (
	"errors"
	"fmt"

	"github.com/anushv/investments/internal/models"
)

var (
	// ErrInvalidTransaction rejects transactions that cannot mutate a position.
	ErrInvalidTransaction = errors.New("invalid transaction")

	// ErrNoOpenUnderlying rejects a covered-call close when there is no open
	// share position in the same ticker to absorb the basis adjustment.
	ErrNoOpenUnderlying = errors.New("covered call close requires an open share position in the same ticker")
)

// ApplyTransaction applies a trade of quantity units at price to sec,
// debiting main for the cash effect. underlying is the share position in the
// same ticker, if any; it is only consulted when buying back a short call,
// where the trade profit lowers the shares' effective basis instead of being
// booked as independent option income.
//
// Nothing is mutated when an error is returned.
func ApplyTransaction(sec models.Security, underlying *models.Share, main *models.Cash, price, quantity float64) error {
	if quantity == 0 {
		return fmt.Errorf("%w: quantity is zero", ErrInvalidTransaction)
	}

	if opt, ok := sec.(*models.Option); ok && opt.IsShort() && quantity > 0 && opt.Direction == models.DirectionCall {
		return closeCoveredCall(opt, underlying, main, price, quantity)
	}

	pos := sec.Pos()
	mult := sec.Multiplier()

	newQty := pos.NumOpen + quantity
	switch {
	case newQty == 0:
		// A fully closed position carries no basis.
		pos.CostBasis = 0
	case reduces(pos.NumOpen, quantity):
		// Removing units at the position's own basis leaves the average
		// unchanged; the trade price lands in the realized accumulator below.
	default:
		pos.CostBasis = (pos.CostBasis*pos.NumOpen + price*quantity) / newQty
	}

	main.Amount += -price * quantity * mult
	pos.LivePL += -price * quantity
	pos.NumOpen = newQty
	return nil
}

// closeCoveredCall books the buy-to-close of a short call held against long
// shares: tradeProfit flows into the option's realized accumulator and the
// shares' cost basis drops by tradeProfit spread over the open share count.
// The option's own cost basis is left untouched.
func closeCoveredCall(opt *models.Option, share *models.Share, main *models.Cash, price, quantity float64) error {
	if share == nil || share.NumOpen == 0 {
		return ErrNoOpenUnderlying
	}

	mult := opt.Multiplier()
	tradeProfit := (opt.CostBasis - price) * quantity * mult

	opt.LivePL += tradeProfit / mult
	share.CostBasis -= tradeProfit / share.NumOpen

	main.Amount += -price * quantity * mult
	opt.NumOpen += quantity
	return nil
}

// reduces reports whether adding quantity moves an open position toward zero
// without crossing it.
func reduces(open, quantity float64) bool {
	return (open > 0 && quantity < 0 && open+quantity > 0) ||
		(open < 0 && quantity > 0 && open+quantity < 0)
}

// SetCurrentValue marks sec to the live unit price. Pure assignment; the
// realized accumulator is not touched.
func SetCurrentValue(sec models.Security, livePrice float64) {
	pos := sec.Pos()
	pos.CurrentValue = pos.NumOpen * livePrice * sec.Multiplier()
}

// CalculatePL returns total P/L: booked realized plus the live mark.
func CalculatePL(sec models.Security) float64 {
	pos := sec.Pos()
	return pos.LivePL*sec.Multiplier() + pos.CurrentValue
}

// LiveGL returns the unrealized-only gain/loss if the position were closed at
// the current mark right now, excluding historical realized P/L.
func LiveGL(sec models.Security) float64 {
	pos := sec.Pos()
	return -pos.NumOpen*pos.CostBasis*sec.Multiplier() + pos.CurrentValue
}
