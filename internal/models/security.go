package models

import (
	"fmt"
	"strconv"
	"time"

	"github.com/anushv/investments/internal/util"
)

// SecurityType tags the concrete kind of security a transaction or API
// request refers to.
type SecurityType string

const (
	SecurityTypeShare  SecurityType = "share"
	SecurityTypeOption SecurityType = "option"
	SecurityTypeCash   SecurityType = "cash"
)

// OptionDirection is the side of an option contract, stored in the short
// broker notation ("p" / "c").
type OptionDirection string

const (
	DirectionPut  OptionDirection = "p"
	DirectionCall OptionDirection = "c"
)

// Position holds the accounting state shared by shares and options.
// NumOpen is signed: positive is long, negative is short, zero is fully
// closed. CostBasis is the weighted-average acquisition price per unit and is
// zero exactly when NumOpen is zero. CurrentValue is the total live mark.
// LivePL is the realized P/L accumulator; it persists across closes and is
// scaled by the security's multiplier when reported.
type Position struct {
	ID           int64   `json:"id"`
	Ticker       Ticker  `json:"ticker"`
	NumOpen      float64 `json:"num_open"`
	CostBasis    float64 `json:"cost_basis"`
	CurrentValue float64 `json:"current_value"`
	LivePL       float64 `json:"live_pl"`
}

// Security is the capability set shared by Share and Option.
type Security interface {
	Pos() *Position
	Multiplier() float64
	Type() SecurityType
	Label() string
}

// Share is an equity position. Unit multiplier 1.
type Share struct {
	Position
}

func (s *Share) Pos() *Position      { return &s.Position }
func (s *Share) Multiplier() float64 { return 1 }
func (s *Share) Type() SecurityType  { return SecurityTypeShare }
func (s *Share) Label() string       { return s.Ticker.Symbol }

// Option is an option contract position. Unit multiplier 100.
type Option struct {
	Position
	Expiration time.Time       `json:"expiration"`
	Strike     float64         `json:"strike"`
	Direction  OptionDirection `json:"direction"`
}

func (o *Option) Pos() *Position      { return &o.Position }
func (o *Option) Multiplier() float64 { return 100 }
func (o *Option) Type() SecurityType  { return SecurityTypeOption }

// Label renders the contract the way it reads on a ticket, e.g. "TSLA 250c".
func (o *Option) Label() string {
	return fmt.Sprintf("%s %s%s", o.Ticker.Symbol, strconv.FormatFloat(o.Strike, 'f', -1, 64), o.Direction)
}

func (o *Option) IsShort() bool { return o.NumOpen < 0 }
func (o *Option) IsLong() bool  { return o.NumOpen > 0 }
func (o *Option) IsOpen() bool  { return o.NumOpen != 0 }

// ExpiresToday reports whether the contract expires on the current calendar day.
func (o *Option) ExpiresToday() bool {
	return util.SameDay(o.Expiration, time.Now())
}
