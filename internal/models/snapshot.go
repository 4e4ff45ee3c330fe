package models

import "time"

// PortfolioSnapshot is a dated total-value record, one row per calendar day.
// The earliest row is the baseline for the period-return percentage.
type PortfolioSnapshot struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}
