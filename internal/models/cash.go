package models

import "time"

// CashCategory classifies a cash row. Deposits and interest accumulate as
// separate rows; "main" is the single running balance debited or credited by
// every security transaction's cash effect.
type CashCategory string

const (
	CashCategoryDeposit  CashCategory = "deposit"
	CashCategoryInterest CashCategory = "interest"
	CashCategoryMain     CashCategory = "main"
)

// Cash is a signed cash row.
type Cash struct {
	ID       int64        `json:"id"`
	Amount   float64      `json:"amount"`
	Category CashCategory `json:"category"`
	Date     time.Time    `json:"date"`
}
