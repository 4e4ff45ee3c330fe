package models

import "time"

// Transaction is one immutable entry in the append-only trade log. It is
// created once when recorded and drives exactly one position mutation at that
// moment; it is never updated or deleted afterwards.
type Transaction struct {
	ID           int64        `json:"id"`
	Date         time.Time    `json:"date"`
	Price        float64      `json:"price"`
	Quantity     float64      `json:"quantity"`
	TotalValue   float64      `json:"total_value"`
	SecurityType SecurityType `json:"security_type"`
	SecurityID   int64        `json:"security_id"`
}
