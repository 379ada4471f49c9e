package models

import (
	"time"

	"github.com/google/uuid"
)

// Transaction is one ledger row: a single (product, sale) pair. Rows are
// written only by a successful checkout and are immutable afterwards.
// ProductName and UnitPrice are snapshots taken at sale time so later
// edits to the inventory item do not rewrite history.
type Transaction struct {
	ID              uuid.UUID `json:"id" db:"id"`
	UserID          uuid.UUID `json:"user_id" db:"user_id"`
	ProductID       uuid.UUID `json:"product_id" db:"product_id"`
	ProductName     string    `json:"product_name" db:"product_name"`
	TransactionDate time.Time `json:"transaction_date" db:"transaction_date"`
	Quantity        int       `json:"quantity" db:"quantity"`
	UnitPrice       float64   `json:"unit_price" db:"unit_price"`
	TotalPrice      float64   `json:"total_price" db:"total_price"`
}

// SaleReceipt summarizes a committed checkout back to the caller.
type SaleReceipt struct {
	Lines      []ReceiptLine `json:"lines"`
	TotalPrice float64       `json:"total_price"`
	SoldAt     time.Time     `json:"sold_at"`
}

// ReceiptLine mirrors one ledger row of the sale.
type ReceiptLine struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	UnitPrice   float64   `json:"unit_price"`
	TotalPrice  float64   `json:"total_price"`
}
