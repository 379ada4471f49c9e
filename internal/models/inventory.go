package models

import (
	"time"

	"github.com/google/uuid"
)

// InventoryItem is one stock-keeping record. product_name is unique and
// doubles as the upsert merge key; quantity is the authoritative on-hand
// count and never goes negative.
type InventoryItem struct {
	ID                uuid.UUID `json:"id" db:"id"`
	ProductName       string    `json:"product_name" db:"product_name"`
	Description       *string   `json:"description" db:"description"`
	Quantity          int       `json:"quantity" db:"quantity"`
	Price             float64   `json:"price" db:"price"`
	Category          string    `json:"category" db:"category"`
	LowStockThreshold int       `json:"low_stock_threshold" db:"low_stock_threshold"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

// LowStock reports whether the item is at or below its alert threshold.
// Cosmetic only, never enforced as a hard limit.
func (i *InventoryItem) LowStock() bool {
	return i.Quantity <= i.LowStockThreshold
}
