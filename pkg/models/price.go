package models

import (
	"time"
)

// PriceRecord is the latest observed quotation for a single asset. The
// prices table holds at most one row per asset, maintained by upsert.
type PriceRecord struct {
	ID        int64     `json:"-" db:"id"`
	Asset     string    `json:"asset" db:"asset"`
	Price     float64   `json:"price" db:"price"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
