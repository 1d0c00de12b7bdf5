package models

import (
	"time"
)

const (
	AlertTypeClassic = "classic"
	AlertTypeVision  = "vision"
)

// Alert is a recommended trade entry. Alerts are append-only: the service
// never updates or deletes them after creation.
type Alert struct {
	ID           string    `json:"id" db:"id"`
	Asset        string    `json:"asset" db:"asset"`
	EntryDate    string    `json:"entryDate" db:"entry_date"`
	EntryPrice   float64   `json:"entryPrice" db:"entry_price"`
	CurrentPrice *float64  `json:"currentPrice,omitempty" db:"current_price"`
	AlertType    string    `json:"alertType" db:"alert_type"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

func IsValidAlertType(value string) bool {
	return value == AlertTypeClassic || value == AlertTypeVision
}
