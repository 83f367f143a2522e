package models

import "time"

// CurrencyRate is an externally refreshed conversion rate for one currency
// code relative to the fixed base currency. Absent rows fall back to the
// converter's shipped defaults.
type CurrencyRate struct {
	Code      string    `gorm:"primaryKey;size:3" json:"code"`
	Rate      float64   `gorm:"not null" json:"rate"`
	UpdatedAt time.Time `json:"updated_at"`
}
