// Package currency converts monetary amounts between the fixed base currency
// and a display currency using a rate table. Persisted and aggregated values
// are always base-currency; conversion happens only at entry and display
// boundaries, with the table passed in explicitly so the math stays pure.
package currency

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultBase is the base currency used when none is configured.
const DefaultBase = "USD"

// defaultRates are the shipped fallback rates relative to DefaultBase, used
// for codes with no externally refreshed rate. Rough market rates; the rate
// collaborator is expected to overwrite them in practice.
var defaultRates = map[string]float64{
	"USD": 1.0,
	"EUR": 0.92,
	"GBP": 0.79,
	"JPY": 147.2,
	"CHF": 0.88,
	"CAD": 1.36,
	"AUD": 1.52,
	"CNY": 7.24,
	"INR": 83.1,
	"BRL": 5.43,
	"SGD": 1.34,
	"MYR": 4.47,
}

// Table is an immutable snapshot of conversion rates relative to Base, with
// the time the external refresh last touched them.
type Table struct {
	Base      string
	UpdatedAt time.Time

	rates map[string]float64
}

// NewTable builds a rate table. The rates map is copied; the base currency
// itself always resolves to 1 regardless of its presence in the map.
func NewTable(base string, rates map[string]float64, updatedAt time.Time) Table {
	if base == "" {
		base = DefaultBase
	}
	copied := make(map[string]float64, len(rates))
	for code, rate := range rates {
		copied[code] = rate
	}
	return Table{Base: base, UpdatedAt: updatedAt, rates: copied}
}

// Rate returns the conversion rate for code relative to the base currency.
// The base currency is 1.0. Codes without an externally refreshed rate fall
// back to the shipped defaults, then to 1.0, so display math never fails.
func (t Table) Rate(code string) float64 {
	if code == "" || code == t.Base {
		return 1
	}
	if rate, ok := t.rates[code]; ok && rate > 0 {
		return rate
	}
	if rate, ok := defaultRates[code]; ok {
		return rate
	}
	return 1
}

// Rates returns a copy of the table's refreshed rates keyed by code.
func (t Table) Rates() map[string]float64 {
	out := make(map[string]float64, len(t.rates))
	for code, rate := range t.rates {
		out[code] = rate
	}
	return out
}

// ToDisplay converts an amount in the base currency to the display currency.
func (t Table) ToDisplay(amount decimal.Decimal, code string) decimal.Decimal {
	return amount.Mul(decimal.NewFromFloat(t.Rate(code)))
}

// ToBase converts an amount entered in the display currency back to the base
// currency before it re-enters the core.
func (t Table) ToBase(amount decimal.Decimal, code string) decimal.Decimal {
	return amount.Div(decimal.NewFromFloat(t.Rate(code)))
}
