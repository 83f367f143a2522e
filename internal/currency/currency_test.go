package currency

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestRateLookup(t *testing.T) {
	table := NewTable("USD", map[string]float64{"EUR": 0.95}, time.Now())

	t.Run("base_currency_is_identity", func(t *testing.T) {
		if got := table.Rate("USD"); got != 1 {
			t.Errorf("expected base rate 1, got %v", got)
		}
	})

	t.Run("refreshed_rate_wins", func(t *testing.T) {
		if got := table.Rate("EUR"); got != 0.95 {
			t.Errorf("expected refreshed rate 0.95, got %v", got)
		}
	})

	t.Run("falls_back_to_defaults", func(t *testing.T) {
		if got := table.Rate("GBP"); got != 0.79 {
			t.Errorf("expected default rate 0.79, got %v", got)
		}
	})

	t.Run("unknown_code_is_identity", func(t *testing.T) {
		if got := table.Rate("XXX"); got != 1 {
			t.Errorf("expected identity rate for unknown code, got %v", got)
		}
	})

	t.Run("empty_code_is_identity", func(t *testing.T) {
		if got := table.Rate(""); got != 1 {
			t.Errorf("expected identity rate for empty code, got %v", got)
		}
	})
}

func TestConversionRoundTrip(t *testing.T) {
	table := NewTable("USD", map[string]float64{
		"EUR": 0.92,
		"JPY": 147.2,
		"GBP": 0.7931,
	}, time.Now())

	tolerance := decimal.NewFromFloat(0.0000001)
	amounts := []string{"0", "1", "19.99", "1234.5678", "1000000"}
	codes := []string{"EUR", "JPY", "GBP", "USD"}

	for _, code := range codes {
		for _, raw := range amounts {
			amount := decimal.RequireFromString(raw)
			back := table.ToBase(table.ToDisplay(amount, code), code)
			if back.Sub(amount).Abs().GreaterThan(tolerance) {
				t.Errorf("round trip %s %s: got %s back", raw, code, back)
			}
		}
	}
}

func TestToDisplay(t *testing.T) {
	table := NewTable("USD", map[string]float64{"EUR": 0.5}, time.Now())

	got := table.ToDisplay(decimal.NewFromInt(100), "EUR")
	if !got.Equal(decimal.NewFromInt(50)) {
		t.Errorf("expected 50, got %s", got)
	}
}

func TestNewTableCopiesRates(t *testing.T) {
	rates := map[string]float64{"EUR": 0.9}
	table := NewTable("USD", rates, time.Now())

	rates["EUR"] = 2.0
	if got := table.Rate("EUR"); got != 0.9 {
		t.Errorf("expected table to be isolated from caller map, got %v", got)
	}
}
