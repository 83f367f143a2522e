package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"moneta/internal/currency"
	"moneta/internal/models"
	"moneta/internal/services"
)

// --- mock rate service ---

type mockRateService struct {
	tableFn      func() (currency.Table, error)
	upsertRateFn func(code string, rate float64) (*models.CurrencyRate, error)
	convertFn    func(amount decimal.Decimal, code string, toBase bool) (decimal.Decimal, error)
}

func (m *mockRateService) Table() (currency.Table, error) {
	if m.tableFn != nil {
		return m.tableFn()
	}
	return currency.NewTable("USD", nil, time.Time{}), nil
}

func (m *mockRateService) UpsertRate(code string, rate float64) (*models.CurrencyRate, error) {
	if m.upsertRateFn != nil {
		return m.upsertRateFn(code, rate)
	}
	return &models.CurrencyRate{Code: code, Rate: rate}, nil
}

func (m *mockRateService) Convert(amount decimal.Decimal, code string, toBase bool) (decimal.Decimal, error) {
	if m.convertFn != nil {
		return m.convertFn(amount, code, toBase)
	}
	return amount, nil
}

var _ services.RateServicer = (*mockRateService)(nil)

func setupCurrencyRouter(handler *CurrencyHandler) *gin.Engine {
	r := gin.New()
	r.GET("/currency/rates", handler.GetRates)
	r.PUT("/currency/rates", handler.UpsertRate)
	r.GET("/currency/convert", handler.Convert)
	return r
}

func TestCurrencyHandler_UpsertRate(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		r := setupCurrencyRouter(NewCurrencyHandler(&mockRateService{}))

		rec := doRequest(r, "PUT", "/currency/rates", `{"code":"EUR","rate":0.92}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("returns 400 on invalid code", func(t *testing.T) {
		r := setupCurrencyRouter(NewCurrencyHandler(&mockRateService{}))

		rec := doRequest(r, "PUT", "/currency/rates", `{"code":"EURO","rate":0.92}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on non-positive rate", func(t *testing.T) {
		r := setupCurrencyRouter(NewCurrencyHandler(&mockRateService{}))

		rec := doRequest(r, "PUT", "/currency/rates", `{"code":"EUR","rate":-1}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestCurrencyHandler_Convert(t *testing.T) {
	t.Run("converts a well-formed amount", func(t *testing.T) {
		svc := &mockRateService{
			convertFn: func(amount decimal.Decimal, code string, toBase bool) (decimal.Decimal, error) {
				return amount.Mul(decimal.RequireFromString("2")), nil
			},
		}
		r := setupCurrencyRouter(NewCurrencyHandler(svc))

		rec := doRequest(r, "GET", "/currency/convert?amount=10&code=EUR", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["converted"] != "20" {
			t.Errorf("expected converted 20, got %v", result["converted"])
		}
	})

	t.Run("malformed amount converts as zero", func(t *testing.T) {
		var got decimal.Decimal
		svc := &mockRateService{
			convertFn: func(amount decimal.Decimal, code string, toBase bool) (decimal.Decimal, error) {
				got = amount
				return amount, nil
			},
		}
		r := setupCurrencyRouter(NewCurrencyHandler(svc))

		rec := doRequest(r, "GET", "/currency/convert?amount=abc&code=EUR", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if !got.Equal(decimal.Zero) {
			t.Errorf("expected zero amount passed through, got %s", got)
		}
	})
}
