package services

import (
	"strings"
	"time"

	cache "github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"moneta/internal/currency"
	apperrors "moneta/internal/errors"
	"moneta/internal/models"
)

const rateCacheKey = "currency:rates"

// rateService maintains the externally refreshed currency rate table, cached
// in memory so reporting paths do not hit the database on every conversion.
type rateService struct {
	db    *gorm.DB
	cache *cache.Cache
	base  string
	ttl   time.Duration
}

// NewRateService creates a new RateServicer with the given base currency and
// cache TTL.
func NewRateService(db *gorm.DB, base string, ttl time.Duration) RateServicer {
	if base == "" {
		base = currency.DefaultBase
	}
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &rateService{
		db:    db,
		cache: cache.New(ttl, 2*ttl),
		base:  base,
		ttl:   ttl,
	}
}

// Table returns the current rate snapshot, loading from the currency_rates
// table on cache miss. Codes absent from storage fall back to the shipped
// defaults inside the table itself.
func (s *rateService) Table() (currency.Table, error) {
	if cached, ok := s.cache.Get(rateCacheKey); ok {
		if table, ok := cached.(currency.Table); ok {
			return table, nil
		}
	}

	var rows []models.CurrencyRate
	if err := s.db.Find(&rows).Error; err != nil {
		return currency.Table{}, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	rates := make(map[string]float64, len(rows))
	var updatedAt time.Time
	for _, row := range rows {
		rates[row.Code] = row.Rate
		if row.UpdatedAt.After(updatedAt) {
			updatedAt = row.UpdatedAt
		}
	}

	table := currency.NewTable(s.base, rates, updatedAt)
	s.cache.Set(rateCacheKey, table, s.ttl)
	return table, nil
}

// UpsertRate stores a refreshed rate for a currency code and invalidates the
// cached table.
func (s *rateService) UpsertRate(code string, rate float64) (*models.CurrencyRate, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 3 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "currency code must be a 3-letter ISO 4217 code")
	}
	if rate <= 0 {
		return nil, apperrors.ErrInvalidRate
	}

	row := &models.CurrencyRate{Code: code, Rate: rate, UpdatedAt: time.Now()}
	if err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoUpdates: clause.AssignmentColumns([]string{"rate", "updated_at"}),
	}).Create(row).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.cache.Delete(rateCacheKey)
	return row, nil
}

// Convert translates an amount across the display boundary: toBase converts
// display-currency entry into the base currency, otherwise base into display.
func (s *rateService) Convert(amount decimal.Decimal, code string, toBase bool) (decimal.Decimal, error) {
	table, err := s.Table()
	if err != nil {
		return decimal.Zero, err
	}
	if toBase {
		return table.ToBase(amount, code), nil
	}
	return table.ToDisplay(amount, code), nil
}
