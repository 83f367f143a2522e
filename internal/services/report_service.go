package services

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "moneta/internal/errors"
	"moneta/internal/ledger"
	"moneta/internal/models"
)

// reportService computes aggregates over the stored transaction set. All
// arithmetic happens in the pure ledger package; this service only loads the
// inputs and, for breakdowns, optionally converts the results into a display
// currency at the boundary.
type reportService struct {
	db    *gorm.DB
	rates RateServicer
}

// NewReportService creates a new ReportServicer.
func NewReportService(db *gorm.DB, rates RateServicer) ReportServicer {
	return &reportService{db: db, rates: rates}
}

func (s *reportService) loadTransactions(from, to *time.Time) ([]models.Transaction, error) {
	q := s.db.Preload("Splits")
	if from != nil {
		q = q.Where("date >= ?", *from)
	}
	if to != nil {
		q = q.Where("date <= ?", *to)
	}
	var transactions []models.Transaction
	if err := q.Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

// Summary returns overall income and expense totals for an optional date
// window, in the base currency.
func (s *reportService) Summary(from, to *time.Time) (*ReportSummary, error) {
	transactions, err := s.loadTransactions(from, to)
	if err != nil {
		return nil, err
	}

	income := ledger.TotalIncome(transactions)
	expense := ledger.TotalExpense(transactions)

	table, err := s.rates.Table()
	if err != nil {
		return nil, err
	}

	return &ReportSummary{
		TotalIncome:  income,
		TotalExpense: expense,
		Net:          income.Sub(expense),
		Currency:     table.Base,
	}, nil
}

// Breakdown returns a keyed spending breakdown, by category or by account
// type. When displayCurrency is non-empty the summed values are converted for
// display; stored values stay base-currency.
func (s *reportService) Breakdown(byCategory bool, displayCurrency string) (map[string]decimal.Decimal, error) {
	transactions, err := s.loadTransactions(nil, nil)
	if err != nil {
		return nil, err
	}

	var accounts map[uint]models.Account
	if !byCategory {
		var rows []models.Account
		if err := s.db.Find(&rows).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		accounts = make(map[uint]models.Account, len(rows))
		for _, a := range rows {
			accounts[a.ID] = a
		}
	}

	breakdown := ledger.Breakdown(transactions, accounts, byCategory)

	if displayCurrency != "" {
		table, err := s.rates.Table()
		if err != nil {
			return nil, err
		}
		for key, value := range breakdown {
			breakdown[key] = table.ToDisplay(value, displayCurrency)
		}
	}
	return breakdown, nil
}

// Monthly returns six calendar-month income/expense buckets ending at now's
// month, oldest first.
func (s *reportService) Monthly(now time.Time) ([]ledger.MonthlyData, error) {
	if now.IsZero() {
		now = time.Now()
	}

	// Only the window can contribute; skip older rows at the source.
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -5, 0)
	transactions, err := s.loadTransactions(&start, nil)
	if err != nil {
		return nil, err
	}

	return ledger.MonthlyComparison(transactions, now), nil
}
