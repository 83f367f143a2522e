package services

import (
	"time"

	"github.com/shopspring/decimal"

	"moneta/internal/currency"
	"moneta/internal/ledger"
	"moneta/internal/models"
	"moneta/internal/pagination"
)

// AccountUpdateFields holds the optional fields an account update may change.
type AccountUpdateFields struct {
	Name *string
	Type *models.AccountType
}

// AccountServicer defines the contract for account-related business logic.
type AccountServicer interface {
	CreateAccount(name string, accountType models.AccountType, initialBalance decimal.Decimal) (*models.Account, error)
	GetAccounts(page pagination.PageRequest) (*pagination.PageResponse[models.Account], error)
	GetAccountByID(accountID uint) (*models.Account, error)
	GetAccountMap() (map[uint]models.Account, error)
	UpdateAccount(accountID uint, fields AccountUpdateFields) (*models.Account, error)
	DeleteAccount(accountID uint) error
}

// TransactionInput carries the caller-supplied fields for creating or
// replacing a transaction. Amounts are base-currency; the API boundary
// converts display-currency entry before building an input.
type TransactionInput struct {
	Amount          decimal.Decimal
	Fee             decimal.Decimal
	Type            models.TransactionType
	SourceAccountID uint
	TargetAccountID *uint
	Category        string
	SubCategory     string
	Date            time.Time
	Note            string
	Recurrence      models.Recurrence
	Splits          []models.TransactionSplit
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FromDate      *time.Time
	ToDate        *time.Time
	Type          *models.TransactionType
	Category      *string
	AccountID     *uint
	TemplatesOnly bool
}

// TransactionServicer defines the contract for transaction-related business
// logic. Creation, update, and deletion apply or revert the transaction's
// balance effect in the same database transaction as the row change.
type TransactionServicer interface {
	CreateTransaction(input TransactionInput) (*models.Transaction, error)
	GetTransactions(page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(transactionID string) (*models.Transaction, error)
	UpdateTransaction(transactionID string, input TransactionInput) (*models.Transaction, error)
	DeleteTransaction(transactionID string) error
}

// RecurrenceServicer generates due occurrences from recurring templates.
type RecurrenceServicer interface {
	// EnsureGenerated runs the scan at most once per service lifetime; later
	// calls return immediately. Intended for the once-per-session check on
	// data load.
	EnsureGenerated(today time.Time) ([]models.Transaction, error)
	// Run performs the scan unconditionally. Idempotent against the stored
	// set; a second run with the same today generates nothing.
	Run(today time.Time) ([]models.Transaction, error)
}

// ReportSummary holds overall income/expense totals in the base currency.
type ReportSummary struct {
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	Net          decimal.Decimal `json:"net"`
	Currency     string          `json:"currency"`
}

// ReportServicer defines the contract for aggregation reports.
type ReportServicer interface {
	Summary(from, to *time.Time) (*ReportSummary, error)
	Breakdown(byCategory bool, displayCurrency string) (map[string]decimal.Decimal, error)
	Monthly(now time.Time) ([]ledger.MonthlyData, error)
}

// RateServicer maintains the externally refreshed currency rate table.
type RateServicer interface {
	Table() (currency.Table, error)
	UpsertRate(code string, rate float64) (*models.CurrencyRate, error)
	Convert(amount decimal.Decimal, code string, toBase bool) (decimal.Decimal, error)
}
