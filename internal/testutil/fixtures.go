package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"moneta/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestAccount creates an account of the given type with zero balance.
func CreateTestAccount(t *testing.T, db *gorm.DB, accountType models.AccountType) *models.Account {
	t.Helper()
	return CreateTestAccountWithBalance(t, db, accountType, decimal.Zero)
}

// CreateTestAccountWithBalance creates an account with the given opening balance.
func CreateTestAccountWithBalance(t *testing.T, db *gorm.DB, accountType models.AccountType, balance decimal.Decimal) *models.Account {
	t.Helper()

	account := &models.Account{
		Name:    fmt.Sprintf("Test Account %d", nextID()),
		Type:    accountType,
		Balance: balance,
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}
	return account
}

// CreateTestTransaction creates a non-recurring transaction of the given type
// and amount dated now. Balances are not touched; use the transaction service
// when the balance effect matters.
func CreateTestTransaction(t *testing.T, db *gorm.DB, accountID uint, txType models.TransactionType, amount decimal.Decimal) *models.Transaction {
	t.Helper()
	return CreateTestTransactionOn(t, db, accountID, txType, amount, time.Now())
}

// CreateTestTransactionOn creates a non-recurring transaction on a specific date.
func CreateTestTransactionOn(t *testing.T, db *gorm.DB, accountID uint, txType models.TransactionType, amount decimal.Decimal, date time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		Amount:          amount,
		Type:            txType,
		SourceAccountID: accountID,
		Category:        fmt.Sprintf("Test Category %d", nextID()),
		Date:            date,
		Recurrence:      models.RecurrenceNone,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestTemplate creates a recurring template transaction seeded on the
// given date.
func CreateTestTemplate(t *testing.T, db *gorm.DB, accountID uint, recurrence models.Recurrence, amount decimal.Decimal, date time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		Amount:          amount,
		Type:            models.TransactionTypeExpense,
		SourceAccountID: accountID,
		Category:        fmt.Sprintf("Recurring Category %d", nextID()),
		Date:            date,
		Note:            "template note",
		Recurrence:      recurrence,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test template: %v", err)
	}
	return tx
}

// CreateTestRate stores a currency rate row.
func CreateTestRate(t *testing.T, db *gorm.DB, code string, rate float64) *models.CurrencyRate {
	t.Helper()

	row := &models.CurrencyRate{Code: code, Rate: rate, UpdatedAt: time.Now()}
	if err := db.Create(row).Error; err != nil {
		t.Fatalf("failed to create test rate: %v", err)
	}
	return row
}
