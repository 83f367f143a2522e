// Package testutil provides test helpers for setting up in-memory databases,
// creating fixtures, and making assertions.
package testutil

import (
	"sync"
	"testing"

	"moneta/internal/fieldcrypt"
	"moneta/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// allModels is the list of all GORM models to auto-migrate in tests.
var allModels = []interface{}{
	&models.Account{},
	&models.Transaction{},
	&models.TransactionSplit{},
	&models.CurrencyRate{},
}

var registerOnce sync.Once

// SetupTestDB creates an in-memory SQLite database with all models migrated.
// The note cipher runs with a fixed test passphrase so encrypted reads and
// writes are exercised.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	registerOnce.Do(func() {
		fieldcrypt.Register("testutil-passphrase")
	})

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// TeardownTestDB closes the underlying database connection.
func TeardownTestDB(t *testing.T, db *gorm.DB) {
	t.Helper()

	sqlDB, err := db.DB()
	if err != nil {
		t.Errorf("failed to get underlying DB for teardown: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		t.Errorf("failed to close test database: %v", err)
	}
}
