package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AccountType represents the type of account
type AccountType string

const (
	AccountTypeBank   AccountType = "bank"
	AccountTypeWallet AccountType = "wallet"
	AccountTypeCredit AccountType = "credit"
	AccountTypeCash   AccountType = "cash"
)

// Label returns the capitalized display name used as the key in
// account-type breakdowns.
func (t AccountType) Label() string {
	switch t {
	case AccountTypeBank:
		return "Bank"
	case AccountTypeWallet:
		return "Wallet"
	case AccountTypeCredit:
		return "Credit"
	case AccountTypeCash:
		return "Cash"
	}
	return "Unknown"
}

// Account represents a financial account. The balance is denominated in the
// fixed base currency and is mutated only by transaction application and
// reversal.
type Account struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Name      string          `gorm:"not null" json:"name"`
	Type      AccountType     `gorm:"type:integer;not null" json:"type"`
	Balance   decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	DeletedAt gorm.DeletedAt  `gorm:"index" json:"deleted_at,omitempty"`
}

// UnknownAccountID is the sentinel identifier of the synthetic placeholder
// returned when a transaction references an account that no longer exists.
const UnknownAccountID uint = 0

// UnknownAccount returns the placeholder account used when a stale account
// reference cannot be resolved. Aggregations tolerate it instead of failing.
func UnknownAccount() Account {
	return Account{ID: UnknownAccountID, Name: "Unknown", Type: AccountTypeCash}
}
