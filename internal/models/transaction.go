package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeExpense  TransactionType = "expense"
	TransactionTypeTransfer TransactionType = "transfer"
	TransactionTypeIncome   TransactionType = "income"
)

// Recurrence represents how often a template transaction repeats
type Recurrence string

const (
	RecurrenceNone    Recurrence = "none"
	RecurrenceDaily   Recurrence = "daily"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
	RecurrenceYearly  Recurrence = "yearly"
)

// Transaction represents a financial transaction. Amounts and fees are
// denominated in the fixed base currency; display-currency conversion happens
// only at the API boundary. A transaction with a non-none recurrence is a
// template: it represents the originating occurrence and seeds generated ones.
type Transaction struct {
	Base
	Amount          decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"amount"`
	Fee             decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"fee"`
	Type            TransactionType `gorm:"type:integer;not null" json:"type"`
	SourceAccountID uint            `gorm:"not null;index" json:"source_account_id"`
	TargetAccountID *uint           `json:"target_account_id,omitempty"` // transfers only
	Category        string          `gorm:"not null" json:"category"`
	SubCategory     string          `json:"sub_category,omitempty"`
	Date            time.Time       `gorm:"not null;index" json:"date"`
	Note            string          `gorm:"serializer:fieldcrypt" json:"note"`
	Recurrence      Recurrence      `gorm:"type:integer;not null;default:0" json:"recurrence"`

	Splits []TransactionSplit `gorm:"foreignKey:TransactionID;constraint:OnDelete:CASCADE" json:"splits,omitempty"`

	// Relationships
	SourceAccount Account  `gorm:"foreignKey:SourceAccountID" json:"-"`
	TargetAccount *Account `gorm:"foreignKey:TargetAccountID" json:"-"`
}

// BeforeCreate defaults the recurrence so the integer-code serializer never
// sees an empty variant.
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.Recurrence == "" {
		t.Recurrence = RecurrenceNone
	}
	return t.Base.BeforeCreate(tx)
}

// IsTemplate reports whether the transaction is a recurring template.
func (t *Transaction) IsTemplate() bool {
	return t.Recurrence != "" && t.Recurrence != RecurrenceNone
}

// TransactionSplit is a sub-allocation of a single transaction's amount
// across categories. When splits are present their amounts must sum to the
// parent transaction's amount; this is enforced at entry time.
type TransactionSplit struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	TransactionID string          `gorm:"type:uuid;not null;index" json:"-"`
	Amount        decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"amount"`
	Category      string          `gorm:"not null" json:"category"`
	SubCategory   string          `json:"sub_category,omitempty"`
}
