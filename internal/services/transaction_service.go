package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "moneta/internal/errors"
	"moneta/internal/ledger"
	"moneta/internal/models"
	"moneta/internal/pagination"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db}
}

// validateInput checks the per-type invariants of a transaction input and
// normalizes defaults. Target accounts are populated iff the type is
// transfer; fees are meaningful only for transfers.
func (s *transactionService) validateInput(input *TransactionInput) error {
	if input.Amount.IsNegative() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must not be negative")
	}
	if input.Fee.IsNegative() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "fee must not be negative")
	}
	if input.Category == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "category is required")
	}
	if input.SourceAccountID == 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "source account is required")
	}

	switch input.Type {
	case models.TransactionTypeTransfer:
		if input.TargetAccountID == nil {
			return apperrors.ErrMissingTargetAccount
		}
		if *input.TargetAccountID == input.SourceAccountID {
			return apperrors.ErrSameAccountTransfer
		}
	case models.TransactionTypeExpense, models.TransactionTypeIncome:
		if input.TargetAccountID != nil {
			return apperrors.ErrUnexpectedTarget
		}
		input.Fee = decimal.Zero // fees apply to transfers only
	default:
		return apperrors.ErrInvalidTransactionType
	}

	if err := ledger.ValidateSplits(input.Amount, input.Splits); err != nil {
		return err
	}

	if input.Date.IsZero() {
		input.Date = time.Now()
	}
	if input.Recurrence == "" {
		input.Recurrence = models.RecurrenceNone
	}
	return nil
}

// verifyAccounts checks that the referenced accounts exist.
func (s *transactionService) verifyAccounts(input *TransactionInput) error {
	ids := []uint{input.SourceAccountID}
	if input.TargetAccountID != nil {
		ids = append(ids, *input.TargetAccountID)
	}
	var count int64
	if err := s.db.Model(&models.Account{}).Where("id IN ?", ids).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count != int64(len(ids)) {
		return apperrors.ErrAccountNotFound
	}
	return nil
}

// buildTransaction materializes an input as a model.
func buildTransaction(input TransactionInput) models.Transaction {
	return models.Transaction{
		Amount:          input.Amount,
		Fee:             input.Fee,
		Type:            input.Type,
		SourceAccountID: input.SourceAccountID,
		TargetAccountID: input.TargetAccountID,
		Category:        input.Category,
		SubCategory:     input.SubCategory,
		Date:            input.Date,
		Note:            input.Note,
		Recurrence:      input.Recurrence,
		Splits:          input.Splits,
	}
}

// CreateTransaction creates a transaction and applies its balance effect
// atomically.
func (s *transactionService) CreateTransaction(input TransactionInput) (*models.Transaction, error) {
	if err := s.validateInput(&input); err != nil {
		return nil, err
	}
	if err := s.verifyAccounts(&input); err != nil {
		return nil, err
	}

	transaction := buildTransaction(input)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return applyBalanceEffect(tx, &transaction, false)
	})
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}

// GetTransactions retrieves a paginated, filtered list of transactions.
func (s *transactionService) GetTransactions(page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := applyTransactionFilters(s.db.Model(&models.Transaction{}), filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Preload("Splits").Scopes(pagination.Paginate(page)).
		Order("date DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

func applyTransactionFilters(q *gorm.DB, f TransactionFilter) *gorm.DB {
	if f.FromDate != nil {
		q = q.Where("date >= ?", *f.FromDate)
	}
	if f.ToDate != nil {
		q = q.Where("date <= ?", *f.ToDate)
	}
	if f.Type != nil {
		q = q.Where("type = ?", *f.Type)
	}
	if f.Category != nil {
		q = q.Where("category = ?", *f.Category)
	}
	if f.AccountID != nil {
		q = q.Where("source_account_id = ? OR target_account_id = ?", *f.AccountID, *f.AccountID)
	}
	if f.TemplatesOnly {
		q = q.Where("recurrence <> ?", models.RecurrenceNone)
	}
	return q
}

// GetTransactionByID retrieves a transaction with its splits.
func (s *transactionService) GetTransactionByID(transactionID string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Preload("Splits").Where("id = ?", transactionID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// UpdateTransaction replaces a transaction's fields. The old effect is
// reverted and the new one applied against the latest balances, all within
// one database transaction.
func (s *transactionService) UpdateTransaction(transactionID string, input TransactionInput) (*models.Transaction, error) {
	old, err := s.GetTransactionByID(transactionID)
	if err != nil {
		return nil, err
	}
	if err := s.validateInput(&input); err != nil {
		return nil, err
	}
	if err := s.verifyAccounts(&input); err != nil {
		return nil, err
	}

	updated := buildTransaction(input)
	updated.Base = old.Base
	for i := range updated.Splits {
		updated.Splits[i].TransactionID = old.ID
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := applyBalanceEffect(tx, old, true); err != nil {
			return err
		}
		if err := tx.Where("transaction_id = ?", old.ID).Delete(&models.TransactionSplit{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(&updated).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return applyBalanceEffect(tx, &updated, false)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteTransaction deletes a transaction and reverts its balance effect.
func (s *transactionService) DeleteTransaction(transactionID string) error {
	transaction, err := s.GetTransactionByID(transactionID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := applyBalanceEffect(tx, transaction, true); err != nil {
			return err
		}
		if err := tx.Delete(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// applyBalanceEffect loads the accounts a transaction touches, applies (or
// reverts) the ledger effect against their latest balances, and persists
// them. Runs inside the caller's database transaction so the row change and
// the balance change commit together.
func applyBalanceEffect(tx *gorm.DB, transaction *models.Transaction, revert bool) error {
	ids := []uint{transaction.SourceAccountID}
	if transaction.TargetAccountID != nil {
		ids = append(ids, *transaction.TargetAccountID)
	}

	var accounts []models.Account
	if err := tx.Where("id IN ?", ids).Find(&accounts).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	byID := make(map[uint]*models.Account, len(accounts))
	for i := range accounts {
		byID[accounts[i].ID] = &accounts[i]
	}

	if revert {
		ledger.RevertEffect(byID, transaction)
	} else {
		ledger.ApplyEffect(byID, transaction)
	}

	for i := range accounts {
		if err := tx.Model(&accounts[i]).Update("balance", accounts[i].Balance).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return nil
}
