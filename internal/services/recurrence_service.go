package services

import (
	"sync/atomic"
	"time"

	"gorm.io/gorm"

	apperrors "moneta/internal/errors"
	"moneta/internal/ledger"
	"moneta/internal/logger"
	"moneta/internal/models"
)

// recurrenceService generates due occurrences from recurring templates.
// The checked flag is session-scoped and monotonic: once a scan has
// succeeded, re-observing the data does not trigger another one.
type recurrenceService struct {
	db      *gorm.DB
	checked atomic.Bool
}

// NewRecurrenceService creates a new RecurrenceServicer.
func NewRecurrenceService(db *gorm.DB) RecurrenceServicer {
	return &recurrenceService{db: db}
}

// EnsureGenerated runs the due-occurrence scan at most once per service
// lifetime. A failed scan clears the flag so the next data load can retry.
func (s *recurrenceService) EnsureGenerated(today time.Time) ([]models.Transaction, error) {
	if !s.checked.CompareAndSwap(false, true) {
		return nil, nil
	}
	generated, err := s.Run(today)
	if err != nil {
		s.checked.Store(false)
		return nil, err
	}
	return generated, nil
}

// Run scans all transactions for recurring templates and persists every
// missing occurrence due on or before today, together with its balance
// effect, in a single database transaction. All-or-nothing: a write failure
// mid-batch leaves no partial occurrences or balance mutations behind.
// Idempotent: a second run against the same today generates nothing.
func (s *recurrenceService) Run(today time.Time) ([]models.Transaction, error) {
	if today.IsZero() {
		today = time.Now()
	}

	var transactions []models.Transaction
	if err := s.db.Preload("Splits").Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	plan := ledger.DueOccurrences(transactions, today)
	if len(plan) == 0 {
		return []models.Transaction{}, nil
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for i := range plan {
			if err := tx.Create(&plan[i]).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			if err := applyBalanceEffect(tx, &plan[i], false); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Get().Infow("generated recurring occurrences", "count", len(plan))
	return plan, nil
}
