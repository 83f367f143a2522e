package ledger

import (
	"time"

	"moneta/internal/models"
)

// RecurringNoteSuffix marks generated occurrences. It is appended to the
// template's note, which defaults to empty.
const RecurringNoteSuffix = " (Recurring)"

// DueOccurrences scans txns for recurring templates and returns the
// occurrences they owe as of today: every due date on or before today that
// has no matching transaction yet. The first candidate strictly after today
// terminates each template's scan and is never generated.
//
// The function is pure and idempotent: inputs are not mutated, and running it
// again over the input set plus its own output yields nothing. Persisting the
// returned transactions together with their balance effects is the caller's
// job and must be atomic.
func DueOccurrences(txns []models.Transaction, today time.Time) []models.Transaction {
	var generated []models.Transaction
	for i := range txns {
		tmpl := &txns[i]
		if !tmpl.IsTemplate() {
			continue
		}

		// Successive steps advance from the previously calculated date,
		// but day clamping always references the template's original day.
		originalDay := tmpl.Date.Day()
		current := tmpl.Date
		for {
			next := NextDueDate(current, originalDay, tmpl.Recurrence)
			if !next.After(current) {
				// Defensive: a non-advancing frequency would spin forever.
				break
			}
			if afterDay(next, today) {
				break
			}
			if !occurrenceExists(txns, generated, tmpl, next) {
				generated = append(generated, newOccurrence(tmpl, next))
			}
			current = next
		}
	}
	return generated
}

// occurrenceExists reports whether a transaction matching the template's
// amount, category, and type already exists on the due date, in either the
// stored set or the occurrences generated earlier in this pass.
func occurrenceExists(existing, generated []models.Transaction, tmpl *models.Transaction, due time.Time) bool {
	match := func(tx *models.Transaction) bool {
		return tx.Amount.Equal(tmpl.Amount) &&
			tx.Category == tmpl.Category &&
			tx.Type == tmpl.Type &&
			sameDay(tx.Date, due)
	}
	for i := range existing {
		if existing[i].ID != tmpl.ID && match(&existing[i]) {
			return true
		}
	}
	for i := range generated {
		if match(&generated[i]) {
			return true
		}
	}
	return false
}

// newOccurrence copies the template into a concrete occurrence on the due
// date. The occurrence carries no recurrence, a fresh identity (assigned at
// persist time), and fresh split rows.
func newOccurrence(tmpl *models.Transaction, due time.Time) models.Transaction {
	var splits []models.TransactionSplit
	if len(tmpl.Splits) > 0 {
		splits = make([]models.TransactionSplit, 0, len(tmpl.Splits))
		for _, s := range tmpl.Splits {
			splits = append(splits, models.TransactionSplit{
				Amount:      s.Amount,
				Category:    s.Category,
				SubCategory: s.SubCategory,
			})
		}
	}

	var target *uint
	if tmpl.TargetAccountID != nil {
		id := *tmpl.TargetAccountID
		target = &id
	}

	return models.Transaction{
		Amount:          tmpl.Amount,
		Fee:             tmpl.Fee,
		Type:            tmpl.Type,
		SourceAccountID: tmpl.SourceAccountID,
		TargetAccountID: target,
		Category:        tmpl.Category,
		SubCategory:     tmpl.SubCategory,
		Date:            due,
		Note:            tmpl.Note + RecurringNoteSuffix,
		Recurrence:      models.RecurrenceNone,
		Splits:          splits,
	}
}
