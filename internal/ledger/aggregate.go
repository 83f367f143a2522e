package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"moneta/internal/models"
)

// TransferFeesKey is the fixed breakdown key transfer fees accumulate under
// in category breakdowns.
const TransferFeesKey = "Transfer Fees"

// monthlyWindow is the number of month buckets MonthlyComparison produces.
const monthlyWindow = 6

// MonthlyData is one calendar-month bucket of a monthly comparison. Derived
// only, never persisted.
type MonthlyData struct {
	Month   string          `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// TotalIncome sums the amounts of all income transactions.
func TotalIncome(txns []models.Transaction) decimal.Decimal {
	total := decimal.Zero
	for i := range txns {
		if txns[i].Type == models.TransactionTypeIncome {
			total = total.Add(txns[i].Amount)
		}
	}
	return total
}

// TotalExpense sums the amounts of all expense transactions plus the fees of
// all transfers. Fees are an expense-equivalent cost regardless of splits.
func TotalExpense(txns []models.Transaction) decimal.Decimal {
	total := decimal.Zero
	for i := range txns {
		switch txns[i].Type {
		case models.TransactionTypeExpense:
			total = total.Add(txns[i].Amount)
		case models.TransactionTypeTransfer:
			total = total.Add(txns[i].Fee)
		}
	}
	return total
}

// Breakdown computes a keyed spending breakdown over txns.
//
// With byCategory true, expense transactions contribute per split when splits
// are present ("Category" or "Category - SubCategory" keys), otherwise as a
// whole, and fee-bearing transfers contribute their fee under
// TransferFeesKey. Otherwise transactions group under the capitalized type
// label of their source account; unresolved accounts fall back to the
// synthetic Unknown placeholder and never fail.
//
// Keys are unique, values are cumulative sums, and no ordering is implied;
// callers sort by value for presentation.
func Breakdown(txns []models.Transaction, accounts map[uint]models.Account, byCategory bool) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	for i := range txns {
		tx := &txns[i]
		if byCategory {
			switch tx.Type {
			case models.TransactionTypeExpense:
				if len(tx.Splits) > 0 {
					for _, s := range tx.Splits {
						addTo(out, categoryKey(s.Category, s.SubCategory), s.Amount)
					}
				} else {
					addTo(out, categoryKey(tx.Category, tx.SubCategory), tx.Amount)
				}
			case models.TransactionTypeTransfer:
				if tx.Fee.IsPositive() {
					addTo(out, TransferFeesKey, tx.Fee)
				}
			}
			continue
		}

		var amount decimal.Decimal
		switch tx.Type {
		case models.TransactionTypeExpense:
			amount = tx.Amount
		case models.TransactionTypeTransfer:
			if !tx.Fee.IsPositive() {
				continue
			}
			amount = tx.Fee
		default:
			continue
		}

		account, ok := accounts[tx.SourceAccountID]
		if !ok {
			account = models.UnknownAccount()
		}
		addTo(out, account.Type.Label(), amount)
	}
	return out
}

// MonthlyComparison accumulates income and expense per calendar month over a
// six-month window ending at now's month, oldest bucket first. Transfer fees
// count toward expense; transactions outside the window are ignored.
func MonthlyComparison(txns []models.Transaction, now time.Time) []MonthlyData {
	anchor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).
		AddDate(0, -(monthlyWindow - 1), 0)

	buckets := make([]MonthlyData, monthlyWindow)
	for i := range buckets {
		buckets[i] = MonthlyData{
			Month:   anchor.AddDate(0, i, 0).Format("Jan 2006"),
			Income:  decimal.Zero,
			Expense: decimal.Zero,
		}
	}

	for i := range txns {
		tx := &txns[i]
		idx := (tx.Date.Year()-anchor.Year())*12 + int(tx.Date.Month()-anchor.Month())
		if idx < 0 || idx >= monthlyWindow {
			continue
		}
		switch tx.Type {
		case models.TransactionTypeIncome:
			buckets[idx].Income = buckets[idx].Income.Add(tx.Amount)
		case models.TransactionTypeExpense:
			buckets[idx].Expense = buckets[idx].Expense.Add(tx.Amount)
		case models.TransactionTypeTransfer:
			buckets[idx].Expense = buckets[idx].Expense.Add(tx.Fee)
		}
	}
	return buckets
}

func categoryKey(category, subCategory string) string {
	if subCategory != "" {
		return category + " - " + subCategory
	}
	return category
}

func addTo(m map[string]decimal.Decimal, key string, amount decimal.Decimal) {
	if cur, ok := m[key]; ok {
		m[key] = cur.Add(amount)
		return
	}
	m[key] = amount
}
