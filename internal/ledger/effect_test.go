package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"moneta/internal/models"
)

func accountsWithBalances(balances map[uint]string) map[uint]*models.Account {
	out := make(map[uint]*models.Account, len(balances))
	for id, b := range balances {
		out[id] = &models.Account{ID: id, Type: models.AccountTypeBank, Balance: decimal.RequireFromString(b)}
	}
	return out
}

func assertBalance(t *testing.T, accounts map[uint]*models.Account, id uint, expected string) {
	t.Helper()
	if !accounts[id].Balance.Equal(decimal.RequireFromString(expected)) {
		t.Errorf("account %d: expected balance %s, got %s", id, expected, accounts[id].Balance)
	}
}

func TestApplyEffect(t *testing.T) {
	t.Run("expense subtracts from source", func(t *testing.T) {
		accounts := accountsWithBalances(map[uint]string{1: "100"})
		tx := &models.Transaction{Type: models.TransactionTypeExpense, SourceAccountID: 1, Amount: decimal.RequireFromString("30")}

		ApplyEffect(accounts, tx)
		assertBalance(t, accounts, 1, "70")
	})

	t.Run("income adds to source", func(t *testing.T) {
		accounts := accountsWithBalances(map[uint]string{1: "100"})
		tx := &models.Transaction{Type: models.TransactionTypeIncome, SourceAccountID: 1, Amount: decimal.RequireFromString("25.50")}

		ApplyEffect(accounts, tx)
		assertBalance(t, accounts, 1, "125.50")
	})

	t.Run("transfer moves amount and charges fee to source", func(t *testing.T) {
		accounts := accountsWithBalances(map[uint]string{1: "100", 2: "10"})
		target := uint(2)
		tx := &models.Transaction{
			Type:            models.TransactionTypeTransfer,
			SourceAccountID: 1,
			TargetAccountID: &target,
			Amount:          decimal.RequireFromString("50"),
			Fee:             decimal.RequireFromString("2.50"),
		}

		ApplyEffect(accounts, tx)
		assertBalance(t, accounts, 1, "47.50")
		assertBalance(t, accounts, 2, "60")
	})

	t.Run("missing account is skipped", func(t *testing.T) {
		accounts := accountsWithBalances(map[uint]string{1: "100"})
		target := uint(99)
		tx := &models.Transaction{
			Type:            models.TransactionTypeTransfer,
			SourceAccountID: 1,
			TargetAccountID: &target,
			Amount:          decimal.RequireFromString("50"),
		}

		ApplyEffect(accounts, tx)
		assertBalance(t, accounts, 1, "50")
	})
}

func TestRevertEffect(t *testing.T) {
	target := uint(2)
	transactions := []models.Transaction{
		{Type: models.TransactionTypeExpense, SourceAccountID: 1, Amount: decimal.RequireFromString("30"), Date: time.Now()},
		{Type: models.TransactionTypeIncome, SourceAccountID: 1, Amount: decimal.RequireFromString("75.25")},
		{Type: models.TransactionTypeTransfer, SourceAccountID: 1, TargetAccountID: &target, Amount: decimal.RequireFromString("40"), Fee: decimal.RequireFromString("1.75")},
	}

	// Revert is the exact negation: apply then revert restores every balance.
	for i := range transactions {
		accounts := accountsWithBalances(map[uint]string{1: "500", 2: "200"})
		ApplyEffect(accounts, &transactions[i])
		RevertEffect(accounts, &transactions[i])
		assertBalance(t, accounts, 1, "500")
		assertBalance(t, accounts, 2, "200")
	}
}

func TestEditAsRevertThenApply(t *testing.T) {
	accounts := accountsWithBalances(map[uint]string{1: "100"})
	old := &models.Transaction{Type: models.TransactionTypeExpense, SourceAccountID: 1, Amount: decimal.RequireFromString("30")}
	ApplyEffect(accounts, old)
	assertBalance(t, accounts, 1, "70")

	updated := &models.Transaction{Type: models.TransactionTypeExpense, SourceAccountID: 1, Amount: decimal.RequireFromString("45")}
	RevertEffect(accounts, old)
	ApplyEffect(accounts, updated)
	assertBalance(t, accounts, 1, "55")
}
