package ledger

import "moneta/internal/models"

// ApplyEffect adjusts account balances for a transaction's forward effect:
//
//	expense:  source -= amount
//	income:   source += amount
//	transfer: source -= amount + fee, target += amount
//
// Accounts missing from the map are skipped; balance effects assume the
// surrounding system serializes writes to a given account, so the map must
// hold the latest known balances.
func ApplyEffect(accounts map[uint]*models.Account, tx *models.Transaction) {
	switch tx.Type {
	case models.TransactionTypeExpense:
		if a := accounts[tx.SourceAccountID]; a != nil {
			a.Balance = a.Balance.Sub(tx.Amount)
		}
	case models.TransactionTypeIncome:
		if a := accounts[tx.SourceAccountID]; a != nil {
			a.Balance = a.Balance.Add(tx.Amount)
		}
	case models.TransactionTypeTransfer:
		if a := accounts[tx.SourceAccountID]; a != nil {
			a.Balance = a.Balance.Sub(tx.Amount.Add(tx.Fee))
		}
		if tx.TargetAccountID != nil {
			if a := accounts[*tx.TargetAccountID]; a != nil {
				a.Balance = a.Balance.Add(tx.Amount)
			}
		}
	}
}

// RevertEffect applies the exact negation of ApplyEffect, using the
// transaction being removed. Editing a transaction is revert-old then
// apply-new, computed against the latest known balances.
func RevertEffect(accounts map[uint]*models.Account, tx *models.Transaction) {
	switch tx.Type {
	case models.TransactionTypeExpense:
		if a := accounts[tx.SourceAccountID]; a != nil {
			a.Balance = a.Balance.Add(tx.Amount)
		}
	case models.TransactionTypeIncome:
		if a := accounts[tx.SourceAccountID]; a != nil {
			a.Balance = a.Balance.Sub(tx.Amount)
		}
	case models.TransactionTypeTransfer:
		if a := accounts[tx.SourceAccountID]; a != nil {
			a.Balance = a.Balance.Add(tx.Amount.Add(tx.Fee))
		}
		if tx.TargetAccountID != nil {
			if a := accounts[*tx.TargetAccountID]; a != nil {
				a.Balance = a.Balance.Sub(tx.Amount)
			}
		}
	}
}
