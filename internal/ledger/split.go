package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	apperrors "moneta/internal/errors"
	"moneta/internal/models"
)

// SplitTolerance is the maximum allowed difference between a transaction's
// amount and the sum of its splits, in base currency units.
var SplitTolerance = decimal.NewFromFloat(0.01)

// ValidateSplits checks that the split amounts add up to the transaction
// amount within SplitTolerance. An empty split list is always valid. The
// check runs at submission time only; stored splits are not re-validated.
func ValidateSplits(amount decimal.Decimal, splits []models.TransactionSplit) error {
	if len(splits) == 0 {
		return nil
	}
	sum := decimal.Zero
	for _, s := range splits {
		sum = sum.Add(s.Amount)
	}
	if sum.Sub(amount).Abs().GreaterThan(SplitTolerance) {
		return apperrors.WithMessage(apperrors.ErrSplitMismatch,
			fmt.Sprintf("splits sum to %s but the transaction amount is %s", sum, amount))
	}
	return nil
}
