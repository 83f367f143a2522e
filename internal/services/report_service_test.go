package services

import (
	"testing"
	"time"

	"moneta/internal/models"
	"moneta/internal/testutil"
)

func TestSummary(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	rates := NewRateService(db, "USD", time.Minute)
	svc := NewReportService(db, rates)
	source := testutil.CreateTestAccount(t, db, models.AccountTypeBank)
	target := testutil.CreateTestAccount(t, db, models.AccountTypeWallet)

	testutil.CreateTestTransactionOn(t, db, source.ID, models.TransactionTypeIncome, dec("300"), time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC))
	testutil.CreateTestTransactionOn(t, db, source.ID, models.TransactionTypeExpense, dec("50"), time.Date(2023, 5, 3, 0, 0, 0, 0, time.UTC))

	transfer := &models.Transaction{
		Amount:          dec("100"),
		Fee:             dec("5"),
		Type:            models.TransactionTypeTransfer,
		SourceAccountID: source.ID,
		TargetAccountID: &target.ID,
		Category:        "Transfer",
		Date:            time.Date(2023, 5, 5, 0, 0, 0, 0, time.UTC),
	}
	if err := db.Create(transfer).Error; err != nil {
		t.Fatalf("failed to create transfer: %v", err)
	}

	t.Run("totals_with_transfer_fee_as_expense", func(t *testing.T) {
		summary, err := svc.Summary(nil, nil)
		testutil.AssertNoError(t, err)

		testutil.AssertDecimalEqual(t, summary.TotalIncome, "300")
		testutil.AssertDecimalEqual(t, summary.TotalExpense, "55")
		testutil.AssertDecimalEqual(t, summary.Net, "245")
		if summary.Currency != "USD" {
			t.Errorf("expected currency USD, got %s", summary.Currency)
		}
	})

	t.Run("date_window_excludes_outside_rows", func(t *testing.T) {
		from := time.Date(2023, 5, 2, 0, 0, 0, 0, time.UTC)
		to := time.Date(2023, 5, 4, 0, 0, 0, 0, time.UTC)

		summary, err := svc.Summary(&from, &to)
		testutil.AssertNoError(t, err)

		testutil.AssertDecimalEqual(t, summary.TotalIncome, "0")
		testutil.AssertDecimalEqual(t, summary.TotalExpense, "50")
	})
}

func TestBreakdown(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	rates := NewRateService(db, "USD", time.Minute)
	svc := NewReportService(db, rates)
	txSvc := NewTransactionService(db)
	source := testutil.CreateTestAccountWithBalance(t, db, models.AccountTypeBank, dec("1000"))

	_, err := txSvc.CreateTransaction(TransactionInput{
		Amount:          dec("100"),
		Type:            models.TransactionTypeExpense,
		SourceAccountID: source.ID,
		Category:        "Shopping",
		Splits: []models.TransactionSplit{
			{Amount: dec("60"), Category: "Food"},
			{Amount: dec("40"), Category: "Entertainment", SubCategory: "Movie"},
		},
	})
	testutil.AssertNoError(t, err)

	t.Run("by_category_with_splits", func(t *testing.T) {
		breakdown, err := svc.Breakdown(true, "")
		testutil.AssertNoError(t, err)

		testutil.AssertDecimalEqual(t, breakdown["Food"], "60")
		testutil.AssertDecimalEqual(t, breakdown["Entertainment - Movie"], "40")
	})

	t.Run("by_account_type", func(t *testing.T) {
		breakdown, err := svc.Breakdown(false, "")
		testutil.AssertNoError(t, err)

		testutil.AssertDecimalEqual(t, breakdown["Bank"], "100")
	})

	t.Run("display_currency_conversion", func(t *testing.T) {
		_, err := rates.UpsertRate("EUR", 0.50)
		testutil.AssertNoError(t, err)

		breakdown, err := svc.Breakdown(true, "EUR")
		testutil.AssertNoError(t, err)

		testutil.AssertDecimalEqual(t, breakdown["Food"], "30")
		testutil.AssertDecimalEqual(t, breakdown["Entertainment - Movie"], "20")
	})
}

func TestMonthly(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	rates := NewRateService(db, "USD", time.Minute)
	svc := NewReportService(db, rates)
	source := testutil.CreateTestAccount(t, db, models.AccountTypeBank)

	now := time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC)
	testutil.CreateTestTransactionOn(t, db, source.ID, models.TransactionTypeIncome, dec("1000"), time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC))
	testutil.CreateTestTransactionOn(t, db, source.ID, models.TransactionTypeExpense, dec("200"), time.Date(2023, 6, 2, 0, 0, 0, 0, time.UTC))
	// Older than the window; must not appear anywhere.
	testutil.CreateTestTransactionOn(t, db, source.ID, models.TransactionTypeExpense, dec("999"), time.Date(2022, 12, 31, 0, 0, 0, 0, time.UTC))

	months, err := svc.Monthly(now)
	testutil.AssertNoError(t, err)

	if len(months) != 6 {
		t.Fatalf("expected 6 buckets, got %d", len(months))
	}
	if months[0].Month != "Jan 2023" || months[5].Month != "Jun 2023" {
		t.Errorf("expected window Jan 2023..Jun 2023, got %s..%s", months[0].Month, months[5].Month)
	}
	testutil.AssertDecimalEqual(t, months[3].Income, "1000")
	testutil.AssertDecimalEqual(t, months[5].Expense, "200")
	for _, m := range months {
		if m.Expense.Equal(dec("999")) {
			t.Error("expected the out-of-window expense to be ignored")
		}
	}
}
