package services

import (
	"testing"
	"time"

	"moneta/internal/models"
	"moneta/internal/testutil"
)

func TestRecurrenceRun(t *testing.T) {
	t.Run("generates_due_occurrences_with_balance_effects", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewRecurrenceService(db)
		accounts := NewAccountService(db)
		source := testutil.CreateTestAccountWithBalance(t, db, models.AccountTypeBank, dec("1000"))

		testutil.CreateTestTemplate(t, db, source.ID, models.RecurrenceMonthly, dec("100"),
			time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC))

		generated, err := svc.Run(time.Date(2023, 3, 20, 0, 0, 0, 0, time.UTC))
		testutil.AssertNoError(t, err)

		if len(generated) != 2 {
			t.Fatalf("expected 2 occurrences, got %d", len(generated))
		}
		for _, tx := range generated {
			if tx.ID == "" {
				t.Error("expected persisted occurrences to carry IDs")
			}
			if tx.Recurrence != models.RecurrenceNone {
				t.Errorf("expected occurrence recurrence none, got %s", tx.Recurrence)
			}
		}

		// Two expense occurrences of 100 each.
		testutil.AssertDecimalEqual(t, reloadBalance(t, accounts, source.ID), "800")
	})

	t.Run("second_run_generates_nothing", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewRecurrenceService(db)
		accounts := NewAccountService(db)
		source := testutil.CreateTestAccountWithBalance(t, db, models.AccountTypeBank, dec("1000"))

		testutil.CreateTestTemplate(t, db, source.ID, models.RecurrenceMonthly, dec("100"),
			time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC))

		today := time.Date(2023, 3, 20, 0, 0, 0, 0, time.UTC)
		first, err := svc.Run(today)
		testutil.AssertNoError(t, err)
		if len(first) != 2 {
			t.Fatalf("expected 2 occurrences on first run, got %d", len(first))
		}

		second, err := svc.Run(today)
		testutil.AssertNoError(t, err)
		if len(second) != 0 {
			t.Fatalf("expected idempotent second run, got %d occurrences", len(second))
		}

		testutil.AssertDecimalEqual(t, reloadBalance(t, accounts, source.ID), "800")
	})

	t.Run("no_templates_no_occurrences", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewRecurrenceService(db)
		source := testutil.CreateTestAccount(t, db, models.AccountTypeBank)

		testutil.CreateTestTransaction(t, db, source.ID, models.TransactionTypeExpense, dec("10"))

		generated, err := svc.Run(time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC))
		testutil.AssertNoError(t, err)
		if len(generated) != 0 {
			t.Fatalf("expected nothing, got %d", len(generated))
		}
	})

	t.Run("occurrences_copy_template_splits", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewRecurrenceService(db)
		txSvc := NewTransactionService(db)
		source := testutil.CreateTestAccountWithBalance(t, db, models.AccountTypeBank, dec("1000"))

		tmpl := testutil.CreateTestTemplate(t, db, source.ID, models.RecurrenceMonthly, dec("100"),
			time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC))
		db.Create(&models.TransactionSplit{TransactionID: tmpl.ID, Amount: dec("60"), Category: "Food"})
		db.Create(&models.TransactionSplit{TransactionID: tmpl.ID, Amount: dec("40"), Category: "Entertainment"})

		generated, err := svc.Run(time.Date(2023, 2, 20, 0, 0, 0, 0, time.UTC))
		testutil.AssertNoError(t, err)
		if len(generated) != 1 {
			t.Fatalf("expected 1 occurrence, got %d", len(generated))
		}

		loaded, err := txSvc.GetTransactionByID(generated[0].ID)
		testutil.AssertNoError(t, err)
		if len(loaded.Splits) != 2 {
			t.Errorf("expected 2 copied splits, got %d", len(loaded.Splits))
		}
	})
}

func TestEnsureGenerated(t *testing.T) {
	t.Run("runs_once_per_service_lifetime", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewRecurrenceService(db)
		source := testutil.CreateTestAccountWithBalance(t, db, models.AccountTypeBank, dec("1000"))

		testutil.CreateTestTemplate(t, db, source.ID, models.RecurrenceMonthly, dec("100"),
			time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC))

		today := time.Date(2023, 2, 20, 0, 0, 0, 0, time.UTC)
		first, err := svc.EnsureGenerated(today)
		testutil.AssertNoError(t, err)
		if len(first) != 1 {
			t.Fatalf("expected 1 occurrence from the first check, got %d", len(first))
		}

		second, err := svc.EnsureGenerated(today)
		testutil.AssertNoError(t, err)
		if second != nil {
			t.Fatalf("expected the checked gate to skip the scan, got %d occurrences", len(second))
		}
	})

	t.Run("separate_service_instances_check_independently", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		source := testutil.CreateTestAccountWithBalance(t, db, models.AccountTypeBank, dec("1000"))

		testutil.CreateTestTemplate(t, db, source.ID, models.RecurrenceMonthly, dec("100"),
			time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC))

		today := time.Date(2023, 2, 20, 0, 0, 0, 0, time.UTC)
		first, err := NewRecurrenceService(db).EnsureGenerated(today)
		testutil.AssertNoError(t, err)
		if len(first) != 1 {
			t.Fatalf("expected 1 occurrence, got %d", len(first))
		}

		// A fresh instance scans again but the stored set suppresses duplicates.
		second, err := NewRecurrenceService(db).EnsureGenerated(today)
		testutil.AssertNoError(t, err)
		if len(second) != 0 {
			t.Fatalf("expected no duplicates from a fresh instance, got %d", len(second))
		}
	})
}
