package models

import "testing"

func TestEnumCodesRoundTrip(t *testing.T) {
	t.Run("account_types", func(t *testing.T) {
		for typ := range accountTypeCodes {
			v, err := typ.Value()
			if err != nil {
				t.Fatalf("%s: %v", typ, err)
			}
			var back AccountType
			if err := back.Scan(v); err != nil {
				t.Fatalf("%s: %v", typ, err)
			}
			if back != typ {
				t.Errorf("expected %s, got %s", typ, back)
			}
		}
	})

	t.Run("transaction_types", func(t *testing.T) {
		for typ := range transactionTypeCodes {
			v, err := typ.Value()
			if err != nil {
				t.Fatalf("%s: %v", typ, err)
			}
			var back TransactionType
			if err := back.Scan(v); err != nil {
				t.Fatalf("%s: %v", typ, err)
			}
			if back != typ {
				t.Errorf("expected %s, got %s", typ, back)
			}
		}
	})

	t.Run("recurrences", func(t *testing.T) {
		for rec := range recurrenceCodes {
			v, err := rec.Value()
			if err != nil {
				t.Fatalf("%s: %v", rec, err)
			}
			var back Recurrence
			if err := back.Scan(v); err != nil {
				t.Fatalf("%s: %v", rec, err)
			}
			if back != rec {
				t.Errorf("expected %s, got %s", rec, back)
			}
		}
	})
}

func TestEnumCodeEdgeCases(t *testing.T) {
	t.Run("empty_recurrence_stores_as_none", func(t *testing.T) {
		v, err := Recurrence("").Value()
		if err != nil {
			t.Fatal(err)
		}
		if v.(int64) != 0 {
			t.Errorf("expected code 0, got %v", v)
		}
	})

	t.Run("unknown_value_rejected", func(t *testing.T) {
		if _, err := AccountType("brokerage").Value(); err == nil {
			t.Error("expected an error for an unmapped account type")
		}
	})

	t.Run("scan_accepts_byte_and_string_codes", func(t *testing.T) {
		var typ TransactionType
		if err := typ.Scan([]byte("2")); err != nil {
			t.Fatal(err)
		}
		if typ != TransactionTypeIncome {
			t.Errorf("expected income, got %s", typ)
		}
		if err := typ.Scan("1"); err != nil {
			t.Fatal(err)
		}
		if typ != TransactionTypeTransfer {
			t.Errorf("expected transfer, got %s", typ)
		}
	})

	t.Run("unknown_code_rejected", func(t *testing.T) {
		var rec Recurrence
		if err := rec.Scan(int64(99)); err == nil {
			t.Error("expected an error for an unmapped code")
		}
	})
}
