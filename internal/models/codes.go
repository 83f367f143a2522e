package models

import (
	"database/sql/driver"
	"fmt"
	"strconv"
)

// Enum values are persisted as explicit integer codes rather than strings.
// The mapping tables below are the single source of truth for storage codes;
// they are independent of declaration order, so adding or reordering variants
// in Go never renumbers existing rows.

var accountTypeCodes = map[AccountType]int64{
	AccountTypeBank:   0,
	AccountTypeWallet: 1,
	AccountTypeCredit: 2,
	AccountTypeCash:   3,
}

var transactionTypeCodes = map[TransactionType]int64{
	TransactionTypeExpense:  0,
	TransactionTypeTransfer: 1,
	TransactionTypeIncome:   2,
}

var recurrenceCodes = map[Recurrence]int64{
	RecurrenceNone:    0,
	RecurrenceDaily:   1,
	RecurrenceWeekly:  2,
	RecurrenceMonthly: 3,
	RecurrenceYearly:  4,
}

var (
	accountTypesByCode     = invert(accountTypeCodes)
	transactionTypesByCode = invert(transactionTypeCodes)
	recurrencesByCode      = invert(recurrenceCodes)
)

func invert[T comparable](codes map[T]int64) map[int64]T {
	out := make(map[int64]T, len(codes))
	for v, c := range codes {
		out[c] = v
	}
	return out
}

// decodeCode coerces the driver value into an int64 code. Some drivers hand
// integer columns back as []byte or string.
func decodeCode(value interface{}) (int64, error) {
	switch v := value.(type) {
	case nil:
		return 0, nil
	case int64:
		return v, nil
	case []byte:
		return strconv.ParseInt(string(v), 10, 64)
	case string:
		return strconv.ParseInt(v, 10, 64)
	}
	return 0, fmt.Errorf("unsupported enum column value %T", value)
}

// Value implements driver.Valuer for AccountType.
func (t AccountType) Value() (driver.Value, error) {
	code, ok := accountTypeCodes[t]
	if !ok {
		return nil, fmt.Errorf("unknown account type %q", string(t))
	}
	return code, nil
}

// Scan implements sql.Scanner for AccountType.
func (t *AccountType) Scan(value interface{}) error {
	code, err := decodeCode(value)
	if err != nil {
		return err
	}
	decoded, ok := accountTypesByCode[code]
	if !ok {
		return fmt.Errorf("unknown account type code %d", code)
	}
	*t = decoded
	return nil
}

// Value implements driver.Valuer for TransactionType.
func (t TransactionType) Value() (driver.Value, error) {
	code, ok := transactionTypeCodes[t]
	if !ok {
		return nil, fmt.Errorf("unknown transaction type %q", string(t))
	}
	return code, nil
}

// Scan implements sql.Scanner for TransactionType.
func (t *TransactionType) Scan(value interface{}) error {
	code, err := decodeCode(value)
	if err != nil {
		return err
	}
	decoded, ok := transactionTypesByCode[code]
	if !ok {
		return fmt.Errorf("unknown transaction type code %d", code)
	}
	*t = decoded
	return nil
}

// Value implements driver.Valuer for Recurrence. The empty string is treated
// as none so zero-valued structs round-trip.
func (r Recurrence) Value() (driver.Value, error) {
	if r == "" {
		r = RecurrenceNone
	}
	code, ok := recurrenceCodes[r]
	if !ok {
		return nil, fmt.Errorf("unknown recurrence %q", string(r))
	}
	return code, nil
}

// Scan implements sql.Scanner for Recurrence.
func (r *Recurrence) Scan(value interface{}) error {
	code, err := decodeCode(value)
	if err != nil {
		return err
	}
	decoded, ok := recurrencesByCode[code]
	if !ok {
		return fmt.Errorf("unknown recurrence code %d", code)
	}
	*r = decoded
	return nil
}
