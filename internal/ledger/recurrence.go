// Package ledger is the financial computation core: recurrence date
// arithmetic, idempotent generation of due occurrences, balance effect rules,
// split validation, and aggregation over transaction sets. Everything here is
// pure — no I/O, no clocks, no mutation of inputs. Persistence and HTTP live
// in the services and handlers packages.
package ledger

import (
	"time"

	"moneta/internal/models"
)

// NextDueDate returns the next occurrence date after current for the given
// recurrence frequency. It is total: a frequency of none returns current
// unchanged, so callers must not loop on none.
//
// originalDay is the day-of-month of the template's original date. Monthly
// and yearly steps clamp to min(originalDay, last day of the target month),
// so a template dated the 31st re-attempts day 31 on every step instead of
// settling on 28 after the first February, and Feb 29 maps to Feb 28 on
// non-leap target years.
func NextDueDate(current time.Time, originalDay int, freq models.Recurrence) time.Time {
	switch freq {
	case models.RecurrenceDaily:
		return current.AddDate(0, 0, 1)
	case models.RecurrenceWeekly:
		return current.AddDate(0, 0, 7)
	case models.RecurrenceMonthly:
		return clampedDate(current.Year(), current.Month()+1, originalDay, current)
	case models.RecurrenceYearly:
		return clampedDate(current.Year()+1, current.Month(), originalDay, current)
	}
	return current
}

// clampedDate builds a date in the given year/month with the day clamped to
// the month's length, preserving the clock and location of ref. The month may
// be out of range (January+12 or December+1); it is normalized first.
func clampedDate(year int, month time.Month, day int, ref time.Time) time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, ref.Location())
	if last := daysInMonth(first.Year(), first.Month(), ref.Location()); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day,
		ref.Hour(), ref.Minute(), ref.Second(), ref.Nanosecond(), ref.Location())
}

// daysInMonth returns the number of days in the given month. Day zero of the
// following month normalizes to the last day of this one.
func daysInMonth(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

// sameDay reports whether a and b fall on the same calendar day.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// afterDay reports whether a falls on a later calendar day than b,
// ignoring the time of day.
func afterDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	if ay != by {
		return ay > by
	}
	if am != bm {
		return am > bm
	}
	return ad > bd
}
