// utils/dates.go
package utils

import (
	"errors"
	"fmt"
	"time"
)

// CalendarDateLayout is the storage encoding for recurring dates.
const CalendarDateLayout = "2006-01-02"

// ErrInvalidDateFormat marks stored date strings that cannot be parsed.
// Callers distinguish it from "no reminder due" so bad data never fails silently.
var ErrInvalidDateFormat = errors.New("invalid date format")

// InvalidDateError carries the offending value alongside ErrInvalidDateFormat.
type InvalidDateError struct {
	Value string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date format %q, expected YYYY-MM-DD", e.Value)
}

func (e *InvalidDateError) Unwrap() error {
	return ErrInvalidDateFormat
}

// ParseCalendarDate parses a stored "YYYY-MM-DD" value into a UTC midnight
// time. All date math in the reminder core goes through UTC calendar days;
// stored dates are timezone-less and must never round-trip through a local
// timestamp.
func ParseCalendarDate(value string) (time.Time, error) {
	t, err := time.ParseInLocation(CalendarDateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, &InvalidDateError{Value: value}
	}
	return t, nil
}

// BeginningOfDay truncates t to UTC midnight of its calendar day.
func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func DaysBetween(start, end time.Time) int {
	start = BeginningOfDay(start)
	end = BeginningOfDay(end)
	return int(end.Sub(start).Hours() / 24)
}

// NextOccurrence returns the next annual occurrence of stored's month/day on
// or after reference: this year's date if it hasn't passed yet (today counts
// as not passed), otherwise next year's. The stored year is ignored.
//
// Feb 29 in a non-leap year normalizes to Mar 1, which is the policy here:
// the reminder fires for Mar 1 in those years rather than being skipped.
func NextOccurrence(stored, reference time.Time) time.Time {
	_, month, day := stored.UTC().Date()
	today := BeginningOfDay(reference)

	candidate := time.Date(today.Year(), month, day, 0, 0, 0, 0, time.UTC)
	if candidate.Before(today) {
		candidate = time.Date(today.Year()+1, month, day, 0, 0, 0, 0, time.UTC)
	}
	return candidate
}
