// Package daterange computes half-open [start, end) day windows from a
// reference instant and a signed day count.
package daterange

import (
	"errors"
	"fmt"
	"time"
)

const (
	// DateLayout is the accepted --date form, interpreted as local midnight.
	DateLayout = "2006-01-02"

	// DateTimeLayout is the accepted --datetime form. The trailing Z is
	// matched literally; values are local wall-clock time.
	DateTimeLayout = "2006-01-02T15:04:05.000Z"
)

// Error variables for reference parsing.
var (
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidDateTime = errors.New("invalid datetime")
)

// Range is a half-open window: Start is inclusive, End exclusive.
type Range struct {
	Start time.Time
	End   time.Time
}

// Compute derives the window from a reference instant and a signed day
// count. A negative count treats the reference as the end and walks
// backward; zero yields a zero-width window that matches nothing.
// Start never exceeds End.
func Compute(ref time.Time, days int) Range {
	if days < 0 {
		return Range{Start: ref.AddDate(0, 0, days), End: ref}
	}

	return Range{Start: ref, End: ref.AddDate(0, 0, days)}
}

// Today returns the current date at local midnight, the default reference.
func Today() time.Time {
	now := time.Now()

	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
}

// ParseDate parses a YYYY-MM-DD value as local midnight.
func ParseDate(value string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s", ErrInvalidDate, value)
	}

	return t, nil
}

// ParseDateTime parses a YYYY-MM-DDTHH:MM:SS.mmmZ value. No timezone
// conversion is performed; the value is taken as local wall-clock time.
func ParseDateTime(value string) (time.Time, error) {
	t, err := time.ParseInLocation(DateTimeLayout, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s", ErrInvalidDateTime, value)
	}

	return t, nil
}
