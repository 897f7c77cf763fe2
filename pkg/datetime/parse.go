// Package datetime provides date and time utility functions.
package datetime

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/iwvelando/moneywiki/pkg/constants"
)

const (
	// DateLayout is the format expected on the CLI and in API payloads.
	DateLayout = constants.DateLayout

	day = 24 * time.Hour
)

// MustParseTime parses a date string using the given layout and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseTime(layout, dateStr string) time.Time {
	t, err := time.Parse(layout, dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseDate parses a YYYY-MM-DD date. An empty string yields the zero time
// and no error so that callers can treat a blank field as "not entered".
func ParseDate(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(DateLayout, trimmed)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return t, nil
}

// DaysInclusive counts calendar days from start through end, counting both
// ends. It returns 0 when either date is missing or end precedes start.
func DaysInclusive(start, end time.Time) int {
	if start.IsZero() || end.IsZero() {
		return 0
	}
	start = truncateDay(start)
	end = truncateDay(end)
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start)/day) + 1
}

// MonthsBefore returns the date the given number of calendar months earlier.
func MonthsBefore(date time.Time, months int) time.Time {
	return date.AddDate(0, -months, 0)
}

// TrailingWindowDays counts the inclusive days in the window that ends on end
// and starts the given number of calendar months earlier.
func TrailingWindowDays(end time.Time, months int) int {
	if end.IsZero() {
		return 0
	}
	return DaysInclusive(MonthsBefore(end, months), end)
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Date is a calendar date that marshals as YYYY-MM-DD.
type Date struct {
	time.Time
}

// NewDate wraps t as a Date.
func NewDate(t time.Time) Date {
	return Date{Time: t}
}

// MarshalJSON writes the date in DateLayout, or null when unset.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(strconv.Quote(d.Format(DateLayout))), nil
}

// UnmarshalJSON accepts a YYYY-MM-DD string, an empty string or null.
func (d *Date) UnmarshalJSON(data []byte) error {
	raw := string(data)
	if raw == "null" {
		d.Time = time.Time{}
		return nil
	}
	value, err := strconv.Unquote(raw)
	if err != nil {
		return fmt.Errorf("invalid date %s: expected a quoted string", raw)
	}
	t, err := ParseDate(value)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}
