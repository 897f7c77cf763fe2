package validation

import (
	"errors"
	"fmt"
	"time"

	"github.com/iwvelando/moneywiki/pkg/constants"
	"github.com/iwvelando/moneywiki/pkg/mathutil"
)

// ErrNonFinite is returned for NaN or infinite numeric input.
var ErrNonFinite = errors.New("value must be a finite number")

// ErrOutOfRange is returned for input outside an accepted range.
var ErrOutOfRange = errors.New("value out of range")

// Field names a numeric input for error reporting.
type Field struct {
	Name  string
	Value float64
}

// RequireFinite rejects the first NaN or infinite field.
func RequireFinite(fields ...Field) error {
	for _, f := range fields {
		if !mathutil.IsFinite(f.Value) {
			return fmt.Errorf("%s: %w", f.Name, ErrNonFinite)
		}
	}
	return nil
}

// ValidateLoanMonths bounds a repayment term to the schedule limit.
func ValidateLoanMonths(months int) error {
	if months > constants.MaxLoanPeriods {
		return fmt.Errorf("months %d exceeds %d: %w", months, constants.MaxLoanPeriods, ErrOutOfRange)
	}
	return nil
}

// ValidateLoanYears bounds a repayment term given in years.
func ValidateLoanYears(years int) error {
	if years > constants.MaxLoanYears {
		return fmt.Errorf("loan years %d exceeds %d: %w", years, constants.MaxLoanYears, ErrOutOfRange)
	}
	return nil
}

// ValidateYears bounds a growth horizon to the comparison-table limit.
func ValidateYears(years int) error {
	if years > constants.MaxInterestYears {
		return fmt.Errorf("years %d exceeds %d: %w", years, constants.MaxInterestYears, ErrOutOfRange)
	}
	return nil
}

// ValidateWorkMonths bounds a part-time worker's months of service.
func ValidateWorkMonths(months int) error {
	if months > constants.MaxWorkMonths {
		return fmt.Errorf("work months %d exceeds %d: %w", months, constants.MaxWorkMonths, ErrOutOfRange)
	}
	return nil
}

// ValidateWorkDays bounds a daily worker's days of service.
func ValidateWorkDays(days int) error {
	if days > constants.MaxWorkDays {
		return fmt.Errorf("work days %d exceeds %d: %w", days, constants.MaxWorkDays, ErrOutOfRange)
	}
	return nil
}

// ValidateDateRange checks that an employment period ends on or after it
// starts. Missing dates pass; the calculators treat them as not entered.
func ValidateDateRange(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return nil
	}
	if end.Before(start) {
		return fmt.Errorf("end date %s precedes start date %s: %w",
			end.Format(constants.DateLayout), start.Format(constants.DateLayout), ErrOutOfRange)
	}
	return nil
}
