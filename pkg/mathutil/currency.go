// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/moneywiki/pkg/constants"
	"github.com/shopspring/decimal"
)

// WonTolerance is the tolerance for won comparisons. Amounts are whole won,
// so anything within one unit is the same displayed value.
const WonTolerance = 1.0

// RoundWon rounds a value to a whole won, half away from zero.
func RoundWon(val float64) float64 {
	if !IsFinite(val) {
		return 0
	}
	return decimal.NewFromFloat(val).Round(0).InexactFloat64()
}

// SumWon adds won amounts without accumulating float drift.
func SumWon(values ...float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		if IsFinite(v) {
			total = total.Add(decimal.NewFromFloat(v))
		}
	}
	return total.InexactFloat64()
}

// IsFinite reports whether val is neither NaN nor an infinity.
func IsFinite(val float64) bool {
	return !math.IsNaN(val) && !math.IsInf(val, 0)
}

// NonNegative maps negative and non-finite values to zero.
func NonNegative(val float64) float64 {
	if !IsFinite(val) || val < 0 {
		return 0
	}
	return val
}

// Clamp bounds val to [floor, cap]. When floor > cap the floor wins.
func Clamp(val, floor, cap float64) float64 {
	if val > cap {
		val = cap
	}
	if val < floor {
		val = floor
	}
	return val
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// Min returns the minimum of two float64 values
func Min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// Max returns the maximum of two float64 values
func Max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// ApplyPercentage applies a percentage to a value
func ApplyPercentage(value, percentage float64) float64 {
	return value * (percentage / constants.PercentageMultiplier)
}

// Percentage calculates what percentage value is of total
func Percentage(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return (value / total) * constants.PercentageMultiplier
}
