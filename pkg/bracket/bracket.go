// Package bracket evaluates progressive rate tables such as income-tax
// brackets, and looks up tiered rates from the same table shape.
package bracket

import (
	"errors"
	"fmt"
	"math"

	"github.com/iwvelando/moneywiki/pkg/mathutil"
)

var (
	// ErrEmptyTable is returned when a table has no tiers.
	ErrEmptyTable = errors.New("bracket table has no tiers")

	// ErrNotAscending is returned when upper bounds do not strictly increase.
	ErrNotAscending = errors.New("bracket upper bounds must strictly increase")

	// ErrBoundedLastTier is returned when the last tier has a finite upper bound.
	ErrBoundedLastTier = errors.New("last bracket tier must be unbounded")
)

// Unbounded is the upper bound of the final tier.
var Unbounded = math.Inf(1)

// baseTolerance is how far a supplied base may drift from the derived one.
const baseTolerance = 1.0

// Tier is one row of a bracket table. Base is the amount accrued by all
// lower tiers at this tier's lower bound.
type Tier struct {
	UpperBound float64
	Rate       float64
	Base       float64
}

// Table is a validated, ascending sequence of tiers. The zero value is an
// empty table that evaluates everything to 0.
type Table struct {
	tiers []Tier
}

// New validates tiers and returns a Table. Bases are derived from the lower
// tiers; a non-zero supplied base must agree with the derived one.
func New(tiers []Tier) (Table, error) {
	if len(tiers) == 0 {
		return Table{}, ErrEmptyTable
	}

	out := make([]Tier, len(tiers))
	lower, base := 0.0, 0.0
	for i, tier := range tiers {
		if math.IsNaN(tier.UpperBound) || !mathutil.IsFinite(tier.Rate) {
			return Table{}, fmt.Errorf("tier %d: non-finite bound or rate", i)
		}
		if tier.Rate < 0 {
			return Table{}, fmt.Errorf("tier %d: negative rate %v", i, tier.Rate)
		}
		if tier.UpperBound <= lower {
			return Table{}, fmt.Errorf("tier %d (upper bound %v): %w", i, tier.UpperBound, ErrNotAscending)
		}
		last := i == len(tiers)-1
		if last && !math.IsInf(tier.UpperBound, 1) {
			return Table{}, ErrBoundedLastTier
		}
		if !last && math.IsInf(tier.UpperBound, 1) {
			return Table{}, fmt.Errorf("tier %d: only the last tier may be unbounded", i)
		}
		if tier.Base != 0 && !mathutil.WithinTolerance(tier.Base, base, baseTolerance) {
			return Table{}, fmt.Errorf("tier %d: base %v does not match accrued %v", i, tier.Base, base)
		}

		out[i] = Tier{UpperBound: tier.UpperBound, Rate: tier.Rate, Base: base}
		if !last {
			base += (tier.UpperBound - lower) * tier.Rate
			lower = tier.UpperBound
		}
	}

	return Table{tiers: out}, nil
}

// MustNew is New for tables known to be valid, such as package-level fixtures.
func MustNew(tiers []Tier) Table {
	t, err := New(tiers)
	if err != nil {
		panic(err)
	}
	return t
}

// Tiers returns a copy of the validated tiers.
func (t Table) Tiers() []Tier {
	return append([]Tier(nil), t.tiers...)
}

// Len returns the number of tiers.
func (t Table) Len() int {
	return len(t.tiers)
}

// find returns the index of the tier containing amount and its lower bound.
// Upper bounds are inclusive, so an amount sitting on a bound stays in the
// lower tier; both sides give the same total.
func (t Table) find(amount float64) (int, float64) {
	lower := 0.0
	for i, tier := range t.tiers {
		if amount <= tier.UpperBound {
			return i, lower
		}
		lower = tier.UpperBound
	}
	return len(t.tiers) - 1, lower
}

// Evaluate applies each tier's rate to the portion of amount inside it.
// Negative and non-finite amounts evaluate to 0.
func (t Table) Evaluate(amount float64) float64 {
	amount = mathutil.NonNegative(amount)
	if amount == 0 || len(t.tiers) == 0 {
		return 0
	}
	i, lower := t.find(amount)
	tier := t.tiers[i]
	return tier.Base + (amount-lower)*tier.Rate
}

// Marginal returns the rate of the tier containing amount.
func (t Table) Marginal(amount float64) float64 {
	if len(t.tiers) == 0 {
		return 0
	}
	i, _ := t.find(mathutil.NonNegative(amount))
	return t.tiers[i].Rate
}

// Lookup treats the table as a one-column rate table and returns the rate of
// the first tier whose upper bound is >= key, e.g. per-cc vehicle tax or an
// age discount.
func (t Table) Lookup(key float64) float64 {
	return t.Marginal(key)
}
