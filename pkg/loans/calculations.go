// Package loans provides loan amortization utilities.
package loans

import (
	"fmt"
	"math"
	"strings"

	"github.com/iwvelando/moneywiki/pkg/constants"
	"github.com/iwvelando/moneywiki/pkg/mathutil"
	"go.uber.org/zap"
)

// Method selects how principal is spread across the repayment periods.
type Method string

const (
	// EqualPrincipalAndInterest pays the same total every period (annuity).
	EqualPrincipalAndInterest Method = "equalPrincipalInterest"
	// EqualPrincipal pays the same principal every period; interest shrinks.
	EqualPrincipal Method = "equalPrincipal"
	// Bullet pays interest only and the whole principal at maturity.
	Bullet Method = "bullet"
)

// ParseMethod accepts the canonical names plus a few CLI-friendly aliases.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "equalprincipalinterest", "annuity", "epi":
		return EqualPrincipalAndInterest, nil
	case "equalprincipal", "ep":
		return EqualPrincipal, nil
	case "bullet", "maturity":
		return Bullet, nil
	}
	return "", fmt.Errorf("unknown repayment method %q", s)
}

// Payment holds the values for a given period, rounded to whole won.
type Payment struct {
	Period             int     `json:"period"`
	Principal          float64 `json:"principal"`
	Interest           float64 `json:"interest"`
	Payment            float64 `json:"payment"`
	RemainingPrincipal float64 `json:"remainingPrincipal"`
}

// Schedule is an immutable repayment breakdown, one Payment per period.
type Schedule struct {
	Method        Method    `json:"method"`
	Payments      []Payment `json:"payments"`
	TotalInterest float64   `json:"totalInterest"`
	TotalPayment  float64   `json:"totalPayment"`
	FirstPayment  float64   `json:"firstPayment"`
	LastPayment   float64   `json:"lastPayment"`
}

// Empty reports whether the schedule has no periods.
func (s Schedule) Empty() bool {
	return len(s.Payments) == 0
}

// Terms are the inputs to a schedule.
type Terms struct {
	Principal         float64
	AnnualRatePercent float64
	Periods           int
	Method            Method
}

// MonthlyRate converts an annual percentage into a per-month fraction.
func MonthlyRate(annualRatePercent float64) float64 {
	return annualRatePercent / (constants.PercentageMultiplier * constants.MonthsPerYear)
}

// CalculateMonthlyPayment calculates the fixed annuity payment for a loan.
func CalculateMonthlyPayment(principal, annualRatePercent float64, periods int) float64 {
	if periods <= 0 || principal <= 0 {
		return 0
	}
	if annualRatePercent == 0 {
		// For zero interest, simply divide the principal by term
		return principal / float64(periods)
	}

	r := MonthlyRate(annualRatePercent)
	power := math.Pow(1.00+r, float64(periods))
	return principal * r * power / (power - 1.00)
}

// CalculateAffordablePrincipal inverts CalculateMonthlyPayment: the largest
// principal a fixed monthly payment repays over periods.
func CalculateAffordablePrincipal(payment, annualRatePercent float64, periods int) float64 {
	if periods <= 0 || payment <= 0 || annualRatePercent < 0 {
		return 0
	}
	if annualRatePercent == 0 {
		return payment * float64(periods)
	}

	r := MonthlyRate(annualRatePercent)
	power := math.Pow(1.00+r, float64(periods))
	return payment * (power - 1.00) / (r * power)
}

// CalculateInterestPayment calculates the interest portion of a payment.
func CalculateInterestPayment(remainingPrincipal, annualRatePercent float64) float64 {
	return remainingPrincipal * MonthlyRate(annualRatePercent)
}

// AmortizationScheduleGenerator provides utilities for generating loan amortization schedules
type AmortizationScheduleGenerator struct {
	logger *zap.Logger
}

// NewAmortizationScheduleGenerator creates a new generator instance
func NewAmortizationScheduleGenerator(logger *zap.Logger) *AmortizationScheduleGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AmortizationScheduleGenerator{logger: logger}
}

// GenerateSchedule creates a complete amortization schedule. Non-positive
// principal or periods, a negative rate, non-finite input or an unknown
// method yields an empty schedule. The zero Method means
// EqualPrincipalAndInterest.
func (g *AmortizationScheduleGenerator) GenerateSchedule(terms Terms) Schedule {
	schedule := Schedule{Method: terms.Method}
	if !validTerms(terms) {
		g.logger.Debug("empty schedule for out-of-range terms",
			zap.String("op", "loans.GenerateSchedule"),
			zap.Float64("principal", terms.Principal),
			zap.Float64("rate", terms.AnnualRatePercent),
			zap.Int("periods", terms.Periods),
		)
		return schedule
	}

	r := MonthlyRate(terms.AnnualRatePercent)
	n := terms.Periods
	payments := make([]Payment, 0, n)
	interests := make([]float64, 0, n)

	switch terms.Method {
	case EqualPrincipal:
		monthlyPrincipal := terms.Principal / float64(n)
		balance := terms.Principal
		for i := 1; i <= n; i++ {
			interest := balance * r
			balance -= monthlyPrincipal
			interests = append(interests, interest)
			payments = append(payments, newPayment(i, monthlyPrincipal, interest, monthlyPrincipal+interest, balance))
		}

	case Bullet:
		interest := terms.Principal * r
		for i := 1; i <= n; i++ {
			interests = append(interests, interest)
			if i == n {
				payments = append(payments, newPayment(i, terms.Principal, interest, terms.Principal+interest, 0))
				continue
			}
			payments = append(payments, newPayment(i, 0, interest, interest, terms.Principal))
		}

	case EqualPrincipalAndInterest, "":
		payment := CalculateMonthlyPayment(terms.Principal, terms.AnnualRatePercent, n)
		balance := terms.Principal
		for i := 1; i <= n; i++ {
			interest := balance * r
			principal := payment - interest
			balance -= principal
			interests = append(interests, interest)
			payments = append(payments, newPayment(i, principal, interest, payment, balance))
		}
		schedule.Method = EqualPrincipalAndInterest

	default:
		g.logger.Warn("empty schedule for unknown repayment method",
			zap.String("op", "loans.GenerateSchedule"),
			zap.String("method", string(terms.Method)),
		)
		return schedule
	}

	schedule.Payments = payments
	schedule.TotalInterest = mathutil.RoundWon(mathutil.SumWon(interests...))
	schedule.TotalPayment = mathutil.RoundWon(mathutil.SumWon(terms.Principal, mathutil.SumWon(interests...)))
	schedule.FirstPayment = payments[0].Payment
	schedule.LastPayment = payments[len(payments)-1].Payment

	g.logger.Debug(fmt.Sprintf("generated %d-period %s schedule", n, schedule.Method),
		zap.String("op", "loans.GenerateSchedule"),
		zap.Float64("totalInterest", schedule.TotalInterest),
	)
	return schedule
}

// GenerateSchedule is a convenience wrapper that does not log.
func GenerateSchedule(terms Terms) Schedule {
	return NewAmortizationScheduleGenerator(nil).GenerateSchedule(terms)
}

func validTerms(terms Terms) bool {
	if !mathutil.IsFinite(terms.Principal) || !mathutil.IsFinite(terms.AnnualRatePercent) {
		return false
	}
	return terms.Principal > 0 && terms.Periods > 0 && terms.AnnualRatePercent >= 0
}

// newPayment rounds a period to whole won. The remaining balance never goes
// below zero; rounding drift on the final period is left uncorrected.
func newPayment(period int, principal, interest, payment, balance float64) Payment {
	return Payment{
		Period:             period,
		Principal:          mathutil.RoundWon(principal),
		Interest:           mathutil.RoundWon(interest),
		Payment:            mathutil.RoundWon(payment),
		RemainingPrincipal: mathutil.Max(0, mathutil.RoundWon(balance)),
	}
}
