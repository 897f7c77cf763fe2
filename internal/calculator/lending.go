package calculator

import (
	"math"

	"github.com/iwvelando/moneywiki/internal/policy"
	"github.com/iwvelando/moneywiki/pkg/constants"
	"github.com/iwvelando/moneywiki/pkg/loans"
	"github.com/iwvelando/moneywiki/pkg/mathutil"
	"go.uber.org/zap"
)

// DSRStatus grades a debt-service ratio.
type DSRStatus string

const (
	DSRSafe     DSRStatus = "safe"
	DSRAdequate DSRStatus = "adequate"
	DSRCaution  DSRStatus = "caution"
	DSRDanger   DSRStatus = "danger"
)

// Status band edges in percent; adequate ends at the policy limit.
const (
	dsrSafePercent    = 30.0
	dsrCautionPercent = 50.0
)

// loanMonths converts a term in years to months, or 0 when the term is out
// of range.
func loanMonths(years int) int {
	if years <= 0 || years > constants.MaxLoanYears {
		return 0
	}
	return years * constants.MonthsPerYear
}

// DSRInput is a borrower's income, existing repayments and a prospective
// annuity loan.
type DSRInput struct {
	AnnualIncome            float64   `json:"annualIncome"`
	ExistingMonthlyPayments []float64 `json:"existingMonthlyPayments"`
	LoanAmount              float64   `json:"loanAmount"`
	RatePercent             float64   `json:"ratePercent"`
	Years                   int       `json:"years"`
}

// DSRResult is the debt-service ratio with the largest loan the limit allows.
type DSRResult struct {
	NewLoanMonthlyPayment float64   `json:"newLoanMonthlyPayment"`
	ExistingAnnualPayment float64   `json:"existingAnnualPayment"`
	TotalAnnualPayment    float64   `json:"totalAnnualPayment"`
	DSRPercent            float64   `json:"dsrPercent"`
	LimitPercent          float64   `json:"limitPercent"`
	WithinLimit           bool      `json:"withinLimit"`
	Status                DSRStatus `json:"status,omitempty"`
	MaxLoanAmount         float64   `json:"maxLoanAmount"`
}

func dsrStatus(percent, limit float64) DSRStatus {
	switch {
	case percent <= 0:
		return ""
	case percent <= dsrSafePercent:
		return DSRSafe
	case percent <= limit:
		return DSRAdequate
	case percent <= dsrCautionPercent:
		return DSRCaution
	}
	return DSRDanger
}

// DSR computes the debt-service ratio: annual principal and interest on all
// loans over annual income. The new loan repays in equal instalments.
func DSR(set *policy.Set, in DSRInput) DSRResult {
	if set == nil {
		return DSRResult{}
	}
	income := mathutil.NonNegative(in.AnnualIncome)
	limit := set.Lending.DSRLimit

	existing := make([]float64, 0, len(in.ExistingMonthlyPayments))
	for _, p := range in.ExistingMonthlyPayments {
		existing = append(existing, mathutil.NonNegative(p)*constants.MonthsPerYear)
	}
	existingAnnual := mathutil.SumWon(existing...)

	months := loanMonths(in.Years)
	rate := mathutil.NonNegative(in.RatePercent)
	monthly := loans.CalculateMonthlyPayment(mathutil.NonNegative(in.LoanAmount), rate, months)
	total := existingAnnual + monthly*constants.MonthsPerYear

	res := DSRResult{
		NewLoanMonthlyPayment: round(monthly),
		ExistingAnnualPayment: round(existingAnnual),
		TotalAnnualPayment:    round(total),
		LimitPercent:          limit * constants.PercentageMultiplier,
	}
	if income == 0 {
		return res
	}

	res.DSRPercent = mathutil.Percentage(total, income)
	res.WithinLimit = total <= income*limit
	res.Status = dsrStatus(res.DSRPercent, res.LimitPercent)
	if available := income*limit - existingAnnual; available > 0 {
		res.MaxLoanAmount = math.Floor(loans.CalculateAffordablePrincipal(available/constants.MonthsPerYear, rate, months))
	}
	return res
}

// MortgageInput is a home loan against a property value.
type MortgageInput struct {
	PropertyValue float64      `json:"propertyValue"`
	LoanAmount    float64      `json:"loanAmount"`
	RatePercent   float64      `json:"ratePercent"`
	Years         int          `json:"years"`
	Method        loans.Method `json:"method"`
}

// MortgageResult is the loan-to-value ratio with the repayment schedule.
type MortgageResult struct {
	LTVPercent float64 `json:"ltvPercent"`
	LoanResult
}

// Mortgage builds the repayment schedule of a home loan and its
// loan-to-value ratio. Terms beyond the schedule limit give an empty
// schedule.
func Mortgage(logger *zap.Logger, in MortgageInput) MortgageResult {
	loan := mathutil.NonNegative(in.LoanAmount)
	res := MortgageResult{
		LoanResult: LoanRepayment(logger, LoanInput{
			Principal:   loan,
			RatePercent: in.RatePercent,
			Months:      loanMonths(in.Years),
			Method:      in.Method,
		}),
	}
	if value := mathutil.NonNegative(in.PropertyValue); value > 0 && loan > 0 {
		res.LTVPercent = mathutil.Percentage(loan, value)
	}
	return res
}
