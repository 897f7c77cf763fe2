package calculator

import (
	"github.com/iwvelando/moneywiki/pkg/loans"
	"go.uber.org/zap"
)

// LoanInput is a repayment request. Months above the schedule limit are
// rejected at the boundary, not here.
type LoanInput struct {
	Principal   float64      `json:"principal"`
	RatePercent float64      `json:"ratePercent"`
	Months      int          `json:"months"`
	Method      loans.Method `json:"method"`
}

// Terms converts the input into schedule terms.
func (in LoanInput) Terms() loans.Terms {
	return loans.Terms{
		Principal:         in.Principal,
		AnnualRatePercent: in.RatePercent,
		Periods:           in.Months,
		Method:            in.Method,
	}
}

// LoanResult is the repayment schedule with its headline figures.
type LoanResult struct {
	MonthlyPayment float64 `json:"monthlyPayment"`
	loans.Schedule
}

// LoanRepayment builds the schedule for the requested method. MonthlyPayment
// is the fixed annuity payment, or the first payment for other methods.
func LoanRepayment(logger *zap.Logger, in LoanInput) LoanResult {
	schedule := loans.NewAmortizationScheduleGenerator(logger).GenerateSchedule(in.Terms())
	return LoanResult{
		MonthlyPayment: schedule.FirstPayment,
		Schedule:       schedule,
	}
}
