package calculator

import (
	"fmt"
	"strings"

	"github.com/iwvelando/moneywiki/internal/policy"
	"github.com/iwvelando/moneywiki/pkg/constants"
	"github.com/iwvelando/moneywiki/pkg/mathutil"
)

// NetSalaryInput describes an annual salary and withholding profile.
type NetSalaryInput struct {
	AnnualSalary float64 `json:"annualSalary"`
	Dependents   int     `json:"dependents"`
	Children     int     `json:"children"`
	// NonTaxable is the monthly tax-free allowance, e.g. meal money.
	NonTaxable float64 `json:"nonTaxable"`
}

// NetSalaryResult is the monthly withholding breakdown.
type NetSalaryResult struct {
	MonthlySalary       float64 `json:"monthlySalary"`
	NationalPension     float64 `json:"nationalPension"`
	HealthInsurance     float64 `json:"healthInsurance"`
	LongTermCare        float64 `json:"longTermCare"`
	EmploymentInsurance float64 `json:"employmentInsurance"`
	IncomeTax           float64 `json:"incomeTax"`
	LocalIncomeTax      float64 `json:"localIncomeTax"`
	TotalDeduction      float64 `json:"totalDeduction"`
	MonthlyNet          float64 `json:"monthlyNet"`
	AnnualNet           float64 `json:"annualNet"`
}

// NetSalary estimates monthly take-home pay after social insurance and a
// simplified withholding tax. The withholding tax applies the brackets to the
// annualised taxable pay without the earned-income credit.
func NetSalary(set *policy.Set, in NetSalaryInput) NetSalaryResult {
	annual := mathutil.NonNegative(in.AnnualSalary)
	if annual == 0 || set == nil {
		return NetSalaryResult{}
	}

	ins := set.Insurance
	monthly := annual / constants.MonthsPerYear
	taxable := mathutil.Max(0, monthly-mathutil.NonNegative(in.NonTaxable))

	pension := mathutil.Min(taxable*ins.NationalPension, ins.NationalPensionCap)
	health := taxable * ins.Health
	care := health * ins.LongTermCare
	employment := taxable * ins.Employment

	dependents := in.Dependents + max(in.Children, 0)
	a := assess(set.IncomeTax, taxable*constants.MonthsPerYear, dependents)
	incomeTax := round(a.tax / constants.MonthsPerYear)
	localTax := round(incomeTax * set.IncomeTax.LocalTaxRate)

	total := pension + health + care + employment + incomeTax + localTax
	net := monthly - total

	return NetSalaryResult{
		MonthlySalary:       round(monthly),
		NationalPension:     round(pension),
		HealthInsurance:     round(health),
		LongTermCare:        round(care),
		EmploymentInsurance: round(employment),
		IncomeTax:           incomeTax,
		LocalIncomeTax:      localTax,
		TotalDeduction:      round(total),
		MonthlyNet:          round(net),
		AnnualNet:           round(net * constants.MonthsPerYear),
	}
}

// WageMode selects the direction of an hourly/monthly conversion.
type WageMode string

const (
	ToMonthly WageMode = "toMonthly"
	ToHourly  WageMode = "toHourly"
)

// ParseWageMode accepts the canonical names case-insensitively.
func ParseWageMode(s string) (WageMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "tomonthly", "monthly":
		return ToMonthly, nil
	case "tohourly", "hourly":
		return ToHourly, nil
	}
	return "", fmt.Errorf("unknown wage mode %q", s)
}

// HourlyWageInput converts between hourly and monthly pay.
type HourlyWageInput struct {
	Mode              WageMode `json:"mode"`
	HourlyWage        float64  `json:"hourlyWage"`
	MonthlyWage       float64  `json:"monthlyWage"`
	WeeklyHours       float64  `json:"weeklyHours"`
	IncludeHolidayPay bool     `json:"includeHolidayPay"`
}

// HourlyWageResult carries every derived pay figure and the minimum-wage
// comparison for the derived hourly rate.
type HourlyWageResult struct {
	Hourly           float64 `json:"hourly"`
	Daily            float64 `json:"daily"`
	Monthly          float64 `json:"monthly"`
	Annual           float64 `json:"annual"`
	MinimumWage      float64 `json:"minimumWage"`
	BelowMinimumWage bool    `json:"belowMinimumWage"`
}

// paidWeeklyHours adds the paid weekly holiday (one average day) to the
// contracted hours when the worker qualifies.
func paidWeeklyHours(w policy.Wage, weeklyHours float64, includeHoliday bool) float64 {
	if includeHoliday && weeklyHours >= w.WeeklyHolidayThresholdHours {
		return weeklyHours + weeklyHours/constants.WorkDaysPerWeek
	}
	return weeklyHours
}

// HourlyWage converts hourly pay to monthly or back, using the policy's
// weeks-per-month factor.
func HourlyWage(set *policy.Set, in HourlyWageInput) HourlyWageResult {
	if set == nil {
		return HourlyWageResult{}
	}
	weekly := mathutil.NonNegative(in.WeeklyHours)
	paid := paidWeeklyHours(set.Wage, weekly, in.IncludeHolidayPay)
	res := HourlyWageResult{MinimumWage: set.MinimumWage}

	switch in.Mode {
	case ToHourly:
		monthly := mathutil.NonNegative(in.MonthlyWage)
		if monthly == 0 || paid == 0 {
			return res
		}
		res.Hourly = round(monthly / (paid * set.Wage.WeeksPerMonth))
		res.Monthly = monthly
	default:
		hourly := mathutil.NonNegative(in.HourlyWage)
		if hourly == 0 {
			return res
		}
		res.Hourly = hourly
		res.Monthly = round(hourly * paid * set.Wage.WeeksPerMonth)
	}

	res.Daily = round(res.Hourly * weekly / constants.WorkDaysPerWeek)
	res.Annual = res.Monthly * constants.MonthsPerYear
	res.BelowMinimumWage = BelowMinimumWage(set, res.Hourly)
	return res
}

// BelowMinimumWage reports whether a positive hourly wage is under the
// published minimum.
func BelowMinimumWage(set *policy.Set, hourly float64) bool {
	return set != nil && hourly > 0 && hourly < set.MinimumWage
}

// WeeklyHolidayPayInput describes a part-time schedule.
type WeeklyHolidayPayInput struct {
	HourlyWage  float64 `json:"hourlyWage"`
	WeeklyHours float64 `json:"weeklyHours"`
	WorkDays    int     `json:"workDays"`
}

// WeeklyHolidayPayResult is the weekly holiday allowance and monthly total.
type WeeklyHolidayPayResult struct {
	Eligible         bool    `json:"eligible"`
	WeeklyHolidayPay float64 `json:"weeklyHolidayPay"`
	MonthlyPay       float64 `json:"monthlyPay"`
	BelowMinimumWage bool    `json:"belowMinimumWage"`
}

// WeeklyHolidayPay pays one average working day per week to workers with at
// least the threshold weekly hours.
func WeeklyHolidayPay(set *policy.Set, in WeeklyHolidayPayInput) WeeklyHolidayPayResult {
	hourly := mathutil.NonNegative(in.HourlyWage)
	weekly := mathutil.NonNegative(in.WeeklyHours)
	if hourly == 0 || weekly == 0 || set == nil {
		return WeeklyHolidayPayResult{}
	}

	w := set.Wage
	res := WeeklyHolidayPayResult{BelowMinimumWage: BelowMinimumWage(set, hourly)}
	base := hourly * weekly * w.WeeksPerMonth
	if weekly < w.WeeklyHolidayThresholdHours {
		res.MonthlyPay = round(base)
		return res
	}

	days := in.WorkDays
	if days <= 0 {
		days = constants.WorkDaysPerWeek
	}
	res.Eligible = true
	res.WeeklyHolidayPay = round(weekly / float64(days) * hourly)
	res.MonthlyPay = round(base + res.WeeklyHolidayPay*w.WeeksPerMonth)
	return res
}
