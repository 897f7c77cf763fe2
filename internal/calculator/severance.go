package calculator

import (
	"fmt"
	"strings"

	"github.com/iwvelando/moneywiki/internal/policy"
	"github.com/iwvelando/moneywiki/pkg/constants"
	"github.com/iwvelando/moneywiki/pkg/datetime"
	"github.com/iwvelando/moneywiki/pkg/mathutil"
)

// WorkerType selects the severance formula.
type WorkerType string

const (
	RegularWorker  WorkerType = "regular"
	DailyWorker    WorkerType = "daily"
	PartTimeWorker WorkerType = "partTime"
)

// partTimeWindowDays approximates the three-month averaging window when no
// dates are entered.
const partTimeWindowDays = 92

// ParseWorkerType accepts the canonical names case-insensitively.
func ParseWorkerType(s string) (WorkerType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "regular":
		return RegularWorker, nil
	case "daily":
		return DailyWorker, nil
	case "parttime", "part-time":
		return PartTimeWorker, nil
	}
	return "", fmt.Errorf("unknown worker type %q", s)
}

// SeveranceInput covers all three worker types; only the fields of the
// selected type are read.
type SeveranceInput struct {
	WorkerType WorkerType `json:"workerType"`

	// Regular employees.
	StartDate      datetime.Date `json:"startDate"`
	EndDate        datetime.Date `json:"endDate"`
	MonthlyBase    float64       `json:"monthlyBase"`
	Allowances     float64       `json:"allowances"`
	AnnualBonus    float64       `json:"annualBonus"`
	LeaveDays      float64       `json:"leaveDays"`
	DailyLeaveRate float64       `json:"dailyLeaveRate"`

	// Daily workers.
	DailyWage float64 `json:"dailyWage"`
	WorkDays  int     `json:"workDays"`

	// Part-time workers.
	HourlyWage  float64 `json:"hourlyWage"`
	HoursPerDay float64 `json:"hoursPerDay"`
	DaysPerWeek float64 `json:"daysPerWeek"`
	WorkMonths  int     `json:"workMonths"`
}

// SeveranceResult is the eligibility verdict and the pay derivation.
type SeveranceResult struct {
	Eligible         bool    `json:"eligible"`
	TenureDays       int     `json:"tenureDays"`
	ShortfallDays    int     `json:"shortfallDays"`
	WindowDays       int     `json:"windowDays"`
	ThreeMonthWage   float64 `json:"threeMonthWage"`
	BonusPortion     float64 `json:"bonusPortion"`
	LeavePortion     float64 `json:"leavePortion"`
	TotalWage        float64 `json:"totalWage"`
	AverageDailyWage float64 `json:"averageDailyWage"`
	SeverancePay     float64 `json:"severancePay"`
}

// severance is thirty days of average wage per year of tenure.
func severance(avgDaily float64, tenureDays int) float64 {
	return avgDaily * constants.DaysPerMonth * float64(tenureDays) / constants.DaysPerYear
}

func eligibility(s policy.Severance, tenureDays int) (bool, int) {
	minimum := s.MinimumTenureDays
	if minimum <= 0 {
		minimum = constants.DaysPerYear
	}
	if tenureDays >= minimum {
		return true, 0
	}
	return false, minimum - tenureDays
}

// SeverancePay computes statutory retirement pay. Ineligible workers get the
// derivation with zero pay.
func SeverancePay(set *policy.Set, in SeveranceInput) SeveranceResult {
	if set == nil {
		return SeveranceResult{}
	}
	switch in.WorkerType {
	case DailyWorker:
		return dailySeverance(set, in)
	case PartTimeWorker:
		return partTimeSeverance(set, in)
	default:
		return regularSeverance(set, in)
	}
}

func regularSeverance(set *policy.Set, in SeveranceInput) SeveranceResult {
	tenure := datetime.DaysInclusive(in.StartDate.Time, in.EndDate.Time)
	if tenure == 0 {
		return SeveranceResult{}
	}

	var res SeveranceResult
	res.TenureDays = tenure
	res.Eligible, res.ShortfallDays = eligibility(set.Severance, tenure)
	if !res.Eligible {
		return res
	}

	months := set.Severance.AverageWageMonths
	if months <= 0 {
		months = 3
	}
	share := float64(months) / constants.MonthsPerYear

	wage := (mathutil.NonNegative(in.MonthlyBase) + mathutil.NonNegative(in.Allowances)) * float64(months)
	bonus := mathutil.NonNegative(in.AnnualBonus) * share
	leave := mathutil.NonNegative(in.LeaveDays) * mathutil.NonNegative(in.DailyLeaveRate) * share
	total := wage + bonus + leave

	res.WindowDays = datetime.TrailingWindowDays(in.EndDate.Time, months)
	res.ThreeMonthWage = round(wage)
	res.BonusPortion = round(bonus)
	res.LeavePortion = round(leave)
	res.TotalWage = round(total)
	if res.WindowDays > 0 {
		avg := total / float64(res.WindowDays)
		res.AverageDailyWage = round(avg)
		res.SeverancePay = round(severance(avg, tenure))
	}
	return res
}

func dailySeverance(set *policy.Set, in SeveranceInput) SeveranceResult {
	daily := mathutil.NonNegative(in.DailyWage)
	if daily == 0 || in.WorkDays <= 0 || in.WorkDays > constants.MaxWorkDays {
		return SeveranceResult{}
	}
	res := SeveranceResult{TenureDays: in.WorkDays, AverageDailyWage: round(daily)}
	res.Eligible, res.ShortfallDays = eligibility(set.Severance, in.WorkDays)
	if res.Eligible {
		res.SeverancePay = round(severance(daily, in.WorkDays))
	}
	return res
}

// partTimeSeverance approximates tenure as thirty days per month and requires
// both a year of service and the weekly-hours threshold. Service beyond
// MaxWorkMonths yields the zero result.
func partTimeSeverance(set *policy.Set, in SeveranceInput) SeveranceResult {
	hourly := mathutil.NonNegative(in.HourlyWage)
	hours := mathutil.NonNegative(in.HoursPerDay)
	days := mathutil.NonNegative(in.DaysPerWeek)
	if hourly == 0 || hours == 0 || days == 0 || in.WorkMonths <= 0 || in.WorkMonths > constants.MaxWorkMonths {
		return SeveranceResult{}
	}

	monthly := hourly * hours * days * set.Wage.WeeksPerMonth
	wage := monthly * 3
	avg := wage / partTimeWindowDays
	tenure := in.WorkMonths * constants.DaysPerMonth

	res := SeveranceResult{
		TenureDays:       tenure,
		WindowDays:       partTimeWindowDays,
		ThreeMonthWage:   round(wage),
		TotalWage:        round(wage),
		AverageDailyWage: round(avg),
	}
	res.Eligible = in.WorkMonths >= constants.MonthsPerYear && hours*days >= set.Wage.WeeklyHolidayThresholdHours
	if !res.Eligible {
		if in.WorkMonths < constants.MonthsPerYear {
			res.ShortfallDays = (constants.MonthsPerYear - in.WorkMonths) * constants.DaysPerMonth
		}
		return res
	}
	res.SeverancePay = round(severance(avg, tenure))
	return res
}
