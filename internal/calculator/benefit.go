package calculator

import (
	"fmt"
	"strings"

	"github.com/iwvelando/moneywiki/internal/policy"
	"github.com/iwvelando/moneywiki/pkg/constants"
	"github.com/iwvelando/moneywiki/pkg/mathutil"
)

// Insured-period bands used to look up benefit days.
const (
	InsuredUnder1  = "under1"
	Insured1To3    = "1to3"
	Insured3To5    = "3to5"
	Insured5To10   = "5to10"
	InsuredOver10  = "over10"
	defaultInsured = Insured3To5
)

// InsuredPeriods lists the bands in ascending order.
var InsuredPeriods = []string{InsuredUnder1, Insured1To3, Insured3To5, Insured5To10, InsuredOver10}

// ParseInsuredPeriod validates an insured-period band. Blank means 3to5.
func ParseInsuredPeriod(s string) (string, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return defaultInsured, nil
	}
	for _, band := range InsuredPeriods {
		if strings.EqualFold(band, trimmed) {
			return band, nil
		}
	}
	return "", fmt.Errorf("unknown insured period %q, expected one of %s", s, strings.Join(InsuredPeriods, ", "))
}

// UnemploymentInput describes a job-seeking benefit claim.
type UnemploymentInput struct {
	MonthlyWage   float64 `json:"monthlyWage"`
	InsuredPeriod string  `json:"insuredPeriod"`
	Over50        bool    `json:"over50"`
	Disabled      bool    `json:"disabled"`
}

// UnemploymentResult is the daily benefit after the floor/cap clamp and the
// expected payout.
type UnemploymentResult struct {
	AverageDailyWage float64 `json:"averageDailyWage"`
	RawBenefit       float64 `json:"rawBenefit"`
	DailyBenefit     float64 `json:"dailyBenefit"`
	AtFloor          bool    `json:"atFloor"`
	AtCap            bool    `json:"atCap"`
	BenefitDays      int     `json:"benefitDays"`
	MonthlyBenefit   float64 `json:"monthlyBenefit"`
	TotalBenefit     float64 `json:"totalBenefit"`
}

// UnemploymentBenefit pays the replacement rate of the average daily wage,
// clamped to [floor, cap], for a number of days set by the insured period.
func UnemploymentBenefit(set *policy.Set, in UnemploymentInput) UnemploymentResult {
	wage := mathutil.NonNegative(in.MonthlyWage)
	if wage == 0 || set == nil {
		return UnemploymentResult{}
	}

	u := set.Unemployment
	divisor := u.DailyWageDivisor
	if divisor <= 0 {
		divisor = constants.DaysPerMonth
	}
	daily := wage / divisor
	raw := daily * u.ReplacementRate
	benefit := mathutil.Clamp(raw, u.Floor, u.Cap)

	band, err := ParseInsuredPeriod(in.InsuredPeriod)
	days := 0
	if err == nil {
		table := u.BenefitDays[band]
		days = table.Standard
		if in.Over50 || in.Disabled {
			days = table.Extended
		}
	}

	return UnemploymentResult{
		AverageDailyWage: round(daily),
		RawBenefit:       round(raw),
		DailyBenefit:     round(benefit),
		AtFloor:          raw <= u.Floor,
		AtCap:            raw >= u.Cap,
		BenefitDays:      days,
		MonthlyBenefit:   round(benefit * constants.DaysPerMonth),
		TotalBenefit:     round(benefit * float64(days)),
	}
}
