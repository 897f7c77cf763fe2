package calculator

import (
	"fmt"
	"math"
	"strings"

	"github.com/iwvelando/moneywiki/internal/policy"
	"github.com/iwvelando/moneywiki/pkg/constants"
	"github.com/iwvelando/moneywiki/pkg/mathutil"
)

// Frequencies maps compounding-frequency names to periods per year.
var Frequencies = map[string]int{
	"yearly":     constants.CompoundYearly,
	"halfYearly": constants.CompoundHalfYearly,
	"quarterly":  constants.CompoundQuarterly,
	"monthly":    constants.CompoundMonthly,
	"daily":      constants.CompoundDaily,
}

// ParseFrequency accepts a frequency name or its periods-per-year number.
func ParseFrequency(s string) (int, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return constants.CompoundYearly, nil
	}
	for name, n := range Frequencies {
		if strings.EqualFold(name, trimmed) || fmt.Sprint(n) == trimmed {
			return n, nil
		}
	}
	return 0, fmt.Errorf("unknown compounding frequency %q", s)
}

// CompoundInput compares simple and compound growth of a lump sum.
type CompoundInput struct {
	Principal   float64 `json:"principal"`
	RatePercent float64 `json:"ratePercent"`
	Years       int     `json:"years"`
	Frequency   int     `json:"frequency"`
}

// YearRow is one line of the year-by-year comparison.
type YearRow struct {
	Year       int     `json:"year"`
	Simple     float64 `json:"simple"`
	Compound   float64 `json:"compound"`
	Difference float64 `json:"difference"`
}

// CompoundResult holds the closed-form totals and the yearly table.
type CompoundResult struct {
	SimpleTotal   float64   `json:"simpleTotal"`
	CompoundTotal float64   `json:"compoundTotal"`
	Difference    float64   `json:"difference"`
	DoublingYears float64   `json:"doublingYears"`
	Yearly        []YearRow `json:"yearly"`
}

func growth(principal, rate float64, n, years int) (simple, compound float64) {
	simple = principal + principal*rate*float64(years)
	compound = principal * math.Pow(1+rate/float64(n), float64(n*years))
	return simple, compound
}

// CompoundInterest evaluates simple = p(1 + r*t) against compound =
// p(1 + r/n)^(n*t) and re-evaluates both at each whole year.
func CompoundInterest(in CompoundInput) CompoundResult {
	principal := mathutil.NonNegative(in.Principal)
	rate := mathutil.NonNegative(in.RatePercent) / constants.PercentageMultiplier
	if principal == 0 || rate == 0 || in.Years <= 0 {
		return CompoundResult{}
	}
	n := in.Frequency
	if n <= 0 {
		n = constants.CompoundYearly
	}

	simple, compound := growth(principal, rate, n, in.Years)
	res := CompoundResult{
		SimpleTotal:   round(simple),
		CompoundTotal: round(compound),
		Difference:    round(compound - simple),
		DoublingYears: round(constants.RuleOfSeventyTwo / in.RatePercent),
	}

	rows := min(in.Years, constants.MaxInterestYears)
	res.Yearly = make([]YearRow, 0, rows)
	for year := 1; year <= rows; year++ {
		s, c := growth(principal, rate, n, year)
		res.Yearly = append(res.Yearly, YearRow{
			Year:       year,
			Simple:     round(s),
			Compound:   round(c),
			Difference: round(c - s),
		})
	}
	return res
}

// TaxType selects the withholding rate on interest income.
type TaxType string

const (
	TaxGeneral   TaxType = "general"
	TaxPreferred TaxType = "preferred"
	TaxExempt    TaxType = "exempt"
)

// ParseTaxType accepts the canonical names and the site's legacy names.
func ParseTaxType(s string) (TaxType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "general":
		return TaxGeneral, nil
	case "preferred", "taxpreferred":
		return TaxPreferred, nil
	case "exempt", "taxfree":
		return TaxExempt, nil
	}
	return "", fmt.Errorf("unknown interest tax type %q", s)
}

func interestTaxRate(set *policy.Set, t TaxType) float64 {
	switch t {
	case TaxPreferred:
		return set.InterestTax.Preferred
	case TaxExempt:
		return set.InterestTax.Exempt
	default:
		return set.InterestTax.General
	}
}

// InterestResult is the after-tax outcome of a deposit or savings plan.
type InterestResult struct {
	TotalDeposit       float64 `json:"totalDeposit"`
	GrossInterest      float64 `json:"grossInterest"`
	Tax                float64 `json:"tax"`
	NetInterest        float64 `json:"netInterest"`
	Total              float64 `json:"total"`
	MonthlyNetInterest float64 `json:"monthlyNetInterest,omitempty"`
}

func afterTax(set *policy.Set, deposit, interest float64, t TaxType) InterestResult {
	tax := round(interest * interestTaxRate(set, t))
	return InterestResult{
		TotalDeposit:  deposit,
		GrossInterest: round(interest),
		Tax:           tax,
		NetInterest:   round(interest - tax),
		Total:         round(deposit + interest - tax),
	}
}

// DepositInput is a lump-sum time deposit.
type DepositInput struct {
	Principal   float64 `json:"principal"`
	RatePercent float64 `json:"ratePercent"`
	Months      int     `json:"months"`
	TaxType     TaxType `json:"taxType"`
	Compound    bool    `json:"compound"`
}

// DepositInterest pays simple interest pro rata, or compounds monthly.
func DepositInterest(set *policy.Set, in DepositInput) InterestResult {
	principal := mathutil.NonNegative(in.Principal)
	rate := mathutil.NonNegative(in.RatePercent) / constants.PercentageMultiplier
	if principal == 0 || rate == 0 || in.Months <= 0 || set == nil {
		return InterestResult{}
	}

	months := float64(in.Months)
	var interest float64
	if in.Compound {
		interest = principal * (math.Pow(1+rate/constants.MonthsPerYear, months) - 1)
	} else {
		interest = principal * rate * months / constants.MonthsPerYear
	}

	res := afterTax(set, principal, interest, in.TaxType)
	res.MonthlyNetInterest = round((interest - res.Tax) / months)
	return res
}

// SavingsInput is a fixed monthly instalment plan.
type SavingsInput struct {
	MonthlyAmount float64 `json:"monthlyAmount"`
	RatePercent   float64 `json:"ratePercent"`
	Months        int     `json:"months"`
	TaxType       TaxType `json:"taxType"`
}

// SavingsInterest pays simple interest on each instalment for the months it
// stays deposited: the first earns n months, the last earns one.
func SavingsInterest(set *policy.Set, in SavingsInput) InterestResult {
	amount := mathutil.NonNegative(in.MonthlyAmount)
	rate := mathutil.NonNegative(in.RatePercent) / constants.PercentageMultiplier
	if amount == 0 || rate == 0 || in.Months <= 0 || set == nil {
		return InterestResult{}
	}

	n := float64(in.Months)
	depositMonths := n * (n + 1) / 2
	interest := amount * rate / constants.MonthsPerYear * depositMonths
	return afterTax(set, amount*n, interest, in.TaxType)
}
