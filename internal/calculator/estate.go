package calculator

import (
	"fmt"
	"strings"

	"github.com/iwvelando/moneywiki/internal/policy"
	"github.com/iwvelando/moneywiki/pkg/constants"
	"github.com/iwvelando/moneywiki/pkg/mathutil"
)

// Relationship is the recipient's relation to the donor; it selects the gift
// exemption.
type Relationship string

const (
	Spouse        Relationship = "spouse"
	AdultChild    Relationship = "adultChild"
	MinorChild    Relationship = "minorChild"
	Parent        Relationship = "parent"
	OtherRelative Relationship = "otherRelative"
	NonRelative   Relationship = "nonRelative"
)

var relationships = []Relationship{Spouse, AdultChild, MinorChild, Parent, OtherRelative, NonRelative}

// ParseRelationship accepts the canonical names case-insensitively. The
// empty string means an adult child.
func ParseRelationship(s string) (Relationship, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return AdultChild, nil
	}
	for _, r := range relationships {
		if strings.ToLower(string(r)) == name {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown relationship %q", s)
}

// GiftTaxInput is a gift plus the gifts from the same donor in the previous
// ten years.
type GiftTaxInput struct {
	Amount         float64      `json:"amount"`
	PreviousGifts  float64      `json:"previousGifts"`
	Relationship   Relationship `json:"relationship"`
	GenerationSkip bool         `json:"generationSkip"`
}

// GiftTaxResult breaks the gift tax down step by step.
type GiftTaxResult struct {
	TotalGifts          float64 `json:"totalGifts"`
	Exemption           float64 `json:"exemption"`
	TaxBase             float64 `json:"taxBase"`
	MarginalRate        float64 `json:"marginalRate"`
	CalculatedTax       float64 `json:"calculatedTax"`
	GenerationSurcharge float64 `json:"generationSurcharge"`
	SelfReportDiscount  float64 `json:"selfReportDiscount"`
	FinalTax            float64 `json:"finalTax"`
	EffectiveRate       float64 `json:"effectiveRate"`
}

// GiftTax computes gift tax on the ten-year total less the relationship
// exemption, with the generation-skipping surcharge and the filing discount.
func GiftTax(set *policy.Set, in GiftTaxInput) GiftTaxResult {
	amount := mathutil.NonNegative(in.Amount)
	if amount == 0 || set == nil {
		return GiftTaxResult{}
	}
	p := set.GiftTax

	total := amount + mathutil.NonNegative(in.PreviousGifts)
	exemption := p.Exemptions[string(in.Relationship)]
	base := mathutil.Max(0, total-exemption)
	tax := p.BracketTable().Evaluate(base)

	var surcharge float64
	if in.GenerationSkip && base > 0 {
		rate := p.GenerationSkipSurcharge
		if in.Relationship == MinorChild && total > p.GenerationSkipMinorThreshold {
			rate = p.GenerationSkipMinorSurcharge
		}
		surcharge = tax * rate
	}
	discount := (tax + surcharge) * p.SelfReportDiscount
	final := mathutil.Max(0, tax+surcharge-discount)

	return GiftTaxResult{
		TotalGifts:          total,
		Exemption:           exemption,
		TaxBase:             round(base),
		MarginalRate:        p.BracketTable().Marginal(base) * constants.PercentageMultiplier,
		CalculatedTax:       round(tax),
		GenerationSurcharge: round(surcharge),
		SelfReportDiscount:  round(discount),
		FinalTax:            round(final),
		EffectiveRate:       mathutil.Percentage(final, amount),
	}
}

// InheritanceTaxInput describes an estate.
type InheritanceTaxInput struct {
	Estate       float64 `json:"estate"`
	Debts        float64 `json:"debts"`
	FuneralCosts float64 `json:"funeralCosts"`
	HasSpouse    bool    `json:"hasSpouse"`
	// SpouseInheritance is what the spouse actually receives.
	SpouseInheritance float64 `json:"spouseInheritance"`
	Children          int     `json:"children"`
}

// InheritanceTaxResult breaks the estate tax down step by step.
type InheritanceTaxResult struct {
	NetEstate          float64 `json:"netEstate"`
	BasicDeduction     float64 `json:"basicDeduction"`
	ChildDeduction     float64 `json:"childDeduction"`
	OtherDeduction     float64 `json:"otherDeduction"`
	SpouseDeduction    float64 `json:"spouseDeduction"`
	TotalDeduction     float64 `json:"totalDeduction"`
	TaxBase            float64 `json:"taxBase"`
	MarginalRate       float64 `json:"marginalRate"`
	CalculatedTax      float64 `json:"calculatedTax"`
	SelfReportDiscount float64 `json:"selfReportDiscount"`
	FinalTax           float64 `json:"finalTax"`
	EffectiveRate      float64 `json:"effectiveRate"`
}

// InheritanceTax computes estate tax. The larger of the itemised (basic plus
// per-child) and lump-sum deductions applies, plus the spouse deduction: the
// smaller of the spouse's actual and statutory share, bounded to the policy
// minimum and maximum.
func InheritanceTax(set *policy.Set, in InheritanceTaxInput) InheritanceTaxResult {
	estate := mathutil.NonNegative(in.Estate)
	if estate == 0 || set == nil {
		return InheritanceTaxResult{}
	}
	p := set.InheritanceTax
	children := max(in.Children, 0)

	net := mathutil.NonNegative(estate - mathutil.NonNegative(in.Debts) - mathutil.NonNegative(in.FuneralCosts))

	var spouse float64
	if in.HasSpouse {
		share := net
		if children > 0 {
			share = p.SpouseShareWeight / (p.SpouseShareWeight + float64(children)) * net
		}
		received := mathutil.Min(mathutil.NonNegative(in.SpouseInheritance), share)
		spouse = mathutil.Clamp(received, p.SpouseDeductionMin, p.SpouseDeductionMax)
	}

	childDeduction := float64(children) * p.ChildDeduction
	other := mathutil.Max(p.BasicDeduction+childDeduction, p.LumpSumDeduction)
	deduction := other + spouse
	base := mathutil.Max(0, net-deduction)
	tax := p.BracketTable().Evaluate(base)
	discount := round(tax * p.SelfReportDiscount)
	final := mathutil.Max(0, round(tax)-discount)

	return InheritanceTaxResult{
		NetEstate:          round(net),
		BasicDeduction:     p.BasicDeduction,
		ChildDeduction:     childDeduction,
		OtherDeduction:     other,
		SpouseDeduction:    round(spouse),
		TotalDeduction:     round(deduction),
		TaxBase:            round(base),
		MarginalRate:       p.BracketTable().Marginal(base) * constants.PercentageMultiplier,
		CalculatedTax:      round(tax),
		SelfReportDiscount: discount,
		FinalTax:           final,
		EffectiveRate:      mathutil.Percentage(final, estate),
	}
}
