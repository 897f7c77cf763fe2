package calculator

import (
	"fmt"
	"math"
	"strings"

	"github.com/iwvelando/moneywiki/internal/policy"
	"github.com/iwvelando/moneywiki/pkg/constants"
	"github.com/iwvelando/moneywiki/pkg/mathutil"
)

// PropertyKind distinguishes housing from land.
type PropertyKind string

const (
	House PropertyKind = "house"
	Land  PropertyKind = "land"
)

// ParsePropertyKind accepts the canonical names case-insensitively.
func ParsePropertyKind(s string) (PropertyKind, error) {
	switch PropertyKind(strings.ToLower(strings.TrimSpace(s))) {
	case "", House:
		return House, nil
	case Land:
		return Land, nil
	}
	return "", fmt.Errorf("unknown property kind %q", s)
}

// Holdings is how many homes the seller's household owns.
type Holdings string

const (
	// OneHouseExempt meets the single-home holding and residence conditions.
	OneHouseExempt  Holdings = "oneHouseExempt"
	OneHouseTaxable Holdings = "oneHouseTaxable"
	TwoHouses       Holdings = "twoHouses"
	ThreeHouses     Holdings = "threeHouses"
)

var holdings = []Holdings{OneHouseExempt, OneHouseTaxable, TwoHouses, ThreeHouses}

// ParseHoldings accepts the canonical names case-insensitively.
func ParseHoldings(s string) (Holdings, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return OneHouseTaxable, nil
	}
	for _, h := range holdings {
		if strings.ToLower(string(h)) == name {
			return h, nil
		}
	}
	return "", fmt.Errorf("unknown holdings %q", s)
}

// CapitalGainsInput describes one real-estate sale.
type CapitalGainsInput struct {
	Kind          PropertyKind `json:"kind"`
	SalePrice     float64      `json:"salePrice"`
	PurchasePrice float64      `json:"purchasePrice"`
	Expenses      float64      `json:"expenses"`
	Holdings      Holdings     `json:"holdings"`
	// Regulated marks an adjustment-target area, where multi-home sales pay
	// a surcharge.
	Regulated       bool    `json:"regulated"`
	NonBusinessLand bool    `json:"nonBusinessLand"`
	HoldingYears    float64 `json:"holdingYears"`
	ResidenceYears  float64 `json:"residenceYears"`
}

// CapitalGainsResult breaks the transfer income tax down step by step.
type CapitalGainsResult struct {
	Gain                 float64 `json:"gain"`
	ExemptGain           float64 `json:"exemptGain"`
	TaxableGain          float64 `json:"taxableGain"`
	HoldingRatePercent   float64 `json:"holdingRatePercent"`
	ResidenceRatePercent float64 `json:"residenceRatePercent"`
	LongTermRatePercent  float64 `json:"longTermRatePercent"`
	LongTermDeduction    float64 `json:"longTermDeduction"`
	BasicDeduction       float64 `json:"basicDeduction"`
	TaxBase              float64 `json:"taxBase"`
	BaseRatePercent      float64 `json:"baseRatePercent"`
	SurchargeRatePercent float64 `json:"surchargeRatePercent"`
	Tax                  float64 `json:"tax"`
	LocalTax             float64 `json:"localTax"`
	TotalTax             float64 `json:"totalTax"`
}

// surchargeRate is the flat rate added to every bracket for multi-home sales
// in regulated areas and for non-business land.
func surchargeRate(p policy.CapitalGainsTax, in CapitalGainsInput) float64 {
	switch {
	case in.Kind == Land && in.NonBusinessLand:
		return p.NonBusinessLandRate
	case in.Kind == Land:
		return 0
	case in.Holdings == TwoHouses && in.Regulated:
		return p.TwoHouseRate
	case in.Holdings == ThreeHouses && in.Regulated:
		return p.ThreeHouseRate
	}
	return 0
}

// CapitalGainsTax computes transfer income tax on a real-estate sale. A
// single home meeting the exemption conditions is exempt up to the policy
// price; above it only the share of the gain above that price is taxed.
// Holding and residence periods count completed years.
func CapitalGainsTax(set *policy.Set, in CapitalGainsInput) CapitalGainsResult {
	if set == nil {
		return CapitalGainsResult{}
	}
	p := set.CapitalGainsTax
	sale := mathutil.NonNegative(in.SalePrice)
	gain := sale - mathutil.NonNegative(in.PurchasePrice) - mathutil.NonNegative(in.Expenses)
	if gain <= 0 {
		return CapitalGainsResult{}
	}

	res := CapitalGainsResult{Gain: round(gain)}
	taxable := gain
	oneHouse := in.Kind != Land && (in.Holdings == OneHouseExempt || in.Holdings == OneHouseTaxable)
	if in.Kind != Land && in.Holdings == OneHouseExempt {
		if sale <= p.OneHouseExemptPrice {
			res.ExemptGain = res.Gain
			return res
		}
		taxable = round(gain * (sale - p.OneHouseExemptPrice) / sale)
	}
	res.TaxableGain = round(taxable)
	res.ExemptGain = round(gain - taxable)

	holdingYears := math.Floor(mathutil.NonNegative(in.HoldingYears))
	residenceYears := math.Floor(mathutil.NonNegative(in.ResidenceYears))
	var longTerm float64
	if oneHouse && residenceYears >= p.MinimumResidenceYears {
		var holding, residence float64
		holding, residence, longTerm = p.OneHouseLongTermRate(holdingYears, residenceYears)
		res.HoldingRatePercent = holding * constants.PercentageMultiplier
		res.ResidenceRatePercent = residence * constants.PercentageMultiplier
	} else {
		longTerm = p.GeneralLongTermRate(holdingYears)
		res.HoldingRatePercent = longTerm * constants.PercentageMultiplier
	}
	res.LongTermRatePercent = longTerm * constants.PercentageMultiplier
	res.LongTermDeduction = round(res.TaxableGain * longTerm)

	afterLongTerm := res.TaxableGain - res.LongTermDeduction
	if afterLongTerm > 0 {
		res.BasicDeduction = p.BasicDeduction
	}
	base := mathutil.Max(0, afterLongTerm-p.BasicDeduction)
	surcharge := surchargeRate(p, in)

	res.TaxBase = base
	res.BaseRatePercent = p.BracketTable().Marginal(base) * constants.PercentageMultiplier
	res.SurchargeRatePercent = surcharge * constants.PercentageMultiplier
	res.Tax = round(p.BracketTable().Evaluate(base) + base*surcharge)
	res.LocalTax = round(res.Tax * p.LocalTaxRate)
	res.TotalTax = res.Tax + res.LocalTax
	return res
}
