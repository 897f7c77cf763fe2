package calculator

import (
	"fmt"
	"math"
	"strings"

	"github.com/iwvelando/moneywiki/internal/policy"
	"github.com/iwvelando/moneywiki/pkg/constants"
	"github.com/iwvelando/moneywiki/pkg/mathutil"
)

// VehicleType selects the automobile tax schedule.
type VehicleType string

const (
	Passenger  VehicleType = "passenger"
	Hybrid     VehicleType = "hybrid"
	Commercial VehicleType = "commercial"
	Electric   VehicleType = "electric"
)

// ParseVehicleType accepts the canonical names case-insensitively.
func ParseVehicleType(s string) (VehicleType, error) {
	switch VehicleType(strings.ToLower(strings.TrimSpace(s))) {
	case "", Passenger:
		return Passenger, nil
	case Hybrid:
		return Hybrid, nil
	case Commercial:
		return Commercial, nil
	case Electric:
		return Electric, nil
	}
	return "", fmt.Errorf("unknown vehicle type %q", s)
}

// VehicleTaxInput describes one vehicle. AgeYears counts completed years;
// fractions are dropped.
type VehicleTaxInput struct {
	Type         VehicleType `json:"type"`
	Displacement float64     `json:"displacement"`
	AgeYears     float64     `json:"ageYears"`
	Business     bool        `json:"business"`
}

// VehicleTaxResult is the annual tax with its instalment options.
type VehicleTaxResult struct {
	BaseTax              float64 `json:"baseTax"`
	AgeDiscountPercent   float64 `json:"ageDiscountPercent"`
	DiscountAmount       float64 `json:"discountAmount"`
	EducationTax         float64 `json:"educationTax"`
	TotalTax             float64 `json:"totalTax"`
	HalfYearTax          float64 `json:"halfYearTax"`
	AnnualPrepayDiscount float64 `json:"annualPrepayDiscount"`
	AnnualPrepayTotal    float64 `json:"annualPrepayTotal"`
}

// VehicleTax computes the annual automobile tax. Electric cars pay a flat
// amount; the rest pay per cc. Only private combustion vehicles get the
// vehicle-age discount.
func VehicleTax(set *policy.Set, in VehicleTaxInput) VehicleTaxResult {
	if set == nil {
		return VehicleTaxResult{}
	}
	p := set.VehicleTax
	cc := mathutil.NonNegative(in.Displacement)

	var base, discountRate float64
	switch in.Type {
	case Electric:
		base = p.Electric
		if in.Business {
			base = p.ElectricBusiness
		}
	case Commercial:
		rate := p.CommercialPerCC
		if in.Business {
			rate = p.CommercialBusinessPerCC
		}
		base = cc * rate
	default:
		base = cc * p.PassengerRate(cc, in.Business)
	}
	if in.Type != Electric && !in.Business {
		discountRate = p.AgeDiscountRate(math.Floor(mathutil.NonNegative(in.AgeYears)))
	}
	if base == 0 {
		return VehicleTaxResult{}
	}

	discount := round(base * discountRate)
	discounted := base - discount
	education := round(discounted * p.EducationTaxRate)
	total := round(discounted + education)
	prepay := round(total * p.AnnualPrepayDiscount)

	return VehicleTaxResult{
		BaseTax:              round(base),
		AgeDiscountPercent:   discountRate * constants.PercentageMultiplier,
		DiscountAmount:       discount,
		EducationTax:         education,
		TotalTax:             total,
		HalfYearTax:          round(total / 2),
		AnnualPrepayDiscount: prepay,
		AnnualPrepayTotal:    total - prepay,
	}
}
