// Package policy holds the published constants (minimum wage, tax brackets,
// benefit limits, insurance rates) that change every policy year, and a
// registry that resolves the set in force for a given year.
package policy

import (
	"fmt"
	"math"

	"github.com/iwvelando/moneywiki/pkg/bracket"
)

// TierSpec is the configuration form of a bracket tier. UpTo is omitted on
// the last tier, which is unbounded.
type TierSpec struct {
	UpTo float64 `yaml:"upTo,omitempty" json:"upTo,omitempty"`
	Rate float64 `yaml:"rate" json:"rate"`
	Base float64 `yaml:"base,omitempty" json:"base,omitempty"`
}

// TableSpec is the configuration form of a bracket table.
type TableSpec []TierSpec

// Build validates the spec and returns the evaluable table.
func (ts TableSpec) Build() (bracket.Table, error) {
	tiers := make([]bracket.Tier, len(ts))
	for i, spec := range ts {
		upper := spec.UpTo
		if i == len(ts)-1 && upper == 0 {
			upper = math.Inf(1)
		}
		tiers[i] = bracket.Tier{UpperBound: upper, Rate: spec.Rate, Base: spec.Base}
	}
	return bracket.New(tiers)
}

// IncomeTax holds the progressive income-tax parameters.
type IncomeTax struct {
	Brackets              TableSpec `yaml:"brackets" json:"brackets"`
	EarnedIncomeDeduction TableSpec `yaml:"earnedIncomeDeduction" json:"earnedIncomeDeduction"`
	TaxCredit             TableSpec `yaml:"taxCredit" json:"taxCredit"`
	TaxCreditCap          float64   `yaml:"taxCreditCap" json:"taxCreditCap"`
	PersonalDeduction     float64   `yaml:"personalDeduction" json:"personalDeduction"`
	StandardDeduction     float64   `yaml:"standardDeduction" json:"standardDeduction"`
	LocalTaxRate          float64   `yaml:"localTaxRate" json:"localTaxRate"`

	brackets  bracket.Table
	deduction bracket.Table
	credit    bracket.Table
}

// BracketTable returns the compiled income-tax brackets.
func (p IncomeTax) BracketTable() bracket.Table { return p.brackets }

// DeductionTable returns the compiled earned-income deduction table.
func (p IncomeTax) DeductionTable() bracket.Table { return p.deduction }

// CreditTable returns the compiled earned-income tax-credit table.
func (p IncomeTax) CreditTable() bracket.Table { return p.credit }

// BenefitDays is the payout length for one insured-period band.
type BenefitDays struct {
	Standard int `yaml:"standard" json:"standard"`
	// Extended applies to claimants aged 50+ or registered as disabled.
	Extended int `yaml:"extended" json:"extended"`
}

// Unemployment holds job-seeking benefit parameters.
type Unemployment struct {
	ReplacementRate  float64                `yaml:"replacementRate" json:"replacementRate"`
	DailyWageDivisor float64                `yaml:"dailyWageDivisor" json:"dailyWageDivisor"`
	Floor            float64                `yaml:"floor" json:"floor"`
	Cap              float64                `yaml:"cap" json:"cap"`
	BenefitDays      map[string]BenefitDays `yaml:"benefitDays" json:"benefitDays"`
}

// Insurance holds employee social-insurance contribution rates.
type Insurance struct {
	NationalPension    float64 `yaml:"nationalPension" json:"nationalPension"`
	NationalPensionCap float64 `yaml:"nationalPensionCap" json:"nationalPensionCap"`
	Health             float64 `yaml:"health" json:"health"`
	// LongTermCare is a share of the health contribution, not of wages.
	LongTermCare float64 `yaml:"longTermCare" json:"longTermCare"`
	Employment   float64 `yaml:"employment" json:"employment"`
}

// Wage holds hourly-wage conversion parameters.
type Wage struct {
	WeeklyHolidayThresholdHours float64 `yaml:"weeklyHolidayThresholdHours" json:"weeklyHolidayThresholdHours"`
	WeeksPerMonth               float64 `yaml:"weeksPerMonth" json:"weeksPerMonth"`
}

// InterestTax holds withholding rates on interest income.
type InterestTax struct {
	General   float64 `yaml:"general" json:"general"`
	Preferred float64 `yaml:"preferred" json:"preferred"`
	Exempt    float64 `yaml:"exempt" json:"exempt"`
}

// VehicleTax holds the annual automobile tax parameters.
type VehicleTax struct {
	PassengerPerCC          TableSpec `yaml:"passengerPerCC" json:"passengerPerCC"`
	PassengerBusinessPerCC  TableSpec `yaml:"passengerBusinessPerCC" json:"passengerBusinessPerCC"`
	CommercialPerCC         float64   `yaml:"commercialPerCC" json:"commercialPerCC"`
	CommercialBusinessPerCC float64   `yaml:"commercialBusinessPerCC" json:"commercialBusinessPerCC"`
	Electric                float64   `yaml:"electric" json:"electric"`
	ElectricBusiness        float64   `yaml:"electricBusiness" json:"electricBusiness"`
	AgeDiscount             TableSpec `yaml:"ageDiscount" json:"ageDiscount"`
	EducationTaxRate        float64   `yaml:"educationTaxRate" json:"educationTaxRate"`
	AnnualPrepayDiscount    float64   `yaml:"annualPrepayDiscount" json:"annualPrepayDiscount"`

	passenger         bracket.Table
	passengerBusiness bracket.Table
	ageDiscount       bracket.Table
}

// PassengerRate returns the per-cc rate for a passenger car.
func (p VehicleTax) PassengerRate(cc float64, business bool) float64 {
	if business {
		return p.passengerBusiness.Lookup(cc)
	}
	return p.passenger.Lookup(cc)
}

// AgeDiscountRate returns the discount fraction for a vehicle age in years.
func (p VehicleTax) AgeDiscountRate(years float64) float64 {
	return p.ageDiscount.Lookup(years)
}

// Severance holds retirement-pay parameters.
type Severance struct {
	MinimumTenureDays int `yaml:"minimumTenureDays" json:"minimumTenureDays"`
	AverageWageMonths int `yaml:"averageWageMonths" json:"averageWageMonths"`
}

// GiftTax holds gift-tax parameters. Exemptions are keyed by the recipient's
// relationship to the donor and cover ten years of gifts.
type GiftTax struct {
	Brackets   TableSpec          `yaml:"brackets" json:"brackets"`
	Exemptions map[string]float64 `yaml:"exemptions" json:"exemptions"`
	// GenerationSkipSurcharge applies when a gift skips a generation; the
	// minor rate replaces it for gifts to minors above the threshold.
	GenerationSkipSurcharge      float64 `yaml:"generationSkipSurcharge" json:"generationSkipSurcharge"`
	GenerationSkipMinorSurcharge float64 `yaml:"generationSkipMinorSurcharge" json:"generationSkipMinorSurcharge"`
	GenerationSkipMinorThreshold float64 `yaml:"generationSkipMinorThreshold" json:"generationSkipMinorThreshold"`
	SelfReportDiscount           float64 `yaml:"selfReportDiscount" json:"selfReportDiscount"`

	brackets bracket.Table
}

// BracketTable returns the compiled gift-tax brackets.
func (p GiftTax) BracketTable() bracket.Table { return p.brackets }

// InheritanceTax holds estate-tax parameters.
type InheritanceTax struct {
	Brackets         TableSpec `yaml:"brackets" json:"brackets"`
	BasicDeduction   float64   `yaml:"basicDeduction" json:"basicDeduction"`
	ChildDeduction   float64   `yaml:"childDeduction" json:"childDeduction"`
	LumpSumDeduction float64   `yaml:"lumpSumDeduction" json:"lumpSumDeduction"`
	// SpouseShareWeight is the spouse's statutory share against one per child.
	SpouseShareWeight  float64 `yaml:"spouseShareWeight" json:"spouseShareWeight"`
	SpouseDeductionMin float64 `yaml:"spouseDeductionMin" json:"spouseDeductionMin"`
	SpouseDeductionMax float64 `yaml:"spouseDeductionMax" json:"spouseDeductionMax"`
	SelfReportDiscount float64 `yaml:"selfReportDiscount" json:"selfReportDiscount"`

	brackets bracket.Table
}

// BracketTable returns the compiled inheritance-tax brackets.
func (p InheritanceTax) BracketTable() bracket.Table { return p.brackets }

// CapitalGainsTax holds real-estate transfer income tax parameters. The
// long-term tables are keyed by whole years.
type CapitalGainsTax struct {
	Brackets              TableSpec `yaml:"brackets" json:"brackets"`
	BasicDeduction        float64   `yaml:"basicDeduction" json:"basicDeduction"`
	OneHouseExemptPrice   float64   `yaml:"oneHouseExemptPrice" json:"oneHouseExemptPrice"`
	MinimumResidenceYears float64   `yaml:"minimumResidenceYears" json:"minimumResidenceYears"`
	LongTermGeneral       TableSpec `yaml:"longTermGeneral" json:"longTermGeneral"`
	LongTermHolding       TableSpec `yaml:"longTermHolding" json:"longTermHolding"`
	LongTermResidence     TableSpec `yaml:"longTermResidence" json:"longTermResidence"`
	LongTermCap           float64   `yaml:"longTermCap" json:"longTermCap"`
	NonBusinessLandRate   float64   `yaml:"nonBusinessLandRate" json:"nonBusinessLandRate"`
	TwoHouseRate          float64   `yaml:"twoHouseRate" json:"twoHouseRate"`
	ThreeHouseRate        float64   `yaml:"threeHouseRate" json:"threeHouseRate"`
	LocalTaxRate          float64   `yaml:"localTaxRate" json:"localTaxRate"`

	brackets  bracket.Table
	general   bracket.Table
	holding   bracket.Table
	residence bracket.Table
}

// BracketTable returns the compiled transfer income tax brackets.
func (p CapitalGainsTax) BracketTable() bracket.Table { return p.brackets }

// GeneralLongTermRate is the holding-period deduction for most property.
func (p CapitalGainsTax) GeneralLongTermRate(years float64) float64 {
	return p.general.Lookup(years)
}

// OneHouseLongTermRate is the capped holding plus residence deduction for a
// household's single home.
func (p CapitalGainsTax) OneHouseLongTermRate(holdingYears, residenceYears float64) (holding, residence, total float64) {
	holding = p.holding.Lookup(holdingYears)
	residence = p.residence.Lookup(residenceYears)
	total = holding + residence
	if p.LongTermCap > 0 && total > p.LongTermCap {
		total = p.LongTermCap
	}
	return holding, residence, total
}

// Lending holds borrower regulation limits.
type Lending struct {
	// DSRLimit is the debt-service ratio ceiling as a fraction of income.
	DSRLimit float64 `yaml:"dsrLimit" json:"dsrLimit"`
}

// Set is every constant in force for one policy year.
type Set struct {
	Year         int          `yaml:"year" json:"year"`
	MinimumWage  float64      `yaml:"minimumWage" json:"minimumWage"`
	IncomeTax    IncomeTax    `yaml:"incomeTax" json:"incomeTax"`
	Unemployment Unemployment `yaml:"unemployment" json:"unemployment"`
	Insurance    Insurance    `yaml:"insurance" json:"insurance"`
	Wage         Wage         `yaml:"wage" json:"wage"`
	InterestTax  InterestTax  `yaml:"interestTax" json:"interestTax"`
	VehicleTax   VehicleTax   `yaml:"vehicleTax" json:"vehicleTax"`
	Severance    Severance    `yaml:"severance" json:"severance"`

	GiftTax         GiftTax         `yaml:"giftTax" json:"giftTax"`
	InheritanceTax  InheritanceTax  `yaml:"inheritanceTax" json:"inheritanceTax"`
	CapitalGainsTax CapitalGainsTax `yaml:"capitalGainsTax" json:"capitalGainsTax"`
	Lending         Lending         `yaml:"lending" json:"lending"`
}

// compile validates the set and builds every bracket table it carries.
func (s *Set) compile() error {
	if s.Year <= 0 {
		return fmt.Errorf("policy year must be positive, got %d", s.Year)
	}
	if s.Unemployment.Floor > s.Unemployment.Cap {
		return fmt.Errorf("policy %d: unemployment floor %.0f exceeds cap %.0f",
			s.Year, s.Unemployment.Floor, s.Unemployment.Cap)
	}
	if s.Lending.DSRLimit < 0 || s.Lending.DSRLimit > 1 {
		return fmt.Errorf("policy %d: dsr limit %v outside [0, 1]", s.Year, s.Lending.DSRLimit)
	}

	tables := []struct {
		name string
		spec TableSpec
		dst  *bracket.Table
	}{
		{"incomeTax.brackets", s.IncomeTax.Brackets, &s.IncomeTax.brackets},
		{"incomeTax.earnedIncomeDeduction", s.IncomeTax.EarnedIncomeDeduction, &s.IncomeTax.deduction},
		{"incomeTax.taxCredit", s.IncomeTax.TaxCredit, &s.IncomeTax.credit},
		{"vehicleTax.passengerPerCC", s.VehicleTax.PassengerPerCC, &s.VehicleTax.passenger},
		{"vehicleTax.passengerBusinessPerCC", s.VehicleTax.PassengerBusinessPerCC, &s.VehicleTax.passengerBusiness},
		{"vehicleTax.ageDiscount", s.VehicleTax.AgeDiscount, &s.VehicleTax.ageDiscount},
		{"giftTax.brackets", s.GiftTax.Brackets, &s.GiftTax.brackets},
		{"inheritanceTax.brackets", s.InheritanceTax.Brackets, &s.InheritanceTax.brackets},
		{"capitalGainsTax.brackets", s.CapitalGainsTax.Brackets, &s.CapitalGainsTax.brackets},
		{"capitalGainsTax.longTermGeneral", s.CapitalGainsTax.LongTermGeneral, &s.CapitalGainsTax.general},
		{"capitalGainsTax.longTermHolding", s.CapitalGainsTax.LongTermHolding, &s.CapitalGainsTax.holding},
		{"capitalGainsTax.longTermResidence", s.CapitalGainsTax.LongTermResidence, &s.CapitalGainsTax.residence},
	}
	for _, table := range tables {
		built, err := table.spec.Build()
		if err != nil {
			return fmt.Errorf("policy %d: %s: %w", s.Year, table.name, err)
		}
		*table.dst = built
	}
	return nil
}
