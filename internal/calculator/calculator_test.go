package calculator

import (
	"math"
	"testing"

	"github.com/iwvelando/moneywiki/internal/policy"
	"github.com/iwvelando/moneywiki/pkg/constants"
	"github.com/iwvelando/moneywiki/pkg/datetime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultSet(t *testing.T) *policy.Set {
	t.Helper()
	reg, err := policy.Defaults()
	require.NoError(t, err)
	return reg.Latest()
}

func date(s string) datetime.Date {
	return datetime.NewDate(datetime.MustParseTime(datetime.DateLayout, s))
}

func TestIncomeTax(t *testing.T) {
	set := defaultSet(t)

	res := IncomeTax(set, IncomeTaxInput{AnnualIncome: 50_000_000, Dependents: 1})
	assert.Equal(t, 12_250_000.0, res.IncomeDeduction)
	assert.Equal(t, 37_750_000.0, res.TaxableIncome)
	assert.Equal(t, 2_800_000.0, res.PersonalDeduction)
	assert.Equal(t, 34_950_000.0, res.TaxBase)
	assert.Equal(t, 3_982_500.0, res.CalculatedTax)
	assert.Equal(t, 740_000.0, res.TaxCredit, "credit is capped")
	assert.Equal(t, 3_242_500.0, res.FinalTax)
	assert.Equal(t, 324_250.0, res.LocalTax)
	assert.Equal(t, 3_566_750.0, res.TotalTax)
	assert.InDelta(t, 7.1335, res.EffectiveRate, 1e-6)

	t.Run("dependents below one count the filer", func(t *testing.T) {
		zero := IncomeTax(set, IncomeTaxInput{AnnualIncome: 50_000_000})
		assert.Equal(t, res, zero)
	})

	t.Run("more dependents never raise tax", func(t *testing.T) {
		more := IncomeTax(set, IncomeTaxInput{AnnualIncome: 50_000_000, Dependents: 4})
		assert.Less(t, more.TotalTax, res.TotalTax)
	})

	t.Run("invalid input yields the zero result", func(t *testing.T) {
		for _, income := range []float64{0, -1, math.NaN(), math.Inf(1)} {
			assert.Equal(t, IncomeTaxResult{}, IncomeTax(set, IncomeTaxInput{AnnualIncome: income}))
		}
		assert.Equal(t, IncomeTaxResult{}, IncomeTax(nil, IncomeTaxInput{AnnualIncome: 1}))
	})
}

func TestNetSalary(t *testing.T) {
	set := defaultSet(t)

	res := NetSalary(set, NetSalaryInput{AnnualSalary: 60_000_000, Dependents: 1})
	assert.Equal(t, 5_000_000.0, res.MonthlySalary)
	assert.Equal(t, 225_000.0, res.NationalPension)
	assert.Equal(t, 177_250.0, res.HealthInsurance)
	assert.Equal(t, 22_954.0, res.LongTermCare)
	assert.Equal(t, 45_000.0, res.EmploymentInsurance)
	assert.Equal(t, 450_625.0, res.IncomeTax)
	assert.Equal(t, 45_063.0, res.LocalIncomeTax)
	assert.InDelta(t, 965_892, res.TotalDeduction, 1)
	assert.InDelta(t, 4_034_108, res.MonthlyNet, 1)
	assert.InDelta(t, res.MonthlyNet*12, res.AnnualNet, 12)

	t.Run("pension contribution is capped", func(t *testing.T) {
		high := NetSalary(set, NetSalaryInput{AnnualSalary: 120_000_000})
		assert.Equal(t, 265_500.0, high.NationalPension)
	})

	t.Run("non-taxable allowance lowers deductions", func(t *testing.T) {
		meal := NetSalary(set, NetSalaryInput{AnnualSalary: 60_000_000, Dependents: 1, NonTaxable: 200_000})
		assert.Less(t, meal.TotalDeduction, res.TotalDeduction)
		assert.Greater(t, meal.MonthlyNet, res.MonthlyNet)
	})

	t.Run("children count as dependents", func(t *testing.T) {
		kids := NetSalary(set, NetSalaryInput{AnnualSalary: 60_000_000, Dependents: 1, Children: 2})
		assert.Less(t, kids.IncomeTax, res.IncomeTax)
	})

	assert.Equal(t, NetSalaryResult{}, NetSalary(set, NetSalaryInput{AnnualSalary: -5}))
}

func TestUnemploymentBenefit(t *testing.T) {
	set := defaultSet(t)

	tests := []struct {
		name   string
		input  UnemploymentInput
		daily  float64
		floor  bool
		cap    bool
		days   int
		total  float64
		raw    float64
		avgDay float64
	}{
		{
			name:   "floor applies",
			input:  UnemploymentInput{MonthlyWage: 3_000_000, InsuredPeriod: Insured3To5},
			daily:  66_048,
			floor:  true,
			days:   180,
			total:  11_888_640,
			raw:    60_000,
			avgDay: 100_000,
		},
		{
			name:   "cap applies",
			input:  UnemploymentInput{MonthlyWage: 5_000_000, InsuredPeriod: Insured3To5},
			daily:  68_100,
			cap:    true,
			days:   180,
			total:  12_258_000,
			raw:    100_000,
			avgDay: 166_667,
		},
		{
			name:   "over fifty gets extended days",
			input:  UnemploymentInput{MonthlyWage: 5_000_000, InsuredPeriod: Insured3To5, Over50: true},
			daily:  68_100,
			cap:    true,
			days:   210,
			total:  14_301_000,
			raw:    100_000,
			avgDay: 166_667,
		},
		{
			name:   "blank band defaults to three to five years",
			input:  UnemploymentInput{MonthlyWage: 3_000_000},
			daily:  66_048,
			floor:  true,
			days:   180,
			total:  11_888_640,
			raw:    60_000,
			avgDay: 100_000,
		},
		{
			name:   "unknown band pays no days",
			input:  UnemploymentInput{MonthlyWage: 3_000_000, InsuredPeriod: "forever"},
			daily:  66_048,
			floor:  true,
			raw:    60_000,
			avgDay: 100_000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := UnemploymentBenefit(set, tt.input)
			assert.Equal(t, tt.daily, res.DailyBenefit)
			assert.Equal(t, tt.floor, res.AtFloor)
			assert.Equal(t, tt.cap, res.AtCap)
			assert.Equal(t, tt.days, res.BenefitDays)
			assert.Equal(t, tt.total, res.TotalBenefit)
			assert.Equal(t, tt.raw, res.RawBenefit)
			assert.Equal(t, tt.avgDay, res.AverageDailyWage)
			assert.Equal(t, tt.daily*30, res.MonthlyBenefit)
		})
	}

	assert.Equal(t, UnemploymentResult{}, UnemploymentBenefit(set, UnemploymentInput{MonthlyWage: 0}))
}

func TestParseInsuredPeriod(t *testing.T) {
	band, err := ParseInsuredPeriod("OVER10")
	require.NoError(t, err)
	assert.Equal(t, InsuredOver10, band)

	_, err = ParseInsuredPeriod("decade")
	assert.Error(t, err)
}

func TestHourlyWage(t *testing.T) {
	set := defaultSet(t)

	t.Run("to monthly with holiday pay", func(t *testing.T) {
		res := HourlyWage(set, HourlyWageInput{Mode: ToMonthly, HourlyWage: 10_320, WeeklyHours: 40, IncludeHolidayPay: true})
		assert.Equal(t, 2_152_339.0, res.Monthly)
		assert.Equal(t, 82_560.0, res.Daily)
		assert.Equal(t, 2_152_339.0*12, res.Annual)
		assert.False(t, res.BelowMinimumWage)
	})

	t.Run("holiday pay needs fifteen hours", func(t *testing.T) {
		with := HourlyWage(set, HourlyWageInput{HourlyWage: 10_320, WeeklyHours: 14, IncludeHolidayPay: true})
		without := HourlyWage(set, HourlyWageInput{HourlyWage: 10_320, WeeklyHours: 14})
		assert.Equal(t, without.Monthly, with.Monthly)
	})

	t.Run("to hourly flags sub-minimum pay", func(t *testing.T) {
		res := HourlyWage(set, HourlyWageInput{Mode: ToHourly, MonthlyWage: 2_000_000, WeeklyHours: 40, IncludeHolidayPay: true})
		assert.Equal(t, 9_590.0, res.Hourly)
		assert.True(t, res.BelowMinimumWage)
		assert.Equal(t, 10_320.0, res.MinimumWage)
	})

	t.Run("missing hours yield no hourly rate", func(t *testing.T) {
		res := HourlyWage(set, HourlyWageInput{Mode: ToHourly, MonthlyWage: 2_000_000})
		assert.Zero(t, res.Hourly)
		assert.False(t, res.BelowMinimumWage)
	})
}

func TestParseWageMode(t *testing.T) {
	mode, err := ParseWageMode("toHourly")
	require.NoError(t, err)
	assert.Equal(t, ToHourly, mode)

	mode, err = ParseWageMode("")
	require.NoError(t, err)
	assert.Equal(t, ToMonthly, mode)

	_, err = ParseWageMode("weekly")
	assert.Error(t, err)
}

func TestWeeklyHolidayPay(t *testing.T) {
	set := defaultSet(t)

	tests := []struct {
		name     string
		input    WeeklyHolidayPayInput
		eligible bool
		holiday  float64
		monthly  float64
		belowMin bool
	}{
		{
			name:     "twenty hours over five days",
			input:    WeeklyHolidayPayInput{HourlyWage: 10_320, WeeklyHours: 20, WorkDays: 5},
			eligible: true,
			holiday:  41_280,
			monthly:  1_076_170,
		},
		{
			name:     "work days default to five",
			input:    WeeklyHolidayPayInput{HourlyWage: 10_320, WeeklyHours: 20},
			eligible: true,
			holiday:  41_280,
			monthly:  1_076_170,
		},
		{
			name:    "under fifteen hours",
			input:   WeeklyHolidayPayInput{HourlyWage: 10_320, WeeklyHours: 14, WorkDays: 5},
			monthly: 627_766,
		},
		{
			name:     "exactly fifteen hours qualifies",
			input:    WeeklyHolidayPayInput{HourlyWage: 10_000, WeeklyHours: 15, WorkDays: 3},
			eligible: true,
			holiday:  50_000,
			monthly:  869_000,
			belowMin: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := WeeklyHolidayPay(set, tt.input)
			assert.Equal(t, tt.eligible, res.Eligible)
			assert.Equal(t, tt.holiday, res.WeeklyHolidayPay)
			assert.Equal(t, tt.monthly, res.MonthlyPay)
			assert.Equal(t, tt.belowMin, res.BelowMinimumWage)
		})
	}
}

func TestCompoundInterest(t *testing.T) {
	res := CompoundInterest(CompoundInput{Principal: 10_000_000, RatePercent: 5, Years: 10, Frequency: 1})
	assert.Equal(t, 15_000_000.0, res.SimpleTotal)
	assert.Equal(t, 16_288_946.0, res.CompoundTotal)
	assert.Equal(t, 1_288_946.0, res.Difference)
	assert.Equal(t, 14.0, res.DoublingYears)

	require.Len(t, res.Yearly, 10)
	assert.Equal(t, YearRow{Year: 1, Simple: 10_500_000, Compound: 10_500_000}, res.Yearly[0])
	assert.Equal(t, res.CompoundTotal, res.Yearly[9].Compound)
	for i := 1; i < len(res.Yearly); i++ {
		assert.GreaterOrEqual(t, res.Yearly[i].Difference, res.Yearly[i-1].Difference)
	}

	t.Run("more frequent compounding grows faster", func(t *testing.T) {
		monthly := CompoundInterest(CompoundInput{Principal: 10_000_000, RatePercent: 5, Years: 10, Frequency: 12})
		assert.Greater(t, monthly.CompoundTotal, res.CompoundTotal)
		assert.Equal(t, res.SimpleTotal, monthly.SimpleTotal)
	})

	t.Run("table is capped", func(t *testing.T) {
		long := CompoundInterest(CompoundInput{Principal: 1_000, RatePercent: 1, Years: 150})
		assert.Len(t, long.Yearly, 100)
	})

	t.Run("zero rate yields the zero result", func(t *testing.T) {
		assert.Equal(t, CompoundResult{}, CompoundInterest(CompoundInput{Principal: 1_000, Years: 5}))
	})
}

func TestParseFrequency(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{"", 1},
		{"monthly", 12},
		{"Quarterly", 4},
		{"365", 365},
	}
	for _, tt := range tests {
		got, err := ParseFrequency(tt.input)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, got, tt.input)
	}

	_, err := ParseFrequency("weekly")
	assert.Error(t, err)
}

func TestDepositInterest(t *testing.T) {
	set := defaultSet(t)

	res := DepositInterest(set, DepositInput{Principal: 10_000_000, RatePercent: 3, Months: 12, TaxType: TaxGeneral})
	assert.Equal(t, InterestResult{
		TotalDeposit:       10_000_000,
		GrossInterest:      300_000,
		Tax:                46_200,
		NetInterest:        253_800,
		Total:              10_253_800,
		MonthlyNetInterest: 21_150,
	}, res)

	t.Run("preferred and exempt rates", func(t *testing.T) {
		preferred := DepositInterest(set, DepositInput{Principal: 10_000_000, RatePercent: 3, Months: 12, TaxType: TaxPreferred})
		assert.Equal(t, 28_500.0, preferred.Tax)
		exempt := DepositInterest(set, DepositInput{Principal: 10_000_000, RatePercent: 3, Months: 12, TaxType: TaxExempt})
		assert.Zero(t, exempt.Tax)
		assert.Equal(t, exempt.GrossInterest, exempt.NetInterest)
	})

	t.Run("monthly compounding earns more", func(t *testing.T) {
		compound := DepositInterest(set, DepositInput{Principal: 10_000_000, RatePercent: 3, Months: 12, Compound: true})
		assert.Equal(t, 304_160.0, compound.GrossInterest)
	})

	assert.Equal(t, InterestResult{}, DepositInterest(set, DepositInput{Principal: 10_000_000, Months: 12}))
}

func TestSavingsInterest(t *testing.T) {
	set := defaultSet(t)

	res := SavingsInterest(set, SavingsInput{MonthlyAmount: 1_000_000, RatePercent: 3, Months: 12})
	assert.Equal(t, InterestResult{
		TotalDeposit:  12_000_000,
		GrossInterest: 195_000,
		Tax:           30_030,
		NetInterest:   164_970,
		Total:         12_164_970,
	}, res)

	assert.Equal(t, InterestResult{}, SavingsInterest(set, SavingsInput{MonthlyAmount: 1_000_000, RatePercent: 3}))
}

func TestParseTaxType(t *testing.T) {
	tests := []struct {
		input    string
		expected TaxType
	}{
		{"", TaxGeneral},
		{"taxPreferred", TaxPreferred},
		{"taxFree", TaxExempt},
		{"exempt", TaxExempt},
	}
	for _, tt := range tests {
		got, err := ParseTaxType(tt.input)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, got)
	}

	_, err := ParseTaxType("offshore")
	assert.Error(t, err)
}

func TestSeverancePay(t *testing.T) {
	set := defaultSet(t)

	tests := []struct {
		name     string
		input    SeveranceInput
		expected SeveranceResult
	}{
		{
			name: "regular employee over three years",
			input: SeveranceInput{
				StartDate:   date("2023-01-01"),
				EndDate:     date("2025-12-31"),
				MonthlyBase: 3_000_000,
			},
			expected: SeveranceResult{
				Eligible:         true,
				TenureDays:       1096,
				WindowDays:       92,
				ThreeMonthWage:   9_000_000,
				TotalWage:        9_000_000,
				AverageDailyWage: 97_826,
				SeverancePay:     8_812_388,
			},
		},
		{
			name: "regular employee under a year",
			input: SeveranceInput{
				StartDate:   date("2025-06-01"),
				EndDate:     date("2025-12-31"),
				MonthlyBase: 3_000_000,
			},
			expected: SeveranceResult{TenureDays: 214, ShortfallDays: 151},
		},
		{
			name:     "missing dates",
			input:    SeveranceInput{MonthlyBase: 3_000_000},
			expected: SeveranceResult{},
		},
		{
			name:  "daily worker",
			input: SeveranceInput{WorkerType: DailyWorker, DailyWage: 150_000, WorkDays: 400},
			expected: SeveranceResult{
				Eligible:         true,
				TenureDays:       400,
				AverageDailyWage: 150_000,
				SeverancePay:     4_931_507,
			},
		},
		{
			name:  "daily worker short of a year",
			input: SeveranceInput{WorkerType: DailyWorker, DailyWage: 150_000, WorkDays: 252},
			expected: SeveranceResult{
				TenureDays:       252,
				ShortfallDays:    113,
				AverageDailyWage: 150_000,
			},
		},
		{
			name: "part-time worker",
			input: SeveranceInput{
				WorkerType:  PartTimeWorker,
				HourlyWage:  10_320,
				HoursPerDay: 5,
				DaysPerWeek: 5,
				WorkMonths:  12,
			},
			expected: SeveranceResult{
				Eligible:         true,
				TenureDays:       360,
				WindowDays:       92,
				ThreeMonthWage:   3_363_030,
				TotalWage:        3_363_030,
				AverageDailyWage: 36_555,
				SeverancePay:     1_081_618,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SeverancePay(set, tt.input))
		})
	}

	t.Run("bonus and leave add a quarter of the annual amount", func(t *testing.T) {
		res := SeverancePay(set, SeveranceInput{
			StartDate:      date("2023-01-01"),
			EndDate:        date("2025-12-31"),
			MonthlyBase:    3_000_000,
			AnnualBonus:    4_000_000,
			LeaveDays:      15,
			DailyLeaveRate: 60_000,
		})
		assert.Equal(t, 1_000_000.0, res.BonusPortion)
		assert.Equal(t, 225_000.0, res.LeavePortion)
		assert.Equal(t, 10_225_000.0, res.TotalWage)
	})

	t.Run("part-time under fifteen weekly hours", func(t *testing.T) {
		res := SeverancePay(set, SeveranceInput{
			WorkerType:  PartTimeWorker,
			HourlyWage:  10_320,
			HoursPerDay: 2,
			DaysPerWeek: 5,
			WorkMonths:  24,
		})
		assert.False(t, res.Eligible)
		assert.Zero(t, res.SeverancePay)
		assert.Zero(t, res.ShortfallDays)
	})

	t.Run("service beyond the tenure limit", func(t *testing.T) {
		partTime := SeverancePay(set, SeveranceInput{
			WorkerType:  PartTimeWorker,
			HourlyWage:  10_320,
			HoursPerDay: 5,
			DaysPerWeek: 5,
			WorkMonths:  4e17,
		})
		assert.Equal(t, SeveranceResult{}, partTime)

		daily := SeverancePay(set, SeveranceInput{WorkerType: DailyWorker, DailyWage: 150_000, WorkDays: math.MaxInt})
		assert.Equal(t, SeveranceResult{}, daily)
	})

	t.Run("service at the tenure limit", func(t *testing.T) {
		res := SeverancePay(set, SeveranceInput{
			WorkerType:  PartTimeWorker,
			HourlyWage:  10_320,
			HoursPerDay: 5,
			DaysPerWeek: 5,
			WorkMonths:  constants.MaxWorkMonths,
		})
		assert.True(t, res.Eligible)
		assert.Equal(t, constants.MaxWorkMonths*constants.DaysPerMonth, res.TenureDays)
		assert.Positive(t, res.SeverancePay)
	})
}

func TestVehicleTax(t *testing.T) {
	set := defaultSet(t)

	tests := []struct {
		name     string
		input    VehicleTaxInput
		expected VehicleTaxResult
	}{
		{
			name:  "new two-litre passenger car",
			input: VehicleTaxInput{Type: Passenger, Displacement: 1998},
			expected: VehicleTaxResult{
				BaseTax:              399_600,
				EducationTax:         119_880,
				TotalTax:             519_480,
				HalfYearTax:          259_740,
				AnnualPrepayDiscount: 23_896,
				AnnualPrepayTotal:    495_584,
			},
		},
		{
			name:  "five-year-old passenger car",
			input: VehicleTaxInput{Type: Passenger, Displacement: 1998, AgeYears: 5},
			expected: VehicleTaxResult{
				BaseTax:              399_600,
				AgeDiscountPercent:   15,
				DiscountAmount:       59_940,
				EducationTax:         101_898,
				TotalTax:             441_558,
				HalfYearTax:          220_779,
				AnnualPrepayDiscount: 20_312,
				AnnualPrepayTotal:    421_246,
			},
		},
		{
			name:  "hybrid at a bracket edge",
			input: VehicleTaxInput{Type: Hybrid, Displacement: 1600, AgeYears: 3},
			expected: VehicleTaxResult{
				BaseTax:              224_000,
				AgeDiscountPercent:   5,
				DiscountAmount:       11_200,
				EducationTax:         63_840,
				TotalTax:             276_640,
				HalfYearTax:          138_320,
				AnnualPrepayDiscount: 12_725,
				AnnualPrepayTotal:    263_915,
			},
		},
		{
			name:  "private electric car",
			input: VehicleTaxInput{Type: Electric, AgeYears: 9},
			expected: VehicleTaxResult{
				BaseTax:              100_000,
				EducationTax:         30_000,
				TotalTax:             130_000,
				HalfYearTax:          65_000,
				AnnualPrepayDiscount: 5_980,
				AnnualPrepayTotal:    124_020,
			},
		},
		{
			name:  "business van gets no age discount",
			input: VehicleTaxInput{Type: Commercial, Displacement: 2500, AgeYears: 8, Business: true},
			expected: VehicleTaxResult{
				BaseTax:              60_000,
				EducationTax:         18_000,
				TotalTax:             78_000,
				HalfYearTax:          39_000,
				AnnualPrepayDiscount: 3_588,
				AnnualPrepayTotal:    74_412,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, VehicleTax(set, tt.input))
		})
	}

	assert.Equal(t, VehicleTaxResult{}, VehicleTax(set, VehicleTaxInput{Type: Passenger}))
}

func TestVehicleTaxCountsCompletedYears(t *testing.T) {
	set := defaultSet(t)

	tests := []struct {
		age      float64
		discount float64
	}{
		{2.5, 0},
		{2.99, 0},
		{3, 5},
		{3.9, 5},
		{11.5, 45},
		{12, 50},
	}

	for _, tt := range tests {
		res := VehicleTax(set, VehicleTaxInput{Type: Passenger, Displacement: 1998, AgeYears: tt.age})
		assert.Equal(t, tt.discount, res.AgeDiscountPercent, "age %v", tt.age)
	}
}

func TestLoanRepayment(t *testing.T) {
	res := LoanRepayment(nil, LoanInput{Principal: 100_000_000, RatePercent: 5, Months: 12})
	require.Len(t, res.Payments, 12)
	assert.Equal(t, 8_560_748.0, res.MonthlyPayment)
	assert.Equal(t, res.FirstPayment, res.MonthlyPayment)
	assert.InDelta(t, 2_728_978, res.TotalInterest, 1)
	assert.InDelta(t, 102_728_978, res.TotalPayment, 1)

	empty := LoanRepayment(nil, LoanInput{Principal: 100_000_000, RatePercent: 5, Months: -3})
	assert.True(t, empty.Empty())
	assert.Zero(t, empty.MonthlyPayment)
}
