package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapitalGainsTax(t *testing.T) {
	set := defaultSet(t)

	tests := []struct {
		name      string
		input     CapitalGainsInput
		taxable   float64
		longTerm  float64
		deduction float64
		base      float64
		tax       float64
		total     float64
	}{
		{
			name: "single home with residence",
			input: CapitalGainsInput{
				SalePrice: 800_000_000, PurchasePrice: 500_000_000, Expenses: 5_000_000,
				Holdings: OneHouseTaxable, HoldingYears: 5, ResidenceYears: 2,
			},
			taxable:   295_000_000,
			longTerm:  28,
			deduction: 82_600_000,
			base:      209_900_000,
			tax:       59_822_000,
			total:     65_804_200,
		},
		{
			name: "exempt home above the price threshold",
			input: CapitalGainsInput{
				SalePrice: 1_500_000_000, PurchasePrice: 1_000_000_000,
				Holdings: OneHouseExempt, HoldingYears: 10, ResidenceYears: 10,
			},
			taxable:   100_000_000,
			longTerm:  80,
			deduction: 80_000_000,
			base:      17_500_000,
			tax:       1_365_000,
			total:     1_501_500,
		},
		{
			name: "three homes in a regulated area",
			input: CapitalGainsInput{
				SalePrice: 800_000_000, PurchasePrice: 500_000_000, Expenses: 5_000_000,
				Holdings: ThreeHouses, Regulated: true, HoldingYears: 5.5,
			},
			taxable:   295_000_000,
			longTerm:  10,
			deduction: 29_500_000,
			base:      263_000_000,
			tax:       158_900_000,
			total:     174_790_000,
		},
		{
			name: "non-business land",
			input: CapitalGainsInput{
				Kind: Land, SalePrice: 500_000_000, PurchasePrice: 200_000_000,
				NonBusinessLand: true, HoldingYears: 3,
			},
			taxable:   300_000_000,
			longTerm:  6,
			deduction: 18_000_000,
			base:      279_500_000,
			tax:       114_220_000,
			total:     125_642_000,
		},
		{
			name: "single home short of the residence requirement",
			input: CapitalGainsInput{
				SalePrice: 800_000_000, PurchasePrice: 500_000_000, Expenses: 5_000_000,
				Holdings: OneHouseTaxable, HoldingYears: 5, ResidenceYears: 1.9,
			},
			taxable:   295_000_000,
			longTerm:  10,
			deduction: 29_500_000,
			base:      263_000_000,
			tax:       80_000_000,
			total:     88_000_000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := CapitalGainsTax(set, tt.input)
			assert.Equal(t, tt.taxable, res.TaxableGain)
			assert.InDelta(t, tt.longTerm, res.LongTermRatePercent, 1e-9)
			assert.Equal(t, tt.deduction, res.LongTermDeduction)
			assert.Equal(t, 2_500_000.0, res.BasicDeduction)
			assert.Equal(t, tt.base, res.TaxBase)
			assert.Equal(t, tt.tax, res.Tax)
			assert.Equal(t, tt.total, res.TotalTax)
		})
	}

	t.Run("exempt home under the price threshold", func(t *testing.T) {
		res := CapitalGainsTax(set, CapitalGainsInput{
			SalePrice: 1_000_000_000, PurchasePrice: 600_000_000,
			Holdings: OneHouseExempt, HoldingYears: 3, ResidenceYears: 3,
		})
		assert.Equal(t, CapitalGainsResult{Gain: 400_000_000, ExemptGain: 400_000_000}, res)
	})

	t.Run("exempt share above the threshold", func(t *testing.T) {
		res := CapitalGainsTax(set, CapitalGainsInput{
			SalePrice: 1_500_000_000, PurchasePrice: 1_000_000_000,
			Holdings: OneHouseExempt, HoldingYears: 10, ResidenceYears: 10,
		})
		assert.Equal(t, 400_000_000.0, res.ExemptGain)
		assert.InDelta(t, 40, res.HoldingRatePercent, 1e-9)
		assert.InDelta(t, 40, res.ResidenceRatePercent, 1e-9)
	})

	t.Run("surcharge only in regulated areas", func(t *testing.T) {
		res := CapitalGainsTax(set, CapitalGainsInput{
			SalePrice: 800_000_000, PurchasePrice: 500_000_000, Expenses: 5_000_000,
			Holdings: TwoHouses, HoldingYears: 5,
		})
		assert.Zero(t, res.SurchargeRatePercent)
		assert.InDelta(t, 38, res.BaseRatePercent, 1e-9)
	})

	t.Run("loss", func(t *testing.T) {
		res := CapitalGainsTax(set, CapitalGainsInput{SalePrice: 400_000_000, PurchasePrice: 500_000_000})
		assert.Equal(t, CapitalGainsResult{}, res)
	})
}

func TestParseCapitalGainsEnums(t *testing.T) {
	kind, err := ParsePropertyKind("LAND")
	require.NoError(t, err)
	assert.Equal(t, Land, kind)
	_, err = ParsePropertyKind("boat")
	assert.Error(t, err)

	h, err := ParseHoldings("twohouses")
	require.NoError(t, err)
	assert.Equal(t, TwoHouses, h)
	h, err = ParseHoldings("")
	require.NoError(t, err)
	assert.Equal(t, OneHouseTaxable, h)
	_, err = ParseHoldings("castle")
	assert.Error(t, err)
}
