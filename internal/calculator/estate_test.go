package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGiftTax(t *testing.T) {
	set := defaultSet(t)

	tests := []struct {
		name      string
		input     GiftTaxInput
		base      float64
		tax       float64
		surcharge float64
		discount  float64
		final     float64
	}{
		{
			name:     "adult child within the first bracket",
			input:    GiftTaxInput{Amount: 100_000_000, Relationship: AdultChild},
			base:     50_000_000,
			tax:      5_000_000,
			discount: 150_000,
			final:    4_850_000,
		},
		{
			name:     "earlier gifts count toward the exemption",
			input:    GiftTaxInput{Amount: 30_000_000, PreviousGifts: 40_000_000, Relationship: AdultChild},
			base:     20_000_000,
			tax:      2_000_000,
			discount: 60_000,
			final:    1_940_000,
		},
		{
			name:      "generation-skipping gift to a minor",
			input:     GiftTaxInput{Amount: 300_000_000, Relationship: MinorChild, GenerationSkip: true},
			base:      280_000_000,
			tax:       46_000_000,
			surcharge: 13_800_000,
			discount:  1_794_000,
			final:     58_006_000,
		},
		{
			name:      "large generation-skipping gift to a minor",
			input:     GiftTaxInput{Amount: 2_500_000_000, Relationship: MinorChild, GenerationSkip: true},
			base:      2_480_000_000,
			tax:       832_000_000,
			surcharge: 332_800_000,
			discount:  34_944_000,
			final:     1_129_856_000,
		},
		{
			name:  "spouse under the exemption",
			input: GiftTaxInput{Amount: 500_000_000, Relationship: Spouse},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := GiftTax(set, tt.input)
			assert.Equal(t, tt.base, res.TaxBase)
			assert.Equal(t, tt.tax, res.CalculatedTax)
			assert.Equal(t, tt.surcharge, res.GenerationSurcharge)
			assert.Equal(t, tt.discount, res.SelfReportDiscount)
			assert.Equal(t, tt.final, res.FinalTax)
		})
	}

	t.Run("effective rate and marginal rate", func(t *testing.T) {
		res := GiftTax(set, GiftTaxInput{Amount: 100_000_000, Relationship: AdultChild})
		assert.Equal(t, 50_000_000.0, res.Exemption)
		assert.InDelta(t, 4.85, res.EffectiveRate, 1e-9)
		assert.InDelta(t, 10, res.MarginalRate, 1e-9)
	})

	t.Run("non-positive gift", func(t *testing.T) {
		assert.Equal(t, GiftTaxResult{}, GiftTax(set, GiftTaxInput{Amount: -1, PreviousGifts: 1e9}))
		assert.Equal(t, GiftTaxResult{}, GiftTax(nil, GiftTaxInput{Amount: 1e9}))
	})
}

func TestParseRelationship(t *testing.T) {
	r, err := ParseRelationship("MinorChild")
	require.NoError(t, err)
	assert.Equal(t, MinorChild, r)

	r, err = ParseRelationship("")
	require.NoError(t, err)
	assert.Equal(t, AdultChild, r)

	_, err = ParseRelationship("cousin")
	assert.Error(t, err)
}

func TestInheritanceTax(t *testing.T) {
	set := defaultSet(t)

	t.Run("spouse and two children", func(t *testing.T) {
		res := InheritanceTax(set, InheritanceTaxInput{
			Estate:            3_000_000_000,
			FuneralCosts:      10_000_000,
			HasSpouse:         true,
			SpouseInheritance: 1_000_000_000,
			Children:          2,
		})
		assert.Equal(t, InheritanceTaxResult{
			NetEstate:          2_990_000_000,
			BasicDeduction:     200_000_000,
			ChildDeduction:     100_000_000,
			OtherDeduction:     500_000_000,
			SpouseDeduction:    1_000_000_000,
			TotalDeduction:     1_500_000_000,
			TaxBase:            1_490_000_000,
			MarginalRate:       res.MarginalRate,
			CalculatedTax:      436_000_000,
			SelfReportDiscount: 13_080_000,
			FinalTax:           422_920_000,
			EffectiveRate:      res.EffectiveRate,
		}, res)
		assert.InDelta(t, 40, res.MarginalRate, 1e-9)
		assert.InDelta(t, 14.097333, res.EffectiveRate, 1e-6)
	})

	t.Run("spouse deduction raised to the minimum", func(t *testing.T) {
		res := InheritanceTax(set, InheritanceTaxInput{
			Estate:            1_000_000_000,
			FuneralCosts:      10_000_000,
			HasSpouse:         true,
			SpouseInheritance: 500_000_000,
			Children:          2,
		})
		assert.Equal(t, 500_000_000.0, res.SpouseDeduction)
		assert.Equal(t, 1_000_000_000.0, res.TotalDeduction)
		assert.Zero(t, res.TaxBase)
		assert.Zero(t, res.FinalTax)
	})

	t.Run("spouse deduction capped", func(t *testing.T) {
		res := InheritanceTax(set, InheritanceTaxInput{
			Estate:            40_000_000_000,
			HasSpouse:         true,
			SpouseInheritance: 40_000_000_000,
		})
		assert.Equal(t, 3_000_000_000.0, res.SpouseDeduction)
		assert.Equal(t, 36_500_000_000.0, res.TaxBase)
		assert.Equal(t, 17_790_000_000.0, res.CalculatedTax)
	})

	tests := []struct {
		name     string
		children int
		other    float64
		final    float64
	}{
		{"lump sum beats itemised", 4, 500_000_000, 426_800_000},
		{"itemised beats lump sum", 8, 600_000_000, 388_000_000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := InheritanceTax(set, InheritanceTaxInput{Estate: 2_000_000_000, Children: tt.children})
			assert.Equal(t, tt.other, res.OtherDeduction)
			assert.Zero(t, res.SpouseDeduction)
			assert.Equal(t, tt.final, res.FinalTax)
		})
	}

	t.Run("debts exceed the estate", func(t *testing.T) {
		res := InheritanceTax(set, InheritanceTaxInput{Estate: 100_000_000, Debts: 300_000_000})
		assert.Zero(t, res.NetEstate)
		assert.Zero(t, res.FinalTax)
	})

	assert.Equal(t, InheritanceTaxResult{}, InheritanceTax(set, InheritanceTaxInput{}))
}
