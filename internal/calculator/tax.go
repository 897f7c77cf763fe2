// Package calculator implements the MoneyWiki calculators. Every calculator
// is a pure function of a policy set and an input record: it never fails,
// and non-positive or non-finite input yields the zero result.
package calculator

import (
	"github.com/iwvelando/moneywiki/internal/policy"
	"github.com/iwvelando/moneywiki/pkg/mathutil"
)

var round = mathutil.RoundWon

// IncomeTaxInput is an annual earned-income tax request.
type IncomeTaxInput struct {
	AnnualIncome float64 `json:"annualIncome"`
	// Dependents counts the filer, so values below one are raised to one.
	Dependents int `json:"dependents"`
}

// IncomeTaxResult breaks the annual tax down step by step.
type IncomeTaxResult struct {
	GrossIncome       float64 `json:"grossIncome"`
	IncomeDeduction   float64 `json:"incomeDeduction"`
	TaxableIncome     float64 `json:"taxableIncome"`
	PersonalDeduction float64 `json:"personalDeduction"`
	TaxBase           float64 `json:"taxBase"`
	CalculatedTax     float64 `json:"calculatedTax"`
	TaxCredit         float64 `json:"taxCredit"`
	FinalTax          float64 `json:"finalTax"`
	LocalTax          float64 `json:"localTax"`
	TotalTax          float64 `json:"totalTax"`
	EffectiveRate     float64 `json:"effectiveRate"`
}

// taxAssessment is the unrounded path from gross income to calculated tax.
type taxAssessment struct {
	deduction float64
	taxable   float64
	personal  float64
	base      float64
	tax       float64
}

func assess(p policy.IncomeTax, gross float64, dependents int) taxAssessment {
	if dependents < 1 {
		dependents = 1
	}
	var a taxAssessment
	a.deduction = p.DeductionTable().Evaluate(gross)
	a.taxable = gross - a.deduction
	a.personal = float64(dependents)*p.PersonalDeduction + p.StandardDeduction
	a.base = mathutil.Max(0, a.taxable-a.personal)
	a.tax = p.BracketTable().Evaluate(a.base)
	return a
}

// IncomeTax computes annual income tax on earned income: earned-income
// deduction, personal and standard deductions, progressive brackets, the
// capped earned-income credit and local income tax.
func IncomeTax(set *policy.Set, in IncomeTaxInput) IncomeTaxResult {
	gross := mathutil.NonNegative(in.AnnualIncome)
	if gross == 0 || set == nil {
		return IncomeTaxResult{}
	}

	p := set.IncomeTax
	a := assess(p, gross, in.Dependents)

	credit := mathutil.Min(p.CreditTable().Evaluate(a.tax), p.TaxCreditCap)
	final := mathutil.Max(0, a.tax-credit)
	local := round(final * p.LocalTaxRate)
	total := final + local

	return IncomeTaxResult{
		GrossIncome:       gross,
		IncomeDeduction:   round(a.deduction),
		TaxableIncome:     round(a.taxable),
		PersonalDeduction: a.personal,
		TaxBase:           round(a.base),
		CalculatedTax:     round(a.tax),
		TaxCredit:         round(credit),
		FinalTax:          round(final),
		LocalTax:          local,
		TotalTax:          round(total),
		EffectiveRate:     mathutil.Percentage(total, gross),
	}
}
