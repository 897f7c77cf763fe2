package main

import (
	"fmt"

	"github.com/iwvelando/moneywiki/pkg/output"
	"github.com/spf13/cobra"
)

func (a *app) policyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "policy",
		Short: "Show the policy constants in force for a year",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := a.service.Policy(a.year)
			if err != nil {
				return err
			}
			rate := func(fraction float64) output.Percent { return output.Percent(fraction * 100) }

			return a.render(cmd, output.Report{
				Title: fmt.Sprintf("Policy constants (%d)", set.Year),
				Rows: []output.Row{
					{Label: "Active year", Value: a.service.ActiveYear()},
					{Label: "Available years", Value: fmt.Sprint(a.service.Registry().Years())},
					{Label: "Minimum hourly wage", Value: set.MinimumWage},
					{Label: "Personal deduction", Value: set.IncomeTax.PersonalDeduction},
					{Label: "Local income tax rate", Value: rate(set.IncomeTax.LocalTaxRate)},
					{Label: "Earned income tax credit cap", Value: set.IncomeTax.TaxCreditCap},
					{Label: "National pension", Value: rate(set.Insurance.NationalPension)},
					{Label: "Health insurance", Value: rate(set.Insurance.Health)},
					{Label: "Employment insurance", Value: rate(set.Insurance.Employment)},
					{Label: "Unemployment daily floor", Value: set.Unemployment.Floor},
					{Label: "Unemployment daily cap", Value: set.Unemployment.Cap},
					{Label: "Interest tax (general)", Value: rate(set.InterestTax.General)},
					{Label: "Interest tax (preferred)", Value: rate(set.InterestTax.Preferred)},
					{Label: "Weekly holiday threshold hours", Value: set.Wage.WeeklyHolidayThresholdHours},
					{Label: "Severance minimum tenure days", Value: set.Severance.MinimumTenureDays},
				},
				Data: set,
			})
		},
	}
}
