package main

import (
	"fmt"

	"github.com/iwvelando/moneywiki/internal/calculator"
	"github.com/iwvelando/moneywiki/pkg/datetime"
	"github.com/iwvelando/moneywiki/pkg/loans"
	"github.com/iwvelando/moneywiki/pkg/output"
	"github.com/iwvelando/moneywiki/pkg/validation"
	"github.com/spf13/cobra"
)

func (a *app) taxCmd() *cobra.Command {
	var in calculator.IncomeTaxInput
	cmd := &cobra.Command{
		Use:   "tax",
		Short: "Annual earned-income tax",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validation.RequireFinite(validation.Field{Name: "income", Value: in.AnnualIncome}); err != nil {
				return err
			}
			res, err := a.service.IncomeTax(a.year, in)
			if err != nil {
				return err
			}
			return a.render(cmd, output.Report{
				Title: "Income tax",
				Rows: []output.Row{
					{Label: "Gross income", Value: res.GrossIncome},
					{Label: "Earned income deduction", Value: res.IncomeDeduction},
					{Label: "Earned income", Value: res.TaxableIncome},
					{Label: "Personal deduction", Value: res.PersonalDeduction},
					{Label: "Tax base", Value: res.TaxBase},
					{Label: "Calculated tax", Value: res.CalculatedTax},
					{Label: "Earned income tax credit", Value: res.TaxCredit},
					{Label: "Income tax", Value: res.FinalTax},
					{Label: "Local income tax", Value: res.LocalTax},
					{Label: "Total tax", Value: res.TotalTax},
					{Label: "Effective rate", Value: output.Percent(res.EffectiveRate)},
				},
				Data: res,
			})
		},
	}
	cmd.Flags().Float64Var(&in.AnnualIncome, "income", 0, "annual gross earned income in won")
	cmd.Flags().IntVar(&in.Dependents, "dependents", 1, "dependents including the earner")
	return cmd
}

func (a *app) netSalaryCmd() *cobra.Command {
	var in calculator.NetSalaryInput
	cmd := &cobra.Command{
		Use:   "net-salary",
		Short: "Monthly take-home pay after insurance and withholding",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validation.RequireFinite(
				validation.Field{Name: "salary", Value: in.AnnualSalary},
				validation.Field{Name: "non-taxable", Value: in.NonTaxable},
			); err != nil {
				return err
			}
			res, err := a.service.NetSalary(a.year, in)
			if err != nil {
				return err
			}
			return a.render(cmd, output.Report{
				Title: "Net salary",
				Rows: []output.Row{
					{Label: "Monthly salary", Value: res.MonthlySalary},
					{Label: "National pension", Value: res.NationalPension},
					{Label: "Health insurance", Value: res.HealthInsurance},
					{Label: "Long-term care", Value: res.LongTermCare},
					{Label: "Employment insurance", Value: res.EmploymentInsurance},
					{Label: "Income tax", Value: res.IncomeTax},
					{Label: "Local income tax", Value: res.LocalIncomeTax},
					{Label: "Total deductions", Value: res.TotalDeduction},
					{Label: "Monthly take-home", Value: res.MonthlyNet},
					{Label: "Annual take-home", Value: res.AnnualNet},
				},
				Data: res,
			})
		},
	}
	cmd.Flags().Float64Var(&in.AnnualSalary, "salary", 0, "annual salary in won")
	cmd.Flags().IntVar(&in.Dependents, "dependents", 1, "dependents including the earner")
	cmd.Flags().IntVar(&in.Children, "children", 0, "children under 20")
	cmd.Flags().Float64Var(&in.NonTaxable, "non-taxable", 0, "monthly non-taxable allowance in won")
	return cmd
}

func (a *app) unemploymentCmd() *cobra.Command {
	var in calculator.UnemploymentInput
	cmd := &cobra.Command{
		Use:   "unemployment",
		Short: "Job-seeking benefit amount and days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validation.RequireFinite(validation.Field{Name: "wage", Value: in.MonthlyWage}); err != nil {
				return err
			}
			band, err := calculator.ParseInsuredPeriod(in.InsuredPeriod)
			if err != nil {
				return err
			}
			in.InsuredPeriod = band
			res, err := a.service.UnemploymentBenefit(a.year, in)
			if err != nil {
				return err
			}
			return a.render(cmd, output.Report{
				Title: "Unemployment benefit",
				Rows: []output.Row{
					{Label: "Average daily wage", Value: res.AverageDailyWage},
					{Label: "Daily benefit before limits", Value: res.RawBenefit},
					{Label: "Daily benefit", Value: res.DailyBenefit},
					{Label: "Raised to floor", Value: res.AtFloor},
					{Label: "Limited to cap", Value: res.AtCap},
					{Label: "Benefit days", Value: res.BenefitDays},
					{Label: "Monthly benefit", Value: res.MonthlyBenefit},
					{Label: "Total benefit", Value: res.TotalBenefit},
				},
				Data: res,
			})
		},
	}
	cmd.Flags().Float64Var(&in.MonthlyWage, "wage", 0, "average monthly wage over the last three months in won")
	cmd.Flags().StringVar(&in.InsuredPeriod, "insured", "", "insured period band (under1, 1to3, 3to5, 5to10, over10)")
	cmd.Flags().BoolVar(&in.Over50, "over50", false, "claimant is 50 or older")
	cmd.Flags().BoolVar(&in.Disabled, "disabled", false, "claimant is registered disabled")
	return cmd
}

func (a *app) wageCmd() *cobra.Command {
	var (
		in   calculator.HourlyWageInput
		mode string
	)
	cmd := &cobra.Command{
		Use:   "wage",
		Short: "Convert between hourly and monthly wage and check the minimum wage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validation.RequireFinite(
				validation.Field{Name: "hourly", Value: in.HourlyWage},
				validation.Field{Name: "monthly", Value: in.MonthlyWage},
				validation.Field{Name: "weekly-hours", Value: in.WeeklyHours},
			); err != nil {
				return err
			}
			parsed, err := calculator.ParseWageMode(mode)
			if err != nil {
				return err
			}
			in.Mode = parsed
			res, err := a.service.HourlyWage(a.year, in)
			if err != nil {
				return err
			}
			return a.render(cmd, output.Report{
				Title: "Wage conversion",
				Rows: []output.Row{
					{Label: "Hourly", Value: res.Hourly},
					{Label: "Daily", Value: res.Daily},
					{Label: "Monthly", Value: res.Monthly},
					{Label: "Annual", Value: res.Annual},
					{Label: "Minimum wage", Value: res.MinimumWage},
					{Label: "Below minimum wage", Value: res.BelowMinimumWage},
				},
				Data: res,
			})
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "", "toMonthly (from --hourly) or toHourly (from --monthly)")
	cmd.Flags().Float64Var(&in.HourlyWage, "hourly", 0, "hourly wage in won")
	cmd.Flags().Float64Var(&in.MonthlyWage, "monthly", 0, "monthly wage in won")
	cmd.Flags().Float64Var(&in.WeeklyHours, "weekly-hours", 40, "contracted hours per week")
	cmd.Flags().BoolVar(&in.IncludeHolidayPay, "holiday-pay", true, "include paid weekly holiday hours")
	return cmd
}

func (a *app) holidayPayCmd() *cobra.Command {
	var in calculator.WeeklyHolidayPayInput
	cmd := &cobra.Command{
		Use:   "holiday-pay",
		Short: "Weekly holiday allowance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validation.RequireFinite(
				validation.Field{Name: "hourly", Value: in.HourlyWage},
				validation.Field{Name: "weekly-hours", Value: in.WeeklyHours},
			); err != nil {
				return err
			}
			res, err := a.service.WeeklyHolidayPay(a.year, in)
			if err != nil {
				return err
			}
			return a.render(cmd, output.Report{
				Title: "Weekly holiday pay",
				Rows: []output.Row{
					{Label: "Eligible", Value: res.Eligible},
					{Label: "Weekly holiday pay", Value: res.WeeklyHolidayPay},
					{Label: "Monthly holiday pay", Value: res.MonthlyPay},
					{Label: "Below minimum wage", Value: res.BelowMinimumWage},
				},
				Data: res,
			})
		},
	}
	cmd.Flags().Float64Var(&in.HourlyWage, "hourly", 0, "hourly wage in won")
	cmd.Flags().Float64Var(&in.WeeklyHours, "weekly-hours", 0, "contracted hours per week")
	cmd.Flags().IntVar(&in.WorkDays, "days", 5, "working days per week")
	return cmd
}

func (a *app) compoundCmd() *cobra.Command {
	var (
		in        calculator.CompoundInput
		frequency string
	)
	cmd := &cobra.Command{
		Use:   "compound",
		Short: "Simple versus compound growth of a lump sum",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validation.RequireFinite(
				validation.Field{Name: "principal", Value: in.Principal},
				validation.Field{Name: "rate", Value: in.RatePercent},
			); err != nil {
				return err
			}
			if err := validation.ValidateYears(in.Years); err != nil {
				return err
			}
			n, err := calculator.ParseFrequency(frequency)
			if err != nil {
				return err
			}
			in.Frequency = n
			res := a.service.CompoundInterest(in)

			table := &output.Table{Header: []string{"year", "simple", "compound", "difference"}}
			for _, row := range res.Yearly {
				table.Rows = append(table.Rows, []any{row.Year, row.Simple, row.Compound, row.Difference})
			}
			return a.render(cmd, output.Report{
				Title: "Compound interest",
				Rows: []output.Row{
					{Label: "Simple interest total", Value: res.SimpleTotal},
					{Label: "Compound interest total", Value: res.CompoundTotal},
					{Label: "Difference", Value: res.Difference},
					{Label: "Years to double (rule of 72)", Value: fmt.Sprintf("%.1f", res.DoublingYears)},
				},
				Table: table,
				Data:  res,
			})
		},
	}
	cmd.Flags().Float64Var(&in.Principal, "principal", 0, "initial amount in won")
	cmd.Flags().Float64Var(&in.RatePercent, "rate", 0, "annual interest rate in percent")
	cmd.Flags().IntVar(&in.Years, "years", 0, "investment horizon in years")
	cmd.Flags().StringVar(&frequency, "frequency", "yearly", "compounding frequency (yearly, halfYearly, quarterly, monthly, daily or 1/2/4/12/365)")
	return cmd
}

func interestRows(res calculator.InterestResult, depositLabel string) []output.Row {
	rows := []output.Row{
		{Label: depositLabel, Value: res.TotalDeposit},
		{Label: "Interest before tax", Value: res.GrossInterest},
		{Label: "Interest tax", Value: res.Tax},
		{Label: "Interest after tax", Value: res.NetInterest},
		{Label: "Amount at maturity", Value: res.Total},
	}
	if res.MonthlyNetInterest != 0 {
		rows = append(rows, output.Row{Label: "Monthly interest after tax", Value: res.MonthlyNetInterest})
	}
	return rows
}

func (a *app) depositCmd() *cobra.Command {
	var (
		in      calculator.DepositInput
		taxType string
	)
	cmd := &cobra.Command{
		Use:   "deposit",
		Short: "Term deposit interest after tax",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validation.RequireFinite(
				validation.Field{Name: "principal", Value: in.Principal},
				validation.Field{Name: "rate", Value: in.RatePercent},
			); err != nil {
				return err
			}
			parsed, err := calculator.ParseTaxType(taxType)
			if err != nil {
				return err
			}
			in.TaxType = parsed
			res, err := a.service.DepositInterest(a.year, in)
			if err != nil {
				return err
			}
			return a.render(cmd, output.Report{
				Title: "Term deposit",
				Rows:  interestRows(res, "Principal"),
				Data:  res,
			})
		},
	}
	cmd.Flags().Float64Var(&in.Principal, "principal", 0, "deposit amount in won")
	cmd.Flags().Float64Var(&in.RatePercent, "rate", 0, "annual interest rate in percent")
	cmd.Flags().IntVar(&in.Months, "months", 12, "term in months")
	cmd.Flags().StringVar(&taxType, "tax", "general", "interest tax type (general, preferred, exempt)")
	cmd.Flags().BoolVar(&in.Compound, "compound", false, "compound interest monthly")
	return cmd
}

func (a *app) savingsCmd() *cobra.Command {
	var (
		in      calculator.SavingsInput
		taxType string
	)
	cmd := &cobra.Command{
		Use:   "savings",
		Short: "Installment savings interest after tax",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validation.RequireFinite(
				validation.Field{Name: "monthly", Value: in.MonthlyAmount},
				validation.Field{Name: "rate", Value: in.RatePercent},
			); err != nil {
				return err
			}
			parsed, err := calculator.ParseTaxType(taxType)
			if err != nil {
				return err
			}
			in.TaxType = parsed
			res, err := a.service.SavingsInterest(a.year, in)
			if err != nil {
				return err
			}
			return a.render(cmd, output.Report{
				Title: "Installment savings",
				Rows:  interestRows(res, "Total deposited"),
				Data:  res,
			})
		},
	}
	cmd.Flags().Float64Var(&in.MonthlyAmount, "monthly", 0, "monthly installment in won")
	cmd.Flags().Float64Var(&in.RatePercent, "rate", 0, "annual interest rate in percent")
	cmd.Flags().IntVar(&in.Months, "months", 12, "term in months")
	cmd.Flags().StringVar(&taxType, "tax", "general", "interest tax type (general, preferred, exempt)")
	return cmd
}

func (a *app) severanceCmd() *cobra.Command {
	var (
		in         calculator.SeveranceInput
		workerType string
		start, end string
	)
	cmd := &cobra.Command{
		Use:   "severance",
		Short: "Retirement pay for regular, daily and part-time workers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validation.RequireFinite(
				validation.Field{Name: "monthly-base", Value: in.MonthlyBase},
				validation.Field{Name: "allowances", Value: in.Allowances},
				validation.Field{Name: "bonus", Value: in.AnnualBonus},
				validation.Field{Name: "leave-days", Value: in.LeaveDays},
				validation.Field{Name: "leave-rate", Value: in.DailyLeaveRate},
				validation.Field{Name: "daily-wage", Value: in.DailyWage},
				validation.Field{Name: "hourly", Value: in.HourlyWage},
				validation.Field{Name: "hours-per-day", Value: in.HoursPerDay},
				validation.Field{Name: "days-per-week", Value: in.DaysPerWeek},
			); err != nil {
				return err
			}
			wt, err := calculator.ParseWorkerType(workerType)
			if err != nil {
				return err
			}
			in.WorkerType = wt
			if err := validation.ValidateWorkMonths(in.WorkMonths); err != nil {
				return err
			}
			if err := validation.ValidateWorkDays(in.WorkDays); err != nil {
				return err
			}

			startDate, err := datetime.ParseDate(start)
			if err != nil {
				return fmt.Errorf("invalid --start: %w", err)
			}
			endDate, err := datetime.ParseDate(end)
			if err != nil {
				return fmt.Errorf("invalid --end: %w", err)
			}
			if err := validation.ValidateDateRange(startDate, endDate); err != nil {
				return err
			}
			in.StartDate, in.EndDate = datetime.NewDate(startDate), datetime.NewDate(endDate)

			res, err := a.service.SeverancePay(a.year, in)
			if err != nil {
				return err
			}
			return a.render(cmd, output.Report{
				Title: "Severance pay",
				Rows: []output.Row{
					{Label: "Eligible", Value: res.Eligible},
					{Label: "Tenure days", Value: res.TenureDays},
					{Label: "Days short of eligibility", Value: res.ShortfallDays},
					{Label: "Averaging window days", Value: res.WindowDays},
					{Label: "Three-month wage", Value: res.ThreeMonthWage},
					{Label: "Bonus portion", Value: res.BonusPortion},
					{Label: "Annual leave portion", Value: res.LeavePortion},
					{Label: "Total wage", Value: res.TotalWage},
					{Label: "Average daily wage", Value: res.AverageDailyWage},
					{Label: "Severance pay", Value: res.SeverancePay},
				},
				Data: res,
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&workerType, "type", "regular", "worker type (regular, daily, partTime)")
	f.StringVar(&start, "start", "", "employment start date (YYYY-MM-DD)")
	f.StringVar(&end, "end", "", "employment end date (YYYY-MM-DD)")
	f.Float64Var(&in.MonthlyBase, "monthly-base", 0, "monthly base pay in won")
	f.Float64Var(&in.Allowances, "allowances", 0, "monthly allowances in won")
	f.Float64Var(&in.AnnualBonus, "bonus", 0, "annual bonus in won")
	f.Float64Var(&in.LeaveDays, "leave-days", 0, "unused annual leave days")
	f.Float64Var(&in.DailyLeaveRate, "leave-rate", 0, "daily pay for unused leave in won")
	f.Float64Var(&in.DailyWage, "daily-wage", 0, "daily wage for daily workers in won")
	f.IntVar(&in.WorkDays, "work-days", 0, "days worked by a daily worker")
	f.Float64Var(&in.HourlyWage, "hourly", 0, "hourly wage for part-time workers in won")
	f.Float64Var(&in.HoursPerDay, "hours-per-day", 0, "part-time hours per day")
	f.Float64Var(&in.DaysPerWeek, "days-per-week", 0, "part-time days per week")
	f.IntVar(&in.WorkMonths, "work-months", 0, "months worked part-time")
	return cmd
}

func (a *app) vehicleTaxCmd() *cobra.Command {
	var (
		in          calculator.VehicleTaxInput
		vehicleType string
	)
	cmd := &cobra.Command{
		Use:   "vehicle-tax",
		Short: "Annual automobile tax",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validation.RequireFinite(
				validation.Field{Name: "cc", Value: in.Displacement},
				validation.Field{Name: "age", Value: in.AgeYears},
			); err != nil {
				return err
			}
			vt, err := calculator.ParseVehicleType(vehicleType)
			if err != nil {
				return err
			}
			in.Type = vt
			res, err := a.service.VehicleTax(a.year, in)
			if err != nil {
				return err
			}
			return a.render(cmd, output.Report{
				Title: "Vehicle tax",
				Rows: []output.Row{
					{Label: "Base tax", Value: res.BaseTax},
					{Label: "Age discount", Value: output.Percent(res.AgeDiscountPercent)},
					{Label: "Discount amount", Value: res.DiscountAmount},
					{Label: "Local education tax", Value: res.EducationTax},
					{Label: "Annual total", Value: res.TotalTax},
					{Label: "Per half-year instalment", Value: res.HalfYearTax},
					{Label: "Annual prepayment discount", Value: res.AnnualPrepayDiscount},
					{Label: "Annual prepayment total", Value: res.AnnualPrepayTotal},
				},
				Data: res,
			})
		},
	}
	cmd.Flags().StringVar(&vehicleType, "type", "passenger", "vehicle type (passenger, hybrid, commercial, electric)")
	cmd.Flags().Float64Var(&in.Displacement, "cc", 0, "engine displacement in cc")
	cmd.Flags().Float64Var(&in.AgeYears, "age", 0, "vehicle age in years")
	cmd.Flags().BoolVar(&in.Business, "business", false, "registered for business use")
	return cmd
}

func (a *app) loanCmd() *cobra.Command {
	var (
		in       calculator.LoanInput
		method   string
		schedule bool
	)
	cmd := &cobra.Command{
		Use:   "loan",
		Short: "Loan repayment schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validation.RequireFinite(
				validation.Field{Name: "principal", Value: in.Principal},
				validation.Field{Name: "rate", Value: in.RatePercent},
			); err != nil {
				return err
			}
			if err := validation.ValidateLoanMonths(in.Months); err != nil {
				return err
			}
			m, err := loans.ParseMethod(method)
			if err != nil {
				return err
			}
			in.Method = m
			res := a.service.LoanRepayment(in)

			report := output.Report{
				Title: "Loan repayment",
				Rows: []output.Row{
					{Label: "Method", Value: string(res.Method)},
					{Label: "Monthly payment", Value: res.MonthlyPayment},
					{Label: "First payment", Value: res.FirstPayment},
					{Label: "Last payment", Value: res.LastPayment},
					{Label: "Total interest", Value: res.TotalInterest},
					{Label: "Total repayment", Value: res.TotalPayment},
				},
				Data: res,
			}
			if schedule {
				report.Table = output.ScheduleTable(res.Schedule)
			}
			return a.render(cmd, report)
		},
	}
	cmd.Flags().Float64Var(&in.Principal, "principal", 0, "loan amount in won")
	cmd.Flags().Float64Var(&in.RatePercent, "rate", 0, "annual interest rate in percent")
	cmd.Flags().IntVar(&in.Months, "months", 12, "repayment term in months")
	cmd.Flags().StringVar(&method, "method", "equalPrincipalInterest", "repayment method (equalPrincipalInterest, equalPrincipal, bullet)")
	cmd.Flags().BoolVar(&schedule, "schedule", false, "print the per-period schedule")
	return cmd
}

func (a *app) giftTaxCmd() *cobra.Command {
	var (
		in           calculator.GiftTaxInput
		relationship string
	)
	cmd := &cobra.Command{
		Use:   "gift-tax",
		Short: "Gift tax by relationship with generation-skipping surcharge",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validation.RequireFinite(
				validation.Field{Name: "amount", Value: in.Amount},
				validation.Field{Name: "previous", Value: in.PreviousGifts},
			); err != nil {
				return err
			}
			r, err := calculator.ParseRelationship(relationship)
			if err != nil {
				return err
			}
			in.Relationship = r
			res, err := a.service.GiftTax(a.year, in)
			if err != nil {
				return err
			}
			return a.render(cmd, output.Report{
				Title: "Gift tax",
				Rows: []output.Row{
					{Label: "Gifts in ten years", Value: res.TotalGifts},
					{Label: "Exemption", Value: res.Exemption},
					{Label: "Tax base", Value: res.TaxBase},
					{Label: "Marginal rate", Value: output.Percent(res.MarginalRate)},
					{Label: "Calculated tax", Value: res.CalculatedTax},
					{Label: "Generation-skipping surcharge", Value: res.GenerationSurcharge},
					{Label: "Filing discount", Value: res.SelfReportDiscount},
					{Label: "Gift tax", Value: res.FinalTax},
					{Label: "Effective rate", Value: output.Percent(res.EffectiveRate)},
				},
				Data: res,
			})
		},
	}
	cmd.Flags().Float64Var(&in.Amount, "amount", 0, "gift amount in won")
	cmd.Flags().Float64Var(&in.PreviousGifts, "previous", 0, "gifts from the same donor in the previous ten years in won")
	cmd.Flags().StringVar(&relationship, "relationship", "adultChild", "recipient relationship (spouse, adultChild, minorChild, parent, otherRelative, nonRelative)")
	cmd.Flags().BoolVar(&in.GenerationSkip, "generation-skip", false, "gift skips a generation")
	return cmd
}

func (a *app) inheritanceTaxCmd() *cobra.Command {
	var in calculator.InheritanceTaxInput
	cmd := &cobra.Command{
		Use:   "inheritance-tax",
		Short: "Estate tax after spouse and lump-sum deductions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validation.RequireFinite(
				validation.Field{Name: "estate", Value: in.Estate},
				validation.Field{Name: "debts", Value: in.Debts},
				validation.Field{Name: "funeral", Value: in.FuneralCosts},
				validation.Field{Name: "spouse-share", Value: in.SpouseInheritance},
			); err != nil {
				return err
			}
			if in.Children < 0 {
				return fmt.Errorf("negative children %d: %w", in.Children, validation.ErrOutOfRange)
			}
			res, err := a.service.InheritanceTax(a.year, in)
			if err != nil {
				return err
			}
			return a.render(cmd, output.Report{
				Title: "Inheritance tax",
				Rows: []output.Row{
					{Label: "Net estate", Value: res.NetEstate},
					{Label: "Basic deduction", Value: res.BasicDeduction},
					{Label: "Child deduction", Value: res.ChildDeduction},
					{Label: "Basic or lump-sum deduction", Value: res.OtherDeduction},
					{Label: "Spouse deduction", Value: res.SpouseDeduction},
					{Label: "Total deduction", Value: res.TotalDeduction},
					{Label: "Tax base", Value: res.TaxBase},
					{Label: "Marginal rate", Value: output.Percent(res.MarginalRate)},
					{Label: "Calculated tax", Value: res.CalculatedTax},
					{Label: "Filing discount", Value: res.SelfReportDiscount},
					{Label: "Inheritance tax", Value: res.FinalTax},
					{Label: "Effective rate", Value: output.Percent(res.EffectiveRate)},
				},
				Data: res,
			})
		},
	}
	cmd.Flags().Float64Var(&in.Estate, "estate", 0, "gross estate in won")
	cmd.Flags().Float64Var(&in.Debts, "debts", 0, "debts of the deceased in won")
	cmd.Flags().Float64Var(&in.FuneralCosts, "funeral", 0, "funeral costs in won")
	cmd.Flags().BoolVar(&in.HasSpouse, "spouse", false, "a surviving spouse inherits")
	cmd.Flags().Float64Var(&in.SpouseInheritance, "spouse-share", 0, "amount the spouse actually inherits in won")
	cmd.Flags().IntVar(&in.Children, "children", 0, "number of children")
	return cmd
}

func (a *app) capitalGainsTaxCmd() *cobra.Command {
	var (
		in             calculator.CapitalGainsInput
		kind, holdings string
	)
	cmd := &cobra.Command{
		Use:   "capital-gains-tax",
		Short: "Transfer income tax on a real-estate sale",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validation.RequireFinite(
				validation.Field{Name: "sale", Value: in.SalePrice},
				validation.Field{Name: "purchase", Value: in.PurchasePrice},
				validation.Field{Name: "expenses", Value: in.Expenses},
				validation.Field{Name: "holding-years", Value: in.HoldingYears},
				validation.Field{Name: "residence-years", Value: in.ResidenceYears},
			); err != nil {
				return err
			}
			k, err := calculator.ParsePropertyKind(kind)
			if err != nil {
				return err
			}
			h, err := calculator.ParseHoldings(holdings)
			if err != nil {
				return err
			}
			in.Kind, in.Holdings = k, h
			res, err := a.service.CapitalGainsTax(a.year, in)
			if err != nil {
				return err
			}
			return a.render(cmd, output.Report{
				Title: "Capital gains tax",
				Rows: []output.Row{
					{Label: "Gain", Value: res.Gain},
					{Label: "Exempt gain", Value: res.ExemptGain},
					{Label: "Taxable gain", Value: res.TaxableGain},
					{Label: "Long-term holding rate", Value: output.Percent(res.LongTermRatePercent)},
					{Label: "Long-term holding deduction", Value: res.LongTermDeduction},
					{Label: "Basic deduction", Value: res.BasicDeduction},
					{Label: "Tax base", Value: res.TaxBase},
					{Label: "Marginal rate", Value: output.Percent(res.BaseRatePercent)},
					{Label: "Surcharge rate", Value: output.Percent(res.SurchargeRatePercent)},
					{Label: "Transfer income tax", Value: res.Tax},
					{Label: "Local income tax", Value: res.LocalTax},
					{Label: "Total tax", Value: res.TotalTax},
				},
				Data: res,
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&kind, "kind", "house", "property kind (house, land)")
	f.StringVar(&holdings, "holdings", "oneHouseTaxable", "household holdings (oneHouseExempt, oneHouseTaxable, twoHouses, threeHouses)")
	f.Float64Var(&in.SalePrice, "sale", 0, "sale price in won")
	f.Float64Var(&in.PurchasePrice, "purchase", 0, "purchase price in won")
	f.Float64Var(&in.Expenses, "expenses", 0, "acquisition and sale expenses in won")
	f.BoolVar(&in.Regulated, "regulated", false, "property is in an adjustment-target area")
	f.BoolVar(&in.NonBusinessLand, "non-business", false, "land is non-business land")
	f.Float64Var(&in.HoldingYears, "holding-years", 0, "years held")
	f.Float64Var(&in.ResidenceYears, "residence-years", 0, "years lived in")
	return cmd
}

func (a *app) dsrCmd() *cobra.Command {
	var in calculator.DSRInput
	cmd := &cobra.Command{
		Use:   "dsr",
		Short: "Debt-service ratio and borrowing limit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fields := []validation.Field{
				{Name: "income", Value: in.AnnualIncome},
				{Name: "loan", Value: in.LoanAmount},
				{Name: "rate", Value: in.RatePercent},
			}
			for _, p := range in.ExistingMonthlyPayments {
				fields = append(fields, validation.Field{Name: "existing", Value: p})
			}
			if err := validation.RequireFinite(fields...); err != nil {
				return err
			}
			if err := validation.ValidateLoanYears(in.Years); err != nil {
				return err
			}
			res, err := a.service.DSR(a.year, in)
			if err != nil {
				return err
			}
			return a.render(cmd, output.Report{
				Title: "Debt-service ratio",
				Rows: []output.Row{
					{Label: "New loan monthly payment", Value: res.NewLoanMonthlyPayment},
					{Label: "Existing annual repayment", Value: res.ExistingAnnualPayment},
					{Label: "Total annual repayment", Value: res.TotalAnnualPayment},
					{Label: "DSR", Value: output.Percent(res.DSRPercent)},
					{Label: "Limit", Value: output.Percent(res.LimitPercent)},
					{Label: "Within limit", Value: res.WithinLimit},
					{Label: "Status", Value: string(res.Status)},
					{Label: "Maximum new loan", Value: res.MaxLoanAmount},
				},
				Data: res,
			})
		},
	}
	cmd.Flags().Float64Var(&in.AnnualIncome, "income", 0, "annual income in won")
	cmd.Flags().Float64SliceVar(&in.ExistingMonthlyPayments, "existing", nil, "monthly repayment of an existing loan in won (repeatable)")
	cmd.Flags().Float64Var(&in.LoanAmount, "loan", 0, "new loan amount in won")
	cmd.Flags().Float64Var(&in.RatePercent, "rate", 0, "annual interest rate in percent")
	cmd.Flags().IntVar(&in.Years, "years", 30, "new loan term in years")
	return cmd
}

func (a *app) mortgageCmd() *cobra.Command {
	var (
		in       calculator.MortgageInput
		method   string
		schedule bool
	)
	cmd := &cobra.Command{
		Use:   "mortgage",
		Short: "Home loan schedule with loan-to-value ratio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validation.RequireFinite(
				validation.Field{Name: "value", Value: in.PropertyValue},
				validation.Field{Name: "loan", Value: in.LoanAmount},
				validation.Field{Name: "rate", Value: in.RatePercent},
			); err != nil {
				return err
			}
			if err := validation.ValidateLoanYears(in.Years); err != nil {
				return err
			}
			m, err := loans.ParseMethod(method)
			if err != nil {
				return err
			}
			in.Method = m
			res := a.service.Mortgage(in)

			report := output.Report{
				Title: "Mortgage",
				Rows: []output.Row{
					{Label: "Loan-to-value", Value: output.Percent(res.LTVPercent)},
					{Label: "Method", Value: string(res.Method)},
					{Label: "Monthly payment", Value: res.MonthlyPayment},
					{Label: "Last payment", Value: res.LastPayment},
					{Label: "Total interest", Value: res.TotalInterest},
					{Label: "Total repayment", Value: res.TotalPayment},
				},
				Data: res,
			}
			if schedule {
				report.Table = output.ScheduleTable(res.Schedule)
			}
			return a.render(cmd, report)
		},
	}
	cmd.Flags().Float64Var(&in.PropertyValue, "value", 0, "property value in won")
	cmd.Flags().Float64Var(&in.LoanAmount, "loan", 0, "loan amount in won")
	cmd.Flags().Float64Var(&in.RatePercent, "rate", 0, "annual interest rate in percent")
	cmd.Flags().IntVar(&in.Years, "years", 30, "repayment term in years")
	cmd.Flags().StringVar(&method, "method", "equalPrincipalInterest", "repayment method (equalPrincipalInterest, equalPrincipal, bullet)")
	cmd.Flags().BoolVar(&schedule, "schedule", false, "print the per-period schedule")
	return cmd
}
