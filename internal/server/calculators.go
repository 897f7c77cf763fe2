package server

import (
	"bytes"
	"errors"
	"fmt"
	"slices"

	"github.com/goccy/go-json"
	"github.com/iwvelando/moneywiki/internal/calculator"
	"github.com/iwvelando/moneywiki/pkg/loans"
	"github.com/iwvelando/moneywiki/pkg/validation"
)

// errInvalidInput marks request bodies that decode or validate badly.
var errInvalidInput = errors.New("invalid input")

// calculatorDef binds a route name to a decoder and a Service method.
type calculatorDef struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	UsesPolicy  bool   `json:"usesPolicy"`
	Cached      bool   `json:"cached"`

	decode    func(body []byte) (any, error)
	run       func(svc *calculator.Service, year int, input any) (any, error)
	newResult func() any
}

func define[I, R any](name, description string, usesPolicy bool, normalize func(*I) error, run func(*calculator.Service, int, I) (R, error)) calculatorDef {
	return calculatorDef{
		Name:        name,
		Description: description,
		UsesPolicy:  usesPolicy,
		decode: func(body []byte) (any, error) {
			var in I
			dec := json.NewDecoder(bytes.NewReader(body))
			dec.DisallowUnknownFields()
			if err := dec.Decode(&in); err != nil {
				return nil, fmt.Errorf("%w: %v", errInvalidInput, err)
			}
			if normalize != nil {
				if err := normalize(&in); err != nil {
					return nil, fmt.Errorf("%w: %v", errInvalidInput, err)
				}
			}
			return in, nil
		},
		run: func(svc *calculator.Service, year int, input any) (any, error) {
			return run(svc, year, input.(I))
		},
		newResult: func() any { return new(R) },
	}
}

// withoutYear adapts Service methods that need no policy set.
func withoutYear[I, R any](fn func(*calculator.Service, I) R) func(*calculator.Service, int, I) (R, error) {
	return func(svc *calculator.Service, _ int, in I) (R, error) {
		return fn(svc, in), nil
	}
}

func cached(def calculatorDef) calculatorDef {
	def.Cached = true
	return def
}

var calculators = []calculatorDef{
	define("tax", "annual earned-income tax", true, nil, (*calculator.Service).IncomeTax),
	define("net-salary", "monthly take-home pay after insurance and withholding", true, nil, (*calculator.Service).NetSalary),
	define("unemployment", "job-seeking benefit amount and days", true, normalizeUnemployment, (*calculator.Service).UnemploymentBenefit),
	define("wage", "hourly and monthly wage conversion with minimum-wage check", true, normalizeWage, (*calculator.Service).HourlyWage),
	define("holiday-pay", "weekly holiday allowance", true, nil, (*calculator.Service).WeeklyHolidayPay),
	define("compound", "simple versus compound growth of a lump sum", false, normalizeCompound, withoutYear((*calculator.Service).CompoundInterest)),
	define("deposit", "term deposit interest after tax", true, normalizeDeposit, (*calculator.Service).DepositInterest),
	define("savings", "installment savings interest after tax", true, normalizeSavings, (*calculator.Service).SavingsInterest),
	define("severance", "retirement pay for regular, daily and part-time workers", true, normalizeSeverance, (*calculator.Service).SeverancePay),
	define("vehicle-tax", "annual automobile tax", true, normalizeVehicle, (*calculator.Service).VehicleTax),
	cached(define("loan", "loan repayment schedule", false, normalizeLoan, withoutYear((*calculator.Service).LoanRepayment))),
	define("gift-tax", "gift tax by relationship with generation-skipping surcharge", true, normalizeGift, (*calculator.Service).GiftTax),
	define("inheritance-tax", "estate tax after spouse and lump-sum deductions", true, normalizeInheritance, (*calculator.Service).InheritanceTax),
	define("capital-gains-tax", "transfer income tax on a real-estate sale", true, normalizeCapitalGains, (*calculator.Service).CapitalGainsTax),
	define("dsr", "debt-service ratio and borrowing limit", true, normalizeDSR, (*calculator.Service).DSR),
	cached(define("mortgage", "home loan schedule with loan-to-value ratio", false, normalizeMortgage, withoutYear((*calculator.Service).Mortgage))),
}

func lookupCalculator(name string) (calculatorDef, bool) {
	i := slices.IndexFunc(calculators, func(def calculatorDef) bool { return def.Name == name })
	if i < 0 {
		return calculatorDef{}, false
	}
	return calculators[i], true
}

func normalizeUnemployment(in *calculator.UnemploymentInput) (err error) {
	in.InsuredPeriod, err = calculator.ParseInsuredPeriod(in.InsuredPeriod)
	return err
}

func normalizeWage(in *calculator.HourlyWageInput) (err error) {
	in.Mode, err = calculator.ParseWageMode(string(in.Mode))
	return err
}

func normalizeCompound(in *calculator.CompoundInput) error {
	if in.Frequency == 0 {
		in.Frequency = 1
	}
	if _, err := calculator.ParseFrequency(fmt.Sprint(in.Frequency)); err != nil {
		return err
	}
	return validation.ValidateYears(in.Years)
}

func normalizeDeposit(in *calculator.DepositInput) (err error) {
	in.TaxType, err = calculator.ParseTaxType(string(in.TaxType))
	return err
}

func normalizeSavings(in *calculator.SavingsInput) (err error) {
	in.TaxType, err = calculator.ParseTaxType(string(in.TaxType))
	return err
}

func normalizeSeverance(in *calculator.SeveranceInput) (err error) {
	if in.WorkerType, err = calculator.ParseWorkerType(string(in.WorkerType)); err != nil {
		return err
	}
	if err := validation.ValidateWorkMonths(in.WorkMonths); err != nil {
		return err
	}
	if err := validation.ValidateWorkDays(in.WorkDays); err != nil {
		return err
	}
	return validation.ValidateDateRange(in.StartDate.Time, in.EndDate.Time)
}

func normalizeVehicle(in *calculator.VehicleTaxInput) (err error) {
	in.Type, err = calculator.ParseVehicleType(string(in.Type))
	return err
}

func normalizeLoan(in *calculator.LoanInput) (err error) {
	if in.Method, err = loans.ParseMethod(string(in.Method)); err != nil {
		return err
	}
	return validation.ValidateLoanMonths(in.Months)
}

func normalizeGift(in *calculator.GiftTaxInput) (err error) {
	in.Relationship, err = calculator.ParseRelationship(string(in.Relationship))
	return err
}

func normalizeInheritance(in *calculator.InheritanceTaxInput) error {
	if in.Children < 0 {
		return fmt.Errorf("negative children %d: %w", in.Children, validation.ErrOutOfRange)
	}
	return nil
}

func normalizeCapitalGains(in *calculator.CapitalGainsInput) (err error) {
	if in.Kind, err = calculator.ParsePropertyKind(string(in.Kind)); err != nil {
		return err
	}
	in.Holdings, err = calculator.ParseHoldings(string(in.Holdings))
	return err
}

func normalizeDSR(in *calculator.DSRInput) error {
	return validation.ValidateLoanYears(in.Years)
}

func normalizeMortgage(in *calculator.MortgageInput) (err error) {
	if in.Method, err = loans.ParseMethod(string(in.Method)); err != nil {
		return err
	}
	return validation.ValidateLoanYears(in.Years)
}
