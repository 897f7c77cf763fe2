package calculator

import (
	"fmt"
	"sync"

	"github.com/iwvelando/moneywiki/internal/policy"
	"go.uber.org/zap"
)

// Service runs calculators against the policy set in force for a requested
// year. It is safe for concurrent use.
type Service struct {
	registry *policy.Registry
	logger   *zap.Logger

	mu         sync.RWMutex
	activeYear int
}

// NewService creates a service whose active year is activeYear, or the
// latest policy year when activeYear is 0.
func NewService(registry *policy.Registry, logger *zap.Logger, activeYear int) (*Service, error) {
	if registry == nil {
		return nil, fmt.Errorf("calculator service requires a policy registry")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{registry: registry, logger: logger}
	if activeYear == 0 {
		activeYear = registry.Latest().Year
	}
	if err := s.SetActiveYear(activeYear); err != nil {
		return nil, err
	}
	return s, nil
}

// SetActiveYear changes the year used when a request names no year.
func (s *Service) SetActiveYear(year int) error {
	set, err := s.registry.ForYear(year)
	if err != nil {
		return fmt.Errorf("failed to set active policy year: %w", err)
	}

	s.mu.Lock()
	previous := s.activeYear
	s.activeYear = year
	s.mu.Unlock()

	if previous != year {
		s.logger.Info("active policy year changed",
			zap.String("op", "calculator.SetActiveYear"),
			zap.Int("previous", previous),
			zap.Int("year", year),
			zap.Int("policyYear", set.Year),
		)
	}
	return nil
}

// ActiveYear returns the year used when a request names no year.
func (s *Service) ActiveYear() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeYear
}

// Registry exposes the underlying policy registry.
func (s *Service) Registry() *policy.Registry {
	return s.registry
}

// Policy resolves the set in force for year; 0 means the active year.
func (s *Service) Policy(year int) (*policy.Set, error) {
	if year == 0 {
		year = s.ActiveYear()
	}
	return s.registry.ForYear(year)
}

func run[I, R any](s *Service, name string, year int, in I, fn func(*policy.Set, I) R) (R, error) {
	var zero R
	set, err := s.Policy(year)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", name, err)
	}
	s.logger.Debug("running calculator",
		zap.String("op", "calculator."+name),
		zap.Int("policyYear", set.Year),
	)
	return fn(set, in), nil
}

func (s *Service) IncomeTax(year int, in IncomeTaxInput) (IncomeTaxResult, error) {
	return run(s, "IncomeTax", year, in, IncomeTax)
}

func (s *Service) NetSalary(year int, in NetSalaryInput) (NetSalaryResult, error) {
	return run(s, "NetSalary", year, in, NetSalary)
}

func (s *Service) UnemploymentBenefit(year int, in UnemploymentInput) (UnemploymentResult, error) {
	return run(s, "UnemploymentBenefit", year, in, UnemploymentBenefit)
}

func (s *Service) HourlyWage(year int, in HourlyWageInput) (HourlyWageResult, error) {
	return run(s, "HourlyWage", year, in, HourlyWage)
}

func (s *Service) WeeklyHolidayPay(year int, in WeeklyHolidayPayInput) (WeeklyHolidayPayResult, error) {
	return run(s, "WeeklyHolidayPay", year, in, WeeklyHolidayPay)
}

func (s *Service) DepositInterest(year int, in DepositInput) (InterestResult, error) {
	return run(s, "DepositInterest", year, in, DepositInterest)
}

func (s *Service) SavingsInterest(year int, in SavingsInput) (InterestResult, error) {
	return run(s, "SavingsInterest", year, in, SavingsInterest)
}

func (s *Service) SeverancePay(year int, in SeveranceInput) (SeveranceResult, error) {
	return run(s, "SeverancePay", year, in, SeverancePay)
}

func (s *Service) VehicleTax(year int, in VehicleTaxInput) (VehicleTaxResult, error) {
	return run(s, "VehicleTax", year, in, VehicleTax)
}

func (s *Service) GiftTax(year int, in GiftTaxInput) (GiftTaxResult, error) {
	return run(s, "GiftTax", year, in, GiftTax)
}

func (s *Service) InheritanceTax(year int, in InheritanceTaxInput) (InheritanceTaxResult, error) {
	return run(s, "InheritanceTax", year, in, InheritanceTax)
}

func (s *Service) CapitalGainsTax(year int, in CapitalGainsInput) (CapitalGainsResult, error) {
	return run(s, "CapitalGainsTax", year, in, CapitalGainsTax)
}

func (s *Service) DSR(year int, in DSRInput) (DSRResult, error) {
	return run(s, "DSR", year, in, DSR)
}

// CompoundInterest does not depend on policy.
func (s *Service) CompoundInterest(in CompoundInput) CompoundResult {
	s.logger.Debug("running calculator", zap.String("op", "calculator.CompoundInterest"))
	return CompoundInterest(in)
}

// LoanRepayment does not depend on policy.
func (s *Service) LoanRepayment(in LoanInput) LoanResult {
	return LoanRepayment(s.logger, in)
}

// Mortgage does not depend on policy.
func (s *Service) Mortgage(in MortgageInput) MortgageResult {
	return Mortgage(s.logger, in)
}
