// Package constants provides shared constants for the moneywiki application.
package constants

// DateLayout is the calendar date format accepted on the CLI and in API
// payloads.
const DateLayout = "2006-01-02"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DaysPerYear is the day count used by statutory daily-wage formulas
	DaysPerYear = 365

	// DaysPerMonth is the fixed month length used by payroll formulas
	DaysPerMonth = 30

	// WorkDaysPerWeek is the standard five-day working week
	WorkDaysPerWeek = 5

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// RuleOfSeventyTwo is the numerator of the doubling-time estimate
	RuleOfSeventyTwo = 72.0
)

// Compounding frequencies, expressed as periods per year.
const (
	CompoundYearly     = 1
	CompoundHalfYearly = 2
	CompoundQuarterly  = 4
	CompoundMonthly    = 12
	CompoundDaily      = 365
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the machine-readable output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "moneywiki.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix namespaces environment overrides, e.g. MONEYWIKI_POLICY_YEAR
	EnvPrefix = "MONEYWIKI"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum JSON request size (64 KB)
	DefaultMaxBodySizeBytes int64 = 64 * 1024

	// DefaultRolloverSchedule fires at midnight on January 1st
	DefaultRolloverSchedule = "0 0 1 1 *"
)

// Limits applied at the input boundary.
const (
	// MaxLoanPeriods caps amortization schedules at 50 years of monthly payments
	MaxLoanPeriods = 600

	// MaxLoanYears is MaxLoanPeriods in whole years
	MaxLoanYears = MaxLoanPeriods / MonthsPerYear

	// MaxInterestYears caps the year-by-year comparison table
	MaxInterestYears = 100

	// MaxTenureYears caps the service length accepted by severance formulas
	MaxTenureYears = 50

	// MaxWorkMonths is MaxTenureYears in months, for part-time workers
	MaxWorkMonths = MaxTenureYears * MonthsPerYear

	// MaxWorkDays is MaxTenureYears in days, for daily workers
	MaxWorkDays = MaxTenureYears * DaysPerYear

	// DefaultCacheEntries bounds the in-memory result cache
	DefaultCacheEntries = 1024
)
