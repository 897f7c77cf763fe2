package main

import (
	"fmt"
	"time"

	"github.com/iwvelando/moneywiki/internal/calculator"
	"github.com/iwvelando/moneywiki/internal/config"
	"github.com/iwvelando/moneywiki/internal/policy"
	"github.com/iwvelando/moneywiki/pkg/constants"
	"github.com/iwvelando/moneywiki/pkg/output"
	"github.com/iwvelando/moneywiki/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries the state shared by every subcommand once the root command has
// loaded configuration.
type app struct {
	version      string
	configPath   string
	logLevel     string
	outputFormat string
	year         int

	conf    *config.Configuration
	logger  *zap.Logger
	service *calculator.Service
	now     func() time.Time
}

func newRootCmd(version string) *cobra.Command {
	a := &app{version: version, now: time.Now}

	root := &cobra.Command{
		Use:   "moneywiki",
		Short: "Korean personal-finance calculators",
		Long: `moneywiki computes Korean payroll, tax, benefit, interest, severance,
vehicle-tax and loan figures from the policy constants of a given year.

Run a calculator subcommand for a one-off answer, or "serve" to expose the
calculators as a JSON HTTP API.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", constants.DefaultConfigFile, "path to configuration file")
	flags.StringVar(&a.logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	flags.StringVar(&a.outputFormat, "output-format", "", "type of output override: pretty, csv, json")
	flags.IntVar(&a.year, "year", 0, "policy year to calculate with (default: the active year)")

	root.AddCommand(
		a.taxCmd(),
		a.netSalaryCmd(),
		a.unemploymentCmd(),
		a.wageCmd(),
		a.holidayPayCmd(),
		a.compoundCmd(),
		a.depositCmd(),
		a.savingsCmd(),
		a.severanceCmd(),
		a.vehicleTaxCmd(),
		a.loanCmd(),
		a.giftTaxCmd(),
		a.inheritanceTaxCmd(),
		a.capitalGainsTaxCmd(),
		a.dsrCmd(),
		a.mortgageCmd(),
		a.policyCmd(),
		a.serveCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	conf, err := config.LoadConfiguration(a.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration at %s: %w", a.configPath, err)
	}
	a.conf = conf

	logger, err := initializeLogger(conf.Logging, a.logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger

	if a.outputFormat == "" {
		a.outputFormat = conf.Output.Format
	}
	if a.outputFormat == "" {
		a.outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(a.outputFormat); err != nil {
		return err
	}

	registry, err := policy.Load(conf.Policy.File)
	if err != nil {
		return fmt.Errorf("failed to load policy constants: %w", err)
	}

	for _, warning := range conf.ValidateConfiguration(registry.Years()) {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main.setup"),
		)
	}

	activeYear := conf.Policy.Year
	if activeYear == 0 {
		activeYear = a.now().Year()
	}
	a.service, err = calculator.NewService(registry, logger, activeYear)
	if err != nil {
		return err
	}
	return nil
}

func (a *app) render(cmd *cobra.Command, report output.Report) error {
	return output.Write(cmd.OutOrStdout(), a.outputFormat, report)
}
