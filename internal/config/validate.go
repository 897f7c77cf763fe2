package config

import (
	"fmt"
	"slices"

	"github.com/iwvelando/moneywiki/pkg/validation"
	"github.com/robfig/cron/v3"
)

var logLevels = []string{"debug", "info", "warn", "warning", "error"}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings. policyYears lists the years the loaded policy registry
// carries, in ascending order.
func (c *Configuration) ValidateConfiguration(policyYears []int) []string {
	var warnings []string

	if c.Logging.Level != "" && !slices.Contains(logLevels, c.Logging.Level) {
		warnings = append(warnings, fmt.Sprintf("Unknown log level %q; info will be used", c.Logging.Level))
	}
	if c.Output.Format != "" {
		if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
			warnings = append(warnings, err.Error())
		}
	}

	if c.Policy.Year != 0 && len(policyYears) > 0 && c.Policy.Year < policyYears[0] {
		warnings = append(warnings, fmt.Sprintf("Pinned policy year %d predates the earliest policy set (%d)",
			c.Policy.Year, policyYears[0]))
	}
	if c.Policy.Year != 0 && c.Scheduler.Enabled {
		warnings = append(warnings, fmt.Sprintf("Policy year is pinned to %d; the rollover job will override it on its next run",
			c.Policy.Year))
	}

	if c.Cache.TTL < 0 {
		warnings = append(warnings, fmt.Sprintf("Negative cache TTL %s; entries will not expire", c.Cache.TTL))
	}
	if c.Cache.RedisAddr == "" && c.Cache.MaxEntries <= 0 {
		warnings = append(warnings, "No cache backend configured; loan schedules will not be cached")
	}

	if c.Scheduler.Enabled {
		if _, err := cron.ParseStandard(c.Scheduler.Rollover); err != nil {
			warnings = append(warnings, fmt.Sprintf("Invalid rollover schedule %q: %v", c.Scheduler.Rollover, err))
		}
	}

	return warnings
}
