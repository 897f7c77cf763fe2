package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/iwvelando/moneywiki/internal/calculator"
	"github.com/iwvelando/moneywiki/internal/config"
	"github.com/iwvelando/moneywiki/internal/policy"
	"github.com/iwvelando/moneywiki/pkg/testutil"
	"github.com/iwvelando/moneywiki/pkg/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd("test")
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestTaxCommand(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		out, err := runCLI(t, "tax", "--income", "50000000", "--output-format", "json")
		require.NoError(t, err)

		var res calculator.IncomeTaxResult
		require.NoError(t, json.Unmarshal([]byte(out), &res))
		assert.Equal(t, 3_566_750.0, res.TotalTax)
	})

	t.Run("pretty", func(t *testing.T) {
		out, err := runCLI(t, "tax", "--income", "50000000")
		require.NoError(t, err)
		assert.Contains(t, out, "--- Income tax ---")
		assert.Contains(t, out, "3,566,750원")
	})
}

func TestCalculatorCommands(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		contains []string
	}{
		{
			name:     "compound",
			args:     []string{"compound", "--principal", "10000000", "--rate", "5", "--years", "10", "--output-format", "csv"},
			contains: []string{`"Difference","1288946"`, `"year","simple","compound","difference"`},
		},
		{
			name:     "loan schedule",
			args:     []string{"loan", "--principal", "100000000", "--rate", "5", "--months", "12", "--schedule", "--output-format", "csv"},
			contains: []string{`"Method","equalPrincipalInterest"`, `"Monthly payment","8560748"`, `"period","payment","principal","interest","balance"`},
		},
		{
			name:     "severance",
			args:     []string{"severance", "--start", "2023-01-01", "--end", "2025-12-31", "--monthly-base", "3000000"},
			contains: []string{"Severance pay", "8,812,388원"},
		},
		{
			name:     "unemployment",
			args:     []string{"unemployment", "--wage", "3000000", "--insured", "3to5"},
			contains: []string{"Daily benefit", "66,048원", "Raised to floor"},
		},
		{
			name:     "vehicle tax",
			args:     []string{"vehicle-tax", "--type", "electric"},
			contains: []string{"130,000원"},
		},
		{
			name:     "gift tax",
			args:     []string{"gift-tax", "--amount", "100000000", "--output-format", "csv"},
			contains: []string{`"Exemption","50000000"`, `"Gift tax","4850000"`},
		},
		{
			name: "inheritance tax",
			args: []string{"inheritance-tax", "--estate", "3000000000", "--funeral", "10000000",
				"--spouse", "--spouse-share", "1000000000", "--children", "2", "--output-format", "csv"},
			contains: []string{`"Spouse deduction","1000000000"`, `"Inheritance tax","422920000"`},
		},
		{
			name: "capital gains tax",
			args: []string{"capital-gains-tax", "--sale", "800000000", "--purchase", "500000000", "--expenses", "5000000",
				"--holding-years", "5", "--residence-years", "2", "--output-format", "csv"},
			contains: []string{`"Long-term holding deduction","82600000"`, `"Total tax","65804200"`},
		},
		{
			name: "dsr",
			args: []string{"dsr", "--income", "60000000", "--existing", "500000", "--loan", "300000000",
				"--rate", "4", "--years", "30", "--output-format", "csv"},
			contains: []string{`"Status","adequate"`, `"Maximum new loan","314191860"`},
		},
		{
			name:     "mortgage schedule",
			args:     []string{"mortgage", "--value", "600000000", "--loan", "400000000", "--rate", "4", "--schedule", "--output-format", "csv"},
			contains: []string{`"Loan-to-value","66.6667"`, `"Monthly payment","1909661"`, `"period","payment","principal","interest","balance"`},
		},
		{
			name:     "policy",
			args:     []string{"policy", "--year", "2026"},
			contains: []string{"Policy constants (2026)", "10,320원"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCLI(t, tt.args...)
			require.NoError(t, err)
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestCommandErrors(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, err error)
	}{
		{
			name: "non-finite income",
			args: []string{"tax", "--income", "NaN"},
			check: func(t *testing.T, err error) {
				assert.True(t, errors.Is(err, validation.ErrNonFinite))
			},
		},
		{
			name: "loan term too long",
			args: []string{"loan", "--months", "601"},
			check: func(t *testing.T, err error) {
				assert.True(t, errors.Is(err, validation.ErrOutOfRange))
			},
		},
		{
			name: "year before any policy",
			args: []string{"tax", "--income", "1", "--year", "1990"},
			check: func(t *testing.T, err error) {
				assert.True(t, errors.Is(err, policy.ErrUnknownYear))
			},
		},
		{
			name: "unknown output format",
			args: []string{"tax", "--output-format", "xml"},
			check: func(t *testing.T, err error) {
				assert.ErrorContains(t, err, "xml")
			},
		},
		{
			name: "unknown method",
			args: []string{"loan", "--method", "weird"},
			check: func(t *testing.T, err error) {
				assert.ErrorContains(t, err, "repayment method")
			},
		},
		{
			name: "end before start",
			args: []string{"severance", "--start", "2025-01-01", "--end", "2024-01-01"},
			check: func(t *testing.T, err error) {
				assert.True(t, errors.Is(err, validation.ErrOutOfRange))
			},
		},
		{
			name: "part-time service too long",
			args: []string{"severance", "--type", "partTime", "--hourly", "10320", "--work-months", "400000000000000000"},
			check: func(t *testing.T, err error) {
				assert.True(t, errors.Is(err, validation.ErrOutOfRange))
			},
		},
		{
			name: "unknown relationship",
			args: []string{"gift-tax", "--amount", "1", "--relationship", "cousin"},
			check: func(t *testing.T, err error) {
				assert.ErrorContains(t, err, "relationship")
			},
		},
		{
			name: "negative children",
			args: []string{"inheritance-tax", "--estate", "1", "--children", "-1"},
			check: func(t *testing.T, err error) {
				assert.True(t, errors.Is(err, validation.ErrOutOfRange))
			},
		},
		{
			name: "unknown holdings",
			args: []string{"capital-gains-tax", "--holdings", "castle"},
			check: func(t *testing.T, err error) {
				assert.ErrorContains(t, err, "holdings")
			},
		},
		{
			name: "non-finite existing repayment",
			args: []string{"dsr", "--income", "1", "--existing", "500000,NaN"},
			check: func(t *testing.T, err error) {
				assert.True(t, errors.Is(err, validation.ErrNonFinite))
			},
		},
		{
			name: "mortgage term too long",
			args: []string{"mortgage", "--years", "51"},
			check: func(t *testing.T, err error) {
				assert.True(t, errors.Is(err, validation.ErrOutOfRange))
			},
		},
		{
			name: "missing config file",
			args: []string{"tax", "--config", filepath.Join(os.TempDir(), "moneywiki-missing", "config.yaml")},
			check: func(t *testing.T, err error) {
				assert.ErrorContains(t, err, "failed to load configuration")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, tt.args...)
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestConfigPinsActiveYear(t *testing.T) {
	dir := t.TempDir()
	sets, err := policy.DefaultSets()
	require.NoError(t, err)
	require.NotEmpty(t, sets)

	future := sets[len(sets)-1]
	future.Year = 2030
	future.MinimumWage = 11_000
	data, err := yaml.Marshal(policy.Document{Policies: []policy.Set{future}})
	require.NoError(t, err)
	policyPath := filepath.Join(dir, "policies.yaml")
	require.NoError(t, os.WriteFile(policyPath, data, 0600))

	configPath := filepath.Join(dir, "moneywiki.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(`policy:
  file: `+policyPath+`
  year: 2026
scheduler:
  enabled: false
`), 0600))

	out, err := runCLI(t, "--config", configPath, "policy", "--output-format", "json")
	require.NoError(t, err)
	var set policy.Set
	require.NoError(t, json.Unmarshal([]byte(out), &set))
	assert.Equal(t, 2026, set.Year)

	out, err = runCLI(t, "--config", configPath, "policy", "--year", "2031", "--output-format", "json")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &set))
	assert.Equal(t, 2030, set.Year)
	assert.Equal(t, 11_000.0, set.MinimumWage)
}

func newServeApp(t *testing.T) *app {
	t.Helper()
	conf := config.Default()
	conf.Server.Address = "127.0.0.1:0"

	return &app{
		version: "test",
		conf:    conf,
		logger:  zap.NewNop(),
		service: testutil.NewService(t, nil),
		now:     time.Now,
	}
}

func TestServeStopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	a := newServeApp(t)
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	err := a.serve(ctx, filepath.Join(t.TempDir(), "server-config.yaml"))
	assert.NoError(t, err)
}

func TestServeRejectsBadSettings(t *testing.T) {
	defer goleak.VerifyNone(t)

	t.Run("rollover schedule", func(t *testing.T) {
		a := newServeApp(t)
		a.conf.Scheduler.Rollover = "not a cron spec"
		err := a.serve(context.Background(), "")
		assert.ErrorContains(t, err, "invalid rollover schedule")
	})

	t.Run("body size", func(t *testing.T) {
		a := newServeApp(t)
		a.conf.Server.MaxBodySize = "lots"
		err := a.serve(context.Background(), "")
		assert.ErrorContains(t, err, "invalid server configuration")
	})

	t.Run("server config file", func(t *testing.T) {
		a := newServeApp(t)
		path := filepath.Join(t.TempDir(), "server-config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("address: [\n"), 0600))
		err := a.serve(context.Background(), path)
		assert.True(t, err != nil && strings.Contains(err.Error(), "failed to parse server config"), "got %v", err)
	})
}
