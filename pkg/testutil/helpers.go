// Package testutil provides common utility functions for testing.
package testutil

import (
	"testing"

	"github.com/iwvelando/moneywiki/internal/calculator"
	"github.com/iwvelando/moneywiki/internal/policy"
	"github.com/iwvelando/moneywiki/pkg/loans"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// NewService returns a calculator service over the embedded policy sets,
// active on the latest of them. A nil logger discards output.
func NewService(tb testing.TB, logger *zap.Logger) *calculator.Service {
	tb.Helper()
	reg, err := policy.Defaults()
	if err != nil {
		tb.Fatalf("failed to load embedded policies: %v", err)
	}
	svc, err := calculator.NewService(reg, logger, 0)
	if err != nil {
		tb.Fatalf("failed to create calculator service: %v", err)
	}
	return svc
}

// ObservedLogger returns a logger that records entries at or above level.
func ObservedLogger(level zapcore.Level) (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return zap.New(core), logs
}

// FindPayment finds the schedule entry for period.
// Returns a pointer to the payment if found, nil otherwise.
func FindPayment(s loans.Schedule, period int) *loans.Payment {
	for i := range s.Payments {
		if s.Payments[i].Period == period {
			return &s.Payments[i]
		}
	}
	return nil
}
