package testutil

import (
	"testing"

	"github.com/iwvelando/moneywiki/pkg/loans"
	"go.uber.org/zap"
)

func TestFindPayment(t *testing.T) {
	schedule := loans.GenerateSchedule(loans.Terms{
		Principal:         1_200_000,
		AnnualRatePercent: 0,
		Periods:           12,
		Method:            loans.EqualPrincipal,
	})

	tests := []struct {
		name        string
		period      int
		expectFound bool
		balance     float64
	}{
		{name: "first period", period: 1, expectFound: true, balance: 1_100_000},
		{name: "last period", period: 12, expectFound: true, balance: 0},
		{name: "before the schedule", period: 0},
		{name: "after the schedule", period: 13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := FindPayment(schedule, tt.period)
			if !tt.expectFound {
				if p != nil {
					t.Errorf("expected no payment for period %d, got %+v", tt.period, *p)
				}
				return
			}
			if p == nil {
				t.Fatalf("expected payment for period %d", tt.period)
			}
			if p.RemainingPrincipal != tt.balance {
				t.Errorf("period %d balance = %.0f, expected %.0f", tt.period, p.RemainingPrincipal, tt.balance)
			}
		})
	}
}

func TestNewService(t *testing.T) {
	logger, logs := ObservedLogger(zap.InfoLevel)
	svc := NewService(t, logger)

	if svc.ActiveYear() == 0 {
		t.Fatal("expected an active year")
	}
	if logs.FilterMessage("active policy year changed").Len() != 1 {
		t.Errorf("expected the initial active year to be logged, got %d entries", logs.Len())
	}
}
