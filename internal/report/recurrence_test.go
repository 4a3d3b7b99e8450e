package report

import (
	"testing"

	"github.com/shopspring/decimal"

	"smartbudget/internal/core"
)

func TestMonthlyEquivalent(t *testing.T) {
	tests := []struct {
		name      string
		amount    string
		frequency core.BillingFrequency
		want      string
	}{
		{"yearly divides by twelve", "1200", core.Yearly, "100"},
		{"quarterly divides by three", "300", core.Quarterly, "100"},
		{"weekly times 4.33", "100", core.Weekly, "433"},
		{"daily times 30.42", "10", core.Daily, "304.2"},
		{"one-time contributes nothing", "50", core.OneTime, "0"},
		{"monthly passes through", "25.99", core.Monthly, "25.99"},
		{"unrecognized passes through", "40", core.BillingFrequency("Biweekly"), "40"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount := decimal.RequireFromString(tt.amount)
			want := decimal.RequireFromString(tt.want)
			if got := MonthlyEquivalent(amount, tt.frequency); !got.Equal(want) {
				t.Errorf("MonthlyEquivalent(%s, %s) = %s, want %s", tt.amount, tt.frequency, got, want)
			}
		})
	}
}

func TestSubscriptionMonthlyTotal(t *testing.T) {
	subs := []core.Subscription{
		{Name: "video", Amount: "12", Frequency: core.Monthly, Active: true, Deleted: core.NotDeleted},
		{Name: "music", Amount: "120", Frequency: core.Yearly, Active: true, Deleted: core.NotDeleted},
		{Name: "paused", Amount: "999", Frequency: core.Monthly, Active: false, Deleted: core.NotDeleted},
		{Name: "gone", Amount: "999", Frequency: core.Monthly, Active: true, Deleted: core.SoftDeleted},
		{Name: "setup fee", Amount: "50", Frequency: core.OneTime, Active: true, Deleted: core.NotDeleted},
	}

	// 12 + 120/12; the inactive, deleted and one-time ones contribute zero.
	want := decimal.NewFromInt(22)
	if got := SubscriptionMonthlyTotal(subs); !got.Equal(want) {
		t.Errorf("SubscriptionMonthlyTotal() = %s, want %s", got, want)
	}
}

func TestSubscriptionMonthlyTotal_BadAmountIsZero(t *testing.T) {
	subs := []core.Subscription{
		{Name: "broken", Amount: "??", Frequency: core.Monthly, Active: true, Deleted: core.NotDeleted},
		{Name: "fine", Amount: "10", Frequency: core.Monthly, Active: true, Deleted: core.NotDeleted},
	}
	if got := SubscriptionMonthlyTotal(subs); !got.Equal(decimal.NewFromInt(10)) {
		t.Errorf("SubscriptionMonthlyTotal() = %s, want 10", got)
	}
}
