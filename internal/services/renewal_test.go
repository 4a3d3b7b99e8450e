package services

import (
	"testing"

	"smartbudget/internal/core"
)

func TestDailyScheduler(t *testing.T) {
	tests := []struct {
		name      string
		startedOn core.Date
		today     core.Date
		want      core.Date
	}{
		{
			name:      "started in the past renews today",
			startedOn: core.NewDate(2025, 1, 1),
			today:     core.NewDate(2025, 6, 18),
			want:      core.NewDate(2025, 6, 18),
		},
		{
			name:      "future start date wins",
			startedOn: core.NewDate(2025, 7, 1),
			today:     core.NewDate(2025, 6, 18),
			want:      core.NewDate(2025, 7, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DailyScheduler{}.NextRenewal(tt.startedOn, tt.today)
			if !ok {
				t.Fatal("expected a renewal date")
			}
			if got.String() != tt.want.String() {
				t.Errorf("NextRenewal() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestWeeklyScheduler(t *testing.T) {
	tests := []struct {
		name      string
		startedOn core.Date
		today     core.Date
		want      core.Date
	}{
		{
			name:      "exact multiple renews today",
			startedOn: core.NewDate(2025, 6, 4),
			today:     core.NewDate(2025, 6, 18),
			want:      core.NewDate(2025, 6, 18),
		},
		{
			name:      "mid cycle rounds up to next multiple",
			startedOn: core.NewDate(2025, 6, 2),
			today:     core.NewDate(2025, 6, 18),
			want:      core.NewDate(2025, 6, 23),
		},
		{
			name:      "future start date wins",
			startedOn: core.NewDate(2025, 7, 7),
			today:     core.NewDate(2025, 6, 18),
			want:      core.NewDate(2025, 7, 7),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := WeeklyScheduler{}.NextRenewal(tt.startedOn, tt.today)
			if !ok {
				t.Fatal("expected a renewal date")
			}
			if got.String() != tt.want.String() {
				t.Errorf("NextRenewal() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestMonthlyScheduler(t *testing.T) {
	tests := []struct {
		name      string
		startedOn core.Date
		today     core.Date
		want      core.Date
	}{
		{
			name:      "renewal day still ahead this month",
			startedOn: core.NewDate(2025, 1, 25),
			today:     core.NewDate(2025, 6, 18),
			want:      core.NewDate(2025, 6, 25),
		},
		{
			name:      "renewal day already passed rolls to next month",
			startedOn: core.NewDate(2025, 1, 5),
			today:     core.NewDate(2025, 6, 18),
			want:      core.NewDate(2025, 7, 5),
		},
		{
			name:      "day 31 clamps to shorter month",
			startedOn: core.NewDate(2025, 1, 31),
			today:     core.NewDate(2025, 2, 1),
			want:      core.NewDate(2025, 2, 28),
		},
		{
			name:      "renewal day is today",
			startedOn: core.NewDate(2025, 1, 18),
			today:     core.NewDate(2025, 6, 18),
			want:      core.NewDate(2025, 6, 18),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MonthlyScheduler{}.NextRenewal(tt.startedOn, tt.today)
			if !ok {
				t.Fatal("expected a renewal date")
			}
			if got.String() != tt.want.String() {
				t.Errorf("NextRenewal() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestQuarterlyScheduler(t *testing.T) {
	got, ok := QuarterlyScheduler{}.NextRenewal(core.NewDate(2025, 1, 10), core.NewDate(2025, 6, 18))
	if !ok {
		t.Fatal("expected a renewal date")
	}
	if want := core.NewDate(2025, 7, 10); got.String() != want.String() {
		t.Errorf("NextRenewal() = %s, want %s", got, want)
	}
}

func TestYearlyScheduler(t *testing.T) {
	tests := []struct {
		name      string
		startedOn core.Date
		today     core.Date
		want      core.Date
	}{
		{
			name:      "anniversary still ahead this year",
			startedOn: core.NewDate(2023, 9, 12),
			today:     core.NewDate(2025, 6, 18),
			want:      core.NewDate(2025, 9, 12),
		},
		{
			name:      "anniversary passed rolls to next year",
			startedOn: core.NewDate(2023, 3, 12),
			today:     core.NewDate(2025, 6, 18),
			want:      core.NewDate(2026, 3, 12),
		},
		{
			name:      "leap day clamps in common years",
			startedOn: core.NewDate(2024, 2, 29),
			today:     core.NewDate(2025, 1, 1),
			want:      core.NewDate(2025, 2, 28),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := YearlyScheduler{}.NextRenewal(tt.startedOn, tt.today)
			if !ok {
				t.Fatal("expected a renewal date")
			}
			if got.String() != tt.want.String() {
				t.Errorf("NextRenewal() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestOneTimeSchedulerNeverRenews(t *testing.T) {
	if _, ok := (OneTimeScheduler{}).NextRenewal(core.NewDate(2025, 1, 1), core.NewDate(2025, 6, 18)); ok {
		t.Error("one-time charges must not renew")
	}
}

func TestGetRenewalSchedulerUnknownFrequency(t *testing.T) {
	if _, err := GetRenewalScheduler(core.BillingFrequency("Fortnightly")); err == nil {
		t.Error("expected error for unknown frequency")
	}
}

func TestRenewalDueWithin(t *testing.T) {
	today := core.NewDate(2025, 6, 18)

	tests := []struct {
		name     string
		sub      core.Subscription
		leadDays int
		wantDue  bool
		wantDate core.Date
	}{
		{
			name: "renewal inside the lead window",
			sub: core.Subscription{
				Frequency: core.Monthly,
				StartedOn: core.NewDate(2025, 1, 20),
			},
			leadDays: 3,
			wantDue:  true,
			wantDate: core.NewDate(2025, 6, 20),
		},
		{
			name: "renewal beyond the lead window",
			sub: core.Subscription{
				Frequency: core.Monthly,
				StartedOn: core.NewDate(2025, 1, 25),
			},
			leadDays: 3,
			wantDue:  false,
		},
		{
			name: "one-time charge is never due",
			sub: core.Subscription{
				Frequency: core.OneTime,
				StartedOn: core.NewDate(2025, 1, 1),
			},
			leadDays: 30,
			wantDue:  false,
		},
		{
			name: "unknown frequency is never due",
			sub: core.Subscription{
				Frequency: core.BillingFrequency("Biweekly"),
				StartedOn: core.NewDate(2025, 1, 1),
			},
			leadDays: 30,
			wantDue:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, due := RenewalDueWithin(tt.sub, today, tt.leadDays)
			if due != tt.wantDue {
				t.Fatalf("RenewalDueWithin() due = %v, want %v", due, tt.wantDue)
			}
			if due && got.String() != tt.wantDate.String() {
				t.Errorf("RenewalDueWithin() = %s, want %s", got, tt.wantDate)
			}
		})
	}
}
