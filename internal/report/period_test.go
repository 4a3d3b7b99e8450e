package report

import (
	"testing"
	"time"

	"smartbudget/internal/core"
)

func TestResolveRange(t *testing.T) {
	// Wednesday, June 18 2025.
	now := time.Date(2025, 6, 18, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		label     string
		wantStart core.Date
		wantEnd   core.Date
	}{
		{RangeToday, core.NewDate(2025, 6, 18), core.NewDate(2025, 6, 18)},
		{RangeYesterday, core.NewDate(2025, 6, 17), core.NewDate(2025, 6, 17)},
		{RangeThisWeek, core.NewDate(2025, 6, 15), core.NewDate(2025, 6, 18)},
		{RangeLastWeek, core.NewDate(2025, 6, 8), core.NewDate(2025, 6, 14)},
		{RangeLastMonth, core.NewDate(2025, 5, 1), core.NewDate(2025, 5, 31)},
		{RangeMonthToDate, core.NewDate(2025, 6, 1), core.NewDate(2025, 6, 18)},
		{"No Such Range", core.NewDate(2025, 6, 1), core.NewDate(2025, 6, 18)},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got := ResolveRange(tt.label, now)
			if !got.Start.Equal(tt.wantStart.Time) {
				t.Errorf("start = %s, want %s", got.Start, tt.wantStart)
			}
			if !got.End.Equal(tt.wantEnd.Time) {
				t.Errorf("end = %s, want %s", got.End, tt.wantEnd)
			}
		})
	}
}

func TestResolveRange_FallbackLabel(t *testing.T) {
	now := time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC)
	got := ResolveRange("whatever", now)
	if got.Label != RangeMonthToDate {
		t.Errorf("label = %q, want %q", got.Label, RangeMonthToDate)
	}
}

func TestResolveRange_YearBoundary(t *testing.T) {
	now := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	got := ResolveRange(RangeLastMonth, now)
	if !got.Start.Equal(core.NewDate(2024, 12, 1).Time) {
		t.Errorf("start = %s, want 2024-12-01", got.Start)
	}
	if !got.End.Equal(core.NewDate(2024, 12, 31).Time) {
		t.Errorf("end = %s, want 2024-12-31", got.End)
	}
}

func TestResolveRange_SundayStartsWeek(t *testing.T) {
	// Sunday, June 15 2025: the week starts today.
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	got := ResolveRange(RangeThisWeek, now)
	if !got.Start.Equal(core.NewDate(2025, 6, 15).Time) {
		t.Errorf("start = %s, want 2025-06-15", got.Start)
	}
	if !got.End.Equal(core.NewDate(2025, 6, 15).Time) {
		t.Errorf("end = %s, want 2025-06-15", got.End)
	}
}

func TestResolveRange_ZeroNow(t *testing.T) {
	got := ResolveRange(RangeMonthToDate, time.Time{})
	if got.Start.IsZero() || got.End.IsZero() {
		t.Error("zero now must still resolve to a valid range")
	}
	if got.Start.Day() != 1 {
		t.Errorf("start day = %d, want first of month", got.Start.Day())
	}
}

func TestDateRange_Display(t *testing.T) {
	r := DateRange{
		Start: core.NewDate(2025, 6, 1),
		End:   core.NewDate(2025, 6, 18),
		Label: RangeMonthToDate,
	}
	want := "Jun 01, 2025 - Jun 18, 2025"
	if got := r.Display(); got != want {
		t.Errorf("Display() = %q, want %q", got, want)
	}
}

func TestDateRange_Contains(t *testing.T) {
	r := DateRange{Start: core.NewDate(2025, 6, 10), End: core.NewDate(2025, 6, 20)}

	tests := []struct {
		name string
		date core.Date
		want bool
	}{
		{"inside", core.NewDate(2025, 6, 15), true},
		{"on start boundary", core.NewDate(2025, 6, 10), true},
		{"on end boundary", core.NewDate(2025, 6, 20), true},
		{"one day before start", core.NewDate(2025, 6, 9), false},
		{"one day after end", core.NewDate(2025, 6, 21), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.date); got != tt.want {
				t.Errorf("Contains(%s) = %v, want %v", tt.date, got, tt.want)
			}
		})
	}
}
