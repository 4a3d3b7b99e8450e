// Package report implements the dashboard aggregation engine: resolving
// symbolic date ranges, grouping records by category, normalizing
// recurring charges to a monthly cost and combining everything into the
// summary figures the dashboard shows.
//
// Every function in this package is a pure transformation over its
// inputs; the engine holds no state and performs no I/O.
package report

import (
	"time"

	"smartbudget/internal/core"
)

// Recognized range labels. Anything else resolves to Month to Date.
const (
	RangeToday       = "Today"
	RangeYesterday   = "Yesterday"
	RangeThisWeek    = "This Week"
	RangeLastWeek    = "Last Week"
	RangeLastMonth   = "Last Month"
	RangeMonthToDate = "Month to Date"
)

// DateRange is a concrete period, inclusive on both ends.
type DateRange struct {
	Start core.Date
	End   core.Date
	Label string
}

// Contains reports whether d falls within the range, boundaries included.
func (r DateRange) Contains(d core.Date) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

// Display renders the range for humans, e.g. "Jun 01, 2025 - Jun 15, 2025".
func (r DateRange) Display() string {
	const layout = "Jan 02, 2006"
	return r.Start.Format(layout) + " - " + r.End.Format(layout)
}

// ResolveRange turns a symbolic range label into concrete start and end
// dates relative to now. Weeks are Sunday-indexed. Unrecognized labels and
// a zero now fall back to the Month to Date rule, so resolution never
// fails.
func ResolveRange(label string, now time.Time) DateRange {
	if now.IsZero() {
		now = time.Now()
	}
	today := core.DateOf(now)

	switch label {
	case RangeToday:
		return DateRange{Start: today, End: today, Label: label}

	case RangeYesterday:
		yesterday := today.AddDays(-1)
		return DateRange{Start: yesterday, End: yesterday, Label: label}

	case RangeThisWeek:
		start := today.AddDays(-int(today.Weekday()))
		return DateRange{Start: start, End: today, Label: label}

	case RangeLastWeek:
		start := today.AddDays(-int(today.Weekday()) - 7)
		return DateRange{Start: start, End: start.AddDays(6), Label: label}

	case RangeLastMonth:
		end := core.NewDate(today.Year(), today.Month(), 1).AddDays(-1)
		start := core.NewDate(end.Year(), end.Month(), 1)
		return DateRange{Start: start, End: end, Label: label}
	}

	return DateRange{
		Start: core.NewDate(today.Year(), today.Month(), 1),
		End:   today,
		Label: RangeMonthToDate,
	}
}

// RangeLabels lists the selectable labels in display order.
func RangeLabels() []string {
	return []string{
		RangeMonthToDate,
		RangeToday,
		RangeYesterday,
		RangeThisWeek,
		RangeLastWeek,
		RangeLastMonth,
	}
}
