// Package services provides business logic and orchestration services.
//
// This file implements the Strategy Pattern for subscription renewal
// scheduling. Each billing frequency has its own strategy that
// encapsulates the logic for finding the next renewal date.

package services

import (
	"fmt"
	"time"

	"smartbudget/internal/core"
)

// RenewalScheduler is the strategy interface for subscription renewals.
// Each implementation encapsulates the algorithm for a billing frequency.
type RenewalScheduler interface {
	// NextRenewal returns the first renewal date on or after today. The
	// second return is false when the subscription never renews again.
	NextRenewal(startedOn, today core.Date) (core.Date, bool)
}

// DailyScheduler implements RenewalScheduler for daily charges.
type DailyScheduler struct{}

// NextRenewal for a daily charge is today, or the start date if that is
// still ahead.
func (DailyScheduler) NextRenewal(startedOn, today core.Date) (core.Date, bool) {
	if today.Before(startedOn) {
		return startedOn, true
	}
	return today, true
}

// WeeklyScheduler implements RenewalScheduler for weekly charges.
type WeeklyScheduler struct{}

// NextRenewal returns the next 7-day multiple from the start date.
func (WeeklyScheduler) NextRenewal(startedOn, today core.Date) (core.Date, bool) {
	if today.Before(startedOn) {
		return startedOn, true
	}
	days := int(today.Sub(startedOn.Time).Hours() / 24)
	next := startedOn.AddDays(((days + 6) / 7) * 7)
	return next, true
}

// MonthlyScheduler implements RenewalScheduler for monthly charges.
type MonthlyScheduler struct{}

// NextRenewal returns the start date's day-of-month in the current or
// following month, clamped when the month is shorter.
func (MonthlyScheduler) NextRenewal(startedOn, today core.Date) (core.Date, bool) {
	return nextByMonths(startedOn, today, 1), true
}

// QuarterlyScheduler implements RenewalScheduler for quarterly charges.
type QuarterlyScheduler struct{}

func (QuarterlyScheduler) NextRenewal(startedOn, today core.Date) (core.Date, bool) {
	return nextByMonths(startedOn, today, 3), true
}

// YearlyScheduler implements RenewalScheduler for yearly charges.
type YearlyScheduler struct{}

func (YearlyScheduler) NextRenewal(startedOn, today core.Date) (core.Date, bool) {
	return nextByMonths(startedOn, today, 12), true
}

// OneTimeScheduler implements RenewalScheduler for one-time charges,
// which never renew.
type OneTimeScheduler struct{}

func (OneTimeScheduler) NextRenewal(_, _ core.Date) (core.Date, bool) {
	return core.Date{}, false
}

// nextByMonths walks the renewal cadence in stepMonths increments from
// the start date until it reaches today or later. The day of month is
// clamped, so a charge started January 31 renews February 28.
func nextByMonths(startedOn, today core.Date, stepMonths int) core.Date {
	candidate := startedOn
	for step := stepMonths; candidate.Before(today); step += stepMonths {
		candidate = addMonthsClamped(startedOn, step)
	}
	return candidate
}

func addMonthsClamped(d core.Date, months int) core.Date {
	year, month := d.Year(), d.Month()+months
	for month > 12 {
		month -= 12
		year++
	}
	lastDay := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	day := d.Day()
	if day > lastDay {
		day = lastDay
	}
	return core.NewDate(year, month, day)
}

// renewalStrategies maps billing frequencies to their schedulers.
// This registry enables O(1) lookup and easy extension for new frequencies.
var renewalStrategies = map[core.BillingFrequency]RenewalScheduler{
	core.Daily:     DailyScheduler{},
	core.Weekly:    WeeklyScheduler{},
	core.Monthly:   MonthlyScheduler{},
	core.Quarterly: QuarterlyScheduler{},
	core.Yearly:    YearlyScheduler{},
	core.OneTime:   OneTimeScheduler{},
}

// GetRenewalScheduler returns the scheduler for a billing frequency.
// Returns an error if the frequency is not supported.
func GetRenewalScheduler(frequency core.BillingFrequency) (RenewalScheduler, error) {
	scheduler, ok := renewalStrategies[frequency]
	if !ok {
		return nil, fmt.Errorf("unknown billing frequency: %s", frequency)
	}
	return scheduler, nil
}

// RenewalDueWithin reports whether the subscription's next renewal falls
// within leadDays of today, and returns that date when it does.
func RenewalDueWithin(sub core.Subscription, today core.Date, leadDays int) (core.Date, bool) {
	scheduler, err := GetRenewalScheduler(sub.Frequency)
	if err != nil {
		return core.Date{}, false
	}

	next, ok := scheduler.NextRenewal(sub.StartedOn, today)
	if !ok {
		return core.Date{}, false
	}

	if next.After(today.AddDays(leadDays)) {
		return core.Date{}, false
	}
	return next, true
}
