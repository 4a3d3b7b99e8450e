package worker

import (
	"context"
	"fmt"
	"time"

	"smartbudget/internal/core"
	applog "smartbudget/internal/log"
	"smartbudget/internal/services"
	"smartbudget/internal/storage"
)

// ReminderJob scans subscriptions with notifications enabled and logs a
// reminder for every renewal due within the configured lead time.
type ReminderJob struct {
	storage  *storage.SQLiteRepository
	leadDays int
	logger   *applog.Logger
	now      func() time.Time
}

func NewReminderJob(storage *storage.SQLiteRepository, leadDays int, logger *applog.Logger) *ReminderJob {
	return &ReminderJob{
		storage:  storage,
		leadDays: leadDays,
		logger:   logger.WithComponent(applog.ComponentWorker),
		now:      time.Now,
	}
}

func (j *ReminderJob) Name() string {
	return "subscription-reminders"
}

// Run checks every notifiable subscription once.
func (j *ReminderJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	subs, err := j.storage.ListNotifiableSubscriptions(ctx)
	if err != nil {
		return fmt.Errorf("list notifiable subscriptions: %w", err)
	}

	today := core.DateOf(j.now())
	due := 0
	for _, ns := range subs {
		renewsOn, ok := services.RenewalDueWithin(ns.Subscription, today, j.leadDays)
		if !ok {
			continue
		}
		due++
		j.logger.InfoContext(ctx, "Subscription renewal due",
			"email", ns.Email,
			"subscription", ns.Subscription.Name,
			applog.FieldAmount, ns.Subscription.Amount,
			applog.FieldFrequency, string(ns.Subscription.Frequency),
			"renews_on", renewsOn.String())
	}

	j.logger.InfoContext(ctx, "Reminder scan completed",
		"checked", len(subs), "due", due, "lead_days", j.leadDays)

	return nil
}
