package worker

import (
	"context"
	"fmt"
	"time"

	"smartbudget/internal/export"
	applog "smartbudget/internal/log"
	"smartbudget/internal/report"
	"smartbudget/internal/services"
	"smartbudget/internal/storage"
)

// ExportJob appends each user's previous-month summary to the export
// spreadsheet. Scheduled for the first day of the month, so "last month"
// is always a complete calendar month.
type ExportJob struct {
	storage   *storage.SQLiteRepository
	dashboard *services.DashboardService
	sheets    *export.Client
	logger    *applog.Logger
	now       func() time.Time
}

func NewExportJob(storage *storage.SQLiteRepository, dashboard *services.DashboardService, sheets *export.Client, logger *applog.Logger) *ExportJob {
	return &ExportJob{
		storage:   storage,
		dashboard: dashboard,
		sheets:    sheets,
		logger:    logger.WithComponent(applog.ComponentExport),
		now:       time.Now,
	}
}

func (j *ExportJob) Name() string {
	return "monthly-summary-export"
}

// Run exports one row per user. A failure for one user does not stop
// the others.
func (j *ExportJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	users, err := j.storage.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}

	now := j.now()
	lastMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)

	exported := 0
	failed := 0
	for _, user := range users {
		summary, err := j.dashboard.Summary(ctx, user.ID, report.RangeLastMonth)
		if err != nil {
			failed++
			j.logger.ErrorContext(ctx, "Failed to compute summary for export",
				applog.FieldUserID, user.ID, applog.FieldError, err)
			continue
		}

		if err := j.sheets.AppendSummary(ctx, user.Email, lastMonth.Year(), int(lastMonth.Month()), summary); err != nil {
			failed++
			j.logger.ErrorContext(ctx, "Failed to export summary",
				applog.FieldUserID, user.ID, applog.FieldError, err)
			continue
		}
		exported++
	}

	j.logger.InfoContext(ctx, "Monthly export completed",
		"month", lastMonth.Format("2006-01"), "exported", exported, "failed", failed)

	if failed > 0 && exported == 0 {
		return fmt.Errorf("monthly export failed for all %d users", failed)
	}
	return nil
}
