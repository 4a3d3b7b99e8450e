// Package worker holds the background process: the AMQP change consumer
// and the scheduled reminder and export jobs.
package worker

import (
	"context"

	"smartbudget/internal/amqp"
	applog "smartbudget/internal/log"
	"smartbudget/internal/services"
)

// ChangeWorker consumes record change messages and keeps this process's
// summary cache in step with the server's writes.
type ChangeWorker struct {
	dashboard *services.DashboardService
	logger    *applog.Logger
}

func NewChangeWorker(dashboard *services.DashboardService, logger *applog.Logger) *ChangeWorker {
	return &ChangeWorker{
		dashboard: dashboard,
		logger:    logger.WithComponent(applog.ComponentWorker),
	}
}

// HandleChangeMessage processes a single record change message from AMQP.
// A change message carries no payload beyond user and kind; the summary
// is recomputed from SQLite on the next read.
func (w *ChangeWorker) HandleChangeMessage(ctx context.Context, msg *amqp.RecordChangeMessage) error {
	w.logger.InfoContext(ctx, "Processing change message",
		applog.FieldUserID, msg.UserID,
		applog.FieldRecordKind, string(msg.Kind))

	w.dashboard.Invalidate(msg.UserID)
	return nil
}
