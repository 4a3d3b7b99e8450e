package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"smartbudget/internal/amqp"
	"smartbudget/internal/cache"
	"smartbudget/internal/config"
	"smartbudget/internal/export"
	applog "smartbudget/internal/log"
	"smartbudget/internal/scheduler"
	"smartbudget/internal/services"
	"smartbudget/internal/storage"
	"smartbudget/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	logger.Info("Starting smartbudget-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository",
			applog.FieldError, err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", applog.FieldError, err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The worker keeps its own summary cache, kept fresh by the change
	// messages coming off the queue.
	dashboard := services.NewDashboardService(repo, cfg.CacheSize, cfg.CacheTTL, logger)
	cacheManager := cache.NewManager()
	cacheManager.Register(dashboard.SummaryCache())
	cacheManager.StartCleanup(10 * time.Minute)
	defer cacheManager.Stop()

	changeWorker := worker.NewChangeWorker(dashboard, logger)

	// Google Sheets export is optional.
	var sheetsClient *export.Client
	if cfg.GoogleSpreadsheetID != "" {
		sheetsClient, err = export.NewClient(ctx, cfg.GoogleSpreadsheetID, cfg.GoogleSheetName, logger)
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", applog.FieldError, err)
			os.Exit(1)
		}
		logger.Info("Google Sheets client initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	} else {
		logger.Info("Google Sheets export disabled - no GOOGLE_SPREADSHEET_ID provided")
	}

	sched := scheduler.New(logger)
	if err := sched.AddJob(cfg.ReminderSchedule, worker.NewReminderJob(repo, cfg.ReminderLeadDays, logger)); err != nil {
		logger.Error("Failed to register reminder job", applog.FieldError, err)
		os.Exit(1)
	}
	if sheetsClient != nil {
		exportJob := worker.NewExportJob(repo, dashboard, sheetsClient, logger)
		if err := sched.AddJob(cfg.ExportSchedule, exportJob); err != nil {
			logger.Error("Failed to register export job", applog.FieldError, err)
			os.Exit(1)
		}
	}
	sched.Start()
	defer sched.Stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return amqpClient.ConsumeRecordChanges(gctx, changeWorker.HandleChangeMessage)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped with error", applog.FieldError, err)
		os.Exit(1)
	}

	logger.Info("Worker shutdown complete")
}
