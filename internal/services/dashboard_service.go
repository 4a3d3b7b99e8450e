// Package services provides business logic and orchestration services.
package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"smartbudget/internal/cache"
	"smartbudget/internal/core"
	applog "smartbudget/internal/log"
	"smartbudget/internal/report"
)

// DashboardStore is the slice of the repository the dashboard reads from.
type DashboardStore interface {
	ListActiveRecords(ctx context.Context, kind core.RecordKind, userID int64) ([]core.Record, error)
	ListActiveSubscriptions(ctx context.Context, userID int64) ([]core.Subscription, error)
	ListActiveInvestments(ctx context.Context, userID int64) ([]core.Investment, error)
}

// DashboardService computes per-user dashboard summaries, caching the
// result per (user, range). A fetch failure surfaces as an error and
// leaves any previously cached summary untouched.
type DashboardService struct {
	store   DashboardStore
	summary *cache.LRUCache[report.Summary]
	logger  *applog.Logger
	now     func() time.Time
}

func NewDashboardService(store DashboardStore, cacheSize int, cacheTTL time.Duration, logger *applog.Logger) *DashboardService {
	return &DashboardService{
		store:   store,
		summary: cache.NewLRUCache[report.Summary](cacheSize, cacheTTL),
		logger:  logger.WithComponent(applog.ComponentDashboard),
		now:     time.Now,
	}
}

// Summary returns the dashboard summary for one user and range label.
// Unknown labels fall back to Month to Date inside ResolveRange.
func (s *DashboardService) Summary(ctx context.Context, userID int64, rangeLabel string) (report.Summary, error) {
	dateRange := report.ResolveRange(rangeLabel, s.now())

	key := cacheKey(userID, dateRange.Label)
	if cached, ok := s.summary.Get(key); ok {
		s.logger.DebugContext(ctx, "Summary cache hit",
			applog.FieldUserID, userID, applog.FieldRange, dateRange.Label)
		return cached, nil
	}

	in, err := s.fetch(ctx, userID)
	if err != nil {
		return report.Summary{}, err
	}

	result := report.Summarize(in, dateRange, report.DefaultPalette)
	s.summary.Set(key, result)

	s.logger.DebugContext(ctx, "Summary computed",
		applog.FieldUserID, userID, applog.FieldRange, dateRange.Label,
		"income_buckets", len(result.IncomeByCategory.Buckets),
		"spending_buckets", len(result.SpendingByCategory.Buckets))

	return result, nil
}

// Invalidate drops every cached range for one user. Called after any
// mutation to that user's records.
func (s *DashboardService) Invalidate(userID int64) {
	removed := s.summary.DeletePrefix(cacheKey(userID, ""))
	if removed > 0 {
		s.logger.Debug("Summary cache invalidated",
			applog.FieldUserID, userID, "entries", removed)
	}
}

// SummaryCache exposes the underlying cache for cleanup registration.
func (s *DashboardService) SummaryCache() *cache.LRUCache[report.Summary] {
	return s.summary
}

func (s *DashboardService) fetch(ctx context.Context, userID int64) (report.Inputs, error) {
	income, err := s.store.ListActiveRecords(ctx, core.KindIncome, userID)
	if err != nil {
		return report.Inputs{}, fmt.Errorf("fetch income: %w", err)
	}

	expenses, err := s.store.ListActiveRecords(ctx, core.KindExpense, userID)
	if err != nil {
		return report.Inputs{}, fmt.Errorf("fetch expenses: %w", err)
	}

	subscriptions, err := s.store.ListActiveSubscriptions(ctx, userID)
	if err != nil {
		return report.Inputs{}, fmt.Errorf("fetch subscriptions: %w", err)
	}

	investments, err := s.store.ListActiveInvestments(ctx, userID)
	if err != nil {
		return report.Inputs{}, fmt.Errorf("fetch investments: %w", err)
	}

	return report.Inputs{
		Income:        income,
		Expenses:      expenses,
		Subscriptions: subscriptions,
		Investments:   investments,
	}, nil
}

func cacheKey(userID int64, rangeLabel string) string {
	return cache.Key(strconv.FormatInt(userID, 10), rangeLabel)
}
