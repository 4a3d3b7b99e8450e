package services

import (
	"context"
	"fmt"

	"smartbudget/internal/amqp"
	"smartbudget/internal/core"
	applog "smartbudget/internal/log"
	"smartbudget/internal/realtime"
	"smartbudget/internal/storage"
)

// RecordService orchestrates record mutations: the SQLite write comes
// first, then cache invalidation, realtime push, and the AMQP change
// message. Everything after the write is best-effort and never fails
// the request.
type RecordService struct {
	storage    *storage.SQLiteRepository
	amqpClient *amqp.Client
	hub        *realtime.Hub
	dashboard  *DashboardService
	logger     *applog.Logger
}

func NewRecordService(storage *storage.SQLiteRepository, amqpClient *amqp.Client, hub *realtime.Hub, dashboard *DashboardService, logger *applog.Logger) *RecordService {
	return &RecordService{
		storage:    storage,
		amqpClient: amqpClient,
		hub:        hub,
		dashboard:  dashboard,
		logger:     logger.WithComponent(applog.ComponentRecords),
	}
}

// CreateRecord validates and saves an income or expense entry.
func (s *RecordService) CreateRecord(ctx context.Context, kind core.RecordKind, rec core.Record) (int64, error) {
	if err := rec.Validate(); err != nil {
		return 0, err
	}

	id, err := s.storage.CreateRecord(ctx, kind, rec)
	if err != nil {
		return 0, fmt.Errorf("save %s: %w", kind, err)
	}

	s.notifyChange(ctx, rec.UserID, kind)
	return id, nil
}

// UpdateRecord replaces the mutable fields of an existing entry.
func (s *RecordService) UpdateRecord(ctx context.Context, kind core.RecordKind, rec core.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	if err := s.storage.UpdateRecord(ctx, kind, rec); err != nil {
		return fmt.Errorf("update %s: %w", kind, err)
	}

	s.notifyChange(ctx, rec.UserID, kind)
	return nil
}

// DeleteRecord soft deletes an entry. The row stays in SQLite with
// is_deleted flipped, so the aggregation filters it out.
func (s *RecordService) DeleteRecord(ctx context.Context, kind core.RecordKind, id, userID int64) error {
	if err := s.storage.SoftDeleteRecord(ctx, kind, id, userID); err != nil {
		return fmt.Errorf("soft delete %s: %w", kind, err)
	}

	s.notifyChange(ctx, userID, kind)
	return nil
}

// ListRecords returns the user's active entries of one kind.
func (s *RecordService) ListRecords(ctx context.Context, kind core.RecordKind, userID int64) ([]core.Record, error) {
	return s.storage.ListActiveRecords(ctx, kind, userID)
}

// CreateSubscription validates and saves a recurring charge.
func (s *RecordService) CreateSubscription(ctx context.Context, sub core.Subscription) (int64, error) {
	if err := sub.Validate(); err != nil {
		return 0, err
	}

	id, err := s.storage.CreateSubscription(ctx, sub)
	if err != nil {
		return 0, fmt.Errorf("save subscription: %w", err)
	}

	s.notifyChange(ctx, sub.UserID, core.KindSubscription)
	return id, nil
}

func (s *RecordService) UpdateSubscription(ctx context.Context, sub core.Subscription) error {
	if err := sub.Validate(); err != nil {
		return err
	}

	if err := s.storage.UpdateSubscription(ctx, sub); err != nil {
		return fmt.Errorf("update subscription: %w", err)
	}

	s.notifyChange(ctx, sub.UserID, core.KindSubscription)
	return nil
}

func (s *RecordService) DeleteSubscription(ctx context.Context, id, userID int64) error {
	if err := s.storage.SoftDeleteSubscription(ctx, id, userID); err != nil {
		return fmt.Errorf("soft delete subscription: %w", err)
	}

	s.notifyChange(ctx, userID, core.KindSubscription)
	return nil
}

func (s *RecordService) ListSubscriptions(ctx context.Context, userID int64) ([]core.Subscription, error) {
	return s.storage.ListActiveSubscriptions(ctx, userID)
}

// CreateInvestment validates and saves a holding.
func (s *RecordService) CreateInvestment(ctx context.Context, inv core.Investment) (int64, error) {
	if err := inv.Validate(); err != nil {
		return 0, err
	}

	id, err := s.storage.CreateInvestment(ctx, inv)
	if err != nil {
		return 0, fmt.Errorf("save investment: %w", err)
	}

	s.notifyChange(ctx, inv.UserID, core.KindInvestment)
	return id, nil
}

func (s *RecordService) UpdateInvestment(ctx context.Context, inv core.Investment) error {
	if err := inv.Validate(); err != nil {
		return err
	}

	if err := s.storage.UpdateInvestment(ctx, inv); err != nil {
		return fmt.Errorf("update investment: %w", err)
	}

	s.notifyChange(ctx, inv.UserID, core.KindInvestment)
	return nil
}

func (s *RecordService) DeleteInvestment(ctx context.Context, id, userID int64) error {
	if err := s.storage.SoftDeleteInvestment(ctx, id, userID); err != nil {
		return fmt.Errorf("soft delete investment: %w", err)
	}

	s.notifyChange(ctx, userID, core.KindInvestment)
	return nil
}

func (s *RecordService) ListInvestments(ctx context.Context, userID int64) ([]core.Investment, error) {
	return s.storage.ListActiveInvestments(ctx, userID)
}

// notifyChange fans out after a successful write. The SQLite row is the
// source of truth at this point, so failures here only get logged.
func (s *RecordService) notifyChange(ctx context.Context, userID int64, kind core.RecordKind) {
	if s.dashboard != nil {
		s.dashboard.Invalidate(userID)
	}

	if s.hub != nil {
		s.hub.Broadcast(ctx, userID, kind)
	}

	if s.amqpClient == nil {
		s.logger.WarnContext(ctx, "AMQP client not available, skipping change message",
			applog.FieldUserID, userID, applog.FieldRecordKind, string(kind))
		return
	}

	if err := s.amqpClient.PublishRecordChange(ctx, userID, kind); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish change message",
			applog.FieldUserID, userID, applog.FieldRecordKind, string(kind),
			applog.FieldError, err)
	}
}

// Close closes both storage and AMQP connections
func (s *RecordService) Close() error {
	var errs []error

	if s.storage != nil {
		if err := s.storage.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close record service: %v", errs)
	}

	return nil
}
