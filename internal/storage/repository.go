// Package storage implements the record store on SQLite.
//
// All list queries apply the soft-delete filter server-side and order by
// id, so callers receive active rows in a stable order.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"smartbudget/internal/core"

	_ "modernc.org/sqlite"
)

var (
	// ErrUserNotFound signals that an email could not be resolved to a
	// user identifier. Callers treat it as fatal for the session.
	ErrUserNotFound = errors.New("user not found")

	// ErrNotFound signals that a row does not exist or is not owned by
	// the requesting user.
	ErrNotFound = errors.New("record not found")
)

// User is an account row.
type User struct {
	ID    int64
	Email string
	Name  string
}

// NotifiableSubscription pairs a subscription with its owner's email for
// renewal reminders.
type NotifiableSubscription struct {
	Subscription core.Subscription
	Email        string
}

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// EnsureUser inserts the user if missing and returns its id either way.
func (r *SQLiteRepository) EnsureUser(ctx context.Context, email, name string) (int64, error) {
	id, err := r.ResolveUserID(ctx, email)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return 0, err
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (email, name) VALUES (?, ?)`, email, name)
	if err != nil {
		return 0, fmt.Errorf("insert user: %w", err)
	}
	return res.LastInsertId()
}

// ResolveUserID maps an authenticated email to the internal user id.
func (r *SQLiteRepository) ResolveUserID(ctx context.Context, email string) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`SELECT id FROM users WHERE email = ?`, email).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrUserNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("resolve user id: %w", err)
	}
	return id, nil
}

// ListUsers returns all accounts, for worker sweeps.
func (r *SQLiteRepository) ListUsers(ctx context.Context) ([]User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, email, name FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func tableForKind(kind core.RecordKind) (string, error) {
	switch kind {
	case core.KindIncome:
		return "incomes", nil
	case core.KindExpense:
		return "expenses", nil
	}
	return "", fmt.Errorf("%w: %s", core.ErrUnknownKind, kind)
}

// CreateRecord inserts an income or expense row and returns its id.
func (r *SQLiteRepository) CreateRecord(ctx context.Context, kind core.RecordKind, rec core.Record) (int64, error) {
	table, err := tableForKind(kind)
	if err != nil {
		return 0, err
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO `+table+` (user_id, name, amount, occurred_on, category, paid_via, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.UserID, rec.Name, rec.Amount, rec.OccurredOn.String(), rec.Category, rec.PaidVia, rec.Notes)
	if err != nil {
		return 0, fmt.Errorf("insert %s: %w", table, err)
	}
	return res.LastInsertId()
}

// UpdateRecord rewrites the mutable fields of a row owned by rec.UserID.
func (r *SQLiteRepository) UpdateRecord(ctx context.Context, kind core.RecordKind, rec core.Record) error {
	table, err := tableForKind(kind)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE `+table+` SET name = ?, amount = ?, occurred_on = ?, category = ?, paid_via = ?, notes = ?,
		 updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND user_id = ? AND is_deleted = ?`,
		rec.Name, rec.Amount, rec.OccurredOn.String(), rec.Category, rec.PaidVia, rec.Notes,
		rec.ID, rec.UserID, core.NotDeleted)
	if err != nil {
		return fmt.Errorf("update %s: %w", table, err)
	}
	return requireRow(res)
}

// SoftDeleteRecord flips the soft-delete marker; rows are never removed.
func (r *SQLiteRepository) SoftDeleteRecord(ctx context.Context, kind core.RecordKind, id, userID int64) error {
	table, err := tableForKind(kind)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE `+table+` SET is_deleted = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND user_id = ? AND is_deleted = ?`,
		core.SoftDeleted, id, userID, core.NotDeleted)
	if err != nil {
		return fmt.Errorf("soft delete %s: %w", table, err)
	}
	return requireRow(res)
}

// ListActiveRecords returns the user's active rows ordered by id.
func (r *SQLiteRepository) ListActiveRecords(ctx context.Context, kind core.RecordKind, userID int64) ([]core.Record, error) {
	table, err := tableForKind(kind)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, name, amount, occurred_on, category, paid_via, notes, is_deleted
		 FROM `+table+` WHERE user_id = ? AND is_deleted = ? ORDER BY id`,
		userID, core.NotDeleted)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	defer rows.Close()

	var records []core.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// CreateSubscription inserts a subscription row and returns its id.
func (r *SQLiteRepository) CreateSubscription(ctx context.Context, s core.Subscription) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO subscriptions (user_id, name, amount, url, frequency, started_on, active, notify, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.UserID, s.Name, s.Amount, s.URL, string(s.Frequency), s.StartedOn.String(),
		boolToInt(s.Active), boolToInt(s.Notify), s.Notes)
	if err != nil {
		return 0, fmt.Errorf("insert subscription: %w", err)
	}
	return res.LastInsertId()
}

// UpdateSubscription rewrites a subscription owned by s.UserID. Flipping
// Active off stamps cancelled_at once.
func (r *SQLiteRepository) UpdateSubscription(ctx context.Context, s core.Subscription) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE subscriptions SET name = ?, amount = ?, url = ?, frequency = ?, started_on = ?,
		 active = ?, notify = ?, notes = ?,
		 cancelled_at = CASE WHEN ? = 0 AND cancelled_at IS NULL THEN CURRENT_TIMESTAMP
		                     WHEN ? = 1 THEN NULL ELSE cancelled_at END,
		 updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND user_id = ? AND is_deleted = ?`,
		s.Name, s.Amount, s.URL, string(s.Frequency), s.StartedOn.String(),
		boolToInt(s.Active), boolToInt(s.Notify), s.Notes,
		boolToInt(s.Active), boolToInt(s.Active),
		s.ID, s.UserID, core.NotDeleted)
	if err != nil {
		return fmt.Errorf("update subscription: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) SoftDeleteSubscription(ctx context.Context, id, userID int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE subscriptions SET is_deleted = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND user_id = ? AND is_deleted = ?`,
		core.SoftDeleted, id, userID, core.NotDeleted)
	if err != nil {
		return fmt.Errorf("soft delete subscription: %w", err)
	}
	return requireRow(res)
}

// ListActiveSubscriptions returns the user's non-deleted subscriptions
// (both running and cancelled ones) ordered by id.
func (r *SQLiteRepository) ListActiveSubscriptions(ctx context.Context, userID int64) ([]core.Subscription, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, name, amount, url, frequency, started_on, active, notify, notes, is_deleted
		 FROM subscriptions WHERE user_id = ? AND is_deleted = ? ORDER BY id`,
		userID, core.NotDeleted)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []core.Subscription
	for rows.Next() {
		s, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("scan subscription: %w", err)
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

// ListNotifiableSubscriptions returns every running subscription with
// reminders enabled, across all users, joined with the owner's email.
func (r *SQLiteRepository) ListNotifiableSubscriptions(ctx context.Context) ([]NotifiableSubscription, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT s.id, s.user_id, s.name, s.amount, s.url, s.frequency, s.started_on, s.active, s.notify, s.notes, s.is_deleted, u.email
		 FROM subscriptions s JOIN users u ON u.id = s.user_id
		 WHERE s.is_deleted = ? AND s.active = 1 AND s.notify = 1
		 ORDER BY s.id`,
		core.NotDeleted)
	if err != nil {
		return nil, fmt.Errorf("list notifiable subscriptions: %w", err)
	}
	defer rows.Close()

	var out []NotifiableSubscription
	for rows.Next() {
		var (
			s              core.Subscription
			startedOn      string
			active, notify int
			email          string
		)
		if err := rows.Scan(&s.ID, &s.UserID, &s.Name, &s.Amount, &s.URL, (*string)(&s.Frequency),
			&startedOn, &active, &notify, &s.Notes, &s.Deleted, &email); err != nil {
			return nil, fmt.Errorf("scan notifiable subscription: %w", err)
		}
		s.StartedOn = parseStoredDate(startedOn)
		s.Active = active != 0
		s.Notify = notify != 0
		out = append(out, NotifiableSubscription{Subscription: s, Email: email})
	}
	return out, rows.Err()
}

// CreateInvestment inserts an investment row and returns its id.
func (r *SQLiteRepository) CreateInvestment(ctx context.Context, inv core.Investment) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO investments (user_id, name, unit_price, unit_count, purchased_on, category, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		inv.UserID, inv.Name, inv.UnitPrice, inv.UnitCount, inv.PurchasedOn.String(), inv.Category, inv.Notes)
	if err != nil {
		return 0, fmt.Errorf("insert investment: %w", err)
	}
	return res.LastInsertId()
}

func (r *SQLiteRepository) UpdateInvestment(ctx context.Context, inv core.Investment) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE investments SET name = ?, unit_price = ?, unit_count = ?, purchased_on = ?, category = ?, notes = ?,
		 updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND user_id = ? AND is_deleted = ?`,
		inv.Name, inv.UnitPrice, inv.UnitCount, inv.PurchasedOn.String(), inv.Category, inv.Notes,
		inv.ID, inv.UserID, core.NotDeleted)
	if err != nil {
		return fmt.Errorf("update investment: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) SoftDeleteInvestment(ctx context.Context, id, userID int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE investments SET is_deleted = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND user_id = ? AND is_deleted = ?`,
		core.SoftDeleted, id, userID, core.NotDeleted)
	if err != nil {
		return fmt.Errorf("soft delete investment: %w", err)
	}
	return requireRow(res)
}

// ListActiveInvestments returns the user's active holdings ordered by id.
func (r *SQLiteRepository) ListActiveInvestments(ctx context.Context, userID int64) ([]core.Investment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, name, unit_price, unit_count, purchased_on, category, notes, is_deleted
		 FROM investments WHERE user_id = ? AND is_deleted = ? ORDER BY id`,
		userID, core.NotDeleted)
	if err != nil {
		return nil, fmt.Errorf("list investments: %w", err)
	}
	defer rows.Close()

	var invs []core.Investment
	for rows.Next() {
		var (
			inv         core.Investment
			purchasedOn string
		)
		if err := rows.Scan(&inv.ID, &inv.UserID, &inv.Name, &inv.UnitPrice, &inv.UnitCount,
			&purchasedOn, &inv.Category, &inv.Notes, &inv.Deleted); err != nil {
			return nil, fmt.Errorf("scan investment: %w", err)
		}
		inv.PurchasedOn = parseStoredDate(purchasedOn)
		invs = append(invs, inv)
	}
	return invs, rows.Err()
}

func scanRecord(rows *sql.Rows) (core.Record, error) {
	var (
		rec        core.Record
		occurredOn string
	)
	if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Name, &rec.Amount, &occurredOn,
		&rec.Category, &rec.PaidVia, &rec.Notes, &rec.Deleted); err != nil {
		return core.Record{}, err
	}
	rec.OccurredOn = parseStoredDate(occurredOn)
	return rec, nil
}

func scanSubscription(rows *sql.Rows) (core.Subscription, error) {
	var (
		s              core.Subscription
		startedOn      string
		active, notify int
	)
	if err := rows.Scan(&s.ID, &s.UserID, &s.Name, &s.Amount, &s.URL, (*string)(&s.Frequency),
		&startedOn, &active, &notify, &s.Notes, &s.Deleted); err != nil {
		return core.Subscription{}, err
	}
	s.StartedOn = parseStoredDate(startedOn)
	s.Active = active != 0
	s.Notify = notify != 0
	return s, nil
}

// parseStoredDate reads a YYYY-MM-DD column. Malformed values yield a
// zero date rather than an error; aggregation then filters them out.
func parseStoredDate(s string) core.Date {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return core.Date{}
	}
	return core.Date{Time: t}
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
