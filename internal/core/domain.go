package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	Daily     BillingFrequency = "Daily"
	Weekly    BillingFrequency = "Weekly"
	Monthly   BillingFrequency = "Monthly"
	Quarterly BillingFrequency = "Quarterly"
	Yearly    BillingFrequency = "Yearly"
	OneTime   BillingFrequency = "One-time"
)

const (
	KindIncome       RecordKind = "income"
	KindExpense      RecordKind = "expense"
	KindSubscription RecordKind = "subscription"
	KindInvestment   RecordKind = "investment"
)

// Soft-delete markers as stored in the is_deleted column.
const (
	NotDeleted  = "N"
	SoftDeleted = "Y"
)

// CategoryFallback is the label used for records without a category.
const CategoryFallback = "Uncategorized"

type (
	BillingFrequency string

	RecordKind string

	Date struct {
		time.Time
	}

	// Record is a single income or expense entry. Amount is kept as the
	// raw text the store holds; ParseMoney is applied at aggregation time.
	Record struct {
		ID         int64
		Name       string
		Amount     string
		OccurredOn Date
		Category   string
		PaidVia    string
		Notes      string
		UserID     int64
		Deleted    string
		CreatedAt  time.Time
		UpdatedAt  time.Time
	}

	// Subscription is a recurring charge. Inactive subscriptions and
	// one-time charges contribute nothing to the monthly-equivalent total.
	Subscription struct {
		ID        int64
		Name      string
		Amount    string
		URL       string
		Frequency BillingFrequency
		StartedOn Date
		Active    bool
		Notify    bool
		Notes     string
		UserID    int64
		Deleted   string
		CreatedAt time.Time
		UpdatedAt time.Time
	}

	// Investment is a current holding, valued at UnitPrice times UnitCount.
	Investment struct {
		ID          int64
		Name        string
		UnitPrice   string
		UnitCount   string
		PurchasedOn Date
		Category    string
		Notes       string
		UserID      int64
		Deleted     string
		CreatedAt   time.Time
		UpdatedAt   time.Time
	}
)

var (
	ErrInvalidDay    = errors.New("invalid day")
	ErrInvalidMonth  = errors.New("invalid month")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrEmptyName     = errors.New("empty name")
	ErrBadFrequency  = errors.New("invalid billing frequency")
	ErrInvalidUnits  = errors.New("invalid unit count")
	ErrInvalidPrice  = errors.New("invalid unit price")
	ErrUnknownKind   = errors.New("unknown record kind")
)

func (d Date) Validate() error {
	if d.IsZero() {
		return errors.New("date cannot be zero")
	}
	_, month, day := d.Date()
	if day < 1 || day > 31 {
		return ErrInvalidDay
	}
	if month < 1 || month > 12 {
		return ErrInvalidMonth
	}
	return nil
}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar day.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// Day returns the day of the month
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year
func (d Date) Year() int {
	return d.Time.Year()
}

// Before reports whether d falls on an earlier calendar day than other.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

// After reports whether d falls on a later calendar day than other.
func (d Date) After(other Date) bool {
	return d.Time.After(other.Time)
}

// AddDays returns the date n days after d (n may be negative).
func (d Date) AddDays(n int) Date {
	return Date{Time: d.Time.AddDate(0, 0, n)}
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Time.Format("2006-01-02")
}

func (k RecordKind) Validate() error {
	switch k {
	case KindIncome, KindExpense, KindSubscription, KindInvestment:
		return nil
	}
	return ErrUnknownKind
}

func (f BillingFrequency) Validate() error {
	switch f {
	case Daily, Weekly, Monthly, Quarterly, Yearly, OneTime:
		return nil
	}
	return ErrBadFrequency
}

// NormalizeCategory maps absent or blank category labels to the
// "Uncategorized" fallback.
func NormalizeCategory(category string) string {
	category = strings.TrimSpace(category)
	if category == "" {
		return CategoryFallback
	}
	return category
}

// IsActive reports whether the record participates in aggregation.
func (r Record) IsActive() bool {
	return r.Deleted != SoftDeleted
}

func (r Record) Validate() error {
	if err := r.OccurredOn.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(r.Name)) == 0 {
		return ErrEmptyName
	}
	if len(r.Name) > 200 {
		return errors.New("name too long (max 200 characters)")
	}
	if _, err := ParseMoneyStrict(r.Amount); err != nil {
		return ErrInvalidAmount
	}
	return nil
}

func (s Subscription) IsActive() bool {
	return s.Deleted != SoftDeleted
}

func (s Subscription) Validate() error {
	if len(strings.TrimSpace(s.Name)) == 0 {
		return ErrEmptyName
	}
	if len(s.Name) > 200 {
		return errors.New("name too long (max 200 characters)")
	}
	if _, err := ParseMoneyStrict(s.Amount); err != nil {
		return ErrInvalidAmount
	}
	if err := s.Frequency.Validate(); err != nil {
		return err
	}
	if err := s.StartedOn.Validate(); err != nil {
		return errors.New("invalid start date: " + err.Error())
	}
	return nil
}

func (i Investment) IsActive() bool {
	return i.Deleted != SoftDeleted
}

func (i Investment) Validate() error {
	if len(strings.TrimSpace(i.Name)) == 0 {
		return ErrEmptyName
	}
	if len(i.Name) > 200 {
		return errors.New("name too long (max 200 characters)")
	}
	if _, err := ParseMoneyStrict(i.UnitPrice); err != nil {
		return ErrInvalidPrice
	}
	if _, err := ParseMoneyStrict(i.UnitCount); err != nil {
		return ErrInvalidUnits
	}
	if err := i.PurchasedOn.Validate(); err != nil {
		return errors.New("invalid purchase date: " + err.Error())
	}
	return nil
}

// MarketValue derives the holding's current value. A unit price or count
// that does not parse yields zero, never an error.
func (i Investment) MarketValue() decimal.Decimal {
	price := ParseMoney(i.UnitPrice)
	units := ParseMoney(i.UnitCount)
	return price.Mul(units)
}
