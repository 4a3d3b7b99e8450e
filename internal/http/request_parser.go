package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"smartbudget/internal/core"
)

const maxBodyBytes = 1 << 20

var errBadBody = errors.New("invalid request body")

type recordRequest struct {
	Name       string `json:"name"`
	Amount     string `json:"amount"`
	OccurredOn string `json:"occurredOn"`
	Category   string `json:"category"`
	PaidVia    string `json:"paidVia"`
	Notes      string `json:"notes"`
}

type subscriptionRequest struct {
	Name      string `json:"name"`
	Amount    string `json:"amount"`
	URL       string `json:"url"`
	Frequency string `json:"billingFrequency"`
	StartedOn string `json:"startedOn"`
	Active    *bool  `json:"active"`
	Notify    bool   `json:"notify"`
	Notes     string `json:"notes"`
}

type investmentRequest struct {
	Name        string `json:"name"`
	UnitPrice   string `json:"unitPrice"`
	UnitCount   string `json:"unitCount"`
	PurchasedOn string `json:"purchasedOn"`
	Category    string `json:"category"`
	Notes       string `json:"notes"`
}

func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errBadBody
	}
	return nil
}

func parseRecordRequest(r *http.Request) (core.Record, error) {
	var req recordRequest
	if err := decodeBody(r, &req); err != nil {
		return core.Record{}, err
	}

	occurredOn, err := parseDate(req.OccurredOn)
	if err != nil {
		return core.Record{}, fmt.Errorf("occurredOn: %w", err)
	}

	return core.Record{
		Name:       sanitizeInput(req.Name),
		Amount:     strings.TrimSpace(req.Amount),
		OccurredOn: occurredOn,
		Category:   sanitizeInput(req.Category),
		PaidVia:    sanitizeInput(req.PaidVia),
		Notes:      sanitizeInput(req.Notes),
		Deleted:    core.NotDeleted,
	}, nil
}

func parseSubscriptionRequest(r *http.Request) (core.Subscription, error) {
	var req subscriptionRequest
	if err := decodeBody(r, &req); err != nil {
		return core.Subscription{}, err
	}

	startedOn, err := parseDate(req.StartedOn)
	if err != nil {
		return core.Subscription{}, fmt.Errorf("startedOn: %w", err)
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	return core.Subscription{
		Name:      sanitizeInput(req.Name),
		Amount:    strings.TrimSpace(req.Amount),
		URL:       sanitizeInput(req.URL),
		Frequency: core.BillingFrequency(strings.TrimSpace(req.Frequency)),
		StartedOn: startedOn,
		Active:    active,
		Notify:    req.Notify,
		Notes:     sanitizeInput(req.Notes),
		Deleted:   core.NotDeleted,
	}, nil
}

func parseInvestmentRequest(r *http.Request) (core.Investment, error) {
	var req investmentRequest
	if err := decodeBody(r, &req); err != nil {
		return core.Investment{}, err
	}

	purchasedOn, err := parseDate(req.PurchasedOn)
	if err != nil {
		return core.Investment{}, fmt.Errorf("purchasedOn: %w", err)
	}

	return core.Investment{
		Name:        sanitizeInput(req.Name),
		UnitPrice:   strings.TrimSpace(req.UnitPrice),
		UnitCount:   strings.TrimSpace(req.UnitCount),
		PurchasedOn: purchasedOn,
		Category:    sanitizeInput(req.Category),
		Notes:       sanitizeInput(req.Notes),
		Deleted:     core.NotDeleted,
	}, nil
}

func parseDate(s string) (core.Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return core.Date{}, errors.New("expected YYYY-MM-DD")
	}
	return core.DateOf(t), nil
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

// sanitizeInput removes control characters and trims whitespace
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
