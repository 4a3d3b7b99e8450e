package http

import (
	"encoding/json"
	"net/http"

	"smartbudget/internal/core"
	"smartbudget/internal/report"
)

type errorResponse struct {
	Error string `json:"error"`
}

type idResponse struct {
	ID int64 `json:"id"`
}

type bucketView struct {
	Category string `json:"category"`
	Total    string `json:"total"`
	Color    string `json:"color"`
}

type breakdownView struct {
	Buckets []bucketView `json:"buckets"`
	Total   string       `json:"total"`
}

type rangeView struct {
	Label   string `json:"label"`
	Start   string `json:"start"`
	End     string `json:"end"`
	Display string `json:"display"`
}

type summaryView struct {
	Range              rangeView     `json:"range"`
	TotalIncome        string        `json:"totalIncome"`
	TotalSpent         string        `json:"totalSpent"`
	AvailableBalance   string        `json:"availableBalance"`
	TotalInvestment    string        `json:"totalInvestment"`
	TotalSubscriptions string        `json:"totalSubscriptions"`
	IncomeByCategory   breakdownView `json:"incomeByCategory"`
	SpendingByCategory breakdownView `json:"spendingByCategory"`
}

type recordView struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Amount     string `json:"amount"`
	OccurredOn string `json:"occurredOn"`
	Category   string `json:"category"`
	PaidVia    string `json:"paidVia,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

type subscriptionView struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Amount    string `json:"amount"`
	URL       string `json:"url,omitempty"`
	Frequency string `json:"billingFrequency"`
	StartedOn string `json:"startedOn"`
	Active    bool   `json:"active"`
	Notify    bool   `json:"notify"`
	Notes     string `json:"notes,omitempty"`
}

type investmentView struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	UnitPrice   string `json:"unitPrice"`
	UnitCount   string `json:"unitCount"`
	MarketValue string `json:"marketValue"`
	PurchasedOn string `json:"purchasedOn"`
	Category    string `json:"category"`
	Notes       string `json:"notes,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func buildSummaryView(s report.Summary) summaryView {
	return summaryView{
		Range: rangeView{
			Label:   s.Range.Label,
			Start:   s.Range.Start.String(),
			End:     s.Range.End.String(),
			Display: s.Range.Display(),
		},
		TotalIncome:        s.TotalIncome.String(),
		TotalSpent:         s.TotalSpent.String(),
		AvailableBalance:   s.AvailableBalance.String(),
		TotalInvestment:    s.TotalInvestment.String(),
		TotalSubscriptions: s.TotalSubscriptions.String(),
		IncomeByCategory:   buildBreakdownView(s.IncomeByCategory),
		SpendingByCategory: buildBreakdownView(s.SpendingByCategory),
	}
}

func buildBreakdownView(b report.CategoryBreakdown) breakdownView {
	buckets := make([]bucketView, 0, len(b.Buckets))
	for _, bucket := range b.Buckets {
		buckets = append(buckets, bucketView{
			Category: bucket.Category,
			Total:    bucket.Total.String(),
			Color:    bucket.Color,
		})
	}
	return breakdownView{Buckets: buckets, Total: b.Total.String()}
}

func buildRecordView(rec core.Record) recordView {
	return recordView{
		ID:         rec.ID,
		Name:       rec.Name,
		Amount:     rec.Amount,
		OccurredOn: rec.OccurredOn.String(),
		Category:   rec.Category,
		PaidVia:    rec.PaidVia,
		Notes:      rec.Notes,
	}
}

func buildSubscriptionView(sub core.Subscription) subscriptionView {
	return subscriptionView{
		ID:        sub.ID,
		Name:      sub.Name,
		Amount:    sub.Amount,
		URL:       sub.URL,
		Frequency: string(sub.Frequency),
		StartedOn: sub.StartedOn.String(),
		Active:    sub.Active,
		Notify:    sub.Notify,
		Notes:     sub.Notes,
	}
}

func buildInvestmentView(inv core.Investment) investmentView {
	return investmentView{
		ID:          inv.ID,
		Name:        inv.Name,
		UnitPrice:   inv.UnitPrice,
		UnitCount:   inv.UnitCount,
		MarketValue: inv.MarketValue().String(),
		PurchasedOn: inv.PurchasedOn.String(),
		Category:    inv.Category,
		Notes:       inv.Notes,
	}
}
