package report

import (
	"testing"

	"github.com/shopspring/decimal"

	"smartbudget/internal/core"
)

func TestSummarize_BalanceMayGoNegative(t *testing.T) {
	in := Inputs{
		Income: []core.Record{
			rec("Salary", "1000", 5),
		},
		Expenses: []core.Record{
			rec("Rent", "1500", 6),
		},
	}

	got := Summarize(in, juneRange(), DefaultPalette)

	if want := decimal.NewFromInt(1000); !got.TotalIncome.Equal(want) {
		t.Errorf("TotalIncome = %s, want %s", got.TotalIncome, want)
	}
	if want := decimal.NewFromInt(1500); !got.TotalSpent.Equal(want) {
		t.Errorf("TotalSpent = %s, want %s", got.TotalSpent, want)
	}
	if want := decimal.NewFromInt(-500); !got.AvailableBalance.Equal(want) {
		t.Errorf("AvailableBalance = %s, want %s (no clamping)", got.AvailableBalance, want)
	}
}

func TestSummarize_InvestmentsIgnoreDateRange(t *testing.T) {
	in := Inputs{
		Investments: []core.Investment{
			{
				Name:        "index fund",
				UnitPrice:   "10",
				UnitCount:   "100",
				PurchasedOn: core.NewDate(2019, 1, 1), // far outside the range
				Deleted:     core.NotDeleted,
			},
			{
				Name:      "deleted holding",
				UnitPrice: "500",
				UnitCount: "2",
				Deleted:   core.SoftDeleted,
			},
		},
	}

	got := Summarize(in, juneRange(), DefaultPalette)
	if want := decimal.NewFromInt(1000); !got.TotalInvestment.Equal(want) {
		t.Errorf("TotalInvestment = %s, want %s", got.TotalInvestment, want)
	}
}

func TestSummarize_SubscriptionsIgnoreDateRange(t *testing.T) {
	in := Inputs{
		Subscriptions: []core.Subscription{
			{
				Name:      "cloud storage",
				Amount:    "60",
				Frequency: core.Quarterly,
				StartedOn: core.NewDate(2020, 3, 1),
				Active:    true,
				Deleted:   core.NotDeleted,
			},
		},
	}

	got := Summarize(in, juneRange(), DefaultPalette)
	if want := decimal.NewFromInt(20); !got.TotalSubscriptions.Equal(want) {
		t.Errorf("TotalSubscriptions = %s, want %s", got.TotalSubscriptions, want)
	}
}

func TestSummarize_EmptyInputs(t *testing.T) {
	got := Summarize(Inputs{}, juneRange(), DefaultPalette)

	if !got.TotalIncome.IsZero() || !got.TotalSpent.IsZero() || !got.AvailableBalance.IsZero() {
		t.Error("empty inputs must produce all-zero totals")
	}
	if len(got.IncomeByCategory.Buckets) != 0 || len(got.SpendingByCategory.Buckets) != 0 {
		t.Error("empty inputs must produce no buckets")
	}
}

func TestSummarize_Idempotent(t *testing.T) {
	in := Inputs{
		Income:   []core.Record{rec("Salary", "2500", 1)},
		Expenses: []core.Record{rec("Food", "300", 2), rec("Rent", "900", 3)},
		Subscriptions: []core.Subscription{
			{Name: "s", Amount: "9.99", Frequency: core.Monthly, Active: true, Deleted: core.NotDeleted},
		},
		Investments: []core.Investment{
			{Name: "i", UnitPrice: "5", UnitCount: "10", Deleted: core.NotDeleted},
		},
	}

	first := Summarize(in, juneRange(), DefaultPalette)
	second := Summarize(in, juneRange(), DefaultPalette)

	pairs := []struct {
		name string
		a, b decimal.Decimal
	}{
		{"TotalIncome", first.TotalIncome, second.TotalIncome},
		{"TotalSpent", first.TotalSpent, second.TotalSpent},
		{"AvailableBalance", first.AvailableBalance, second.AvailableBalance},
		{"TotalInvestment", first.TotalInvestment, second.TotalInvestment},
		{"TotalSubscriptions", first.TotalSubscriptions, second.TotalSubscriptions},
	}
	for _, p := range pairs {
		if !p.a.Equal(p.b) {
			t.Errorf("%s differs between identical runs: %s vs %s", p.name, p.a, p.b)
		}
	}
}
