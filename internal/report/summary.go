package report

import (
	"github.com/shopspring/decimal"

	"smartbudget/internal/core"
)

// Inputs is a caller-owned snapshot of the four record lists feeding one
// summary. The engine only reads it.
type Inputs struct {
	Income        []core.Record
	Expenses      []core.Record
	Subscriptions []core.Subscription
	Investments   []core.Investment
}

// Summary holds the top-line dashboard figures for one date range.
type Summary struct {
	Range              DateRange
	TotalIncome        decimal.Decimal
	TotalSpent         decimal.Decimal
	AvailableBalance   decimal.Decimal
	TotalInvestment    decimal.Decimal
	TotalSubscriptions decimal.Decimal
	IncomeByCategory   CategoryBreakdown
	SpendingByCategory CategoryBreakdown
}

// Summarize computes the full dashboard summary for one date range.
//
// Income and expenses are filtered to the range; investments and
// subscriptions are not, since they represent current holdings and
// running charges rather than period activity. The available balance is
// income minus spending and may be negative. Summarize is pure: identical
// inputs always produce an identical summary.
func Summarize(in Inputs, dateRange DateRange, palette []string) Summary {
	income := AggregateByCategory(in.Income, dateRange, palette)
	spending := AggregateByCategory(in.Expenses, dateRange, palette)

	return Summary{
		Range:              dateRange,
		TotalIncome:        income.Total,
		TotalSpent:         spending.Total,
		AvailableBalance:   income.Total.Sub(spending.Total),
		TotalInvestment:    InvestmentTotal(in.Investments),
		TotalSubscriptions: SubscriptionMonthlyTotal(in.Subscriptions),
		IncomeByCategory:   income,
		SpendingByCategory: spending,
	}
}

// InvestmentTotal sums the market value of all active holdings.
func InvestmentTotal(investments []core.Investment) decimal.Decimal {
	total := decimal.Zero
	for _, inv := range investments {
		if !inv.IsActive() {
			continue
		}
		total = total.Add(inv.MarketValue())
	}
	return total
}
