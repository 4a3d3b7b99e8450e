package report

import (
	"github.com/shopspring/decimal"

	"smartbudget/internal/core"
)

// Average weeks and days in a month, fixed by the conversion table.
var (
	weeksPerMonth = decimal.RequireFromString("4.33")
	daysPerMonth  = decimal.RequireFromString("30.42")
	monthsPerYear = decimal.NewFromInt(12)
	monthsPerQtr  = decimal.NewFromInt(3)
)

// MonthlyEquivalent converts a nominal charge at the given billing
// frequency to its monthly cost:
//
//	Yearly    amount / 12
//	Quarterly amount / 3
//	Weekly    amount * 4.33
//	Daily     amount * 30.42
//	One-time  0
//	Monthly and anything unrecognized pass through unchanged.
func MonthlyEquivalent(amount decimal.Decimal, frequency core.BillingFrequency) decimal.Decimal {
	switch frequency {
	case core.Yearly:
		return amount.Div(monthsPerYear)
	case core.Quarterly:
		return amount.Div(monthsPerQtr)
	case core.Weekly:
		return amount.Mul(weeksPerMonth)
	case core.Daily:
		return amount.Mul(daysPerMonth)
	case core.OneTime:
		return decimal.Zero
	}
	return amount
}

// SubscriptionMonthlyTotal sums the monthly-equivalent cost of all
// active subscriptions. Cancelled and soft-deleted subscriptions
// contribute zero regardless of frequency.
func SubscriptionMonthlyTotal(subscriptions []core.Subscription) decimal.Decimal {
	total := decimal.Zero
	for _, s := range subscriptions {
		if !s.IsActive() || !s.Active {
			continue
		}
		total = total.Add(MonthlyEquivalent(core.ParseMoney(s.Amount), s.Frequency))
	}
	return total
}
