package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"smartbudget/internal/core"
)

// DefaultPalette holds the chart colors cycled through category buckets.
var DefaultPalette = []string{
	"#8b5cf6", // purple
	"#3b82f6", // blue
	"#10b981", // green
	"#f59e0b", // amber
	"#ef4444", // red
	"#ec4899", // pink
	"#14b8a6", // teal
	"#f97316", // orange
}

// CategoryBucket is the aggregated amount for one category label.
type CategoryBucket struct {
	Category   string
	Total      decimal.Decimal
	ColorIndex int
	Color      string
}

// CategoryBreakdown is the result of one aggregation pass. The sum of all
// bucket totals always equals Total.
type CategoryBreakdown struct {
	Buckets []CategoryBucket
	Total   decimal.Decimal
}

// AggregateByCategory groups active records falling inside the range by
// their normalized category label and sums their amounts.
//
// Colors are assigned by first-occurrence order while scanning records in
// their given order, cycling through the palette; callers should supply
// records in a stable order (the storage layer orders by id) so the
// assignment is deterministic. Buckets are sorted by total descending,
// ties keeping their pre-sort order. Amounts that fail to parse count as
// zero but still claim a bucket for their category.
func AggregateByCategory(records []core.Record, dateRange DateRange, palette []string) CategoryBreakdown {
	if len(palette) == 0 {
		palette = DefaultPalette
	}

	sums := make(map[string]decimal.Decimal)
	var order []string

	for _, r := range records {
		if !r.IsActive() || !dateRange.Contains(r.OccurredOn) {
			continue
		}
		category := core.NormalizeCategory(r.Category)
		sum, seen := sums[category]
		if !seen {
			order = append(order, category)
		}
		sums[category] = sum.Add(core.ParseMoney(r.Amount))
	}

	breakdown := CategoryBreakdown{
		Buckets: make([]CategoryBucket, 0, len(order)),
		Total:   decimal.Zero,
	}
	for i, category := range order {
		total := sums[category]
		breakdown.Buckets = append(breakdown.Buckets, CategoryBucket{
			Category:   category,
			Total:      total,
			ColorIndex: i % len(palette),
			Color:      palette[i%len(palette)],
		})
		breakdown.Total = breakdown.Total.Add(total)
	}

	sort.SliceStable(breakdown.Buckets, func(a, b int) bool {
		return breakdown.Buckets[a].Total.GreaterThan(breakdown.Buckets[b].Total)
	})

	return breakdown
}
