package report

import (
	"testing"

	"github.com/shopspring/decimal"

	"smartbudget/internal/core"
)

func juneRange() DateRange {
	return DateRange{
		Start: core.NewDate(2025, 6, 1),
		End:   core.NewDate(2025, 6, 30),
		Label: "Last Month",
	}
}

func rec(category, amount string, day int) core.Record {
	return core.Record{
		Name:       "r",
		Category:   category,
		Amount:     amount,
		OccurredOn: core.NewDate(2025, 6, day),
		Deleted:    core.NotDeleted,
	}
}

func TestAggregateByCategory_Empty(t *testing.T) {
	got := AggregateByCategory(nil, juneRange(), DefaultPalette)
	if len(got.Buckets) != 0 {
		t.Errorf("buckets = %d, want 0", len(got.Buckets))
	}
	if !got.Total.IsZero() {
		t.Errorf("total = %s, want 0", got.Total)
	}
}

func TestAggregateByCategory_SumInvariant(t *testing.T) {
	records := []core.Record{
		rec("Groceries", "120.50", 3),
		rec("Rent", "900", 1),
		rec("Groceries", "79.50", 20),
		rec("Transport", "45", 12),
	}

	got := AggregateByCategory(records, juneRange(), DefaultPalette)

	sum := decimal.Zero
	for _, b := range got.Buckets {
		sum = sum.Add(b.Total)
	}
	if !sum.Equal(got.Total) {
		t.Errorf("sum of buckets %s != total %s", sum, got.Total)
	}
	if want := decimal.RequireFromString("1145"); !got.Total.Equal(want) {
		t.Errorf("total = %s, want %s", got.Total, want)
	}
}

func TestAggregateByCategory_InvalidAmountsCountAsZero(t *testing.T) {
	records := []core.Record{
		rec("Misc", "100", 5),
		rec("Misc", "abc", 6),
		rec("Misc", "50", 7),
	}

	got := AggregateByCategory(records, juneRange(), DefaultPalette)
	if want := decimal.NewFromInt(150); !got.Total.Equal(want) {
		t.Errorf("total = %s, want %s", got.Total, want)
	}
	if len(got.Buckets) != 1 {
		t.Fatalf("buckets = %d, want 1", len(got.Buckets))
	}
}

func TestAggregateByCategory_UncategorizedFallback(t *testing.T) {
	records := []core.Record{
		rec("", "10", 5),
		rec("   ", "20", 6),
	}

	got := AggregateByCategory(records, juneRange(), DefaultPalette)
	if len(got.Buckets) != 1 {
		t.Fatalf("buckets = %d, want 1", len(got.Buckets))
	}
	if got.Buckets[0].Category != core.CategoryFallback {
		t.Errorf("category = %q, want %q", got.Buckets[0].Category, core.CategoryFallback)
	}
	if want := decimal.NewFromInt(30); !got.Buckets[0].Total.Equal(want) {
		t.Errorf("total = %s, want %s", got.Buckets[0].Total, want)
	}
}

func TestAggregateByCategory_DateBoundaries(t *testing.T) {
	records := []core.Record{
		rec("A", "1", 1),  // on start
		rec("A", "2", 30), // on end
		{Name: "r", Category: "A", Amount: "4", OccurredOn: core.NewDate(2025, 5, 31), Deleted: core.NotDeleted},
		{Name: "r", Category: "A", Amount: "8", OccurredOn: core.NewDate(2025, 7, 1), Deleted: core.NotDeleted},
	}

	got := AggregateByCategory(records, juneRange(), DefaultPalette)
	if want := decimal.NewFromInt(3); !got.Total.Equal(want) {
		t.Errorf("total = %s, want %s (boundaries inclusive, outside excluded)", got.Total, want)
	}
}

func TestAggregateByCategory_SoftDeletedExcluded(t *testing.T) {
	deleted := rec("A", "500", 10)
	deleted.Deleted = core.SoftDeleted
	records := []core.Record{rec("A", "10", 5), deleted}

	got := AggregateByCategory(records, juneRange(), DefaultPalette)
	if want := decimal.NewFromInt(10); !got.Total.Equal(want) {
		t.Errorf("total = %s, want %s", got.Total, want)
	}
}

func TestAggregateByCategory_ColorsByFirstOccurrence(t *testing.T) {
	records := []core.Record{
		rec("First", "1", 1),
		rec("Second", "2", 2),
		rec("First", "3", 3),
		rec("Third", "4", 4),
	}
	palette := []string{"red", "green"}

	got := AggregateByCategory(records, juneRange(), palette)

	colors := map[string]CategoryBucket{}
	for _, b := range got.Buckets {
		colors[b.Category] = b
	}
	// First seen gets palette[0], second palette[1], third wraps to palette[0].
	if colors["First"].Color != "red" || colors["First"].ColorIndex != 0 {
		t.Errorf("First = %q/%d, want red/0", colors["First"].Color, colors["First"].ColorIndex)
	}
	if colors["Second"].Color != "green" || colors["Second"].ColorIndex != 1 {
		t.Errorf("Second = %q/%d, want green/1", colors["Second"].Color, colors["Second"].ColorIndex)
	}
	if colors["Third"].Color != "red" || colors["Third"].ColorIndex != 0 {
		t.Errorf("Third = %q/%d, want red/0", colors["Third"].Color, colors["Third"].ColorIndex)
	}
}

func TestAggregateByCategory_SortedDescendingStable(t *testing.T) {
	records := []core.Record{
		rec("Small", "5", 1),
		rec("BigA", "100", 2),
		rec("BigB", "100", 3), // ties keep first-seen order
		rec("Huge", "900", 4),
	}

	got := AggregateByCategory(records, juneRange(), DefaultPalette)

	wantOrder := []string{"Huge", "BigA", "BigB", "Small"}
	if len(got.Buckets) != len(wantOrder) {
		t.Fatalf("buckets = %d, want %d", len(got.Buckets), len(wantOrder))
	}
	for i, want := range wantOrder {
		if got.Buckets[i].Category != want {
			t.Errorf("buckets[%d] = %q, want %q", i, got.Buckets[i].Category, want)
		}
	}
}

func TestAggregateByCategory_Idempotent(t *testing.T) {
	records := []core.Record{
		rec("A", "10", 1),
		rec("B", "20", 2),
	}

	first := AggregateByCategory(records, juneRange(), DefaultPalette)
	second := AggregateByCategory(records, juneRange(), DefaultPalette)

	if !first.Total.Equal(second.Total) || len(first.Buckets) != len(second.Buckets) {
		t.Fatal("two runs over identical inputs differ")
	}
	for i := range first.Buckets {
		a, b := first.Buckets[i], second.Buckets[i]
		if a.Category != b.Category || a.Color != b.Color || a.ColorIndex != b.ColorIndex || !a.Total.Equal(b.Total) {
			t.Errorf("buckets[%d] differ: %+v vs %+v", i, a, b)
		}
	}
}
