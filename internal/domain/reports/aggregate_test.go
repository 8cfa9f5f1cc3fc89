package reports

import (
	"testing"
	"time"

	"bakestock/internal/core/id"
	"bakestock/internal/core/types"
	"bakestock/internal/domain/dispatch"
	"bakestock/internal/domain/lots"
)

func qty(v float64) types.Quantity {
	return types.NewQuantityFromFloat64(v)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func lotWithCost(name string, cost string) lots.ExpiredLot {
	c := types.MustMoney(cost)
	return lots.ExpiredLot{
		ID:          id.New(),
		ProductName: name,
		UnitCost:    &c,
	}
}

func TestSummarize_GroupTotals(t *testing.T) {
	now := day(2026, 3, 15)
	lot := lotWithCost("Rye bread", "2.50")

	records := []dispatch.Record{
		{ID: id.New(), LotID: lot.ID, Destination: dispatch.DestinationAnimalFeed, Quantity: qty(10), DispatchedBy: "Maria", DispatchDate: day(2026, 3, 14)},
		{ID: id.New(), LotID: lot.ID, Destination: dispatch.DestinationAnimalFeed, Quantity: qty(15), DispatchedBy: "Jonas", DispatchDate: day(2026, 3, 15)},
	}

	s := Summarize(records, []lots.ExpiredLot{lot}, Period{Kind: PeriodAll}, now)

	if s.RecordCount != 2 {
		t.Fatalf("expected 2 records, got %d", s.RecordCount)
	}
	if s.TotalQuantity != qty(25) {
		t.Errorf("expected total quantity 25, got %s", s.TotalQuantity)
	}
	if !s.TotalValue.Equal(types.MustMoney("62.50")) {
		t.Errorf("expected total value 62.50, got %s", s.TotalValue)
	}

	if len(s.ByDestination) != 1 {
		t.Fatalf("expected 1 destination group, got %d", len(s.ByDestination))
	}
	g := s.ByDestination[0]
	if g.Key != string(dispatch.DestinationAnimalFeed) {
		t.Errorf("unexpected group key %q", g.Key)
	}
	if g.TotalQuantity != qty(25) || g.RecordCount != 2 {
		t.Errorf("unexpected group totals: qty %s count %d", g.TotalQuantity, g.RecordCount)
	}
	if !g.AveragePerDispatch.Equal(types.MustMoney("12.5")) {
		t.Errorf("expected average 12.5, got %s", g.AveragePerDispatch)
	}

	if len(s.ByDispatcher) != 2 {
		t.Fatalf("expected 2 dispatcher groups, got %d", len(s.ByDispatcher))
	}
	// Ordered by total quantity descending.
	if s.ByDispatcher[0].Key != "Jonas" || s.ByDispatcher[1].Key != "Maria" {
		t.Errorf("unexpected dispatcher order: %s, %s", s.ByDispatcher[0].Key, s.ByDispatcher[1].Key)
	}
}

// Group totals must always add up to the overall totals; nothing is
// lost or double counted by the grouping.
func TestSummarize_GroupingConservation(t *testing.T) {
	now := day(2026, 3, 15)
	lotA := lotWithCost("Sourdough loaf", "1.20")
	lotB := lotWithCost("Croissant", "0.60")

	records := []dispatch.Record{
		{ID: id.New(), LotID: lotA.ID, Destination: dispatch.DestinationAnimalFeed, Quantity: qty(3.5), DispatchedBy: "Maria", DispatchDate: day(2026, 3, 10)},
		{ID: id.New(), LotID: lotA.ID, Destination: dispatch.DestinationCompost, Quantity: qty(1.25), DispatchedBy: "Jonas", DispatchDate: day(2026, 3, 11)},
		{ID: id.New(), LotID: lotB.ID, Destination: dispatch.DestinationDonation, Quantity: qty(12), DispatchedBy: "Maria", DispatchDate: day(2026, 3, 12)},
		{ID: id.New(), LotID: lotB.ID, Destination: dispatch.DestinationAnimalFeed, Quantity: qty(0.0001), DispatchedBy: "Petra", DispatchDate: day(2026, 3, 13)},
	}

	s := Summarize(records, []lots.ExpiredLot{lotA, lotB}, Period{Kind: PeriodAll}, now)

	for name, groups := range map[string][]GroupTotal{
		"byDestination": s.ByDestination,
		"byDispatcher":  s.ByDispatcher,
	} {
		var (
			sumQty   types.Quantity
			sumValue = types.ZeroMoney()
			sumCount int
		)
		for _, g := range groups {
			sumQty += g.TotalQuantity
			sumValue = sumValue.Add(g.TotalValue)
			sumCount += g.RecordCount
			if g.RecordCount < 1 {
				t.Errorf("%s: empty group %q emitted", name, g.Key)
			}
		}
		if sumQty != s.TotalQuantity {
			t.Errorf("%s: group quantities %s != total %s", name, sumQty, s.TotalQuantity)
		}
		if !sumValue.Equal(s.TotalValue) {
			t.Errorf("%s: group values %s != total %s", name, sumValue, s.TotalValue)
		}
		if sumCount != s.RecordCount {
			t.Errorf("%s: group counts %d != total %d", name, sumCount, s.RecordCount)
		}
	}
}

// Summarize is a pure reduction: running it twice over the same inputs
// yields identical results, and it never mutates its inputs.
func TestSummarize_Idempotent(t *testing.T) {
	now := day(2026, 3, 15)
	lot := lotWithCost("Rye bread", "2.50")
	records := []dispatch.Record{
		{ID: id.New(), LotID: lot.ID, Destination: dispatch.DestinationDiscard, Quantity: qty(4), DispatchedBy: "Maria", DispatchDate: day(2026, 3, 14)},
		{ID: id.New(), LotID: lot.ID, Destination: dispatch.DestinationCompost, Quantity: qty(6), DispatchedBy: "Jonas", DispatchDate: day(2026, 3, 12)},
	}

	first := Summarize(records, []lots.ExpiredLot{lot}, Period{Kind: PeriodAll}, now)
	second := Summarize(records, []lots.ExpiredLot{lot}, Period{Kind: PeriodAll}, now)

	if first.TotalQuantity != second.TotalQuantity ||
		!first.TotalValue.Equal(second.TotalValue) ||
		first.RecordCount != second.RecordCount ||
		len(first.ByDestination) != len(second.ByDestination) ||
		len(first.DetailRows) != len(second.DetailRows) {
		t.Error("repeated aggregation diverged")
	}
}

func TestSummarize_PeriodFilter(t *testing.T) {
	now := day(2026, 3, 15) // a Sunday
	lot := lotWithCost("Rye bread", "2.50")

	records := []dispatch.Record{
		{ID: id.New(), LotID: lot.ID, Destination: dispatch.DestinationCompost, Quantity: qty(1), DispatchedBy: "Maria", DispatchDate: day(2026, 3, 15)},
		{ID: id.New(), LotID: lot.ID, Destination: dispatch.DestinationCompost, Quantity: qty(2), DispatchedBy: "Maria", DispatchDate: day(2026, 3, 9)}, // Monday, same week
		{ID: id.New(), LotID: lot.ID, Destination: dispatch.DestinationCompost, Quantity: qty(4), DispatchedBy: "Maria", DispatchDate: day(2026, 3, 1)},
		{ID: id.New(), LotID: lot.ID, Destination: dispatch.DestinationCompost, Quantity: qty(8), DispatchedBy: "Maria", DispatchDate: day(2026, 2, 10)},
	}
	lotSet := []lots.ExpiredLot{lot}

	tests := []struct {
		name    string
		period  Period
		wantQty types.Quantity
	}{
		{"all", Period{Kind: PeriodAll}, qty(15)},
		{"today", Period{Kind: PeriodToday}, qty(1)},
		{"week", Period{Kind: PeriodWeek}, qty(3)},
		{"month", Period{Kind: PeriodMonth}, qty(7)},
		{"custom", Period{Kind: PeriodCustom, From: day(2026, 2, 1), To: day(2026, 3, 1)}, qty(12)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Summarize(records, lotSet, tt.period, now)
			if s.TotalQuantity != tt.wantQty {
				t.Errorf("expected quantity %s, got %s", tt.wantQty, s.TotalQuantity)
			}
		})
	}
}

func TestSummarize_MissingLot(t *testing.T) {
	now := day(2026, 3, 15)
	rec := dispatch.Record{
		ID:           id.New(),
		LotID:        id.New(), // no matching lot
		Destination:  dispatch.DestinationDiscard,
		Quantity:     qty(5),
		DispatchedBy: "Maria",
		DispatchDate: day(2026, 3, 14),
	}

	s := Summarize([]dispatch.Record{rec}, nil, Period{Kind: PeriodAll}, now)

	if s.RecordCount != 1 {
		t.Fatalf("expected orphan record to aggregate, got %d records", s.RecordCount)
	}
	if !s.TotalValue.IsZero() {
		t.Errorf("expected zero value for orphan record, got %s", s.TotalValue)
	}
	if s.DetailRows[0].ProductName != "" {
		t.Errorf("expected empty product name, got %q", s.DetailRows[0].ProductName)
	}
}

func TestSummarize_DetailRowsNewestFirst(t *testing.T) {
	now := day(2026, 3, 15)
	lot := lotWithCost("Rye bread", "2.50")

	records := []dispatch.Record{
		{ID: id.New(), LotID: lot.ID, Destination: dispatch.DestinationCompost, Quantity: qty(1), DispatchedBy: "Maria", DispatchDate: day(2026, 3, 10)},
		{ID: id.New(), LotID: lot.ID, Destination: dispatch.DestinationCompost, Quantity: qty(2), DispatchedBy: "Maria", DispatchDate: day(2026, 3, 14)},
		{ID: id.New(), LotID: lot.ID, Destination: dispatch.DestinationCompost, Quantity: qty(3), DispatchedBy: "Maria", DispatchDate: day(2026, 3, 12)},
	}

	s := Summarize(records, []lots.ExpiredLot{lot}, Period{Kind: PeriodAll}, now)

	for i := 1; i < len(s.DetailRows); i++ {
		if s.DetailRows[i].DispatchDate.After(s.DetailRows[i-1].DispatchDate) {
			t.Fatalf("detail rows not newest first at index %d", i)
		}
	}
}

// UnitCost wins over SellingPrice; SellingPrice is the fallback.
func TestSummarize_UnitValueResolution(t *testing.T) {
	now := day(2026, 3, 15)
	cost := types.MustMoney("1.00")
	price := types.MustMoney("3.00")

	both := lots.ExpiredLot{ID: id.New(), ProductName: "a", UnitCost: &cost, SellingPrice: &price}
	priceOnly := lots.ExpiredLot{ID: id.New(), ProductName: "b", SellingPrice: &price}
	neither := lots.ExpiredLot{ID: id.New(), ProductName: "c"}

	records := []dispatch.Record{
		{ID: id.New(), LotID: both.ID, Destination: dispatch.DestinationCompost, Quantity: qty(1), DispatchedBy: "x", DispatchDate: now},
		{ID: id.New(), LotID: priceOnly.ID, Destination: dispatch.DestinationCompost, Quantity: qty(1), DispatchedBy: "x", DispatchDate: now},
		{ID: id.New(), LotID: neither.ID, Destination: dispatch.DestinationCompost, Quantity: qty(1), DispatchedBy: "x", DispatchDate: now},
	}

	s := Summarize(records, []lots.ExpiredLot{both, priceOnly, neither}, Period{Kind: PeriodAll}, now)

	if !s.TotalValue.Equal(types.MustMoney("4.00")) {
		t.Errorf("expected total value 4.00 (1 + 3 + 0), got %s", s.TotalValue)
	}
}
