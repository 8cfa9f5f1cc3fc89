package lots

import (
	"context"
	"testing"
	"time"

	"bakestock/internal/core/types"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestExpiredLotValidate(t *testing.T) {
	ctx := context.Background()
	valid := func() *ExpiredLot {
		return NewExpiredLot("Sourdough loaf", types.NewQuantityFromFloat64(10), date(2026, 3, 1), date(2026, 3, 4))
	}

	if err := valid().Validate(ctx); err != nil {
		t.Fatalf("expected valid lot, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*ExpiredLot)
	}{
		{"empty product name", func(l *ExpiredLot) { l.ProductName = "" }},
		{"negative quantity", func(l *ExpiredLot) { l.OriginalQuantity = types.NewQuantityFromFloat64(-1) }},
		{"zero batch date", func(l *ExpiredLot) { l.BatchDate = time.Time{} }},
		{"zero removal date", func(l *ExpiredLot) { l.RemovalDate = time.Time{} }},
		{"removal before batch", func(l *ExpiredLot) { l.RemovalDate = l.BatchDate.AddDate(0, 0, -1) }},
		{"negative unit cost", func(l *ExpiredLot) {
			c := types.MustMoney("-1")
			l.UnitCost = &c
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lot := valid()
			tt.mutate(lot)
			if err := lot.Validate(ctx); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

// A zero-quantity lot is legal; it just has nothing left to dispatch.
func TestExpiredLotValidate_ZeroQuantity(t *testing.T) {
	lot := NewExpiredLot("Rye bread", 0, date(2026, 3, 1), date(2026, 3, 4))
	if err := lot.Validate(context.Background()); err != nil {
		t.Fatalf("expected zero quantity to validate, got %v", err)
	}
}

func TestUnitValue(t *testing.T) {
	cost := types.MustMoney("1.20")
	price := types.MustMoney("3.50")

	lot := &ExpiredLot{}
	if !lot.UnitValue().IsZero() {
		t.Error("expected zero unit value without prices")
	}

	lot.SellingPrice = &price
	if !lot.UnitValue().Equal(price) {
		t.Error("expected selling price fallback")
	}

	lot.UnitCost = &cost
	if !lot.UnitValue().Equal(cost) {
		t.Error("expected unit cost to take precedence")
	}
}
