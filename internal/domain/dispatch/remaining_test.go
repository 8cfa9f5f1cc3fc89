package dispatch

import (
	"testing"

	"bakestock/internal/core/id"
	"bakestock/internal/core/types"
	"bakestock/internal/domain/lots"
)

func qty(v float64) types.Quantity {
	return types.NewQuantityFromFloat64(v)
}

func TestDispatchedTotal(t *testing.T) {
	lotID := id.New()
	otherID := id.New()

	records := []Record{
		{LotID: lotID, Quantity: qty(10)},
		{LotID: lotID, Quantity: qty(15.5)},
		{LotID: otherID, Quantity: qty(99)},
	}

	got := DispatchedTotal(lotID, records)
	if got != qty(25.5) {
		t.Errorf("expected 25.5, got %s", got)
	}
}

func TestDispatchedTotal_EmptyLedger(t *testing.T) {
	if got := DispatchedTotal(id.New(), nil); got != 0 {
		t.Errorf("expected 0 for empty ledger, got %s", got)
	}
}

func TestRemaining(t *testing.T) {
	lot := &lots.ExpiredLot{ID: id.New(), OriginalQuantity: qty(100)}

	tests := []struct {
		name    string
		records []Record
		want    types.Quantity
	}{
		{"no dispatches", nil, qty(100)},
		{"partial", []Record{{LotID: lot.ID, Quantity: qty(40)}}, qty(60)},
		{"exact depletion", []Record{
			{LotID: lot.ID, Quantity: qty(60)},
			{LotID: lot.ID, Quantity: qty(40)},
		}, 0},
		{"other lots ignored", []Record{
			{LotID: id.New(), Quantity: qty(40)},
		}, qty(100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Remaining(lot, tt.records); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

// Conservation: dispatched total plus remaining always equals the
// original quantity, no matter how the ledger is sliced up.
func TestRemaining_Conservation(t *testing.T) {
	lot := &lots.ExpiredLot{ID: id.New(), OriginalQuantity: qty(100)}

	records := []Record{
		{LotID: lot.ID, Quantity: qty(12.25)},
		{LotID: lot.ID, Quantity: qty(0.0001)},
		{LotID: lot.ID, Quantity: qty(33.3333)},
	}

	dispatched := DispatchedTotal(lot.ID, records)
	remaining := Remaining(lot, records)

	if dispatched+remaining != lot.OriginalQuantity {
		t.Errorf("conservation violated: dispatched %s + remaining %s != original %s",
			dispatched, remaining, lot.OriginalQuantity)
	}
}
