package dispatch

import (
	"bakestock/internal/core/id"
	"bakestock/internal/core/types"
	"bakestock/internal/domain/lots"
)

// DispatchedTotal sums the dispatched quantity for one lot over a set
// of ledger records. Records for other lots are ignored; an empty or
// nil set sums to zero.
func DispatchedTotal(lotID id.ID, records []Record) types.Quantity {
	var total types.Quantity
	for _, r := range records {
		if r.LotID == lotID {
			total += r.Quantity
		}
	}
	return total
}

// Remaining derives the lot's remaining quantity from the ledger:
// original quantity minus everything dispatched against the lot.
// Always recomputed, never stored. Pure function of its inputs.
func Remaining(lot *lots.ExpiredLot, records []Record) types.Quantity {
	return lot.OriginalQuantity - DispatchedTotal(lot.ID, records)
}
