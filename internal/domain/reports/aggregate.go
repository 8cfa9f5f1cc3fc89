package reports

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"bakestock/internal/core/id"
	"bakestock/internal/core/types"
	"bakestock/internal/domain/dispatch"
	"bakestock/internal/domain/lots"
)

// Summarize reduces a fetched ledger and lot set into grouped totals
// and detail rows for the given period. Pure function of its inputs:
// same records, lots, period and reference time yield identical output.
// Records whose lot is missing from lotSet still aggregate, with zero
// unit value and an empty product name.
func Summarize(records []dispatch.Record, lotSet []lots.ExpiredLot, period Period, now time.Time) *Summary {
	lotByID := make(map[id.ID]*lots.ExpiredLot, len(lotSet))
	for i := range lotSet {
		lotByID[lotSet[i].ID] = &lotSet[i]
	}

	summary := &Summary{
		Period:     period,
		TotalValue: types.ZeroMoney(),
	}

	byDestination := make(map[string]*GroupTotal)
	byDispatcher := make(map[string]*GroupTotal)

	for _, r := range records {
		if !period.Contains(r.DispatchDate, now) {
			continue
		}

		unitValue := types.ZeroMoney()
		productName := ""
		if lot, ok := lotByID[r.LotID]; ok {
			unitValue = lot.UnitValue()
			productName = lot.ProductName
		}
		value := r.Quantity.Decimal().Mul(unitValue)

		summary.DetailRows = append(summary.DetailRows, DetailRow{
			RecordID:         r.ID,
			LotID:            r.LotID,
			ProductName:      productName,
			Destination:      r.Destination,
			DestinationLabel: r.Destination.Label(),
			Quantity:         r.Quantity,
			UnitValue:        unitValue,
			Value:            value,
			DispatchedBy:     r.DispatchedBy,
			DispatchDate:     r.DispatchDate,
			Notes:            r.Notes,
		})

		accumulate(byDestination, string(r.Destination), r.Destination.Label(), r.Quantity, value)
		accumulate(byDispatcher, r.DispatchedBy, r.DispatchedBy, r.Quantity, value)

		summary.TotalQuantity += r.Quantity
		summary.TotalValue = summary.TotalValue.Add(value)
		summary.RecordCount++
	}

	// Newest first; creation order breaks same-day ties.
	sort.SliceStable(summary.DetailRows, func(i, j int) bool {
		return summary.DetailRows[i].DispatchDate.After(summary.DetailRows[j].DispatchDate)
	})

	summary.ByDestination = flattenGroups(byDestination)
	summary.ByDispatcher = flattenGroups(byDispatcher)

	return summary
}

// accumulate folds one record into a group. Empty groups are never
// created, so every emitted group has RecordCount >= 1.
func accumulate(groups map[string]*GroupTotal, key, label string, qty types.Quantity, value types.Money) {
	g, ok := groups[key]
	if !ok {
		g = &GroupTotal{Key: key, Label: label, TotalValue: types.ZeroMoney()}
		groups[key] = g
	}
	g.TotalQuantity += qty
	g.TotalValue = g.TotalValue.Add(value)
	g.RecordCount++
}

// flattenGroups finalizes averages and orders groups by total quantity
// descending, then key for a stable layout.
func flattenGroups(groups map[string]*GroupTotal) []GroupTotal {
	out := make([]GroupTotal, 0, len(groups))
	for _, g := range groups {
		g.AveragePerDispatch = g.TotalQuantity.Decimal().Div(decimal.NewFromInt(int64(g.RecordCount)))
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalQuantity != out[j].TotalQuantity {
			return out[i].TotalQuantity > out[j].TotalQuantity
		}
		return out[i].Key < out[j].Key
	})
	return out
}
