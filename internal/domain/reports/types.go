// Package reports aggregates the dispatch ledger into destination and
// dispatcher summaries for display and printing.
package reports

import (
	"time"

	"bakestock/internal/core/id"
	"bakestock/internal/core/types"
	"bakestock/internal/domain/dispatch"
)

// PeriodKind selects a time window over dispatch dates.
type PeriodKind string

const (
	PeriodAll    PeriodKind = "all"
	PeriodToday  PeriodKind = "today"
	PeriodWeek   PeriodKind = "week"
	PeriodMonth  PeriodKind = "month"
	PeriodCustom PeriodKind = "custom"
)

// Period is a time-window filter. From/To are used only for
// PeriodCustom and are inclusive at date granularity.
type Period struct {
	Kind PeriodKind `json:"kind"`
	From time.Time  `json:"from,omitempty"`
	To   time.Time  `json:"to,omitempty"`
}

// Window resolves the period to concrete inclusive date bounds relative
// to now. bounded is false for PeriodAll.
func (p Period) Window(now time.Time) (from, to time.Time, bounded bool) {
	today := truncateToDate(now)

	switch p.Kind {
	case PeriodToday:
		return today, today, true
	case PeriodWeek:
		// Calendar week starting Monday.
		weekday := int(today.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		monday := today.AddDate(0, 0, -(weekday - 1))
		return monday, monday.AddDate(0, 0, 6), true
	case PeriodMonth:
		first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
		return first, first.AddDate(0, 1, -1), true
	case PeriodCustom:
		return truncateToDate(p.From), truncateToDate(p.To), true
	default:
		return time.Time{}, time.Time{}, false
	}
}

// Contains reports whether the given dispatch date falls inside the
// period. Time-of-day is ignored.
func (p Period) Contains(date, now time.Time) bool {
	from, to, bounded := p.Window(now)
	if !bounded {
		return true
	}
	d := truncateToDate(date)
	return !d.Before(from) && !d.After(to)
}

// GroupTotal is one aggregated row, keyed by destination or dispatcher.
type GroupTotal struct {
	Key   string `json:"key"`
	Label string `json:"label"`

	TotalQuantity      types.Quantity `json:"totalQuantity"`
	TotalValue         types.Money    `json:"totalValue"`
	RecordCount        int            `json:"recordCount"`
	AveragePerDispatch types.Money    `json:"averagePerDispatch"`
}

// DetailRow is one ledger record joined with its lot for display.
type DetailRow struct {
	RecordID         id.ID                `json:"recordId"`
	LotID            id.ID                `json:"lotId"`
	ProductName      string               `json:"productName"`
	Destination      dispatch.Destination `json:"destination"`
	DestinationLabel string               `json:"destinationLabel"`
	Quantity         types.Quantity       `json:"quantity"`
	UnitValue        types.Money          `json:"unitValue"`
	Value            types.Money          `json:"value"`
	DispatchedBy     string               `json:"dispatchedBy"`
	DispatchDate     time.Time            `json:"dispatchDate"`
	Notes            string               `json:"notes,omitempty"`
}

// Summary is the full aggregation result for one period.
type Summary struct {
	Period Period `json:"period"`

	ByDestination []GroupTotal `json:"byDestination"`
	ByDispatcher  []GroupTotal `json:"byDispatcher"`

	// DetailRows ordered by dispatch date descending, newest first
	DetailRows []DetailRow `json:"detailRows"`

	TotalQuantity types.Quantity `json:"totalQuantity"`
	TotalValue    types.Money    `json:"totalValue"`
	RecordCount   int            `json:"recordCount"`
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
