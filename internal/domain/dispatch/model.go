// Package dispatch provides the append-only dispatch ledger for
// expired stock: recording transfers out of a lot, validating them
// against the lot's remaining quantity, and amending past records.
package dispatch

import (
	"time"

	"bakestock/internal/core/id"
	"bakestock/internal/core/types"
)

// Destination is a fixed disposal/reuse channel for expired stock.
type Destination string

const (
	DestinationAnimalFeed     Destination = "animal_feed"
	DestinationBreadcrumbLine Destination = "breadcrumb_line"
	DestinationStaffMeals     Destination = "staff_meals"
	DestinationDonation       Destination = "donation"
	DestinationCompost        Destination = "compost"
	DestinationDiscard        Destination = "discard"
)

// destinationLabels maps destination values to display labels.
// Static lookup table, not derived data.
var destinationLabels = map[Destination]string{
	DestinationAnimalFeed:     "Animal feed line",
	DestinationBreadcrumbLine: "Breadcrumb production",
	DestinationStaffMeals:     "Staff meals",
	DestinationDonation:       "Donation",
	DestinationCompost:        "Compost",
	DestinationDiscard:        "Discard",
}

// Label returns the human-readable label for a destination.
// Unknown values fall back to the raw enum string.
func (d Destination) Label() string {
	if label, ok := destinationLabels[d]; ok {
		return label
	}
	return string(d)
}

// IsValid reports whether d is one of the fixed channels.
func (d Destination) IsValid() bool {
	_, ok := destinationLabels[d]
	return ok
}

// Destinations returns all valid destinations in a stable order.
func Destinations() []Destination {
	return []Destination{
		DestinationAnimalFeed,
		DestinationBreadcrumbLine,
		DestinationStaffMeals,
		DestinationDonation,
		DestinationCompost,
		DestinationDiscard,
	}
}

// Record is one dispatch ledger entry: a transfer of some quantity from
// a lot to a destination. Records are appended by the recorder, may be
// amended, and are never deleted in-app.
type Record struct {
	ID id.ID `db:"id" json:"id"`

	LotID id.ID `db:"lot_id" json:"lotId"`

	Destination Destination `db:"destination" json:"destination"`

	Quantity types.Quantity `db:"quantity" json:"quantity"`

	DispatchedBy string `db:"dispatched_by" json:"dispatchedBy"`

	// DispatchDate is the business date, user-editable and backdatable.
	// It is the authoritative field for time-window filters.
	DispatchDate time.Time `db:"dispatch_date" json:"dispatchDate"`

	Notes string `db:"notes" json:"notes,omitempty"`

	// CreatedAt is server-assigned at insert time
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// NewRecord creates a ledger entry. A zero dispatchDate defaults to today.
func NewRecord(lotID id.ID, dest Destination, qty types.Quantity, dispatchedBy string, dispatchDate time.Time, notes string) *Record {
	if dispatchDate.IsZero() {
		dispatchDate = time.Now().UTC()
	}
	return &Record{
		ID:           id.New(),
		LotID:        lotID,
		Destination:  dest,
		Quantity:     qty,
		DispatchedBy: dispatchedBy,
		DispatchDate: truncateToDate(dispatchDate),
		Notes:        notes,
		CreatedAt:    time.Now().UTC(),
	}
}

// truncateToDate drops the time-of-day component; filters are
// date-granular.
func truncateToDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
