package dispatch

import (
	"context"
	"time"

	"bakestock/internal/core/id"
	"bakestock/internal/core/types"
)

// ListFilter contains filtering options for ledger listings.
// Date bounds are inclusive and date-granular, applied to dispatch_date.
type ListFilter struct {
	LotID        *id.ID
	Destination  *Destination
	DispatchedBy string
	DateFrom     *time.Time
	DateTo       *time.Time

	// OrderBy defaults to "dispatch_date DESC, created_at DESC"
	OrderBy string
	Limit   int
	Offset  int
}

// ListResult contains paginated results.
type ListResult struct {
	Items      []*Record `json:"items"`
	TotalCount int64     `json:"totalCount"`
	Limit      int       `json:"limit"`
	Offset     int       `json:"offset"`
}

// Repository defines the interface for ledger persistence.
// The ledger is append-and-amend only; no delete operation exists.
type Repository interface {
	// Insert appends one record. CreatedAt is assigned by the store.
	Insert(ctx context.Context, r *Record) error

	GetByID(ctx context.Context, recordID id.ID) (*Record, error)

	// Update overwrites the amendable fields (destination, quantity,
	// dispatched_by, dispatch_date, notes) of an existing record.
	Update(ctx context.Context, r *Record) error

	List(ctx context.Context, filter ListFilter) (ListResult, error)

	// ListByLot returns the full ledger for one lot, oldest first.
	ListByLot(ctx context.Context, lotID id.ID) ([]Record, error)

	// SumByLot computes the dispatched total for one lot store-side.
	// Inside a transaction holding the lot's row lock this is the
	// serialization point for the capacity check.
	SumByLot(ctx context.Context, lotID id.ID) (types.Quantity, error)
}
