package lots

import (
	"context"
	"time"

	"bakestock/internal/core/id"
)

// ListFilter contains filtering options for lot listings.
type ListFilter struct {
	// Search matches against product name
	Search string

	// Status filters by lot status
	Status *Status

	// ProductID filters lots of one product
	ProductID *id.ID

	// RemovedFrom/RemovedTo bound the removal date (inclusive)
	RemovedFrom *time.Time
	RemovedTo   *time.Time

	OrderBy string
	Limit   int
	Offset  int
}

// ListResult contains paginated results.
type ListResult struct {
	Items      []*ExpiredLot `json:"items"`
	TotalCount int64         `json:"totalCount"`
	Limit      int           `json:"limit"`
	Offset     int           `json:"offset"`
}

// Repository defines the interface for lot persistence.
type Repository interface {
	Create(ctx context.Context, lot *ExpiredLot) error

	GetByID(ctx context.Context, lotID id.ID) (*ExpiredLot, error)

	// GetForUpdate retrieves a lot with a row lock. Dispatch writes take
	// this lock so concurrent dispatchers serialize per lot.
	GetForUpdate(ctx context.Context, lotID id.ID) (*ExpiredLot, error)

	// UpdateStatus changes only the derived status bookkeeping.
	// OriginalQuantity is immutable; no update path exposes it.
	UpdateStatus(ctx context.Context, lotID id.ID, status Status) error

	List(ctx context.Context, filter ListFilter) (ListResult, error)
}
