package product

import (
	"context"

	"bakestock/internal/core/id"
)

// ListFilter contains filtering options for product listings.
type ListFilter struct {
	// Search matches against code and name
	Search string

	// ActiveOnly excludes deactivated products
	ActiveOnly bool

	OrderBy string
	Limit   int
	Offset  int
}

// ListResult contains paginated results.
type ListResult struct {
	Items      []*Product `json:"items"`
	TotalCount int64      `json:"totalCount"`
	Limit      int        `json:"limit"`
	Offset     int        `json:"offset"`
}

// Repository defines the interface for product persistence.
type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, productID id.ID) (*Product, error)
	GetByCode(ctx context.Context, code string) (*Product, error)
	Update(ctx context.Context, p *Product) error
	List(ctx context.Context, filter ListFilter) (ListResult, error)
	Exists(ctx context.Context, productID id.ID) (bool, error)
}
