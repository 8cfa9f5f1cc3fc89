// Package lots provides the expired-stock lot catalog.
// A lot is a batch of stock pulled from sale with a fixed original
// quantity; depletion is represented only by dispatch records, never by
// mutating the lot itself.
package lots

import (
	"context"
	"time"

	"bakestock/internal/core/apperror"
	"bakestock/internal/core/id"
	"bakestock/internal/core/types"
)

// Status is derived bookkeeping for UI filtering. The source of truth
// for depletion is always the dispatch ledger.
type Status string

const (
	StatusOpen     Status = "open"
	StatusDepleted Status = "depleted"
)

// ExpiredLot represents a batch of expired stock removed from sale.
type ExpiredLot struct {
	ID id.ID `db:"id" json:"id"`

	// ProductID references the catalog product, when known
	ProductID *id.ID `db:"product_id" json:"productId,omitempty"`

	// ProductName is denormalized so the lot survives catalog edits
	ProductName string `db:"product_name" json:"productName"`

	// OriginalQuantity is fixed at creation and never changes.
	// remaining = OriginalQuantity - sum of dispatched quantities.
	OriginalQuantity types.Quantity `db:"original_quantity" json:"originalQuantity"`

	// BatchDate is when the batch was produced
	BatchDate time.Time `db:"batch_date" json:"batchDate"`

	// RemovalDate is when the batch was pulled from sale
	RemovalDate time.Time `db:"removal_date" json:"removalDate"`

	// UnitCost is the cost per unit used for monetary reporting
	UnitCost *types.Money `db:"unit_cost" json:"unitCost,omitempty"`

	// SellingPrice is the retail price per unit, fallback for reporting
	SellingPrice *types.Money `db:"selling_price" json:"sellingPrice,omitempty"`

	Status Status `db:"status" json:"status"`

	Version   int       `db:"version" json:"version"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NewExpiredLot creates a new open lot.
func NewExpiredLot(productName string, originalQty types.Quantity, batchDate, removalDate time.Time) *ExpiredLot {
	now := time.Now().UTC()
	return &ExpiredLot{
		ID:               id.New(),
		ProductName:      productName,
		OriginalQuantity: originalQty,
		BatchDate:        batchDate,
		RemovalDate:      removalDate,
		Status:           StatusOpen,
		Version:          1,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// Validate checks lot invariants.
func (l *ExpiredLot) Validate(ctx context.Context) error {
	if l.ProductName == "" {
		return apperror.NewValidation("product name is required").
			WithDetail("field", "productName")
	}
	if l.OriginalQuantity.IsNegative() {
		return apperror.NewValidation("original quantity must not be negative").
			WithDetail("field", "originalQuantity")
	}
	if l.BatchDate.IsZero() {
		return apperror.NewValidation("batch date is required").
			WithDetail("field", "batchDate")
	}
	if l.RemovalDate.IsZero() {
		return apperror.NewValidation("removal date is required").
			WithDetail("field", "removalDate")
	}
	if l.RemovalDate.Before(l.BatchDate) {
		return apperror.NewValidation("removal date must not precede batch date").
			WithDetail("field", "removalDate")
	}
	if l.UnitCost != nil && l.UnitCost.IsNegative() {
		return apperror.NewValidation("unit cost must not be negative").
			WithDetail("field", "unitCost")
	}
	if l.SellingPrice != nil && l.SellingPrice.IsNegative() {
		return apperror.NewValidation("selling price must not be negative").
			WithDetail("field", "sellingPrice")
	}
	return nil
}

// UnitValue resolves the per-unit monetary value for reporting:
// cost per unit if present, else selling price, else zero.
func (l *ExpiredLot) UnitValue() types.Money {
	if l.UnitCost != nil {
		return *l.UnitCost
	}
	if l.SellingPrice != nil {
		return *l.SellingPrice
	}
	return types.ZeroMoney()
}

// Touch updates the modification timestamp and bumps the version.
func (l *ExpiredLot) Touch() {
	l.UpdatedAt = time.Now().UTC()
	l.Version++
}
