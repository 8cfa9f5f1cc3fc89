// Package product provides the bakery product catalog.
package product

import (
	"context"
	"time"

	"bakestock/internal/core/apperror"
	"bakestock/internal/core/id"
	"bakestock/internal/core/types"
)

// Product represents a bakery product (bread, pastry, ingredient).
type Product struct {
	ID id.ID `db:"id" json:"id"`

	// Code is a short unique article code (auto-assigned when empty)
	Code string `db:"code" json:"code"`

	Name string `db:"name" json:"name"`

	// Unit of measure for quantities ("kg", "pcs", "l")
	Unit string `db:"unit" json:"unit"`

	// UnitCost is the production cost per unit, if known
	UnitCost *types.Money `db:"unit_cost" json:"unitCost,omitempty"`

	// SellingPrice is the retail price per unit, if known
	SellingPrice *types.Money `db:"selling_price" json:"sellingPrice,omitempty"`

	IsActive bool `db:"is_active" json:"isActive"`

	Version   int       `db:"version" json:"version"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NewProduct creates a new active product.
func NewProduct(code, name, unit string) *Product {
	now := time.Now().UTC()
	return &Product{
		ID:        id.New(),
		Code:      code,
		Name:      name,
		Unit:      unit,
		IsActive:  true,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate checks product invariants.
func (p *Product) Validate(ctx context.Context) error {
	if p.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	if p.Unit == "" {
		return apperror.NewValidation("unit is required").
			WithDetail("field", "unit")
	}
	if p.UnitCost != nil && p.UnitCost.IsNegative() {
		return apperror.NewValidation("unit cost must not be negative").
			WithDetail("field", "unitCost")
	}
	if p.SellingPrice != nil && p.SellingPrice.IsNegative() {
		return apperror.NewValidation("selling price must not be negative").
			WithDetail("field", "sellingPrice")
	}
	return nil
}

// Touch updates the modification timestamp and bumps the version.
func (p *Product) Touch() {
	p.UpdatedAt = time.Now().UTC()
	p.Version++
}
