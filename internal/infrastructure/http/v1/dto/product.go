package dto

import (
	"time"

	"bakestock/internal/core/types"
	"bakestock/internal/domain/catalogs/product"
)

// ProductResponse contains product catalog fields.
type ProductResponse struct {
	ID           string       `json:"id"`
	Code         string       `json:"code"`
	Name         string       `json:"name"`
	Unit         string       `json:"unit"`
	UnitCost     *types.Money `json:"unitCost,omitempty"`
	SellingPrice *types.Money `json:"sellingPrice,omitempty"`
	IsActive     bool         `json:"isActive"`
	Version      int          `json:"version"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// FromProduct creates ProductResponse from a catalog product.
func FromProduct(p *product.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID.String(),
		Code:         p.Code,
		Name:         p.Name,
		Unit:         p.Unit,
		UnitCost:     p.UnitCost,
		SellingPrice: p.SellingPrice,
		IsActive:     p.IsActive,
		Version:      p.Version,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// CreateProductRequest for creating products.
type CreateProductRequest struct {
	Code         string       `json:"code"`
	Name         string       `json:"name" binding:"required"`
	Unit         string       `json:"unit" binding:"required"`
	UnitCost     *types.Money `json:"unitCost"`
	SellingPrice *types.Money `json:"sellingPrice"`
}

// ToEntity creates a product from the request.
func (r CreateProductRequest) ToEntity() *product.Product {
	p := product.NewProduct(r.Code, r.Name, r.Unit)
	p.UnitCost = r.UnitCost
	p.SellingPrice = r.SellingPrice
	return p
}

// UpdateProductRequest for updating products. Nil fields are unchanged.
type UpdateProductRequest struct {
	Code         *string      `json:"code"`
	Name         *string      `json:"name"`
	Unit         *string      `json:"unit"`
	UnitCost     *types.Money `json:"unitCost"`
	SellingPrice *types.Money `json:"sellingPrice"`
	IsActive     *bool        `json:"isActive"`
}

// ApplyTo applies non-nil fields onto an existing product.
func (r UpdateProductRequest) ApplyTo(p *product.Product) {
	if r.Code != nil {
		p.Code = *r.Code
	}
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.Unit != nil {
		p.Unit = *r.Unit
	}
	if r.UnitCost != nil {
		p.UnitCost = r.UnitCost
	}
	if r.SellingPrice != nil {
		p.SellingPrice = r.SellingPrice
	}
	if r.IsActive != nil {
		p.IsActive = *r.IsActive
	}
}
