package dto

import (
	"time"

	"bakestock/internal/core/id"
	"bakestock/internal/core/types"
	"bakestock/internal/domain/lots"
)

// LotResponse contains expired lot fields.
type LotResponse struct {
	ID               string         `json:"id"`
	ProductID        *string        `json:"productId,omitempty"`
	ProductName      string         `json:"productName"`
	OriginalQuantity types.Quantity `json:"originalQuantity"`
	BatchDate        time.Time      `json:"batchDate"`
	RemovalDate      time.Time      `json:"removalDate"`
	UnitCost         *types.Money   `json:"unitCost,omitempty"`
	SellingPrice     *types.Money   `json:"sellingPrice,omitempty"`
	Status           lots.Status    `json:"status"`
	Version          int            `json:"version"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
}

// FromLot creates LotResponse from a lot.
func FromLot(l *lots.ExpiredLot) LotResponse {
	resp := LotResponse{
		ID:               l.ID.String(),
		ProductName:      l.ProductName,
		OriginalQuantity: l.OriginalQuantity,
		BatchDate:        l.BatchDate,
		RemovalDate:      l.RemovalDate,
		UnitCost:         l.UnitCost,
		SellingPrice:     l.SellingPrice,
		Status:           l.Status,
		Version:          l.Version,
		CreatedAt:        l.CreatedAt,
		UpdatedAt:        l.UpdatedAt,
	}
	if l.ProductID != nil {
		s := l.ProductID.String()
		resp.ProductID = &s
	}
	return resp
}

// CreateLotRequest for registering expired lots.
type CreateLotRequest struct {
	ProductID        *string        `json:"productId"`
	ProductName      string         `json:"productName" binding:"required"`
	OriginalQuantity types.Quantity `json:"originalQuantity"`
	BatchDate        time.Time      `json:"batchDate" binding:"required"`
	RemovalDate      time.Time      `json:"removalDate" binding:"required"`
	UnitCost         *types.Money   `json:"unitCost"`
	SellingPrice     *types.Money   `json:"sellingPrice"`
}

// ToEntity creates a lot from the request. productId is parsed by the
// handler and passed in separately when present.
func (r CreateLotRequest) ToEntity(productID *id.ID) *lots.ExpiredLot {
	lot := lots.NewExpiredLot(r.ProductName, r.OriginalQuantity, r.BatchDate, r.RemovalDate)
	lot.ProductID = productID
	lot.UnitCost = r.UnitCost
	lot.SellingPrice = r.SellingPrice
	return lot
}

// RemainingResponse pairs a lot with its ledger-derived remaining
// quantity.
type RemainingResponse struct {
	Lot               LotResponse    `json:"lot"`
	DispatchedTotal   types.Quantity `json:"dispatchedTotal"`
	RemainingQuantity types.Quantity `json:"remainingQuantity"`
}
