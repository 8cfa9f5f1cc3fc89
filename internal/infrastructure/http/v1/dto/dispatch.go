package dto

import (
	"time"

	"bakestock/internal/core/types"
	"bakestock/internal/domain/dispatch"
)

// DispatchResponse contains one ledger record.
type DispatchResponse struct {
	ID               string               `json:"id"`
	LotID            string               `json:"lotId"`
	Destination      dispatch.Destination `json:"destination"`
	DestinationLabel string               `json:"destinationLabel"`
	Quantity         types.Quantity       `json:"quantity"`
	DispatchedBy     string               `json:"dispatchedBy"`
	DispatchDate     time.Time            `json:"dispatchDate"`
	Notes            string               `json:"notes,omitempty"`
	CreatedAt        time.Time            `json:"createdAt"`
}

// FromDispatch creates DispatchResponse from a ledger record.
func FromDispatch(r *dispatch.Record) DispatchResponse {
	return DispatchResponse{
		ID:               r.ID.String(),
		LotID:            r.LotID.String(),
		Destination:      r.Destination,
		DestinationLabel: r.Destination.Label(),
		Quantity:         r.Quantity,
		DispatchedBy:     r.DispatchedBy,
		DispatchDate:     r.DispatchDate,
		Notes:            r.Notes,
		CreatedAt:        r.CreatedAt,
	}
}

// CreateDispatchRequest for recording a new dispatch.
type CreateDispatchRequest struct {
	LotID        string               `json:"lotId" binding:"required"`
	Destination  dispatch.Destination `json:"destination" binding:"required"`
	Quantity     types.Quantity       `json:"quantity"`
	DispatchedBy string               `json:"dispatchedBy" binding:"required"`
	// DispatchDate defaults to today when omitted
	DispatchDate *time.Time `json:"dispatchDate"`
	Notes        string     `json:"notes"`
}

// AmendDispatchRequest for amending an existing record. Nil fields are
// unchanged.
type AmendDispatchRequest struct {
	Destination  *dispatch.Destination `json:"destination"`
	Quantity     *types.Quantity       `json:"quantity"`
	DispatchedBy *string               `json:"dispatchedBy"`
	DispatchDate *time.Time            `json:"dispatchDate"`
	Notes        *string               `json:"notes"`
}

// ToAmendInput converts the request into domain amend input.
func (r AmendDispatchRequest) ToAmendInput() dispatch.AmendInput {
	return dispatch.AmendInput{
		Destination:  r.Destination,
		Quantity:     r.Quantity,
		DispatchedBy: r.DispatchedBy,
		DispatchDate: r.DispatchDate,
		Notes:        r.Notes,
	}
}

// DestinationResponse describes one disposal channel.
type DestinationResponse struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FromDestinations lists all valid channels in stable order.
func FromDestinations() []DestinationResponse {
	all := dispatch.Destinations()
	out := make([]DestinationResponse, 0, len(all))
	for _, d := range all {
		out = append(out, DestinationResponse{Value: string(d), Label: d.Label()})
	}
	return out
}
