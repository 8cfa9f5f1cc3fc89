package dispatch

import (
	"bakestock/internal/core/apperror"
	"bakestock/internal/core/types"
	"bakestock/internal/domain/lots"
)

// Proposal is a dispatch request awaiting validation.
type Proposal struct {
	Lot          *lots.ExpiredLot
	Destination  Destination
	Quantity     types.Quantity
	DispatchedBy string
}

// Validate checks a proposed dispatch against the ledger snapshot.
// Pure function, no side effects. Rules apply in order:
//  1. required fields present
//  2. quantity positive
//  3. quantity within the lot's remaining quantity
//
// The snapshot check alone is not safe against concurrent dispatchers;
// the recorder re-checks under a row lock before writing.
func Validate(p Proposal, ledger []Record) error {
	if p.Lot == nil {
		return apperror.NewValidation("missing required field").
			WithDetail("field", "lot")
	}
	if p.Destination == "" {
		return apperror.NewValidation("missing required field").
			WithDetail("field", "destination")
	}
	if p.DispatchedBy == "" {
		return apperror.NewValidation("missing required field").
			WithDetail("field", "dispatchedBy")
	}
	if !p.Destination.IsValid() {
		return apperror.NewValidation("unknown destination").
			WithDetail("field", "destination").
			WithDetail("value", string(p.Destination))
	}

	if !p.Quantity.IsPositive() {
		return apperror.NewValidation("invalid quantity").
			WithDetail("field", "quantity").
			WithDetail("value", p.Quantity.String())
	}

	remaining := Remaining(p.Lot, ledger)
	if p.Quantity > remaining {
		return apperror.NewExceedsRemaining(p.Lot.ID.String(), p.Quantity, remaining)
	}

	return nil
}
