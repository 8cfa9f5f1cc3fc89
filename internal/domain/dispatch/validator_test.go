package dispatch

import (
	"testing"

	"bakestock/internal/core/apperror"
	"bakestock/internal/core/id"
	"bakestock/internal/domain/lots"
)

func testLot(original float64) *lots.ExpiredLot {
	return &lots.ExpiredLot{
		ID:               id.New(),
		ProductName:      "Sourdough loaf",
		OriginalQuantity: qty(original),
		Status:           lots.StatusOpen,
	}
}

func TestValidate_Accepts(t *testing.T) {
	lot := testLot(100)
	ledger := []Record{{LotID: lot.ID, Quantity: qty(40)}}

	err := Validate(Proposal{
		Lot:          lot,
		Destination:  DestinationAnimalFeed,
		Quantity:     qty(60),
		DispatchedBy: "Maria",
	}, ledger)
	if err != nil {
		t.Fatalf("expected accept, got %v", err)
	}
}

func TestValidate_MissingFields(t *testing.T) {
	lot := testLot(100)

	tests := []struct {
		name     string
		proposal Proposal
		field    string
	}{
		{"nil lot", Proposal{Destination: DestinationCompost, Quantity: qty(1), DispatchedBy: "Maria"}, "lot"},
		{"empty destination", Proposal{Lot: lot, Quantity: qty(1), DispatchedBy: "Maria"}, "destination"},
		{"empty dispatcher", Proposal{Lot: lot, Destination: DestinationCompost, Quantity: qty(1)}, "dispatchedBy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.proposal, nil)
			appErr, ok := apperror.AsAppError(err)
			if !ok {
				t.Fatalf("expected AppError, got %v", err)
			}
			if appErr.Message != "missing required field" {
				t.Errorf("expected missing required field, got %q", appErr.Message)
			}
			if appErr.Details["field"] != tt.field {
				t.Errorf("expected field %q, got %v", tt.field, appErr.Details["field"])
			}
		})
	}
}

func TestValidate_UnknownDestination(t *testing.T) {
	err := Validate(Proposal{
		Lot:          testLot(100),
		Destination:  Destination("landfill"),
		Quantity:     qty(1),
		DispatchedBy: "Maria",
	}, nil)

	appErr, ok := apperror.AsAppError(err)
	if !ok || appErr.Message != "unknown destination" {
		t.Fatalf("expected unknown destination, got %v", err)
	}
}

func TestValidate_InvalidQuantity(t *testing.T) {
	lot := testLot(100)

	for _, q := range []float64{0, -5} {
		err := Validate(Proposal{
			Lot:          lot,
			Destination:  DestinationDonation,
			Quantity:     qty(q),
			DispatchedBy: "Maria",
		}, nil)

		appErr, ok := apperror.AsAppError(err)
		if !ok || appErr.Message != "invalid quantity" {
			t.Fatalf("quantity %v: expected invalid quantity, got %v", q, err)
		}
	}
}

func TestValidate_ExceedsRemaining(t *testing.T) {
	lot := testLot(100)
	ledger := []Record{{LotID: lot.ID, Quantity: qty(40)}}

	err := Validate(Proposal{
		Lot:          lot,
		Destination:  DestinationStaffMeals,
		Quantity:     qty(75),
		DispatchedBy: "Maria",
	}, ledger)

	appErr, ok := apperror.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Code != apperror.CodeExceedsRemaining {
		t.Errorf("expected code %s, got %s", apperror.CodeExceedsRemaining, appErr.Code)
	}
	if appErr.Message != "exceeds remaining quantity (60.0000)" {
		t.Errorf("unexpected message: %q", appErr.Message)
	}
	if appErr.Details["remaining"] != "60.0000" {
		t.Errorf("expected remaining detail 60.0000, got %v", appErr.Details["remaining"])
	}
}

// The full remaining quantity is still dispatchable; only strictly
// more is rejected.
func TestValidate_ExactBoundary(t *testing.T) {
	lot := testLot(100)
	ledger := []Record{{LotID: lot.ID, Quantity: qty(40)}}

	err := Validate(Proposal{
		Lot:          lot,
		Destination:  DestinationBreadcrumbLine,
		Quantity:     qty(60),
		DispatchedBy: "Jonas",
	}, ledger)
	if err != nil {
		t.Fatalf("expected boundary accept, got %v", err)
	}

	err = Validate(Proposal{
		Lot:          lot,
		Destination:  DestinationBreadcrumbLine,
		Quantity:     qty(60.0001),
		DispatchedBy: "Jonas",
	}, ledger)
	if !apperror.IsExceedsRemaining(err) {
		t.Fatalf("expected exceeds remaining, got %v", err)
	}
}
