package lots

import (
	"context"
	"fmt"

	"bakestock/internal/core/id"
	"bakestock/pkg/logger"
)

// Service provides business operations for expired lots.
type Service struct {
	repo Repository
}

// NewService creates a new lot service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and persists a new lot.
func (s *Service) Create(ctx context.Context, lot *ExpiredLot) error {
	if err := lot.Validate(ctx); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, lot); err != nil {
		return fmt.Errorf("create lot: %w", err)
	}

	logger.Info(ctx, "expired lot registered",
		"id", lot.ID,
		"product", lot.ProductName,
		"quantity", lot.OriginalQuantity,
	)
	return nil
}

// GetByID retrieves a lot.
func (s *Service) GetByID(ctx context.Context, lotID id.ID) (*ExpiredLot, error) {
	return s.repo.GetByID(ctx, lotID)
}

// List retrieves lots with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (ListResult, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "removal_date DESC"
	}
	return s.repo.List(ctx, filter)
}

// MarkDepleted flips the derived status bookkeeping. Called by the
// depletion sweep once the ledger shows zero remaining.
func (s *Service) MarkDepleted(ctx context.Context, lotID id.ID) error {
	if err := s.repo.UpdateStatus(ctx, lotID, StatusDepleted); err != nil {
		return fmt.Errorf("mark depleted: %w", err)
	}
	logger.Info(ctx, "lot marked depleted", "id", lotID)
	return nil
}

// Reopen reverts the depleted flag, e.g. after an amend freed capacity.
func (s *Service) Reopen(ctx context.Context, lotID id.ID) error {
	return s.repo.UpdateStatus(ctx, lotID, StatusOpen)
}
