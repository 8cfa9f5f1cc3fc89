package dispatch

import (
	"context"
	"fmt"
	"time"

	"bakestock/internal/core/apperror"
	"bakestock/internal/core/id"
	"bakestock/internal/core/tx"
	"bakestock/internal/core/types"
	"bakestock/internal/domain/lots"
	"bakestock/pkg/logger"
)

// Config holds dispatch business-rule toggles.
type Config struct {
	// AllowUncheckedAmend preserves the historical behavior where an
	// amend does not re-validate against remaining quantity, so a
	// supervisor can set any positive quantity. When false, amends that
	// change quantity go through the same locked capacity check as new
	// dispatches.
	AllowUncheckedAmend bool
}

// Service is the dispatch recorder: the only writer of ledger entries.
type Service struct {
	lotRepo lots.Repository
	repo    Repository
	txm     tx.Manager
	cfg     Config
}

// NewService creates a new dispatch service.
func NewService(lotRepo lots.Repository, repo Repository, txm tx.Manager, cfg Config) *Service {
	return &Service{
		lotRepo: lotRepo,
		repo:    repo,
		txm:     txm,
		cfg:     cfg,
	}
}

// RecordInput is the payload for recording a new dispatch.
type RecordInput struct {
	LotID        id.ID
	Destination  Destination
	Quantity     types.Quantity
	DispatchedBy string
	// DispatchDate defaults to today when zero
	DispatchDate time.Time
	Notes        string
}

// Record validates and appends one dispatch.
//
// Validation happens twice: once against a fresh ledger snapshot (the
// pure gate, so bad requests never reach the store), and again inside a
// transaction holding the lot's row lock. The locked re-check is the
// serialization point that keeps two concurrent dispatchers from both
// spending the same remaining quantity.
func (s *Service) Record(ctx context.Context, in RecordInput) (*Record, error) {
	lot, err := s.lotRepo.GetByID(ctx, in.LotID)
	if err != nil {
		return nil, err
	}

	ledger, err := s.repo.ListByLot(ctx, lot.ID)
	if err != nil {
		return nil, fmt.Errorf("fetch ledger: %w", err)
	}

	if err := Validate(Proposal{
		Lot:          lot,
		Destination:  in.Destination,
		Quantity:     in.Quantity,
		DispatchedBy: in.DispatchedBy,
	}, ledger); err != nil {
		return nil, err
	}

	rec := NewRecord(lot.ID, in.Destination, in.Quantity, in.DispatchedBy, in.DispatchDate, in.Notes)

	err = s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		locked, err := s.lotRepo.GetForUpdate(ctx, lot.ID)
		if err != nil {
			return err
		}

		dispatched, err := s.repo.SumByLot(ctx, lot.ID)
		if err != nil {
			return fmt.Errorf("sum dispatched: %w", err)
		}

		remaining := locked.OriginalQuantity - dispatched
		if rec.Quantity > remaining {
			return apperror.NewExceedsRemaining(lot.ID.String(), rec.Quantity, remaining)
		}

		if err := s.repo.Insert(ctx, rec); err != nil {
			return fmt.Errorf("insert dispatch: %w", err)
		}

		if remaining-rec.Quantity == 0 && locked.Status != lots.StatusDepleted {
			if err := s.lotRepo.UpdateStatus(ctx, lot.ID, lots.StatusDepleted); err != nil {
				return fmt.Errorf("update lot status: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "dispatch recorded",
		"id", rec.ID,
		"lot_id", rec.LotID,
		"destination", rec.Destination,
		"quantity", rec.Quantity,
		"dispatched_by", rec.DispatchedBy,
	)
	return rec, nil
}

// AmendInput carries the amendable fields; nil pointers leave a field
// unchanged.
type AmendInput struct {
	Destination  *Destination
	Quantity     *types.Quantity
	DispatchedBy *string
	DispatchDate *time.Time
	Notes        *string
}

// Amend overwrites fields of an existing ledger record in place.
// Whether the new quantity is re-validated against the lot's remaining
// quantity depends on Config.AllowUncheckedAmend.
func (s *Service) Amend(ctx context.Context, recordID id.ID, in AmendInput) (*Record, error) {
	rec, err := s.repo.GetByID(ctx, recordID)
	if err != nil {
		return nil, err
	}

	prevQty := rec.Quantity
	applyAmend(rec, in)

	if !rec.Destination.IsValid() {
		return nil, apperror.NewValidation("unknown destination").
			WithDetail("field", "destination").
			WithDetail("value", string(rec.Destination))
	}
	if !rec.Quantity.IsPositive() {
		return nil, apperror.NewValidation("invalid quantity").
			WithDetail("field", "quantity").
			WithDetail("value", rec.Quantity.String())
	}
	if rec.DispatchedBy == "" {
		return nil, apperror.NewValidation("missing required field").
			WithDetail("field", "dispatchedBy")
	}

	err = s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		locked, err := s.lotRepo.GetForUpdate(ctx, rec.LotID)
		if err != nil {
			return err
		}

		dispatched, err := s.repo.SumByLot(ctx, rec.LotID)
		if err != nil {
			return fmt.Errorf("sum dispatched: %w", err)
		}

		// Capacity excluding this record's previously stored quantity.
		others := dispatched - prevQty
		remaining := locked.OriginalQuantity - others

		if !s.cfg.AllowUncheckedAmend && rec.Quantity > remaining {
			return apperror.NewExceedsRemaining(rec.LotID.String(), rec.Quantity, remaining)
		}

		if err := s.repo.Update(ctx, rec); err != nil {
			return fmt.Errorf("update dispatch: %w", err)
		}

		return s.reconcileStatus(ctx, locked, others+rec.Quantity)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "dispatch amended",
		"id", rec.ID,
		"lot_id", rec.LotID,
		"quantity", rec.Quantity,
		"previous_quantity", prevQty,
		"capacity_checked", !s.cfg.AllowUncheckedAmend,
	)
	return rec, nil
}

// reconcileStatus keeps the lot's derived status in line with the
// ledger total. An unchecked amend can leave remaining negative; the
// lot still counts as depleted then.
func (s *Service) reconcileStatus(ctx context.Context, lot *lots.ExpiredLot, dispatched types.Quantity) error {
	remaining := lot.OriginalQuantity - dispatched

	switch {
	case remaining <= 0 && lot.Status != lots.StatusDepleted:
		return s.lotRepo.UpdateStatus(ctx, lot.ID, lots.StatusDepleted)
	case remaining > 0 && lot.Status == lots.StatusDepleted:
		return s.lotRepo.UpdateStatus(ctx, lot.ID, lots.StatusOpen)
	}
	return nil
}

// Remaining returns the lot and its ledger-derived remaining quantity.
func (s *Service) Remaining(ctx context.Context, lotID id.ID) (*lots.ExpiredLot, types.Quantity, error) {
	lot, err := s.lotRepo.GetByID(ctx, lotID)
	if err != nil {
		return nil, 0, err
	}

	dispatched, err := s.repo.SumByLot(ctx, lotID)
	if err != nil {
		return nil, 0, fmt.Errorf("sum dispatched: %w", err)
	}

	return lot, lot.OriginalQuantity - dispatched, nil
}

// GetByID retrieves one ledger record.
func (s *Service) GetByID(ctx context.Context, recordID id.ID) (*Record, error) {
	return s.repo.GetByID(ctx, recordID)
}

// List retrieves ledger records with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (ListResult, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "dispatch_date DESC, created_at DESC"
	}
	return s.repo.List(ctx, filter)
}

func applyAmend(rec *Record, in AmendInput) {
	if in.Destination != nil {
		rec.Destination = *in.Destination
	}
	if in.Quantity != nil {
		rec.Quantity = *in.Quantity
	}
	if in.DispatchedBy != nil {
		rec.DispatchedBy = *in.DispatchedBy
	}
	if in.DispatchDate != nil {
		rec.DispatchDate = truncateToDate(*in.DispatchDate)
	}
	if in.Notes != nil {
		rec.Notes = *in.Notes
	}
}
