package reports

import (
	"context"
	"fmt"
	"time"

	"bakestock/internal/core/apperror"
	"bakestock/internal/domain/dispatch"
	"bakestock/internal/domain/lots"
)

// Service fetches the ledger and lot catalog and reduces them into a
// Summary. All aggregation happens in memory over freshly fetched rows;
// nothing is cached between calls.
type Service struct {
	lotRepo      lots.Repository
	dispatchRepo dispatch.Repository
}

// NewService creates a new reports service.
func NewService(lotRepo lots.Repository, dispatchRepo dispatch.Repository) *Service {
	return &Service{
		lotRepo:      lotRepo,
		dispatchRepo: dispatchRepo,
	}
}

// GetSummary builds the dispatch summary for a period.
func (s *Service) GetSummary(ctx context.Context, period Period) (*Summary, error) {
	if err := validatePeriod(period); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	// Push the window down to the store when bounded, so the reduction
	// works over a pre-filtered set.
	filter := dispatch.ListFilter{Limit: -1}
	if from, to, bounded := period.Window(now); bounded {
		filter.DateFrom = &from
		filter.DateTo = &to
	}

	ledger, err := s.dispatchRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("fetch ledger: %w", err)
	}

	lotList, err := s.lotRepo.List(ctx, lots.ListFilter{Limit: -1})
	if err != nil {
		return nil, fmt.Errorf("fetch lots: %w", err)
	}

	records := make([]dispatch.Record, len(ledger.Items))
	for i, r := range ledger.Items {
		records[i] = *r
	}
	lotSet := make([]lots.ExpiredLot, len(lotList.Items))
	for i, l := range lotList.Items {
		lotSet[i] = *l
	}

	return Summarize(records, lotSet, period, now), nil
}

// RenderPrintable builds the summary and renders it as a standalone
// HTML document for the platform print dialog.
func (s *Service) RenderPrintable(ctx context.Context, period Period) ([]byte, error) {
	summary, err := s.GetSummary(ctx, period)
	if err != nil {
		return nil, err
	}
	return RenderPrintableHTML(summary, time.Now().UTC())
}

func validatePeriod(period Period) error {
	switch period.Kind {
	case PeriodAll, PeriodToday, PeriodWeek, PeriodMonth:
		return nil
	case PeriodCustom:
		if period.From.IsZero() || period.To.IsZero() {
			return apperror.NewValidation("custom period requires from and to dates").
				WithDetail("field", "period")
		}
		if period.From.After(period.To) {
			return apperror.NewValidation("period start must not be after period end").
				WithDetail("field", "period")
		}
		return nil
	default:
		return apperror.NewValidation("unknown period kind").
			WithDetail("field", "period").
			WithDetail("value", string(period.Kind))
	}
}
