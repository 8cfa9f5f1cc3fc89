package dto

import (
	"time"

	"bakestock/internal/core/apperror"
	"bakestock/internal/domain/reports"
)

// SummaryRequest selects the reporting period from query parameters.
type SummaryRequest struct {
	// Period is one of: all, today, week, month, custom
	Period string `form:"period"`
	From   string `form:"from"`
	To     string `form:"to"`
}

// ToPeriod parses the request into a domain period. Dates use the
// YYYY-MM-DD form.
func (r SummaryRequest) ToPeriod() (reports.Period, error) {
	kind := reports.PeriodKind(r.Period)
	if r.Period == "" {
		kind = reports.PeriodAll
	}

	period := reports.Period{Kind: kind}
	if kind != reports.PeriodCustom {
		return period, nil
	}

	var err error
	if period.From, err = time.Parse("2006-01-02", r.From); err != nil {
		return period, apperror.NewValidation("invalid from date, expected YYYY-MM-DD").
			WithDetail("value", r.From)
	}
	if period.To, err = time.Parse("2006-01-02", r.To); err != nil {
		return period, apperror.NewValidation("invalid to date, expected YYYY-MM-DD").
			WithDetail("value", r.To)
	}
	return period, nil
}
