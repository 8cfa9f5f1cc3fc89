package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"bakestock/internal/core/apperror"
	"bakestock/internal/core/id"
	"bakestock/internal/domain/dispatch"
	"bakestock/internal/infrastructure/http/v1/dto"
)

// DispatchHandler handles HTTP requests for the dispatch ledger.
type DispatchHandler struct {
	*BaseHandler
	service *dispatch.Service
}

// NewDispatchHandler creates a new dispatch handler.
func NewDispatchHandler(base *BaseHandler, service *dispatch.Service) *DispatchHandler {
	return &DispatchHandler{BaseHandler: base, service: service}
}

// Create handles POST /api/v1/dispatches
func (h *DispatchHandler) Create(c *gin.Context) {
	var req dto.CreateDispatchRequest
	if !h.BindJSON(c, &req) {
		return
	}

	lotID, err := id.Parse(req.LotID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid lot id format"))
		return
	}

	in := dispatch.RecordInput{
		LotID:        lotID,
		Destination:  req.Destination,
		Quantity:     req.Quantity,
		DispatchedBy: req.DispatchedBy,
		Notes:        req.Notes,
	}
	if req.DispatchDate != nil {
		in.DispatchDate = *req.DispatchDate
	}

	rec, err := h.service.Record(c.Request.Context(), in)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromDispatch(rec))
}

// Amend handles PUT /api/v1/dispatches/:id
func (h *DispatchHandler) Amend(c *gin.Context) {
	recordID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.AmendDispatchRequest
	if !h.BindJSON(c, &req) {
		return
	}

	rec, err := h.service.Amend(c.Request.Context(), recordID, req.ToAmendInput())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromDispatch(rec))
}

// GetByID handles GET /api/v1/dispatches/:id
func (h *DispatchHandler) GetByID(c *gin.Context) {
	recordID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	rec, err := h.service.GetByID(c.Request.Context(), recordID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromDispatch(rec))
}

// List handles GET /api/v1/dispatches
func (h *DispatchHandler) List(c *gin.Context) {
	filter := dispatch.ListFilter{
		DispatchedBy: c.Query("dispatchedBy"),
		OrderBy:      c.Query("orderBy"),
		Limit:        h.ParseIntQuery(c, "limit", 50),
		Offset:       h.ParseIntQuery(c, "offset", 0),
	}

	if lotID := c.Query("lotId"); lotID != "" {
		parsed, err := id.Parse(lotID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid lot id format"))
			return
		}
		filter.LotID = &parsed
	}
	if dest := c.Query("destination"); dest != "" {
		d := dispatch.Destination(dest)
		if !d.IsValid() {
			h.Error(c, apperror.NewValidation("unknown destination").WithDetail("value", dest))
			return
		}
		filter.Destination = &d
	}
	if from := c.Query("dateFrom"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid dateFrom, expected YYYY-MM-DD"))
			return
		}
		filter.DateFrom = &t
	}
	if to := c.Query("dateTo"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid dateTo, expected YYYY-MM-DD"))
			return
		}
		filter.DateTo = &t
	}

	result, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]dto.DispatchResponse, 0, len(result.Items))
	for _, rec := range result.Items {
		items = append(items, dto.FromDispatch(rec))
	}

	h.OK(c, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// Destinations handles GET /api/v1/dispatches/destinations
func (h *DispatchHandler) Destinations(c *gin.Context) {
	h.OK(c, dto.FromDestinations())
}
