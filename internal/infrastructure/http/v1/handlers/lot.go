package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"bakestock/internal/core/apperror"
	"bakestock/internal/core/id"
	"bakestock/internal/domain/dispatch"
	"bakestock/internal/domain/lots"
	"bakestock/internal/infrastructure/http/v1/dto"
)

// LotHandler handles HTTP requests for expired lots.
type LotHandler struct {
	*BaseHandler
	service  *lots.Service
	dispatch *dispatch.Service
}

// NewLotHandler creates a new lot handler.
func NewLotHandler(base *BaseHandler, service *lots.Service, dispatchSvc *dispatch.Service) *LotHandler {
	return &LotHandler{BaseHandler: base, service: service, dispatch: dispatchSvc}
}

// Create handles POST /api/v1/lots
func (h *LotHandler) Create(c *gin.Context) {
	var req dto.CreateLotRequest
	if !h.BindJSON(c, &req) {
		return
	}

	var productID *id.ID
	if req.ProductID != nil && *req.ProductID != "" {
		parsed, err := id.Parse(*req.ProductID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid product id format"))
			return
		}
		productID = &parsed
	}

	lot := req.ToEntity(productID)
	if err := h.service.Create(c.Request.Context(), lot); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromLot(lot))
}

// GetByID handles GET /api/v1/lots/:id
func (h *LotHandler) GetByID(c *gin.Context) {
	lotID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	lot, err := h.service.GetByID(c.Request.Context(), lotID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromLot(lot))
}

// Remaining handles GET /api/v1/lots/:id/remaining
// Returns the lot together with its ledger-derived remaining quantity.
func (h *LotHandler) Remaining(c *gin.Context) {
	lotID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	lot, remaining, err := h.dispatch.Remaining(c.Request.Context(), lotID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.RemainingResponse{
		Lot:               dto.FromLot(lot),
		DispatchedTotal:   lot.OriginalQuantity - remaining,
		RemainingQuantity: remaining,
	})
}

// List handles GET /api/v1/lots
func (h *LotHandler) List(c *gin.Context) {
	filter := lots.ListFilter{
		Search:  c.Query("search"),
		OrderBy: c.Query("orderBy"),
		Limit:   h.ParseIntQuery(c, "limit", 50),
		Offset:  h.ParseIntQuery(c, "offset", 0),
	}

	if status := c.Query("status"); status != "" {
		s := lots.Status(status)
		filter.Status = &s
	}
	if productID := c.Query("productId"); productID != "" {
		parsed, err := id.Parse(productID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid product id format"))
			return
		}
		filter.ProductID = &parsed
	}
	if from := c.Query("removedFrom"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid removedFrom date, expected YYYY-MM-DD"))
			return
		}
		filter.RemovedFrom = &t
	}
	if to := c.Query("removedTo"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid removedTo date, expected YYYY-MM-DD"))
			return
		}
		filter.RemovedTo = &t
	}

	result, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]dto.LotResponse, 0, len(result.Items))
	for _, lot := range result.Items {
		items = append(items, dto.FromLot(lot))
	}

	h.OK(c, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}
