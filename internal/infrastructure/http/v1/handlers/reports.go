package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bakestock/internal/domain/reports"
	"bakestock/internal/infrastructure/http/v1/dto"
)

// ReportsHandler handles HTTP requests for dispatch summaries.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{BaseHandler: base, service: service}
}

// Summary handles GET /api/v1/reports/summary
func (h *ReportsHandler) Summary(c *gin.Context) {
	var req dto.SummaryRequest
	if !h.BindQuery(c, &req) {
		return
	}

	period, err := req.ToPeriod()
	if err != nil {
		h.Error(c, err)
		return
	}

	summary, err := h.service.GetSummary(c.Request.Context(), period)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, summary)
}

// Print handles GET /api/v1/reports/print
// Renders the summary as a standalone HTML document for printing.
func (h *ReportsHandler) Print(c *gin.Context) {
	var req dto.SummaryRequest
	if !h.BindQuery(c, &req) {
		return
	}

	period, err := req.ToPeriod()
	if err != nil {
		h.Error(c, err)
		return
	}

	html, err := h.service.RenderPrintable(c.Request.Context(), period)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", html)
}
