package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"clientdesk/internal/service"
)

// DashboardHandler serves the aggregated summary view-model.
type DashboardHandler struct {
	svc service.DashboardService
}

// NewDashboardHandler creates a dashboard handler.
func NewDashboardHandler(svc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Summary godoc
// @Summary Dashboard summary
// @Description Aggregated counts, category distribution and recent clients.
// @Description Always returns 200; a backend failure yields an empty summary.
// @Tags dashboard
// @Produce json
// @Success 200 {object} model.Summary
// @Router /api/dashboard [get]
func (h *DashboardHandler) Summary(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Summarize(c.Request().Context()))
}
