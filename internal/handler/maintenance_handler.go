package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"clientdesk/internal/logger"
	"clientdesk/internal/service"
)

// MaintenanceHandler serves the database/cache upkeep endpoints.
type MaintenanceHandler struct {
	svc service.MaintenanceService
	log zerolog.Logger
}

// NewMaintenanceHandler creates a maintenance handler.
func NewMaintenanceHandler(svc service.MaintenanceService, log zerolog.Logger) *MaintenanceHandler {
	return &MaintenanceHandler{svc: svc, log: log}
}

// TestConnection godoc
// @Summary Probe the database connection
// @Tags maintenance
// @Produce json
// @Success 200 {object} errors.MessageResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /database/test-connection [get]
func (h *MaintenanceHandler) TestConnection(c echo.Context) error {
	if err := h.svc.TestConnection(c.Request().Context()); err != nil {
		return respondError(c, h.log, err, "connection test failed")
	}
	return respondMessage(c, "database connection successful")
}

// Optimize godoc
// @Summary Run table maintenance
// @Tags maintenance
// @Produce json
// @Success 200 {object} errors.MessageResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /database/optimize [post]
func (h *MaintenanceHandler) Optimize(c echo.Context) error {
	if err := h.svc.Optimize(c.Request().Context()); err != nil {
		return respondError(c, h.log, err, "optimization failed")
	}
	return respondMessage(c, "database optimized successfully")
}

// ClearCache godoc
// @Summary Drop the cached dashboard summary
// @Tags maintenance
// @Produce json
// @Success 200 {object} errors.MessageResponse
// @Router /database/clear-cache [post]
func (h *MaintenanceHandler) ClearCache(c echo.Context) error {
	h.svc.ClearCache(c.Request().Context())
	return respondMessage(c, "cache cleared successfully")
}

// RecentLogs godoc
// @Summary List recent log records
// @Tags maintenance
// @Produce json
// @Success 200 {array} logger.Record
// @Router /api/logs [get]
func (h *MaintenanceHandler) RecentLogs(c echo.Context) error {
	return c.JSON(http.StatusOK, logger.Recent())
}

// ClearLogs godoc
// @Summary Drop retained log records
// @Tags maintenance
// @Produce json
// @Success 200 {object} errors.MessageResponse
// @Router /api/logs [delete]
func (h *MaintenanceHandler) ClearLogs(c echo.Context) error {
	h.svc.ClearLogs()
	return respondMessage(c, "logs cleared successfully")
}
