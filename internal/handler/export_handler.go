package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"clientdesk/internal/service"
)

// ExportHandler serves file downloads: CSV/JSON exports, the SQL backup,
// the summary report and the recent-log export.
type ExportHandler struct {
	svc service.ExportService
	log zerolog.Logger
}

// NewExportHandler creates an export handler.
func NewExportHandler(svc service.ExportService, log zerolog.Logger) *ExportHandler {
	return &ExportHandler{svc: svc, log: log}
}

// ClientsCSV godoc
// @Summary Download clients as CSV
// @Tags export
// @Produce text/csv
// @Success 200 {string} string
// @Router /export/clients.csv [get]
func (h *ExportHandler) ClientsCSV(c echo.Context) error {
	data, err := h.svc.ClientsCSV(c.Request().Context())
	if err != nil {
		return respondError(c, h.log, err, "csv export failed")
	}
	return download(c, "text/csv", stampedName("clients_export", "csv"), data)
}

// ClientsJSON godoc
// @Summary Download clients as pretty-printed JSON
// @Tags export
// @Produce json
// @Success 200 {string} string
// @Router /export/clients.json [get]
func (h *ExportHandler) ClientsJSON(c echo.Context) error {
	data, err := h.svc.ClientsJSON(c.Request().Context())
	if err != nil {
		return respondError(c, h.log, err, "json export failed")
	}
	return download(c, echo.MIMEApplicationJSON, stampedName("clients_export", "json"), data)
}

// Backup godoc
// @Summary Download a SQL dump of the clients table
// @Description Textual DROP/CREATE/INSERT dump for manual offline restore.
// @Tags export
// @Produce plain
// @Success 200 {string} string
// @Router /database/backup [get]
func (h *ExportHandler) Backup(c echo.Context) error {
	data, err := h.svc.SQLBackup(c.Request().Context())
	if err != nil {
		return respondError(c, h.log, err, "backup failed")
	}
	return download(c, "application/sql", stampedName("database_backup", "sql"), data)
}

// Report godoc
// @Summary Download a plain-text summary report
// @Tags export
// @Produce plain
// @Success 200 {string} string
// @Router /reports/summary [get]
func (h *ExportHandler) Report(c echo.Context) error {
	data := h.svc.SummaryReport(c.Request().Context())
	return download(c, echo.MIMETextPlain, stampedName("client_report", "txt"), data)
}

// Logs godoc
// @Summary Download recent log records as CSV
// @Tags export
// @Produce text/csv
// @Success 200 {string} string
// @Router /export/logs.csv [get]
func (h *ExportHandler) Logs(c echo.Context) error {
	return download(c, "text/csv", stampedName("system_logs", "csv"), h.svc.LogsCSV())
}

func download(c echo.Context, mime, filename string, data []byte) error {
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, mime, data)
}

func stampedName(prefix, ext string) string {
	return fmt.Sprintf("%s_%s.%s", prefix, time.Now().Format("20060102_150405"), ext)
}
