package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"clientdesk/internal/logger"
	"clientdesk/internal/repository"
)

// ExportService renders client data into downloadable formats.
type ExportService interface {
	ClientsCSV(ctx context.Context) ([]byte, error)
	ClientsJSON(ctx context.Context) ([]byte, error)
	SQLBackup(ctx context.Context) ([]byte, error)
	SummaryReport(ctx context.Context) []byte
	LogsCSV() []byte
}

type exportService struct {
	clients   repository.ClientRepository
	dashboard DashboardService
	log       zerolog.Logger
}

// NewExportService creates the export service.
func NewExportService(clients repository.ClientRepository, dashboard DashboardService, log zerolog.Logger) ExportService {
	return &exportService{clients: clients, dashboard: dashboard, log: log}
}

// ClientsCSV renders all clients as comma-delimited text with the fixed
// header row ID,Client Name,Category.
func (s *exportService) ClientsCSV(ctx context.Context) ([]byte, error) {
	clients, err := s.clients.ListForExport(ctx)
	if err != nil {
		return nil, fmt.Errorf("export clients: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"ID", "Client Name", "Category"})
	for _, c := range clients {
		_ = w.Write([]string{strconv.FormatUint(uint64(c.ID), 10), c.Name, c.Category})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}

	s.log.Info().Int("count", len(clients)).Msg("CSV export completed")
	return buf.Bytes(), nil
}

type exportRecord struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

type jsonExport struct {
	ExportDate   time.Time      `json:"export_date"`
	TotalClients int            `json:"total_clients"`
	Clients      []exportRecord `json:"clients"`
}

// ClientsJSON renders all clients as a pretty-printed JSON document with an
// export timestamp and total count.
func (s *exportService) ClientsJSON(ctx context.Context) ([]byte, error) {
	clients, err := s.clients.ListForExport(ctx)
	if err != nil {
		return nil, fmt.Errorf("export clients: %w", err)
	}

	doc := jsonExport{
		ExportDate:   time.Now(),
		TotalClients: len(clients),
		Clients:      make([]exportRecord, 0, len(clients)),
	}
	for _, c := range clients {
		doc.Clients = append(doc.Clients, exportRecord{ID: c.ID, Name: c.Name, Category: c.Category})
	}

	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal export: %w", err)
	}
	s.log.Info().Int("count", len(clients)).Msg("JSON export completed")
	return payload, nil
}

// SQLBackup produces a textual dump (DROP TABLE, CREATE TABLE, one INSERT
// per row) intended for manual offline restore only.
func (s *exportService) SQLBackup(ctx context.Context) ([]byte, error) {
	clients, err := s.clients.ListForExport(ctx)
	if err != nil {
		return nil, fmt.Errorf("backup clients: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "-- Database Backup\n-- Generated on: %s\n-- Total clients: %d\n\n",
		time.Now().Format("2006-01-02 15:04:05"), len(clients))
	b.WriteString("DROP TABLE IF EXISTS clients;\n")
	b.WriteString("CREATE TABLE clients (\n")
	b.WriteString("    id INT AUTO_INCREMENT PRIMARY KEY,\n")
	b.WriteString("    name VARCHAR(255) NOT NULL,\n")
	b.WriteString("    category VARCHAR(100) NOT NULL\n")
	b.WriteString(");\n\n")
	for _, c := range clients {
		fmt.Fprintf(&b, "INSERT INTO clients (id, name, category) VALUES (%d, '%s', '%s');\n",
			c.ID, sqlEscape(c.Name), sqlEscape(c.Category))
	}

	s.log.Info().Int("count", len(clients)).Msg("database backup completed")
	return []byte(b.String()), nil
}

// SummaryReport renders the dashboard summary as a plain-text report.
// It inherits the aggregator's fail-soft contract.
func (s *exportService) SummaryReport(ctx context.Context) []byte {
	summary := s.dashboard.Summarize(ctx)

	var b strings.Builder
	b.WriteString("CLIENT MANAGEMENT SYSTEM REPORT\n")
	fmt.Fprintf(&b, "Generated on: %s\n\n", summary.GeneratedAt.Format("2006-01-02 15:04:05"))
	b.WriteString("SUMMARY:\n")
	fmt.Fprintf(&b, "- Total Clients: %d\n", summary.TotalClients)
	fmt.Fprintf(&b, "- Total Categories: %d\n", summary.TotalCategories)
	fmt.Fprintf(&b, "- Average per Category: %.1f\n\n", summary.AvgClientsPerCategory)
	b.WriteString("CATEGORY BREAKDOWN:\n")
	for _, stat := range summary.Categories {
		fmt.Fprintf(&b, "- %s: %d clients\n", stat.Category, stat.Count)
	}

	s.log.Info().Msg("summary report generated")
	return []byte(b.String())
}

// LogsCSV renders the retained log records as comma-delimited text.
func (s *exportService) LogsCSV() []byte {
	records := logger.Recent()

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"Timestamp", "Level", "Message"})
	for _, rec := range records {
		_ = w.Write([]string{rec.Time.Format("2006-01-02 15:04:05"), strings.ToUpper(rec.Level), rec.Message})
	}
	w.Flush()
	return buf.Bytes()
}

func sqlEscape(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
