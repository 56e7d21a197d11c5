package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	errs "clientdesk/internal/errors"
	"clientdesk/internal/model"
	"clientdesk/internal/repository"
)

// ClientInput carries the editable fields of a client.
type ClientInput struct {
	Name     string
	Category string
	Email    string
	Phone    string
	Address  string
	Notes    string
}

// ClientService exposes client CRUD, bulk operations and CSV import.
type ClientService interface {
	List(ctx context.Context) ([]model.Client, error)
	Get(ctx context.Context, id uint) (*model.Client, error)
	Create(ctx context.Context, in ClientInput) (*model.Client, error)
	Update(ctx context.Context, id uint, in ClientInput) error
	Delete(ctx context.Context, id uint) error
	BulkDelete(ctx context.Context, ids []uint) (int64, error)
	BulkUpdateCategory(ctx context.Context, ids []uint, category string) (int64, error)
	ImportCSV(ctx context.Context, r io.Reader) (int, error)
	CategoryStats(ctx context.Context) ([]model.CategoryStat, error)
	AddCategory(ctx context.Context, name string) error
	DeleteCategory(ctx context.Context, name string) (int64, error)
}

type clientService struct {
	clients   repository.ClientRepository
	dashboard DashboardService
	log       zerolog.Logger
}

// NewClientService creates a client service. Mutations invalidate the
// dashboard summary cache through the dashboard service.
func NewClientService(clients repository.ClientRepository, dashboard DashboardService, log zerolog.Logger) ClientService {
	return &clientService{clients: clients, dashboard: dashboard, log: log}
}

func (s *clientService) List(ctx context.Context) ([]model.Client, error) {
	return s.clients.List(ctx)
}

func (s *clientService) Get(ctx context.Context, id uint) (*model.Client, error) {
	return s.clients.FindByID(ctx, id)
}

func (s *clientService) Create(ctx context.Context, in ClientInput) (*model.Client, error) {
	if in.Name == "" || in.Category == "" {
		return nil, errs.NewValidation("name and category are required")
	}
	client := &model.Client{
		Name:     in.Name,
		Category: in.Category,
		Email:    in.Email,
		Phone:    in.Phone,
		Address:  in.Address,
		Notes:    in.Notes,
	}
	if err := s.clients.Create(ctx, client); err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	s.dashboard.InvalidateCache(ctx)
	s.log.Info().Str("name", client.Name).Str("category", client.Category).Msg("client added")
	return client, nil
}

func (s *clientService) Update(ctx context.Context, id uint, in ClientInput) error {
	if in.Name == "" || in.Category == "" {
		return errs.NewValidation("name and category are required")
	}
	client := &model.Client{
		ID:       id,
		Name:     in.Name,
		Category: in.Category,
		Email:    in.Email,
		Phone:    in.Phone,
		Address:  in.Address,
		Notes:    in.Notes,
	}
	if err := s.clients.Update(ctx, client); err != nil {
		return err
	}
	s.dashboard.InvalidateCache(ctx)
	s.log.Info().Uint("client_id", id).Msg("client updated")
	return nil
}

func (s *clientService) Delete(ctx context.Context, id uint) error {
	if err := s.clients.Delete(ctx, id); err != nil {
		return err
	}
	s.dashboard.InvalidateCache(ctx)
	s.log.Info().Uint("client_id", id).Msg("client deleted")
	return nil
}

// BulkDelete removes a non-empty id set and returns the affected row count.
func (s *clientService) BulkDelete(ctx context.Context, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, errs.ErrEmptySelection
	}
	deleted, err := s.clients.DeleteBulk(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("bulk delete clients: %w", err)
	}
	s.dashboard.InvalidateCache(ctx)
	s.log.Info().Int64("count", deleted).Msg("bulk deleted clients")
	return deleted, nil
}

func (s *clientService) BulkUpdateCategory(ctx context.Context, ids []uint, category string) (int64, error) {
	if len(ids) == 0 || category == "" {
		return 0, errs.NewValidation("client ids and category are required")
	}
	updated, err := s.clients.UpdateCategoryBulk(ctx, ids, category)
	if err != nil {
		return 0, fmt.Errorf("bulk update category: %w", err)
	}
	s.dashboard.InvalidateCache(ctx)
	s.log.Info().Int64("count", updated).Str("category", category).Msg("bulk updated client category")
	return updated, nil
}

// ImportCSV parses header-skipped rows in the fixed column order
// name, category, email, phone, address, notes. Short rows are tolerated;
// rows missing name or category are skipped. The whole batch is inserted in
// one transaction and the imported row count is returned.
func (s *clientService) ImportCSV(ctx context.Context, r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return 0, errs.NewValidation("invalid CSV file")
	}
	if len(records) <= 1 {
		return 0, nil
	}

	clients := make([]model.Client, 0, len(records)-1)
	for _, row := range records[1:] { // skip header
		field := func(i int) string {
			if i < len(row) {
				return strings.TrimSpace(row[i])
			}
			return ""
		}
		name, category := field(0), field(1)
		if name == "" || category == "" {
			continue
		}
		clients = append(clients, model.Client{
			Name:     name,
			Category: category,
			Email:    field(2),
			Phone:    field(3),
			Address:  field(4),
			Notes:    field(5),
		})
	}

	if err := s.clients.CreateBatch(ctx, clients); err != nil {
		return 0, fmt.Errorf("import clients: %w", err)
	}
	s.dashboard.InvalidateCache(ctx)
	s.log.Info().Int("count", len(clients)).Msg("imported clients from CSV")
	return len(clients), nil
}

func (s *clientService) CategoryStats(ctx context.Context) ([]model.CategoryStat, error) {
	return s.clients.CategoryCounts(ctx)
}

// AddCategory gives a new label its first member. Categories have no record
// of their own, so creating one means creating a placeholder client in it.
func (s *clientService) AddCategory(ctx context.Context, name string) error {
	if name == "" {
		return errs.NewValidation("category name is required")
	}
	client := &model.Client{
		Name:     "Sample Client - " + name,
		Category: name,
	}
	if err := s.clients.Create(ctx, client); err != nil {
		return fmt.Errorf("add category: %w", err)
	}
	s.dashboard.InvalidateCache(ctx)
	s.log.Info().Str("category", name).Msg("category added")
	return nil
}

// DeleteCategory removes every client holding the label, which also removes
// the label from all aggregates.
func (s *clientService) DeleteCategory(ctx context.Context, name string) (int64, error) {
	if name == "" {
		return 0, errs.NewValidation("category name is required")
	}
	deleted, err := s.clients.DeleteByCategory(ctx, name)
	if err != nil {
		return 0, fmt.Errorf("delete category: %w", err)
	}
	s.dashboard.InvalidateCache(ctx)
	s.log.Info().Str("category", name).Int64("count", deleted).Msg("category deleted")
	return deleted, nil
}
