package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"clientdesk/internal/db"
	"clientdesk/internal/logger"
	"clientdesk/internal/repository"
)

// MaintenanceService backs the database/cache upkeep endpoints.
type MaintenanceService interface {
	TestConnection(ctx context.Context) error
	Optimize(ctx context.Context) error
	ClearCache(ctx context.Context)
	ClearLogs()
}

type maintenanceService struct {
	db        *db.Manager
	clients   repository.ClientRepository
	dashboard DashboardService
	log       zerolog.Logger
}

// NewMaintenanceService creates the maintenance service.
func NewMaintenanceService(manager *db.Manager, clients repository.ClientRepository, dashboard DashboardService, log zerolog.Logger) MaintenanceService {
	return &maintenanceService{db: manager, clients: clients, dashboard: dashboard, log: log}
}

// TestConnection borrows a handle, which probes liveness and reconnects
// once if needed.
func (s *maintenanceService) TestConnection(ctx context.Context) error {
	if _, err := s.db.Session(ctx); err != nil {
		return fmt.Errorf("test connection: %w", err)
	}
	s.log.Info().Msg("database connection test successful")
	return nil
}

func (s *maintenanceService) Optimize(ctx context.Context) error {
	if err := s.clients.Optimize(ctx); err != nil {
		return fmt.Errorf("optimize database: %w", err)
	}
	s.log.Info().Msg("database optimization completed")
	return nil
}

func (s *maintenanceService) ClearCache(ctx context.Context) {
	s.dashboard.InvalidateCache(ctx)
	s.log.Info().Msg("cache cleared")
}

func (s *maintenanceService) ClearLogs() {
	logger.ClearRecent()
	s.log.Info().Msg("logs cleared")
}
