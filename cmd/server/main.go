package main

import (
	"context"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"

	_ "clientdesk/docs" // swagger docs

	"clientdesk/internal/auth"
	"clientdesk/internal/cache"
	"clientdesk/internal/config"
	"clientdesk/internal/db"
	"clientdesk/internal/handler"
	"clientdesk/internal/logger"
	"clientdesk/internal/model"
	"clientdesk/internal/repository"
	"clientdesk/internal/router"
	"clientdesk/internal/service"
)

// @title Client Administration API
// @version 1.0
// @description Session-authenticated admin API for managing clients, categories, exports and user accounts.
// @host localhost:8080
// @schemes http
func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	manager, err := db.New(cfg.MySQLDSN, cfg.MySQLFallbackDSN, log)
	if err != nil {
		log.Fatal().Err(err).Msg("database init")
	}

	gormDB, err := manager.Session(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("database unavailable")
	}
	if err := gormDB.AutoMigrate(&model.Client{}, &model.User{}); err != nil {
		log.Fatal().Err(err).Msg("auto-migrate")
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	sessions := auth.NewSessionService(cfg.SessionSecret)

	clientRepo := repository.NewClientRepository(manager)
	userRepo := repository.NewUserRepository(manager)

	dashboardService := service.NewDashboardService(clientRepo, cacheClient, log)
	clientService := service.NewClientService(clientRepo, dashboardService, log)
	exportService := service.NewExportService(clientRepo, dashboardService, log)
	authService := service.NewAuthService(userRepo, log)
	userService := service.NewUserService(userRepo, log)
	maintenanceService := service.NewMaintenanceService(manager, clientRepo, dashboardService, log)

	e := echo.New()
	e.HideBanner = true

	router.Register(e, sessions, router.Handlers{
		Auth:        handler.NewAuthHandler(authService, sessions, log),
		Dashboard:   handler.NewDashboardHandler(dashboardService),
		Client:      handler.NewClientHandler(clientService, log),
		Category:    handler.NewCategoryHandler(clientService, log),
		Export:      handler.NewExportHandler(exportService, log),
		Maintenance: handler.NewMaintenanceHandler(maintenanceService, log),
		User:        handler.NewUserHandler(userService, log),
	})

	addr := ":" + cfg.ServerPort
	log.Info().Str("addr", addr).Msg("starting server")
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server start")
	}
}
