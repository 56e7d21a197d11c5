// Command seed bootstraps the database: it ensures the default admin
// account exists and optionally imports sample clients from a local CSV
// file passed as the first argument.
package main

import (
	"context"
	"errors"
	"flag"
	"os"

	"clientdesk/internal/auth"
	"clientdesk/internal/config"
	"clientdesk/internal/db"
	errs "clientdesk/internal/errors"
	"clientdesk/internal/logger"
	"clientdesk/internal/model"
	"clientdesk/internal/repository"
	"clientdesk/internal/service"
)

func main() {
	flag.Parse()
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

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

	userRepo := repository.NewUserRepository(manager)

	adminPassword := os.Getenv("SEED_ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "admin123"
	}
	admin := &model.User{
		Username:     "admin",
		PasswordHash: auth.HashPassword(adminPassword),
		Email:        "admin@localhost",
		FullName:     "Administrator",
		Role:         model.RoleAdmin,
		IsActive:     true,
	}
	switch err := userRepo.Create(ctx, admin); {
	case err == nil:
		log.Info().Str("username", admin.Username).Msg("admin account created")
	case errors.Is(err, errs.ErrDuplicateUsername):
		log.Info().Str("username", admin.Username).Msg("admin account already exists")
	default:
		log.Fatal().Err(err).Msg("create admin account")
	}

	if flag.NArg() == 0 {
		return
	}

	path := flag.Arg(0)
	f, err := os.Open(path)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("open sample clients file")
	}
	defer f.Close()

	clientRepo := repository.NewClientRepository(manager)
	dashboard := service.NewDashboardService(clientRepo, nil, log)
	clients := service.NewClientService(clientRepo, dashboard, log)

	imported, err := clients.ImportCSV(ctx, f)
	if err != nil {
		log.Fatal().Err(err).Msg("import sample clients")
	}
	log.Info().Int("count", imported).Str("path", path).Msg("sample clients imported")
}
