package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/timesheet-tracker/backend/internal/config"
	"github.com/timesheet-tracker/backend/internal/db"
	apphttp "github.com/timesheet-tracker/backend/internal/http"
	"github.com/timesheet-tracker/backend/internal/http/handlers"
	"github.com/timesheet-tracker/backend/internal/repositories"
	"github.com/timesheet-tracker/backend/internal/services"
	"go.uber.org/zap"
)

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	cfg.Validate(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	// Run migrations
	if err := db.RunMigrations(ctx, pool, "migrations", log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Redis
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	// Repositories
	userRepo := repositories.NewUserRepo(pool)
	projectRepo := repositories.NewProjectRepo(pool)
	entryRepo := repositories.NewEntryRepo(pool)
	approvalRepo := repositories.NewApprovalRepo(pool)
	auditRepo := repositories.NewAuditRepo(pool)
	settingsRepo := repositories.NewSettingsRepo(pool)

	// Services
	settingsService := services.NewSettingsService(pool, settingsRepo, auditRepo, log)
	authService := services.NewAuthService(pool, userRepo, auditRepo, settingsService, cfg, log)
	entryService := services.NewEntryService(pool, entryRepo, projectRepo, auditRepo, approvalRepo, settingsService, log)
	userService := services.NewUserService(pool, userRepo, auditRepo, cfg.BcryptCost, log)
	projectService := services.NewProjectService(pool, projectRepo, auditRepo, log)
	auditService := services.NewAuditService(auditRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, log)
	entryHandler := handlers.NewEntryHandler(entryService, log)
	approvalHandler := handlers.NewApprovalHandler(entryService, userService, log)
	adminHandler := handlers.NewAdminHandler(userService, projectService, settingsService, auditService, log)

	// Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	apphttp.SetupRoutes(app, cfg, rdb, log, authHandler, entryHandler, approvalHandler, adminHandler)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")
		cancel()
		_ = app.Shutdown()
	}()

	addr := fmt.Sprintf(":%s", cfg.APIPort)
	log.Info("starting API server", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
