package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/redis/go-redis/v9"
	"github.com/timesheet-tracker/backend/internal/config"
	"github.com/timesheet-tracker/backend/internal/http/handlers"
	"github.com/timesheet-tracker/backend/internal/middleware"
	"github.com/timesheet-tracker/backend/internal/rbac"
	"go.uber.org/zap"
)

// SetupRoutes wires the full route map. Route groups enforce coarse
// permission gates; ownership and state checks live in the services.
func SetupRoutes(
	app *fiber.App,
	cfg *config.Config,
	rdb *redis.Client,
	log *zap.Logger,
	authHandler *handlers.AuthHandler,
	entryHandler *handlers.EntryHandler,
	approvalHandler *handlers.ApprovalHandler,
	adminHandler *handlers.AdminHandler,
) {
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware(log))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")
	api.Use(middleware.RateLimitMiddleware(rdb, cfg.RateLimitPerMinute, time.Minute))

	api.Post("/auth/login", authHandler.Login)

	protected := api.Group("", middleware.AuthMiddleware(cfg, log))

	auth := protected.Group("/auth")
	auth.Post("/logout", authHandler.Logout)
	auth.Get("/me", authHandler.Me)
	auth.Post("/change-password", authHandler.ChangePassword)

	entries := protected.Group("/timesheets/entries")
	entries.Get("/", entryHandler.List)
	entries.Post("/", entryHandler.Create)
	entries.Get("/:id", entryHandler.Get)
	entries.Put("/:id", entryHandler.Update)
	entries.Delete("/:id", entryHandler.Delete)
	entries.Post("/:id/submit", entryHandler.Submit)
	entries.Get("/:id/history", entryHandler.History)

	approvals := protected.Group("/approvals", middleware.RequirePermission(rbac.PermReviewEntry))
	approvals.Get("/pending", approvalHandler.Pending)
	approvals.Get("/team-entries", approvalHandler.TeamEntries)
	approvals.Get("/team", approvalHandler.Team)
	approvals.Post("/entries/:id/approve", approvalHandler.Approve)
	approvals.Post("/entries/:id/reject", approvalHandler.Reject)

	admin := protected.Group("/admin")

	users := admin.Group("/users", middleware.RequirePermission(rbac.PermManageUsers))
	users.Get("/", adminHandler.ListUsers)
	users.Post("/", adminHandler.CreateUser)
	users.Get("/:id", adminHandler.GetUser)
	users.Put("/:id", adminHandler.UpdateUser)
	users.Delete("/:id", adminHandler.DeactivateUser)

	projects := admin.Group("/projects", middleware.RequirePermission(rbac.PermManageProjects))
	projects.Get("/", adminHandler.ListProjects)
	projects.Post("/", adminHandler.CreateProject)
	projects.Get("/:id", adminHandler.GetProject)
	projects.Put("/:id", adminHandler.UpdateProject)
	projects.Delete("/:id", adminHandler.DeleteProject)

	settings := admin.Group("/settings", middleware.RequirePermission(rbac.PermManageSettings))
	settings.Get("/", adminHandler.GetSettings)
	settings.Put("/", adminHandler.UpdateSettings)

	admin.Get("/audit-logs", middleware.RequirePermission(rbac.PermViewAuditLog), adminHandler.ListAuditLogs)
}
