package main

import (
	"context"
	"time"

	"github.com/timesheet-tracker/backend/internal/auth"
	"github.com/timesheet-tracker/backend/internal/config"
	"github.com/timesheet-tracker/backend/internal/db"
	"github.com/timesheet-tracker/backend/internal/models"
	"github.com/timesheet-tracker/backend/internal/repositories"
	"go.uber.org/zap"
)

// Seeds a fresh database with an admin, a manager with two reports and a
// pair of projects. Idempotent only on an empty database; rerunning against
// seeded data fails on the unique email constraint.
func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	if err := db.RunMigrations(ctx, pool, "migrations", log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	userRepo := repositories.NewUserRepo(pool)
	projectRepo := repositories.NewProjectRepo(pool)

	seedUser := func(name, email, password, role string, managerID *int64, department string) *models.User {
		hash, err := auth.HashPassword(password, cfg.BcryptCost)
		if err != nil {
			log.Fatal("failed to hash password", zap.Error(err))
		}
		u := &models.User{
			Name:       name,
			Email:      email,
			Password:   hash,
			Role:       role,
			Department: &department,
			ManagerID:  managerID,
			Status:     models.StatusActive,
		}
		if err := userRepo.Create(ctx, u); err != nil {
			log.Fatal("failed to create user", zap.String("email", email), zap.Error(err))
		}
		log.Info("created user", zap.String("email", email), zap.String("role", role))
		return u
	}

	admin := seedUser("Alice Admin", "admin@example.com", "admin123", models.RoleAdmin, nil, "Operations")
	manager := seedUser("Mark Manager", "manager@example.com", "manager123", models.RoleManager, &admin.ID, "Engineering")
	emp1 := seedUser("Eve Employee", "eve@example.com", "employee123", models.RoleEmployee, &manager.ID, "Engineering")
	emp2 := seedUser("Omar Employee", "omar@example.com", "employee123", models.RoleEmployee, &manager.ID, "Engineering")

	seedProject := func(code, name string, rate float64, assigned []int64) {
		p := &models.Project{
			Code:        code,
			Name:        name,
			BillingRate: rate,
			Status:      models.StatusActive,
		}
		if err := projectRepo.Create(ctx, p); err != nil {
			log.Fatal("failed to create project", zap.String("code", code), zap.Error(err))
		}
		if err := projectRepo.ReplaceAssignments(ctx, p.ID, assigned); err != nil {
			log.Fatal("failed to assign project", zap.String("code", code), zap.Error(err))
		}
		log.Info("created project", zap.String("code", code))
	}

	seedProject("INT-001", "Internal Tooling", 0, []int64{emp1.ID, emp2.ID, manager.ID})
	seedProject("CLI-042", "Client Platform", 150, []int64{emp1.ID})

	log.Info("seed complete")
}
