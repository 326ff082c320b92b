package services

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/timesheet-tracker/backend/internal/apperr"
	"github.com/timesheet-tracker/backend/internal/auth"
	"github.com/timesheet-tracker/backend/internal/config"
	"github.com/timesheet-tracker/backend/internal/models"
	"github.com/timesheet-tracker/backend/internal/repositories"
	"go.uber.org/zap"
)

type AuthService struct {
	pool      *pgxpool.Pool
	userRepo  *repositories.UserRepo
	auditRepo *repositories.AuditRepo
	settings  *SettingsService
	cfg       *config.Config
	log       *zap.Logger
}

func NewAuthService(pool *pgxpool.Pool, userRepo *repositories.UserRepo, auditRepo *repositories.AuditRepo, settings *SettingsService, cfg *config.Config, log *zap.Logger) *AuthService {
	return &AuthService{pool: pool, userRepo: userRepo, auditRepo: auditRepo, settings: settings, cfg: cfg, log: log}
}

// Login verifies credentials against an active account and issues a token.
// The token lifetime follows the session_timeout_ms setting at login time.
// The login audit record is the operation's only mutation, so its failure
// fails the login.
func (s *AuthService) Login(ctx context.Context, email, password, ip string) (string, *models.User, error) {
	if email == "" || password == "" {
		return "", nil, apperr.Validation(
			apperr.FieldError{Field: "email", Message: "email and password are required"},
		)
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if repositories.IsNoRows(err) {
			return "", nil, apperr.Unauthorized("invalid credentials")
		}
		return "", nil, apperr.Internal(err)
	}
	if user.Status != models.StatusActive || !auth.ComparePassword(password, user.Password) {
		return "", nil, apperr.Unauthorized("invalid credentials")
	}

	actor := Actor{ID: user.ID, Role: user.Role, IP: ip}
	if err := s.auditAuth(ctx, actor, models.ActionLogin); err != nil {
		return "", nil, err
	}

	expiration := s.settings.SessionTimeout(ctx, s.cfg.JWTExpiration)
	token, err := auth.GenerateJWT(s.cfg.JWTSecret, user.ID, user.Role, user.Email, expiration)
	if err != nil {
		return "", nil, apperr.Internal(err)
	}
	return token, user, nil
}

// Logout only audits; tokens are stateless and expire on their own.
func (s *AuthService) Logout(ctx context.Context, actor Actor) error {
	return s.auditAuth(ctx, actor, models.ActionLogout)
}

func (s *AuthService) ChangePassword(ctx context.Context, actor Actor, currentPassword, newPassword string) error {
	if len(newPassword) < 6 {
		return apperr.Validation(apperr.FieldError{Field: "new_password", Message: "password must be at least 6 characters"})
	}

	user, err := s.userRepo.GetByID(ctx, actor.ID)
	if err != nil {
		return userLookupErr(err)
	}
	if !auth.ComparePassword(currentPassword, user.Password) {
		return apperr.Unauthorized("current password is incorrect")
	}

	hash, err := auth.HashPassword(newPassword, s.cfg.BcryptCost)
	if err != nil {
		return apperr.Internal(err)
	}

	return withTx(ctx, s.pool, func(tx pgx.Tx) error {
		if err := s.userRepo.WithTx(tx).UpdatePassword(ctx, actor.ID, hash); err != nil {
			return apperr.Internal(err)
		}
		actorID := actor.ID
		if err := s.auditRepo.WithTx(tx).Record(ctx, models.AuditLog{
			UserID:     &actorID,
			Action:     models.ActionChangePassword,
			EntityType: models.EntityUser,
			EntityID:   &actorID,
			IPAddress:  actor.ipPtr(),
		}); err != nil {
			return apperr.Internal(err)
		}
		return nil
	})
}

func (s *AuthService) Me(ctx context.Context, actor Actor) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, userLookupErr(err)
	}
	return user, nil
}

func (s *AuthService) auditAuth(ctx context.Context, actor Actor, action string) error {
	actorID := actor.ID
	if err := s.auditRepo.Record(ctx, models.AuditLog{
		UserID:     &actorID,
		Action:     action,
		EntityType: models.EntityUser,
		IPAddress:  actor.ipPtr(),
	}); err != nil {
		s.log.Error("audit write failed", zap.String("action", action), zap.Error(err))
		return apperr.Internal(err)
	}
	return nil
}
