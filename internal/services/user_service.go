package services

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/timesheet-tracker/backend/internal/apperr"
	"github.com/timesheet-tracker/backend/internal/auth"
	"github.com/timesheet-tracker/backend/internal/models"
	"github.com/timesheet-tracker/backend/internal/rbac"
	"github.com/timesheet-tracker/backend/internal/repositories"
	"go.uber.org/zap"
)

type UserService struct {
	pool       *pgxpool.Pool
	userRepo   *repositories.UserRepo
	auditRepo  *repositories.AuditRepo
	bcryptCost int
	log        *zap.Logger
}

func NewUserService(pool *pgxpool.Pool, userRepo *repositories.UserRepo, auditRepo *repositories.AuditRepo, bcryptCost int, log *zap.Logger) *UserService {
	return &UserService{pool: pool, userRepo: userRepo, auditRepo: auditRepo, bcryptCost: bcryptCost, log: log}
}

func (s *UserService) Create(ctx context.Context, actor Actor, in CreateUserInput) (*models.User, error) {
	if verr := validateCreateUser(in); verr != nil {
		return nil, verr
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	user := &models.User{
		Name:       in.Name,
		Email:      in.Email,
		Password:   hash,
		Role:       in.Role,
		Department: in.Department,
		ManagerID:  in.ManagerID,
		Status:     models.StatusActive,
	}

	err = withTx(ctx, s.pool, func(tx pgx.Tx) error {
		userRepo := s.userRepo.WithTx(tx)
		if in.ManagerID != nil {
			if err := s.checkManagerRef(ctx, userRepo, *in.ManagerID); err != nil {
				return err
			}
		}
		if err := userRepo.Create(ctx, user); err != nil {
			if repositories.IsUniqueViolation(err) {
				return apperr.Conflict("email already exists")
			}
			return apperr.Internal(err)
		}
		return s.audit(ctx, tx, actor, models.ActionCreateUser, user.ID, nil, user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Update(ctx context.Context, actor Actor, id int64, in UpdateUserInput) (*models.User, error) {
	if verr := validateUpdateUser(in); verr != nil {
		return nil, verr
	}

	update := repositories.UserUpdate{
		Name:         in.Name,
		Email:        in.Email,
		Role:         in.Role,
		Department:   in.Department,
		ManagerID:    in.ManagerID,
		ClearManager: in.ClearManager,
		Status:       in.Status,
	}
	if update.Empty() {
		return nil, apperr.Validation(apperr.FieldError{Field: "body", Message: "no fields to update"})
	}

	// Deactivation through update is subject to the same self-guard as the
	// dedicated deactivate operation.
	if in.Status != nil && *in.Status == models.StatusInactive &&
		!rbac.CanDeactivateUser(actor.Role, actor.ID, id) {
		return nil, apperr.Forbidden("cannot deactivate your own account")
	}

	var updated *models.User
	err := withTx(ctx, s.pool, func(tx pgx.Tx) error {
		userRepo := s.userRepo.WithTx(tx)
		oldUser, err := userRepo.GetByID(ctx, id)
		if err != nil {
			return userLookupErr(err)
		}
		if in.ManagerID != nil {
			if *in.ManagerID == id {
				return apperr.Validation(apperr.FieldError{Field: "manager_id", Message: "user cannot be their own manager"})
			}
			if err := s.checkManagerRef(ctx, userRepo, *in.ManagerID); err != nil {
				return err
			}
		}

		updated, err = userRepo.Update(ctx, id, update)
		if err != nil {
			if repositories.IsUniqueViolation(err) {
				return apperr.Conflict("email already exists")
			}
			return apperr.Internal(err)
		}
		return s.audit(ctx, tx, actor, models.ActionUpdateUser, id, oldUser, updated)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Deactivate soft-deletes a user. Admins cannot deactivate themselves.
func (s *UserService) Deactivate(ctx context.Context, actor Actor, id int64) error {
	return withTx(ctx, s.pool, func(tx pgx.Tx) error {
		userRepo := s.userRepo.WithTx(tx)
		oldUser, err := userRepo.GetByID(ctx, id)
		if err != nil {
			return userLookupErr(err)
		}
		if !rbac.CanDeactivateUser(actor.Role, actor.ID, id) {
			return apperr.Forbidden("cannot deactivate your own account")
		}

		deactivated, err := userRepo.Deactivate(ctx, id)
		if err != nil {
			return apperr.Internal(err)
		}
		return s.audit(ctx, tx, actor, models.ActionDeactivateUser, id, oldUser, deactivated)
	})
}

func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, userLookupErr(err)
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context, f repositories.UserFilter) ([]models.User, error) {
	users, err := s.userRepo.List(ctx, f)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return users, nil
}

// TeamMembers returns the actor's active direct reports.
func (s *UserService) TeamMembers(ctx context.Context, actor Actor) ([]models.User, error) {
	users, err := s.userRepo.TeamMembers(ctx, actor.ID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return users, nil
}

// checkManagerRef enforces that a manager reference points to an active
// user who may hold reports, inside the same transaction as the write.
func (s *UserService) checkManagerRef(ctx context.Context, userRepo *repositories.UserRepo, managerID int64) error {
	manager, err := userRepo.GetByID(ctx, managerID)
	if err != nil {
		if repositories.IsNoRows(err) {
			return apperr.Validation(apperr.FieldError{Field: "manager_id", Message: "manager not found"})
		}
		return apperr.Internal(err)
	}
	if manager.Status != models.StatusActive || !manager.CanManage() {
		return apperr.Validation(apperr.FieldError{Field: "manager_id", Message: "manager must be an active manager or admin"})
	}
	return nil
}

func (s *UserService) audit(ctx context.Context, tx pgx.Tx, actor Actor, action string, userID int64, oldUser, newUser *models.User) error {
	var oldVals, newVals []byte
	var err error
	if oldUser != nil {
		if oldVals, err = snapshot(oldUser); err != nil {
			return err
		}
	}
	if newUser != nil {
		if newVals, err = snapshot(newUser); err != nil {
			return err
		}
	}
	actorID := actor.ID
	if err := s.auditRepo.WithTx(tx).Record(ctx, models.AuditLog{
		UserID:     &actorID,
		Action:     action,
		EntityType: models.EntityUser,
		EntityID:   &userID,
		OldValues:  oldVals,
		NewValues:  newVals,
		IPAddress:  actor.ipPtr(),
	}); err != nil {
		s.log.Error("audit write failed, rolling back", zap.String("action", action), zap.Error(err))
		return apperr.Internal(err)
	}
	return nil
}

func userLookupErr(err error) error {
	if repositories.IsNoRows(err) {
		return apperr.NotFound("user not found")
	}
	return apperr.Internal(err)
}
