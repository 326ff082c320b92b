package services

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/timesheet-tracker/backend/internal/apperr"
	"github.com/timesheet-tracker/backend/internal/models"
	"github.com/timesheet-tracker/backend/internal/repositories"
	"go.uber.org/zap"
)

type ProjectService struct {
	pool        *pgxpool.Pool
	projectRepo *repositories.ProjectRepo
	auditRepo   *repositories.AuditRepo
	log         *zap.Logger
}

func NewProjectService(pool *pgxpool.Pool, projectRepo *repositories.ProjectRepo, auditRepo *repositories.AuditRepo, log *zap.Logger) *ProjectService {
	return &ProjectService{pool: pool, projectRepo: projectRepo, auditRepo: auditRepo, log: log}
}

func (s *ProjectService) Create(ctx context.Context, actor Actor, in CreateProjectInput) (*models.Project, error) {
	if verr := validateCreateProject(in); verr != nil {
		return nil, verr
	}

	project := &models.Project{
		Code:        in.Code,
		Name:        in.Name,
		Description: in.Description,
		BillingRate: in.BillingRate,
		Status:      models.StatusActive,
	}

	err := withTx(ctx, s.pool, func(tx pgx.Tx) error {
		projectRepo := s.projectRepo.WithTx(tx)
		if err := projectRepo.Create(ctx, project); err != nil {
			if repositories.IsUniqueViolation(err) {
				return apperr.Conflict("project code already exists")
			}
			return apperr.Internal(err)
		}
		if len(in.AssignedTo) > 0 {
			if err := projectRepo.ReplaceAssignments(ctx, project.ID, in.AssignedTo); err != nil {
				if repositories.IsForeignKeyViolation(err) {
					return apperr.Validation(apperr.FieldError{Field: "assigned_to", Message: "unknown user in assignment list"})
				}
				return apperr.Internal(err)
			}
		}
		return s.audit(ctx, tx, actor, models.ActionCreateProject, project.ID, nil, project)
	})
	if err != nil {
		return nil, err
	}
	return project, nil
}

// Update edits project fields and, when AssignedTo is non-nil, rewrites the
// full assignment set in the same transaction so concurrent readers never
// see a partially assigned project.
func (s *ProjectService) Update(ctx context.Context, actor Actor, id int64, in UpdateProjectInput) (*models.Project, error) {
	if verr := validateUpdateProject(in); verr != nil {
		return nil, verr
	}

	var updated *models.Project
	err := withTx(ctx, s.pool, func(tx pgx.Tx) error {
		projectRepo := s.projectRepo.WithTx(tx)
		oldProject, err := projectRepo.GetByID(ctx, id)
		if err != nil {
			return projectLookupErr(err)
		}

		if in.Name != nil || in.Description != nil || in.BillingRate != nil || in.Status != nil {
			updated, err = projectRepo.Update(ctx, id, repositories.ProjectUpdate{
				Name:        in.Name,
				Description: in.Description,
				BillingRate: in.BillingRate,
				Status:      in.Status,
			})
			if err != nil {
				return apperr.Internal(err)
			}
		} else {
			updated = oldProject
		}

		if in.AssignedTo != nil {
			if err := projectRepo.ReplaceAssignments(ctx, id, in.AssignedTo); err != nil {
				if repositories.IsForeignKeyViolation(err) {
					return apperr.Validation(apperr.FieldError{Field: "assigned_to", Message: "unknown user in assignment list"})
				}
				return apperr.Internal(err)
			}
		}

		return s.audit(ctx, tx, actor, models.ActionUpdateProject, id, oldProject, updated)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *ProjectService) Delete(ctx context.Context, actor Actor, id int64) error {
	return withTx(ctx, s.pool, func(tx pgx.Tx) error {
		projectRepo := s.projectRepo.WithTx(tx)
		oldProject, err := projectRepo.GetByID(ctx, id)
		if err != nil {
			return projectLookupErr(err)
		}
		deleted, err := projectRepo.Delete(ctx, id)
		if err != nil {
			return apperr.Internal(err)
		}
		if !deleted {
			return apperr.NotFound("project not found")
		}
		return s.audit(ctx, tx, actor, models.ActionDeleteProject, id, oldProject, nil)
	})
}

func (s *ProjectService) Get(ctx context.Context, id int64) (*models.ProjectWithAssignments, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, projectLookupErr(err)
	}
	assigned, err := s.projectRepo.AssignedUserIDs(ctx, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &models.ProjectWithAssignments{Project: *project, AssignedTo: assigned}, nil
}

func (s *ProjectService) List(ctx context.Context, status *string) ([]models.ProjectWithAssignments, error) {
	projects, err := s.projectRepo.List(ctx, status)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	out := make([]models.ProjectWithAssignments, 0, len(projects))
	for _, p := range projects {
		assigned, err := s.projectRepo.AssignedUserIDs(ctx, p.ID)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		out = append(out, models.ProjectWithAssignments{Project: p, AssignedTo: assigned})
	}
	return out, nil
}

func (s *ProjectService) audit(ctx context.Context, tx pgx.Tx, actor Actor, action string, projectID int64, oldProject, newProject *models.Project) error {
	var oldVals, newVals []byte
	var err error
	if oldProject != nil {
		if oldVals, err = snapshot(oldProject); err != nil {
			return err
		}
	}
	if newProject != nil {
		if newVals, err = snapshot(newProject); err != nil {
			return err
		}
	}
	actorID := actor.ID
	if err := s.auditRepo.WithTx(tx).Record(ctx, models.AuditLog{
		UserID:     &actorID,
		Action:     action,
		EntityType: models.EntityProject,
		EntityID:   &projectID,
		OldValues:  oldVals,
		NewValues:  newVals,
		IPAddress:  actor.ipPtr(),
	}); err != nil {
		s.log.Error("audit write failed, rolling back", zap.String("action", action), zap.Error(err))
		return apperr.Internal(err)
	}
	return nil
}

func projectLookupErr(err error) error {
	if repositories.IsNoRows(err) {
		return apperr.NotFound("project not found")
	}
	return apperr.Internal(err)
}
