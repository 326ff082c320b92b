package services

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/timesheet-tracker/backend/internal/apperr"
	"github.com/timesheet-tracker/backend/internal/models"
	"github.com/timesheet-tracker/backend/internal/rbac"
	"github.com/timesheet-tracker/backend/internal/repositories"
	"go.uber.org/zap"
)

// LimitsProvider supplies the validation bounds current at call time.
// *SettingsService is the production implementation.
type LimitsProvider interface {
	EntryLimits(ctx context.Context) (models.EntryLimits, error)
}

// EntryService owns the timesheet entry lifecycle. Every mutation runs as
// one transaction: lock the row, decide authorization, validate the
// transition, write the new state plus its audit (and approval) records.
// Two concurrent reviews of the same entry therefore serialize, and the
// loser sees the already-changed status.
type EntryService struct {
	pool         TxBeginner
	entryRepo    repositories.EntryStore
	projectRepo  repositories.ProjectStore
	auditRepo    repositories.AuditStore
	approvalRepo repositories.ApprovalStore
	settings     LimitsProvider
	log          *zap.Logger
}

func NewEntryService(
	pool TxBeginner,
	entryRepo repositories.EntryStore,
	projectRepo repositories.ProjectStore,
	auditRepo repositories.AuditStore,
	approvalRepo repositories.ApprovalStore,
	settings LimitsProvider,
	log *zap.Logger,
) *EntryService {
	return &EntryService{
		pool:         pool,
		entryRepo:    entryRepo,
		projectRepo:  projectRepo,
		auditRepo:    auditRepo,
		approvalRepo: approvalRepo,
		settings:     settings,
		log:          log,
	}
}

func (s *EntryService) Create(ctx context.Context, actor Actor, in CreateEntryInput) (*models.TimesheetEntry, error) {
	limits, err := s.settings.EntryLimits(ctx)
	if err != nil {
		return nil, err
	}
	if verr := validateCreateEntry(in, limits); verr != nil {
		return nil, verr
	}

	var entry *models.TimesheetEntry
	err = withTx(ctx, s.pool, func(tx pgx.Tx) error {
		assigned, err := s.projectRepo.WithTx(tx).IsAssigned(ctx, in.ProjectID, actor.ID)
		if err != nil {
			return apperr.Internal(err)
		}
		if !assigned {
			return apperr.Forbidden("project not assigned to you")
		}

		entry = &models.TimesheetEntry{
			UserID:      actor.ID,
			ProjectID:   in.ProjectID,
			EntryDate:   in.EntryDate,
			Hours:       in.Hours,
			Description: in.Description,
			Status:      models.EntryStatusDraft,
		}
		if err := s.entryRepo.WithTx(tx).Create(ctx, entry); err != nil {
			if repositories.IsUniqueViolation(err) {
				return apperr.Conflict("entry for this date and project already exists")
			}
			if repositories.IsForeignKeyViolation(err) {
				return apperr.NotFound("project not found")
			}
			return apperr.Internal(err)
		}

		return s.audit(ctx, tx, actor, models.ActionCreateEntry, entry.ID, nil, entry)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *EntryService) Update(ctx context.Context, actor Actor, id int64, in UpdateEntryInput) (*models.TimesheetEntry, error) {
	limits, err := s.settings.EntryLimits(ctx)
	if err != nil {
		return nil, err
	}
	if verr := validateUpdateEntry(in, limits); verr != nil {
		return nil, verr
	}

	var updated *models.TimesheetEntry
	err = withTx(ctx, s.pool, func(tx pgx.Tx) error {
		entryRepo := s.entryRepo.WithTx(tx)
		entry, _, err := entryRepo.GetForReview(ctx, id)
		if err != nil {
			return entryLookupErr(err)
		}
		if !rbac.CanModifyEntry(actor.Role, actor.ID, entry.UserID) {
			return apperr.Forbidden("access denied")
		}
		if !models.IsEditable(entry.Status) {
			return apperr.InvalidTransition("can only edit draft or rejected entries", entry.Status)
		}
		if in.ProjectID != nil && *in.ProjectID != entry.ProjectID {
			assigned, err := s.projectRepo.WithTx(tx).IsAssigned(ctx, *in.ProjectID, entry.UserID)
			if err != nil {
				return apperr.Internal(err)
			}
			if !assigned {
				return apperr.Forbidden("project not assigned to you")
			}
		}

		updated, err = entryRepo.Update(ctx, id, repositories.EntryUpdate{
			ProjectID:   in.ProjectID,
			EntryDate:   in.EntryDate,
			Hours:       in.Hours,
			Description: in.Description,
		})
		if err != nil {
			if repositories.IsUniqueViolation(err) {
				return apperr.Conflict("entry for this date and project already exists")
			}
			return apperr.Internal(err)
		}

		return s.audit(ctx, tx, actor, models.ActionUpdateEntry, id, entry, updated)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *EntryService) Submit(ctx context.Context, actor Actor, id int64) (*models.TimesheetEntry, error) {
	var submitted *models.TimesheetEntry
	err := withTx(ctx, s.pool, func(tx pgx.Tx) error {
		entryRepo := s.entryRepo.WithTx(tx)
		entry, _, err := entryRepo.GetForReview(ctx, id)
		if err != nil {
			return entryLookupErr(err)
		}
		if !rbac.CanModifyEntry(actor.Role, actor.ID, entry.UserID) {
			return apperr.Forbidden("access denied")
		}
		if !models.IsValidTransition(entry.Status, models.EntryStatusSubmitted) {
			return apperr.InvalidTransition("can only submit draft or rejected entries", entry.Status)
		}

		submitted, err = entryRepo.MarkSubmitted(ctx, id)
		if err != nil {
			return apperr.Internal(err)
		}

		return s.audit(ctx, tx, actor, models.ActionSubmitEntry, id, entry, submitted)
	})
	if err != nil {
		return nil, err
	}
	return submitted, nil
}

func (s *EntryService) Delete(ctx context.Context, actor Actor, id int64) error {
	return withTx(ctx, s.pool, func(tx pgx.Tx) error {
		entryRepo := s.entryRepo.WithTx(tx)
		entry, _, err := entryRepo.GetForReview(ctx, id)
		if err != nil {
			return entryLookupErr(err)
		}
		if !rbac.CanModifyEntry(actor.Role, actor.ID, entry.UserID) {
			return apperr.Forbidden("access denied")
		}
		if !models.IsDeletable(entry.Status) {
			return apperr.InvalidTransition("can only delete draft entries", entry.Status)
		}

		if err := entryRepo.Delete(ctx, id); err != nil {
			return apperr.Internal(err)
		}

		return s.audit(ctx, tx, actor, models.ActionDeleteEntry, id, entry, nil)
	})
}

func (s *EntryService) Approve(ctx context.Context, actor Actor, id int64, comments string) (*models.TimesheetEntry, error) {
	if comments == "" {
		comments = "Approved"
	}
	return s.review(ctx, actor, id, models.EntryStatusApproved, models.ActionApproveEntry, comments)
}

func (s *EntryService) Reject(ctx context.Context, actor Actor, id int64, comments string) (*models.TimesheetEntry, error) {
	if comments == "" {
		return nil, apperr.Validation(apperr.FieldError{Field: "comments", Message: "comments are required to reject"})
	}
	return s.review(ctx, actor, id, models.EntryStatusRejected, models.ActionRejectEntry, comments)
}

// review performs the approve/reject transition plus both log writes as a
// single unit of work.
func (s *EntryService) review(ctx context.Context, actor Actor, id int64, newStatus, action, comments string) (*models.TimesheetEntry, error) {
	var reviewed *models.TimesheetEntry
	err := withTx(ctx, s.pool, func(tx pgx.Tx) error {
		entryRepo := s.entryRepo.WithTx(tx)
		entry, ownerManagerID, err := entryRepo.GetForReview(ctx, id)
		if err != nil {
			return entryLookupErr(err)
		}
		if !rbac.CanReviewEntry(actor.Role, actor.ID, ownerManagerID) {
			return apperr.Forbidden("access denied")
		}
		if !models.IsValidTransition(entry.Status, newStatus) {
			return apperr.InvalidTransition("can only review submitted entries", entry.Status)
		}

		reviewed, err = entryRepo.MarkReviewed(ctx, id, newStatus, actor.ID, comments)
		if err != nil {
			return apperr.Internal(err)
		}

		approval := &models.ApprovalLog{
			EntryID:   id,
			ManagerID: actor.ID,
			Action:    newStatus,
			Comments:  &comments,
		}
		if err := s.approvalRepo.WithTx(tx).Record(ctx, approval); err != nil {
			return apperr.Internal(err)
		}

		return s.audit(ctx, tx, actor, action, id, entry, reviewed)
	})
	if err != nil {
		return nil, err
	}
	return reviewed, nil
}

func (s *EntryService) Get(ctx context.Context, actor Actor, id int64) (*models.TimesheetEntry, error) {
	entry, ownerManagerID, err := s.entryRepo.GetWithManager(ctx, id)
	if err != nil {
		return nil, entryLookupErr(err)
	}
	if !rbac.CanViewEntry(actor.Role, actor.ID, entry.UserID, ownerManagerID) {
		return nil, apperr.Forbidden("access denied")
	}
	return entry, nil
}

func (s *EntryService) ListOwn(ctx context.Context, actor Actor, f repositories.EntryFilter) ([]models.EntryWithProject, error) {
	entries, err := s.entryRepo.ListForUser(ctx, actor.ID, f)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return entries, nil
}

// ListTeam returns the entries of the actor's direct reports.
func (s *EntryService) ListTeam(ctx context.Context, actor Actor, f repositories.EntryFilter) ([]models.TeamEntry, error) {
	entries, err := s.entryRepo.ListForTeam(ctx, actor.ID, f)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return entries, nil
}

func (s *EntryService) ListPending(ctx context.Context, actor Actor) ([]models.TeamEntry, error) {
	entries, err := s.entryRepo.ListPendingForManager(ctx, actor.ID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return entries, nil
}

func (s *EntryService) ApprovalHistory(ctx context.Context, actor Actor, id int64) ([]models.ApprovalLog, error) {
	entry, ownerManagerID, err := s.entryRepo.GetWithManager(ctx, id)
	if err != nil {
		return nil, entryLookupErr(err)
	}
	if !rbac.CanViewEntry(actor.Role, actor.ID, entry.UserID, ownerManagerID) {
		return nil, apperr.Forbidden("access denied")
	}
	logs, err := s.approvalRepo.ListByEntry(ctx, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return logs, nil
}

func (s *EntryService) audit(ctx context.Context, tx pgx.Tx, actor Actor, action string, entryID int64, oldEntry, newEntry *models.TimesheetEntry) error {
	var oldVals, newVals []byte
	var err error
	if oldEntry != nil {
		if oldVals, err = snapshot(oldEntry); err != nil {
			return err
		}
	}
	if newEntry != nil {
		if newVals, err = snapshot(newEntry); err != nil {
			return err
		}
	}
	actorID := actor.ID
	if err := s.auditRepo.WithTx(tx).Record(ctx, models.AuditLog{
		UserID:     &actorID,
		Action:     action,
		EntityType: models.EntityTimesheet,
		EntityID:   &entryID,
		OldValues:  oldVals,
		NewValues:  newVals,
		IPAddress:  actor.ipPtr(),
	}); err != nil {
		s.log.Error("audit write failed, rolling back", zap.String("action", action), zap.Error(err))
		return apperr.Internal(err)
	}
	return nil
}

// entryLookupErr maps a fetch failure: missing row first, then store error.
func entryLookupErr(err error) error {
	if repositories.IsNoRows(err) {
		return apperr.NotFound("entry not found")
	}
	return apperr.Internal(err)
}
