package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/timesheet-tracker/backend/internal/models"
)

// Store interfaces decouple services from the concrete pgx repos so the
// lifecycle logic can be exercised without a database. WithTx returns a
// copy bound to the given transaction.

type EntryStore interface {
	WithTx(tx pgx.Tx) EntryStore
	Create(ctx context.Context, e *models.TimesheetEntry) error
	GetByID(ctx context.Context, id int64) (*models.TimesheetEntry, error)
	GetForReview(ctx context.Context, id int64) (*models.TimesheetEntry, *int64, error)
	GetWithManager(ctx context.Context, id int64) (*models.TimesheetEntry, *int64, error)
	Update(ctx context.Context, id int64, u EntryUpdate) (*models.TimesheetEntry, error)
	MarkSubmitted(ctx context.Context, id int64) (*models.TimesheetEntry, error)
	MarkReviewed(ctx context.Context, id int64, status string, reviewerID int64, comments string) (*models.TimesheetEntry, error)
	Delete(ctx context.Context, id int64) error
	ListForUser(ctx context.Context, userID int64, f EntryFilter) ([]models.EntryWithProject, error)
	ListForTeam(ctx context.Context, managerID int64, f EntryFilter) ([]models.TeamEntry, error)
	ListPendingForManager(ctx context.Context, managerID int64) ([]models.TeamEntry, error)
}

type ProjectStore interface {
	WithTx(tx pgx.Tx) ProjectStore
	Create(ctx context.Context, p *models.Project) error
	GetByID(ctx context.Context, id int64) (*models.Project, error)
	List(ctx context.Context, status *string) ([]models.Project, error)
	Update(ctx context.Context, id int64, u ProjectUpdate) (*models.Project, error)
	Delete(ctx context.Context, id int64) (bool, error)
	IsAssigned(ctx context.Context, projectID, userID int64) (bool, error)
	AssignedUserIDs(ctx context.Context, projectID int64) ([]int64, error)
	ReplaceAssignments(ctx context.Context, projectID int64, userIDs []int64) error
}

type AuditStore interface {
	WithTx(tx pgx.Tx) AuditStore
	Record(ctx context.Context, entry models.AuditLog) error
	List(ctx context.Context, f AuditFilter) ([]models.AuditLog, error)
}

type ApprovalStore interface {
	WithTx(tx pgx.Tx) ApprovalStore
	Record(ctx context.Context, l *models.ApprovalLog) error
	ListByEntry(ctx context.Context, entryID int64) ([]models.ApprovalLog, error)
}

var (
	_ EntryStore    = (*EntryRepo)(nil)
	_ ProjectStore  = (*ProjectRepo)(nil)
	_ AuditStore    = (*AuditRepo)(nil)
	_ ApprovalStore = (*ApprovalRepo)(nil)
)
