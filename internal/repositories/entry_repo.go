package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/timesheet-tracker/backend/internal/models"
)

type EntryRepo struct {
	db DBTX
}

func NewEntryRepo(db DBTX) *EntryRepo {
	return &EntryRepo{db: db}
}

// WithTx returns a copy of the repo bound to the given transaction.
func (r *EntryRepo) WithTx(tx pgx.Tx) EntryStore {
	return &EntryRepo{db: tx}
}

const entryColumns = `id, user_id, project_id, entry_date, hours, description, status,
	submitted_at, reviewed_at, reviewed_by, reviewer_comments, created_at, updated_at`

func scanEntry(row pgx.Row, e *models.TimesheetEntry) error {
	return row.Scan(&e.ID, &e.UserID, &e.ProjectID, &e.EntryDate, &e.Hours, &e.Description, &e.Status,
		&e.SubmittedAt, &e.ReviewedAt, &e.ReviewedBy, &e.ReviewerComments, &e.CreatedAt, &e.UpdatedAt)
}

func (r *EntryRepo) Create(ctx context.Context, e *models.TimesheetEntry) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO timesheet_entries (user_id, project_id, entry_date, hours, description, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, e.UserID, e.ProjectID, e.EntryDate, e.Hours, e.Description, e.Status,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
}

func (r *EntryRepo) GetByID(ctx context.Context, id int64) (*models.TimesheetEntry, error) {
	var e models.TimesheetEntry
	err := scanEntry(r.db.QueryRow(ctx, `
		SELECT `+entryColumns+` FROM timesheet_entries WHERE id = $1
	`, id), &e)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// GetForReview locks the entry row for the rest of the transaction and
// returns it together with the owner's manager reference, so transition
// validation and the authorization decision run against a stable row.
func (r *EntryRepo) GetForReview(ctx context.Context, id int64) (*models.TimesheetEntry, *int64, error) {
	var e models.TimesheetEntry
	var managerID *int64
	err := r.db.QueryRow(ctx, `
		SELECT te.id, te.user_id, te.project_id, te.entry_date, te.hours, te.description, te.status,
		       te.submitted_at, te.reviewed_at, te.reviewed_by, te.reviewer_comments, te.created_at, te.updated_at,
		       u.manager_id
		FROM timesheet_entries te
		JOIN users u ON u.id = te.user_id
		WHERE te.id = $1
		FOR UPDATE OF te
	`, id).Scan(&e.ID, &e.UserID, &e.ProjectID, &e.EntryDate, &e.Hours, &e.Description, &e.Status,
		&e.SubmittedAt, &e.ReviewedAt, &e.ReviewedBy, &e.ReviewerComments, &e.CreatedAt, &e.UpdatedAt,
		&managerID)
	if err != nil {
		return nil, nil, err
	}
	return &e, managerID, nil
}

// GetWithManager is the read-path variant of GetForReview: same row plus
// the owner's manager reference, without the row lock.
func (r *EntryRepo) GetWithManager(ctx context.Context, id int64) (*models.TimesheetEntry, *int64, error) {
	var e models.TimesheetEntry
	var managerID *int64
	err := r.db.QueryRow(ctx, `
		SELECT te.id, te.user_id, te.project_id, te.entry_date, te.hours, te.description, te.status,
		       te.submitted_at, te.reviewed_at, te.reviewed_by, te.reviewer_comments, te.created_at, te.updated_at,
		       u.manager_id
		FROM timesheet_entries te
		JOIN users u ON u.id = te.user_id
		WHERE te.id = $1
	`, id).Scan(&e.ID, &e.UserID, &e.ProjectID, &e.EntryDate, &e.Hours, &e.Description, &e.Status,
		&e.SubmittedAt, &e.ReviewedAt, &e.ReviewedBy, &e.ReviewerComments, &e.CreatedAt, &e.UpdatedAt,
		&managerID)
	if err != nil {
		return nil, nil, err
	}
	return &e, managerID, nil
}

type EntryUpdate struct {
	ProjectID   *int64
	EntryDate   *time.Time
	Hours       *float64
	Description *string
}

func (r *EntryRepo) Update(ctx context.Context, id int64, u EntryUpdate) (*models.TimesheetEntry, error) {
	sets := []string{}
	args := []any{}
	argIdx := 1

	if u.ProjectID != nil {
		sets = append(sets, fmt.Sprintf("project_id = $%d", argIdx))
		args = append(args, *u.ProjectID)
		argIdx++
	}
	if u.EntryDate != nil {
		sets = append(sets, fmt.Sprintf("entry_date = $%d", argIdx))
		args = append(args, *u.EntryDate)
		argIdx++
	}
	if u.Hours != nil {
		sets = append(sets, fmt.Sprintf("hours = $%d", argIdx))
		args = append(args, *u.Hours)
		argIdx++
	}
	if u.Description != nil {
		sets = append(sets, fmt.Sprintf("description = $%d", argIdx))
		args = append(args, *u.Description)
		argIdx++
	}

	sets = append(sets, "updated_at = now()")
	args = append(args, id)

	var e models.TimesheetEntry
	query := fmt.Sprintf(`
		UPDATE timesheet_entries SET %s WHERE id = $%d
		RETURNING `+entryColumns, strings.Join(sets, ", "), argIdx)
	if err := scanEntry(r.db.QueryRow(ctx, query, args...), &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EntryRepo) MarkSubmitted(ctx context.Context, id int64) (*models.TimesheetEntry, error) {
	var e models.TimesheetEntry
	err := scanEntry(r.db.QueryRow(ctx, `
		UPDATE timesheet_entries
		SET status = $1, submitted_at = now(), updated_at = now()
		WHERE id = $2
		RETURNING `+entryColumns, models.EntryStatusSubmitted, id), &e)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// MarkReviewed records an approve/reject decision on the entry row itself.
func (r *EntryRepo) MarkReviewed(ctx context.Context, id int64, status string, reviewerID int64, comments string) (*models.TimesheetEntry, error) {
	var e models.TimesheetEntry
	err := scanEntry(r.db.QueryRow(ctx, `
		UPDATE timesheet_entries
		SET status = $1, reviewed_by = $2, reviewed_at = now(), reviewer_comments = $3, updated_at = now()
		WHERE id = $4
		RETURNING `+entryColumns, status, reviewerID, comments, id), &e)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EntryRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM timesheet_entries WHERE id = $1`, id)
	return err
}

type EntryFilter struct {
	Status     *string
	FromDate   *time.Time
	ToDate     *time.Time
	EmployeeID *int64
}

func (f EntryFilter) where(prefix string, args *[]any) string {
	clause := ""
	if f.Status != nil {
		*args = append(*args, *f.Status)
		clause += fmt.Sprintf(" AND %s.status = $%d", prefix, len(*args))
	}
	if f.FromDate != nil {
		*args = append(*args, *f.FromDate)
		clause += fmt.Sprintf(" AND %s.entry_date >= $%d", prefix, len(*args))
	}
	if f.ToDate != nil {
		*args = append(*args, *f.ToDate)
		clause += fmt.Sprintf(" AND %s.entry_date <= $%d", prefix, len(*args))
	}
	if f.EmployeeID != nil {
		*args = append(*args, *f.EmployeeID)
		clause += fmt.Sprintf(" AND %s.user_id = $%d", prefix, len(*args))
	}
	return clause
}

// ListForUser returns the user's own entries, newest first.
func (r *EntryRepo) ListForUser(ctx context.Context, userID int64, f EntryFilter) ([]models.EntryWithProject, error) {
	args := []any{userID}
	query := `
		SELECT te.id, te.user_id, te.project_id, te.entry_date, te.hours, te.description, te.status,
		       te.submitted_at, te.reviewed_at, te.reviewed_by, te.reviewer_comments, te.created_at, te.updated_at,
		       p.code, p.name
		FROM timesheet_entries te
		JOIN projects p ON p.id = te.project_id
		WHERE te.user_id = $1` + f.where("te", &args) + `
		ORDER BY te.entry_date DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.EntryWithProject
	for rows.Next() {
		var e models.EntryWithProject
		if err := rows.Scan(&e.ID, &e.UserID, &e.ProjectID, &e.EntryDate, &e.Hours, &e.Description, &e.Status,
			&e.SubmittedAt, &e.ReviewedAt, &e.ReviewedBy, &e.ReviewerComments, &e.CreatedAt, &e.UpdatedAt,
			&e.ProjectCode, &e.ProjectName); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ListForTeam returns entries of the manager's direct reports.
func (r *EntryRepo) ListForTeam(ctx context.Context, managerID int64, f EntryFilter) ([]models.TeamEntry, error) {
	args := []any{managerID}
	query := `
		SELECT te.id, te.user_id, te.project_id, te.entry_date, te.hours, te.description, te.status,
		       te.submitted_at, te.reviewed_at, te.reviewed_by, te.reviewer_comments, te.created_at, te.updated_at,
		       p.code, p.name, u.name, u.email
		FROM timesheet_entries te
		JOIN users u ON u.id = te.user_id
		JOIN projects p ON p.id = te.project_id
		WHERE u.manager_id = $1` + f.where("te", &args) + `
		ORDER BY te.entry_date DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.TeamEntry
	for rows.Next() {
		var e models.TeamEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.ProjectID, &e.EntryDate, &e.Hours, &e.Description, &e.Status,
			&e.SubmittedAt, &e.ReviewedAt, &e.ReviewedBy, &e.ReviewerComments, &e.CreatedAt, &e.UpdatedAt,
			&e.ProjectCode, &e.ProjectName, &e.EmployeeName, &e.EmployeeEmail); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ListPendingForManager returns submitted entries awaiting this manager's
// review, oldest submission first so the queue drains in arrival order.
func (r *EntryRepo) ListPendingForManager(ctx context.Context, managerID int64) ([]models.TeamEntry, error) {
	query := `
		SELECT te.id, te.user_id, te.project_id, te.entry_date, te.hours, te.description, te.status,
		       te.submitted_at, te.reviewed_at, te.reviewed_by, te.reviewer_comments, te.created_at, te.updated_at,
		       p.code, p.name, u.name, u.email
		FROM timesheet_entries te
		JOIN users u ON u.id = te.user_id
		JOIN projects p ON p.id = te.project_id
		WHERE u.manager_id = $1 AND te.status = $2
		ORDER BY te.submitted_at ASC`

	rows, err := r.db.Query(ctx, query, managerID, models.EntryStatusSubmitted)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.TeamEntry
	for rows.Next() {
		var e models.TeamEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.ProjectID, &e.EntryDate, &e.Hours, &e.Description, &e.Status,
			&e.SubmittedAt, &e.ReviewedAt, &e.ReviewedBy, &e.ReviewerComments, &e.CreatedAt, &e.UpdatedAt,
			&e.ProjectCode, &e.ProjectName, &e.EmployeeName, &e.EmployeeEmail); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
