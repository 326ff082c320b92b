package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/timesheet-tracker/backend/internal/models"
)

type ProjectRepo struct {
	db DBTX
}

func NewProjectRepo(db DBTX) *ProjectRepo {
	return &ProjectRepo{db: db}
}

func (r *ProjectRepo) WithTx(tx pgx.Tx) ProjectStore {
	return &ProjectRepo{db: tx}
}

const projectColumns = `id, code, name, description, billing_rate, status, created_at, updated_at`

func scanProject(row pgx.Row, p *models.Project) error {
	return row.Scan(&p.ID, &p.Code, &p.Name, &p.Description, &p.BillingRate,
		&p.Status, &p.CreatedAt, &p.UpdatedAt)
}

func (r *ProjectRepo) Create(ctx context.Context, p *models.Project) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO projects (code, name, description, billing_rate, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, p.Code, p.Name, p.Description, p.BillingRate, p.Status,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *ProjectRepo) GetByID(ctx context.Context, id int64) (*models.Project, error) {
	var p models.Project
	err := scanProject(r.db.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id), &p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProjectRepo) List(ctx context.Context, status *string) ([]models.Project, error) {
	args := []any{}
	query := `SELECT ` + projectColumns + ` FROM projects WHERE 1=1`
	if status != nil {
		args = append(args, *status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var p models.Project
		if err := scanProject(rows, &p); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

type ProjectUpdate struct {
	Name        *string
	Description *string
	BillingRate *float64
	Status      *string
}

func (r *ProjectRepo) Update(ctx context.Context, id int64, u ProjectUpdate) (*models.Project, error) {
	sets := []string{}
	args := []any{}

	add := func(col string, val any) {
		args = append(args, val)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if u.Name != nil {
		add("name", *u.Name)
	}
	if u.Description != nil {
		add("description", *u.Description)
	}
	if u.BillingRate != nil {
		add("billing_rate", *u.BillingRate)
	}
	if u.Status != nil {
		add("status", *u.Status)
	}

	sets = append(sets, "updated_at = now()")
	args = append(args, id)

	var p models.Project
	query := fmt.Sprintf(`UPDATE projects SET %s WHERE id = $%d RETURNING `+projectColumns,
		strings.Join(sets, ", "), len(args))
	if err := scanProject(r.db.QueryRow(ctx, query, args...), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProjectRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// IsAssigned reports whether the user may log time against the project.
func (r *ProjectRepo) IsAssigned(ctx context.Context, projectID, userID int64) (bool, error) {
	var assigned bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM project_assignments WHERE project_id = $1 AND user_id = $2
		)
	`, projectID, userID).Scan(&assigned)
	return assigned, err
}

func (r *ProjectRepo) AssignedUserIDs(ctx context.Context, projectID int64) ([]int64, error) {
	rows, err := r.db.Query(ctx, `
		SELECT user_id FROM project_assignments WHERE project_id = $1 ORDER BY user_id
	`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ReplaceAssignments rewrites the full assignment set for a project.
// Callers run this inside a transaction so readers never see a partial set.
func (r *ProjectRepo) ReplaceAssignments(ctx context.Context, projectID int64, userIDs []int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM project_assignments WHERE project_id = $1`, projectID); err != nil {
		return err
	}
	for _, userID := range userIDs {
		if _, err := r.db.Exec(ctx, `
			INSERT INTO project_assignments (project_id, user_id) VALUES ($1, $2)
			ON CONFLICT (project_id, user_id) DO NOTHING
		`, projectID, userID); err != nil {
			return err
		}
	}
	return nil
}
