package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/timesheet-tracker/backend/internal/models"
)

type UserRepo struct {
	db DBTX
}

func NewUserRepo(db DBTX) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) WithTx(tx pgx.Tx) *UserRepo {
	return &UserRepo{db: tx}
}

const userColumns = `id, name, email, password, role, department, manager_id, status, created_at, updated_at`

func scanUser(row pgx.Row, u *models.User) error {
	return row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Role, &u.Department,
		&u.ManagerID, &u.Status, &u.CreatedAt, &u.UpdatedAt)
}

func (r *UserRepo) Create(ctx context.Context, u *models.User) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO users (name, email, password, role, department, manager_id, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, u.Name, u.Email, u.Password, u.Role, u.Department, u.ManagerID, u.Status,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id), &u)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email), &u)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

type UserFilter struct {
	Role   *string
	Status *string
}

func (r *UserRepo) List(ctx context.Context, f UserFilter) ([]models.User, error) {
	args := []any{}
	query := `SELECT ` + userColumns + ` FROM users WHERE 1=1`
	if f.Role != nil {
		args = append(args, *f.Role)
		query += fmt.Sprintf(" AND role = $%d", len(args))
	}
	if f.Status != nil {
		args = append(args, *f.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := scanUser(rows, &u); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

type UserUpdate struct {
	Name         *string
	Email        *string
	Role         *string
	Department   *string
	ManagerID    *int64
	ClearManager bool
	Status       *string
}

func (u UserUpdate) Empty() bool {
	return u.Name == nil && u.Email == nil && u.Role == nil &&
		u.Department == nil && u.ManagerID == nil && !u.ClearManager && u.Status == nil
}

func (r *UserRepo) Update(ctx context.Context, id int64, u UserUpdate) (*models.User, error) {
	sets := []string{}
	args := []any{}

	add := func(col string, val any) {
		args = append(args, val)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if u.Name != nil {
		add("name", *u.Name)
	}
	if u.Email != nil {
		add("email", *u.Email)
	}
	if u.Role != nil {
		add("role", *u.Role)
	}
	if u.Department != nil {
		add("department", *u.Department)
	}
	if u.ManagerID != nil {
		add("manager_id", *u.ManagerID)
	} else if u.ClearManager {
		sets = append(sets, "manager_id = NULL")
	}
	if u.Status != nil {
		add("status", *u.Status)
	}

	sets = append(sets, "updated_at = now()")
	args = append(args, id)

	var out models.User
	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d RETURNING `+userColumns,
		strings.Join(sets, ", "), len(args))
	if err := scanUser(r.db.QueryRow(ctx, query, args...), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *UserRepo) UpdatePassword(ctx context.Context, id int64, hash string) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET password = $1, updated_at = now() WHERE id = $2`, hash, id)
	return err
}

func (r *UserRepo) Deactivate(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	err := scanUser(r.db.QueryRow(ctx, `
		UPDATE users SET status = $1, updated_at = now() WHERE id = $2
		RETURNING `+userColumns, models.StatusInactive, id), &u)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// TeamMembers returns the active direct reports of a manager.
func (r *UserRepo) TeamMembers(ctx context.Context, managerID int64) ([]models.User, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+userColumns+` FROM users
		WHERE manager_id = $1 AND status = $2
		ORDER BY name
	`, managerID, models.StatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := scanUser(rows, &u); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
