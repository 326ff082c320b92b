package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/timesheet-tracker/backend/internal/models"
)

type AuditRepo struct {
	db DBTX
}

func NewAuditRepo(db DBTX) *AuditRepo {
	return &AuditRepo{db: db}
}

func (r *AuditRepo) WithTx(tx pgx.Tx) AuditStore {
	return &AuditRepo{db: tx}
}

// Record appends one audit row. When called on a transaction-bound repo the
// insert commits or rolls back with the mutation it describes; callers must
// not ignore the returned error.
func (r *AuditRepo) Record(ctx context.Context, entry models.AuditLog) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO audit_logs (user_id, action, entity_type, entity_id, old_values, new_values, ip_address)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, entry.UserID, entry.Action, entry.EntityType, entry.EntityID, entry.OldValues, entry.NewValues, entry.IPAddress)
	return err
}

type AuditFilter struct {
	UserID     *int64
	EntityType *string
	EntityID   *int64
	Limit      int
	Offset     int
}

func (r *AuditRepo) List(ctx context.Context, f AuditFilter) ([]models.AuditLog, error) {
	if f.Limit <= 0 {
		f.Limit = 50
	}

	args := []any{}
	query := `
		SELECT id, user_id, action, entity_type, entity_id, old_values, new_values, ip_address, created_at
		FROM audit_logs WHERE 1=1`
	if f.UserID != nil {
		args = append(args, *f.UserID)
		query += fmt.Sprintf(" AND user_id = $%d", len(args))
	}
	if f.EntityType != nil {
		args = append(args, *f.EntityType)
		query += fmt.Sprintf(" AND entity_type = $%d", len(args))
	}
	if f.EntityID != nil {
		args = append(args, *f.EntityID)
		query += fmt.Sprintf(" AND entity_id = $%d", len(args))
	}
	args = append(args, f.Limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))
	args = append(args, f.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.AuditLog
	for rows.Next() {
		var l models.AuditLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.Action, &l.EntityType, &l.EntityID,
			&l.OldValues, &l.NewValues, &l.IPAddress, &l.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
