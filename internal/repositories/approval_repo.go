package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/timesheet-tracker/backend/internal/models"
)

type ApprovalRepo struct {
	db DBTX
}

func NewApprovalRepo(db DBTX) *ApprovalRepo {
	return &ApprovalRepo{db: db}
}

func (r *ApprovalRepo) WithTx(tx pgx.Tx) ApprovalStore {
	return &ApprovalRepo{db: tx}
}

func (r *ApprovalRepo) Record(ctx context.Context, l *models.ApprovalLog) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO approval_logs (entry_id, manager_id, action, comments)
		VALUES ($1, $2, $3, $4)
		RETURNING id, action_at
	`, l.EntryID, l.ManagerID, l.Action, l.Comments).Scan(&l.ID, &l.ActionAt)
}

func (r *ApprovalRepo) ListByEntry(ctx context.Context, entryID int64) ([]models.ApprovalLog, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, entry_id, manager_id, action, comments, action_at
		FROM approval_logs WHERE entry_id = $1
		ORDER BY action_at DESC
	`, entryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.ApprovalLog
	for rows.Next() {
		var l models.ApprovalLog
		if err := rows.Scan(&l.ID, &l.EntryID, &l.ManagerID, &l.Action, &l.Comments, &l.ActionAt); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
