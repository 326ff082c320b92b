package services

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/timesheet-tracker/backend/internal/apperr"
)

// TxBeginner starts database transactions; *pgxpool.Pool satisfies it.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// withTx runs fn inside a single database transaction. The state change and
// its audit/approval-log writes either all commit or all roll back.
func withTx(ctx context.Context, pool TxBeginner, fn func(tx pgx.Tx) error) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return apperr.Internal(err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// snapshot serializes an entity for an audit old/new value column.
func snapshot(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return b, nil
}
