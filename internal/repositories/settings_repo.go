package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/timesheet-tracker/backend/internal/models"
)

type SettingsRepo struct {
	db DBTX
}

func NewSettingsRepo(db DBTX) *SettingsRepo {
	return &SettingsRepo{db: db}
}

func (r *SettingsRepo) WithTx(tx pgx.Tx) *SettingsRepo {
	return &SettingsRepo{db: tx}
}

func (r *SettingsRepo) All(ctx context.Context) ([]models.SystemSetting, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, setting_key, setting_value, created_at, updated_at
		FROM system_settings ORDER BY setting_key
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var settings []models.SystemSetting
	for rows.Next() {
		var s models.SystemSetting
		if err := rows.Scan(&s.ID, &s.Key, &s.Value, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

func (r *SettingsRepo) Get(ctx context.Context, key string) (*models.SystemSetting, error) {
	var s models.SystemSetting
	err := r.db.QueryRow(ctx, `
		SELECT id, setting_key, setting_value, created_at, updated_at
		FROM system_settings WHERE setting_key = $1
	`, key).Scan(&s.ID, &s.Key, &s.Value, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SettingsRepo) Upsert(ctx context.Context, key, value string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO system_settings (setting_key, setting_value)
		VALUES ($1, $2)
		ON CONFLICT (setting_key)
		DO UPDATE SET setting_value = EXCLUDED.setting_value, updated_at = now()
	`, key, value)
	return err
}
