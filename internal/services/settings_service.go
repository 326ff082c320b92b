package services

import (
	"context"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/timesheet-tracker/backend/internal/apperr"
	"github.com/timesheet-tracker/backend/internal/models"
	"github.com/timesheet-tracker/backend/internal/repositories"
	"go.uber.org/zap"
)

// SettingsService reads system settings fresh on every call so admin
// changes apply on the next request, not after a restart.
type SettingsService struct {
	pool         *pgxpool.Pool
	settingsRepo *repositories.SettingsRepo
	auditRepo    *repositories.AuditRepo
	log          *zap.Logger
}

func NewSettingsService(pool *pgxpool.Pool, settingsRepo *repositories.SettingsRepo, auditRepo *repositories.AuditRepo, log *zap.Logger) *SettingsService {
	return &SettingsService{pool: pool, settingsRepo: settingsRepo, auditRepo: auditRepo, log: log}
}

func (s *SettingsService) All(ctx context.Context) (map[string]string, error) {
	rows, err := s.settingsRepo.All(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	settings := make(map[string]string, len(rows))
	for _, row := range rows {
		if row.Value != nil {
			settings[row.Key] = *row.Value
		} else {
			settings[row.Key] = ""
		}
	}
	return settings, nil
}

// Update upserts the given keys and writes one audit record for the batch.
func (s *SettingsService) Update(ctx context.Context, actor Actor, settings map[string]string) error {
	if len(settings) == 0 {
		return apperr.Validation(apperr.FieldError{Field: "body", Message: "no settings to update"})
	}
	for key, value := range settings {
		if key == "" || value == "" {
			return apperr.Validation(apperr.FieldError{Field: key, Message: "setting keys and values must not be empty"})
		}
	}

	return withTx(ctx, s.pool, func(tx pgx.Tx) error {
		repo := s.settingsRepo.WithTx(tx)
		for key, value := range settings {
			if err := repo.Upsert(ctx, key, value); err != nil {
				return apperr.Internal(err)
			}
		}

		newVals, err := snapshot(settings)
		if err != nil {
			return err
		}
		actorID := actor.ID
		if err := s.auditRepo.WithTx(tx).Record(ctx, models.AuditLog{
			UserID:     &actorID,
			Action:     models.ActionUpdateSettings,
			EntityType: models.EntitySystem,
			NewValues:  newVals,
			IPAddress:  actor.ipPtr(),
		}); err != nil {
			return apperr.Internal(err)
		}
		return nil
	})
}

// EntryLimits returns the current validation bounds. Missing or malformed
// rows fall back to the seeded defaults; a store failure is surfaced so a
// broken settings table cannot silently loosen validation.
func (s *SettingsService) EntryLimits(ctx context.Context) (models.EntryLimits, error) {
	limits := models.DefaultEntryLimits

	maxHours, err := s.floatSetting(ctx, models.SettingMaxHoursPerDay)
	if err != nil {
		return limits, err
	}
	if maxHours > 0 {
		limits.MaxHoursPerDay = maxHours
	}

	minLen, err := s.intSetting(ctx, models.SettingMinDescriptionLength)
	if err != nil {
		return limits, err
	}
	if minLen > 0 {
		limits.MinDescriptionLength = minLen
	}

	return limits, nil
}

// SessionTimeout returns the configured token lifetime, or fallback when
// the setting is missing or unusable.
func (s *SettingsService) SessionTimeout(ctx context.Context, fallback time.Duration) time.Duration {
	ms, err := s.intSetting(ctx, models.SettingSessionTimeoutMS)
	if err != nil || ms <= 0 {
		return fallback
	}
	return time.Duration(ms) * time.Millisecond
}

func (s *SettingsService) floatSetting(ctx context.Context, key string) (float64, error) {
	raw, err := s.rawSetting(ctx, key)
	if err != nil || raw == "" {
		return 0, err
	}
	v, perr := strconv.ParseFloat(raw, 64)
	if perr != nil {
		s.log.Warn("non-numeric setting ignored", zap.String("key", key), zap.String("value", raw))
		return 0, nil
	}
	return v, nil
}

func (s *SettingsService) intSetting(ctx context.Context, key string) (int, error) {
	raw, err := s.rawSetting(ctx, key)
	if err != nil || raw == "" {
		return 0, err
	}
	v, perr := strconv.Atoi(raw)
	if perr != nil {
		s.log.Warn("non-numeric setting ignored", zap.String("key", key), zap.String("value", raw))
		return 0, nil
	}
	return v, nil
}

func (s *SettingsService) rawSetting(ctx context.Context, key string) (string, error) {
	setting, err := s.settingsRepo.Get(ctx, key)
	if err != nil {
		if repositories.IsNoRows(err) {
			return "", nil
		}
		return "", apperr.Internal(err)
	}
	if setting.Value == nil {
		return "", nil
	}
	return *setting.Value, nil
}
