package services

import (
	"context"

	"github.com/timesheet-tracker/backend/internal/apperr"
	"github.com/timesheet-tracker/backend/internal/models"
	"github.com/timesheet-tracker/backend/internal/repositories"
)

// AuditService exposes the audit trail read side; writes happen inside the
// mutating services' transactions.
type AuditService struct {
	auditRepo *repositories.AuditRepo
}

func NewAuditService(auditRepo *repositories.AuditRepo) *AuditService {
	return &AuditService{auditRepo: auditRepo}
}

func (s *AuditService) List(ctx context.Context, f repositories.AuditFilter) ([]models.AuditLog, error) {
	logs, err := s.auditRepo.List(ctx, f)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return logs, nil
}
