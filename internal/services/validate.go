package services

import (
	"regexp"
	"strings"
	"time"

	"github.com/timesheet-tracker/backend/internal/apperr"
	"github.com/timesheet-tracker/backend/internal/models"
)

// MinEntryHours is the smallest bookable increment; the upper bound comes
// from the max_hours_per_day setting, capped at 24.
const MinEntryHours = 0.25

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type CreateEntryInput struct {
	ProjectID   int64
	EntryDate   time.Time
	Hours       float64
	Description string
}

type UpdateEntryInput struct {
	ProjectID   *int64
	EntryDate   *time.Time
	Hours       *float64
	Description *string
}

func (in UpdateEntryInput) Empty() bool {
	return in.ProjectID == nil && in.EntryDate == nil && in.Hours == nil && in.Description == nil
}

func checkHours(hours float64, limits models.EntryLimits, fields *[]apperr.FieldError) {
	maxHours := limits.MaxHoursPerDay
	if maxHours <= 0 || maxHours > 24 {
		maxHours = 24
	}
	if hours < MinEntryHours || hours > maxHours {
		*fields = append(*fields, apperr.FieldError{
			Field:   "hours",
			Message: "hours must be between 0.25 and the configured daily maximum",
		})
	}
}

func checkDescription(description string, limits models.EntryLimits, fields *[]apperr.FieldError) {
	minLen := limits.MinDescriptionLength
	if minLen <= 0 {
		minLen = models.DefaultEntryLimits.MinDescriptionLength
	}
	if len(strings.TrimSpace(description)) < minLen {
		*fields = append(*fields, apperr.FieldError{
			Field:   "description",
			Message: "description is too short",
		})
	}
}

func validateCreateEntry(in CreateEntryInput, limits models.EntryLimits) *apperr.Error {
	var fields []apperr.FieldError
	if in.ProjectID <= 0 {
		fields = append(fields, apperr.FieldError{Field: "project_id", Message: "project_id is required"})
	}
	if in.EntryDate.IsZero() {
		fields = append(fields, apperr.FieldError{Field: "entry_date", Message: "entry_date is required"})
	}
	checkHours(in.Hours, limits, &fields)
	checkDescription(in.Description, limits, &fields)
	if len(fields) > 0 {
		return apperr.Validation(fields...)
	}
	return nil
}

func validateUpdateEntry(in UpdateEntryInput, limits models.EntryLimits) *apperr.Error {
	var fields []apperr.FieldError
	if in.Empty() {
		return apperr.Validation(apperr.FieldError{Field: "body", Message: "no fields to update"})
	}
	if in.ProjectID != nil && *in.ProjectID <= 0 {
		fields = append(fields, apperr.FieldError{Field: "project_id", Message: "project_id must be positive"})
	}
	if in.Hours != nil {
		checkHours(*in.Hours, limits, &fields)
	}
	if in.Description != nil {
		checkDescription(*in.Description, limits, &fields)
	}
	if len(fields) > 0 {
		return apperr.Validation(fields...)
	}
	return nil
}

type CreateUserInput struct {
	Name       string
	Email      string
	Password   string
	Role       string
	Department *string
	ManagerID  *int64
}

func validateCreateUser(in CreateUserInput) *apperr.Error {
	var fields []apperr.FieldError
	if strings.TrimSpace(in.Name) == "" {
		fields = append(fields, apperr.FieldError{Field: "name", Message: "name is required"})
	}
	if !emailPattern.MatchString(in.Email) {
		fields = append(fields, apperr.FieldError{Field: "email", Message: "invalid email"})
	}
	if len(in.Password) < 6 {
		fields = append(fields, apperr.FieldError{Field: "password", Message: "password must be at least 6 characters"})
	}
	if !models.IsValidRole(in.Role) {
		fields = append(fields, apperr.FieldError{Field: "role", Message: "role must be employee, manager or admin"})
	}
	if len(fields) > 0 {
		return apperr.Validation(fields...)
	}
	return nil
}

type UpdateUserInput struct {
	Name         *string
	Email        *string
	Role         *string
	Department   *string
	ManagerID    *int64
	ClearManager bool
	Status       *string
}

func validateUpdateUser(in UpdateUserInput) *apperr.Error {
	var fields []apperr.FieldError
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		fields = append(fields, apperr.FieldError{Field: "name", Message: "name must not be empty"})
	}
	if in.Email != nil && !emailPattern.MatchString(*in.Email) {
		fields = append(fields, apperr.FieldError{Field: "email", Message: "invalid email"})
	}
	if in.Role != nil && !models.IsValidRole(*in.Role) {
		fields = append(fields, apperr.FieldError{Field: "role", Message: "role must be employee, manager or admin"})
	}
	if in.Status != nil && !models.IsValidStatus(*in.Status) {
		fields = append(fields, apperr.FieldError{Field: "status", Message: "status must be active or inactive"})
	}
	if len(fields) > 0 {
		return apperr.Validation(fields...)
	}
	return nil
}

type CreateProjectInput struct {
	Code        string
	Name        string
	Description *string
	BillingRate float64
	AssignedTo  []int64
}

func validateCreateProject(in CreateProjectInput) *apperr.Error {
	var fields []apperr.FieldError
	if strings.TrimSpace(in.Code) == "" {
		fields = append(fields, apperr.FieldError{Field: "code", Message: "code is required"})
	}
	if strings.TrimSpace(in.Name) == "" {
		fields = append(fields, apperr.FieldError{Field: "name", Message: "name is required"})
	}
	if in.BillingRate < 0 {
		fields = append(fields, apperr.FieldError{Field: "billing_rate", Message: "billing_rate must not be negative"})
	}
	if len(fields) > 0 {
		return apperr.Validation(fields...)
	}
	return nil
}

type UpdateProjectInput struct {
	Name        *string
	Description *string
	BillingRate *float64
	Status      *string
	AssignedTo  []int64 // nil means leave assignments untouched
}

func validateUpdateProject(in UpdateProjectInput) *apperr.Error {
	var fields []apperr.FieldError
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		fields = append(fields, apperr.FieldError{Field: "name", Message: "name must not be empty"})
	}
	if in.BillingRate != nil && *in.BillingRate < 0 {
		fields = append(fields, apperr.FieldError{Field: "billing_rate", Message: "billing_rate must not be negative"})
	}
	if in.Status != nil && !models.IsValidStatus(*in.Status) {
		fields = append(fields, apperr.FieldError{Field: "status", Message: "status must be active or inactive"})
	}
	if len(fields) > 0 {
		return apperr.Validation(fields...)
	}
	return nil
}
