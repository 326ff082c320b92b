package dto

import "github.com/timesheet-tracker/backend/internal/models"

type SuccessResponse struct {
	OK   bool `json:"ok"`
	Data any  `json:"data,omitempty"`
}

type ErrorResponse struct {
	Error     string            `json:"error"`
	Fields    map[string]string `json:"fields,omitempty"`
	State     string            `json:"state,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func OK(data any) SuccessResponse {
	return SuccessResponse{OK: true, Data: data}
}
