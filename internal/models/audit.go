package models

import "time"

// Audit action names
const (
	ActionLogin          = "LOGIN"
	ActionLogout         = "LOGOUT"
	ActionChangePassword = "CHANGE_PASSWORD"
	ActionCreateEntry    = "CREATE_ENTRY"
	ActionUpdateEntry    = "UPDATE_ENTRY"
	ActionSubmitEntry    = "SUBMIT_ENTRY"
	ActionDeleteEntry    = "DELETE_ENTRY"
	ActionApproveEntry   = "APPROVE_ENTRY"
	ActionRejectEntry    = "REJECT_ENTRY"
	ActionCreateUser     = "CREATE_USER"
	ActionUpdateUser     = "UPDATE_USER"
	ActionDeactivateUser = "DEACTIVATE_USER"
	ActionCreateProject  = "CREATE_PROJECT"
	ActionUpdateProject  = "UPDATE_PROJECT"
	ActionDeleteProject  = "DELETE_PROJECT"
	ActionUpdateSettings = "UPDATE_SETTINGS"
)

// Audit entity types
const (
	EntityTimesheet = "timesheet"
	EntityUser      = "user"
	EntityProject   = "project"
	EntitySystem    = "system"
)

type AuditLog struct {
	ID         int64     `json:"id"`
	UserID     *int64    `json:"user_id,omitempty"`
	Action     string    `json:"action"`
	EntityType string    `json:"entity_type"`
	EntityID   *int64    `json:"entity_id,omitempty"`
	OldValues  any       `json:"old_values,omitempty"`
	NewValues  any       `json:"new_values,omitempty"`
	IPAddress  *string   `json:"ip_address,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
