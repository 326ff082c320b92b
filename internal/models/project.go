package models

import "time"

type Project struct {
	ID          int64     `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	BillingRate float64   `json:"billing_rate"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProjectWithAssignments embeds Project and adds the ids of users allowed
// to log time against it.
type ProjectWithAssignments struct {
	Project
	AssignedTo []int64 `json:"assigned_to"`
}

type ProjectAssignment struct {
	ID         int64     `json:"id"`
	ProjectID  int64     `json:"project_id"`
	UserID     int64     `json:"user_id"`
	AssignedAt time.Time `json:"assigned_at"`
}
