package models

import "time"

// Roles
const (
	RoleEmployee = "employee"
	RoleManager  = "manager"
	RoleAdmin    = "admin"
)

// User/project statuses
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

func IsValidRole(role string) bool {
	return role == RoleEmployee || role == RoleManager || role == RoleAdmin
}

func IsValidStatus(status string) bool {
	return status == StatusActive || status == StatusInactive
}

type User struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Password   string    `json:"-"`
	Role       string    `json:"role"`
	Department *string   `json:"department,omitempty"`
	ManagerID  *int64    `json:"manager_id,omitempty"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CanManage reports whether the user may hold direct reports.
func (u *User) CanManage() bool {
	return u.Role == RoleManager || u.Role == RoleAdmin
}
