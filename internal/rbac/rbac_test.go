package rbac

import (
	"testing"

	"github.com/timesheet-tracker/backend/internal/models"
)

func TestHasPermission(t *testing.T) {
	tests := []struct {
		role       string
		permission string
		expected   bool
	}{
		{models.RoleEmployee, PermLogTime, true},
		{models.RoleEmployee, PermReviewEntry, false},
		{models.RoleEmployee, PermManageUsers, false},
		{models.RoleManager, PermLogTime, true},
		{models.RoleManager, PermReviewEntry, true},
		{models.RoleManager, PermViewTeam, true},
		{models.RoleManager, PermManageUsers, false},
		{models.RoleManager, PermManageSettings, false},
		{models.RoleAdmin, PermManageUsers, true},
		{models.RoleAdmin, PermManageProjects, true},
		{models.RoleAdmin, PermManageSettings, true},
		{models.RoleAdmin, PermViewAuditLog, true},
		{"nonexistent", PermLogTime, false},
	}

	for _, tt := range tests {
		t.Run(tt.role+"/"+tt.permission, func(t *testing.T) {
			if got := HasPermission(tt.role, tt.permission); got != tt.expected {
				t.Errorf("HasPermission(%q, %q) = %v, want %v", tt.role, tt.permission, got, tt.expected)
			}
		})
	}
}

func TestCanModifyEntry(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		actorID  int64
		ownerID  int64
		expected bool
	}{
		{"owner", models.RoleEmployee, 1, 1, true},
		{"other employee", models.RoleEmployee, 1, 2, false},
		{"manager of owner still not owner", models.RoleManager, 3, 1, false},
		{"admin on any entry", models.RoleAdmin, 9, 1, true},
		{"admin on own entry", models.RoleAdmin, 9, 9, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanModifyEntry(tt.role, tt.actorID, tt.ownerID); got != tt.expected {
				t.Errorf("CanModifyEntry(%q, %d, %d) = %v, want %v", tt.role, tt.actorID, tt.ownerID, got, tt.expected)
			}
		})
	}
}

func TestCanReviewEntry(t *testing.T) {
	managerID := int64(3)
	otherManagerID := int64(4)

	tests := []struct {
		name           string
		role           string
		actorID        int64
		ownerManagerID *int64
		expected       bool
	}{
		{"direct manager", models.RoleManager, 3, &managerID, true},
		{"different manager", models.RoleManager, 3, &otherManagerID, false},
		{"owner has no manager", models.RoleManager, 3, nil, false},
		{"employee never reviews", models.RoleEmployee, 3, &managerID, false},
		{"admin reviews anyone", models.RoleAdmin, 9, &managerID, true},
		{"admin reviews unmanaged owner", models.RoleAdmin, 9, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanReviewEntry(tt.role, tt.actorID, tt.ownerManagerID); got != tt.expected {
				t.Errorf("CanReviewEntry(%q, %d, %v) = %v, want %v", tt.role, tt.actorID, tt.ownerManagerID, got, tt.expected)
			}
		})
	}
}

func TestCanViewEntry(t *testing.T) {
	managerID := int64(3)

	tests := []struct {
		name           string
		role           string
		actorID        int64
		ownerID        int64
		ownerManagerID *int64
		expected       bool
	}{
		{"owner", models.RoleEmployee, 1, 1, &managerID, true},
		{"other employee", models.RoleEmployee, 2, 1, &managerID, false},
		{"direct manager", models.RoleManager, 3, 1, &managerID, true},
		{"unrelated manager", models.RoleManager, 4, 1, &managerID, false},
		{"admin", models.RoleAdmin, 9, 1, &managerID, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanViewEntry(tt.role, tt.actorID, tt.ownerID, tt.ownerManagerID); got != tt.expected {
				t.Errorf("CanViewEntry(%q, %d, %d, %v) = %v, want %v", tt.role, tt.actorID, tt.ownerID, tt.ownerManagerID, got, tt.expected)
			}
		})
	}
}

func TestCanDeactivateUser(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		actorID  int64
		targetID int64
		expected bool
	}{
		{"admin deactivates other", models.RoleAdmin, 1, 2, true},
		{"admin deactivates self", models.RoleAdmin, 1, 1, false},
		{"manager never deactivates", models.RoleManager, 3, 2, false},
		{"employee never deactivates", models.RoleEmployee, 4, 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanDeactivateUser(tt.role, tt.actorID, tt.targetID); got != tt.expected {
				t.Errorf("CanDeactivateUser(%q, %d, %d) = %v, want %v", tt.role, tt.actorID, tt.targetID, got, tt.expected)
			}
		})
	}
}
