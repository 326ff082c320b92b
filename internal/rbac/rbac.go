// Package rbac is the single place role rules live. Handlers and services
// never compare role strings directly; they ask this package.
package rbac

import "github.com/timesheet-tracker/backend/internal/models"

// Permission constants
const (
	PermLogTime        = "log_time"
	PermReviewEntry    = "review_entry"
	PermViewTeam       = "view_team"
	PermManageUsers    = "manage_users"
	PermManageProjects = "manage_projects"
	PermManageSettings = "manage_settings"
	PermViewAuditLog   = "view_audit_log"
)

// RolePermissions defines what each role can do.
var RolePermissions = map[string][]string{
	models.RoleEmployee: {
		PermLogTime,
	},
	models.RoleManager: {
		PermLogTime, PermReviewEntry, PermViewTeam,
	},
	models.RoleAdmin: {
		PermLogTime, PermReviewEntry, PermViewTeam,
		PermManageUsers, PermManageProjects, PermManageSettings, PermViewAuditLog,
	},
}

// HasPermission checks if a role has a specific permission.
func HasPermission(role, permission string) bool {
	perms, ok := RolePermissions[role]
	if !ok {
		return false
	}
	for _, p := range perms {
		if p == permission {
			return true
		}
	}
	return false
}

// CanModifyEntry reports whether the actor may create, edit, submit or
// delete an entry owned by ownerID. Entries are owner-only; admins may act
// on any entry.
func CanModifyEntry(actorRole string, actorID, ownerID int64) bool {
	if actorRole == models.RoleAdmin {
		return true
	}
	return actorID == ownerID
}

// CanReviewEntry reports whether the actor may approve or reject an entry
// whose owner reports to ownerManagerID. Managers review only their direct
// reports; admins review anyone.
func CanReviewEntry(actorRole string, actorID int64, ownerManagerID *int64) bool {
	if actorRole == models.RoleAdmin {
		return true
	}
	if actorRole != models.RoleManager {
		return false
	}
	return ownerManagerID != nil && *ownerManagerID == actorID
}

// CanViewEntry reports whether the actor may read an entry: the owner,
// the owner's manager, or an admin.
func CanViewEntry(actorRole string, actorID, ownerID int64, ownerManagerID *int64) bool {
	if actorID == ownerID {
		return true
	}
	return CanReviewEntry(actorRole, actorID, ownerManagerID)
}

// CanDeactivateUser reports whether the actor may deactivate targetID.
// Admin-only, and never the admin's own account.
func CanDeactivateUser(actorRole string, actorID, targetID int64) bool {
	return actorRole == models.RoleAdmin && actorID != targetID
}
