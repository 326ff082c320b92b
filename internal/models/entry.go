package models

import "time"

// Entry statuses
const (
	EntryStatusDraft     = "draft"
	EntryStatusSubmitted = "submitted"
	EntryStatusApproved  = "approved"
	EntryStatusRejected  = "rejected"
)

// Valid state transitions: from -> []to. Approved is terminal;
// rejected entries may be edited and resubmitted.
var ValidEntryTransitions = map[string][]string{
	EntryStatusDraft:     {EntryStatusSubmitted},
	EntryStatusSubmitted: {EntryStatusApproved, EntryStatusRejected},
	EntryStatusApproved:  {},
	EntryStatusRejected:  {EntryStatusSubmitted},
}

func IsValidTransition(from, to string) bool {
	allowed, ok := ValidEntryTransitions[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// IsEditable reports whether an entry in the given status may still be
// modified by its owner.
func IsEditable(status string) bool {
	return status == EntryStatusDraft || status == EntryStatusRejected
}

// IsDeletable reports whether an entry in the given status may be deleted.
// Anything past draft is part of the approval record.
func IsDeletable(status string) bool {
	return status == EntryStatusDraft
}

type TimesheetEntry struct {
	ID               int64      `json:"id"`
	UserID           int64      `json:"user_id"`
	ProjectID        int64      `json:"project_id"`
	EntryDate        time.Time  `json:"entry_date"`
	Hours            float64    `json:"hours"`
	Description      string     `json:"description"`
	Status           string     `json:"status"`
	SubmittedAt      *time.Time `json:"submitted_at,omitempty"`
	ReviewedAt       *time.Time `json:"reviewed_at,omitempty"`
	ReviewedBy       *int64     `json:"reviewed_by,omitempty"`
	ReviewerComments *string    `json:"reviewer_comments,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// EntryWithProject embeds TimesheetEntry and adds project info to avoid
// N+1 queries on list endpoints.
type EntryWithProject struct {
	TimesheetEntry
	ProjectCode string `json:"project_code"`
	ProjectName string `json:"project_name"`
}

// TeamEntry is an EntryWithProject enriched with the owning employee,
// as returned by the approval queue endpoints.
type TeamEntry struct {
	EntryWithProject
	EmployeeName  string `json:"employee_name"`
	EmployeeEmail string `json:"employee_email"`
}
