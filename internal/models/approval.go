package models

import "time"

// ApprovalLog is the immutable record of an approve/reject decision,
// separate from the general audit trail.
type ApprovalLog struct {
	ID        int64     `json:"id"`
	EntryID   int64     `json:"entry_id"`
	ManagerID int64     `json:"manager_id"`
	Action    string    `json:"action"` // approved / rejected
	Comments  *string   `json:"comments,omitempty"`
	ActionAt  time.Time `json:"action_at"`
}
