package models

import "testing"

func TestIsValidTransition(t *testing.T) {
	tests := []struct {
		from     string
		to       string
		expected bool
	}{
		// Happy path
		{EntryStatusDraft, EntryStatusSubmitted, true},
		{EntryStatusSubmitted, EntryStatusApproved, true},
		{EntryStatusSubmitted, EntryStatusRejected, true},

		// Rejected entries go back through submission
		{EntryStatusRejected, EntryStatusSubmitted, true},

		// Approved is terminal
		{EntryStatusApproved, EntryStatusSubmitted, false},
		{EntryStatusApproved, EntryStatusRejected, false},
		{EntryStatusApproved, EntryStatusDraft, false},

		// No skipping or reversing
		{EntryStatusDraft, EntryStatusApproved, false},
		{EntryStatusDraft, EntryStatusRejected, false},
		{EntryStatusSubmitted, EntryStatusDraft, false},
		{EntryStatusRejected, EntryStatusApproved, false},
		{EntryStatusRejected, EntryStatusDraft, false},

		// Self-loops are not transitions
		{EntryStatusDraft, EntryStatusDraft, false},
		{EntryStatusSubmitted, EntryStatusSubmitted, false},

		// Unknown statuses
		{"nonexistent", EntryStatusSubmitted, false},
		{EntryStatusDraft, "nonexistent", false},
	}

	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			result := IsValidTransition(tt.from, tt.to)
			if result != tt.expected {
				t.Errorf("IsValidTransition(%q, %q) = %v, want %v", tt.from, tt.to, result, tt.expected)
			}
		})
	}
}

func TestIsEditable(t *testing.T) {
	tests := []struct {
		status   string
		expected bool
	}{
		{EntryStatusDraft, true},
		{EntryStatusRejected, true},
		{EntryStatusSubmitted, false},
		{EntryStatusApproved, false},
		{"nonexistent", false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			if got := IsEditable(tt.status); got != tt.expected {
				t.Errorf("IsEditable(%q) = %v, want %v", tt.status, got, tt.expected)
			}
		})
	}
}

func TestIsDeletable(t *testing.T) {
	tests := []struct {
		status   string
		expected bool
	}{
		{EntryStatusDraft, true},
		{EntryStatusSubmitted, false},
		{EntryStatusApproved, false},
		{EntryStatusRejected, false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			if got := IsDeletable(tt.status); got != tt.expected {
				t.Errorf("IsDeletable(%q) = %v, want %v", tt.status, got, tt.expected)
			}
		})
	}
}

func TestTransitionTableIsClosed(t *testing.T) {
	known := map[string]bool{
		EntryStatusDraft:     true,
		EntryStatusSubmitted: true,
		EntryStatusApproved:  true,
		EntryStatusRejected:  true,
	}
	for from, tos := range ValidEntryTransitions {
		if !known[from] {
			t.Errorf("transition table contains unknown source status %q", from)
		}
		for _, to := range tos {
			if !known[to] {
				t.Errorf("transition table contains unknown target status %q", to)
			}
		}
	}
}
