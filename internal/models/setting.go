package models

import "time"

// Well-known setting keys
const (
	SettingMaxHoursPerDay       = "max_hours_per_day"
	SettingMinDescriptionLength = "min_description_length"
	SettingSessionTimeoutMS     = "session_timeout_ms"
)

type SystemSetting struct {
	ID        int64     `json:"id"`
	Key       string    `json:"setting_key"`
	Value     *string   `json:"setting_value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EntryLimits are the validation bounds for a timesheet entry, read from
// system settings at validation time so admin changes apply on the next
// request.
type EntryLimits struct {
	MaxHoursPerDay       float64
	MinDescriptionLength int
}

// DefaultEntryLimits mirror the values seeded by the initial migration.
var DefaultEntryLimits = EntryLimits{
	MaxHoursPerDay:       12,
	MinDescriptionLength: 10,
}
