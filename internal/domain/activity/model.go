package activity

import "time"

// Type is a well-known activity category tag.
type Type string

const (
	TypeLogin        Type = "login"
	TypeLogout       Type = "logout"
	TypeConfigChange Type = "config_change"
	TypeInputChange  Type = "input_change"
	TypeSave         Type = "save"
	TypeLoad         Type = "load"
	TypeError        Type = "error"
	TypeWarning      Type = "warning"
	TypeInfo         Type = "info"
)

// descriptions maps well-known activity types to their canned descriptions.
// Unknown tags are accepted and described by themselves.
var descriptions = map[Type]string{
	TypeLogin:        "User logged in",
	TypeLogout:       "User logged out",
	TypeConfigChange: "Configuration changed",
	TypeInputChange:  "Input value changed",
	TypeSave:         "Data saved",
	TypeLoad:         "Data loaded",
	TypeError:        "Error occurred",
	TypeWarning:      "Warning issued",
	TypeInfo:         "Informational event",
}

// Describe returns the human-readable description for an activity type,
// falling back to the raw tag for unrecognized types.
func Describe(activityType string) string {
	if desc, ok := descriptions[Type(activityType)]; ok {
		return desc
	}
	return activityType
}

// SourceSystem is the default origin tag for records logged without one.
const SourceSystem = "system"

// TimestampLayout is the wire format for record timestamps: UTC with
// fixed-width microsecond precision and a trailing Z. Fixed-width fields keep
// string comparison equivalent to chronological comparison.
const TimestampLayout = "2006-01-02T15:04:05.000000Z07:00"

// Now returns the current UTC instant formatted as a record timestamp.
func Now() string {
	return time.Now().UTC().Format(TimestampLayout)
}

// ParseTimestamp parses a record timestamp string.
func ParseTimestamp(ts string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, ts)
}

// Record is one logged activity event. Records are append-only and never
// mutated after being written.
type Record struct {
	Timestamp   string         `json:"timestamp"`
	User        string         `json:"user"`
	Activity    string         `json:"activity"`
	Description string         `json:"description"`
	Source      string         `json:"source"`
	Details     map[string]any `json:"details"`
}

// Stats is a rollup over a trailing window of recent activity.
type Stats struct {
	TotalActivities int            `json:"total_activities"`
	UniqueUsers     int            `json:"unique_users"`
	ActivityTypes   map[string]int `json:"activity_types"`
	TopUsers        map[string]int `json:"top_users"`
	PeriodDays      int            `json:"period_days"`
}
