package attendance

import "time"

type EventType string

const (
	EventIn  EventType = "IN"
	EventOut EventType = "OUT"
)

// AttendanceEvent is one raw punch. Timestamps are stored in UTC; the engine
// converts to the attendance-local zone when bucketing by day.
type AttendanceEvent struct {
	ID         string
	EmployeeID string
	Type       EventType
	Timestamp  time.Time // UTC

	Latitude  *float64
	Longitude *float64

	// Source flags
	IsManual     bool // created or corrected by an admin, not a device punch
	IsNightShift bool // device marked this punch as belonging to a night shift
	DeviceID     *string

	CreatedAt time.Time
	DeletedAt *time.Time
}
