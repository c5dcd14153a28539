package leave

import "time"

type LeaveStatus string

const (
	StatusPending  LeaveStatus = "pending"
	StatusApproved LeaveStatus = "approved"
	StatusRejected LeaveStatus = "rejected"
)

// Leave is an approved absence over an inclusive local date range.
type Leave struct {
	ID         string
	EmployeeID string
	Type       string
	StartDate  time.Time // local date
	EndDate    time.Time // local date
	Status     LeaveStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Covers reports whether the local calendar day falls inside the leave range.
func (l Leave) Covers(day time.Time) bool {
	d := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	start := time.Date(l.StartDate.Year(), l.StartDate.Month(), l.StartDate.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(l.EndDate.Year(), l.EndDate.Month(), l.EndDate.Day(), 0, 0, 0, 0, time.UTC)
	return !d.Before(start) && !d.After(end)
}
