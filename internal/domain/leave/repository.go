package leave

import (
	"context"
	"time"
)

type LeaveRepository interface {
	// ListApprovedOverlapping returns approved leaves whose date range
	// overlaps [from, to] for the employee.
	ListApprovedOverlapping(ctx context.Context, employeeID string, from, to time.Time) ([]Leave, error)
}
