package attendance

import (
	"context"
	"time"
)

// AttendanceEventRepository stores raw punches. Listings are sorted by
// timestamp then id and exclude soft-deleted rows, which is the ordering the
// engine's pairing logic depends on.
type AttendanceEventRepository interface {
	Create(ctx context.Context, event AttendanceEvent) (AttendanceEvent, error)

	// ListForRange returns non-deleted events with utcFrom <= timestamp < utcTo.
	ListForRange(ctx context.Context, employeeID string, utcFrom, utcTo time.Time) ([]AttendanceEvent, error)

	GetByID(ctx context.Context, id string) (AttendanceEvent, error)

	// SoftDelete marks an event deleted; it disappears from ListForRange.
	SoftDelete(ctx context.Context, id string) error
}
