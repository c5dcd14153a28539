package attendance

import "context"

// AttendanceService records punches. It performs no time accounting of its
// own; the timesheet engine derives all metrics from the stored events.
type AttendanceService interface {
	ClockIn(ctx context.Context, req PunchRequest) (EventResponse, error)
	ClockOut(ctx context.Context, req PunchRequest) (EventResponse, error)
	CreateManualEvent(ctx context.Context, req CreateEventRequest, createdBy string) (EventResponse, error)
	DeleteEvent(ctx context.Context, id string) error
}
