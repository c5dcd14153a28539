package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/clockwise-hq/timekeep-backend-go/internal/domain/attendance"
	"github.com/clockwise-hq/timekeep-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceEventRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceEventRepository(db *database.DB) attendance.AttendanceEventRepository {
	return &attendanceEventRepositoryImpl{db: db}
}

// Create implements attendance.AttendanceEventRepository.
func (r *attendanceEventRepositoryImpl) Create(ctx context.Context, event attendance.AttendanceEvent) (attendance.AttendanceEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_events (
			id, employee_id, type, timestamp, latitude, longitude,
			is_manual, is_night_shift, device_id
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		) RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		event.ID,
		event.EmployeeID,
		string(event.Type),
		event.Timestamp,
		event.Latitude,
		event.Longitude,
		event.IsManual,
		event.IsNightShift,
		event.DeviceID,
	).Scan(&event.CreatedAt)

	if err != nil {
		return attendance.AttendanceEvent{}, fmt.Errorf("failed to create attendance event: %w", err)
	}

	return event, nil
}

// ListForRange implements attendance.AttendanceEventRepository. The ordering
// by timestamp then id is what the pairing logic in the engine depends on.
func (r *attendanceEventRepositoryImpl) ListForRange(ctx context.Context, employeeID string, utcFrom, utcTo time.Time) ([]attendance.AttendanceEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, type, timestamp, latitude, longitude,
			   is_manual, is_night_shift, device_id, created_at, deleted_at
		FROM attendance_events
		WHERE employee_id = $1
		  AND timestamp >= $2
		  AND timestamp < $3
		  AND deleted_at IS NULL
		ORDER BY timestamp ASC, id ASC
	`

	rows, err := q.Query(ctx, query, employeeID, utcFrom, utcTo)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance events: %w", err)
	}
	defer rows.Close()

	var events []attendance.AttendanceEvent
	for rows.Next() {
		var ev attendance.AttendanceEvent
		var typ string
		if err := rows.Scan(
			&ev.ID, &ev.EmployeeID, &typ, &ev.Timestamp, &ev.Latitude, &ev.Longitude,
			&ev.IsManual, &ev.IsNightShift, &ev.DeviceID, &ev.CreatedAt, &ev.DeletedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance event: %w", err)
		}
		ev.Type = attendance.EventType(typ)
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance events: %w", err)
	}

	return events, nil
}

// GetByID implements attendance.AttendanceEventRepository.
func (r *attendanceEventRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.AttendanceEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, type, timestamp, latitude, longitude,
			   is_manual, is_night_shift, device_id, created_at, deleted_at
		FROM attendance_events
		WHERE id = $1
	`

	var ev attendance.AttendanceEvent
	var typ string
	err := q.QueryRow(ctx, query, id).Scan(
		&ev.ID, &ev.EmployeeID, &typ, &ev.Timestamp, &ev.Latitude, &ev.Longitude,
		&ev.IsManual, &ev.IsNightShift, &ev.DeviceID, &ev.CreatedAt, &ev.DeletedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.AttendanceEvent{}, attendance.ErrEventNotFound
		}
		return attendance.AttendanceEvent{}, fmt.Errorf("failed to get attendance event: %w", err)
	}
	ev.Type = attendance.EventType(typ)

	return ev, nil
}

// SoftDelete implements attendance.AttendanceEventRepository.
func (r *attendanceEventRepositoryImpl) SoftDelete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_events
		SET deleted_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING id
	`

	var deletedID string
	err := q.QueryRow(ctx, query, id).Scan(&deletedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.ErrEventNotFound
		}
		return fmt.Errorf("failed to soft delete attendance event: %w", err)
	}

	return nil
}
