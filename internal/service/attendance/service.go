package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clockwise-hq/timekeep-backend-go/internal/domain/attendance"
	"github.com/clockwise-hq/timekeep-backend-go/internal/domain/department"
	"github.com/clockwise-hq/timekeep-backend-go/internal/domain/employee"
	"github.com/clockwise-hq/timekeep-backend-go/internal/pkg/utils"
	"github.com/google/uuid"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceEventRepository
	employee.EmployeeRepository
	department.DepartmentRepository
}

func NewAttendanceService(
	eventRepo attendance.AttendanceEventRepository,
	employeeRepo employee.EmployeeRepository,
	departmentRepo department.DepartmentRepository,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceEventRepository: eventRepo,
		EmployeeRepository:        employeeRepo,
		DepartmentRepository:      departmentRepo,
	}
}

// ClockIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockIn(ctx context.Context, req attendance.PunchRequest) (attendance.EventResponse, error) {
	return a.punch(ctx, req, attendance.EventIn)
}

// ClockOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockOut(ctx context.Context, req attendance.PunchRequest) (attendance.EventResponse, error) {
	return a.punch(ctx, req, attendance.EventOut)
}

func (a *AttendanceServiceImpl) punch(ctx context.Context, req attendance.PunchRequest, eventType attendance.EventType) (attendance.EventResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.EventResponse{}, err
	}

	emp, err := a.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return attendance.EventResponse{}, employee.ErrEmployeeNotFound
		}
		return attendance.EventResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	if err := a.checkOfficeRadius(ctx, emp.DepartmentID, req.Latitude, req.Longitude); err != nil {
		return attendance.EventResponse{}, err
	}

	event := attendance.AttendanceEvent{
		ID:           uuid.NewString(),
		EmployeeID:   emp.ID,
		Type:         eventType,
		Timestamp:    time.Now().UTC(),
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		IsNightShift: req.IsNightShift,
		DeviceID:     req.DeviceID,
	}

	created, err := a.AttendanceEventRepository.Create(ctx, event)
	if err != nil {
		return attendance.EventResponse{}, fmt.Errorf("failed to create attendance event: %w", err)
	}

	return toEventResponse(created), nil
}

// CreateManualEvent implements attendance.AttendanceService. Manual events
// carry an explicit timestamp and the manual source flag, which surfaces as a
// MANUAL_EVENT marker on the computed day.
func (a *AttendanceServiceImpl) CreateManualEvent(ctx context.Context, req attendance.CreateEventRequest, createdBy string) (attendance.EventResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.EventResponse{}, err
	}

	if _, err := a.EmployeeRepository.GetByID(ctx, req.EmployeeID); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return attendance.EventResponse{}, employee.ErrEmployeeNotFound
		}
		return attendance.EventResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	ts, err := time.Parse(time.RFC3339, req.Timestamp)
	if err != nil {
		return attendance.EventResponse{}, fmt.Errorf("failed to parse timestamp: %w", err)
	}

	event := attendance.AttendanceEvent{
		ID:           uuid.NewString(),
		EmployeeID:   req.EmployeeID,
		Type:         attendance.EventType(req.Type),
		Timestamp:    ts.UTC(),
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		IsManual:     true,
		IsNightShift: req.IsNightShift,
	}

	created, err := a.AttendanceEventRepository.Create(ctx, event)
	if err != nil {
		return attendance.EventResponse{}, fmt.Errorf("failed to create attendance event by %s: %w", createdBy, err)
	}

	return toEventResponse(created), nil
}

// DeleteEvent implements attendance.AttendanceService. Deletion is soft so a
// recomputation audit can still see the original punch row.
func (a *AttendanceServiceImpl) DeleteEvent(ctx context.Context, id string) error {
	event, err := a.AttendanceEventRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, attendance.ErrEventNotFound) {
			return attendance.ErrEventNotFound
		}
		return fmt.Errorf("failed to get attendance event: %w", err)
	}

	if event.DeletedAt != nil {
		return attendance.ErrEventAlreadyDeleted
	}

	if err := a.AttendanceEventRepository.SoftDelete(ctx, id); err != nil {
		return fmt.Errorf("failed to soft delete attendance event: %w", err)
	}
	return nil
}

// checkOfficeRadius rejects a located punch outside the department's office
// radius. Departments without an office location accept punches from
// anywhere, as do punches without coordinates.
func (a *AttendanceServiceImpl) checkOfficeRadius(ctx context.Context, departmentID string, lat, lon *float64) error {
	if lat == nil || lon == nil {
		return nil
	}

	dept, err := a.DepartmentRepository.GetByID(ctx, departmentID)
	if err != nil {
		if errors.Is(err, department.ErrDepartmentNotFound) {
			return department.ErrDepartmentNotFound
		}
		return fmt.Errorf("failed to get department: %w", err)
	}

	if dept.OfficeLatitude == nil || dept.OfficeLongitude == nil || dept.OfficeRadiusM == nil {
		return nil
	}

	distance := utils.CalculateHaversineDistance(*lat, *lon, *dept.OfficeLatitude, *dept.OfficeLongitude)
	if distance > float64(*dept.OfficeRadiusM) {
		return attendance.ErrOutsideAllowedRadius
	}
	return nil
}

func toEventResponse(e attendance.AttendanceEvent) attendance.EventResponse {
	return attendance.EventResponse{
		ID:           e.ID,
		EmployeeID:   e.EmployeeID,
		Type:         string(e.Type),
		Timestamp:    e.Timestamp.Format(time.RFC3339),
		Latitude:     e.Latitude,
		Longitude:    e.Longitude,
		IsManual:     e.IsManual,
		IsNightShift: e.IsNightShift,
		DeviceID:     e.DeviceID,
	}
}
