package response

import (
	"errors"
	"net/http"

	"github.com/clockwise-hq/timekeep-backend-go/internal/domain/attendance"
	"github.com/clockwise-hq/timekeep-backend-go/internal/domain/department"
	"github.com/clockwise-hq/timekeep-backend-go/internal/domain/employee"
	"github.com/clockwise-hq/timekeep-backend-go/internal/domain/schedule"
	"github.com/clockwise-hq/timekeep-backend-go/internal/domain/timesheet"
	"github.com/clockwise-hq/timekeep-backend-go/internal/pkg/apikey"
	"github.com/clockwise-hq/timekeep-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Employee / department domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, department.ErrDepartmentNotFound):
		NotFound(w, "Department not found")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrEventNotFound):
		NotFound(w, "Attendance event not found")
	case errors.Is(err, attendance.ErrOutsideAllowedRadius):
		Forbidden(w, "Punch is outside the allowed office radius")
	case errors.Is(err, attendance.ErrEventAlreadyDeleted):
		Conflict(w, "Attendance event already deleted")

	// Schedule domain errors
	case errors.Is(err, schedule.ErrShiftNotFound):
		NotFound(w, "Department shift not found")
	case errors.Is(err, schedule.ErrPlanLocked):
		Conflict(w, "Schedule plan is locked")
	case errors.Is(err, schedule.ErrOverrideNotFound):
		NotFound(w, "Manual override not found")
	case errors.Is(err, schedule.ErrOverrideExists):
		Conflict(w, "A manual override already exists for this day")

	// Timesheet domain errors
	case errors.Is(err, timesheet.ErrInvalidReportMonth):
		BadRequest(w, "Invalid report month", nil)
	case errors.Is(err, timesheet.ErrWorkRuleNotFound):
		NotFound(w, "Work rule not found")
	case errors.Is(err, timesheet.ErrLaborProfileNotFound):
		NotFound(w, "Labor profile not found")

	// Device auth
	case errors.Is(err, apikey.ErrInvalidKey):
		Unauthorized(w, "Invalid device API key")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
