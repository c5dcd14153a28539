package attendance

import (
	"github.com/clockwise-hq/timekeep-backend-go/internal/pkg/validator"
)

// PunchRequest records a device clock-in or clock-out.
type PunchRequest struct {
	EmployeeID   string   `json:"employee_id"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	IsNightShift bool     `json:"is_night_shift"`
	DeviceID     *string  `json:"device_id"`
}

func (r PunchRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if (r.Latitude == nil) != (r.Longitude == nil) {
		errs = append(errs, validator.ValidationError{Field: "latitude", Message: "latitude and longitude must be provided together"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CreateEventRequest records an admin-created punch with an explicit
// timestamp. Such events carry the manual source flag into the engine.
type CreateEventRequest struct {
	EmployeeID   string   `json:"employee_id"`
	Type         string   `json:"type"`      // IN or OUT
	Timestamp    string   `json:"timestamp"` // RFC3339, UTC
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	IsNightShift bool     `json:"is_night_shift"`
}

func (r CreateEventRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if r.Type != string(EventIn) && r.Type != string(EventOut) {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "type must be IN or OUT"})
	}
	if !validator.IsValidRFC3339(r.Timestamp) {
		errs = append(errs, validator.ValidationError{Field: "timestamp", Message: "timestamp must be RFC3339"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EventResponse struct {
	ID           string   `json:"id"`
	EmployeeID   string   `json:"employee_id"`
	Type         string   `json:"type"`
	Timestamp    string   `json:"timestamp"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	IsManual     bool     `json:"is_manual"`
	IsNightShift bool     `json:"is_night_shift"`
	DeviceID     *string  `json:"device_id,omitempty"`
}
