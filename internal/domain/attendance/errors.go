package attendance

import "errors"

// Attendance domain errors
var (
	ErrEventNotFound        = errors.New("attendance event not found")
	ErrOutsideAllowedRadius = errors.New("punch is outside the allowed office radius")
	ErrEventAlreadyDeleted  = errors.New("attendance event already deleted")
)
