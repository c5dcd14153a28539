package schedule

import "errors"

// Schedule domain errors
var (
	ErrShiftNotFound    = errors.New("department shift not found")
	ErrPlanLocked       = errors.New("schedule plan is locked")
	ErrOverrideNotFound = errors.New("manual day override not found")
	ErrOverrideExists   = errors.New("a manual override already exists for this day")
)
