package timesheet

import "errors"

// Timesheet domain errors. Not-found is the only hard failure the engine
// raises; every data anomaly degrades to a flag on the affected day.
var (
	ErrLaborProfileNotFound = errors.New("labor profile not found")
	ErrWorkRuleNotFound     = errors.New("work rule not found for department")
	ErrInvalidReportMonth   = errors.New("report month is out of range")
)
