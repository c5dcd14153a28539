package timesheet

import (
	"time"

	"github.com/clockwise-hq/timekeep-backend-go/internal/domain/timesheet"
)

// DayMetricsInput is everything the day metrics calculation needs. The
// calculation is a pure function of this struct.
type DayMetricsInput struct {
	FirstIn *time.Time // UTC
	LastOut *time.Time // UTC

	PlannedMinutesNet int
	BreakMinutes      int

	DailyMaxMinutes     int
	NightWorkMaxMinutes int
	EnforceMinBreak     bool
	IsNightShift        bool
}

// CalculateDayMetrics turns a matched punch pair plus effective rule values
// into gross/net worked minutes, plan overtime, and compliance observations.
// Compliance exceedance never fails the day; it is reported on flags by the
// caller.
func CalculateDayMetrics(in DayMetricsInput) timesheet.DayComputation {
	if in.FirstIn == nil || in.LastOut == nil {
		return timesheet.DayComputation{Status: timesheet.DayStatusIncomplete}
	}

	gross := int(in.LastOut.Sub(*in.FirstIn).Minutes())
	if gross < 0 {
		gross = 0
	}

	legalBreak := legalMinimumBreak(gross)
	effectiveBreak := in.BreakMinutes
	if in.EnforceMinBreak && legalBreak > effectiveBreak {
		effectiveBreak = legalBreak
	}
	minBreakNotMet := in.EnforceMinBreak && in.BreakMinutes < legalBreak && gross > 0

	worked := gross - effectiveBreak
	if worked < 0 {
		worked = 0
	}

	overtime := worked - in.PlannedMinutesNet
	if overtime < 0 {
		overtime = 0
	}

	return timesheet.DayComputation{
		Status:                timesheet.DayStatusOK,
		GrossMinutes:          gross,
		WorkedMinutes:         worked,
		OvertimeMinutes:       overtime,
		EffectiveBreakMinutes: effectiveBreak,
		MinBreakNotMet:        minBreakNotMet,
		DailyMaxExceeded:      gross > in.DailyMaxMinutes,
		NightWorkExceeded:     in.IsNightShift && gross > in.NightWorkMaxMinutes,
	}
}

// legalMinimumBreak is the statutory break for a gross working duration.
func legalMinimumBreak(grossMinutes int) int {
	switch {
	case grossMinutes <= 240:
		return 15
	case grossMinutes <= 450:
		return 30
	default:
		return 60
	}
}
