package timesheet

import (
	"time"

	"github.com/clockwise-hq/timekeep-backend-go/internal/domain/schedule"
)

type DayStatus string

const (
	DayStatusOK         DayStatus = "OK"
	DayStatusIncomplete DayStatus = "INCOMPLETE"
	DayStatusLeave      DayStatus = "LEAVE"
	DayStatusOff        DayStatus = "OFF"
)

// RoundingMode controls how legal overtime is rounded before it is charged
// against the annual cap.
type RoundingMode string

const (
	RoundingOff     RoundingMode = "OFF"
	RoundingUp30Min RoundingMode = "ROUND_UP_30MIN"
)

// LaborProfile holds the compliance constants a company operates under.
type LaborProfile struct {
	ID                       string
	CompanyID                string
	WeeklyLegalNormMinutes   int
	DailyMaxMinutes          int
	NightWorkMaxMinutes      int
	EnforceMinimumBreak      bool
	AnnualOvertimeCapMinutes int
	OvertimeRounding         RoundingMode
	UpdatedAt                time.Time
}

// DefaultLaborProfile is used when a company has no profile configured:
// 45h legal week, 12h daily ceiling, 8h night ceiling, 180h annual
// overtime cap, break enforcement on, no rounding.
func DefaultLaborProfile() LaborProfile {
	return LaborProfile{
		WeeklyLegalNormMinutes:   45 * 60,
		DailyMaxMinutes:          12 * 60,
		NightWorkMaxMinutes:      8 * 60,
		EnforceMinimumBreak:      true,
		AnnualOvertimeCapMinutes: 180 * 60,
		OvertimeRounding:         RoundingOff,
	}
}

// DayComputation is the result of the pure day metrics calculation for a
// single matched (first-in, last-out) pair.
type DayComputation struct {
	Status                DayStatus
	GrossMinutes          int
	WorkedMinutes         int
	OvertimeMinutes       int
	EffectiveBreakMinutes int
	MinBreakNotMet        bool
	DailyMaxExceeded      bool
	NightWorkExceeded     bool
}

// DayRecord is one computed calendar day. Records are derived on every call
// and never persisted by this subsystem.
type DayRecord struct {
	Date     time.Time // local calendar day, midnight in the attendance zone
	Status   DayStatus
	CheckIn  *time.Time // UTC
	CheckOut *time.Time // UTC

	CheckInLatitude   *float64
	CheckInLongitude  *float64
	CheckOutLatitude  *float64
	CheckOutLongitude *float64

	WorkedMinutes         int
	PlanOvertimeMinutes   int
	LegalExtraWorkMinutes int
	LegalOvertimeMinutes  int
	MissingMinutes        int

	RuleSource            schedule.RuleSource
	AppliedPlannedMinutes int
	AppliedBreakMinutes   int

	LeaveType *string
	ShiftID   *string
	ShiftName *string

	Flags []Flag // sorted, no duplicates
}

// WeekSummary is one ISO-week bucket of the report range.
type WeekSummary struct {
	Year int
	Week int

	WorkedMinutes       int
	PlanOvertimeMinutes int

	// Split of worked minutes against the contractual cap and the legal
	// weekly norm: normal + extra work + overtime == worked (before rounding).
	NormalMinutes    int
	ExtraWorkMinutes int
	OvertimeMinutes  int

	Flags []Flag
}

type MonthlyTotals struct {
	WorkedMinutes         int
	PlanOvertimeMinutes   int
	LegalExtraWorkMinutes int
	LegalOvertimeMinutes  int
	IncompleteDays        int
}

// MonthlyReport is the exposed result of ComputeEmployeeMonth.
type MonthlyReport struct {
	EmployeeID   string
	EmployeeName string
	DepartmentID string
	Year         int
	Month        time.Month

	Days         []DayRecord
	Totals       MonthlyTotals
	WeeklyTotals []WeekSummary

	AnnualOvertimeUsedMinutes      int
	AnnualOvertimeRemainingMinutes int
	AnnualOvertimeCapExceeded      bool

	LaborProfile LaborProfile
}
