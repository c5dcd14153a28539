package schedule

import "time"

// RuleSource identifies which configuration layer produced a day's planned
// minutes after precedence resolution.
type RuleSource string

const (
	RuleSourceShift    RuleSource = "SHIFT"
	RuleSourceWeekly   RuleSource = "WEEKLY"
	RuleSourceWorkRule RuleSource = "WORK_RULE"
)

var RuleSourceValues = []string{
	string(RuleSourceShift),
	string(RuleSourceWeekly),
	string(RuleSourceWorkRule),
}

// WorkRule is the per-department default when no weekly rule or shift applies.
type WorkRule struct {
	ID                  string
	DepartmentID        string
	PlannedMinutesGross int
	BreakMinutes        int
	GraceMinutes        int
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// WeeklyRule overrides the WorkRule for one weekday across the department.
type WeeklyRule struct {
	ID                  string
	DepartmentID        string
	Weekday             time.Weekday
	IsWorkday           bool
	PlannedMinutesGross int
	BreakMinutes        int
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// DepartmentShift is a named working window. Start and end carry only the
// wall-clock part; end at or before start means the shift crosses midnight.
type DepartmentShift struct {
	ID           string
	DepartmentID string
	Name         string
	StartLocal   time.Time
	EndLocal     time.Time
	BreakMinutes int
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

func (s DepartmentShift) startMinuteOfDay() int {
	return s.StartLocal.Hour()*60 + s.StartLocal.Minute()
}

func (s DepartmentShift) endMinuteOfDay() int {
	return s.EndLocal.Hour()*60 + s.EndLocal.Minute()
}

func (s DepartmentShift) CrossesMidnight() bool {
	return s.endMinuteOfDay() <= s.startMinuteOfDay()
}

// DurationMinutes is the gross shift length, wrapping past midnight when the
// end is at or before the start.
func (s DepartmentShift) DurationMinutes() int {
	start := s.startMinuteOfDay()
	end := s.endMinuteOfDay()
	if end <= start {
		end += 24 * 60
	}
	return end - start
}

type PlanTargetKind string

const (
	TargetWholeDepartment  PlanTargetKind = "WHOLE_DEPARTMENT"
	TargetOnlyEmployee     PlanTargetKind = "ONLY_EMPLOYEE"
	TargetDepartmentExcept PlanTargetKind = "DEPARTMENT_EXCEPT"
)

var PlanTargetKindValues = []string{
	string(TargetWholeDepartment),
	string(TargetOnlyEmployee),
	string(TargetDepartmentExcept),
}

// SchedulePlan is a temporary scheduling override over a date range, scoped
// to a whole department, a set of employees, or everyone but a set.
type SchedulePlan struct {
	ID           string
	DepartmentID string
	Name         string
	StartDate    time.Time // inclusive, local date
	EndDate      time.Time // inclusive, local date
	ShiftID      *string

	PlannedMinutes *int
	BreakMinutes   *int
	GraceMinutes   *int

	IsLocked          bool
	TargetKind        PlanTargetKind
	TargetEmployeeIDs []string
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ContainsDate reports whether the local calendar day falls inside the plan's
// inclusive date range. Only the date part of the arguments is compared.
func (p SchedulePlan) ContainsDate(day time.Time) bool {
	d := civil(day)
	return !d.Before(civil(p.StartDate)) && !d.After(civil(p.EndDate))
}

// AppliesTo reports whether the plan's targeting matches the employee.
func (p SchedulePlan) AppliesTo(employeeID string) bool {
	switch p.TargetKind {
	case TargetOnlyEmployee:
		return p.containsEmployee(employeeID)
	case TargetDepartmentExcept:
		return !p.containsEmployee(employeeID)
	default:
		return true
	}
}

// TargetSpecificity orders targeting kinds for tie-breaking: an explicit
// employee list beats an exclusion list beats the whole department.
func (p SchedulePlan) TargetSpecificity() int {
	switch p.TargetKind {
	case TargetOnlyEmployee:
		return 2
	case TargetDepartmentExcept:
		return 1
	default:
		return 0
	}
}

func (p SchedulePlan) containsEmployee(employeeID string) bool {
	for _, id := range p.TargetEmployeeIDs {
		if id == employeeID {
			return true
		}
	}
	return false
}

func civil(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ManualDayOverride pins a single employee-day to an explicit outcome. It
// fully replaces event-derived punches for that day.
type ManualDayOverride struct {
	ID         string
	EmployeeID string
	Date       time.Time // local date
	IsAbsent   bool
	InAt       *time.Time // UTC
	OutAt      *time.Time // UTC

	RuleSourceOverride *RuleSource
	ForcedShiftID      *string
	Note               *string
	CreatedBy          *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
