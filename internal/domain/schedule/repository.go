package schedule

import (
	"context"
	"time"
)

// WorkRuleRepository loads the per-department default rule.
type WorkRuleRepository interface {
	GetByDepartment(ctx context.Context, departmentID string) (WorkRule, error)
}

// WeeklyRuleRepository loads per-weekday rules for a department.
type WeeklyRuleRepository interface {
	ListByDepartment(ctx context.Context, departmentID string) ([]WeeklyRule, error)
}

// DepartmentShiftRepository loads shifts. Historical days may reference a
// since-deactivated shift, so listings include inactive rows.
type DepartmentShiftRepository interface {
	ListByDepartment(ctx context.Context, departmentID string) ([]DepartmentShift, error)
	GetByID(ctx context.Context, id string, departmentID string) (DepartmentShift, error)
}

// SchedulePlanRepository loads active plans overlapping a date range.
type SchedulePlanRepository interface {
	ListActiveOverlapping(ctx context.Context, departmentID string, from, to time.Time) ([]SchedulePlan, error)
}

// ManualOverrideRepository stores per-day manual overrides.
type ManualOverrideRepository interface {
	ListForRange(ctx context.Context, employeeID string, from, to time.Time) ([]ManualDayOverride, error)
	GetByID(ctx context.Context, id string) (ManualDayOverride, error)
	// Create returns ErrOverrideExists when the employee already has an
	// override on that day.
	Create(ctx context.Context, override ManualDayOverride) (ManualDayOverride, error)
	Update(ctx context.Context, override ManualDayOverride) error
	Delete(ctx context.Context, id string) error
}
