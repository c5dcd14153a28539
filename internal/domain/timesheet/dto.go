package timesheet

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DepartmentSummaryFilter scopes ComputeDepartmentMonthSummary. Exactly one
// of DepartmentID or RegionID is expected; both unset means the whole company.
type DepartmentSummaryFilter struct {
	DepartmentID    *string
	RegionID        *string
	Year            int
	Month           time.Month
	IncludeInactive bool
}

// EmployeeMonthlyTotals is one employee row inside a department summary.
type EmployeeMonthlyTotals struct {
	EmployeeID   string
	EmployeeName string
	BaseSalary   *decimal.Decimal
	Totals       MonthlyTotals

	AnnualOvertimeUsedMinutes int
	AnnualOvertimeCapExceeded bool
}

type DepartmentMonthSummary struct {
	Year  int
	Month time.Month

	EmployeeCount  int
	ActiveCount    int
	InactiveCount  int
	Totals         MonthlyTotals
	Employees      []EmployeeMonthlyTotals
	CapExceededNum int
}

type TimesheetService interface {
	// ComputeEmployeeMonth recomputes the full January-through-month range
	// for annual cap look-back and returns the month slice.
	ComputeEmployeeMonth(ctx context.Context, employeeID string, year int, month time.Month) (MonthlyReport, error)

	ComputeDepartmentMonthSummary(ctx context.Context, filter DepartmentSummaryFilter) (DepartmentMonthSummary, error)
}

// =============================================================================
// REPORT WIRE TYPES
// =============================================================================

type DayRecordResponse struct {
	Date     string  `json:"date"` // 2006-01-02, local
	Status   string  `json:"status"`
	CheckIn  *string `json:"check_in,omitempty"`  // RFC3339, UTC
	CheckOut *string `json:"check_out,omitempty"` // RFC3339, UTC

	CheckInLatitude   *float64 `json:"check_in_latitude,omitempty"`
	CheckInLongitude  *float64 `json:"check_in_longitude,omitempty"`
	CheckOutLatitude  *float64 `json:"check_out_latitude,omitempty"`
	CheckOutLongitude *float64 `json:"check_out_longitude,omitempty"`

	WorkedMinutes         int `json:"worked_minutes"`
	PlanOvertimeMinutes   int `json:"plan_overtime_minutes"`
	LegalExtraWorkMinutes int `json:"legal_extra_work_minutes"`
	LegalOvertimeMinutes  int `json:"legal_overtime_minutes"`
	MissingMinutes        int `json:"missing_minutes"`

	RuleSource            string `json:"rule_source"`
	AppliedPlannedMinutes int    `json:"applied_planned_minutes"`
	AppliedBreakMinutes   int    `json:"applied_break_minutes"`

	LeaveType *string `json:"leave_type,omitempty"`
	ShiftID   *string `json:"shift_id,omitempty"`
	ShiftName *string `json:"shift_name,omitempty"`

	Flags []string `json:"flags"`
}

type WeekSummaryResponse struct {
	Year                int      `json:"year"`
	Week                int      `json:"week"`
	WorkedMinutes       int      `json:"worked_minutes"`
	PlanOvertimeMinutes int      `json:"plan_overtime_minutes"`
	NormalMinutes       int      `json:"normal_minutes"`
	ExtraWorkMinutes    int      `json:"extra_work_minutes"`
	OvertimeMinutes     int      `json:"overtime_minutes"`
	Flags               []string `json:"flags"`
}

type MonthlyTotalsResponse struct {
	WorkedMinutes         int `json:"worked_minutes"`
	PlanOvertimeMinutes   int `json:"plan_overtime_minutes"`
	LegalExtraWorkMinutes int `json:"legal_extra_work_minutes"`
	LegalOvertimeMinutes  int `json:"legal_overtime_minutes"`
	IncompleteDays        int `json:"incomplete_days"`
}

type MonthlyReportResponse struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	DepartmentID string `json:"department_id"`
	Year         int    `json:"year"`
	Month        int    `json:"month"`

	Days         []DayRecordResponse   `json:"days"`
	Totals       MonthlyTotalsResponse `json:"totals"`
	WeeklyTotals []WeekSummaryResponse `json:"weekly_totals"`

	AnnualOvertimeUsedMinutes      int  `json:"annual_overtime_used_minutes"`
	AnnualOvertimeRemainingMinutes int  `json:"annual_overtime_remaining_minutes"`
	AnnualOvertimeCapExceeded      bool `json:"annual_overtime_cap_exceeded"`
}

type EmployeeMonthlyTotalsResponse struct {
	EmployeeID                string                `json:"employee_id"`
	EmployeeName              string                `json:"employee_name"`
	BaseSalary                *decimal.Decimal      `json:"base_salary,omitempty"`
	Totals                    MonthlyTotalsResponse `json:"totals"`
	AnnualOvertimeUsedMinutes int                   `json:"annual_overtime_used_minutes"`
	AnnualOvertimeCapExceeded bool                  `json:"annual_overtime_cap_exceeded"`
}

type DepartmentMonthSummaryResponse struct {
	Year           int                             `json:"year"`
	Month          int                             `json:"month"`
	EmployeeCount  int                             `json:"employee_count"`
	ActiveCount    int                             `json:"active_count"`
	InactiveCount  int                             `json:"inactive_count"`
	CapExceededNum int                             `json:"cap_exceeded_count"`
	Totals         MonthlyTotalsResponse           `json:"totals"`
	Employees      []EmployeeMonthlyTotalsResponse `json:"employees"`
}

func ToMonthlyReportResponse(r MonthlyReport) MonthlyReportResponse {
	resp := MonthlyReportResponse{
		EmployeeID:                     r.EmployeeID,
		EmployeeName:                   r.EmployeeName,
		DepartmentID:                   r.DepartmentID,
		Year:                           r.Year,
		Month:                          int(r.Month),
		Totals:                         toMonthlyTotalsResponse(r.Totals),
		AnnualOvertimeUsedMinutes:      r.AnnualOvertimeUsedMinutes,
		AnnualOvertimeRemainingMinutes: r.AnnualOvertimeRemainingMinutes,
		AnnualOvertimeCapExceeded:      r.AnnualOvertimeCapExceeded,
	}
	resp.Days = make([]DayRecordResponse, 0, len(r.Days))
	for _, d := range r.Days {
		resp.Days = append(resp.Days, toDayRecordResponse(d))
	}
	resp.WeeklyTotals = make([]WeekSummaryResponse, 0, len(r.WeeklyTotals))
	for _, w := range r.WeeklyTotals {
		resp.WeeklyTotals = append(resp.WeeklyTotals, WeekSummaryResponse{
			Year:                w.Year,
			Week:                w.Week,
			WorkedMinutes:       w.WorkedMinutes,
			PlanOvertimeMinutes: w.PlanOvertimeMinutes,
			NormalMinutes:       w.NormalMinutes,
			ExtraWorkMinutes:    w.ExtraWorkMinutes,
			OvertimeMinutes:     w.OvertimeMinutes,
			Flags:               flagStrings(w.Flags),
		})
	}
	return resp
}

func ToDepartmentMonthSummaryResponse(s DepartmentMonthSummary) DepartmentMonthSummaryResponse {
	resp := DepartmentMonthSummaryResponse{
		Year:           s.Year,
		Month:          int(s.Month),
		EmployeeCount:  s.EmployeeCount,
		ActiveCount:    s.ActiveCount,
		InactiveCount:  s.InactiveCount,
		CapExceededNum: s.CapExceededNum,
		Totals:         toMonthlyTotalsResponse(s.Totals),
	}
	resp.Employees = make([]EmployeeMonthlyTotalsResponse, 0, len(s.Employees))
	for _, e := range s.Employees {
		resp.Employees = append(resp.Employees, EmployeeMonthlyTotalsResponse{
			EmployeeID:                e.EmployeeID,
			EmployeeName:              e.EmployeeName,
			BaseSalary:                e.BaseSalary,
			Totals:                    toMonthlyTotalsResponse(e.Totals),
			AnnualOvertimeUsedMinutes: e.AnnualOvertimeUsedMinutes,
			AnnualOvertimeCapExceeded: e.AnnualOvertimeCapExceeded,
		})
	}
	return resp
}

func toDayRecordResponse(d DayRecord) DayRecordResponse {
	return DayRecordResponse{
		Date:                  d.Date.Format("2006-01-02"),
		Status:                string(d.Status),
		CheckIn:               rfc3339Ptr(d.CheckIn),
		CheckOut:              rfc3339Ptr(d.CheckOut),
		CheckInLatitude:       d.CheckInLatitude,
		CheckInLongitude:      d.CheckInLongitude,
		CheckOutLatitude:      d.CheckOutLatitude,
		CheckOutLongitude:     d.CheckOutLongitude,
		WorkedMinutes:         d.WorkedMinutes,
		PlanOvertimeMinutes:   d.PlanOvertimeMinutes,
		LegalExtraWorkMinutes: d.LegalExtraWorkMinutes,
		LegalOvertimeMinutes:  d.LegalOvertimeMinutes,
		MissingMinutes:        d.MissingMinutes,
		RuleSource:            string(d.RuleSource),
		AppliedPlannedMinutes: d.AppliedPlannedMinutes,
		AppliedBreakMinutes:   d.AppliedBreakMinutes,
		LeaveType:             d.LeaveType,
		ShiftID:               d.ShiftID,
		ShiftName:             d.ShiftName,
		Flags:                 flagStrings(d.Flags),
	}
}

func toMonthlyTotalsResponse(t MonthlyTotals) MonthlyTotalsResponse {
	return MonthlyTotalsResponse{
		WorkedMinutes:         t.WorkedMinutes,
		PlanOvertimeMinutes:   t.PlanOvertimeMinutes,
		LegalExtraWorkMinutes: t.LegalExtraWorkMinutes,
		LegalOvertimeMinutes:  t.LegalOvertimeMinutes,
		IncompleteDays:        t.IncompleteDays,
	}
}

func flagStrings(flags []Flag) []string {
	out := make([]string, 0, len(flags))
	for _, f := range flags {
		out = append(out, string(f))
	}
	return out
}

func rfc3339Ptr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}
