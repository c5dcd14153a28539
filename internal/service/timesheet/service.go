package timesheet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clockwise-hq/timekeep-backend-go/internal/domain/attendance"
	"github.com/clockwise-hq/timekeep-backend-go/internal/domain/department"
	"github.com/clockwise-hq/timekeep-backend-go/internal/domain/employee"
	"github.com/clockwise-hq/timekeep-backend-go/internal/domain/leave"
	"github.com/clockwise-hq/timekeep-backend-go/internal/domain/schedule"
	"github.com/clockwise-hq/timekeep-backend-go/internal/domain/timesheet"
)

type TimesheetServiceImpl struct {
	employee.EmployeeRepository
	department.DepartmentRepository
	attendance.AttendanceEventRepository
	leave.LeaveRepository
	schedule.WorkRuleRepository
	schedule.WeeklyRuleRepository
	schedule.DepartmentShiftRepository
	schedule.SchedulePlanRepository
	schedule.ManualOverrideRepository
	timesheet.LaborProfileRepository

	defaultTimezone string
}

func NewTimesheetService(
	employeeRepo employee.EmployeeRepository,
	departmentRepo department.DepartmentRepository,
	eventRepo attendance.AttendanceEventRepository,
	leaveRepo leave.LeaveRepository,
	workRuleRepo schedule.WorkRuleRepository,
	weeklyRuleRepo schedule.WeeklyRuleRepository,
	shiftRepo schedule.DepartmentShiftRepository,
	planRepo schedule.SchedulePlanRepository,
	overrideRepo schedule.ManualOverrideRepository,
	laborProfileRepo timesheet.LaborProfileRepository,
	defaultTimezone string,
) timesheet.TimesheetService {
	return &TimesheetServiceImpl{
		EmployeeRepository:        employeeRepo,
		DepartmentRepository:      departmentRepo,
		AttendanceEventRepository: eventRepo,
		LeaveRepository:           leaveRepo,
		WorkRuleRepository:        workRuleRepo,
		WeeklyRuleRepository:      weeklyRuleRepo,
		DepartmentShiftRepository: shiftRepo,
		SchedulePlanRepository:    planRepo,
		ManualOverrideRepository:  overrideRepo,
		LaborProfileRepository:    laborProfileRepo,
		defaultTimezone:           defaultTimezone,
	}
}

// ComputeEmployeeMonth implements timesheet.TimesheetService. It snapshots
// every input for January 1 through month-end, builds one DayRecord per
// calendar day, aggregates weeks against the annual overtime cap, and
// returns the month slice. Recomputing with unchanged inputs yields an
// identical report.
func (s *TimesheetServiceImpl) ComputeEmployeeMonth(ctx context.Context, employeeID string, year int, month time.Month) (timesheet.MonthlyReport, error) {
	if month < time.January || month > time.December || year < 1 {
		return timesheet.MonthlyReport{}, timesheet.ErrInvalidReportMonth
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return timesheet.MonthlyReport{}, employee.ErrEmployeeNotFound
		}
		return timesheet.MonthlyReport{}, fmt.Errorf("failed to get employee: %w", err)
	}

	dept, err := s.DepartmentRepository.GetByID(ctx, emp.DepartmentID)
	if err != nil {
		if errors.Is(err, department.ErrDepartmentNotFound) {
			return timesheet.MonthlyReport{}, department.ErrDepartmentNotFound
		}
		return timesheet.MonthlyReport{}, fmt.Errorf("failed to get department: %w", err)
	}

	loc := s.resolveLocation(dept.Timezone)

	rangeStart := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	rangeEnd := monthStart.AddDate(0, 1, -1)

	inputs, err := s.snapshotInputs(ctx, emp, dept, loc, rangeStart, rangeEnd)
	if err != nil {
		return timesheet.MonthlyReport{}, err
	}

	days := BuildDayRecords(inputs)
	weeks, annual := AggregateWeeks(days, emp.ContractWeeklyMinutes, inputs.Profile)

	report := timesheet.MonthlyReport{
		EmployeeID:                     emp.ID,
		EmployeeName:                   emp.FullName,
		DepartmentID:                   emp.DepartmentID,
		Year:                           year,
		Month:                          month,
		AnnualOvertimeUsedMinutes:      annual.UsedMinutes,
		AnnualOvertimeRemainingMinutes: annual.RemainingMinutes,
		AnnualOvertimeCapExceeded:      annual.CapExceeded,
		LaborProfile:                   inputs.Profile,
	}

	monthWeeks := make(map[[2]int]bool)
	for _, d := range days {
		if d.Date.Month() != month {
			continue
		}
		report.Days = append(report.Days, d)
		report.Totals.WorkedMinutes += d.WorkedMinutes
		report.Totals.PlanOvertimeMinutes += d.PlanOvertimeMinutes
		report.Totals.LegalExtraWorkMinutes += d.LegalExtraWorkMinutes
		report.Totals.LegalOvertimeMinutes += d.LegalOvertimeMinutes
		if d.Status == timesheet.DayStatusIncomplete {
			report.Totals.IncompleteDays++
		}
		y, w := d.Date.ISOWeek()
		monthWeeks[[2]int{y, w}] = true
	}

	for _, wk := range weeks {
		if monthWeeks[[2]int{wk.Year, wk.Week}] {
			report.WeeklyTotals = append(report.WeeklyTotals, wk)
		}
	}

	return report, nil
}

// ComputeDepartmentMonthSummary implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) ComputeDepartmentMonthSummary(ctx context.Context, filter timesheet.DepartmentSummaryFilter) (timesheet.DepartmentMonthSummary, error) {
	departments, err := s.resolveDepartments(ctx, filter)
	if err != nil {
		return timesheet.DepartmentMonthSummary{}, err
	}

	summary := timesheet.DepartmentMonthSummary{
		Year:  filter.Year,
		Month: filter.Month,
	}

	for _, dept := range departments {
		employees, err := s.EmployeeRepository.ListByDepartment(ctx, dept.ID, filter.IncludeInactive)
		if err != nil {
			return timesheet.DepartmentMonthSummary{}, fmt.Errorf("failed to list employees: %w", err)
		}

		for _, emp := range employees {
			report, err := s.ComputeEmployeeMonth(ctx, emp.ID, filter.Year, filter.Month)
			if err != nil {
				return timesheet.DepartmentMonthSummary{}, fmt.Errorf("failed to compute month for employee %s: %w", emp.ID, err)
			}

			summary.EmployeeCount++
			if emp.IsActive {
				summary.ActiveCount++
			} else {
				summary.InactiveCount++
			}
			if report.AnnualOvertimeCapExceeded {
				summary.CapExceededNum++
			}

			summary.Totals.WorkedMinutes += report.Totals.WorkedMinutes
			summary.Totals.PlanOvertimeMinutes += report.Totals.PlanOvertimeMinutes
			summary.Totals.LegalExtraWorkMinutes += report.Totals.LegalExtraWorkMinutes
			summary.Totals.LegalOvertimeMinutes += report.Totals.LegalOvertimeMinutes
			summary.Totals.IncompleteDays += report.Totals.IncompleteDays

			summary.Employees = append(summary.Employees, timesheet.EmployeeMonthlyTotals{
				EmployeeID:                emp.ID,
				EmployeeName:              emp.FullName,
				BaseSalary:                emp.BaseSalary,
				Totals:                    report.Totals,
				AnnualOvertimeUsedMinutes: report.AnnualOvertimeUsedMinutes,
				AnnualOvertimeCapExceeded: report.AnnualOvertimeCapExceeded,
			})
		}
	}

	return summary, nil
}

// snapshotInputs takes one consistent read of every collection the engine
// consumes before any computation starts.
func (s *TimesheetServiceImpl) snapshotInputs(ctx context.Context, emp employee.Employee, dept department.Department, loc *time.Location, rangeStart, rangeEnd time.Time) (BuildInputs, error) {
	// One extra day of events so the last day of the range can borrow a
	// cross-midnight checkout.
	utcFrom := rangeStart.UTC()
	utcTo := rangeEnd.AddDate(0, 0, 2).UTC()

	events, err := s.AttendanceEventRepository.ListForRange(ctx, emp.ID, utcFrom, utcTo)
	if err != nil {
		return BuildInputs{}, fmt.Errorf("failed to list attendance events: %w", err)
	}

	leaves, err := s.LeaveRepository.ListApprovedOverlapping(ctx, emp.ID, rangeStart, rangeEnd)
	if err != nil {
		return BuildInputs{}, fmt.Errorf("failed to list leaves: %w", err)
	}

	overrides, err := s.ManualOverrideRepository.ListForRange(ctx, emp.ID, rangeStart, rangeEnd)
	if err != nil {
		return BuildInputs{}, fmt.Errorf("failed to list manual overrides: %w", err)
	}

	weeklyRules, err := s.WeeklyRuleRepository.ListByDepartment(ctx, emp.DepartmentID)
	if err != nil {
		return BuildInputs{}, fmt.Errorf("failed to list weekly rules: %w", err)
	}

	shifts, err := s.DepartmentShiftRepository.ListByDepartment(ctx, emp.DepartmentID)
	if err != nil {
		return BuildInputs{}, fmt.Errorf("failed to list department shifts: %w", err)
	}

	plans, err := s.SchedulePlanRepository.ListActiveOverlapping(ctx, emp.DepartmentID, rangeStart, rangeEnd)
	if err != nil {
		return BuildInputs{}, fmt.Errorf("failed to list schedule plans: %w", err)
	}

	workRule, err := s.WorkRuleRepository.GetByDepartment(ctx, emp.DepartmentID)
	if err != nil {
		if !errors.Is(err, timesheet.ErrWorkRuleNotFound) {
			return BuildInputs{}, fmt.Errorf("failed to get work rule: %w", err)
		}
		// A department without a configured rule still gets a full report;
		// days fall through to a zero-minute default.
		workRule = schedule.WorkRule{DepartmentID: emp.DepartmentID}
	}

	profile, err := s.LaborProfileRepository.GetByCompany(ctx, dept.CompanyID)
	if err != nil {
		if !errors.Is(err, timesheet.ErrLaborProfileNotFound) {
			return BuildInputs{}, fmt.Errorf("failed to get labor profile: %w", err)
		}
		profile = timesheet.DefaultLaborProfile()
	}

	weeklyByDay := make(map[time.Weekday]schedule.WeeklyRule, len(weeklyRules))
	for _, wr := range weeklyRules {
		weeklyByDay[wr.Weekday] = wr
	}

	shiftByID := make(map[string]schedule.DepartmentShift, len(shifts))
	for _, sh := range shifts {
		shiftByID[sh.ID] = sh
	}

	overrideByDay := make(map[string]schedule.ManualDayOverride, len(overrides))
	for _, ov := range overrides {
		overrideByDay[ov.Date.Format(dateKeyLayout)] = ov
	}

	return BuildInputs{
		Employee:    emp,
		Location:    loc,
		RangeStart:  rangeStart,
		RangeEnd:    rangeEnd,
		WorkRule:    workRule,
		WeeklyRules: weeklyByDay,
		Shifts:      shiftByID,
		Plans:       plans,
		Overrides:   overrideByDay,
		Leaves:      leaves,
		Events:      events,
		Profile:     profile,
	}, nil
}

func (s *TimesheetServiceImpl) resolveDepartments(ctx context.Context, filter timesheet.DepartmentSummaryFilter) ([]department.Department, error) {
	switch {
	case filter.DepartmentID != nil:
		dept, err := s.DepartmentRepository.GetByID(ctx, *filter.DepartmentID)
		if err != nil {
			if errors.Is(err, department.ErrDepartmentNotFound) {
				return nil, department.ErrDepartmentNotFound
			}
			return nil, fmt.Errorf("failed to get department: %w", err)
		}
		return []department.Department{dept}, nil
	case filter.RegionID != nil:
		departments, err := s.DepartmentRepository.ListByRegion(ctx, *filter.RegionID)
		if err != nil {
			return nil, fmt.Errorf("failed to list departments by region: %w", err)
		}
		return departments, nil
	default:
		departments, err := s.DepartmentRepository.ListAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list departments: %w", err)
		}
		return departments, nil
	}
}

// resolveLocation loads the department's attendance zone, falling back to
// the configured default and finally UTC. The zone is injected per call, so
// a configuration change takes effect on the next computation.
func (s *TimesheetServiceImpl) resolveLocation(timezone string) *time.Location {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err == nil {
			return loc
		}
	}
	if s.defaultTimezone != "" {
		if loc, err := time.LoadLocation(s.defaultTimezone); err == nil {
			return loc
		}
	}
	return time.UTC
}
