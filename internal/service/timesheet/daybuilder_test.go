package timesheet

import (
	"testing"
	"time"

	"github.com/clockwise-hq/timekeep-backend-go/internal/domain/attendance"
	"github.com/clockwise-hq/timekeep-backend-go/internal/domain/employee"
	"github.com/clockwise-hq/timekeep-backend-go/internal/domain/leave"
	"github.com/clockwise-hq/timekeep-backend-go/internal/domain/schedule"
	"github.com/clockwise-hq/timekeep-backend-go/internal/domain/timesheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func testProfile() timesheet.LaborProfile {
	return timesheet.LaborProfile{
		WeeklyLegalNormMinutes:   2700,
		DailyMaxMinutes:          720,
		NightWorkMaxMinutes:      480,
		EnforceMinimumBreak:      false,
		AnnualOvertimeCapMinutes: 10800,
		OvertimeRounding:         timesheet.RoundingOff,
	}
}

func testInputs(from, to time.Time, events []attendance.AttendanceEvent) BuildInputs {
	return BuildInputs{
		Employee:    employee.Employee{ID: "emp-1", DepartmentID: "dept-1", IsActive: true},
		Location:    time.UTC,
		RangeStart:  from,
		RangeEnd:    to,
		WorkRule:    schedule.WorkRule{DepartmentID: "dept-1", PlannedMinutesGross: 540, BreakMinutes: 60, GraceMinutes: 10},
		WeeklyRules: map[time.Weekday]schedule.WeeklyRule{},
		Shifts:      map[string]schedule.DepartmentShift{},
		Overrides:   map[string]schedule.ManualDayOverride{},
		Events:      events,
		Profile:     testProfile(),
	}
}

func event(id string, typ attendance.EventType, t time.Time) attendance.AttendanceEvent {
	return attendance.AttendanceEvent{
		ID:         id,
		EmployeeID: "emp-1",
		Type:       typ,
		Timestamp:  t,
	}
}

func at(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, time.UTC)
}

func flagsOf(rec timesheet.DayRecord) []string {
	out := make([]string, 0, len(rec.Flags))
	for _, f := range rec.Flags {
		out = append(out, string(f))
	}
	return out
}

// =============================================================================
// TESTS
// =============================================================================

func TestBuildDayRecords_OneRecordPerDay(t *testing.T) {
	t.Parallel()

	from := datePM(2025, time.June, 1)
	to := datePM(2025, time.June, 30)

	days := BuildDayRecords(testInputs(from, to, nil))

	require.Len(t, days, 30)
	for i, d := range days {
		assert.Equal(t, from.AddDate(0, 0, i), d.Date)
	}
}

func TestBuildDayRecords_NormalDay(t *testing.T) {
	t.Parallel()

	day := datePM(2025, time.June, 2) // Monday
	events := []attendance.AttendanceEvent{
		event("e1", attendance.EventIn, at(day, 9, 0)),
		event("e2", attendance.EventOut, at(day, 18, 0)),
	}

	days := BuildDayRecords(testInputs(day, day, events))
	require.Len(t, days, 1)

	rec := days[0]
	assert.Equal(t, timesheet.DayStatusOK, rec.Status)
	require.NotNil(t, rec.CheckIn)
	require.NotNil(t, rec.CheckOut)
	assert.Equal(t, at(day, 9, 0), *rec.CheckIn)
	assert.Equal(t, at(day, 18, 0), *rec.CheckOut)
	assert.Equal(t, 480, rec.WorkedMinutes)
	assert.Equal(t, 0, rec.PlanOvertimeMinutes)
	assert.Equal(t, 0, rec.MissingMinutes)
	assert.Equal(t, schedule.RuleSourceWorkRule, rec.RuleSource)
	assert.Empty(t, rec.Flags)
}

func TestBuildDayRecords_CrossMidnightCheckout(t *testing.T) {
	t.Parallel()

	day := datePM(2025, time.June, 2)
	next := day.AddDate(0, 0, 1)
	events := []attendance.AttendanceEvent{
		event("e1", attendance.EventIn, at(day, 23, 30)),
		event("e2", attendance.EventOut, at(next, 1, 15)),
	}

	days := BuildDayRecords(testInputs(day, next, events))
	require.Len(t, days, 2)

	rec := days[0]
	assert.Equal(t, timesheet.DayStatusOK, rec.Status)
	require.NotNil(t, rec.CheckIn)
	require.NotNil(t, rec.CheckOut)
	assert.Equal(t, at(next, 1, 15), *rec.CheckOut)
	assert.Contains(t, flagsOf(rec), "CROSS_MIDNIGHT_CHECKOUT")
	assert.Equal(t, 45, rec.WorkedMinutes, "105min gross minus the 60min break")

	// The borrowed OUT is consumed: the next day has no events left.
	assert.Nil(t, days[1].CheckOut)
	assert.NotContains(t, flagsOf(days[1]), "CROSS_MIDNIGHT_CHECKOUT")
}

func TestBuildDayRecords_CheckoutNotStolenFromNextShift(t *testing.T) {
	t.Parallel()

	day := datePM(2025, time.June, 2)
	next := day.AddDate(0, 0, 1)
	events := []attendance.AttendanceEvent{
		event("e1", attendance.EventIn, at(day, 22, 0)),
		// Next day starts its own shift before any OUT appears: the OUT
		// belongs to that shift and must not close the previous day.
		event("e2", attendance.EventIn, at(next, 8, 0)),
		event("e3", attendance.EventOut, at(next, 17, 0)),
	}

	days := BuildDayRecords(testInputs(day, next, events))
	require.Len(t, days, 2)

	assert.Equal(t, timesheet.DayStatusIncomplete, days[0].Status)
	assert.Contains(t, flagsOf(days[0]), "OPEN_SHIFT_ACTIVE")
	assert.Contains(t, flagsOf(days[0]), "MISSING_OUT")
	assert.Nil(t, days[0].CheckOut)

	assert.Equal(t, timesheet.DayStatusOK, days[1].Status)
	require.NotNil(t, days[1].CheckOut)
	assert.Equal(t, at(next, 17, 0), *days[1].CheckOut)
}

func TestBuildDayRecords_SecondCheckInAfterCheckout(t *testing.T) {
	t.Parallel()

	day := datePM(2025, time.June, 2)
	in := testInputs(day, day, []attendance.AttendanceEvent{
		event("e1", attendance.EventIn, at(day, 9, 0)),
		event("e2", attendance.EventOut, at(day, 14, 0)),
		event("e3", attendance.EventIn, at(day, 15, 30)),
	})
	in.WorkRule = schedule.WorkRule{DepartmentID: "dept-1", PlannedMinutesGross: 480, BreakMinutes: 0}

	days := BuildDayRecords(in)
	require.Len(t, days, 1)

	rec := days[0]
	assert.Equal(t, timesheet.DayStatusIncomplete, rec.Status)
	assert.Nil(t, rec.CheckOut, "ambiguous checkout is suppressed")
	assert.Equal(t, 300, rec.WorkedMinutes, "only the first closed interval counts")
	assert.Equal(t, 0, rec.MissingMinutes)
	assert.Contains(t, flagsOf(rec), "OPEN_SHIFT_ACTIVE")
	assert.Contains(t, flagsOf(rec), "MISSING_OUT")
}

func TestBuildDayRecords_MissingIn(t *testing.T) {
	t.Parallel()

	day := datePM(2025, time.June, 2)
	days := BuildDayRecords(testInputs(day, day, []attendance.AttendanceEvent{
		event("e1", attendance.EventOut, at(day, 17, 0)),
	}))
	require.Len(t, days, 1)

	rec := days[0]
	assert.Equal(t, timesheet.DayStatusIncomplete, rec.Status)
	assert.Nil(t, rec.CheckIn)
	require.NotNil(t, rec.CheckOut)
	assert.Zero(t, rec.WorkedMinutes)
	assert.Contains(t, flagsOf(rec), "MISSING_IN")
}

func TestBuildDayRecords_ManualOverrideReplacesEvents(t *testing.T) {
	t.Parallel()

	day := datePM(2025, time.June, 2)
	ovIn := at(day, 8, 0)
	ovOut := at(day, 17, 0)

	in := testInputs(day, day, []attendance.AttendanceEvent{
		event("e1", attendance.EventIn, at(day, 10, 0)),
		event("e2", attendance.EventOut, at(day, 12, 0)),
	})
	in.Overrides[day.Format(dateKeyLayout)] = schedule.ManualDayOverride{
		ID:         "ov-1",
		EmployeeID: "emp-1",
		Date:       day,
		InAt:       &ovIn,
		OutAt:      &ovOut,
	}

	days := BuildDayRecords(in)
	require.Len(t, days, 1)

	rec := days[0]
	assert.Equal(t, timesheet.DayStatusOK, rec.Status)
	require.NotNil(t, rec.CheckIn)
	require.NotNil(t, rec.CheckOut)
	assert.Equal(t, ovIn, *rec.CheckIn, "override punches are reflected verbatim")
	assert.Equal(t, ovOut, *rec.CheckOut)
	assert.Equal(t, 480, rec.WorkedMinutes)
	assert.Contains(t, flagsOf(rec), "MANUAL_OVERRIDE")
}

func TestBuildDayRecords_AbsentOverride(t *testing.T) {
	t.Parallel()

	day := datePM(2025, time.June, 2)
	in := testInputs(day, day, []attendance.AttendanceEvent{
		event("e1", attendance.EventIn, at(day, 9, 0)),
		event("e2", attendance.EventOut, at(day, 18, 0)),
	})
	in.Overrides[day.Format(dateKeyLayout)] = schedule.ManualDayOverride{
		ID: "ov-1", EmployeeID: "emp-1", Date: day, IsAbsent: true,
	}

	days := BuildDayRecords(in)
	rec := days[0]

	assert.Equal(t, timesheet.DayStatusIncomplete, rec.Status)
	assert.Zero(t, rec.WorkedMinutes)
	assert.Equal(t, 480, rec.MissingMinutes, "absent workday misses the full planned net")
	assert.Contains(t, flagsOf(rec), "MANUAL_OVERRIDE")
}

func TestBuildDayRecords_LeaveDay(t *testing.T) {
	t.Parallel()

	day := datePM(2025, time.June, 2)
	in := testInputs(day, day, nil)
	in.Leaves = []leave.Leave{{
		ID:         "lv-1",
		EmployeeID: "emp-1",
		Type:       "annual",
		StartDate:  day,
		EndDate:    day.AddDate(0, 0, 4),
		Status:     leave.StatusApproved,
	}}

	days := BuildDayRecords(in)
	rec := days[0]

	assert.Equal(t, timesheet.DayStatusLeave, rec.Status)
	assert.Zero(t, rec.WorkedMinutes)
	assert.Zero(t, rec.PlanOvertimeMinutes)
	require.NotNil(t, rec.LeaveType)
	assert.Equal(t, "annual", *rec.LeaveType)
	assert.Contains(t, flagsOf(rec), "LEAVE_DAY")
}

func TestBuildDayRecords_OverrideBeatsLeave(t *testing.T) {
	t.Parallel()

	day := datePM(2025, time.June, 2)
	ovIn := at(day, 9, 0)
	ovOut := at(day, 13, 0)

	in := testInputs(day, day, nil)
	in.Leaves = []leave.Leave{{
		ID: "lv-1", EmployeeID: "emp-1", Type: "annual",
		StartDate: day, EndDate: day, Status: leave.StatusApproved,
	}}
	in.Overrides[day.Format(dateKeyLayout)] = schedule.ManualDayOverride{
		ID: "ov-1", EmployeeID: "emp-1", Date: day, InAt: &ovIn, OutAt: &ovOut,
	}

	days := BuildDayRecords(in)
	rec := days[0]

	assert.Equal(t, timesheet.DayStatusOK, rec.Status)
	assert.Contains(t, flagsOf(rec), "MANUAL_OVERRIDE")
	assert.NotContains(t, flagsOf(rec), "LEAVE_DAY")
}

func TestBuildDayRecords_OffDay(t *testing.T) {
	t.Parallel()

	day := datePM(2025, time.June, 1) // Sunday
	in := testInputs(day, day, nil)
	in.WeeklyRules[time.Sunday] = schedule.WeeklyRule{
		DepartmentID: "dept-1", Weekday: time.Sunday, IsWorkday: false,
	}

	days := BuildDayRecords(in)
	rec := days[0]

	assert.Equal(t, timesheet.DayStatusOff, rec.Status)
	assert.Contains(t, flagsOf(rec), "OFF_DAY")
	assert.Zero(t, rec.WorkedMinutes)
}

func TestBuildDayRecords_OffDayWorked(t *testing.T) {
	t.Parallel()

	day := datePM(2025, time.June, 1) // Sunday
	in := testInputs(day, day, []attendance.AttendanceEvent{
		event("e1", attendance.EventIn, at(day, 10, 0)),
		event("e2", attendance.EventOut, at(day, 14, 0)),
	})
	in.WeeklyRules[time.Sunday] = schedule.WeeklyRule{
		DepartmentID: "dept-1", Weekday: time.Sunday, IsWorkday: false,
	}

	days := BuildDayRecords(in)
	rec := days[0]

	assert.Equal(t, timesheet.DayStatusOK, rec.Status)
	assert.Contains(t, flagsOf(rec), "OFF_DAY_WORKED")
	assert.NotContains(t, flagsOf(rec), "OFF_DAY")
	assert.Equal(t, 240, rec.WorkedMinutes)
}

func TestBuildDayRecords_Underworked(t *testing.T) {
	t.Parallel()

	day := datePM(2025, time.June, 2)
	days := BuildDayRecords(testInputs(day, day, []attendance.AttendanceEvent{
		event("e1", attendance.EventIn, at(day, 9, 0)),
		event("e2", attendance.EventOut, at(day, 15, 0)),
	}))
	rec := days[0]

	assert.Equal(t, timesheet.DayStatusOK, rec.Status)
	assert.Equal(t, 300, rec.WorkedMinutes)
	assert.Equal(t, 180, rec.MissingMinutes)
	assert.Contains(t, flagsOf(rec), "UNDERWORKED")
}

func TestBuildDayRecords_ManualEventFlag(t *testing.T) {
	t.Parallel()

	day := datePM(2025, time.June, 2)
	inEv := event("e1", attendance.EventIn, at(day, 9, 0))
	outEv := event("e2", attendance.EventOut, at(day, 18, 0))
	outEv.IsManual = true

	days := BuildDayRecords(testInputs(day, day, []attendance.AttendanceEvent{inEv, outEv}))

	assert.Contains(t, flagsOf(days[0]), "MANUAL_EVENT")
}

func TestBuildDayRecords_FlagsSortedAndDeduplicated(t *testing.T) {
	t.Parallel()

	day := datePM(2025, time.June, 2)
	days := BuildDayRecords(testInputs(day, day, []attendance.AttendanceEvent{
		event("e1", attendance.EventIn, at(day, 9, 0)),
	}))

	flags := days[0].Flags
	for i := 1; i < len(flags); i++ {
		assert.Less(t, string(flags[i-1]), string(flags[i]), "flags must be strictly sorted")
	}
}

func TestBuildDayRecords_LocalDayBucketing(t *testing.T) {
	t.Parallel()

	// UTC+7: a punch at 2025-06-02T23:00:00Z lands on June 3 locally.
	jakarta := time.FixedZone("UTC+7", 7*3600)
	day := time.Date(2025, time.June, 3, 0, 0, 0, 0, jakarta)

	in := testInputs(day, day, []attendance.AttendanceEvent{
		event("e1", attendance.EventIn, time.Date(2025, time.June, 2, 23, 0, 0, 0, time.UTC)),
		event("e2", attendance.EventOut, time.Date(2025, time.June, 3, 8, 0, 0, 0, time.UTC)),
	})
	in.Location = jakarta

	days := BuildDayRecords(in)
	require.Len(t, days, 1)

	rec := days[0]
	assert.Equal(t, timesheet.DayStatusOK, rec.Status)
	assert.Equal(t, 480, rec.WorkedMinutes)
}
