package timesheet

import (
	"testing"
	"time"

	"github.com/clockwise-hq/timekeep-backend-go/internal/domain/schedule"
	"github.com/clockwise-hq/timekeep-backend-go/internal/domain/timesheet"
	"github.com/stretchr/testify/assert"
)

func wallClock(hour, minute int) time.Time {
	return time.Date(2000, time.January, 1, hour, minute, 0, 0, time.UTC)
}

func testWorkRule() schedule.WorkRule {
	return schedule.WorkRule{
		ID:                  "wr-1",
		DepartmentID:        "dept-1",
		PlannedMinutesGross: 540,
		BreakMinutes:        60,
		GraceMinutes:        10,
	}
}

func dayShift() *schedule.DepartmentShift {
	return &schedule.DepartmentShift{
		ID:           "shift-1",
		Name:         "Day",
		StartLocal:   wallClock(8, 0),
		EndLocal:     wallClock(17, 0),
		BreakMinutes: 45,
		IsActive:     true,
	}
}

func ruleSourcePtr(s schedule.RuleSource) *schedule.RuleSource { return &s }

func TestResolveRuleSource_WorkRuleFallback(t *testing.T) {
	t.Parallel()

	got := ResolveRuleSource(RuleContext{WorkRule: testWorkRule()})

	assert.Equal(t, schedule.RuleSourceWorkRule, got.Source)
	assert.Equal(t, 480, got.PlannedMinutesNet)
	assert.Equal(t, 60, got.BreakMinutes)
	assert.True(t, got.IsWorkday)
	assert.Equal(t, 10, got.GraceMinutes)
	assert.Empty(t, got.Flags)
}

func TestResolveRuleSource_WeeklyBeatsWorkRule(t *testing.T) {
	t.Parallel()

	weekly := &schedule.WeeklyRule{
		Weekday:             time.Friday,
		IsWorkday:           true,
		PlannedMinutesGross: 420,
		BreakMinutes:        30,
	}

	got := ResolveRuleSource(RuleContext{WorkRule: testWorkRule(), WeeklyRule: weekly})

	assert.Equal(t, schedule.RuleSourceWeekly, got.Source)
	assert.Equal(t, 390, got.PlannedMinutesNet)
	assert.Equal(t, 30, got.BreakMinutes)
}

func TestResolveRuleSource_WeeklyOffDay(t *testing.T) {
	t.Parallel()

	weekly := &schedule.WeeklyRule{Weekday: time.Sunday, IsWorkday: false}

	got := ResolveRuleSource(RuleContext{WorkRule: testWorkRule(), WeeklyRule: weekly})

	assert.Equal(t, schedule.RuleSourceWeekly, got.Source)
	assert.False(t, got.IsWorkday)
}

func TestResolveRuleSource_ShiftBeatsWeekly(t *testing.T) {
	t.Parallel()

	weekly := &schedule.WeeklyRule{
		Weekday:             time.Monday,
		IsWorkday:           true,
		PlannedMinutesGross: 420,
		BreakMinutes:        30,
	}

	got := ResolveRuleSource(RuleContext{
		WorkRule:   testWorkRule(),
		WeeklyRule: weekly,
		Shift:      dayShift(),
	})

	assert.Equal(t, schedule.RuleSourceShift, got.Source)
	// 9h shift minus its 45-minute break.
	assert.Equal(t, 495, got.PlannedMinutesNet)
	assert.Contains(t, got.Flags, timesheet.FlagShiftWeeklyRuleOverride)
}

func TestResolveRuleSource_ShiftAgreeingWithWeeklyNoFlag(t *testing.T) {
	t.Parallel()

	shift := dayShift() // 540 gross, 45 break
	weekly := &schedule.WeeklyRule{
		Weekday:             time.Monday,
		IsWorkday:           true,
		PlannedMinutesGross: 540,
		BreakMinutes:        45,
	}

	got := ResolveRuleSource(RuleContext{
		WorkRule:   testWorkRule(),
		WeeklyRule: weekly,
		Shift:      shift,
	})

	assert.Equal(t, schedule.RuleSourceShift, got.Source)
	assert.NotContains(t, got.Flags, timesheet.FlagShiftWeeklyRuleOverride)
}

func TestResolveRuleSource_OvernightShiftWrapsMidnight(t *testing.T) {
	t.Parallel()

	night := &schedule.DepartmentShift{
		ID:           "shift-night",
		Name:         "Night",
		StartLocal:   wallClock(22, 0),
		EndLocal:     wallClock(6, 0),
		BreakMinutes: 30,
	}

	got := ResolveRuleSource(RuleContext{WorkRule: testWorkRule(), Shift: night})

	// 22:00-06:00 wraps to 8h gross.
	assert.Equal(t, 450, got.PlannedMinutesNet)
	assert.True(t, night.CrossesMidnight())
}

func TestResolveRuleSource_ForcedBranch(t *testing.T) {
	t.Parallel()

	weekly := &schedule.WeeklyRule{
		Weekday:             time.Monday,
		IsWorkday:           true,
		PlannedMinutesGross: 420,
		BreakMinutes:        30,
	}

	got := ResolveRuleSource(RuleContext{
		WorkRule:     testWorkRule(),
		WeeklyRule:   weekly,
		Shift:        dayShift(),
		ForcedSource: ruleSourcePtr(schedule.RuleSourceWeekly),
	})

	assert.Equal(t, schedule.RuleSourceWeekly, got.Source)
	assert.Equal(t, 390, got.PlannedMinutesNet)
	assert.NotContains(t, got.Flags, timesheet.FlagRuleOverrideInvalid)
}

func TestResolveRuleSource_ForcedBranchWithoutData(t *testing.T) {
	t.Parallel()

	got := ResolveRuleSource(RuleContext{
		WorkRule:     testWorkRule(),
		ForcedSource: ruleSourcePtr(schedule.RuleSourceWeekly),
	})

	// No weekly rule exists: keep the natural resolution and flag it.
	assert.Equal(t, schedule.RuleSourceWorkRule, got.Source)
	assert.Contains(t, got.Flags, timesheet.FlagRuleOverrideInvalid)
}

func TestResolveRuleSource_PlanOverridesValues(t *testing.T) {
	t.Parallel()

	planned := 600
	planBreak := 30
	grace := 5
	plan := &schedule.SchedulePlan{
		ID:             "plan-1",
		PlannedMinutes: &planned,
		BreakMinutes:   &planBreak,
		GraceMinutes:   &grace,
	}

	got := ResolveRuleSource(RuleContext{WorkRule: testWorkRule(), Plan: plan})

	assert.Equal(t, 570, got.PlannedMinutesNet)
	assert.Equal(t, 30, got.BreakMinutes)
	assert.Equal(t, 5, got.GraceMinutes)
}
