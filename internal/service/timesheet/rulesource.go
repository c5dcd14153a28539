package timesheet

import (
	"github.com/clockwise-hq/timekeep-backend-go/internal/domain/schedule"
	"github.com/clockwise-hq/timekeep-backend-go/internal/domain/timesheet"
)

// RuleContext is one day's configuration inputs after plan matching and
// shift resolution.
type RuleContext struct {
	WorkRule   schedule.WorkRule
	WeeklyRule *schedule.WeeklyRule      // rule for the day's weekday, if any
	Shift      *schedule.DepartmentShift // forced, plan-declared, or employee default
	Plan       *schedule.SchedulePlan

	// ForcedSource comes from a manual override's rule_source_override.
	ForcedSource *schedule.RuleSource
}

// ResolvedRule is the effective planned/break/workday outcome for one
// employee-day.
type ResolvedRule struct {
	Source            schedule.RuleSource
	PlannedMinutesNet int
	BreakMinutes      int
	IsWorkday         bool
	GraceMinutes      int
	Flags             []timesheet.Flag
}

type ruleBranch struct {
	source       schedule.RuleSource
	grossMinutes int
	breakMinutes int
	isWorkday    bool
}

// ResolveRuleSource applies the configuration precedence: shift beats weekly
// rule beats the department default, unless a manual override forces a branch.
// A forced branch with no underlying data keeps the natural resolution and
// flags RULE_OVERRIDE_INVALID.
func ResolveRuleSource(rc RuleContext) ResolvedRule {
	var flags []timesheet.Flag

	natural := rc.naturalBranch()
	chosen := natural

	if rc.ForcedSource != nil && *rc.ForcedSource != natural.source {
		if forced, ok := rc.branchFor(*rc.ForcedSource); ok {
			chosen = forced
		} else {
			flags = append(flags, timesheet.FlagRuleOverrideInvalid)
		}
	}

	// A shift silently overriding a disagreeing weekly rule is worth
	// surfacing; the shift still wins.
	if chosen.source == schedule.RuleSourceShift && rc.WeeklyRule != nil {
		weekly, _ := rc.branchFor(schedule.RuleSourceWeekly)
		if weekly.isWorkday != chosen.isWorkday ||
			weekly.grossMinutes != chosen.grossMinutes ||
			weekly.breakMinutes != chosen.breakMinutes {
			flags = append(flags, timesheet.FlagShiftWeeklyRuleOverride)
		}
	}

	gross := chosen.grossMinutes
	breakMinutes := chosen.breakMinutes
	grace := rc.WorkRule.GraceMinutes

	if rc.Plan != nil {
		if rc.Plan.PlannedMinutes != nil {
			gross = *rc.Plan.PlannedMinutes
		}
		if rc.Plan.BreakMinutes != nil {
			breakMinutes = *rc.Plan.BreakMinutes
		}
		if rc.Plan.GraceMinutes != nil {
			grace = *rc.Plan.GraceMinutes
		}
	}

	net := gross - breakMinutes
	if net < 0 {
		net = 0
	}

	return ResolvedRule{
		Source:            chosen.source,
		PlannedMinutesNet: net,
		BreakMinutes:      breakMinutes,
		IsWorkday:         chosen.isWorkday,
		GraceMinutes:      grace,
		Flags:             flags,
	}
}

func (rc RuleContext) naturalBranch() ruleBranch {
	if b, ok := rc.branchFor(schedule.RuleSourceShift); ok {
		return b
	}
	if b, ok := rc.branchFor(schedule.RuleSourceWeekly); ok {
		return b
	}
	b, _ := rc.branchFor(schedule.RuleSourceWorkRule)
	return b
}

func (rc RuleContext) branchFor(source schedule.RuleSource) (ruleBranch, bool) {
	switch source {
	case schedule.RuleSourceShift:
		if rc.Shift == nil {
			return ruleBranch{}, false
		}
		return ruleBranch{
			source:       schedule.RuleSourceShift,
			grossMinutes: rc.Shift.DurationMinutes(),
			breakMinutes: rc.Shift.BreakMinutes,
			isWorkday:    true,
		}, true
	case schedule.RuleSourceWeekly:
		if rc.WeeklyRule == nil {
			return ruleBranch{}, false
		}
		return ruleBranch{
			source:       schedule.RuleSourceWeekly,
			grossMinutes: rc.WeeklyRule.PlannedMinutesGross,
			breakMinutes: rc.WeeklyRule.BreakMinutes,
			isWorkday:    rc.WeeklyRule.IsWorkday,
		}, true
	default:
		return ruleBranch{
			source:       schedule.RuleSourceWorkRule,
			grossMinutes: rc.WorkRule.PlannedMinutesGross,
			breakMinutes: rc.WorkRule.BreakMinutes,
			isWorkday:    true,
		}, true
	}
}
