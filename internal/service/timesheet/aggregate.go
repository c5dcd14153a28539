package timesheet

import (
	"github.com/clockwise-hq/timekeep-backend-go/internal/domain/timesheet"
)

// AnnualUsage is the year-to-date overtime position after aggregation.
type AnnualUsage struct {
	UsedMinutes      int
	RemainingMinutes int
	CapExceeded      bool
}

// AggregateWeeks rolls day records into ISO-week buckets and walks them
// chronologically, charging each week's legal overtime against the annual
// cap. Day records in weeks at or past the cap breach get the cap flag
// appended in place.
//
// The split of a week's worked minutes: up to the effective contractual cap
// is normal, between the cap and the legal norm is extra work, beyond the
// legal norm is overtime.
func AggregateWeeks(days []timesheet.DayRecord, contractWeeklyMinutes *int, profile timesheet.LaborProfile) ([]timesheet.WeekSummary, AnnualUsage) {
	capEff := effectiveWeeklyCap(contractWeeklyMinutes, profile.WeeklyLegalNormMinutes)

	var weeks []timesheet.WeekSummary
	var weekDays [][]int // indexes into days, parallel to weeks

	for i := range days {
		y, w := days[i].Date.ISOWeek()
		if len(weeks) == 0 || weeks[len(weeks)-1].Year != y || weeks[len(weeks)-1].Week != w {
			weeks = append(weeks, timesheet.WeekSummary{Year: y, Week: w})
			weekDays = append(weekDays, nil)
		}
		last := len(weeks) - 1
		weekDays[last] = append(weekDays[last], i)
	}

	cumulative := 0
	capHit := false

	for wi := range weeks {
		week := &weeks[wi]
		flags := timesheet.NewFlagSet()

		worked := 0
		planOT := 0
		for _, di := range weekDays[wi] {
			worked += days[di].WorkedMinutes
			planOT += days[di].PlanOvertimeMinutes
		}

		week.WorkedMinutes = worked
		week.PlanOvertimeMinutes = planOT
		week.NormalMinutes = minInt(worked, capEff)
		week.ExtraWorkMinutes = maxInt(0, minInt(worked, profile.WeeklyLegalNormMinutes)-capEff)

		legalOT := maxInt(0, worked-profile.WeeklyLegalNormMinutes)
		week.OvertimeMinutes = roundOvertime(legalOT, profile.OvertimeRounding)

		attributeLegalSplit(days, weekDays[wi], capEff, profile.WeeklyLegalNormMinutes)

		cumulative += week.OvertimeMinutes
		if cumulative > profile.AnnualOvertimeCapMinutes {
			capHit = true
		}
		if capHit {
			flags.Add(timesheet.FlagAnnualOvertimeCap)
			for _, di := range weekDays[wi] {
				days[di].Flags = appendFlag(days[di].Flags, timesheet.FlagAnnualOvertimeCap)
			}
		}

		week.Flags = flags.Sorted()
	}

	return weeks, AnnualUsage{
		UsedMinutes:      cumulative,
		RemainingMinutes: maxInt(0, profile.AnnualOvertimeCapMinutes-cumulative),
		CapExceeded:      cumulative > profile.AnnualOvertimeCapMinutes,
	}
}

// attributeLegalSplit classifies each day's worked minutes against the
// running weekly total, so the per-day extra-work/overtime values sum exactly
// to the week's split.
func attributeLegalSplit(days []timesheet.DayRecord, indexes []int, capEff, legalNorm int) {
	running := 0
	for _, di := range indexes {
		before := running
		after := running + days[di].WorkedMinutes
		running = after

		days[di].LegalOvertimeMinutes = maxInt(0, after-maxInt(before, legalNorm))
		days[di].LegalExtraWorkMinutes = maxInt(0, minInt(after, legalNorm)-maxInt(before, capEff))
	}
}

// effectiveWeeklyCap is the contractual cap clamped to the legal norm.
func effectiveWeeklyCap(contractWeeklyMinutes *int, legalNorm int) int {
	if contractWeeklyMinutes == nil || *contractWeeklyMinutes > legalNorm {
		return legalNorm
	}
	return *contractWeeklyMinutes
}

// roundOvertime rounds a positive overtime value up to the next multiple of
// 30 minutes when the profile asks for it; values are never negative.
func roundOvertime(minutes int, mode timesheet.RoundingMode) int {
	if minutes <= 0 {
		return 0
	}
	if mode == timesheet.RoundingUp30Min {
		return ((minutes + 29) / 30) * 30
	}
	return minutes
}

func appendFlag(flags []timesheet.Flag, flag timesheet.Flag) []timesheet.Flag {
	fs := timesheet.NewFlagSet(flags...)
	fs.Add(flag)
	return fs.Sorted()
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
