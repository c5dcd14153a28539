package timesheet

import (
	"time"

	"github.com/clockwise-hq/timekeep-backend-go/internal/domain/attendance"
	"github.com/clockwise-hq/timekeep-backend-go/internal/domain/employee"
	"github.com/clockwise-hq/timekeep-backend-go/internal/domain/leave"
	"github.com/clockwise-hq/timekeep-backend-go/internal/domain/schedule"
	"github.com/clockwise-hq/timekeep-backend-go/internal/domain/timesheet"
)

const dateKeyLayout = "2006-01-02"

// BuildInputs is the immutable snapshot one build runs over. The caller
// fetches everything up front; the build itself does no I/O.
type BuildInputs struct {
	Employee employee.Employee
	Location *time.Location

	// RangeStart and RangeEnd are inclusive local calendar days.
	RangeStart time.Time
	RangeEnd   time.Time

	WorkRule    schedule.WorkRule
	WeeklyRules map[time.Weekday]schedule.WeeklyRule
	Shifts      map[string]schedule.DepartmentShift
	Plans       []schedule.SchedulePlan
	Overrides   map[string]schedule.ManualDayOverride // keyed by local date
	Leaves      []leave.Leave

	// Events must be sorted by timestamp then id and may extend one day past
	// RangeEnd so the last day can borrow a cross-midnight checkout.
	Events []attendance.AttendanceEvent

	Profile timesheet.LaborProfile
}

// BuildDayRecords emits exactly one DayRecord per calendar day in the range.
// A day is never dropped; anomalies degrade to flags on the affected day.
func BuildDayRecords(in BuildInputs) []timesheet.DayRecord {
	buckets := bucketByLocalDay(in.Events, in.Location)
	consumed := make(map[string]bool)

	days := make([]timesheet.DayRecord, 0, 31)
	for day := in.RangeStart; !day.After(in.RangeEnd); day = day.AddDate(0, 0, 1) {
		days = append(days, buildDay(in, day, buckets, consumed))
	}
	return days
}

func bucketByLocalDay(events []attendance.AttendanceEvent, loc *time.Location) map[string][]attendance.AttendanceEvent {
	buckets := make(map[string][]attendance.AttendanceEvent)
	for _, ev := range events {
		key := ev.Timestamp.In(loc).Format(dateKeyLayout)
		buckets[key] = append(buckets[key], ev)
	}
	return buckets
}

func buildDay(in BuildInputs, day time.Time, buckets map[string][]attendance.AttendanceEvent, consumed map[string]bool) timesheet.DayRecord {
	key := day.Format(dateKeyLayout)
	nextKey := day.AddDate(0, 0, 1).Format(dateKeyLayout)

	dayEvents := liveEvents(buckets[key], consumed)

	flags := timesheet.NewFlagSet()

	plan := MatchSchedulePlan(in.Plans, in.Employee.ID, day)
	override, hasOverride := in.Overrides[key]

	shift := resolveShift(in, plan, override, hasOverride, flags)

	rc := RuleContext{
		WorkRule: in.WorkRule,
		Shift:    shift,
		Plan:     plan,
	}
	if weekly, ok := in.WeeklyRules[day.Weekday()]; ok {
		rc.WeeklyRule = &weekly
	}
	if hasOverride && override.RuleSourceOverride != nil {
		rc.ForcedSource = override.RuleSourceOverride
	}
	resolved := ResolveRuleSource(rc)
	flags.Add(resolved.Flags...)

	rec := timesheet.DayRecord{
		Date:                  day,
		RuleSource:            resolved.Source,
		AppliedPlannedMinutes: resolved.PlannedMinutesNet,
		AppliedBreakMinutes:   resolved.BreakMinutes,
	}
	if resolved.Source == schedule.RuleSourceShift && shift != nil {
		rec.ShiftID = &shift.ID
		rec.ShiftName = &shift.Name
	}

	switch {
	case hasOverride:
		buildOverrideDay(in, &rec, override, resolved, flags)
	case coveringLeave(in.Leaves, day) != nil:
		lv := coveringLeave(in.Leaves, day)
		rec.Status = timesheet.DayStatusLeave
		rec.LeaveType = &lv.Type
		flags.Add(timesheet.FlagLeaveDay)
	case !resolved.IsWorkday && len(dayEvents) == 0:
		rec.Status = timesheet.DayStatusOff
		flags.Add(timesheet.FlagOffDay)
	default:
		if !resolved.IsWorkday {
			flags.Add(timesheet.FlagOffDayWorked)
		}
		buildEventDay(in, &rec, dayEvents, liveEvents(buckets[nextKey], consumed), resolved, flags, consumed)
	}

	rec.Flags = flags.Sorted()
	return rec
}

// buildOverrideDay applies a manual override, which fully replaces
// event-derived punches for the day.
func buildOverrideDay(in BuildInputs, rec *timesheet.DayRecord, override schedule.ManualDayOverride, resolved ResolvedRule, flags *timesheet.FlagSet) {
	flags.Add(timesheet.FlagManualOverride)

	if override.IsAbsent {
		rec.Status = timesheet.DayStatusIncomplete
		if resolved.IsWorkday {
			rec.MissingMinutes = resolved.PlannedMinutesNet
		}
		return
	}

	comp := CalculateDayMetrics(DayMetricsInput{
		FirstIn:             override.InAt,
		LastOut:             override.OutAt,
		PlannedMinutesNet:   resolved.PlannedMinutesNet,
		BreakMinutes:        resolved.BreakMinutes,
		DailyMaxMinutes:     in.Profile.DailyMaxMinutes,
		NightWorkMaxMinutes: in.Profile.NightWorkMaxMinutes,
		EnforceMinBreak:     in.Profile.EnforceMinimumBreak,
		IsNightShift:        spansTwoLocalDays(override.InAt, override.OutAt, in.Location),
	})

	rec.CheckIn = override.InAt
	rec.CheckOut = override.OutAt
	if override.InAt == nil {
		flags.Add(timesheet.FlagMissingIn)
	}
	if override.OutAt == nil {
		flags.Add(timesheet.FlagMissingOut)
	}
	applyComputation(rec, comp, resolved, flags)
}

// buildEventDay pairs the day's punches and feeds them to the metrics
// calculation.
func buildEventDay(in BuildInputs, rec *timesheet.DayRecord, dayEvents, nextDayEvents []attendance.AttendanceEvent, resolved ResolvedRule, flags *timesheet.FlagSet, consumed map[string]bool) {
	p := pairDayEvents(dayEvents, nextDayEvents)
	if p.consumedOutID != "" {
		consumed[p.consumedOutID] = true
		flags.Add(timesheet.FlagCrossMidnightCheckout)
	}

	var firstInTS, lastOutTS *time.Time
	if p.firstIn != nil {
		firstInTS = &p.firstIn.Timestamp
		rec.CheckIn = &p.firstIn.Timestamp
		rec.CheckInLatitude = p.firstIn.Latitude
		rec.CheckInLongitude = p.firstIn.Longitude
	} else {
		flags.Add(timesheet.FlagMissingIn)
	}
	if p.lastOut != nil {
		lastOutTS = &p.lastOut.Timestamp
	} else {
		flags.Add(timesheet.FlagMissingOut)
	}

	if p.openShift {
		// A trailing unmatched check-in keeps the day open: the would-be
		// checkout and its coordinates are suppressed even when an earlier
		// same-day OUT closed an interval.
		flags.Add(timesheet.FlagOpenShiftActive, timesheet.FlagMissingOut)
	} else if p.lastOut != nil {
		rec.CheckOut = &p.lastOut.Timestamp
		rec.CheckOutLatitude = p.lastOut.Latitude
		rec.CheckOutLongitude = p.lastOut.Longitude
	}

	if (p.firstIn != nil && p.firstIn.IsManual) || (p.lastOut != nil && p.lastOut.IsManual) {
		flags.Add(timesheet.FlagManualEvent)
	}

	isNight := spansTwoLocalDays(firstInTS, lastOutTS, in.Location)
	if p.firstIn != nil && p.firstIn.IsNightShift {
		isNight = true
	}
	if p.lastOut != nil && p.lastOut.IsNightShift {
		isNight = true
	}

	comp := CalculateDayMetrics(DayMetricsInput{
		FirstIn:             firstInTS,
		LastOut:             lastOutTS,
		PlannedMinutesNet:   resolved.PlannedMinutesNet,
		BreakMinutes:        resolved.BreakMinutes,
		DailyMaxMinutes:     in.Profile.DailyMaxMinutes,
		NightWorkMaxMinutes: in.Profile.NightWorkMaxMinutes,
		EnforceMinBreak:     in.Profile.EnforceMinimumBreak,
		IsNightShift:        isNight,
	})
	if p.openShift {
		// Worked minutes of any closed interval are kept, the day stays
		// incomplete and reports no missing minutes.
		comp.Status = timesheet.DayStatusIncomplete
	}
	applyComputation(rec, comp, resolved, flags)
}

// applyComputation copies calculator output onto the record and derives
// missing minutes and the compliance flags.
func applyComputation(rec *timesheet.DayRecord, comp timesheet.DayComputation, resolved ResolvedRule, flags *timesheet.FlagSet) {
	rec.Status = comp.Status
	rec.WorkedMinutes = comp.WorkedMinutes
	rec.PlanOvertimeMinutes = comp.OvertimeMinutes

	if comp.MinBreakNotMet {
		flags.Add(timesheet.FlagMinBreakNotMet)
	}
	if comp.DailyMaxExceeded {
		flags.Add(timesheet.FlagDailyMaxExceeded)
	}
	if comp.NightWorkExceeded {
		flags.Add(timesheet.FlagNightWorkExceeded)
	}

	if comp.Status == timesheet.DayStatusOK && resolved.IsWorkday && comp.WorkedMinutes < resolved.PlannedMinutesNet {
		rec.MissingMinutes = resolved.PlannedMinutesNet - comp.WorkedMinutes
		flags.Add(timesheet.FlagUnderworked)
	}
}

// resolveShift picks the day's shift: an override's forced shift beats a
// plan-declared shift beats the employee default. Inactive shifts still
// resolve; historical days may reference them.
func resolveShift(in BuildInputs, plan *schedule.SchedulePlan, override schedule.ManualDayOverride, hasOverride bool, flags *timesheet.FlagSet) *schedule.DepartmentShift {
	if hasOverride && override.ForcedShiftID != nil {
		if s, ok := in.Shifts[*override.ForcedShiftID]; ok {
			return &s
		}
		flags.Add(timesheet.FlagRuleOverrideInvalid)
	}
	if plan != nil && plan.ShiftID != nil {
		if s, ok := in.Shifts[*plan.ShiftID]; ok {
			return &s
		}
	}
	if in.Employee.DefaultShiftID != nil {
		if s, ok := in.Shifts[*in.Employee.DefaultShiftID]; ok {
			return &s
		}
	}
	return nil
}

func coveringLeave(leaves []leave.Leave, day time.Time) *leave.Leave {
	for i := range leaves {
		if leaves[i].Covers(day) {
			return &leaves[i]
		}
	}
	return nil
}

func liveEvents(events []attendance.AttendanceEvent, consumed map[string]bool) []attendance.AttendanceEvent {
	out := make([]attendance.AttendanceEvent, 0, len(events))
	for _, ev := range events {
		if !consumed[ev.ID] {
			out = append(out, ev)
		}
	}
	return out
}

func spansTwoLocalDays(in, out *time.Time, loc *time.Location) bool {
	if in == nil || out == nil {
		return false
	}
	return in.In(loc).Format(dateKeyLayout) != out.In(loc).Format(dateKeyLayout)
}

type pairing struct {
	firstIn *attendance.AttendanceEvent
	lastOut *attendance.AttendanceEvent

	// openShift marks a trailing IN with no qualifying OUT.
	openShift bool

	// consumedOutID names a next-day OUT borrowed as this day's checkout.
	consumedOutID string
}

// pairDayEvents matches a day's punches. Events arrive sorted by timestamp
// then id.
func pairDayEvents(dayEvents, nextDayEvents []attendance.AttendanceEvent) pairing {
	var p pairing

	for i := range dayEvents {
		ev := &dayEvents[i]
		if ev.Type == attendance.EventIn && p.firstIn == nil {
			p.firstIn = ev
		}
	}

	// Latest OUT at or after the first IN; with no IN at all, the latest OUT
	// of the day (the record then reports MISSING_IN).
	for i := range dayEvents {
		ev := &dayEvents[i]
		if ev.Type != attendance.EventOut {
			continue
		}
		if p.firstIn != nil && ev.Timestamp.Before(p.firstIn.Timestamp) {
			continue
		}
		p.lastOut = ev
	}

	// Cross-midnight continuation: an IN without any same-day checkout may
	// borrow the next day's earliest OUT, but only if that OUT comes before
	// the next day's own first IN. The borrowed OUT is consumed.
	if p.firstIn != nil && p.lastOut == nil {
		if next := borrowableCheckout(nextDayEvents); next != nil {
			p.lastOut = next
			p.consumedOutID = next.ID
		}
	}

	// A trailing IN after the last qualifying OUT leaves the day open.
	if len(dayEvents) > 0 {
		last := &dayEvents[len(dayEvents)-1]
		if last.Type == attendance.EventIn {
			if p.lastOut == nil || p.lastOut.Timestamp.Before(last.Timestamp) {
				p.openShift = true
			}
		}
	}

	return p
}

func borrowableCheckout(nextDayEvents []attendance.AttendanceEvent) *attendance.AttendanceEvent {
	var firstOut, firstIn *attendance.AttendanceEvent
	for i := range nextDayEvents {
		ev := &nextDayEvents[i]
		switch {
		case ev.Type == attendance.EventOut && firstOut == nil:
			firstOut = ev
		case ev.Type == attendance.EventIn && firstIn == nil:
			firstIn = ev
		}
	}
	if firstOut == nil {
		return nil
	}
	if firstIn != nil && !firstOut.Timestamp.Before(firstIn.Timestamp) {
		return nil
	}
	return firstOut
}
