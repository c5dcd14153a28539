package timesheet

import "sort"

// Flag marks an anomaly or observation on a day or week. Flags are data for
// UI/export highlighting, never a hard failure.
type Flag string

const (
	FlagMissingIn               Flag = "MISSING_IN"
	FlagMissingOut              Flag = "MISSING_OUT"
	FlagOpenShiftActive         Flag = "OPEN_SHIFT_ACTIVE"
	FlagCrossMidnightCheckout   Flag = "CROSS_MIDNIGHT_CHECKOUT"
	FlagManualOverride          Flag = "MANUAL_OVERRIDE"
	FlagManualEvent             Flag = "MANUAL_EVENT"
	FlagLeaveDay                Flag = "LEAVE_DAY"
	FlagOffDay                  Flag = "OFF_DAY"
	FlagOffDayWorked            Flag = "OFF_DAY_WORKED"
	FlagUnderworked             Flag = "UNDERWORKED"
	FlagDailyMaxExceeded        Flag = "DAILY_MAX_EXCEEDED"
	FlagMinBreakNotMet          Flag = "MIN_BREAK_NOT_MET"
	FlagNightWorkExceeded       Flag = "NIGHT_WORK_EXCEEDED"
	FlagRuleOverrideInvalid     Flag = "RULE_OVERRIDE_INVALID"
	FlagShiftWeeklyRuleOverride Flag = "SHIFT_WEEKLY_RULE_OVERRIDE"
	FlagAnnualOvertimeCap       Flag = "ANNUAL_OVERTIME_CAP_EXCEEDED"
)

// FlagSet accumulates flags with set semantics and emits them as a sorted
// list, so repeated computations serialize identically.
type FlagSet struct {
	seen map[Flag]struct{}
}

func NewFlagSet(flags ...Flag) *FlagSet {
	fs := &FlagSet{seen: make(map[Flag]struct{})}
	fs.Add(flags...)
	return fs
}

func (fs *FlagSet) Add(flags ...Flag) {
	for _, f := range flags {
		fs.seen[f] = struct{}{}
	}
}

func (fs *FlagSet) Has(f Flag) bool {
	_, ok := fs.seen[f]
	return ok
}

func (fs *FlagSet) Empty() bool {
	return len(fs.seen) == 0
}

// Sorted returns the accumulated flags in lexicographic order. The slice is
// never nil so records always serialize with a flags array.
func (fs *FlagSet) Sorted() []Flag {
	out := make([]Flag, 0, len(fs.seen))
	for f := range fs.seen {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
