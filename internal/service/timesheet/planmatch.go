package timesheet

import (
	"time"

	"github.com/clockwise-hq/timekeep-backend-go/internal/domain/schedule"
)

// MatchSchedulePlan picks the single plan applicable to an employee on a
// local calendar day, or nil. Absence of a match is a valid outcome; the
// resolver then falls back to the weekly or work rule.
//
// Tie-break between applicable plans, all descending: target specificity
// (ONLY_EMPLOYEE > DEPARTMENT_EXCEPT > WHOLE_DEPARTMENT), start date,
// updated-at, id.
func MatchSchedulePlan(plans []schedule.SchedulePlan, employeeID string, day time.Time) *schedule.SchedulePlan {
	var best *schedule.SchedulePlan
	for i := range plans {
		p := &plans[i]
		if !p.IsActive || !p.ContainsDate(day) || !p.AppliesTo(employeeID) {
			continue
		}
		if best == nil || planBeats(p, best) {
			best = p
		}
	}
	return best
}

// planBeats reports whether a wins the tie-break against b.
func planBeats(a, b *schedule.SchedulePlan) bool {
	if a.TargetSpecificity() != b.TargetSpecificity() {
		return a.TargetSpecificity() > b.TargetSpecificity()
	}
	if !a.StartDate.Equal(b.StartDate) {
		return a.StartDate.After(b.StartDate)
	}
	if !a.UpdatedAt.Equal(b.UpdatedAt) {
		return a.UpdatedAt.After(b.UpdatedAt)
	}
	return a.ID > b.ID
}
