package timesheet

import (
	"testing"
	"time"

	"github.com/clockwise-hq/timekeep-backend-go/internal/domain/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func datePM(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func basePlan(id string, kind schedule.PlanTargetKind, targets ...string) schedule.SchedulePlan {
	return schedule.SchedulePlan{
		ID:                id,
		DepartmentID:      "dept-1",
		StartDate:         datePM(2025, time.June, 1),
		EndDate:           datePM(2025, time.June, 30),
		TargetKind:        kind,
		TargetEmployeeIDs: targets,
		IsActive:          true,
		UpdatedAt:         datePM(2025, time.May, 1),
	}
}

func TestMatchSchedulePlan_Targeting(t *testing.T) {
	t.Parallel()

	day := datePM(2025, time.June, 10)

	only := basePlan("p-only", schedule.TargetOnlyEmployee, "emp-1")
	except := basePlan("p-except", schedule.TargetDepartmentExcept, "emp-1")
	whole := basePlan("p-whole", schedule.TargetWholeDepartment)

	assert.Equal(t, "p-only", MatchSchedulePlan([]schedule.SchedulePlan{only}, "emp-1", day).ID)
	assert.Nil(t, MatchSchedulePlan([]schedule.SchedulePlan{only}, "emp-2", day))

	assert.Nil(t, MatchSchedulePlan([]schedule.SchedulePlan{except}, "emp-1", day))
	assert.Equal(t, "p-except", MatchSchedulePlan([]schedule.SchedulePlan{except}, "emp-2", day).ID)

	assert.Equal(t, "p-whole", MatchSchedulePlan([]schedule.SchedulePlan{whole}, "emp-1", day).ID)
}

func TestMatchSchedulePlan_DateRange(t *testing.T) {
	t.Parallel()

	plan := basePlan("p-1", schedule.TargetWholeDepartment)

	assert.NotNil(t, MatchSchedulePlan([]schedule.SchedulePlan{plan}, "emp-1", datePM(2025, time.June, 1)))
	assert.NotNil(t, MatchSchedulePlan([]schedule.SchedulePlan{plan}, "emp-1", datePM(2025, time.June, 30)))
	assert.Nil(t, MatchSchedulePlan([]schedule.SchedulePlan{plan}, "emp-1", datePM(2025, time.May, 31)))
	assert.Nil(t, MatchSchedulePlan([]schedule.SchedulePlan{plan}, "emp-1", datePM(2025, time.July, 1)))
}

func TestMatchSchedulePlan_SpecificityWins(t *testing.T) {
	t.Parallel()

	day := datePM(2025, time.June, 10)
	whole := basePlan("p-whole", schedule.TargetWholeDepartment)
	except := basePlan("p-except", schedule.TargetDepartmentExcept, "emp-9")
	only := basePlan("p-only", schedule.TargetOnlyEmployee, "emp-1")

	got := MatchSchedulePlan([]schedule.SchedulePlan{whole, except, only}, "emp-1", day)
	require.NotNil(t, got)
	assert.Equal(t, "p-only", got.ID)

	// Without an employee-targeted plan, the exclusion list beats the
	// department-wide plan.
	got = MatchSchedulePlan([]schedule.SchedulePlan{whole, except}, "emp-1", day)
	require.NotNil(t, got)
	assert.Equal(t, "p-except", got.ID)
}

func TestMatchSchedulePlan_TieBreakChain(t *testing.T) {
	t.Parallel()

	day := datePM(2025, time.June, 10)

	older := basePlan("p-a", schedule.TargetWholeDepartment)
	newer := basePlan("p-b", schedule.TargetWholeDepartment)
	newer.StartDate = datePM(2025, time.June, 5)

	got := MatchSchedulePlan([]schedule.SchedulePlan{older, newer}, "emp-1", day)
	require.NotNil(t, got)
	assert.Equal(t, "p-b", got.ID, "later start date wins")

	// Same start date: the more recently updated plan wins.
	a := basePlan("p-a", schedule.TargetWholeDepartment)
	b := basePlan("p-b", schedule.TargetWholeDepartment)
	b.UpdatedAt = datePM(2025, time.May, 20)
	got = MatchSchedulePlan([]schedule.SchedulePlan{a, b}, "emp-1", day)
	require.NotNil(t, got)
	assert.Equal(t, "p-b", got.ID, "later updated_at wins")

	// Fully tied except id: the highest id wins.
	c := basePlan("p-c", schedule.TargetWholeDepartment)
	d := basePlan("p-d", schedule.TargetWholeDepartment)
	got = MatchSchedulePlan([]schedule.SchedulePlan{d, c}, "emp-1", day)
	require.NotNil(t, got)
	assert.Equal(t, "p-d", got.ID, "highest id wins")
}

func TestMatchSchedulePlan_InactiveSkipped(t *testing.T) {
	t.Parallel()

	plan := basePlan("p-1", schedule.TargetWholeDepartment)
	plan.IsActive = false

	assert.Nil(t, MatchSchedulePlan([]schedule.SchedulePlan{plan}, "emp-1", datePM(2025, time.June, 10)))
}

func TestMatchSchedulePlan_NoPlansIsValid(t *testing.T) {
	t.Parallel()

	assert.Nil(t, MatchSchedulePlan(nil, "emp-1", datePM(2025, time.June, 10)))
}
