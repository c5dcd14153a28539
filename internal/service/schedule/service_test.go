package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/clockwise-hq/timekeep-backend-go/internal/domain/employee"
	"github.com/clockwise-hq/timekeep-backend-go/internal/domain/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// In-memory fakes
// =============================================================================

type fakeOverrideStore struct {
	overrides []schedule.ManualDayOverride
}

func (f *fakeOverrideStore) ListForRange(_ context.Context, employeeID string, from, to time.Time) ([]schedule.ManualDayOverride, error) {
	var out []schedule.ManualDayOverride
	for _, ov := range f.overrides {
		if ov.EmployeeID != employeeID || ov.Date.Before(from) || ov.Date.After(to) {
			continue
		}
		out = append(out, ov)
	}
	return out, nil
}

func (f *fakeOverrideStore) GetByID(_ context.Context, id string) (schedule.ManualDayOverride, error) {
	for _, ov := range f.overrides {
		if ov.ID == id {
			return ov, nil
		}
	}
	return schedule.ManualDayOverride{}, schedule.ErrOverrideNotFound
}

func (f *fakeOverrideStore) Create(_ context.Context, ov schedule.ManualDayOverride) (schedule.ManualDayOverride, error) {
	for _, existing := range f.overrides {
		if existing.EmployeeID == ov.EmployeeID && existing.Date.Equal(ov.Date) {
			return schedule.ManualDayOverride{}, schedule.ErrOverrideExists
		}
	}
	f.overrides = append(f.overrides, ov)
	return ov, nil
}

func (f *fakeOverrideStore) Update(_ context.Context, ov schedule.ManualDayOverride) error {
	for i := range f.overrides {
		if f.overrides[i].ID == ov.ID {
			f.overrides[i] = ov
			return nil
		}
	}
	return schedule.ErrOverrideNotFound
}

func (f *fakeOverrideStore) Delete(_ context.Context, id string) error {
	for i := range f.overrides {
		if f.overrides[i].ID == id {
			f.overrides = append(f.overrides[:i], f.overrides[i+1:]...)
			return nil
		}
	}
	return schedule.ErrOverrideNotFound
}

type fakeShiftStore struct {
	shifts []schedule.DepartmentShift
}

func (f *fakeShiftStore) ListByDepartment(_ context.Context, departmentID string) ([]schedule.DepartmentShift, error) {
	var out []schedule.DepartmentShift
	for _, sh := range f.shifts {
		if sh.DepartmentID == departmentID {
			out = append(out, sh)
		}
	}
	return out, nil
}

func (f *fakeShiftStore) GetByID(_ context.Context, id string, departmentID string) (schedule.DepartmentShift, error) {
	for _, sh := range f.shifts {
		if sh.ID == id && sh.DepartmentID == departmentID {
			return sh, nil
		}
	}
	return schedule.DepartmentShift{}, schedule.ErrShiftNotFound
}

type fakePlanStore struct {
	plans []schedule.SchedulePlan
}

func (f *fakePlanStore) ListActiveOverlapping(_ context.Context, departmentID string, from, to time.Time) ([]schedule.SchedulePlan, error) {
	var out []schedule.SchedulePlan
	for _, p := range f.plans {
		if p.DepartmentID != departmentID || !p.IsActive {
			continue
		}
		if p.EndDate.Before(from) || p.StartDate.After(to) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

type fakeEmployeeStore struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeStore) GetByID(_ context.Context, id string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeStore) ListByDepartment(_ context.Context, departmentID string, includeInactive bool) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, emp := range f.employees {
		if emp.DepartmentID == departmentID && (emp.IsActive || includeInactive) {
			out = append(out, emp)
		}
	}
	return out, nil
}

// =============================================================================
// Fixture
// =============================================================================

type overrideFixture struct {
	overrides *fakeOverrideStore
	shifts    *fakeShiftStore
	plans     *fakePlanStore
	employees *fakeEmployeeStore
	service   schedule.OverrideService
}

func newOverrideFixture() *overrideFixture {
	f := &overrideFixture{
		overrides: &fakeOverrideStore{},
		shifts: &fakeShiftStore{shifts: []schedule.DepartmentShift{
			{ID: "shift-1", DepartmentID: "dept-1", Name: "Morning", IsActive: true},
		}},
		plans: &fakePlanStore{},
		employees: &fakeEmployeeStore{employees: map[string]employee.Employee{
			"emp-1": {ID: "emp-1", FullName: "Ayu Lestari", DepartmentID: "dept-1", IsActive: true},
		}},
	}
	f.service = NewOverrideService(f.overrides, f.shifts, f.plans, f.employees)
	return f
}

func createReq(employeeID, date string) schedule.CreateOverrideRequest {
	in := date + "T02:00:00Z"
	out := date + "T11:00:00Z"
	return schedule.CreateOverrideRequest{
		EmployeeID: employeeID,
		Date:       date,
		InAt:       &in,
		OutAt:      &out,
	}
}

func lockedPlan(departmentID, date string, kind schedule.PlanTargetKind, targets ...string) schedule.SchedulePlan {
	day, _ := time.Parse("2006-01-02", date)
	return schedule.SchedulePlan{
		ID:                "plan-locked",
		DepartmentID:      departmentID,
		StartDate:         day,
		EndDate:           day,
		IsLocked:          true,
		TargetKind:        kind,
		TargetEmployeeIDs: targets,
		IsActive:          true,
	}
}

// =============================================================================
// Tests
// =============================================================================

func TestCreateOverride(t *testing.T) {
	t.Parallel()

	f := newOverrideFixture()
	created, err := f.service.CreateOverride(context.Background(), createReq("emp-1", "2025-06-02"), "admin-1")
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "emp-1", created.EmployeeID)
	require.NotNil(t, created.InAt)
	require.NotNil(t, created.OutAt)
	assert.Equal(t, time.UTC, created.InAt.Location())
	require.NotNil(t, created.CreatedBy)
	assert.Equal(t, "admin-1", *created.CreatedBy)
	assert.Len(t, f.overrides.overrides, 1)
}

func TestCreateOverride_SecondOverrideSameDayRejected(t *testing.T) {
	t.Parallel()

	f := newOverrideFixture()
	_, err := f.service.CreateOverride(context.Background(), createReq("emp-1", "2025-06-02"), "admin-1")
	require.NoError(t, err)

	_, err = f.service.CreateOverride(context.Background(), createReq("emp-1", "2025-06-02"), "admin-2")
	assert.ErrorIs(t, err, schedule.ErrOverrideExists)
	assert.Len(t, f.overrides.overrides, 1)

	// A different day is fine.
	_, err = f.service.CreateOverride(context.Background(), createReq("emp-1", "2025-06-03"), "admin-2")
	assert.NoError(t, err)
}

func TestCreateOverride_UnknownEmployee(t *testing.T) {
	t.Parallel()

	f := newOverrideFixture()
	_, err := f.service.CreateOverride(context.Background(), createReq("ghost", "2025-06-02"), "admin-1")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestCreateOverride_UnknownForcedShift(t *testing.T) {
	t.Parallel()

	f := newOverrideFixture()
	req := createReq("emp-1", "2025-06-02")
	shiftID := "nope"
	req.ForcedShiftID = &shiftID

	_, err := f.service.CreateOverride(context.Background(), req, "admin-1")
	assert.ErrorIs(t, err, schedule.ErrShiftNotFound)
}

func TestCreateOverride_LockedPlanDay(t *testing.T) {
	t.Parallel()

	f := newOverrideFixture()
	f.plans.plans = []schedule.SchedulePlan{
		lockedPlan("dept-1", "2025-06-02", schedule.TargetWholeDepartment),
	}

	_, err := f.service.CreateOverride(context.Background(), createReq("emp-1", "2025-06-02"), "admin-1")
	assert.ErrorIs(t, err, schedule.ErrPlanLocked)
	assert.Empty(t, f.overrides.overrides)

	// The day after the locked range is open again.
	_, err = f.service.CreateOverride(context.Background(), createReq("emp-1", "2025-06-03"), "admin-1")
	assert.NoError(t, err)
}

func TestCreateOverride_LockedPlanNotTargetingEmployee(t *testing.T) {
	t.Parallel()

	f := newOverrideFixture()
	f.plans.plans = []schedule.SchedulePlan{
		lockedPlan("dept-1", "2025-06-02", schedule.TargetOnlyEmployee, "someone-else"),
	}

	_, err := f.service.CreateOverride(context.Background(), createReq("emp-1", "2025-06-02"), "admin-1")
	assert.NoError(t, err, "lock only binds the employees the plan targets")
}

func TestPatchOverride_ExplicitNullClearsField(t *testing.T) {
	t.Parallel()

	f := newOverrideFixture()
	created, err := f.service.CreateOverride(context.Background(), createReq("emp-1", "2025-06-02"), "admin-1")
	require.NoError(t, err)

	patched, err := f.service.PatchOverride(context.Background(), created.ID, schedule.OverridePatch{
		OutAt:    nil,
		Provided: []string{"out_at"},
	})
	require.NoError(t, err)
	assert.Nil(t, patched.OutAt)
	assert.NotNil(t, patched.InAt, "untouched field survives the patch")
}

func TestPatchOverride_LockedPlanDay(t *testing.T) {
	t.Parallel()

	f := newOverrideFixture()
	created, err := f.service.CreateOverride(context.Background(), createReq("emp-1", "2025-06-02"), "admin-1")
	require.NoError(t, err)

	f.plans.plans = []schedule.SchedulePlan{
		lockedPlan("dept-1", "2025-06-02", schedule.TargetWholeDepartment),
	}

	absent := true
	_, err = f.service.PatchOverride(context.Background(), created.ID, schedule.OverridePatch{
		IsAbsent: &absent,
		Provided: []string{"is_absent"},
	})
	assert.ErrorIs(t, err, schedule.ErrPlanLocked)
}

func TestPatchOverride_NotFound(t *testing.T) {
	t.Parallel()

	f := newOverrideFixture()
	_, err := f.service.PatchOverride(context.Background(), "missing", schedule.OverridePatch{})
	assert.ErrorIs(t, err, schedule.ErrOverrideNotFound)
}

func TestDeleteOverride(t *testing.T) {
	t.Parallel()

	f := newOverrideFixture()
	created, err := f.service.CreateOverride(context.Background(), createReq("emp-1", "2025-06-02"), "admin-1")
	require.NoError(t, err)

	require.NoError(t, f.service.DeleteOverride(context.Background(), created.ID))
	assert.Empty(t, f.overrides.overrides)

	assert.ErrorIs(t, f.service.DeleteOverride(context.Background(), created.ID), schedule.ErrOverrideNotFound)
}

func TestDeleteOverride_LockedPlanDay(t *testing.T) {
	t.Parallel()

	f := newOverrideFixture()
	created, err := f.service.CreateOverride(context.Background(), createReq("emp-1", "2025-06-02"), "admin-1")
	require.NoError(t, err)

	f.plans.plans = []schedule.SchedulePlan{
		lockedPlan("dept-1", "2025-06-02", schedule.TargetWholeDepartment),
	}

	assert.ErrorIs(t, f.service.DeleteOverride(context.Background(), created.ID), schedule.ErrPlanLocked)
	assert.Len(t, f.overrides.overrides, 1)
}
