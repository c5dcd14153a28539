package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clockwise-hq/timekeep-backend-go/internal/domain/employee"
	"github.com/clockwise-hq/timekeep-backend-go/internal/domain/schedule"
	"github.com/clockwise-hq/timekeep-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
)

type OverrideServiceImpl struct {
	schedule.ManualOverrideRepository
	schedule.DepartmentShiftRepository
	schedule.SchedulePlanRepository
	employee.EmployeeRepository
}

func NewOverrideService(
	overrideRepo schedule.ManualOverrideRepository,
	shiftRepo schedule.DepartmentShiftRepository,
	planRepo schedule.SchedulePlanRepository,
	employeeRepo employee.EmployeeRepository,
) schedule.OverrideService {
	return &OverrideServiceImpl{
		ManualOverrideRepository:  overrideRepo,
		DepartmentShiftRepository: shiftRepo,
		SchedulePlanRepository:    planRepo,
		EmployeeRepository:        employeeRepo,
	}
}

// CreateOverride implements schedule.OverrideService. One override per
// employee-day; the next report computation picks it up with no further
// coordination.
func (s *OverrideServiceImpl) CreateOverride(ctx context.Context, req schedule.CreateOverrideRequest, createdBy string) (schedule.ManualDayOverride, error) {
	if err := req.Validate(); err != nil {
		return schedule.ManualDayOverride{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return schedule.ManualDayOverride{}, employee.ErrEmployeeNotFound
		}
		return schedule.ManualDayOverride{}, fmt.Errorf("failed to get employee: %w", err)
	}

	date, err := validator.ParseDate(req.Date)
	if err != nil {
		return schedule.ManualDayOverride{}, fmt.Errorf("failed to parse date: %w", err)
	}

	if err := s.ensureDayUnlocked(ctx, emp.DepartmentID, req.EmployeeID, date); err != nil {
		return schedule.ManualDayOverride{}, err
	}

	override := schedule.ManualDayOverride{
		ID:            uuid.NewString(),
		EmployeeID:    req.EmployeeID,
		Date:          date,
		IsAbsent:      req.IsAbsent,
		ForcedShiftID: req.ForcedShiftID,
		Note:          req.Note,
		CreatedBy:     &createdBy,
	}

	if req.InAt != nil {
		in, err := time.Parse(time.RFC3339, *req.InAt)
		if err != nil {
			return schedule.ManualDayOverride{}, fmt.Errorf("failed to parse in_at: %w", err)
		}
		inUTC := in.UTC()
		override.InAt = &inUTC
	}
	if req.OutAt != nil {
		out, err := time.Parse(time.RFC3339, *req.OutAt)
		if err != nil {
			return schedule.ManualDayOverride{}, fmt.Errorf("failed to parse out_at: %w", err)
		}
		outUTC := out.UTC()
		override.OutAt = &outUTC
	}
	if req.RuleSourceOverride != nil {
		src := schedule.RuleSource(*req.RuleSourceOverride)
		override.RuleSourceOverride = &src
	}

	if err := s.validateForcedShift(ctx, emp.DepartmentID, override.ForcedShiftID); err != nil {
		return schedule.ManualDayOverride{}, err
	}

	created, err := s.ManualOverrideRepository.Create(ctx, override)
	if err != nil {
		if errors.Is(err, schedule.ErrOverrideExists) {
			return schedule.ManualDayOverride{}, schedule.ErrOverrideExists
		}
		return schedule.ManualDayOverride{}, fmt.Errorf("failed to create manual override: %w", err)
	}
	return created, nil
}

// PatchOverride implements schedule.OverrideService.
func (s *OverrideServiceImpl) PatchOverride(ctx context.Context, id string, patch schedule.OverridePatch) (schedule.ManualDayOverride, error) {
	override, err := s.findOverride(ctx, id)
	if err != nil {
		return schedule.ManualDayOverride{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, override.EmployeeID)
	if err != nil {
		return schedule.ManualDayOverride{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if err := s.ensureDayUnlocked(ctx, emp.DepartmentID, override.EmployeeID, override.Date); err != nil {
		return schedule.ManualDayOverride{}, err
	}

	patch.Apply(&override)

	if patch.Has("forced_shift_id") && override.ForcedShiftID != nil {
		if err := s.validateForcedShift(ctx, emp.DepartmentID, override.ForcedShiftID); err != nil {
			return schedule.ManualDayOverride{}, err
		}
	}

	if err := s.ManualOverrideRepository.Update(ctx, override); err != nil {
		return schedule.ManualDayOverride{}, fmt.Errorf("failed to update manual override: %w", err)
	}
	return override, nil
}

// DeleteOverride implements schedule.OverrideService. The next computation of
// the affected day falls back to event-derived punches.
func (s *OverrideServiceImpl) DeleteOverride(ctx context.Context, id string) error {
	override, err := s.findOverride(ctx, id)
	if err != nil {
		return err
	}
	emp, err := s.EmployeeRepository.GetByID(ctx, override.EmployeeID)
	if err != nil {
		return fmt.Errorf("failed to get employee: %w", err)
	}
	if err := s.ensureDayUnlocked(ctx, emp.DepartmentID, override.EmployeeID, override.Date); err != nil {
		return err
	}
	if err := s.ManualOverrideRepository.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete manual override: %w", err)
	}
	return nil
}

func (s *OverrideServiceImpl) findOverride(ctx context.Context, id string) (schedule.ManualDayOverride, error) {
	override, err := s.ManualOverrideRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, schedule.ErrOverrideNotFound) {
			return schedule.ManualDayOverride{}, schedule.ErrOverrideNotFound
		}
		return schedule.ManualDayOverride{}, fmt.Errorf("failed to get manual override: %w", err)
	}
	return override, nil
}

// ensureDayUnlocked rejects override mutations on a day covered by a locked
// schedule plan that targets the employee. Locked plans freeze their range;
// the plan has to be unlocked before the day can be corrected by hand.
func (s *OverrideServiceImpl) ensureDayUnlocked(ctx context.Context, departmentID, employeeID string, day time.Time) error {
	plans, err := s.SchedulePlanRepository.ListActiveOverlapping(ctx, departmentID, day, day)
	if err != nil {
		return fmt.Errorf("failed to list schedule plans: %w", err)
	}
	for i := range plans {
		p := &plans[i]
		if p.IsLocked && p.ContainsDate(day) && p.AppliesTo(employeeID) {
			return schedule.ErrPlanLocked
		}
	}
	return nil
}

// validateForcedShift ensures a forced shift exists in the employee's
// department before it is persisted, so the engine never has to guess at a
// dangling reference from the admin surface.
func (s *OverrideServiceImpl) validateForcedShift(ctx context.Context, departmentID string, shiftID *string) error {
	if shiftID == nil {
		return nil
	}
	if _, err := s.DepartmentShiftRepository.GetByID(ctx, *shiftID, departmentID); err != nil {
		if errors.Is(err, schedule.ErrShiftNotFound) {
			return schedule.ErrShiftNotFound
		}
		return fmt.Errorf("failed to get department shift: %w", err)
	}
	return nil
}
