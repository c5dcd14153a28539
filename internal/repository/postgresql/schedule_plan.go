package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/clockwise-hq/timekeep-backend-go/internal/domain/schedule"
	"github.com/clockwise-hq/timekeep-backend-go/internal/pkg/database"
)

type schedulePlanRepositoryImpl struct {
	db *database.DB
}

func NewSchedulePlanRepository(db *database.DB) schedule.SchedulePlanRepository {
	return &schedulePlanRepositoryImpl{db: db}
}

// ListActiveOverlapping implements schedule.SchedulePlanRepository.
func (s *schedulePlanRepositoryImpl) ListActiveOverlapping(ctx context.Context, departmentID string, from, to time.Time) ([]schedule.SchedulePlan, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT id, department_id, name, start_date, end_date, shift_id,
			   planned_minutes, break_minutes, grace_minutes,
			   is_locked, target_kind, target_employee_ids, is_active,
			   created_at, updated_at
		FROM schedule_plans
		WHERE department_id = $1
		  AND is_active
		  AND start_date <= $2
		  AND end_date >= $3
		ORDER BY start_date ASC, id ASC
	`

	rows, err := q.Query(ctx, query, departmentID, to, from)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedule plans: %w", err)
	}
	defer rows.Close()

	var plans []schedule.SchedulePlan
	for rows.Next() {
		var p schedule.SchedulePlan
		var targetKind string
		if err := rows.Scan(
			&p.ID, &p.DepartmentID, &p.Name, &p.StartDate, &p.EndDate, &p.ShiftID,
			&p.PlannedMinutes, &p.BreakMinutes, &p.GraceMinutes,
			&p.IsLocked, &targetKind, &p.TargetEmployeeIDs, &p.IsActive,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan schedule plan: %w", err)
		}
		p.TargetKind = schedule.PlanTargetKind(targetKind)
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate schedule plans: %w", err)
	}

	return plans, nil
}
