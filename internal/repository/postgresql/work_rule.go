package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/clockwise-hq/timekeep-backend-go/internal/domain/schedule"
	"github.com/clockwise-hq/timekeep-backend-go/internal/domain/timesheet"
	"github.com/clockwise-hq/timekeep-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type workRuleRepositoryImpl struct {
	db *database.DB
}

func NewWorkRuleRepository(db *database.DB) schedule.WorkRuleRepository {
	return &workRuleRepositoryImpl{db: db}
}

// GetByDepartment implements schedule.WorkRuleRepository.
func (w *workRuleRepositoryImpl) GetByDepartment(ctx context.Context, departmentID string) (schedule.WorkRule, error) {
	q := GetQuerier(ctx, w.db)

	query := `
		SELECT id, department_id, planned_minutes_gross, break_minutes, grace_minutes,
			   created_at, updated_at
		FROM work_rules
		WHERE department_id = $1
	`

	var rule schedule.WorkRule
	err := q.QueryRow(ctx, query, departmentID).Scan(
		&rule.ID, &rule.DepartmentID, &rule.PlannedMinutesGross, &rule.BreakMinutes,
		&rule.GraceMinutes, &rule.CreatedAt, &rule.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return schedule.WorkRule{}, timesheet.ErrWorkRuleNotFound
		}
		return schedule.WorkRule{}, fmt.Errorf("failed to get work rule: %w", err)
	}

	return rule, nil
}

type weeklyRuleRepositoryImpl struct {
	db *database.DB
}

func NewWeeklyRuleRepository(db *database.DB) schedule.WeeklyRuleRepository {
	return &weeklyRuleRepositoryImpl{db: db}
}

// ListByDepartment implements schedule.WeeklyRuleRepository.
func (w *weeklyRuleRepositoryImpl) ListByDepartment(ctx context.Context, departmentID string) ([]schedule.WeeklyRule, error) {
	q := GetQuerier(ctx, w.db)

	query := `
		SELECT id, department_id, weekday, is_workday, planned_minutes_gross, break_minutes,
			   created_at, updated_at
		FROM weekly_rules
		WHERE department_id = $1
		ORDER BY weekday ASC
	`

	rows, err := q.Query(ctx, query, departmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list weekly rules: %w", err)
	}
	defer rows.Close()

	var rules []schedule.WeeklyRule
	for rows.Next() {
		var rule schedule.WeeklyRule
		var weekday int
		if err := rows.Scan(
			&rule.ID, &rule.DepartmentID, &weekday, &rule.IsWorkday,
			&rule.PlannedMinutesGross, &rule.BreakMinutes,
			&rule.CreatedAt, &rule.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan weekly rule: %w", err)
		}
		rule.Weekday = time.Weekday(weekday)
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate weekly rules: %w", err)
	}

	return rules, nil
}
