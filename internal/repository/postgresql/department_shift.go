package postgresql

import (
	"context"
	"fmt"

	"github.com/clockwise-hq/timekeep-backend-go/internal/domain/schedule"
	"github.com/clockwise-hq/timekeep-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type departmentShiftRepositoryImpl struct {
	db *database.DB
}

func NewDepartmentShiftRepository(db *database.DB) schedule.DepartmentShiftRepository {
	return &departmentShiftRepositoryImpl{db: db}
}

// ListByDepartment implements schedule.DepartmentShiftRepository. Inactive
// shifts are included; historical days may still reference them.
func (d *departmentShiftRepositoryImpl) ListByDepartment(ctx context.Context, departmentID string) ([]schedule.DepartmentShift, error) {
	q := GetQuerier(ctx, d.db)

	query := `
		SELECT id, department_id, name, start_local, end_local, break_minutes,
			   is_active, created_at, updated_at, deleted_at
		FROM department_shifts
		WHERE department_id = $1
		ORDER BY name ASC, id ASC
	`

	rows, err := q.Query(ctx, query, departmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list department shifts: %w", err)
	}
	defer rows.Close()

	var shifts []schedule.DepartmentShift
	for rows.Next() {
		var s schedule.DepartmentShift
		if err := rows.Scan(
			&s.ID, &s.DepartmentID, &s.Name, &s.StartLocal, &s.EndLocal, &s.BreakMinutes,
			&s.IsActive, &s.CreatedAt, &s.UpdatedAt, &s.DeletedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan department shift: %w", err)
		}
		shifts = append(shifts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate department shifts: %w", err)
	}

	return shifts, nil
}

// GetByID implements schedule.DepartmentShiftRepository.
func (d *departmentShiftRepositoryImpl) GetByID(ctx context.Context, id string, departmentID string) (schedule.DepartmentShift, error) {
	q := GetQuerier(ctx, d.db)

	query := `
		SELECT id, department_id, name, start_local, end_local, break_minutes,
			   is_active, created_at, updated_at, deleted_at
		FROM department_shifts
		WHERE id = $1 AND department_id = $2
	`

	var s schedule.DepartmentShift
	err := q.QueryRow(ctx, query, id, departmentID).Scan(
		&s.ID, &s.DepartmentID, &s.Name, &s.StartLocal, &s.EndLocal, &s.BreakMinutes,
		&s.IsActive, &s.CreatedAt, &s.UpdatedAt, &s.DeletedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return schedule.DepartmentShift{}, schedule.ErrShiftNotFound
		}
		return schedule.DepartmentShift{}, fmt.Errorf("failed to get department shift: %w", err)
	}

	return s, nil
}
