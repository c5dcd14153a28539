package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/clockwise-hq/timekeep-backend-go/internal/domain/leave"
	"github.com/clockwise-hq/timekeep-backend-go/internal/pkg/database"
)

type leaveRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepositoryImpl{db: db}
}

// ListApprovedOverlapping implements leave.LeaveRepository.
func (l *leaveRepositoryImpl) ListApprovedOverlapping(ctx context.Context, employeeID string, from, to time.Time) ([]leave.Leave, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT id, employee_id, type, start_date, end_date, status, created_at, updated_at
		FROM leaves
		WHERE employee_id = $1
		  AND status = $2
		  AND start_date <= $3
		  AND end_date >= $4
		ORDER BY start_date ASC, id ASC
	`

	rows, err := q.Query(ctx, query, employeeID, string(leave.StatusApproved), to, from)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaves: %w", err)
	}
	defer rows.Close()

	var leaves []leave.Leave
	for rows.Next() {
		var lv leave.Leave
		var status string
		if err := rows.Scan(
			&lv.ID, &lv.EmployeeID, &lv.Type, &lv.StartDate, &lv.EndDate, &status,
			&lv.CreatedAt, &lv.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan leave: %w", err)
		}
		lv.Status = leave.LeaveStatus(status)
		leaves = append(leaves, lv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leaves: %w", err)
	}

	return leaves, nil
}
