package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/clockwise-hq/timekeep-backend-go/internal/domain/schedule"
	"github.com/clockwise-hq/timekeep-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type manualOverrideRepositoryImpl struct {
	db *database.DB
}

func NewManualOverrideRepository(db *database.DB) schedule.ManualOverrideRepository {
	return &manualOverrideRepositoryImpl{db: db}
}

const manualOverrideColumns = `
	id, employee_id, date, is_absent, in_at, out_at,
	rule_source_override, forced_shift_id, note, created_by,
	created_at, updated_at
`

func scanManualOverride(row pgx.Row) (schedule.ManualDayOverride, error) {
	var ov schedule.ManualDayOverride
	var ruleSource *string
	err := row.Scan(
		&ov.ID, &ov.EmployeeID, &ov.Date, &ov.IsAbsent, &ov.InAt, &ov.OutAt,
		&ruleSource, &ov.ForcedShiftID, &ov.Note, &ov.CreatedBy,
		&ov.CreatedAt, &ov.UpdatedAt,
	)
	if err != nil {
		return schedule.ManualDayOverride{}, err
	}
	if ruleSource != nil {
		src := schedule.RuleSource(*ruleSource)
		ov.RuleSourceOverride = &src
	}
	return ov, nil
}

func ruleSourceArg(src *schedule.RuleSource) *string {
	if src == nil {
		return nil
	}
	s := string(*src)
	return &s
}

// ListForRange implements schedule.ManualOverrideRepository.
func (m *manualOverrideRepositoryImpl) ListForRange(ctx context.Context, employeeID string, from, to time.Time) ([]schedule.ManualDayOverride, error) {
	q := GetQuerier(ctx, m.db)

	query := `SELECT` + manualOverrideColumns + `
		FROM manual_day_overrides
		WHERE employee_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list manual overrides: %w", err)
	}
	defer rows.Close()

	var overrides []schedule.ManualDayOverride
	for rows.Next() {
		ov, err := scanManualOverride(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan manual override: %w", err)
		}
		overrides = append(overrides, ov)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate manual overrides: %w", err)
	}

	return overrides, nil
}

// GetByID implements schedule.ManualOverrideRepository.
func (m *manualOverrideRepositoryImpl) GetByID(ctx context.Context, id string) (schedule.ManualDayOverride, error) {
	q := GetQuerier(ctx, m.db)

	query := `SELECT` + manualOverrideColumns + `FROM manual_day_overrides WHERE id = $1`

	ov, err := scanManualOverride(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return schedule.ManualDayOverride{}, schedule.ErrOverrideNotFound
		}
		return schedule.ManualDayOverride{}, fmt.Errorf("failed to get manual override: %w", err)
	}

	return ov, nil
}

// Create implements schedule.ManualOverrideRepository. The duplicate check
// and the insert share one transaction so concurrent admins cannot land two
// overrides on the same employee-day.
func (m *manualOverrideRepositoryImpl) Create(ctx context.Context, override schedule.ManualDayOverride) (schedule.ManualDayOverride, error) {
	err := WithTransaction(ctx, m.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)
		q := GetQuerier(txCtx, m.db)

		var existingID string
		err := q.QueryRow(txCtx,
			`SELECT id FROM manual_day_overrides WHERE employee_id = $1 AND date = $2 FOR UPDATE`,
			override.EmployeeID, override.Date,
		).Scan(&existingID)
		if err == nil {
			return schedule.ErrOverrideExists
		}
		if err != pgx.ErrNoRows {
			return fmt.Errorf("failed to check existing override: %w", err)
		}

		query := `
			INSERT INTO manual_day_overrides (
				id, employee_id, date, is_absent, in_at, out_at,
				rule_source_override, forced_shift_id, note, created_by
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
			) RETURNING created_at, updated_at
		`

		return q.QueryRow(txCtx, query,
			override.ID,
			override.EmployeeID,
			override.Date,
			override.IsAbsent,
			override.InAt,
			override.OutAt,
			ruleSourceArg(override.RuleSourceOverride),
			override.ForcedShiftID,
			override.Note,
			override.CreatedBy,
		).Scan(&override.CreatedAt, &override.UpdatedAt)
	})
	if err != nil {
		if err == schedule.ErrOverrideExists {
			return schedule.ManualDayOverride{}, schedule.ErrOverrideExists
		}
		return schedule.ManualDayOverride{}, fmt.Errorf("failed to create manual override: %w", err)
	}

	return override, nil
}

// Update implements schedule.ManualOverrideRepository.
func (m *manualOverrideRepositoryImpl) Update(ctx context.Context, override schedule.ManualDayOverride) error {
	q := GetQuerier(ctx, m.db)

	query := `
		UPDATE manual_day_overrides
		SET is_absent = $1, in_at = $2, out_at = $3,
			rule_source_override = $4, forced_shift_id = $5, note = $6,
			updated_at = NOW()
		WHERE id = $7
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		override.IsAbsent,
		override.InAt,
		override.OutAt,
		ruleSourceArg(override.RuleSourceOverride),
		override.ForcedShiftID,
		override.Note,
		override.ID,
	).Scan(&updatedID)

	if err != nil {
		if err == pgx.ErrNoRows {
			return schedule.ErrOverrideNotFound
		}
		return fmt.Errorf("failed to update manual override: %w", err)
	}

	return nil
}

// Delete implements schedule.ManualOverrideRepository.
func (m *manualOverrideRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, m.db)

	query := `DELETE FROM manual_day_overrides WHERE id = $1 RETURNING id`

	var deletedID string
	err := q.QueryRow(ctx, query, id).Scan(&deletedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return schedule.ErrOverrideNotFound
		}
		return fmt.Errorf("failed to delete manual override: %w", err)
	}

	return nil
}
