package postgresql

import (
	"context"
	"fmt"

	"github.com/clockwise-hq/timekeep-backend-go/internal/domain/timesheet"
	"github.com/clockwise-hq/timekeep-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type laborProfileRepositoryImpl struct {
	db *database.DB
}

func NewLaborProfileRepository(db *database.DB) timesheet.LaborProfileRepository {
	return &laborProfileRepositoryImpl{db: db}
}

// GetByCompany implements timesheet.LaborProfileRepository.
func (l *laborProfileRepositoryImpl) GetByCompany(ctx context.Context, companyID string) (timesheet.LaborProfile, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT weekly_legal_norm_minutes, daily_max_minutes, night_work_max_minutes,
			   enforce_minimum_break, annual_overtime_cap_minutes, overtime_rounding
		FROM labor_profiles
		WHERE company_id = $1
	`

	var profile timesheet.LaborProfile
	var rounding string
	err := q.QueryRow(ctx, query, companyID).Scan(
		&profile.WeeklyLegalNormMinutes,
		&profile.DailyMaxMinutes,
		&profile.NightWorkMaxMinutes,
		&profile.EnforceMinimumBreak,
		&profile.AnnualOvertimeCapMinutes,
		&rounding,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return timesheet.LaborProfile{}, timesheet.ErrLaborProfileNotFound
		}
		return timesheet.LaborProfile{}, fmt.Errorf("failed to get labor profile: %w", err)
	}
	profile.OvertimeRounding = timesheet.RoundingMode(rounding)

	return profile, nil
}
