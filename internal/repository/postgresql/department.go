package postgresql

import (
	"context"
	"fmt"

	"github.com/clockwise-hq/timekeep-backend-go/internal/domain/department"
	"github.com/clockwise-hq/timekeep-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type departmentRepositoryImpl struct {
	db *database.DB
}

func NewDepartmentRepository(db *database.DB) department.DepartmentRepository {
	return &departmentRepositoryImpl{db: db}
}

const departmentColumns = `
	id, company_id, region_id, name, timezone,
	office_latitude, office_longitude, office_radius_m,
	created_at, updated_at
`

func scanDepartment(row pgx.Row) (department.Department, error) {
	var dept department.Department
	err := row.Scan(
		&dept.ID, &dept.CompanyID, &dept.RegionID, &dept.Name, &dept.Timezone,
		&dept.OfficeLatitude, &dept.OfficeLongitude, &dept.OfficeRadiusM,
		&dept.CreatedAt, &dept.UpdatedAt,
	)
	return dept, err
}

// GetByID implements department.DepartmentRepository.
func (d *departmentRepositoryImpl) GetByID(ctx context.Context, id string) (department.Department, error) {
	q := GetQuerier(ctx, d.db)

	query := `SELECT` + departmentColumns + `FROM departments WHERE id = $1`

	dept, err := scanDepartment(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return department.Department{}, department.ErrDepartmentNotFound
		}
		return department.Department{}, fmt.Errorf("failed to get department by id %s: %w", id, err)
	}

	return dept, nil
}

// ListByRegion implements department.DepartmentRepository.
func (d *departmentRepositoryImpl) ListByRegion(ctx context.Context, regionID string) ([]department.Department, error) {
	query := `SELECT` + departmentColumns + `FROM departments WHERE region_id = $1 ORDER BY name ASC, id ASC`
	return d.list(ctx, query, regionID)
}

// ListAll implements department.DepartmentRepository.
func (d *departmentRepositoryImpl) ListAll(ctx context.Context) ([]department.Department, error) {
	query := `SELECT` + departmentColumns + `FROM departments ORDER BY name ASC, id ASC`
	return d.list(ctx, query)
}

func (d *departmentRepositoryImpl) list(ctx context.Context, query string, args ...interface{}) ([]department.Department, error) {
	q := GetQuerier(ctx, d.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	defer rows.Close()

	var departments []department.Department
	for rows.Next() {
		dept, err := scanDepartment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan department: %w", err)
		}
		departments = append(departments, dept)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate departments: %w", err)
	}

	return departments, nil
}
