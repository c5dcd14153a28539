package postgresql

import (
	"context"
	"fmt"

	"github.com/clockwise-hq/timekeep-backend-go/internal/domain/employee"
	"github.com/clockwise-hq/timekeep-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT id, department_id, employee_code, full_name, default_shift_id,
			   contract_weekly_minutes, base_salary, is_active, hire_date,
			   created_at, updated_at, deleted_at
		FROM employees
		WHERE id = $1 AND deleted_at IS NULL
	`

	var emp employee.Employee
	err := q.QueryRow(ctx, query, id).Scan(
		&emp.ID, &emp.DepartmentID, &emp.EmployeeCode, &emp.FullName, &emp.DefaultShiftID,
		&emp.ContractWeeklyMinutes, &emp.BaseSalary, &emp.IsActive, &emp.HireDate,
		&emp.CreatedAt, &emp.UpdatedAt, &emp.DeletedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by id %s: %w", id, err)
	}

	return emp, nil
}

// ListByDepartment implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ListByDepartment(ctx context.Context, departmentID string, includeInactive bool) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT id, department_id, employee_code, full_name, default_shift_id,
			   contract_weekly_minutes, base_salary, is_active, hire_date,
			   created_at, updated_at, deleted_at
		FROM employees
		WHERE department_id = $1
		  AND deleted_at IS NULL
		  AND (is_active OR $2)
		ORDER BY full_name ASC, id ASC
	`

	rows, err := q.Query(ctx, query, departmentID, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees by department: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var emp employee.Employee
		if err := rows.Scan(
			&emp.ID, &emp.DepartmentID, &emp.EmployeeCode, &emp.FullName, &emp.DefaultShiftID,
			&emp.ContractWeeklyMinutes, &emp.BaseSalary, &emp.IsActive, &emp.HireDate,
			&emp.CreatedAt, &emp.UpdatedAt, &emp.DeletedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}

	return employees, nil
}
