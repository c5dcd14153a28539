package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)

	// ListByDepartment returns employees of one department; inactive rows are
	// included only when includeInactive is set.
	ListByDepartment(ctx context.Context, departmentID string, includeInactive bool) ([]Employee, error)
}
