package department

import "context"

type DepartmentRepository interface {
	GetByID(ctx context.Context, id string) (Department, error)
	ListByRegion(ctx context.Context, regionID string) ([]Department, error)
	ListAll(ctx context.Context) ([]Department, error)
}
