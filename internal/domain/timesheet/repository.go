package timesheet

import "context"

// LaborProfileRepository loads the compliance constants for a company.
type LaborProfileRepository interface {
	GetByCompany(ctx context.Context, companyID string) (LaborProfile, error)
}
