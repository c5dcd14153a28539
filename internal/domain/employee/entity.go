package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID           string
	DepartmentID string
	EmployeeCode string
	FullName     string

	// DefaultShiftID assigns a standing department shift; a schedule plan or
	// manual override can still replace it per day.
	DefaultShiftID *string

	// ContractWeeklyMinutes caps the weekly normal-minutes classification.
	// Nil means the legal weekly norm applies as-is.
	ContractWeeklyMinutes *int

	BaseSalary *decimal.Decimal

	IsActive  bool
	HireDate  time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}
