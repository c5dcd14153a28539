package schedule

import (
	"time"

	"github.com/clockwise-hq/timekeep-backend-go/internal/pkg/validator"
)

// CreateOverrideRequest creates a manual day override for one employee-day.
type CreateOverrideRequest struct {
	EmployeeID         string  `json:"employee_id"`
	Date               string  `json:"date"` // 2006-01-02, local
	IsAbsent           bool    `json:"is_absent"`
	InAt               *string `json:"in_at"`  // RFC3339, UTC
	OutAt              *string `json:"out_at"` // RFC3339, UTC
	RuleSourceOverride *string `json:"rule_source_override"`
	ForcedShiftID      *string `json:"forced_shift_id"`
	Note               *string `json:"note"`
}

func (r CreateOverrideRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if !validator.IsValidDate(r.Date) {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be YYYY-MM-DD"})
	}
	if !r.IsAbsent && (r.InAt == nil || r.OutAt == nil) {
		errs = append(errs, validator.ValidationError{Field: "in_at", Message: "in_at and out_at are required unless is_absent"})
	}
	if r.RuleSourceOverride != nil && !validator.IsOneOf(*r.RuleSourceOverride, RuleSourceValues) {
		errs = append(errs, validator.ValidationError{Field: "rule_source_override", Message: "must be one of SHIFT, WEEKLY, WORK_RULE"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// OverridePatch is a partial update of a ManualDayOverride. Provided lists
// the JSON field names that were present in the request body, so clearing a
// field is distinguishable from omitting it.
type OverridePatch struct {
	IsAbsent           *bool
	InAt               *time.Time
	OutAt              *time.Time
	RuleSourceOverride *RuleSource
	ForcedShiftID      *string
	Note               *string

	Provided []string
}

func (p OverridePatch) Has(field string) bool {
	for _, f := range p.Provided {
		if f == field {
			return true
		}
	}
	return false
}

// Apply copies the provided fields onto the override.
func (p OverridePatch) Apply(o *ManualDayOverride) {
	if p.Has("is_absent") && p.IsAbsent != nil {
		o.IsAbsent = *p.IsAbsent
	}
	if p.Has("in_at") {
		o.InAt = p.InAt
	}
	if p.Has("out_at") {
		o.OutAt = p.OutAt
	}
	if p.Has("rule_source_override") {
		o.RuleSourceOverride = p.RuleSourceOverride
	}
	if p.Has("forced_shift_id") {
		o.ForcedShiftID = p.ForcedShiftID
	}
	if p.Has("note") {
		o.Note = p.Note
	}
}
