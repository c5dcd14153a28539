package department

import "time"

// Department groups employees under one attendance timezone and, optionally,
// one office location used for punch radius checks.
type Department struct {
	ID        string
	CompanyID string
	RegionID  *string
	Name      string

	// Timezone is an IANA zone name; invalid or empty values fall back to the
	// configured default attendance zone.
	Timezone string

	OfficeLatitude  *float64
	OfficeLongitude *float64
	OfficeRadiusM   *int

	CreatedAt time.Time
	UpdatedAt time.Time
}
