package schedule

import "context"

// OverrideService manages manual day overrides (admin surface).
type OverrideService interface {
	CreateOverride(ctx context.Context, req CreateOverrideRequest, createdBy string) (ManualDayOverride, error)
	PatchOverride(ctx context.Context, id string, patch OverridePatch) (ManualDayOverride, error)
	DeleteOverride(ctx context.Context, id string) error
}
