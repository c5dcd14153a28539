package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/clockwise-hq/timekeep-backend-go/internal/domain/schedule"
	"github.com/clockwise-hq/timekeep-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type OverrideHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Patch(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type overrideHandlerImpl struct {
	overrideService schedule.OverrideService
}

func NewOverrideHandler(overrideService schedule.OverrideService) OverrideHandler {
	return &overrideHandlerImpl{
		overrideService: overrideService,
	}
}

type overrideResponse struct {
	ID                 string  `json:"id"`
	EmployeeID         string  `json:"employee_id"`
	Date               string  `json:"date"`
	IsAbsent           bool    `json:"is_absent"`
	InAt               *string `json:"in_at,omitempty"`
	OutAt              *string `json:"out_at,omitempty"`
	RuleSourceOverride *string `json:"rule_source_override,omitempty"`
	ForcedShiftID      *string `json:"forced_shift_id,omitempty"`
	Note               *string `json:"note,omitempty"`
}

func toOverrideResponse(ov schedule.ManualDayOverride) overrideResponse {
	resp := overrideResponse{
		ID:            ov.ID,
		EmployeeID:    ov.EmployeeID,
		Date:          ov.Date.Format("2006-01-02"),
		IsAbsent:      ov.IsAbsent,
		ForcedShiftID: ov.ForcedShiftID,
		Note:          ov.Note,
	}
	if ov.InAt != nil {
		s := ov.InAt.UTC().Format(time.RFC3339)
		resp.InAt = &s
	}
	if ov.OutAt != nil {
		s := ov.OutAt.UTC().Format(time.RFC3339)
		resp.OutAt = &s
	}
	if ov.RuleSourceOverride != nil {
		s := string(*ov.RuleSourceOverride)
		resp.RuleSourceOverride = &s
	}
	return resp
}

// Create implements OverrideHandler.
func (h *overrideHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req schedule.CreateOverrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode override request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	createdBy := userIDFromClaims(r)

	override, err := h.overrideService.CreateOverride(r.Context(), req, createdBy)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Manual override created", toOverrideResponse(override))
}

type overridePatchBody struct {
	IsAbsent           *bool   `json:"is_absent"`
	InAt               *string `json:"in_at"`
	OutAt              *string `json:"out_at"`
	RuleSourceOverride *string `json:"rule_source_override"`
	ForcedShiftID      *string `json:"forced_shift_id"`
	Note               *string `json:"note"`
}

// Patch implements OverrideHandler. Field presence in the body is what marks
// a field for update, so explicit nulls clear values.
func (h *overrideHandlerImpl) Patch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Override id is required", nil)
		return
	}

	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		slog.Error("Failed to decode override patch", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	patch, err := buildOverridePatch(raw)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	override, err := h.overrideService.PatchOverride(r.Context(), id, patch)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Manual override updated", toOverrideResponse(override))
}

// Delete implements OverrideHandler.
func (h *overrideHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Override id is required", nil)
		return
	}

	if err := h.overrideService.DeleteOverride(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Manual override deleted", nil)
}

func buildOverridePatch(raw map[string]json.RawMessage) (schedule.OverridePatch, error) {
	var body overridePatchBody
	merged, err := json.Marshal(raw)
	if err != nil {
		return schedule.OverridePatch{}, err
	}
	if err := json.Unmarshal(merged, &body); err != nil {
		return schedule.OverridePatch{}, err
	}

	patch := schedule.OverridePatch{
		IsAbsent:      body.IsAbsent,
		ForcedShiftID: body.ForcedShiftID,
		Note:          body.Note,
	}
	for field := range raw {
		patch.Provided = append(patch.Provided, field)
	}

	if body.InAt != nil {
		t, err := time.Parse(time.RFC3339, *body.InAt)
		if err != nil {
			return schedule.OverridePatch{}, err
		}
		utc := t.UTC()
		patch.InAt = &utc
	}
	if body.OutAt != nil {
		t, err := time.Parse(time.RFC3339, *body.OutAt)
		if err != nil {
			return schedule.OverridePatch{}, err
		}
		utc := t.UTC()
		patch.OutAt = &utc
	}
	if body.RuleSourceOverride != nil {
		src := schedule.RuleSource(*body.RuleSourceOverride)
		patch.RuleSourceOverride = &src
	}

	return patch, nil
}
