package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/clockwise-hq/timekeep-backend-go/internal/domain/attendance"
	"github.com/clockwise-hq/timekeep-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
)

type AttendanceHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	CreateManualEvent(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// ClockIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	h.punch(w, r, h.attendanceService.ClockIn)
}

// ClockOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	h.punch(w, r, h.attendanceService.ClockOut)
}

func (h *attendanceHandlerImpl) punch(w http.ResponseWriter, r *http.Request, record func(ctx context.Context, req attendance.PunchRequest) (attendance.EventResponse, error)) {
	var req attendance.PunchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode punch request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := record(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Punch recorded", resp)
}

// CreateManualEvent implements AttendanceHandler. Admin only.
func (h *attendanceHandlerImpl) CreateManualEvent(w http.ResponseWriter, r *http.Request) {
	var req attendance.CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode manual event request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	createdBy := userIDFromClaims(r)

	resp, err := h.attendanceService.CreateManualEvent(r.Context(), req, createdBy)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Manual event recorded", resp)
}

// Delete implements AttendanceHandler. Admin only; deletion is soft.
func (h *attendanceHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Event id is required", nil)
		return
	}

	if err := h.attendanceService.DeleteEvent(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance event deleted", nil)
}

func userIDFromClaims(r *http.Request) string {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return ""
	}
	userID, _ := claims["user_id"].(string)
	return userID
}
