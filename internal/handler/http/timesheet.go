package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/clockwise-hq/timekeep-backend-go/internal/domain/timesheet"
	"github.com/clockwise-hq/timekeep-backend-go/internal/handler/http/response"
	"github.com/clockwise-hq/timekeep-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type TimesheetHandler interface {
	GetEmployeeMonth(w http.ResponseWriter, r *http.Request)
	GetDepartmentSummary(w http.ResponseWriter, r *http.Request)
}

type timesheetHandlerImpl struct {
	timesheetService timesheet.TimesheetService
}

func NewTimesheetHandler(timesheetService timesheet.TimesheetService) TimesheetHandler {
	return &timesheetHandlerImpl{
		timesheetService: timesheetService,
	}
}

// GetEmployeeMonth implements TimesheetHandler.
// GET /timesheets/employees/{employeeID}?year=2025&month=6
func (h *timesheetHandlerImpl) GetEmployeeMonth(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		response.BadRequest(w, "Employee id is required", nil)
		return
	}

	year, month, ok := parseYearMonth(w, r)
	if !ok {
		return
	}

	report, err := h.timesheetService.ComputeEmployeeMonth(r.Context(), employeeID, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, timesheet.ToMonthlyReportResponse(report))
}

// GetDepartmentSummary implements TimesheetHandler.
// GET /timesheets/departments/summary?year=2025&month=6[&department_id=..|&region_id=..][&include_inactive=true]
func (h *timesheetHandlerImpl) GetDepartmentSummary(w http.ResponseWriter, r *http.Request) {
	year, month, ok := parseYearMonth(w, r)
	if !ok {
		return
	}

	filter := timesheet.DepartmentSummaryFilter{
		Year:            year,
		Month:           month,
		IncludeInactive: r.URL.Query().Get("include_inactive") == "true",
	}
	if v := r.URL.Query().Get("department_id"); v != "" {
		filter.DepartmentID = &v
	}
	if v := r.URL.Query().Get("region_id"); v != "" {
		filter.RegionID = &v
	}
	if filter.DepartmentID != nil && filter.RegionID != nil {
		response.BadRequest(w, "department_id and region_id are mutually exclusive", nil)
		return
	}

	summary, err := h.timesheetService.ComputeDepartmentMonthSummary(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, timesheet.ToDepartmentMonthSummaryResponse(summary))
}

func parseYearMonth(w http.ResponseWriter, r *http.Request) (int, time.Month, bool) {
	yearStr := r.URL.Query().Get("year")
	if !validator.IsNumeric(yearStr) {
		response.BadRequest(w, "year is required and must be a number", nil)
		return 0, 0, false
	}
	year, _ := strconv.Atoi(yearStr)

	monthStr := r.URL.Query().Get("month")
	if !validator.IsNumeric(monthStr) {
		response.BadRequest(w, "month is required and must be 1-12", nil)
		return 0, 0, false
	}
	monthNum, _ := strconv.Atoi(monthStr)
	if monthNum < 1 || monthNum > 12 {
		response.BadRequest(w, "month is required and must be 1-12", nil)
		return 0, 0, false
	}
	return year, time.Month(monthNum), true
}
