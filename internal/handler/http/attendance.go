package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/arhamhameed97/Timesheet-Management-sub000/internal/domain/attendance"
	"github.com/arhamhameed97/Timesheet-Management-sub000/internal/handler/http/response"
	"github.com/arhamhameed97/Timesheet-Management-sub000/internal/pkg/validator"
	"github.com/go-chi/jwtauth/v5"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	GetMyAttendance(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Sweep(w http.ResponseWriter, r *http.Request)
	WeeklyTimesheet(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// CheckIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckInRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			slog.Error("Failed to decode check-in request", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}

	result, err := h.attendanceService.CheckIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Check in successful", result)
}

// CheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckOutRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			slog.Error("Failed to decode check-out request", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}

	result, err := h.attendanceService.CheckOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Check out successful", result)
}

// GetMyAttendance implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetMyAttendance(w http.ResponseWriter, r *http.Request) {
	filter, err := parseListFilter(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	records, total, err := h.attendanceService.GetMyAttendance(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, records, listMeta(filter.Page, filter.Limit, total))
}

// List implements AttendanceHandler.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseListFilter(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	records, total, err := h.attendanceService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, records, listMeta(filter.Page, filter.Limit, total))
}

// Sweep implements AttendanceHandler.
func (h *attendanceHandlerImpl) Sweep(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employee_id")

	// Optional as_of lets an admin replay the sweep relative to a past
	// instant; days on or after that instant's UTC date stay open.
	asOf := time.Now().UTC()
	if raw := r.URL.Query().Get("as_of"); raw != "" {
		parsed, ok := validator.IsValidDateTime(raw)
		if !ok {
			response.BadRequest(w, "Invalid as_of, expected an RFC3339 timestamp", nil)
			return
		}
		asOf = parsed.UTC()
	}

	var companyID string
	if _, claims, err := jwtauth.FromContext(r.Context()); err == nil {
		companyID, _ = claims["company_id"].(string)
	}

	count, err := h.attendanceService.SweepAutoCheckout(r.Context(), employeeID, companyID, asOf)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Sweep completed", attendance.SweepResponse{RemediatedCount: count})
}

// WeeklyTimesheet implements AttendanceHandler.
func (h *attendanceHandlerImpl) WeeklyTimesheet(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employee_id")
	if employeeID == "" {
		// default to the caller's own timesheet
		if _, claims, err := jwtauth.FromContext(r.Context()); err == nil {
			employeeID, _ = claims["employee_id"].(string)
		}
	}

	date := time.Now().UTC()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, ok := validator.IsValidDate(raw)
		if !ok {
			response.BadRequest(w, "Invalid date, expected YYYY-MM-DD", nil)
			return
		}
		date = parsed
	}

	result, err := h.attendanceService.WeeklyTimesheet(r.Context(), employeeID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func parseListFilter(r *http.Request) (attendance.ListFilter, error) {
	var filter attendance.ListFilter
	q := r.URL.Query()

	if employeeID := q.Get("employee_id"); employeeID != "" {
		filter.EmployeeID = &employeeID
	}
	if raw := q.Get("from"); raw != "" {
		from, ok := validator.IsValidDate(raw)
		if !ok {
			return filter, validator.ValidationErrors{{Field: "from", Message: "must be YYYY-MM-DD"}}
		}
		filter.From = &from
	}
	if raw := q.Get("to"); raw != "" {
		to, ok := validator.IsValidDate(raw)
		if !ok {
			return filter, validator.ValidationErrors{{Field: "to", Message: "must be YYYY-MM-DD"}}
		}
		filter.To = &to
	}
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))

	return filter, nil
}

func listMeta(page, limit int, total int64) *response.Meta {
	if limit <= 0 {
		limit = 20
	}
	if page <= 0 {
		page = 1
	}
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &response.Meta{
		Page:       page,
		Limit:      limit,
		TotalItems: total,
		TotalPages: totalPages,
	}
}
