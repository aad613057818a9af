package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/arhamhameed97/Timesheet-Management-sub000/internal/domain/payroll"
	"github.com/arhamhameed97/Timesheet-Management-sub000/internal/handler/http/response"
	"github.com/arhamhameed97/Timesheet-Management-sub000/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	CreateRatePeriod(w http.ResponseWriter, r *http.Request)
	UpdateRatePeriod(w http.ResponseWriter, r *http.Request)
	DeleteRatePeriod(w http.ResponseWriter, r *http.Request)
	ListRatePeriods(w http.ResponseWriter, r *http.Request)
	ResolveRate(w http.ResponseWriter, r *http.Request)
	GetOvertimeConfig(w http.ResponseWriter, r *http.Request)
	UpdateOvertimeConfig(w http.ResponseWriter, r *http.Request)
	Generate(w http.ResponseWriter, r *http.Request)
	CreateSalariedRecord(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	MarkPaid(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{
		payrollService: payrollService,
	}
}

// CreateRatePeriod implements PayrollHandler.
func (h *payrollHandlerImpl) CreateRatePeriod(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreateRatePeriodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode rate period request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.payrollService.CreateRatePeriod(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Rate period created", result)
}

// UpdateRatePeriod implements PayrollHandler.
func (h *payrollHandlerImpl) UpdateRatePeriod(w http.ResponseWriter, r *http.Request) {
	var req payroll.UpdateRatePeriodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode rate period request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.payrollService.UpdateRatePeriod(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Rate period updated", result)
}

// DeleteRatePeriod implements PayrollHandler.
func (h *payrollHandlerImpl) DeleteRatePeriod(w http.ResponseWriter, r *http.Request) {
	if err := h.payrollService.DeleteRatePeriod(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Rate period deleted", nil)
}

// ListRatePeriods implements PayrollHandler.
func (h *payrollHandlerImpl) ListRatePeriods(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.ListRatePeriods(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ResolveRate implements PayrollHandler.
func (h *payrollHandlerImpl) ResolveRate(w http.ResponseWriter, r *http.Request) {
	date := time.Now().UTC()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, ok := validator.IsValidDate(raw)
		if !ok {
			response.BadRequest(w, "Invalid date, expected YYYY-MM-DD", nil)
			return
		}
		date = parsed
	}

	rate, err := h.payrollService.ResolveRate(r.Context(), chi.URLParam(r, "employeeID"), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payroll.RateResponse{
		Found:  rate.Found(),
		Amount: rate.Amount,
		Source: rate.Source,
	})
}

// GetOvertimeConfig implements PayrollHandler.
func (h *payrollHandlerImpl) GetOvertimeConfig(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.GetOvertimeConfig(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateOvertimeConfig implements PayrollHandler.
func (h *payrollHandlerImpl) UpdateOvertimeConfig(w http.ResponseWriter, r *http.Request) {
	var req payroll.UpdateOvertimeConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode overtime config request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = chi.URLParam(r, "employeeID")

	result, err := h.payrollService.UpdateOvertimeConfig(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Overtime config updated", result)
}

// Generate implements PayrollHandler.
func (h *payrollHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	var req payroll.GeneratePayrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode generate payroll request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.payrollService.GeneratePayroll(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll generated", result)
}

// CreateSalariedRecord implements PayrollHandler.
func (h *payrollHandlerImpl) CreateSalariedRecord(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreateSalariedRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode salaried record request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.payrollService.CreateSalariedRecord(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll record saved", result)
}

// Get implements PayrollHandler.
func (h *payrollHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.GetRecord(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements PayrollHandler.
func (h *payrollHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := parsePayrollFilter(r)

	records, total, err := h.payrollService.ListRecords(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, records, listMeta(filter.Page, filter.Limit, total))
}

// Approve implements PayrollHandler.
func (h *payrollHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	if err := h.payrollService.ApproveRecord(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll record approved", nil)
}

// Reject implements PayrollHandler.
func (h *payrollHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	if err := h.payrollService.RejectRecord(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll record rejected", nil)
}

// MarkPaid implements PayrollHandler.
func (h *payrollHandlerImpl) MarkPaid(w http.ResponseWriter, r *http.Request) {
	if err := h.payrollService.MarkPaid(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll record marked as paid", nil)
}

func parsePayrollFilter(r *http.Request) payroll.PayrollFilter {
	var filter payroll.PayrollFilter
	q := r.URL.Query()

	if employeeID := q.Get("employee_id"); employeeID != "" {
		filter.EmployeeID = &employeeID
	}
	if raw := q.Get("month"); raw != "" {
		if month, err := strconv.Atoi(raw); err == nil {
			filter.PeriodMonth = &month
		}
	}
	if raw := q.Get("year"); raw != "" {
		if year, err := strconv.Atoi(raw); err == nil {
			filter.PeriodYear = &year
		}
	}
	if raw := q.Get("status"); raw != "" {
		status := payroll.ApprovalStatus(raw)
		filter.Status = &status
	}
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))

	return filter
}
