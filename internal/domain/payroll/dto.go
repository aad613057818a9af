package payroll

import (
	"time"

	"github.com/arhamhameed97/Timesheet-Management-sub000/internal/domain/timesheet"
	"github.com/arhamhameed97/Timesheet-Management-sub000/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== RATE PERIOD DTOs ==========

type CreateRatePeriodRequest struct {
	EmployeeID string          `json:"employee_id"`
	StartDate  string          `json:"start_date"` // YYYY-MM-DD
	EndDate    string          `json:"end_date"`   // YYYY-MM-DD
	HourlyRate decimal.Decimal `json:"hourly_rate"`
}

func (r *CreateRatePeriodRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be YYYY-MM-DD"})
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be YYYY-MM-DD"})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must not be before start_date"})
	}
	if !r.HourlyRate.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "hourly_rate", Message: "must be positive"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateRatePeriodRequest struct {
	ID         string
	StartDate  *string          `json:"start_date,omitempty"`
	EndDate    *string          `json:"end_date,omitempty"`
	HourlyRate *decimal.Decimal `json:"hourly_rate,omitempty"`
}

func (r *UpdateRatePeriodRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.StartDate != nil {
		if _, ok := validator.IsValidDate(*r.StartDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be YYYY-MM-DD"})
		}
	}
	if r.EndDate != nil {
		if _, ok := validator.IsValidDate(*r.EndDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be YYYY-MM-DD"})
		}
	}
	if r.HourlyRate != nil && !r.HourlyRate.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "hourly_rate", Message: "must be positive"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RatePeriodResponse struct {
	ID         string          `json:"id"`
	EmployeeID string          `json:"employee_id"`
	StartDate  string          `json:"start_date"`
	EndDate    string          `json:"end_date"`
	HourlyRate decimal.Decimal `json:"hourly_rate"`
	CreatedAt  time.Time       `json:"created_at"`
}

// ========== OVERTIME CONFIG DTOs ==========

type UpdateOvertimeConfigRequest struct {
	EmployeeID           string           `json:"employee_id"`
	WeeklyThresholdHours *decimal.Decimal `json:"weekly_threshold_hours,omitempty"`
	Multiplier           *decimal.Decimal `json:"multiplier,omitempty"`
}

func (r *UpdateOvertimeConfigRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if r.WeeklyThresholdHours != nil && r.WeeklyThresholdHours.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "weekly_threshold_hours", Message: "must be non-negative"})
	}
	if r.Multiplier != nil && r.Multiplier.LessThan(decimal.NewFromInt(1)) {
		errs = append(errs, validator.ValidationError{Field: "multiplier", Message: "must be at least 1"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type OvertimeConfigResponse struct {
	EmployeeID           string          `json:"employee_id"`
	WeeklyThresholdHours decimal.Decimal `json:"weekly_threshold_hours"`
	Multiplier           decimal.Decimal `json:"multiplier"`
}

// ========== PAYROLL RECORD DTOs ==========

type GeneratePayrollRequest struct {
	PeriodMonth int      `json:"period_month"`
	PeriodYear  int      `json:"period_year"`
	EmployeeIDs []string `json:"employee_ids,omitempty"` // empty = all active employees
}

func (r *GeneratePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.PeriodMonth < 1 || r.PeriodMonth > 12 {
		errs = append(errs, validator.ValidationError{Field: "period_month", Message: "must be between 1 and 12"})
	}
	if r.PeriodYear < 2000 || r.PeriodYear > 2200 {
		errs = append(errs, validator.ValidationError{Field: "period_year", Message: "is out of range"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateSalariedRecordRequest struct {
	EmployeeID  string              `json:"employee_id"`
	PeriodMonth int                 `json:"period_month"`
	PeriodYear  int                 `json:"period_year"`
	BaseSalary  decimal.Decimal     `json:"base_salary"`
	Bonuses     []timesheet.PayItem `json:"bonuses,omitempty"`
	Deductions  []timesheet.PayItem `json:"deductions,omitempty"`
}

func (r *CreateSalariedRecordRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if r.PeriodMonth < 1 || r.PeriodMonth > 12 {
		errs = append(errs, validator.ValidationError{Field: "period_month", Message: "must be between 1 and 12"})
	}
	if r.BaseSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "base_salary", Message: "must be non-negative"})
	}
	for _, b := range r.Bonuses {
		if b.Amount.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: "bonuses", Message: "amounts must be non-negative"})
			break
		}
	}
	for _, d := range r.Deductions {
		if d.Amount.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: "deductions", Message: "amounts must be non-negative"})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PayrollFilter struct {
	EmployeeID  *string
	PeriodMonth *int
	PeriodYear  *int
	Status      *ApprovalStatus
	Page        int
	Limit       int
}

type PayrollRecordResponse struct {
	ID            string              `json:"id"`
	EmployeeID    string              `json:"employee_id"`
	EmployeeName  *string             `json:"employee_name,omitempty"`
	PeriodMonth   int                 `json:"period_month"`
	PeriodYear    int                 `json:"period_year"`
	PaymentType   PaymentType         `json:"payment_type"`
	HoursWorked   decimal.Decimal     `json:"hours_worked"`
	RegularHours  decimal.Decimal     `json:"regular_hours"`
	OvertimeHours decimal.Decimal     `json:"overtime_hours"`
	HourlyRate    decimal.Decimal     `json:"hourly_rate"`
	Earnings      decimal.Decimal     `json:"earnings"`
	BaseSalary    decimal.Decimal     `json:"base_salary"`
	Bonuses       []timesheet.PayItem `json:"bonuses,omitempty"`
	Deductions    []timesheet.PayItem `json:"deductions,omitempty"`
	NetSalary     decimal.Decimal     `json:"net_salary"`
	Status        ApprovalStatus      `json:"status"`
	ApprovedBy    *string             `json:"approved_by,omitempty"`
	ApprovedAt    *time.Time          `json:"approved_at,omitempty"`
}

type RateResponse struct {
	Found  bool            `json:"found"`
	Amount decimal.Decimal `json:"amount"`
	Source RateSource      `json:"source"`
}
