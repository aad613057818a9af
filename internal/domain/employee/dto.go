package employee

import (
	"time"

	"github.com/arhamhameed97/Timesheet-Management-sub000/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

var paymentTypes = []string{
	string(PaymentTypeHourly),
	string(PaymentTypeSalary),
}

var employmentStatuses = []string{
	string(EmploymentStatusActive),
	string(EmploymentStatusResigned),
	string(EmploymentStatusTerminated),
}

type CreateEmployeeRequest struct {
	EmployeeCode  string           `json:"employee_code"`
	FullName      string           `json:"full_name"`
	Email         string           `json:"email"`
	PaymentType   string           `json:"payment_type"`
	HourlyRate    *decimal.Decimal `json:"hourly_rate,omitempty"`
	MonthlySalary *decimal.Decimal `json:"monthly_salary,omitempty"`
	HireDate      string           `json:"hire_date"` // YYYY-MM-DD
	// Password, when set, provisions a login account for the employee.
	Password *string `json:"password,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{Field: "employee_code", Message: "is required"})
	}
	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "is required"})
	}
	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "must be a valid email address"})
	}
	if !validator.IsInSlice(r.PaymentType, paymentTypes) {
		errs = append(errs, validator.ValidationError{Field: "payment_type", Message: "must be HOURLY or SALARY"})
	}
	if _, ok := validator.IsValidDate(r.HireDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "hire_date", Message: "must be YYYY-MM-DD"})
	}
	if r.HourlyRate != nil && !r.HourlyRate.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "hourly_rate", Message: "must be positive"})
	}
	if r.MonthlySalary != nil && r.MonthlySalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "monthly_salary", Message: "must be non-negative"})
	}
	if r.Password != nil && len(*r.Password) < 8 {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "must be at least 8 characters"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID               string
	FullName         *string          `json:"full_name,omitempty"`
	Email            *string          `json:"email,omitempty"`
	PaymentType      *string          `json:"payment_type,omitempty"`
	HourlyRate       *decimal.Decimal `json:"hourly_rate,omitempty"`
	MonthlySalary    *decimal.Decimal `json:"monthly_salary,omitempty"`
	EmploymentStatus *string          `json:"employment_status,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FullName != nil && validator.IsEmpty(*r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "must not be empty"})
	}
	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "must be a valid email address"})
	}
	if r.PaymentType != nil && !validator.IsInSlice(*r.PaymentType, paymentTypes) {
		errs = append(errs, validator.ValidationError{Field: "payment_type", Message: "must be HOURLY or SALARY"})
	}
	if r.HourlyRate != nil && !r.HourlyRate.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "hourly_rate", Message: "must be positive"})
	}
	if r.MonthlySalary != nil && r.MonthlySalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "monthly_salary", Message: "must be non-negative"})
	}
	if r.EmploymentStatus != nil && !validator.IsInSlice(*r.EmploymentStatus, employmentStatuses) {
		errs = append(errs, validator.ValidationError{Field: "employment_status", Message: "must be active, resigned or terminated"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID               string           `json:"id"`
	UserID           *string          `json:"user_id,omitempty"`
	EmployeeCode     string           `json:"employee_code"`
	FullName         string           `json:"full_name"`
	Email            string           `json:"email"`
	PaymentType      PaymentType      `json:"payment_type"`
	HourlyRate       *decimal.Decimal `json:"hourly_rate,omitempty"`
	MonthlySalary    *decimal.Decimal `json:"monthly_salary,omitempty"`
	HireDate         string           `json:"hire_date"`
	EmploymentStatus EmploymentStatus `json:"employment_status"`
	CreatedAt        time.Time        `json:"created_at"`
}
