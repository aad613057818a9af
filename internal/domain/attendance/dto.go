package attendance

import (
	"time"

	"github.com/arhamhameed97/Timesheet-Management-sub000/internal/domain/timesheet"
	"github.com/arhamhameed97/Timesheet-Management-sub000/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CheckInRequest struct {
	Notes *string `json:"notes,omitempty"`
}

func (r *CheckInRequest) Validate() error {
	return nil
}

type CheckOutRequest struct {
	Notes *string `json:"notes,omitempty"`
}

func (r *CheckOutRequest) Validate() error {
	return nil
}

// AttendanceResponse is a day's record with its reduced totals attached.
type AttendanceResponse struct {
	ID             string             `json:"id"`
	EmployeeID     string             `json:"employee_id"`
	EmployeeName   *string            `json:"employee_name,omitempty"`
	Date           string             `json:"date"`
	CheckIn        *time.Time         `json:"check_in,omitempty"`
	CheckOut       *time.Time         `json:"check_out,omitempty"`
	FirstCheckIn   *time.Time         `json:"first_check_in,omitempty"`
	Status         Status             `json:"status"`
	Events         timesheet.EventLog `json:"events"`
	Notes          *string            `json:"notes,omitempty"`
	AutoCheckedOut bool               `json:"auto_checked_out"`
	WorkedSeconds  int64              `json:"worked_seconds"`
	BreakSeconds   int64              `json:"break_seconds"`
	CurrentlyOpen  bool               `json:"currently_open"`
	AnomalyCount   int                `json:"anomaly_count,omitempty"`
}

type ListFilter struct {
	EmployeeID *string
	From       *time.Time
	To         *time.Time
	Page       int
	Limit      int
}

func (f *ListFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		errs = append(errs, validator.ValidationError{Field: "to", Message: "must not be before 'from'"})
	}
	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{Field: "page", Message: "must be non-negative"})
	}
	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{Field: "limit", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// TimesheetDay is one day of a weekly timesheet with its overtime split.
type TimesheetDay struct {
	Date          string          `json:"date"`
	WorkedHours   decimal.Decimal `json:"worked_hours"`
	BreakHours    decimal.Decimal `json:"break_hours"`
	RegularHours  decimal.Decimal `json:"regular_hours"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`
	CurrentlyOpen bool            `json:"currently_open"`
}

type WeeklyTimesheetResponse struct {
	EmployeeID         string          `json:"employee_id"`
	WeekStart          string          `json:"week_start"`
	WeekEnd            string          `json:"week_end"`
	ThresholdHours     decimal.Decimal `json:"threshold_hours"`
	Days               []TimesheetDay  `json:"days"`
	TotalWorkedHours   decimal.Decimal `json:"total_worked_hours"`
	TotalRegularHours  decimal.Decimal `json:"total_regular_hours"`
	TotalOvertimeHours decimal.Decimal `json:"total_overtime_hours"`
}

type SweepResponse struct {
	RemediatedCount int `json:"remediated_count"`
}
