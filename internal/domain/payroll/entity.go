package payroll

import (
	"time"

	"github.com/arhamhameed97/Timesheet-Management-sub000/internal/domain/timesheet"
	"github.com/shopspring/decimal"
)

// RatePeriod is a date-bounded override of an employee's hourly rate.
// Both bounds are inclusive. Overlapping periods are allowed by storage;
// resolution picks the most recently created one.
type RatePeriod struct {
	ID         string
	EmployeeID string
	CompanyID  string
	StartDate  time.Time // UTC midnight
	EndDate    time.Time // UTC midnight, >= StartDate
	HourlyRate decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Covers reports whether the period contains the given date.
func (p RatePeriod) Covers(date time.Time) bool {
	d := timesheet.StartOfDayUTC(date)
	return !d.Before(timesheet.StartOfDayUTC(p.StartDate)) && !d.After(timesheet.StartOfDayUTC(p.EndDate))
}

// OvertimeConfig holds one employee's weekly overtime policy. Created lazily
// with defaults when absent.
type OvertimeConfig struct {
	ID                   string
	EmployeeID           string
	CompanyID            string
	WeeklyThresholdHours decimal.Decimal // default 40
	Multiplier           decimal.Decimal // default 1.5, >= 1
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// DefaultOvertimeConfig returns the lazily-applied policy defaults.
func DefaultOvertimeConfig(employeeID, companyID string) OvertimeConfig {
	return OvertimeConfig{
		EmployeeID:           employeeID,
		CompanyID:            companyID,
		WeeklyThresholdHours: timesheet.DefaultWeeklyThresholdHours,
		Multiplier:           timesheet.DefaultOvertimeMultiplier,
	}
}

// RateSource tells where a resolved rate came from.
type RateSource string

const (
	RateSourcePeriod  RateSource = "RATE_PERIOD"
	RateSourcePayroll RateSource = "PAYROLL_RECORD"
	RateSourceProfile RateSource = "EMPLOYEE_PROFILE"
	RateSourceNone    RateSource = "NONE"
)

// ResolvedRate is the outcome of rate resolution. Absence is an explicit
// state, never a zero amount: callers compute zero earnings for NoRate
// without treating it as an error.
type ResolvedRate struct {
	Amount decimal.Decimal
	Source RateSource
}

// NoRate is the explicit absence signal.
var NoRate = ResolvedRate{Source: RateSourceNone}

// Found reports whether a rate was resolved.
func (r ResolvedRate) Found() bool {
	return r.Source != RateSourceNone
}

type PaymentType string

const (
	PaymentTypeHourly PaymentType = "HOURLY"
	PaymentTypeSalary PaymentType = "SALARY"
)

type ApprovalStatus string

const (
	StatusPending  ApprovalStatus = "PENDING"
	StatusApproved ApprovalStatus = "APPROVED"
	StatusRejected ApprovalStatus = "REJECTED"
	StatusPaid     ApprovalStatus = "PAID"
)

// PayrollRecord is one employee's pay for one month. Unique per
// (employee, month, year). Once PAID the record is treated as closed.
type PayrollRecord struct {
	ID          string
	EmployeeID  string
	CompanyID   string
	PeriodMonth int // 1-12
	PeriodYear  int
	PaymentType PaymentType

	// Hourly
	HoursWorked   decimal.Decimal
	RegularHours  decimal.Decimal
	OvertimeHours decimal.Decimal
	HourlyRate    decimal.Decimal
	Earnings      decimal.Decimal

	// Salaried
	BaseSalary decimal.Decimal
	Bonuses    []timesheet.PayItem
	Deductions []timesheet.PayItem
	NetSalary  decimal.Decimal

	Status     ApprovalStatus
	ApprovedBy *string
	ApprovedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// DTO / Join
	EmployeeName *string
}
