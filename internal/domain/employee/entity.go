package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentType string

const (
	PaymentTypeHourly PaymentType = "HOURLY"
	PaymentTypeSalary PaymentType = "SALARY"
)

type EmploymentStatus string

const (
	EmploymentStatusActive     EmploymentStatus = "active"
	EmploymentStatusResigned   EmploymentStatus = "resigned"
	EmploymentStatusTerminated EmploymentStatus = "terminated"
)

type Employee struct {
	ID               string
	UserID           *string
	CompanyID        string
	EmployeeCode     string
	FullName         string
	Email            string
	PaymentType      PaymentType
	HourlyRate       *decimal.Decimal // profile default, used when no rate period applies
	MonthlySalary    *decimal.Decimal
	HireDate         time.Time
	EmploymentStatus EmploymentStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        *time.Time

	// DTO / Join
	PositionName *string
}

// DefaultHourlyRate returns the profile rate when the employee is hourly and
// the rate is positive, otherwise nil. Zero is never a valid rate.
func (e *Employee) DefaultHourlyRate() *decimal.Decimal {
	if e.PaymentType != PaymentTypeHourly {
		return nil
	}
	if e.HourlyRate == nil || !e.HourlyRate.IsPositive() {
		return nil
	}
	return e.HourlyRate
}
