package payroll

import (
	"context"
	"time"
)

type RatePeriodRepository interface {
	Create(ctx context.Context, period RatePeriod) (RatePeriod, error)
	GetByID(ctx context.Context, id string, companyID string) (RatePeriod, error)

	// ListCovering returns the employee's periods whose [start, end] range
	// contains the date, newest created first.
	ListCovering(ctx context.Context, employeeID string, date time.Time, companyID string) ([]RatePeriod, error)

	ListByEmployee(ctx context.Context, employeeID string, companyID string) ([]RatePeriod, error)
	Update(ctx context.Context, period RatePeriod) error
	Delete(ctx context.Context, id string, companyID string) error
}

type OvertimeConfigRepository interface {
	// GetByEmployee returns ErrOvertimeConfigNotFound when none exists;
	// callers fall back to DefaultOvertimeConfig.
	GetByEmployee(ctx context.Context, employeeID string, companyID string) (OvertimeConfig, error)

	Upsert(ctx context.Context, config OvertimeConfig) (OvertimeConfig, error)
}

type PayrollRepository interface {
	// Upsert creates or replaces the record keyed by (employee, month, year).
	Upsert(ctx context.Context, record PayrollRecord) (PayrollRecord, error)

	GetByID(ctx context.Context, id string, companyID string) (PayrollRecord, error)
	GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int, companyID string) (PayrollRecord, error)
	List(ctx context.Context, filter PayrollFilter, companyID string) ([]PayrollRecord, int64, error)
	UpdateStatus(ctx context.Context, id string, companyID string, status ApprovalStatus, approvedBy *string, approvedAt *time.Time) error
}
