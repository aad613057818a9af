package payroll

import (
	"context"
	"time"
)

type PayrollService interface {
	// Rate periods
	CreateRatePeriod(ctx context.Context, req CreateRatePeriodRequest) (RatePeriodResponse, error)
	UpdateRatePeriod(ctx context.Context, req UpdateRatePeriodRequest) (RatePeriodResponse, error)
	DeleteRatePeriod(ctx context.Context, id string) error
	ListRatePeriods(ctx context.Context, employeeID string) ([]RatePeriodResponse, error)

	// ResolveRate determines the hourly rate applicable for an employee on a
	// date. Precedence: covering rate period (most recently created wins) >
	// that month's HOURLY payroll record > employee profile default. Returns
	// NoRate when no source applies; that is not an error.
	ResolveRate(ctx context.Context, employeeID string, date time.Time) (ResolvedRate, error)

	// Overtime config
	GetOvertimeConfig(ctx context.Context, employeeID string) (OvertimeConfigResponse, error)
	UpdateOvertimeConfig(ctx context.Context, req UpdateOvertimeConfigRequest) (OvertimeConfigResponse, error)

	// Records
	GeneratePayroll(ctx context.Context, req GeneratePayrollRequest) ([]PayrollRecordResponse, error)
	CreateSalariedRecord(ctx context.Context, req CreateSalariedRecordRequest) (PayrollRecordResponse, error)
	GetRecord(ctx context.Context, id string) (PayrollRecordResponse, error)
	ListRecords(ctx context.Context, filter PayrollFilter) ([]PayrollRecordResponse, int64, error)
	ApproveRecord(ctx context.Context, id string) error
	RejectRecord(ctx context.Context, id string) error
	MarkPaid(ctx context.Context, id string) error
}
