package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for attendance records. Every
// lookup takes companyID to keep tenants isolated.
type AttendanceRepository interface {
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	// GetByEmployeeAndDate returns nil when no record exists for that day.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (*Attendance, error)

	Update(ctx context.Context, attendance Attendance) error

	// ListRange returns records with from <= date <= to, ordered by date.
	ListRange(ctx context.Context, employeeID string, from, to time.Time, companyID string) ([]Attendance, error)

	// ListOpenBefore returns records dated strictly before the given date
	// that have a check-in and no check-out, ordered by date.
	ListOpenBefore(ctx context.Context, employeeID string, date time.Time, companyID string) ([]Attendance, error)

	// List retrieves records with filters and pagination
	List(ctx context.Context, filter ListFilter, companyID string) ([]Attendance, int64, error)
}
