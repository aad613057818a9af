package attendance

import (
	"context"
	"time"
)

type AttendanceService interface {
	// CheckIn appends an IN event to today's log, creating the day record on
	// the first check-in. Stale open days are swept first.
	CheckIn(ctx context.Context, req CheckInRequest) (AttendanceResponse, error)

	// CheckOut appends an OUT event to today's open log.
	CheckOut(ctx context.Context, req CheckOutRequest) (AttendanceResponse, error)

	// GetMyAttendance lists the calling employee's records with reduced totals.
	GetMyAttendance(ctx context.Context, filter ListFilter) ([]AttendanceResponse, int64, error)

	// List lists company records for managers and admins.
	List(ctx context.Context, filter ListFilter) ([]AttendanceResponse, int64, error)

	// SweepAutoCheckout closes every open shift of the employee dated before
	// today by appending a synthetic OUT at end of day UTC. Idempotent.
	SweepAutoCheckout(ctx context.Context, employeeID, companyID string, today time.Time) (int, error)

	// WeeklyTimesheet reduces each day of the ISO week containing date and
	// splits every day into regular and overtime hours.
	WeeklyTimesheet(ctx context.Context, employeeID string, date time.Time) (WeeklyTimesheetResponse, error)
}
