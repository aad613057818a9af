package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/arhamhameed97/Timesheet-Management-sub000/internal/domain/attendance"
	"github.com/arhamhameed97/Timesheet-Management-sub000/internal/domain/employee"
)

// AttendanceJobs closes stale open shifts overnight so no day before today
// is left with a dangling check-in. The sweep itself lives in the attendance
// service; this job just fans it out across active employees.
type AttendanceJobs struct {
	attendanceSvc attendance.AttendanceService
	employeeRepo  employee.EmployeeRepository
	companyIDs    func(ctx context.Context) ([]string, error)
}

func NewAttendanceJobs(
	attendanceSvc attendance.AttendanceService,
	employeeRepo employee.EmployeeRepository,
	companyIDs func(ctx context.Context) ([]string, error),
) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceSvc: attendanceSvc,
		employeeRepo:  employeeRepo,
		companyIDs:    companyIDs,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("auto_checkout_sweep", 1*time.Hour, j.SweepStaleOpenShifts)
}

func (j *AttendanceJobs) SweepStaleOpenShifts(ctx context.Context) error {
	// Only run in the first hour after UTC midnight
	if time.Now().UTC().Hour() != 0 {
		return nil
	}

	slog.Info("Cron: starting auto-checkout sweep")

	today := time.Now().UTC()
	companies, err := j.companyIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list companies: %w", err)
	}

	total := 0
	for _, companyID := range companies {
		employees, err := j.employeeRepo.GetActiveByCompanyID(ctx, companyID)
		if err != nil {
			slog.Error("Cron: failed to list employees", "company_id", companyID, "error", err)
			continue
		}

		for _, emp := range employees {
			count, err := j.attendanceSvc.SweepAutoCheckout(ctx, emp.ID, companyID, today)
			if err != nil {
				slog.Error("Cron: sweep failed", "employee_id", emp.ID, "error", err)
				continue
			}
			total += count
		}
	}

	if total > 0 {
		slog.Info("Cron: auto-checkout sweep closed stale shifts", "count", total)
	}
	return nil
}
