package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/arhamhameed97/Timesheet-Management-sub000/internal/domain/attendance"
	"github.com/arhamhameed97/Timesheet-Management-sub000/internal/domain/employee"
	"github.com/arhamhameed97/Timesheet-Management-sub000/internal/domain/payroll"
	"github.com/arhamhameed97/Timesheet-Management-sub000/internal/domain/timesheet"
	"github.com/arhamhameed97/Timesheet-Management-sub000/internal/domain/user"
	"github.com/arhamhameed97/Timesheet-Management-sub000/internal/pkg/database"
	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
)

type AttendanceServiceImpl struct {
	db             *database.DB
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	overtimeRepo   payroll.OvertimeConfigRepository
}

func NewAttendanceService(
	db *database.DB,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	overtimeRepo payroll.OvertimeConfigRepository,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		db:             db,
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		overtimeRepo:   overtimeRepo,
	}
}

// getClaimsFromContext extracts company_id and employee_id from the JWT
func getClaimsFromContext(ctx context.Context) (companyID, employeeID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", fmt.Errorf("company_id claim is missing or invalid")
	}

	employeeID, ok = claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", "", fmt.Errorf("employee_id claim is missing or invalid")
	}

	return companyID, employeeID, nil
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	companyID, employeeID, err := getClaimsFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	nowUTC := time.Now().UTC()

	// Close out any dangling shifts from earlier days before opening a new one.
	if _, err := s.SweepAutoCheckout(ctx, employeeID, companyID, nowUTC); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to sweep stale shifts: %w", err)
	}

	today := timesheet.StartOfDayUTC(nowUTC)
	record, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, today, companyID)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to load today's attendance: %w", err)
	}

	if record == nil {
		created := attendance.Attendance{
			EmployeeID: employeeID,
			CompanyID:  companyID,
			Date:       today,
			Status:     attendance.StatusPresent,
			Events:     timesheet.EventLog{{Type: timesheet.EventIn, Time: nowUTC}},
			Notes:      req.Notes,
		}
		created.SyncMirrors()

		saved, err := s.attendanceRepo.Create(ctx, created)
		if err != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("failed to create attendance: %w", err)
		}
		return s.toResponse(saved, nowUTC), nil
	}

	if record.Events.Open() {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
	}

	record.Events = append(record.Events, timesheet.Event{Type: timesheet.EventIn, Time: nowUTC})
	record.SyncMirrors()
	if req.Notes != nil {
		record.Notes = req.Notes
	}

	if err := s.attendanceRepo.Update(ctx, *record); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	return s.toResponse(*record, nowUTC), nil
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	companyID, employeeID, err := getClaimsFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	nowUTC := time.Now().UTC()
	today := timesheet.StartOfDayUTC(nowUTC)

	record, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, today, companyID)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to load today's attendance: %w", err)
	}
	if record == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
	}
	if !record.Events.Open() {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	record.Events = append(record.Events, timesheet.Event{Type: timesheet.EventOut, Time: nowUTC})
	record.SyncMirrors()
	if req.Notes != nil {
		record.Notes = req.Notes
	}

	if err := s.attendanceRepo.Update(ctx, *record); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	return s.toResponse(*record, nowUTC), nil
}

// SweepAutoCheckout implements attendance.AttendanceService. It appends a
// synthetic OUT at end of day UTC to every open record dated before today.
// Re-running is a no-op because swept records no longer match the open
// (check-out is null) filter.
func (s *AttendanceServiceImpl) SweepAutoCheckout(ctx context.Context, employeeID, companyID string, today time.Time) (int, error) {
	if employeeID == "" {
		return 0, attendance.ErrEmployeeIDRequired
	}
	if companyID == "" {
		return 0, user.ErrCompanyIDRequired
	}

	stale, err := s.attendanceRepo.ListOpenBefore(ctx, employeeID, timesheet.StartOfDayUTC(today), companyID)
	if err != nil {
		return 0, fmt.Errorf("failed to list open shifts: %w", err)
	}

	remediated := 0
	for _, record := range stale {
		closeAt := timesheet.EndOfDayUTC(record.Date)
		// Legacy rows carry only the primary check-in with an empty log.
		// Seed an IN from it so the synthetic OUT closes a real span
		// instead of stranding an orphan OUT that reduces to zero hours.
		if !record.Events.Open() && record.CheckIn != nil {
			record.Events = append(record.Events, timesheet.Event{Type: timesheet.EventIn, Time: *record.CheckIn})
		}
		record.Events = append(record.Events, timesheet.Event{Type: timesheet.EventOut, Time: closeAt})
		record.CheckOut = &closeAt
		record.AutoCheckedOut = true
		if record.FirstCheckIn == nil {
			record.FirstCheckIn = record.Events.FirstIn()
		}

		if err := s.attendanceRepo.Update(ctx, record); err != nil {
			return remediated, fmt.Errorf("failed to close stale shift on %s: %w",
				record.Date.Format("2006-01-02"), err)
		}
		remediated++
	}

	return remediated, nil
}

// GetMyAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, filter attendance.ListFilter) ([]attendance.AttendanceResponse, int64, error) {
	if err := filter.Validate(); err != nil {
		return nil, 0, err
	}

	companyID, employeeID, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, 0, err
	}

	filter.EmployeeID = &employeeID
	records, total, err := s.attendanceRepo.List(ctx, filter, companyID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance: %w", err)
	}

	return s.toResponses(records), total, nil
}

// List implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.AttendanceResponse, int64, error) {
	if err := filter.Validate(); err != nil {
		return nil, 0, err
	}

	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, 0, err
	}

	records, total, err := s.attendanceRepo.List(ctx, filter, companyID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance: %w", err)
	}

	return s.toResponses(records), total, nil
}

// WeeklyTimesheet implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) WeeklyTimesheet(ctx context.Context, employeeID string, date time.Time) (attendance.WeeklyTimesheetResponse, error) {
	if employeeID == "" {
		return attendance.WeeklyTimesheetResponse{}, attendance.ErrEmployeeIDRequired
	}

	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return attendance.WeeklyTimesheetResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}
	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return attendance.WeeklyTimesheetResponse{}, user.ErrCompanyIDRequired
	}

	// Without the view-all permission a caller may only read their own week.
	callerEmployeeID, _ := claims["employee_id"].(string)
	roleStr, _ := claims["role"].(string)
	if employeeID != callerEmployeeID && !user.HasPermission(user.Role(roleStr), user.PermissionTimesheetViewAll) {
		return attendance.WeeklyTimesheetResponse{}, user.ErrInsufficientPermissions
	}

	if _, err := s.employeeRepo.GetByID(ctx, employeeID, companyID); err != nil {
		return attendance.WeeklyTimesheetResponse{}, err
	}

	weekStart := timesheet.WeekStart(date)
	weekEnd := timesheet.WeekEnd(date)

	records, err := s.attendanceRepo.ListRange(ctx, employeeID, weekStart, weekEnd, companyID)
	if err != nil {
		return attendance.WeeklyTimesheetResponse{}, fmt.Errorf("failed to list week: %w", err)
	}

	threshold := timesheet.DefaultWeeklyThresholdHours
	config, err := s.overtimeRepo.GetByEmployee(ctx, employeeID, companyID)
	if err != nil && !errors.Is(err, payroll.ErrOvertimeConfigNotFound) {
		return attendance.WeeklyTimesheetResponse{}, fmt.Errorf("failed to load overtime config: %w", err)
	}
	if err == nil {
		threshold = config.WeeklyThresholdHours
	}

	nowUTC := time.Now().UTC()
	resp := attendance.WeeklyTimesheetResponse{
		EmployeeID:         employeeID,
		WeekStart:          weekStart.Format("2006-01-02"),
		WeekEnd:            weekEnd.Format("2006-01-02"),
		ThresholdHours:     threshold,
		TotalWorkedHours:   decimal.Zero,
		TotalRegularHours:  decimal.Zero,
		TotalOvertimeHours: decimal.Zero,
	}

	running := decimal.Zero
	for _, record := range records {
		totals := timesheet.ReduceDay(record.Events, record.CheckIn, record.CheckOut,
			timesheet.CutoffFor(record.Date, nowUTC))
		workedHours := timesheet.HoursFromSeconds(totals.WorkedSeconds)

		split := timesheet.SplitOvertime(workedHours, running, threshold)
		running = running.Add(workedHours)

		resp.Days = append(resp.Days, attendance.TimesheetDay{
			Date:          record.Date.Format("2006-01-02"),
			WorkedHours:   workedHours,
			BreakHours:    timesheet.HoursFromSeconds(totals.BreakSeconds),
			RegularHours:  split.RegularHours,
			OvertimeHours: split.OvertimeHours,
			CurrentlyOpen: totals.CurrentlyOpen,
		})
		resp.TotalWorkedHours = resp.TotalWorkedHours.Add(workedHours)
		resp.TotalRegularHours = resp.TotalRegularHours.Add(split.RegularHours)
		resp.TotalOvertimeHours = resp.TotalOvertimeHours.Add(split.OvertimeHours)
	}

	return resp, nil
}

func (s *AttendanceServiceImpl) toResponses(records []attendance.Attendance) []attendance.AttendanceResponse {
	nowUTC := time.Now().UTC()
	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, s.toResponse(record, nowUTC))
	}
	return responses
}

func (s *AttendanceServiceImpl) toResponse(record attendance.Attendance, now time.Time) attendance.AttendanceResponse {
	totals := timesheet.ReduceDay(record.Events, record.CheckIn, record.CheckOut,
		timesheet.CutoffFor(record.Date, now))

	anomalyCount := totals.Anomalies.OutOfOrder + totals.Anomalies.OrphanOuts +
		totals.Anomalies.UnknownTypes + totals.Anomalies.NegativeSpans

	return attendance.AttendanceResponse{
		ID:             record.ID,
		EmployeeID:     record.EmployeeID,
		EmployeeName:   record.EmployeeName,
		Date:           record.Date.Format("2006-01-02"),
		CheckIn:        record.CheckIn,
		CheckOut:       record.CheckOut,
		FirstCheckIn:   record.FirstCheckIn,
		Status:         record.Status,
		Events:         record.Events,
		Notes:          record.Notes,
		AutoCheckedOut: record.AutoCheckedOut,
		WorkedSeconds:  totals.WorkedSeconds,
		BreakSeconds:   totals.BreakSeconds,
		CurrentlyOpen:  totals.CurrentlyOpen,
		AnomalyCount:   anomalyCount,
	}
}
