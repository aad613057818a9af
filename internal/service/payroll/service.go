package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/arhamhameed97/Timesheet-Management-sub000/internal/domain/attendance"
	"github.com/arhamhameed97/Timesheet-Management-sub000/internal/domain/employee"
	"github.com/arhamhameed97/Timesheet-Management-sub000/internal/domain/payroll"
	"github.com/arhamhameed97/Timesheet-Management-sub000/internal/domain/timesheet"
	"github.com/arhamhameed97/Timesheet-Management-sub000/internal/pkg/database"
	"github.com/arhamhameed97/Timesheet-Management-sub000/internal/pkg/validator"
	"github.com/arhamhameed97/Timesheet-Management-sub000/internal/repository/postgresql"
	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type PayrollServiceImpl struct {
	db             *database.DB
	payrollRepo    payroll.PayrollRepository
	ratePeriodRepo payroll.RatePeriodRepository
	overtimeRepo   payroll.OvertimeConfigRepository
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	attendanceSvc  attendance.AttendanceService
}

func NewPayrollService(
	db *database.DB,
	payrollRepo payroll.PayrollRepository,
	ratePeriodRepo payroll.RatePeriodRepository,
	overtimeRepo payroll.OvertimeConfigRepository,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	attendanceSvc attendance.AttendanceService,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		db:             db,
		payrollRepo:    payrollRepo,
		ratePeriodRepo: ratePeriodRepo,
		overtimeRepo:   overtimeRepo,
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		attendanceSvc:  attendanceSvc,
	}
}

// getClaimsFromContext extracts company_id and user_id from the JWT
func getClaimsFromContext(ctx context.Context) (companyID, userID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", fmt.Errorf("company_id claim is missing or invalid")
	}

	userID, _ = claims["user_id"].(string)

	return companyID, userID, nil
}

// ========== RATE PERIODS ==========

func (s *PayrollServiceImpl) CreateRatePeriod(ctx context.Context, req payroll.CreateRatePeriodRequest) (payroll.RatePeriodResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.RatePeriodResponse{}, err
	}

	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.RatePeriodResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, companyID); err != nil {
		return payroll.RatePeriodResponse{}, err
	}

	start, _ := validator.IsValidDate(req.StartDate)
	end, _ := validator.IsValidDate(req.EndDate)

	created, err := s.ratePeriodRepo.Create(ctx, payroll.RatePeriod{
		EmployeeID: req.EmployeeID,
		CompanyID:  companyID,
		StartDate:  start,
		EndDate:    end,
		HourlyRate: req.HourlyRate,
	})
	if err != nil {
		return payroll.RatePeriodResponse{}, fmt.Errorf("failed to create rate period: %w", err)
	}

	return toRatePeriodResponse(created), nil
}

func (s *PayrollServiceImpl) UpdateRatePeriod(ctx context.Context, req payroll.UpdateRatePeriodRequest) (payroll.RatePeriodResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.RatePeriodResponse{}, err
	}

	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.RatePeriodResponse{}, err
	}

	current, err := s.ratePeriodRepo.GetByID(ctx, req.ID, companyID)
	if err != nil {
		return payroll.RatePeriodResponse{}, err
	}

	if req.StartDate != nil {
		start, _ := validator.IsValidDate(*req.StartDate)
		current.StartDate = start
	}
	if req.EndDate != nil {
		end, _ := validator.IsValidDate(*req.EndDate)
		current.EndDate = end
	}
	if req.HourlyRate != nil {
		current.HourlyRate = *req.HourlyRate
	}
	if current.EndDate.Before(current.StartDate) {
		return payroll.RatePeriodResponse{}, validator.ValidationErrors{
			{Field: "end_date", Message: "must not be before start_date"},
		}
	}

	if err := s.ratePeriodRepo.Update(ctx, current); err != nil {
		return payroll.RatePeriodResponse{}, fmt.Errorf("failed to update rate period: %w", err)
	}

	return toRatePeriodResponse(current), nil
}

func (s *PayrollServiceImpl) DeleteRatePeriod(ctx context.Context, id string) error {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return err
	}
	return s.ratePeriodRepo.Delete(ctx, id, companyID)
}

func (s *PayrollServiceImpl) ListRatePeriods(ctx context.Context, employeeID string) ([]payroll.RatePeriodResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	periods, err := s.ratePeriodRepo.ListByEmployee(ctx, employeeID, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rate periods: %w", err)
	}

	responses := make([]payroll.RatePeriodResponse, 0, len(periods))
	for _, p := range periods {
		responses = append(responses, toRatePeriodResponse(p))
	}
	return responses, nil
}

// ========== RATE RESOLUTION ==========

// ResolveRate implements payroll.PayrollService. First match wins: covering
// rate period (newest created on overlap), then the month's HOURLY payroll
// record, then the employee profile default. NoRate is a valid outcome, not
// an error; zero is never returned as a rate.
func (s *PayrollServiceImpl) ResolveRate(ctx context.Context, employeeID string, date time.Time) (payroll.ResolvedRate, error) {
	if employeeID == "" {
		return payroll.NoRate, attendance.ErrEmployeeIDRequired
	}

	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.NoRate, err
	}

	periods, err := s.ratePeriodRepo.ListCovering(ctx, employeeID, date, companyID)
	if err != nil {
		return payroll.NoRate, fmt.Errorf("failed to look up rate periods: %w", err)
	}
	if len(periods) > 0 {
		// ListCovering orders newest created first
		return payroll.ResolvedRate{Amount: periods[0].HourlyRate, Source: payroll.RateSourcePeriod}, nil
	}

	record, err := s.payrollRepo.GetByEmployeePeriod(ctx, employeeID, int(date.UTC().Month()), date.UTC().Year(), companyID)
	if err != nil && !errors.Is(err, payroll.ErrPayrollRecordNotFound) {
		return payroll.NoRate, fmt.Errorf("failed to look up payroll record: %w", err)
	}
	if err == nil && record.PaymentType == payroll.PaymentTypeHourly && record.HourlyRate.IsPositive() {
		return payroll.ResolvedRate{Amount: record.HourlyRate, Source: payroll.RateSourcePayroll}, nil
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID, companyID)
	if err != nil {
		return payroll.NoRate, fmt.Errorf("failed to load employee: %w", err)
	}
	if rate := emp.DefaultHourlyRate(); rate != nil {
		return payroll.ResolvedRate{Amount: *rate, Source: payroll.RateSourceProfile}, nil
	}

	return payroll.NoRate, nil
}

// ========== OVERTIME CONFIG ==========

func (s *PayrollServiceImpl) GetOvertimeConfig(ctx context.Context, employeeID string) (payroll.OvertimeConfigResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.OvertimeConfigResponse{}, err
	}

	config, err := s.overtimeConfigOrDefault(ctx, employeeID, companyID)
	if err != nil {
		return payroll.OvertimeConfigResponse{}, err
	}

	return payroll.OvertimeConfigResponse{
		EmployeeID:           employeeID,
		WeeklyThresholdHours: config.WeeklyThresholdHours,
		Multiplier:           config.Multiplier,
	}, nil
}

func (s *PayrollServiceImpl) UpdateOvertimeConfig(ctx context.Context, req payroll.UpdateOvertimeConfigRequest) (payroll.OvertimeConfigResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.OvertimeConfigResponse{}, err
	}

	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.OvertimeConfigResponse{}, err
	}

	config, err := s.overtimeConfigOrDefault(ctx, req.EmployeeID, companyID)
	if err != nil {
		return payroll.OvertimeConfigResponse{}, err
	}

	if req.WeeklyThresholdHours != nil {
		config.WeeklyThresholdHours = *req.WeeklyThresholdHours
	}
	if req.Multiplier != nil {
		config.Multiplier = *req.Multiplier
	}

	updated, err := s.overtimeRepo.Upsert(ctx, config)
	if err != nil {
		return payroll.OvertimeConfigResponse{}, fmt.Errorf("failed to save overtime config: %w", err)
	}

	return payroll.OvertimeConfigResponse{
		EmployeeID:           updated.EmployeeID,
		WeeklyThresholdHours: updated.WeeklyThresholdHours,
		Multiplier:           updated.Multiplier,
	}, nil
}

func (s *PayrollServiceImpl) overtimeConfigOrDefault(ctx context.Context, employeeID, companyID string) (payroll.OvertimeConfig, error) {
	config, err := s.overtimeRepo.GetByEmployee(ctx, employeeID, companyID)
	if err != nil {
		if errors.Is(err, payroll.ErrOvertimeConfigNotFound) {
			return payroll.DefaultOvertimeConfig(employeeID, companyID), nil
		}
		return payroll.OvertimeConfig{}, fmt.Errorf("failed to load overtime config: %w", err)
	}
	return config, nil
}

// ========== PAYROLL RECORDS ==========

// GeneratePayroll implements payroll.PayrollService. For each hourly
// employee the month's attendance is swept, reduced day by day, split into
// regular and overtime hours against the weekly threshold, priced with the
// per-day resolved rate and accumulated into one record. Salaried employees
// get base + bonuses − deductions; existing items survive a regeneration.
// Records already PAID are skipped.
func (s *PayrollServiceImpl) GeneratePayroll(ctx context.Context, req payroll.GeneratePayrollRequest) ([]payroll.PayrollRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	employees, err := s.targetEmployees(ctx, companyID, req.EmployeeIDs)
	if err != nil {
		return nil, err
	}

	var responses []payroll.PayrollRecordResponse
	for _, emp := range employees {
		existing, err := s.payrollRepo.GetByEmployeePeriod(ctx, emp.ID, req.PeriodMonth, req.PeriodYear, companyID)
		if err != nil && !errors.Is(err, payroll.ErrPayrollRecordNotFound) {
			return nil, fmt.Errorf("failed to check existing payroll record: %w", err)
		}
		hasExisting := err == nil
		if hasExisting && existing.Status == payroll.StatusPaid {
			continue // closed, never recomputed
		}

		var record payroll.PayrollRecord
		if emp.PaymentType == employee.PaymentTypeSalary {
			record = s.buildSalariedRecord(emp, req.PeriodMonth, req.PeriodYear, existing, hasExisting)
		} else {
			record, err = s.buildHourlyRecord(ctx, emp, companyID, req.PeriodMonth, req.PeriodYear)
			if err != nil {
				return nil, fmt.Errorf("failed to compute payroll for employee %s: %w", emp.ID, err)
			}
		}

		saved, err := s.payrollRepo.Upsert(ctx, record)
		if err != nil {
			return nil, fmt.Errorf("failed to save payroll record for employee %s: %w", emp.ID, err)
		}
		responses = append(responses, toRecordResponse(saved))
	}

	return responses, nil
}

func (s *PayrollServiceImpl) targetEmployees(ctx context.Context, companyID string, ids []string) ([]employee.Employee, error) {
	all, err := s.employeeRepo.GetActiveByCompanyID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get employees: %w", err)
	}
	if len(ids) == 0 {
		return all, nil
	}

	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var filtered []employee.Employee
	for _, emp := range all {
		if wanted[emp.ID] {
			filtered = append(filtered, emp)
		}
	}
	return filtered, nil
}

func (s *PayrollServiceImpl) buildSalariedRecord(emp employee.Employee, month, year int, existing payroll.PayrollRecord, hasExisting bool) payroll.PayrollRecord {
	base := decimal.Zero
	if emp.MonthlySalary != nil {
		base = *emp.MonthlySalary
	}

	var bonuses, deductions []timesheet.PayItem
	if hasExisting && existing.PaymentType == payroll.PaymentTypeSalary {
		bonuses = existing.Bonuses
		deductions = existing.Deductions
	}

	return payroll.PayrollRecord{
		EmployeeID:  emp.ID,
		CompanyID:   emp.CompanyID,
		PeriodMonth: month,
		PeriodYear:  year,
		PaymentType: payroll.PaymentTypeSalary,
		BaseSalary:  base,
		Bonuses:     bonuses,
		Deductions:  deductions,
		NetSalary:   timesheet.NetSalary(base, bonuses, deductions),
		Status:      payroll.StatusPending,
	}
}

func (s *PayrollServiceImpl) buildHourlyRecord(ctx context.Context, emp employee.Employee, companyID string, month, year int) (payroll.PayrollRecord, error) {
	nowUTC := time.Now().UTC()

	// Close any stale open shifts before reducing the month.
	if _, err := s.attendanceSvc.SweepAutoCheckout(ctx, emp.ID, companyID, nowUTC); err != nil {
		return payroll.PayrollRecord{}, err
	}

	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)

	// Overtime is weekly, so pull the full ISO weeks overlapping the month:
	// days worked in the tail of the previous month still consume threshold
	// capacity for the month's opening days.
	records, err := s.attendanceRepo.ListRange(ctx, emp.ID, timesheet.WeekStart(monthStart), timesheet.WeekEnd(monthEnd), companyID)
	if err != nil {
		return payroll.PayrollRecord{}, err
	}

	config, err := s.overtimeConfigOrDefault(ctx, emp.ID, companyID)
	if err != nil {
		return payroll.PayrollRecord{}, err
	}

	record := payroll.PayrollRecord{
		EmployeeID:    emp.ID,
		CompanyID:     companyID,
		PeriodMonth:   month,
		PeriodYear:    year,
		PaymentType:   payroll.PaymentTypeHourly,
		HoursWorked:   decimal.Zero,
		RegularHours:  decimal.Zero,
		OvertimeHours: decimal.Zero,
		HourlyRate:    decimal.Zero,
		Earnings:      decimal.Zero,
		NetSalary:     decimal.Zero,
		BaseSalary:    decimal.Zero,
		Status:        payroll.StatusPending,
	}

	var weekStart time.Time
	running := decimal.Zero
	for _, day := range records {
		ws := timesheet.WeekStart(day.Date)
		if !ws.Equal(weekStart) {
			weekStart = ws
			running = decimal.Zero
		}

		totals := timesheet.ReduceDay(day.Events, day.CheckIn, day.CheckOut,
			timesheet.CutoffFor(day.Date, nowUTC))
		workedHours := timesheet.HoursFromSeconds(totals.WorkedSeconds)

		split := timesheet.SplitOvertime(workedHours, running, config.WeeklyThresholdHours)
		running = running.Add(workedHours)

		// Week edges may reach into neighboring months; only the month's own
		// days are credited to this record.
		if day.Date.Before(monthStart) || day.Date.After(monthEnd) {
			continue
		}

		rate, err := s.ResolveRate(ctx, emp.ID, day.Date)
		if err != nil {
			return payroll.PayrollRecord{}, err
		}

		record.HoursWorked = record.HoursWorked.Add(workedHours)
		record.RegularHours = record.RegularHours.Add(split.RegularHours)
		record.OvertimeHours = record.OvertimeHours.Add(split.OvertimeHours)
		if rate.Found() {
			record.Earnings = record.Earnings.Add(
				timesheet.HourlyEarnings(split.RegularHours, split.OvertimeHours, rate.Amount, config.Multiplier))
			record.HourlyRate = rate.Amount
		}
	}
	record.NetSalary = record.Earnings

	return record, nil
}

func (s *PayrollServiceImpl) CreateSalariedRecord(ctx context.Context, req payroll.CreateSalariedRecordRequest) (payroll.PayrollRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, companyID); err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	var saved payroll.PayrollRecord
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		existing, err := s.payrollRepo.GetByEmployeePeriod(txCtx, req.EmployeeID, req.PeriodMonth, req.PeriodYear, companyID)
		if err != nil && !errors.Is(err, payroll.ErrPayrollRecordNotFound) {
			return fmt.Errorf("failed to check existing payroll record: %w", err)
		}
		if err == nil && existing.Status == payroll.StatusPaid {
			return payroll.ErrPayrollRecordClosed
		}

		record := payroll.PayrollRecord{
			EmployeeID:  req.EmployeeID,
			CompanyID:   companyID,
			PeriodMonth: req.PeriodMonth,
			PeriodYear:  req.PeriodYear,
			PaymentType: payroll.PaymentTypeSalary,
			BaseSalary:  req.BaseSalary,
			Bonuses:     req.Bonuses,
			Deductions:  req.Deductions,
			NetSalary:   timesheet.NetSalary(req.BaseSalary, req.Bonuses, req.Deductions),
			Status:      payroll.StatusPending,
		}

		saved, err = s.payrollRepo.Upsert(txCtx, record)
		if err != nil {
			return fmt.Errorf("failed to save payroll record: %w", err)
		}
		return nil
	})
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	return toRecordResponse(saved), nil
}

func (s *PayrollServiceImpl) GetRecord(ctx context.Context, id string) (payroll.PayrollRecordResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	record, err := s.payrollRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	return toRecordResponse(record), nil
}

func (s *PayrollServiceImpl) ListRecords(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.PayrollRecordResponse, int64, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, 0, err
	}

	records, total, err := s.payrollRepo.List(ctx, filter, companyID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payroll records: %w", err)
	}

	responses := make([]payroll.PayrollRecordResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, toRecordResponse(r))
	}
	return responses, total, nil
}

func (s *PayrollServiceImpl) ApproveRecord(ctx context.Context, id string) error {
	return s.transition(ctx, id, payroll.StatusApproved)
}

func (s *PayrollServiceImpl) RejectRecord(ctx context.Context, id string) error {
	return s.transition(ctx, id, payroll.StatusRejected)
}

func (s *PayrollServiceImpl) MarkPaid(ctx context.Context, id string) error {
	return s.transition(ctx, id, payroll.StatusPaid)
}

func (s *PayrollServiceImpl) transition(ctx context.Context, id string, target payroll.ApprovalStatus) error {
	companyID, userID, err := getClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	record, err := s.payrollRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return err
	}

	switch target {
	case payroll.StatusApproved, payroll.StatusRejected:
		if record.Status == payroll.StatusPaid {
			return payroll.ErrPayrollRecordClosed
		}
		if record.Status != payroll.StatusPending {
			return payroll.ErrPayrollAlreadyProcessed
		}
	case payroll.StatusPaid:
		if record.Status == payroll.StatusPaid {
			return payroll.ErrPayrollRecordClosed
		}
		if record.Status != payroll.StatusApproved {
			return payroll.ErrPayrollAlreadyProcessed
		}
	}

	now := time.Now().UTC()
	return s.payrollRepo.UpdateStatus(ctx, id, companyID, target, &userID, &now)
}

func toRatePeriodResponse(p payroll.RatePeriod) payroll.RatePeriodResponse {
	return payroll.RatePeriodResponse{
		ID:         p.ID,
		EmployeeID: p.EmployeeID,
		StartDate:  p.StartDate.Format("2006-01-02"),
		EndDate:    p.EndDate.Format("2006-01-02"),
		HourlyRate: p.HourlyRate,
		CreatedAt:  p.CreatedAt,
	}
}

func toRecordResponse(r payroll.PayrollRecord) payroll.PayrollRecordResponse {
	return payroll.PayrollRecordResponse{
		ID:            r.ID,
		EmployeeID:    r.EmployeeID,
		EmployeeName:  r.EmployeeName,
		PeriodMonth:   r.PeriodMonth,
		PeriodYear:    r.PeriodYear,
		PaymentType:   r.PaymentType,
		HoursWorked:   r.HoursWorked,
		RegularHours:  r.RegularHours,
		OvertimeHours: r.OvertimeHours,
		HourlyRate:    r.HourlyRate,
		Earnings:      r.Earnings,
		BaseSalary:    r.BaseSalary,
		Bonuses:       r.Bonuses,
		Deductions:    r.Deductions,
		NetSalary:     r.NetSalary,
		Status:        r.Status,
		ApprovedBy:    r.ApprovedBy,
		ApprovedAt:    r.ApprovedAt,
	}
}
