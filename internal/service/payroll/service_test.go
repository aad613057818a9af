package payroll

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/arhamhameed97/Timesheet-Management-sub000/internal/domain/attendance"
	"github.com/arhamhameed97/Timesheet-Management-sub000/internal/domain/employee"
	"github.com/arhamhameed97/Timesheet-Management-sub000/internal/domain/payroll"
	"github.com/arhamhameed97/Timesheet-Management-sub000/internal/domain/timesheet"
	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testCompanyID  = "c9a1e2f0-0000-4000-8000-000000000001"
	testEmployeeID = "c9a1e2f0-0000-4000-8000-000000000002"
	testUserID     = "c9a1e2f0-0000-4000-8000-000000000003"
)

func adminContext(t *testing.T) context.Context {
	t.Helper()

	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	tok, _, err := ja.Encode(map[string]interface{}{
		"user_id":    testUserID,
		"company_id": testCompanyID,
		"role":       "COMPANY_ADMIN",
	})
	require.NoError(t, err)

	return jwtauth.NewContext(context.Background(), tok, nil)
}

// ========== in-memory fakes ==========

type fakeRatePeriodRepo struct {
	periods []payroll.RatePeriod
	nextID  int
}

func (f *fakeRatePeriodRepo) Create(_ context.Context, p payroll.RatePeriod) (payroll.RatePeriod, error) {
	f.nextID++
	p.ID = fmt.Sprintf("rp-%d", f.nextID)
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	f.periods = append(f.periods, p)
	return p, nil
}

func (f *fakeRatePeriodRepo) GetByID(_ context.Context, id, companyID string) (payroll.RatePeriod, error) {
	for _, p := range f.periods {
		if p.ID == id && p.CompanyID == companyID {
			return p, nil
		}
	}
	return payroll.RatePeriod{}, payroll.ErrRatePeriodNotFound
}

func (f *fakeRatePeriodRepo) ListCovering(_ context.Context, employeeID string, date time.Time, companyID string) ([]payroll.RatePeriod, error) {
	var out []payroll.RatePeriod
	for _, p := range f.periods {
		if p.EmployeeID == employeeID && p.CompanyID == companyID && p.Covers(date) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeRatePeriodRepo) ListByEmployee(_ context.Context, employeeID, companyID string) ([]payroll.RatePeriod, error) {
	var out []payroll.RatePeriod
	for _, p := range f.periods {
		if p.EmployeeID == employeeID && p.CompanyID == companyID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeRatePeriodRepo) Update(_ context.Context, p payroll.RatePeriod) error {
	for i := range f.periods {
		if f.periods[i].ID == p.ID {
			f.periods[i] = p
			return nil
		}
	}
	return payroll.ErrRatePeriodNotFound
}

func (f *fakeRatePeriodRepo) Delete(_ context.Context, id, companyID string) error {
	for i := range f.periods {
		if f.periods[i].ID == id && f.periods[i].CompanyID == companyID {
			f.periods = append(f.periods[:i], f.periods[i+1:]...)
			return nil
		}
	}
	return payroll.ErrRatePeriodNotFound
}

type fakeOvertimeRepo struct {
	configs map[string]payroll.OvertimeConfig
}

func newFakeOvertimeRepo() *fakeOvertimeRepo {
	return &fakeOvertimeRepo{configs: make(map[string]payroll.OvertimeConfig)}
}

func (f *fakeOvertimeRepo) GetByEmployee(_ context.Context, employeeID, companyID string) (payroll.OvertimeConfig, error) {
	c, ok := f.configs[employeeID]
	if !ok || c.CompanyID != companyID {
		return payroll.OvertimeConfig{}, payroll.ErrOvertimeConfigNotFound
	}
	return c, nil
}

func (f *fakeOvertimeRepo) Upsert(_ context.Context, c payroll.OvertimeConfig) (payroll.OvertimeConfig, error) {
	f.configs[c.EmployeeID] = c
	return c, nil
}

type fakePayrollRepo struct {
	records map[string]payroll.PayrollRecord
	nextID  int
}

func newFakePayrollRepo() *fakePayrollRepo {
	return &fakePayrollRepo{records: make(map[string]payroll.PayrollRecord)}
}

func (f *fakePayrollRepo) key(employeeID string, month, year int) string {
	return fmt.Sprintf("%s|%d|%d", employeeID, month, year)
}

func (f *fakePayrollRepo) Upsert(_ context.Context, r payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	k := f.key(r.EmployeeID, r.PeriodMonth, r.PeriodYear)
	if existing, ok := f.records[k]; ok {
		r.ID = existing.ID
	} else {
		f.nextID++
		r.ID = fmt.Sprintf("pr-%d", f.nextID)
	}
	f.records[k] = r
	return r, nil
}

func (f *fakePayrollRepo) GetByID(_ context.Context, id, companyID string) (payroll.PayrollRecord, error) {
	for _, r := range f.records {
		if r.ID == id && r.CompanyID == companyID {
			return r, nil
		}
	}
	return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
}

func (f *fakePayrollRepo) GetByEmployeePeriod(_ context.Context, employeeID string, month, year int, companyID string) (payroll.PayrollRecord, error) {
	r, ok := f.records[f.key(employeeID, month, year)]
	if !ok || r.CompanyID != companyID {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
	}
	return r, nil
}

func (f *fakePayrollRepo) List(_ context.Context, filter payroll.PayrollFilter, companyID string) ([]payroll.PayrollRecord, int64, error) {
	var out []payroll.PayrollRecord
	for _, r := range f.records {
		if r.CompanyID != companyID {
			continue
		}
		if filter.EmployeeID != nil && r.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Status != nil && r.Status != *filter.Status {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (f *fakePayrollRepo) UpdateStatus(_ context.Context, id, companyID string, status payroll.ApprovalStatus, approvedBy *string, approvedAt *time.Time) error {
	for k, r := range f.records {
		if r.ID == id && r.CompanyID == companyID {
			r.Status = status
			r.ApprovedBy = approvedBy
			r.ApprovedAt = approvedAt
			f.records[k] = r
			return nil
		}
	}
	return payroll.ErrPayrollRecordNotFound
}

type fakeAttendanceRepo struct {
	records []attendance.Attendance
}

func (f *fakeAttendanceRepo) Create(_ context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	f.records = append(f.records, a)
	return a, nil
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time, companyID string) (*attendance.Attendance, error) {
	for i := range f.records {
		if f.records[i].EmployeeID == employeeID && f.records[i].CompanyID == companyID && timesheet.SameUTCDate(f.records[i].Date, date) {
			return &f.records[i], nil
		}
	}
	return nil, nil
}

func (f *fakeAttendanceRepo) Update(_ context.Context, a attendance.Attendance) error {
	for i := range f.records {
		if f.records[i].EmployeeID == a.EmployeeID && timesheet.SameUTCDate(f.records[i].Date, a.Date) {
			f.records[i] = a
			return nil
		}
	}
	return attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) ListRange(_ context.Context, employeeID string, from, to time.Time, companyID string) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, a := range f.records {
		if a.EmployeeID != employeeID || a.CompanyID != companyID {
			continue
		}
		if a.Date.Before(from) || a.Date.After(to) {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (f *fakeAttendanceRepo) ListOpenBefore(_ context.Context, employeeID string, date time.Time, companyID string) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, a := range f.records {
		if a.EmployeeID == employeeID && a.CompanyID == companyID && a.CheckIn != nil && a.CheckOut == nil && a.Date.Before(date) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) List(_ context.Context, filter attendance.ListFilter, companyID string) ([]attendance.Attendance, int64, error) {
	return nil, 0, nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{employees: make(map[string]employee.Employee)}
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id, companyID string) (employee.Employee, error) {
	e, ok := f.employees[id]
	if !ok || e.CompanyID != companyID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeEmployeeRepo) GetActiveByCompanyID(_ context.Context, companyID string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range f.employees {
		if e.CompanyID == companyID && e.EmploymentStatus == employee.EmploymentStatusActive {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeEmployeeRepo) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	f.employees[e.ID] = e
	return e, nil
}

func (f *fakeEmployeeRepo) Update(_ context.Context, e employee.Employee) error {
	f.employees[e.ID] = e
	return nil
}

// noopSweeper stands in for the attendance service; generation tests seed
// already-closed days, so the sweep has nothing to do.
type noopSweeper struct {
	attendance.AttendanceService
}

func (noopSweeper) SweepAutoCheckout(context.Context, string, string, time.Time) (int, error) {
	return 0, nil
}

type fixture struct {
	svc         payroll.PayrollService
	rateRepo    *fakeRatePeriodRepo
	otRepo      *fakeOvertimeRepo
	payrollRepo *fakePayrollRepo
	attRepo     *fakeAttendanceRepo
	empRepo     *fakeEmployeeRepo
}

func newFixture() *fixture {
	f := &fixture{
		rateRepo:    &fakeRatePeriodRepo{},
		otRepo:      newFakeOvertimeRepo(),
		payrollRepo: newFakePayrollRepo(),
		attRepo:     &fakeAttendanceRepo{},
		empRepo:     newFakeEmployeeRepo(),
	}
	f.svc = NewPayrollService(nil, f.payrollRepo, f.rateRepo, f.otRepo, f.attRepo, f.empRepo, noopSweeper{})
	return f
}

func (f *fixture) addHourlyEmployee(id string, rate *decimal.Decimal) {
	f.empRepo.employees[id] = employee.Employee{
		ID:               id,
		CompanyID:        testCompanyID,
		FullName:         "Test Employee",
		PaymentType:      employee.PaymentTypeHourly,
		HourlyRate:       rate,
		EmploymentStatus: employee.EmploymentStatusActive,
	}
}

func (f *fixture) addSalariedEmployee(id string, salary decimal.Decimal) {
	f.empRepo.employees[id] = employee.Employee{
		ID:               id,
		CompanyID:        testCompanyID,
		FullName:         "Test Employee",
		PaymentType:      employee.PaymentTypeSalary,
		MonthlySalary:    &salary,
		EmploymentStatus: employee.EmploymentStatusActive,
	}
}

// seedClosedDay stores a finished day of work.
func (f *fixture) seedClosedDay(employeeID string, date time.Time, hours int) {
	day := timesheet.StartOfDayUTC(date)
	in := day.Add(9 * time.Hour)
	out := in.Add(time.Duration(hours) * time.Hour)
	a := attendance.Attendance{
		EmployeeID: employeeID,
		CompanyID:  testCompanyID,
		Date:       day,
		Status:     attendance.StatusPresent,
		Events: timesheet.EventLog{
			{Type: timesheet.EventIn, Time: in},
			{Type: timesheet.EventOut, Time: out},
		},
	}
	a.SyncMirrors()
	f.attRepo.records = append(f.attRepo.records, a)
}

func d(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

// ========== rate resolution ==========

func TestResolveRatePrecedence(t *testing.T) {
	ctx := adminContext(t)
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	t.Run("no source yields NoRate", func(t *testing.T) {
		f := newFixture()
		f.addHourlyEmployee(testEmployeeID, nil)

		rate, err := f.svc.ResolveRate(ctx, testEmployeeID, date)
		require.NoError(t, err)
		assert.False(t, rate.Found())
		assert.Equal(t, payroll.RateSourceNone, rate.Source)
	})

	t.Run("profile default is the last fallback", func(t *testing.T) {
		f := newFixture()
		profileRate := d(18)
		f.addHourlyEmployee(testEmployeeID, &profileRate)

		rate, err := f.svc.ResolveRate(ctx, testEmployeeID, date)
		require.NoError(t, err)
		assert.Equal(t, payroll.RateSourceProfile, rate.Source)
		assert.True(t, rate.Amount.Equal(d(18)))
	})

	t.Run("payroll record beats profile", func(t *testing.T) {
		f := newFixture()
		profileRate := d(18)
		f.addHourlyEmployee(testEmployeeID, &profileRate)
		_, err := f.payrollRepo.Upsert(ctx, payroll.PayrollRecord{
			EmployeeID:  testEmployeeID,
			CompanyID:   testCompanyID,
			PeriodMonth: 6,
			PeriodYear:  2025,
			PaymentType: payroll.PaymentTypeHourly,
			HourlyRate:  d(22),
		})
		require.NoError(t, err)

		rate, err := f.svc.ResolveRate(ctx, testEmployeeID, date)
		require.NoError(t, err)
		assert.Equal(t, payroll.RateSourcePayroll, rate.Source)
		assert.True(t, rate.Amount.Equal(d(22)))
	})

	t.Run("rate period beats everything", func(t *testing.T) {
		f := newFixture()
		profileRate := d(18)
		f.addHourlyEmployee(testEmployeeID, &profileRate)
		_, err := f.rateRepo.Create(ctx, payroll.RatePeriod{
			EmployeeID: testEmployeeID,
			CompanyID:  testCompanyID,
			StartDate:  time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			EndDate:    time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
			HourlyRate: d(25),
		})
		require.NoError(t, err)

		rate, err := f.svc.ResolveRate(ctx, testEmployeeID, date)
		require.NoError(t, err)
		assert.Equal(t, payroll.RateSourcePeriod, rate.Source)
		assert.True(t, rate.Amount.Equal(d(25)))
	})

	t.Run("newest created period wins on overlap", func(t *testing.T) {
		f := newFixture()
		f.addHourlyEmployee(testEmployeeID, nil)
		older := payroll.RatePeriod{
			EmployeeID: testEmployeeID,
			CompanyID:  testCompanyID,
			StartDate:  time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			EndDate:    time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
			HourlyRate: d(20),
			CreatedAt:  time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC),
		}
		newer := older
		newer.HourlyRate = d(30)
		newer.CreatedAt = time.Date(2025, 5, 20, 10, 0, 0, 0, time.UTC)
		_, err := f.rateRepo.Create(ctx, older)
		require.NoError(t, err)
		_, err = f.rateRepo.Create(ctx, newer)
		require.NoError(t, err)

		rate, err := f.svc.ResolveRate(ctx, testEmployeeID, date)
		require.NoError(t, err)
		assert.True(t, rate.Amount.Equal(d(30)))
	})

	t.Run("outside the period dates it does not apply", func(t *testing.T) {
		f := newFixture()
		f.addHourlyEmployee(testEmployeeID, nil)
		_, err := f.rateRepo.Create(ctx, payroll.RatePeriod{
			EmployeeID: testEmployeeID,
			CompanyID:  testCompanyID,
			StartDate:  time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
			EndDate:    time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC),
			HourlyRate: d(25),
		})
		require.NoError(t, err)

		rate, err := f.svc.ResolveRate(ctx, testEmployeeID, date)
		require.NoError(t, err)
		assert.False(t, rate.Found())
	})
}

// ========== payroll generation ==========

func TestGeneratePayrollHourly(t *testing.T) {
	ctx := adminContext(t)
	f := newFixture()
	profileRate := d(20)
	f.addHourlyEmployee(testEmployeeID, &profileRate)

	// Mon Jun 2 .. Fri Jun 6 2025, nine hours each: 45h total
	monday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		f.seedClosedDay(testEmployeeID, monday.AddDate(0, 0, i), 9)
	}

	records, err := f.svc.GeneratePayroll(ctx, payroll.GeneratePayrollRequest{
		PeriodMonth: 6,
		PeriodYear:  2025,
	})
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, payroll.PaymentTypeHourly, rec.PaymentType)
	assert.True(t, rec.HoursWorked.Equal(d(45)), "hours %s", rec.HoursWorked)
	assert.True(t, rec.RegularHours.Equal(d(40)), "regular %s", rec.RegularHours)
	assert.True(t, rec.OvertimeHours.Equal(d(5)), "overtime %s", rec.OvertimeHours)
	// 40 x 20 + 5 x 20 x 1.5 = 950
	assert.True(t, rec.Earnings.Equal(d(950)), "earnings %s", rec.Earnings)
	assert.True(t, rec.NetSalary.Equal(d(950)))
	assert.Equal(t, payroll.StatusPending, rec.Status)
}

func TestGeneratePayrollNoRateStillCountsHours(t *testing.T) {
	ctx := adminContext(t)
	f := newFixture()
	f.addHourlyEmployee(testEmployeeID, nil)
	f.seedClosedDay(testEmployeeID, time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC), 8)

	records, err := f.svc.GeneratePayroll(ctx, payroll.GeneratePayrollRequest{
		PeriodMonth: 6,
		PeriodYear:  2025,
	})
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.True(t, rec.HoursWorked.Equal(d(8)), "hours %s", rec.HoursWorked)
	assert.True(t, rec.Earnings.IsZero(), "earnings %s", rec.Earnings)
	assert.True(t, rec.HourlyRate.IsZero())
}

func TestGeneratePayrollWeekStraddlingMonths(t *testing.T) {
	ctx := adminContext(t)
	f := newFixture()
	profileRate := d(10)
	f.addHourlyEmployee(testEmployeeID, &profileRate)

	// ISO week Mon May 26 .. Sun Jun 1 2025. The May days exhaust the 40h
	// threshold, so the June 1 hours are pure overtime in June's record.
	mayMonday := time.Date(2025, 5, 26, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		f.seedClosedDay(testEmployeeID, mayMonday.AddDate(0, 0, i), 8)
	}
	f.seedClosedDay(testEmployeeID, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), 4)

	records, err := f.svc.GeneratePayroll(ctx, payroll.GeneratePayrollRequest{
		PeriodMonth: 6,
		PeriodYear:  2025,
	})
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.True(t, rec.HoursWorked.Equal(d(4)), "hours %s", rec.HoursWorked)
	assert.True(t, rec.RegularHours.IsZero(), "regular %s", rec.RegularHours)
	assert.True(t, rec.OvertimeHours.Equal(d(4)), "overtime %s", rec.OvertimeHours)
	// 4 x 10 x 1.5 = 60
	assert.True(t, rec.Earnings.Equal(d(60)), "earnings %s", rec.Earnings)
}

func TestGeneratePayrollSalariedKeepsItems(t *testing.T) {
	ctx := adminContext(t)
	f := newFixture()
	f.addSalariedEmployee(testEmployeeID, d(5000))

	_, err := f.payrollRepo.Upsert(ctx, payroll.PayrollRecord{
		EmployeeID:  testEmployeeID,
		CompanyID:   testCompanyID,
		PeriodMonth: 6,
		PeriodYear:  2025,
		PaymentType: payroll.PaymentTypeSalary,
		BaseSalary:  d(5000),
		Bonuses:     []timesheet.PayItem{{Name: "performance", Amount: d(500)}},
		Deductions:  []timesheet.PayItem{{Name: "tax", Amount: d(350)}},
		Status:      payroll.StatusPending,
	})
	require.NoError(t, err)

	records, err := f.svc.GeneratePayroll(ctx, payroll.GeneratePayrollRequest{
		PeriodMonth: 6,
		PeriodYear:  2025,
	})
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, payroll.PaymentTypeSalary, rec.PaymentType)
	assert.True(t, rec.BaseSalary.Equal(d(5000)))
	require.Len(t, rec.Bonuses, 1)
	require.Len(t, rec.Deductions, 1)
	// 5000 + 500 - 350 = 5150
	assert.True(t, rec.NetSalary.Equal(d(5150)), "net %s", rec.NetSalary)
}

func TestGeneratePayrollSkipsPaidRecords(t *testing.T) {
	ctx := adminContext(t)
	f := newFixture()
	profileRate := d(20)
	f.addHourlyEmployee(testEmployeeID, &profileRate)
	f.seedClosedDay(testEmployeeID, time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC), 8)

	paid, err := f.payrollRepo.Upsert(ctx, payroll.PayrollRecord{
		EmployeeID:  testEmployeeID,
		CompanyID:   testCompanyID,
		PeriodMonth: 6,
		PeriodYear:  2025,
		PaymentType: payroll.PaymentTypeHourly,
		Earnings:    d(123),
		Status:      payroll.StatusPaid,
	})
	require.NoError(t, err)

	records, err := f.svc.GeneratePayroll(ctx, payroll.GeneratePayrollRequest{
		PeriodMonth: 6,
		PeriodYear:  2025,
	})
	require.NoError(t, err)
	assert.Empty(t, records)

	unchanged, err := f.payrollRepo.GetByID(ctx, paid.ID, testCompanyID)
	require.NoError(t, err)
	assert.True(t, unchanged.Earnings.Equal(d(123)))
	assert.Equal(t, payroll.StatusPaid, unchanged.Status)
}

// ========== approval flow ==========

func TestApprovalFlow(t *testing.T) {
	ctx := adminContext(t)
	f := newFixture()

	rec, err := f.payrollRepo.Upsert(ctx, payroll.PayrollRecord{
		EmployeeID:  testEmployeeID,
		CompanyID:   testCompanyID,
		PeriodMonth: 6,
		PeriodYear:  2025,
		PaymentType: payroll.PaymentTypeHourly,
		Status:      payroll.StatusPending,
	})
	require.NoError(t, err)

	// paying a pending record is premature
	err = f.svc.MarkPaid(ctx, rec.ID)
	assert.ErrorIs(t, err, payroll.ErrPayrollAlreadyProcessed)

	require.NoError(t, f.svc.ApproveRecord(ctx, rec.ID))

	approved, err := f.payrollRepo.GetByID(ctx, rec.ID, testCompanyID)
	require.NoError(t, err)
	assert.Equal(t, payroll.StatusApproved, approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, testUserID, *approved.ApprovedBy)
	assert.NotNil(t, approved.ApprovedAt)

	// approving twice is rejected
	err = f.svc.ApproveRecord(ctx, rec.ID)
	assert.ErrorIs(t, err, payroll.ErrPayrollAlreadyProcessed)

	require.NoError(t, f.svc.MarkPaid(ctx, rec.ID))

	// a paid record is closed for good
	assert.ErrorIs(t, f.svc.ApproveRecord(ctx, rec.ID), payroll.ErrPayrollRecordClosed)
	assert.ErrorIs(t, f.svc.RejectRecord(ctx, rec.ID), payroll.ErrPayrollRecordClosed)
	assert.ErrorIs(t, f.svc.MarkPaid(ctx, rec.ID), payroll.ErrPayrollRecordClosed)
}

func TestRejectRecord(t *testing.T) {
	ctx := adminContext(t)
	f := newFixture()

	rec, err := f.payrollRepo.Upsert(ctx, payroll.PayrollRecord{
		EmployeeID:  testEmployeeID,
		CompanyID:   testCompanyID,
		PeriodMonth: 7,
		PeriodYear:  2025,
		PaymentType: payroll.PaymentTypeSalary,
		Status:      payroll.StatusPending,
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.RejectRecord(ctx, rec.ID))

	rejected, err := f.payrollRepo.GetByID(ctx, rec.ID, testCompanyID)
	require.NoError(t, err)
	assert.Equal(t, payroll.StatusRejected, rejected.Status)
}

// ========== overtime config ==========

func TestOvertimeConfigDefaultsAndUpdate(t *testing.T) {
	ctx := adminContext(t)
	f := newFixture()

	resp, err := f.svc.GetOvertimeConfig(ctx, testEmployeeID)
	require.NoError(t, err)
	assert.True(t, resp.WeeklyThresholdHours.Equal(timesheet.DefaultWeeklyThresholdHours))
	assert.True(t, resp.Multiplier.Equal(timesheet.DefaultOvertimeMultiplier))

	threshold := d(35)
	resp, err = f.svc.UpdateOvertimeConfig(ctx, payroll.UpdateOvertimeConfigRequest{
		EmployeeID:           testEmployeeID,
		WeeklyThresholdHours: &threshold,
	})
	require.NoError(t, err)
	assert.True(t, resp.WeeklyThresholdHours.Equal(d(35)))
	assert.True(t, resp.Multiplier.Equal(timesheet.DefaultOvertimeMultiplier), "multiplier keeps its default")
}

// ========== rate period CRUD ==========

func TestRatePeriodLifecycle(t *testing.T) {
	ctx := adminContext(t)
	f := newFixture()
	f.addHourlyEmployee(testEmployeeID, nil)

	created, err := f.svc.CreateRatePeriod(ctx, payroll.CreateRatePeriodRequest{
		EmployeeID: testEmployeeID,
		StartDate:  "2025-06-01",
		EndDate:    "2025-06-30",
		HourlyRate: d(25),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	newRate := d(28)
	updated, err := f.svc.UpdateRatePeriod(ctx, payroll.UpdateRatePeriodRequest{
		ID:         created.ID,
		HourlyRate: &newRate,
	})
	require.NoError(t, err)
	assert.True(t, updated.HourlyRate.Equal(d(28)))

	listed, err := f.svc.ListRatePeriods(ctx, testEmployeeID)
	require.NoError(t, err)
	require.Len(t, listed, 1)

	require.NoError(t, f.svc.DeleteRatePeriod(ctx, created.ID))

	listed, err = f.svc.ListRatePeriods(ctx, testEmployeeID)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestCreateRatePeriodValidation(t *testing.T) {
	ctx := adminContext(t)
	f := newFixture()
	f.addHourlyEmployee(testEmployeeID, nil)

	_, err := f.svc.CreateRatePeriod(ctx, payroll.CreateRatePeriodRequest{
		EmployeeID: testEmployeeID,
		StartDate:  "2025-06-30",
		EndDate:    "2025-06-01",
		HourlyRate: d(25),
	})
	assert.Error(t, err)

	_, err = f.svc.CreateRatePeriod(ctx, payroll.CreateRatePeriodRequest{
		EmployeeID: testEmployeeID,
		StartDate:  "2025-06-01",
		EndDate:    "2025-06-30",
		HourlyRate: decimal.Zero,
	})
	assert.Error(t, err)
}
