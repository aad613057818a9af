package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/arhamhameed97/Timesheet-Management-sub000/internal/domain/payroll"
	"github.com/arhamhameed97/Timesheet-Management-sub000/internal/domain/timesheet"
	"github.com/arhamhameed97/Timesheet-Management-sub000/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

const payrollColumns = `id, employee_id, company_id, period_month, period_year, payment_type,
	   hours_worked, regular_hours, overtime_hours, hourly_rate, earnings,
	   base_salary, bonuses, deductions, net_salary,
	   status, approved_by, approved_at, created_at, updated_at`

func scanPayrollRecord(row pgx.Row) (payroll.PayrollRecord, error) {
	var r payroll.PayrollRecord
	var bonuses, deductions []byte
	err := row.Scan(
		&r.ID, &r.EmployeeID, &r.CompanyID, &r.PeriodMonth, &r.PeriodYear, &r.PaymentType,
		&r.HoursWorked, &r.RegularHours, &r.OvertimeHours, &r.HourlyRate, &r.Earnings,
		&r.BaseSalary, &bonuses, &deductions, &r.NetSalary,
		&r.Status, &r.ApprovedBy, &r.ApprovedAt, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return payroll.PayrollRecord{}, err
	}

	if err := decodePayItems(bonuses, &r.Bonuses); err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to decode bonuses for record %s: %w", r.ID, err)
	}
	if err := decodePayItems(deductions, &r.Deductions); err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to decode deductions for record %s: %w", r.ID, err)
	}

	return r, nil
}

func decodePayItems(data []byte, items *[]timesheet.PayItem) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, items)
}

func encodePayItems(items []timesheet.PayItem) ([]byte, error) {
	if items == nil {
		items = []timesheet.PayItem{}
	}
	return json.Marshal(items)
}

// Upsert implements payroll.PayrollRepository.
func (p *payrollRepository) Upsert(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, p.db)

	bonuses, err := encodePayItems(record.Bonuses)
	if err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to encode bonuses: %w", err)
	}
	deductions, err := encodePayItems(record.Deductions)
	if err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to encode deductions: %w", err)
	}

	query := `
		INSERT INTO payroll_records (
			employee_id, company_id, period_month, period_year, payment_type,
			hours_worked, regular_hours, overtime_hours, hourly_rate, earnings,
			base_salary, bonuses, deductions, net_salary, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15
		)
		ON CONFLICT (employee_id, period_month, period_year)
		DO UPDATE SET payment_type = EXCLUDED.payment_type,
					  hours_worked = EXCLUDED.hours_worked,
					  regular_hours = EXCLUDED.regular_hours,
					  overtime_hours = EXCLUDED.overtime_hours,
					  hourly_rate = EXCLUDED.hourly_rate,
					  earnings = EXCLUDED.earnings,
					  base_salary = EXCLUDED.base_salary,
					  bonuses = EXCLUDED.bonuses,
					  deductions = EXCLUDED.deductions,
					  net_salary = EXCLUDED.net_salary,
					  status = EXCLUDED.status,
					  updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		record.EmployeeID, record.CompanyID, record.PeriodMonth, record.PeriodYear, record.PaymentType,
		record.HoursWorked, record.RegularHours, record.OvertimeHours, record.HourlyRate, record.Earnings,
		record.BaseSalary, bonuses, deductions, record.NetSalary, record.Status,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to upsert payroll record: %w", err)
	}

	return record, nil
}

// GetByID implements payroll.PayrollRepository.
func (p *payrollRepository) GetByID(ctx context.Context, id string, companyID string) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT ` + payrollColumns + `
		FROM payroll_records
		WHERE id = $1
		  AND company_id = $2
	`

	record, err := scanPayrollRecord(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record: %w", err)
	}

	return record, nil
}

// GetByEmployeePeriod implements payroll.PayrollRepository.
func (p *payrollRepository) GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int, companyID string) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT ` + payrollColumns + `
		FROM payroll_records
		WHERE employee_id = $1
		  AND period_month = $2
		  AND period_year = $3
		  AND company_id = $4
	`

	record, err := scanPayrollRecord(q.QueryRow(ctx, query, employeeID, month, year, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record for period: %w", err)
	}

	return record, nil
}

// List implements payroll.PayrollRepository.
func (p *payrollRepository) List(ctx context.Context, filter payroll.PayrollFilter, companyID string) ([]payroll.PayrollRecord, int64, error) {
	q := GetQuerier(ctx, p.db)

	where := "WHERE p.company_id = $1"
	args := []interface{}{companyID}

	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		where += fmt.Sprintf(" AND p.employee_id = $%d", len(args))
	}
	if filter.PeriodMonth != nil {
		args = append(args, *filter.PeriodMonth)
		where += fmt.Sprintf(" AND p.period_month = $%d", len(args))
	}
	if filter.PeriodYear != nil {
		args = append(args, *filter.PeriodYear)
		where += fmt.Sprintf(" AND p.period_year = $%d", len(args))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		where += fmt.Sprintf(" AND p.status = $%d", len(args))
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM payroll_records p " + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payroll records: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	args = append(args, limit, (page-1)*limit)

	query := fmt.Sprintf(`
		SELECT p.id, p.employee_id, p.company_id, p.period_month, p.period_year, p.payment_type,
			   p.hours_worked, p.regular_hours, p.overtime_hours, p.hourly_rate, p.earnings,
			   p.base_salary, p.bonuses, p.deductions, p.net_salary,
			   p.status, p.approved_by, p.approved_at, p.created_at, p.updated_at,
			   e.full_name
		FROM payroll_records p
		JOIN employees e ON e.id = p.employee_id
		%s
		ORDER BY p.period_year DESC, p.period_month DESC, e.full_name ASC
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	var records []payroll.PayrollRecord
	for rows.Next() {
		var r payroll.PayrollRecord
		var bonuses, deductions []byte
		err := rows.Scan(
			&r.ID, &r.EmployeeID, &r.CompanyID, &r.PeriodMonth, &r.PeriodYear, &r.PaymentType,
			&r.HoursWorked, &r.RegularHours, &r.OvertimeHours, &r.HourlyRate, &r.Earnings,
			&r.BaseSalary, &bonuses, &deductions, &r.NetSalary,
			&r.Status, &r.ApprovedBy, &r.ApprovedAt, &r.CreatedAt, &r.UpdatedAt,
			&r.EmployeeName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		if err := decodePayItems(bonuses, &r.Bonuses); err != nil {
			return nil, 0, fmt.Errorf("failed to decode bonuses for record %s: %w", r.ID, err)
		}
		if err := decodePayItems(deductions, &r.Deductions); err != nil {
			return nil, 0, fmt.Errorf("failed to decode deductions for record %s: %w", r.ID, err)
		}
		records = append(records, r)
	}

	return records, total, rows.Err()
}

// UpdateStatus implements payroll.PayrollRepository.
func (p *payrollRepository) UpdateStatus(ctx context.Context, id string, companyID string, status payroll.ApprovalStatus, approvedBy *string, approvedAt *time.Time) error {
	q := GetQuerier(ctx, p.db)

	query := `
		UPDATE payroll_records
		SET status = $1, approved_by = $2, approved_at = $3, updated_at = NOW()
		WHERE id = $4
		  AND company_id = $5
	`

	tag, err := q.Exec(ctx, query, status, approvedBy, approvedAt, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to update payroll status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPayrollRecordNotFound
	}

	return nil
}
