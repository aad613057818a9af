package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/arhamhameed97/Timesheet-Management-sub000/internal/domain/payroll"
	"github.com/arhamhameed97/Timesheet-Management-sub000/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ratePeriodRepository struct {
	db *database.DB
}

func NewRatePeriodRepository(db *database.DB) payroll.RatePeriodRepository {
	return &ratePeriodRepository{db: db}
}

const ratePeriodColumns = `id, employee_id, company_id, start_date, end_date, hourly_rate, created_at, updated_at`

func scanRatePeriod(row pgx.Row) (payroll.RatePeriod, error) {
	var p payroll.RatePeriod
	err := row.Scan(
		&p.ID, &p.EmployeeID, &p.CompanyID, &p.StartDate, &p.EndDate, &p.HourlyRate,
		&p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

// Create implements payroll.RatePeriodRepository.
func (r *ratePeriodRepository) Create(ctx context.Context, period payroll.RatePeriod) (payroll.RatePeriod, error) {
	q := GetQuerier(ctx, r.db)

	period.ID = uuid.New().String()

	query := `
		INSERT INTO rate_periods (id, employee_id, company_id, start_date, end_date, hourly_rate)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		period.ID, period.EmployeeID, period.CompanyID, period.StartDate, period.EndDate, period.HourlyRate,
	).Scan(&period.CreatedAt, &period.UpdatedAt)

	if err != nil {
		return payroll.RatePeriod{}, fmt.Errorf("failed to create rate period: %w", err)
	}

	return period, nil
}

// GetByID implements payroll.RatePeriodRepository.
func (r *ratePeriodRepository) GetByID(ctx context.Context, id string, companyID string) (payroll.RatePeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + ratePeriodColumns + `
		FROM rate_periods
		WHERE id = $1
		  AND company_id = $2
	`

	p, err := scanRatePeriod(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.RatePeriod{}, payroll.ErrRatePeriodNotFound
		}
		return payroll.RatePeriod{}, fmt.Errorf("failed to get rate period: %w", err)
	}

	return p, nil
}

// ListCovering implements payroll.RatePeriodRepository. Ordering by
// created_at descending makes the first row the resolution winner.
func (r *ratePeriodRepository) ListCovering(ctx context.Context, employeeID string, date time.Time, companyID string) ([]payroll.RatePeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + ratePeriodColumns + `
		FROM rate_periods
		WHERE employee_id = $1
		  AND company_id = $2
		  AND start_date <= $3
		  AND end_date >= $3
		ORDER BY created_at DESC
	`

	rows, err := q.Query(ctx, query, employeeID, companyID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list covering rate periods: %w", err)
	}
	defer rows.Close()

	var periods []payroll.RatePeriod
	for rows.Next() {
		p, err := scanRatePeriod(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rate period: %w", err)
		}
		periods = append(periods, p)
	}

	return periods, rows.Err()
}

// ListByEmployee implements payroll.RatePeriodRepository.
func (r *ratePeriodRepository) ListByEmployee(ctx context.Context, employeeID string, companyID string) ([]payroll.RatePeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + ratePeriodColumns + `
		FROM rate_periods
		WHERE employee_id = $1
		  AND company_id = $2
		ORDER BY start_date DESC
	`

	rows, err := q.Query(ctx, query, employeeID, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rate periods: %w", err)
	}
	defer rows.Close()

	var periods []payroll.RatePeriod
	for rows.Next() {
		p, err := scanRatePeriod(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rate period: %w", err)
		}
		periods = append(periods, p)
	}

	return periods, rows.Err()
}

// Update implements payroll.RatePeriodRepository.
func (r *ratePeriodRepository) Update(ctx context.Context, period payroll.RatePeriod) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE rate_periods
		SET start_date = $1, end_date = $2, hourly_rate = $3, updated_at = NOW()
		WHERE id = $4
		  AND company_id = $5
	`

	tag, err := q.Exec(ctx, query,
		period.StartDate, period.EndDate, period.HourlyRate,
		period.ID, period.CompanyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update rate period: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrRatePeriodNotFound
	}

	return nil
}

// Delete implements payroll.RatePeriodRepository.
func (r *ratePeriodRepository) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM rate_periods WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete rate period: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrRatePeriodNotFound
	}

	return nil
}
