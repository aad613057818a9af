package postgresql

import (
	"context"
	"fmt"

	"github.com/arhamhameed97/Timesheet-Management-sub000/internal/domain/payroll"
	"github.com/arhamhameed97/Timesheet-Management-sub000/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type overtimeConfigRepository struct {
	db *database.DB
}

func NewOvertimeConfigRepository(db *database.DB) payroll.OvertimeConfigRepository {
	return &overtimeConfigRepository{db: db}
}

// GetByEmployee implements payroll.OvertimeConfigRepository.
func (r *overtimeConfigRepository) GetByEmployee(ctx context.Context, employeeID string, companyID string) (payroll.OvertimeConfig, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, company_id, weekly_threshold_hours, multiplier, created_at, updated_at
		FROM overtime_configs
		WHERE employee_id = $1
		  AND company_id = $2
	`

	var config payroll.OvertimeConfig
	err := q.QueryRow(ctx, query, employeeID, companyID).Scan(
		&config.ID, &config.EmployeeID, &config.CompanyID,
		&config.WeeklyThresholdHours, &config.Multiplier,
		&config.CreatedAt, &config.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.OvertimeConfig{}, payroll.ErrOvertimeConfigNotFound
		}
		return payroll.OvertimeConfig{}, fmt.Errorf("failed to get overtime config: %w", err)
	}

	return config, nil
}

// Upsert implements payroll.OvertimeConfigRepository.
func (r *overtimeConfigRepository) Upsert(ctx context.Context, config payroll.OvertimeConfig) (payroll.OvertimeConfig, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO overtime_configs (employee_id, company_id, weekly_threshold_hours, multiplier)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (employee_id, company_id)
		DO UPDATE SET weekly_threshold_hours = EXCLUDED.weekly_threshold_hours,
					  multiplier = EXCLUDED.multiplier,
					  updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		config.EmployeeID, config.CompanyID, config.WeeklyThresholdHours, config.Multiplier,
	).Scan(&config.ID, &config.CreatedAt, &config.UpdatedAt)

	if err != nil {
		return payroll.OvertimeConfig{}, fmt.Errorf("failed to upsert overtime config: %w", err)
	}

	return config, nil
}
