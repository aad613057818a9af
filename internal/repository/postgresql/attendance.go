package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/arhamhameed97/Timesheet-Management-sub000/internal/domain/attendance"
	"github.com/arhamhameed97/Timesheet-Management-sub000/internal/domain/timesheet"
	"github.com/arhamhameed97/Timesheet-Management-sub000/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `id, employee_id, company_id, date, check_in, check_out, first_check_in,
	   status, events, notes, auto_checked_out, created_at, updated_at`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	var events []byte
	err := row.Scan(
		&att.ID, &att.EmployeeID, &att.CompanyID, &att.Date, &att.CheckIn, &att.CheckOut, &att.FirstCheckIn,
		&att.Status, &events, &att.Notes, &att.AutoCheckedOut, &att.CreatedAt, &att.UpdatedAt,
	)
	if err != nil {
		return attendance.Attendance{}, err
	}

	att.Events, err = timesheet.ParseEventLog(events)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to decode event log for attendance %s: %w", att.ID, err)
	}

	return att, nil
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	events, err := newAttendance.Events.Encode()
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to encode event log: %w", err)
	}

	newAttendance.ID = uuid.New().String()

	query := `
		INSERT INTO attendances (
			id, employee_id, company_id, date, check_in, check_out, first_check_in,
			status, events, notes, auto_checked_out
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		) RETURNING created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		newAttendance.ID,
		newAttendance.EmployeeID,
		newAttendance.CompanyID,
		newAttendance.Date,
		newAttendance.CheckIn,
		newAttendance.CheckOut,
		newAttendance.FirstCheckIn,
		newAttendance.Status,
		events,
		newAttendance.Notes,
		newAttendance.AutoCheckedOut,
	).Scan(&newAttendance.CreatedAt, &newAttendance.UpdatedAt)

	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return newAttendance, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE employee_id = $1
		  AND date = $2
		  AND company_id = $3
		LIMIT 1
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance by date: %w", err)
	}

	return &att, nil
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, a.db)

	events, err := att.Events.Encode()
	if err != nil {
		return fmt.Errorf("failed to encode event log: %w", err)
	}

	query := `
		UPDATE attendances
		SET check_in = $1, check_out = $2, first_check_in = $3, status = $4,
			events = $5, notes = $6, auto_checked_out = $7, updated_at = NOW()
		WHERE id = $8
		  AND company_id = $9
	`

	tag, err := q.Exec(ctx, query,
		att.CheckIn, att.CheckOut, att.FirstCheckIn, att.Status,
		events, att.Notes, att.AutoCheckedOut,
		att.ID, att.CompanyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// ListRange implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListRange(ctx context.Context, employeeID string, from, to time.Time, companyID string) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE employee_id = $1
		  AND company_id = $2
		  AND date >= $3
		  AND date <= $4
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, employeeID, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance range: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, att)
	}

	return records, rows.Err()
}

// ListOpenBefore implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListOpenBefore(ctx context.Context, employeeID string, date time.Time, companyID string) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE employee_id = $1
		  AND date < $2
		  AND company_id = $3
		  AND check_in IS NOT NULL
		  AND check_out IS NULL
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, employeeID, date, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list open attendance: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, att)
	}

	return records, rows.Err()
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.ListFilter, companyID string) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, a.db)

	where := "WHERE a.company_id = $1"
	args := []interface{}{companyID}

	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		where += fmt.Sprintf(" AND a.employee_id = $%d", len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		where += fmt.Sprintf(" AND a.date >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		where += fmt.Sprintf(" AND a.date <= $%d", len(args))
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM attendances a " + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance: %w", err)
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
		SELECT a.id, a.employee_id, a.company_id, a.date, a.check_in, a.check_out, a.first_check_in,
			   a.status, a.events, a.notes, a.auto_checked_out, a.created_at, a.updated_at,
			   e.full_name
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		%s
		ORDER BY a.date DESC, e.full_name ASC
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		var att attendance.Attendance
		var events []byte
		err := rows.Scan(
			&att.ID, &att.EmployeeID, &att.CompanyID, &att.Date, &att.CheckIn, &att.CheckOut, &att.FirstCheckIn,
			&att.Status, &events, &att.Notes, &att.AutoCheckedOut, &att.CreatedAt, &att.UpdatedAt,
			&att.EmployeeName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		att.Events, err = timesheet.ParseEventLog(events)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to decode event log for attendance %s: %w", att.ID, err)
		}
		records = append(records, att)
	}

	return records, total, rows.Err()
}
