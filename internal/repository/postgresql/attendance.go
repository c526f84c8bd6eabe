package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/kantorhq/hrms-backend-go/internal/domain/attendance"
	"github.com/kantorhq/hrms-backend-go/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := database.QuerierFrom(ctx, r.db)

	att.ID = uuid.NewString()

	query := `
		INSERT INTO attendances (
			id, employee_id, date, check_in, check_out,
			status, total_hours, note,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW()
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		att.ID,
		att.EmployeeID,
		att.Date,
		att.CheckIn,
		att.CheckOut,
		att.Status,
		att.TotalHours,
		att.Note,
	).Scan(&att.CreatedAt, &att.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return attendance.Attendance{}, attendance.ErrDuplicateDate
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return att, nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT id, employee_id, date, check_in, check_out,
			   status, total_hours, note, created_at, updated_at
		FROM attendances
		WHERE id = $1
	`

	var att attendance.Attendance
	err := q.QueryRow(ctx, query, id).Scan(
		&att.ID, &att.EmployeeID, &att.Date, &att.CheckIn, &att.CheckOut,
		&att.Status, &att.TotalHours, &att.Note, &att.CreatedAt, &att.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	return att, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT id, employee_id, date, check_in, check_out,
			   status, total_hours, note, created_at, updated_at
		FROM attendances
		WHERE employee_id = $1
		  AND date = $2
		LIMIT 1
	`

	var att attendance.Attendance
	err := q.QueryRow(ctx, query, employeeID, date).Scan(
		&att.ID, &att.EmployeeID, &att.Date, &att.CheckIn, &att.CheckOut,
		&att.Status, &att.TotalHours, &att.Note, &att.CreatedAt, &att.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}

	return &att, nil
}

// GetByEmployeeAndRange implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Attendance, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT id, employee_id, date, check_in, check_out,
			   status, total_hours, note, created_at, updated_at
		FROM attendances
		WHERE employee_id = $1
		  AND date >= $2
		  AND date < $3
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendances by range: %w", err)
	}
	defer rows.Close()

	var attendances []attendance.Attendance
	for rows.Next() {
		var att attendance.Attendance
		err := rows.Scan(
			&att.ID, &att.EmployeeID, &att.Date, &att.CheckIn, &att.CheckOut,
			&att.Status, &att.TotalHours, &att.Note, &att.CreatedAt, &att.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendances = append(attendances, att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read attendances: %w", err)
	}

	return attendances, nil
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Update(ctx context.Context, att attendance.Attendance) error {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		UPDATE attendances
		SET check_in = $2,
			check_out = $3,
			status = $4,
			total_hours = $5,
			note = $6,
			updated_at = NOW()
		WHERE id = $1
	`

	commandTag, err := q.Exec(ctx, query,
		att.ID,
		att.CheckIn,
		att.CheckOut,
		att.Status,
		att.TotalHours,
		att.Note,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if commandTag.RowsAffected() != 1 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// Delete implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		DELETE FROM attendances
		WHERE id = $1
	`

	commandTag, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	if commandTag.RowsAffected() != 1 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	q := database.QuerierFrom(ctx, r.db)

	baseQuery := `
		FROM attendances a
		LEFT JOIN employees e ON a.employee_id = e.id
		WHERE 1=1
	`

	args := []interface{}{}
	argIdx := 1

	whereClauses := []string{}

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("a.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}

	if filter.Status != nil && *filter.Status != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("a.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.Year > 0 {
		whereClauses = append(whereClauses, fmt.Sprintf("EXTRACT(YEAR FROM a.date) = $%d", argIdx))
		args = append(args, filter.Year)
		argIdx++
	}

	if filter.Month > 0 {
		whereClauses = append(whereClauses, fmt.Sprintf("EXTRACT(MONTH FROM a.date) = $%d", argIdx))
		args = append(args, filter.Month)
		argIdx++
	}

	if len(whereClauses) > 0 {
		baseQuery += " AND " + strings.Join(whereClauses, " AND ")
	}

	countQuery := "SELECT COUNT(*) " + baseQuery
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	selectQuery := `
		SELECT a.id, a.employee_id, a.date, a.check_in, a.check_out,
			   a.status, a.total_hours, a.note, a.created_at, a.updated_at,
			   e.full_name AS employee_name
	` + baseQuery + fmt.Sprintf(`
		ORDER BY a.date DESC
		LIMIT $%d OFFSET $%d
	`, argIdx, argIdx+1)

	offset := (filter.Page - 1) * filter.Limit
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	var attendances []attendance.Attendance
	for rows.Next() {
		var att attendance.Attendance
		err := rows.Scan(
			&att.ID, &att.EmployeeID, &att.Date, &att.CheckIn, &att.CheckOut,
			&att.Status, &att.TotalHours, &att.Note, &att.CreatedAt, &att.UpdatedAt,
			&att.EmployeeName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendances = append(attendances, att)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read attendances: %w", err)
	}

	return attendances, total, nil
}
