package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/kantorhq/hrms-backend-go/internal/domain/leave"
	"github.com/kantorhq/hrms-backend-go/internal/pkg/database"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestColumns = `
	id, employee_id, leave_type, start_date, end_date, days_count,
	reason, status, approved_by, approved_at, reject_reason,
	submitted_at, created_at, updated_at
`

func scanLeaveRequest(row pgx.Row) (leave.Request, error) {
	var lr leave.Request
	err := row.Scan(
		&lr.ID, &lr.EmployeeID, &lr.Type, &lr.StartDate, &lr.EndDate, &lr.DaysCount,
		&lr.Reason, &lr.Status, &lr.ApprovedBy, &lr.ApprovedAt, &lr.RejectReason,
		&lr.SubmittedAt, &lr.CreatedAt, &lr.UpdatedAt,
	)
	return lr, err
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.Request) (leave.Request, error) {
	q := database.QuerierFrom(ctx, r.db)

	request.ID = uuid.NewString()

	query := `
		INSERT INTO leave_requests (
			id, employee_id, leave_type,
			start_date, end_date, days_count,
			reason, status, submitted_at,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW(), NOW()
		) RETURNING submitted_at, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		request.ID,
		request.EmployeeID,
		request.Type,
		request.StartDate,
		request.EndDate,
		request.DaysCount,
		request.Reason,
		request.Status,
	).Scan(&request.SubmittedAt, &request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		return leave.Request{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return request, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.Request, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests
		WHERE id = $1
	`

	request, err := scanLeaveRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Request{}, leave.ErrRequestNotFound
		}
		return leave.Request{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	return request, nil
}

// GetByIDForUpdate implements leave.LeaveRequestRepository. The row lock is
// held until the surrounding transaction commits or rolls back, so it only
// makes sense inside WithinTransaction.
func (r *leaveRequestRepositoryImpl) GetByIDForUpdate(ctx context.Context, id string) (leave.Request, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests
		WHERE id = $1
		FOR UPDATE
	`

	request, err := scanLeaveRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Request{}, leave.ErrRequestNotFound
		}
		return leave.Request{}, fmt.Errorf("failed to lock leave request: %w", err)
	}

	return request, nil
}

// GetByEmployeeAndYear implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByEmployeeAndYear(ctx context.Context, employeeID string, year int) ([]leave.Request, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests
		WHERE employee_id = $1
		  AND (EXTRACT(YEAR FROM start_date) = $2 OR EXTRACT(YEAR FROM end_date) = $2)
		ORDER BY start_date ASC
	`

	rows, err := q.Query(ctx, query, employeeID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to get leave requests by year: %w", err)
	}
	defer rows.Close()

	return collectLeaveRequests(rows)
}

// GetApprovedByEmployeeTypeYear implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetApprovedByEmployeeTypeYear(ctx context.Context, employeeID string, leaveType leave.Type, year int) ([]leave.Request, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests
		WHERE employee_id = $1
		  AND leave_type = $2
		  AND status = $3
		  AND (EXTRACT(YEAR FROM start_date) = $4 OR EXTRACT(YEAR FROM end_date) = $4)
		ORDER BY start_date ASC
	`

	rows, err := q.Query(ctx, query, employeeID, leaveType, leave.RequestStatusApproved, year)
	if err != nil {
		return nil, fmt.Errorf("failed to get approved leave requests: %w", err)
	}
	defer rows.Close()

	return collectLeaveRequests(rows)
}

// UpdateStatus implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) UpdateStatus(ctx context.Context, request leave.Request) error {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $2,
			approved_by = $3,
			approved_at = $4,
			reject_reason = $5,
			updated_at = NOW()
		WHERE id = $1
	`

	commandTag, err := q.Exec(ctx, query,
		request.ID,
		request.Status,
		request.ApprovedBy,
		request.ApprovedAt,
		request.RejectReason,
	)
	if err != nil {
		return fmt.Errorf("failed to update leave request status: %w", err)
	}
	if commandTag.RowsAffected() != 1 {
		return leave.ErrRequestNotFound
	}

	return nil
}

// List implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) List(ctx context.Context, filter leave.RequestFilter) ([]leave.Request, int64, error) {
	q := database.QuerierFrom(ctx, r.db)

	baseQuery := `
		FROM leave_requests lr
		LEFT JOIN employees e ON lr.employee_id = e.id
		WHERE 1=1
	`

	args := []interface{}{}
	argIdx := 1

	whereClauses := []string{}

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("lr.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}

	if filter.LeaveType != nil && *filter.LeaveType != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("lr.leave_type = $%d", argIdx))
		args = append(args, *filter.LeaveType)
		argIdx++
	}

	if filter.Status != nil && *filter.Status != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("lr.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.Year > 0 {
		whereClauses = append(whereClauses, fmt.Sprintf(
			"(EXTRACT(YEAR FROM lr.start_date) = $%d OR EXTRACT(YEAR FROM lr.end_date) = $%d)", argIdx, argIdx))
		args = append(args, filter.Year)
		argIdx++
	}

	if len(whereClauses) > 0 {
		baseQuery += " AND " + strings.Join(whereClauses, " AND ")
	}

	countQuery := "SELECT COUNT(*) " + baseQuery
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leave requests: %w", err)
	}

	selectQuery := `
		SELECT lr.id, lr.employee_id, lr.leave_type, lr.start_date, lr.end_date, lr.days_count,
			   lr.reason, lr.status, lr.approved_by, lr.approved_at, lr.reject_reason,
			   lr.submitted_at, lr.created_at, lr.updated_at,
			   e.full_name AS employee_name
	` + baseQuery + fmt.Sprintf(`
		ORDER BY lr.submitted_at DESC
		LIMIT $%d OFFSET $%d
	`, argIdx, argIdx+1)

	offset := (filter.Page - 1) * filter.Limit
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.Request
	for rows.Next() {
		var lr leave.Request
		err := rows.Scan(
			&lr.ID, &lr.EmployeeID, &lr.Type, &lr.StartDate, &lr.EndDate, &lr.DaysCount,
			&lr.Reason, &lr.Status, &lr.ApprovedBy, &lr.ApprovedAt, &lr.RejectReason,
			&lr.SubmittedAt, &lr.CreatedAt, &lr.UpdatedAt,
			&lr.EmployeeName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, lr)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read leave requests: %w", err)
	}

	return requests, total, nil
}

func collectLeaveRequests(rows pgx.Rows) ([]leave.Request, error) {
	var requests []leave.Request
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, lr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read leave requests: %w", err)
	}
	return requests, nil
}
