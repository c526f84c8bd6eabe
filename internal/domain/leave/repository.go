package leave

import (
	"context"
)

// LeaveRequestRepository - interface for leave_requests table
type LeaveRequestRepository interface {
	Create(ctx context.Context, request Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)

	// GetByIDForUpdate locks the row for the duration of the surrounding
	// transaction. The approval guard re-reads state through this so the
	// quota check and the status flip form one atomic unit.
	GetByIDForUpdate(ctx context.Context, id string) (Request, error)

	// GetByEmployeeAndYear returns every request for the employee whose
	// start or end date falls in the year.
	GetByEmployeeAndYear(ctx context.Context, employeeID string, year int) ([]Request, error)

	// GetApprovedByEmployeeTypeYear returns APPROVED requests for the
	// employee and leave type touching the year.
	GetApprovedByEmployeeTypeYear(ctx context.Context, employeeID string, leaveType Type, year int) ([]Request, error)

	// UpdateStatus flips the lifecycle status and records the decision.
	UpdateStatus(ctx context.Context, request Request) error

	// List retrieves requests with filters and pagination (admin view).
	List(ctx context.Context, filter RequestFilter) ([]Request, int64, error)
}
