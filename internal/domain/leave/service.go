package leave

import (
	"context"
)

type LeaveService interface {
	// CreateRequest submits a new PENDING request for the employee.
	CreateRequest(ctx context.Context, req CreateRequestRequest) (RequestResponse, error)

	// Approve performs the quota-gated PENDING -> APPROVED transition inside
	// one transaction. Returns ErrQuotaExceeded when the guard denies; the
	// request then stays PENDING.
	Approve(ctx context.Context, requestID, approverID string) (RequestResponse, error)

	// Reject performs PENDING -> REJECTED. Never quota-gated.
	Reject(ctx context.Context, req RejectRequestRequest) (RequestResponse, error)

	GetRequest(ctx context.Context, id string) (RequestResponse, error)
	ListMyRequests(ctx context.Context, employeeID string, filter RequestFilter) (ListRequestResponse, error)
	ListRequests(ctx context.Context, filter RequestFilter) (ListRequestResponse, error)

	// Balance returns per-type used/available days for the year. The
	// employee-facing view counts approved and pending requests.
	Balance(ctx context.Context, employeeID string, year int, policy CountingPolicy) (BalanceResponse, error)

	// Calendar returns the month's day-by-day projection of live requests.
	Calendar(ctx context.Context, employeeID string, year, month int) (CalendarResponse, error)
}
