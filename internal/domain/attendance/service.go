package attendance

import (
	"context"
)

type AttendanceService interface {
	// CheckIn opens today's attendance record for the employee. Fails with
	// ErrAlreadyCheckedIn when a record with a check-in already exists.
	CheckIn(ctx context.Context, employeeID string) (AttendanceResponse, error)

	// CheckOut closes today's record and computes total hours. Fails with
	// ErrNotCheckedIn or ErrAlreadyCheckedOut on state violations and with
	// ErrInvalidTimeRange when the clock went backwards.
	CheckOut(ctx context.Context, employeeID string) (AttendanceResponse, error)

	// GetMyAttendance returns the employee's records for a month plus the
	// month rollup.
	GetMyAttendance(ctx context.Context, employeeID string, year, month int) (MyAttendanceResponse, error)

	// Summary returns today's status plus month and trailing-week rollups.
	// When the store is unreachable the zeroed response is returned together
	// with ErrUpstreamUnavailable.
	Summary(ctx context.Context, employeeID string) (SummaryResponse, error)

	// Admin CRUD
	CreateAttendance(ctx context.Context, req CreateAttendanceRequest) (AttendanceResponse, error)
	GetAttendance(ctx context.Context, id string) (AttendanceResponse, error)
	UpdateAttendance(ctx context.Context, req UpdateAttendanceRequest) (AttendanceResponse, error)
	DeleteAttendance(ctx context.Context, id string) error
	ListAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)
}

type MyAttendanceResponse struct {
	Month       string               `json:"month"`
	Rollup      RollupResponse       `json:"rollup"`
	Attendances []AttendanceResponse `json:"attendances"`
}
