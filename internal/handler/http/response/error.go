package response

import (
	"errors"
	"net/http"

	"github.com/kantorhq/hrms-backend-go/internal/domain/attendance"
	"github.com/kantorhq/hrms-backend-go/internal/domain/leave"
	"github.com/kantorhq/hrms-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in today")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		Conflict(w, "No check-in recorded today")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out today")
	case errors.Is(err, attendance.ErrInvalidTimeRange):
		BadRequest(w, "Check-out must not precede check-in", nil)
	case errors.Is(err, attendance.ErrDuplicateDate):
		Conflict(w, "Attendance record for this date already exists")
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// Leave domain errors
	case errors.Is(err, leave.ErrRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrQuotaExceeded):
		// The wrapped message carries the used/ceiling detail.
		Conflict(w, err.Error())
	case errors.Is(err, leave.ErrInvalidDateRange):
		BadRequest(w, "End date must not precede start date", nil)
	case errors.Is(err, leave.ErrUnknownLeaveType):
		BadRequest(w, "Unknown leave type", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
