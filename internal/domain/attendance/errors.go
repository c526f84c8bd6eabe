package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in/check-out state machine
	ErrAlreadyCheckedIn  = errors.New("you have already checked in today")
	ErrNotCheckedIn      = errors.New("you have not checked in yet")
	ErrAlreadyCheckedOut = errors.New("you have already checked out")
	ErrInvalidTimeRange  = errors.New("check-out time precedes check-in time")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrDuplicateDate      = errors.New("attendance record already exists for this date")

	// ErrUpstreamUnavailable marks a degraded result: the record store could
	// not be reached and the caller got zeroed aggregates instead of data.
	ErrUpstreamUnavailable = errors.New("attendance store unavailable")
)
