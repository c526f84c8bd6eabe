package leave

import "errors"

var (
	ErrRequestNotFound     = errors.New("leave request not found")
	ErrAlreadyProcessed    = errors.New("leave request already approved or rejected")
	ErrQuotaExceeded       = errors.New("leave quota exceeded")
	ErrInvalidDateRange    = errors.New("start date must not be after end date")
	ErrUnknownLeaveType    = errors.New("unknown leave type")
	ErrUpstreamUnavailable = errors.New("leave request store unavailable")
)
