package leave

import (
	"time"
)

type Type string

const (
	TypeAnnual    Type = "ANNUAL"
	TypeSick      Type = "SICK"
	TypeMarriage  Type = "MARRIAGE"
	TypeMaternity Type = "MATERNITY"
	TypeUnpaid    Type = "UNPAID"
	TypeOther     Type = "OTHER"
)

// Types lists every leave type in display order.
var Types = []Type{TypeAnnual, TypeSick, TypeMarriage, TypeMaternity, TypeUnpaid, TypeOther}

func (t Type) Valid() bool {
	switch t {
	case TypeAnnual, TypeSick, TypeMarriage, TypeMaternity, TypeUnpaid, TypeOther:
		return true
	}
	return false
}

// Label returns the human-readable name used in guard messages and listings.
func (t Type) Label() string {
	switch t {
	case TypeAnnual:
		return "Annual Leave"
	case TypeSick:
		return "Sick Leave"
	case TypeMarriage:
		return "Marriage Leave"
	case TypeMaternity:
		return "Maternity Leave"
	case TypeUnpaid:
		return "Unpaid Leave"
	case TypeOther:
		return "Other Leave"
	}
	return string(t)
}

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "PENDING"
	RequestStatusApproved RequestStatus = "APPROVED"
	RequestStatusRejected RequestStatus = "REJECTED"
)

// Terminal reports whether the status admits no further transitions.
func (s RequestStatus) Terminal() bool {
	return s == RequestStatusApproved || s == RequestStatusRejected
}

// Request is a leave request. StartDate <= EndDate, both inclusive.
// DaysCount is the day count claimed at submission (fractional for
// half-days); quota arithmetic trusts it and never recomputes it from the
// date range. Once APPROVED or REJECTED the request is immutable.
type Request struct {
	ID           string
	EmployeeID   string
	Type         Type
	StartDate    time.Time // day granularity, UTC midnight
	EndDate      time.Time
	DaysCount    float64
	Reason       string
	Status       RequestStatus
	ApprovedBy   *string
	ApprovedAt   *time.Time
	RejectReason *string
	SubmittedAt  time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// DTO
	EmployeeName *string
}
