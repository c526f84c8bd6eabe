package attendance

import (
	"time"
)

type Status string

const (
	StatusPresent Status = "PRESENT"
	StatusLate    Status = "LATE"
	StatusAbsent  Status = "ABSENT"
	StatusLeave   Status = "LEAVE"
	StatusHoliday Status = "HOLIDAY"

	// StatusNotCheckedIn is a synthesized placeholder for today before any
	// check-in happened. It is never persisted and never counted in rollups.
	StatusNotCheckedIn Status = "NOT_CHECKED_IN"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPresent, StatusLate, StatusAbsent, StatusLeave, StatusHoliday:
		return true
	}
	return false
}

// Attendance is one record per (employee, date). CheckOut is only ever set
// when CheckIn is, and CheckOut >= CheckIn. TotalHours stays 0 until the
// record is complete.
type Attendance struct {
	ID         string
	EmployeeID string
	Date       time.Time // day granularity, UTC midnight
	CheckIn    *time.Time
	CheckOut   *time.Time
	Status     Status
	TotalHours float64
	Note       *string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// DTO
	EmployeeName *string
}
