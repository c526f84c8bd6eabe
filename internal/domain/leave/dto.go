package leave

import (
	"github.com/kantorhq/hrms-backend-go/internal/pkg/validator"
)

// ========================================
// LEAVE REQUEST DTOs
// ========================================

type CreateRequestRequest struct {
	EmployeeID string  `json:"-"` // from JWT, never from the body
	LeaveType  string  `json:"leave_type"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	DaysCount  float64 `json:"days_count"`
	Reason     string  `json:"reason"`
}

func (r *CreateRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if !Type(r.LeaveType).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type must be one of ANNUAL, SICK, MARRIAGE, MATERNITY, UNPAID, OTHER",
		})
	}

	startDate, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	endDate, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if startOK && endOK && startDate.After(endDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not precede start_date",
		})
	}

	if r.DaysCount <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "days_count",
			Message: "days_count must be greater than zero",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ApproveRequestRequest struct {
	RequestID  string `json:"-"`
	ApproverID string `json:"-"`
}

type RejectRequestRequest struct {
	RequestID  string `json:"-"`
	ApproverID string `json:"-"`
	Reason     string `json:"reason"`
}

func (r *RejectRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RequestID) {
		errs = append(errs, validator.ValidationError{
			Field:   "request_id",
			Message: "request_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RequestFilter struct {
	EmployeeID *string
	LeaveType  *string
	Status     *string
	Year       int
	Page       int
	Limit      int
}

type RequestResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	LeaveType    string  `json:"leave_type"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	DaysCount    float64 `json:"days_count"`
	Reason       string  `json:"reason"`
	Status       string  `json:"status"`
	ApprovedBy   *string `json:"approved_by,omitempty"`
	ApprovedAt   *string `json:"approved_at,omitempty"`
	RejectReason *string `json:"reject_reason,omitempty"`
	SubmittedAt  string  `json:"submitted_at"`
}

type ListRequestResponse struct {
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
	Requests   []RequestResponse `json:"requests"`
}

// TypeBalance is one row of the balance view: used and remaining days for a
// leave type within a year under a given counting policy.
type TypeBalance struct {
	LeaveType     string  `json:"leave_type"`
	Label         string  `json:"label"`
	Ceiling       float64 `json:"ceiling"`
	UsedDays      float64 `json:"used_days"`
	AvailableDays float64 `json:"available_days"`
}

type BalanceResponse struct {
	EmployeeID string        `json:"employee_id"`
	Year       int           `json:"year"`
	Balances   []TypeBalance `json:"balances"`
}

// CalendarResponse maps "YYYY-MM-DD" to APPROVED or PENDING for every day of
// the queried month covered by a live request. Days with no request are
// absent from the map.
type CalendarResponse struct {
	EmployeeID string            `json:"employee_id"`
	Year       int               `json:"year"`
	Month      int               `json:"month"`
	Cells      map[string]string `json:"cells"`
}
