package leave

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/kantorhq/hrms-backend-go/internal/domain/leave"
	"github.com/kantorhq/hrms-backend-go/internal/pkg/database"
)

type LeaveServiceImpl struct {
	tx database.TxRunner
	leave.LeaveRequestRepository
	ceilings leave.QuotaCeilings
	now      func() time.Time
}

func NewLeaveService(
	tx database.TxRunner,
	requestRepo leave.LeaveRequestRepository,
	ceilings leave.QuotaCeilings,
) leave.LeaveService {
	return &LeaveServiceImpl{
		tx:                     tx,
		LeaveRequestRepository: requestRepo,
		ceilings:               ceilings,
		now:                    time.Now,
	}
}

// CreateRequest implements leave.LeaveService.
func (s *LeaveServiceImpl) CreateRequest(ctx context.Context, req leave.CreateRequestRequest) (leave.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.RequestResponse{}, err
	}

	startDate, _ := time.Parse("2006-01-02", req.StartDate)
	endDate, _ := time.Parse("2006-01-02", req.EndDate)
	if startDate.After(endDate) {
		return leave.RequestResponse{}, leave.ErrInvalidDateRange
	}

	request := leave.Request{
		EmployeeID: req.EmployeeID,
		Type:       leave.Type(req.LeaveType),
		StartDate:  startDate,
		EndDate:    endDate,
		DaysCount:  req.DaysCount,
		Reason:     req.Reason,
		Status:     leave.RequestStatusPending,
	}

	created, err := s.LeaveRequestRepository.Create(ctx, request)
	if err != nil {
		return leave.RequestResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return mapRequestToResponse(created), nil
}

// Approve implements leave.LeaveService. The quota re-check and the status
// flip run inside one transaction on a locked row, so two concurrent
// approvers cannot both pass the guard against the same committed state.
func (s *LeaveServiceImpl) Approve(ctx context.Context, requestID, approverID string) (leave.RequestResponse, error) {
	var approved leave.Request

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		request, err := s.LeaveRequestRepository.GetByIDForUpdate(ctx, requestID)
		if err != nil {
			return err
		}

		if request.Status.Terminal() {
			return leave.ErrAlreadyProcessed
		}

		// A year-spanning request is charged to both endpoint years, so the
		// guard needs the committed usage of each.
		seen := make(map[string]struct{})
		var others []leave.Request
		for _, year := range RequestYears(request) {
			batch, err := s.LeaveRequestRepository.GetApprovedByEmployeeTypeYear(
				ctx, request.EmployeeID, request.Type, year)
			if err != nil {
				return fmt.Errorf("failed to get approved requests: %w", err)
			}
			for _, other := range batch {
				if _, ok := seen[other.ID]; ok {
					continue
				}
				seen[other.ID] = struct{}{}
				others = append(others, other)
			}
		}

		decision := CanApprove(request, others, s.ceilings)
		if !decision.Allowed {
			return fmt.Errorf("%w: %s", leave.ErrQuotaExceeded, decision.Reason)
		}

		approvedAt := s.now()
		request.Status = leave.RequestStatusApproved
		request.ApprovedBy = &approverID
		request.ApprovedAt = &approvedAt

		if err := s.LeaveRequestRepository.UpdateStatus(ctx, request); err != nil {
			return fmt.Errorf("failed to update leave request: %w", err)
		}

		approved = request
		return nil
	})
	if err != nil {
		return leave.RequestResponse{}, err
	}

	return mapRequestToResponse(approved), nil
}

// Reject implements leave.LeaveService. Rejection is never quota-gated.
func (s *LeaveServiceImpl) Reject(ctx context.Context, req leave.RejectRequestRequest) (leave.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.RequestResponse{}, err
	}

	var rejected leave.Request

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		request, err := s.LeaveRequestRepository.GetByIDForUpdate(ctx, req.RequestID)
		if err != nil {
			return err
		}

		if request.Status.Terminal() {
			return leave.ErrAlreadyProcessed
		}

		rejectedAt := s.now()
		request.Status = leave.RequestStatusRejected
		request.ApprovedBy = &req.ApproverID
		request.ApprovedAt = &rejectedAt
		if req.Reason != "" {
			request.RejectReason = &req.Reason
		}

		if err := s.LeaveRequestRepository.UpdateStatus(ctx, request); err != nil {
			return fmt.Errorf("failed to update leave request: %w", err)
		}

		rejected = request
		return nil
	})
	if err != nil {
		return leave.RequestResponse{}, err
	}

	return mapRequestToResponse(rejected), nil
}

// GetRequest implements leave.LeaveService.
func (s *LeaveServiceImpl) GetRequest(ctx context.Context, id string) (leave.RequestResponse, error) {
	request, err := s.LeaveRequestRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, leave.ErrRequestNotFound) {
			return leave.RequestResponse{}, leave.ErrRequestNotFound
		}
		return leave.RequestResponse{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	return mapRequestToResponse(request), nil
}

// ListMyRequests implements leave.LeaveService.
func (s *LeaveServiceImpl) ListMyRequests(ctx context.Context, employeeID string, filter leave.RequestFilter) (leave.ListRequestResponse, error) {
	filter.EmployeeID = &employeeID
	return s.ListRequests(ctx, filter)
}

// ListRequests implements leave.LeaveService.
func (s *LeaveServiceImpl) ListRequests(ctx context.Context, filter leave.RequestFilter) (leave.ListRequestResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}

	requests, total, err := s.LeaveRequestRepository.List(ctx, filter)
	if err != nil {
		return leave.ListRequestResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}

	responses := make([]leave.RequestResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, mapRequestToResponse(request))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))

	return leave.ListRequestResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Requests:   responses,
	}, nil
}

// Balance implements leave.LeaveService. The store failure path degrades to
// zeroed balances paired with ErrUpstreamUnavailable.
func (s *LeaveServiceImpl) Balance(ctx context.Context, employeeID string, year int, policy leave.CountingPolicy) (leave.BalanceResponse, error) {
	requests, err := s.LeaveRequestRepository.GetByEmployeeAndYear(ctx, employeeID, year)
	if err != nil {
		degraded := leave.BalanceResponse{EmployeeID: employeeID, Year: year, Balances: []leave.TypeBalance{}}
		return degraded, fmt.Errorf("%w: %v", leave.ErrUpstreamUnavailable, err)
	}

	return leave.BalanceResponse{
		EmployeeID: employeeID,
		Year:       year,
		Balances:   Balances(requests, employeeID, year, s.ceilings, policy),
	}, nil
}

// Calendar implements leave.LeaveService.
func (s *LeaveServiceImpl) Calendar(ctx context.Context, employeeID string, year, month int) (leave.CalendarResponse, error) {
	requests, err := s.LeaveRequestRepository.GetByEmployeeAndYear(ctx, employeeID, year)
	if err != nil {
		degraded := leave.CalendarResponse{EmployeeID: employeeID, Year: year, Month: month, Cells: map[string]string{}}
		return degraded, fmt.Errorf("%w: %v", leave.ErrUpstreamUnavailable, err)
	}

	cells := Calendar(requests, employeeID, year, time.Month(month))
	out := make(map[string]string, len(cells))
	for date, status := range cells {
		out[date] = string(status)
	}

	return leave.CalendarResponse{
		EmployeeID: employeeID,
		Year:       year,
		Month:      month,
		Cells:      out,
	}, nil
}

func mapRequestToResponse(request leave.Request) leave.RequestResponse {
	var approvedAt *string
	if request.ApprovedAt != nil {
		formatted := request.ApprovedAt.Format("2006-01-02 15:04:05")
		approvedAt = &formatted
	}

	var submittedAt string
	if !request.SubmittedAt.IsZero() {
		submittedAt = request.SubmittedAt.Format("2006-01-02 15:04:05")
	}

	return leave.RequestResponse{
		ID:           request.ID,
		EmployeeID:   request.EmployeeID,
		EmployeeName: request.EmployeeName,
		LeaveType:    string(request.Type),
		StartDate:    request.StartDate.Format("2006-01-02"),
		EndDate:      request.EndDate.Format("2006-01-02"),
		DaysCount:    request.DaysCount,
		Reason:       request.Reason,
		Status:       string(request.Status),
		ApprovedBy:   request.ApprovedBy,
		ApprovedAt:   approvedAt,
		RejectReason: request.RejectReason,
		SubmittedAt:  submittedAt,
	}
}
