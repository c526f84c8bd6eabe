package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kantorhq/hrms-backend-go/internal/domain/leave"
	"github.com/kantorhq/hrms-backend-go/internal/handler/http/response"
)

type LeaveHandler interface {
	CreateRequest(w http.ResponseWriter, r *http.Request)
	GetRequest(w http.ResponseWriter, r *http.Request)
	ListMyRequests(w http.ResponseWriter, r *http.Request)
	ListRequests(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	MyBalance(w http.ResponseWriter, r *http.Request)
	EmployeeBalance(w http.ResponseWriter, r *http.Request)
	MyCalendar(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &leaveHandlerImpl{
		leaveService: leaveService,
	}
}

// CreateRequest implements LeaveHandler.
func (h *leaveHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	employeeID, err := employeeIDFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req leave.CreateRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = employeeID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.leaveService.CreateRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted", result)
}

// GetRequest implements LeaveHandler.
func (h *leaveHandlerImpl) GetRequest(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.leaveService.GetRequest(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListMyRequests implements LeaveHandler.
func (h *leaveHandlerImpl) ListMyRequests(w http.ResponseWriter, r *http.Request) {
	employeeID, err := employeeIDFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	result, err := h.leaveService.ListMyRequests(r.Context(), employeeID, leaveFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Requests, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

// ListRequests implements LeaveHandler.
func (h *leaveHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	filter := leaveFilterFromQuery(r)
	if v := r.URL.Query().Get("employee_id"); v != "" {
		filter.EmployeeID = &v
	}

	result, err := h.leaveService.ListRequests(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Requests, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

// Approve implements LeaveHandler.
func (h *leaveHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	approverID, err := userIDFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	requestID := chi.URLParam(r, "id")

	result, err := h.leaveService.Approve(r.Context(), requestID, approverID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request approved", result)
}

// Reject implements LeaveHandler.
func (h *leaveHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	approverID, err := userIDFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req leave.RejectRequestRequest
	if r.Body != nil {
		// An empty body is fine, the rejection reason is optional.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	req.RequestID = chi.URLParam(r, "id")
	req.ApproverID = approverID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.leaveService.Reject(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request rejected", result)
}

// MyBalance implements LeaveHandler.
func (h *leaveHandlerImpl) MyBalance(w http.ResponseWriter, r *http.Request) {
	employeeID, err := employeeIDFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	year := parseYear(r.URL.Query().Get("year"))

	result, err := h.leaveService.Balance(r.Context(), employeeID, year, leave.CountApprovedAndPending)
	if err != nil {
		if errors.Is(err, leave.ErrUpstreamUnavailable) {
			response.Degraded(w, result)
			return
		}
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// EmployeeBalance implements LeaveHandler. The admin view counts approved
// requests only, the same accounting the approval guard uses.
func (h *leaveHandlerImpl) EmployeeBalance(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	year := parseYear(r.URL.Query().Get("year"))

	result, err := h.leaveService.Balance(r.Context(), employeeID, year, leave.CountApprovedOnly)
	if err != nil {
		if errors.Is(err, leave.ErrUpstreamUnavailable) {
			response.Degraded(w, result)
			return
		}
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// MyCalendar implements LeaveHandler.
func (h *leaveHandlerImpl) MyCalendar(w http.ResponseWriter, r *http.Request) {
	employeeID, err := employeeIDFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	year, month := parseYearMonth(r.URL.Query().Get("year"), r.URL.Query().Get("month"))

	result, err := h.leaveService.Calendar(r.Context(), employeeID, year, month)
	if err != nil {
		if errors.Is(err, leave.ErrUpstreamUnavailable) {
			response.Degraded(w, result)
			return
		}
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func leaveFilterFromQuery(r *http.Request) leave.RequestFilter {
	query := r.URL.Query()

	filter := leave.RequestFilter{
		Page:  parsePositiveInt(query.Get("page"), 1),
		Limit: parsePositiveInt(query.Get("limit"), 20),
	}
	if v := query.Get("leave_type"); v != "" {
		filter.LeaveType = &v
	}
	if v := query.Get("status"); v != "" {
		filter.Status = &v
	}
	if y, err := strconv.Atoi(query.Get("year")); err == nil && y >= 2000 && y <= 2100 {
		filter.Year = y
	}
	return filter
}

func parseYear(yearStr string) int {
	now := time.Now()
	if y, err := strconv.Atoi(yearStr); err == nil && y >= 2000 && y <= 2100 {
		return y
	}
	return now.Year()
}
