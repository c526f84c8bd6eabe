package http

import (
	"net/http"

	"github.com/kantorhq/hrms-backend-go/internal/domain/dashboard"
	"github.com/kantorhq/hrms-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	GetDashboard(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{
		dashboardService: dashboardService,
	}
}

// GetDashboard implements DashboardHandler.
func (h *dashboardHandlerImpl) GetDashboard(w http.ResponseWriter, r *http.Request) {
	employeeID, err := employeeIDFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	result, err := h.dashboardService.GetDashboard(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if result.Degraded {
		response.Degraded(w, result)
		return
	}

	response.Success(w, result)
}
