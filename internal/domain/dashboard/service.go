package dashboard

import (
	"context"
)

type DashboardService interface {
	// GetDashboard fans out to the attendance and leave services and
	// combines their employee views. Branches whose store is unreachable
	// degrade to zeroed data instead of failing the whole dashboard.
	GetDashboard(ctx context.Context, employeeID string) (DashboardResponse, error)
}
