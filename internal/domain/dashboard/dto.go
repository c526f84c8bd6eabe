package dashboard

import (
	"github.com/kantorhq/hrms-backend-go/internal/domain/attendance"
	"github.com/kantorhq/hrms-backend-go/internal/domain/leave"
)

// DashboardResponse is the employee home view: today's attendance with
// rollups, the year's leave balances, and the current month's leave
// calendar. Degraded is set when any branch fell back to zeroed data.
type DashboardResponse struct {
	Attendance    attendance.SummaryResponse `json:"attendance"`
	LeaveBalance  leave.BalanceResponse      `json:"leave_balance"`
	LeaveCalendar leave.CalendarResponse     `json:"leave_calendar"`
	Degraded      bool                       `json:"degraded,omitempty"`
}
