package dashboard

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kantorhq/hrms-backend-go/internal/domain/attendance"
	"github.com/kantorhq/hrms-backend-go/internal/domain/dashboard"
	"github.com/kantorhq/hrms-backend-go/internal/domain/leave"
)

type DashboardServiceImpl struct {
	attendanceService attendance.AttendanceService
	leaveService      leave.LeaveService
	now               func() time.Time
}

func NewDashboardService(
	attendanceService attendance.AttendanceService,
	leaveService leave.LeaveService,
) dashboard.DashboardService {
	return &DashboardServiceImpl{
		attendanceService: attendanceService,
		leaveService:      leaveService,
		now:               time.Now,
	}
}

// GetDashboard implements dashboard.DashboardService.
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context, employeeID string) (dashboard.DashboardResponse, error) {
	now := s.now()
	year, month := now.Year(), int(now.Month())

	var (
		summary  attendance.SummaryResponse
		balance  leave.BalanceResponse
		calendar leave.CalendarResponse
		degraded atomic.Bool
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		data, err := s.attendanceService.Summary(gCtx, employeeID)
		if err != nil {
			if !errors.Is(err, attendance.ErrUpstreamUnavailable) {
				return err
			}
			degraded.Store(true)
		}
		summary = data
		return nil
	})

	g.Go(func() error {
		data, err := s.leaveService.Balance(gCtx, employeeID, year, leave.CountApprovedAndPending)
		if err != nil {
			if !errors.Is(err, leave.ErrUpstreamUnavailable) {
				return err
			}
			degraded.Store(true)
		}
		balance = data
		return nil
	})

	g.Go(func() error {
		data, err := s.leaveService.Calendar(gCtx, employeeID, year, month)
		if err != nil {
			if !errors.Is(err, leave.ErrUpstreamUnavailable) {
				return err
			}
			degraded.Store(true)
		}
		calendar = data
		return nil
	})

	if err := g.Wait(); err != nil {
		return dashboard.DashboardResponse{}, err
	}

	return dashboard.DashboardResponse{
		Attendance:    summary,
		LeaveBalance:  balance,
		LeaveCalendar: calendar,
		Degraded:      degraded.Load() || summary.Degraded,
	}, nil
}
