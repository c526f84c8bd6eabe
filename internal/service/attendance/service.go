package attendance

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/kantorhq/hrms-backend-go/internal/config"
	"github.com/kantorhq/hrms-backend-go/internal/domain/attendance"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	cutoff config.AttendanceConfig
	now    func() time.Time
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	cutoff config.AttendanceConfig,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		cutoff:               cutoff,
		now:                  func() time.Time { return time.Now().UTC() },
	}
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format("2006-01-02 15:04:05")
	return &format
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, employeeID string) (attendance.AttendanceResponse, error) {
	now := a.now()
	today := truncateDay(now)

	existing, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if existing != nil && existing.CheckIn != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
	}

	status := attendance.StatusPresent
	if now.After(a.lateLimit(today)) {
		status = attendance.StatusLate
	}

	// A manual record for today without a check-in (a pre-entered holiday or
	// leave day, say) gets the clock time stamped onto it; inserting a second
	// row would trip the per-day uniqueness.
	if existing != nil {
		existing.CheckIn = &now
		existing.Status = status
		if err := a.AttendanceRepository.Update(ctx, *existing); err != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
		}
		return mapAttendanceToResponse(*existing), nil
	}

	record := attendance.Attendance{
		EmployeeID: employeeID,
		Date:       today,
		CheckIn:    &now,
		Status:     status,
		TotalHours: 0,
	}

	created, err := a.AttendanceRepository.Create(ctx, record)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return mapAttendanceToResponse(created), nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, employeeID string) (attendance.AttendanceResponse, error) {
	now := a.now()
	today := truncateDay(now)

	record, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if record == nil || record.CheckIn == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
	}
	if record.CheckOut != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}
	if now.Before(*record.CheckIn) {
		return attendance.AttendanceResponse{}, attendance.ErrInvalidTimeRange
	}

	record.CheckOut = &now
	record.TotalHours = WorkHours(*record.CheckIn, now)

	if err := a.AttendanceRepository.Update(ctx, *record); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	return mapAttendanceToResponse(*record), nil
}

// GetMyAttendance implements attendance.AttendanceService. A store failure
// degrades to an empty month view paired with ErrUpstreamUnavailable.
func (a *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, employeeID string, year, month int) (attendance.MyAttendanceResponse, error) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	records, err := a.AttendanceRepository.GetByEmployeeAndRange(ctx, employeeID, from, to)
	if err != nil {
		degraded := attendance.MyAttendanceResponse{
			Month:       fmt.Sprintf("%d-%02d", year, month),
			Attendances: []attendance.AttendanceResponse{},
		}
		return degraded, fmt.Errorf("%w: %v", attendance.ErrUpstreamUnavailable, err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, mapAttendanceToResponse(rec))
	}

	rollup := Summarize(records, SameMonth(year, time.Month(month)))

	return attendance.MyAttendanceResponse{
		Month:       fmt.Sprintf("%d-%02d", year, month),
		Rollup:      mapRollup(rollup),
		Attendances: responses,
	}, nil
}

// Summary implements attendance.AttendanceService. A store failure degrades
// to a zeroed summary paired with ErrUpstreamUnavailable so the dashboard
// can still render.
func (a *AttendanceServiceImpl) Summary(ctx context.Context, employeeID string) (attendance.SummaryResponse, error) {
	now := a.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	weekStart := truncateDay(now).AddDate(0, 0, -6)
	from := monthStart
	if weekStart.Before(from) {
		from = weekStart
	}

	records, err := a.AttendanceRepository.GetByEmployeeAndRange(ctx, employeeID, from, truncateDay(now).AddDate(0, 0, 1))
	if err != nil {
		degraded := attendance.SummaryResponse{
			Today:    mapDayView(DailyStatus(nil, now, now)),
			Degraded: true,
		}
		return degraded, fmt.Errorf("%w: %v", attendance.ErrUpstreamUnavailable, err)
	}

	return attendance.SummaryResponse{
		Today:     mapDayView(DailyStatus(records, now, now)),
		ThisMonth: mapRollup(Summarize(records, SameMonth(now.Year(), now.Month()))),
		LastWeek:  mapRollup(Summarize(records, LastNDays(now, 7))),
	}, nil
}

// CreateAttendance implements attendance.AttendanceService.
// Manual entry by an administrator; honors the same time-range invariant
// as check-out.
func (a *AttendanceServiceImpl) CreateAttendance(ctx context.Context, req attendance.CreateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)

	existing, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, req.EmployeeID, date)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check existing attendance: %w", err)
	}
	if existing != nil {
		return attendance.AttendanceResponse{}, attendance.ErrDuplicateDate
	}

	record := attendance.Attendance{
		EmployeeID: req.EmployeeID,
		Date:       date,
		Status:     attendance.Status(req.Status),
		Note:       req.Note,
	}

	if err := applyTimes(&record, req.CheckIn, req.CheckOut); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	created, err := a.AttendanceRepository.Create(ctx, record)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return mapAttendanceToResponse(created), nil
}

// GetAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetAttendance(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	record, err := a.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	return mapAttendanceToResponse(record), nil
}

// UpdateAttendance implements attendance.AttendanceService.
// This allows administrators to fix attendance data like wrong clock times.
func (a *AttendanceServiceImpl) UpdateAttendance(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := a.AttendanceRepository.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	if req.Status != nil {
		record.Status = attendance.Status(*req.Status)
	}
	if req.Note != nil {
		record.Note = req.Note
	}

	if err := applyTimes(&record, req.CheckIn, req.CheckOut); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if err := a.AttendanceRepository.Update(ctx, record); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	return mapAttendanceToResponse(record), nil
}

// DeleteAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) DeleteAttendance(ctx context.Context, id string) error {
	if err := a.AttendanceRepository.Delete(ctx, id); err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.ErrAttendanceNotFound
		}
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	return nil
}

// ListAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}

	records, total, err := a.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendances: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, mapAttendanceToResponse(rec))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  totalPages,
		Attendances: responses,
	}, nil
}

// lateLimit is the scheduled cutoff plus the grace period for a day.
func (a *AttendanceServiceImpl) lateLimit(day time.Time) time.Time {
	cutoff, err := time.Parse("15:04", a.cutoff.LateCutoff)
	if err != nil {
		cutoff, _ = time.Parse("15:04", "09:00")
	}
	scheduled := time.Date(day.Year(), day.Month(), day.Day(), cutoff.Hour(), cutoff.Minute(), 0, 0, time.UTC)
	return scheduled.Add(time.Duration(a.cutoff.GraceMinutes) * time.Minute)
}

// applyTimes parses optional check-in/out strings onto the record and
// recomputes hours, rejecting inverted ranges.
func applyTimes(record *attendance.Attendance, checkIn, checkOut *string) error {
	if checkIn != nil {
		t, _ := time.Parse(time.RFC3339, *checkIn)
		record.CheckIn = &t
	}
	if checkOut != nil {
		t, _ := time.Parse(time.RFC3339, *checkOut)
		record.CheckOut = &t
	}

	if record.CheckOut != nil && record.CheckIn == nil {
		return attendance.ErrNotCheckedIn
	}
	if record.CheckIn != nil && record.CheckOut != nil {
		if record.CheckOut.Before(*record.CheckIn) {
			return attendance.ErrInvalidTimeRange
		}
		record.TotalHours = WorkHours(*record.CheckIn, *record.CheckOut)
	}
	return nil
}

func mapAttendanceToResponse(rec attendance.Attendance) attendance.AttendanceResponse {
	return attendance.AttendanceResponse{
		ID:           rec.ID,
		EmployeeID:   rec.EmployeeID,
		EmployeeName: rec.EmployeeName,
		Date:         rec.Date.Format("2006-01-02"),
		CheckInTime:  timePtrToString(rec.CheckIn),
		CheckOutTime: timePtrToString(rec.CheckOut),
		Status:       string(rec.Status),
		TotalHours:   rec.TotalHours,
		Note:         rec.Note,
	}
}

func mapDayView(view DayView) attendance.DayStatusResponse {
	return attendance.DayStatusResponse{
		Date:         view.Date.Format("2006-01-02"),
		Status:       string(view.Status),
		CheckInTime:  timePtrToString(view.CheckIn),
		CheckOutTime: timePtrToString(view.CheckOut),
		TotalHours:   view.TotalHours,
	}
}

func mapRollup(r Rollup) attendance.RollupResponse {
	return attendance.RollupResponse{
		WorkedDays: r.WorkedDays,
		LateDays:   r.LateDays,
		OffDays:    r.OffDays,
		TotalHours: r.TotalHours,
	}
}
