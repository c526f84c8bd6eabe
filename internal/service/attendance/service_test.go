package attendance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kantorhq/hrms-backend-go/internal/config"
	"github.com/kantorhq/hrms-backend-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAttendanceRepo is an in-memory attendance.AttendanceRepository for
// service tests.
type fakeAttendanceRepo struct {
	records map[string]attendance.Attendance
	failAll bool
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]attendance.Attendance)}
}

var errFakeDown = errors.New("connection refused")

func strPtr(s string) *string { return &s }

func (f *fakeAttendanceRepo) Create(ctx context.Context, rec attendance.Attendance) (attendance.Attendance, error) {
	if f.failAll {
		return attendance.Attendance{}, errFakeDown
	}
	rec.ID = uuid.NewString()
	rec.CreatedAt = time.Now()
	rec.UpdatedAt = rec.CreatedAt
	f.records[rec.ID] = rec
	return rec, nil
}

func (f *fakeAttendanceRepo) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	if f.failAll {
		return attendance.Attendance{}, errFakeDown
	}
	rec, ok := f.records[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return rec, nil
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	if f.failAll {
		return nil, errFakeDown
	}
	for _, rec := range f.records {
		if rec.EmployeeID == employeeID && rec.Date.Equal(date) {
			found := rec
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeAttendanceRepo) GetByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Attendance, error) {
	if f.failAll {
		return nil, errFakeDown
	}
	var out []attendance.Attendance
	for _, rec := range f.records {
		if rec.EmployeeID == employeeID && !rec.Date.Before(from) && rec.Date.Before(to) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, rec attendance.Attendance) error {
	if f.failAll {
		return errFakeDown
	}
	if _, ok := f.records[rec.ID]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	f.records[rec.ID] = rec
	return nil
}

func (f *fakeAttendanceRepo) Delete(ctx context.Context, id string) error {
	if f.failAll {
		return errFakeDown
	}
	if _, ok := f.records[id]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	delete(f.records, id)
	return nil
}

func (f *fakeAttendanceRepo) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	if f.failAll {
		return nil, 0, errFakeDown
	}
	var out []attendance.Attendance
	for _, rec := range f.records {
		out = append(out, rec)
	}
	return out, int64(len(out)), nil
}

func newTestService(repo *fakeAttendanceRepo, now time.Time) *AttendanceServiceImpl {
	svc := NewAttendanceService(repo, config.AttendanceConfig{
		LateCutoff:   "09:00",
		GraceMinutes: 15,
	}).(*AttendanceServiceImpl)
	svc.now = func() time.Time { return now }
	return svc
}

func TestCheckIn_OnTime(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := newTestService(repo, ts(2025, 3, 10, 8, 55))

	resp, err := svc.CheckIn(context.Background(), "emp-1")

	require.NoError(t, err)
	assert.Equal(t, string(attendance.StatusPresent), resp.Status)
	assert.NotNil(t, resp.CheckInTime)
}

func TestCheckIn_LateAfterGrace(t *testing.T) {
	repo := newFakeAttendanceRepo()
	// Cutoff 09:00 + 15m grace; 09:20 is late.
	svc := newTestService(repo, ts(2025, 3, 10, 9, 20))

	resp, err := svc.CheckIn(context.Background(), "emp-1")

	require.NoError(t, err)
	assert.Equal(t, string(attendance.StatusLate), resp.Status)
}

func TestCheckIn_WithinGraceIsPresent(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := newTestService(repo, ts(2025, 3, 10, 9, 10))

	resp, err := svc.CheckIn(context.Background(), "emp-1")

	require.NoError(t, err)
	assert.Equal(t, string(attendance.StatusPresent), resp.Status)
}

func TestCheckIn_Twice(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := newTestService(repo, ts(2025, 3, 10, 8, 55))

	_, err := svc.CheckIn(context.Background(), "emp-1")
	require.NoError(t, err)

	_, err = svc.CheckIn(context.Background(), "emp-1")
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestCheckIn_OverManualRecord(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := newTestService(repo, ts(2025, 3, 10, 8, 55))

	// Today was pre-entered by an admin without clock times.
	seeded, err := repo.Create(context.Background(), attendance.Attendance{
		EmployeeID: "emp-1",
		Date:       day(2025, 3, 10),
		Status:     attendance.StatusHoliday,
		Note:       strPtr("office move"),
	})
	require.NoError(t, err)

	resp, err := svc.CheckIn(context.Background(), "emp-1")

	require.NoError(t, err)
	assert.Equal(t, seeded.ID, resp.ID)
	assert.Equal(t, string(attendance.StatusPresent), resp.Status)
	assert.NotNil(t, resp.CheckInTime)
	require.NotNil(t, resp.Note)
	assert.Equal(t, "office move", *resp.Note)
	assert.Len(t, repo.records, 1)
}

func TestCheckOut_BeforeCheckIn(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := newTestService(repo, ts(2025, 3, 10, 18, 0))

	_, err := svc.CheckOut(context.Background(), "emp-1")
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestCheckOut_ComputesHours(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := newTestService(repo, ts(2025, 3, 10, 9, 10))

	_, err := svc.CheckIn(context.Background(), "emp-1")
	require.NoError(t, err)

	svc.now = func() time.Time { return ts(2025, 3, 10, 18, 5) }
	resp, err := svc.CheckOut(context.Background(), "emp-1")

	require.NoError(t, err)
	assert.Equal(t, 8.92, resp.TotalHours)
	assert.NotNil(t, resp.CheckOutTime)
}

func TestCheckOut_Twice(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := newTestService(repo, ts(2025, 3, 10, 8, 0))

	_, err := svc.CheckIn(context.Background(), "emp-1")
	require.NoError(t, err)

	svc.now = func() time.Time { return ts(2025, 3, 10, 17, 0) }
	_, err = svc.CheckOut(context.Background(), "emp-1")
	require.NoError(t, err)

	_, err = svc.CheckOut(context.Background(), "emp-1")
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestCheckOut_ClockSkew(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := newTestService(repo, ts(2025, 3, 10, 9, 0))

	_, err := svc.CheckIn(context.Background(), "emp-1")
	require.NoError(t, err)

	// Clock went backwards; nothing negative may be stored.
	svc.now = func() time.Time { return ts(2025, 3, 10, 8, 30) }
	_, err = svc.CheckOut(context.Background(), "emp-1")
	assert.ErrorIs(t, err, attendance.ErrInvalidTimeRange)
}

func TestGetMyAttendance_Degraded(t *testing.T) {
	repo := newFakeAttendanceRepo()
	repo.failAll = true
	svc := newTestService(repo, ts(2025, 3, 10, 12, 0))

	resp, err := svc.GetMyAttendance(context.Background(), "emp-1", 2025, 3)

	assert.ErrorIs(t, err, attendance.ErrUpstreamUnavailable)
	assert.Equal(t, "2025-03", resp.Month)
	assert.Empty(t, resp.Attendances)
	assert.Zero(t, resp.Rollup.WorkedDays)
}

func TestSummary_Degraded(t *testing.T) {
	repo := newFakeAttendanceRepo()
	repo.failAll = true
	svc := newTestService(repo, ts(2025, 3, 10, 12, 0))

	resp, err := svc.Summary(context.Background(), "emp-1")

	assert.ErrorIs(t, err, attendance.ErrUpstreamUnavailable)
	assert.True(t, resp.Degraded)
	assert.Zero(t, resp.ThisMonth.WorkedDays)
	assert.Zero(t, resp.LastWeek.TotalHours)
	assert.Equal(t, string(attendance.StatusNotCheckedIn), resp.Today.Status)
}

func TestSummary_Rollups(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := newTestService(repo, ts(2025, 3, 10, 7, 0))

	// Seed a week of history directly in the store.
	for d := 3; d <= 7; d++ {
		_, err := repo.Create(context.Background(), attendance.Attendance{
			EmployeeID: "emp-1",
			Date:       day(2025, 3, d),
			Status:     attendance.StatusPresent,
			TotalHours: 8,
		})
		require.NoError(t, err)
	}

	resp, err := svc.Summary(context.Background(), "emp-1")

	require.NoError(t, err)
	assert.Equal(t, 5, resp.ThisMonth.WorkedDays)
	assert.Equal(t, 40.0, resp.ThisMonth.TotalHours)
	// 2025-03-04..10 window catches four of the seeded days.
	assert.Equal(t, 4, resp.LastWeek.WorkedDays)
	assert.Equal(t, string(attendance.StatusNotCheckedIn), resp.Today.Status)
}

func TestCreateAttendance_RejectsInvertedRange(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := newTestService(repo, ts(2025, 3, 10, 12, 0))

	checkIn := "2025-03-05T18:00:00Z"
	checkOut := "2025-03-05T09:00:00Z"
	_, err := svc.CreateAttendance(context.Background(), attendance.CreateAttendanceRequest{
		EmployeeID: "emp-1",
		Date:       "2025-03-05",
		Status:     "PRESENT",
		CheckIn:    &checkIn,
		CheckOut:   &checkOut,
	})

	assert.ErrorIs(t, err, attendance.ErrInvalidTimeRange)
}

func TestCreateAttendance_DuplicateDate(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := newTestService(repo, ts(2025, 3, 10, 12, 0))

	req := attendance.CreateAttendanceRequest{
		EmployeeID: "emp-1",
		Date:       "2025-03-05",
		Status:     "HOLIDAY",
	}

	_, err := svc.CreateAttendance(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.CreateAttendance(context.Background(), req)
	assert.ErrorIs(t, err, attendance.ErrDuplicateDate)
}
