package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kantorhq/hrms-backend-go/internal/domain/leave"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func request(employeeID string, typ leave.Type, status leave.RequestStatus, start, end time.Time, days float64) leave.Request {
	return leave.Request{
		ID:         "req-" + start.Format("20060102"),
		EmployeeID: employeeID,
		Type:       typ,
		Status:     status,
		StartDate:  start,
		EndDate:    end,
		DaysCount:  days,
	}
}

func TestTouchesYear(t *testing.T) {
	inside := request("emp-1", leave.TypeAnnual, leave.RequestStatusApproved, date(2025, time.March, 3), date(2025, time.March, 5), 3)
	assert.True(t, TouchesYear(inside, 2025))
	assert.False(t, TouchesYear(inside, 2024))

	// Dec 30 2024 to Jan 2 2025 touches both years in full.
	spanning := request("emp-1", leave.TypeAnnual, leave.RequestStatusApproved, date(2024, time.December, 30), date(2025, time.January, 2), 4)
	assert.True(t, TouchesYear(spanning, 2024))
	assert.True(t, TouchesYear(spanning, 2025))
	assert.False(t, TouchesYear(spanning, 2026))
}

func TestUsedDays_Policies(t *testing.T) {
	requests := []leave.Request{
		request("emp-1", leave.TypeAnnual, leave.RequestStatusApproved, date(2025, time.February, 3), date(2025, time.February, 7), 5),
		request("emp-1", leave.TypeAnnual, leave.RequestStatusPending, date(2025, time.April, 1), date(2025, time.April, 2), 2),
		request("emp-1", leave.TypeAnnual, leave.RequestStatusRejected, date(2025, time.May, 1), date(2025, time.May, 9), 9),
		request("emp-1", leave.TypeSick, leave.RequestStatusApproved, date(2025, time.June, 2), date(2025, time.June, 2), 1),
		request("emp-2", leave.TypeAnnual, leave.RequestStatusApproved, date(2025, time.July, 1), date(2025, time.July, 4), 4),
	}

	assert.Equal(t, 5.0, UsedDays(requests, "emp-1", leave.TypeAnnual, 2025, leave.CountApprovedOnly))
	assert.Equal(t, 7.0, UsedDays(requests, "emp-1", leave.TypeAnnual, 2025, leave.CountApprovedAndPending))

	// Rejected requests never count under either policy.
	assert.Equal(t, 1.0, UsedDays(requests, "emp-1", leave.TypeSick, 2025, leave.CountApprovedAndPending))
}

func TestUsedDays_HalfDays(t *testing.T) {
	requests := []leave.Request{
		request("emp-1", leave.TypeAnnual, leave.RequestStatusApproved, date(2025, time.March, 3), date(2025, time.March, 3), 0.5),
		request("emp-1", leave.TypeAnnual, leave.RequestStatusApproved, date(2025, time.March, 10), date(2025, time.March, 10), 0.5),
		request("emp-1", leave.TypeAnnual, leave.RequestStatusApproved, date(2025, time.March, 17), date(2025, time.March, 17), 0.5),
	}

	assert.Equal(t, 1.5, UsedDays(requests, "emp-1", leave.TypeAnnual, 2025, leave.CountApprovedOnly))
}

func TestUsedDays_YearBoundary(t *testing.T) {
	spanning := request("emp-1", leave.TypeAnnual, leave.RequestStatusApproved, date(2024, time.December, 30), date(2025, time.January, 2), 4)
	requests := []leave.Request{spanning}

	// Full DaysCount is charged to every year it touches, never prorated.
	assert.Equal(t, 4.0, UsedDays(requests, "emp-1", leave.TypeAnnual, 2024, leave.CountApprovedOnly))
	assert.Equal(t, 4.0, UsedDays(requests, "emp-1", leave.TypeAnnual, 2025, leave.CountApprovedOnly))
}

func TestAvailableDays_ClampsAtZero(t *testing.T) {
	assert.Equal(t, 7.0, AvailableDays(5, 12))
	assert.Equal(t, 0.0, AvailableDays(12, 12))
	// Pending oversubscription must not surface as a negative balance.
	assert.Equal(t, 0.0, AvailableDays(13, 12))
}

func TestBalances(t *testing.T) {
	ceilings := leave.DefaultQuotaCeilings()
	requests := []leave.Request{
		request("emp-1", leave.TypeAnnual, leave.RequestStatusApproved, date(2025, time.February, 3), date(2025, time.February, 7), 5),
		request("emp-1", leave.TypeAnnual, leave.RequestStatusPending, date(2025, time.April, 1), date(2025, time.April, 2), 2),
		request("emp-1", leave.TypeSick, leave.RequestStatusApproved, date(2025, time.June, 2), date(2025, time.June, 4), 3),
	}

	balances := Balances(requests, "emp-1", 2025, ceilings, leave.CountApprovedAndPending)
	assert.Len(t, balances, len(leave.Types))

	byType := make(map[string]leave.TypeBalance, len(balances))
	for _, b := range balances {
		byType[b.LeaveType] = b
	}

	annual := byType[string(leave.TypeAnnual)]
	assert.Equal(t, 12.0, annual.Ceiling)
	assert.Equal(t, 7.0, annual.UsedDays)
	assert.Equal(t, 5.0, annual.AvailableDays)

	sick := byType[string(leave.TypeSick)]
	assert.Equal(t, 3.0, sick.UsedDays)
	assert.Equal(t, 7.0, sick.AvailableDays)

	marriage := byType[string(leave.TypeMarriage)]
	assert.Equal(t, 0.0, marriage.UsedDays)
	assert.Equal(t, 3.0, marriage.AvailableDays)
}

func TestCalendar_MonthFilter(t *testing.T) {
	requests := []leave.Request{
		request("emp-1", leave.TypeAnnual, leave.RequestStatusApproved, date(2025, time.January, 30), date(2025, time.February, 2), 4),
	}

	january := Calendar(requests, "emp-1", 2025, time.January)
	assert.Len(t, january, 2)
	assert.Equal(t, CellApproved, january["2025-01-30"])
	assert.Equal(t, CellApproved, january["2025-01-31"])

	february := Calendar(requests, "emp-1", 2025, time.February)
	assert.Len(t, february, 2)
	assert.Equal(t, CellApproved, february["2025-02-01"])
	assert.Equal(t, CellApproved, february["2025-02-02"])
}

func TestCalendar_ApprovedDominatesPending(t *testing.T) {
	requests := []leave.Request{
		{
			ID:         "pending-overlap",
			EmployeeID: "emp-1",
			Type:       leave.TypeAnnual,
			Status:     leave.RequestStatusPending,
			StartDate:  date(2025, time.March, 10),
			EndDate:    date(2025, time.March, 14),
			DaysCount:  5,
		},
		{
			ID:         "approved-overlap",
			EmployeeID: "emp-1",
			Type:       leave.TypeSick,
			Status:     leave.RequestStatusApproved,
			StartDate:  date(2025, time.March, 12),
			EndDate:    date(2025, time.March, 12),
			DaysCount:  1,
		},
	}

	cells := Calendar(requests, "emp-1", 2025, time.March)
	assert.Len(t, cells, 5)
	assert.Equal(t, CellPending, cells["2025-03-10"])
	assert.Equal(t, CellApproved, cells["2025-03-12"])
	assert.Equal(t, CellPending, cells["2025-03-14"])
}

func TestCalendar_RejectedAndOtherEmployeesExcluded(t *testing.T) {
	requests := []leave.Request{
		request("emp-1", leave.TypeAnnual, leave.RequestStatusRejected, date(2025, time.March, 3), date(2025, time.March, 5), 3),
		request("emp-2", leave.TypeAnnual, leave.RequestStatusApproved, date(2025, time.March, 10), date(2025, time.March, 11), 2),
	}

	cells := Calendar(requests, "emp-1", 2025, time.March)
	assert.Empty(t, cells)
}

func TestCalendar_SingleDayInclusive(t *testing.T) {
	requests := []leave.Request{
		request("emp-1", leave.TypeOther, leave.RequestStatusPending, date(2025, time.March, 20), date(2025, time.March, 20), 1),
	}

	cells := Calendar(requests, "emp-1", 2025, time.March)
	assert.Len(t, cells, 1)
	assert.Equal(t, CellPending, cells["2025-03-20"])
}
