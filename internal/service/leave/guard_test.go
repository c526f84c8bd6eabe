package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kantorhq/hrms-backend-go/internal/domain/leave"
)

func TestCanApprove_DeniesOverQuota(t *testing.T) {
	ceilings := leave.DefaultQuotaCeilings()

	// Three approved stretches totaling 10 of the 12 annual days.
	others := []leave.Request{
		request("emp-1", leave.TypeAnnual, leave.RequestStatusApproved, date(2025, time.February, 3), date(2025, time.February, 7), 5),
		request("emp-1", leave.TypeAnnual, leave.RequestStatusApproved, date(2025, time.May, 12), date(2025, time.May, 14), 3),
		request("emp-1", leave.TypeAnnual, leave.RequestStatusApproved, date(2025, time.August, 4), date(2025, time.August, 5), 2),
	}

	pending := request("emp-1", leave.TypeAnnual, leave.RequestStatusPending, date(2025, time.November, 3), date(2025, time.November, 5), 3)
	pending.ID = "pending-over"

	decision := CanApprove(pending, others, ceilings)
	assert.False(t, decision.Allowed)
	assert.Equal(t, 10.0, decision.Used)
	assert.Equal(t, 12.0, decision.Ceiling)
	assert.Contains(t, decision.Reason, "10/12")
	assert.Contains(t, decision.Reason, "Annual Leave")
}

func TestCanApprove_ExactFitAllowed(t *testing.T) {
	ceilings := leave.DefaultQuotaCeilings()
	others := []leave.Request{
		request("emp-1", leave.TypeAnnual, leave.RequestStatusApproved, date(2025, time.February, 3), date(2025, time.February, 12), 10),
	}

	pending := request("emp-1", leave.TypeAnnual, leave.RequestStatusPending, date(2025, time.November, 3), date(2025, time.November, 4), 2)
	pending.ID = "pending-fit"

	decision := CanApprove(pending, others, ceilings)
	assert.True(t, decision.Allowed)
	assert.Equal(t, 10.0, decision.Used)
	assert.Empty(t, decision.Reason)
}

func TestCanApprove_PendingDoesNotBlock(t *testing.T) {
	ceilings := leave.DefaultQuotaCeilings()

	// 11 pending days in flight must not reserve quota against approval.
	others := []leave.Request{
		request("emp-1", leave.TypeAnnual, leave.RequestStatusPending, date(2025, time.February, 3), date(2025, time.February, 13), 11),
	}

	pending := request("emp-1", leave.TypeAnnual, leave.RequestStatusPending, date(2025, time.November, 3), date(2025, time.November, 7), 5)
	pending.ID = "pending-new"

	decision := CanApprove(pending, others, ceilings)
	assert.True(t, decision.Allowed)
	assert.Equal(t, 0.0, decision.Used)
}

func TestCanApprove_ExcludesSelf(t *testing.T) {
	ceilings := leave.DefaultQuotaCeilings()

	self := request("emp-1", leave.TypeAnnual, leave.RequestStatusApproved, date(2025, time.March, 3), date(2025, time.March, 14), 12)
	self.ID = "self"

	decision := CanApprove(self, []leave.Request{self}, ceilings)
	assert.True(t, decision.Allowed)
	assert.Equal(t, 0.0, decision.Used)
}

func TestCanApprove_UncappedType(t *testing.T) {
	ceilings := leave.QuotaCeilings{leave.TypeUnpaid: 0}

	pending := request("emp-1", leave.TypeUnpaid, leave.RequestStatusPending, date(2025, time.March, 3), date(2025, time.April, 30), 40)
	pending.ID = "pending-uncapped"

	decision := CanApprove(pending, nil, ceilings)
	assert.True(t, decision.Allowed)
}

func TestCanApprove_OtherTypeAndEmployeeIgnored(t *testing.T) {
	ceilings := leave.DefaultQuotaCeilings()
	others := []leave.Request{
		request("emp-1", leave.TypeSick, leave.RequestStatusApproved, date(2025, time.February, 3), date(2025, time.February, 12), 10),
		request("emp-2", leave.TypeAnnual, leave.RequestStatusApproved, date(2025, time.February, 3), date(2025, time.February, 14), 12),
	}

	pending := request("emp-1", leave.TypeAnnual, leave.RequestStatusPending, date(2025, time.November, 3), date(2025, time.November, 14), 12)
	pending.ID = "pending-clean"

	decision := CanApprove(pending, others, ceilings)
	assert.True(t, decision.Allowed)
	assert.Equal(t, 0.0, decision.Used)
}

func TestCanApprove_YearScopedToStartDate(t *testing.T) {
	ceilings := leave.DefaultQuotaCeilings()

	// Last year's usage is irrelevant to a request starting this year.
	others := []leave.Request{
		request("emp-1", leave.TypeAnnual, leave.RequestStatusApproved, date(2024, time.February, 3), date(2024, time.February, 14), 12),
	}

	pending := request("emp-1", leave.TypeAnnual, leave.RequestStatusPending, date(2025, time.March, 3), date(2025, time.March, 7), 5)
	pending.ID = "pending-newyear"

	decision := CanApprove(pending, others, ceilings)
	assert.True(t, decision.Allowed)
	assert.Equal(t, 0.0, decision.Used)
}

func TestCanApprove_YearSpanChecksBothYears(t *testing.T) {
	ceilings := leave.DefaultQuotaCeilings()

	// The start year is empty but the end year is already full; a request
	// crossing into it charges all four days there and must be denied.
	others := []leave.Request{
		request("emp-1", leave.TypeAnnual, leave.RequestStatusApproved, date(2026, time.March, 2), date(2026, time.March, 13), 12),
	}

	pending := request("emp-1", leave.TypeAnnual, leave.RequestStatusPending, date(2025, time.December, 30), date(2026, time.January, 2), 4)
	pending.ID = "pending-span"

	decision := CanApprove(pending, others, ceilings)
	assert.False(t, decision.Allowed)
	assert.Equal(t, 12.0, decision.Used)
	assert.Contains(t, decision.Reason, "12/12")
}

func TestCanApprove_YearSpanAllowedWhenBothYearsFit(t *testing.T) {
	ceilings := leave.DefaultQuotaCeilings()

	others := []leave.Request{
		request("emp-1", leave.TypeAnnual, leave.RequestStatusApproved, date(2025, time.June, 2), date(2025, time.June, 11), 10),
		request("emp-1", leave.TypeAnnual, leave.RequestStatusApproved, date(2026, time.March, 2), date(2026, time.March, 6), 5),
	}

	pending := request("emp-1", leave.TypeAnnual, leave.RequestStatusPending, date(2025, time.December, 30), date(2026, time.January, 2), 2)
	pending.ID = "pending-span-fit"

	decision := CanApprove(pending, others, ceilings)
	assert.True(t, decision.Allowed)
	// The tighter year's usage is what the decision reports.
	assert.Equal(t, 10.0, decision.Used)
}

func TestCanApprove_HalfDayArithmetic(t *testing.T) {
	ceilings := leave.QuotaCeilings{leave.TypeAnnual: 2}
	others := []leave.Request{
		request("emp-1", leave.TypeAnnual, leave.RequestStatusApproved, date(2025, time.March, 3), date(2025, time.March, 3), 0.5),
		request("emp-1", leave.TypeAnnual, leave.RequestStatusApproved, date(2025, time.March, 10), date(2025, time.March, 10), 0.5),
	}

	fits := request("emp-1", leave.TypeAnnual, leave.RequestStatusPending, date(2025, time.April, 1), date(2025, time.April, 1), 1)
	fits.ID = "fits"
	assert.True(t, CanApprove(fits, others, ceilings).Allowed)

	over := request("emp-1", leave.TypeAnnual, leave.RequestStatusPending, date(2025, time.April, 1), date(2025, time.April, 2), 1.5)
	over.ID = "over"
	decision := CanApprove(over, others, ceilings)
	assert.False(t, decision.Allowed)
	assert.Contains(t, decision.Reason, "1/2")
}
