package leave

import (
	"time"

	"github.com/kantorhq/hrms-backend-go/internal/domain/leave"
	"github.com/shopspring/decimal"
)

// The quota ledger is pure: every function here derives its answer from the
// request slice it is handed and touches no store.

// TouchesYear reports whether a request counts toward a year: either
// endpoint landing in the year is enough. A request spanning a year
// boundary is never split proportionally.
func TouchesYear(req leave.Request, year int) bool {
	return req.StartDate.Year() == year || req.EndDate.Year() == year
}

// UsedDays sums DaysCount over the employee's requests of the given type
// touching the year, counting statuses per the policy. DaysCount is taken
// as claimed; fractional half-days are summed exactly.
func UsedDays(requests []leave.Request, employeeID string, typ leave.Type, year int, policy leave.CountingPolicy) float64 {
	sum := decimal.Zero
	for _, req := range requests {
		if req.EmployeeID != employeeID || req.Type != typ {
			continue
		}
		if !TouchesYear(req, year) {
			continue
		}
		if !policy.Counts(req.Status) {
			continue
		}
		sum = sum.Add(decimal.NewFromFloat(req.DaysCount))
	}
	return sum.InexactFloat64()
}

// AvailableDays clamps ceiling minus used at zero; a balance is never
// reported negative even when pending requests oversubscribe the quota.
func AvailableDays(used, ceiling float64) float64 {
	available := decimal.NewFromFloat(ceiling).Sub(decimal.NewFromFloat(used))
	if available.IsNegative() {
		return 0
	}
	return available.InexactFloat64()
}

// Balances produces one row per leave type for the employee and year under
// the given counting policy.
func Balances(requests []leave.Request, employeeID string, year int, ceilings leave.QuotaCeilings, policy leave.CountingPolicy) []leave.TypeBalance {
	balances := make([]leave.TypeBalance, 0, len(leave.Types))
	for _, typ := range leave.Types {
		ceiling := ceilings.Ceiling(typ)
		used := UsedDays(requests, employeeID, typ, year, policy)
		balances = append(balances, leave.TypeBalance{
			LeaveType:     string(typ),
			Label:         typ.Label(),
			Ceiling:       ceiling,
			UsedDays:      used,
			AvailableDays: AvailableDays(used, ceiling),
		})
	}
	return balances
}

// CalendarStatus is a display cell on the leave calendar.
type CalendarStatus string

const (
	CellApproved CalendarStatus = "APPROVED"
	CellPending  CalendarStatus = "PENDING"
)

// Calendar walks every APPROVED or PENDING request of the employee day by
// day, inclusive of both endpoints, and emits the days landing in the
// queried month. APPROVED strictly dominates PENDING on a shared date;
// rejected requests never appear. Keys are "YYYY-MM-DD".
func Calendar(requests []leave.Request, employeeID string, year int, month time.Month) map[string]CalendarStatus {
	cells := make(map[string]CalendarStatus)

	for _, req := range requests {
		if req.EmployeeID != employeeID {
			continue
		}

		var status CalendarStatus
		switch req.Status {
		case leave.RequestStatusApproved:
			status = CellApproved
		case leave.RequestStatusPending:
			status = CellPending
		default:
			continue
		}

		for d := req.StartDate; !d.After(req.EndDate); d = d.AddDate(0, 0, 1) {
			if d.Year() != year || d.Month() != month {
				continue
			}
			key := d.Format("2006-01-02")
			if cells[key] == CellApproved {
				continue
			}
			cells[key] = status
		}
	}

	return cells
}
