package leave

import (
	"fmt"

	"github.com/kantorhq/hrms-backend-go/internal/domain/leave"
	"github.com/shopspring/decimal"
)

// Decision is the approval guard's outcome. Denial is a normal result the
// caller must check, not an error thrown through the stack.
type Decision struct {
	Allowed bool
	Used    float64
	Ceiling float64
	Reason  string
}

// CanApprove gates the PENDING -> APPROVED transition on quota. Only
// already-committed leave blocks an approval, so used days are computed
// under the approved-only policy, excluding the request under consideration
// itself. A request charges its full day count to every calendar year its
// endpoints touch, so a year-spanning request must fit under the ceiling in
// both years. A ceiling of zero means the type is uncapped.
//
// The check is race-free only when the caller re-reads the approved set and
// flips the status inside one transaction; two concurrent approvers reading
// the same committed state could otherwise both pass individually.
func CanApprove(req leave.Request, others []leave.Request, ceilings leave.QuotaCeilings) Decision {
	ceiling := ceilings.Ceiling(req.Type)
	if ceiling <= 0 {
		return Decision{Allowed: true, Ceiling: ceiling}
	}

	decision := Decision{Allowed: true, Ceiling: ceiling}
	for _, year := range RequestYears(req) {
		used := approvedDaysInYear(req, others, year)

		total := used.Add(decimal.NewFromFloat(req.DaysCount))
		if total.GreaterThan(decimal.NewFromFloat(ceiling)) {
			return Decision{
				Allowed: false,
				Used:    used.InexactFloat64(),
				Ceiling: ceiling,
				Reason: fmt.Sprintf("%s quota exceeded: %s/%s days already used, request adds %s more",
					req.Type.Label(),
					used.String(),
					decimal.NewFromFloat(ceiling).String(),
					decimal.NewFromFloat(req.DaysCount).String(),
				),
			}
		}

		if u := used.InexactFloat64(); u > decision.Used {
			decision.Used = u
		}
	}

	return decision
}

// RequestYears lists the calendar years a request's endpoints fall in,
// start year first.
func RequestYears(req leave.Request) []int {
	years := []int{req.StartDate.Year()}
	if y := req.EndDate.Year(); y != years[0] {
		years = append(years, y)
	}
	return years
}

func approvedDaysInYear(req leave.Request, others []leave.Request, year int) decimal.Decimal {
	used := decimal.Zero
	for _, other := range others {
		if other.ID == req.ID {
			continue
		}
		if other.EmployeeID != req.EmployeeID || other.Type != req.Type {
			continue
		}
		if !TouchesYear(other, year) {
			continue
		}
		if other.Status != leave.RequestStatusApproved {
			continue
		}
		used = used.Add(decimal.NewFromFloat(other.DaysCount))
	}
	return used
}
