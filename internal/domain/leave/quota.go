package leave

// QuotaCeilings maps each leave type to its annual day ceiling. This is the
// single shared table consumed by both the quota ledger and the approval
// guard; the admin and employee call sites must never carry their own copy.
// A ceiling of 0 (or a missing entry) means the type is uncapped.
type QuotaCeilings map[Type]float64

// DefaultQuotaCeilings returns the standard annual ceilings.
func DefaultQuotaCeilings() QuotaCeilings {
	return QuotaCeilings{
		TypeAnnual:    12,
		TypeSick:      10,
		TypeMarriage:  3,
		TypeMaternity: 5,
		TypeUnpaid:    5,
		TypeOther:     5,
	}
}

// Ceiling returns the ceiling for a type, 0 when uncapped or unknown.
func (q QuotaCeilings) Ceiling(t Type) float64 {
	return q[t]
}

// CountingPolicy selects which request statuses contribute to "used days".
// Both policies are live in the product: the approval-time check counts only
// committed leave, while the employee balance view also reserves pending
// requests. They must stay explicit at the call site.
type CountingPolicy int

const (
	// CountApprovedOnly sums APPROVED requests. Used by the approval guard.
	CountApprovedOnly CountingPolicy = iota

	// CountApprovedAndPending also sums PENDING requests. Used by the
	// employee-facing balance display.
	CountApprovedAndPending
)

// Counts reports whether a request status contributes under the policy.
func (p CountingPolicy) Counts(s RequestStatus) bool {
	switch p {
	case CountApprovedOnly:
		return s == RequestStatusApproved
	case CountApprovedAndPending:
		return s == RequestStatusApproved || s == RequestStatusPending
	}
	return false
}
