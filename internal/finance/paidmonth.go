// Package finance holds the pure financial derivations: the
// paid-this-month predicate, the aggregate reducers, the reminder
// builder and the income-registration heuristic. Everything here is
// side-effect free and operates on in-memory snapshots; callers supply
// "now" explicitly (services inject time.Now in the server's local
// zone).
package finance

import "time"

// PaidThisMonth reports whether last falls in the same calendar month
// and year as now. A nil timestamp means the action never happened.
func PaidThisMonth(last *time.Time, now time.Time) bool {
	if last == nil {
		return false
	}
	return last.Month() == now.Month() && last.Year() == now.Year()
}
