package finance

import (
	"strings"

	"github.com/mayordomia/mayordomia-go/internal/domain"
)

// MatchesIncomeReminder reports whether a newly created INCOME
// transaction should mark the reminder as registered for the month.
// The match is a named heuristic: case-insensitive substring
// containment of the reminder's description in the transaction's, or
// the transaction landing on the reminder's scheduled day. Kept as a
// standalone function so it can later be swapped for exact-id linking
// without touching callers.
func MatchesIncomeReminder(tx domain.Transaction, r domain.IncomeReminder) bool {
	if tx.Type != domain.TransactionIncome {
		return false
	}
	if r.Description != "" &&
		strings.Contains(strings.ToLower(tx.Description), strings.ToLower(r.Description)) {
		return true
	}
	return tx.Date.Day() == r.DayOfMonth
}
