package finance

import (
	"sort"
	"time"

	"github.com/mayordomia/mayordomia-go/internal/domain"
)

// ExpenseScope selects which expense transactions count toward the
// expense total. The product history carries two definitions; the scope
// is an explicit parameter so neither is silently assumed.
type ExpenseScope string

const (
	// ExpenseScopeAll counts every EXPENSE transaction.
	ExpenseScopeAll ExpenseScope = "all"
	// ExpenseScopeCashOnly counts only EXPENSE transactions attributed
	// to a CASH payment method.
	ExpenseScopeCashOnly ExpenseScope = "cash_only"
)

// TotalIncome sums the amounts of all INCOME transactions.
func TotalIncome(txs []domain.Transaction) float64 {
	var total float64
	for _, tx := range txs {
		if tx.Type == domain.TransactionIncome {
			total += tx.Amount
		}
	}
	return total
}

// TotalExpense sums EXPENSE transaction amounts under the given scope.
// The methods slice is only consulted for ExpenseScopeCashOnly.
func TotalExpense(txs []domain.Transaction, scope ExpenseScope, methods []domain.PaymentMethod) float64 {
	cashIDs := map[string]bool{}
	if scope == ExpenseScopeCashOnly {
		for _, m := range methods {
			if m.Type == domain.MethodCash {
				cashIDs[m.ID] = true
			}
		}
	}
	var total float64
	for _, tx := range txs {
		if tx.Type != domain.TransactionExpense {
			continue
		}
		if scope == ExpenseScopeCashOnly && !cashIDs[tx.PaymentMethodID] {
			continue
		}
		total += tx.Amount
	}
	return total
}

// Balance is total income minus total expense under the given scope.
func Balance(txs []domain.Transaction, scope ExpenseScope, methods []domain.PaymentMethod) float64 {
	return TotalIncome(txs) - TotalExpense(txs, scope, methods)
}

// TotalPendingFixedMonthly sums the fixed expenses not yet paid this
// month.
func TotalPendingFixedMonthly(fixed []domain.FixedExpense, now time.Time) float64 {
	var total float64
	for _, f := range fixed {
		if !PaidThisMonth(f.LastPaidDate, now) {
			total += f.Amount
		}
	}
	return total
}

// TotalDebt sums the current balances of all debts.
func TotalDebt(debts []domain.Debt) float64 {
	var total float64
	for _, d := range debts {
		total += d.CurrentBalance
	}
	return total
}

// ExpenseByCategory groups EXPENSE transactions by category label,
// merging duplicates additively. The result is sorted by category name
// so repeated calls over the same snapshot are identical.
func ExpenseByCategory(txs []domain.Transaction) []domain.CategoryTotal {
	byCat := map[string]float64{}
	for _, tx := range txs {
		if tx.Type == domain.TransactionExpense {
			byCat[tx.Category] += tx.Amount
		}
	}
	out := make([]domain.CategoryTotal, 0, len(byCat))
	for cat, total := range byCat {
		out = append(out, domain.CategoryTotal{Category: cat, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

// BalancePerPaymentMethod computes, for each method, income minus
// expense of the transactions tagged with it. Transactions with no
// matching method are excluded from every balance; they are not
// attributed to CASH by default.
func BalancePerPaymentMethod(methods []domain.PaymentMethod, txs []domain.Transaction) []domain.MethodBalance {
	out := make([]domain.MethodBalance, 0, len(methods))
	for _, m := range methods {
		var balance float64
		for _, tx := range txs {
			if tx.PaymentMethodID != m.ID {
				continue
			}
			switch tx.Type {
			case domain.TransactionIncome:
				balance += tx.Amount
			case domain.TransactionExpense:
				balance -= tx.Amount
			}
		}
		out = append(out, domain.MethodBalance{
			MethodID:   m.ID,
			MethodName: m.Name,
			MethodType: m.Type,
			Balance:    balance,
		})
	}
	return out
}
