package finance_test

import (
	"math"
	"testing"
	"time"

	"github.com/mayordomia/mayordomia-go/internal/domain"
	"github.com/mayordomia/mayordomia-go/internal/finance"
)

func tx(typ string, amount float64, category, methodID string) domain.Transaction {
	return domain.Transaction{
		Type:            typ,
		Amount:          amount,
		Category:        category,
		PaymentMethodID: methodID,
		Date:            time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
	}
}

func TestTotalsAndBalance(t *testing.T) {
	txs := []domain.Transaction{
		tx(domain.TransactionIncome, 1500, "Salario", ""),
		tx(domain.TransactionIncome, 250.50, "Negocio", ""),
		tx(domain.TransactionExpense, 400, "Vivienda", ""),
		tx(domain.TransactionExpense, 99.50, "Alimentación", ""),
	}

	income := finance.TotalIncome(txs)
	expense := finance.TotalExpense(txs, finance.ExpenseScopeAll, nil)
	balance := finance.Balance(txs, finance.ExpenseScopeAll, nil)

	if income != 1750.50 {
		t.Errorf("TotalIncome = %v, want 1750.50", income)
	}
	if expense != 499.50 {
		t.Errorf("TotalExpense = %v, want 499.50", expense)
	}
	if balance != income-expense {
		t.Errorf("Balance = %v, want %v", balance, income-expense)
	}
}

func TestTotalExpenseCashOnlyScope(t *testing.T) {
	methods := []domain.PaymentMethod{
		{ID: "m-cash", Name: "Efectivo", Type: domain.MethodCash},
		{ID: "m-card", Name: "Visa", Type: domain.MethodCard},
	}
	txs := []domain.Transaction{
		tx(domain.TransactionExpense, 100, "Varios", "m-cash"),
		tx(domain.TransactionExpense, 200, "Varios", "m-card"),
		tx(domain.TransactionExpense, 50, "Varios", ""), // untagged
	}

	all := finance.TotalExpense(txs, finance.ExpenseScopeAll, methods)
	cash := finance.TotalExpense(txs, finance.ExpenseScopeCashOnly, methods)

	if all != 350 {
		t.Errorf("all scope = %v, want 350", all)
	}
	if cash != 100 {
		t.Errorf("cash_only scope = %v, want 100", cash)
	}
}

func TestTotalPendingFixedMonthly(t *testing.T) {
	now := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)
	paid := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)
	stale := time.Date(2025, time.February, 3, 0, 0, 0, 0, time.UTC)

	fixed := []domain.FixedExpense{
		{Description: "Alquiler", Amount: 800, LastPaidDate: &paid},
		{Description: "Luz", Amount: 60, LastPaidDate: &stale},
		{Description: "Internet", Amount: 40},
	}

	got := finance.TotalPendingFixedMonthly(fixed, now)
	if got != 100 {
		t.Errorf("TotalPendingFixedMonthly = %v, want 100", got)
	}
}

func TestExpenseByCategoryMergesAndMatchesTotal(t *testing.T) {
	txs := []domain.Transaction{
		tx(domain.TransactionExpense, 100, "Vivienda", ""),
		tx(domain.TransactionExpense, 50, "Alimentación", ""),
		tx(domain.TransactionExpense, 25, "Vivienda", ""),
		tx(domain.TransactionIncome, 999, "Salario", ""),
	}

	byCat := finance.ExpenseByCategory(txs)
	if len(byCat) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(byCat))
	}

	var sum float64
	totals := map[string]float64{}
	for _, c := range byCat {
		totals[c.Category] = c.Total
		sum += c.Total
	}
	if totals["Vivienda"] != 125 {
		t.Errorf("Vivienda = %v, want 125", totals["Vivienda"])
	}
	if totals["Alimentación"] != 50 {
		t.Errorf("Alimentación = %v, want 50", totals["Alimentación"])
	}

	total := finance.TotalExpense(txs, finance.ExpenseScopeAll, nil)
	if math.Abs(sum-total) > 1e-9 {
		t.Errorf("category sum %v != total expense %v", sum, total)
	}
}

func TestBalancePerPaymentMethodExcludesUntagged(t *testing.T) {
	methods := []domain.PaymentMethod{
		{ID: "m-cash", Name: "Efectivo", Type: domain.MethodCash},
		{ID: "m-card", Name: "Visa", Type: domain.MethodCard},
	}
	txs := []domain.Transaction{
		tx(domain.TransactionIncome, 500, "Salario", "m-card"),
		tx(domain.TransactionExpense, 200, "Varios", "m-cash"),
		tx(domain.TransactionExpense, 75, "Varios", ""), // no method, counts nowhere
	}

	balances := finance.BalancePerPaymentMethod(methods, txs)
	if len(balances) != 2 {
		t.Fatalf("expected 2 balances, got %d", len(balances))
	}
	byID := map[string]float64{}
	for _, b := range balances {
		byID[b.MethodID] = b.Balance
	}
	if byID["m-card"] != 500 {
		t.Errorf("card balance = %v, want 500", byID["m-card"])
	}
	if byID["m-cash"] != -200 {
		t.Errorf("cash balance = %v, want -200", byID["m-cash"])
	}
}
