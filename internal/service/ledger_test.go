package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/mayordomia/mayordomia-go/internal/domain"
	"github.com/mayordomia/mayordomia-go/internal/finance"
	"github.com/mayordomia/mayordomia-go/internal/infra/cache"
	"github.com/mayordomia/mayordomia-go/internal/infra/observability"
	"github.com/mayordomia/mayordomia-go/internal/service"
)

const testUser = "user-1"

var testNow = time.Date(2025, time.March, 15, 9, 0, 0, 0, time.UTC)

func newLedger(store *fakeStore) *service.LedgerService {
	return service.NewLedgerService(
		store,
		cache.New[[]domain.PaymentMethod](time.Minute),
		finance.ExpenseScopeAll,
		observability.NewMetrics(),
		zap.NewNop(),
	).WithClock(func() time.Time { return testNow })
}

func TestMarkFixedExpensePaid_FullCommit(t *testing.T) {
	store := newFakeStore()
	store.fixed = []domain.FixedExpense{
		{ID: "fe-1", Description: "Alquiler", Amount: 800, Category: "Vivienda", DayOfMonth: 5},
	}
	svc := newLedger(store)

	result, err := svc.MarkFixedExpensePaid(context.Background(), testUser, "fe-1")
	if err != nil {
		t.Fatalf("MarkFixedExpensePaid: %v", err)
	}
	if result.Phase != domain.CommitFull {
		t.Errorf("phase = %s, want FULL", result.Phase)
	}
	if len(store.txs) != 1 {
		t.Fatalf("expected 1 settlement transaction, got %d", len(store.txs))
	}

	tx := store.txs[0]
	if tx.Description != "Pago: Alquiler" || tx.Amount != 800 || tx.Type != domain.TransactionExpense {
		t.Errorf("unexpected settlement transaction: %+v", tx)
	}
	if store.fixed[0].LastTransactionID != tx.ID {
		t.Errorf("last_transaction_id = %q, want %q", store.fixed[0].LastTransactionID, tx.ID)
	}
	if !finance.PaidThisMonth(store.fixed[0].LastPaidDate, testNow) {
		t.Error("expense not marked paid this month")
	}
}

func TestMarkFixedExpensePaid_PartialCommit(t *testing.T) {
	store := newFakeStore()
	store.fixed = []domain.FixedExpense{
		{ID: "fe-1", Description: "Luz", Amount: 60, Category: "Servicios", DayOfMonth: 10},
	}
	store.failUpdateFixedExpense = errors.New("patch failed")
	svc := newLedger(store)

	result, err := svc.MarkFixedExpensePaid(context.Background(), testUser, "fe-1")
	if err == nil {
		t.Fatal("expected error from failed patch")
	}
	if result.Phase != domain.CommitPartial {
		t.Errorf("phase = %s, want PARTIAL", result.Phase)
	}
	if result.OrphanTransactionID == "" {
		t.Error("expected orphan transaction id")
	}
	// The orphan is observable in the store.
	if len(store.txs) != 1 || store.txs[0].ID != result.OrphanTransactionID {
		t.Errorf("orphan transaction not left behind: %+v", store.txs)
	}
	if store.fixed[0].LastPaidDate != nil {
		t.Error("expense must remain unpaid after partial commit")
	}
}

func TestMarkFixedExpensePaid_AlreadyPaid(t *testing.T) {
	paid := testNow.AddDate(0, 0, -2)
	store := newFakeStore()
	store.fixed = []domain.FixedExpense{
		{ID: "fe-1", Description: "Internet", Amount: 40, DayOfMonth: 3, LastPaidDate: &paid},
	}
	svc := newLedger(store)

	_, err := svc.MarkFixedExpensePaid(context.Background(), testUser, "fe-1")
	var verr *domain.ErrValidation
	if !errors.As(err, &verr) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestUnmarkFixedExpensePaid_DeletesLinkedTransaction(t *testing.T) {
	store := newFakeStore()
	svc := newLedger(store)

	store.fixed = []domain.FixedExpense{
		{ID: "fe-1", Description: "Alquiler", Amount: 800, Category: "Vivienda", DayOfMonth: 5},
	}
	if _, err := svc.MarkFixedExpensePaid(context.Background(), testUser, "fe-1"); err != nil {
		t.Fatalf("mark paid: %v", err)
	}
	// An unrelated transaction must survive the unmark.
	store.txs = append(store.txs, domain.Transaction{ID: "tx-other", Description: "Comida", Amount: 30, Type: domain.TransactionExpense})

	result, err := svc.UnmarkFixedExpensePaid(context.Background(), testUser, "fe-1")
	if err != nil {
		t.Fatalf("UnmarkFixedExpensePaid: %v", err)
	}
	if result.Phase != domain.CommitFull {
		t.Errorf("phase = %s, want FULL", result.Phase)
	}
	if len(store.txs) != 1 || store.txs[0].ID != "tx-other" {
		t.Errorf("expected only the unrelated transaction to remain, got %+v", store.txs)
	}
	if store.fixed[0].LastPaidDate != nil || store.fixed[0].LastTransactionID != "" {
		t.Errorf("paid fields not cleared: %+v", store.fixed[0])
	}
}

func TestPayDebt_FullCommitClampsBalance(t *testing.T) {
	store := newFakeStore()
	store.debts = []domain.Debt{
		{ID: "debt-1", Name: "Tarjeta", TotalAmount: 1000, CurrentBalance: 80, DayOfMonth: 20},
	}
	svc := newLedger(store)

	result, err := svc.PayDebt(context.Background(), testUser, "debt-1", 100, "pm-cash")
	if err != nil {
		t.Fatalf("PayDebt: %v", err)
	}
	if result.Phase != domain.CommitFull {
		t.Errorf("phase = %s, want FULL", result.Phase)
	}
	if store.debts[0].CurrentBalance != 0 {
		t.Errorf("balance = %v, want clamped to 0", store.debts[0].CurrentBalance)
	}
	if len(store.txs) != 1 || store.txs[0].Description != "Pago deuda: Tarjeta" || store.txs[0].Category != "Deudas" {
		t.Errorf("unexpected payment transaction: %+v", store.txs)
	}
}

func TestPayDebt_PartialCommit(t *testing.T) {
	store := newFakeStore()
	store.debts = []domain.Debt{
		{ID: "debt-1", Name: "Préstamo", TotalAmount: 2000, CurrentBalance: 500, DayOfMonth: 2},
	}
	store.failUpdateDebt = errors.New("patch failed")
	svc := newLedger(store)

	result, err := svc.PayDebt(context.Background(), testUser, "debt-1", 50, "")
	if err == nil {
		t.Fatal("expected error from failed patch")
	}
	if result.Phase != domain.CommitPartial || result.OrphanTransactionID == "" {
		t.Errorf("unexpected result: %+v", result)
	}
	if store.debts[0].CurrentBalance != 500 {
		t.Errorf("balance changed despite failed patch: %v", store.debts[0].CurrentBalance)
	}
}

func TestCreateTransaction_AutoRegistersReminder(t *testing.T) {
	store := newFakeStore()
	store.reminders = []domain.IncomeReminder{
		{ID: "rem-1", Description: "Salario", DayOfMonth: 28},
		{ID: "rem-2", Description: "Renta", DayOfMonth: 1},
	}
	svc := newLedger(store)

	_, err := svc.CreateTransaction(context.Background(), testUser, &domain.Transaction{
		Description: "Depósito salario marzo",
		Amount:      1500,
		Type:        domain.TransactionIncome,
		Category:    "Salario",
	})
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}

	if !finance.PaidThisMonth(store.reminders[0].LastRegisteredDate, testNow) {
		t.Error("matching reminder not registered")
	}
	if store.reminders[1].LastRegisteredDate != nil {
		t.Error("non-matching reminder must stay unregistered")
	}
}

func TestCreateTransaction_Validation(t *testing.T) {
	svc := newLedger(newFakeStore())

	cases := []domain.Transaction{
		{Description: "", Amount: 10, Type: domain.TransactionExpense},
		{Description: "x", Amount: 0, Type: domain.TransactionExpense},
		{Description: "x", Amount: 10, Type: "TRANSFER"},
	}
	for _, tx := range cases {
		if _, err := svc.CreateTransaction(context.Background(), testUser, &tx); err == nil {
			t.Errorf("expected validation error for %+v", tx)
		}
	}
}

func TestListPaymentMethods_EnsuresCash(t *testing.T) {
	store := newFakeStore()
	store.methods = []domain.PaymentMethod{
		{ID: "pm-card", Name: "Visa", Type: domain.MethodCard},
	}
	svc := newLedger(store)

	methods, err := svc.ListPaymentMethods(context.Background(), testUser)
	if err != nil {
		t.Fatalf("ListPaymentMethods: %v", err)
	}
	cash := 0
	for _, m := range methods {
		if m.Type == domain.MethodCash {
			cash++
			if m.Name != "Efectivo" {
				t.Errorf("auto-created cash method name = %q", m.Name)
			}
		}
	}
	if cash != 1 {
		t.Errorf("expected exactly 1 CASH method, got %d", cash)
	}
}

func TestDeletePaymentMethod_LastCashRejected(t *testing.T) {
	store := newFakeStore()
	store.methods = []domain.PaymentMethod{
		{ID: "pm-cash", Name: "Efectivo", Type: domain.MethodCash},
		{ID: "pm-card", Name: "Visa", Type: domain.MethodCard},
	}
	svc := newLedger(store)

	err := svc.DeletePaymentMethod(context.Background(), testUser, "pm-cash")
	var conflict *domain.ErrConflict
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	// A non-cash method deletes fine.
	if err := svc.DeletePaymentMethod(context.Background(), testUser, "pm-card"); err != nil {
		t.Fatalf("DeletePaymentMethod(card): %v", err)
	}
}

func TestSummary_Aggregates(t *testing.T) {
	store := newFakeStore()
	store.methods = []domain.PaymentMethod{
		{ID: "pm-cash", Name: "Efectivo", Type: domain.MethodCash},
		{ID: "pm-card", Name: "Visa", Type: domain.MethodCard},
	}
	store.txs = []domain.Transaction{
		{ID: "t1", Description: "Salario", Amount: 500, Type: domain.TransactionIncome, Category: "Salario", PaymentMethodID: "pm-card", Date: testNow},
		{ID: "t2", Description: "Mercado", Amount: 200, Type: domain.TransactionExpense, Category: "Alimentación", PaymentMethodID: "pm-cash", Date: testNow},
		{ID: "t3", Description: "Regalo", Amount: 50, Type: domain.TransactionExpense, Category: "Varios", Date: testNow},
	}
	store.fixed = []domain.FixedExpense{
		{ID: "fe-1", Description: "Alquiler", Amount: 300, DayOfMonth: 5},
	}
	store.debts = []domain.Debt{
		{ID: "d-1", Name: "Tarjeta", TotalAmount: 1000, CurrentBalance: 400, DayOfMonth: 20},
	}
	svc := newLedger(store)

	sum, err := svc.Summary(context.Background(), testUser)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if sum.TotalIncome != 500 || sum.TotalExpense != 250 || sum.Balance != 250 {
		t.Errorf("totals: %+v", sum)
	}
	if sum.TotalPendingFixed != 300 || sum.TotalDebt != 400 {
		t.Errorf("pending/debt: %+v", sum)
	}
	balances := map[string]float64{}
	for _, b := range sum.MethodBalances {
		balances[b.MethodID] = b.Balance
	}
	if balances["pm-card"] != 500 || balances["pm-cash"] != -200 {
		t.Errorf("method balances: %v (untagged must count nowhere)", balances)
	}
}

func TestSaveBudget_ValidatesIncomeOnly(t *testing.T) {
	store := newFakeStore()
	svc := newLedger(store)

	_, err := svc.SaveBudget(context.Background(), testUser, &service.BudgetSaveRequest{
		Year: 2025, Month: 3,
		EstimatedIncome: "oops",
		Allocations:     map[string]string{"Vivienda": "400"},
	})
	var verr *domain.ErrValidation
	if !errors.As(err, &verr) {
		t.Fatalf("expected ErrValidation for income, got %v", err)
	}

	saved, err := svc.SaveBudget(context.Background(), testUser, &service.BudgetSaveRequest{
		Year: 2025, Month: 3,
		EstimatedIncome: "1000",
		Allocations:     map[string]string{"Vivienda": "400", "Ahorro": "abc"},
	})
	if err != nil {
		t.Fatalf("SaveBudget: %v", err)
	}
	if saved.ID != "2025-03" {
		t.Errorf("budget id = %q", saved.ID)
	}
	if saved.Allocations["Vivienda"] != 400 || saved.Allocations["Ahorro"] != 0 {
		t.Errorf("allocations: %v", saved.Allocations)
	}
	if len(saved.Allocations) != 2 {
		t.Errorf("expected wholesale replacement with 2 categories, got %v", saved.Allocations)
	}
}

func TestAlerts_DerivedFromStore(t *testing.T) {
	store := newFakeStore()
	store.fixed = []domain.FixedExpense{
		{ID: "fe-1", Description: "Alquiler", Amount: 800, DayOfMonth: 5},
	}
	store.reminders = []domain.IncomeReminder{
		{ID: "rem-1", Description: "Salario", DayOfMonth: 15},
	}
	svc := newLedger(store)

	alerts, err := svc.Alerts(context.Background(), testUser)
	if err != nil {
		t.Fatalf("Alerts: %v", err)
	}
	if len(alerts) != 2 {
		t.Fatalf("expected 2 alerts, got %d", len(alerts))
	}
	if alerts[0].SourceType != domain.AlertIncome {
		t.Errorf("income alert must sort first, got %+v", alerts[0])
	}
}
