package service_test

import (
	"context"
	"fmt"
	"time"

	"github.com/mayordomia/mayordomia-go/internal/domain"
)

// fakeStore is an in-memory port.LedgerStore with per-operation error
// injection for probing partial-commit states.
type fakeStore struct {
	txs       []domain.Transaction
	fixed     []domain.FixedExpense
	debts     []domain.Debt
	reminders []domain.IncomeReminder
	budgets   map[string]domain.Budget
	methods   []domain.PaymentMethod
	items     []domain.ShoppingListItem
	stores    []domain.StoreConfig

	nextID int

	failCreateTransaction  error
	failDeleteTransaction  error
	failUpdateFixedExpense error
	failUpdateDebt         error
	failUpdateReminder     error
}

func newFakeStore() *fakeStore {
	return &fakeStore{budgets: map[string]domain.Budget{}}
}

func (f *fakeStore) id(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s-%d", prefix, f.nextID)
}

func (f *fakeStore) ListTransactions(_ context.Context, _ string) ([]domain.Transaction, error) {
	return f.txs, nil
}

func (f *fakeStore) CreateTransaction(_ context.Context, _ string, tx *domain.Transaction) (*domain.Transaction, error) {
	if f.failCreateTransaction != nil {
		return nil, f.failCreateTransaction
	}
	created := *tx
	if created.ID == "" {
		created.ID = f.id("tx")
	}
	f.txs = append(f.txs, created)
	return &created, nil
}

func (f *fakeStore) DeleteTransaction(_ context.Context, _ string, txID string) error {
	if f.failDeleteTransaction != nil {
		return f.failDeleteTransaction
	}
	for i, tx := range f.txs {
		if tx.ID == txID {
			f.txs = append(f.txs[:i], f.txs[i+1:]...)
			return nil
		}
	}
	return &domain.ErrNotFound{Resource: "transaction", ID: txID}
}

func (f *fakeStore) ListFixedExpenses(_ context.Context, _ string) ([]domain.FixedExpense, error) {
	return f.fixed, nil
}

func (f *fakeStore) GetFixedExpense(_ context.Context, _ string, expenseID string) (*domain.FixedExpense, error) {
	for i := range f.fixed {
		if f.fixed[i].ID == expenseID {
			fe := f.fixed[i]
			return &fe, nil
		}
	}
	return nil, &domain.ErrNotFound{Resource: "fixed_expense", ID: expenseID}
}

func (f *fakeStore) CreateFixedExpense(_ context.Context, _ string, fe *domain.FixedExpense) (*domain.FixedExpense, error) {
	created := *fe
	created.ID = f.id("fe")
	f.fixed = append(f.fixed, created)
	return &created, nil
}

func (f *fakeStore) UpdateFixedExpense(_ context.Context, _ string, expenseID string, updates map[string]any) (*domain.FixedExpense, error) {
	if f.failUpdateFixedExpense != nil {
		return nil, f.failUpdateFixedExpense
	}
	for i := range f.fixed {
		if f.fixed[i].ID != expenseID {
			continue
		}
		if v, ok := updates["last_paid_date"]; ok {
			if v == nil {
				f.fixed[i].LastPaidDate = nil
			} else if s, ok := v.(string); ok {
				t, _ := time.Parse(time.RFC3339, s)
				f.fixed[i].LastPaidDate = &t
			}
		}
		if v, ok := updates["last_transaction_id"]; ok {
			if v == nil {
				f.fixed[i].LastTransactionID = ""
			} else if s, ok := v.(string); ok {
				f.fixed[i].LastTransactionID = s
			}
		}
		fe := f.fixed[i]
		return &fe, nil
	}
	return nil, &domain.ErrNotFound{Resource: "fixed_expense", ID: expenseID}
}

func (f *fakeStore) DeleteFixedExpense(_ context.Context, _ string, expenseID string) error {
	for i := range f.fixed {
		if f.fixed[i].ID == expenseID {
			f.fixed = append(f.fixed[:i], f.fixed[i+1:]...)
			return nil
		}
	}
	return &domain.ErrNotFound{Resource: "fixed_expense", ID: expenseID}
}

func (f *fakeStore) ListDebts(_ context.Context, _ string) ([]domain.Debt, error) {
	return f.debts, nil
}

func (f *fakeStore) GetDebt(_ context.Context, _ string, debtID string) (*domain.Debt, error) {
	for i := range f.debts {
		if f.debts[i].ID == debtID {
			d := f.debts[i]
			return &d, nil
		}
	}
	return nil, &domain.ErrNotFound{Resource: "debt", ID: debtID}
}

func (f *fakeStore) CreateDebt(_ context.Context, _ string, d *domain.Debt) (*domain.Debt, error) {
	created := *d
	created.ID = f.id("debt")
	f.debts = append(f.debts, created)
	return &created, nil
}

func (f *fakeStore) UpdateDebt(_ context.Context, _ string, debtID string, updates map[string]any) (*domain.Debt, error) {
	if f.failUpdateDebt != nil {
		return nil, f.failUpdateDebt
	}
	for i := range f.debts {
		if f.debts[i].ID != debtID {
			continue
		}
		if v, ok := updates["current_balance"].(float64); ok {
			f.debts[i].CurrentBalance = v
		}
		if s, ok := updates["last_payment_date"].(string); ok {
			t, _ := time.Parse(time.RFC3339, s)
			f.debts[i].LastPaymentDate = &t
		}
		d := f.debts[i]
		return &d, nil
	}
	return nil, &domain.ErrNotFound{Resource: "debt", ID: debtID}
}

func (f *fakeStore) DeleteDebt(_ context.Context, _ string, debtID string) error {
	for i := range f.debts {
		if f.debts[i].ID == debtID {
			f.debts = append(f.debts[:i], f.debts[i+1:]...)
			return nil
		}
	}
	return &domain.ErrNotFound{Resource: "debt", ID: debtID}
}

func (f *fakeStore) ListIncomeReminders(_ context.Context, _ string) ([]domain.IncomeReminder, error) {
	return f.reminders, nil
}

func (f *fakeStore) CreateIncomeReminder(_ context.Context, _ string, r *domain.IncomeReminder) (*domain.IncomeReminder, error) {
	created := *r
	created.ID = f.id("rem")
	f.reminders = append(f.reminders, created)
	return &created, nil
}

func (f *fakeStore) UpdateIncomeReminder(_ context.Context, _ string, reminderID string, updates map[string]any) (*domain.IncomeReminder, error) {
	if f.failUpdateReminder != nil {
		return nil, f.failUpdateReminder
	}
	for i := range f.reminders {
		if f.reminders[i].ID != reminderID {
			continue
		}
		if s, ok := updates["last_registered_date"].(string); ok {
			t, _ := time.Parse(time.RFC3339, s)
			f.reminders[i].LastRegisteredDate = &t
		}
		r := f.reminders[i]
		return &r, nil
	}
	return nil, &domain.ErrNotFound{Resource: "income_reminder", ID: reminderID}
}

func (f *fakeStore) DeleteIncomeReminder(_ context.Context, _ string, reminderID string) error {
	for i := range f.reminders {
		if f.reminders[i].ID == reminderID {
			f.reminders = append(f.reminders[:i], f.reminders[i+1:]...)
			return nil
		}
	}
	return &domain.ErrNotFound{Resource: "income_reminder", ID: reminderID}
}

func (f *fakeStore) GetBudget(_ context.Context, _ string, budgetID string) (*domain.Budget, error) {
	if b, ok := f.budgets[budgetID]; ok {
		return &b, nil
	}
	return nil, &domain.ErrNotFound{Resource: "budget", ID: budgetID}
}

func (f *fakeStore) UpsertBudget(_ context.Context, _ string, b *domain.Budget) (*domain.Budget, error) {
	f.budgets[b.ID] = *b
	saved := *b
	return &saved, nil
}

func (f *fakeStore) ListPaymentMethods(_ context.Context, _ string) ([]domain.PaymentMethod, error) {
	return f.methods, nil
}

func (f *fakeStore) CreatePaymentMethod(_ context.Context, _ string, m *domain.PaymentMethod) (*domain.PaymentMethod, error) {
	created := *m
	if created.ID == "" {
		created.ID = f.id("pm")
	}
	f.methods = append(f.methods, created)
	return &created, nil
}

func (f *fakeStore) DeletePaymentMethod(_ context.Context, _ string, methodID string) error {
	for i := range f.methods {
		if f.methods[i].ID == methodID {
			f.methods = append(f.methods[:i], f.methods[i+1:]...)
			return nil
		}
	}
	return &domain.ErrNotFound{Resource: "payment_method", ID: methodID}
}

func (f *fakeStore) ListShoppingItems(_ context.Context, _ string) ([]domain.ShoppingListItem, error) {
	return f.items, nil
}

func (f *fakeStore) CreateShoppingItem(_ context.Context, _ string, item *domain.ShoppingListItem) (*domain.ShoppingListItem, error) {
	created := *item
	created.ID = f.id("item")
	f.items = append(f.items, created)
	return &created, nil
}

func (f *fakeStore) UpdateShoppingItem(_ context.Context, _ string, itemID string, updates map[string]any) (*domain.ShoppingListItem, error) {
	for i := range f.items {
		if f.items[i].ID != itemID {
			continue
		}
		if v, ok := updates["checked"].(bool); ok {
			f.items[i].Checked = v
		}
		it := f.items[i]
		return &it, nil
	}
	return nil, &domain.ErrNotFound{Resource: "shopping_item", ID: itemID}
}

func (f *fakeStore) DeleteShoppingItem(_ context.Context, _ string, itemID string) error {
	for i := range f.items {
		if f.items[i].ID == itemID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return &domain.ErrNotFound{Resource: "shopping_item", ID: itemID}
}

func (f *fakeStore) ListStores(_ context.Context, _ string) ([]domain.StoreConfig, error) {
	return f.stores, nil
}

func (f *fakeStore) CreateStore(_ context.Context, _ string, s *domain.StoreConfig) (*domain.StoreConfig, error) {
	created := *s
	created.ID = f.id("store")
	f.stores = append(f.stores, created)
	return &created, nil
}

func (f *fakeStore) DeleteStore(_ context.Context, _ string, storeID string) error {
	for i := range f.stores {
		if f.stores[i].ID == storeID {
			f.stores = append(f.stores[:i], f.stores[i+1:]...)
			return nil
		}
	}
	return &domain.ErrNotFound{Resource: "store_config", ID: storeID}
}

// fakeAdvisor implements port.AdvisorCaller and port.PriceComparer.
type fakeAdvisor struct {
	answer     string
	rawJSON    string
	err        error
	lastPrompt string
}

func (f *fakeAdvisor) Advise(_ context.Context, _, prompt string) (string, error) {
	f.lastPrompt = prompt
	return f.answer, f.err
}

func (f *fakeAdvisor) Compare(_ context.Context, _ []domain.PriceQueryItem, _ []domain.StoreConfig) (string, error) {
	return f.rawJSON, f.err
}
