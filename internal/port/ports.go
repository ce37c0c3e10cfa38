// Package port defines the interfaces (ports) for external dependencies.
// Following hexagonal architecture, these ports decouple the domain/service
// layer from concrete implementations.
package port

import (
	"context"

	"github.com/mayordomia/mayordomia-go/internal/domain"
)

// LedgerStore defines all data operations for the household ledger.
// Implemented by the Supabase adapter (or any other persistence layer).
// Every operation is scoped to the authenticated user.
type LedgerStore interface {
	// Transactions
	ListTransactions(ctx context.Context, userID string) ([]domain.Transaction, error)
	CreateTransaction(ctx context.Context, userID string, tx *domain.Transaction) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, userID, txID string) error

	// Fixed expenses
	ListFixedExpenses(ctx context.Context, userID string) ([]domain.FixedExpense, error)
	GetFixedExpense(ctx context.Context, userID, expenseID string) (*domain.FixedExpense, error)
	CreateFixedExpense(ctx context.Context, userID string, fe *domain.FixedExpense) (*domain.FixedExpense, error)
	UpdateFixedExpense(ctx context.Context, userID, expenseID string, updates map[string]any) (*domain.FixedExpense, error)
	DeleteFixedExpense(ctx context.Context, userID, expenseID string) error

	// Debts
	ListDebts(ctx context.Context, userID string) ([]domain.Debt, error)
	GetDebt(ctx context.Context, userID, debtID string) (*domain.Debt, error)
	CreateDebt(ctx context.Context, userID string, d *domain.Debt) (*domain.Debt, error)
	UpdateDebt(ctx context.Context, userID, debtID string, updates map[string]any) (*domain.Debt, error)
	DeleteDebt(ctx context.Context, userID, debtID string) error

	// Income reminders
	ListIncomeReminders(ctx context.Context, userID string) ([]domain.IncomeReminder, error)
	CreateIncomeReminder(ctx context.Context, userID string, r *domain.IncomeReminder) (*domain.IncomeReminder, error)
	UpdateIncomeReminder(ctx context.Context, userID, reminderID string, updates map[string]any) (*domain.IncomeReminder, error)
	DeleteIncomeReminder(ctx context.Context, userID, reminderID string) error

	// Budgets
	GetBudget(ctx context.Context, userID, budgetID string) (*domain.Budget, error)
	UpsertBudget(ctx context.Context, userID string, b *domain.Budget) (*domain.Budget, error)

	// Payment methods
	ListPaymentMethods(ctx context.Context, userID string) ([]domain.PaymentMethod, error)
	CreatePaymentMethod(ctx context.Context, userID string, m *domain.PaymentMethod) (*domain.PaymentMethod, error)
	DeletePaymentMethod(ctx context.Context, userID, methodID string) error

	// Shopping list
	ListShoppingItems(ctx context.Context, userID string) ([]domain.ShoppingListItem, error)
	CreateShoppingItem(ctx context.Context, userID string, item *domain.ShoppingListItem) (*domain.ShoppingListItem, error)
	UpdateShoppingItem(ctx context.Context, userID, itemID string, updates map[string]any) (*domain.ShoppingListItem, error)
	DeleteShoppingItem(ctx context.Context, userID, itemID string) error

	// Store configuration
	ListStores(ctx context.Context, userID string) ([]domain.StoreConfig, error)
	CreateStore(ctx context.Context, userID string, s *domain.StoreConfig) (*domain.StoreConfig, error)
	DeleteStore(ctx context.Context, userID, storeID string) error
}

// AdvisorCaller invokes the generative AI advisor with a fully built
// prompt and returns its free-text answer.
type AdvisorCaller interface {
	Advise(ctx context.Context, systemInstruction, prompt string) (string, error)
}

// PriceComparer asks the AI collaborator for store price suggestions.
// It returns the raw model text; the service layer owns JSON extraction
// and the malformed-response fallback.
type PriceComparer interface {
	Compare(ctx context.Context, items []domain.PriceQueryItem, stores []domain.StoreConfig) (string, error)
}

// Cache provides generic caching with TTL.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	Delete(key string)
}
