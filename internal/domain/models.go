// Package domain defines the core business entities for Mayordomía.
// These models are independent of external services and represent the
// canonical data structures used throughout the backend.
package domain

import "time"

// ============================================================
// Transactions
// ============================================================

// Transaction types.
const (
	TransactionIncome  = "INCOME"
	TransactionExpense = "EXPENSE"
)

// Transaction represents a single income or expense movement.
// Immutable once created except for deletion.
type Transaction struct {
	ID              string    `json:"id"`
	Description     string    `json:"description"`
	Amount          float64   `json:"amount"`
	Type            string    `json:"type"` // INCOME, EXPENSE
	Category        string    `json:"category"`
	Date            time.Time `json:"date"`
	PaymentMethodID string    `json:"payment_method_id,omitempty"`
}

// ============================================================
// Fixed expenses
// ============================================================

// FixedExpense is a recurring monthly obligation with a target day of
// month. "Paid this month" is derived from LastPaidDate, never stored.
type FixedExpense struct {
	ID                string     `json:"id"`
	Description       string     `json:"description"`
	Amount            float64    `json:"amount"`
	Category          string     `json:"category"`
	DayOfMonth        int        `json:"day_of_month"`
	LastPaidDate      *time.Time `json:"last_paid_date,omitempty"`
	LastTransactionID string     `json:"last_transaction_id,omitempty"`
	PaymentMethodID   string     `json:"payment_method_id,omitempty"`
}

// ============================================================
// Debts
// ============================================================

// Debt tracks a liability whose balance decreases through payments.
type Debt struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	TotalAmount     float64    `json:"total_amount"`
	CurrentBalance  float64    `json:"current_balance"`
	InterestRate    float64    `json:"interest_rate"`
	MinPayment      float64    `json:"min_payment"`
	DayOfMonth      int        `json:"day_of_month"`
	LastPaymentDate *time.Time `json:"last_payment_date,omitempty"`
}

// ============================================================
// Income reminders
// ============================================================

// IncomeReminder is an expected recurring income (salary, rent owed to
// the user). Registration is heuristic: a new INCOME transaction whose
// description contains the reminder's description, or created on the
// reminder's day, marks it registered for the month.
type IncomeReminder struct {
	ID                 string     `json:"id"`
	Description        string     `json:"description"`
	DayOfMonth         int        `json:"day_of_month"`
	LastRegisteredDate *time.Time `json:"last_registered_date,omitempty"`
}

// ============================================================
// Budgets
// ============================================================

// Budget holds the user's declared spending targets for one calendar
// month. ID is always "YYYY-MM"; upserting replaces Allocations wholesale.
type Budget struct {
	ID              string             `json:"id"`
	Year            int                `json:"year"`
	Month           int                `json:"month"`
	EstimatedIncome float64            `json:"estimated_income"`
	Allocations     map[string]float64 `json:"allocations"`
}

// ============================================================
// Payment methods
// ============================================================

// Payment method types.
const (
	MethodCash   = "CASH"
	MethodCard   = "CARD"
	MethodWallet = "WALLET"
)

// PaymentMethod is a named money-holding account transactions can be
// attributed to. Exactly one CASH method is expected to exist.
type PaymentMethod struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"` // CASH, CARD, WALLET
}

// ============================================================
// Shopping list
// ============================================================

// ShoppingListItem is a simple checklist entry.
type ShoppingListItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Checked  bool   `json:"checked"`
}

// StoreConfig is a store the price comparison should search.
type StoreConfig struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ============================================================
// Alerts (derived, never persisted)
// ============================================================

// Alert source types.
const (
	AlertIncome = "INCOME"
	AlertFixed  = "FIXED"
	AlertDebt   = "DEBT"
)

// Alert is a derived reminder that a fixed expense, debt payment or
// expected income is due around the current date.
type Alert struct {
	ID          string  `json:"id"`
	SourceType  string  `json:"source_type"` // INCOME, FIXED, DEBT
	Title       string  `json:"title"`
	DueDay      int     `json:"due_day"`
	Amount      float64 `json:"amount"`
	IsOverdue   bool    `json:"is_overdue"`
	IsUrgent    bool    `json:"is_urgent"`
	StatusLabel string  `json:"status_label"`
}

// ============================================================
// Two-phase write results
// ============================================================

// Commit phases for multi-step write sequences. The settlement flows
// (mark fixed expense paid, pay debt) insert a transaction and then
// patch the linked entity with no transactional atomicity; the result
// makes the partial state observable instead of silent.
const (
	CommitFull    = "FULL"
	CommitPartial = "PARTIAL"
	CommitFailed  = "FAILED"
)

// CommitResult reports how far a two-phase write got. When Phase is
// PARTIAL, OrphanTransactionID identifies the transaction that was
// inserted before the second step failed.
type CommitResult struct {
	Phase               string       `json:"phase"`
	Transaction         *Transaction `json:"transaction,omitempty"`
	OrphanTransactionID string       `json:"orphan_transaction_id,omitempty"`
}

// ============================================================
// Aggregates
// ============================================================

// CategoryTotal is one entry of the expense-by-category breakdown.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// MethodBalance is the net balance attributed to one payment method.
// Transactions with no payment method contribute to no method.
type MethodBalance struct {
	MethodID   string  `json:"method_id"`
	MethodName string  `json:"method_name"`
	MethodType string  `json:"method_type"`
	Balance    float64 `json:"balance"`
}

// Summary is the full aggregate set the dashboard consumes.
type Summary struct {
	TotalIncome       float64         `json:"total_income"`
	TotalExpense      float64         `json:"total_expense"`
	Balance           float64         `json:"balance"`
	TotalPendingFixed float64         `json:"total_pending_fixed"`
	TotalDebt         float64         `json:"total_debt"`
	ExpenseByCategory []CategoryTotal `json:"expense_by_category"`
	MethodBalances    []MethodBalance `json:"method_balances"`
	Budget            *Budget         `json:"budget,omitempty"`
}

// ============================================================
// Advisor / price comparison
// ============================================================

// AdvisorRequest is a free-text question for the financial advisor.
type AdvisorRequest struct {
	Query string `json:"query"`
}

// AdvisorResponse carries the advisor's answer. Failures of the AI
// collaborator surface here as a fixed apology text, never as an error.
type AdvisorResponse struct {
	Answer string `json:"answer"`
}

// PriceQueryItem is one shopping item to price across stores.
type PriceQueryItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// PriceSuggestion is one store's offer for an item.
type PriceSuggestion struct {
	Store string  `json:"store"`
	Price float64 `json:"price"`
	URL   string  `json:"url"`
}

// PriceComparisonItem groups the suggestions found for one item.
type PriceComparisonItem struct {
	Name        string            `json:"name"`
	Suggestions []PriceSuggestion `json:"suggestions"`
}

// PriceComparison is the structured result of the shopping comparison.
type PriceComparison struct {
	Items          []PriceComparisonItem `json:"items"`
	TotalEstimated float64               `json:"totalEstimated"`
	BiblicalTip    string                `json:"biblicalTip"`
}
