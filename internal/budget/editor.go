// Package budget implements the monthly budget allocation editor: a
// small mutable state machine holding in-progress text input, with the
// arithmetic and validation applied when the budget is built for
// saving.
package budget

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/mayordomia/mayordomia-go/internal/domain"
)

// Editor edits the allocations of one (year, month) budget. Amounts
// are kept as raw strings until Build so the editor never fights the
// user's in-progress typing; unparseable values count as zero.
type Editor struct {
	year            int
	month           int
	estimatedIncome string
	allocations     map[string]string
	categories      []string
}

// NewEditor starts an editor for the given month, seeded with the
// canonical expense categories.
func NewEditor(year, month int) *Editor {
	cats := make([]string, len(domain.ExpenseCategories))
	copy(cats, domain.ExpenseCategories)
	return &Editor{
		year:        year,
		month:       month,
		allocations: map[string]string{},
		categories:  cats,
	}
}

// NewEditorFrom starts an editor pre-populated from an existing budget.
// The active category list becomes the budget's own allocation keys.
func NewEditorFrom(b domain.Budget) *Editor {
	e := &Editor{
		year:            b.Year,
		month:           b.Month,
		estimatedIncome: strconv.FormatFloat(b.EstimatedIncome, 'f', -1, 64),
		allocations:     map[string]string{},
	}
	e.categories = make([]string, 0, len(b.Allocations))
	for cat := range b.Allocations {
		e.categories = append(e.categories, cat)
	}
	sort.Strings(e.categories)
	for cat, amount := range b.Allocations {
		e.allocations[cat] = strconv.FormatFloat(amount, 'f', -1, 64)
	}
	return e
}

// BudgetID formats the identifier for a (year, month) pair, "YYYY-MM".
func BudgetID(year, month int) string {
	return fmt.Sprintf("%d-%02d", year, month)
}

// ID returns the identifier of the budget under edit.
func (e *Editor) ID() string {
	return BudgetID(e.year, e.month)
}

// SetEstimatedIncome stores the raw income input.
func (e *Editor) SetEstimatedIncome(raw string) {
	e.estimatedIncome = raw
}

// SetAllocation stores the raw text for a category verbatim. Unknown
// categories are ignored; they must be added first.
func (e *Editor) SetAllocation(category, raw string) {
	if !e.hasCategory(category) {
		return
	}
	e.allocations[category] = raw
}

// AddCategory appends a new active category. Blank names and exact
// duplicates are rejected.
func (e *Editor) AddCategory(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return &domain.ErrValidation{Field: "category", Message: "nombre vacío"}
	}
	if e.hasCategory(trimmed) {
		return &domain.ErrValidation{Field: "category", Message: "categoría duplicada: " + trimmed}
	}
	e.categories = append(e.categories, trimmed)
	return nil
}

// RemoveCategory drops a category from the active list and its
// allocation.
func (e *Editor) RemoveCategory(name string) {
	for i, cat := range e.categories {
		if cat == name {
			e.categories = append(e.categories[:i], e.categories[i+1:]...)
			break
		}
	}
	delete(e.allocations, name)
}

// Categories returns the active category names in order.
func (e *Editor) Categories() []string {
	out := make([]string, len(e.categories))
	copy(out, e.categories)
	return out
}

// TotalAllocated sums the parsed allocations over active categories,
// treating unparseable input as zero.
func (e *Editor) TotalAllocated() float64 {
	var total float64
	for _, cat := range e.categories {
		total += parseAmount(e.allocations[cat])
	}
	return total
}

// Remaining is estimated income minus total allocated. A negative
// result is a valid overspend state, not an error.
func (e *Editor) Remaining() float64 {
	return parseAmount(e.estimatedIncome) - e.TotalAllocated()
}

// Build validates the estimated income and produces the budget record
// to upsert. Only the income is validated; allocation strings that do
// not parse become zero.
func (e *Editor) Build() (domain.Budget, error) {
	income, err := strconv.ParseFloat(strings.TrimSpace(e.estimatedIncome), 64)
	if err != nil || math.IsInf(income, 0) || math.IsNaN(income) {
		return domain.Budget{}, &domain.ErrValidation{Field: "estimated_income", Message: "invalid income"}
	}
	allocations := make(map[string]float64, len(e.categories))
	for _, cat := range e.categories {
		allocations[cat] = parseAmount(e.allocations[cat])
	}
	return domain.Budget{
		ID:              e.ID(),
		Year:            e.year,
		Month:           e.month,
		EstimatedIncome: income,
		Allocations:     allocations,
	}, nil
}

func (e *Editor) hasCategory(name string) bool {
	for _, cat := range e.categories {
		if cat == name {
			return true
		}
	}
	return false
}

func parseAmount(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return v
}
