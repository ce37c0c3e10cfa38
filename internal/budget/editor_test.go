package budget_test

import (
	"errors"
	"testing"

	"github.com/mayordomia/mayordomia-go/internal/budget"
	"github.com/mayordomia/mayordomia-go/internal/domain"
)

func TestBudgetID(t *testing.T) {
	if got := budget.BudgetID(2025, 3); got != "2025-03" {
		t.Errorf("BudgetID = %q, want 2025-03", got)
	}
	if got := budget.BudgetID(2025, 12); got != "2025-12" {
		t.Errorf("BudgetID = %q, want 2025-12", got)
	}
}

func TestEditorRemaining(t *testing.T) {
	e := budget.NewEditor(2025, 3)
	e.SetEstimatedIncome("1000")
	if err := e.AddCategory("A"); err != nil {
		t.Fatal(err)
	}
	if err := e.AddCategory("B"); err != nil {
		t.Fatal(err)
	}
	e.SetAllocation("A", "300")
	e.SetAllocation("B", "400")

	if got := e.TotalAllocated(); got != 700 {
		t.Errorf("TotalAllocated = %v, want 700", got)
	}
	if got := e.Remaining(); got != 300 {
		t.Errorf("Remaining = %v, want 300", got)
	}
}

func TestEditorUnparseableAllocationCountsAsZero(t *testing.T) {
	e := budget.NewEditor(2025, 3)
	e.SetEstimatedIncome("1000")
	if err := e.AddCategory("A"); err != nil {
		t.Fatal(err)
	}
	e.SetAllocation("A", "abc")

	if got := e.TotalAllocated(); got != 0 {
		t.Errorf("TotalAllocated = %v, want 0", got)
	}
	if got := e.Remaining(); got != 1000 {
		t.Errorf("Remaining = %v, want 1000", got)
	}

	// Save still succeeds; only income is validated.
	b, err := e.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if b.Allocations["A"] != 0 {
		t.Errorf("allocation A = %v, want 0", b.Allocations["A"])
	}
}

func TestEditorNegativeRemainingIsValid(t *testing.T) {
	e := budget.NewEditor(2025, 3)
	e.SetEstimatedIncome("100")
	if err := e.AddCategory("A"); err != nil {
		t.Fatal(err)
	}
	e.SetAllocation("A", "250")
	if got := e.Remaining(); got != -150 {
		t.Errorf("Remaining = %v, want -150", got)
	}
}

func TestEditorCategoryRules(t *testing.T) {
	e := budget.NewEditor(2025, 3)

	if err := e.AddCategory("  "); err == nil {
		t.Error("expected error for blank category")
	}
	if err := e.AddCategory("Vivienda"); err == nil {
		t.Error("expected error for duplicate of canonical category")
	}
	if err := e.AddCategory("Mascotas"); err != nil {
		t.Errorf("AddCategory(Mascotas): %v", err)
	}
	if err := e.AddCategory("Mascotas"); err == nil {
		t.Error("expected error for duplicate category")
	}

	e.SetAllocation("Mascotas", "50")
	e.RemoveCategory("Mascotas")
	for _, cat := range e.Categories() {
		if cat == "Mascotas" {
			t.Error("category still active after removal")
		}
	}
	if got := e.TotalAllocated(); got != 0 {
		t.Errorf("TotalAllocated after removal = %v, want 0", got)
	}
}

func TestEditorBuildValidatesIncome(t *testing.T) {
	e := budget.NewEditor(2025, 3)
	e.SetEstimatedIncome("not a number")

	_, err := e.Build()
	var verr *domain.ErrValidation
	if !errors.As(err, &verr) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	e.SetEstimatedIncome("1200.50")
	b, err := e.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if b.ID != "2025-03" || b.EstimatedIncome != 1200.50 {
		t.Errorf("unexpected budget: %+v", b)
	}
	// Every active category appears in the built allocations.
	if len(b.Allocations) != len(e.Categories()) {
		t.Errorf("allocations = %d entries, want %d", len(b.Allocations), len(e.Categories()))
	}
}

func TestEditorBuildRejectsNonFiniteIncome(t *testing.T) {
	for _, raw := range []string{"Inf", "+Inf", "-Inf", "NaN"} {
		e := budget.NewEditor(2025, 3)
		e.SetEstimatedIncome(raw)

		_, err := e.Build()
		var verr *domain.ErrValidation
		if !errors.As(err, &verr) {
			t.Errorf("income %q: expected ErrValidation, got %v", raw, err)
		}
	}
}

func TestEditorFromExistingBudget(t *testing.T) {
	existing := domain.Budget{
		ID:              "2025-03",
		Year:            2025,
		Month:           3,
		EstimatedIncome: 900,
		Allocations:     map[string]float64{"Vivienda": 400, "Ahorro": 100},
	}
	e := budget.NewEditorFrom(existing)

	cats := e.Categories()
	if len(cats) != 2 {
		t.Fatalf("active categories = %v, want the budget's own keys", cats)
	}
	if got := e.Remaining(); got != 400 {
		t.Errorf("Remaining = %v, want 400", got)
	}
}
