package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/mayordomia/mayordomia-go/internal/budget"
	"github.com/mayordomia/mayordomia-go/internal/domain"
)

// ============================================================
// Budgets
// ============================================================

// BudgetSaveRequest carries the editor's raw state. Allocation values
// arrive as the user's raw text; unparseable entries become zero, only
// the estimated income is validated.
type BudgetSaveRequest struct {
	Year            int               `json:"year"`
	Month           int               `json:"month"`
	EstimatedIncome string            `json:"estimated_income"`
	Allocations     map[string]string `json:"allocations"`
}

// GetBudget returns the budget for a month, or nil when none exists.
func (s *LedgerService) GetBudget(ctx context.Context, userID string, year, month int) (*domain.Budget, error) {
	ctx, span := tracer.Start(ctx, "LedgerService.GetBudget")
	defer span.End()

	if month < 1 || month > 12 {
		return nil, &domain.ErrValidation{Field: "month", Message: "must be 1-12"}
	}

	b, err := s.store.GetBudget(ctx, userID, budget.BudgetID(year, month))
	if err != nil {
		var notFound *domain.ErrNotFound
		if errors.As(err, &notFound) {
			return nil, nil
		}
		return nil, err
	}
	return b, nil
}

// SaveBudget validates the editor state and upserts the month's
// budget, wholesale-replacing prior allocations.
func (s *LedgerService) SaveBudget(ctx context.Context, userID string, req *BudgetSaveRequest) (*domain.Budget, error) {
	ctx, span := tracer.Start(ctx, "LedgerService.SaveBudget")
	defer span.End()

	if req.Month < 1 || req.Month > 12 {
		return nil, &domain.ErrValidation{Field: "month", Message: "must be 1-12"}
	}

	e := budget.NewEditor(req.Year, req.Month)
	e.SetEstimatedIncome(req.EstimatedIncome)
	for cat, raw := range req.Allocations {
		if err := e.AddCategory(cat); err != nil {
			// Canonical categories are pre-seeded; duplicates are fine.
			var verr *domain.ErrValidation
			if !errors.As(err, &verr) {
				return nil, err
			}
		}
		e.SetAllocation(cat, raw)
	}
	// Categories the client dropped must not survive the upsert.
	for _, cat := range e.Categories() {
		if _, ok := req.Allocations[cat]; !ok {
			e.RemoveCategory(cat)
		}
	}

	b, err := e.Build()
	if err != nil {
		return nil, err
	}

	saved, err := s.store.UpsertBudget(ctx, userID, &b)
	if err != nil {
		s.logger.Error("failed to save budget",
			zap.String("user_id", userID),
			zap.String("budget_id", b.ID),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("budget saved",
		zap.String("user_id", userID),
		zap.String("budget_id", saved.ID),
		zap.Float64("estimated_income", saved.EstimatedIncome),
	)
	return saved, nil
}
