package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mayordomia/mayordomia-go/internal/domain"
)

// ============================================================
// Budgets store: get by month id, upsert
// ============================================================

func (c *Client) GetBudget(ctx context.Context, userID, budgetID string) (*domain.Budget, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetBudget")
	defer span.End()

	path := fmt.Sprintf("budgets?user_id=eq.%s&id=eq.%s&limit=1", userID, budgetID)
	body, err := c.doRequest(ctx, http.MethodGet, path)
	if err != nil {
		return nil, &domain.ErrCollaborator{Service: "supabase/budgets", Err: err}
	}

	if body == nil {
		return nil, &domain.ErrNotFound{Resource: "budget", ID: budgetID}
	}
	var rows []domain.Budget
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, &domain.ErrCollaborator{Service: "supabase/budgets", Err: fmt.Errorf("decode budget: %w", err)}
	}
	if len(rows) == 0 {
		return nil, &domain.ErrNotFound{Resource: "budget", ID: budgetID}
	}
	return &rows[0], nil
}

// UpsertBudget wholesale-replaces the budget row for the month. The
// deterministic "YYYY-MM" id makes the merge-duplicates upsert safe.
func (c *Client) UpsertBudget(ctx context.Context, userID string, b *domain.Budget) (*domain.Budget, error) {
	ctx, span := tracer.Start(ctx, "Supabase.UpsertBudget")
	defer span.End()

	row := map[string]any{
		"id":               b.ID,
		"user_id":          userID,
		"year":             b.Year,
		"month":            b.Month,
		"estimated_income": b.EstimatedIncome,
		"allocations":      b.Allocations,
	}

	body, err := c.doUpsert(ctx, "budgets", row)
	if err != nil {
		return nil, &domain.ErrCollaborator{Service: "supabase/budgets", Err: err}
	}

	var results []domain.Budget
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("decode budget: %w", err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no result from budgets upsert")
	}
	return &results[0], nil
}
