package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mayordomia/mayordomia-go/internal/domain"
)

// ============================================================
// Fixed expenses store: list, get, create, update, delete
// ============================================================

func (c *Client) ListFixedExpenses(ctx context.Context, userID string) ([]domain.FixedExpense, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListFixedExpenses")
	defer span.End()

	var fixed []domain.FixedExpense
	err := c.listWithResilience(ctx, func() error {
		path := fmt.Sprintf("fixed_expenses?user_id=eq.%s&order=day_of_month.asc", userID)
		body, err := c.doRequest(ctx, http.MethodGet, path)
		if err != nil {
			return err
		}
		if body == nil || string(body) == "[]" {
			fixed = []domain.FixedExpense{}
			return nil
		}
		var rows []domain.FixedExpense
		if err := json.Unmarshal(body, &rows); err != nil {
			return fmt.Errorf("decode fixed_expenses: %w", err)
		}
		fixed = rows
		return nil
	})
	if err != nil {
		return nil, &domain.ErrCollaborator{Service: "supabase/fixed_expenses", Err: err}
	}
	return fixed, nil
}

func (c *Client) GetFixedExpense(ctx context.Context, userID, expenseID string) (*domain.FixedExpense, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetFixedExpense")
	defer span.End()

	path := fmt.Sprintf("fixed_expenses?user_id=eq.%s&id=eq.%s&limit=1", userID, expenseID)
	body, err := c.doRequest(ctx, http.MethodGet, path)
	if err != nil {
		return nil, &domain.ErrCollaborator{Service: "supabase/fixed_expenses", Err: err}
	}

	if body == nil {
		return nil, &domain.ErrNotFound{Resource: "fixed_expense", ID: expenseID}
	}
	var rows []domain.FixedExpense
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, &domain.ErrCollaborator{Service: "supabase/fixed_expenses", Err: fmt.Errorf("decode fixed_expense: %w", err)}
	}
	if len(rows) == 0 {
		return nil, &domain.ErrNotFound{Resource: "fixed_expense", ID: expenseID}
	}
	return &rows[0], nil
}

func (c *Client) CreateFixedExpense(ctx context.Context, userID string, fe *domain.FixedExpense) (*domain.FixedExpense, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateFixedExpense")
	defer span.End()

	row := map[string]any{
		"user_id":      userID,
		"description":  fe.Description,
		"amount":       fe.Amount,
		"category":     fe.Category,
		"day_of_month": fe.DayOfMonth,
	}
	if fe.PaymentMethodID != "" {
		row["payment_method_id"] = fe.PaymentMethodID
	}

	body, err := c.doPost(ctx, "fixed_expenses", row)
	if err != nil {
		return nil, &domain.ErrCollaborator{Service: "supabase/fixed_expenses", Err: err}
	}

	var results []domain.FixedExpense
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("decode fixed_expense: %w", err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no result from fixed_expenses insert")
	}
	return &results[0], nil
}

func (c *Client) UpdateFixedExpense(ctx context.Context, userID, expenseID string, updates map[string]any) (*domain.FixedExpense, error) {
	ctx, span := tracer.Start(ctx, "Supabase.UpdateFixedExpense")
	defer span.End()

	path := fmt.Sprintf("fixed_expenses?user_id=eq.%s&id=eq.%s", userID, expenseID)
	if err := c.doPatch(ctx, path, updates); err != nil {
		return nil, &domain.ErrCollaborator{Service: "supabase/fixed_expenses", Err: err}
	}
	return c.GetFixedExpense(ctx, userID, expenseID)
}

func (c *Client) DeleteFixedExpense(ctx context.Context, userID, expenseID string) error {
	ctx, span := tracer.Start(ctx, "Supabase.DeleteFixedExpense")
	defer span.End()

	if err := c.doDelete(ctx, fmt.Sprintf("fixed_expenses?user_id=eq.%s&id=eq.%s", userID, expenseID)); err != nil {
		return &domain.ErrCollaborator{Service: "supabase/fixed_expenses", Err: err}
	}
	return nil
}
