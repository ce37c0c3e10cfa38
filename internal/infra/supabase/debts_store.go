package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mayordomia/mayordomia-go/internal/domain"
)

// ============================================================
// Debts store: list, get, create, update, delete
// ============================================================

func (c *Client) ListDebts(ctx context.Context, userID string) ([]domain.Debt, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListDebts")
	defer span.End()

	var debts []domain.Debt
	err := c.listWithResilience(ctx, func() error {
		path := fmt.Sprintf("debts?user_id=eq.%s&order=day_of_month.asc", userID)
		body, err := c.doRequest(ctx, http.MethodGet, path)
		if err != nil {
			return err
		}
		if body == nil || string(body) == "[]" {
			debts = []domain.Debt{}
			return nil
		}
		var rows []domain.Debt
		if err := json.Unmarshal(body, &rows); err != nil {
			return fmt.Errorf("decode debts: %w", err)
		}
		debts = rows
		return nil
	})
	if err != nil {
		return nil, &domain.ErrCollaborator{Service: "supabase/debts", Err: err}
	}
	return debts, nil
}

func (c *Client) GetDebt(ctx context.Context, userID, debtID string) (*domain.Debt, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetDebt")
	defer span.End()

	path := fmt.Sprintf("debts?user_id=eq.%s&id=eq.%s&limit=1", userID, debtID)
	body, err := c.doRequest(ctx, http.MethodGet, path)
	if err != nil {
		return nil, &domain.ErrCollaborator{Service: "supabase/debts", Err: err}
	}

	if body == nil {
		return nil, &domain.ErrNotFound{Resource: "debt", ID: debtID}
	}
	var rows []domain.Debt
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, &domain.ErrCollaborator{Service: "supabase/debts", Err: fmt.Errorf("decode debt: %w", err)}
	}
	if len(rows) == 0 {
		return nil, &domain.ErrNotFound{Resource: "debt", ID: debtID}
	}
	return &rows[0], nil
}

func (c *Client) CreateDebt(ctx context.Context, userID string, d *domain.Debt) (*domain.Debt, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateDebt")
	defer span.End()

	row := map[string]any{
		"user_id":         userID,
		"name":            d.Name,
		"total_amount":    d.TotalAmount,
		"current_balance": d.CurrentBalance,
		"interest_rate":   d.InterestRate,
		"min_payment":     d.MinPayment,
		"day_of_month":    d.DayOfMonth,
	}

	body, err := c.doPost(ctx, "debts", row)
	if err != nil {
		return nil, &domain.ErrCollaborator{Service: "supabase/debts", Err: err}
	}

	var results []domain.Debt
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("decode debt: %w", err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no result from debts insert")
	}
	return &results[0], nil
}

func (c *Client) UpdateDebt(ctx context.Context, userID, debtID string, updates map[string]any) (*domain.Debt, error) {
	ctx, span := tracer.Start(ctx, "Supabase.UpdateDebt")
	defer span.End()

	path := fmt.Sprintf("debts?user_id=eq.%s&id=eq.%s", userID, debtID)
	if err := c.doPatch(ctx, path, updates); err != nil {
		return nil, &domain.ErrCollaborator{Service: "supabase/debts", Err: err}
	}
	return c.GetDebt(ctx, userID, debtID)
}

func (c *Client) DeleteDebt(ctx context.Context, userID, debtID string) error {
	ctx, span := tracer.Start(ctx, "Supabase.DeleteDebt")
	defer span.End()

	if err := c.doDelete(ctx, fmt.Sprintf("debts?user_id=eq.%s&id=eq.%s", userID, debtID)); err != nil {
		return &domain.ErrCollaborator{Service: "supabase/debts", Err: err}
	}
	return nil
}
