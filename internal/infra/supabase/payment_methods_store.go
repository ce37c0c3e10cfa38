package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mayordomia/mayordomia-go/internal/domain"
)

// ============================================================
// Payment methods store: list, create, delete
// ============================================================

func (c *Client) ListPaymentMethods(ctx context.Context, userID string) ([]domain.PaymentMethod, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListPaymentMethods")
	defer span.End()

	var methods []domain.PaymentMethod
	err := c.listWithResilience(ctx, func() error {
		path := fmt.Sprintf("payment_methods?user_id=eq.%s&order=name.asc", userID)
		body, err := c.doRequest(ctx, http.MethodGet, path)
		if err != nil {
			return err
		}
		if body == nil || string(body) == "[]" {
			methods = []domain.PaymentMethod{}
			return nil
		}
		var rows []domain.PaymentMethod
		if err := json.Unmarshal(body, &rows); err != nil {
			return fmt.Errorf("decode payment_methods: %w", err)
		}
		methods = rows
		return nil
	})
	if err != nil {
		return nil, &domain.ErrCollaborator{Service: "supabase/payment_methods", Err: err}
	}
	return methods, nil
}

func (c *Client) CreatePaymentMethod(ctx context.Context, userID string, m *domain.PaymentMethod) (*domain.PaymentMethod, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreatePaymentMethod")
	defer span.End()

	row := map[string]any{
		"user_id": userID,
		"name":    m.Name,
		"type":    m.Type,
	}
	if m.ID != "" {
		row["id"] = m.ID
	}

	body, err := c.doPost(ctx, "payment_methods", row)
	if err != nil {
		return nil, &domain.ErrCollaborator{Service: "supabase/payment_methods", Err: err}
	}

	var results []domain.PaymentMethod
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("decode payment_method: %w", err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no result from payment_methods insert")
	}
	return &results[0], nil
}

func (c *Client) DeletePaymentMethod(ctx context.Context, userID, methodID string) error {
	ctx, span := tracer.Start(ctx, "Supabase.DeletePaymentMethod")
	defer span.End()

	if err := c.doDelete(ctx, fmt.Sprintf("payment_methods?user_id=eq.%s&id=eq.%s", userID, methodID)); err != nil {
		return &domain.ErrCollaborator{Service: "supabase/payment_methods", Err: err}
	}
	return nil
}
