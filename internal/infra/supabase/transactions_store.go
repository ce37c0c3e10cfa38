package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/mayordomia/mayordomia-go/internal/domain"
)

// ============================================================
// Transactions store: list, create, delete
// ============================================================

func (c *Client) ListTransactions(ctx context.Context, userID string) ([]domain.Transaction, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListTransactions")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	var txs []domain.Transaction
	err := c.listWithResilience(ctx, func() error {
		path := fmt.Sprintf("transactions?user_id=eq.%s&order=date.desc", userID)
		body, err := c.doRequest(ctx, http.MethodGet, path)
		if err != nil {
			return err
		}
		if body == nil || string(body) == "[]" {
			txs = []domain.Transaction{}
			return nil
		}
		var rows []domain.Transaction
		if err := json.Unmarshal(body, &rows); err != nil {
			return fmt.Errorf("decode transactions: %w", err)
		}
		txs = rows
		return nil
	})
	if err != nil {
		return nil, &domain.ErrCollaborator{Service: "supabase/transactions", Err: err}
	}
	return txs, nil
}

func (c *Client) CreateTransaction(ctx context.Context, userID string, tx *domain.Transaction) (*domain.Transaction, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateTransaction")
	defer span.End()

	row := map[string]any{
		"user_id":     userID,
		"description": tx.Description,
		"amount":      tx.Amount,
		"type":        tx.Type,
		"category":    tx.Category,
		"date":        tx.Date.Format(time.RFC3339),
	}
	if tx.ID != "" {
		row["id"] = tx.ID
	}
	if tx.PaymentMethodID != "" {
		row["payment_method_id"] = tx.PaymentMethodID
	}

	body, err := c.doPost(ctx, "transactions", row)
	if err != nil {
		return nil, &domain.ErrCollaborator{Service: "supabase/transactions", Err: err}
	}

	var results []domain.Transaction
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("decode transaction: %w", err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no result from transactions insert")
	}
	return &results[0], nil
}

func (c *Client) DeleteTransaction(ctx context.Context, userID, txID string) error {
	ctx, span := tracer.Start(ctx, "Supabase.DeleteTransaction")
	defer span.End()

	if err := c.doDelete(ctx, fmt.Sprintf("transactions?user_id=eq.%s&id=eq.%s", userID, txID)); err != nil {
		return &domain.ErrCollaborator{Service: "supabase/transactions", Err: err}
	}
	return nil
}
