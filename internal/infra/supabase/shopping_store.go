package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mayordomia/mayordomia-go/internal/domain"
)

// ============================================================
// Shopping list + store configuration
// ============================================================

func (c *Client) ListShoppingItems(ctx context.Context, userID string) ([]domain.ShoppingListItem, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListShoppingItems")
	defer span.End()

	var items []domain.ShoppingListItem
	err := c.listWithResilience(ctx, func() error {
		path := fmt.Sprintf("shopping_items?user_id=eq.%s&order=name.asc", userID)
		body, err := c.doRequest(ctx, http.MethodGet, path)
		if err != nil {
			return err
		}
		if body == nil || string(body) == "[]" {
			items = []domain.ShoppingListItem{}
			return nil
		}
		var rows []domain.ShoppingListItem
		if err := json.Unmarshal(body, &rows); err != nil {
			return fmt.Errorf("decode shopping_items: %w", err)
		}
		items = rows
		return nil
	})
	if err != nil {
		return nil, &domain.ErrCollaborator{Service: "supabase/shopping_items", Err: err}
	}
	return items, nil
}

func (c *Client) CreateShoppingItem(ctx context.Context, userID string, item *domain.ShoppingListItem) (*domain.ShoppingListItem, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateShoppingItem")
	defer span.End()

	row := map[string]any{
		"user_id":  userID,
		"name":     item.Name,
		"quantity": item.Quantity,
		"checked":  item.Checked,
	}

	body, err := c.doPost(ctx, "shopping_items", row)
	if err != nil {
		return nil, &domain.ErrCollaborator{Service: "supabase/shopping_items", Err: err}
	}

	var results []domain.ShoppingListItem
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("decode shopping_item: %w", err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no result from shopping_items insert")
	}
	return &results[0], nil
}

func (c *Client) UpdateShoppingItem(ctx context.Context, userID, itemID string, updates map[string]any) (*domain.ShoppingListItem, error) {
	ctx, span := tracer.Start(ctx, "Supabase.UpdateShoppingItem")
	defer span.End()

	path := fmt.Sprintf("shopping_items?user_id=eq.%s&id=eq.%s", userID, itemID)
	if err := c.doPatch(ctx, path, updates); err != nil {
		return nil, &domain.ErrCollaborator{Service: "supabase/shopping_items", Err: err}
	}

	body, err := c.doRequest(ctx, http.MethodGet, path+"&limit=1")
	if err != nil {
		return nil, &domain.ErrCollaborator{Service: "supabase/shopping_items", Err: err}
	}
	var rows []domain.ShoppingListItem
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode shopping_item: %w", err)
	}
	if len(rows) == 0 {
		return nil, &domain.ErrNotFound{Resource: "shopping_item", ID: itemID}
	}
	return &rows[0], nil
}

func (c *Client) DeleteShoppingItem(ctx context.Context, userID, itemID string) error {
	ctx, span := tracer.Start(ctx, "Supabase.DeleteShoppingItem")
	defer span.End()

	if err := c.doDelete(ctx, fmt.Sprintf("shopping_items?user_id=eq.%s&id=eq.%s", userID, itemID)); err != nil {
		return &domain.ErrCollaborator{Service: "supabase/shopping_items", Err: err}
	}
	return nil
}

func (c *Client) ListStores(ctx context.Context, userID string) ([]domain.StoreConfig, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListStores")
	defer span.End()

	var stores []domain.StoreConfig
	err := c.listWithResilience(ctx, func() error {
		path := fmt.Sprintf("store_configs?user_id=eq.%s&order=name.asc", userID)
		body, err := c.doRequest(ctx, http.MethodGet, path)
		if err != nil {
			return err
		}
		if body == nil || string(body) == "[]" {
			stores = []domain.StoreConfig{}
			return nil
		}
		var rows []domain.StoreConfig
		if err := json.Unmarshal(body, &rows); err != nil {
			return fmt.Errorf("decode store_configs: %w", err)
		}
		stores = rows
		return nil
	})
	if err != nil {
		return nil, &domain.ErrCollaborator{Service: "supabase/store_configs", Err: err}
	}
	return stores, nil
}

func (c *Client) CreateStore(ctx context.Context, userID string, s *domain.StoreConfig) (*domain.StoreConfig, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateStore")
	defer span.End()

	row := map[string]any{
		"user_id": userID,
		"name":    s.Name,
		"url":     s.URL,
	}

	body, err := c.doPost(ctx, "store_configs", row)
	if err != nil {
		return nil, &domain.ErrCollaborator{Service: "supabase/store_configs", Err: err}
	}

	var results []domain.StoreConfig
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("decode store_config: %w", err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no result from store_configs insert")
	}
	return &results[0], nil
}

func (c *Client) DeleteStore(ctx context.Context, userID, storeID string) error {
	ctx, span := tracer.Start(ctx, "Supabase.DeleteStore")
	defer span.End()

	if err := c.doDelete(ctx, fmt.Sprintf("store_configs?user_id=eq.%s&id=eq.%s", userID, storeID)); err != nil {
		return &domain.ErrCollaborator{Service: "supabase/store_configs", Err: err}
	}
	return nil
}
