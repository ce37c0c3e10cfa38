package service

import (
	"context"
	"strings"

	"github.com/mayordomia/mayordomia-go/internal/domain"
)

// ============================================================
// Shopping list + store configuration
// ============================================================

func (s *LedgerService) ListShoppingItems(ctx context.Context, userID string) ([]domain.ShoppingListItem, error) {
	ctx, span := tracer.Start(ctx, "LedgerService.ListShoppingItems")
	defer span.End()

	return s.store.ListShoppingItems(ctx, userID)
}

func (s *LedgerService) CreateShoppingItem(ctx context.Context, userID string, item *domain.ShoppingListItem) (*domain.ShoppingListItem, error) {
	ctx, span := tracer.Start(ctx, "LedgerService.CreateShoppingItem")
	defer span.End()

	if strings.TrimSpace(item.Name) == "" {
		return nil, &domain.ErrValidation{Field: "name", Message: "required"}
	}
	if item.Quantity <= 0 {
		item.Quantity = 1
	}
	return s.store.CreateShoppingItem(ctx, userID, item)
}

// ToggleShoppingItem flips an item's checked state.
func (s *LedgerService) ToggleShoppingItem(ctx context.Context, userID, itemID string, checked bool) (*domain.ShoppingListItem, error) {
	ctx, span := tracer.Start(ctx, "LedgerService.ToggleShoppingItem")
	defer span.End()

	return s.store.UpdateShoppingItem(ctx, userID, itemID, map[string]any{"checked": checked})
}

func (s *LedgerService) DeleteShoppingItem(ctx context.Context, userID, itemID string) error {
	ctx, span := tracer.Start(ctx, "LedgerService.DeleteShoppingItem")
	defer span.End()

	return s.store.DeleteShoppingItem(ctx, userID, itemID)
}

func (s *LedgerService) ListStores(ctx context.Context, userID string) ([]domain.StoreConfig, error) {
	ctx, span := tracer.Start(ctx, "LedgerService.ListStores")
	defer span.End()

	return s.store.ListStores(ctx, userID)
}

func (s *LedgerService) CreateStore(ctx context.Context, userID string, cfg *domain.StoreConfig) (*domain.StoreConfig, error) {
	ctx, span := tracer.Start(ctx, "LedgerService.CreateStore")
	defer span.End()

	if strings.TrimSpace(cfg.Name) == "" {
		return nil, &domain.ErrValidation{Field: "name", Message: "required"}
	}
	return s.store.CreateStore(ctx, userID, cfg)
}

func (s *LedgerService) DeleteStore(ctx context.Context, userID, storeID string) error {
	ctx, span := tracer.Start(ctx, "LedgerService.DeleteStore")
	defer span.End()

	return s.store.DeleteStore(ctx, userID, storeID)
}
