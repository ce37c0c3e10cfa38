package handler

import (
	"net/http"

	"github.com/mayordomia/mayordomia-go/internal/domain"
	"github.com/mayordomia/mayordomia-go/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func listShoppingItemsHandler(svc *service.LedgerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /api/v1/shopping/items")
		defer span.End()

		items, err := svc.ListShoppingItems(ctx, UserIDFromContext(ctx))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, items)
	}
}

func createShoppingItemHandler(svc *service.LedgerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /api/v1/shopping/items")
		defer span.End()

		var item domain.ShoppingListItem
		if !decodeBody(w, r, &item) {
			return
		}

		created, err := svc.CreateShoppingItem(ctx, UserIDFromContext(ctx), &item)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func toggleShoppingItemHandler(svc *service.LedgerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /api/v1/shopping/items/{itemId}/toggle")
		defer span.End()

		var body struct {
			Checked bool `json:"checked"`
		}
		if !decodeBody(w, r, &body) {
			return
		}

		updated, err := svc.ToggleShoppingItem(ctx, UserIDFromContext(ctx), chi.URLParam(r, "itemId"), body.Checked)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func deleteShoppingItemHandler(svc *service.LedgerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /api/v1/shopping/items/{itemId}")
		defer span.End()

		if err := svc.DeleteShoppingItem(ctx, UserIDFromContext(ctx), chi.URLParam(r, "itemId")); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func listStoresHandler(svc *service.LedgerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /api/v1/shopping/stores")
		defer span.End()

		stores, err := svc.ListStores(ctx, UserIDFromContext(ctx))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, stores)
	}
}

func createStoreHandler(svc *service.LedgerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /api/v1/shopping/stores")
		defer span.End()

		var cfg domain.StoreConfig
		if !decodeBody(w, r, &cfg) {
			return
		}

		created, err := svc.CreateStore(ctx, UserIDFromContext(ctx), &cfg)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func deleteStoreHandler(svc *service.LedgerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /api/v1/shopping/stores/{storeId}")
		defer span.End()

		if err := svc.DeleteStore(ctx, UserIDFromContext(ctx), chi.URLParam(r, "storeId")); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// compareShoppingHandler prices the pending shopping list across the
// configured stores. The AI collaborator failing is not an error here; the
// service degrades to a zero-filled comparison.
func compareShoppingHandler(svc *service.AdvisorService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /api/v1/shopping/compare")
		defer span.End()

		comparison, err := svc.CompareShopping(ctx, UserIDFromContext(ctx))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, comparison)
	}
}
