package handler

import (
	"net/http"

	"github.com/mayordomia/mayordomia-go/internal/domain"
	"github.com/mayordomia/mayordomia-go/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func listFixedExpensesHandler(svc *service.LedgerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /api/v1/fixed-expenses")
		defer span.End()

		expenses, err := svc.ListFixedExpenses(ctx, UserIDFromContext(ctx))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, expenses)
	}
}

func createFixedExpenseHandler(svc *service.LedgerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /api/v1/fixed-expenses")
		defer span.End()

		var fe domain.FixedExpense
		if !decodeBody(w, r, &fe) {
			return
		}

		created, err := svc.CreateFixedExpense(ctx, UserIDFromContext(ctx), &fe)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func updateFixedExpenseHandler(svc *service.LedgerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /api/v1/fixed-expenses/{expenseId}")
		defer span.End()

		var updates map[string]any
		if !decodeBody(w, r, &updates) {
			return
		}

		updated, err := svc.UpdateFixedExpense(ctx, UserIDFromContext(ctx), chi.URLParam(r, "expenseId"), updates)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func deleteFixedExpenseHandler(svc *service.LedgerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /api/v1/fixed-expenses/{expenseId}")
		defer span.End()

		if err := svc.DeleteFixedExpense(ctx, UserIDFromContext(ctx), chi.URLParam(r, "expenseId")); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// markFixedExpensePaidHandler runs the two-phase payment. The commit result
// is always reported to the caller, including the PARTIAL case where the
// transaction exists but the expense row could not be stamped.
func markFixedExpensePaidHandler(svc *service.LedgerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /api/v1/fixed-expenses/{expenseId}/pay")
		defer span.End()

		result, err := svc.MarkFixedExpensePaid(ctx, UserIDFromContext(ctx), chi.URLParam(r, "expenseId"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

func unmarkFixedExpensePaidHandler(svc *service.LedgerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /api/v1/fixed-expenses/{expenseId}/unpay")
		defer span.End()

		result, err := svc.UnmarkFixedExpensePaid(ctx, UserIDFromContext(ctx), chi.URLParam(r, "expenseId"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}
