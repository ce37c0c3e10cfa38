package handler

import (
	"net/http"

	"github.com/mayordomia/mayordomia-go/internal/domain"
	"github.com/mayordomia/mayordomia-go/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func listDebtsHandler(svc *service.LedgerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /api/v1/debts")
		defer span.End()

		debts, err := svc.ListDebts(ctx, UserIDFromContext(ctx))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, debts)
	}
}

func createDebtHandler(svc *service.LedgerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /api/v1/debts")
		defer span.End()

		var d domain.Debt
		if !decodeBody(w, r, &d) {
			return
		}

		created, err := svc.CreateDebt(ctx, UserIDFromContext(ctx), &d)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func updateDebtHandler(svc *service.LedgerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /api/v1/debts/{debtId}")
		defer span.End()

		var updates map[string]any
		if !decodeBody(w, r, &updates) {
			return
		}

		updated, err := svc.UpdateDebt(ctx, UserIDFromContext(ctx), chi.URLParam(r, "debtId"), updates)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func deleteDebtHandler(svc *service.LedgerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /api/v1/debts/{debtId}")
		defer span.End()

		if err := svc.DeleteDebt(ctx, UserIDFromContext(ctx), chi.URLParam(r, "debtId")); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func payDebtHandler(svc *service.LedgerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /api/v1/debts/{debtId}/pay")
		defer span.End()

		var body struct {
			Amount          float64 `json:"amount"`
			PaymentMethodID string  `json:"payment_method_id"`
		}
		if !decodeBody(w, r, &body) {
			return
		}

		result, err := svc.PayDebt(ctx, UserIDFromContext(ctx), chi.URLParam(r, "debtId"), body.Amount, body.PaymentMethodID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}
