package handler

import (
	"net/http"

	"github.com/mayordomia/mayordomia-go/internal/domain"
	"github.com/mayordomia/mayordomia-go/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func listPaymentMethodsHandler(svc *service.LedgerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /api/v1/payment-methods")
		defer span.End()

		methods, err := svc.ListPaymentMethods(ctx, UserIDFromContext(ctx))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, methods)
	}
}

func createPaymentMethodHandler(svc *service.LedgerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /api/v1/payment-methods")
		defer span.End()

		var m domain.PaymentMethod
		if !decodeBody(w, r, &m) {
			return
		}

		created, err := svc.CreatePaymentMethod(ctx, UserIDFromContext(ctx), &m)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func deletePaymentMethodHandler(svc *service.LedgerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /api/v1/payment-methods/{methodId}")
		defer span.End()

		if err := svc.DeletePaymentMethod(ctx, UserIDFromContext(ctx), chi.URLParam(r, "methodId")); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
