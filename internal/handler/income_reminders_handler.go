package handler

import (
	"net/http"

	"github.com/mayordomia/mayordomia-go/internal/domain"
	"github.com/mayordomia/mayordomia-go/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func listIncomeRemindersHandler(svc *service.LedgerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /api/v1/income-reminders")
		defer span.End()

		reminders, err := svc.ListIncomeReminders(ctx, UserIDFromContext(ctx))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, reminders)
	}
}

func createIncomeReminderHandler(svc *service.LedgerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /api/v1/income-reminders")
		defer span.End()

		var rem domain.IncomeReminder
		if !decodeBody(w, r, &rem) {
			return
		}

		created, err := svc.CreateIncomeReminder(ctx, UserIDFromContext(ctx), &rem)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func updateIncomeReminderHandler(svc *service.LedgerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /api/v1/income-reminders/{reminderId}")
		defer span.End()

		var updates map[string]any
		if !decodeBody(w, r, &updates) {
			return
		}

		updated, err := svc.UpdateIncomeReminder(ctx, UserIDFromContext(ctx), chi.URLParam(r, "reminderId"), updates)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func deleteIncomeReminderHandler(svc *service.LedgerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /api/v1/income-reminders/{reminderId}")
		defer span.End()

		if err := svc.DeleteIncomeReminder(ctx, UserIDFromContext(ctx), chi.URLParam(r, "reminderId")); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
