package handler

import (
	"net/http"
	"strconv"

	"github.com/mayordomia/mayordomia-go/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func budgetPeriod(r *http.Request) (year, month int, ok bool) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil || year < 2000 || year > 2100 {
		return 0, 0, false
	}
	month, err = strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil || month < 1 || month > 12 {
		return 0, 0, false
	}
	return year, month, true
}

// getBudgetHandler returns the budget for the period, or a JSON null when
// none has been saved yet.
func getBudgetHandler(svc *service.LedgerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /api/v1/budgets/{year}/{month}")
		defer span.End()

		year, month, ok := budgetPeriod(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid budget period")
			return
		}

		budget, err := svc.GetBudget(ctx, UserIDFromContext(ctx), year, month)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, budget)
	}
}

func saveBudgetHandler(svc *service.LedgerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /api/v1/budgets/{year}/{month}")
		defer span.End()

		year, month, ok := budgetPeriod(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid budget period")
			return
		}

		var body struct {
			EstimatedIncome string            `json:"estimated_income"`
			Allocations     map[string]string `json:"allocations"`
		}
		if !decodeBody(w, r, &body) {
			return
		}

		saved, err := svc.SaveBudget(ctx, UserIDFromContext(ctx), &service.BudgetSaveRequest{
			Year:            year,
			Month:           month,
			EstimatedIncome: body.EstimatedIncome,
			Allocations:     body.Allocations,
		})
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, saved)
	}
}
