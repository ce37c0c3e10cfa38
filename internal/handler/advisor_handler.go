package handler

import (
	"net/http"

	"github.com/mayordomia/mayordomia-go/internal/domain"
	"github.com/mayordomia/mayordomia-go/internal/service"

	"go.uber.org/zap"
)

// advisorHandler asks the AI advisor a stewardship question. A collaborator
// failure still answers 200 with the apology text, so the frontend never has
// to special-case the AI being down.
func advisorHandler(svc *service.AdvisorService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /api/v1/advisor")
		defer span.End()

		var req domain.AdvisorRequest
		if !decodeBody(w, r, &req) {
			return
		}

		resp, err := svc.Advise(ctx, UserIDFromContext(ctx), req.Query)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
