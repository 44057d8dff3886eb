package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/rmaia/finance-ai-go/internal/domain"
	"github.com/rmaia/finance-ai-go/internal/service"
)

// ============================================================
// Session / period navigation endpoints
// ============================================================

// GET /v1/session
func sessionViewHandler(chatSvc *service.ChatService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/session")
		defer span.End()

		view, err := chatSvc.View(ctx, OwnerFromContext(ctx))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}

// POST /v1/session/period {granularity?, ref? ("prev"|"next"|"today"|ISO date)}
func sessionPeriodHandler(chatSvc *service.ChatService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/session/period")
		defer span.End()

		var req domain.PeriodRequest
		if err := decodeJSON(r, &req); err != nil {
			handleServiceError(w, err, logger)
			return
		}

		view, err := chatSvc.SetPeriod(ctx, OwnerFromContext(ctx), &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}
