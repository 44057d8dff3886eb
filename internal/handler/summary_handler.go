package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/rmaia/finance-ai-go/internal/domain"
	"github.com/rmaia/finance-ai-go/internal/service"
)

// ============================================================
// Ledger + summary endpoints
// ============================================================

// GET /v1/users/me/summary?granularity=&ref=
func summaryHandler(summarySvc *service.SummaryService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/users/me/summary")
		defer span.End()

		g := domain.Granularity(r.URL.Query().Get("granularity"))
		ref := summarySvc.ResolveRef(r.URL.Query().Get("ref"))

		summary, err := summarySvc.GetSummary(ctx, OwnerFromContext(ctx), g, ref)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, summary)
	}
}

// GET /v1/users/me/transactions?granularity=&ref=
func listTransactionsHandler(summarySvc *service.SummaryService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/users/me/transactions")
		defer span.End()

		g := domain.Granularity(r.URL.Query().Get("granularity"))
		ref := summarySvc.ResolveRef(r.URL.Query().Get("ref"))

		txs, err := summarySvc.ListTransactions(ctx, OwnerFromContext(ctx), g, ref)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, txs)
	}
}
