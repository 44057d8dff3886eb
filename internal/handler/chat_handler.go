package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/rmaia/finance-ai-go/internal/domain"
	"github.com/rmaia/finance-ai-go/internal/service"
)

// ============================================================
// Chat workflow endpoints
// ============================================================

func greetingHandler(chatSvc *service.ChatService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, chatSvc.Greeting())
	}
}

// POST /v1/chat/message {text}
func chatMessageHandler(chatSvc *service.ChatService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/chat/message")
		defer span.End()

		var req domain.ChatMessageRequest
		if err := decodeJSON(r, &req); err != nil {
			handleServiceError(w, err, logger)
			return
		}

		reply, err := chatSvc.HandleMessage(ctx, OwnerFromContext(ctx), req.Text)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, reply)
	}
}

// POST /v1/chat/confirm
func chatConfirmHandler(chatSvc *service.ChatService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/chat/confirm")
		defer span.End()

		reply, err := chatSvc.Confirm(ctx, OwnerFromContext(ctx))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, reply)
	}
}

// POST /v1/chat/cancel
func chatCancelHandler(chatSvc *service.ChatService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/chat/cancel")
		defer span.End()

		reply, err := chatSvc.Cancel(ctx, OwnerFromContext(ctx))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, reply)
	}
}

// DELETE /v1/users/me/transactions/last
func undoLastHandler(chatSvc *service.ChatService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/users/me/transactions/last")
		defer span.End()

		reply, err := chatSvc.UndoLast(ctx, OwnerFromContext(ctx))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, reply)
	}
}
