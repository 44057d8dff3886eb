// Package service contains the application services: chat workflow,
// summaries and authentication. Services depend on ports, never on
// concrete adapters.
package service

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/rmaia/finance-ai-go/internal/analytics"
	"github.com/rmaia/finance-ai-go/internal/domain"
	"github.com/rmaia/finance-ai-go/internal/infra/observability"
	"github.com/rmaia/finance-ai-go/internal/parse"
	"github.com/rmaia/finance-ai-go/internal/port"
)

var chatTracer = otel.Tracer("service/chat")

// Canned assistant replies (pt-BR).
const (
	msgGreeting          = "Oi! Me diga algo como: 'gastei 32,50 no mercado ontem' ou 'recebi 1500 de salário'."
	msgAmountNotFound    = "❌ Não encontrei o valor. Ex: 'gastei 32,50 no mercado'."
	msgConfirmPrompt     = "Vou registrar isso. Confirma abaixo?"
	msgPendingInTheWay   = "Você já tem um lançamento aguardando confirmação. Confirme ou cancele antes de enviar outro."
	msgCancelled         = "Ok, não salvei esse lançamento."
	msgUndoDone          = "Último lançamento removido ✅"
	msgUndoNothing       = "Não há lançamentos para desfazer."
	msgWeekApplied       = "Resumo da semana aplicado no dashboard."
	msgMonthApplied      = "Resumo do mês aplicado no dashboard."
	msgTodayApplied      = "Mostrando saldo de hoje no dashboard."
	msgPeriodSet         = "Período atualizado."
	msgCommittedFallback = "Lançamento confirmado ✅"
)

// ChatService runs the confirmation workflow: message interpretation,
// pending-candidate gating, commits, undo and the session period state.
type ChatService struct {
	store    port.TransactionStore
	sessions port.Cache[*domain.Session]
	metrics  *observability.Metrics
	logger   *zap.Logger
	now      func() time.Time
}

// NewChatService creates the chat workflow service.
func NewChatService(store port.TransactionStore, sessions port.Cache[*domain.Session], metrics *observability.Metrics, logger *zap.Logger) *ChatService {
	return &ChatService{
		store:    store,
		sessions: sessions,
		metrics:  metrics,
		logger:   logger,
		now:      time.Now,
	}
}

// session returns the owner's session, creating an idle one on first use.
func (s *ChatService) session(owner string) *domain.Session {
	if sess, ok := s.sessions.Get(owner); ok {
		s.metrics.IncrCacheHit("session")
		return sess
	}
	s.metrics.IncrCacheMiss("session")
	sess := domain.NewSession(owner, parse.DateOnly(s.now()))
	s.sessions.Set(owner, sess)
	return sess
}

func (s *ChatService) save(sess *domain.Session) {
	s.sessions.Set(sess.Owner, sess)
}

// Greeting returns the canned assistant introduction.
func (s *ChatService) Greeting() *domain.ChatReply {
	return &domain.ChatReply{Kind: domain.ReplyInfo, Message: msgGreeting}
}

// HandleMessage interprets one chat message. Special commands (period
// shortcuts, undo) are handled first and never produce a candidate. A
// message without a recognizable amount is answered with an extraction
// failure and leaves the workflow idle. While a candidate awaits
// confirmation, new interpretable messages are rejected.
func (s *ChatService) HandleMessage(ctx context.Context, owner, text string) (*domain.ChatReply, error) {
	ctx, span := chatTracer.Start(ctx, "ChatService.HandleMessage")
	defer span.End()

	if owner == "" {
		return nil, &domain.ErrNoSession{}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, &domain.ErrValidation{Field: "text", Message: "mensagem vazia"}
	}
	span.SetAttributes(attribute.String("owner.id", owner))

	sess := s.session(owner)
	today := parse.DateOnly(s.now())

	if cmd := parse.DetectCommand(strings.ToLower(text)); cmd != parse.CmdNone {
		s.metrics.IncrMessage("command")
		return s.runCommand(ctx, sess, cmd, today)
	}

	if sess.State == domain.StateAwaitingConfirmation {
		s.metrics.IncrMessage("rejected_pending")
		return &domain.ChatReply{
			Kind:      domain.ReplyRejectedPending,
			Message:   msgPendingInTheWay,
			Candidate: sess.Pending,
		}, nil
	}

	cand := parse.Interpret(text, today)
	if cand.Amount == nil {
		s.metrics.IncrMessage("extraction_failure")
		s.logger.Debug("chat: amount not found", zap.String("owner", owner))
		return &domain.ChatReply{Kind: domain.ReplyExtractionFailure, Message: msgAmountNotFound}, nil
	}

	sess.Pending = &cand
	sess.State = domain.StateAwaitingConfirmation
	s.save(sess)
	s.metrics.IncrMessage("interpreted")

	return &domain.ChatReply{
		Kind:      domain.ReplyPendingConfirmation,
		Message:   msgConfirmPrompt,
		Candidate: &cand,
	}, nil
}

// runCommand applies a special command against the session.
func (s *ChatService) runCommand(ctx context.Context, sess *domain.Session, cmd parse.Command, today time.Time) (*domain.ChatReply, error) {
	switch cmd {
	case parse.CmdWeekSummary:
		sess.Granularity = domain.GranularityWeek
		sess.RefDate = today
		s.save(sess)
		return &domain.ChatReply{Kind: domain.ReplyPeriodSet, Message: msgWeekApplied}, nil
	case parse.CmdMonthSummary:
		sess.Granularity = domain.GranularityMonth
		sess.RefDate = today
		s.save(sess)
		return &domain.ChatReply{Kind: domain.ReplyPeriodSet, Message: msgMonthApplied}, nil
	case parse.CmdTodaySummary:
		sess.Granularity = domain.GranularityDay
		sess.RefDate = today
		s.save(sess)
		return &domain.ChatReply{Kind: domain.ReplyPeriodSet, Message: msgTodayApplied}, nil
	case parse.CmdUndoLast:
		return s.UndoLast(ctx, sess.Owner)
	default:
		return &domain.ChatReply{Kind: domain.ReplyInfo, Message: msgGreeting}, nil
	}
}

// Confirm commits the pending candidate. On storage failure the candidate
// stays pending so the user can retry; nothing is partially committed.
// After a successful insert the session period realigns to the month of
// the saved transaction and the reply carries the updated month balance.
func (s *ChatService) Confirm(ctx context.Context, owner string) (*domain.ChatReply, error) {
	ctx, span := chatTracer.Start(ctx, "ChatService.Confirm")
	defer span.End()

	if owner == "" {
		return nil, &domain.ErrNoSession{}
	}
	sess := s.session(owner)
	if sess.Pending == nil || sess.Pending.Amount == nil {
		return nil, &domain.ErrNoPending{}
	}

	p := sess.Pending
	tx := &domain.Transaction{
		Owner:       owner,
		Date:        p.Date,
		Type:        p.Type,
		Amount:      *p.Amount,
		Category:    p.Category,
		Description: p.Description,
	}

	start := time.Now()
	stored, err := s.store.Insert(ctx, tx)
	s.metrics.RecordRequestDuration("chat_confirm", time.Since(start))
	if err != nil {
		s.metrics.IncrExternalError("supabase")
		s.logger.Error("chat: insert failed, keeping candidate pending",
			zap.String("owner", owner),
			zap.Error(err),
		)
		return nil, err
	}

	s.metrics.IncrCommit()
	sess.Pending = nil
	sess.State = domain.StateIdle
	sess.RefDate = parse.DateOnly(stored.Date)
	if !sess.Granularity.Valid() {
		sess.Granularity = domain.GranularityMonth
	}
	s.save(sess)

	s.logger.Info("chat: transaction committed",
		zap.String("owner", owner),
		zap.String("tipo", string(stored.Type)),
		zap.Float64("valor", stored.Amount),
	)

	return &domain.ChatReply{
		Kind:      domain.ReplyCommitted,
		Message:   s.commitReply(ctx, stored),
		Candidate: p,
	}, nil
}

// commitReply builds the contextual confirmation line with the balance of
// the month containing the saved transaction. A failed balance read does
// not undo the commit; the reply just loses the context.
func (s *ChatService) commitReply(ctx context.Context, tx *domain.Transaction) string {
	month := analytics.Bounds(tx.Date, domain.GranularityMonth)
	history, err := s.store.ListRange(ctx, tx.Owner, month.Start, month.End)
	if err != nil {
		s.logger.Warn("chat: month balance unavailable after commit", zap.Error(err))
		return msgCommittedFallback
	}

	summary := analytics.Aggregate(history, tx.Date, domain.GranularityMonth)
	saldo := domain.FormatBRL(summary.Current.Balance)

	switch tx.Type {
	case domain.TxExpense:
		return "Anotado ✅. Esse gasto impacta seu saldo do mês para " + saldo + "."
	case domain.TxIncome:
		return "Boa! Receita registrada. Seu saldo do mês agora é " + saldo + "."
	default:
		return "Investimento salvo. Siga aportando! Saldo do mês: " + saldo + "."
	}
}

// Cancel drops the pending candidate without side effects.
func (s *ChatService) Cancel(ctx context.Context, owner string) (*domain.ChatReply, error) {
	_, span := chatTracer.Start(ctx, "ChatService.Cancel")
	defer span.End()

	if owner == "" {
		return nil, &domain.ErrNoSession{}
	}
	sess := s.session(owner)
	if sess.Pending == nil {
		return nil, &domain.ErrNoPending{}
	}

	sess.Pending = nil
	sess.State = domain.StateIdle
	s.save(sess)

	return &domain.ChatReply{Kind: domain.ReplyCancelled, Message: msgCancelled}, nil
}

// UndoLast removes the owner's most recently created transaction. An
// empty history is a distinct no-op reply, not an error.
func (s *ChatService) UndoLast(ctx context.Context, owner string) (*domain.ChatReply, error) {
	ctx, span := chatTracer.Start(ctx, "ChatService.UndoLast")
	defer span.End()

	if owner == "" {
		return nil, &domain.ErrNoSession{}
	}

	deleted, err := s.store.DeleteMostRecent(ctx, owner)
	if err != nil {
		s.metrics.IncrExternalError("supabase")
		return nil, err
	}
	if !deleted {
		return &domain.ChatReply{Kind: domain.ReplyUndoNoop, Message: msgUndoNothing}, nil
	}

	s.metrics.IncrUndo()
	s.logger.Info("chat: last transaction undone", zap.String("owner", owner))
	return &domain.ChatReply{Kind: domain.ReplyUndoDone, Message: msgUndoDone}, nil
}

// SetPeriod updates the session granularity and reference date. Ref
// accepts an ISO date, "prev", "next" or "today"; anything malformed
// clamps to today.
func (s *ChatService) SetPeriod(ctx context.Context, owner string, req *domain.PeriodRequest) (*domain.SessionView, error) {
	_, span := chatTracer.Start(ctx, "ChatService.SetPeriod")
	defer span.End()

	if owner == "" {
		return nil, &domain.ErrNoSession{}
	}
	sess := s.session(owner)

	if req.Granularity != "" {
		if !req.Granularity.Valid() {
			return nil, &domain.ErrValidation{Field: "granularity", Message: "use day, week ou month"}
		}
		sess.Granularity = req.Granularity
	}

	today := parse.DateOnly(s.now())
	switch req.Ref {
	case "":
		// keep current reference
	case "today":
		sess.RefDate = today
	case "prev":
		sess.RefDate = analytics.PrevRef(sess.RefDate, sess.Granularity)
	case "next":
		sess.RefDate = analytics.NextRef(sess.RefDate, sess.Granularity)
	default:
		if d, err := time.ParseInLocation("2006-01-02", req.Ref, time.UTC); err == nil {
			sess.RefDate = d
		} else {
			sess.RefDate = today
		}
	}
	s.save(sess)

	return s.view(sess), nil
}

// View returns the current session read model.
func (s *ChatService) View(ctx context.Context, owner string) (*domain.SessionView, error) {
	if owner == "" {
		return nil, &domain.ErrNoSession{}
	}
	return s.view(s.session(owner)), nil
}

func (s *ChatService) view(sess *domain.Session) *domain.SessionView {
	p := analytics.Bounds(sess.RefDate, sess.Granularity)
	return &domain.SessionView{
		State:       sess.State,
		Pending:     sess.Pending,
		Granularity: sess.Granularity,
		RefDate:     sess.RefDate.Format("2006-01-02"),
		PeriodStart: p.Start.Format("2006-01-02"),
		PeriodEnd:   p.End.Format("2006-01-02"),
	}
}
