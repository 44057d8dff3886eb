package service

import (
	"context"
	"sort"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rmaia/finance-ai-go/internal/analytics"
	"github.com/rmaia/finance-ai-go/internal/domain"
	"github.com/rmaia/finance-ai-go/internal/infra/observability"
	"github.com/rmaia/finance-ai-go/internal/parse"
	"github.com/rmaia/finance-ai-go/internal/port"
)

var summaryTracer = otel.Tracer("service/summary")

// SummaryService computes dashboard summaries and period listings from
// the committed history.
type SummaryService struct {
	store   port.TransactionStore
	metrics *observability.Metrics
	logger  *zap.Logger
	now     func() time.Time
}

// NewSummaryService creates the summary service.
func NewSummaryService(store port.TransactionStore, metrics *observability.Metrics, logger *zap.Logger) *SummaryService {
	return &SummaryService{
		store:   store,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}
}

// ResolveRef parses a reference date query parameter. Empty or malformed
// values clamp to today.
func (s *SummaryService) ResolveRef(ref string) time.Time {
	if d, err := time.ParseInLocation("2006-01-02", ref, time.UTC); err == nil {
		return d
	}
	return parse.DateOnly(s.now())
}

// GetSummary aggregates the period containing ref plus the KPIs of the
// preceding period. The two period reads run concurrently. A missing
// owner yields an empty, valid summary.
func (s *SummaryService) GetSummary(ctx context.Context, owner string, g domain.Granularity, ref time.Time) (*domain.Summary, error) {
	ctx, span := summaryTracer.Start(ctx, "SummaryService.GetSummary")
	defer span.End()
	span.SetAttributes(
		attribute.String("owner.id", owner),
		attribute.String("granularity", string(g)),
	)

	if !g.Valid() {
		g = domain.GranularityMonth
	}
	if owner == "" {
		summary := analytics.Aggregate(nil, ref, g)
		return &summary, nil
	}

	current := analytics.Bounds(ref, g)
	previous := analytics.Bounds(analytics.PrevRef(ref, g), g)

	var curTx, prevTx []domain.Transaction
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		curTx, err = s.store.ListRange(egCtx, owner, current.Start, current.End)
		return err
	})
	eg.Go(func() error {
		var err error
		prevTx, err = s.store.ListRange(egCtx, owner, previous.Start, previous.End)
		return err
	})

	start := time.Now()
	if err := eg.Wait(); err != nil {
		s.metrics.IncrExternalError("supabase")
		return nil, err
	}
	s.metrics.RecordRequestDuration("summary", time.Since(start))

	summary := analytics.Aggregate(append(curTx, prevTx...), ref, g)
	return &summary, nil
}

// ListTransactions returns the owner's transactions inside the period
// containing ref, ordered by date, type and category (the dashboard
// listing order). A missing owner yields an empty list.
func (s *SummaryService) ListTransactions(ctx context.Context, owner string, g domain.Granularity, ref time.Time) ([]domain.Transaction, error) {
	ctx, span := summaryTracer.Start(ctx, "SummaryService.ListTransactions")
	defer span.End()
	span.SetAttributes(attribute.String("owner.id", owner))

	if owner == "" {
		return []domain.Transaction{}, nil
	}
	if !g.Valid() {
		g = domain.GranularityMonth
	}

	p := analytics.Bounds(ref, g)
	txs, err := s.store.ListRange(ctx, owner, p.Start, p.End)
	if err != nil {
		s.metrics.IncrExternalError("supabase")
		return nil, err
	}

	sort.SliceStable(txs, func(i, j int) bool {
		if !txs[i].Date.Equal(txs[j].Date) {
			return txs[i].Date.Before(txs[j].Date)
		}
		if txs[i].Type != txs[j].Type {
			return txs[i].Type < txs[j].Type
		}
		return txs[i].Category < txs[j].Category
	})
	return txs, nil
}
