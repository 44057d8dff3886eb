package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"

	"github.com/rmaia/finance-ai-go/internal/domain"
)

// Metrics holds all Prometheus metrics for the backend.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	// Exposed so the /metrics endpoint can use it.
	Registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	externalErrors  *prometheus.CounterVec
	cacheHits       *prometheus.CounterVec
	cacheMisses     *prometheus.CounterVec
	messagesTotal   *prometheus.CounterVec
	commitsTotal    prometheus.Counter
	undosTotal      prometheus.Counter
}

// NewMetrics creates a dedicated Prometheus registry and registers all
// application metrics in it. Using a private registry avoids "duplicate
// collector" panics when NewMetrics is called more than once (e.g. in tests).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "financeai_request_duration_seconds",
				Help:    "Duration of requests by operation.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		externalErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "financeai_external_errors_total",
				Help: "Total errors from external services.",
			},
			[]string{"service"},
		),
		cacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "financeai_cache_hits_total",
				Help: "Total cache hits.",
			},
			[]string{"cache"},
		),
		cacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "financeai_cache_misses_total",
				Help: "Total cache misses.",
			},
			[]string{"cache"},
		),
		messagesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "financeai_chat_messages_total",
				Help: "Total chat messages by interpretation outcome.",
			},
			[]string{"outcome"},
		),
		commitsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "financeai_transactions_committed_total",
				Help: "Total transactions committed after confirmation.",
			},
		),
		undosTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "financeai_transactions_undone_total",
				Help: "Total transactions removed by the undo command.",
			},
		),
	}
}

// RecordRequestDuration records the duration of an operation.
func (m *Metrics) RecordRequestDuration(operation string, d time.Duration) {
	m.requestDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// IncrExternalError increments the external error counter.
func (m *Metrics) IncrExternalError(service string) {
	m.externalErrors.WithLabelValues(service).Inc()
}

// IncrCacheHit increments the cache hit counter.
func (m *Metrics) IncrCacheHit(cache string) {
	m.cacheHits.WithLabelValues(cache).Inc()
}

// IncrCacheMiss increments the cache miss counter.
func (m *Metrics) IncrCacheMiss(cache string) {
	m.cacheMisses.WithLabelValues(cache).Inc()
}

// IncrMessage increments the chat message counter with an outcome label
// (interpreted, extraction_failure, command, rejected_pending).
func (m *Metrics) IncrMessage(outcome string) {
	m.messagesTotal.WithLabelValues(outcome).Inc()
}

// IncrCommit increments the committed transactions counter.
func (m *Metrics) IncrCommit() {
	m.commitsTotal.Inc()
}

// IncrUndo increments the undo counter.
func (m *Metrics) IncrUndo() {
	m.undosTotal.Inc()
}

// GetChatSnapshot returns a snapshot of chat metrics suitable for the
// GET /v1/metrics/chat endpoint.
func (m *Metrics) GetChatSnapshot() *domain.ChatMetrics {
	// Prometheus counters expose cumulative values.
	interpreted := getCounterValue(m.messagesTotal, "interpreted")
	failures := getCounterValue(m.messagesTotal, "extraction_failure")
	commands := getCounterValue(m.messagesTotal, "command")
	rejected := getCounterValue(m.messagesTotal, "rejected_pending")
	total := interpreted + failures + commands + rejected

	cacheHits := getCounterValue(m.cacheHits, "session")
	cacheMisses := getCounterValue(m.cacheMisses, "session")

	failRate := float64(0)
	if total > 0 {
		failRate = failures / total
	}
	cacheHitRate := float64(0)
	if cacheHits+cacheMisses > 0 {
		cacheHitRate = cacheHits / (cacheHits + cacheMisses)
	}

	return &domain.ChatMetrics{
		MessagesTotal:      int64(total),
		ExtractionFailures: int64(failures),
		Commits:            int64(counterValue(m.commitsTotal)),
		Undos:              int64(counterValue(m.undosTotal)),
		ExtractionFailRate: failRate,
		CacheHitRate:       cacheHitRate,
		Period:             "all_time",
	}
}

// getCounterValue extracts the current float64 value from a CounterVec for a given label.
func getCounterValue(cv *prometheus.CounterVec, label string) float64 {
	counter := cv.WithLabelValues(label)
	m := &dto.Metric{}
	if err := counter.(prometheus.Metric).Write(m); err != nil {
		return 0
	}
	if m.Counter != nil && m.Counter.Value != nil {
		return *m.Counter.Value
	}
	return 0
}

// counterValue extracts the current float64 value from a plain Counter.
func counterValue(c prometheus.Counter) float64 {
	m := &dto.Metric{}
	if err := c.Write(m); err != nil {
		return 0
	}
	if m.Counter != nil && m.Counter.Value != nil {
		return *m.Counter.Value
	}
	return 0
}
