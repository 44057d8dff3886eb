// Package domain defines the core business entities for Finance AI.
// These models are independent of external services and represent the
// canonical data structures used throughout the backend.
package domain

import "time"

// ============================================================
// Transaction types
// ============================================================

// TxType classifies a transaction. The wire values match the `tipo` column
// of the Supabase `transactions` table (pt-BR).
type TxType string

const (
	TxExpense    TxType = "gasto"
	TxIncome     TxType = "ganho"
	TxInvestment TxType = "investimento"
)

// Valid reports whether t is one of the three known variants.
func (t TxType) Valid() bool {
	return t == TxExpense || t == TxIncome || t == TxInvestment
}

// CategoryOther is the fallback category when no keyword matches.
const CategoryOther = "outros"

// ============================================================
// Transactions
// ============================================================

// Transaction is a committed financial record, owned by exactly one user.
// Records are append-only: created by the confirmation workflow, removed
// only by the undo-last command, never mutated in place.
type Transaction struct {
	ID          string    `json:"id"`
	Owner       string    `json:"user_id"`
	Date        time.Time `json:"data"`
	Type        TxType    `json:"tipo"`
	Amount      float64   `json:"valor"` // always > 0
	Category    string    `json:"categoria"`
	Description string    `json:"descricao"`
	CreatedAt   time.Time `json:"created_at"`
}

// Candidate is an interpreted but not yet committed transaction.
// A nil Amount means no monetary value could be extracted; such a
// candidate can never be committed.
type Candidate struct {
	Date        time.Time `json:"data"`
	Type        TxType    `json:"tipo"`
	Amount      *float64  `json:"valor"`
	Category    string    `json:"categoria"`
	Description string    `json:"descricao"`
}

// ============================================================
// Sessions (confirmation workflow state)
// ============================================================

// WorkflowState is the confirmation workflow position for a session.
type WorkflowState string

const (
	StateIdle                 WorkflowState = "idle"
	StateAwaitingConfirmation WorkflowState = "awaiting_confirmation"
)

// Granularity is the period unit for summaries.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

// Valid reports whether g is a known granularity.
func (g Granularity) Valid() bool {
	return g == GranularityDay || g == GranularityWeek || g == GranularityMonth
}

// Session holds the per-owner workflow state and the active period
// reference. One session per owner; never shared across owners.
type Session struct {
	Owner       string        `json:"owner"`
	State       WorkflowState `json:"state"`
	Pending     *Candidate    `json:"pending,omitempty"`
	Granularity Granularity   `json:"granularity"`
	RefDate     time.Time     `json:"ref_date"`
}

// NewSession creates an idle session with the default month view anchored
// on today.
func NewSession(owner string, today time.Time) *Session {
	return &Session{
		Owner:       owner,
		State:       StateIdle,
		Granularity: GranularityMonth,
		RefDate:     today,
	}
}

// ============================================================
// Summaries (aggregation output, never persisted)
// ============================================================

// KPI holds the headline figures for one period. Investments are excluded.
type KPI struct {
	IncomeTotal  float64 `json:"income_total"`
	ExpenseTotal float64 `json:"expense_total"`
	Balance      float64 `json:"balance"`
}

// CategoryAmount is one row of a category breakdown.
type CategoryAmount struct {
	Category string  `json:"categoria"`
	Amount   float64 `json:"valor"`
}

// DailyPoint is one point of the daily or cumulative balance series.
// Value is in whole reais, or in thousands when the summary's InThousands
// flag is set.
type DailyPoint struct {
	Date  time.Time `json:"data"`
	Value float64   `json:"valor"`
}

// Summary is the full aggregation output for one period.
type Summary struct {
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`

	Current  KPI `json:"current"`
	Previous KPI `json:"previous"`

	ExpenseByCategory []CategoryAmount `json:"expense_by_category"`
	IncomeByCategory  []CategoryAmount `json:"income_by_category"`

	DailyBalance      []DailyPoint `json:"daily_balance"`
	CumulativeBalance []DailyPoint `json:"cumulative_balance"`

	// InThousands is set when the largest absolute daily balance reaches
	// 10,000 and all series values are expressed in R$ mil.
	InThousands bool `json:"in_thousands"`
}

// ============================================================
// Chat API types
// ============================================================

// ReplyKind tags the assistant's reply so the frontend can render it.
type ReplyKind string

const (
	ReplyInfo                ReplyKind = "info"
	ReplyExtractionFailure   ReplyKind = "extraction_failure"
	ReplyPendingConfirmation ReplyKind = "pending_confirmation"
	ReplyRejectedPending     ReplyKind = "rejected_pending"
	ReplyCommitted           ReplyKind = "committed"
	ReplyCancelled           ReplyKind = "cancelled"
	ReplyUndoDone            ReplyKind = "undo_done"
	ReplyUndoNoop            ReplyKind = "undo_noop"
	ReplyPeriodSet           ReplyKind = "period_set"
)

// ChatMessageRequest is the POST body for /v1/chat/message.
type ChatMessageRequest struct {
	Text string `json:"text"`
}

// ChatReply is the assistant's answer to a chat action.
type ChatReply struct {
	Kind      ReplyKind  `json:"kind"`
	Message   string     `json:"message"`
	Candidate *Candidate `json:"candidate,omitempty"`
}

// SessionView is the read model returned by GET /v1/session.
type SessionView struct {
	State       WorkflowState `json:"state"`
	Pending     *Candidate    `json:"pending,omitempty"`
	Granularity Granularity   `json:"granularity"`
	RefDate     string        `json:"ref_date"`
	PeriodStart string        `json:"period_start"`
	PeriodEnd   string        `json:"period_end"`
}

// PeriodRequest is the POST body for /v1/session/period.
// Ref accepts an ISO date ("2024-03-15") or one of "prev", "next", "today".
type PeriodRequest struct {
	Granularity Granularity `json:"granularity,omitempty"`
	Ref         string      `json:"ref,omitempty"`
}

// ============================================================
// Auth / Users
// ============================================================

// AppUser is a row of the Supabase app_users table.
type AppUser struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// LoginRequest is the body for POST /v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the body for a successful login.
type LoginResponse struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int    `json:"expiresIn"`
	UserID      string `json:"userId"`
}

// ============================================================
// Health & operational metrics
// ============================================================

// HealthStatus is returned by GET /healthz.
type HealthStatus struct {
	Status   string          `json:"status"` // healthy, degraded, unhealthy
	Services []ServiceHealth `json:"services"`
}

// ServiceHealth represents the health of an individual dependency.
type ServiceHealth struct {
	Name        string `json:"name"`
	Status      string `json:"status"`
	LatencyMs   int64  `json:"latencyMs"`
	LastChecked string `json:"lastChecked"`
}

// ChatMetrics is the operational snapshot returned by GET /v1/metrics/chat.
type ChatMetrics struct {
	MessagesTotal      int64   `json:"messagesTotal"`
	ExtractionFailures int64   `json:"extractionFailures"`
	Commits            int64   `json:"commits"`
	Undos              int64   `json:"undos"`
	ExtractionFailRate float64 `json:"extractionFailRate"`
	CacheHitRate       float64 `json:"cacheHitRate"`
	Period             string  `json:"period"`
}
