// Package port defines the interfaces (ports) for external dependencies.
// Following hexagonal architecture, these ports decouple the domain/service
// layer from concrete implementations.
package port

import (
	"context"
	"time"

	"github.com/rmaia/finance-ai-go/internal/domain"
)

// TransactionStore is the persistence collaborator for committed
// transactions. Implemented by the Supabase adapter (or any other
// persistence layer). The history is append-only: no updates, and the
// only delete is the most recent row per owner.
type TransactionStore interface {
	// ListByOwner returns the owner's full history ordered by date then
	// creation time, ascending.
	ListByOwner(ctx context.Context, owner string) ([]domain.Transaction, error)

	// ListRange returns the owner's transactions with date within
	// [start, end] inclusive, same ordering as ListByOwner.
	ListRange(ctx context.Context, owner string, start, end time.Time) ([]domain.Transaction, error)

	// Insert appends one committed transaction and returns the stored row.
	Insert(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error)

	// DeleteMostRecent removes the owner's most recently created row.
	// Returns false without error when the history is empty.
	DeleteMostRecent(ctx context.Context, owner string) (bool, error)

	// Ping verifies the store is reachable.
	Ping(ctx context.Context) error
}

// UserStore looks up application users for authentication.
type UserStore interface {
	GetUserByEmail(ctx context.Context, email string) (*domain.AppUser, error)
}

// Cache provides generic caching with TTL.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	Delete(key string)
}
