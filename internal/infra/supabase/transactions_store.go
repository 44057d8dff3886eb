package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/rmaia/finance-ai-go/internal/domain"
	"github.com/rmaia/finance-ai-go/internal/infra/resilience"
)

// dateLayout is the wire format of the `data` column.
const dateLayout = "2006-01-02"

// txRow maps the columns of the `transactions` table.
type txRow struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	Date        string  `json:"data"`
	Type        string  `json:"tipo"`
	Amount      float64 `json:"valor"`
	Category    string  `json:"categoria"`
	Description string  `json:"descricao"`
	CreatedAt   string  `json:"created_at"`
}

func (r txRow) toDomain() domain.Transaction {
	d, err := time.Parse(dateLayout, r.Date)
	if err != nil {
		d, _ = time.Parse(time.RFC3339, r.Date)
	}
	created, _ := time.Parse(time.RFC3339, r.CreatedAt)
	return domain.Transaction{
		ID:          r.ID,
		Owner:       r.UserID,
		Date:        d,
		Type:        domain.TxType(r.Type),
		Amount:      r.Amount,
		Category:    r.Category,
		Description: r.Description,
		CreatedAt:   created,
	}
}

// ListByOwner implements port.TransactionStore. Rows come back ordered by
// date then creation time, ascending.
func (c *Client) ListByOwner(ctx context.Context, owner string) ([]domain.Transaction, error) {
	path := fmt.Sprintf("transactions?user_id=eq.%s&order=data.asc,created_at.asc", url.QueryEscape(owner))
	return c.listTransactions(ctx, "Supabase.ListByOwner", owner, path)
}

// ListRange implements port.TransactionStore with an inclusive date filter.
func (c *Client) ListRange(ctx context.Context, owner string, start, end time.Time) ([]domain.Transaction, error) {
	path := fmt.Sprintf("transactions?user_id=eq.%s&data=gte.%s&data=lte.%s&order=data.asc,created_at.asc",
		url.QueryEscape(owner), start.Format(dateLayout), end.Format(dateLayout))
	return c.listTransactions(ctx, "Supabase.ListRange", owner, path)
}

func (c *Client) listTransactions(ctx context.Context, spanName, owner, path string) ([]domain.Transaction, error) {
	ctx, span := tracer.Start(ctx, spanName)
	defer span.End()
	span.SetAttributes(attribute.String("owner.id", owner))

	var transactions []domain.Transaction

	_, err := c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			body, err := c.doGet(ctx, path)
			if err != nil {
				return err
			}

			if body == nil || string(body) == "[]" {
				transactions = []domain.Transaction{}
				return nil
			}

			var rows []txRow
			if err := json.Unmarshal(body, &rows); err != nil {
				return fmt.Errorf("failed to decode transactions: %w", err)
			}

			transactions = make([]domain.Transaction, 0, len(rows))
			for _, r := range rows {
				transactions = append(transactions, r.toDomain())
			}
			return nil
		})
	})

	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/transactions", Err: err}
	}

	return transactions, nil
}

// Insert appends one committed transaction. The id is generated here; the
// insert is not retried so a flaky network cannot duplicate rows.
func (c *Client) Insert(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	ctx, span := tracer.Start(ctx, "Supabase.Insert")
	defer span.End()
	span.SetAttributes(attribute.String("owner.id", tx.Owner))

	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}

	var stored *domain.Transaction

	_, err := c.cb.Execute(func() (any, error) {
		body, err := c.doPost(ctx, "transactions", map[string]any{
			"id":        tx.ID,
			"user_id":   tx.Owner,
			"data":      tx.Date.Format(dateLayout),
			"tipo":      string(tx.Type),
			"valor":     tx.Amount,
			"categoria": tx.Category,
			"descricao": tx.Description,
		})
		if err != nil {
			return nil, err
		}

		var rows []txRow
		if err := json.Unmarshal(body, &rows); err != nil || len(rows) == 0 {
			// Insert succeeded but representation is unusable; echo the input.
			out := *tx
			stored = &out
			return nil, nil
		}
		out := rows[0].toDomain()
		stored = &out
		return nil, nil
	})

	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/transactions", Err: err}
	}

	return stored, nil
}

// DeleteMostRecent removes the owner's newest row by creation time.
// Returns false without error when the history is empty.
func (c *Client) DeleteMostRecent(ctx context.Context, owner string) (bool, error) {
	ctx, span := tracer.Start(ctx, "Supabase.DeleteMostRecent")
	defer span.End()
	span.SetAttributes(attribute.String("owner.id", owner))

	deleted := false

	_, err := c.cb.Execute(func() (any, error) {
		path := fmt.Sprintf("transactions?user_id=eq.%s&order=created_at.desc&limit=1&select=id", url.QueryEscape(owner))
		body, err := c.doGet(ctx, path)
		if err != nil {
			return nil, err
		}
		if body == nil || string(body) == "[]" {
			return nil, nil // nothing to undo
		}

		var rows []struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(body, &rows); err != nil {
			return nil, fmt.Errorf("failed to decode last transaction id: %w", err)
		}
		if len(rows) == 0 {
			return nil, nil
		}

		if err := c.doDelete(ctx, fmt.Sprintf("transactions?id=eq.%s", url.QueryEscape(rows[0].ID))); err != nil {
			return nil, err
		}
		deleted = true
		return nil, nil
	})

	if err != nil {
		return false, &domain.ErrExternalService{Service: "supabase/transactions", Err: err}
	}

	return deleted, nil
}

// Ping verifies the store is reachable.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.doGet(ctx, "transactions?limit=1&select=id")
	if err != nil {
		return &domain.ErrExternalService{Service: "supabase/transactions", Err: err}
	}
	return nil
}
