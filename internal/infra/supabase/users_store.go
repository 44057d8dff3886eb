package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/rmaia/finance-ai-go/internal/domain"
	"github.com/rmaia/finance-ai-go/internal/infra/resilience"
)

// userRow maps the columns of the `app_users` table.
type userRow struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
	CreatedAt    string `json:"created_at"`
}

// GetUserByEmail implements port.UserStore. An unknown email returns
// ErrNotFound so the auth service can answer with invalid credentials
// instead of a gateway failure.
func (c *Client) GetUserByEmail(ctx context.Context, email string) (*domain.AppUser, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetUserByEmail")
	defer span.End()
	span.SetAttributes(attribute.String("user.email", email))

	var user *domain.AppUser

	_, err := c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			path := fmt.Sprintf("app_users?email=eq.%s&limit=1", url.QueryEscape(email))
			body, err := c.doGet(ctx, path)
			if err != nil {
				return err
			}

			if body == nil || string(body) == "[]" {
				user = nil
				return nil
			}

			var rows []userRow
			if err := json.Unmarshal(body, &rows); err != nil {
				return fmt.Errorf("failed to decode app user: %w", err)
			}
			if len(rows) == 0 {
				user = nil
				return nil
			}

			r := rows[0]
			created, _ := time.Parse(time.RFC3339, r.CreatedAt)
			user = &domain.AppUser{
				ID:           r.ID,
				Email:        r.Email,
				PasswordHash: r.PasswordHash,
				CreatedAt:    created,
			}
			return nil
		})
	})

	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/app_users", Err: err}
	}
	if user == nil {
		return nil, &domain.ErrNotFound{Resource: "app_user", ID: email}
	}

	return user, nil
}
