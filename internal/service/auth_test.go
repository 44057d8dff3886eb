package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/rmaia/finance-ai-go/internal/domain"
)

type mockUserStore struct {
	users map[string]*domain.AppUser
}

func (m *mockUserStore) GetUserByEmail(ctx context.Context, email string) (*domain.AppUser, error) {
	if u, ok := m.users[email]; ok {
		return u, nil
	}
	return nil, &domain.ErrNotFound{Resource: "app_user"}
}

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("senha-forte"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	users := &mockUserStore{users: map[string]*domain.AppUser{
		"maria@example.com": {ID: "user-1", Email: "maria@example.com", PasswordHash: string(hash)},
	}}
	return NewAuthService(users, "test-secret", time.Hour, zap.NewNop())
}

func TestLoginSuccess(t *testing.T) {
	svc := newTestAuthService(t)

	resp, err := svc.Login(context.Background(), &domain.LoginRequest{Email: "  Maria@Example.com ", Password: "senha-forte"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.UserID != "user-1" || resp.AccessToken == "" {
		t.Errorf("response = %+v", resp)
	}
	if resp.ExpiresIn != 3600 {
		t.Errorf("expires_in = %d, want 3600", resp.ExpiresIn)
	}

	claims, err := svc.ValidateAccessToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.Sub != "user-1" || claims.Email != "maria@example.com" || claims.Type != "access" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestAuthService(t)

	_, err := svc.Login(context.Background(), &domain.LoginRequest{Email: "maria@example.com", Password: "errada"})
	var unauthorized *domain.ErrUnauthorized
	if !errors.As(err, &unauthorized) {
		t.Fatalf("error = %v, want ErrUnauthorized", err)
	}
}

func TestLoginUnknownEmailAnswersLikeWrongPassword(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	_, errUnknown := svc.Login(ctx, &domain.LoginRequest{Email: "ninguem@example.com", Password: "x"})
	_, errWrong := svc.Login(ctx, &domain.LoginRequest{Email: "maria@example.com", Password: "x"})

	var u1, u2 *domain.ErrUnauthorized
	if !errors.As(errUnknown, &u1) || !errors.As(errWrong, &u2) {
		t.Fatalf("errors = %v / %v, want ErrUnauthorized for both", errUnknown, errWrong)
	}
	if u1.Error() != u2.Error() {
		t.Error("unknown email and wrong password must answer identically")
	}
}

func TestLoginValidation(t *testing.T) {
	svc := newTestAuthService(t)

	_, err := svc.Login(context.Background(), &domain.LoginRequest{Email: "", Password: ""})
	var validation *domain.ErrValidation
	if !errors.As(err, &validation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}

func TestValidateAccessTokenRejectsGarbage(t *testing.T) {
	svc := newTestAuthService(t)

	if _, err := svc.ValidateAccessToken("not-a-token"); err == nil {
		t.Error("expected a rejected token")
	}
}

func TestValidateAccessTokenRejectsForeignSecret(t *testing.T) {
	svc := newTestAuthService(t)
	other := NewAuthService(&mockUserStore{}, "another-secret", time.Hour, zap.NewNop())

	token, err := other.signAccessToken(&domain.AppUser{ID: "user-1", Email: "maria@example.com"})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := svc.ValidateAccessToken(token); err == nil {
		t.Error("a token signed with another secret must be rejected")
	}
}
