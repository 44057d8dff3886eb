package supabase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/rmaia/finance-ai-go/internal/domain"
	"github.com/rmaia/finance-ai-go/internal/infra/resilience"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := resilience.Config{MaxRetries: 0, InitialBackoff: time.Millisecond}
	client := NewClient(srv.Client(), srv.URL, "anon-key", "service-key", resilience.NewCircuitBreaker("test"), cfg, zap.NewNop())
	return client, srv
}

func TestListRange(t *testing.T) {
	var gotPath string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.RequestURI()
		if r.Header.Get("apikey") != "anon-key" || r.Header.Get("Authorization") != "Bearer service-key" {
			t.Errorf("missing auth headers: %v", r.Header)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id":"a","user_id":"user-1","data":"2024-03-05","tipo":"ganho","valor":3000,"categoria":"Salário","descricao":"salário","created_at":"2024-03-05T10:00:00Z"},
			{"id":"b","user_id":"user-1","data":"2024-03-10","tipo":"gasto","valor":800,"categoria":"Mercado","descricao":"mercado","created_at":"2024-03-10T12:00:00Z"}
		]`))
	})

	start := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC)
	txs, err := client.ListRange(context.Background(), "user-1", start, end)
	if err != nil {
		t.Fatalf("ListRange: %v", err)
	}

	if gotPath != "/rest/v1/transactions?user_id=eq.user-1&data=gte.2024-03-01&data=lte.2024-03-31&order=data.asc,created_at.asc" {
		t.Errorf("path = %q", gotPath)
	}
	if len(txs) != 2 {
		t.Fatalf("got %d rows", len(txs))
	}
	if txs[0].Type != domain.TxIncome || txs[0].Amount != 3000 {
		t.Errorf("row 0 = %+v", txs[0])
	}
	if !txs[1].Date.Equal(time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("row 1 date = %v", txs[1].Date)
	}
}

func TestListByOwnerEmpty(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	txs, err := client.ListByOwner(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if txs == nil || len(txs) != 0 {
		t.Errorf("expected an empty non-nil slice, got %v", txs)
	}
}

func TestListWrapsExternalError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusInternalServerError)
	})

	_, err := client.ListByOwner(context.Background(), "user-1")
	var external *domain.ErrExternalService
	if !errors.As(err, &external) {
		t.Fatalf("error = %v, want ErrExternalService", err)
	}
	if external.Service != "supabase/transactions" {
		t.Errorf("service = %q", external.Service)
	}
}

func TestInsert(t *testing.T) {
	var gotBody map[string]any
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.Header.Get("Prefer") != "return=representation" {
			t.Errorf("Prefer header = %q", r.Header.Get("Prefer"))
		}
		json.NewDecoder(r.Body).Decode(&gotBody)

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`[{"id":"` + gotBody["id"].(string) + `","user_id":"user-1","data":"2024-03-14","tipo":"gasto","valor":37.9,"categoria":"Mercado","descricao":"mercado","created_at":"2024-03-15T09:00:00Z"}]`))
	})

	tx := &domain.Transaction{
		Owner:       "user-1",
		Date:        time.Date(2024, time.March, 14, 0, 0, 0, 0, time.UTC),
		Type:        domain.TxExpense,
		Amount:      37.9,
		Category:    "Mercado",
		Description: "mercado",
	}
	stored, err := client.Insert(context.Background(), tx)
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}

	if gotBody["id"] == "" {
		t.Error("an id must be generated before the POST")
	}
	if gotBody["data"] != "2024-03-14" || gotBody["tipo"] != "gasto" || gotBody["valor"] != 37.9 {
		t.Errorf("posted body = %v", gotBody)
	}
	if stored.ID == "" || stored.Amount != 37.9 {
		t.Errorf("stored = %+v", stored)
	}
}

func TestInsertEchoesInputWithoutRepresentation(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated) // empty body
	})

	tx := &domain.Transaction{Owner: "user-1", Type: domain.TxIncome, Amount: 100, Category: "outros"}
	stored, err := client.Insert(context.Background(), tx)
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if stored.Amount != 100 || stored.Owner != "user-1" {
		t.Errorf("stored = %+v", stored)
	}
}

func TestInsertFailure(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "constraint violation", http.StatusConflict)
	})

	_, err := client.Insert(context.Background(), &domain.Transaction{Owner: "user-1"})
	var external *domain.ErrExternalService
	if !errors.As(err, &external) {
		t.Fatalf("error = %v, want ErrExternalService", err)
	}
}

func TestDeleteMostRecent(t *testing.T) {
	var deletePath string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			if r.URL.Query().Get("order") != "created_at.desc" {
				t.Errorf("select query = %q", r.URL.RawQuery)
			}
			w.Write([]byte(`[{"id":"tx-9"}]`))
		case http.MethodDelete:
			deletePath = r.URL.RequestURI()
			w.WriteHeader(http.StatusNoContent)
		}
	})

	deleted, err := client.DeleteMostRecent(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("DeleteMostRecent: %v", err)
	}
	if !deleted {
		t.Fatal("expected a deletion")
	}
	if deletePath != "/rest/v1/transactions?id=eq.tx-9" {
		t.Errorf("delete path = %q", deletePath)
	}
}

func TestDeleteMostRecentEmptyHistory(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			t.Error("nothing should be deleted on an empty history")
		}
		w.Write([]byte(`[]`))
	})

	deleted, err := client.DeleteMostRecent(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("DeleteMostRecent: %v", err)
	}
	if deleted {
		t.Error("expected no deletion")
	}
}

func TestGetUserByEmail(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("email") != "eq.maria@example.com" {
			t.Errorf("query = %q", r.URL.RawQuery)
		}
		w.Write([]byte(`[{"id":"user-1","email":"maria@example.com","password_hash":"$2a$04$hash","created_at":"2024-01-01T00:00:00Z"}]`))
	})

	user, err := client.GetUserByEmail(context.Background(), "maria@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if user.ID != "user-1" || user.PasswordHash != "$2a$04$hash" {
		t.Errorf("user = %+v", user)
	}
}

func TestGetUserByEmailNotFound(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	_, err := client.GetUserByEmail(context.Background(), "ninguem@example.com")
	var notFound *domain.ErrNotFound
	if !errors.As(err, &notFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestPing(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})
	if err := client.Ping(context.Background()); err != nil {
		t.Errorf("Ping: %v", err)
	}
}
