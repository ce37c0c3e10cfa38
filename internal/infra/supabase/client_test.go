package supabase_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mayordomia/mayordomia-go/internal/domain"
	"github.com/mayordomia/mayordomia-go/internal/infra/resilience"
	"github.com/mayordomia/mayordomia-go/internal/infra/supabase"

	"go.uber.org/zap"
)

func newClient(t *testing.T, backend http.HandlerFunc) *supabase.Client {
	t.Helper()

	server := httptest.NewServer(backend)
	t.Cleanup(server.Close)

	return supabase.NewClient(
		&http.Client{Timeout: time.Second},
		server.URL,
		"anon",
		"service-role",
		resilience.NewCircuitBreaker("test"),
		resilience.Config{MaxRetries: 1, InitialBackoff: time.Millisecond, MaxConcurrency: 2},
		zap.NewNop(),
	)
}

func TestGetFixedExpenseNotFoundOn404(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.GetFixedExpense(context.Background(), "user-1", "fe-1")
	var notFound *domain.ErrNotFound
	if !errors.As(err, &notFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetFixedExpenseEmptyRowsNotFound(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("[]"))
	})

	_, err := client.GetFixedExpense(context.Background(), "user-1", "fe-1")
	var notFound *domain.ErrNotFound
	if !errors.As(err, &notFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetDebtDecodeFailureIsCollaboratorError(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("{not json"))
	})

	_, err := client.GetDebt(context.Background(), "user-1", "debt-1")
	var collab *domain.ErrCollaborator
	if !errors.As(err, &collab) {
		t.Fatalf("expected ErrCollaborator, got %v", err)
	}
	if collab.Service != "supabase/debts" {
		t.Errorf("service = %q, want supabase/debts", collab.Service)
	}
}

func TestGetBudgetNotFoundOn404(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.GetBudget(context.Background(), "user-1", "2025-03")
	var notFound *domain.ErrNotFound
	if !errors.As(err, &notFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
