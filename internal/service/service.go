// Package service implements the business logic of Mayordomía on top
// of the ports: ledger CRUD with its cross-entity write sequences, the
// derived aggregates and alerts, and the AI advisor flows.
package service

import (
	"time"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/mayordomia/mayordomia-go/internal/domain"
	"github.com/mayordomia/mayordomia-go/internal/finance"
	"github.com/mayordomia/mayordomia-go/internal/infra/observability"
	"github.com/mayordomia/mayordomia-go/internal/port"
)

var tracer = otel.Tracer("ledger-service")

// LedgerService owns all entity operations and derived computations.
// The clock is injected so tests can pin "now"; production uses
// time.Now in the server's local zone.
type LedgerService struct {
	store       port.LedgerStore
	logger      *zap.Logger
	metrics     *observability.Metrics
	methodCache port.Cache[[]domain.PaymentMethod]
	scope       finance.ExpenseScope
	now         func() time.Time
}

// NewLedgerService wires the ledger service.
func NewLedgerService(
	store port.LedgerStore,
	methodCache port.Cache[[]domain.PaymentMethod],
	scope finance.ExpenseScope,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *LedgerService {
	return &LedgerService{
		store:       store,
		logger:      logger,
		metrics:     metrics,
		methodCache: methodCache,
		scope:       scope,
		now:         time.Now,
	}
}

// WithClock replaces the time source, for tests.
func (s *LedgerService) WithClock(now func() time.Time) *LedgerService {
	s.now = now
	return s
}
