package service

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/mayordomia/mayordomia-go/internal/budget"
	"github.com/mayordomia/mayordomia-go/internal/domain"
	"github.com/mayordomia/mayordomia-go/internal/finance"
)

// ============================================================
// Derived views: summary and alerts
// ============================================================

// Summary fetches all collections in parallel and computes the full
// aggregate set for the dashboard. The aggregates themselves are pure
// functions over the fetched snapshots.
func (s *LedgerService) Summary(ctx context.Context, userID string) (*domain.Summary, error) {
	ctx, span := tracer.Start(ctx, "LedgerService.Summary")
	defer span.End()

	var (
		txs     []domain.Transaction
		fixed   []domain.FixedExpense
		debts   []domain.Debt
		methods []domain.PaymentMethod
		bud     *domain.Budget
	)

	now := s.now()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		txs, err = s.store.ListTransactions(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		fixed, err = s.store.ListFixedExpenses(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		debts, err = s.store.ListDebts(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		methods, err = s.ListPaymentMethods(gctx, userID)
		return err
	})
	g.Go(func() error {
		b, err := s.store.GetBudget(gctx, userID, budget.BudgetID(now.Year(), int(now.Month())))
		if err != nil {
			var notFound *domain.ErrNotFound
			if errors.As(err, &notFound) {
				return nil // no budget this month
			}
			return err
		}
		bud = b
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	income := finance.TotalIncome(txs)
	expense := finance.TotalExpense(txs, s.scope, methods)

	return &domain.Summary{
		TotalIncome:       income,
		TotalExpense:      expense,
		Balance:           income - expense,
		TotalPendingFixed: finance.TotalPendingFixedMonthly(fixed, now),
		TotalDebt:         finance.TotalDebt(debts),
		ExpenseByCategory: finance.ExpenseByCategory(txs),
		MethodBalances:    finance.BalancePerPaymentMethod(methods, txs),
		Budget:            bud,
	}, nil
}

// Alerts fetches the reminder sources in parallel and derives the
// ordered alert list. An empty list means "no reminders"; the client
// suppresses the widget entirely.
func (s *LedgerService) Alerts(ctx context.Context, userID string) ([]domain.Alert, error) {
	ctx, span := tracer.Start(ctx, "LedgerService.Alerts")
	defer span.End()

	var (
		fixed     []domain.FixedExpense
		debts     []domain.Debt
		reminders []domain.IncomeReminder
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		fixed, err = s.store.ListFixedExpenses(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		debts, err = s.store.ListDebts(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		reminders, err = s.store.ListIncomeReminders(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.metrics.IncrAlertsBuilt()
	return finance.BuildAlerts(fixed, debts, reminders, s.now()), nil
}
