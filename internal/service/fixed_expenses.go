package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mayordomia/mayordomia-go/internal/domain"
	"github.com/mayordomia/mayordomia-go/internal/finance"
)

// ============================================================
// Fixed expenses
// ============================================================

func (s *LedgerService) ListFixedExpenses(ctx context.Context, userID string) ([]domain.FixedExpense, error) {
	ctx, span := tracer.Start(ctx, "LedgerService.ListFixedExpenses")
	defer span.End()

	return s.store.ListFixedExpenses(ctx, userID)
}

func (s *LedgerService) CreateFixedExpense(ctx context.Context, userID string, fe *domain.FixedExpense) (*domain.FixedExpense, error) {
	ctx, span := tracer.Start(ctx, "LedgerService.CreateFixedExpense")
	defer span.End()

	if err := validateFixedExpense(fe); err != nil {
		return nil, err
	}
	return s.store.CreateFixedExpense(ctx, userID, fe)
}

func (s *LedgerService) UpdateFixedExpense(ctx context.Context, userID, expenseID string, updates map[string]any) (*domain.FixedExpense, error) {
	ctx, span := tracer.Start(ctx, "LedgerService.UpdateFixedExpense")
	defer span.End()

	if day, ok := updates["day_of_month"]; ok {
		if d, ok := day.(float64); ok && (d < 1 || d > 31) {
			return nil, &domain.ErrValidation{Field: "day_of_month", Message: "must be 1-31"}
		}
	}
	return s.store.UpdateFixedExpense(ctx, userID, expenseID, updates)
}

func (s *LedgerService) DeleteFixedExpense(ctx context.Context, userID, expenseID string) error {
	ctx, span := tracer.Start(ctx, "LedgerService.DeleteFixedExpense")
	defer span.End()

	return s.store.DeleteFixedExpense(ctx, userID, expenseID)
}

// MarkFixedExpensePaid settles a fixed expense for the current month.
// Two-phase, not atomic: the settlement transaction is inserted first,
// then the expense row is patched. If the patch fails the transaction
// stays behind as an observable orphan; the result reports which phase
// committed.
func (s *LedgerService) MarkFixedExpensePaid(ctx context.Context, userID, expenseID string) (*domain.CommitResult, error) {
	ctx, span := tracer.Start(ctx, "LedgerService.MarkFixedExpensePaid")
	defer span.End()

	fe, err := s.store.GetFixedExpense(ctx, userID, expenseID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if finance.PaidThisMonth(fe.LastPaidDate, now) {
		return nil, &domain.ErrValidation{Field: "last_paid_date", Message: "already paid this month"}
	}

	tx := &domain.Transaction{
		Description:     "Pago: " + fe.Description,
		Amount:          fe.Amount,
		Type:            domain.TransactionExpense,
		Category:        fe.Category,
		Date:            now,
		PaymentMethodID: fe.PaymentMethodID,
	}

	created, err := s.store.CreateTransaction(ctx, userID, tx)
	if err != nil {
		s.logger.Error("mark paid: settlement transaction failed",
			zap.String("user_id", userID),
			zap.String("expense_id", expenseID),
			zap.Error(err),
		)
		return &domain.CommitResult{Phase: domain.CommitFailed}, err
	}

	_, err = s.store.UpdateFixedExpense(ctx, userID, expenseID, map[string]any{
		"last_paid_date":      now.Format(time.RFC3339),
		"last_transaction_id": created.ID,
	})
	if err != nil {
		s.metrics.IncrPartialCommit("mark_fixed_expense_paid")
		s.logger.Error("mark paid: expense patch failed, orphan transaction left",
			zap.String("user_id", userID),
			zap.String("expense_id", expenseID),
			zap.String("orphan_transaction_id", created.ID),
			zap.Error(err),
		)
		return &domain.CommitResult{
			Phase:               domain.CommitPartial,
			Transaction:         created,
			OrphanTransactionID: created.ID,
		}, err
	}

	s.logger.Info("fixed expense marked paid",
		zap.String("user_id", userID),
		zap.String("expense_id", expenseID),
		zap.String("transaction_id", created.ID),
	)
	return &domain.CommitResult{Phase: domain.CommitFull, Transaction: created}, nil
}

// UnmarkFixedExpensePaid reverts a settlement: deletes the linked
// transaction, then clears the paid fields. Also two-phase; a failure
// after the delete leaves the expense still marked paid with a
// dangling link.
func (s *LedgerService) UnmarkFixedExpensePaid(ctx context.Context, userID, expenseID string) (*domain.CommitResult, error) {
	ctx, span := tracer.Start(ctx, "LedgerService.UnmarkFixedExpensePaid")
	defer span.End()

	fe, err := s.store.GetFixedExpense(ctx, userID, expenseID)
	if err != nil {
		return nil, err
	}
	if fe.LastTransactionID == "" {
		return nil, &domain.ErrValidation{Field: "last_transaction_id", Message: "expense has no linked settlement"}
	}

	if err := s.store.DeleteTransaction(ctx, userID, fe.LastTransactionID); err != nil {
		s.logger.Error("unmark paid: transaction delete failed",
			zap.String("user_id", userID),
			zap.String("expense_id", expenseID),
			zap.Error(err),
		)
		return &domain.CommitResult{Phase: domain.CommitFailed}, err
	}

	_, err = s.store.UpdateFixedExpense(ctx, userID, expenseID, map[string]any{
		"last_paid_date":      nil,
		"last_transaction_id": nil,
	})
	if err != nil {
		s.metrics.IncrPartialCommit("unmark_fixed_expense_paid")
		s.logger.Error("unmark paid: expense patch failed after transaction delete",
			zap.String("user_id", userID),
			zap.String("expense_id", expenseID),
			zap.Error(err),
		)
		return &domain.CommitResult{Phase: domain.CommitPartial}, err
	}

	s.logger.Info("fixed expense unmarked",
		zap.String("user_id", userID),
		zap.String("expense_id", expenseID),
	)
	return &domain.CommitResult{Phase: domain.CommitFull}, nil
}

func validateFixedExpense(fe *domain.FixedExpense) error {
	if strings.TrimSpace(fe.Description) == "" {
		return &domain.ErrValidation{Field: "description", Message: "required"}
	}
	if fe.Amount <= 0 {
		return &domain.ErrValidation{Field: "amount", Message: "must be positive"}
	}
	if fe.DayOfMonth < 1 || fe.DayOfMonth > 31 {
		return &domain.ErrValidation{Field: "day_of_month", Message: "must be 1-31"}
	}
	return nil
}
