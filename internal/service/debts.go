package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mayordomia/mayordomia-go/internal/domain"
)

// ============================================================
// Debts
// ============================================================

func (s *LedgerService) ListDebts(ctx context.Context, userID string) ([]domain.Debt, error) {
	ctx, span := tracer.Start(ctx, "LedgerService.ListDebts")
	defer span.End()

	return s.store.ListDebts(ctx, userID)
}

func (s *LedgerService) CreateDebt(ctx context.Context, userID string, d *domain.Debt) (*domain.Debt, error) {
	ctx, span := tracer.Start(ctx, "LedgerService.CreateDebt")
	defer span.End()

	if strings.TrimSpace(d.Name) == "" {
		return nil, &domain.ErrValidation{Field: "name", Message: "required"}
	}
	if d.TotalAmount <= 0 {
		return nil, &domain.ErrValidation{Field: "total_amount", Message: "must be positive"}
	}
	if d.CurrentBalance < 0 || d.CurrentBalance > d.TotalAmount {
		return nil, &domain.ErrValidation{Field: "current_balance", Message: "must be between 0 and total_amount"}
	}
	if d.DayOfMonth < 1 || d.DayOfMonth > 31 {
		return nil, &domain.ErrValidation{Field: "day_of_month", Message: "must be 1-31"}
	}
	return s.store.CreateDebt(ctx, userID, d)
}

func (s *LedgerService) UpdateDebt(ctx context.Context, userID, debtID string, updates map[string]any) (*domain.Debt, error) {
	ctx, span := tracer.Start(ctx, "LedgerService.UpdateDebt")
	defer span.End()

	return s.store.UpdateDebt(ctx, userID, debtID, updates)
}

func (s *LedgerService) DeleteDebt(ctx context.Context, userID, debtID string) error {
	ctx, span := tracer.Start(ctx, "LedgerService.DeleteDebt")
	defer span.End()

	return s.store.DeleteDebt(ctx, userID, debtID)
}

// PayDebt records a payment against a debt. Two-phase like the fixed
// expense settlement: insert the expense transaction, then patch the
// debt balance. The balance never goes below zero.
func (s *LedgerService) PayDebt(ctx context.Context, userID, debtID string, amount float64, paymentMethodID string) (*domain.CommitResult, error) {
	ctx, span := tracer.Start(ctx, "LedgerService.PayDebt")
	defer span.End()

	if amount <= 0 {
		return nil, &domain.ErrValidation{Field: "amount", Message: "must be positive"}
	}

	debt, err := s.store.GetDebt(ctx, userID, debtID)
	if err != nil {
		return nil, err
	}
	if debt.CurrentBalance <= 0 {
		return nil, &domain.ErrValidation{Field: "current_balance", Message: "debt is already settled"}
	}

	now := s.now()
	tx := &domain.Transaction{
		Description:     "Pago deuda: " + debt.Name,
		Amount:          amount,
		Type:            domain.TransactionExpense,
		Category:        "Deudas",
		Date:            now,
		PaymentMethodID: paymentMethodID,
	}

	created, err := s.store.CreateTransaction(ctx, userID, tx)
	if err != nil {
		s.logger.Error("pay debt: payment transaction failed",
			zap.String("user_id", userID),
			zap.String("debt_id", debtID),
			zap.Error(err),
		)
		return &domain.CommitResult{Phase: domain.CommitFailed}, err
	}

	newBalance := debt.CurrentBalance - amount
	if newBalance < 0 {
		newBalance = 0
	}

	_, err = s.store.UpdateDebt(ctx, userID, debtID, map[string]any{
		"current_balance":   newBalance,
		"last_payment_date": now.Format(time.RFC3339),
	})
	if err != nil {
		s.metrics.IncrPartialCommit("pay_debt")
		s.logger.Error("pay debt: balance patch failed, orphan transaction left",
			zap.String("user_id", userID),
			zap.String("debt_id", debtID),
			zap.String("orphan_transaction_id", created.ID),
			zap.Error(err),
		)
		return &domain.CommitResult{
			Phase:               domain.CommitPartial,
			Transaction:         created,
			OrphanTransactionID: created.ID,
		}, err
	}

	s.logger.Info("debt payment recorded",
		zap.String("user_id", userID),
		zap.String("debt_id", debtID),
		zap.Float64("amount", amount),
		zap.Float64("new_balance", newBalance),
	)
	return &domain.CommitResult{Phase: domain.CommitFull, Transaction: created}, nil
}
