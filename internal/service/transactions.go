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
// Transactions
// ============================================================

func (s *LedgerService) ListTransactions(ctx context.Context, userID string) ([]domain.Transaction, error) {
	ctx, span := tracer.Start(ctx, "LedgerService.ListTransactions")
	defer span.End()

	return s.store.ListTransactions(ctx, userID)
}

// CreateTransaction validates and persists a transaction. A new INCOME
// transaction additionally runs the reminder auto-registration
// heuristic; a failure there is logged but does not fail the create,
// since the transaction itself is already committed.
func (s *LedgerService) CreateTransaction(ctx context.Context, userID string, tx *domain.Transaction) (*domain.Transaction, error) {
	ctx, span := tracer.Start(ctx, "LedgerService.CreateTransaction")
	defer span.End()

	if err := validateTransaction(tx); err != nil {
		return nil, err
	}
	if tx.Date.IsZero() {
		tx.Date = s.now()
	}

	created, err := s.store.CreateTransaction(ctx, userID, tx)
	if err != nil {
		s.logger.Error("failed to create transaction", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("transaction created",
		zap.String("user_id", userID),
		zap.String("transaction_id", created.ID),
		zap.String("type", created.Type),
		zap.Float64("amount", created.Amount),
	)

	if created.Type == domain.TransactionIncome {
		s.registerMatchingReminders(ctx, userID, created)
	}

	return created, nil
}

func (s *LedgerService) DeleteTransaction(ctx context.Context, userID, txID string) error {
	ctx, span := tracer.Start(ctx, "LedgerService.DeleteTransaction")
	defer span.End()

	if txID == "" {
		return &domain.ErrValidation{Field: "id", Message: "required"}
	}
	return s.store.DeleteTransaction(ctx, userID, txID)
}

// registerMatchingReminders stamps lastRegisteredDate on every income
// reminder the new transaction matches and is not already registered
// for this month.
func (s *LedgerService) registerMatchingReminders(ctx context.Context, userID string, tx *domain.Transaction) {
	reminders, err := s.store.ListIncomeReminders(ctx, userID)
	if err != nil {
		s.logger.Warn("reminder auto-registration skipped", zap.String("user_id", userID), zap.Error(err))
		return
	}

	now := s.now()
	for _, r := range reminders {
		if finance.PaidThisMonth(r.LastRegisteredDate, now) {
			continue
		}
		if !finance.MatchesIncomeReminder(*tx, r) {
			continue
		}
		_, err := s.store.UpdateIncomeReminder(ctx, userID, r.ID, map[string]any{
			"last_registered_date": now.Format(time.RFC3339),
		})
		if err != nil {
			s.logger.Warn("failed to mark reminder registered",
				zap.String("user_id", userID),
				zap.String("reminder_id", r.ID),
				zap.Error(err),
			)
			continue
		}
		s.logger.Info("income reminder auto-registered",
			zap.String("user_id", userID),
			zap.String("reminder_id", r.ID),
			zap.String("transaction_id", tx.ID),
		)
	}
}

func validateTransaction(tx *domain.Transaction) error {
	if strings.TrimSpace(tx.Description) == "" {
		return &domain.ErrValidation{Field: "description", Message: "required"}
	}
	if tx.Amount <= 0 {
		return &domain.ErrValidation{Field: "amount", Message: "must be positive"}
	}
	if tx.Type != domain.TransactionIncome && tx.Type != domain.TransactionExpense {
		return &domain.ErrValidation{Field: "type", Message: "must be INCOME or EXPENSE"}
	}
	return nil
}
