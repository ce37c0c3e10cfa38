package service

import (
	"context"
	"strings"

	"github.com/mayordomia/mayordomia-go/internal/domain"
)

// ============================================================
// Income reminders
// ============================================================

func (s *LedgerService) ListIncomeReminders(ctx context.Context, userID string) ([]domain.IncomeReminder, error) {
	ctx, span := tracer.Start(ctx, "LedgerService.ListIncomeReminders")
	defer span.End()

	return s.store.ListIncomeReminders(ctx, userID)
}

func (s *LedgerService) CreateIncomeReminder(ctx context.Context, userID string, r *domain.IncomeReminder) (*domain.IncomeReminder, error) {
	ctx, span := tracer.Start(ctx, "LedgerService.CreateIncomeReminder")
	defer span.End()

	if strings.TrimSpace(r.Description) == "" {
		return nil, &domain.ErrValidation{Field: "description", Message: "required"}
	}
	if r.DayOfMonth < 1 || r.DayOfMonth > 31 {
		return nil, &domain.ErrValidation{Field: "day_of_month", Message: "must be 1-31"}
	}
	return s.store.CreateIncomeReminder(ctx, userID, r)
}

func (s *LedgerService) UpdateIncomeReminder(ctx context.Context, userID, reminderID string, updates map[string]any) (*domain.IncomeReminder, error) {
	ctx, span := tracer.Start(ctx, "LedgerService.UpdateIncomeReminder")
	defer span.End()

	return s.store.UpdateIncomeReminder(ctx, userID, reminderID, updates)
}

func (s *LedgerService) DeleteIncomeReminder(ctx context.Context, userID, reminderID string) error {
	ctx, span := tracer.Start(ctx, "LedgerService.DeleteIncomeReminder")
	defer span.End()

	return s.store.DeleteIncomeReminder(ctx, userID, reminderID)
}
