package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mayordomia/mayordomia-go/internal/domain"
)

// ============================================================
// Payment methods
// ============================================================

// defaultCashName is the auto-created CASH method's display name.
const defaultCashName = "Efectivo"

// ListPaymentMethods returns the user's methods, creating the default
// CASH method when none exists. The list is cached per user; mutations
// invalidate it.
func (s *LedgerService) ListPaymentMethods(ctx context.Context, userID string) ([]domain.PaymentMethod, error) {
	ctx, span := tracer.Start(ctx, "LedgerService.ListPaymentMethods")
	defer span.End()

	if cached, ok := s.methodCache.Get(userID); ok {
		s.metrics.IncrCacheHit("payment_methods")
		return cached, nil
	}
	s.metrics.IncrCacheMiss("payment_methods")

	methods, err := s.store.ListPaymentMethods(ctx, userID)
	if err != nil {
		return nil, err
	}

	hasCash := false
	for _, m := range methods {
		if m.Type == domain.MethodCash {
			hasCash = true
			break
		}
	}
	if !hasCash {
		created, err := s.store.CreatePaymentMethod(ctx, userID, &domain.PaymentMethod{
			ID:   uuid.NewString(),
			Name: defaultCashName,
			Type: domain.MethodCash,
		})
		if err != nil {
			return nil, err
		}
		s.logger.Info("default cash method created",
			zap.String("user_id", userID),
			zap.String("method_id", created.ID),
		)
		methods = append(methods, *created)
	}

	s.methodCache.Set(userID, methods)
	return methods, nil
}

func (s *LedgerService) CreatePaymentMethod(ctx context.Context, userID string, m *domain.PaymentMethod) (*domain.PaymentMethod, error) {
	ctx, span := tracer.Start(ctx, "LedgerService.CreatePaymentMethod")
	defer span.End()

	if strings.TrimSpace(m.Name) == "" {
		return nil, &domain.ErrValidation{Field: "name", Message: "required"}
	}
	switch m.Type {
	case domain.MethodCash, domain.MethodCard, domain.MethodWallet:
	default:
		return nil, &domain.ErrValidation{Field: "type", Message: "must be CASH, CARD or WALLET"}
	}

	created, err := s.store.CreatePaymentMethod(ctx, userID, m)
	if err != nil {
		return nil, err
	}
	s.methodCache.Delete(userID)
	return created, nil
}

// DeletePaymentMethod removes a method, rejecting the deletion of the
// last CASH method: one CASH method must always exist.
func (s *LedgerService) DeletePaymentMethod(ctx context.Context, userID, methodID string) error {
	ctx, span := tracer.Start(ctx, "LedgerService.DeletePaymentMethod")
	defer span.End()

	methods, err := s.store.ListPaymentMethods(ctx, userID)
	if err != nil {
		return err
	}

	var target *domain.PaymentMethod
	cashCount := 0
	for i, m := range methods {
		if m.Type == domain.MethodCash {
			cashCount++
		}
		if m.ID == methodID {
			target = &methods[i]
		}
	}
	if target == nil {
		return &domain.ErrNotFound{Resource: "payment_method", ID: methodID}
	}
	if target.Type == domain.MethodCash && cashCount <= 1 {
		return &domain.ErrConflict{Message: "cannot delete the last CASH payment method"}
	}

	if err := s.store.DeletePaymentMethod(ctx, userID, methodID); err != nil {
		return err
	}
	s.methodCache.Delete(userID)

	s.logger.Info("payment method deleted",
		zap.String("user_id", userID),
		zap.String("method_id", methodID),
	)
	return nil
}
