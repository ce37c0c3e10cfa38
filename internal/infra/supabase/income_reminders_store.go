package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mayordomia/mayordomia-go/internal/domain"
)

// ============================================================
// Income reminders store: list, create, update, delete
// ============================================================

func (c *Client) ListIncomeReminders(ctx context.Context, userID string) ([]domain.IncomeReminder, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListIncomeReminders")
	defer span.End()

	var reminders []domain.IncomeReminder
	err := c.listWithResilience(ctx, func() error {
		path := fmt.Sprintf("income_reminders?user_id=eq.%s&order=day_of_month.asc", userID)
		body, err := c.doRequest(ctx, http.MethodGet, path)
		if err != nil {
			return err
		}
		if body == nil || string(body) == "[]" {
			reminders = []domain.IncomeReminder{}
			return nil
		}
		var rows []domain.IncomeReminder
		if err := json.Unmarshal(body, &rows); err != nil {
			return fmt.Errorf("decode income_reminders: %w", err)
		}
		reminders = rows
		return nil
	})
	if err != nil {
		return nil, &domain.ErrCollaborator{Service: "supabase/income_reminders", Err: err}
	}
	return reminders, nil
}

func (c *Client) CreateIncomeReminder(ctx context.Context, userID string, r *domain.IncomeReminder) (*domain.IncomeReminder, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateIncomeReminder")
	defer span.End()

	row := map[string]any{
		"user_id":      userID,
		"description":  r.Description,
		"day_of_month": r.DayOfMonth,
	}

	body, err := c.doPost(ctx, "income_reminders", row)
	if err != nil {
		return nil, &domain.ErrCollaborator{Service: "supabase/income_reminders", Err: err}
	}

	var results []domain.IncomeReminder
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("decode income_reminder: %w", err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no result from income_reminders insert")
	}
	return &results[0], nil
}

func (c *Client) UpdateIncomeReminder(ctx context.Context, userID, reminderID string, updates map[string]any) (*domain.IncomeReminder, error) {
	ctx, span := tracer.Start(ctx, "Supabase.UpdateIncomeReminder")
	defer span.End()

	path := fmt.Sprintf("income_reminders?user_id=eq.%s&id=eq.%s", userID, reminderID)
	if err := c.doPatch(ctx, path, updates); err != nil {
		return nil, &domain.ErrCollaborator{Service: "supabase/income_reminders", Err: err}
	}

	body, err := c.doRequest(ctx, http.MethodGet, path+"&limit=1")
	if err != nil {
		return nil, &domain.ErrCollaborator{Service: "supabase/income_reminders", Err: err}
	}
	var rows []domain.IncomeReminder
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode income_reminder: %w", err)
	}
	if len(rows) == 0 {
		return nil, &domain.ErrNotFound{Resource: "income_reminder", ID: reminderID}
	}
	return &rows[0], nil
}

func (c *Client) DeleteIncomeReminder(ctx context.Context, userID, reminderID string) error {
	ctx, span := tracer.Start(ctx, "Supabase.DeleteIncomeReminder")
	defer span.End()

	if err := c.doDelete(ctx, fmt.Sprintf("income_reminders?user_id=eq.%s&id=eq.%s", userID, reminderID)); err != nil {
		return &domain.ErrCollaborator{Service: "supabase/income_reminders", Err: err}
	}
	return nil
}
