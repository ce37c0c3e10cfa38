package finance

import (
	"sort"
	"time"

	"github.com/mayordomia/mayordomia-go/internal/domain"
)

// Status labels shown on alerts, matching the client's wording.
const (
	statusReceived = "RECIBIDO"
	statusExpense  = "GASTO"
	statusPayment  = "PAGO"
)

// debtFallbackRate is applied to the balance when a debt has no
// positive minimum payment.
const debtFallbackRate = 0.05

// BuildAlerts derives the due/overdue/upcoming reminder list from the
// raw entity snapshots. The output is deterministic: income alerts
// first (in input order), then the rest ascending by due day with
// fixed expenses before debts on equal days.
func BuildAlerts(fixed []domain.FixedExpense, debts []domain.Debt, reminders []domain.IncomeReminder, now time.Time) []domain.Alert {
	today := now.Day()
	alerts := make([]domain.Alert, 0, len(fixed)+len(debts)+len(reminders))

	// Income reminders appear the day before, the exact day and the
	// day after their scheduled day, then vanish. They do not reappear
	// later in the month if missed.
	for _, r := range reminders {
		if PaidThisMonth(r.LastRegisteredDate, now) {
			continue
		}
		diff := r.DayOfMonth - today
		if diff < -1 || diff > 1 {
			continue
		}
		alerts = append(alerts, domain.Alert{
			ID:          r.ID,
			SourceType:  domain.AlertIncome,
			Title:       "COBRO: " + r.Description,
			DueDay:      r.DayOfMonth,
			IsOverdue:   false,
			IsUrgent:    true,
			StatusLabel: statusReceived,
		})
	}

	for _, f := range fixed {
		if PaidThisMonth(f.LastPaidDate, now) {
			continue
		}
		alerts = append(alerts, domain.Alert{
			ID:          f.ID,
			SourceType:  domain.AlertFixed,
			Title:       f.Description,
			DueDay:      f.DayOfMonth,
			Amount:      f.Amount,
			IsOverdue:   f.DayOfMonth < today,
			IsUrgent:    f.DayOfMonth >= today && f.DayOfMonth <= today+3,
			StatusLabel: statusExpense,
		})
	}

	for _, d := range debts {
		if d.CurrentBalance <= 0 || PaidThisMonth(d.LastPaymentDate, now) {
			continue
		}
		amount := d.MinPayment
		if amount <= 0 {
			amount = d.CurrentBalance * debtFallbackRate
		}
		alerts = append(alerts, domain.Alert{
			ID:          d.ID,
			SourceType:  domain.AlertDebt,
			Title:       "DEUDA: " + d.Name,
			DueDay:      d.DayOfMonth,
			Amount:      amount,
			IsOverdue:   d.DayOfMonth < today,
			IsUrgent:    d.DayOfMonth >= today && d.DayOfMonth <= today+3,
			StatusLabel: statusPayment,
		})
	}

	// Income first, then ascending due day. SliceStable keeps the
	// construction order (fixed before debts) on equal days.
	sort.SliceStable(alerts, func(i, j int) bool {
		a, b := alerts[i], alerts[j]
		if (a.SourceType == domain.AlertIncome) != (b.SourceType == domain.AlertIncome) {
			return a.SourceType == domain.AlertIncome
		}
		if a.SourceType == domain.AlertIncome {
			return false
		}
		return a.DueDay < b.DueDay
	})
	return alerts
}
