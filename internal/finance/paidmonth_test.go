package finance_test

import (
	"testing"
	"time"

	"github.com/mayordomia/mayordomia-go/internal/finance"
)

func TestPaidThisMonth(t *testing.T) {
	now := time.Date(2025, time.March, 15, 10, 0, 0, 0, time.UTC)

	ts := func(y int, m time.Month, d int) *time.Time {
		v := time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
		return &v
	}

	tests := []struct {
		name string
		last *time.Time
		want bool
	}{
		{"nil timestamp", nil, false},
		{"same month and year", ts(2025, time.March, 1), true},
		{"last day of same month", ts(2025, time.March, 31), true},
		{"previous month", ts(2025, time.February, 15), false},
		{"same month previous year", ts(2024, time.March, 15), false},
		{"next month", ts(2025, time.April, 1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := finance.PaidThisMonth(tt.last, now); got != tt.want {
				t.Errorf("PaidThisMonth() = %v, want %v", got, tt.want)
			}
		})
	}
}
