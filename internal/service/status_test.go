package service

import (
	"testing"
	"time"

	"github.com/bullfinance/ledger-service/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestEffectiveStatus(t *testing.T) {
	today := date(2024, 2, 20)

	tests := []struct {
		name    string
		status  string
		dueDate time.Time
		want    string
	}{
		{"pending past due", models.StatusPending, date(2024, 2, 19), models.StatusOverdue},
		{"pending due today", models.StatusPending, date(2024, 2, 20), models.StatusPending},
		{"pending due tomorrow", models.StatusPending, date(2024, 2, 21), models.StatusPending},
		{"paid past due stays paid", models.StatusPaid, date(2024, 1, 1), models.StatusPaid},
		{"cancelled past due stays cancelled", models.StatusCancelled, date(2024, 1, 1), models.StatusCancelled},
		{"pending past due with time component", models.StatusPending, time.Date(2024, 2, 19, 23, 59, 0, 0, time.UTC), models.StatusOverdue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EffectiveStatus(tt.status, tt.dueDate, today); got != tt.want {
				t.Errorf("EffectiveStatus(%q, %v) = %q, want %q", tt.status, tt.dueDate, got, tt.want)
			}
		})
	}
}
