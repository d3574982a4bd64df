package service

import (
	"time"

	"github.com/bullfinance/ledger-service/internal/models"
)

// EffectiveStatus resolves the status an obligation presents at read time.
// A pending obligation whose due date is strictly before today is overdue;
// overdue is never stored, only derived here.
func EffectiveStatus(status string, dueDate, today time.Time) string {
	if status == models.StatusPending && dateOnly(dueDate).Before(dateOnly(today)) {
		return models.StatusOverdue
	}
	return status
}
