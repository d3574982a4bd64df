package service

import (
	"fmt"
	"time"

	"github.com/bullfinance/ledger-service/internal/models"
)

const recurrenceNote = "Generated automatically from recurrence"

// nextDueDate computes the due date one period after the template's current
// due date. Monthly and yearly additions follow calendar normalization.
func nextDueDate(rule string, dueDate time.Time) (time.Time, bool) {
	due := dateOnly(dueDate)
	switch rule {
	case models.RecurrenceDaily:
		return due.AddDate(0, 0, 1), true
	case models.RecurrenceWeekly:
		return due.AddDate(0, 0, 7), true
	case models.RecurrenceMonthly:
		return due.AddDate(0, 1, 0), true
	case models.RecurrenceYearly:
		return due.AddDate(1, 0, 0), true
	default:
		return time.Time{}, false
	}
}

// GenerateRecurring expands recurring obligation templates: for each pending
// recurring obligation it computes the next occurrence and inserts it when
// due, skipping templates whose recurrence end date has passed and
// occurrences that already exist for the (tenant, description, due date)
// triple. At most one occurrence is generated per template per run; a newly
// generated occurrence is itself a template, so successive runs walk a
// lapsed schedule forward one period at a time.
//
// The run is best-effort: a failure on one template is logged and the
// remaining templates are still processed.
func (s *Service) GenerateRecurring(now time.Time) (int, error) {
	templates, err := s.store.ListRecurringTemplates()
	if err != nil {
		return 0, fmt.Errorf("failed to load recurring templates: %w", err)
	}
	s.log.Infof("Recurrence run: %d templates", len(templates))

	today := dateOnly(now)
	generated := 0
	for i := range templates {
		tpl := &templates[i]

		next, ok := nextDueDate(tpl.Recurrence, tpl.DueDate)
		if !ok {
			s.log.Warnf("Obligation %d has unknown recurrence %q, skipping", tpl.ID, tpl.Recurrence)
			continue
		}
		if next.After(today) {
			continue
		}
		if tpl.RecurrenceEndDate != nil && dateOnly(*tpl.RecurrenceEndDate).Before(next) {
			continue
		}

		exists, err := s.store.ObligationExists(tpl.ClientID, tpl.Description, next)
		if err != nil {
			s.log.Errorf("Failed to check existing occurrence for obligation %d: %v", tpl.ID, err)
			continue
		}
		if exists {
			continue
		}

		occurrence := *tpl
		occurrence.ID = 0
		occurrence.Status = models.StatusPending
		occurrence.DueDate = next
		occurrence.PaymentDate = nil
		occurrence.Notes = recurrenceNote
		occurrence.CreatedAt = time.Time{}
		occurrence.UpdatedAt = time.Time{}

		if err := s.store.CreateObligation(&occurrence); err != nil {
			s.log.Errorf("Failed to create occurrence for obligation %d: %v", tpl.ID, err)
			continue
		}
		generated++
	}

	s.log.Infof("Recurrence run generated %d obligations", generated)
	return generated, nil
}
