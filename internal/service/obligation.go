package service

import (
	"fmt"
	"time"

	"github.com/bullfinance/ledger-service/internal/models"
)

func validRecurrence(rule string) bool {
	switch rule {
	case models.RecurrenceDaily, models.RecurrenceWeekly, models.RecurrenceMonthly, models.RecurrenceYearly:
		return true
	}
	return false
}

// CreateObligation validates and stores a new obligation. Status is always
// pending at creation; payment date is never accepted from the caller.
func (s *Service) CreateObligation(o *models.Obligation) error {
	if o.Type != models.TypePayable && o.Type != models.TypeReceivable {
		return fmt.Errorf("%w: type must be payable or receivable", ErrValidation)
	}
	if o.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	if o.DueDate.IsZero() {
		return fmt.Errorf("%w: due date is required", ErrValidation)
	}
	if o.IsRecurring && !validRecurrence(o.Recurrence) {
		return fmt.Errorf("%w: recurring obligation needs a recurrence rule", ErrValidation)
	}
	if !o.IsRecurring {
		o.Recurrence = models.RecurrenceNone
		o.RecurrenceEndDate = nil
	}

	o.Status = models.StatusPending
	o.PaymentDate = nil
	o.DueDate = dateOnly(o.DueDate)

	if err := s.store.CreateObligation(o); err != nil {
		return err
	}
	s.log.Infof("Obligation created for client %d: %s R$ %.2f due %s", o.ClientID, o.Type, o.Amount, o.DueDate.Format("2006-01-02"))
	return nil
}

// ListObligations returns the tenant's obligations with the derived overdue
// status applied.
func (s *Service) ListObligations(clientID int64, now time.Time) ([]models.Obligation, error) {
	obligations, err := s.store.ListObligations(clientID)
	if err != nil {
		return nil, err
	}
	for i := range obligations {
		obligations[i].Status = EffectiveStatus(obligations[i].Status, obligations[i].DueDate, now)
	}
	return obligations, nil
}

// MarkPaid transitions a pending obligation to paid with today's date.
func (s *Service) MarkPaid(clientID, id int64, now time.Time) error {
	if err := s.store.MarkObligationPaid(clientID, id, dateOnly(now)); err != nil {
		return err
	}
	s.log.Infof("Obligation %d marked paid for client %d", id, clientID)
	return nil
}

// Cancel transitions a pending obligation to cancelled.
func (s *Service) Cancel(clientID, id int64) error {
	if err := s.store.CancelObligation(clientID, id); err != nil {
		return err
	}
	s.log.Infof("Obligation %d cancelled for client %d", id, clientID)
	return nil
}

// SendOverdueReminders emails the contact of every overdue pending
// obligation that has one. Best-effort: delivery failures are logged per
// obligation and do not stop the run.
func (s *Service) SendOverdueReminders(now time.Time) (int, error) {
	if s.notifier == nil {
		return 0, nil
	}
	overdue, err := s.store.ListOverdueObligations(dateOnly(now))
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, o := range overdue {
		if o.ContactEmail == "" {
			continue
		}
		if err := s.notifier.SendOverdueReminder(o.ContactEmail, o.ContactName, o.DueDate, o.Amount); err != nil {
			s.log.Errorf("Failed to send reminder for obligation %d: %v", o.ID, err)
			continue
		}
		sent++
	}
	return sent, nil
}
