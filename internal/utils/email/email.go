package email

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/bullfinance/ledger-service/internal/config"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendOverdueReminder sends a reminder for an obligation past its due date
func (s *Sender) SendOverdueReminder(to, contactName string, dueDate time.Time, amount float64) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = "Overdue Payment Notification"

	name := contactName
	if name == "" {
		name = "customer"
	}

	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"A payment of R$ %.2f was due on %s and is now overdue.\n"+
			"Please settle it as soon as possible.\n"+
			"\nBest regards,\nBull Finance",
		name, amount, dueDate.Format("2006-01-02"),
	)
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}
