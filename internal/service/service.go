package service

import (
	"errors"
	"time"

	"github.com/bullfinance/ledger-service/internal/models"
	"github.com/sirupsen/logrus"
)

// ErrValidation marks synchronous input errors (malformed amount, missing
// due date, empty statement). Not retried.
var ErrValidation = errors.New("validation failed")

// Store is the persistence surface the service depends on, implemented by
// repository.Repository.
type Store interface {
	CreateObligation(o *models.Obligation) error
	ObligationByID(clientID, id int64) (*models.Obligation, error)
	ListObligations(clientID int64) ([]models.Obligation, error)
	ListRecurringTemplates() ([]models.Obligation, error)
	PendingObligationsByType(clientID int64, obligationType string) ([]models.Obligation, error)
	ListOverdueObligations(asOf time.Time) ([]models.Obligation, error)
	ObligationExists(clientID int64, description string, dueDate time.Time) (bool, error)
	MarkObligationPaid(clientID, id int64, paymentDate time.Time) error
	CancelObligation(clientID, id int64) error

	InsertBankTransactions(transactions []models.BankTransaction) error
	ListPendingTransactions(clientID int64) ([]models.BankTransaction, error)
	ApplyMatch(clientID, transactionID, obligationID int64, paymentDate time.Time) error
	IgnoreTransaction(clientID, transactionID int64) error

	CreateBoleto(b *models.Boleto) error
	CreatePixCharge(p *models.PixCharge) error
}

// StatementFetcher pulls bank transactions from the open-banking
// collaborator.
type StatementFetcher interface {
	FetchTransactions(clientID, bankAccountID int64) ([]models.BankTransaction, error)
}

// Notifier delivers payment reminders.
type Notifier interface {
	SendOverdueReminder(to, contactName string, dueDate time.Time, amount float64) error
}

// Service handles business logic
type Service struct {
	store    Store
	fetcher  StatementFetcher
	notifier Notifier
	log      *logrus.Logger
}

// NewService initializes a new service. Fetcher and notifier may be nil when
// the corresponding collaborator is not configured.
func NewService(store Store, fetcher StatementFetcher, notifier Notifier, log *logrus.Logger) *Service {
	return &Service{store: store, fetcher: fetcher, notifier: notifier, log: log}
}

// dateOnly truncates a timestamp to its calendar date in UTC.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
