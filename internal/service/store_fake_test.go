package service

import (
	"errors"
	"io"
	"time"

	"github.com/bullfinance/ledger-service/internal/models"
	"github.com/bullfinance/ledger-service/internal/repository"
	"github.com/sirupsen/logrus"
)

// fakeStore is an in-memory Store with the same conditional-write semantics
// as the SQL repository.
type fakeStore struct {
	obligations  []models.Obligation
	transactions []models.BankTransaction
	boletos      []models.Boleto
	pixCharges   []models.PixCharge
	nextID       int64

	createObligationErr func(o *models.Obligation) error
}

func newFakeStore() *fakeStore {
	return &fakeStore{}
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestService(store *fakeStore) *Service {
	return NewService(store, nil, nil, testLogger())
}

func (f *fakeStore) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeStore) CreateObligation(o *models.Obligation) error {
	if f.createObligationErr != nil {
		if err := f.createObligationErr(o); err != nil {
			return err
		}
	}
	o.ID = f.id()
	o.CreatedAt = time.Now()
	o.UpdatedAt = o.CreatedAt
	f.obligations = append(f.obligations, *o)
	return nil
}

func (f *fakeStore) ObligationByID(clientID, id int64) (*models.Obligation, error) {
	for i := range f.obligations {
		if f.obligations[i].ID == id && f.obligations[i].ClientID == clientID {
			o := f.obligations[i]
			return &o, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeStore) ListObligations(clientID int64) ([]models.Obligation, error) {
	var out []models.Obligation
	for _, o := range f.obligations {
		if o.ClientID == clientID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeStore) ListRecurringTemplates() ([]models.Obligation, error) {
	var out []models.Obligation
	for _, o := range f.obligations {
		if o.IsRecurring && o.Status == models.StatusPending {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeStore) PendingObligationsByType(clientID int64, obligationType string) ([]models.Obligation, error) {
	var out []models.Obligation
	for _, o := range f.obligations {
		if o.ClientID == clientID && o.Type == obligationType && o.Status == models.StatusPending {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeStore) ListOverdueObligations(asOf time.Time) ([]models.Obligation, error) {
	var out []models.Obligation
	for _, o := range f.obligations {
		if o.Status == models.StatusPending && o.DueDate.Before(asOf) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeStore) ObligationExists(clientID int64, description string, dueDate time.Time) (bool, error) {
	for _, o := range f.obligations {
		if o.ClientID == clientID && o.Description == description && o.DueDate.Equal(dueDate) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) MarkObligationPaid(clientID, id int64, paymentDate time.Time) error {
	for i := range f.obligations {
		o := &f.obligations[i]
		if o.ID == id && o.ClientID == clientID {
			if o.Status != models.StatusPending {
				return repository.ErrConflict
			}
			o.Status = models.StatusPaid
			d := paymentDate
			o.PaymentDate = &d
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeStore) CancelObligation(clientID, id int64) error {
	for i := range f.obligations {
		o := &f.obligations[i]
		if o.ID == id && o.ClientID == clientID {
			if o.Status != models.StatusPending {
				return repository.ErrConflict
			}
			o.Status = models.StatusCancelled
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeStore) InsertBankTransactions(transactions []models.BankTransaction) error {
	for i := range transactions {
		transactions[i].ID = f.id()
		f.transactions = append(f.transactions, transactions[i])
	}
	return nil
}

func (f *fakeStore) ListPendingTransactions(clientID int64) ([]models.BankTransaction, error) {
	var out []models.BankTransaction
	for _, t := range f.transactions {
		if t.ClientID == clientID && t.Status == models.TransactionPending {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeStore) ApplyMatch(clientID, transactionID, obligationID int64, paymentDate time.Time) error {
	var line *models.BankTransaction
	for i := range f.transactions {
		if f.transactions[i].ID == transactionID && f.transactions[i].ClientID == clientID {
			line = &f.transactions[i]
		}
	}
	if line == nil || line.Status != models.TransactionPending {
		return repository.ErrConflict
	}
	for i := range f.obligations {
		o := &f.obligations[i]
		if o.ID == obligationID && o.ClientID == clientID {
			if o.Status != models.StatusPending {
				return repository.ErrConflict
			}
			o.Status = models.StatusPaid
			d := paymentDate
			o.PaymentDate = &d
			line.Status = models.TransactionReconciled
			line.MatchedObligationID = &obligationID
			return nil
		}
	}
	return repository.ErrConflict
}

func (f *fakeStore) IgnoreTransaction(clientID, transactionID int64) error {
	for i := range f.transactions {
		t := &f.transactions[i]
		if t.ID == transactionID && t.ClientID == clientID {
			if t.Status != models.TransactionPending {
				return repository.ErrConflict
			}
			t.Status = models.TransactionIgnored
			return nil
		}
	}
	return repository.ErrConflict
}

func (f *fakeStore) CreateBoleto(b *models.Boleto) error {
	b.ID = f.id()
	b.CreatedAt = time.Now()
	f.boletos = append(f.boletos, *b)
	return nil
}

func (f *fakeStore) CreatePixCharge(p *models.PixCharge) error {
	p.ID = f.id()
	p.CreatedAt = time.Now()
	f.pixCharges = append(f.pixCharges, *p)
	return nil
}

var errStoreDown = errors.New("store unavailable")
