package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/bullfinance/ledger-service/internal/models"
	"github.com/bullfinance/ledger-service/internal/repository"
	"github.com/bullfinance/ledger-service/internal/service"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// memStore is a minimal in-memory service.Store for handler round trips.
type memStore struct {
	obligations  []models.Obligation
	transactions []models.BankTransaction
	boletos      []models.Boleto
	pixCharges   []models.PixCharge
	nextID       int64
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memStore) CreateObligation(o *models.Obligation) error {
	o.ID = m.id()
	m.obligations = append(m.obligations, *o)
	return nil
}

func (m *memStore) ObligationByID(clientID, id int64) (*models.Obligation, error) {
	for i := range m.obligations {
		if m.obligations[i].ID == id && m.obligations[i].ClientID == clientID {
			o := m.obligations[i]
			return &o, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memStore) ListObligations(clientID int64) ([]models.Obligation, error) {
	var out []models.Obligation
	for _, o := range m.obligations {
		if o.ClientID == clientID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *memStore) ListRecurringTemplates() ([]models.Obligation, error) { return nil, nil }

func (m *memStore) PendingObligationsByType(clientID int64, obligationType string) ([]models.Obligation, error) {
	var out []models.Obligation
	for _, o := range m.obligations {
		if o.ClientID == clientID && o.Type == obligationType && o.Status == models.StatusPending {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *memStore) ListOverdueObligations(asOf time.Time) ([]models.Obligation, error) {
	return nil, nil
}

func (m *memStore) ObligationExists(clientID int64, description string, dueDate time.Time) (bool, error) {
	return false, nil
}

func (m *memStore) MarkObligationPaid(clientID, id int64, paymentDate time.Time) error {
	for i := range m.obligations {
		o := &m.obligations[i]
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

func (m *memStore) CancelObligation(clientID, id int64) error {
	for i := range m.obligations {
		o := &m.obligations[i]
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

func (m *memStore) InsertBankTransactions(transactions []models.BankTransaction) error {
	for i := range transactions {
		transactions[i].ID = m.id()
		m.transactions = append(m.transactions, transactions[i])
	}
	return nil
}

func (m *memStore) ListPendingTransactions(clientID int64) ([]models.BankTransaction, error) {
	var out []models.BankTransaction
	for _, t := range m.transactions {
		if t.ClientID == clientID && t.Status == models.TransactionPending {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memStore) ApplyMatch(clientID, transactionID, obligationID int64, paymentDate time.Time) error {
	for i := range m.transactions {
		line := &m.transactions[i]
		if line.ID == transactionID && line.ClientID == clientID {
			if line.Status != models.TransactionPending {
				return repository.ErrConflict
			}
			if err := m.MarkObligationPaid(clientID, obligationID, paymentDate); err != nil {
				return err
			}
			line.Status = models.TransactionReconciled
			line.MatchedObligationID = &obligationID
			return nil
		}
	}
	return repository.ErrConflict
}

func (m *memStore) IgnoreTransaction(clientID, transactionID int64) error {
	for i := range m.transactions {
		line := &m.transactions[i]
		if line.ID == transactionID && line.ClientID == clientID && line.Status == models.TransactionPending {
			line.Status = models.TransactionIgnored
			return nil
		}
	}
	return repository.ErrConflict
}

func (m *memStore) CreateBoleto(b *models.Boleto) error {
	b.ID = m.id()
	m.boletos = append(m.boletos, *b)
	return nil
}

func (m *memStore) CreatePixCharge(p *models.PixCharge) error {
	p.ID = m.id()
	m.pixCharges = append(m.pixCharges, *p)
	return nil
}

type stubSuggester struct {
	suggestion models.CategorySuggestion
}

func (s *stubSuggester) Suggest(request models.SuggestionRequest) models.CategorySuggestion {
	return s.suggestion
}

func newTestRouter(store *memStore) *mux.Router {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	svc := service.NewService(store, nil, nil, logger)
	h := NewHandler(svc, &stubSuggester{})

	r := mux.NewRouter()
	r.HandleFunc("/clients/{clientID}/obligations", h.CreateObligation).Methods("POST")
	r.HandleFunc("/clients/{clientID}/obligations", h.ListObligations).Methods("GET")
	r.HandleFunc("/clients/{clientID}/obligations/{id}/pay", h.MarkPaid).Methods("POST")
	r.HandleFunc("/clients/{clientID}/obligations/{id}/boleto", h.GenerateBoleto).Methods("POST")
	r.HandleFunc("/clients/{clientID}/statements/import", h.ImportStatement).Methods("POST")
	r.HandleFunc("/clients/{clientID}/reconciliation/pending", h.PendingReconciliation).Methods("GET")
	r.HandleFunc("/clients/{clientID}/reconciliation/{txID}/match", h.ApplyMatch).Methods("POST")
	r.HandleFunc("/jobs/recurrence", h.RunRecurrence).Methods("POST")
	return r
}

func TestCreateObligationHandler(t *testing.T) {
	store := &memStore{}
	router := newTestRouter(store)

	body := `{"type":"payable","description":"Energia","amount":430.20,"due_date":"2024-03-10T00:00:00Z"}`
	req := httptest.NewRequest("POST", "/clients/1/obligations", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	var created models.Obligation
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.ClientID != 1 || created.Status != models.StatusPending {
		t.Errorf("created = %+v", created)
	}
}

func TestCreateObligationHandlerValidation(t *testing.T) {
	router := newTestRouter(&memStore{})

	body := `{"type":"payable","description":"Energia","amount":-1,"due_date":"2024-03-10T00:00:00Z"}`
	req := httptest.NewRequest("POST", "/clients/1/obligations", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestImportAndMatchRoundTrip(t *testing.T) {
	store := &memStore{}
	store.CreateObligation(&models.Obligation{
		ClientID: 1, Type: models.TypeReceivable, Description: "Cliente X",
		Amount: 1500.00, DueDate: time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC),
		Status: models.StatusPending,
	})
	router := newTestRouter(store)

	// Import scenario line.
	csv := "Date,Description,Amount,Balance\n2024-01-15,Pagamento Cliente X,1500.00,5000.00\n"
	req := httptest.NewRequest("POST", "/clients/1/statements/import?bank_account_id=3", strings.NewReader(csv))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("import status = %d: %s", rec.Code, rec.Body.String())
	}

	// Pending list carries the candidate.
	req = httptest.NewRequest("GET", "/clients/1/reconciliation/pending", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("pending status = %d", rec.Code)
	}
	var items []models.ReconciliationItem
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode pending: %v", err)
	}
	if len(items) != 1 || len(items[0].Candidates) != 1 {
		t.Fatalf("pending items = %+v", items)
	}

	// Confirm the match.
	lineID := strconv.FormatInt(items[0].Transaction.ID, 10)
	obligationID := strconv.FormatInt(items[0].Candidates[0].ID, 10)
	body := `{"obligation_id":` + obligationID + `}`
	req = httptest.NewRequest("POST", "/clients/1/reconciliation/"+lineID+"/match", strings.NewReader(body))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("match status = %d: %s", rec.Code, rec.Body.String())
	}

	if store.obligations[0].Status != models.StatusPaid {
		t.Error("obligation should be paid after match")
	}
	if store.transactions[0].Status != models.TransactionReconciled {
		t.Error("line should be reconciled after match")
	}

	// A second confirmation conflicts.
	req = httptest.NewRequest("POST", "/clients/1/reconciliation/"+lineID+"/match", strings.NewReader(body))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusConflict {
		t.Errorf("second match status = %d, want 409", rec.Code)
	}
}

func TestGenerateBoletoHandlerNotFound(t *testing.T) {
	router := newTestRouter(&memStore{})

	body := `{"payer_name":"Cliente X","payer_document":"123"}`
	req := httptest.NewRequest("POST", "/clients/1/obligations/42/boleto", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestRunRecurrenceHandler(t *testing.T) {
	router := newTestRouter(&memStore{})

	req := httptest.NewRequest("POST", "/jobs/recurrence", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var response struct {
		Success   bool `json:"success"`
		Generated int  `json:"generated"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !response.Success {
		t.Error("success should be true")
	}
}
