package handler

import (
	"net/http"
	"time"
)

// ImportStatement handles POST /clients/{clientID}/statements/import.
// The CSV file is the request body; the bank account comes from the
// bank_account_id query parameter.
func (h *Handler) ImportStatement(w http.ResponseWriter, r *http.Request) {
	clientID, err := pathID(r, "clientID")
	if err != nil {
		http.Error(w, "Invalid client id", http.StatusBadRequest)
		return
	}
	bankAccountID, err := queryID(r, "bank_account_id")
	if err != nil {
		http.Error(w, "Invalid bank account id", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	batchID, count, err := h.svc.ImportStatement(clientID, bankAccountID, r.Body)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{
		"import_batch_id": batchID,
		"imported":        count,
	})
}

// PendingReconciliation handles GET /clients/{clientID}/reconciliation/pending
func (h *Handler) PendingReconciliation(w http.ResponseWriter, r *http.Request) {
	clientID, err := pathID(r, "clientID")
	if err != nil {
		http.Error(w, "Invalid client id", http.StatusBadRequest)
		return
	}

	items, err := h.svc.PendingReconciliation(clientID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

// ApplyMatch handles POST /clients/{clientID}/reconciliation/{txID}/match
func (h *Handler) ApplyMatch(w http.ResponseWriter, r *http.Request) {
	clientID, err := pathID(r, "clientID")
	if err != nil {
		http.Error(w, "Invalid client id", http.StatusBadRequest)
		return
	}
	transactionID, err := pathID(r, "txID")
	if err != nil {
		http.Error(w, "Invalid transaction id", http.StatusBadRequest)
		return
	}

	var body struct {
		ObligationID int64 `json:"obligation_id"`
	}
	if err := decodeJSON(r, &body); err != nil || body.ObligationID == 0 {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.svc.ApplyMatch(clientID, transactionID, body.ObligationID, time.Now()); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "reconciled"})
}

// IgnoreTransaction handles POST /clients/{clientID}/reconciliation/{txID}/ignore
func (h *Handler) IgnoreTransaction(w http.ResponseWriter, r *http.Request) {
	clientID, err := pathID(r, "clientID")
	if err != nil {
		http.Error(w, "Invalid client id", http.StatusBadRequest)
		return
	}
	transactionID, err := pathID(r, "txID")
	if err != nil {
		http.Error(w, "Invalid transaction id", http.StatusBadRequest)
		return
	}

	if err := h.svc.IgnoreTransaction(clientID, transactionID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ignored"})
}

// SyncOpenBanking handles POST /clients/{clientID}/bank-accounts/{id}/sync
func (h *Handler) SyncOpenBanking(w http.ResponseWriter, r *http.Request) {
	clientID, err := pathID(r, "clientID")
	if err != nil {
		http.Error(w, "Invalid client id", http.StatusBadRequest)
		return
	}
	bankAccountID, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "Invalid bank account id", http.StatusBadRequest)
		return
	}

	count, err := h.svc.SyncOpenBanking(clientID, bankAccountID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"synced": count})
}
