package handler

import (
	"net/http"
	"time"

	"github.com/bullfinance/ledger-service/internal/models"
)

// CreateObligation handles POST /clients/{clientID}/obligations
func (h *Handler) CreateObligation(w http.ResponseWriter, r *http.Request) {
	clientID, err := pathID(r, "clientID")
	if err != nil {
		http.Error(w, "Invalid client id", http.StatusBadRequest)
		return
	}

	var obligation models.Obligation
	if err := decodeJSON(r, &obligation); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	obligation.ClientID = clientID

	if err := h.svc.CreateObligation(&obligation); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, obligation)
}

// ListObligations handles GET /clients/{clientID}/obligations
func (h *Handler) ListObligations(w http.ResponseWriter, r *http.Request) {
	clientID, err := pathID(r, "clientID")
	if err != nil {
		http.Error(w, "Invalid client id", http.StatusBadRequest)
		return
	}

	obligations, err := h.svc.ListObligations(clientID, time.Now())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, obligations)
}

// MarkPaid handles POST /clients/{clientID}/obligations/{id}/pay
func (h *Handler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	clientID, err := pathID(r, "clientID")
	if err != nil {
		http.Error(w, "Invalid client id", http.StatusBadRequest)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "Invalid obligation id", http.StatusBadRequest)
		return
	}

	if err := h.svc.MarkPaid(clientID, id, time.Now()); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": models.StatusPaid})
}

// Cancel handles POST /clients/{clientID}/obligations/{id}/cancel
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	clientID, err := pathID(r, "clientID")
	if err != nil {
		http.Error(w, "Invalid client id", http.StatusBadRequest)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "Invalid obligation id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Cancel(clientID, id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": models.StatusCancelled})
}

// SuggestCategory handles POST /clients/{clientID}/suggest-category
func (h *Handler) SuggestCategory(w http.ResponseWriter, r *http.Request) {
	clientID, err := pathID(r, "clientID")
	if err != nil {
		http.Error(w, "Invalid client id", http.StatusBadRequest)
		return
	}

	var request models.SuggestionRequest
	if err := decodeJSON(r, &request); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	request.ClientID = clientID

	respondJSON(w, http.StatusOK, h.suggest.Suggest(request))
}
