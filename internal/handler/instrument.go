package handler

import (
	"net/http"
	"time"
)

// GenerateBoleto handles POST /clients/{clientID}/obligations/{id}/boleto
func (h *Handler) GenerateBoleto(w http.ResponseWriter, r *http.Request) {
	clientID, err := pathID(r, "clientID")
	if err != nil {
		http.Error(w, "Invalid client id", http.StatusBadRequest)
		return
	}
	obligationID, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "Invalid obligation id", http.StatusBadRequest)
		return
	}

	var body struct {
		PayerName     string `json:"payer_name"`
		PayerDocument string `json:"payer_document"`
	}
	if err := decodeJSON(r, &body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	boleto, err := h.svc.GenerateBoleto(clientID, obligationID, body.PayerName, body.PayerDocument)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, boleto)
}

// GeneratePix handles POST /clients/{clientID}/obligations/{id}/pix
func (h *Handler) GeneratePix(w http.ResponseWriter, r *http.Request) {
	clientID, err := pathID(r, "clientID")
	if err != nil {
		http.Error(w, "Invalid client id", http.StatusBadRequest)
		return
	}
	obligationID, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "Invalid obligation id", http.StatusBadRequest)
		return
	}

	var body struct {
		PixKey     string `json:"pix_key"`
		PixKeyType string `json:"pix_key_type"`
	}
	if err := decodeJSON(r, &body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	charge, err := h.svc.GeneratePix(clientID, obligationID, body.PixKey, body.PixKeyType)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, charge)
}

// RunRecurrence handles POST /jobs/recurrence, the scheduled-trigger entry
// point. Response shape: {generated, success} or {error, success: false}.
func (h *Handler) RunRecurrence(w http.ResponseWriter, r *http.Request) {
	generated, err := h.svc.GenerateRecurring(time.Now())
	if err != nil {
		respondJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   err.Error(),
		})
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"generated": generated,
	})
}
