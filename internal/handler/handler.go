package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/bullfinance/ledger-service/internal/models"
	"github.com/bullfinance/ledger-service/internal/repository"
	"github.com/bullfinance/ledger-service/internal/service"
	"github.com/gorilla/mux"
)

// Suggester is the category-suggestion collaborator the handler proxies to.
type Suggester interface {
	Suggest(request models.SuggestionRequest) models.CategorySuggestion
}

type Handler struct {
	svc     *service.Service
	suggest Suggester
}

func NewHandler(svc *service.Service, suggest Suggester) *Handler {
	return &Handler{svc: svc, suggest: suggest}
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// respondError maps error kinds to HTTP statuses: validation and malformed
// rows to 400, missing rows to 404, lost conditional writes to 409,
// everything else to 500.
func respondError(w http.ResponseWriter, err error) {
	var rowErr *service.RowError
	switch {
	case errors.As(err, &rowErr), errors.Is(err, service.ErrValidation):
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, repository.ErrNotFound):
		respondJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, repository.ErrConflict):
		respondJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	default:
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)[name], 10, 64)
}

func queryID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(r.URL.Query().Get(name), 10, 64)
}

func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}
