package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/ligue-crm/internal/usecase"
)

type EmailHandler struct {
	Emails *usecase.EmailUseCase
}

func NewEmailHandler(emails *usecase.EmailUseCase) *EmailHandler {
	return &EmailHandler{Emails: emails}
}

// Send (POST /clients/{id}/emails) devolve o log recém-criado.
func (h *EmailHandler) Send(w http.ResponseWriter, r *http.Request) {
	var in usecase.SendEmailInput
	if !decodeJSON(w, r, &in) {
		return
	}
	log, err := h.Emails.Send(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, log)
}

func (h *EmailHandler) List(w http.ResponseWriter, r *http.Request) {
	logs, err := h.Emails.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, logs)
}
