package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/ligue-crm/internal/usecase"
)

type LeadHandler struct {
	Clients *usecase.ClientUseCase
	Delete  *usecase.DeleteClientUseCase
}

func NewLeadHandler(clients *usecase.ClientUseCase, del *usecase.DeleteClientUseCase) *LeadHandler {
	return &LeadHandler{Clients: clients, Delete: del}
}

func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Clients.ListLeads(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in usecase.CreateLeadInput
	if !decodeJSON(w, r, &in) {
		return
	}
	lead, err := h.Clients.CreateLead(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, lead)
}

// Convert (POST /leads/{id}/convert?confirm=true)
func (h *LeadHandler) Convert(w http.ResponseWriter, r *http.Request) {
	c, err := h.Clients.ConvertLead(r.Context(), chi.URLParam(r, "id"), confirmed(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *LeadHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if err := h.Delete.ExecuteLead(r.Context(), chi.URLParam(r, "id"), confirmed(r)); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
