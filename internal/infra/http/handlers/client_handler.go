package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

type ClientHandler struct {
	Clients *usecase.ClientUseCase
	Delete  *usecase.DeleteClientUseCase
}

func NewClientHandler(clients *usecase.ClientUseCase, del *usecase.DeleteClientUseCase) *ClientHandler {
	return &ClientHandler{Clients: clients, Delete: del}
}

// List (GET /clients?search=&status=)
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	list, err := h.Clients.ListClients(r.Context(), usecase.ListClientsInput{
		Search: q.Get("search"),
		Status: q.Get("status"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// Create (POST /clients) cria o registro provisório "New Client".
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	c, err := h.Clients.CreateClient(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.Clients.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// Patch (PATCH /clients/{id}) grava só os campos enviados.
func (h *ClientHandler) Patch(w http.ResponseWriter, r *http.Request) {
	var patch entity.ClientPatch
	if !decodeJSON(w, r, &patch) {
		return
	}
	c, err := h.Clients.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

type quickUpdateRequest struct {
	Value string `json:"value"`
}

// QuickUpdate (PUT /clients/{id}/fields/{field}) para os seletores da tabela.
func (h *ClientHandler) QuickUpdate(w http.ResponseWriter, r *http.Request) {
	var req quickUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	c, err := h.Clients.QuickUpdate(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "field"), req.Value)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// Remove (DELETE /clients/{id}?confirm=true) apaga também tarefas e cofre.
func (h *ClientHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if err := h.Delete.Execute(r.Context(), chi.URLParam(r, "id"), confirmed(r)); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
