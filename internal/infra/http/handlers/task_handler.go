package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/ligue-crm/internal/usecase"
)

type TaskHandler struct {
	Tasks *usecase.TaskUseCase
}

func NewTaskHandler(tasks *usecase.TaskUseCase) *TaskHandler {
	return &TaskHandler{Tasks: tasks}
}

func (h *TaskHandler) ListByClient(w http.ResponseWriter, r *http.Request) {
	list, err := h.Tasks.ListByClient(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// ListOpen (GET /tasks/open) alimenta o widget de pendências do painel.
func (h *TaskHandler) ListOpen(w http.ResponseWriter, r *http.Request) {
	list, err := h.Tasks.ListOpen(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *TaskHandler) Add(w http.ResponseWriter, r *http.Request) {
	var in usecase.AddTaskInput
	if !decodeJSON(w, r, &in) {
		return
	}
	task, err := h.Tasks.Add(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (h *TaskHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	task, err := h.Tasks.Toggle(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if err := h.Tasks.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
