package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/xavierca1/ligue-crm/internal/infra/export"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

type DashboardHandler struct {
	Dashboard *usecase.DashboardUseCase
	Clients   *usecase.ClientUseCase
}

func NewDashboardHandler(dashboard *usecase.DashboardUseCase, clients *usecase.ClientUseCase) *DashboardHandler {
	return &DashboardHandler{Dashboard: dashboard, Clients: clients}
}

// Get (GET /dashboard) recalcula tudo a partir do snapshot atual.
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	out, err := h.Dashboard.Execute(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// ExportClients (GET /reports/clients.xlsx)
func (h *DashboardHandler) ExportClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.Clients.ListClients(r.Context(), usecase.ListClientsInput{})
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=clients-%s.xlsx", time.Now().Format("2006-01-02")))
	if err := export.WriteClients(w, clients); err != nil {
		writeError(w, r, err)
	}
}
