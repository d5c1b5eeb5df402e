package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/ligue-crm/internal/usecase"
)

type InvoiceHandler struct {
	Invoices *usecase.InvoiceUseCase
}

func NewInvoiceHandler(invoices *usecase.InvoiceUseCase) *InvoiceHandler {
	return &InvoiceHandler{Invoices: invoices}
}

// Generate (POST /clients/{id}/invoice) devolve o PDF como download.
// Corpo vazio gera a fatura padrão do cliente.
func (h *InvoiceHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var in usecase.BuildInvoiceInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil && !errors.Is(err, io.EOF) {
		writeErrorResponse(w, http.StatusBadRequest, CodeInvalidJSON, "JSON inválido: "+err.Error())
		return
	}

	inv, err := h.Invoices.Build(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	// Renderiza antes de escrever o header para ainda poder responder erro em JSON.
	var buf bytes.Buffer
	if err := h.Invoices.Render(r.Context(), inv, &buf); err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", inv.FileName()))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
