package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/ligue-crm/internal/usecase"
)

// AssetHandler expõe o cofre de acessos. As credenciais saem em claro
// junto com a versão mascarada; quem decide mostrar é o painel.
type AssetHandler struct {
	Assets *usecase.AssetUseCase
}

func NewAssetHandler(assets *usecase.AssetUseCase) *AssetHandler {
	return &AssetHandler{Assets: assets}
}

func (h *AssetHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Assets.List(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *AssetHandler) Add(w http.ResponseWriter, r *http.Request) {
	var in usecase.AddAssetInput
	if !decodeJSON(w, r, &in) {
		return
	}
	out, err := h.Assets.Add(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (h *AssetHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if err := h.Assets.Delete(r.Context(), chi.URLParam(r, "id"), confirmed(r)); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
