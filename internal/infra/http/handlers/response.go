package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/xavierca1/ligue-crm/internal/infra/logger"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

const CodeInvalidJSON = "INVALID_JSON"

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeErrorResponse(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: code, Message: message})
}

// writeError traduz o erro do caso de uso no status HTTP correspondente.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var de *usecase.DomainError
	if errors.As(err, &de) {
		writeErrorResponse(w, statusFor(de.Code), de.Code, de.Message)
		return
	}

	var te *usecase.TechnicalError
	if errors.As(err, &te) {
		logger.FromContext(r.Context()).Error("❌ Falha técnica",
			zap.String("code", te.Code),
			zap.String("path", r.URL.Path),
			zap.Error(te.Err),
		)
		writeErrorResponse(w, statusFor(te.Code), te.Code, te.Message)
		return
	}

	logger.FromContext(r.Context()).Error("❌ Erro inesperado", zap.Error(err))
	writeErrorResponse(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
}

func statusFor(code string) int {
	switch code {
	case usecase.CodeValidation, CodeInvalidJSON:
		return http.StatusBadRequest
	case usecase.CodeConfirmationRequired:
		return http.StatusPreconditionRequired
	case usecase.CodeNotFound:
		return http.StatusNotFound
	case usecase.CodeNotALead, usecase.CodeConflict:
		return http.StatusConflict
	case usecase.CodeEmailDispatch:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON já responde 400 quando o corpo não é JSON válido.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, CodeInvalidJSON, "JSON inválido: "+err.Error())
		return false
	}
	return true
}

// confirmed lê ?confirm=true das ações destrutivas.
func confirmed(r *http.Request) bool {
	ok, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))
	return ok
}
