package usecase

import (
	"errors"
	"fmt"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

const (
	CodeValidation           = "VALIDATION_ERROR"
	CodeConfirmationRequired = "CONFIRMATION_REQUIRED"
	CodeNotFound             = "NOT_FOUND"
	CodeNotALead             = "NOT_A_LEAD"
	CodeConflict             = "CONFLICT"
	CodeEmailDispatch        = "EMAIL_DISPATCH_FAILED"
	CodeDatabase             = "DATABASE_ERROR"
)

// DomainError é erro do chamador: dado inválido, registro inexistente,
// confirmação faltando.
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// TechnicalError é falha de infraestrutura (banco, envio de email).
type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func (e *TechnicalError) Unwrap() error {
	return e.Err
}

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}

func validationError(err error) *DomainError {
	return &DomainError{Code: CodeValidation, Message: err.Error(), Err: err}
}

func confirmationRequired(action string) *DomainError {
	return &DomainError{
		Code:    CodeConfirmationRequired,
		Message: fmt.Sprintf("%s requires explicit confirmation", action),
	}
}

// mapStoreError traduz os sentinelas do repositório nos erros da camada.
func mapStoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, entity.ErrClientNotFound),
		errors.Is(err, entity.ErrTaskNotFound),
		errors.Is(err, entity.ErrAssetNotFound):
		return &DomainError{Code: CodeNotFound, Message: err.Error(), Err: err}
	case errors.Is(err, entity.ErrNotALead):
		return &DomainError{Code: CodeNotALead, Message: err.Error(), Err: err}
	case errors.Is(err, entity.ErrStaleWrite):
		return &DomainError{Code: CodeConflict, Message: err.Error(), Err: err}
	case errors.Is(err, entity.ErrNameRequired),
		errors.Is(err, entity.ErrTitleRequired),
		errors.Is(err, entity.ErrInvalidStatus),
		errors.Is(err, entity.ErrInvalidDate),
		errors.Is(err, entity.ErrUnknownField),
		errors.Is(err, entity.ErrInvalidField):
		return validationError(err)
	}
	if IsDomainError(err) || IsTechnicalError(err) {
		return err
	}
	return &TechnicalError{Code: CodeDatabase, Message: fmt.Sprintf("erro ao %s: %v", op, err), Err: err}
}
