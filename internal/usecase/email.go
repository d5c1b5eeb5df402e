package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/logger"
	"go.uber.org/zap"
)

const (
	emailStatusFailed = "failed"
)

type EmailUseCase struct {
	Clients    entity.ClientRepositoryInterface
	Logs       entity.EmailLogRepositoryInterface
	Dispatcher EmailDispatcher
	Publisher  ChangePublisher
	Metrics    Metrics
}

func NewEmailUseCase(
	clients entity.ClientRepositoryInterface,
	logs entity.EmailLogRepositoryInterface,
	dispatcher EmailDispatcher,
	pub ChangePublisher,
	m Metrics,
) *EmailUseCase {
	if m == nil {
		m = nopMetrics{}
	}
	return &EmailUseCase{Clients: clients, Logs: logs, Dispatcher: dispatcher, Publisher: pub, Metrics: m}
}

// Send dispara o email para o contato do cliente. O log só é gravado depois
// que o provedor aceita; se o envio falha, nada é gravado e o erro volta.
func (uc *EmailUseCase) Send(ctx context.Context, clientID string, in SendEmailInput) (*entity.EmailLog, error) {
	c, err := uc.Clients.FindByID(ctx, clientID)
	if err != nil {
		return nil, mapStoreError("buscar cliente", err)
	}
	if strings.TrimSpace(c.Email) == "" {
		return nil, &DomainError{Code: CodeValidation, Message: "client has no email address"}
	}

	msg := entity.EmailMessage{
		ToEmail: c.Email,
		ToName:  c.Name,
		Subject: in.Subject,
		Message: in.Message,
	}

	if err := uc.Dispatcher.Send(ctx, msg); err != nil {
		uc.Metrics.EmailSent(emailStatusFailed)
		logger.FromContext(ctx).Error("❌ falha no envio de email",
			zap.String("client_id", clientID), zap.Error(err))
		return nil, &TechnicalError{
			Code:    CodeEmailDispatch,
			Message: fmt.Sprintf("erro ao enviar email: %v", err),
			Err:     err,
		}
	}
	uc.Metrics.EmailSent(entity.EmailStatusSent)

	entry := entity.NewSentEmailLog(clientID, msg)
	if err := uc.Logs.Create(ctx, entry); err != nil {
		return nil, mapStoreError("registrar email", err)
	}
	publish(ctx, uc.Publisher, entity.CollectionEmails, entity.ActionCreated, entry.ID)
	return entry, nil
}

// List devolve o histórico, mais novo primeiro.
func (uc *EmailUseCase) List(ctx context.Context) ([]*entity.EmailLog, error) {
	logs, err := uc.Logs.List(ctx)
	if err != nil {
		return nil, mapStoreError("listar emails", err)
	}
	return logs, nil
}
