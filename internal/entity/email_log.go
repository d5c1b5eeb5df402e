package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const EmailStatusSent = "Sent"

// EmailLog é append-only: nunca é atualizado nem apagado.
type EmailLog struct {
	ID         string    `json:"id"`
	ClientID   string    `json:"client_id,omitempty"`
	ClientName string    `json:"client_name"`
	Email      string    `json:"email"`
	Subject    string    `json:"subject"`
	Message    string    `json:"message"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// EmailMessage é o mapa plano de parâmetros aceito pelo serviço de envio.
type EmailMessage struct {
	ToEmail string `json:"to_email"`
	ToName  string `json:"to_name"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// NewSentEmailLog registra o envio assim que o despacho retorna sucesso.
// "Sent" não significa entregue.
func NewSentEmailLog(clientID string, msg EmailMessage) *EmailLog {
	return &EmailLog{
		ID:         uuid.New().String(),
		ClientID:   clientID,
		ClientName: msg.ToName,
		Email:      msg.ToEmail,
		Subject:    msg.Subject,
		Message:    msg.Message,
		Status:     EmailStatusSent,
		CreatedAt:  time.Now().UTC(),
	}
}

type EmailLogRepositoryInterface interface {
	Create(ctx context.Context, l *EmailLog) error
	List(ctx context.Context) ([]*EmailLog, error)
}
