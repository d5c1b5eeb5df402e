package usecase

import (
	"context"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

// EmailDispatcher entrega uma mensagem pelo provedor configurado
// (EmailJS ou SMTP).
type EmailDispatcher interface {
	Send(ctx context.Context, msg entity.EmailMessage) error
}

// ChangePublisher avisa quem estiver ouvindo que um registro mudou.
type ChangePublisher interface {
	PublishChange(ctx context.Context, ev entity.ChangeEvent) error
}

// Metrics recebe os contadores de negócio. Implementado em infra/metrics.
type Metrics interface {
	EmailSent(status string)
	InvoiceRendered()
	LeadConverted()
	StoreError(op string)
}

type nopMetrics struct{}

func (nopMetrics) EmailSent(string) {}
func (nopMetrics) InvoiceRendered() {}
func (nopMetrics) LeadConverted() {}
func (nopMetrics) StoreError(string) {}
