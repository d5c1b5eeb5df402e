package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/metrics"
)

// publishChannel é a parte do *amqp.Channel usada pelo producer.
type publishChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type RabbitMQProducer struct {
	Ch publishChannel
}

func NewProducer(ch publishChannel) *RabbitMQProducer {
	return &RabbitMQProducer{Ch: ch}
}

func RoutingKey(ev entity.ChangeEvent) string {
	return fmt.Sprintf("crm.%s.%s", ev.Collection, ev.Action)
}

// PublishChange implementa usecase.ChangePublisher.
func (p *RabbitMQProducer) PublishChange(ctx context.Context, ev entity.ChangeEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("erro ao converter evento: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey(ev),
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
			Timestamp:   ev.At,
		},
	)
	if err != nil {
		return fmt.Errorf("falha ao publicar no RabbitMQ: %w", err)
	}

	metrics.RecordChange(ev.Collection, ev.Action)
	return nil
}
