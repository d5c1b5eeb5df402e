package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/logger"
)

// ChangeSink recebe os eventos vindos do broker (o hub de WebSocket).
type ChangeSink interface {
	Broadcast(ev entity.ChangeEvent) error
}

type consumeChannel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

// Worker repassa para o hub local todo evento publicado por qualquer
// instância. Cada instância tem sua fila exclusiva, apagada ao desconectar.
type Worker struct {
	Channel consumeChannel
	Sink    ChangeSink
}

func NewWorker(ch consumeChannel, sink ChangeSink) *Worker {
	return &Worker{Channel: ch, Sink: sink}
}

// Start consome até o ctx acabar ou o canal fechar.
func (w *Worker) Start(ctx context.Context) error {
	log := logger.FromContext(ctx)

	q, err := w.Channel.QueueDeclare("", false, true, true, false, amqp.Table{
		"x-dead-letter-exchange": DLXName,
	})
	if err != nil {
		return fmt.Errorf("falha ao declarar fila do worker: %w", err)
	}
	if err := w.Channel.QueueBind(q.Name, BindingKey, ExchangeName, false, nil); err != nil {
		return fmt.Errorf("falha ao ligar fila do worker: %w", err)
	}

	msgs, err := w.Channel.Consume(
		q.Name, // fila
		"",     // consumer
		false,  // auto-ack
		true,   // exclusive
		false,  // no-local
		false,  // no-wait
		nil,    // args
	)
	if err != nil {
		return fmt.Errorf("falha ao registrar consumidor RabbitMQ: %w", err)
	}

	log.Info(" [*] Worker aguardando eventos", zap.String("queue", q.Name))
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			w.handle(ctx, d)
		}
	}
}

func (w *Worker) handle(ctx context.Context, d amqp.Delivery) {
	log := logger.FromContext(ctx)

	var ev entity.ChangeEvent
	if err := json.Unmarshal(d.Body, &ev); err != nil || ev.Collection == "" {
		log.Warn("❌ [WORKER] evento inválido, enviando para DLQ", zap.String("routing_key", d.RoutingKey))
		_ = d.Nack(false, false)
		return
	}

	if err := w.Sink.Broadcast(ev); err != nil {
		log.Error("❌ [WORKER] falha ao repassar evento", zap.Error(err))
		_ = d.Nack(false, false)
		return
	}
	_ = d.Ack(false)
}
