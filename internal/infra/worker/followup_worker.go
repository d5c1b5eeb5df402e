package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/logger"
)

type dueLister interface {
	ListDueFollowUps(ctx context.Context, day string) ([]*entity.Client, error)
}

type changePublisher interface {
	PublishChange(ctx context.Context, ev entity.ChangeEvent) error
}

// FollowUpWorker avisa os painéis sobre leads com retorno vencido
// (next_follow_up <= hoje). Cada lead é avisado uma vez por data marcada.
type FollowUpWorker struct {
	clients      dueLister
	publisher    changePublisher
	tickInterval time.Duration
	now          func() time.Time

	mu       sync.Mutex
	notified map[string]string // lead id -> next_follow_up já avisado
}

func NewFollowUpWorker(clients dueLister, pub changePublisher, interval time.Duration) *FollowUpWorker {
	return &FollowUpWorker{
		clients:      clients,
		publisher:    pub,
		tickInterval: interval,
		now:          time.Now,
		notified:     map[string]string{},
	}
}

func (w *FollowUpWorker) Start(ctx context.Context) {
	log := logger.FromContext(ctx)
	log.Info("🕒 Follow-up worker iniciado", zap.Duration("interval", w.tickInterval))

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.checkDue(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Info("⚠️ Follow-up worker encerrado")
			return
		case <-ticker.C:
			w.checkDue(ctx)
		}
	}
}

// checkDue devolve quantos avisos novos saíram.
func (w *FollowUpWorker) checkDue(ctx context.Context) int {
	log := logger.FromContext(ctx)
	today := w.now().UTC().Format("2006-01-02")

	leads, err := w.clients.ListDueFollowUps(ctx, today)
	if err != nil {
		log.Error("❌ Erro ao buscar follow-ups vencidos", zap.Error(err))
		return 0
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	// O mapa só guarda quem continua vencido; quem saiu da lista é esquecido.
	still := make(map[string]string, len(leads))
	sent := 0
	for _, lead := range leads {
		if w.notified[lead.ID] == lead.NextFollowUp {
			still[lead.ID] = lead.NextFollowUp
			continue
		}
		ev := entity.NewChangeEvent(entity.CollectionClients, entity.ActionFollowUpDue, lead.ID)
		if err := w.publisher.PublishChange(ctx, ev); err != nil {
			log.Warn("⚠️ Falha ao publicar follow-up", zap.String("lead_id", lead.ID), zap.Error(err))
			continue
		}
		still[lead.ID] = lead.NextFollowUp
		sent++
	}
	w.notified = still

	if sent > 0 {
		log.Info("⏱️ Follow-ups vencidos avisados", zap.Int("count", sent))
	}
	return sent
}
