package usecase

import (
	"context"
	"fmt"

	"github.com/xavierca1/ligue-crm/internal/infra/logger"
	"go.uber.org/zap"
)

// Transaction executa passos em ordem; se um falhar, desfaz os anteriores
// de trás pra frente usando a compensação registrada junto de cada passo.
type Transaction struct {
	steps []step
}

type step struct {
	name       string
	fn         func(context.Context) error
	compensate func(context.Context) error
}

func NewTransaction() *Transaction {
	return &Transaction{}
}

// AddStep registra um passo. compensate pode ser nil quando não há o que desfazer.
func (t *Transaction) AddStep(name string, fn, compensate func(context.Context) error) {
	t.steps = append(t.steps, step{name: name, fn: fn, compensate: compensate})
}

func (t *Transaction) Execute(ctx context.Context) error {
	for i, s := range t.steps {
		if err := s.fn(ctx); err != nil {
			t.rollback(ctx, i)
			return fmt.Errorf("operation '%s' failed: %w (rolled back %d operations)", s.name, err, i)
		}
	}
	return nil
}

func (t *Transaction) rollback(ctx context.Context, failedAt int) {
	// a compensação roda mesmo com o ctx da requisição cancelado
	ctx = context.WithoutCancel(ctx)
	for i := failedAt - 1; i >= 0; i-- {
		s := t.steps[i]
		if s.compensate == nil {
			continue
		}
		if err := s.compensate(ctx); err != nil {
			logger.FromContext(ctx).Error("⚠️ compensation failed, inconsistency risk",
				zap.String("step", s.name), zap.Error(err))
		}
	}
}
