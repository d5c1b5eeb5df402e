package usecase

import (
	"context"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/logger"
	"go.uber.org/zap"
)

// publish avisa os ouvintes. A mutação já foi gravada, então uma falha aqui
// só é logada.
func publish(ctx context.Context, pub ChangePublisher, collection, action, id string) {
	if pub == nil {
		return
	}
	ev := entity.NewChangeEvent(collection, action, id)
	if err := pub.PublishChange(ctx, ev); err != nil {
		logger.FromContext(ctx).Warn("falha ao publicar mudança",
			zap.String("collection", collection),
			zap.String("action", action),
			zap.String("id", id),
			zap.Error(err))
	}
}
