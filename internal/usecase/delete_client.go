package usecase

import (
	"context"
	"fmt"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

// DeleteClientUseCase apaga o cliente junto com tarefas e ativos.
// Ordem: tasks -> client_assets -> clients. Se um passo falhar, os filhos
// apagados antes são recriados.
type DeleteClientUseCase struct {
	Clients   entity.ClientRepositoryInterface
	Tasks     entity.TaskRepositoryInterface
	Assets    entity.AssetRepositoryInterface
	Publisher ChangePublisher
	Metrics   Metrics
}

func NewDeleteClientUseCase(
	clients entity.ClientRepositoryInterface,
	tasks entity.TaskRepositoryInterface,
	assets entity.AssetRepositoryInterface,
	pub ChangePublisher,
	m Metrics,
) *DeleteClientUseCase {
	if m == nil {
		m = nopMetrics{}
	}
	return &DeleteClientUseCase{Clients: clients, Tasks: tasks, Assets: assets, Publisher: pub, Metrics: m}
}

func (uc *DeleteClientUseCase) Execute(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return confirmationRequired("deleting a client")
	}
	if _, err := uc.Clients.FindByID(ctx, id); err != nil {
		return mapStoreError("buscar cliente", err)
	}
	return uc.cascade(ctx, id)
}

// ExecuteLead é o mesmo fluxo, mas recusa registros que já são clientes.
func (uc *DeleteClientUseCase) ExecuteLead(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return confirmationRequired("deleting a lead")
	}
	c, err := uc.Clients.FindByID(ctx, id)
	if err != nil {
		return mapStoreError("buscar lead", err)
	}
	if !c.IsLead() {
		return mapStoreError("apagar lead", entity.ErrNotALead)
	}
	return uc.cascade(ctx, id)
}

func (uc *DeleteClientUseCase) cascade(ctx context.Context, id string) error {
	tasks, err := uc.Tasks.ListByClient(ctx, id)
	if err != nil {
		return mapStoreError("listar tarefas", err)
	}
	assets, err := uc.Assets.ListByClient(ctx, id)
	if err != nil {
		return mapStoreError("listar ativos", err)
	}

	tx := NewTransaction()
	tx.AddStep("delete_tasks",
		func(ctx context.Context) error { return uc.Tasks.DeleteByClient(ctx, id) },
		func(ctx context.Context) error {
			for _, t := range tasks {
				if err := uc.Tasks.Create(ctx, t); err != nil {
					return fmt.Errorf("erro ao restaurar tarefa %s: %w", t.ID, err)
				}
			}
			return nil
		})
	tx.AddStep("delete_assets",
		func(ctx context.Context) error { return uc.Assets.DeleteByClient(ctx, id) },
		func(ctx context.Context) error {
			for _, a := range assets {
				if err := uc.Assets.Create(ctx, a); err != nil {
					return fmt.Errorf("erro ao restaurar ativo %s: %w", a.ID, err)
				}
			}
			return nil
		})
	tx.AddStep("delete_client",
		func(ctx context.Context) error { return uc.Clients.Delete(ctx, id) },
		nil)

	if err := tx.Execute(ctx); err != nil {
		uc.Metrics.StoreError("delete_client")
		return mapStoreError("apagar cliente", err)
	}

	for _, t := range tasks {
		publish(ctx, uc.Publisher, entity.CollectionTasks, entity.ActionDeleted, t.ID)
	}
	for _, a := range assets {
		publish(ctx, uc.Publisher, entity.CollectionAssets, entity.ActionDeleted, a.ID)
	}
	publish(ctx, uc.Publisher, entity.CollectionClients, entity.ActionDeleted, id)
	return nil
}
