package usecase

import (
	"context"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

// OpenTasksLimit é quantas pendências aparecem no painel.
const OpenTasksLimit = 10

type TaskUseCase struct {
	Tasks     entity.TaskRepositoryInterface
	Clients   entity.ClientRepositoryInterface
	Publisher ChangePublisher
}

func NewTaskUseCase(tasks entity.TaskRepositoryInterface, clients entity.ClientRepositoryInterface, pub ChangePublisher) *TaskUseCase {
	return &TaskUseCase{Tasks: tasks, Clients: clients, Publisher: pub}
}

// ListByClient ordena abertas antes das concluídas e, dentro de cada grupo,
// pela data de entrega.
func (uc *TaskUseCase) ListByClient(ctx context.Context, clientID string) ([]*entity.Task, error) {
	tasks, err := uc.Tasks.ListByClient(ctx, clientID)
	if err != nil {
		return nil, mapStoreError("listar tarefas", err)
	}
	return tasks, nil
}

func (uc *TaskUseCase) ListOpen(ctx context.Context) ([]*entity.Task, error) {
	tasks, err := uc.Tasks.ListOpen(ctx, OpenTasksLimit)
	if err != nil {
		return nil, mapStoreError("listar tarefas abertas", err)
	}
	return tasks, nil
}

func (uc *TaskUseCase) Add(ctx context.Context, clientID string, in AddTaskInput) (*entity.Task, error) {
	t, err := entity.NewTask(clientID, in.Title, in.DueDate)
	if err != nil {
		return nil, validationError(err)
	}
	if _, err := uc.Clients.FindByID(ctx, clientID); err != nil {
		return nil, mapStoreError("buscar cliente", err)
	}
	if err := uc.Tasks.Create(ctx, t); err != nil {
		return nil, mapStoreError("criar tarefa", err)
	}
	saved, err := uc.Tasks.FindByID(ctx, t.ID)
	if err != nil {
		return nil, mapStoreError("buscar tarefa", err)
	}
	publish(ctx, uc.Publisher, entity.CollectionTasks, entity.ActionCreated, saved.ID)
	return saved, nil
}

// Toggle inverte is_completed e devolve a tarefa gravada.
func (uc *TaskUseCase) Toggle(ctx context.Context, id string) (*entity.Task, error) {
	t, err := uc.Tasks.FindByID(ctx, id)
	if err != nil {
		return nil, mapStoreError("buscar tarefa", err)
	}
	if err := uc.Tasks.SetCompleted(ctx, id, !t.IsCompleted); err != nil {
		return nil, mapStoreError("atualizar tarefa", err)
	}
	saved, err := uc.Tasks.FindByID(ctx, id)
	if err != nil {
		return nil, mapStoreError("buscar tarefa", err)
	}
	publish(ctx, uc.Publisher, entity.CollectionTasks, entity.ActionUpdated, id)
	return saved, nil
}

func (uc *TaskUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.Tasks.FindByID(ctx, id); err != nil {
		return mapStoreError("buscar tarefa", err)
	}
	if err := uc.Tasks.Delete(ctx, id); err != nil {
		return mapStoreError("apagar tarefa", err)
	}
	publish(ctx, uc.Publisher, entity.CollectionTasks, entity.ActionDeleted, id)
	return nil
}
