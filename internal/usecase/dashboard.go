package usecase

import (
	"context"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/report"
)

type DashboardOutput struct {
	Clients   []*entity.Client   `json:"clients"`
	Settings  entity.Settings    `json:"settings"`
	OpenTasks []*entity.Task     `json:"open_tasks"`
	EmailLogs []*entity.EmailLog `json:"email_logs"`
	Stats     report.Summary     `json:"stats"`
}

// DashboardUseCase monta o snapshot do painel. Os números são recalculados
// a cada chamada a partir da lista completa.
type DashboardUseCase struct {
	Clients  entity.ClientRepositoryInterface
	Tasks    *TaskUseCase
	Emails   *EmailUseCase
	Settings *SettingsUseCase
}

func NewDashboardUseCase(clients entity.ClientRepositoryInterface, tasks *TaskUseCase, emails *EmailUseCase, settings *SettingsUseCase) *DashboardUseCase {
	return &DashboardUseCase{Clients: clients, Tasks: tasks, Emails: emails, Settings: settings}
}

func (uc *DashboardUseCase) Execute(ctx context.Context) (*DashboardOutput, error) {
	clients, err := uc.Clients.List(ctx, entity.ScopeAll)
	if err != nil {
		return nil, mapStoreError("listar clientes", err)
	}
	settings, err := uc.Settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	tasks, err := uc.Tasks.ListOpen(ctx)
	if err != nil {
		return nil, err
	}
	logs, err := uc.Emails.List(ctx)
	if err != nil {
		return nil, err
	}

	return &DashboardOutput{
		Clients:   clients,
		Settings:  settings,
		OpenTasks: tasks,
		EmailLogs: logs,
		Stats:     report.Summarize(clients),
	}, nil
}
