package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/xavierca1/ligue-crm/internal/config"
	"github.com/xavierca1/ligue-crm/internal/infra/database"
	"github.com/xavierca1/ligue-crm/internal/infra/integration/emailjs"
	"github.com/xavierca1/ligue-crm/internal/infra/mail"
	"github.com/xavierca1/ligue-crm/internal/infra/metrics"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

// app junta repositórios e casos de uso; serve e os comandos locais
// montam tudo pelo mesmo caminho.
type app struct {
	db      *sql.DB
	clients *database.ClientRepository

	Clients   *usecase.ClientUseCase
	Delete    *usecase.DeleteClientUseCase
	Tasks     *usecase.TaskUseCase
	Assets    *usecase.AssetUseCase
	Settings  *usecase.SettingsUseCase
	Emails    *usecase.EmailUseCase
	Invoices  *usecase.InvoiceUseCase
	Dashboard *usecase.DashboardUseCase
}

func openDB(ctx context.Context, c *config.Config) (*sql.DB, database.Dialect, error) {
	dialect := database.Dialect(c.Database.Driver)
	db, err := database.NewDBConnection(dialect, c.Database.URL)
	if err != nil {
		return nil, dialect, err
	}
	if err := database.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, dialect, err
	}
	return db, dialect, nil
}

func newDispatcher(c *config.Config) usecase.EmailDispatcher {
	if c.Mail.Provider == "smtp" {
		s := c.Mail.SMTP
		return mail.NewEmailSender(s.Host, s.Port, s.User, s.Pass, s.From)
	}
	e := c.Mail.EmailJS
	return emailjs.NewClient(e.URL, e.ServiceID, e.TemplateID, e.PublicKey)
}

func newApp(db *sql.DB, dialect database.Dialect, pub usecase.ChangePublisher, dispatcher usecase.EmailDispatcher) *app {
	m := metrics.Recorder{}

	clientsRepo := database.NewClientRepository(db, dialect)
	tasksRepo := database.NewTaskRepository(db, dialect)
	assetsRepo := database.NewAssetRepository(db, dialect)
	settingsRepo := database.NewSettingsRepository(db, dialect)
	logsRepo := database.NewEmailLogRepository(db, dialect)

	a := &app{db: db, clients: clientsRepo}
	a.Clients = usecase.NewClientUseCase(clientsRepo, pub, m)
	a.Delete = usecase.NewDeleteClientUseCase(clientsRepo, tasksRepo, assetsRepo, pub, m)
	a.Tasks = usecase.NewTaskUseCase(tasksRepo, clientsRepo, pub)
	a.Assets = usecase.NewAssetUseCase(assetsRepo, clientsRepo, pub)
	a.Settings = usecase.NewSettingsUseCase(settingsRepo, pub)
	a.Emails = usecase.NewEmailUseCase(clientsRepo, logsRepo, dispatcher, pub, m)
	a.Invoices = usecase.NewInvoiceUseCase(clientsRepo, a.Settings, m)
	a.Dashboard = usecase.NewDashboardUseCase(clientsRepo, a.Tasks, a.Emails, a.Settings)
	return a
}

// openLocal é o atalho dos comandos de terminal: sem broker e sem hub.
func openLocal(ctx context.Context) (*app, error) {
	db, dialect, err := openDB(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir banco: %w", err)
	}
	return newApp(db, dialect, nil, newDispatcher(cfg)), nil
}
