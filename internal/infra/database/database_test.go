package database

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := NewDBConnection(SQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, Migrate(context.Background(), db))
	return db
}

func seedClient(t *testing.T, repo *ClientRepository, name, kind string, created time.Time) *entity.Client {
	t.Helper()
	c := entity.NewPlaceholderClient()
	c.Name = name
	c.Type = kind
	c.CreatedAt = created
	c.UpdatedAt = created
	require.NoError(t, repo.Create(context.Background(), c))
	return c
}

func TestRebind(t *testing.T) {
	q := "UPDATE t SET a = ?, b = ? WHERE id = ?"

	assert.Equal(t, "UPDATE t SET a = $1, b = $2 WHERE id = $3", Postgres.Rebind(q))
	assert.Equal(t, q, SQLite.Rebind(q))
	assert.Error(t, Dialect("mysql").Validate())
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := newTestDB(t)

	assert.NoError(t, Migrate(context.Background(), db))
}

func TestClientRepositoryRoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := NewClientRepository(db, SQLite)
	ctx := context.Background()

	lead, err := entity.NewLead("Acme Co", "ops@acme.test", "555-0100", "Referral")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, lead))

	got, err := repo.FindByID(ctx, lead.ID)
	require.NoError(t, err)
	assert.Equal(t, lead.Name, got.Name)
	assert.Equal(t, entity.TypeLead, got.Type)
	assert.Equal(t, entity.StageNew, got.PipelineStage)
	assert.True(t, lead.CreatedAt.Equal(got.CreatedAt))

	_, err = repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, entity.ErrClientNotFound)
}

func TestClientRepositoryListScopesAndOrder(t *testing.T) {
	db := newTestDB(t)
	repo := NewClientRepository(db, SQLite)
	ctx := context.Background()
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	seedClient(t, repo, "Old Client", entity.TypeClient, base)
	seedClient(t, repo, "New Client", entity.TypeClient, base.Add(time.Hour))
	seedClient(t, repo, "Some Lead", entity.TypeLead, base.Add(30*time.Minute))

	clients, err := repo.List(ctx, entity.ScopeClients)
	require.NoError(t, err)
	require.Len(t, clients, 2)
	assert.Equal(t, "New Client", clients[0].Name)
	assert.Equal(t, "Old Client", clients[1].Name)

	leads, err := repo.List(ctx, entity.ScopeLeads)
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "Some Lead", leads[0].Name)

	all, err := repo.List(ctx, entity.ScopeAll)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestClientRepositoryUpdateFieldsTouchesOnlyPatch(t *testing.T) {
	db := newTestDB(t)
	repo := NewClientRepository(db, SQLite)
	ctx := context.Background()
	c := seedClient(t, repo, "Acme Co", entity.TypeClient, time.Now().UTC())

	notes := "call on Friday"
	require.NoError(t, repo.UpdateFields(ctx, c.ID, entity.ClientPatch{Notes: &notes}))
	price := 1250.5
	require.NoError(t, repo.UpdateFields(ctx, c.ID, entity.ClientPatch{Price: &price}))

	got, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, notes, got.Notes)
	assert.Equal(t, price, got.Price)
	assert.Equal(t, "Acme Co", got.Name)
	assert.True(t, got.UpdatedAt.After(c.UpdatedAt) || got.UpdatedAt.Equal(c.UpdatedAt))
}

func TestClientRepositoryDetectsStaleWrite(t *testing.T) {
	db := newTestDB(t)
	repo := NewClientRepository(db, SQLite)
	ctx := context.Background()
	c := seedClient(t, repo, "Acme Co", entity.TypeClient, time.Now().UTC().Add(-time.Minute))

	stale := c.UpdatedAt
	city := "Austin"
	require.NoError(t, repo.UpdateFields(ctx, c.ID, entity.ClientPatch{City: &city, ExpectedUpdatedAt: &stale}))

	zip := "78701"
	err := repo.UpdateFields(ctx, c.ID, entity.ClientPatch{Zip: &zip, ExpectedUpdatedAt: &stale})
	assert.ErrorIs(t, err, entity.ErrStaleWrite)

	err = repo.UpdateFields(ctx, "missing", entity.ClientPatch{Zip: &zip})
	assert.ErrorIs(t, err, entity.ErrClientNotFound)
}

func TestListDueFollowUps(t *testing.T) {
	db := newTestDB(t)
	repo := NewClientRepository(db, SQLite)
	ctx := context.Background()
	now := time.Now().UTC()

	due := seedClient(t, repo, "Due Lead", entity.TypeLead, now)
	later := seedClient(t, repo, "Later Lead", entity.TypeLead, now)
	client := seedClient(t, repo, "Client", entity.TypeClient, now)
	seedClient(t, repo, "No Date Lead", entity.TypeLead, now)

	for id, day := range map[string]string{due.ID: "2026-10-01", later.ID: "2026-12-01", client.ID: "2026-09-01"} {
		d := day
		require.NoError(t, repo.UpdateFields(ctx, id, entity.ClientPatch{NextFollowUp: &d}))
	}

	got, err := repo.ListDueFollowUps(ctx, "2026-10-15")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Due Lead", got[0].Name)
}

func TestUpdateFieldsRejectsNonISOFollowUp(t *testing.T) {
	db := newTestDB(t)
	repo := NewClientRepository(db, SQLite)
	ctx := context.Background()
	lead := seedClient(t, repo, "Slash Lead", entity.TypeLead, time.Now().UTC())

	day := "12/01/2099"
	err := repo.UpdateFields(ctx, lead.ID, entity.ClientPatch{NextFollowUp: &day})
	assert.ErrorIs(t, err, entity.ErrInvalidDate)

	got, err := repo.ListDueFollowUps(ctx, "2026-10-15")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestTaskRepositoryOrdering(t *testing.T) {
	db := newTestDB(t)
	clients := NewClientRepository(db, SQLite)
	tasks := NewTaskRepository(db, SQLite)
	ctx := context.Background()
	c := seedClient(t, clients, "Acme Co", entity.TypeClient, time.Now().UTC())

	mk := func(title, due string, done bool) *entity.Task {
		task, err := entity.NewTask(c.ID, title, due)
		require.NoError(t, err)
		task.IsCompleted = done
		require.NoError(t, tasks.Create(ctx, task))
		return task
	}
	mk("no date", "", false)
	mk("late", "2026-12-01", false)
	mk("done early", "2026-01-01", true)
	mk("soon", "2026-11-01", false)

	list, err := tasks.ListByClient(ctx, c.ID)
	require.NoError(t, err)
	titles := []string{}
	for _, task := range list {
		titles = append(titles, task.Title)
	}
	assert.Equal(t, []string{"soon", "late", "no date", "done early"}, titles)

	open, err := tasks.ListOpen(ctx, 2)
	require.NoError(t, err)
	require.Len(t, open, 2)
	assert.Equal(t, "soon", open[0].Title)
	assert.Equal(t, "", list[2].DueDate)
}

func TestTaskRepositoryToggleAndDelete(t *testing.T) {
	db := newTestDB(t)
	clients := NewClientRepository(db, SQLite)
	tasks := NewTaskRepository(db, SQLite)
	ctx := context.Background()
	c := seedClient(t, clients, "Acme Co", entity.TypeClient, time.Now().UTC())
	task, _ := entity.NewTask(c.ID, "Ship site", "2026-11-01")
	require.NoError(t, tasks.Create(ctx, task))

	require.NoError(t, tasks.SetCompleted(ctx, task.ID, true))
	got, err := tasks.FindByID(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, got.IsCompleted)

	require.NoError(t, tasks.Delete(ctx, task.ID))
	assert.ErrorIs(t, tasks.Delete(ctx, task.ID), entity.ErrTaskNotFound)
	assert.ErrorIs(t, tasks.SetCompleted(ctx, task.ID, false), entity.ErrTaskNotFound)
}

func TestTaskForMissingClientViolatesForeignKey(t *testing.T) {
	db := newTestDB(t)
	tasks := NewTaskRepository(db, SQLite)
	task, _ := entity.NewTask("ghost", "Orphan", "")

	err := tasks.Create(context.Background(), task)

	assert.ErrorIs(t, err, entity.ErrClientNotFound)
}

func TestAssetRepositoryCascadeHelpers(t *testing.T) {
	db := newTestDB(t)
	clients := NewClientRepository(db, SQLite)
	assets := NewAssetRepository(db, SQLite)
	tasks := NewTaskRepository(db, SQLite)
	ctx := context.Background()
	c := seedClient(t, clients, "Acme Co", entity.TypeClient, time.Now().UTC())

	a, err := entity.NewAsset(c.ID, "WP Admin", "https://acme.test/wp-admin", "admin / hunter2")
	require.NoError(t, err)
	require.NoError(t, assets.Create(ctx, a))
	task, _ := entity.NewTask(c.ID, "Renew domain", "")
	require.NoError(t, tasks.Create(ctx, task))

	// com filhos, a FK impede apagar o cliente
	assert.Error(t, clients.Delete(ctx, c.ID))

	list, err := assets.ListByClient(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "admin / hunter2", list[0].Credentials)

	require.NoError(t, tasks.DeleteByClient(ctx, c.ID))
	require.NoError(t, assets.DeleteByClient(ctx, c.ID))
	require.NoError(t, clients.Delete(ctx, c.ID))

	_, err = assets.FindByID(ctx, a.ID)
	assert.ErrorIs(t, err, entity.ErrAssetNotFound)
	assert.ErrorIs(t, clients.Delete(ctx, c.ID), entity.ErrClientNotFound)
}

func TestSettingsRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewSettingsRepository(db, SQLite)
	ctx := context.Background()

	_, err := repo.Get(ctx)
	assert.ErrorIs(t, err, entity.ErrSettingsNotFound)

	s := &entity.Settings{FullName: "Jane Roe", CompanyName: "Roe Studio"}
	require.NoError(t, repo.Create(ctx, s))
	assert.NotEmpty(t, s.ID)

	s.CompanyName = "Roe & Co"
	require.NoError(t, repo.Update(ctx, s))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Roe & Co", got.CompanyName)
}

func TestEmailLogRepositoryNewestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewEmailLogRepository(db, SQLite)
	ctx := context.Background()

	first := entity.NewSentEmailLog("c1", entity.EmailMessage{ToEmail: "a@x.test", ToName: "A", Subject: "one"})
	first.CreatedAt = time.Now().UTC().Add(-time.Minute)
	second := entity.NewSentEmailLog("c1", entity.EmailMessage{ToEmail: "a@x.test", ToName: "A", Subject: "two"})
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	logs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "two", logs[0].Subject)
	assert.Equal(t, entity.EmailStatusSent, logs[1].Status)
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, ":memory:?_pragma=foreign_keys(1)", sqliteDSN(":memory:"))
	assert.Equal(t, "crm.db?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", sqliteDSN("crm.db?_pragma=busy_timeout(5000)"))
	assert.Equal(t, "crm.db?_pragma=foreign_keys(0)", sqliteDSN("crm.db?_pragma=foreign_keys(0)"))
}

func TestForeignKeysOnEveryPooledConnection(t *testing.T) {
	db, err := NewDBConnection(SQLite, filepath.Join(t.TempDir(), "crm.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	db.SetMaxOpenConns(2)

	ctx := context.Background()
	first, err := db.Conn(ctx)
	require.NoError(t, err)
	defer first.Close()
	second, err := db.Conn(ctx)
	require.NoError(t, err)
	defer second.Close()

	for _, conn := range []*sql.Conn{first, second} {
		var on int
		require.NoError(t, conn.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&on))
		assert.Equal(t, 1, on)
	}
}
