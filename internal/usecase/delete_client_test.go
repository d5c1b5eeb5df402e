package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type cascadeFixture struct {
	clients *MockClientRepository
	tasks   *MockTaskRepository
	assets  *MockAssetRepository
	pub     *recordingPublisher
	uc      *DeleteClientUseCase
}

func newCascadeFixture() *cascadeFixture {
	f := &cascadeFixture{
		clients: new(MockClientRepository),
		tasks:   new(MockTaskRepository),
		assets:  new(MockAssetRepository),
		pub:     &recordingPublisher{},
	}
	f.uc = NewDeleteClientUseCase(f.clients, f.tasks, f.assets, f.pub, nil)
	return f
}

func TestDeleteClientRequiresConfirmation(t *testing.T) {
	f := newCascadeFixture()

	err := f.uc.Execute(context.Background(), "c1", false)

	assert.Equal(t, CodeConfirmationRequired, codeOf(err))
	f.clients.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	f.tasks.AssertNotCalled(t, "DeleteByClient", mock.Anything, mock.Anything)
}

func TestDeleteClientCascadesInOrder(t *testing.T) {
	f := newCascadeFixture()
	var order []string
	f.clients.On("FindByID", mock.Anything, "c1").Return(&entity.Client{ID: "c1", Type: entity.TypeClient}, nil)
	f.tasks.On("ListByClient", mock.Anything, "c1").Return([]*entity.Task{{ID: "t1"}, {ID: "t2"}}, nil)
	f.assets.On("ListByClient", mock.Anything, "c1").Return([]*entity.Asset{{ID: "a1"}}, nil)
	f.tasks.On("DeleteByClient", mock.Anything, "c1").Run(func(mock.Arguments) { order = append(order, "tasks") }).Return(nil)
	f.assets.On("DeleteByClient", mock.Anything, "c1").Run(func(mock.Arguments) { order = append(order, "assets") }).Return(nil)
	f.clients.On("Delete", mock.Anything, "c1").Run(func(mock.Arguments) { order = append(order, "client") }).Return(nil)

	require.NoError(t, f.uc.Execute(context.Background(), "c1", true))

	assert.Equal(t, []string{"tasks", "assets", "client"}, order)
	assert.Equal(t, []string{
		"tasks.deleted", "tasks.deleted", "client_assets.deleted", "clients.deleted",
	}, f.pub.actions())
}

func TestDeleteClientRestoresChildrenWhenClientDeleteFails(t *testing.T) {
	f := newCascadeFixture()
	task := &entity.Task{ID: "t1", ClientID: "c1", Title: "Ship"}
	asset := &entity.Asset{ID: "a1", ClientID: "c1", Title: "WP Admin"}
	f.clients.On("FindByID", mock.Anything, "c1").Return(&entity.Client{ID: "c1"}, nil)
	f.tasks.On("ListByClient", mock.Anything, "c1").Return([]*entity.Task{task}, nil)
	f.assets.On("ListByClient", mock.Anything, "c1").Return([]*entity.Asset{asset}, nil)
	f.tasks.On("DeleteByClient", mock.Anything, "c1").Return(nil)
	f.assets.On("DeleteByClient", mock.Anything, "c1").Return(nil)
	f.clients.On("Delete", mock.Anything, "c1").Return(errors.New("timeout"))
	f.assets.On("Create", mock.Anything, asset).Return(nil)
	f.tasks.On("Create", mock.Anything, task).Return(nil)

	err := f.uc.Execute(context.Background(), "c1", true)

	require.Error(t, err)
	assert.True(t, IsTechnicalError(err))
	f.assets.AssertCalled(t, "Create", mock.Anything, asset)
	f.tasks.AssertCalled(t, "Create", mock.Anything, task)
	assert.Empty(t, f.pub.events)
}

func TestDeleteClientNotFound(t *testing.T) {
	f := newCascadeFixture()
	f.clients.On("FindByID", mock.Anything, "ghost").Return(nil, entity.ErrClientNotFound)

	err := f.uc.Execute(context.Background(), "ghost", true)

	assert.Equal(t, CodeNotFound, codeOf(err))
}

func TestDeleteLeadRejectsClient(t *testing.T) {
	f := newCascadeFixture()
	f.clients.On("FindByID", mock.Anything, "c1").Return(&entity.Client{ID: "c1", Type: entity.TypeClient}, nil)

	err := f.uc.ExecuteLead(context.Background(), "c1", true)

	assert.Equal(t, CodeNotALead, codeOf(err))
	f.tasks.AssertNotCalled(t, "DeleteByClient", mock.Anything, mock.Anything)
}
