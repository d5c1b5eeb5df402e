package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) Create(ctx context.Context, c *entity.Client) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockClientRepository) FindByID(ctx context.Context, id string) (*entity.Client, error) {
	args := m.Called(ctx, id)
	if fn, ok := args.Get(0).(func(string) *entity.Client); ok {
		return fn(id), args.Error(1)
	}
	if c, ok := args.Get(0).(*entity.Client); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockClientRepository) List(ctx context.Context, scope entity.ClientScope) ([]*entity.Client, error) {
	args := m.Called(ctx, scope)
	list, _ := args.Get(0).([]*entity.Client)
	return list, args.Error(1)
}

func (m *MockClientRepository) UpdateFields(ctx context.Context, id string, patch entity.ClientPatch) error {
	return m.Called(ctx, id, patch).Error(0)
}

func (m *MockClientRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockClientRepository) ListDueFollowUps(ctx context.Context, day string) ([]*entity.Client, error) {
	args := m.Called(ctx, day)
	list, _ := args.Get(0).([]*entity.Client)
	return list, args.Error(1)
}

type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(ctx context.Context, t *entity.Task) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTaskRepository) FindByID(ctx context.Context, id string) (*entity.Task, error) {
	args := m.Called(ctx, id)
	if t, ok := args.Get(0).(*entity.Task); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTaskRepository) ListByClient(ctx context.Context, clientID string) ([]*entity.Task, error) {
	args := m.Called(ctx, clientID)
	list, _ := args.Get(0).([]*entity.Task)
	return list, args.Error(1)
}

func (m *MockTaskRepository) ListOpen(ctx context.Context, limit int) ([]*entity.Task, error) {
	args := m.Called(ctx, limit)
	list, _ := args.Get(0).([]*entity.Task)
	return list, args.Error(1)
}

func (m *MockTaskRepository) SetCompleted(ctx context.Context, id string, completed bool) error {
	return m.Called(ctx, id, completed).Error(0)
}

func (m *MockTaskRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockTaskRepository) DeleteByClient(ctx context.Context, clientID string) error {
	return m.Called(ctx, clientID).Error(0)
}

type MockAssetRepository struct {
	mock.Mock
}

func (m *MockAssetRepository) Create(ctx context.Context, a *entity.Asset) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockAssetRepository) FindByID(ctx context.Context, id string) (*entity.Asset, error) {
	args := m.Called(ctx, id)
	if a, ok := args.Get(0).(*entity.Asset); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAssetRepository) ListByClient(ctx context.Context, clientID string) ([]*entity.Asset, error) {
	args := m.Called(ctx, clientID)
	list, _ := args.Get(0).([]*entity.Asset)
	return list, args.Error(1)
}

func (m *MockAssetRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockAssetRepository) DeleteByClient(ctx context.Context, clientID string) error {
	return m.Called(ctx, clientID).Error(0)
}

type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) Get(ctx context.Context) (*entity.Settings, error) {
	args := m.Called(ctx)
	if s, ok := args.Get(0).(*entity.Settings); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSettingsRepository) Create(ctx context.Context, s *entity.Settings) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockSettingsRepository) Update(ctx context.Context, s *entity.Settings) error {
	return m.Called(ctx, s).Error(0)
}

type MockEmailLogRepository struct {
	mock.Mock
}

func (m *MockEmailLogRepository) Create(ctx context.Context, l *entity.EmailLog) error {
	return m.Called(ctx, l).Error(0)
}

func (m *MockEmailLogRepository) List(ctx context.Context) ([]*entity.EmailLog, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]*entity.EmailLog)
	return list, args.Error(1)
}

type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Send(ctx context.Context, msg entity.EmailMessage) error {
	return m.Called(ctx, msg).Error(0)
}

// recordingPublisher guarda os eventos em ordem.
type recordingPublisher struct {
	events []entity.ChangeEvent
	err    error
}

func (p *recordingPublisher) PublishChange(_ context.Context, ev entity.ChangeEvent) error {
	p.events = append(p.events, ev)
	return p.err
}

func (p *recordingPublisher) actions() []string {
	out := make([]string, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Collection+"."+ev.Action)
	}
	return out
}
