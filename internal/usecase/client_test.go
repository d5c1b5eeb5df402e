package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

func codeOf(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	var te *TechnicalError
	if errors.As(err, &te) {
		return te.Code
	}
	return ""
}

func TestListClientsFiltersByNameOnly(t *testing.T) {
	repo := new(MockClientRepository)
	repo.On("List", mock.Anything, entity.ScopeClients).Return([]*entity.Client{
		{Name: "Acme Co", Email: "ops@other.test", Status: entity.StatusPending},
		{Name: "Globex", Email: "acme@globex.test", Status: entity.StatusCompleted},
		{Name: "ACME West", Status: entity.StatusCompleted},
	}, nil)
	uc := NewClientUseCase(repo, nil, nil)

	got, err := uc.ListClients(context.Background(), ListClientsInput{Search: "acme", Status: "All"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Acme Co", got[0].Name)
	assert.Equal(t, "ACME West", got[1].Name)

	got, err = uc.ListClients(context.Background(), ListClientsInput{Search: "acme", Status: entity.StatusCompleted})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "ACME West", got[0].Name)
}

func TestCreateLeadRejectsBlankNameWithoutStoreCall(t *testing.T) {
	repo := new(MockClientRepository)
	uc := NewClientUseCase(repo, nil, nil)

	_, err := uc.CreateLead(context.Background(), CreateLeadInput{Name: "   "})

	assert.Equal(t, CodeValidation, codeOf(err))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateLeadStoresAndPublishes(t *testing.T) {
	repo := new(MockClientRepository)
	pub := &recordingPublisher{}
	var stored *entity.Client
	repo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Client")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*entity.Client) }).
		Return(nil)
	repo.On("FindByID", mock.Anything, mock.Anything).
		Return(func(string) *entity.Client { return stored }, nil)
	uc := NewClientUseCase(repo, pub, nil)

	lead, err := uc.CreateLead(context.Background(), CreateLeadInput{Name: "Acme Co", Source: "Referral"})

	require.NoError(t, err)
	assert.Equal(t, entity.TypeLead, lead.Type)
	assert.Equal(t, "Referral", lead.Source)
	assert.Equal(t, []string{"clients.created"}, pub.actions())
}

func TestQuickUpdateRejectsUnknownField(t *testing.T) {
	repo := new(MockClientRepository)
	uc := NewClientUseCase(repo, nil, nil)

	_, err := uc.QuickUpdate(context.Background(), "c1", "notes", "hi")

	assert.Equal(t, CodeValidation, codeOf(err))
	repo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
}

func TestQuickUpdateWritesSingleField(t *testing.T) {
	repo := new(MockClientRepository)
	stage := entity.StageQualified
	repo.On("UpdateFields", mock.Anything, "c1", entity.ClientPatch{PipelineStage: &stage}).Return(nil)
	repo.On("FindByID", mock.Anything, "c1").Return(&entity.Client{ID: "c1", PipelineStage: stage}, nil)
	uc := NewClientUseCase(repo, nil, nil)

	got, err := uc.QuickUpdate(context.Background(), "c1", "pipeline_stage", stage)

	require.NoError(t, err)
	assert.Equal(t, stage, got.PipelineStage)
	repo.AssertExpectations(t)
}

func TestUpdateMapsStaleWriteToConflict(t *testing.T) {
	repo := new(MockClientRepository)
	notes := "x"
	repo.On("UpdateFields", mock.Anything, "c1", mock.Anything).Return(entity.ErrStaleWrite)
	uc := NewClientUseCase(repo, nil, nil)

	_, err := uc.Update(context.Background(), "c1", entity.ClientPatch{Notes: &notes})

	assert.Equal(t, CodeConflict, codeOf(err))
	assert.ErrorIs(t, err, entity.ErrStaleWrite)
}

func TestUpdateRejectsNonISODate(t *testing.T) {
	repo := new(MockClientRepository)
	uc := NewClientUseCase(repo, nil, nil)
	day := "12/01/2099"

	_, err := uc.Update(context.Background(), "c1", entity.ClientPatch{NextFollowUp: &day})

	assert.Equal(t, CodeValidation, codeOf(err))
	assert.ErrorIs(t, err, entity.ErrInvalidDate)
	repo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
}

func TestEmptyUpdateChecksExpectedUpdatedAt(t *testing.T) {
	repo := new(MockClientRepository)
	saved := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	stale := saved.Add(-time.Minute)
	repo.On("FindByID", mock.Anything, "c1").Return(&entity.Client{ID: "c1", UpdatedAt: saved}, nil)
	uc := NewClientUseCase(repo, nil, nil)

	_, err := uc.Update(context.Background(), "c1", entity.ClientPatch{ExpectedUpdatedAt: &stale})
	assert.Equal(t, CodeConflict, codeOf(err))

	got, err := uc.Update(context.Background(), "c1", entity.ClientPatch{ExpectedUpdatedAt: &saved})
	require.NoError(t, err)
	assert.Equal(t, "c1", got.ID)
	repo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
}

func TestConvertLeadRequiresConfirmation(t *testing.T) {
	repo := new(MockClientRepository)
	uc := NewClientUseCase(repo, nil, nil)

	_, err := uc.ConvertLead(context.Background(), "c1", false)

	assert.Equal(t, CodeConfirmationRequired, codeOf(err))
	repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestConvertLead(t *testing.T) {
	repo := new(MockClientRepository)
	lead := &entity.Client{ID: "c1", Name: "Acme Co", Type: entity.TypeLead, Source: "Referral"}
	client, pending := entity.TypeClient, entity.StatusPending
	repo.On("FindByID", mock.Anything, "c1").Return(lead, nil).Once()
	repo.On("UpdateFields", mock.Anything, "c1", entity.ClientPatch{Type: &client, Status: &pending}).Return(nil)
	repo.On("FindByID", mock.Anything, "c1").
		Return(&entity.Client{ID: "c1", Name: "Acme Co", Type: client, Status: pending, Source: "Referral"}, nil)
	uc := NewClientUseCase(repo, nil, nil)

	got, err := uc.ConvertLead(context.Background(), "c1", true)

	require.NoError(t, err)
	assert.Equal(t, entity.TypeClient, got.Type)
	assert.Equal(t, entity.StatusPending, got.Status)
	assert.Equal(t, "Referral", got.Source)
}

func TestConvertLeadRejectsClients(t *testing.T) {
	repo := new(MockClientRepository)
	repo.On("FindByID", mock.Anything, "c1").Return(&entity.Client{ID: "c1", Type: entity.TypeClient}, nil)
	uc := NewClientUseCase(repo, nil, nil)

	_, err := uc.ConvertLead(context.Background(), "c1", true)

	assert.Equal(t, CodeNotALead, codeOf(err))
	repo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetMapsNotFound(t *testing.T) {
	repo := new(MockClientRepository)
	repo.On("FindByID", mock.Anything, "nope").Return(nil, entity.ErrClientNotFound)
	uc := NewClientUseCase(repo, nil, nil)

	_, err := uc.Get(context.Background(), "nope")

	assert.Equal(t, CodeNotFound, codeOf(err))
}

func TestStoreFailureIsTechnical(t *testing.T) {
	repo := new(MockClientRepository)
	repo.On("List", mock.Anything, entity.ScopeLeads).Return(nil, errors.New("connection refused"))
	uc := NewClientUseCase(repo, nil, nil)

	_, err := uc.ListLeads(context.Background(), "")

	assert.True(t, IsTechnicalError(err))
	assert.Equal(t, CodeDatabase, codeOf(err))
}

func TestPublishFailureDoesNotFailMutation(t *testing.T) {
	repo := new(MockClientRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	repo.On("FindByID", mock.Anything, mock.Anything).Return(&entity.Client{ID: "c1"}, nil)
	uc := NewClientUseCase(repo, &recordingPublisher{err: errors.New("broker down")}, nil)

	_, err := uc.CreateClient(context.Background())

	assert.NoError(t, err)
}
