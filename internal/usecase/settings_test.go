package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

func TestSettingsDefaultsWhenMissing(t *testing.T) {
	repo := new(MockSettingsRepository)
	repo.On("Get", mock.Anything).Return(nil, entity.ErrSettingsNotFound)
	uc := NewSettingsUseCase(repo, nil)

	s, err := uc.Get(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Admin", s.FullName)
	assert.Equal(t, "Nafta24", s.CompanyName)
}

func TestSaveSettingsInsertsFirstRow(t *testing.T) {
	repo := new(MockSettingsRepository)
	repo.On("Get", mock.Anything).Return(nil, entity.ErrSettingsNotFound).Once()
	repo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Settings")).Return(nil)
	repo.On("Get", mock.Anything).Return(&entity.Settings{ID: "s1", FullName: "Jane Roe", CompanyName: "Roe Studio"}, nil)
	uc := NewSettingsUseCase(repo, nil)

	s, err := uc.Save(context.Background(), entity.Settings{FullName: " Jane Roe ", CompanyName: "Roe Studio"})

	require.NoError(t, err)
	assert.Equal(t, "s1", s.ID)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	created := repo.Calls[1].Arguments.Get(1).(*entity.Settings)
	assert.Equal(t, "Jane Roe", created.FullName)
}

func TestSaveSettingsUpdatesExistingRow(t *testing.T) {
	repo := new(MockSettingsRepository)
	repo.On("Get", mock.Anything).Return(&entity.Settings{ID: "s1", FullName: "Admin"}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(s *entity.Settings) bool {
		return s.ID == "s1" && s.CompanyName == "Roe Studio"
	})).Return(nil)
	uc := NewSettingsUseCase(repo, nil)

	_, err := uc.Save(context.Background(), entity.Settings{ID: "ignored", CompanyName: "Roe Studio"})

	require.NoError(t, err)
	repo.AssertExpectations(t)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
