package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type SettingsUseCase struct {
	Repo      entity.SettingsRepositoryInterface
	Publisher ChangePublisher
}

func NewSettingsUseCase(repo entity.SettingsRepositoryInterface, pub ChangePublisher) *SettingsUseCase {
	return &SettingsUseCase{Repo: repo, Publisher: pub}
}

// Get devolve a linha gravada ou os padrões (Admin / Nafta24) se ainda não existe.
func (uc *SettingsUseCase) Get(ctx context.Context) (entity.Settings, error) {
	s, err := uc.Repo.Get(ctx)
	if errors.Is(err, entity.ErrSettingsNotFound) {
		return entity.DefaultSettings(), nil
	}
	if err != nil {
		return entity.Settings{}, mapStoreError("buscar configurações", err)
	}
	return *s, nil
}

// Save atualiza a linha existente ou cria a primeira.
func (uc *SettingsUseCase) Save(ctx context.Context, in entity.Settings) (entity.Settings, error) {
	in.FullName = strings.TrimSpace(in.FullName)
	in.CompanyName = strings.TrimSpace(in.CompanyName)
	in.AvatarURL = strings.TrimSpace(in.AvatarURL)

	current, err := uc.Repo.Get(ctx)
	switch {
	case errors.Is(err, entity.ErrSettingsNotFound):
		in.ID = ""
		if err := uc.Repo.Create(ctx, &in); err != nil {
			return entity.Settings{}, mapStoreError("criar configurações", err)
		}
	case err != nil:
		return entity.Settings{}, mapStoreError("buscar configurações", err)
	default:
		in.ID = current.ID
		if err := uc.Repo.Update(ctx, &in); err != nil {
			return entity.Settings{}, mapStoreError("atualizar configurações", err)
		}
	}

	saved, err := uc.Get(ctx)
	if err != nil {
		return entity.Settings{}, err
	}
	publish(ctx, uc.Publisher, entity.CollectionSettings, entity.ActionUpdated, saved.ID)
	return saved, nil
}
