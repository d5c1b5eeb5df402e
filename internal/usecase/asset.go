package usecase

import (
	"context"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type AssetUseCase struct {
	Assets    entity.AssetRepositoryInterface
	Clients   entity.ClientRepositoryInterface
	Publisher ChangePublisher
}

func NewAssetUseCase(assets entity.AssetRepositoryInterface, clients entity.ClientRepositoryInterface, pub ChangePublisher) *AssetUseCase {
	return &AssetUseCase{Assets: assets, Clients: clients, Publisher: pub}
}

func (uc *AssetUseCase) List(ctx context.Context, clientID string) ([]AssetOutput, error) {
	assets, err := uc.Assets.ListByClient(ctx, clientID)
	if err != nil {
		return nil, mapStoreError("listar ativos", err)
	}
	out := make([]AssetOutput, 0, len(assets))
	for _, a := range assets {
		out = append(out, NewAssetOutput(a))
	}
	return out, nil
}

func (uc *AssetUseCase) Add(ctx context.Context, clientID string, in AddAssetInput) (AssetOutput, error) {
	a, err := entity.NewAsset(clientID, in.Title, in.URL, in.Credentials)
	if err != nil {
		return AssetOutput{}, validationError(err)
	}
	if _, err := uc.Clients.FindByID(ctx, clientID); err != nil {
		return AssetOutput{}, mapStoreError("buscar cliente", err)
	}
	if err := uc.Assets.Create(ctx, a); err != nil {
		return AssetOutput{}, mapStoreError("criar ativo", err)
	}
	saved, err := uc.Assets.FindByID(ctx, a.ID)
	if err != nil {
		return AssetOutput{}, mapStoreError("buscar ativo", err)
	}
	publish(ctx, uc.Publisher, entity.CollectionAssets, entity.ActionCreated, saved.ID)
	return NewAssetOutput(saved), nil
}

func (uc *AssetUseCase) Delete(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return confirmationRequired("deleting an asset")
	}
	if _, err := uc.Assets.FindByID(ctx, id); err != nil {
		return mapStoreError("buscar ativo", err)
	}
	if err := uc.Assets.Delete(ctx, id); err != nil {
		return mapStoreError("apagar ativo", err)
	}
	publish(ctx, uc.Publisher, entity.CollectionAssets, entity.ActionDeleted, id)
	return nil
}
