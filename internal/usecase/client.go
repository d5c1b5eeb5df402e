package usecase

import (
	"context"
	"strings"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type ClientUseCase struct {
	Repo      entity.ClientRepositoryInterface
	Publisher ChangePublisher
	Metrics   Metrics
}

func NewClientUseCase(repo entity.ClientRepositoryInterface, pub ChangePublisher, m Metrics) *ClientUseCase {
	if m == nil {
		m = nopMetrics{}
	}
	return &ClientUseCase{Repo: repo, Publisher: pub, Metrics: m}
}

// ListClients devolve tudo que não é lead, mais novo primeiro. A busca olha
// só o nome, sem diferenciar maiúsculas.
func (uc *ClientUseCase) ListClients(ctx context.Context, in ListClientsInput) ([]*entity.Client, error) {
	all, err := uc.Repo.List(ctx, entity.ScopeClients)
	if err != nil {
		uc.Metrics.StoreError("list_clients")
		return nil, mapStoreError("listar clientes", err)
	}
	status := in.Status
	if status == "All" {
		status = ""
	}
	return filterClients(all, in.Search, status), nil
}

func (uc *ClientUseCase) ListLeads(ctx context.Context, search string) ([]*entity.Client, error) {
	all, err := uc.Repo.List(ctx, entity.ScopeLeads)
	if err != nil {
		uc.Metrics.StoreError("list_leads")
		return nil, mapStoreError("listar leads", err)
	}
	return filterClients(all, search, ""), nil
}

func filterClients(in []*entity.Client, search, status string) []*entity.Client {
	needle := strings.ToLower(strings.TrimSpace(search))
	out := make([]*entity.Client, 0, len(in))
	for _, c := range in {
		if needle != "" && !strings.Contains(strings.ToLower(c.Name), needle) {
			continue
		}
		if status != "" && c.Status != status {
			continue
		}
		out = append(out, c)
	}
	return out
}

func (uc *ClientUseCase) CreateLead(ctx context.Context, in CreateLeadInput) (*entity.Client, error) {
	lead, err := entity.NewLead(in.Name, in.Email, in.Phone, in.Source)
	if err != nil {
		return nil, validationError(err)
	}
	return uc.create(ctx, lead)
}

// CreateClient grava o cliente "em branco" que o usuário completa no perfil.
func (uc *ClientUseCase) CreateClient(ctx context.Context) (*entity.Client, error) {
	return uc.create(ctx, entity.NewPlaceholderClient())
}

func (uc *ClientUseCase) create(ctx context.Context, c *entity.Client) (*entity.Client, error) {
	if err := uc.Repo.Create(ctx, c); err != nil {
		uc.Metrics.StoreError("create_client")
		return nil, mapStoreError("criar cliente", err)
	}
	saved, err := uc.Repo.FindByID(ctx, c.ID)
	if err != nil {
		return nil, mapStoreError("buscar cliente", err)
	}
	publish(ctx, uc.Publisher, entity.CollectionClients, entity.ActionCreated, saved.ID)
	return saved, nil
}

func (uc *ClientUseCase) Get(ctx context.Context, id string) (*entity.Client, error) {
	c, err := uc.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapStoreError("buscar cliente", err)
	}
	return c, nil
}

// Update é o único caminho de escrita do registro: edição rápida, rascunho
// do perfil e conversão passam por aqui. Devolve a versão gravada.
func (uc *ClientUseCase) Update(ctx context.Context, id string, patch entity.ClientPatch) (*entity.Client, error) {
	if err := patch.Validate(); err != nil {
		return nil, validationError(err)
	}
	if patch.IsEmpty() {
		c, err := uc.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if patch.ExpectedUpdatedAt != nil && !c.UpdatedAt.Equal(*patch.ExpectedUpdatedAt) {
			return nil, mapStoreError("atualizar cliente", entity.ErrStaleWrite)
		}
		return c, nil
	}
	if err := uc.Repo.UpdateFields(ctx, id, patch); err != nil {
		uc.Metrics.StoreError("update_client")
		return nil, mapStoreError("atualizar cliente", err)
	}
	saved, err := uc.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapStoreError("buscar cliente", err)
	}
	publish(ctx, uc.Publisher, entity.CollectionClients, entity.ActionUpdated, id)
	return saved, nil
}

// QuickUpdate grava na hora um dos seletores da tabela (status, estágio, origem).
func (uc *ClientUseCase) QuickUpdate(ctx context.Context, id, field, value string) (*entity.Client, error) {
	if !entity.IsQuickEditField(field) {
		return nil, validationError(entity.ErrUnknownField)
	}
	var patch entity.ClientPatch
	if err := patch.Set(field, value); err != nil {
		return nil, validationError(err)
	}
	return uc.Update(ctx, id, patch)
}

// ConvertLead vira o lead em cliente pendente. Exige confirmação.
func (uc *ClientUseCase) ConvertLead(ctx context.Context, id string, confirmed bool) (*entity.Client, error) {
	if !confirmed {
		return nil, confirmationRequired("converting a lead")
	}
	c, err := uc.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapStoreError("buscar lead", err)
	}
	patch, err := c.ConversionPatch()
	if err != nil {
		return nil, mapStoreError("converter lead", err)
	}
	saved, err := uc.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	uc.Metrics.LeadConverted()
	return saved, nil
}
