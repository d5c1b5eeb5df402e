package usecase

import (
	"context"
	"errors"
	"sync"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type DraftState int

const (
	Viewing DraftState = iota
	Editing
)

var (
	ErrNotLoaded  = errors.New("record not loaded in workspace")
	ErrNotEditing = errors.New("record is not being edited")
)

type draft struct {
	record  entity.Client
	state   DraftState
	pending entity.ClientPatch
}

// Workspace guarda uma cópia de cada registro aberto. Toda tela que edita
// passa por aqui, então não existem cópias divergentes do mesmo cliente.
type Workspace struct {
	Clients *ClientUseCase

	mu     sync.Mutex
	drafts map[string]*draft
}

func NewWorkspace(clients *ClientUseCase) *Workspace {
	return &Workspace{Clients: clients, drafts: map[string]*draft{}}
}

// Open carrega (ou recarrega) o registro do banco, em modo de visualização
// se ainda não estava aberto.
func (ws *Workspace) Open(ctx context.Context, id string) (entity.Client, error) {
	c, err := ws.Clients.Get(ctx, id)
	if err != nil {
		return entity.Client{}, err
	}

	ws.mu.Lock()
	defer ws.mu.Unlock()
	d, ok := ws.drafts[id]
	if !ok {
		d = &draft{}
		ws.drafts[id] = d
	}
	d.record = *c
	return ws.view(d), nil
}

// View devolve o registro com as alterações pendentes aplicadas.
func (ws *Workspace) View(id string) (entity.Client, DraftState, error) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	d, ok := ws.drafts[id]
	if !ok {
		return entity.Client{}, Viewing, ErrNotLoaded
	}
	return ws.view(d), d.state, nil
}

func (ws *Workspace) view(d *draft) entity.Client {
	c := d.record
	if d.state == Editing {
		d.pending.Apply(&c)
	}
	return c
}

func (ws *Workspace) Begin(id string) error {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	d, ok := ws.drafts[id]
	if !ok {
		return ErrNotLoaded
	}
	if d.state != Editing {
		d.state = Editing
		d.pending = entity.ClientPatch{}
	}
	return nil
}

func (ws *Workspace) Set(id, field, value string) error {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	d, ok := ws.drafts[id]
	if !ok {
		return ErrNotLoaded
	}
	if d.state != Editing {
		return ErrNotEditing
	}
	if err := d.pending.Set(field, value); err != nil {
		return validationError(err)
	}
	return nil
}

// Cancel descarta o rascunho e volta para visualização.
func (ws *Workspace) Cancel(id string) error {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	d, ok := ws.drafts[id]
	if !ok {
		return ErrNotLoaded
	}
	d.state = Viewing
	d.pending = entity.ClientPatch{}
	return nil
}

// Commit grava só os campos alterados no rascunho. Em caso de erro o
// rascunho continua em edição para nova tentativa.
func (ws *Workspace) Commit(ctx context.Context, id string) (entity.Client, error) {
	ws.mu.Lock()
	d, ok := ws.drafts[id]
	if !ok {
		ws.mu.Unlock()
		return entity.Client{}, ErrNotLoaded
	}
	if d.state != Editing {
		ws.mu.Unlock()
		return entity.Client{}, ErrNotEditing
	}
	patch := d.pending
	ws.mu.Unlock()

	saved, err := ws.Clients.Update(ctx, id, patch)
	if err != nil {
		return entity.Client{}, err
	}

	ws.mu.Lock()
	defer ws.mu.Unlock()
	d.record = *saved
	d.state = Viewing
	d.pending = entity.ClientPatch{}
	return d.record, nil
}

// QuickUpdate grava na hora, sem mexer no rascunho aberto.
func (ws *Workspace) QuickUpdate(ctx context.Context, id, field, value string) (entity.Client, error) {
	saved, err := ws.Clients.QuickUpdate(ctx, id, field, value)
	if err != nil {
		return entity.Client{}, err
	}

	ws.mu.Lock()
	defer ws.mu.Unlock()
	d, ok := ws.drafts[id]
	if !ok {
		d = &draft{}
		ws.drafts[id] = d
	}
	d.record = *saved
	return ws.view(d), nil
}

// Forget tira o registro do workspace, por exemplo depois de apagado.
func (ws *Workspace) Forget(id string) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	delete(ws.drafts, id)
}
