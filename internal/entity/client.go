package entity

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	// IMPORTANTE: NÃO adicione imports de usecase ou infra aqui!
)

const (
	TypeLead   = "lead"
	TypeClient = "client"

	StatusPending    = "Pending"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"

	StageNew         = "New"
	StageContacted   = "Contacted"
	StageQualified   = "Qualified"
	StageProposal    = "Proposal"
	StageNegotiation = "Negotiation"

	DefaultSource = "Website"
)

// Statuses lista os status de trabalho aceitos, na ordem exibida no painel.
var Statuses = []string{StatusPending, StatusInProgress, StatusCompleted}

// PipelineStages é só uma sugestão: o estágio é texto livre.
var PipelineStages = []string{StageNew, StageContacted, StageQualified, StageProposal, StageNegotiation}

// Entidade: Client (leads e clientes dividem a mesma tabela, discriminados por Type)
type Client struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`

	Service string  `json:"service"`
	Price   float64 `json:"price"`
	Status  string  `json:"status"`
	Type    string  `json:"type"`

	Source        string `json:"source"`
	PipelineStage string `json:"pipeline_stage"`
	NextFollowUp  string `json:"next_follow_up"`

	// Endereço de cobrança (formato americano)
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`

	InvoiceDate string    `json:"invoice_date"`
	DueDate     string    `json:"due_date"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewLead cria um lead no estágio inicial do funil.
func NewLead(name, email, phone, source string) (*Client, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if strings.TrimSpace(source) == "" {
		source = DefaultSource
	}

	now := time.Now().UTC()
	return &Client{
		ID:            uuid.New().String(),
		Name:          name,
		Email:         strings.TrimSpace(email),
		Phone:         strings.TrimSpace(phone),
		Type:          TypeLead,
		Source:        source,
		PipelineStage: StageNew,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// NewPlaceholderClient é o registro criado pelo botão "add" do painel,
// preenchido depois no perfil.
func NewPlaceholderClient() *Client {
	now := time.Now().UTC()
	return &Client{
		ID:        uuid.New().String(),
		Name:      "New Client",
		Service:   "Service Name",
		Status:    StatusPending,
		Price:     0,
		Type:      TypeClient,
		Source:    DefaultSource,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (c *Client) IsLead() bool {
	return c.Type == TypeLead
}

// ConversionPatch devolve as alterações que transformam o lead em cliente pagante.
func (c *Client) ConversionPatch() (ClientPatch, error) {
	if !c.IsLead() {
		return ClientPatch{}, ErrNotALead
	}
	clientType := TypeClient
	status := StatusPending
	return ClientPatch{Type: &clientType, Status: &status}, nil
}

func ValidStatus(status string) bool {
	for _, s := range Statuses {
		if s == status {
			return true
		}
	}
	return false
}

// ClientScope restringe a listagem por tipo.
type ClientScope int

const (
	ScopeAll ClientScope = iota
	ScopeLeads
	ScopeClients // tudo que não é lead
)

type ClientRepositoryInterface interface {
	Create(ctx context.Context, c *Client) error
	FindByID(ctx context.Context, id string) (*Client, error)
	List(ctx context.Context, scope ClientScope) ([]*Client, error)
	UpdateFields(ctx context.Context, id string, patch ClientPatch) error
	Delete(ctx context.Context, id string) error
	ListDueFollowUps(ctx context.Context, day string) ([]*Client, error)
}
