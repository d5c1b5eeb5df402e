package entity

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ClientPatch carrega apenas os campos alterados. Campos nil não são gravados,
// então duas edições em campos diferentes nunca se sobrescrevem.
type ClientPatch struct {
	Name          *string  `json:"name,omitempty"`
	Email         *string  `json:"email,omitempty"`
	Phone         *string  `json:"phone,omitempty"`
	Service       *string  `json:"service,omitempty"`
	Price         *float64 `json:"price,omitempty"`
	Status        *string  `json:"status,omitempty"`
	Type          *string  `json:"type,omitempty"`
	Source        *string  `json:"source,omitempty"`
	PipelineStage *string  `json:"pipeline_stage,omitempty"`
	NextFollowUp  *string  `json:"next_follow_up,omitempty"`
	Address       *string  `json:"address,omitempty"`
	City          *string  `json:"city,omitempty"`
	State         *string  `json:"state,omitempty"`
	Zip           *string  `json:"zip,omitempty"`
	InvoiceDate   *string  `json:"invoice_date,omitempty"`
	DueDate       *string  `json:"due_date,omitempty"`
	Notes         *string  `json:"notes,omitempty"`

	// Se preenchido, a gravação só acontece se o registro não mudou desde então.
	ExpectedUpdatedAt *time.Time `json:"expected_updated_at,omitempty"`
}

// QuickEditFields são os seletores da tabela que gravam na hora.
var QuickEditFields = []string{"status", "pipeline_stage", "source"}

func IsQuickEditField(field string) bool {
	for _, f := range QuickEditFields {
		if f == field {
			return true
		}
	}
	return false
}

func (p *ClientPatch) stringField(field string) (**string, bool) {
	switch field {
	case "name":
		return &p.Name, true
	case "email":
		return &p.Email, true
	case "phone":
		return &p.Phone, true
	case "service":
		return &p.Service, true
	case "status":
		return &p.Status, true
	case "type":
		return &p.Type, true
	case "source":
		return &p.Source, true
	case "pipeline_stage":
		return &p.PipelineStage, true
	case "next_follow_up":
		return &p.NextFollowUp, true
	case "address":
		return &p.Address, true
	case "city":
		return &p.City, true
	case "state":
		return &p.State, true
	case "zip":
		return &p.Zip, true
	case "invoice_date":
		return &p.InvoiceDate, true
	case "due_date":
		return &p.DueDate, true
	case "notes":
		return &p.Notes, true
	}
	return nil, false
}

// Set grava um campo pelo nome JSON. Preço chega como texto do formulário.
func (p *ClientPatch) Set(field, value string) error {
	if field == "price" {
		price, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return fmt.Errorf("%w: price must be a number", ErrInvalidField)
		}
		p.Price = &price
		return nil
	}
	ptr, ok := p.stringField(field)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	v := value
	*ptr = &v
	return nil
}

func (p ClientPatch) IsEmpty() bool {
	return len(p.Fields()) == 0
}

// Fields devolve os nomes dos campos presentes, em ordem estável.
func (p ClientPatch) Fields() []string {
	all := []string{"name", "email", "phone", "service", "price", "status", "type", "source",
		"pipeline_stage", "next_follow_up", "address", "city", "state", "zip",
		"invoice_date", "due_date", "notes"}
	var out []string
	for _, f := range all {
		if f == "price" {
			if p.Price != nil {
				out = append(out, f)
			}
			continue
		}
		ptr, _ := p.stringField(f)
		if *ptr != nil {
			out = append(out, f)
		}
	}
	return out
}

// Value devolve o valor do campo para montar o UPDATE.
func (p ClientPatch) Value(field string) any {
	if field == "price" {
		if p.Price == nil {
			return nil
		}
		return *p.Price
	}
	ptr, ok := p.stringField(field)
	if !ok || *ptr == nil {
		return nil
	}
	return **ptr
}

func (p ClientPatch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return ErrNameRequired
	}
	if p.Status != nil && !ValidStatus(*p.Status) {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, *p.Status)
	}
	if p.Type != nil && *p.Type != TypeLead && *p.Type != TypeClient {
		return fmt.Errorf("%w: type must be lead or client", ErrInvalidField)
	}
	if p.Price != nil && *p.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidField)
	}
	// Datas vazias limpam o campo; as demais precisam ser YYYY-MM-DD porque
	// o banco compara next_follow_up como texto.
	dates := []struct {
		name  string
		value *string
	}{
		{"next_follow_up", p.NextFollowUp},
		{"invoice_date", p.InvoiceDate},
		{"due_date", p.DueDate},
	}
	for _, d := range dates {
		if d.value != nil && *d.value != "" && !IsDate(*d.value) {
			return fmt.Errorf("%w: %s", ErrInvalidDate, d.name)
		}
	}
	return nil
}

// Apply aplica o patch numa cópia local (usado pelos rascunhos de edição).
func (p ClientPatch) Apply(c *Client) {
	if p.Price != nil {
		c.Price = *p.Price
	}
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&c.Name, p.Name)
	set(&c.Email, p.Email)
	set(&c.Phone, p.Phone)
	set(&c.Service, p.Service)
	set(&c.Status, p.Status)
	set(&c.Type, p.Type)
	set(&c.Source, p.Source)
	set(&c.PipelineStage, p.PipelineStage)
	set(&c.NextFollowUp, p.NextFollowUp)
	set(&c.Address, p.Address)
	set(&c.City, p.City)
	set(&c.State, p.State)
	set(&c.Zip, p.Zip)
	set(&c.InvoiceDate, p.InvoiceDate)
	set(&c.DueDate, p.DueDate)
	set(&c.Notes, p.Notes)
}
