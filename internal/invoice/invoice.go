// Package invoice monta a fatura de um cliente: itens editáveis, totais e
// o PDF de uma página.
package invoice

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

const defaultDescription = "Consulting Service"

var (
	ErrItemIndex      = errors.New("line item index out of range")
	ErrNegativeTax    = errors.New("tax rate must not be negative")
	ErrNegativeQty    = errors.New("quantity must not be negative")
	ErrNumberRequired = errors.New("invoice number is required")
	ErrNotANumber     = errors.New("tax rate, quantity and rate must be finite numbers")
)

type LineItem struct {
	Description string  `json:"desc"`
	Quantity    float64 `json:"qty"`
	Rate        float64 `json:"rate"`
}

func (li LineItem) Amount() float64 {
	return li.Quantity * li.Rate
}

type Invoice struct {
	Number  string        `json:"number"`
	Date    time.Time     `json:"date"`
	Client  entity.Client `json:"client"`
	Items   []LineItem    `json:"items"`
	TaxRate float64       `json:"tax_rate"` // percentual, ex.: 10 = 10%
}

// New abre a fatura com um item tirado do serviço e preço do cliente.
func New(c *entity.Client, now time.Time) *Invoice {
	desc := c.Service
	if desc == "" {
		desc = defaultDescription
	}
	return &Invoice{
		Number: DefaultNumber(c.ID, now.Year()),
		Date:   now,
		Client: *c,
		Items:  []LineItem{{Description: desc, Quantity: 1, Rate: c.Price}},
	}
}

// DefaultNumber gera INV-<id curto>-<ano>. Não há garantia de unicidade.
func DefaultNumber(clientID string, year int) string {
	short := clientID
	if len(short) > 8 {
		short = short[:8]
	}
	return fmt.Sprintf("INV-%s-%d", short, year)
}

func (inv *Invoice) AddItem() {
	inv.Items = append(inv.Items, LineItem{Quantity: 1})
}

func (inv *Invoice) RemoveItem(i int) error {
	if i < 0 || i >= len(inv.Items) {
		return ErrItemIndex
	}
	inv.Items = append(inv.Items[:i], inv.Items[i+1:]...)
	return nil
}

func (inv *Invoice) UpdateItem(i int, item LineItem) error {
	if i < 0 || i >= len(inv.Items) {
		return ErrItemIndex
	}
	inv.Items[i] = item
	return nil
}

// Subtotal, Tax e Total não arredondam; o arredondamento só acontece na
// renderização.
func (inv *Invoice) Subtotal() float64 {
	var sum float64
	for _, li := range inv.Items {
		sum += li.Amount()
	}
	return sum
}

func (inv *Invoice) Tax() float64 {
	return inv.Subtotal() * (inv.TaxRate / 100)
}

func (inv *Invoice) Total() float64 {
	return inv.Subtotal() + inv.Tax()
}

func (inv *Invoice) Validate() error {
	if strings.TrimSpace(inv.Number) == "" {
		return ErrNumberRequired
	}
	if !finite(inv.TaxRate) {
		return ErrNotANumber
	}
	if inv.TaxRate < 0 {
		return ErrNegativeTax
	}
	for _, li := range inv.Items {
		if !finite(li.Quantity) || !finite(li.Rate) {
			return ErrNotANumber
		}
		if li.Quantity < 0 {
			return ErrNegativeQty
		}
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// ReplaceItems troca o item padrão pela lista informada, usando as mesmas
// operações de edição do painel.
func (inv *Invoice) ReplaceItems(items []LineItem) error {
	for len(inv.Items) > 0 {
		if err := inv.RemoveItem(len(inv.Items) - 1); err != nil {
			return err
		}
	}
	for _, item := range items {
		inv.AddItem()
		if err := inv.UpdateItem(len(inv.Items)-1, item); err != nil {
			return err
		}
	}
	return nil
}

// FileName é o número da fatura com .pdf; barras viram hífen.
func (inv *Invoice) FileName() string {
	name := strings.NewReplacer("/", "-", "\\", "-").Replace(strings.TrimSpace(inv.Number))
	return name + ".pdf"
}
