package usecase

import (
	"context"
	"io"
	"time"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/invoice"
)

// BuildInvoiceInput sobrescreve os padrões da fatura. Campos vazios mantêm
// o padrão (número gerado, um item do serviço, imposto 0).
type BuildInvoiceInput struct {
	Number  string             `json:"number"`
	TaxRate float64            `json:"tax_rate"`
	Items   []invoice.LineItem `json:"items"`
}

type InvoiceUseCase struct {
	Clients  entity.ClientRepositoryInterface
	Settings *SettingsUseCase
	Metrics  Metrics
	Now      func() time.Time
}

func NewInvoiceUseCase(clients entity.ClientRepositoryInterface, settings *SettingsUseCase, m Metrics) *InvoiceUseCase {
	if m == nil {
		m = nopMetrics{}
	}
	return &InvoiceUseCase{Clients: clients, Settings: settings, Metrics: m, Now: time.Now}
}

func (uc *InvoiceUseCase) Build(ctx context.Context, clientID string, in BuildInvoiceInput) (*invoice.Invoice, error) {
	c, err := uc.Clients.FindByID(ctx, clientID)
	if err != nil {
		return nil, mapStoreError("buscar cliente", err)
	}
	inv := invoice.New(c, uc.Now())
	if in.Number != "" {
		inv.Number = in.Number
	}
	if in.Items != nil {
		if err := inv.ReplaceItems(in.Items); err != nil {
			return nil, validationError(err)
		}
	}
	inv.TaxRate = in.TaxRate

	if err := inv.Validate(); err != nil {
		return nil, validationError(err)
	}
	return inv, nil
}

// Render escreve o PDF com as configurações atuais do administrador.
func (uc *InvoiceUseCase) Render(ctx context.Context, inv *invoice.Invoice, w io.Writer) error {
	settings, err := uc.Settings.Get(ctx)
	if err != nil {
		return err
	}
	if err := inv.Render(w, settings); err != nil {
		return &TechnicalError{Code: "INVOICE_RENDER_FAILED", Message: err.Error(), Err: err}
	}
	uc.Metrics.InvoiceRendered()
	return nil
}
