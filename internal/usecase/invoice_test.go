package usecase

import (
	"bytes"
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/invoice"
)

func TestBuildAndRenderInvoice(t *testing.T) {
	clients, settings := new(MockClientRepository), new(MockSettingsRepository)
	clients.On("FindByID", mock.Anything, "c1").Return(&entity.Client{ID: "c1", Name: "Acme Co", Service: "Web Design", Price: 500}, nil)
	settings.On("Get", mock.Anything).Return(nil, entity.ErrSettingsNotFound)
	uc := NewInvoiceUseCase(clients, NewSettingsUseCase(settings, nil), nil)
	uc.Now = func() time.Time { return time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC) }

	inv, err := uc.Build(context.Background(), "c1", BuildInvoiceInput{
		TaxRate: 10,
		Items: []invoice.LineItem{
			{Description: "Web Design", Quantity: 1, Rate: 500},
			{Description: "Hosting", Quantity: 1, Rate: 100},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "INV-c1-2026", inv.Number)
	require.Len(t, inv.Items, 2)
	assert.Equal(t, "Hosting", inv.Items[1].Description)
	assert.InDelta(t, 660.0, inv.Total(), 1e-9)

	var buf bytes.Buffer
	require.NoError(t, uc.Render(context.Background(), inv, &buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestBuildInvoiceRejectsNegativeTax(t *testing.T) {
	clients := new(MockClientRepository)
	clients.On("FindByID", mock.Anything, "c1").Return(&entity.Client{ID: "c1"}, nil)
	uc := NewInvoiceUseCase(clients, nil, nil)

	_, err := uc.Build(context.Background(), "c1", BuildInvoiceInput{TaxRate: -1})

	assert.Equal(t, CodeValidation, codeOf(err))
}

func TestBuildInvoiceRejectsNaNTax(t *testing.T) {
	clients := new(MockClientRepository)
	clients.On("FindByID", mock.Anything, "c1").Return(&entity.Client{ID: "c1"}, nil)
	uc := NewInvoiceUseCase(clients, nil, nil)

	_, err := uc.Build(context.Background(), "c1", BuildInvoiceInput{TaxRate: math.NaN()})

	assert.Equal(t, CodeValidation, codeOf(err))
	assert.ErrorIs(t, err, invoice.ErrNotANumber)
}
