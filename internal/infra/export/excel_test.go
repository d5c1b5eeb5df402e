package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

func TestWriteClients(t *testing.T) {
	clients := []*entity.Client{
		{Name: "Acme Co", Email: "ops@acme.test", Type: entity.TypeClient, Service: "Web Design", Price: 500, Status: entity.StatusInProgress},
		{Name: "Globex", Type: entity.TypeLead, Status: entity.StatusPending, Source: "Referral"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteClients(&buf, clients))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{ClientsSheet, SummarySheet}, f.GetSheetList())

	name, err := f.GetCellValue(ClientsSheet, "A2")
	require.NoError(t, err)
	assert.Equal(t, "Acme Co", name)

	header, err := f.GetCellValue(ClientsSheet, "F1")
	require.NoError(t, err)
	assert.Equal(t, "Price", header)

	revenue, err := f.GetCellValue(SummarySheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "500", revenue)
}

func TestWriteClientsEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteClients(&buf, nil))
	assert.NotZero(t, buf.Len())
}
