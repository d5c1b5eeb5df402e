package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorderCounters(t *testing.T) {
	var r Recorder
	sentBefore := testutil.ToFloat64(emailsSent.WithLabelValues("Sent"))
	convertedBefore := testutil.ToFloat64(leadsConverted)

	r.EmailSent("Sent")
	r.EmailSent("Sent")
	r.LeadConverted()
	r.InvoiceRendered()
	r.StoreError("list_clients")

	assert.Equal(t, sentBefore+2, testutil.ToFloat64(emailsSent.WithLabelValues("Sent")))
	assert.Equal(t, convertedBefore+1, testutil.ToFloat64(leadsConverted))
	assert.GreaterOrEqual(t, testutil.ToFloat64(storeErrors.WithLabelValues("list_clients")), 1.0)
}

func TestWebSocketGauge(t *testing.T) {
	before := testutil.ToFloat64(wsClients)

	WebSocketConnected()
	WebSocketConnected()
	WebSocketDisconnected()

	assert.Equal(t, before+1, testutil.ToFloat64(wsClients))
}
