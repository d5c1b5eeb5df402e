// Package metrics expõe os contadores de negócio do CRM no registry padrão
// do Prometheus (servido em /metrics).
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	emailsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_emails_sent_total",
			Help: "Total number of client emails dispatched, by outcome",
		},
		[]string{"status"},
	)

	invoicesRendered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "crm_invoices_rendered_total",
			Help: "Total number of invoice PDFs rendered",
		},
	)

	leadsConverted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "crm_leads_converted_total",
			Help: "Total number of leads converted into clients",
		},
	)

	storeErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_store_errors_total",
			Help: "Total number of failed store operations",
		},
		[]string{"op"},
	)

	changesPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_changes_published_total",
			Help: "Total number of change events published, by collection",
		},
		[]string{"collection", "action"},
	)

	wsClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "crm_websocket_clients",
			Help: "Number of connected change-feed clients",
		},
	)
)

// Recorder é o usecase.Metrics de produção.
type Recorder struct{}

func (Recorder) EmailSent(status string) {
	emailsSent.WithLabelValues(status).Inc()
}

func (Recorder) InvoiceRendered() {
	invoicesRendered.Inc()
}

func (Recorder) LeadConverted() {
	leadsConverted.Inc()
}

func (Recorder) StoreError(op string) {
	storeErrors.WithLabelValues(op).Inc()
}

func RecordChange(collection, action string) {
	changesPublished.WithLabelValues(collection, action).Inc()
}

func WebSocketConnected() {
	wsClients.Inc()
}

func WebSocketDisconnected() {
	wsClients.Dec()
}
