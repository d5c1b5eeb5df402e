package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/ligue-crm/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-crm/internal/infra/logger"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

// Deps reúne os casos de uso e adaptadores que o roteador expõe.
type Deps struct {
	Clients   *usecase.ClientUseCase
	Delete    *usecase.DeleteClientUseCase
	Tasks     *usecase.TaskUseCase
	Assets    *usecase.AssetUseCase
	Settings  *usecase.SettingsUseCase
	Emails    *usecase.EmailUseCase
	Invoices  *usecase.InvoiceUseCase
	Dashboard *usecase.DashboardUseCase

	Health    *HealthHandler
	Changes   http.Handler // WebSocket do feed de mudanças
	EmailRate *middleware.RateLimiter

	CORSOrigins []string
}

func NewRouter(d Deps) http.Handler {
	clients := NewClientHandler(d.Clients, d.Delete)
	leads := NewLeadHandler(d.Clients, d.Delete)
	tasks := NewTaskHandler(d.Tasks)
	assets := NewAssetHandler(d.Assets)
	settings := NewSettingsHandler(d.Settings)
	emails := NewEmailHandler(d.Emails)
	invoices := NewInvoiceHandler(d.Invoices)
	dashboard := NewDashboardHandler(d.Dashboard, d.Clients)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(logger.Middleware)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: d.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	if d.Health != nil {
		r.Get("/health", d.Health.Handle)
	}
	r.Handle("/metrics", promhttp.Handler())
	if d.Changes != nil {
		r.Handle("/ws", d.Changes)
	}

	// Rotas de API com timeout; /ws fica de fora porque a conexão é longa.
	r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(30 * time.Second))

		r.Get("/dashboard", dashboard.Get)
		r.Get("/reports/clients.xlsx", dashboard.ExportClients)

		r.Route("/clients", func(r chi.Router) {
			r.Get("/", clients.List)
			r.Post("/", clients.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", clients.Get)
				r.Patch("/", clients.Patch)
				r.Delete("/", clients.Remove)
				r.Put("/fields/{field}", clients.QuickUpdate)

				r.Get("/tasks", tasks.ListByClient)
				r.Post("/tasks", tasks.Add)
				r.Get("/assets", assets.List)
				r.Post("/assets", assets.Add)
				r.Post("/invoice", invoices.Generate)

				send := http.HandlerFunc(emails.Send)
				if d.EmailRate != nil {
					r.Method(http.MethodPost, "/emails", d.EmailRate.Limit(send))
				} else {
					r.Method(http.MethodPost, "/emails", send)
				}
			})
		})

		r.Route("/leads", func(r chi.Router) {
			r.Get("/", leads.List)
			r.Post("/", leads.Create)
			r.Post("/{id}/convert", leads.Convert)
			r.Delete("/{id}", leads.Remove)
		})

		r.Get("/tasks/open", tasks.ListOpen)
		r.Post("/tasks/{id}/toggle", tasks.Toggle)
		r.Delete("/tasks/{id}", tasks.Remove)

		r.Delete("/assets/{id}", assets.Remove)

		r.Get("/settings", settings.Get)
		r.Put("/settings", settings.Save)

		r.Get("/email-logs", emails.List)
	})

	return r
}
