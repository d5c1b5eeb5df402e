package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xavierca1/ligue-crm/internal/infra/http/handlers"
	"github.com/xavierca1/ligue-crm/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-crm/internal/infra/logger"
	"github.com/xavierca1/ligue-crm/internal/infra/queue"
	"github.com/xavierca1/ligue-crm/internal/infra/realtime"
	"github.com/xavierca1/ligue-crm/internal/infra/worker"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API, change feed and follow-up worker",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithContext(ctx, log)

	log.Info("🚀 Iniciando CRM", cfg.LogFields()...)

	db, dialect, err := openDB(ctx, cfg)
	if err != nil {
		log.Error("❌ Erro ao abrir banco", zap.Error(err))
		return err
	}
	defer db.Close()
	log.Info("✅ Banco pronto", zap.String("driver", string(dialect)))

	hub := realtime.NewHub(cfg.Server.CORSOrigins)

	// Com broker, só o producer publica e o worker devolve os eventos
	// ao hub local; sem broker, o hub recebe direto.
	var publisher usecase.ChangePublisher = hub
	health := handlers.NewHealthHandler(db, nil, cfg.Mail.Provider)

	if cfg.RabbitMQ.URL != "" {
		mq, err := queue.NewRabbitMQ(cfg.RabbitMQ.URL)
		if err != nil {
			log.Error("❌ Erro ao conectar no RabbitMQ", zap.Error(err))
			return err
		}
		defer mq.Close()
		health.Broker = mq.Conn

		consumeCh, err := mq.NewChannel()
		if err != nil {
			return err
		}
		publisher = queue.NewProducer(mq.Ch)

		go func() {
			if err := queue.NewWorker(consumeCh, hub).Start(ctx); err != nil {
				log.Error("❌ Worker de mudanças parou", zap.Error(err))
			}
		}()
		log.Info("🐇 Feed de mudanças via RabbitMQ")
	}

	a := newApp(db, dialect, publisher, newDispatcher(cfg))

	if cfg.FollowUp.Interval > 0 {
		go worker.NewFollowUpWorker(a.clients, publisher, cfg.FollowUp.Interval).Start(ctx)
	}

	emailRate := middleware.NewRateLimiter(10, time.Minute)
	defer emailRate.Close()

	router := handlers.NewRouter(handlers.Deps{
		Clients:     a.Clients,
		Delete:      a.Delete,
		Tasks:       a.Tasks,
		Assets:      a.Assets,
		Settings:    a.Settings,
		Emails:      a.Emails,
		Invoices:    a.Invoices,
		Dashboard:   a.Dashboard,
		Health:      health,
		Changes:     hub,
		EmailRate:   emailRate,
		CORSOrigins: cfg.Server.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("🔥 Servidor rodando", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("❌ Servidor caiu", zap.Error(err))
			return err
		}
	case <-ctx.Done():
	}

	log.Info("⚠️ Encerrando servidor")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
