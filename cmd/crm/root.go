package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xavierca1/ligue-crm/internal/config"
	"github.com/xavierca1/ligue-crm/internal/infra/logger"
)

var (
	cfg *config.Config
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "crm",
	Short: "Ligue CRM - leads, clients, tasks, invoices and email",
	Long: `Ligue CRM keeps leads and clients in one table, with tasks, an asset
vault, invoice PDFs and client email on top.

Configuration comes from the environment (a .env file is loaded when
present) with an optional YAML overlay pointed to by CRM_CONFIG_FILE.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("erro ao carregar config: %w", err)
		}

		log, err = logger.InitLogger(&logger.LogConfig{
			Level:       cfg.App.LogLevel,
			Environment: cfg.App.Env,
			ServiceName: config.ServiceName,
		})
		if err != nil {
			return fmt.Errorf("erro ao iniciar logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, invoiceCmd, clientsCmd, themeCmd)
}
