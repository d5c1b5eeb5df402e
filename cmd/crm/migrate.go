package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the CRM tables if they do not exist",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, dialect, err := openDB(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer db.Close()
		log.Info("✅ Migração concluída", zap.String("driver", string(dialect)))
		return nil
	},
}
