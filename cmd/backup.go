/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"

	"github.com/jjudge-oj/todoapi/internal/db"
	"github.com/jjudge-oj/todoapi/internal/services"
	"github.com/jjudge-oj/todoapi/internal/storage"
	"github.com/jjudge-oj/todoapi/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// backupCmd represents the backup command
var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Upload a JSON snapshot of every todo to object storage",
	Long: `Writes all todos to backups/todos-<timestamp>.json in the bucket selected
by STORAGE_BACKEND (minio or gcs). Usage:

	STORAGE_BACKEND=minio MINIO_ACCESS_KEY=... MINIO_SECRET_KEY=... todoapi backup
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadRuntime()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		ctx := cmd.Context()
		objects, err := storage.Connect(ctx, cfg.Storage)
		if err != nil {
			return err
		}
		if objects == nil {
			return errors.New("STORAGE_BACKEND is not configured")
		}

		conn, err := db.Open(ctx, cfg)
		if err != nil {
			return err
		}
		defer conn.Close()

		svc := services.NewBackupService(store.NewTodoRepository(conn), objects, logger)
		key, err := svc.Export(ctx)
		if err != nil {
			logger.Error("backup failed", zap.Error(err))
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), key)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(backupCmd)
}
