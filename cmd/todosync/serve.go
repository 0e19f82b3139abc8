package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/todosync/internal/server"
	"github.com/sandeepkv93/todosync/internal/storage"
)

func newServeCmd(root *rootFlags) *cobra.Command {
	var addr, dbPath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the todo collection from a local SQLite database",
		Long: `Serve exposes the same /todos endpoints the client talks to, backed by SQLite.
Point the client at it with --base-url http://localhost:3000.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, root)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.ServerAddr = addr
			}
			if cmd.Flags().Changed("db") {
				cfg.DatabasePath = dbPath
			}

			level := slog.LevelInfo
			if cfg.Debug {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

			repo, err := storage.OpenSQLite(cfg.DatabasePath)
			if err != nil {
				return err
			}
			defer repo.Close()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger.Info("serving todos", "addr", cfg.ServerAddr, "db", cfg.DatabasePath)
			return server.New(repo, logger).ListenAndServe(ctx, cfg.ServerAddr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":3000", "listen address")
	cmd.Flags().StringVar(&dbPath, "db", "todos.db", "SQLite database path")
	return cmd
}
