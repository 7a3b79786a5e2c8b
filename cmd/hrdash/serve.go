package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/hr-dashboard/internal/server"
)

var (
	servePort       int
	serveConfigPath string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Load the employee directory once, then serve grid, detail, bookmark and analytics endpoints until interrupted.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to JSON config file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(serveConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx := context.Background()
	store, persisted, err := buildStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = persisted.Close() }()

	// The load runs once per session. A failed load is not fatal to the
	// server: the store keeps its error state and the API reports it, the
	// same way the dashboard shows its error banner.
	if err := store.Load(ctx); err != nil {
		log.Warn("serving with empty employee set", zap.Error(err))
	}

	srv := server.New(server.Config{
		Port:   cfg.Port,
		Store:  store,
		Logger: log,
	})
	return srv.Start(ctx)
}
