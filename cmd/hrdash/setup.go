package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/hr-dashboard/internal/bookmarks"
	"github.com/jonathan/hr-dashboard/internal/config"
	"github.com/jonathan/hr-dashboard/internal/directory"
	"github.com/jonathan/hr-dashboard/internal/employee"
	"github.com/jonathan/hr-dashboard/internal/logging"
)

// resolveConfig merges configuration sources: built-in defaults, then an
// optional JSON config file, then environment variables.
func resolveConfig(configPath string) (config.Config, error) {
	cfg := config.Default()

	if configPath != "" {
		fileCfg, err := config.LoadFile(configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = fileCfg.MergeWithDefaults(cfg)
	}

	envCfg := config.FromEnv()
	cfg = envCfg.MergeWithDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// buildStore wires the session store: directory client, enricher, and
// bookmark persistence. The caller owns the returned bookmark store's
// lifetime and must Close it.
func buildStore(ctx context.Context, cfg config.Config, log *zap.Logger) (*employee.Store, bookmarks.Store, error) {
	client, err := directory.New(cfg.DirectoryURL, &directory.Options{
		Timeout:   directory.DefaultTimeout,
		UserAgent: directory.DefaultUserAgent,
		Limit:     cfg.DirectoryLimit,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create directory client: %w", err)
	}

	persisted, err := bookmarks.Open(ctx, cfg.BookmarksDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open bookmark store: %w", err)
	}

	store := employee.NewStore(client, employee.NewEnricher(cfg.Seed), persisted, log)
	return store, persisted, nil
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	return logging.New(cfg.LogLevel, cfg.Development)
}
