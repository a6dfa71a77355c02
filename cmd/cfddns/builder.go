package main

import (
	"context"
	"fmt"

	"github.com/Jersk/Cloudflare-DDNS-Wizard/adapters/cloudflare"
	"github.com/Jersk/Cloudflare-DDNS-Wizard/adapters/ipsource"
	"github.com/Jersk/Cloudflare-DDNS-Wizard/adapters/store/rdb"
	"github.com/Jersk/Cloudflare-DDNS-Wizard/config/ddnscfg"
	"github.com/Jersk/Cloudflare-DDNS-Wizard/domain"
	"github.com/Jersk/Cloudflare-DDNS-Wizard/internal/logging"
	"github.com/Jersk/Cloudflare-DDNS-Wizard/usecase/sync"
	"github.com/spf13/cobra"
)

// loadConfig reads and validates the config file named by --config.
func loadConfig(cmd *cobra.Command) (*ddnscfg.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := ddnscfg.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration %s: %w", path, err)
	}
	return cfg, nil
}

// buildAPIClient loads the token and constructs the Cloudflare client.
// The token value never reaches a log line; only its length does.
func buildAPIClient(cmd *cobra.Command, cfg *ddnscfg.Config) (*cloudflare.Client, error) {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)
	token, loosePerms, err := ddnscfg.LoadToken(cfg.TokenFile)
	if err != nil {
		return nil, err
	}
	if loosePerms {
		logger.Warn(ctx, "token file is readable by group or others, tighten to 0600", "path", cfg.TokenFile)
	}
	logger.Debug(ctx, "token loaded", "path", cfg.TokenFile, "token_len", len(token))
	return cloudflare.New(token), nil
}

// buildRunRepository opens the run history store. History is best effort:
// when the store cannot be opened or migrated the run proceeds without it.
func buildRunRepository(ctx context.Context, cfg *ddnscfg.Config) domain.RunRepository {
	if cfg.HistoryDB == "" {
		return nil
	}
	logger := logging.FromContext(ctx)
	db, err := rdb.OpenFromURL(cfg.HistoryDB)
	if err != nil {
		logger.Warn(ctx, "failed to open history store, continuing without history", "db", cfg.HistoryDB, "error", err)
		return nil
	}
	if err := rdb.AutoMigrate(db); err != nil {
		logger.Warn(ctx, "failed to migrate history store, continuing without history", "db", cfg.HistoryDB, "error", err)
		return nil
	}
	return rdb.NewRunRepository(db)
}

// openRunRepository opens the run history store for the history
// subcommands, where a missing or broken store is an error instead of
// a degraded mode.
func openRunRepository(cfg *ddnscfg.Config) (domain.RunRepository, error) {
	if cfg.HistoryDB == "" {
		return nil, fmt.Errorf("history_db is not configured")
	}
	db, err := rdb.OpenFromURL(cfg.HistoryDB)
	if err != nil {
		return nil, fmt.Errorf("failed to open history store: %w", err)
	}
	if err := rdb.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate history store: %w", err)
	}
	return rdb.NewRunRepository(db), nil
}

// buildSyncUseCase wires the synchronization engine from the config.
func buildSyncUseCase(cmd *cobra.Command, cfg *ddnscfg.Config) (*sync.UseCase, error) {
	api, err := buildAPIClient(cmd, cfg)
	if err != nil {
		return nil, err
	}
	resolver := ipsource.New(cfg.Services())
	runs := buildRunRepository(cmd.Context(), cfg)
	return sync.New(cfg, api, resolver, runs), nil
}
