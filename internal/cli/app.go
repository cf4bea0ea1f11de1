// Package cli wires the core services to cobra commands and renders
// their results. No business rule lives here; every command maps to
// one core operation.
package cli

import (
	"log/slog"
	"os"

	"github.com/safar/shopcli/internal/auth"
	"github.com/safar/shopcli/internal/config"
	"github.com/safar/shopcli/internal/inventory"
	"github.com/safar/shopcli/internal/storage"
	"github.com/safar/shopcli/internal/store"
)

type App struct {
	cfg     *config.Config
	logger  *slog.Logger
	storage *storage.Store
	ledger  *inventory.Ledger
	store   *store.Service
	auth    *auth.Service
}

func NewApp() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	st, err := storage.Open(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	ledger, err := inventory.NewLedger(st, logger)
	if err != nil {
		return nil, err
	}

	return &App{
		cfg:     cfg,
		logger:  logger,
		storage: st,
		ledger:  ledger,
		store:   store.NewService(st, ledger, logger, cfg.MaxCartItems),
		auth:    auth.NewService(st, logger),
	}, nil
}
