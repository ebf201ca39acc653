package main

import (
	"context"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"golang.org/x/term"

	"github.com/ratemysetup/ratemysetup-cli/internal/client/api"
	"github.com/ratemysetup/ratemysetup-cli/internal/client/config"
	"github.com/ratemysetup/ratemysetup-cli/internal/client/session"
	"github.com/ratemysetup/ratemysetup-cli/internal/client/storage"
	"github.com/ratemysetup/ratemysetup-cli/internal/client/tokenstore"
	"github.com/ratemysetup/ratemysetup-cli/internal/client/ui"
	"github.com/ratemysetup/ratemysetup-cli/internal/logging"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("%v", err)
	}
}

func run() error {
	// Missing .env is fine, config falls back to defaults.
	_ = godotenv.Load()

	cfg := config.LoadConfig()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("stdout is not a terminal")
	}

	logger, closer, err := logging.NewFileLogger(cfg.LogFilePath)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer closer.Close()

	ctx := context.Background()

	db, err := storage.Open(ctx, cfg.StateDBPath)
	if err != nil {
		return fmt.Errorf("opening state db: %w", err)
	}
	defer db.Close()

	store := tokenstore.New(storage.NewSQLiteKV(db))

	client, err := api.NewClient(ctx, cfg.RemoteHostURL, store, logger,
		api.WithTimeout(cfg.RequestTimeout))
	if err != nil {
		return fmt.Errorf("initializing api client: %w", err)
	}

	auth := session.NewService(client, logger)

	program := tea.NewProgram(ui.NewApp(client, auth, logger), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running ui: %w", err)
	}
	return nil
}
