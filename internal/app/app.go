// Package app wires the client's components together: configuration,
// logging, the credential database, the shared transport client, the health
// monitor, the model session controller, and the chat orchestrator.
package app

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"strings"

	"procure-ai/client/internal/auth"
	"procure-ai/client/internal/chat"
	"procure-ai/client/internal/config"
	"procure-ai/client/internal/credential"
	"procure-ai/client/internal/database"
	"procure-ai/client/internal/health"
	"procure-ai/client/internal/llm"
	"procure-ai/client/internal/notify"
	"procure-ai/client/internal/registry"
	"procure-ai/client/internal/transport"
)

// App holds the constructed component graph. Components are explicitly
// injected rather than reached through globals so tests can substitute any
// of them.
type App struct {
	Config       *config.Config
	DB           *sql.DB
	Transport    *transport.Client
	Registry     *registry.Registry
	Credentials  *credential.Store
	Monitor      *health.Monitor
	Controller   *llm.Controller
	Orchestrator *chat.Orchestrator
	Auth         *auth.Client
	Notifier     notify.Notifier
}

// New loads configuration from the environment, configures logging, and
// builds the full component graph. A nil notifier falls back to slog
// rendering.
func New(notifier notify.Notifier) (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return nil, err
	}

	setupLogger(cfg.LogLevel)

	if notifier == nil {
		notifier = notify.LogNotifier{}
	}

	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		return nil, err
	}

	client, err := transport.New(transport.Config{
		BaseURL: cfg.APIBaseURL,
		Policy: transport.RetryPolicy{
			MaxRetries: cfg.MaxRetries,
			Delay:      cfg.RetryDelay(),
		},
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	reg := registry.New()
	credentials := credential.NewStore(db)
	monitor := health.NewMonitor(client, cfg.OllamaURL, notifier, cfg.HealthInterval())
	controller := llm.NewController(client, reg, monitor, credentials, notifier)
	orchestrator := chat.NewOrchestrator(controller, monitor, notifier)
	authClient := auth.NewClient(client)

	return &App{
		Config:       cfg,
		DB:           db,
		Transport:    client,
		Registry:     reg,
		Credentials:  credentials,
		Monitor:      monitor,
		Controller:   controller,
		Orchestrator: orchestrator,
		Auth:         authClient,
		Notifier:     notifier,
	}, nil
}

// Start begins background work: the health poll loop.
func (a *App) Start(ctx context.Context) {
	a.Monitor.Start(ctx)
}

// Close releases the app's resources.
func (a *App) Close() {
	a.Monitor.Stop()
	if err := a.DB.Close(); err != nil {
		slog.Error("Failed to close database connection", "error", err)
	}
}

func setupLogger(logLevel string) {
	var level slog.Level
	switch strings.ToUpper(logLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}
