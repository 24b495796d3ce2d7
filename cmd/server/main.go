package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/obelearn/portal/internal/ai"
	"github.com/obelearn/portal/internal/assessment"
	"github.com/obelearn/portal/internal/content"
	"github.com/obelearn/portal/internal/directory"
	"github.com/obelearn/portal/internal/platform/cache"
	"github.com/obelearn/portal/internal/platform/config"
	"github.com/obelearn/portal/internal/platform/database"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	app, cleanup, err := buildApp(ctx, cfg)
	if err != nil {
		slog.Error("failed to build application", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      app.mux(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}

// buildApp wires the directory, generation router, and content store from
// configuration. The returned cleanup closes whatever connections were opened.
func buildApp(ctx context.Context, cfg *config.Config) (*app, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	var db *database.DB
	if cfg.Content.Backend == "postgres" {
		var err error
		db, err = database.New(ctx, database.Config{
			URL:          cfg.Database.URL,
			MaxConns:     cfg.Database.MaxConns,
			MinConns:     cfg.Database.MinConns,
			ConnLifetime: time.Duration(cfg.Database.ConnLifetimeMins) * time.Minute,
			ConnIdleTime: time.Duration(cfg.Database.ConnIdleMins) * time.Minute,
		})
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("connect database: %w", err)
		}
		closers = append(closers, db.Close)
		slog.Info("database connected")
	}

	var cc *cache.Cache
	if cfg.Cache.Enabled {
		var err error
		cc, err = cache.New(ctx, cfg.Cache.URL)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("connect cache: %w", err)
		}
		closers = append(closers, func() { cc.Close() })
		slog.Info("cache connected")
	}

	dir, err := buildDirectory(cfg, cc)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	store, err := buildStore(cfg, db)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	router := ai.NewRouter()
	if cfg.AI.Google.APIKey != "" {
		router.Register("google", ai.NewGoogleProvider(cfg.AI.Google.APIKey))
		slog.Info("generation provider registered", "provider", "google")
	}
	if cfg.AI.OpenAI.APIKey != "" {
		var opts []ai.OpenAIOption
		if cfg.AI.OpenAI.BaseURL != "" {
			opts = append(opts, ai.WithBaseURL(cfg.AI.OpenAI.BaseURL))
		}
		router.Register("openai", ai.NewOpenAIProvider(cfg.AI.OpenAI.APIKey, opts...))
		slog.Info("generation provider registered", "provider", "openai")
	}

	model := cfg.AI.Google.Model
	if cfg.AI.Google.APIKey == "" {
		model = cfg.AI.OpenAI.Model
	}
	invoker := assessment.NewInvoker(assessment.InvokerConfig{
		Router:    router,
		Model:     model,
		MaxTokens: cfg.AI.MaxTokens,
	})

	return &app{
		invoker:  invoker,
		contents: content.NewService(store, dir),
		dir:      dir,
		db:       db,
		cache:    cc,
		pdfScale: cfg.Export.PDFScale,
	}, cleanup, nil
}

func buildDirectory(cfg *config.Config, cc *cache.Cache) (directory.Directory, error) {
	var dir directory.Directory
	switch {
	case cfg.Directory.BaseURL != "":
		dir = directory.NewClient(cfg.Directory.BaseURL)
	case cfg.Directory.CatalogPath != "":
		fd, err := directory.NewFileDirectory(cfg.Directory.CatalogPath)
		if err != nil {
			return nil, fmt.Errorf("load course catalog: %w", err)
		}
		dir = fd
	}

	if cc != nil {
		ttl := time.Duration(cfg.Directory.CacheTTL) * time.Second
		dir = directory.NewCached(dir, cc.Client, ttl)
	}
	return dir, nil
}

func buildStore(cfg *config.Config, db *database.DB) (content.Store, error) {
	switch cfg.Content.Backend {
	case "postgres":
		return content.NewPostgresStore(db.Pool)
	case "http":
		return content.NewHTTPStore(cfg.Content.BaseURL), nil
	default:
		return content.NewMemoryStore(), nil
	}
}
