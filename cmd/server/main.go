// AXIOM - Candidate Interview Server
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elga-energy/axiom/internal/api"
	"github.com/elga-energy/axiom/internal/config"
	"github.com/elga-energy/axiom/internal/interview"
	"github.com/elga-energy/axiom/internal/llm"
	"github.com/elga-energy/axiom/internal/middleware"
	"github.com/elga-energy/axiom/internal/notify"
	"github.com/elga-energy/axiom/internal/store"
	"github.com/elga-energy/axiom/internal/tracking"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting server", "port", cfg.Port, "dev", cfg.IsDevelopment())

	// Initialize persistence. DB_PATH selects SQLite; otherwise sessions
	// only live as long as the process.
	var repo store.Repository
	if cfg.DBPath != "" {
		repo, err = store.NewSQLite(cfg.DBPath)
		if err != nil {
			slog.Error("Failed to initialize database", "error", err)
			os.Exit(1)
		}
		slog.Info("SQLite store initialized", "path", cfg.DBPath)
	} else {
		repo = store.NewMemory()
		slog.Warn("DB_PATH not set, using in-memory store (sessions lost on restart)")
	}
	defer func() {
		if closeErr := repo.Close(); closeErr != nil {
			slog.Error("Failed to close repository", "error", closeErr)
		}
	}()

	if err := repo.Ping(context.Background()); err != nil {
		slog.Error("Store health check failed", "error", err)
		os.Exit(1)
	}

	// Initialize the completion provider.
	var provider llm.Provider
	llmMode := "openai"
	if cfg.UseMockProvider() {
		provider = llm.NewMockProvider()
		llmMode = "mock"
		if !cfg.MockLLM {
			slog.Warn("OPENAI_API_KEY not set, falling back to the mock provider")
		} else {
			slog.Info("Mock completion provider enabled (no API calls will be made)")
		}
	} else {
		provider, err = llm.NewOpenAIProvider(llm.OpenAIConfig{
			APIKey:  cfg.OpenAIAPIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Model:   cfg.OpenAIModel,
		})
		if err != nil {
			slog.Error("Failed to initialize completion provider", "error", err)
			os.Exit(1)
		}
		slog.Info("Completion provider initialized", "model", cfg.OpenAIModel)
	}

	// Initialize services and handlers.
	tracker := tracking.New(repo)
	notifier := notify.New(repo)
	svc := interview.NewService(repo, provider, tracker, notifier, cfg.LLMTimeout)

	axiomHandler := api.NewAxiomHandler(svc, tracker)
	healthHandler := api.NewHealthHandler(repo, llmMode)

	// Setup router.
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	corsOrigins := []string{"*"}
	if cfg.FrontendURL != "" {
		corsOrigins = []string{cfg.FrontendURL}
	}
	r.Use(middleware.CORS(corsOrigins))

	healthHandler.RegisterRoutes(r)
	axiomHandler.RegisterRoutes(r)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		// Completion calls can take most of LLM_TIMEOUT; leave headroom.
		WriteTimeout: cfg.LLMTimeout + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	stop()

	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server stopped successfully")
}
