package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/iammorganparry/clive/apps/uigen/internal/api"
	"github.com/iammorganparry/clive/apps/uigen/internal/chat"
	"github.com/iammorganparry/clive/apps/uigen/internal/config"
	"github.com/iammorganparry/clive/apps/uigen/internal/llm"
	"github.com/iammorganparry/clive/apps/uigen/internal/prompt"
	"github.com/iammorganparry/clive/apps/uigen/internal/sessions"
	"github.com/iammorganparry/clive/apps/uigen/internal/store"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	// Config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Logger
	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	// Snapshots
	snapshots, err := store.OpenSnapshots(cfg.SessionBackend, cfg.SessionsDir)
	if err != nil {
		return fmt.Errorf("open session snapshots: %w", err)
	}
	defer snapshots.Close()

	// Sessions
	sessStore := sessions.NewStore(cfg.HistoryKeep)
	var persist *sessions.Persistence
	if cfg.SessionPersist {
		persist = sessions.NewPersistence(sessStore, snapshots, logger)
	}

	// Prompt construction
	profile := prompt.DefaultProfile()
	profile.HistoryWindow = cfg.HistoryWindow
	profile.MaxArtifactBytes = cfg.MaxArtifactBytes
	if cfg.PromptProfile != "" {
		profile, err = prompt.LoadProfile(cfg.PromptProfile, profile)
		if err != nil {
			return fmt.Errorf("load prompt profile: %w", err)
		}
	}
	builder := prompt.NewBuilder(profile)

	// Model provider
	generator, err := llm.New(llm.Config{
		Provider:    cfg.LLMProvider,
		BaseURL:     cfg.LLMBaseURL,
		Model:       cfg.LLMModel,
		APIKey:      cfg.LLMAPIKey,
		Temperature: cfg.LLMTemperature,
		Timeout:     cfg.LLMTimeout,
	}, logger)
	if err != nil {
		return fmt.Errorf("create llm client: %w", err)
	}

	chatSvc := chat.NewService(sessStore, persist, builder, generator, logger)

	// Sweeper
	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	defer stopSweeper()
	sweeper := sessions.NewSweeper(sessStore, cfg.SessionTimeout, cfg.SweepInterval, logger)
	if cfg.SessionPurgeOnExpiry && persist != nil {
		sweeper.OnEvict(persist.Purge)
	}
	sweepWG := sweeper.Run(sweepCtx)

	// Router
	router := api.NewRouter(chatSvc, sessStore, persist, persistedSnapshots(persist, snapshots), cfg.AllowOrigins, logger)

	// Server
	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:        addr,
		Handler:     router,
		ReadTimeout: 30 * time.Second,
		// Leave room for a full model call.
		WriteTimeout: cfg.LLMTimeout + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("uigen server starting",
			"addr", addr,
			"provider", cfg.LLMProvider,
			"model", cfg.LLMModel,
			"session_backend", cfg.SessionBackend,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-done:
	case err := <-serveErr:
		stopSweeper()
		sweepWG.Wait()
		return fmt.Errorf("server error: %w", err)
	}
	logger.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}

	stopSweeper()
	sweepWG.Wait()
	if persist != nil {
		persist.Wait()
	}

	logger.Info("server stopped")
	return nil
}

// persistedSnapshots hides the snapshot backend from the API when persistence is off.
func persistedSnapshots(persist *sessions.Persistence, snapshots store.Snapshots) store.Snapshots {
	if persist == nil {
		return nil
	}
	return snapshots
}
