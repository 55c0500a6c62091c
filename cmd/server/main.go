package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"lexbrief/internal/config"
	"lexbrief/internal/handler"
	memorymailbox "lexbrief/internal/handoff/memory"
	redismailbox "lexbrief/internal/handoff/redis"
	"lexbrief/internal/logger"
	"lexbrief/internal/port"
	"lexbrief/internal/router"
	"lexbrief/internal/service"
	"lexbrief/internal/storage"
	"lexbrief/internal/summarizer"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		logger.Log.Errorf("fatal: %v", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Session mailbox and in-flight submissions
	mailbox, tracker, closeMailbox, err := newSessionStore(&cfg.Session)
	if err != nil {
		return err
	}
	defer closeMailbox()

	// Document archive (nil when disabled)
	archive, err := storage.New(ctx, &cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize document storage: %w", err)
	}

	remote := summarizer.NewClient(&cfg.Remote)

	// Initialize services
	uploadSvc := service.NewUploadService(remote, mailbox, tracker, archive, &cfg.Upload, cfg.Storage.Bucket)
	resultsSvc := service.NewResultsService(mailbox, remote, archive, cfg.Storage.Bucket)

	// Initialize handlers
	handlers := router.Handlers{
		Page:    handler.NewPageHandler(uploadSvc, resultsSvc, cfg.Upload.DefaultProfile, cfg.Upload.MaxFileSizeBytes),
		Upload:  handler.NewUploadHandler(uploadSvc, cfg.Upload.MaxFileSizeBytes),
		Results: handler.NewResultsHandler(resultsSvc),
		Health:  handler.NewHealthHandler(mailbox, remote),
	}

	r := router.Setup(cfg, handlers)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.InfoWithFields("server starting", logger.Fields{
			"addr":            cfg.Server.Port,
			"remote_base_url": cfg.Remote.BaseURL,
			"session_store":   cfg.Session.Store,
			"storage":         cfg.Storage.Provider,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Log.Info("shutdown signal received, draining connections")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Log.Info("server stopped")
	return nil
}

// newSessionStore builds the mailbox and the submission tracker for the
// configured store. Both live in the same backend so resets and result
// commits agree across instances.
func newSessionStore(cfg *config.SessionConfig) (port.Mailbox, port.SubmissionTracker, func(), error) {
	switch cfg.Store {
	case "redis":
		mb, err := redismailbox.NewMailbox(cfg.RedisURL, cfg.TTL)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to create redis mailbox: %w", err)
		}
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mb.Ping(pingCtx); err != nil {
			_ = mb.Close()
			return nil, nil, nil, fmt.Errorf("failed to reach redis: %w", err)
		}
		return mb, redismailbox.NewTracker(mb, cfg.SubmissionTTL), func() { _ = mb.Close() }, nil
	case "", "memory":
		mb := memorymailbox.NewMailbox(cfg.TTL)
		return mb, memorymailbox.NewTracker(mb), func() {}, nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown session store %q", cfg.Store)
	}
}
