// Package main is the entry point for the portfolio admin server. It serves
// the admin shell and the JSON API over one gin engine.
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

	"github.com/portfolio-admin/admin-backend/config"
	"github.com/portfolio-admin/admin-backend/internal/api/http/middleware"
	"github.com/portfolio-admin/admin-backend/internal/auth/service"
	"github.com/portfolio-admin/admin-backend/internal/bootstrap"
	"github.com/portfolio-admin/admin-backend/internal/content/domain"
	contentservice "github.com/portfolio-admin/admin-backend/internal/content/service"
)

const serviceName = "portfolio-admin"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.App.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	logger := slog.New(middleware.NewRequestIDHandler(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	slog.SetDefault(logger)

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	var fb *bootstrap.FirebaseClients
	if cfg.NeedsFirebase() {
		if fb, err = bootstrap.InitFirebase(ctx, cfg); err != nil {
			return fmt.Errorf("firebase: %w", err)
		}
		defer fb.Close()
		logger.Info("firebase initialized", "firebase", cfg.Firebase)
	}

	docs, err := bootstrap.OpenDocumentStore(cfg, fb)
	if err != nil {
		return fmt.Errorf("documents: %w", err)
	}
	blobs, memBlobs, err := bootstrap.OpenBlobStore(cfg, fb)
	if err != nil {
		return fmt.Errorf("blobs: %w", err)
	}

	sessions, closeSessions, err := bootstrap.OpenSessions(ctx, cfg.Redis, bootstrap.SessionOptions{}, logger)
	if err != nil {
		return fmt.Errorf("sessions: %w", err)
	}
	defer closeSessions()

	provider, verifier, err := bootstrap.OpenIdentity(ctx, cfg, fb)
	if err != nil {
		return fmt.Errorf("identity: %w", err)
	}

	gate := service.NewGate(provider, sessions, cfg.Server.SessionTTL, logger)
	projects := contentservice.NewCollection[domain.Project](domain.ProjectKind, docs, blobs, logger)
	certificates := contentservice.NewCollection[domain.Certificate](domain.CertificateKind, docs, blobs, logger)

	projects.Refresh(ctx)
	certificates.Refresh(ctx)

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:  serviceName,
		Version:      cfg.App.Version,
		Logger:       logger,
		CORSOrigins:  cfg.Server.CORSOrigins,
		CookieSecure: cfg.Server.CookieSecure,
		Gate:         gate,
		Sessions:     sessions,
		Blobs:        blobs,
		Verifier:     verifier,
		Projects:     projects,
		Certificates: certificates,
		MemoryBlobs:  memBlobs,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       2 * time.Minute,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		<-ctx.Done()
		logger.Info("shutting down server")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("admin server listening",
		"addr", srv.Addr,
		"env", cfg.App.Environment,
		"identity", cfg.Identity.Backend,
		"documents", cfg.Backends.Documents,
		"blobs", cfg.Backends.Blobs,
	)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}
