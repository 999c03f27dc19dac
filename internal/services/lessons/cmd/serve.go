package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/gamma-omg/speaklexi/internal/pkg/middleware"
	"github.com/gamma-omg/speaklexi/internal/pkg/router"
	"github.com/gamma-omg/speaklexi/internal/services/lessons/internal/config"
	"github.com/gamma-omg/speaklexi/internal/services/lessons/internal/devserver"
)

func serve(ctx context.Context, cfg config.Config) error {
	slog.Info("starting development backend")

	if err := os.MkdirAll(cfg.Dev.MediaRoot, 0o755); err != nil {
		return fmt.Errorf("create media root: %w", err)
	}

	api := devserver.NewAPI(
		devserver.WithStore(devserver.NewStore(devserver.DefaultCourses())),
		devserver.WithMediaStore(devserver.NewMediaStore(devserver.MediaStoreConfig{
			ServeRoot: cfg.Dev.MediaServeRoot,
			Root:      cfg.Dev.MediaRoot,
		})),
		devserver.WithContentRoot(cfg.Dev.MediaRoot),
		devserver.WithMaxUploadSize(cfg.Dev.MaxUploadSize),
		devserver.WithAuthSecret(cfg.Dev.AuthSecret),
	)
	if cfg.Dev.AuthSecret == "" {
		slog.Warn("write routes are not protected, set DEV_AUTH_SECRET to require a token")
	}

	r := router.New()
	r.Use(middleware.Recover(), middleware.Log())
	r.Handle("/", api)

	httpSrv := &http.Server{
		Addr:         cfg.Dev.HTTP.ListenAddr,
		IdleTimeout:  cfg.Dev.HTTP.IdleTimeout,
		ReadTimeout:  cfg.Dev.HTTP.ReadTimeout,
		WriteTimeout: cfg.Dev.HTTP.WriteTimeout,
		Handler:      r,
	}

	errCh := make(chan error, 1)

	go func() {
		slog.Info("HTTP server starting", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Dev.HTTP.ShutdownTimeout)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
