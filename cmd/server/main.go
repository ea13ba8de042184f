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

	"github.com/gorilla/mux"
	"golang.org/x/sync/errgroup"

	"github.com/inamate/flyinout/internal/config"
	"github.com/inamate/flyinout/internal/document"
	"github.com/inamate/flyinout/internal/engine"
	mw "github.com/inamate/flyinout/internal/middleware"
	"github.com/inamate/flyinout/internal/preview"
	"github.com/inamate/flyinout/internal/stream"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Level()})))

	catalog, err := document.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		slog.Error("load catalog", "error", err, "path", cfg.CatalogPath)
		os.Exit(1)
	}
	slog.Info("catalog loaded", "presets", len(catalog.Names()), "override", cfg.CatalogPath)

	viewport := document.ViewportDoc{
		Width:    cfg.ViewportWidth,
		Height:   cfg.ViewportHeight,
		FontSize: cfg.FontSize,
	}

	// All live playbacks share one frame loop
	loop := engine.NewFrameLoop(cfg.FrameRate)
	busy := false
	loop.OnFrame(func(_ time.Time, pending int) {
		if (pending > 0) != busy {
			busy = pending > 0
			slog.Debug("frame loop", "busy", busy, "pending", pending)
		}
	})
	hub := stream.NewHub(loop, catalog, viewport)

	previewHandler := preview.NewHandler(catalog, viewport, cfg.PreviewMaxFrames)

	r := mux.NewRouter()

	// Global middleware. Logger wraps Recovery so panics carry the request id.
	r.Use(mw.Logger)
	r.Use(mw.Recovery)
	r.Use(mw.CORS(cfg.Origins()))

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	previewHandler.Routes(r)

	// WebSocket endpoint
	r.Handle("/ws/play", stream.NewHandler(hub, cfg.Origins())).Methods("GET")

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return loop.Run(gctx)
	})

	g.Go(func() error {
		return hub.Run(gctx)
	})

	g.Go(func() error {
		slog.Info("server starting", "addr", addr, "fps", cfg.FrameRate)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
