package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/backyonatan-alt/hullwatch/backend/internal/cache"
	"github.com/backyonatan-alt/hullwatch/backend/internal/config"
	"github.com/backyonatan-alt/hullwatch/backend/internal/fetcher"
	"github.com/backyonatan-alt/hullwatch/backend/internal/metrics"
	"github.com/backyonatan-alt/hullwatch/backend/internal/pipeline"
	"github.com/backyonatan-alt/hullwatch/backend/internal/scheduler"
	"github.com/backyonatan-alt/hullwatch/backend/internal/server"
	"github.com/backyonatan-alt/hullwatch/backend/internal/status"
	"github.com/backyonatan-alt/hullwatch/backend/internal/store"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	st, err := openStore(cfg)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	if err := st.Migrate(context.Background()); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	pub := status.New()
	defer pub.Close()

	m := metrics.New()
	pub.Subscribe(m)
	pub.Subscribe(status.ListenerFunc(func(s status.Status) {
		slog.Info("backend connectivity", "status", s)
	}))

	f, err := fetcher.New(cfg, pub, fetcher.WithRecorder(m))
	if err != nil {
		slog.Error("failed to create fetcher", "error", err)
		os.Exit(1)
	}

	c := cache.New()
	p := pipeline.New(st, c, f, pub)

	// Serve the last stored snapshot until the first refresh lands
	if ok, err := p.Restore(context.Background()); err != nil {
		slog.Error("failed to restore snapshot", "error", err)
	} else if ok {
		slog.Info("restored snapshot from database", "updated_at", c.UpdatedAt())
	}

	// Run pipeline once immediately on startup
	slog.Info("running initial pipeline")
	if err := p.Run(context.Background()); err != nil {
		slog.Error("initial pipeline run failed", "error", err)
		// Non-fatal: the cache holds whatever was built or restored
	}

	// Start scheduler
	sched := scheduler.New(p, cfg.RefreshInterval)
	go sched.Start(context.Background())

	srv := server.New(cfg, c, st, f, pub, m.Handler())
	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port, "api", cfg.APIBaseURL)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-done
	slog.Info("shutting down")

	sched.Stop()
	srv.Close()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
}

// openStore uses Postgres when DATABASE_URL is set and a local SQLite file
// otherwise.
func openStore(cfg *config.Config) (store.Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if cfg.DatabaseURL != "" {
		slog.Info("using postgres store")
		return store.OpenPostgres(ctx, cfg.DatabaseURL)
	}
	slog.Info("using sqlite store", "path", cfg.SQLitePath)
	return store.OpenSQLite(ctx, cfg.SQLitePath)
}
