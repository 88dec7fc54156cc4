package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/backyonatan-alt/hullwatch/backend/internal/cache"
	"github.com/backyonatan-alt/hullwatch/backend/internal/model"
	"github.com/backyonatan-alt/hullwatch/backend/internal/status"
	"github.com/backyonatan-alt/hullwatch/backend/internal/store"
)

// Source is the subset of the fetcher the pipeline needs.
type Source interface {
	Dashboard(ctx context.Context) (model.DashboardData, error)
	FleetOverview(ctx context.Context) (model.FleetOverview, error)
	Ships(ctx context.Context) ([]model.Ship, error)
}

// Pipeline orchestrates: fetch -> assemble snapshot -> store.
type Pipeline struct {
	store  store.Store
	cache  *cache.Cache
	source Source
	status *status.Publisher
	now    func() time.Time
}

func New(store store.Store, cache *cache.Cache, source Source, pub *status.Publisher) *Pipeline {
	return &Pipeline{store: store, cache: cache, source: source, status: pub, now: time.Now}
}

// Run builds a fresh snapshot. The orchestrators already degrade to
// fallback data, so the only fetch error is cancellation.
func (p *Pipeline) Run(ctx context.Context) error {
	slog.Info("pipeline run starting")
	started := p.now()

	var snap model.Snapshot

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		d, err := p.source.Dashboard(gctx)
		if err != nil {
			return fmt.Errorf("dashboard: %w", err)
		}
		snap.Dashboard = d
		return nil
	})
	g.Go(func() error {
		o, err := p.source.FleetOverview(gctx)
		if err != nil {
			return fmt.Errorf("fleet overview: %w", err)
		}
		snap.Overview = o
		return nil
	})
	g.Go(func() error {
		ships, err := p.source.Ships(gctx)
		if err != nil {
			return fmt.Errorf("ships: %w", err)
		}
		snap.Ships = ships
		return nil
	})
	if err := g.Wait(); err != nil {
		slog.Warn("pipeline run abandoned", "error", err)
		return err
	}

	snap.APIStatus = string(p.status.Status())
	snap.LastUpdated = started.UTC().Format(time.RFC3339)

	data, err := json.Marshal(snap)
	if err != nil {
		slog.Error("failed to serialize snapshot", "error", err)
		return err
	}

	// The cache is updated even when the store is down so the UI keeps
	// getting fresh data.
	p.cache.Set(data, started)

	if err := p.store.SaveSnapshot(ctx, data); err != nil {
		slog.Error("failed to save snapshot to DB", "error", err)
		return err
	}

	slog.Info("pipeline run complete",
		"api_status", snap.APIStatus,
		"fleet_avg_risk", snap.Dashboard.FleetAvgRisk,
		"ships", len(snap.Ships),
		"bytes", len(data),
	)
	return nil
}

// Restore loads the last stored snapshot into the cache when the cache is
// still empty. It reports whether anything was restored.
func (p *Pipeline) Restore(ctx context.Context) (bool, error) {
	if p.cache.Get() != nil {
		return false, nil
	}
	data, err := p.store.LatestSnapshot(ctx)
	if err != nil {
		return false, fmt.Errorf("load snapshot: %w", err)
	}
	if data == nil {
		return false, nil
	}

	var snap model.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return false, fmt.Errorf("parse snapshot: %w", err)
	}
	updatedAt, err := time.Parse(time.RFC3339, snap.LastUpdated)
	if err != nil {
		updatedAt = time.Time{}
	}
	p.cache.Set(data, updatedAt)
	slog.Info("restored snapshot from database", "last_updated", snap.LastUpdated, "bytes", len(data))
	return true, nil
}
