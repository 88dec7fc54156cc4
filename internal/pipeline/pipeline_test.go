package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backyonatan-alt/hullwatch/backend/internal/cache"
	"github.com/backyonatan-alt/hullwatch/backend/internal/fallback"
	"github.com/backyonatan-alt/hullwatch/backend/internal/model"
	"github.com/backyonatan-alt/hullwatch/backend/internal/status"
)

var fixedNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

type fakeSource struct {
	err error
}

func (s fakeSource) Dashboard(context.Context) (model.DashboardData, error) {
	return fallback.Dashboard(), s.err
}

func (s fakeSource) FleetOverview(context.Context) (model.FleetOverview, error) {
	return fallback.FleetOverview(fixedNow, 7), nil
}

func (s fakeSource) Ships(context.Context) ([]model.Ship, error) {
	return fallback.Ships(), nil
}

type memStore struct {
	mu        sync.Mutex
	snapshots [][]byte
	saveErr   error
}

func (m *memStore) Migrate(context.Context) error { return nil }

func (m *memStore) SaveSnapshot(_ context.Context, b []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.snapshots = append(m.snapshots, b)
	return nil
}

func (m *memStore) LatestSnapshot(context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.snapshots) == 0 {
		return nil, nil
	}
	return m.snapshots[len(m.snapshots)-1], nil
}

func (m *memStore) SaveCleaning(context.Context, model.ScheduledCleaning) error { return nil }

func (m *memStore) Cleanings(context.Context, string) ([]model.ScheduledCleaning, error) {
	return nil, nil
}

func (m *memStore) Close() error { return nil }

func newPipeline(src Source, st *memStore) (*Pipeline, *cache.Cache, *status.Publisher) {
	c := cache.New()
	pub := status.New()
	p := New(st, c, src, pub)
	p.now = func() time.Time { return fixedNow }
	return p, c, pub
}

func TestRunBuildsSnapshot(t *testing.T) {
	st := &memStore{}
	p, c, pub := newPipeline(fakeSource{}, st)
	pub.Set(status.Disconnected)

	require.NoError(t, p.Run(context.Background()))
	require.Len(t, st.snapshots, 1)
	assert.Equal(t, st.snapshots[0], c.Get())
	assert.Equal(t, fixedNow, c.UpdatedAt())

	var snap model.Snapshot
	require.NoError(t, json.Unmarshal(c.Get(), &snap))
	assert.Equal(t, "disconnected", snap.APIStatus)
	assert.Equal(t, "2025-03-10T12:00:00Z", snap.LastUpdated)
	assert.Equal(t, 42.0, snap.Dashboard.FleetAvgRisk)
	assert.Len(t, snap.Ships, 2)
	assert.Len(t, snap.Overview.PerformanceHistory, 7)
}

func TestRunCachesEvenWhenStoreFails(t *testing.T) {
	st := &memStore{saveErr: errors.New("disk full")}
	p, c, _ := newPipeline(fakeSource{}, st)

	require.Error(t, p.Run(context.Background()))
	assert.NotNil(t, c.Get())
}

func TestRunAbandonedOnCancel(t *testing.T) {
	st := &memStore{}
	p, c, _ := newPipeline(fakeSource{err: context.Canceled}, st)

	err := p.Run(context.Background())
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, c.Get())
	assert.Empty(t, st.snapshots)
}

func TestRestore(t *testing.T) {
	st := &memStore{}
	p, _, _ := newPipeline(fakeSource{}, st)
	require.NoError(t, p.Run(context.Background()))

	fresh, c, _ := newPipeline(fakeSource{}, st)
	ok, err := fresh.Restore(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, fixedNow, c.UpdatedAt())

	ok, err = fresh.Restore(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}
