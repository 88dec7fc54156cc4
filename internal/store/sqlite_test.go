package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backyonatan-alt/hullwatch/backend/internal/model"
)

func openTestStore(t *testing.T) *SQLite {
	t.Helper()
	ctx := context.Background()
	s, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "hullwatch.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.Migrate(ctx))
	return s
}

func TestSnapshots(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	got, err := s.LatestSnapshot(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, s.SaveSnapshot(ctx, []byte(`{"api_status":"disconnected"}`)))
	require.NoError(t, s.SaveSnapshot(ctx, []byte(`{"api_status":"connected"}`)))

	got, err = s.LatestSnapshot(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"api_status":"connected"}`, string(got))
}

func TestMigrateIsIdempotent(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.Migrate(context.Background()))
}

func TestCleanings(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	require.NoError(t, s.SaveCleaning(ctx, model.ScheduledCleaning{
		VesselID:     "coral-voyager",
		ProposedDate: "2025-03-20T00:00:00Z",
		Priority:     "normal",
		Reference:    "CLN-0041",
		CreatedAt:    "2025-03-01T09:00:00Z",
	}))
	require.NoError(t, s.SaveCleaning(ctx, model.ScheduledCleaning{
		VesselID:     "coral-voyager",
		ProposedDate: "2025-04-02T00:00:00Z",
		Priority:     "high",
		CreatedAt:    "2025-03-05T09:00:00Z",
	}))
	require.NoError(t, s.SaveCleaning(ctx, model.ScheduledCleaning{
		VesselID:     "atlantic-pioneer",
		ProposedDate: "2025-03-15T00:00:00Z",
		Priority:     "urgent",
	}))

	got, err := s.Cleanings(ctx, "coral-voyager")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "high", got[0].Priority)
	assert.Equal(t, "2025-03-05T09:00:00Z", got[0].CreatedAt)
	assert.Equal(t, "CLN-0041", got[1].Reference)

	none, err := s.Cleanings(ctx, "nordic-spirit")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestSaveCleaningRejectsBadTimestamp(t *testing.T) {
	s := openTestStore(t)
	err := s.SaveCleaning(context.Background(), model.ScheduledCleaning{VesselID: "x", CreatedAt: "yesterday"})
	require.Error(t, err)
}
