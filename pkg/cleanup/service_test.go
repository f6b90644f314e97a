package cleanup

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jjgarcianorway/anna/pkg/changelog"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *changelog.Store {
	t.Helper()
	store, err := changelog.Open(context.Background(), changelog.Config{
		Path: filepath.Join(t.TempDir(), "changelog.sqlite"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func saveUnitAt(t *testing.T, store *changelog.Store, id string, start time.Time) {
	t.Helper()
	err := store.SaveChangeUnit(context.Background(), changelog.ChangeUnit{
		ID:        id,
		Label:     "test unit",
		Request:   "test request",
		Status:    changelog.StatusSuccess,
		StartTime: start,
	})
	require.NoError(t, err)
}

func TestService_PrunesOldChangeUnits(t *testing.T) {
	store := openTestStore(t)
	saveUnitAt(t, store, "old", time.Now().Add(-100*24*time.Hour))
	saveUnitAt(t, store, "recent", time.Now())

	svc := NewService(Config{ChangeUnitRetention: 90 * 24 * time.Hour, Interval: time.Hour}, store)
	svc.pruneOnce(context.Background())

	units, err := store.RecentChangeUnits(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, units, 1)
	require.Equal(t, "recent", units[0].ID)
}

func TestService_PreservesRecentChangeUnits(t *testing.T) {
	store := openTestStore(t)
	saveUnitAt(t, store, "a", time.Now())
	saveUnitAt(t, store, "b", time.Now().Add(-time.Hour))

	svc := NewService(DefaultConfig(), store)
	svc.pruneOnce(context.Background())

	units, err := store.RecentChangeUnits(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, units, 2)
}

func TestService_StartStopRunsAtLeastOnce(t *testing.T) {
	store := openTestStore(t)
	saveUnitAt(t, store, "old", time.Now().Add(-100*24*time.Hour))

	svc := NewService(Config{ChangeUnitRetention: 90 * 24 * time.Hour, Interval: time.Hour}, store)
	svc.Start(context.Background())
	svc.Stop()

	units, err := store.RecentChangeUnits(context.Background(), 10)
	require.NoError(t, err)
	require.Empty(t, units)
}
