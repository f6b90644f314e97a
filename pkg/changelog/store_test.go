package changelog

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "changelog.db")
	store, err := Open(context.Background(), Config{Path: path, MaxOpenConns: 1})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleUnit(id string) ChangeUnit {
	start := time.Date(2026, 7, 30, 12, 0, 0, 0, time.UTC)
	return ChangeUnit{
		ID:        id,
		Label:     "install htop",
		Request:   "install htop please",
		Status:    StatusSuccess,
		StartTime: start,
		Actions: []ChangeAction{
			{ID: id + "-a1", Seq: 0, Command: "pacman -S htop", ExitCode: 0, Success: true, EvidenceKind: "positive", Summary: "installed", RanAt: start},
		},
	}
}

func TestStore_SaveAndGetChangeUnit_RoundTrips(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	unit := sampleUnit("unit-1")
	require.NoError(t, store.SaveChangeUnit(ctx, unit))

	got, err := store.GetChangeUnit(ctx, "unit-1")
	require.NoError(t, err)
	require.Equal(t, unit.Label, got.Label)
	require.Equal(t, unit.Status, got.Status)
	require.Len(t, got.Actions, 1)
	require.Equal(t, "pacman -S htop", got.Actions[0].Command)
}

func TestStore_SaveChangeUnit_ReplacesChildActionsOnResave(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	unit := sampleUnit("unit-2")
	require.NoError(t, store.SaveChangeUnit(ctx, unit))

	unit.Status = StatusPartial
	unit.Actions = append(unit.Actions, ChangeAction{
		ID: "unit-2-a2", Seq: 1, Command: "systemctl status htop",
		ExitCode: 1, Success: false, EvidenceKind: "negative", Summary: "not a service", RanAt: unit.StartTime,
	})
	require.NoError(t, store.SaveChangeUnit(ctx, unit))

	got, err := store.GetChangeUnit(ctx, "unit-2")
	require.NoError(t, err)
	require.Equal(t, StatusPartial, got.Status)
	require.Len(t, got.Actions, 2)
	require.Equal(t, "systemctl status htop", got.Actions[1].Command)
}

func TestStore_RecentChangeUnits_OrdersByStartTimeDescending(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	older := sampleUnit("unit-older")
	older.StartTime = time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	newer := sampleUnit("unit-newer")
	newer.StartTime = time.Date(2026, 7, 30, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.SaveChangeUnit(ctx, older))
	require.NoError(t, store.SaveChangeUnit(ctx, newer))

	units, err := store.RecentChangeUnits(ctx, 10)
	require.NoError(t, err)
	require.Len(t, units, 2)
	require.Equal(t, "unit-newer", units[0].ID)
	require.Equal(t, "unit-older", units[1].ID)
}

func TestStore_RecentChangeUnits_RespectsLimit(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		u := sampleUnit(string(rune('a' + i)))
		u.StartTime = u.StartTime.Add(time.Duration(i) * time.Hour)
		require.NoError(t, store.SaveChangeUnit(ctx, u))
	}

	units, err := store.RecentChangeUnits(ctx, 2)
	require.NoError(t, err)
	require.Len(t, units, 2)
}

func TestOpen_AppliesMigrationsIdempotentlyAcrossReopens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "changelog.db")
	ctx := context.Background()

	store1, err := Open(ctx, Config{Path: path})
	require.NoError(t, err)
	require.NoError(t, store1.SaveChangeUnit(ctx, sampleUnit("unit-x")))
	require.NoError(t, store1.Close())

	store2, err := Open(ctx, Config{Path: path})
	require.NoError(t, err)
	defer store2.Close()

	got, err := store2.GetChangeUnit(ctx, "unit-x")
	require.NoError(t, err)
	require.Equal(t, "unit-x", got.ID)
}
