package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "battles.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open(context.Background(), "  ")
	if !errors.Is(err, ErrPathRequired) {
		t.Fatalf("Open error = %v, want ErrPathRequired", err)
	}
}

func TestSaveAndRecent(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	battles := []Battle{
		{ID: "a", Player: "Pikachu", Opponent: "Gyarados", Winner: "player", Turns: 3, FinishedAt: base},
		{ID: "b", Player: "Snorlax", Opponent: "Gengar", Winner: "opponent", Turns: 9, FinishedAt: base.Add(time.Minute)},
		{ID: "c", Player: "Pikachu", Opponent: "Snorlax", Winner: "opponent", Turns: 4, FinishedAt: base.Add(2 * time.Minute)},
	}
	for _, b := range battles {
		require.NoError(t, store.Save(ctx, b))
	}

	got, err := store.Recent(ctx, 2)
	require.NoError(t, err)
	want := []Battle{battles[2], battles[1]}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Recent() mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveDuplicateID(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	b := Battle{ID: "dup", Player: "Pikachu", Opponent: "Snorlax", Winner: "player", Turns: 1, FinishedAt: time.Now()}

	require.NoError(t, store.Save(ctx, b))
	require.Error(t, store.Save(ctx, b))
}

func TestRecords(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	now := time.Now()

	for i, b := range []Battle{
		{Player: "Pikachu", Opponent: "Gyarados", Winner: "player"},
		{Player: "Pikachu", Opponent: "Snorlax", Winner: "opponent"},
		{Player: "Snorlax", Opponent: "Gyarados", Winner: "player"},
		{Player: "Gengar", Opponent: "Snorlax", Winner: ""},
	} {
		b.ID = string(rune('a' + i))
		b.FinishedAt = now
		require.NoError(t, store.Save(ctx, b))
	}

	got, err := store.Records(ctx)
	require.NoError(t, err)
	want := []Record{
		{Name: "Snorlax", Wins: 2, Losses: 0},
		{Name: "Pikachu", Wins: 1, Losses: 1},
		{Name: "Gengar", Wins: 0, Losses: 0},
		{Name: "Gyarados", Wins: 0, Losses: 2},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Records() mismatch (-want +got):\n%s", diff)
	}
}

func TestReopenKeepsHistory(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "battles.db")

	store, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, Battle{ID: "x", Player: "Lucario", Opponent: "Scizor", Winner: "player", Turns: 2, FinishedAt: time.Now()}))
	require.NoError(t, store.Close())

	store, err = Open(ctx, path)
	require.NoError(t, err)
	defer store.Close()

	got, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "Lucario", got[0].Player)
}
