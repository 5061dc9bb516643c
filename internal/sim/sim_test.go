package sim

import (
	"context"
	"errors"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/samdwyer/pokebattle/internal/battle"
	"github.com/samdwyer/pokebattle/internal/gamedata"
	"github.com/samdwyer/pokebattle/internal/storage"
)

var (
	testCatalog = gamedata.MustLoadMoveCatalog()
	testRoster  = gamedata.MustLoadRoster()
)

func TestRunCountsEveryBattle(t *testing.T) {
	runner := NewRunner(testCatalog, testRoster)
	summary, err := runner.Run(context.Background(), Options{
		Battles:  12,
		Parallel: 4,
		Seed:     1,
		Level:    50,
		Player:   testRoster.GetByName("pikachu"),
		Opponent: testRoster.GetByName("gyarados"),
		Logger:   zaptest.NewLogger(t),
	})
	require.NoError(t, err)

	require.Equal(t, 12, summary.Battles)
	require.Equal(t, 12, summary.PlayerWins+summary.OpponentWins+summary.Draws)
	require.Len(t, summary.Outcomes, 12)
	for _, o := range summary.Outcomes {
		require.Equal(t, "Pikachu", o.Player)
		require.Equal(t, "Gyarados", o.Opponent)
		require.NotEmpty(t, o.ID)
		require.Positive(t, o.Turns)
	}
	require.InDelta(t, 1.0, summary.PlayerWinRate()+summary.OpponentWinRate()+float64(summary.Draws)/12, 1e-9)
}

func TestRunIsDeterministicAcrossParallelism(t *testing.T) {
	runner := NewRunner(testCatalog, testRoster)
	opts := Options{Battles: 10, Seed: 42, Level: 50}

	opts.Parallel = 1
	serial, err := runner.Run(context.Background(), opts)
	require.NoError(t, err)

	opts.Parallel = 5
	parallel, err := runner.Run(context.Background(), opts)
	require.NoError(t, err)

	ignoreID := cmpopts.IgnoreFields(Outcome{}, "ID")
	if diff := cmp.Diff(serial.Outcomes, parallel.Outcomes, ignoreID); diff != "" {
		t.Errorf("outcomes depend on parallelism (-serial +parallel):\n%s", diff)
	}
}

func TestRunRecordsBattles(t *testing.T) {
	ctx := context.Background()
	store, err := storage.Open(ctx, filepath.Join(t.TempDir(), "sim.db"))
	require.NoError(t, err)
	defer store.Close()

	runner := NewRunner(testCatalog, testRoster)
	_, err = runner.Run(ctx, Options{Battles: 6, Parallel: 3, Seed: 7, Recorder: store})
	require.NoError(t, err)

	recent, err := store.Recent(ctx, 100)
	require.NoError(t, err)
	require.Len(t, recent, 6)
}

func TestRunRejectsBadOptions(t *testing.T) {
	runner := NewRunner(testCatalog, testRoster)
	_, err := runner.Run(context.Background(), Options{Battles: 0})
	require.Error(t, err)
}

func TestRunHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := NewRunner(testCatalog, testRoster)
	_, err := runner.Run(ctx, Options{Battles: 4, Parallel: 2})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run error = %v, want context.Canceled", err)
	}
}

func TestAutopilotStopsAtTurnLimit(t *testing.T) {
	ctx := context.Background()
	rng := rand.New(rand.NewSource(3))
	o := battle.New(testCatalog, rng, battle.WithOpponentDelay(0))
	require.NoError(t, o.Start(ctx, testRoster.GetByName("snorlax"), testRoster.GetByName("gengar")))

	outcome, err := Autopilot(ctx, o, rng, 1)
	require.NoError(t, err)
	if outcome.Winner == battle.SideNone {
		require.Greater(t, outcome.Turns, 1)
	}
	require.Equal(t, "Snorlax", outcome.Player)
}
