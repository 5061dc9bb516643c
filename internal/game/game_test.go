package game

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/pokebattle/internal/battle"
	"github.com/samdwyer/pokebattle/internal/gamedata"
	"github.com/samdwyer/pokebattle/internal/storage"
	"github.com/samdwyer/pokebattle/internal/ui"
)

type memoryRecorder struct {
	mu      sync.Mutex
	battles []storage.Battle
}

func (m *memoryRecorder) Save(_ context.Context, b storage.Battle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.battles = append(m.battles, b)
	return nil
}

func newTestGame(t *testing.T, cfg Config) *Game {
	t.Helper()
	sim := tcell.NewSimulationScreen("")
	screen, err := ui.Wrap(sim)
	require.NoError(t, err)
	sim.SetSize(80, 30)

	g, err := New(cfg, screen, gamedata.MustLoadMoveCatalog(), gamedata.MustLoadRoster())
	require.NoError(t, err)
	t.Cleanup(g.Close)
	return g
}

func TestActionFor(t *testing.T) {
	tests := []struct {
		name   string
		ev     *tcell.EventKey
		action Action
		slot   int
	}{
		{"slot one", tcell.NewEventKey(tcell.KeyRune, '1', tcell.ModNone), ActionMove, 0},
		{"slot four", tcell.NewEventKey(tcell.KeyRune, '4', tcell.ModNone), ActionMove, 3},
		{"slot five ignored", tcell.NewEventKey(tcell.KeyRune, '5', tcell.ModNone), ActionNone, 0},
		{"pass", tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone), ActionPass, 0},
		{"new battle", tcell.NewEventKey(tcell.KeyRune, 'N', tcell.ModNone), ActionNewBattle, 0},
		{"quit", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), ActionQuit, 0},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), ActionQuit, 0},
		{"arrow", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), ActionNone, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, slot := ActionFor(tt.ev)
			if action != tt.action || slot != tt.slot {
				t.Errorf("ActionFor() = (%v, %d), want (%v, %d)", action, slot, tt.action, tt.slot)
			}
		})
	}
}

func TestActionString(t *testing.T) {
	if got := ActionNewBattle.String(); got != "new_battle" {
		t.Errorf("ActionNewBattle.String() = %q, want %q", got, "new_battle")
	}
	if got := Action(42).String(); got != "unknown" {
		t.Errorf("Action(42).String() = %q, want %q", got, "unknown")
	}
}

func TestNewRejectsUnknownPlayer(t *testing.T) {
	sim := tcell.NewSimulationScreen("")
	screen, err := ui.Wrap(sim)
	require.NoError(t, err)
	defer screen.Close()

	_, err = New(Config{Player: "missingno"}, screen, gamedata.MustLoadMoveCatalog(), gamedata.MustLoadRoster())
	require.Error(t, err)
}

func TestNewBattleUsesConfiguredPlayer(t *testing.T) {
	g := newTestGame(t, Config{Seed: 9, Player: "lucario", OpponentDelay: 0})
	require.NoError(t, g.newBattle(context.Background()))

	snap := g.battle.Snapshot()
	require.Equal(t, "Lucario", snap.Player.Name)
	require.NotEqual(t, "Lucario", snap.Opponent.Name)
	require.NotEqual(t, battle.PhaseNotStarted, snap.Phase)
}

func TestMoveKeyAdvancesBattle(t *testing.T) {
	ctx := context.Background()
	g := newTestGame(t, Config{Seed: 3, Player: "dragonite", OpponentDelay: 0})
	require.NoError(t, g.newBattle(ctx))

	// With no delay the opponent has already moved if it was faster.
	require.Equal(t, battle.PhasePlayerTurn, g.battle.Phase())
	before := g.battle.Snapshot()

	g.handleKeyEvent(ctx, tcell.NewEventKey(tcell.KeyRune, '4', tcell.ModNone))

	// Either the move resolved or a status condition blocked it; both log.
	after := g.battle.Snapshot()
	require.Greater(t, len(after.Log), len(before.Log))
	require.GreaterOrEqual(t, after.TurnCount, before.TurnCount)
}

func TestCompletedBattleIsRecorded(t *testing.T) {
	ctx := context.Background()
	rec := &memoryRecorder{}
	g := newTestGame(t, Config{Seed: 5, OpponentDelay: 0, Recorder: rec})
	require.NoError(t, g.newBattle(ctx))
	snap := g.battle.Snapshot()

	finished := g.handleBattleEvent(ctx, battle.Event{
		Kind:     battle.EventComplete,
		BattleID: snap.ID,
		Winner:   battle.SidePlayer,
		Turn:     7,
	})
	require.True(t, finished)
	require.Len(t, rec.battles, 1)
	require.Equal(t, snap.ID, rec.battles[0].ID)
	require.Equal(t, snap.Player.Name, rec.battles[0].Player)
	require.Equal(t, "player", rec.battles[0].Winner)
	require.Equal(t, 7, rec.battles[0].Turns)
	require.Contains(t, g.footer, "You won!")

	// Events from a battle that was reset are ignored.
	require.False(t, g.handleBattleEvent(ctx, battle.Event{Kind: battle.EventComplete, BattleID: "stale"}))
	require.Len(t, rec.battles, 1)
}

func TestRunQuitsOnKey(t *testing.T) {
	sim := tcell.NewSimulationScreen("")
	screen, err := ui.Wrap(sim)
	require.NoError(t, err)
	sim.SetSize(80, 30)

	g, err := New(Config{Seed: 1, OpponentDelay: time.Hour}, screen, gamedata.MustLoadMoveCatalog(), gamedata.MustLoadRoster())
	require.NoError(t, err)
	defer g.Close()

	require.NoError(t, screen.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))

	done := make(chan error, 1)
	go func() { done <- g.Run(context.Background()) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after quit key")
	}
}

func TestFooterFor(t *testing.T) {
	tests := []struct {
		err      error
		expected string
	}{
		{nil, ""},
		{battle.ErrMoveUnusable, ""},
		{battle.ErrNotPlayerTurn, "Wait for the opponent to move!"},
		{battle.ErrBattleComplete, "The battle is over. Press n for a new battle or q to quit."},
	}
	for _, tt := range tests {
		if got := footerFor(tt.err); got != tt.expected {
			t.Errorf("footerFor(%v) = %q, want %q", tt.err, got, tt.expected)
		}
	}
}
