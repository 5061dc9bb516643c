// Package game runs an interactive battle session in the terminal.
package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/samdwyer/pokebattle/internal/battle"
	"github.com/samdwyer/pokebattle/internal/gamedata"
	"github.com/samdwyer/pokebattle/internal/random"
	"github.com/samdwyer/pokebattle/internal/storage"
	"github.com/samdwyer/pokebattle/internal/telemetry"
	"github.com/samdwyer/pokebattle/internal/ui"
)

// Game holds the entire session state.
type Game struct {
	cfg      Config
	logger   *zap.Logger
	screen   *ui.Screen
	renderer *ui.Renderer
	battle   *battle.Orchestrator
	roster   *gamedata.Roster
	picker   *rand.Rand // roster picks; the orchestrator owns its own source
	footer   string
	running  bool
}

// New creates a session drawing to screen.
func New(cfg Config, screen *ui.Screen, catalog *gamedata.MoveCatalog, roster *gamedata.Roster) (*Game, error) {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Player != "" && roster.GetByName(cfg.Player) == nil {
		return nil, fmt.Errorf("unknown pokemon %q", cfg.Player)
	}

	battleRng, seed, err := random.New(cfg.Seed)
	if err != nil {
		return nil, err
	}
	cfg.Logger.Info("session seeded", zap.Int64("seed", seed))

	g := &Game{
		cfg:      cfg,
		logger:   cfg.Logger,
		screen:   screen,
		renderer: ui.NewRenderer(screen),
		roster:   roster,
		picker:   rand.New(rand.NewSource(seed + 1)),
		running:  true,
	}
	g.battle = battle.New(catalog, battleRng,
		battle.WithLevel(cfg.Level),
		battle.WithOpponentDelay(cfg.OpponentDelay),
		battle.WithLogger(cfg.Logger),
	)
	// Listeners run on timer goroutines; hand events to the input loop.
	g.battle.Subscribe(func(e battle.Event) {
		if err := g.screen.PostEvent(tcell.NewEventInterrupt(e)); err != nil {
			g.logger.Warn("dropped battle event", zap.String("kind", string(e.Kind)), zap.Error(err))
		}
	})
	return g, nil
}

// Run executes the main loop until the player quits or ctx is cancelled.
func (g *Game) Run(ctx context.Context) error {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.session")
	defer span.End()

	if err := g.newBattle(ctx); err != nil {
		return err
	}

	battles := 0
	for g.running && ctx.Err() == nil {
		g.renderer.Render(g.battle.Snapshot(), g.footer)
		if g.handleInput(ctx) {
			battles++
		}
	}
	span.SetAttributes(attribute.Int("battles_finished", battles))

	g.battle.Reset()
	return nil
}

// handleInput processes a single event. Returns true when a battle finished.
func (g *Game) handleInput(ctx context.Context) bool {
	ev := g.screen.PollEvent()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKeyEvent(ctx, ev)
	case *tcell.EventResize:
		g.screen.Sync()
	case *tcell.EventInterrupt:
		if e, ok := ev.Data().(battle.Event); ok {
			return g.handleBattleEvent(ctx, e)
		}
	case nil:
		// Screen finalized.
		g.running = false
	}
	return false
}

// handleKeyEvent processes keyboard input.
func (g *Game) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	action, slot := ActionFor(ev)
	switch action {
	case ActionQuit:
		g.running = false
	case ActionNewBattle:
		if err := g.newBattle(ctx); err != nil {
			g.footer = err.Error()
		}
	case ActionMove:
		_, err := g.battle.PlayerMove(ctx, slot)
		g.footer = footerFor(err)
	case ActionPass:
		g.footer = footerFor(g.battle.Pass(ctx))
	}
}

// footerFor turns a rejected action into a hint. Unusable moves already
// explain themselves in the battle log.
func footerFor(err error) string {
	switch {
	case err == nil, errors.Is(err, battle.ErrMoveUnusable):
		return ""
	case errors.Is(err, battle.ErrNotPlayerTurn), errors.Is(err, battle.ErrResolving):
		return "Wait for the opponent to move!"
	case errors.Is(err, battle.ErrBattleComplete):
		return "The battle is over. Press n for a new battle or q to quit."
	case errors.Is(err, battle.ErrMovesRemaining):
		return "You still have moves with PP left."
	case errors.Is(err, battle.ErrInvalidSlot):
		return "That slot is empty."
	default:
		return err.Error()
	}
}

// newBattle discards the current battle and starts another.
func (g *Game) newBattle(ctx context.Context) error {
	g.battle.Reset()
	g.footer = ""

	player := g.roster.GetByName(g.cfg.Player)
	if player == nil {
		player = g.roster.Random(g.picker)
	}
	opponent := g.roster.Random(g.picker)
	for i := 0; i < 3 && opponent.ID == player.ID; i++ {
		opponent = g.roster.Random(g.picker)
	}

	return g.battle.Start(ctx, player, opponent)
}

// handleBattleEvent runs on the input goroutine. Completed battles are
// recorded. Returns true on completion.
func (g *Game) handleBattleEvent(ctx context.Context, e battle.Event) bool {
	if e.Kind != battle.EventComplete {
		return false
	}

	snap := g.battle.Snapshot()
	if snap.ID != e.BattleID {
		// Reset before the event was delivered.
		return false
	}
	if e.Winner == battle.SidePlayer {
		g.footer = "You won! Press n for a new battle or q to quit."
	} else {
		g.footer = "You lost! Press n for a new battle or q to quit."
	}

	if g.cfg.Recorder == nil {
		return true
	}
	err := g.cfg.Recorder.Save(ctx, storage.Battle{
		ID:         e.BattleID,
		Player:     snap.Player.Name,
		Opponent:   snap.Opponent.Name,
		Winner:     string(e.Winner),
		Turns:      e.Turn,
		FinishedAt: time.Now(),
	})
	if err != nil {
		g.logger.Error("record battle", zap.String("battle_id", e.BattleID), zap.Error(err))
	}
	return true
}

// Close cleans up session resources.
func (g *Game) Close() {
	g.battle.Reset()
	if g.screen != nil {
		g.screen.Close()
	}
}
