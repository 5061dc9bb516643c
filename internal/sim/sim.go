// Package sim runs headless battles with an autopilot player, for balance
// checks and the simulate command.
package sim

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/samdwyer/pokebattle/internal/battle"
	"github.com/samdwyer/pokebattle/internal/element"
	"github.com/samdwyer/pokebattle/internal/gamedata"
	"github.com/samdwyer/pokebattle/internal/storage"
	"github.com/samdwyer/pokebattle/internal/telemetry"
)

// DefaultMaxTurns stops battles in which neither side can finish the other.
const DefaultMaxTurns = 300

// Recorder stores finished battles. *storage.Store satisfies it.
type Recorder interface {
	Save(ctx context.Context, b storage.Battle) error
}

// Options controls a batch. A nil Player or Opponent is drawn at random from
// the roster for every battle.
type Options struct {
	Battles  int
	Parallel int
	Seed     int64
	Level    int
	MaxTurns int
	Player   *gamedata.PokemonDef
	Opponent *gamedata.PokemonDef
	Logger   *zap.Logger
	Recorder Recorder
}

// Outcome is the result of one simulated battle.
type Outcome struct {
	ID       string
	Player   string
	Opponent string
	Winner   battle.Side
	Turns    int
}

// Summary aggregates a batch.
type Summary struct {
	Battles      int
	PlayerWins   int
	OpponentWins int
	Draws        int
	Outcomes     []Outcome
}

// PlayerWinRate returns the fraction of battles the player won.
func (s Summary) PlayerWinRate() float64 {
	if s.Battles == 0 {
		return 0
	}
	return float64(s.PlayerWins) / float64(s.Battles)
}

// OpponentWinRate returns the fraction of battles the opponent won.
func (s Summary) OpponentWinRate() float64 {
	if s.Battles == 0 {
		return 0
	}
	return float64(s.OpponentWins) / float64(s.Battles)
}

// Runner plays batches of battles against the embedded data.
type Runner struct {
	catalog *gamedata.MoveCatalog
	roster  *gamedata.Roster
}

// NewRunner creates a runner.
func NewRunner(catalog *gamedata.MoveCatalog, roster *gamedata.Roster) *Runner {
	return &Runner{catalog: catalog, roster: roster}
}

// Run plays opts.Battles battles, at most opts.Parallel at a time. Battle i
// is seeded with opts.Seed+i, so results do not depend on scheduling.
func (r *Runner) Run(ctx context.Context, opts Options) (Summary, error) {
	if opts.Battles <= 0 {
		return Summary{}, fmt.Errorf("battles must be positive, got %d", opts.Battles)
	}
	if opts.Parallel <= 0 {
		opts.Parallel = 1
	}
	if opts.MaxTurns <= 0 {
		opts.MaxTurns = DefaultMaxTurns
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	tracer := telemetry.Tracer("sim")
	ctx, span := tracer.Start(ctx, "sim.batch")
	defer span.End()
	span.SetAttributes(
		attribute.Int("battles", opts.Battles),
		attribute.Int("parallel", opts.Parallel),
		attribute.Int64("seed", opts.Seed),
	)

	outcomes := make([]Outcome, opts.Battles)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Parallel)

	for i := 0; i < opts.Battles; i++ {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			outcome, err := r.playOne(ctx, opts, opts.Seed+int64(i))
			if err != nil {
				return fmt.Errorf("battle %d: %w", i, err)
			}
			outcomes[i] = outcome

			if opts.Recorder != nil {
				err := opts.Recorder.Save(ctx, storage.Battle{
					ID:         outcome.ID,
					Player:     outcome.Player,
					Opponent:   outcome.Opponent,
					Winner:     string(outcome.Winner),
					Turns:      outcome.Turns,
					FinishedAt: time.Now(),
				})
				if err != nil {
					return fmt.Errorf("record battle %d: %w", i, err)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	summary := Summary{Battles: opts.Battles, Outcomes: outcomes}
	for _, o := range outcomes {
		switch o.Winner {
		case battle.SidePlayer:
			summary.PlayerWins++
		case battle.SideOpponent:
			summary.OpponentWins++
		default:
			summary.Draws++
		}
	}

	span.SetAttributes(
		attribute.Int("player_wins", summary.PlayerWins),
		attribute.Int("opponent_wins", summary.OpponentWins),
		attribute.Int("draws", summary.Draws),
	)
	opts.Logger.Info("simulation finished",
		zap.Int("battles", summary.Battles),
		zap.Int("player_wins", summary.PlayerWins),
		zap.Int("opponent_wins", summary.OpponentWins),
		zap.Int("draws", summary.Draws),
	)
	return summary, nil
}

func (r *Runner) playOne(ctx context.Context, opts Options, seed int64) (Outcome, error) {
	rng := rand.New(rand.NewSource(seed))

	player, opponent := opts.Player, opts.Opponent
	if player == nil {
		player = r.roster.Random(rng)
	}
	if opponent == nil {
		opponent = r.roster.Random(rng)
	}

	o := battle.New(r.catalog, rng,
		battle.WithOpponentDelay(0),
		battle.WithLevel(opts.Level),
		battle.WithLogger(opts.Logger),
	)
	if err := o.Start(ctx, player, opponent); err != nil {
		return Outcome{}, err
	}
	return Autopilot(ctx, o, rng, opts.MaxTurns)
}

// Autopilot plays the player side of a started battle whose opponent moves
// inline, until it completes or maxTurns passes. The player favours
// super-effective moves the same way the built-in opponent does.
func Autopilot(ctx context.Context, o *battle.Orchestrator, rng *rand.Rand, maxTurns int) (Outcome, error) {
	// Status gates can refuse a move many times without consuming a turn.
	maxAttempts := maxTurns * 20

	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return Outcome{}, err
		}

		snap := o.Snapshot()
		if snap.Complete || snap.TurnCount > maxTurns {
			return outcomeOf(snap), nil
		}

		var (
			slots []int
			types []element.Type
		)
		for i, m := range snap.Player.Moves {
			if m.PP > 0 {
				slots = append(slots, i)
				types = append(types, m.Type)
			}
		}

		if len(slots) == 0 {
			if err := o.Pass(ctx); err != nil {
				return Outcome{}, err
			}
			continue
		}

		slot := slots[battle.ChooseIndex(rng, types, snap.Opponent.Types)]
		if _, err := o.PlayerMove(ctx, slot); err != nil && !errors.Is(err, battle.ErrMoveUnusable) {
			return Outcome{}, err
		}
	}
	return outcomeOf(o.Snapshot()), nil
}

func outcomeOf(snap battle.Snapshot) Outcome {
	return Outcome{
		ID:       snap.ID,
		Player:   snap.Player.Name,
		Opponent: snap.Opponent.Name,
		Winner:   snap.Winner,
		Turns:    snap.TurnCount,
	}
}
