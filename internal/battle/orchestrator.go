package battle

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/samdwyer/pokebattle/internal/combat"
	"github.com/samdwyer/pokebattle/internal/entity"
	"github.com/samdwyer/pokebattle/internal/gamedata"
	"github.com/samdwyer/pokebattle/internal/telemetry"
)

var (
	ErrNotStarted     = errors.New("battle: not started")
	ErrNotPlayerTurn  = errors.New("battle: not the player's turn")
	ErrBattleComplete = errors.New("battle: already complete")
	ErrResolving      = errors.New("battle: a move is already being resolved")
	ErrInvalidSlot    = errors.New("battle: invalid move slot")
	ErrMoveUnusable   = errors.New("battle: move cannot be used")
	ErrMovesRemaining = errors.New("battle: usable moves remain")
	ErrNoCombatant    = errors.New("battle: combatant is required")
	ErrInterrupted    = errors.New("battle: move resolution interrupted")
)

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the zap logger. The default discards output.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) { o.logger = logger }
}

// WithOpponentDelay sets the pause before the opponent moves. Zero runs the
// opponent turn inline before the player's call returns.
func WithOpponentDelay(d time.Duration) Option {
	return func(o *Orchestrator) { o.delay = d }
}

// WithAfterFunc replaces the timer used for delayed opponent turns.
func WithAfterFunc(fn AfterFunc) Option {
	return func(o *Orchestrator) { o.afterFunc = fn }
}

// WithPolicy replaces the opponent move policy.
func WithPolicy(p Policy) Option {
	return func(o *Orchestrator) { o.policy = p }
}

// WithLevel sets the level both combatants battle at.
func WithLevel(level int) Option {
	return func(o *Orchestrator) { o.level = level }
}

// Orchestrator owns one battle at a time. All methods are safe for
// concurrent use; state changes happen under a single mutex so at most one
// move is ever in flight.
type Orchestrator struct {
	catalog   *gamedata.MoveCatalog
	rng       combat.Rand
	engine    *combat.Engine
	policy    Policy
	logger    *zap.Logger
	delay     time.Duration
	afterFunc AfterFunc
	level     int

	mu        sync.Mutex
	ctx       context.Context
	id        string
	phase     Phase
	player    *entity.Pokemon
	opponent  *entity.Pokemon
	log       []string
	turnCount int
	winner    Side
	pending   Timer
	listeners []func(Event)
	outbox    []Event
}

// New creates an orchestrator. rng drives damage variance, critical hits,
// status gates and the opponent's choices.
func New(catalog *gamedata.MoveCatalog, rng combat.Rand, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		catalog:   catalog,
		rng:       rng,
		engine:    combat.NewEngine(rng),
		policy:    PreferSuperEffective,
		logger:    zap.NewNop(),
		delay:     DefaultOpponentDelay,
		afterFunc: realAfterFunc,
		level:     entity.DefaultLevel,
		ctx:       context.Background(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Subscribe registers fn to receive every event. Listeners run on the
// goroutine that caused the event, after the state lock is released.
func (o *Orchestrator) Subscribe(fn func(Event)) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.listeners = append(o.listeners, fn)
}

// Start discards any current battle and begins a new one between the two
// roster entries. The faster combatant moves first; ties go to the player.
func (o *Orchestrator) Start(ctx context.Context, player, opponent *gamedata.PokemonDef) error {
	if player == nil || opponent == nil {
		return ErrNoCombatant
	}

	tracer := telemetry.Tracer("battle")
	_, span := tracer.Start(ctx, "battle.start")
	defer span.End()

	o.mu.Lock()
	defer o.unlockAndDispatch()

	o.stopPending()
	o.ctx = context.WithoutCancel(ctx)
	o.id = uuid.NewString()
	o.player = entity.NewPokemon(player, o.level, o.catalog)
	o.opponent = entity.NewPokemon(opponent, o.level, o.catalog)
	o.turnCount = 1
	o.winner = SideNone
	o.log = []string{
		fmt.Sprintf("%s (Lv. %d) vs. %s (Lv. %d)!", o.player.Name, o.player.Level, o.opponent.Name, o.opponent.Level),
		"The battle begins!",
	}

	first := SidePlayer
	if o.opponent.GetSpeed() > o.player.GetSpeed() {
		first = SideOpponent
	}
	o.log = append(o.log, o.combatant(first).Name+" moves first!")

	span.SetAttributes(
		attribute.String("battle_id", o.id),
		attribute.String("player", o.player.Name),
		attribute.String("opponent", o.opponent.Name),
		attribute.String("first", string(first)),
	)
	o.logger.Info("battle started",
		zap.String("battle_id", o.id),
		zap.String("player", o.player.Name),
		zap.String("opponent", o.opponent.Name),
		zap.String("first", string(first)),
	)
	o.emit(Event{Kind: EventStarted, Side: first, Message: o.log[len(o.log)-1]})

	if first == SidePlayer {
		o.phase = PhasePlayerTurn
		return nil
	}
	o.phase = PhaseOpponentTurn
	o.scheduleOpponent()
	return nil
}

// PlayerMove resolves the move in slot (0-3) for the player. Rejected calls
// leave the state untouched. An unusable move is logged and returns
// ErrMoveUnusable without consuming the turn.
func (o *Orchestrator) PlayerMove(ctx context.Context, slot int) (result combat.MoveResult, err error) {
	o.mu.Lock()
	defer o.unlockAndDispatch()

	if err := o.checkPlayerTurn(); err != nil {
		o.logger.Debug("player move rejected", zap.Int("slot", slot), zap.Error(err))
		return combat.MoveResult{}, err
	}

	move := o.player.Move(slot)
	if move == nil {
		return combat.MoveResult{}, fmt.Errorf("%w: %d", ErrInvalidSlot, slot)
	}

	if !o.engine.CanUseMove(o.player, move) {
		msg := combat.BlockedMessage(o.player, move)
		o.log = append(o.log, msg)
		o.emit(Event{Kind: EventUnusable, Side: SidePlayer, Message: msg})
		return combat.MoveResult{}, ErrMoveUnusable
	}

	defer func() {
		if r := recover(); r != nil {
			o.recoverTurn(r)
			err = ErrInterrupted
		}
	}()

	o.phase = PhaseResolving
	result = o.resolve(ctx, SidePlayer, move)
	o.endTurn(SidePlayer)
	return result, nil
}

// Pass hands the turn to the opponent when every player move is out of PP.
func (o *Orchestrator) Pass(ctx context.Context) error {
	o.mu.Lock()
	defer o.unlockAndDispatch()

	if err := o.checkPlayerTurn(); err != nil {
		return err
	}
	for _, m := range o.player.Moves {
		if m.HasPP() {
			return ErrMovesRemaining
		}
	}

	msg := o.player.Name + " has no moves left!"
	o.log = append(o.log, msg)
	o.emit(Event{Kind: EventSkipped, Side: SidePlayer, Message: msg})
	o.endTurn(SidePlayer)
	return nil
}

// Reset discards the current battle. Any scheduled opponent move becomes a
// no-op.
func (o *Orchestrator) Reset() {
	o.mu.Lock()
	defer o.unlockAndDispatch()

	o.stopPending()
	if o.phase.InProgress() {
		o.logger.Info("battle reset", zap.String("battle_id", o.id))
	}
	o.emit(Event{Kind: EventReset})
	o.id = ""
	o.phase = PhaseNotStarted
	o.player = nil
	o.opponent = nil
	o.log = nil
	o.turnCount = 0
	o.winner = SideNone
}

// Snapshot returns a deep copy of the current state.
func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()

	snap := Snapshot{
		ID:        o.id,
		Phase:     o.phase,
		TurnCount: o.turnCount,
		Complete:  o.phase == PhaseComplete,
		Winner:    o.winner,
		Player:    viewOf(o.player),
		Opponent:  viewOf(o.opponent),
		Log:       append([]string(nil), o.log...),
	}
	switch o.phase {
	case PhasePlayerTurn:
		snap.Turn = SidePlayer
	case PhaseOpponentTurn:
		snap.Turn = SideOpponent
	}
	return snap
}

// Phase returns the current phase.
func (o *Orchestrator) Phase() Phase {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.phase
}

func (o *Orchestrator) checkPlayerTurn() error {
	switch o.phase {
	case PhaseNotStarted:
		return ErrNotStarted
	case PhaseComplete:
		return ErrBattleComplete
	case PhaseResolving:
		return ErrResolving
	case PhaseOpponentTurn:
		return ErrNotPlayerTurn
	}
	return nil
}

// scheduleOpponent arranges the opponent's turn for the current battle. The
// callback re-reads state under the lock and does nothing if the battle it
// was scheduled for is gone or no longer waiting on the opponent.
func (o *Orchestrator) scheduleOpponent() {
	if o.delay <= 0 {
		o.opponentTurn()
		return
	}

	id := o.id
	o.pending = o.afterFunc(o.delay, func() {
		o.mu.Lock()
		defer o.unlockAndDispatch()

		if o.id != id || o.phase != PhaseOpponentTurn {
			o.logger.Debug("stale opponent turn ignored", zap.String("battle_id", id))
			return
		}
		o.pending = nil
		o.opponentTurn()
	})
}

func (o *Orchestrator) stopPending() {
	if o.pending != nil {
		o.pending.Stop()
		o.pending = nil
	}
}

// opponentTurn runs with the lock held.
func (o *Orchestrator) opponentTurn() {
	defer func() {
		if r := recover(); r != nil {
			o.recoverTurn(r)
		}
	}()

	o.phase = PhaseResolving

	var usable []*gamedata.Move
	for _, m := range o.opponent.Moves {
		if o.engine.CanUseMove(o.opponent, m) {
			usable = append(usable, m)
		}
	}

	var move *gamedata.Move
	if len(usable) > 0 {
		move = o.policy(o.rng, usable, o.player)
	}
	if move == nil {
		msg := o.opponent.Name + " has no available moves!"
		o.log = append(o.log, msg)
		o.emit(Event{Kind: EventSkipped, Side: SideOpponent, Message: msg})
		o.endTurn(SideOpponent)
		return
	}

	o.resolve(o.ctx, SideOpponent, move)
	o.endTurn(SideOpponent)
}

// resolve executes move for side and applies it to the other side.
func (o *Orchestrator) resolve(ctx context.Context, side Side, move *gamedata.Move) combat.MoveResult {
	attacker, defender := o.combatant(side), o.combatant(side.Other())

	tracer := telemetry.Tracer("battle")
	_, span := tracer.Start(ctx, "battle.turn")
	defer span.End()

	result := o.engine.ExecuteMove(attacker, defender, move)
	lost := combat.ApplyResult(defender, result)

	o.log = append(o.log, result.Message)
	if lost > 0 {
		o.log = append(o.log, fmt.Sprintf("%s took %d damage!", defender.Name, lost))
	}

	span.SetAttributes(
		attribute.String("battle_id", o.id),
		attribute.String("actor", attacker.Name),
		attribute.String("move", result.MoveID),
		attribute.Int("turn", o.turnCount),
		attribute.Int("damage", lost),
		attribute.Float64("effectiveness", result.Effectiveness),
		attribute.Bool("critical", result.Critical),
	)
	if result.StatusInflicted != gamedata.StatusNone {
		span.SetAttributes(attribute.String("status_applied", string(result.StatusInflicted)))
	}
	o.logger.Debug("move resolved",
		zap.String("battle_id", o.id),
		zap.String("side", string(side)),
		zap.String("move", result.MoveID),
		zap.Int("damage", lost),
		zap.Float64("effectiveness", result.Effectiveness),
		zap.Bool("critical", result.Critical),
	)

	r := result
	o.emit(Event{Kind: EventMove, Side: side, Message: result.Message, Result: &r})

	if defender.IsFainted() {
		o.finish(side)
	}
	return result
}

// endTurn runs the actor's status tick and hands the turn over, unless the
// battle already ended.
func (o *Orchestrator) endTurn(side Side) {
	if o.phase == PhaseComplete {
		return
	}

	actor := o.combatant(side)
	if tick, ok := combat.Tick(actor); ok {
		if tick.Message != "" {
			o.log = append(o.log, tick.Message)
			o.emit(Event{Kind: EventStatus, Side: side, Message: tick.Message})
		}
		if actor.IsFainted() {
			o.finish(side.Other())
			return
		}
	}

	o.turnCount++
	if side == SidePlayer {
		o.phase = PhaseOpponentTurn
		o.scheduleOpponent()
		return
	}
	o.phase = PhasePlayerTurn
}

func (o *Orchestrator) finish(winner Side) {
	loser := o.combatant(winner.Other())
	o.phase = PhaseComplete
	o.winner = winner
	o.stopPending()

	if winner == SidePlayer {
		o.log = append(o.log, loser.Name+" fainted!", "You won the battle!")
	} else {
		o.log = append(o.log, loser.Name+" fainted!", "You lost the battle...")
	}

	tracer := telemetry.Tracer("battle")
	_, span := tracer.Start(o.ctx, "battle.end")
	span.SetAttributes(
		attribute.String("battle_id", o.id),
		attribute.String("winner", string(winner)),
		attribute.Int("turns_taken", o.turnCount),
		attribute.Int("winner_hp_remaining", o.combatant(winner).HP),
	)
	span.End()

	o.logger.Info("battle complete",
		zap.String("battle_id", o.id),
		zap.String("winner", string(winner)),
		zap.Int("turns", o.turnCount),
	)
	o.emit(Event{Kind: EventComplete, Side: winner, Winner: winner, Message: o.log[len(o.log)-1]})
}

// recoverTurn returns control to the player after a panic during
// resolution so the battle cannot get stuck.
func (o *Orchestrator) recoverTurn(r any) {
	o.logger.Error("move resolution panicked",
		zap.String("battle_id", o.id),
		zap.Any("panic", r),
	)
	msg := "Something went wrong! It's your turn."
	o.log = append(o.log, msg)
	if o.phase != PhaseComplete {
		o.phase = PhasePlayerTurn
	}
	o.emit(Event{Kind: EventError, Side: SidePlayer, Message: msg})
}

func (o *Orchestrator) combatant(side Side) *entity.Pokemon {
	if side == SidePlayer {
		return o.player
	}
	return o.opponent
}

func (o *Orchestrator) emit(e Event) {
	e.BattleID = o.id
	e.Turn = o.turnCount
	o.outbox = append(o.outbox, e)
}

// unlockAndDispatch releases the lock and then delivers queued events.
func (o *Orchestrator) unlockAndDispatch() {
	events := o.outbox
	o.outbox = nil
	listeners := append([]func(Event){}, o.listeners...)
	o.mu.Unlock()

	for _, e := range events {
		for _, fn := range listeners {
			fn(e)
		}
	}
}
