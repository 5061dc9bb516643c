// Package battle sequences a one-on-one battle between the player and a
// computer-controlled opponent. The Orchestrator owns the authoritative
// state and is safe for use from the UI goroutine and timer callbacks.
package battle

import (
	"github.com/samdwyer/pokebattle/internal/combat"
	"github.com/samdwyer/pokebattle/internal/element"
	"github.com/samdwyer/pokebattle/internal/entity"
	"github.com/samdwyer/pokebattle/internal/gamedata"
)

// Phase represents where the battle state machine is.
type Phase int

const (
	// PhaseNotStarted - no battle, or reset
	PhaseNotStarted Phase = iota
	// PhasePlayerTurn - waiting for the player to pick a move
	PhasePlayerTurn
	// PhaseOpponentTurn - opponent move is scheduled
	PhaseOpponentTurn
	// PhaseResolving - a move is being resolved
	PhaseResolving
	// PhaseComplete - one side fainted
	PhaseComplete
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not_started"
	case PhasePlayerTurn:
		return "player_turn"
	case PhaseOpponentTurn:
		return "opponent_turn"
	case PhaseResolving:
		return "resolving"
	case PhaseComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// InProgress reports whether the battle has started and not finished.
func (p Phase) InProgress() bool {
	return p == PhasePlayerTurn || p == PhaseOpponentTurn || p == PhaseResolving
}

// Side identifies one of the two combatants.
type Side string

const (
	SideNone     Side = ""
	SidePlayer   Side = "player"
	SideOpponent Side = "opponent"
)

// Other returns the opposing side.
func (s Side) Other() Side {
	switch s {
	case SidePlayer:
		return SideOpponent
	case SideOpponent:
		return SidePlayer
	default:
		return SideNone
	}
}

// MoveView is a read-only copy of one loadout slot.
type MoveView struct {
	ID       string
	Name     string
	Type     element.Type
	Category gamedata.MoveCategory
	Power    int
	PP       int
	MaxPP    int
}

// CombatantView is a read-only copy of a combatant for rendering.
type CombatantView struct {
	Name        string
	Types       []element.Type
	Image       string
	Level       int
	HP          int
	MaxHP       int
	Status      gamedata.StatusEffectType
	StatusTurns int
	Moves       []MoveView
}

// Snapshot is a deep copy of the battle state. Mutating it has no effect on
// the orchestrator.
type Snapshot struct {
	ID        string
	Phase     Phase
	Turn      Side
	TurnCount int
	Complete  bool
	Winner    Side
	Player    CombatantView
	Opponent  CombatantView
	Log       []string
}

func viewOf(p *entity.Pokemon) CombatantView {
	if p == nil {
		return CombatantView{}
	}
	view := CombatantView{
		Name:  p.Name,
		Types: append([]element.Type(nil), p.Types...),
		Image: p.Image,
		Level: p.Level,
		HP:    p.HP,
		MaxHP: p.GetMaxHP(),
		Moves: make([]MoveView, 0, len(p.Moves)),
	}
	if effect, ok := p.Status(); ok {
		view.Status = effect.Type
		view.StatusTurns = effect.TurnsRemaining
	}
	for _, m := range p.Moves {
		view.Moves = append(view.Moves, MoveView{
			ID:       m.Def.ID,
			Name:     m.Def.Name,
			Type:     m.Def.Type,
			Category: m.Def.Category,
			Power:    m.Def.BasePower(),
			PP:       m.CurrentPP,
			MaxPP:    m.Def.PP,
		})
	}
	return view
}

// EventKind names something that happened in a battle.
type EventKind string

const (
	EventStarted  EventKind = "started"
	EventMove     EventKind = "move"
	EventUnusable EventKind = "unusable"
	EventSkipped  EventKind = "skipped"
	EventStatus   EventKind = "status"
	EventComplete EventKind = "complete"
	EventReset    EventKind = "reset"
	EventError    EventKind = "error"
)

// Event is delivered to subscribers after the state lock is released.
type Event struct {
	Kind     EventKind
	BattleID string
	Side     Side
	Turn     int
	Message  string
	Result   *combat.MoveResult // set for EventMove
	Winner   Side               // set for EventComplete
}
