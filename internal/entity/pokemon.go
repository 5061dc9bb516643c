// Package entity provides the battle-ready Pokémon combatant.
package entity

import (
	"github.com/samdwyer/pokebattle/internal/combat"
	"github.com/samdwyer/pokebattle/internal/element"
	"github.com/samdwyer/pokebattle/internal/gamedata"
)

// DefaultLevel is the fixed level used when none is configured.
const DefaultLevel = 50

// Pokemon is a roster record instantiated for one battle. It owns its move
// loadout; PP and HP changes never leak into the roster or other battles.
type Pokemon struct {
	Def   *gamedata.PokemonDef
	Name  string
	Types []element.Type
	Image string
	Level int
	Stats gamedata.BaseStats

	HP     int // clamped to [0, Stats.HP]
	Moves  []*gamedata.Move
	status *combat.StatusEffect
}

// NewPokemon creates a combatant at full HP with a fresh loadout from catalog.
func NewPokemon(def *gamedata.PokemonDef, level int, catalog *gamedata.MoveCatalog) *Pokemon {
	if level <= 0 {
		level = DefaultLevel
	}
	types := make([]element.Type, len(def.Types))
	copy(types, def.Types)

	return &Pokemon{
		Def:   def,
		Name:  def.DisplayName(),
		Types: types,
		Image: def.ImageURL(),
		Level: level,
		Stats: def.Stats,
		HP:    def.Stats.HP,
		Moves: catalog.ForTypes(types),
	}
}

// Move returns the move in slot, or nil when slot is out of range.
func (p *Pokemon) Move(slot int) *gamedata.Move {
	if slot < 0 || slot >= len(p.Moves) {
		return nil
	}
	return p.Moves[slot]
}

// =============================================================================
// Combatant interface implementation
// =============================================================================

// GetName returns the display name.
func (p *Pokemon) GetName() string { return p.Name }

// GetTypes returns the elemental types.
func (p *Pokemon) GetTypes() []element.Type { return p.Types }

// GetLevel returns the battle level.
func (p *Pokemon) GetLevel() int { return p.Level }

// IsFainted returns true once HP reaches 0.
func (p *Pokemon) IsFainted() bool { return p.HP <= 0 }

// GetHP returns current HP.
func (p *Pokemon) GetHP() int { return p.HP }

// GetMaxHP returns maximum HP.
func (p *Pokemon) GetMaxHP() int { return p.Stats.HP }

// GetAttack returns the attack stat.
func (p *Pokemon) GetAttack() int { return p.Stats.Attack }

// GetDefense returns the defense stat.
func (p *Pokemon) GetDefense() int { return p.Stats.Defense }

// GetSpecialAttack returns the special attack stat.
func (p *Pokemon) GetSpecialAttack() int { return p.Stats.SpecialAttack }

// GetSpecialDefense returns the special defense stat.
func (p *Pokemon) GetSpecialDefense() int { return p.Stats.SpecialDefense }

// GetSpeed returns the speed stat.
func (p *Pokemon) GetSpeed() int { return p.Stats.Speed }

// GetMoves returns the move loadout.
func (p *Pokemon) GetMoves() []*gamedata.Move { return p.Moves }

// TakeDamage reduces HP and returns actual damage taken.
func (p *Pokemon) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := amount
	if actual > p.HP {
		actual = p.HP
	}
	p.HP -= actual
	return actual
}

// Status returns the active status condition, if any.
func (p *Pokemon) Status() (combat.StatusEffect, bool) {
	if p.status == nil {
		return combat.StatusEffect{}, false
	}
	return *p.status, true
}

// SetStatus replaces the active status condition.
func (p *Pokemon) SetStatus(effect combat.StatusEffect) {
	p.status = &effect
}

// ClearStatus removes the active status condition.
func (p *Pokemon) ClearStatus() {
	p.status = nil
}

// Ensure Pokemon implements combat.Combatant
var _ combat.Combatant = (*Pokemon)(nil)
