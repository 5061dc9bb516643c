// Package combat resolves moves between two combatants: damage, type
// effectiveness, move usability and status conditions.
package combat

import (
	"github.com/samdwyer/pokebattle/internal/element"
	"github.com/samdwyer/pokebattle/internal/gamedata"
)

// Combatant is the interface for a Pokémon taking part in a battle.
type Combatant interface {
	// Identity
	GetName() string
	GetTypes() []element.Type
	GetLevel() int
	IsFainted() bool

	// Stats
	GetHP() int
	GetMaxHP() int
	GetAttack() int
	GetDefense() int
	GetSpecialAttack() int
	GetSpecialDefense() int
	GetSpeed() int

	// Mutations
	TakeDamage(amount int) int // Returns actual damage taken; HP floors at 0

	// Moves
	GetMoves() []*gamedata.Move

	// Status: at most one active condition
	Status() (StatusEffect, bool)
	SetStatus(effect StatusEffect)
	ClearStatus()
}

// StatusEffect is the single active status condition on a combatant.
type StatusEffect struct {
	Type           gamedata.StatusEffectType
	TurnsRemaining int
}

// StatusTick describes what a status condition did at the end of a turn.
type StatusTick struct {
	Type    gamedata.StatusEffectType
	Damage  int
	Ended   bool
	Message string
}

// HasStatus reports whether c carries the given condition.
func HasStatus(c Combatant, status gamedata.StatusEffectType) bool {
	effect, ok := c.Status()
	return ok && effect.Type == status
}

// Inflict attaches effect to c unless c already has a condition.
// Returns false when the effect was not applied.
func Inflict(c Combatant, effect StatusEffect) bool {
	if effect.Type == gamedata.StatusNone || effect.TurnsRemaining <= 0 {
		return false
	}
	if _, ok := c.Status(); ok {
		return false
	}
	c.SetStatus(effect)
	return true
}

// Tick processes c's status at the end of its turn. Burn and poison deal
// floor(maxHP/8) damage; every condition counts down and is cleared at 0.
// Returns false when c has no status.
func Tick(c Combatant) (StatusTick, bool) {
	effect, ok := c.Status()
	if !ok {
		return StatusTick{}, false
	}

	tick := StatusTick{Type: effect.Type}
	switch effect.Type {
	case gamedata.StatusBurn:
		tick.Damage = c.TakeDamage(c.GetMaxHP() / 8)
		tick.Message = c.GetName() + " is hurt by its burn!"
	case gamedata.StatusPoison:
		tick.Damage = c.TakeDamage(c.GetMaxHP() / 8)
		tick.Message = c.GetName() + " is hurt by poison!"
	}

	effect.TurnsRemaining--
	if effect.TurnsRemaining <= 0 {
		c.ClearStatus()
		tick.Ended = true
		tick.Message = joinLines(tick.Message, recoveredMessage(c.GetName(), effect.Type))
	} else {
		c.SetStatus(effect)
	}
	return tick, true
}

func inflictedMessage(name string, status gamedata.StatusEffectType) string {
	switch status {
	case gamedata.StatusBurn:
		return name + " was burned!"
	case gamedata.StatusPoison:
		return name + " was poisoned!"
	case gamedata.StatusParalysis:
		return name + " is paralyzed! It may be unable to move!"
	case gamedata.StatusSleep:
		return name + " fell asleep!"
	case gamedata.StatusFreeze:
		return name + " was frozen solid!"
	default:
		return ""
	}
}

func recoveredMessage(name string, status gamedata.StatusEffectType) string {
	switch status {
	case gamedata.StatusBurn:
		return name + "'s burn was healed."
	case gamedata.StatusPoison:
		return name + " was cured of its poisoning."
	case gamedata.StatusParalysis:
		return name + " was cured of paralysis."
	case gamedata.StatusSleep:
		return name + " woke up!"
	case gamedata.StatusFreeze:
		return name + " thawed out!"
	default:
		return ""
	}
}

func joinLines(parts ...string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += " "
		}
		out += p
	}
	return out
}
