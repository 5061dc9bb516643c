package combat

import (
	"math"

	"github.com/samdwyer/pokebattle/internal/element"
	"github.com/samdwyer/pokebattle/internal/gamedata"
)

const (
	stabMultiplier     = 1.5
	critMultiplier     = 1.5
	critChance         = 1.0 / 16
	burnPhysicalFactor = 0.5
	minRandomFactor    = 0.85
	randomFactorSpread = 0.15

	wakeChance     = 1.0 / 3
	thawChance     = 1.0 / 5
	paralysisMoves = 3.0 / 4
)

// Rand is the random source the engine samples from. *math/rand.Rand
// satisfies it; tests substitute a scripted source.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// MoveResult contains the outcome of executing one move.
type MoveResult struct {
	Attacker        string
	Defender        string
	MoveID          string
	MoveName        string
	Damage          int
	Effectiveness   float64
	Tier            element.Tier
	Critical        bool
	StatusInflicted gamedata.StatusEffectType
	StatusDuration  int
	Message         string
}

// Engine calculates move outcomes. It holds no battle state; every random
// decision is sampled fresh from its Rand.
type Engine struct {
	rng Rand
}

// NewEngine creates an engine drawing randomness from rng.
func NewEngine(rng Rand) *Engine {
	return &Engine{rng: rng}
}

// TypeEffectiveness returns the composed multiplier of moveType against the
// defender's types. The damage path uses the same function.
func TypeEffectiveness(moveType element.Type, defenderTypes []element.Type) float64 {
	return element.Effectiveness(moveType, defenderTypes)
}

// BaseDamage returns the deterministic part of the damage formula: the
// floored level/power/stat term multiplied by STAB and type effectiveness,
// before the random factor, burn and critical hits. Status moves return 0.
func BaseDamage(attacker, defender Combatant, move *gamedata.MoveDef) float64 {
	if !move.IsDamaging() {
		return 0
	}

	attack, defense := attacker.GetAttack(), defender.GetDefense()
	if move.Category == gamedata.CategorySpecial {
		attack, defense = attacker.GetSpecialAttack(), defender.GetSpecialDefense()
	}
	if defense < 1 {
		defense = 1
	}

	level := float64(attacker.GetLevel())
	base := math.Floor(((2*level/5+2)*float64(move.BasePower())*float64(attack)/float64(defense))/50 + 2)

	stab := 1.0
	if element.Contains(attacker.GetTypes(), move.Type) {
		stab = stabMultiplier
	}

	return base * stab * TypeEffectiveness(move.Type, defender.GetTypes())
}

// CanUseMove reports whether c may use move this attempt. A move without PP
// is rejected before any random draw. Sleep, freeze and paralysis gate the
// move with a fresh roll on every call; the result must not be cached.
func (e *Engine) CanUseMove(c Combatant, move *gamedata.Move) bool {
	if move == nil || move.CurrentPP <= 0 {
		return false
	}

	effect, ok := c.Status()
	if !ok {
		return true
	}
	switch effect.Type {
	case gamedata.StatusSleep:
		return e.rng.Float64() < wakeChance
	case gamedata.StatusFreeze:
		return e.rng.Float64() < thawChance
	case gamedata.StatusParalysis:
		return e.rng.Float64() < paralysisMoves
	default:
		return true
	}
}

// BlockedMessage explains why c could not use move. It reads state only.
func BlockedMessage(c Combatant, move *gamedata.Move) string {
	if move == nil {
		return c.GetName() + " has no move in that slot!"
	}
	if move.CurrentPP <= 0 {
		return c.GetName() + " has no PP left for " + move.Name() + "!"
	}
	effect, _ := c.Status()
	switch effect.Type {
	case gamedata.StatusSleep:
		return c.GetName() + " is fast asleep and can't use " + move.Name() + "!"
	case gamedata.StatusFreeze:
		return c.GetName() + " is frozen solid and can't use " + move.Name() + "!"
	case gamedata.StatusParalysis:
		return c.GetName() + " is fully paralyzed and can't use " + move.Name() + "!"
	default:
		return c.GetName() + " can't use " + move.Name() + "!"
	}
}

// ExecuteMove resolves move from attacker against defender and spends one PP.
// It does not change either combatant's HP or status; ApplyResult does.
// Call it only after CanUseMove has allowed the move.
//
// Random draws happen in a fixed order: damage variance, critical hit, then
// the secondary status roll when one is possible.
func (e *Engine) ExecuteMove(attacker, defender Combatant, move *gamedata.Move) MoveResult {
	def := move.Def
	move.Spend()

	result := MoveResult{
		Attacker:      attacker.GetName(),
		Defender:      defender.GetName(),
		MoveID:        def.ID,
		MoveName:      def.Name,
		Effectiveness: 1,
		Tier:          element.TierNeutral,
	}
	lines := []string{attacker.GetName() + " used " + def.Name + "!"}

	if def.IsDamaging() {
		effectiveness := TypeEffectiveness(def.Type, defender.GetTypes())
		randomFactor := minRandomFactor + e.rng.Float64()*randomFactorSpread
		damage := int(math.Floor(BaseDamage(attacker, defender, def) * randomFactor))

		if def.Category == gamedata.CategoryPhysical && HasStatus(attacker, gamedata.StatusBurn) {
			damage = int(math.Floor(float64(damage) * burnPhysicalFactor))
		}

		critical := e.rng.Float64() < critChance
		if critical {
			damage = int(math.Floor(float64(damage) * critMultiplier))
		}

		result.Damage = damage
		result.Effectiveness = effectiveness
		result.Tier = element.TierOf(effectiveness)
		result.Critical = critical

		if msg := result.Tier.Message(); msg != "" {
			lines = append(lines, msg)
		}
		if critical {
			lines = append(lines, "A critical hit!")
		}
	} else if def.InflictsStatus() {
		// Status moves still respect type immunity.
		if TypeEffectiveness(def.Type, defender.GetTypes()) == 0 {
			result.Effectiveness = 0
			result.Tier = element.TierImmune
			lines = append(lines, result.Tier.Message())
		}
	}

	if e.rollStatus(defender, def, result.Damage) {
		result.StatusInflicted = def.StatusEffect
		result.StatusDuration = def.StatusDuration
		lines = append(lines, inflictedMessage(defender.GetName(), def.StatusEffect))
	}

	result.Message = joinLines(lines...)
	return result
}

// rollStatus decides whether the move's status lands. No roll is made when
// the move has no status, the defender already has one or would faint from
// the hit, or the defender's types are immune to the move.
func (e *Engine) rollStatus(defender Combatant, def *gamedata.MoveDef, damage int) bool {
	if !def.InflictsStatus() || def.StatusDuration <= 0 {
		return false
	}
	if _, ok := defender.Status(); ok {
		return false
	}
	if def.IsDamaging() && damage >= defender.GetHP() {
		return false
	}
	if TypeEffectiveness(def.Type, defender.GetTypes()) == 0 {
		return false
	}
	return e.rng.Intn(100) < def.StatusChance
}

// ApplyResult applies a resolved move to the defender: damage clamped so HP
// never drops below 0, then any inflicted status if the defender is still
// standing. Returns the HP actually lost.
func ApplyResult(defender Combatant, result MoveResult) int {
	lost := defender.TakeDamage(result.Damage)
	if result.StatusInflicted != gamedata.StatusNone && !defender.IsFainted() {
		Inflict(defender, StatusEffect{
			Type:           result.StatusInflicted,
			TurnsRemaining: result.StatusDuration,
		})
	}
	return lost
}
