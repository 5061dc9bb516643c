package element

// chart lists every non-neutral (attacker, defender) pair. Absent pairs are 1.
var chart = map[Type]map[Type]float64{
	Normal: {Rock: 0.5, Ghost: 0, Steel: 0.5},
	Fire: {
		Fire: 0.5, Water: 0.5, Grass: 2, Ice: 2, Bug: 2, Rock: 0.5, Dragon: 0.5, Steel: 2,
	},
	Water: {Fire: 2, Water: 0.5, Grass: 0.5, Ground: 2, Rock: 2, Dragon: 0.5},
	Electric: {
		Water: 2, Electric: 0.5, Grass: 0.5, Ground: 0, Flying: 2, Dragon: 0.5, Steel: 0.5,
	},
	Grass: {
		Fire: 0.5, Water: 2, Grass: 0.5, Poison: 0.5, Ground: 2, Flying: 0.5,
		Bug: 0.5, Rock: 2, Dragon: 0.5, Steel: 0.5,
	},
	Ice: {
		Fire: 0.5, Water: 0.5, Grass: 2, Ice: 0.5, Ground: 2, Flying: 2, Dragon: 2, Steel: 0.5,
	},
	Fighting: {
		Normal: 2, Ice: 2, Poison: 0.5, Flying: 0.5, Psychic: 0.5, Bug: 0.5,
		Rock: 2, Ghost: 0, Dark: 2, Steel: 2, Fairy: 0.5,
	},
	Poison: {
		Grass: 2, Poison: 0.5, Ground: 0.5, Rock: 0.5, Ghost: 0.5, Steel: 0, Fairy: 2,
	},
	Ground: {
		Fire: 2, Electric: 2, Grass: 0.5, Poison: 2, Flying: 0, Bug: 0.5, Rock: 2, Steel: 2,
	},
	Flying:  {Electric: 0.5, Grass: 2, Fighting: 2, Bug: 2, Rock: 0.5, Steel: 0.5},
	Psychic: {Fighting: 2, Poison: 2, Psychic: 0.5, Dark: 0, Steel: 0.5},
	Bug: {
		Fire: 0.5, Grass: 2, Fighting: 0.5, Poison: 0.5, Flying: 0.5, Psychic: 2,
		Ghost: 0.5, Dark: 2, Steel: 0.5, Fairy: 0.5,
	},
	Rock: {
		Fire: 2, Ice: 2, Fighting: 0.5, Ground: 0.5, Flying: 2, Bug: 2, Steel: 0.5,
	},
	Ghost:  {Normal: 0, Psychic: 2, Ghost: 2, Dark: 0.5},
	Dragon: {Dragon: 2, Steel: 0.5, Fairy: 0},
	Dark:   {Fighting: 0.5, Psychic: 2, Ghost: 2, Dark: 0.5, Fairy: 0.5},
	Steel: {
		Fire: 0.5, Water: 0.5, Electric: 0.5, Ice: 2, Rock: 2, Steel: 0.5, Fairy: 2,
	},
	Fairy: {Fire: 0.5, Fighting: 2, Poison: 0.5, Dragon: 2, Dark: 2, Steel: 0.5},
}

// Multiplier returns the single-pair multiplier of attack against defend:
// one of 0, 0.5, 1 or 2. Unknown pairs are neutral.
func Multiplier(attack, defend Type) float64 {
	row, ok := chart[attack]
	if !ok {
		return 1
	}
	m, ok := row[defend]
	if !ok {
		return 1
	}
	return m
}

// Effectiveness returns the product of Multiplier(attack, d) over every
// defending type. An attack of fire against grass/bug yields 4.
func Effectiveness(attack Type, defenders []Type) float64 {
	result := 1.0
	for _, d := range defenders {
		result *= Multiplier(attack, d)
	}
	return result
}

// Tier classifies a composed multiplier for narration.
type Tier int

const (
	TierNeutral Tier = iota
	TierSuperEffective
	TierNotVeryEffective
	TierImmune
)

// TierOf classifies multiplier, checking super-effective first, then immune,
// then resisted.
func TierOf(multiplier float64) Tier {
	switch {
	case multiplier > 1:
		return TierSuperEffective
	case multiplier == 0:
		return TierImmune
	case multiplier < 1:
		return TierNotVeryEffective
	default:
		return TierNeutral
	}
}

// String returns a short tier name.
func (t Tier) String() string {
	switch t {
	case TierNeutral:
		return "neutral"
	case TierSuperEffective:
		return "super_effective"
	case TierNotVeryEffective:
		return "not_very_effective"
	case TierImmune:
		return "immune"
	default:
		return "unknown"
	}
}

// Message returns the narration line for the tier, or "" when neutral.
func (t Tier) Message() string {
	switch t {
	case TierSuperEffective:
		return "It's super effective!"
	case TierNotVeryEffective:
		return "It's not very effective..."
	case TierImmune:
		return "It had no effect!"
	default:
		return ""
	}
}
