package battle

import (
	"github.com/samdwyer/pokebattle/internal/combat"
	"github.com/samdwyer/pokebattle/internal/element"
	"github.com/samdwyer/pokebattle/internal/gamedata"
)

// Policy picks the opponent's move from the moves that passed CanUseMove.
// Returning nil skips the turn.
type Policy func(rng combat.Rand, usable []*gamedata.Move, target combat.Combatant) *gamedata.Move

// PreferSuperEffective is the default opponent policy: a random
// super-effective move if there is one, otherwise any random usable move.
func PreferSuperEffective(rng combat.Rand, usable []*gamedata.Move, target combat.Combatant) *gamedata.Move {
	if len(usable) == 0 {
		return nil
	}
	types := make([]element.Type, len(usable))
	for i, m := range usable {
		types[i] = m.Type()
	}
	return usable[ChooseIndex(rng, types, target.GetTypes())]
}

// ChooseIndex returns an index into moveTypes. Indices whose type is
// super-effective against defender are chosen uniformly when present;
// otherwise any index is. moveTypes must not be empty.
func ChooseIndex(rng combat.Rand, moveTypes []element.Type, defender []element.Type) int {
	var super []int
	for i, t := range moveTypes {
		if combat.TypeEffectiveness(t, defender) > 1 {
			super = append(super, i)
		}
	}
	if len(super) > 0 {
		return super[rng.Intn(len(super))]
	}
	return rng.Intn(len(moveTypes))
}
