package gamedata

import (
	"math/rand"
	"strings"

	"github.com/samdwyer/pokebattle/internal/element"
)

// MoveCatalog holds the ordered move templates and builds loadouts from them.
// Catalog order is stable and decides ties during loadout selection.
type MoveCatalog struct {
	moves       map[string]*MoveDef
	all         []MoveDef
	defaultMove *MoveDef
}

// NewMoveCatalog creates a catalog. defaultID names the universal fallback
// move; if it is missing the first move is used.
func NewMoveCatalog(moves []MoveDef, defaultID string) *MoveCatalog {
	catalog := &MoveCatalog{
		moves: make(map[string]*MoveDef, len(moves)),
		all:   moves,
	}
	for i := range moves {
		catalog.moves[moves[i].ID] = &moves[i]
	}
	catalog.defaultMove = catalog.moves[defaultID]
	if catalog.defaultMove == nil && len(moves) > 0 {
		catalog.defaultMove = &moves[0]
	}
	return catalog
}

// LoadMoveCatalog loads and creates a catalog from the embedded moves.json.
func LoadMoveCatalog() (*MoveCatalog, error) {
	file, err := LoadMoves()
	if err != nil {
		return nil, err
	}
	return NewMoveCatalog(file.Moves, file.DefaultMove), nil
}

// MustLoadMoveCatalog loads the catalog, panicking on error.
func MustLoadMoveCatalog() *MoveCatalog {
	catalog, err := LoadMoveCatalog()
	if err != nil {
		panic(err)
	}
	return catalog
}

// GetByID returns the move template with the given ID, or nil if not found.
func (c *MoveCatalog) GetByID(id string) *MoveDef {
	return c.moves[id]
}

// Default returns the universal fallback move.
func (c *MoveCatalog) Default() *MoveDef {
	return c.defaultMove
}

// All returns all move templates in catalog order.
func (c *MoveCatalog) All() []MoveDef {
	return c.all
}

// Count returns the number of move templates in the catalog.
func (c *MoveCatalog) Count() int {
	return len(c.all)
}

// ForTypes assembles a LoadoutSize-move loadout for a combatant with the given
// types:
//  1. for each type in order, the first unselected catalog move of that type;
//  2. then any other unselected move matching one of the types, falling back
//     to the default move once none remain;
//  3. then the default move repeated until the loadout is full.
//
// Every returned Move is a fresh instance with full PP.
func (c *MoveCatalog) ForTypes(types []element.Type) []*Move {
	selected := make([]*MoveDef, 0, LoadoutSize)
	used := make(map[string]bool, LoadoutSize)

	pick := func(match func(*MoveDef) bool) bool {
		for i := range c.all {
			def := &c.all[i]
			if used[def.ID] || !match(def) {
				continue
			}
			selected = append(selected, def)
			used[def.ID] = true
			return true
		}
		return false
	}

	for _, t := range types {
		if len(selected) >= LoadoutSize {
			break
		}
		pick(func(def *MoveDef) bool { return def.Type == t })
	}

	for len(selected) < LoadoutSize {
		if pick(func(def *MoveDef) bool { return element.Contains(types, def.Type) }) {
			continue
		}
		if c.defaultMove != nil && !used[c.defaultMove.ID] {
			selected = append(selected, c.defaultMove)
			used[c.defaultMove.ID] = true
		}
		break
	}

	// Padding may repeat the default move.
	for len(selected) < LoadoutSize && c.defaultMove != nil {
		selected = append(selected, c.defaultMove)
	}

	loadout := make([]*Move, len(selected))
	for i, def := range selected {
		loadout[i] = NewMove(def)
	}
	return loadout
}

// =============================================================================
// Roster
// =============================================================================

// Roster holds the combat-eligible Pokémon records.
type Roster struct {
	all []PokemonDef
}

// NewRoster creates a roster from loaded records.
func NewRoster(pokemon []PokemonDef) *Roster {
	return &Roster{all: pokemon}
}

// LoadRoster loads and creates a roster from the embedded roster.json.
func LoadRoster() (*Roster, error) {
	pokemon, err := LoadPokemon()
	if err != nil {
		return nil, err
	}
	return NewRoster(pokemon), nil
}

// MustLoadRoster loads a roster, panicking on error.
func MustLoadRoster() *Roster {
	roster, err := LoadRoster()
	if err != nil {
		panic(err)
	}
	return roster
}

// GetByID returns the record with the given Pokédex number, or nil.
func (r *Roster) GetByID(id int) *PokemonDef {
	for i := range r.all {
		if r.all[i].ID == id {
			return &r.all[i]
		}
	}
	return nil
}

// GetByName returns the record with the given case-insensitive name, or nil.
func (r *Roster) GetByName(name string) *PokemonDef {
	name = strings.ToLower(strings.TrimSpace(name))
	for i := range r.all {
		if r.all[i].Name == name {
			return &r.all[i]
		}
	}
	return nil
}

// Random selects a record uniformly at random.
func (r *Roster) Random(rng *rand.Rand) *PokemonDef {
	if len(r.all) == 0 {
		return nil
	}
	return &r.all[rng.Intn(len(r.all))]
}

// All returns all roster records.
func (r *Roster) All() []PokemonDef {
	return r.all
}

// Count returns the number of records in the roster.
func (r *Roster) Count() int {
	return len(r.all)
}
