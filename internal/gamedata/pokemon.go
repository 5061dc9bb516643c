package gamedata

import (
	"errors"
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/samdwyer/pokebattle/internal/element"
)

const spriteURLFormat = "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/%d.png"

// BaseStats are the six base stats of a species.
type BaseStats struct {
	HP             int `json:"hp"`
	Attack         int `json:"attack"`
	Defense        int `json:"defense"`
	SpecialAttack  int `json:"specialAttack"`
	SpecialDefense int `json:"specialDefense"`
	Speed          int `json:"speed"`
}

// PokemonDef is a combat-eligible roster record.
type PokemonDef struct {
	ID    int            `json:"id"`
	Name  string         `json:"name"`
	Types []element.Type `json:"types"`
	Image string         `json:"image,omitempty"`
	Stats BaseStats      `json:"stats"`
}

// DisplayName returns the title-cased species name (e.g. "Charizard").
func (p *PokemonDef) DisplayName() string {
	return cases.Title(language.English).String(p.Name)
}

// ImageURL returns the record's image, falling back to the PokéAPI sprite.
func (p *PokemonDef) ImageURL() string {
	if p.Image != "" {
		return p.Image
	}
	return fmt.Sprintf(spriteURLFormat, p.ID)
}

// RosterFile represents the structure of roster.json.
type RosterFile struct {
	Pokemon []PokemonDef `json:"pokemon"`
}

var errEmptyRoster = errors.New("roster has no pokemon")

// Validate checks types, stats and id uniqueness of every record.
func (f *RosterFile) Validate() error {
	if len(f.Pokemon) == 0 {
		return errEmptyRoster
	}
	seen := make(map[int]bool, len(f.Pokemon))
	for i := range f.Pokemon {
		p := &f.Pokemon[i]
		if seen[p.ID] {
			return fmt.Errorf("duplicate pokemon id %d", p.ID)
		}
		seen[p.ID] = true
		if len(p.Types) == 0 || len(p.Types) > 2 {
			return fmt.Errorf("pokemon %q: must have one or two types", p.Name)
		}
		for _, t := range p.Types {
			if !t.Valid() {
				return fmt.Errorf("pokemon %q: %w: %q", p.Name, element.ErrUnknownType, t)
			}
		}
		s := p.Stats
		if s.HP <= 0 || s.Attack <= 0 || s.Defense <= 0 || s.SpecialAttack <= 0 || s.SpecialDefense <= 0 || s.Speed <= 0 {
			return fmt.Errorf("pokemon %q: base stats must be positive", p.Name)
		}
	}
	return nil
}

// LoadPokemon loads roster records from the embedded roster.json.
func LoadPokemon() ([]PokemonDef, error) {
	file, err := Load[RosterFile]("roster.json")
	if err != nil {
		return nil, err
	}
	return file.Pokemon, nil
}
