// Package element defines the eighteen elemental types and the type-effectiveness chart.
package element

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Type is an elemental type tag attached to Pokémon and moves.
type Type string

const (
	Normal   Type = "normal"
	Fire     Type = "fire"
	Water    Type = "water"
	Electric Type = "electric"
	Grass    Type = "grass"
	Ice      Type = "ice"
	Fighting Type = "fighting"
	Poison   Type = "poison"
	Ground   Type = "ground"
	Flying   Type = "flying"
	Psychic  Type = "psychic"
	Bug      Type = "bug"
	Rock     Type = "rock"
	Ghost    Type = "ghost"
	Dragon   Type = "dragon"
	Dark     Type = "dark"
	Steel    Type = "steel"
	Fairy    Type = "fairy"
)

// ErrUnknownType is returned by Parse for names outside the eighteen types.
var ErrUnknownType = errors.New("unknown elemental type")

var all = []Type{
	Normal, Fire, Water, Electric, Grass, Ice, Fighting, Poison, Ground,
	Flying, Psychic, Bug, Rock, Ghost, Dragon, Dark, Steel, Fairy,
}

// All returns the eighteen types in canonical chart order.
func All() []Type {
	out := make([]Type, len(all))
	copy(out, all)
	return out
}

// Valid reports whether t is one of the eighteen known types.
func (t Type) Valid() bool {
	for _, known := range all {
		if t == known {
			return true
		}
	}
	return false
}

// String returns the lowercase tag.
func (t Type) String() string {
	return string(t)
}

// DisplayName returns the title-cased name used in battle narration (e.g. "Fire").
func (t Type) DisplayName() string {
	return cases.Title(language.English).String(string(t))
}

// Parse converts a case-insensitive type name into a Type.
func Parse(name string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(name)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownType, name)
	}
	return t, nil
}

// ParseList parses a comma-separated list such as "steel,flying".
func ParseList(names string) ([]Type, error) {
	parts := strings.Split(names, ",")
	types := make([]Type, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		t, err := Parse(part)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, nil
}

// Contains reports whether types includes t.
func Contains(types []Type, t Type) bool {
	for _, candidate := range types {
		if candidate == t {
			return true
		}
	}
	return false
}
