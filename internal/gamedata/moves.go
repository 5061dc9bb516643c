package gamedata

import (
	"errors"
	"fmt"

	"github.com/samdwyer/pokebattle/internal/element"
)

// MoveCategory selects which attack and defense stats a move uses.
type MoveCategory string

const (
	CategoryPhysical MoveCategory = "physical"
	CategorySpecial  MoveCategory = "special"
	CategoryStatus   MoveCategory = "status"
)

// StatusEffectType is one of the five major status conditions.
type StatusEffectType string

const (
	StatusNone      StatusEffectType = ""
	StatusBurn      StatusEffectType = "burn"
	StatusPoison    StatusEffectType = "poison"
	StatusParalysis StatusEffectType = "paralysis"
	StatusSleep     StatusEffectType = "sleep"
	StatusFreeze    StatusEffectType = "freeze"
)

// Valid reports whether s is StatusNone or one of the five conditions.
func (s StatusEffectType) Valid() bool {
	switch s {
	case StatusNone, StatusBurn, StatusPoison, StatusParalysis, StatusSleep, StatusFreeze:
		return true
	default:
		return false
	}
}

// LoadoutSize is the number of moves every battle combatant carries.
const LoadoutSize = 4

// MoveDef is a static move template loaded from moves.json.
type MoveDef struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Type        element.Type `json:"type"`
	Category    MoveCategory `json:"category"`
	Power       *int         `json:"power"` // nil for status moves
	Accuracy    int          `json:"accuracy"`
	PP          int          `json:"pp"`
	Description string       `json:"description"`

	// Optional secondary effect. StatusChance is a percentage.
	StatusEffect   StatusEffectType `json:"statusEffect,omitempty"`
	StatusChance   int              `json:"statusChance,omitempty"`
	StatusDuration int              `json:"statusDuration,omitempty"`
}

// BasePower returns the move's power, or 0 when it has none.
func (m *MoveDef) BasePower() int {
	if m.Power == nil {
		return 0
	}
	return *m.Power
}

// IsDamaging reports whether the move goes through the damage formula.
func (m *MoveDef) IsDamaging() bool {
	return m.Category != CategoryStatus && m.Power != nil
}

// InflictsStatus reports whether the move can attach a status condition.
func (m *MoveDef) InflictsStatus() bool {
	return m.StatusEffect != StatusNone && m.StatusChance > 0
}

// Move is a move instance owned by one combatant. CurrentPP is private to
// that combatant and always stays within [0, Def.PP].
type Move struct {
	Def       *MoveDef
	CurrentPP int
}

// NewMove returns a fresh instance of def with full PP.
func NewMove(def *MoveDef) *Move {
	return &Move{Def: def, CurrentPP: def.PP}
}

// Name returns the template's display name.
func (m *Move) Name() string { return m.Def.Name }

// Type returns the template's elemental type.
func (m *Move) Type() element.Type { return m.Def.Type }

// HasPP reports whether at least one use remains.
func (m *Move) HasPP() bool { return m.CurrentPP > 0 }

// Spend consumes one PP, never going below zero. Returns false if none was left.
func (m *Move) Spend() bool {
	if m.CurrentPP <= 0 {
		m.CurrentPP = 0
		return false
	}
	m.CurrentPP--
	return true
}

// MovesFile represents the structure of moves.json.
type MovesFile struct {
	DefaultMove string    `json:"defaultMove"`
	Moves       []MoveDef `json:"moves"`
}

var errNoDefaultMove = errors.New("default move not present in catalog")

// Validate checks every move template and that the default move exists.
func (f *MovesFile) Validate() error {
	seen := make(map[string]bool, len(f.Moves))
	hasDefault := false
	for i := range f.Moves {
		m := &f.Moves[i]
		if seen[m.ID] {
			return fmt.Errorf("duplicate move id %q", m.ID)
		}
		seen[m.ID] = true
		if !m.Type.Valid() {
			return fmt.Errorf("move %q: %w: %q", m.ID, element.ErrUnknownType, m.Type)
		}
		switch m.Category {
		case CategoryPhysical, CategorySpecial:
			if m.Power == nil {
				return fmt.Errorf("move %q: damaging move without power", m.ID)
			}
		case CategoryStatus:
		default:
			return fmt.Errorf("move %q: unknown category %q", m.ID, m.Category)
		}
		if m.Accuracy < 0 || m.Accuracy > 100 {
			return fmt.Errorf("move %q: accuracy %d out of range", m.ID, m.Accuracy)
		}
		if m.PP <= 0 {
			return fmt.Errorf("move %q: pp must be positive", m.ID)
		}
		if !m.StatusEffect.Valid() {
			return fmt.Errorf("move %q: unknown status %q", m.ID, m.StatusEffect)
		}
		if m.StatusChance < 0 || m.StatusChance > 100 {
			return fmt.Errorf("move %q: status chance %d out of range", m.ID, m.StatusChance)
		}
		if m.InflictsStatus() && m.StatusDuration <= 0 {
			return fmt.Errorf("move %q: status %q needs a positive duration", m.ID, m.StatusEffect)
		}
		if m.ID == f.DefaultMove {
			hasDefault = true
		}
	}
	if !hasDefault {
		return fmt.Errorf("%w: %q", errNoDefaultMove, f.DefaultMove)
	}
	return nil
}

// LoadMoves loads the move catalog file from the embedded moves.json.
func LoadMoves() (MovesFile, error) {
	return Load[MovesFile]("moves.json")
}
