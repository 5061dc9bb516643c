package element

import (
	"errors"
	"testing"
)

func TestEffectivenessSinglePairClosure(t *testing.T) {
	allowed := map[float64]bool{0: true, 0.5: true, 1: true, 2: true}
	for _, attack := range All() {
		for _, defend := range All() {
			got := Effectiveness(attack, []Type{defend})
			if !allowed[got] {
				t.Errorf("Effectiveness(%s, [%s]) = %v, want one of 0, 0.5, 1, 2", attack, defend, got)
			}
		}
	}
}

func TestEffectivenessDualTypeClosure(t *testing.T) {
	allowed := map[float64]bool{0: true, 0.25: true, 0.5: true, 1: true, 2: true, 4: true}
	for _, attack := range All() {
		for _, d1 := range All() {
			for _, d2 := range All() {
				if d1 == d2 {
					continue
				}
				got := Effectiveness(attack, []Type{d1, d2})
				if !allowed[got] {
					t.Errorf("Effectiveness(%s, [%s %s]) = %v", attack, d1, d2, got)
				}
			}
		}
	}
}

func TestEffectivenessComposition(t *testing.T) {
	tests := []struct {
		name     string
		attack   Type
		defend   []Type
		expected float64
	}{
		{"fire vs grass/bug", Fire, []Type{Grass, Bug}, 4},
		{"electric vs steel/flying", Electric, []Type{Steel, Flying}, 1},
		{"electric vs ground", Electric, []Type{Ground}, 0},
		{"normal vs ghost", Normal, []Type{Ghost}, 0},
		{"water vs fire", Water, []Type{Fire}, 2},
		{"fire vs water", Fire, []Type{Water}, 0.5},
		{"grass vs fire/flying", Grass, []Type{Fire, Flying}, 0.25},
		{"psychic vs normal", Psychic, []Type{Normal}, 1},
		{"no defenders", Fire, nil, 1},
		{"unknown attacker", Type("shadow"), []Type{Fire}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Effectiveness(tt.attack, tt.defend)
			if got != tt.expected {
				t.Errorf("Effectiveness(%s, %v) = %v, want %v", tt.attack, tt.defend, got, tt.expected)
			}
		})
	}
}

func TestMultiplierSteelResistsElectric(t *testing.T) {
	if got := Multiplier(Electric, Steel); got != 0.5 {
		t.Errorf("Multiplier(electric, steel) = %v, want 0.5", got)
	}
	if got := Multiplier(Steel, Electric); got != 0.5 {
		t.Errorf("Multiplier(steel, electric) = %v, want 0.5", got)
	}
	if got := Effectiveness(Electric, []Type{Steel}); TierOf(got) != TierNotVeryEffective {
		t.Errorf("TierOf(%v) = %v, want not_very_effective", got, TierOf(got))
	}
}

func TestTierOf(t *testing.T) {
	tests := []struct {
		multiplier float64
		tier       Tier
		message    string
	}{
		{4, TierSuperEffective, "It's super effective!"},
		{2, TierSuperEffective, "It's super effective!"},
		{1, TierNeutral, ""},
		{0.5, TierNotVeryEffective, "It's not very effective..."},
		{0.25, TierNotVeryEffective, "It's not very effective..."},
		{0, TierImmune, "It had no effect!"},
	}

	for _, tt := range tests {
		got := TierOf(tt.multiplier)
		if got != tt.tier {
			t.Errorf("TierOf(%v) = %v, want %v", tt.multiplier, got, tt.tier)
		}
		if got.Message() != tt.message {
			t.Errorf("TierOf(%v).Message() = %q, want %q", tt.multiplier, got.Message(), tt.message)
		}
	}
}

func TestParse(t *testing.T) {
	got, err := Parse("  Fire ")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if got != Fire {
		t.Errorf("Parse(\"  Fire \") = %q, want %q", got, Fire)
	}

	if _, err := Parse("shadow"); !errors.Is(err, ErrUnknownType) {
		t.Errorf("Parse(\"shadow\") error = %v, want ErrUnknownType", err)
	}

	list, err := ParseList("steel, flying")
	if err != nil {
		t.Fatalf("ParseList returned error: %v", err)
	}
	if len(list) != 2 || list[0] != Steel || list[1] != Flying {
		t.Errorf("ParseList(\"steel, flying\") = %v, want [steel flying]", list)
	}
}

func TestDisplayName(t *testing.T) {
	if got := Psychic.DisplayName(); got != "Psychic" {
		t.Errorf("Psychic.DisplayName() = %q, want %q", got, "Psychic")
	}
	if len(All()) != 18 {
		t.Errorf("len(All()) = %d, want 18", len(All()))
	}
}
