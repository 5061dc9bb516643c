package battle

import (
	"testing"

	"github.com/samdwyer/pokebattle/internal/element"
	"github.com/samdwyer/pokebattle/internal/entity"
	"github.com/samdwyer/pokebattle/internal/gamedata"
)

func TestChooseIndex(t *testing.T) {
	tests := []struct {
		name     string
		moves    []element.Type
		defender []element.Type
		ints     []int
		expected int
	}{
		{"only super-effective", []element.Type{element.Normal, element.Water, element.Fire}, []element.Type{element.Fire}, []int{0}, 1},
		{"random among super-effective", []element.Type{element.Water, element.Normal, element.Ground}, []element.Type{element.Fire}, []int{1}, 2},
		{"no super-effective falls back", []element.Type{element.Normal, element.Normal}, []element.Type{element.Fire}, []int{1}, 1},
		{"dual-type weakness counts", []element.Type{element.Normal, element.Fire}, []element.Type{element.Grass, element.Bug}, []int{0}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ChooseIndex(&scriptedRand{ints: tt.ints}, tt.moves, tt.defender)
			if got != tt.expected {
				t.Errorf("ChooseIndex() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestPreferSuperEffective(t *testing.T) {
	target := entity.NewPokemon(testRoster.GetByName("charizard"), 50, testCatalog)
	usable := []*gamedata.Move{
		gamedata.NewMove(testCatalog.GetByID("tackle")),
		gamedata.NewMove(testCatalog.GetByID("rock-slide")),
		gamedata.NewMove(testCatalog.GetByID("vine-whip")),
	}

	for i := 0; i < 5; i++ {
		got := PreferSuperEffective(&scriptedRand{ints: []int{i}}, usable, target)
		if got.Def.ID != "rock-slide" {
			t.Errorf("PreferSuperEffective() = %s, want rock-slide", got.Def.ID)
		}
	}

	if got := PreferSuperEffective(&scriptedRand{}, nil, target); got != nil {
		t.Errorf("PreferSuperEffective(nil) = %v, want nil", got)
	}
}

func TestPhaseString(t *testing.T) {
	tests := []struct {
		phase    Phase
		expected string
	}{
		{PhaseNotStarted, "not_started"},
		{PhasePlayerTurn, "player_turn"},
		{PhaseOpponentTurn, "opponent_turn"},
		{PhaseResolving, "resolving"},
		{PhaseComplete, "complete"},
		{Phase(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.phase.String(); got != tt.expected {
			t.Errorf("Phase(%d).String() = %q, want %q", tt.phase, got, tt.expected)
		}
	}
	if SidePlayer.Other() != SideOpponent || SideOpponent.Other() != SidePlayer {
		t.Error("Side.Other() is not symmetric")
	}
}
