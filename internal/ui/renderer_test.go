package ui

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestHPBarFill(t *testing.T) {
	tests := []struct {
		hp, maxHP, width int
		expected         int
	}{
		{100, 100, 20, 20},
		{50, 100, 20, 10},
		{1, 160, 20, 1},
		{0, 100, 20, 0},
		{-5, 100, 20, 0},
		{10, 0, 20, 0},
		{150, 100, 20, 20},
	}

	for _, tt := range tests {
		got := HPBarFill(tt.hp, tt.maxHP, tt.width)
		if got != tt.expected {
			t.Errorf("HPBarFill(%d, %d, %d) = %d, want %d", tt.hp, tt.maxHP, tt.width, got, tt.expected)
		}
	}
}

func TestWrapLines(t *testing.T) {
	got := wrapLines([]string{
		"Pikachu used Thunderbolt! It's super effective!",
		"Gyarados fainted!",
	}, 20)
	want := []string{
		"Pikachu used",
		"Thunderbolt! It's",
		"super effective!",
		"Gyarados fainted!",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("wrapLines() mismatch (-want +got):\n%s", diff)
	}
}
