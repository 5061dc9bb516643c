package gamedata

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/pokebattle/internal/element"
)

// typeColors are the conventional badge colours for each elemental type.
var typeColors = map[element.Type]string{
	element.Normal:   "#A8A77A",
	element.Fire:     "#EE8130",
	element.Water:    "#6390F0",
	element.Electric: "#F7D02C",
	element.Grass:    "#7AC74C",
	element.Ice:      "#96D9D6",
	element.Fighting: "#C22E28",
	element.Poison:   "#A33EA1",
	element.Ground:   "#E2BF65",
	element.Flying:   "#A98FF3",
	element.Psychic:  "#F95587",
	element.Bug:      "#A6B91A",
	element.Rock:     "#B6A136",
	element.Ghost:    "#735797",
	element.Dragon:   "#6F35FC",
	element.Dark:     "#705746",
	element.Steel:    "#B7B7CE",
	element.Fairy:    "#D685AD",
}

// TypeColor returns the badge colour for t, or white for unknown types.
func TypeColor(t element.Type) tcell.Color {
	hex, ok := typeColors[t]
	if !ok {
		return tcell.ColorWhite
	}
	color, err := ParseHexColor(hex)
	if err != nil {
		return tcell.ColorWhite
	}
	return color
}

// StatusColor returns the colour used for a status badge.
func StatusColor(s StatusEffectType) tcell.Color {
	switch s {
	case StatusBurn:
		return TypeColor(element.Fire)
	case StatusPoison:
		return TypeColor(element.Poison)
	case StatusParalysis:
		return TypeColor(element.Electric)
	case StatusSleep:
		return tcell.ColorGray
	case StatusFreeze:
		return TypeColor(element.Ice)
	default:
		return tcell.ColorDefault
	}
}

// ParseHexColor converts "#RRGGBB" or "RRGGBB" to a tcell.Color.
func ParseHexColor(hex string) (tcell.Color, error) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color length: %s", hex)
	}

	rgb, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color %s: %w", hex, err)
	}

	return tcell.NewRGBColor(int32(rgb>>16&0xFF), int32(rgb>>8&0xFF), int32(rgb&0xFF)), nil
}
