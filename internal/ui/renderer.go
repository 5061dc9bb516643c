package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/pokebattle/internal/battle"
	"github.com/samdwyer/pokebattle/internal/element"
	"github.com/samdwyer/pokebattle/internal/gamedata"
)

const hpBarWidth = 20

// Renderer handles drawing the battle to the screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Render draws both combatants, the player's moves, the battle log and a
// footer line.
func (r *Renderer) Render(snap battle.Snapshot, footer string) {
	r.screen.Clear()
	width, height := r.screen.Size()

	title := "POKEBATTLE"
	if snap.Phase != battle.PhaseNotStarted {
		title = fmt.Sprintf("POKEBATTLE  turn %d  %s", snap.TurnCount, snap.Phase)
	}
	r.drawText(0, 0, title, tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true))

	if snap.Phase == battle.PhaseNotStarted {
		r.drawText(0, 2, "Press n to start a battle.", tcell.StyleDefault)
		r.drawFooter(footer, height)
		r.screen.Show()
		return
	}

	r.drawCombatant(2, "Foe", snap.Opponent)
	r.drawCombatant(6, "You", snap.Player)

	y := 10
	for i, m := range snap.Player.Moves {
		r.drawMove(y+i, i, m, snap.Turn == battle.SidePlayer)
	}

	// Most recent log lines that fit between the moves and the footer.
	logTop := y + len(snap.Player.Moves) + 1
	rows := height - 1 - logTop
	if rows > 0 {
		lines := wrapLines(snap.Log, width)
		if len(lines) > rows {
			lines = lines[len(lines)-rows:]
		}
		for i, line := range lines {
			r.drawText(0, logTop+i, line, tcell.StyleDefault.Foreground(tcell.ColorWhite))
		}
	}

	r.drawFooter(footer, height)
	r.screen.Show()
}

func (r *Renderer) drawCombatant(y int, label string, c battle.CombatantView) {
	x := r.drawText(0, y, fmt.Sprintf("%s: %s Lv.%d ", label, c.Name, c.Level),
		tcell.StyleDefault.Bold(true))
	for _, t := range c.Types {
		x = r.drawText(x, y, typeBadge(t), tcell.StyleDefault.Foreground(gamedata.TypeColor(t)))
		x++
	}
	if c.Status != gamedata.StatusNone {
		r.drawText(x+1, y, strings.ToUpper(string(c.Status)),
			tcell.StyleDefault.Foreground(gamedata.StatusColor(c.Status)).Bold(true))
	}

	x = r.drawText(0, y+1, "HP ", tcell.StyleDefault)
	filled := HPBarFill(c.HP, c.MaxHP, hpBarWidth)
	barStyle := tcell.StyleDefault.Foreground(hpColor(c.HP, c.MaxHP))
	for i := 0; i < hpBarWidth; i++ {
		ch := '-'
		if i < filled {
			ch = '='
		}
		r.screen.SetContent(x+i, y+1, ch, barStyle)
	}
	r.drawText(x+hpBarWidth+1, y+1, fmt.Sprintf("%d/%d", c.HP, c.MaxHP), tcell.StyleDefault)
}

func (r *Renderer) drawMove(y, slot int, m battle.MoveView, active bool) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	if !active || m.PP == 0 {
		style = style.Foreground(tcell.ColorGray)
	}
	x := r.drawText(0, y, fmt.Sprintf("[%d] %-16s", slot+1, m.Name), style)
	x = r.drawText(x, y, fmt.Sprintf("%-10s", typeBadge(m.Type)), tcell.StyleDefault.Foreground(gamedata.TypeColor(m.Type)))
	r.drawText(x, y, fmt.Sprintf("PP %2d/%-2d", m.PP, m.MaxPP), style)
}

func (r *Renderer) drawFooter(footer string, height int) {
	if footer == "" {
		footer = "1-4 use move  p pass  n new battle  q quit"
	}
	r.drawText(0, height-1, footer, tcell.StyleDefault.Foreground(tcell.ColorDarkCyan))
}

// drawText writes s at (x, y) and returns the column after it.
func (r *Renderer) drawText(x, y int, s string, style tcell.Style) int {
	for _, ch := range s {
		r.screen.SetContent(x, y, ch, style)
		x++
	}
	return x
}

// HPBarFill returns how many of width cells represent hp out of maxHP. Any
// remaining HP shows at least one cell.
func HPBarFill(hp, maxHP, width int) int {
	if maxHP <= 0 || hp <= 0 {
		return 0
	}
	if hp >= maxHP {
		return width
	}
	filled := hp * width / maxHP
	if filled == 0 {
		filled = 1
	}
	return filled
}

func hpColor(hp, maxHP int) tcell.Color {
	switch {
	case maxHP <= 0:
		return tcell.ColorGray
	case hp*2 > maxHP:
		return tcell.ColorGreen
	case hp*5 > maxHP:
		return tcell.ColorYellow
	default:
		return tcell.ColorRed
	}
}

func typeBadge(t element.Type) string {
	return strings.ToUpper(t.String())
}

// wrapLines splits log entries into lines no wider than width.
func wrapLines(entries []string, width int) []string {
	if width <= 0 {
		return nil
	}
	var out []string
	for _, entry := range entries {
		words := strings.Fields(entry)
		line := ""
		for _, w := range words {
			switch {
			case line == "":
				line = w
			case len(line)+1+len(w) <= width:
				line += " " + w
			default:
				out = append(out, line)
				line = w
			}
		}
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
