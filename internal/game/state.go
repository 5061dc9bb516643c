package game

import "github.com/gdamore/tcell/v2"

// Action is what a key press asks the session to do.
type Action int

const (
	ActionNone Action = iota
	// ActionMove uses the move in the slot returned alongside it.
	ActionMove
	// ActionPass gives up the turn when every move is out of PP.
	ActionPass
	// ActionNewBattle resets and starts a fresh battle.
	ActionNewBattle
	ActionQuit
)

// String returns a human-readable action name.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionMove:
		return "move"
	case ActionPass:
		return "pass"
	case ActionNewBattle:
		return "new_battle"
	case ActionQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// ActionFor maps a key event to an action. For ActionMove the second value
// is the zero-based move slot.
func ActionFor(ev *tcell.EventKey) (Action, int) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit, 0
	case tcell.KeyRune:
		switch r := ev.Rune(); r {
		case '1', '2', '3', '4':
			return ActionMove, int(r - '1')
		case 'p', 'P':
			return ActionPass, 0
		case 'n', 'N':
			return ActionNewBattle, 0
		case 'q', 'Q':
			return ActionQuit, 0
		}
	}
	return ActionNone, 0
}
