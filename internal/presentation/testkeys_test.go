package presentation

import "github.com/gdamore/tcell/v2"

func keyEventUp() *tcell.EventKey   { return tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone) }
func keyEventDown() *tcell.EventKey { return tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone) }
func keyEventRune(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}
