package presentation

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
)

func TestHandleKeySwitchesTabsWithArrows(t *testing.T) {
	a := newTestApp(1)
	assert.Equal(t, tabOverview, a.selectedTab)

	a.handleKey(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
	assert.Equal(t, tabOverview, a.selectedTab, "cannot go left of the first tab")

	a.handleKey(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))
	assert.Equal(t, tabHealthGrid, a.selectedTab)

	a.handleKey(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))
	a.handleKey(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))
	assert.Equal(t, tabErrors, a.selectedTab)

	a.handleKey(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))
	assert.Equal(t, tabErrors, a.selectedTab, "cannot go right of the last tab")
}

func TestHandleKeyDelegatesTypingToSearchTab(t *testing.T) {
	a := newTestApp(1)
	a.selectedTab = tabSearch
	a.handleKey(keyEventRune('x'))
	assert.Equal(t, "x", a.searchQuery)
}
