package presentation

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// handleSearchKey mirrors search_tab.rs's key handling: typed characters
// mutate the live pattern, arrow/page/home/end keys scroll the ranked
// result list.
func (a *app) handleSearchKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyRune:
		a.searchQuery += string(ev.Rune())
		a.searchScroll = 0
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(a.searchQuery) > 0 {
			runes := []rune(a.searchQuery)
			a.searchQuery = string(runes[:len(runes)-1])
		}
		a.searchScroll = 0
	case tcell.KeyUp:
		if a.searchScroll > 0 {
			a.searchScroll--
		}
	case tcell.KeyDown:
		a.searchScroll++
	case tcell.KeyPgUp:
		a.searchScroll -= 10
		if a.searchScroll < 0 {
			a.searchScroll = 0
		}
	case tcell.KeyPgDn:
		a.searchScroll += 10
	case tcell.KeyHome:
		a.searchScroll = 0
	case tcell.KeyEnd:
		a.searchScroll = a.searchMatchedCount
	}
}

// renderSearch draws the prompt and live-ranked match list, grounded on
// search_tab.rs's input-row-plus-results-list layout.
func (a *app) renderSearch(screen tcell.Screen, x0, y0, x1, y1 int) {
	prompt := fmt.Sprintf("Search: %s (type to search, ↑↓ PgUp/PgDn Home/End to scroll)", a.searchQuery)
	drawText(screen, x0, y0, x1-x0+1, styleDefault, prompt)

	resultsY0 := y0 + 2
	if resultsY0 > y1 {
		return
	}

	if a.searchMatchedCount == 0 {
		msg := "No files found matching search criteria."
		if a.searchQuery == "" {
			msg = "No files discovered yet. Files appear here as MFT processing progresses."
		}
		drawText(screen, x0, resultsY0, x1-x0+1, styleDim, msg)
		return
	}

	visibleHeight := y1 - resultsY0 + 1
	if visibleHeight <= 0 {
		return
	}
	maxScroll := a.searchMatchedCount - visibleHeight
	if maxScroll < 0 {
		maxScroll = 0
	}
	if a.searchScroll > maxScroll {
		a.searchScroll = maxScroll
	}

	title := fmt.Sprintf("Results (%d matches)", a.searchMatchedCount)
	drawText(screen, x0, resultsY0, x1-x0+1, styleDim, title)

	row := resultsY0 + 1
	start := a.searchScroll
	for i := 0; row <= y1 && start+i < len(a.searchResults); i++ {
		m := a.searchResults[start+i]
		drawText(screen, x0, row, x1-x0+1, styleDefault, m.Text)
		row++
	}
}
