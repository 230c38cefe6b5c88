package presentation

import "github.com/gdamore/tcell/v2"

// tab identifies which of the four fixed panels is active, mirroring the
// original TUI's AppTab enum (Overview/Visualizer/Search/Errors).
type tab int

const (
	tabOverview tab = iota
	tabHealthGrid
	tabSearch
	tabErrors
)

var allTabs = []tab{tabOverview, tabHealthGrid, tabSearch, tabErrors}

func (t tab) title() string {
	switch t {
	case tabOverview:
		return "Overview"
	case tabHealthGrid:
		return "Health Grid"
	case tabSearch:
		return "Search"
	case tabErrors:
		return "Errors"
	default:
		return "?"
	}
}

// keyboardResponse reports whether a tab body consumed a key itself, or
// whether the app-level shortcuts (tab switching, quit) should still see
// it, matching the original KeyboardResponse::Consume/Pass contract.
type keyboardResponse int

const (
	responsePass keyboardResponse = iota
	responseConsume
)

// handleKey applies app-level shortcuts first (arrow-key tab switching),
// then delegates to the active tab's own key handling.
func (a *app) handleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyLeft:
		if a.selectedTab > 0 {
			a.selectedTab--
		}
		return
	case tcell.KeyRight:
		if int(a.selectedTab) < len(allTabs)-1 {
			a.selectedTab++
		}
		return
	}

	switch a.selectedTab {
	case tabHealthGrid:
		a.handleHealthGridKey(ev)
	case tabSearch:
		a.handleSearchKey(ev)
	case tabErrors:
		a.handleErrorsKey(ev)
	}
}
