package presentation

import (
	"fmt"
	"sort"

	"github.com/gdamore/tcell/v2"
)

// errorEntry is one raw error, tagged with the drive that produced it.
type errorEntry struct {
	driveIndex int
	message    string
}

// errorGroup is one distinct message with its occurrence count and the
// set of drives it was seen on, the Go analogue of errors_tab.rs's
// cached_grouped (message, count, indices) tuple.
type errorGroup struct {
	message string
	count   int
	drives  []int
}

func (a *app) pushError(driveIndex int, message string) {
	a.errEntries = append(a.errEntries, errorEntry{driveIndex: driveIndex, message: message})
	a.groupedDirty = true
}

// handleErrorsKey mirrors errors_tab.rs's navigation plus the 'g' toggle
// between grouped and raw views.
func (a *app) handleErrorsKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyRune:
		if ev.Rune() == 'g' {
			a.errGrouped = !a.errGrouped
		}
	case tcell.KeyUp:
		if a.errSelected > 0 {
			a.errSelected--
			if a.errSelected < a.errScroll {
				a.errScroll = a.errSelected
			}
		}
	case tcell.KeyDown:
		a.errSelected++
	case tcell.KeyPgUp:
		a.errSelected -= 10
		if a.errSelected < 0 {
			a.errSelected = 0
		}
		a.errScroll -= 10
		if a.errScroll < 0 {
			a.errScroll = 0
		}
	case tcell.KeyPgDn:
		a.errSelected += 10
	case tcell.KeyHome:
		a.errSelected, a.errScroll = 0, 0
	case tcell.KeyEnd:
		a.errSelected = len(a.errEntries)
	}
}

func (a *app) rebuildGroupedErrors() {
	if !a.groupedDirty {
		return
	}
	groups := map[string]*errorGroup{}
	order := make([]string, 0)
	for _, e := range a.errEntries {
		g, ok := groups[e.message]
		if !ok {
			g = &errorGroup{message: e.message}
			groups[e.message] = g
			order = append(order, e.message)
		}
		g.count++
		g.drives = append(g.drives, e.driveIndex)
	}
	out := make([]errorGroup, 0, len(order))
	for _, msg := range order {
		out = append(out, *groups[msg])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].count > out[j].count })
	a.groupedErrors = out
	a.groupedDirty = false
}

// renderErrors draws the grouped-by-message (default) or raw view,
// grounded on errors_tab.rs's render/render_grouped/render_raw split.
func (a *app) renderErrors(screen tcell.Screen, x0, y0, x1, y1 int) {
	a.rebuildGroupedErrors()

	header := "Errors (grouped, press 'g' to toggle)"
	if !a.errGrouped {
		header = "Errors (raw, press 'g' to toggle)"
	}
	drawText(screen, x0, y0, x1-x0+1, styleDim, header)

	listY0 := y0 + 1
	visibleHeight := y1 - listY0 + 1
	if visibleHeight <= 0 {
		return
	}

	if a.errGrouped {
		a.renderGroupedErrors(screen, x0, listY0, x1-x0+1, visibleHeight)
	} else {
		a.renderRawErrors(screen, x0, listY0, x1-x0+1, visibleHeight)
	}
}

func (a *app) renderGroupedErrors(screen tcell.Screen, x0, y0, width, height int) {
	if len(a.groupedErrors) == 0 {
		drawText(screen, x0, y0, width, styleGood, "No errors recorded")
		return
	}
	n := len(a.groupedErrors)
	if a.errSelected >= n {
		a.errSelected = n - 1
	}
	maxScroll := n - height
	if maxScroll < 0 {
		maxScroll = 0
	}
	if a.errScroll > maxScroll {
		a.errScroll = maxScroll
	}
	if a.errSelected >= a.errScroll+height {
		a.errScroll = a.errSelected - height + 1
	}

	row := y0
	for i := a.errScroll; i < n && row < y0+height; i++ {
		g := a.groupedErrors[i]
		style := styleDefault
		if i == a.errSelected {
			style = styleSelected
		}
		line := fmt.Sprintf("[%dx across %d drive(s)] %s", g.count, len(distinctInts(g.drives)), g.message)
		drawText(screen, x0, row, width, style, line)
		row++
	}
}

func (a *app) renderRawErrors(screen tcell.Screen, x0, y0, width, height int) {
	n := len(a.errEntries)
	if n == 0 {
		drawText(screen, x0, y0, width, styleGood, "No errors recorded")
		return
	}
	if a.errSelected >= n {
		a.errSelected = n - 1
	}
	maxScroll := n - height
	if maxScroll < 0 {
		maxScroll = 0
	}
	if a.errScroll > maxScroll {
		a.errScroll = maxScroll
	}
	if a.errSelected >= a.errScroll+height {
		a.errScroll = a.errSelected - height + 1
	}

	row := y0
	for i := a.errScroll; i < n && row < y0+height; i++ {
		e := a.errEntries[i]
		style := styleDefault
		if i == a.errSelected {
			style = styleSelected
		}
		line := fmt.Sprintf("[drive %d] %s", e.driveIndex, e.message)
		drawText(screen, x0, row, width, style, line)
		row++
	}
}

func distinctInts(values []int) []int {
	seen := map[int]bool{}
	out := make([]int, 0, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
