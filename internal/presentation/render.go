package presentation

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

var (
	styleDefault  = tcell.StyleDefault
	styleTabBar   = tcell.StyleDefault.Foreground(tcell.ColorLightBlue).Background(tcell.ColorBlack)
	styleTabSel   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlue)
	styleBorder   = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	styleDim      = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleGood     = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleWarn     = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleBad      = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleSelected = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow)
)

// drawText writes text starting at (x, y), clipped to maxWidth columns.
func drawText(screen tcell.Screen, x, y, maxWidth int, style tcell.Style, text string) {
	col := x
	for _, r := range text {
		if col >= x+maxWidth {
			break
		}
		screen.SetContent(col, y, r, nil, style)
		col++
	}
}

// drawBox draws a rectangular border between the two corners, inclusive.
func drawBox(screen tcell.Screen, x0, y0, x1, y1 int, style tcell.Style) {
	if x1 < x0 || y1 < y0 {
		return
	}
	for x := x0; x <= x1; x++ {
		screen.SetContent(x, y0, tcell.RuneHLine, nil, style)
		screen.SetContent(x, y1, tcell.RuneHLine, nil, style)
	}
	for y := y0; y <= y1; y++ {
		screen.SetContent(x0, y, tcell.RuneVLine, nil, style)
		screen.SetContent(x1, y, tcell.RuneVLine, nil, style)
	}
	screen.SetContent(x0, y0, tcell.RuneULCorner, nil, style)
	screen.SetContent(x1, y0, tcell.RuneURCorner, nil, style)
	screen.SetContent(x0, y1, tcell.RuneLLCorner, nil, style)
	screen.SetContent(x1, y1, tcell.RuneLRCorner, nil, style)
}

// render draws the tab bar and then delegates the body area to the
// active tab, mirroring app_tabs.rs's render: a one-row tab strip over a
// bordered content area.
func (a *app) render(screen tcell.Screen) {
	screen.Clear()
	width, height := screen.Size()
	if width <= 0 || height <= 0 {
		screen.Show()
		return
	}

	a.renderTabBar(screen, width)

	bodyY0, bodyY1 := 1, height-1
	if bodyY1 > bodyY0 {
		drawBox(screen, 0, bodyY0, width-1, bodyY1, styleBorder)
		innerX0, innerY0 := 2, bodyY0+1
		innerX1, innerY1 := width-3, bodyY1-1
		if innerX1 > innerX0 && innerY1 > innerY0 {
			switch a.selectedTab {
			case tabOverview:
				a.renderOverview(screen, innerX0, innerY0, innerX1, innerY1)
			case tabHealthGrid:
				a.renderHealthGrid(screen, innerX0, innerY0, innerX1, innerY1)
			case tabSearch:
				a.renderSearch(screen, innerX0, innerY0, innerX1, innerY1)
			case tabErrors:
				a.renderErrors(screen, innerX0, innerY0, innerX1, innerY1)
			}
		}
	}

	if a.quitting {
		a.renderQuitOverlay(screen, width, height)
	}

	screen.Show()
}

func (a *app) renderTabBar(screen tcell.Screen, width int) {
	col := 0
	for _, t := range allTabs {
		style := styleTabBar
		if t == a.selectedTab {
			style = styleTabSel
		}
		label := fmt.Sprintf(" %s ", t.title())
		drawText(screen, col, 0, len(label), style, label)
		col += len(label) + 1
		if col >= width {
			break
		}
	}
}

// renderQuitOverlay draws a shrinking horizontal bar across the middle
// row, approximating the original's fade-and-slide exit animation within
// tcell's cell model.
func (a *app) renderQuitOverlay(screen tcell.Screen, width, height int) {
	row := height / 2
	progress := float64(a.quitTicks) / float64(quitAnimationTicks)
	barWidth := int(float64(width) * (1 - progress))
	start := (width - barWidth) / 2
	for x := start; x < start+barWidth && x < width; x++ {
		screen.SetContent(x, row, ' ', nil, styleSelected)
	}
	msg := "Quitting..."
	drawText(screen, (width-len(msg))/2, row, len(msg), styleSelected, msg)
}
