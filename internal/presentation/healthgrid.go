package presentation

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
)

// healthBands is the fixed 10-band quality scheme of spec §4.7: band =
// ceil(unhealthy fraction * 9), so band 0 is 100% healthy and band 9 is
// more than 8/9 unhealthy, interpolated across an RGB ramp from green to
// red.
const healthBands = 10

// qualityBand maps a healthy ratio in [0,1] to a band in [0, healthBands).
func qualityBand(healthyRatio float64) int {
	unhealthy := 1 - healthyRatio
	band := int(math.Ceil(unhealthy * float64(healthBands-1)))
	if band >= healthBands {
		band = healthBands - 1
	}
	if band < 0 {
		band = 0
	}
	return band
}

// bandColor interpolates band 0 (green, fully healthy) to band
// healthBands-1 (red, fully unhealthy).
func bandColor(band int) tcell.Color {
	t := float64(band) / float64(healthBands-1)
	r := int32(255 * t)
	g := int32(255 * (1 - t))
	return tcell.NewRGBColor(r, g, 0)
}

func (a *app) handleHealthGridKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyUp:
		if a.healthGridSelected > 0 {
			a.healthGridSelected--
		}
	case tcell.KeyDown:
		if a.healthGridSelected < len(a.drives)-1 {
			a.healthGridSelected++
		}
	}
}

// renderHealthGrid aggregates entries_per_pixel = ceil(total_records /
// (W*H)) consecutive record-health bits per cell, color-banding each cell
// by its local healthy ratio and printing the band digit on the top-left
// cell of each same-banded run, grounded on visualizer_tab.rs's
// render_health_grid (there a 4-tier ratio→glyph scheme; here the fixed
// 10-band scheme from spec §4.7).
func (a *app) renderHealthGrid(screen tcell.Screen, x0, y0, x1, y1 int) {
	if len(a.drives) == 0 {
		drawText(screen, x0, y0, x1-x0+1, styleDim, "No drives loaded")
		return
	}
	if a.healthGridSelected >= len(a.drives) {
		a.healthGridSelected = len(a.drives) - 1
	}
	d := a.drives[a.healthGridSelected]

	selector := fmt.Sprintf("Drive %d/%d (↑↓ to switch) - %d/%d healthy",
		a.healthGridSelected+1, len(a.drives), len(d.healthBits)-d.unhealthyCount, len(d.healthBits))
	drawText(screen, x0, y0, x1-x0+1, styleDefault, selector)

	gridY0 := y0 + 2
	if gridY0 > y1 || len(d.healthBits) == 0 {
		drawText(screen, x0, gridY0, x1-x0+1, styleDim, "No entry health data available yet")
		return
	}

	width := x1 - x0 + 1
	height := y1 - gridY0 + 1
	totalCells := width * height
	if totalCells <= 0 {
		return
	}

	entriesPerCell := (len(d.healthBits) + totalCells - 1) / totalCells
	if entriesPerCell <= 0 {
		entriesPerCell = 1
	}

	bands := make([][]int, height)
	for row := range bands {
		bands[row] = make([]int, width)
		for col := range bands[row] {
			bands[row][col] = -1
		}
	}

	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			cellIndex := row*width + col
			start := cellIndex * entriesPerCell
			if start >= len(d.healthBits) {
				break
			}
			end := start + entriesPerCell
			if end > len(d.healthBits) {
				end = len(d.healthBits)
			}
			healthy := 0
			for _, ok := range d.healthBits[start:end] {
				if ok {
					healthy++
				}
			}
			ratio := float64(healthy) / float64(end-start)
			bands[row][col] = qualityBand(ratio)
		}
	}

	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			band := bands[row][col]
			if band < 0 {
				continue
			}
			style := tcell.StyleDefault.Foreground(bandColor(band))

			leftDiffers := col == 0 || bands[row][col-1] != band
			aboveDiffers := row == 0 || bands[row-1][col] != band
			runeToDraw := tcell.RuneBlock
			if leftDiffers && aboveDiffers {
				runeToDraw = rune('0' + band)
			}
			screen.SetContent(x0+col, gridY0+row, runeToDraw, nil, style)
		}
	}
}
