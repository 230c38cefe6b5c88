package presentation

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gdamore/tcell/v2"
)

// renderOverview draws a summary line over a one-row-per-drive status
// table: drive index, status, processed/total bytes, entries processed,
// elapsed, ETA, and an error count when the drive has errors. The table has
// no file-name column and shows no throughput figures — grounded on
// overview_tab.rs's summary + file-list split.
func (a *app) renderOverview(screen tcell.Screen, x0, y0, x1, y1 int) {
	elapsed := time.Since(a.begin)

	completed := 0
	totalErrors := 0
	for _, d := range a.drives {
		if d.done {
			completed++
		}
		totalErrors += len(d.errors)
	}

	summary := fmt.Sprintf("Drives: %d/%d complete | Errors: %d | Elapsed: %s",
		completed, len(a.drives), totalErrors, elapsed.Round(time.Second))
	drawText(screen, x0, y0, x1-x0+1, styleDefault, summary)

	header := fmt.Sprintf("%-3s %-8s %12s %10s %10s %10s", "#", "Status", "Bytes", "Entries", "Elapsed", "ETA")
	drawText(screen, x0, y0+2, x1-x0+1, styleDim, header)

	row := y0 + 3
	for _, d := range a.drives {
		if row > y1 {
			break
		}
		status := "..."
		style := styleDefault
		if d.done {
			status = "OK"
			style = styleGood
		}
		var bytesStr string
		if d.hasTotal {
			bytesStr = fmt.Sprintf("%s/%s", humanize.Bytes(uint64(d.processedBytes)), humanize.Bytes(uint64(d.totalSize)))
		} else {
			bytesStr = fmt.Sprintf("%s/?", humanize.Bytes(uint64(d.processedBytes)))
		}
		driveElapsed := elapsed
		if d.done {
			driveElapsed = d.completedAt.Sub(a.begin)
		}
		eta := "-"
		if e := d.eta(elapsed); e > 0 {
			eta = e.Round(time.Second).String()
		}
		line := fmt.Sprintf("%-3d %-8s %12s %10d %10s %10s",
			d.fileIndex, status, bytesStr, d.recordCount, driveElapsed.Round(time.Second), eta)
		if len(d.errors) > 0 {
			line += fmt.Sprintf(" (errors: %d)", len(d.errors))
			style = styleWarn
		}
		drawText(screen, x0, row, x1-x0+1, style, line)
		row++
	}
}
