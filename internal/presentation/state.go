package presentation

import (
	"time"

	"github.com/ntfsview/ntfsview/internal/pipeline"
)

// driveState mirrors one row of per-drive progress, the Go analogue of the
// original TUI's MftFileProgress accumulator.
type driveState struct {
	fileIndex int

	totalSize int64
	hasTotal  bool

	processedBytes int64
	recordSize     int
	recordCount    int
	unhealthyCount int
	healthBits     []bool

	discoveredCount int
	paths           []string

	errors []string

	done        bool
	completedAt time.Time
}

func (d *driveState) throughputBytesPerSec(elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	return float64(d.processedBytes) / elapsed.Seconds()
}

func (d *driveState) healthyRatio() float64 {
	if len(d.healthBits) == 0 {
		return 1
	}
	return float64(len(d.healthBits)-d.unhealthyCount) / float64(len(d.healthBits))
}

func (d *driveState) eta(elapsed time.Duration) time.Duration {
	if !d.hasTotal || d.processedBytes == 0 || d.done {
		return 0
	}
	rate := d.throughputBytesPerSec(elapsed)
	if rate <= 0 {
		return 0
	}
	remaining := d.totalSize - d.processedBytes
	if remaining <= 0 {
		return 0
	}
	return time.Duration(float64(remaining)/rate) * time.Second
}

func (a *app) applyEvent(ev pipeline.Event) {
	if ev.FileIndex < 0 || ev.FileIndex >= len(a.drives) {
		return
	}
	d := a.drives[ev.FileIndex]

	switch ev.Kind {
	case pipeline.EventFileSizeDiscovered:
		d.totalSize = ev.FileSize
		d.hasTotal = true
	case pipeline.EventRecordSizeDiscovered:
		d.recordSize = ev.RecordSize
	case pipeline.EventProgress:
		d.processedBytes += ev.ProgressBytes
	case pipeline.EventRecordHealth:
		d.recordCount++
		d.healthBits = append(d.healthBits, ev.RecordHealthy)
		if !ev.RecordHealthy {
			d.unhealthyCount++
		}
	case pipeline.EventDiscoveredFiles:
		d.discoveredCount += len(ev.DiscoveredMany)
		for _, f := range ev.DiscoveredMany {
			d.paths = append(d.paths, f.FullPath)
		}
	case pipeline.EventError:
		if ev.Err != nil {
			d.errors = append(d.errors, ev.Err.Error())
			a.pushError(ev.FileIndex, ev.Err.Error())
		}
	case pipeline.EventComplete:
		d.done = true
		d.completedAt = time.Now()
	}
}
