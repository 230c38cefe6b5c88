// Package pipeline runs the per-drive MFT analysis workers and fans their
// progress into a single ordered event channel, per spec §4.5.
package pipeline

import "time"

// EventKind tags the variant carried by an Event, mirroring the Progress
// Event tagged union.
type EventKind int

const (
	EventFileSizeDiscovered EventKind = iota
	EventRecordSizeDiscovered
	EventProgress
	EventDiscoveredFiles
	EventRecordHealth
	EventError
	EventComplete
)

func (k EventKind) String() string {
	switch k {
	case EventFileSizeDiscovered:
		return "FileSizeDiscovered"
	case EventRecordSizeDiscovered:
		return "RecordSizeDiscovered"
	case EventProgress:
		return "Progress"
	case EventDiscoveredFiles:
		return "DiscoveredFiles"
	case EventRecordHealth:
		return "RecordHealth"
	case EventError:
		return "Error"
	case EventComplete:
		return "Complete"
	default:
		return "Unknown"
	}
}

// DiscoveredFile is the unit emitted to the fuzzy index and UI: a fully
// resolved (or fallback) path plus the timestamps recovered from the
// record's File Name or Standard Info attribute.
type DiscoveredFile struct {
	RecordNumber uint64
	FullPath     string
	Fallback     bool
	Created      time.Time
	Modified     time.Time
	Accessed     time.Time
}

// Event is one entry on the pipeline's single-consumer channel. Which
// fields are meaningful depends on Kind; FileIndex always identifies which
// drive's worker emitted it.
type Event struct {
	Kind      EventKind
	FileIndex int

	FileSize       int64
	RecordSize     int
	ProgressBytes  int64
	DiscoveredMany []DiscoveredFile
	RecordHealthy  bool
	Err            error
}
