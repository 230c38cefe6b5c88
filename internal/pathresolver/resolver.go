// Package pathresolver reconstructs full hierarchical paths for MFT records
// discovered in arbitrary order relative to their ancestors, using the
// pending-by-missing-parent index described in spec §4.3 and Design Notes
// §9 ("Cyclic references and forward declarations") rather than lazy graph
// edges or back-pointers.
package pathresolver

import (
	"fmt"
	"strings"
)

// RootRecordNumber is the record number of the volume root; path resolution
// terminates when it is reached, per spec §3.
const RootRecordNumber = 5

// maxHops bounds the ancestor walk to guard against cycles in corrupt or
// adversarial parent chains, per spec §4.3.
const maxHops = 4096

type directoryEntry struct {
	name      string
	hasParent bool
	parent    uint64
}

type pendingEntry struct {
	recordNumber uint64
	name         string
	parent       uint64
	hasParent    bool
	meta         any
}

// Resolved is an emitted, fully- or partially-resolved path for one record.
type Resolved struct {
	RecordNumber uint64
	Path         string
	Fallback     bool // true if flushed at stream end without full resolution
	// Meta carries whatever opaque value was passed to Insert for this
	// record, e.g. timestamps the caller wants attached to the emitted
	// path without this package needing to know their shape.
	Meta any
}

// Resolver maintains the directories map and pending queue for one drive's
// path reconstruction, per spec §4.3.
type Resolver struct {
	driveLetter byte // 0 if unknown
	directories map[uint64]directoryEntry
	pending     map[uint64][]pendingEntry
}

// New constructs a Resolver for the given drive letter ('A'..'Z'), or pass 0
// when no drive letter is known (paths then begin with `\` per spec §8
// invariant 2).
func New(driveLetter byte) *Resolver {
	return &Resolver{
		driveLetter: driveLetter,
		directories: make(map[uint64]directoryEntry),
		pending:     make(map[uint64][]pendingEntry),
	}
}

// Insert records a named record's (name, parent) pair and attempts to
// resolve its full path, along with resolving any children that were
// waiting on this record as their missing ancestor. It returns every path
// that newly became resolvable as a result of this insertion (the record
// itself, plus any drained pending descendants), in resolution order.
func (r *Resolver) Insert(recordNumber uint64, name string, parent uint64, hasParent bool, meta any) []Resolved {
	r.directories[recordNumber] = directoryEntry{name: name, hasParent: hasParent, parent: parent}

	var out []Resolved
	queue := []pendingEntry{{recordNumber: recordNumber, name: name, parent: parent, hasParent: hasParent, meta: meta}}

	for len(queue) > 0 {
		entry := queue[0]
		queue = queue[1:]

		path, missing, ok := r.buildPath(entry.name, entry.parent, entry.hasParent)
		if ok {
			out = append(out, Resolved{RecordNumber: entry.recordNumber, Path: path, Meta: entry.meta})
			children := r.pending[entry.recordNumber]
			delete(r.pending, entry.recordNumber)
			queue = append(queue, children...)
			continue
		}
		// Only add to pending if this entry is the one we just inserted
		// into directories (it always is, on the first loop iteration) —
		// subsequent entries come from the pending map and were already
		// recorded there, so skip re-adding them.
		if entry.recordNumber == recordNumber {
			r.pending[missing] = append(r.pending[missing], entry)
		}
	}
	return out
}

// buildPath walks the parent chain from (name, parent), accumulating
// components, stopping at the root or a nil parent. If an ancestor is
// missing from the directories map, it returns the record number of that
// missing ancestor and ok=false.
func (r *Resolver) buildPath(name string, parent uint64, hasParent bool) (path string, missingAncestor uint64, ok bool) {
	components := []string{name}

	current := parent
	currentHasParent := hasParent
	for hop := 0; hop < maxHops; hop++ {
		if !currentHasParent || current == RootRecordNumber {
			return r.join(components), 0, true
		}
		entry, found := r.directories[current]
		if !found {
			return "", current, false
		}
		components = append([]string{entry.name}, components...)
		current = entry.parent
		currentHasParent = entry.hasParent
	}
	// Cycle guard tripped: truncate here rather than loop forever.
	return r.join(components), 0, true
}

func (r *Resolver) join(components []string) string {
	prefix := `\`
	if r.driveLetter != 0 {
		prefix = fmt.Sprintf("%c:\\", r.driveLetter)
	}
	return prefix + strings.Join(components, `\`)
}

// Flush emits a fallback single-component path for every record still
// stranded in the pending map at stream end, per spec §4.3. Cycles and
// orphans are never fatal.
func (r *Resolver) Flush() []Resolved {
	var out []Resolved
	seen := make(map[uint64]bool)
	for _, entries := range r.pending {
		for _, e := range entries {
			if seen[e.recordNumber] {
				continue
			}
			seen[e.recordNumber] = true
			out = append(out, Resolved{
				RecordNumber: e.recordNumber,
				Path:         r.join([]string{e.name}),
				Fallback:     true,
				Meta:         e.meta,
			})
		}
	}
	r.pending = make(map[uint64][]pendingEntry)
	return out
}
