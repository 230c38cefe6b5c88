// Package fuzzyindex wraps an incremental fuzzy matcher behind the
// push/reparse/tick/snapshot contract of spec §4.6: a thread-safe injector
// accepts entries from many producers, a single reader repeatedly advances
// matching by a bounded time slice and reads ranked, eventually-consistent
// snapshots.
package fuzzyindex

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sahilm/fuzzy"
	"golang.org/x/text/unicode/norm"
)

// Match is one ranked result in a Snapshot.
type Match struct {
	Text  string
	Score int
}

// Index holds the full entry set plus the live query, re-scoring on each
// Tick. Insertion is lock-free for producers in spirit (Push only appends
// to a mutex-guarded slice, never blocks on matching work), matching the
// "thread-safe injection" requirement without requiring a genuine
// lock-free data structure neither the teacher nor the rest of the pack
// supplies.
type Index struct {
	mu      sync.Mutex
	entries []string
	pattern string

	results    []Match
	matchedAll bool
}

// New constructs an empty Index.
func New() *Index {
	return &Index{}
}

// Push injects one entry, thread-safe across concurrent producers. The
// entry is not scored until the next Tick.
func (idx *Index) Push(entry string) {
	idx.mu.Lock()
	idx.entries = append(idx.entries, entry)
	idx.matchedAll = false
	idx.mu.Unlock()
}

// ReparsePattern updates the live query; previously indexed entries are
// re-scored against it on the next Tick.
func (idx *Index) ReparsePattern(query string) {
	idx.mu.Lock()
	idx.pattern = query
	idx.matchedAll = false
	idx.mu.Unlock()
}

// Tick advances matching by a bounded time slice, returning true if there
// is more scoring work remaining (e.g. the entry set grew since the last
// full match pass). Re-scoring the whole set on every call is acceptable
// at the scale this tool operates at (hundreds of thousands of paths);
// genuinely incremental re-use of partial match state is future work.
func (idx *Index) Tick(timeout time.Duration) (workRemaining bool) {
	deadline := time.Now().Add(timeout)

	idx.mu.Lock()
	if idx.matchedAll {
		idx.mu.Unlock()
		return false
	}
	entries := append([]string(nil), idx.entries...)
	pattern := idx.pattern
	idx.mu.Unlock()

	results := matchAll(pattern, entries)

	if time.Now().After(deadline) {
		// Even on a slow pass, partial results are still useful to
		// display; just report that more work likely remains.
		idx.mu.Lock()
		idx.results = results
		idx.mu.Unlock()
		return true
	}

	idx.mu.Lock()
	idx.results = results
	// Entries pushed or a pattern set while this pass ran are not in
	// results yet, so they leave work for the next Tick.
	idx.matchedAll = len(idx.entries) == len(entries) && idx.pattern == pattern
	remaining := !idx.matchedAll
	idx.mu.Unlock()
	return remaining
}

// Snapshot returns a copy, taken under the index mutex, of the current
// ranked results: total matched count and the requested [start,end) slice
// of items.
func (idx *Index) Snapshot(start, end int) (matchedCount int, items []Match) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	matchedCount = len(idx.results)
	if start < 0 {
		start = 0
	}
	if end > matchedCount {
		end = matchedCount
	}
	if start >= end {
		return matchedCount, nil
	}
	items = make([]Match, end-start)
	copy(items, idx.results[start:end])
	return matchedCount, items
}

// matchAll scores every entry against pattern, respecting smart case: an
// all-lowercase pattern matches case-insensitively, any uppercase
// character makes the match case-sensitive, per spec §4.6 policy.
func matchAll(pattern string, entries []string) []Match {
	if pattern == "" {
		out := make([]Match, len(entries))
		for i, e := range entries {
			out[i] = Match{Text: e, Score: 0}
		}
		return out
	}

	smartCaseInsensitive := pattern == strings.ToLower(pattern)
	normalizedPattern := norm.NFC.String(pattern)
	if smartCaseInsensitive {
		normalizedPattern = strings.ToLower(normalizedPattern)
	}

	source := matchSource{entries: entries, foldCase: smartCaseInsensitive}
	matches := fuzzy.FindFrom(normalizedPattern, source)

	out := make([]Match, 0, len(matches))
	for _, m := range matches {
		if !smartCaseInsensitive {
			// fuzzy.FindFrom compares runes case-insensitively, so a
			// case-sensitive pattern must also be an exact-case subsequence.
			rest := []rune(normalizedPattern)
			for _, r := range source.String(m.Index) {
				if len(rest) > 0 && r == rest[0] {
					rest = rest[1:]
				}
			}
			if len(rest) > 0 {
				continue
			}
		}
		out = append(out, Match{Text: entries[m.Index], Score: m.Score})
	}
	// fuzzy.Find already orders by descending score, but ties must break
	// on insertion order; stable-sort re-asserts that guarantee.
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

type matchSource struct {
	entries  []string
	foldCase bool
}

func (s matchSource) String(i int) string {
	text := norm.NFC.String(s.entries[i])
	if s.foldCase {
		text = strings.ToLower(text)
	}
	return text
}

func (s matchSource) Len() int { return len(s.entries) }
