package fuzzyindex

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushThenTickThenSnapshot(t *testing.T) {
	idx := New()
	idx.Push(`C:\Users\report.txt`)
	idx.Push(`C:\Windows\system32\kernel32.dll`)
	idx.Push(`C:\Users\alice\report-final.txt`)

	idx.ReparsePattern("report")
	idx.Tick(time.Second)

	count, items := idx.Snapshot(0, 10)
	require.Equal(t, 2, count)
	for _, m := range items {
		assert.Contains(t, m.Text, "report")
	}
}

func TestEmptyPatternMatchesEverythingUnscored(t *testing.T) {
	idx := New()
	idx.Push("a")
	idx.Push("b")
	idx.Tick(time.Second)

	count, _ := idx.Snapshot(0, 10)
	assert.Equal(t, 2, count)
}

func TestSmartCaseInsensitiveWhenPatternLowercase(t *testing.T) {
	idx := New()
	idx.Push("Report.TXT")
	idx.ReparsePattern("report")
	idx.Tick(time.Second)

	count, _ := idx.Snapshot(0, 10)
	assert.Equal(t, 1, count)
}

func TestSmartCaseSensitiveWhenPatternHasUppercase(t *testing.T) {
	idx := New()
	idx.Push("report.txt")
	idx.ReparsePattern("Report")
	idx.Tick(time.Second)

	count, _ := idx.Snapshot(0, 10)
	assert.Equal(t, 0, count, "uppercase in pattern should force case-sensitive matching")
}

func TestSnapshotRangeIsClampedToAvailableResults(t *testing.T) {
	idx := New()
	idx.Push("one")
	idx.Push("two")
	idx.Tick(time.Second)

	count, items := idx.Snapshot(5, 10)
	assert.Equal(t, 2, count)
	assert.Empty(t, items)
}

func TestTickReturnsFalseOnceFullyMatched(t *testing.T) {
	idx := New()
	idx.Push("alpha")

	assert.True(t, idx.Tick(time.Second) == false, "single small tick should fully match within the timeout")
}
