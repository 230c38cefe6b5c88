package pathresolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertResolvesImmediatelyWhenParentKnown(t *testing.T) {
	r := New('C')
	r.Insert(5, "", 0, false, nil) // root, never actually emitted by callers

	resolved := r.Insert(8, "docs", RootRecordNumber, true, nil)
	require.Len(t, resolved, 1)
	assert.Equal(t, `C:\docs`, resolved[0].Path)

	resolved = r.Insert(9, "notes.txt", 8, true, nil)
	require.Len(t, resolved, 1)
	assert.Equal(t, `C:\docs\notes.txt`, resolved[0].Path)
}

func TestForwardReferenceDrainsPendingOnceParentArrives(t *testing.T) {
	r := New('C')

	// Record #9 arrives first, naming parent #8, which hasn't appeared yet.
	resolved := r.Insert(9, "notes.txt", 8, true, nil)
	assert.Empty(t, resolved, "record 9 should not resolve before its parent is known")

	// Nine more unrelated records arrive (simulating "position #10").
	for i := uint64(20); i < 29; i++ {
		r.Insert(i, "filler", RootRecordNumber, true, nil)
	}

	// Record #8 finally arrives, naming the root as its parent.
	resolved = r.Insert(8, "docs", RootRecordNumber, true, nil)
	require.Len(t, resolved, 2, "inserting #8 must drain #9 out of pending")

	byRecord := map[uint64]string{}
	for _, res := range resolved {
		byRecord[res.RecordNumber] = res.Path
	}
	assert.Equal(t, `C:\docs`, byRecord[8])
	assert.Equal(t, `C:\docs\notes.txt`, byRecord[9])
}

func TestCycleGuardTerminates(t *testing.T) {
	r := New('C')
	// Build a cycle: 100 -> 101 -> 100 ...
	r.directories[100] = directoryEntry{name: "a", hasParent: true, parent: 101}
	r.directories[101] = directoryEntry{name: "b", hasParent: true, parent: 100}

	path, _, ok := r.buildPath("leaf", 100, true)
	assert.True(t, ok, "cycle guard should truncate rather than hang")
	assert.NotEmpty(t, path)
}

func TestFlushEmitsFallbackForStrandedEntries(t *testing.T) {
	r := New('D')
	r.Insert(50, "orphan.txt", 999, true, nil) // parent #999 never arrives

	resolved := r.Flush()
	require.Len(t, resolved, 1)
	assert.Equal(t, uint64(50), resolved[0].RecordNumber)
	assert.Equal(t, `D:\orphan.txt`, resolved[0].Path)
	assert.True(t, resolved[0].Fallback)

	// Pending map must be drained; a second flush yields nothing.
	assert.Empty(t, r.Flush())
}

func TestNoDriveLetterUsesBackslashPrefix(t *testing.T) {
	r := New(0)
	resolved := r.Insert(8, "docs", RootRecordNumber, true, nil)
	require.Len(t, resolved, 1)
	assert.Equal(t, `\docs`, resolved[0].Path)
}

func TestRootItselfHasNoParent(t *testing.T) {
	r := New('C')
	resolved := r.Insert(7, "top", 0, false, nil)
	require.Len(t, resolved, 1)
	assert.Equal(t, `C:\top`, resolved[0].Path)
}
