package mftdiff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareIdenticalFiles(t *testing.T) {
	a := []byte("the quick brown fox")
	b := []byte("the quick brown fox")
	result := Compare(a, b, true, 10)
	assert.True(t, result.Identical())
}

func TestCompareSingleByteDifference(t *testing.T) {
	a := []byte("aaaa")
	b := []byte("aaba")
	result := Compare(a, b, true, 10)
	require.False(t, result.Identical())
	require.Len(t, result.Differences, 1)
	assert.Equal(t, int64(2), result.Differences[0].Offset)
}

func TestCompareNonVerboseStopsAtFirstDifference(t *testing.T) {
	a := []byte("aaaaaaaa")
	b := []byte("aabaabaa")
	result := Compare(a, b, false, 10)
	require.Len(t, result.Differences, 1)
	assert.Equal(t, int64(2), result.Differences[0].Offset)
}

func TestCompareCapsAtMaxDiffsAndCountsRemaining(t *testing.T) {
	a := make([]byte, 20)
	b := make([]byte, 20)
	for i := range b {
		b[i] = 1 // every byte differs
	}
	result := Compare(a, b, true, 5)
	assert.Len(t, result.Differences, 5)
	assert.Equal(t, 15, result.RemainingDiffs)
}

func TestCompareDetectsLengthMismatch(t *testing.T) {
	a := []byte("short")
	b := []byte("a much longer string")
	result := Compare(a, b, true, 10)
	assert.True(t, result.LengthMismatch)
	assert.False(t, result.Identical())
}

func TestSummaryReportsIdentical(t *testing.T) {
	result := Compare([]byte("x"), []byte("x"), true, 10)
	assert.Contains(t, Summary(result), "identical")
}
