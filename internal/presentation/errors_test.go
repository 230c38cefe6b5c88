package presentation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRebuildGroupedErrorsCountsAndSortsByFrequency(t *testing.T) {
	a := newTestApp(2)
	a.pushError(0, "disk read error")
	a.pushError(1, "disk read error")
	a.pushError(0, "bad signature")

	a.rebuildGroupedErrors()
	require.Len(t, a.groupedErrors, 2)
	assert.Equal(t, "disk read error", a.groupedErrors[0].message)
	assert.Equal(t, 2, a.groupedErrors[0].count)
	assert.Equal(t, "bad signature", a.groupedErrors[1].message)
	assert.Equal(t, 1, a.groupedErrors[1].count)
}

func TestHandleErrorsKeyTogglesGroupedView(t *testing.T) {
	a := newTestApp(1)
	assert.True(t, a.errGrouped)
	a.handleErrorsKey(keyEventRune('g'))
	assert.False(t, a.errGrouped)
	a.handleErrorsKey(keyEventRune('g'))
	assert.True(t, a.errGrouped)
}

func TestDistinctIntsDropsDuplicates(t *testing.T) {
	assert.Equal(t, []int{0, 1}, distinctInts([]int{0, 0, 1, 1, 0}))
}
