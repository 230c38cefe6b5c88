package presentation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQualityBandFullyHealthyIsBandZero(t *testing.T) {
	assert.Equal(t, 0, qualityBand(1.0))
}

func TestQualityBandFullyUnhealthyIsTopBand(t *testing.T) {
	assert.Equal(t, healthBands-1, qualityBand(0.0))
}

func TestQualityBandMidpointIsMiddleBand(t *testing.T) {
	band := qualityBand(0.5)
	assert.InDelta(t, healthBands/2, band, 1)
}

func TestQualityBandClampsOutOfRangeRatios(t *testing.T) {
	assert.Equal(t, 0, qualityBand(1.5))
	assert.Equal(t, healthBands-1, qualityBand(-0.5))
}

func TestBandColorInterpolatesGreenToRed(t *testing.T) {
	r0, g0, b0 := bandColor(0).RGB()
	assert.Equal(t, int32(0), r0)
	assert.Equal(t, int32(255), g0)
	assert.Equal(t, int32(0), b0)

	rMax, gMax, bMax := bandColor(healthBands - 1).RGB()
	assert.Equal(t, int32(255), rMax)
	assert.Equal(t, int32(0), gMax)
	assert.Equal(t, int32(0), bMax)
}

func TestHandleHealthGridKeyClampsSelection(t *testing.T) {
	a := newTestApp(2)
	assert.Equal(t, 0, a.healthGridSelected)
	a.handleHealthGridKey(keyEventUp())
	assert.Equal(t, 0, a.healthGridSelected)
	a.handleHealthGridKey(keyEventDown())
	assert.Equal(t, 1, a.healthGridSelected)
	a.handleHealthGridKey(keyEventDown())
	assert.Equal(t, 1, a.healthGridSelected)
}
