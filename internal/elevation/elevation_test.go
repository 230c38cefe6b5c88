package elevation

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnsupportedPlatformErrors(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("this guards the non-Windows stub")
	}

	_, err := IsElevated()
	assert.ErrorIs(t, err, ErrUnsupportedPlatform)

	_, err = Relaunch([]string{"mft", "dump", "C", "out.mft"})
	assert.ErrorIs(t, err, ErrUnsupportedPlatform)
}
