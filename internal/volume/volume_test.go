package volume

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnsupportedPlatformErrorsAreConsistent(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("this guards the non-Windows stub")
	}

	_, err := IsNTFS('C')
	assert.ErrorIs(t, err, ErrUnsupportedPlatform)

	_, err = ReadMFT('C')
	assert.ErrorIs(t, err, ErrUnsupportedPlatform)

	_, err = EnumerateDrives()
	assert.ErrorIs(t, err, ErrUnsupportedPlatform)

	assert.ErrorIs(t, EnablePrivileges(), ErrUnsupportedPlatform)
}

func TestMftReadCapSizeMatchesDocumentedBound(t *testing.T) {
	assert.Equal(t, 16*1024*1024, MftReadCapSize)
}
