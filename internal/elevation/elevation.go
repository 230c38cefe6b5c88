// Package elevation implements the privilege-elevation handshake: detect
// whether the current process already holds administrator rights, and if
// not, relaunch the same command under the OS's elevation verb and block
// on the child, propagating its exit code, per spec §4.8 / §6.
package elevation

import "github.com/pkg/errors"

// ErrUnsupportedPlatform is returned on platforms with no notion of the
// Windows UAC elevation verb.
var ErrUnsupportedPlatform = errors.New("elevation: not supported on this platform")

// IsElevated reports whether the current process token already carries
// administrator privileges.
func IsElevated() (bool, error) {
	return isElevated()
}

// Relaunch re-invokes the current executable with argv under the "run as
// administrator" shell verb and blocks until the child exits, returning
// its exit code.
func Relaunch(argv []string) (exitCode int, err error) {
	return relaunch(argv)
}
