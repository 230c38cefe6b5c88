//go:build !windows

package elevation

func isElevated() (bool, error) {
	return false, ErrUnsupportedPlatform
}

func relaunch(_ []string) (int, error) {
	return 0, ErrUnsupportedPlatform
}
