//go:build !windows

package volume

func enablePrivileges() error {
	return ErrUnsupportedPlatform
}

func queryVolumeData(_ byte) (NTFSVolumeData, error) {
	return NTFSVolumeData{}, ErrUnsupportedPlatform
}

func readMFT(_ byte) ([]byte, error) {
	return nil, ErrUnsupportedPlatform
}

func enumerateDrives() ([]byte, error) {
	return nil, ErrUnsupportedPlatform
}
