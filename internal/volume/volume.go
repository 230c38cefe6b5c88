// Package volume provides privileged, low-level access to NTFS volumes: a
// raw handle on the volume or its $MFT file, NTFS geometry queried via
// FSCTL_GET_NTFS_VOLUME_DATA, and drive-letter enumeration. It is the single
// point of contact with the operating system; every other package only ever
// sees the bytes this one hands back.
package volume

import "github.com/pkg/errors"

// ErrUnsupportedPlatform is returned by every operation in this package on
// platforms other than Windows, since NTFS volume internals are a
// Windows-only concept.
var ErrUnsupportedPlatform = errors.New("volume: raw NTFS access is only supported on Windows")

// NTFSVolumeData mirrors the subset of NTFS_VOLUME_DATA_BUFFER (as returned
// by FSCTL_GET_NTFS_VOLUME_DATA) this tool cares about.
type NTFSVolumeData struct {
	VolumeSerialNumber int64
	NumberSectors      int64
	TotalClusters      int64
	FreeClusters       int64
	BytesPerSector     uint32
	BytesPerCluster    uint32
	MftStartLcn        int64
	MftValidDataLength int64
	BytesPerFileRecord uint32
}

// MftReadCapSize is the cap applied when falling back to a raw volume read
// of the $MFT, to bound memory use on severely fragmented volumes.
const MftReadCapSize = 16 * 1024 * 1024

// EnablePrivileges adjusts the current process token to hold the backup,
// restore, and security privileges that privileged volume access requires.
// It is a no-op returning ErrUnsupportedPlatform outside Windows.
func EnablePrivileges() error {
	return enablePrivileges()
}

// IsNTFS opens a handle to driveLetter and queries FSCTL_GET_NTFS_VOLUME_DATA
// to confirm the volume is formatted NTFS, per spec §4.1 validation step.
func IsNTFS(driveLetter byte) (NTFSVolumeData, error) {
	return queryVolumeData(driveLetter)
}

// ReadMFT reads the raw $MFT byte stream for driveLetter, using the
// two-stage strategy: first attempt to open and read `\\.\<L>:\$MFT`
// directly; if that fails, fall back to locating the MFT's starting
// cluster via volume geometry and reading up to MftReadCapSize bytes
// directly off the volume, per spec §4.1 edge cases.
func ReadMFT(driveLetter byte) ([]byte, error) {
	return readMFT(driveLetter)
}

// EnumerateDrives returns every currently-present drive letter ('A'..'Z'),
// per spec §4.4's `*` pattern expansion.
func EnumerateDrives() ([]byte, error) {
	return enumerateDrives()
}
