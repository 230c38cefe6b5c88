//go:build windows

package volume

import (
	"fmt"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/windows"

	"github.com/ntfsview/ntfsview/internal/log"
)

// FSCTL_GET_NTFS_VOLUME_DATA is not exposed by golang.org/x/sys/windows, so
// it is defined here directly from the Microsoft IOCTL numbering scheme
// (winioctl.h), matching the constant used by the original dumper.
const fsctlGetNtfsVolumeData = 0x00090064

// ntfsVolumeDataBuffer mirrors NTFS_VOLUME_DATA_BUFFER's field layout.
type ntfsVolumeDataBuffer struct {
	VolumeSerialNumber         int64
	NumberSectors              int64
	TotalClusters              int64
	FreeClusters               int64
	TotalReserved              int64
	BytesPerSector             uint32
	BytesPerCluster            uint32
	BytesPerFileRecordSegment  uint32
	ClustersPerFileRecordSeg   uint32
	MftValidDataLength         int64
	MftStartLcn                int64
	Mft2StartLcn               int64
	MftZoneStart               int64
	MftZoneEnd                 int64
}

func openDriveHandle(driveLetter byte, path string) (windows.Handle, error) {
	pathPtr, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return 0, errors.Wrap(err, "volume: encode path")
	}
	handle, err := windows.CreateFile(
		pathPtr,
		windows.GENERIC_READ,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE|windows.FILE_SHARE_DELETE,
		nil,
		windows.OPEN_EXISTING,
		windows.FILE_ATTRIBUTE_NORMAL|windows.FILE_FLAG_BACKUP_SEMANTICS,
		0,
	)
	if err != nil {
		log.Warnf(fmt.Sprintf("drive %c:", driveLetter), "failed to open volume handle, did you forget to elevate? %v", err)
		return 0, errors.Wrapf(err, "volume: open %s", path)
	}
	return handle, nil
}

func queryVolumeData(driveLetter byte) (NTFSVolumeData, error) {
	path := fmt.Sprintf(`\\.\%c:`, driveLetter)
	handle, err := openDriveHandle(driveLetter, path)
	if err != nil {
		return NTFSVolumeData{}, err
	}
	defer windows.CloseHandle(handle)

	var buf ntfsVolumeDataBuffer
	var bytesReturned uint32
	err = windows.DeviceIoControl(
		handle,
		fsctlGetNtfsVolumeData,
		nil,
		0,
		(*byte)(unsafe.Pointer(&buf)),
		uint32(unsafe.Sizeof(buf)),
		&bytesReturned,
		nil,
	)
	if err != nil {
		return NTFSVolumeData{}, errors.Wrapf(err, "drive %c: does not appear to be NTFS (FSCTL_GET_NTFS_VOLUME_DATA failed)", driveLetter)
	}

	return NTFSVolumeData{
		VolumeSerialNumber: buf.VolumeSerialNumber,
		NumberSectors:      buf.NumberSectors,
		TotalClusters:      buf.TotalClusters,
		FreeClusters:       buf.FreeClusters,
		BytesPerSector:     buf.BytesPerSector,
		BytesPerCluster:    buf.BytesPerCluster,
		MftStartLcn:        buf.MftStartLcn,
		MftValidDataLength: buf.MftValidDataLength,
		BytesPerFileRecord: buf.BytesPerFileRecordSegment,
	}, nil
}

func readMFT(driveLetter byte) ([]byte, error) {
	if err := EnablePrivileges(); err != nil {
		log.Warnf(fmt.Sprintf("drive %c:", driveLetter), "continuing without confirmed backup privileges: %v", err)
	}

	data, err := readMFTDirect(driveLetter)
	if err == nil {
		return data, nil
	}
	log.Warnf(fmt.Sprintf("drive %c:", driveLetter), "direct $MFT open failed (%v), falling back to volume geometry read", err)
	return readMFTFromVolume(driveLetter)
}

// readMFTDirect opens `\\.\<L>:\$MFT` directly and reads it whole, the
// fast path that works whenever the $MFT isn't itself fragmented across a
// fixup boundary the filesystem driver can't serve through a plain handle.
func readMFTDirect(driveLetter byte) ([]byte, error) {
	path := fmt.Sprintf(`\\.\%c:\$MFT`, driveLetter)
	pathPtr, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return nil, errors.Wrap(err, "volume: encode $MFT path")
	}
	handle, err := windows.CreateFile(
		pathPtr,
		windows.GENERIC_READ,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE|windows.FILE_SHARE_DELETE,
		nil,
		windows.OPEN_EXISTING,
		windows.FILE_ATTRIBUTE_NORMAL|windows.FILE_FLAG_BACKUP_SEMANTICS,
		0,
	)
	if err != nil {
		return nil, errors.Wrap(err, "volume: open $MFT")
	}
	defer windows.CloseHandle(handle)

	var fileSize int64
	if err := windows.GetFileSizeEx(handle, &fileSize); err != nil {
		return nil, errors.Wrap(err, "volume: get $MFT size")
	}

	data := make([]byte, fileSize)
	var offset int64
	const chunkSize = 1024 * 1024
	for offset < fileSize {
		end := offset + chunkSize
		if end > fileSize {
			end = fileSize
		}
		var read uint32
		if err := windows.ReadFile(handle, data[offset:end], &read, nil); err != nil {
			return nil, errors.Wrapf(err, "volume: read $MFT at offset %d", offset)
		}
		if read == 0 {
			break
		}
		offset += int64(read)
	}
	return data[:offset], nil
}

// readMFTFromVolume falls back to reading raw clusters off the volume
// starting at the MFT's first run, capped at MftReadCapSize, per spec
// §4.1 edge cases and Open Question resolution (16MiB cap kept, logged).
func readMFTFromVolume(driveLetter byte) ([]byte, error) {
	path := fmt.Sprintf(`\\.\%c:`, driveLetter)
	handle, err := openDriveHandle(driveLetter, path)
	if err != nil {
		return nil, err
	}
	defer windows.CloseHandle(handle)

	volData, err := queryVolumeData(driveLetter)
	if err != nil {
		return nil, errors.Wrap(err, "volume: get NTFS volume data for fallback read")
	}

	mftStartOffset := volData.MftStartLcn * int64(volData.BytesPerCluster)
	readSize := int(volData.MftValidDataLength)
	if readSize > MftReadCapSize || readSize <= 0 {
		log.Warnf(fmt.Sprintf("drive %c:", driveLetter), "capping fallback MFT read to %d bytes (full valid length %d)", MftReadCapSize, volData.MftValidDataLength)
		readSize = MftReadCapSize
	}

	low := int32(uint32(mftStartOffset))
	high := int32(mftStartOffset >> 32)
	if _, err := windows.SetFilePointer(handle, low, &high, windows.FILE_BEGIN); err != nil {
		return nil, errors.Wrap(err, "volume: seek to MFT start")
	}

	data := make([]byte, readSize)
	var bytesRead uint32
	if err := windows.ReadFile(handle, data, &bytesRead, nil); err != nil {
		return nil, errors.Wrap(err, "volume: read MFT from volume")
	}
	return data[:bytesRead], nil
}

func enumerateDrives() ([]byte, error) {
	mask, err := windows.GetLogicalDrives()
	if err != nil {
		return nil, errors.Wrap(err, "volume: enumerate logical drives")
	}
	var letters []byte
	for i := 0; i < 26; i++ {
		if mask&(1<<uint(i)) != 0 {
			letters = append(letters, byte('A'+i))
		}
	}
	return letters, nil
}
