package mft

import (
	"encoding/binary"
	"strings"
	"time"
	"unicode/utf16"

	"github.com/pkg/errors"
)

// NameType distinguishes the several File Name attributes a record may
// carry (Win32 long name, legacy 8.3 DOS name, POSIX, or both).
type NameType uint8

// Namespace values for FileNameAttribute.NameType.
const (
	NamePOSIX      NameType = 0
	NameWin32      NameType = 1
	NameDOS        NameType = 2
	NameWin32AndDOS NameType = 3
)

// FileNameAttribute is the decoded content of a $FILE_NAME (0x30)
// attribute, per spec §3.
type FileNameAttribute struct {
	ParentRecordNumber   uint64
	ParentSequenceNumber uint16
	AllocatedSize        uint64
	RealSize             uint64
	Flags                uint32
	Name                 string
	NameType             NameType
	Created              time.Time
	Modified             time.Time
	MFTModified          time.Time
	Accessed             time.Time
}

const fileNameFixedLen = 0x42

// ParseFileNameAttribute decodes a resident $FILE_NAME attribute value.
func ParseFileNameAttribute(value []byte) (FileNameAttribute, error) {
	if len(value) < fileNameFixedLen {
		return FileNameAttribute{}, errors.New("file name attribute shorter than fixed header")
	}
	parentRef := binary.LittleEndian.Uint64(value[0:8])
	fn := FileNameAttribute{
		ParentRecordNumber:   parentRef & 0x0000FFFFFFFFFFFF,
		ParentSequenceNumber: uint16(parentRef >> 48),
		Created:              filetimeToTime(binary.LittleEndian.Uint64(value[0x08:])),
		Modified:              filetimeToTime(binary.LittleEndian.Uint64(value[0x10:])),
		MFTModified:           filetimeToTime(binary.LittleEndian.Uint64(value[0x18:])),
		Accessed:              filetimeToTime(binary.LittleEndian.Uint64(value[0x20:])),
		AllocatedSize:         binary.LittleEndian.Uint64(value[0x28:]),
		RealSize:              binary.LittleEndian.Uint64(value[0x30:]),
		Flags:                 binary.LittleEndian.Uint32(value[0x38:]),
		NameType:              NameType(value[0x41]),
	}

	nameLenChars := int(value[0x40])
	nameStart := fileNameFixedLen
	nameEnd := nameStart + nameLenChars*2
	if nameEnd > len(value) {
		return fn, errors.New("file name attribute name runs past attribute bounds")
	}
	fn.Name = decodeUTF16(value[nameStart:nameEnd])
	return fn, nil
}

// IsFilteredName reports whether a decoded name should be skipped when
// picking the authoritative File Name attribute, per spec §3: non-empty,
// not starting with '$', not "." or "..".
func IsFilteredName(name string) bool {
	if name == "" {
		return true
	}
	if strings.HasPrefix(name, "$") {
		return true
	}
	if name == "." || name == ".." {
		return true
	}
	return false
}

func decodeUTF16(b []byte) string {
	if len(b)%2 != 0 {
		b = b[:len(b)-1]
	}
	u16 := make([]uint16, len(b)/2)
	for i := range u16 {
		u16[i] = binary.LittleEndian.Uint16(b[i*2:])
	}
	return string(utf16.Decode(u16))
}

// filetimeEpochOffset is the number of 100ns intervals between the Windows
// FILETIME epoch (1601-01-01) and the Unix epoch (1970-01-01).
const filetimeEpochOffset = 116444736000000000

func filetimeToTime(ft uint64) time.Time {
	if ft == 0 {
		return time.Time{}
	}
	unix100ns := int64(ft) - filetimeEpochOffset
	return time.Unix(0, unix100ns*100).UTC()
}
