package mft

import (
	"encoding/binary"
	"time"

	"github.com/pkg/errors"
)

// StandardInfoAttribute is the decoded content of a $STANDARD_INFORMATION
// (0x10) attribute: the authoritative timestamps, used as a fallback when
// the File Name attribute's timestamps are absent, per spec §3.
type StandardInfoAttribute struct {
	Created  time.Time
	Modified time.Time
	MFTModified time.Time
	Accessed time.Time
}

const standardInfoMinLen = 0x20

// ParseStandardInfoAttribute decodes a resident $STANDARD_INFORMATION value.
func ParseStandardInfoAttribute(value []byte) (StandardInfoAttribute, error) {
	if len(value) < standardInfoMinLen {
		return StandardInfoAttribute{}, errors.New("standard information attribute shorter than fixed header")
	}
	return StandardInfoAttribute{
		Created:     filetimeToTime(binary.LittleEndian.Uint64(value[0x00:])),
		Modified:    filetimeToTime(binary.LittleEndian.Uint64(value[0x08:])),
		MFTModified: filetimeToTime(binary.LittleEndian.Uint64(value[0x10:])),
		Accessed:    filetimeToTime(binary.LittleEndian.Uint64(value[0x18:])),
	}, nil
}
