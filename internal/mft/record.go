// Package mft parses NTFS Master File Table byte streams into a lazy,
// restartable sequence of records, applying fixups and exposing attribute
// iterators. Field offsets and the fixup algorithm are grounded on
// _examples/other_examples/a23e5d47_shubham030-recovery__internal-ntfs-ntfs.go.go,
// restructured here from a one-shot scan into a cold, forward-only iterator
// per spec §4.2 and Design Notes §9 ("Generator-style iterators").
package mft

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// DefaultRecordSize is used when the first record's header cannot be read
// or its signature is invalid, per spec §4.2 step 1.
const DefaultRecordSize = 1024

const signatureFILE = "FILE"

// Record header field offsets within the fixed-size record.
const (
	offSignature            = 0
	offUpdateSequenceOffset  = 4
	offUpdateSequenceSize    = 6
	offLogSequenceNumber     = 8
	offSequenceNumber        = 16
	offHardLinkCount         = 18
	offFirstAttributeOffset  = 20
	offFlags                 = 22
	offUsedSize              = 24
	offAllocatedSize         = 28
	offBaseRecordReference   = 32
	offNextAttributeID       = 40
	offRecordNumber          = 44
	minHeaderLenForRecordNum = 48

	sectorSize = 512
)

// Flags bits in the record header.
const (
	FlagInUse     = 0x0001
	FlagDirectory = 0x0002
)

// Header is the fixed portion of an MFT record.
type Header struct {
	Signature            string
	UpdateSequenceOffset  uint16
	UpdateSequenceSize    uint16
	LogSequenceNumber     uint64
	SequenceNumber        uint16
	HardLinkCount         uint16
	FirstAttributeOffset  uint16
	Flags                 uint16
	UsedSize              uint32
	AllocatedSize         uint32
	BaseRecordReference   uint64
	NextAttributeID       uint16
}

// IsDirectory reports whether the directory flag is set.
func (h Header) IsDirectory() bool { return h.Flags&FlagDirectory != 0 }

// InUse reports whether the in-use flag is set.
func (h Header) InUse() bool { return h.Flags&FlagInUse != 0 }

// Record is one parsed MFT slot: either a healthy record with a readable
// header and fixed-up data, or an unhealthy one whose ParseError explains
// why — the iterator never halts on either outcome.
type Record struct {
	Header       Header
	RecordNumber uint32
	Data         []byte // fixed-up record bytes, valid only when Healthy
	Healthy      bool
	ParseError   error
}

// Attributes returns an iterator over the record's attribute list, starting
// at Header.FirstAttributeOffset. Calling it on an unhealthy record returns
// an iterator that yields nothing.
func (r *Record) Attributes() *AttributeIterator {
	if !r.Healthy || int(r.Header.FirstAttributeOffset) >= len(r.Data) {
		return &AttributeIterator{}
	}
	return &AttributeIterator{data: r.Data, offset: int(r.Header.FirstAttributeOffset)}
}

// parseHeader reads the fixed header fields out of a raw (pre-fixup) record
// slice. It does not validate the signature; callers check that first.
func parseHeader(raw []byte) (Header, error) {
	if len(raw) < offNextAttributeID+2 {
		return Header{}, errors.New("record too short for header")
	}
	h := Header{
		Signature:            string(raw[offSignature : offSignature+4]),
		UpdateSequenceOffset: binary.LittleEndian.Uint16(raw[offUpdateSequenceOffset:]),
		UpdateSequenceSize:   binary.LittleEndian.Uint16(raw[offUpdateSequenceSize:]),
		LogSequenceNumber:    binary.LittleEndian.Uint64(raw[offLogSequenceNumber:]),
		SequenceNumber:       binary.LittleEndian.Uint16(raw[offSequenceNumber:]),
		HardLinkCount:        binary.LittleEndian.Uint16(raw[offHardLinkCount:]),
		FirstAttributeOffset: binary.LittleEndian.Uint16(raw[offFirstAttributeOffset:]),
		Flags:                binary.LittleEndian.Uint16(raw[offFlags:]),
		UsedSize:             binary.LittleEndian.Uint32(raw[offUsedSize:]),
		AllocatedSize:        binary.LittleEndian.Uint32(raw[offAllocatedSize:]),
		BaseRecordReference:  binary.LittleEndian.Uint64(raw[offBaseRecordReference:]),
		NextAttributeID:      binary.LittleEndian.Uint16(raw[offNextAttributeID:]),
	}
	return h, nil
}

// applyFixup verifies and replaces each sector's last two bytes per the
// fixup array, proving no sector was torn by a partial write. It mutates
// raw in place and returns an error if any sector's USN tag doesn't match,
// leaving the record marked unhealthy but not halting iteration.
func applyFixup(raw []byte, h Header) error {
	if h.UpdateSequenceSize == 0 {
		return nil
	}
	usnOff := int(h.UpdateSequenceOffset)
	usnEnd := usnOff + 2
	if usnOff < 0 || usnEnd > len(raw) {
		return errors.New("update sequence offset out of range")
	}
	usn := raw[usnOff:usnEnd]

	sectorCount := len(raw) / sectorSize
	// UpdateSequenceSize counts the USN entry plus one fixup value per sector.
	available := int(h.UpdateSequenceSize) - 1
	if available < sectorCount {
		sectorCount = available
	}

	for s := 0; s < sectorCount; s++ {
		tailPos := (s+1)*sectorSize - 2
		if tailPos+2 > len(raw) {
			break
		}
		if raw[tailPos] != usn[0] || raw[tailPos+1] != usn[1] {
			return errors.Errorf("fixup mismatch in sector %d: sector not properly terminated", s)
		}
		fixupPos := usnOff + 2 + s*2
		if fixupPos+2 > len(raw) {
			return errors.New("fixup array truncated")
		}
		raw[tailPos] = raw[fixupPos]
		raw[tailPos+1] = raw[fixupPos+1]
	}
	return nil
}

// attributeTableWellFormed does a dry walk of the attribute list, checking
// that every attribute's length is positive and in-bounds, without
// retaining any parsed values. Used to compute the RecordHealth bit per
// spec §8 invariant 3.
func attributeTableWellFormed(raw []byte, firstAttrOffset int) bool {
	offset := firstAttrOffset
	for {
		if offset+8 > len(raw) {
			return offset == len(raw) || offset == firstAttrOffset
		}
		attrType := binary.LittleEndian.Uint32(raw[offset:])
		if attrType == endMarker {
			return true
		}
		length := binary.LittleEndian.Uint32(raw[offset+4:])
		if length == 0 || int(length) > len(raw)-offset {
			return false
		}
		offset += int(length)
	}
}
