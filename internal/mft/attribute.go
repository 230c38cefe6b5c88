package mft

import "encoding/binary"

// Attribute type codes, per spec §3.
const (
	AttrStandardInformation AttributeType = 0x10
	AttrAttributeList       AttributeType = 0x20
	AttrFileName            AttributeType = 0x30
	AttrObjectID            AttributeType = 0x40
	AttrSecurityDescriptor  AttributeType = 0x50
	AttrVolumeName          AttributeType = 0x60
	AttrVolumeInformation   AttributeType = 0x70
	AttrData                AttributeType = 0x80
	AttrIndexRoot           AttributeType = 0x90
	AttrIndexAllocation     AttributeType = 0xA0
	AttrBitmap              AttributeType = 0xB0
	AttrReparsePoint        AttributeType = 0xC0

	endMarker uint32 = 0xFFFFFFFF
)

// AttributeType identifies the kind of attribute; unlisted values are
// opaque per spec §3.
type AttributeType uint32

// Attribute is one entry in a record's attribute list.
type Attribute struct {
	Type        AttributeType
	Length      uint32
	NonResident bool
	NameLength  uint8
	Flags       uint16
	AttributeID uint16
	Value       []byte // resident value, or the non-resident attribute body
}

// AttributeIterator walks a record's attribute list starting at the
// first-attribute offset, stopping at the 0xFFFFFFFF end marker or when a
// length field is non-positive, per spec §4.2.
type AttributeIterator struct {
	data   []byte
	offset int
	err    error
}

// Next advances the iterator. It returns false once the end marker or an
// unrecoverable structural error is reached; Err reports which.
func (it *AttributeIterator) Next() (Attribute, bool) {
	for {
		if it.data == nil || it.offset+8 > len(it.data) {
			return Attribute{}, false
		}
		attrType := binary.LittleEndian.Uint32(it.data[it.offset:])
		if attrType == endMarker {
			return Attribute{}, false
		}
		length := binary.LittleEndian.Uint32(it.data[it.offset+4:])
		if length == 0 || int(length) > len(it.data)-it.offset {
			it.err = errAttributeLengthOutOfRange
			return Attribute{}, false
		}

		raw := it.data[it.offset : it.offset+int(length)]
		a, err := parseAttributeHeader(raw)
		it.offset += int(length)
		if err != nil {
			// Malformed single attribute: log-and-continue per spec §7,
			// the caller surfaces the error but the record stays healthy.
			it.err = err
			continue
		}
		return a, true
	}
}

// Err reports the last non-fatal per-attribute parse error encountered, if
// any. Calling Err clears it; Next does not.
func (it *AttributeIterator) Err() error {
	err := it.err
	it.err = nil
	return err
}

func parseAttributeHeader(raw []byte) (Attribute, error) {
	if len(raw) < 16 {
		return Attribute{}, errAttributeTooShort
	}
	attrType := AttributeType(binary.LittleEndian.Uint32(raw[0:]))
	length := binary.LittleEndian.Uint32(raw[4:])
	nonResident := raw[8] != 0
	nameLength := raw[9]
	flags := binary.LittleEndian.Uint16(raw[12:])
	attrID := binary.LittleEndian.Uint16(raw[14:])

	a := Attribute{
		Type:        attrType,
		Length:      length,
		NonResident: nonResident,
		NameLength:  nameLength,
		Flags:       flags,
		AttributeID: attrID,
	}

	if nonResident {
		a.Value = raw // caller decodes via ParseNonResidentHeader
		return a, nil
	}

	if len(raw) < 24 {
		return a, errAttributeTooShort
	}
	valueLength := binary.LittleEndian.Uint32(raw[16:])
	valueOffset := binary.LittleEndian.Uint16(raw[20:])
	start := int(valueOffset)
	end := start + int(valueLength)
	if start < 0 || end > len(raw) || end < start {
		return a, errAttributeValueOutOfRange
	}
	a.Value = raw[start:end]
	return a, nil
}
