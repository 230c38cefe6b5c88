package mft

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRecordSize = 1024

// buildRecord constructs a single well-formed MFT record slot with one
// resident $FILE_NAME attribute, fixups applied, ready to be sliced into a
// synthetic stream.
func buildRecord(t *testing.T, recordSize int, name string, parentRef uint64, isDir bool) []byte {
	t.Helper()
	raw := make([]byte, recordSize)
	copy(raw[0:4], signatureFILE)

	usnOffset := uint16(0x30)
	sectorCount := recordSize / sectorSize
	usnSize := uint16(sectorCount + 1)
	binary.LittleEndian.PutUint16(raw[offUpdateSequenceOffset:], usnOffset)
	binary.LittleEndian.PutUint16(raw[offUpdateSequenceSize:], usnSize)

	flags := uint16(FlagInUse)
	if isDir {
		flags |= FlagDirectory
	}
	binary.LittleEndian.PutUint16(raw[offFlags:], flags)
	binary.LittleEndian.PutUint32(raw[offAllocatedSize:], uint32(recordSize))

	firstAttrOffset := uint16(0x40)
	binary.LittleEndian.PutUint16(raw[offFirstAttributeOffset:], firstAttrOffset)

	// Build the $FILE_NAME attribute.
	nameUTF16 := utf16Encode(name)
	valueLen := fileNameFixedLen + len(nameUTF16)
	attrHeaderLen := 24
	attrTotalLen := attrHeaderLen + valueLen
	// Pad to 8-byte alignment like real NTFS attributes.
	if pad := attrTotalLen % 8; pad != 0 {
		attrTotalLen += 8 - pad
	}

	attrOff := int(firstAttrOffset)
	binary.LittleEndian.PutUint32(raw[attrOff:], uint32(AttrFileName))
	binary.LittleEndian.PutUint32(raw[attrOff+4:], uint32(attrTotalLen))
	raw[attrOff+8] = 0 // resident
	binary.LittleEndian.PutUint32(raw[attrOff+16:], uint32(valueLen))
	binary.LittleEndian.PutUint16(raw[attrOff+20:], uint16(attrHeaderLen))

	valueOff := attrOff + attrHeaderLen
	binary.LittleEndian.PutUint64(raw[valueOff:], parentRef)
	raw[valueOff+0x40] = byte(len(name))
	raw[valueOff+0x41] = byte(NameWin32)
	copy(raw[valueOff+0x42:], nameUTF16)

	endMarkerOff := attrOff + attrTotalLen
	binary.LittleEndian.PutUint32(raw[endMarkerOff:], endMarker)

	// Apply the fixup: set each sector tail to the USN value, record the
	// original content in the fixup array, matching the real encoding.
	usn := []byte{0xAB, 0xCD}
	copy(raw[usnOffset:usnOffset+2], usn)
	for s := 0; s < sectorCount; s++ {
		tailPos := (s+1)*sectorSize - 2
		fixupPos := int(usnOffset) + 2 + s*2
		binary.LittleEndian.PutUint16(raw[fixupPos:], binary.LittleEndian.Uint16(raw[tailPos:]))
		raw[tailPos] = usn[0]
		raw[tailPos+1] = usn[1]
	}

	return raw
}

func utf16Encode(s string) []byte {
	out := make([]byte, 0, len(s)*2)
	for _, r := range s {
		out = binary.LittleEndian.AppendUint16(out, uint16(r))
	}
	return out
}

func TestParserRecordSizeDetection(t *testing.T) {
	rec := buildRecord(t, testRecordSize, "root", 0, true)
	p := NewParser(rec)
	assert.Equal(t, testRecordSize, p.RecordSize())
}

func TestParserDefaultsWhenSignatureInvalid(t *testing.T) {
	data := make([]byte, 2048)
	p := NewParser(data)
	assert.Equal(t, DefaultRecordSize, p.RecordSize())
}

func TestParserVisitsEverySlotAndCountsMatch(t *testing.T) {
	good := buildRecord(t, testRecordSize, "file.txt", 5, false)
	bad := make([]byte, testRecordSize) // no FILE signature

	stream := append(append([]byte{}, good...), bad...)
	p := NewParser(stream)
	require.Equal(t, testRecordSize, p.RecordSize())
	require.Equal(t, 2, p.Len())

	var records []*Record
	for r := range p.Records() {
		records = append(records, r)
	}
	require.Len(t, records, 2)
	assert.True(t, records[0].Healthy)
	assert.False(t, records[1].Healthy)
	assert.ErrorIs(t, records[1].ParseError, errInvalidSignature)
}

func TestParserTruncatedFinalRecordDropped(t *testing.T) {
	good := buildRecord(t, testRecordSize, "file.txt", 5, false)
	stream := append(append([]byte{}, good...), make([]byte, 100)...) // partial slot

	p := NewParser(stream)
	assert.Equal(t, 1, p.Len())
}

func TestFirstFilteredFileName(t *testing.T) {
	rec := buildRecord(t, testRecordSize, "notes.txt", 5, false)
	p := NewParser(rec)
	var got *Record
	for r := range p.Records() {
		got = r
	}
	require.NotNil(t, got)
	require.True(t, got.Healthy)

	fn, ok := FirstFilteredFileName(got)
	require.True(t, ok)
	assert.Equal(t, "notes.txt", fn.Name)
	assert.Equal(t, uint64(5), fn.ParentRecordNumber)
}

func TestFixupMismatchMarksUnhealthy(t *testing.T) {
	rec := buildRecord(t, testRecordSize, "file.txt", 5, false)
	// Corrupt a sector tail so it no longer matches the USN tag.
	rec[sectorSize-1] ^= 0xFF

	p := NewParser(rec)
	var got *Record
	for r := range p.Records() {
		got = r
	}
	require.NotNil(t, got)
	assert.False(t, got.Healthy)
	require.Error(t, got.ParseError)
}

func TestEmptyStreamProducesNoRecords(t *testing.T) {
	p := NewParser(nil)
	assert.Equal(t, 0, p.Len())
	count := 0
	for range p.Records() {
		count++
	}
	assert.Equal(t, 0, count)
}

func TestParseDataRunsRespectsDeclaredBound(t *testing.T) {
	// A single run of length 4 clusters at LCN 100, encoded with 1 length
	// byte and 1 offset byte: header 0x11, length byte 0x04, offset byte 0x64.
	buf := []byte{0x11, 0x04, 0x64, 0x00}
	runs, err := ParseDataRuns(buf, 0, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, int64(100), runs[0].StartLCN)
	assert.Equal(t, uint64(4), runs[0].Length)

	_, err = ParseDataRuns(buf, 0, 2) // declared bound smaller than the run
	assert.Error(t, err)
}
