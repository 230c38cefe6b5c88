package pipeline

import (
	"context"
	"encoding/binary"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ntfsview/ntfsview/internal/fuzzyindex"
)

const testRecordSize = 1024

// buildRecord mirrors internal/mft's synthetic record builder, duplicated
// here (rather than imported) since it is a test-only helper and the mft
// package does not export it.
func buildRecord(t *testing.T, name string, parentRef uint64) []byte {
	t.Helper()
	raw := make([]byte, testRecordSize)
	copy(raw[0:4], "FILE")

	usnOffset := uint16(0x30)
	sectorSize := 512
	sectorCount := testRecordSize / sectorSize
	usnSize := uint16(sectorCount + 1)
	binary.LittleEndian.PutUint16(raw[4:], usnOffset)
	binary.LittleEndian.PutUint16(raw[6:], usnSize)
	binary.LittleEndian.PutUint16(raw[22:], 0x0001) // in-use
	binary.LittleEndian.PutUint32(raw[28:], uint32(testRecordSize))

	firstAttrOffset := uint16(0x40)
	binary.LittleEndian.PutUint16(raw[20:], firstAttrOffset)

	nameUTF16 := make([]byte, 0, len(name)*2)
	for _, r := range name {
		nameUTF16 = binary.LittleEndian.AppendUint16(nameUTF16, uint16(r))
	}
	fileNameFixedLen := 0x42
	valueLen := fileNameFixedLen + len(nameUTF16)
	attrHeaderLen := 24
	attrTotalLen := attrHeaderLen + valueLen
	if pad := attrTotalLen % 8; pad != 0 {
		attrTotalLen += 8 - pad
	}

	attrOff := int(firstAttrOffset)
	binary.LittleEndian.PutUint32(raw[attrOff:], 0x30) // $FILE_NAME
	binary.LittleEndian.PutUint32(raw[attrOff+4:], uint32(attrTotalLen))
	raw[attrOff+8] = 0
	binary.LittleEndian.PutUint32(raw[attrOff+16:], uint32(valueLen))
	binary.LittleEndian.PutUint16(raw[attrOff+20:], uint16(attrHeaderLen))

	valueOff := attrOff + attrHeaderLen
	binary.LittleEndian.PutUint64(raw[valueOff:], parentRef)
	raw[valueOff+0x40] = byte(len(name))
	raw[valueOff+0x41] = 1 // Win32
	copy(raw[valueOff+0x42:], nameUTF16)

	endMarkerOff := attrOff + attrTotalLen
	binary.LittleEndian.PutUint32(raw[endMarkerOff:], 0xFFFFFFFF)

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

func TestRunEmitsFullEventSequenceForOneHealthyRecord(t *testing.T) {
	root := buildRecord(t, ".", 0)
	root[22+1] = 0x00
	binary.LittleEndian.PutUint16(root[22:], 0x0003) // in-use + directory
	file := buildRecord(t, "report.txt", 5)

	stream := append(append([]byte{}, root...), file...)
	sources := []Source{{FileIndex: 0, DriveLetter: 'C', Data: stream}}

	idx := fuzzyindex.New()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var events []Event
	for ev := range Run(ctx, sources, idx) {
		events = append(events, ev)
	}

	require.NotEmpty(t, events)
	assert.Equal(t, EventFileSizeDiscovered, events[0].Kind)
	assert.Equal(t, EventRecordSizeDiscovered, events[1].Kind)
	assert.Equal(t, EventComplete, events[len(events)-1].Kind)

	var sawDiscovered bool
	for _, ev := range events {
		if ev.Kind == EventDiscoveredFiles {
			for _, f := range ev.DiscoveredMany {
				if f.FullPath == `C:\report.txt` {
					sawDiscovered = true
				}
			}
		}
	}
	assert.True(t, sawDiscovered, "report.txt under root should resolve to C:\\report.txt")
}

func TestSourcesOfNoViewsIsEmpty(t *testing.T) {
	sources := Sources(nil)
	assert.Empty(t, sources)
}

func TestEventKindStringsAreDistinct(t *testing.T) {
	seen := map[string]bool{}
	for k := EventFileSizeDiscovered; k <= EventComplete; k++ {
		s := k.String()
		assert.False(t, seen[s], "duplicate String() for EventKind %d", k)
		seen[s] = true
	}
}
