package mft

import "encoding/binary"

// DataRun is one contiguous extent of a non-resident attribute, mapping a
// run of virtual cluster numbers to a starting logical cluster number.
// Grounded on the shubham030-recovery example's parseDataRuns, generalized
// with an explicit declared-bound check per spec §4.2 edge cases.
type DataRun struct {
	StartLCN int64
	Length   uint64
	Sparse   bool
}

// NonResidentHeader is the fixed portion of a non-resident attribute body,
// following the common 16-byte attribute header.
type NonResidentHeader struct {
	StartVCN        uint64
	EndVCN          uint64
	DataRunsOffset  uint16
	CompressionUnit uint16
	AllocatedSize   uint64
	RealSize        uint64
	InitializedSize uint64
}

// ParseNonResidentHeader decodes the non-resident-specific header fields
// from a full attribute body (as stored in Attribute.Value for non-resident
// attributes).
func ParseNonResidentHeader(raw []byte) (NonResidentHeader, error) {
	if len(raw) < 64 {
		return NonResidentHeader{}, errDataRunOutOfRange
	}
	return NonResidentHeader{
		StartVCN:        binary.LittleEndian.Uint64(raw[16:]),
		EndVCN:          binary.LittleEndian.Uint64(raw[24:]),
		DataRunsOffset:  binary.LittleEndian.Uint16(raw[32:]),
		CompressionUnit: binary.LittleEndian.Uint16(raw[34:]),
		AllocatedSize:   binary.LittleEndian.Uint64(raw[40:]),
		RealSize:        binary.LittleEndian.Uint64(raw[48:]),
		InitializedSize: binary.LittleEndian.Uint64(raw[56:]),
	}, nil
}

// ParseDataRuns decodes the data-run list of a non-resident attribute. If
// the run list's cumulative length, as computed, would exceed maxClusters
// (the attribute's own declared bound, when known and positive), parsing
// stops and an error is returned alongside whatever runs were decoded so
// far, per spec §4.2: "surface error, continue with the next attribute."
func ParseDataRuns(raw []byte, runsOffset uint16, maxClusters uint64) ([]DataRun, error) {
	if int(runsOffset) >= len(raw) {
		return nil, nil
	}
	data := raw[runsOffset:]
	var runs []DataRun
	var currentLCN int64
	var totalClusters uint64

	for i := 0; i < len(data); {
		header := data[i]
		if header == 0 {
			break
		}
		lenBytes := int(header & 0x0F)
		offBytes := int(header >> 4)
		if i+1+lenBytes+offBytes > len(data) {
			return runs, errDataRunOutOfRange
		}

		var length uint64
		for j := 0; j < lenBytes; j++ {
			length |= uint64(data[i+1+j]) << (8 * j)
		}

		sparse := offBytes == 0
		var offset int64
		if !sparse {
			for j := 0; j < offBytes; j++ {
				offset |= int64(data[i+1+lenBytes+j]) << (8 * j)
			}
			if data[i+lenBytes+offBytes]&0x80 != 0 {
				for j := offBytes; j < 8; j++ {
					offset |= int64(0xFF) << (8 * j)
				}
			}
			currentLCN += offset
		}

		totalClusters += length
		if maxClusters > 0 && totalClusters > maxClusters {
			return runs, errDataRunOutOfRange
		}

		runs = append(runs, DataRun{StartLCN: currentLCN, Length: length, Sparse: sparse})
		i += 1 + lenBytes + offBytes
	}

	return runs, nil
}
