package mft

import "encoding/binary"

// Parser iterates a fixed-size MFT record stream. It is cold, finite, and
// forward-only: a fresh Records() call always restarts from slot zero, per
// Design Notes §9.
type Parser struct {
	data       []byte
	recordSize int
}

// NewParser constructs a Parser over data, detecting the record size from
// the first record's header (its AllocatedSize field, since every record's
// allocation is the volume's fixed record size) and falling back to
// DefaultRecordSize when that read fails or the signature is invalid, per
// spec §4.2 step 1.
func NewParser(data []byte) *Parser {
	return &Parser{data: data, recordSize: detectRecordSize(data)}
}

// RecordSize returns the record size this parser is using.
func (p *Parser) RecordSize() int { return p.recordSize }

// Len returns the number of whole record slots in the stream, i.e.
// floor(len(data) / record_size), per spec §8 invariant 1.
func (p *Parser) Len() int {
	if p.recordSize <= 0 {
		return 0
	}
	return len(p.data) / p.recordSize
}

func detectRecordSize(data []byte) int {
	if len(data) < offAllocatedSize+4 {
		return DefaultRecordSize
	}
	if string(data[0:4]) != signatureFILE {
		return DefaultRecordSize
	}
	allocSize := binary.LittleEndian.Uint32(data[offAllocatedSize:])
	if allocSize == 0 || int(allocSize) > len(data) {
		return DefaultRecordSize
	}
	return int(allocSize)
}

// Records returns a channel of parsed records, one per slot, in order.
// Truncated final slots (shorter than record_size) terminate iteration
// silently, per spec §4.2 edge cases; invalid signatures or fixup failures
// never halt iteration, only mark that one record unhealthy.
func (p *Parser) Records() <-chan *Record {
	out := make(chan *Record)
	go func() {
		defer close(out)
		if p.recordSize <= 0 {
			return
		}
		total := len(p.data) / p.recordSize
		for i := 0; i < total; i++ {
			start := i * p.recordSize
			end := start + p.recordSize
			slice := p.data[start:end]
			out <- parseSlot(slice, uint32(i))
		}
	}()
	return out
}

// parseSlot parses one record-sized slice. It never returns nil: an
// unparseable slot comes back Healthy=false with ParseError set.
func parseSlot(raw []byte, recordNumber uint32) *Record {
	if len(raw) < 4 || string(raw[0:4]) != signatureFILE {
		return &Record{
			RecordNumber: recordNumber,
			Healthy:      false,
			ParseError:   errInvalidSignature,
		}
	}

	header, err := parseHeader(raw)
	if err != nil {
		return &Record{RecordNumber: recordNumber, Healthy: false, ParseError: err}
	}

	// Fixups must be applied to a private copy: raw aliases the caller's
	// backing buffer and must not be mutated across records sharing it.
	fixedUp := make([]byte, len(raw))
	copy(fixedUp, raw)
	if err := applyFixup(fixedUp, header); err != nil {
		return &Record{
			Header:       header,
			RecordNumber: recordNumber,
			Healthy:      false,
			ParseError:   err,
		}
	}

	wellFormed := attributeTableWellFormed(fixedUp, int(header.FirstAttributeOffset))

	rec := &Record{
		Header:       header,
		RecordNumber: recordNumber,
		Data:         fixedUp,
		Healthy:      wellFormed,
	}
	if !wellFormed {
		rec.ParseError = errAttributeLengthOutOfRange
	}
	return rec
}

// FirstFilteredFileName returns the first File Name attribute on the
// record whose name IsFilteredName does not reject, which is authoritative when multiple
// File Name attributes exist (e.g. a DOS short name), per spec §3.
func FirstFilteredFileName(r *Record) (FileNameAttribute, bool) {
	if !r.Healthy {
		return FileNameAttribute{}, false
	}
	it := r.Attributes()
	for {
		attr, ok := it.Next()
		if !ok {
			return FileNameAttribute{}, false
		}
		if attr.Type != AttrFileName || attr.NonResident {
			continue
		}
		fn, err := ParseFileNameAttribute(attr.Value)
		if err != nil {
			continue
		}
		if IsFilteredName(fn.Name) {
			continue
		}
		return fn, true
	}
}

// FirstStandardInfo returns the record's $STANDARD_INFORMATION attribute,
// used as a timestamp fallback per spec §3.
func FirstStandardInfo(r *Record) (StandardInfoAttribute, bool) {
	if !r.Healthy {
		return StandardInfoAttribute{}, false
	}
	it := r.Attributes()
	for {
		attr, ok := it.Next()
		if !ok {
			return StandardInfoAttribute{}, false
		}
		if attr.Type != AttrStandardInformation || attr.NonResident {
			continue
		}
		si, err := ParseStandardInfoAttribute(attr.Value)
		if err != nil {
			continue
		}
		return si, true
	}
}
