package ctrk

import (
	"encoding/binary"
	"fmt"
	"time"
)

const (
	recTypeCAN        = 1
	recTypeNMEA       = 2
	recTypeUnused3    = 3
	recTypeUnused4    = 4
	recTypeLapMarker  = 5
	recHeaderFixedLen = 14 // type(2) + total_size(2) + timestamp(10)
	recMinTotalSize   = 14
	recMaxTotalSize   = 500
)

// rawRecord is one framed record with its reconstructed epoch timestamp.
type rawRecord struct {
	Type    uint16
	Payload []byte
	EpochMs int64
}

// timestampState carries the previous raw timestamp field and previous
// reconstructed epoch across records, for the incremental reconstruction
// algorithm (C2).
type timestampState struct {
	has       bool
	prevBytes [10]byte
	prevEpoch int64
	prevMs    int
}

// reconstruct computes epoch_ms for the 10-byte timestamp field ts,
// given and updating the running state.
func (s *timestampState) reconstruct(ts [10]byte) int64 {
	millis := int(binary.LittleEndian.Uint16(ts[0:2]))

	var epoch int64
	switch {
	case !s.has:
		epoch = calendarEpochMs(ts) + int64(millis)
	case [8]byte(ts[2:10]) == [8]byte(s.prevBytes[2:10]):
		epoch = int64(millis) + (s.prevEpoch - int64(s.prevMs))
		if millis < s.prevMs {
			epoch += 1000
		}
	default:
		epoch = calendarEpochMs(ts) + int64(millis)
	}

	s.has = true
	s.prevBytes = ts
	s.prevEpoch = epoch
	s.prevMs = millis
	return epoch
}

func calendarEpochMs(ts [10]byte) int64 {
	seconds := int(ts[2])
	minutes := int(ts[3])
	hours := int(ts[4])
	// ts[5] is weekday, unused.
	day := int(ts[6])
	month := int(ts[7])
	year := int(binary.LittleEndian.Uint16(ts[8:10]))

	t := time.Date(year, time.Month(month), day, hours, minutes, seconds, 0, time.UTC)
	return t.UnixMilli()
}

// recordFramer walks the data section, yielding typed payloads with
// reconstructed epoch timestamps.
type recordFramer struct {
	data   []byte
	offset int
	ts     timestampState
	done   bool
}

func newRecordFramer(data []byte, start int) *recordFramer {
	return &recordFramer{data: data, offset: start}
}

// next returns the next record. ok is false once iteration has ended;
// err is non-nil only for a malformed record (ErrMalformedRecord),
// never for clean end-of-stream.
func (f *recordFramer) next() (rawRecord, bool, error) {
	if f.done {
		return rawRecord{}, false, nil
	}

	if f.offset+recHeaderFixedLen > len(f.data) {
		f.done = true
		return rawRecord{}, false, nil
	}

	rtype := binary.LittleEndian.Uint16(f.data[f.offset : f.offset+2])
	totalSize := int(binary.LittleEndian.Uint16(f.data[f.offset+2 : f.offset+4]))

	if rtype == 0 && totalSize == 0 {
		f.done = true
		return rawRecord{}, false, nil
	}

	if !validRecordType(rtype) {
		f.done = true
		return rawRecord{}, false, fmt.Errorf("%w: unknown record type %d", ErrMalformedRecord, rtype)
	}
	if totalSize < recMinTotalSize || totalSize > recMaxTotalSize {
		f.done = true
		return rawRecord{}, false, fmt.Errorf("%w: bad total_size %d", ErrMalformedRecord, totalSize)
	}
	if f.offset+totalSize > len(f.data) {
		f.done = true
		return rawRecord{}, false, fmt.Errorf("%w: record overruns input", ErrMalformedRecord)
	}

	var tsField [10]byte
	copy(tsField[:], f.data[f.offset+4:f.offset+14])
	epoch := f.ts.reconstruct(tsField)

	payload := f.data[f.offset+recHeaderFixedLen : f.offset+totalSize]
	f.offset += totalSize

	return rawRecord{Type: rtype, Payload: payload, EpochMs: epoch}, true, nil
}

func validRecordType(t uint16) bool {
	switch t {
	case recTypeCAN, recTypeNMEA, recTypeUnused3, recTypeUnused4, recTypeLapMarker:
		return true
	default:
		return false
	}
}
