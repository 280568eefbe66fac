package ctrk

import (
	"encoding/binary"
	"math"
)

// ─────────────────────────────────────────────────────────────────────────────
// Helpers — build minimal CTRK binary data, in the teacher's style
// (hand-rolled little-endian builders, no fixture files).
// ─────────────────────────────────────────────────────────────────────────────

type tsFields struct {
	Millis  uint16
	Seconds byte
	Minutes byte
	Hours   byte
	Day     byte
	Month   byte
	Year    uint16
}

func encodeTimestamp(ts tsFields) [10]byte {
	var buf [10]byte
	binary.LittleEndian.PutUint16(buf[0:2], ts.Millis)
	buf[2] = ts.Seconds
	buf[3] = ts.Minutes
	buf[4] = ts.Hours
	buf[5] = 0 // weekday, unused
	buf[6] = ts.Day
	buf[7] = ts.Month
	binary.LittleEndian.PutUint16(buf[8:10], ts.Year)
	return buf
}

func makeRecord(rtype uint16, ts tsFields, payload []byte) []byte {
	totalSize := 14 + len(payload)
	buf := make([]byte, 0, totalSize)
	var head [4]byte
	binary.LittleEndian.PutUint16(head[0:2], rtype)
	binary.LittleEndian.PutUint16(head[2:4], uint16(totalSize))
	buf = append(buf, head[:]...)
	tsBytes := encodeTimestamp(ts)
	buf = append(buf, tsBytes[:]...)
	buf = append(buf, payload...)
	return buf
}

// terminatorRecord returns a full 14-byte terminator (type=0, total_size=0,
// plus an all-zero timestamp field) so it exercises the framer's explicit
// type==0/total_size==0 stop condition rather than merely running off the
// end of the input.
func terminatorRecord() []byte {
	return make([]byte, recHeaderFixedLen)
}

// baseHeader builds a minimal valid header region: "HEAD" magic padded to
// headerEntryStart, followed (when fl is non-nil) by one well-formed
// header entry per finish-line tag: [u32 length][u8 name length][tag]
// [8-byte double]. The header walk steps over those entries, so the data
// section starts right after the returned bytes, provided the bytes
// appended next fail the entry check (a terminator's zero length, or a
// record whose type and size read as a length far above 200).
func baseHeader(fl *FinishLine) []byte {
	buf := make([]byte, headerEntryStart)
	copy(buf[0:4], ctrkMagic)

	if fl != nil {
		writeTag := func(tag []byte, v float64) {
			var entry [5]byte
			binary.LittleEndian.PutUint32(entry[0:4], uint32(5+len(tag)+8))
			entry[4] = byte(len(tag))
			buf = append(buf, entry[:]...)
			buf = append(buf, tag...)
			buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v))
		}
		writeTag(finishLineTags[0], fl.P1Lat)
		writeTag(finishLineTags[1], fl.P1Lng)
		writeTag(finishLineTags[2], fl.P2Lat)
		writeTag(finishLineTags[3], fl.P2Lng)
	}

	return buf
}

func makeCTRK(fl *FinishLine, records ...[]byte) []byte {
	data := baseHeader(fl)
	for _, r := range records {
		data = append(data, r...)
	}
	data = append(data, terminatorRecord()...)
	return data
}
