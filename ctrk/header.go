package ctrk

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

var ctrkMagic = []byte("HEAD")

const (
	headerScanWindow  = 500
	headerEntryStart  = 0x34
	headerEntryMinLen = 5
	headerEntryMaxLen = 200
)

var finishLineTags = [4][]byte{
	[]byte("RECORDLINE.P1.LAT("),
	[]byte("RECORDLINE.P1.LNG("),
	[]byte("RECORDLINE.P2.LAT("),
	[]byte("RECORDLINE.P2.LNG("),
}

// scanHeader validates the magic, extracts the finish line (if present),
// and locates the start of the data section (C1).
func scanHeader(data []byte) (*FinishLine, int, error) {
	if len(data) < len(ctrkMagic) {
		return nil, 0, fmt.Errorf("%w: input too short", ErrInvalidMagic)
	}
	if !bytes.Equal(data[:len(ctrkMagic)], ctrkMagic) {
		return nil, 0, ErrInvalidMagic
	}

	fl, err := extractFinishLine(data)
	if err != nil {
		return nil, 0, err
	}

	dataStart, err := walkHeaderEntries(data)
	if err != nil {
		return nil, 0, err
	}

	return fl, dataStart, nil
}

func extractFinishLine(data []byte) (*FinishLine, error) {
	window := data
	if len(window) > headerScanWindow {
		window = window[:headerScanWindow]
	}

	values := make([]float64, 4)
	for i, tag := range finishLineTags {
		idx := bytes.Index(window, tag)
		if idx < 0 {
			return nil, nil // any tag missing => lap detection disabled
		}
		start := idx + len(tag)
		if start+8 > len(data) {
			return nil, fmt.Errorf("%w: finish-line tag truncated", ErrHeaderTooShort)
		}
		bits := binary.LittleEndian.Uint64(data[start : start+8])
		values[i] = math.Float64frombits(bits)
	}

	return &FinishLine{
		P1Lat: values[0],
		P1Lng: values[1],
		P2Lat: values[2],
		P2Lng: values[3],
	}, nil
}

func walkHeaderEntries(data []byte) (int, error) {
	offset := headerEntryStart
	if offset > len(data) {
		return 0, fmt.Errorf("%w: header region", ErrHeaderTooShort)
	}

	for offset+5 <= len(data) {
		length := int(binary.LittleEndian.Uint32(data[offset : offset+4]))
		nameLen := int(data[offset+4])

		if length < headerEntryMinLen || length > headerEntryMaxLen {
			break
		}
		if nameLen < 1 || nameLen > length-5 {
			break
		}
		if offset+length > len(data) {
			break
		}

		offset += length
	}

	return offset, nil
}
