package ctrk

import "encoding/binary"

// Decoder decodes one CTRK recording. It owns all state exclusively; the
// input byte sequence is borrowed read-only and never mutated.
type Decoder struct {
	data       []byte
	cfg        Config
	finishLine *FinishLine
	dataStart  int
}

// Open validates the header and locates the data section (C1). It does
// not decode any records yet.
func Open(data []byte, cfg Config) (*Decoder, error) {
	fl, start, err := scanHeader(data)
	if err != nil {
		return nil, err
	}
	return &Decoder{data: data, cfg: cfg, finishLine: fl, dataStart: start}, nil
}

// Parse decodes the full recording and materializes every emitted sample.
func (d *Decoder) Parse() ([]Sample, Diagnostics, error) {
	var samples []Sample
	diag, err := d.ParseFunc(func(s Sample) {
		samples = append(samples, s)
	})
	return samples, diag, err
}

// ParseFunc decodes the full recording, invoking on for every emitted
// sample instead of materializing a slice.
func (d *Decoder) ParseFunc(on func(Sample)) (Diagnostics, error) {
	diag := newDiagnostics()
	body := d.data[d.dataStart:]

	if d.cfg.Mode == ModePerLap {
		partitions := splitAtLapMarkers(body)
		for i, part := range partitions {
			if err := decodePartition(part, uint32(i+1), false, nil, &diag, on); err != nil {
				return diag, err
			}
		}
		return diag, nil
	}

	err := decodePartition(body, 1, true, d.finishLine, &diag, on)
	return diag, err
}

// decodePartition runs C2–C6 over one contiguous slice of the data
// section, parameterized by whether lap tracking is geometric (C6,
// continuous mode) or externally supplied (C8, per-lap mode). It is the
// single inner routine both modes share, per the source's re-architecture
// notes (spec §9) — continuous mode calls it once over the whole data
// section, per-lap mode calls it once per lap-marker-delimited partition
// with fully reset state each time.
func decodePartition(data []byte, lapNumber uint32, useGeometry bool, finishLine *FinishLine, diag *Diagnostics, emit func(Sample)) error {
	framer := newRecordFramer(data, 0)

	var state channelState
	var fuel uint64
	var gps gpsFix
	sched := &emissionScheduler{}

	var engine *lapEngine
	if useGeometry {
		engine = newLapEngine(finishLine)
	}
	currentLap := lapNumber

	snapshot := func(epochMs int64) Sample {
		if useGeometry {
			if engine.update(gps.lat9999(), gps.lng9999()) {
				fuel = 0
			}
			currentLap = engine.currentLap
		}
		return Sample{
			Lap:        currentLap,
			EpochMs:    epochMs,
			Lat:        gps.lat9999(),
			Lng:        gps.lng9999(),
			SpeedKnots: gps.speedKts,
			Fuel:       uint32(fuel),
			Raw:        state,
		}
	}

	var seenAny bool
	var lastEpoch int64

	for {
		rec, ok, err := framer.next()
		if !ok {
			if err != nil {
				return err
			}
			break
		}

		if !seenAny {
			sched.onFirstRecord(rec.EpochMs)
			seenAny = true
		}
		lastEpoch = rec.EpochMs
		diag.RecordCounts[rec.Type]++

		switch rec.Type {
		case recTypeCAN:
			decodeCAN(rec.Payload, &state, &fuel, diag)

		case recTypeNMEA:
			fix, isGPRMC, checksumValid := decodeGPRMC(rec.Payload)
			if isGPRMC {
				if !checksumValid {
					diag.ChecksumFailures++
				} else {
					justAcquired := sched.onGPRMC()
					if fix.ok {
						gps = fix
					}
					if justAcquired {
						emit(snapshot(sched.lastEmitMs))
					}
				}
			}

		case recTypeLapMarker:
			sched.onLapMarker(rec.EpochMs)
		}

		if sched.checkEmit(rec.EpochMs) {
			emit(snapshot(rec.EpochMs))
		}
	}

	if seenAny && sched.hasGPRMC {
		emit(snapshot(lastEpoch))
	}
	return nil
}

// splitAtLapMarkers partitions a data section into consecutive slices,
// each ending right after a type-5 lap-marker record, for the per-lap
// driver (C8). It re-derives record boundaries with the same framing
// constraints as recordFramer but does not reconstruct timestamps or
// decode payloads — it only needs to know where each record ends.
func splitAtLapMarkers(data []byte) [][]byte {
	var parts [][]byte
	start := 0
	offset := 0

	for offset+recHeaderFixedLen <= len(data) {
		rtype := binary.LittleEndian.Uint16(data[offset : offset+2])
		totalSize := int(binary.LittleEndian.Uint16(data[offset+2 : offset+4]))

		if rtype == 0 && totalSize == 0 {
			break
		}
		if !validRecordType(rtype) || totalSize < recMinTotalSize || totalSize > recMaxTotalSize {
			break
		}
		if offset+totalSize > len(data) {
			break
		}

		offset += totalSize
		if rtype == recTypeLapMarker {
			parts = append(parts, data[start:offset])
			start = offset
		}
	}

	if start < len(data) {
		parts = append(parts, data[start:])
	}
	return parts
}
