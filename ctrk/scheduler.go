package ctrk

// emissionScheduler gates sample emission at a 10 Hz rate, starting once
// GPS acquisition is known, and re-aligns at lap markers (C5).
type emissionScheduler struct {
	hasGPRMC    bool
	clockStart  bool
	lastEmitMs  int64
}

const emissionIntervalMs = 100

// onFirstRecord sets the clock-start time, the first record's epoch.
func (s *emissionScheduler) onFirstRecord(epochMs int64) {
	if !s.clockStart {
		s.lastEmitMs = epochMs
		s.clockStart = true
	}
}

// onGPRMC flips the GPS-acquisition gate on the first checksum-valid
// GPRMC of any status. It reports whether this call is the one that
// flipped the gate (the caller must then emit one sample timestamped at
// the clock-start time, not this record's own epoch).
func (s *emissionScheduler) onGPRMC() (justAcquired bool) {
	if s.hasGPRMC {
		return false
	}
	s.hasGPRMC = true
	return true
}

// checkEmit reports whether a sample should be emitted for the record at
// epochMs, and advances the clock if so.
func (s *emissionScheduler) checkEmit(epochMs int64) bool {
	if !s.hasGPRMC {
		return false
	}
	if epochMs-s.lastEmitMs < emissionIntervalMs {
		return false
	}
	s.lastEmitMs = epochMs
	return true
}

// onLapMarker re-aligns the clock at a type-5 record; no sample is
// emitted directly for the marker itself.
func (s *emissionScheduler) onLapMarker(epochMs int64) {
	s.lastEmitMs = epochMs
}
