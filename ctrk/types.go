package ctrk

import "github.com/google/uuid"

// Mode selects how laps are tracked while decoding.
type Mode int

const (
	// ModeContinuous decodes the whole byte stream in one pass, detecting
	// laps geometrically against the header finish line (C6).
	ModeContinuous Mode = iota
	// ModePerLap partitions the stream at every type-5 lap marker and
	// re-runs the decoder on each partition with fully reset state (C8),
	// matching the native reference decoder's per-lap invocation.
	ModePerLap
)

// Config selects decoding behavior. There are no environment variables
// and no persisted state; the decoded samples are fully determined by
// (data, Config). Only Diagnostics.RunID, a fresh random UUID, differs
// between runs.
type Config struct {
	Mode Mode
}

// FinishLine is the two-point geographic segment used for geometric lap
// detection (C6). Absent (nil) disables lap detection; every sample is
// then lap 1.
type FinishLine struct {
	P1Lat, P1Lng float64
	P2Lat, P2Lng float64
}

const noFixSentinel = 9999.0

// gpsFix is the internal "no fix yet" sum type suggested by the source's
// re-architecture notes: Unfixed | Fixed(lat, lng). It collapses to the
// 9999.0 sentinel only when a Sample is built, for bit-compatibility with
// downstream consumers that expect the native decoder's convention.
type gpsFix struct {
	ok       bool
	lat, lng float64
	speedKts float64
}

func (g gpsFix) lat9999() float64 {
	if !g.ok {
		return noFixSentinel
	}
	return g.lat
}

func (g gpsFix) lng9999() float64 {
	if !g.ok {
		return noFixSentinel
	}
	return g.lng
}

// channelState is the last-known-value cache for every CAN channel this
// vehicle family exposes (C3). It replaces the source's string-keyed
// dictionary with named, statically-typed fields (spec §9).
type channelState struct {
	RPM        uint16
	Gear       uint8
	TPS        uint16
	APS        uint16
	Launch     bool
	TCS        bool
	SCS        bool
	LIF        bool
	WaterTemp  uint8
	IntakeTemp uint8
	AccelX     uint16
	AccelY     uint16
	LeanRaw    uint16 // magnitude form, 9000 ± truncated deviation, always >= 9000
	LeanSigned uint16 // signed form, 9000 ± truncated deviation, never negative (see spec §4.3)
	Pitch      uint16
	FrontBrake uint16
	RearBrake  uint16
	FrontSpeed uint16
	RearSpeed  uint16
	RABS       bool
	FABS       bool
}

// Sample is one row of output at a single emission instant: the lap
// number, reconstructed epoch time, GPS triplet, and a full snapshot of
// channel state (C5).
type Sample struct {
	Lap         uint32
	EpochMs     int64
	Lat         float64
	Lng         float64
	SpeedKnots  float64
	Fuel        uint32
	Raw         channelState
}

// Calibrated returns the engineering-unit view of this sample (C7).
func (s Sample) Calibrated() CalibratedSample {
	return CalibratedSample{
		Lap:          s.Lap,
		EpochMs:      s.EpochMs,
		Lat:          s.Lat,
		Lng:          s.Lng,
		SpeedKmh:     CalibrateGPSSpeed(s.SpeedKnots),
		FuelCc:       CalibrateFuel(s.Fuel),
		RPM:          CalibrateRPM(s.Raw.RPM),
		Gear:         s.Raw.Gear,
		TPSPercent:   CalibrateThrottle(s.Raw.TPS),
		APSPercent:   CalibrateThrottle(s.Raw.APS),
		Launch:       s.Raw.Launch,
		TCS:          s.Raw.TCS,
		SCS:          s.Raw.SCS,
		LIF:          s.Raw.LIF,
		WaterTempC:   CalibrateTemperature(s.Raw.WaterTemp),
		IntakeTempC:  CalibrateTemperature(s.Raw.IntakeTemp),
		AccelXG:      CalibrateAcceleration(s.Raw.AccelX),
		AccelYG:      CalibrateAcceleration(s.Raw.AccelY),
		LeanDeg:      CalibrateLean(s.Raw.LeanRaw),
		LeanSignedDeg: CalibrateLean(s.Raw.LeanSigned),
		PitchDegS:    CalibratePitch(s.Raw.Pitch),
		FrontBrakeBar: CalibrateBrake(s.Raw.FrontBrake),
		RearBrakeBar:  CalibrateBrake(s.Raw.RearBrake),
		FrontSpeedKmh: CalibrateWheelSpeed(s.Raw.FrontSpeed),
		RearSpeedKmh:  CalibrateWheelSpeed(s.Raw.RearSpeed),
		RABS:          s.Raw.RABS,
		FABS:          s.Raw.FABS,
	}
}

// CalibratedSample is the engineering-unit view of a Sample (C7).
type CalibratedSample struct {
	Lap           uint32
	EpochMs       int64
	Lat, Lng      float64
	SpeedKmh      float64
	FuelCc        float64
	RPM           float64
	Gear          uint8
	TPSPercent    float64
	APSPercent    float64
	Launch        bool
	TCS           bool
	SCS           bool
	LIF           bool
	WaterTempC    float64
	IntakeTempC   float64
	AccelXG       float64
	AccelYG       float64
	LeanDeg       float64
	LeanSignedDeg float64
	PitchDegS     float64
	FrontBrakeBar float64
	RearBrakeBar  float64
	FrontSpeedKmh float64
	RearSpeedKmh  float64
	RABS          bool
	FABS          bool
}

// Diagnostics is the semantic-error counter surface returned alongside
// the sample sequence (spec §7). Structural failures are returned as an
// error instead; everything recoverable lands here.
type Diagnostics struct {
	RunID            uuid.UUID
	RecordCounts     map[uint16]int
	ChecksumFailures int
	ShortCANPayloads int
	UnknownCANIDs    int
}

func newDiagnostics() Diagnostics {
	return Diagnostics{
		RunID:        uuid.New(),
		RecordCounts: make(map[uint16]int),
	}
}
