package ctrk

// Package-level calibration maps (C7): stateless, raw integer -> engineering
// unit. All are injective on their natural domain up to integer rounding.

// CalibrateRPM converts a raw engine-speed reading to RPM.
func CalibrateRPM(raw uint16) float64 {
	return float64(int64(float64(raw) / 2.56))
}

// CalibrateWheelSpeed converts a raw wheel-speed reading to km/h.
func CalibrateWheelSpeed(raw uint16) float64 {
	return (float64(raw) / 64) * 3.6
}

// CalibrateThrottle converts a raw TPS/APS reading to percent.
func CalibrateThrottle(raw uint16) float64 {
	return ((float64(raw) / 8.192) * 100) / 84.96
}

// CalibrateBrake converts a raw brake-pressure reading to bar.
func CalibrateBrake(raw uint16) float64 {
	return float64(raw) / 32
}

// CalibrateLean converts a raw lean reading (magnitude or signed form) to
// degrees, where the 9000 encoding center is zero degrees.
func CalibrateLean(raw uint16) float64 {
	return float64(raw)/100 - 90
}

// CalibratePitch converts a raw pitch reading to deg/s.
func CalibratePitch(raw uint16) float64 {
	return float64(raw)/100 - 300
}

// CalibrateAcceleration converts a raw longitudinal/lateral acceleration
// reading to g.
func CalibrateAcceleration(raw uint16) float64 {
	return float64(raw)/1000 - 7
}

// CalibrateTemperature converts a raw temperature reading to degrees C.
func CalibrateTemperature(raw uint8) float64 {
	return float64(raw)/1.6 - 30
}

// CalibrateFuel converts the raw fuel accumulator to cc.
func CalibrateFuel(raw uint32) float64 {
	return float64(raw) / 100
}

// CalibrateGPSSpeed converts a GPS ground speed in knots to km/h.
func CalibrateGPSSpeed(knots float64) float64 {
	return knots * 1.852
}
