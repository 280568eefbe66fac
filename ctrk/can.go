package ctrk

import "encoding/binary"

// CAN identifiers this vehicle family exposes (C3). The dispatch set is
// closed; unknown identifiers are ignored (spec §9: tagged-variant match
// over a small closed set, not a map of callables).
const (
	canEngine       = 0x0209
	canThrottle     = 0x0215
	canTempFuel     = 0x023E
	canAcceleration = 0x0250
	canIMU          = 0x0258
	canBrake        = 0x0260
	canWheelSpeed   = 0x0264
	canABS          = 0x0268
)

// decodeCAN dispatches a type-1 record's payload by CAN identifier,
// mutating state and the fuel accumulator. The payload begins with a
// 2-byte little-endian identifier, 2 padding bytes, a 1-byte DLC, then
// DLC data bytes; b0.. below are indexed from the start of that data.
func decodeCAN(payload []byte, state *channelState, fuel *uint64, diag *Diagnostics) {
	if len(payload) < 5 {
		return
	}
	id := binary.LittleEndian.Uint16(payload[0:2])
	dlc := int(payload[4])
	data := payload[5:]
	if len(data) < dlc {
		dlc = len(data)
	}
	data = data[:dlc]

	switch id {
	case canEngine:
		if len(data) < 8 {
			diag.ShortCANPayloads++
			return
		}
		state.RPM = (uint16(data[0]) << 8) | uint16(data[1])
		gear := data[4] & 0x07
		if gear != 7 { // gear == 7 means gear-change in progress; hold prior value
			state.Gear = gear
		}

	case canThrottle:
		if len(data) < 8 {
			diag.ShortCANPayloads++
			return
		}
		state.TPS = (uint16(data[0]) << 8) | uint16(data[1])
		state.APS = (uint16(data[2]) << 8) | uint16(data[3])
		state.Launch = data[6]&0x60 != 0
		state.TCS = data[7]&0x20 != 0
		state.SCS = data[7]&0x10 != 0
		state.LIF = data[7]&0x08 != 0

	case canTempFuel:
		if len(data) < 4 {
			diag.ShortCANPayloads++
			return
		}
		state.WaterTemp = data[0]
		state.IntakeTemp = data[1]
		delta := (uint16(data[2]) << 8) | uint16(data[3])
		*fuel += uint64(delta)

	case canAcceleration:
		if len(data) < 4 {
			diag.ShortCANPayloads++
			return
		}
		state.AccelX = (uint16(data[0]) << 8) | uint16(data[1])
		state.AccelY = (uint16(data[2]) << 8) | uint16(data[3])

	case canIMU:
		if len(data) < 8 {
			diag.ShortCANPayloads++
			return
		}
		leanRaw, leanSigned := decodeLean(data[0], data[1], data[2], data[3])
		state.LeanRaw = leanRaw
		state.LeanSigned = leanSigned
		state.Pitch = (uint16(data[6]) << 8) | uint16(data[7])

	case canBrake:
		if len(data) < 4 {
			diag.ShortCANPayloads++
			return
		}
		state.FrontBrake = (uint16(data[0]) << 8) | uint16(data[1])
		state.RearBrake = (uint16(data[2]) << 8) | uint16(data[3])

	case canWheelSpeed:
		if len(data) < 4 {
			diag.ShortCANPayloads++
			return
		}
		state.FrontSpeed = (uint16(data[0]) << 8) | uint16(data[1])
		state.RearSpeed = (uint16(data[2]) << 8) | uint16(data[3])

	case canABS:
		if len(data) < 5 {
			diag.ShortCANPayloads++
			return
		}
		state.RABS = data[4]&0x01 != 0
		state.FABS = data[4]&0x02 != 0

	default:
		diag.UnknownCANIDs++
	}
}

// decodeLean implements the bit-exact lean/deviation algorithm (spec
// §4.3), returning the magnitude-form raw lean and the signed-form raw
// lean.
func decodeLean(b0, b1, b2, b3 byte) (leanRaw, leanSigned uint16) {
	val1 := uint32((uint16(b0)<<4)|(uint16(b2)&0x0F)) << 8
	val2 := uint32((uint16(b1)&0x0F)<<4) | uint32(b3>>4)
	sum := uint16((val1 + val2) & 0xFFFF)

	var deviation uint16
	negative := sum < 9000
	if negative {
		deviation = 9000 - sum
	} else {
		deviation = (sum - 9000) & 0xFFFF
	}

	if deviation <= 499 {
		return 9000, 9000
	}

	devTrunc := deviation - (deviation % 100)
	leanRaw = (9000 + devTrunc) & 0xFFFF
	if negative {
		leanSigned = 9000 - devTrunc
	} else {
		leanSigned = 9000 + devTrunc
	}
	return leanRaw, leanSigned
}
