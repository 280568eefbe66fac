package ctrk

import (
	"strconv"
	"strings"
)

// decodeGPRMC parses and checksum-validates a GPRMC sentence (C4).
// isGPRMC reports whether the sentence starts with "$GPRMC" at all;
// checksumValid reports whether its checksum matched (only meaningful
// when isGPRMC is true — a checksum-valid GPRMC of any fix status,
// including void, flips the GPS-acquisition gate per spec §4.5). fix is
// only populated when the sentence is an active ("A") fix.
func decodeGPRMC(sentence []byte) (fix gpsFix, isGPRMC bool, checksumValid bool) {
	s := string(sentence)
	s = strings.TrimRight(s, "\r\n\x00")
	if !strings.HasPrefix(s, "$GPRMC") {
		return gpsFix{}, false, false
	}
	isGPRMC = true

	star := strings.IndexByte(s, '*')
	if star < 0 || star+3 > len(s) {
		return gpsFix{}, isGPRMC, false
	}
	var checksum byte
	for i := 1; i < star; i++ {
		checksum ^= s[i]
	}
	want, err := strconv.ParseUint(s[star+1:star+3], 16, 8)
	if err != nil || byte(want) != checksum {
		return gpsFix{}, isGPRMC, false
	}
	checksumValid = true

	fields := strings.Split(s[:star], ",")
	if len(fields) < 8 || fields[2] != "A" {
		return gpsFix{}, isGPRMC, checksumValid
	}

	lat, latOK := parseLatLon(fields[3], fields[4], 2)
	lon, lonOK := parseLatLon(fields[5], fields[6], 3)
	if !latOK || !lonOK {
		return gpsFix{}, isGPRMC, checksumValid
	}
	speed, _ := strconv.ParseFloat(fields[7], 64)

	return gpsFix{ok: true, lat: lat, lng: lon, speedKts: speed}, isGPRMC, checksumValid
}

// parseLatLon parses a ddmm.mmmmm (degWidth=2) or dddmm.mmmmm (degWidth=3)
// field plus its hemisphere letter into signed decimal degrees.
func parseLatLon(value, hemisphere string, degWidth int) (float64, bool) {
	if len(value) <= degWidth {
		return 0, false
	}
	deg, err := strconv.ParseFloat(value[:degWidth], 64)
	if err != nil {
		return 0, false
	}
	minutes, err := strconv.ParseFloat(value[degWidth:], 64)
	if err != nil {
		return 0, false
	}
	result := deg + minutes/60
	if hemisphere == "S" || hemisphere == "W" {
		result = -result
	}
	return result, true
}
