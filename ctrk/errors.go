package ctrk

import "errors"

// Structural decode failures. These are the only errors returned to the
// caller; semantic problems (bad checksum, short CAN payload, ...) are
// recorded in Diagnostics instead and do not stop decoding.
var (
	// ErrInvalidMagic means the input does not begin with the "HEAD" marker.
	ErrInvalidMagic = errors.New("ctrk: invalid magic, expected HEAD")

	// ErrHeaderTooShort means the input ends inside the header region.
	ErrHeaderTooShort = errors.New("ctrk: input too short for header")

	// ErrMalformedRecord means a record's size/type fields violate the
	// framing constraints. Samples emitted before the offending record
	// remain valid.
	ErrMalformedRecord = errors.New("ctrk: malformed record")
)
