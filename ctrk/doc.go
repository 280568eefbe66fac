// Package ctrk provides a parser for Yamaha Y-Trac CTRK telemetry files
// recorded by motorcycle data-loggers.
//
// It re-multiplexes the CAN bus, GPS (NMEA GPRMC) and lap-marker streams
// embedded in a CTRK recording into a single fixed-rate (10 Hz) sequence
// of telemetry samples, reproducing the behavior of the closed-source
// native reference decoder bit-for-bit.
package ctrk
