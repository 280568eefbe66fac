package ctrk

import (
	"fmt"
	"sort"
	"strings"
)

// PrintSummary prints a human-readable overview of a decode run, in the
// same register as the teacher's PrintSessionInfo: plain fmt.Printf to
// stdout, no logging library.
func PrintSummary(samples []Sample, diag Diagnostics) {
	sep := strings.Repeat("═", 60)
	fmt.Printf("\n%s\n", sep)
	fmt.Printf("  CTRK decode run: %s\n", diag.RunID)
	fmt.Printf("%s\n", sep)
	fmt.Printf("  Samples:           %d\n", len(samples))
	fmt.Printf("  Checksum failures: %d\n", diag.ChecksumFailures)
	fmt.Printf("  Short CAN payloads:%d\n", diag.ShortCANPayloads)
	fmt.Printf("  Unknown CAN IDs:   %d\n", diag.UnknownCANIDs)

	fmt.Printf("\n  Record counts:\n")
	types := make([]int, 0, len(diag.RecordCounts))
	for t := range diag.RecordCounts {
		types = append(types, int(t))
	}
	sort.Ints(types)
	for _, t := range types {
		rtype := uint16(t)
		fmt.Printf("    type %3d: %d\n", rtype, diag.RecordCounts[rtype])
	}

	if len(samples) > 0 {
		first, last := samples[0], samples[len(samples)-1]
		fmt.Printf("\n  Span:    %d ms (lap %d -> lap %d)\n", last.EpochMs-first.EpochMs, first.Lap, last.Lap)
	}
	fmt.Printf("%s\n\n", sep)
}
