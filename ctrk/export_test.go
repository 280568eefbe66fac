package ctrk

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteCSVRoundTrip(t *testing.T) {
	samples := []Sample{
		{Lap: 1, EpochMs: 1000, Lat: 40.0, Lng: -74.0, SpeedKnots: 10, Fuel: 500, Raw: channelState{RPM: 5120, Gear: 3}},
		{Lap: 1, EpochMs: 1100, Lat: 40.001, Lng: -74.001, SpeedKnots: 11, Fuel: 600, Raw: channelState{RPM: 5200, Gear: 4}},
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "out.csv")
	if err := WriteCSV(samples, path); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(raw), "\r\n") {
		t.Fatal("expected CRLF line endings")
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()
	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(rows) != len(samples)+1 { // header + one row per sample
		t.Fatalf("len(rows) = %d, want %d", len(rows), len(samples)+1)
	}
	if rows[0][0] != "lap" {
		t.Fatalf("header[0] = %q, want %q", rows[0][0], "lap")
	}
	if rows[1][0] != "1" {
		t.Fatalf("row1 lap = %q, want %q", rows[1][0], "1")
	}
}

func TestWriteCSVEmptySamples(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.csv")
	if err := WriteCSV(nil, path); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(raw) == 0 {
		t.Fatal("expected a header row even with no samples")
	}
}
