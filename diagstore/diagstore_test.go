package diagstore

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/kv-telemetry/ctrk-decode/ctrk"
)

func mustUUID(t *testing.T) uuid.UUID {
	t.Helper()
	return uuid.New()
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "diag.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPutAndGet(t *testing.T) {
	s := openTestStore(t)

	diag := ctrk.Diagnostics{
		RunID:            mustUUID(t),
		RecordCounts:     map[uint16]int{1: 5},
		ChecksumFailures: 2,
		ShortCANPayloads: 1,
		UnknownCANIDs:    0,
	}
	now := time.Date(2026, 7, 29, 12, 0, 0, 0, time.UTC)

	if err := s.Put("session.CTRK", 42, diag, now); err != nil {
		t.Fatalf("Put: %v", err)
	}

	rec, found, err := s.Get(diag.RunID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !found {
		t.Fatal("expected record to be found")
	}
	if rec.SourcePath != "session.CTRK" || rec.SampleCount != 42 {
		t.Fatalf("rec = %+v, unexpected fields", rec)
	}
	if rec.ChecksumFailures != 2 {
		t.Fatalf("ChecksumFailures = %d, want 2", rec.ChecksumFailures)
	}
}

func TestGetMissing(t *testing.T) {
	s := openTestStore(t)
	_, found, err := s.Get(mustUUID(t))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if found {
		t.Fatal("expected not found")
	}
}

func TestForSourceOrdersMostRecentFirst(t *testing.T) {
	s := openTestStore(t)

	older := ctrk.Diagnostics{RunID: mustUUID(t), RecordCounts: map[uint16]int{}}
	newer := ctrk.Diagnostics{RunID: mustUUID(t), RecordCounts: map[uint16]int{}}

	t0 := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	t1 := time.Date(2026, 7, 2, 0, 0, 0, 0, time.UTC)

	if err := s.Put("session.CTRK", 1, older, t0); err != nil {
		t.Fatalf("Put older: %v", err)
	}
	if err := s.Put("session.CTRK", 2, newer, t1); err != nil {
		t.Fatalf("Put newer: %v", err)
	}
	if err := s.Put("other.CTRK", 9, ctrk.Diagnostics{RunID: mustUUID(t), RecordCounts: map[uint16]int{}}, t1); err != nil {
		t.Fatalf("Put unrelated: %v", err)
	}

	recs, err := s.ForSource("session.CTRK")
	if err != nil {
		t.Fatalf("ForSource: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("len(recs) = %d, want 2", len(recs))
	}
	if recs[0].RunID != newer.RunID || recs[1].RunID != older.RunID {
		t.Fatal("expected newest-first ordering")
	}
}
