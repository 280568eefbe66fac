// Package diagstore persists decode-run diagnostics so an operator can
// query the checksum-failure / short-payload history of repeated
// decodes of the same file, mirroring the DTC (diagnostic trouble code)
// persistence pattern in serebryakov7-j1708-stats's pkg/storage/dtc.go,
// applied here to CTRK decode runs instead of J1587 fault codes.
package diagstore

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"

	"github.com/kv-telemetry/ctrk-decode/ctrk"
)

const runsBucket = "decode_runs"

// Store is a bbolt-backed history of Diagnostics records, keyed by run
// ID.
type Store struct {
	db *bolt.DB
}

// Record is one persisted decode run.
type Record struct {
	RunID            uuid.UUID `json:"run_id"`
	SourcePath       string    `json:"source_path"`
	SampleCount      int       `json:"sample_count"`
	ChecksumFailures int       `json:"checksum_failures"`
	ShortCANPayloads int       `json:"short_can_payloads"`
	UnknownCANIDs    int       `json:"unknown_can_ids"`
	DecodedAt        time.Time `json:"decoded_at"`
}

// Open opens (or creates) a bbolt database at path and ensures the runs
// bucket exists.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(runsBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put records one decode run's diagnostics, keyed by its run ID.
func (s *Store) Put(sourcePath string, sampleCount int, diag ctrk.Diagnostics, decodedAt time.Time) error {
	rec := Record{
		RunID:            diag.RunID,
		SourcePath:       sourcePath,
		SampleCount:      sampleCount,
		ChecksumFailures: diag.ChecksumFailures,
		ShortCANPayloads: diag.ShortCANPayloads,
		UnknownCANIDs:    diag.UnknownCANIDs,
		DecodedAt:        decodedAt,
	}
	buf, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(runsBucket))
		return b.Put([]byte(rec.RunID.String()), buf)
	})
}

// Get retrieves a previously recorded run by its run ID.
func (s *Store) Get(runID uuid.UUID) (Record, bool, error) {
	var rec Record
	var found bool
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(runsBucket))
		v := b.Get([]byte(runID.String()))
		if v == nil {
			return nil
		}
		found = true
		return json.Unmarshal(v, &rec)
	})
	if err != nil {
		return Record{}, false, err
	}
	return rec, found, nil
}

// ForSource returns every recorded run for a given source path, most
// recent first.
func (s *Store) ForSource(sourcePath string) ([]Record, error) {
	var out []Record
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(runsBucket))
		return b.ForEach(func(_, v []byte) error {
			var rec Record
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("diagstore: decode record: %w", err)
			}
			if rec.SourcePath == sourcePath {
				out = append(out, rec)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sortRecordsDesc(out)
	return out, nil
}

func sortRecordsDesc(recs []Record) {
	for i := 1; i < len(recs); i++ {
		for j := i; j > 0 && recs[j-1].DecodedAt.Before(recs[j].DecodedAt); j-- {
			recs[j-1], recs[j] = recs[j], recs[j-1]
		}
	}
}
