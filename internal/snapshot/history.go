package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/kyawyelin284/zeus-core/internal/report"
)

var bucketSnapshots = []byte("snapshots")

// HistoryStore archives past snapshots in a BoltDB file, keyed by scan
// timestamp, so earlier results remain inspectable after the JSON snapshot
// has been overwritten.
type HistoryStore struct {
	db   *bolt.DB
	path string
}

// OpenHistory opens (or creates) the history store at path.
func OpenHistory(path string) (*HistoryStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{
		Timeout: 5 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketSnapshots)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	return &HistoryStore{db: db, path: path}, nil
}

// Append stores one scan result keyed by its timestamp.
func (s *HistoryStore) Append(result *report.ScanResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	key := []byte(result.ScannedAt.UTC().Format(time.RFC3339Nano))

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSnapshots)
		if b == nil {
			return fmt.Errorf("bucket not found")
		}
		return b.Put(key, data)
	})
}

// Entry summarizes one archived snapshot.
type Entry struct {
	Key       string
	ScannedAt time.Time
	Endpoints int
	Warnings  int
}

// List returns summaries of all archived snapshots in key order (which is
// chronological, since keys are RFC 3339 timestamps).
func (s *HistoryStore) List() ([]Entry, error) {
	entries := make([]Entry, 0)

	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSnapshots)
		if b == nil {
			return fmt.Errorf("bucket not found")
		}
		return b.ForEach(func(k, v []byte) error {
			var result report.ScanResult
			if err := json.Unmarshal(v, &result); err != nil {
				// A corrupt entry should not hide the rest of the archive.
				return nil
			}
			entries = append(entries, Entry{
				Key:       string(k),
				ScannedAt: result.ScannedAt,
				Endpoints: len(result.Endpoints),
				Warnings:  len(result.Warnings),
			})
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return entries, nil
}

// Get returns one archived snapshot by key, or nil when absent.
func (s *HistoryStore) Get(key string) (*report.ScanResult, error) {
	var result *report.ScanResult

	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSnapshots)
		if b == nil {
			return fmt.Errorf("bucket not found")
		}

		data := b.Get([]byte(key))
		if data == nil {
			return nil
		}

		var r report.ScanResult
		if err := json.Unmarshal(data, &r); err != nil {
			return err
		}
		result = &r
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// Close closes the database.
func (s *HistoryStore) Close() error {
	return s.db.Close()
}
