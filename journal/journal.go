// Package journal keeps a local, append-only record of extrinsics submitted
// by this client and what the node answered. Records never contain key
// material; only the public key of the signer is kept.
package journal

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
	berrors "go.etcd.io/bbolt/errors"
)

// FileName is the journal database name inside the data directory.
const FileName = "journal.db"

var bucketSubmissions = []byte("submissions")

// Record describes one submission attempt.
type Record struct {
	Seq       uint64    `json:"seq"`
	Method    string    `json:"method"`
	Operation string    `json:"operation"`
	Signer    string    `json:"signer,omitempty"`
	Hash      string    `json:"hash,omitempty"`
	Payload   string    `json:"payload"`
	Result    string    `json:"result,omitempty"`
	Error     string    `json:"error,omitempty"`
	Time      time.Time `json:"time"`
}

// Failed reports whether the submission ended in an error.
func (r *Record) Failed() bool { return r.Error != "" }

// Journal wraps a bbolt database holding submission records.
type Journal struct {
	db *bbolt.DB
}

// Open opens or creates the journal database at dbPath.
// The parent directory is created if it does not exist.
func Open(dbPath string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("journal: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("journal: open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketSubmissions)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("journal: create bucket %q: %w", bucketSubmissions, err)
	}

	return &Journal{db: db}, nil
}

// Path returns the journal location inside dataDir.
func Path(dataDir string) string {
	return filepath.Join(dataDir, FileName)
}

// Close closes the underlying database.
func (j *Journal) Close() error { return j.db.Close() }

// Append assigns the next sequence number to rec and stores it. A zero
// Time is replaced with the current time.
func (j *Journal) Append(rec *Record) error {
	if rec == nil {
		return fmt.Errorf("%w: record", ErrNilParam)
	}
	if rec.Time.IsZero() {
		rec.Time = time.Now().UTC()
	}

	err := j.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketSubmissions)
		seq, err := b.NextSequence()
		if err != nil {
			return fmt.Errorf("next sequence: %w", err)
		}
		rec.Seq = seq

		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encode record: %w", err)
		}
		return b.Put(seqKey(seq), data)
	})
	if err != nil {
		return fmt.Errorf("journal: append: %w", j.wrap(err))
	}
	return nil
}

// Get returns the record with the given sequence number.
func (j *Journal) Get(seq uint64) (*Record, error) {
	var rec *Record
	err := j.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketSubmissions).Get(seqKey(seq))
		if data == nil {
			return fmt.Errorf("%w: seq %d", ErrNotFound, seq)
		}
		r, err := decodeRecord(data)
		if err != nil {
			return err
		}
		rec = r
		return nil
	})
	if err != nil {
		return nil, j.wrap(err)
	}
	return rec, nil
}

// List returns up to limit records, newest first. A limit of zero or less
// returns every record.
func (j *Journal) List(limit int) ([]*Record, error) {
	var out []*Record
	err := j.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(bucketSubmissions).Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			if limit > 0 && len(out) >= limit {
				break
			}
			rec, err := decodeRecord(v)
			if err != nil {
				return err
			}
			out = append(out, rec)
		}
		return nil
	})
	if err != nil {
		return nil, j.wrap(err)
	}
	return out, nil
}

// Len returns the number of stored records.
func (j *Journal) Len() (int, error) {
	var n int
	err := j.db.View(func(tx *bbolt.Tx) error {
		n = tx.Bucket(bucketSubmissions).Stats().KeyN
		return nil
	})
	return n, j.wrap(err)
}

func (j *Journal) wrap(err error) error {
	if errors.Is(err, berrors.ErrDatabaseNotOpen) {
		return fmt.Errorf("%w: %w", ErrClosed, err)
	}
	return err
}

// seqKey encodes a sequence number as an 8-byte big-endian key so the
// cursor walks records in insertion order.
func seqKey(seq uint64) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, seq)
	return k
}

func decodeRecord(data []byte) (*Record, error) {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("journal: decode record: %w", err)
	}
	return &rec, nil
}
