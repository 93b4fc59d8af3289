package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.etcd.io/bbolt"
)

var _ Store = (*BoltStore)(nil)

// defaultBucket is the bolt bucket all repository data is stored in,
// one key per file name.
const defaultBucket = "repositories"

// BoltStore is a Store keeping the data of all repositories in a single bbolt database file.
// Like JSONStore it persists the data as JSON, but writes are transactional.
type BoltStore struct {
	db     *bbolt.DB
	bucket []byte
}

// NewBoltStore opens or creates the bolt database at path.
// Close the store, once it is no longer used, to release the file lock.
func NewBoltStore(path string, mode os.FileMode) (*BoltStore, error) {
	const openTimeout = time.Second

	db, err := bbolt.Open(path, mode, &bbolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, fmt.Errorf("could not open bolt store %s: %w", path, err)
	}

	s := &BoltStore{db: db, bucket: []byte(defaultBucket)}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(s.bucket)
		return err //nolint:wrapcheck // wrapped below
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("could not create bucket: %w", err)
	}

	return s, nil
}

func (s *BoltStore) Store(fileName string, data any) error {
	if data == nil {
		return nil
	}

	b, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStore, err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(s.bucket).Put([]byte(fileName), b)
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStore, err)
	}

	return nil
}

// Load decodes the data stored under fileName into data.
// If nothing is stored yet, the returned error wraps os.ErrNotExist,
// the same way a JSONStore reports a missing file.
func (s *BoltStore) Load(fileName string, data any) error {
	var raw []byte

	err := s.db.View(func(tx *bbolt.Tx) error {
		if v := tx.Bucket(s.bucket).Get([]byte(fileName)); v != nil {
			// v is only valid inside the transaction
			raw = append([]byte(nil), v...)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLoad, err)
	}

	if raw == nil {
		return fmt.Errorf("%w: %s: %w", ErrLoad, fileName, os.ErrNotExist)
	}

	err = json.Unmarshal(raw, data)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLoad, err)
	}

	return nil
}

func (s *BoltStore) Close() error {
	err := s.db.Close()
	if err != nil {
		return fmt.Errorf("could not close bolt store: %w", err)
	}

	return nil
}
