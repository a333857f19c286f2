// Package store persists emulator data in a bbolt database.
package store

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	bolt "go.etcd.io/bbolt"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateReference is returned when a reference is already used by
	// another journal of the same type.
	ErrDuplicateReference = errors.New("reference already exists for this journal type")
)

// Bucket names.
const (
	BucketTokens    = "tokens"
	BucketJournals  = "journals"
	BucketTransNo   = "trans_no"
	BucketReference = "reference"
)

// Keys of the reference bucket.
const (
	keyJournalTypes = "journal_types"
	keyBranches     = "branches"
	keyChart        = "chart"
)

// Store represents the bbolt database wrapper.
type Store struct {
	db *bolt.DB
}

// New creates a new Store instance and initializes buckets.
func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := bolt.Open(dbPath, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		buckets := []string{BucketTokens, BucketJournals, BucketTransNo, BucketReference}
		for _, bucket := range buckets {
			if _, err := tx.CreateBucketIfNotExists([]byte(bucket)); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// PutString stores a string value with a string key.
func (s *Store) PutString(bucketName, key, value string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := bucket(tx, bucketName)
		if err != nil {
			return err
		}
		return b.Put([]byte(key), []byte(value))
	})
}

// GetString retrieves a string value with a string key.
func (s *Store) GetString(bucketName, key string) (string, error) {
	var value string
	err := s.db.View(func(tx *bolt.Tx) error {
		b, err := bucket(tx, bucketName)
		if err != nil {
			return err
		}

		data := b.Get([]byte(key))
		if data == nil {
			return ErrNotFound
		}

		value = string(data)
		return nil
	})
	return value, err
}

// DeleteString removes a value with a string key.
func (s *Store) DeleteString(bucketName, key string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := bucket(tx, bucketName)
		if err != nil {
			return err
		}
		return b.Delete([]byte(key))
	})
}

func (s *Store) putJSON(bucketName, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	return s.PutString(bucketName, key, string(data))
}

func (s *Store) getJSON(bucketName, key string, value any) error {
	data, err := s.GetString(bucketName, key)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(data), value)
}

func bucket(tx *bolt.Tx, name string) (*bolt.Bucket, error) {
	b := tx.Bucket([]byte(name))
	if b == nil {
		return nil, fmt.Errorf("bucket %s not found", name)
	}
	return b, nil
}

// itob converts an int64 to a byte slice for use as a bbolt key.
func itob(v int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(v))
	return b
}
