package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shunichi-ikebuchi/jurnal/internal/emulator/models"
	bolt "go.etcd.io/bbolt"
)

// CreateJournal stores a new journal, assigning its row id and trans_no.
// The reference must be unused among journals of the same type.
func (s *Store) CreateJournal(j models.Journal) (*models.Journal, error) {
	err := s.db.Update(func(tx *bolt.Tx) error {
		b, err := bucket(tx, BucketJournals)
		if err != nil {
			return err
		}
		if err := checkReference(b, j.Kodej, j.Reference, 0); err != nil {
			return err
		}

		id, err := b.NextSequence()
		if err != nil {
			return fmt.Errorf("failed to generate ID: %w", err)
		}
		seq, err := tx.Bucket([]byte(BucketTransNo)).NextSequence()
		if err != nil {
			return fmt.Errorf("failed to generate trans_no: %w", err)
		}

		now := time.Now()
		j.ID = int64(id)
		j.TransNo = 1000 + int64(seq)
		j.CreatedAt = now
		j.UpdatedAt = now

		return putJournal(b, &j)
	})
	if err != nil {
		return nil, err
	}

	return &j, nil
}

// UpdateJournal replaces the header and lines of journal id. Row id,
// trans_no and creation time are kept.
func (s *Store) UpdateJournal(id int64, j models.Journal) (*models.Journal, error) {
	err := s.db.Update(func(tx *bolt.Tx) error {
		b, err := bucket(tx, BucketJournals)
		if err != nil {
			return err
		}

		existing, err := getJournal(b, id)
		if err != nil {
			return err
		}
		if err := checkReference(b, j.Kodej, j.Reference, id); err != nil {
			return err
		}

		j.ID = existing.ID
		j.TransNo = existing.TransNo
		j.CreatedAt = existing.CreatedAt
		j.UpdatedAt = time.Now()

		return putJournal(b, &j)
	})
	if err != nil {
		return nil, err
	}

	return &j, nil
}

// GetJournal retrieves a journal by row id.
func (s *Store) GetJournal(id int64) (*models.Journal, error) {
	var journal *models.Journal
	err := s.db.View(func(tx *bolt.Tx) error {
		b, err := bucket(tx, BucketJournals)
		if err != nil {
			return err
		}
		journal, err = getJournal(b, id)
		return err
	})
	return journal, err
}

// DeleteByTransNo removes the journal with the given transaction number.
func (s *Store) DeleteByTransNo(transNo int64) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := bucket(tx, BucketJournals)
		if err != nil {
			return err
		}

		var key []byte
		err = b.ForEach(func(k, v []byte) error {
			var j models.Journal
			if err := json.Unmarshal(v, &j); err != nil {
				return fmt.Errorf("failed to unmarshal journal: %w", err)
			}
			if j.TransNo == transNo {
				key = append([]byte(nil), k...)
			}
			return nil
		})
		if err != nil {
			return err
		}
		if key == nil {
			return ErrNotFound
		}

		return b.Delete(key)
	})
}

// ListJournals retrieves all journals in row id order.
func (s *Store) ListJournals() ([]*models.Journal, error) {
	journals := []*models.Journal{}

	err := s.db.View(func(tx *bolt.Tx) error {
		b, err := bucket(tx, BucketJournals)
		if err != nil {
			return err
		}

		return b.ForEach(func(k, v []byte) error {
			var j models.Journal
			if err := json.Unmarshal(v, &j); err != nil {
				return fmt.Errorf("failed to unmarshal journal: %w", err)
			}
			journals = append(journals, &j)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return journals, nil
}

func getJournal(b *bolt.Bucket, id int64) (*models.Journal, error) {
	data := b.Get(itob(id))
	if data == nil {
		return nil, ErrNotFound
	}

	var j models.Journal
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, fmt.Errorf("failed to unmarshal journal: %w", err)
	}
	return &j, nil
}

func putJournal(b *bolt.Bucket, j *models.Journal) error {
	data, err := json.Marshal(j)
	if err != nil {
		return fmt.Errorf("failed to marshal journal: %w", err)
	}
	return b.Put(itob(j.ID), data)
}

// checkReference fails when another journal of kodej, other than
// excludeID, already uses reference.
func checkReference(b *bolt.Bucket, kodej, reference string, excludeID int64) error {
	return b.ForEach(func(k, v []byte) error {
		var j models.Journal
		if err := json.Unmarshal(v, &j); err != nil {
			return fmt.Errorf("failed to unmarshal journal: %w", err)
		}
		if j.ID != excludeID && j.Kodej == kodej && j.Reference == reference {
			return ErrDuplicateReference
		}
		return nil
	})
}
