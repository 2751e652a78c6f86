package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/iammorganparry/clive/apps/uigen/internal/models"
)

var sessionsBucket = []byte("sessions")

// BoltSnapshots keeps every snapshot as a JSON value in a single bbolt bucket.
type BoltSnapshots struct {
	db *bolt.DB
}

// OpenBoltSnapshots opens (or creates) the bbolt file at path.
func OpenBoltSnapshots(path string) (*BoltSnapshots, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create bolt directory: %w", err)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(sessionsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create sessions bucket: %w", err)
	}
	return &BoltSnapshots{db: db}, nil
}

func (s *BoltSnapshots) Save(id string, snap *models.Snapshot) error {
	if !ValidID(id) {
		return ErrInvalidID
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(sessionsBucket).Put([]byte(id), data)
	})
}

func (s *BoltSnapshots) Load(id string) (*models.Snapshot, error) {
	if !ValidID(id) {
		return nil, ErrInvalidID
	}

	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(sessionsBucket).Get([]byte(id)); v != nil {
			// v is only valid inside the transaction
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	if data == nil {
		return nil, nil
	}

	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	return &snap, nil
}

func (s *BoltSnapshots) Delete(id string) error {
	if !ValidID(id) {
		return ErrInvalidID
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(sessionsBucket).Delete([]byte(id))
	})
}

func (s *BoltSnapshots) Ping() error {
	return s.db.View(func(tx *bolt.Tx) error {
		if tx.Bucket(sessionsBucket) == nil {
			return fmt.Errorf("sessions bucket missing")
		}
		return nil
	})
}

func (s *BoltSnapshots) Close() error {
	return s.db.Close()
}
