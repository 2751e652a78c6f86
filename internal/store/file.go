package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/iammorganparry/clive/apps/uigen/internal/models"
)

// FileSnapshots stores one indented JSON document per session at <dir>/<id>.json.
type FileSnapshots struct {
	dir string
}

// NewFileSnapshots creates dir if needed and returns a file-backed store.
func NewFileSnapshots(dir string) (*FileSnapshots, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create sessions directory: %w", err)
	}
	return &FileSnapshots{dir: dir}, nil
}

// Path returns the snapshot file path for id.
func (s *FileSnapshots) Path(id string) string {
	return filepath.Join(s.dir, id+".json")
}

// Save writes the snapshot through a temp file and rename so readers never see a partial document.
func (s *FileSnapshots) Save(id string, snap *models.Snapshot) error {
	if !ValidID(id) {
		return ErrInvalidID
	}

	data, err := EncodeSnapshot(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, id+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Rename(tmpName, s.Path(id)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename snapshot: %w", err)
	}
	return nil
}

func (s *FileSnapshots) Load(id string) (*models.Snapshot, error) {
	if !ValidID(id) {
		return nil, ErrInvalidID
	}

	data, err := os.ReadFile(s.Path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	return &snap, nil
}

func (s *FileSnapshots) Delete(id string) error {
	if !ValidID(id) {
		return ErrInvalidID
	}
	if err := os.Remove(s.Path(id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	return nil
}

// Ping checks that the sessions directory is still present.
func (s *FileSnapshots) Ping() error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return fmt.Errorf("stat sessions directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", s.dir)
	}
	return nil
}

func (s *FileSnapshots) Close() error { return nil }
