package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/iammorganparry/clive/apps/uigen/internal/models"
)

// ErrInvalidID is returned when a session id cannot be used as a storage key.
var ErrInvalidID = errors.New("invalid session id")

// validID keeps ids safe to use as file names.
var validID = regexp.MustCompile(`^[A-Za-z0-9._-]{1,128}$`)

// ValidID reports whether id is usable as a snapshot key.
func ValidID(id string) bool {
	return validID.MatchString(id) && id != "." && id != ".."
}

// EncodeSnapshot renders snap as two-space indented JSON. JSX markup is kept
// literal rather than HTML-escaped so the document stays readable.
func EncodeSnapshot(snap *models.Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Snapshots persists session snapshots keyed by session id.
//
// Load returns nil, nil when no snapshot exists for id.
type Snapshots interface {
	Save(id string, snap *models.Snapshot) error
	Load(id string) (*models.Snapshot, error)
	Delete(id string) error
	Ping() error
	Close() error
}

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendBolt   = "bolt"
)

// OpenSnapshots opens the snapshot backend of the given kind rooted at dir.
// The directory is created if absent.
func OpenSnapshots(kind, dir string) (Snapshots, error) {
	switch kind {
	case BackendFile, "":
		return NewFileSnapshots(dir)
	case BackendSQLite:
		db, err := Open(filepath.Join(dir, "sessions.db"))
		if err != nil {
			return nil, err
		}
		return NewSQLiteSnapshots(db), nil
	case BackendBolt:
		return OpenBoltSnapshots(filepath.Join(dir, "sessions.bolt"))
	default:
		return nil, fmt.Errorf("unknown snapshot backend %q", kind)
	}
}
