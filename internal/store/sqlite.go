package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/iammorganparry/clive/apps/uigen/internal/models"
)

// DB wraps the SQLite connection with initialization logic.
type DB struct {
	*sqlx.DB
}

// Open creates or opens the SQLite database at the given path, runs schema
// initialization, and configures WAL mode for concurrent reads.
func Open(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sqlx.Open("sqlite3", dbPath+"?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite handles one writer at a time

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &DB{db}, nil
}

func initSchema(db *sqlx.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS session_snapshots (
  id TEXT PRIMARY KEY,
  history TEXT NOT NULL,
  component TEXT NOT NULL DEFAULT '',
  updated_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_session_snapshots_updated_at ON session_snapshots(updated_at);
`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}

// SnapshotCount returns the number of persisted sessions.
func (db *DB) SnapshotCount() (int, error) {
	var count int
	err := db.Get(&count, "SELECT COUNT(*) FROM session_snapshots")
	return count, err
}

type snapshotRow struct {
	ID        string `db:"id"`
	History   string `db:"history"`
	Component string `db:"component"`
	UpdatedAt int64  `db:"updated_at"`
}

// SQLiteSnapshots stores snapshots as rows, history encoded as JSON text.
type SQLiteSnapshots struct {
	db *DB
}

func NewSQLiteSnapshots(db *DB) *SQLiteSnapshots {
	return &SQLiteSnapshots{db: db}
}

func (s *SQLiteSnapshots) Save(id string, snap *models.Snapshot) error {
	if !ValidID(id) {
		return ErrInvalidID
	}

	history, err := json.Marshal(snap.History)
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO session_snapshots (id, history, component, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			history = excluded.history,
			component = excluded.component,
			updated_at = excluded.updated_at
	`, id, string(history), snap.Component, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("upsert snapshot: %w", err)
	}
	return nil
}

func (s *SQLiteSnapshots) Load(id string) (*models.Snapshot, error) {
	if !ValidID(id) {
		return nil, ErrInvalidID
	}

	var row snapshotRow
	err := s.db.Get(&row, `SELECT id, history, component, updated_at FROM session_snapshots WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get snapshot: %w", err)
	}

	snap := &models.Snapshot{Component: row.Component}
	if err := json.Unmarshal([]byte(row.History), &snap.History); err != nil {
		return nil, fmt.Errorf("parse history: %w", err)
	}
	return snap, nil
}

func (s *SQLiteSnapshots) Delete(id string) error {
	if !ValidID(id) {
		return ErrInvalidID
	}
	_, err := s.db.Exec(`DELETE FROM session_snapshots WHERE id = ?`, id)
	return err
}

func (s *SQLiteSnapshots) Ping() error {
	_, err := s.db.SnapshotCount()
	return err
}

func (s *SQLiteSnapshots) Close() error {
	return s.db.Close()
}
