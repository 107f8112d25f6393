// Package sqlite implements types.Slot on an embedded SQLite database.
// Each entity kind is one row of the slots table; saves upsert the row.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/toybox/pkg/types"
)

// DBFileName is the database file created inside the data directory.
const DBFileName = "toybox.db"

// Slot stores slot values in SQLite.
type Slot struct {
	mu sync.Mutex
	db *sql.DB
}

// Open creates dataDir if it does not exist, opens (or creates) the database
// file there, and applies the schema.
func Open(dataDir string) (*Slot, error) {
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, DBFileName))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// One writer; keeps SQLite from returning SQLITE_BUSY to ourselves.
	db.SetMaxOpenConns(1)

	for _, stmt := range schemaDDL {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("applying schema: %w", err)
		}
	}
	return &Slot{db: db}, nil
}

// Load implements types.Slot.
func (s *Slot) Load(kind string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil, types.ErrSlotClosed
	}

	var value []byte
	err := s.db.QueryRow("SELECT value FROM slots WHERE kind = ?", kind).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrSlotEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("reading slot %s: %w", kind, err)
	}
	return value, nil
}

// Save implements types.Slot.
func (s *Slot) Save(kind string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return types.ErrSlotClosed
	}

	_, err := s.db.Exec(upsertSlot, kind, data, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("writing slot %s: %w", kind, err)
	}
	return nil
}

// Close releases the database. Close is idempotent.
func (s *Slot) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
