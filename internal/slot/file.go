// Package slot provides the file and in-memory implementations of
// types.Slot.
//
// The file slot keeps one <kind>.json document per entity kind in a data
// directory and replaces it atomically on every save.
package slot

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/mesh-intelligence/toybox/pkg/types"
)

// fileExt is appended to the kind to name its file.
const fileExt = ".json"

// File stores each kind's value in <dir>/<kind>.json.
type File struct {
	dir string

	mu     sync.Mutex
	closed bool
}

// NewFile creates dir if needed and returns a file slot rooted there.
func NewFile(dir string) (*File, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	return &File{dir: dir}, nil
}

// Path returns the file that holds kind.
func (f *File) Path(kind string) string {
	return filepath.Join(f.dir, kind+fileExt)
}

// Load implements types.Slot. A missing file is ErrSlotEmpty.
func (f *File) Load(kind string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil, types.ErrSlotClosed
	}

	data, err := os.ReadFile(f.Path(kind))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, types.ErrSlotEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", kind, err)
	}
	return data, nil
}

// Save implements types.Slot.
func (f *File) Save(kind string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return types.ErrSlotClosed
	}
	return writeAtomic(f.Path(kind), data)
}

// Close implements types.Slot.
func (f *File) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// writeAtomic replaces path with data using the temp-file, fsync, rename
// pattern so a crash never leaves a half-written slot.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".slot-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
