package slot

import (
	"bytes"
	"sync"

	"github.com/mesh-intelligence/toybox/pkg/types"
)

// Memory keeps slot values in a map for the life of the process.
type Memory struct {
	mu     sync.Mutex
	values map[string][]byte
	closed bool
}

// NewMemory returns an empty in-memory slot.
func NewMemory() *Memory {
	return &Memory{values: make(map[string][]byte)}
}

// Load implements types.Slot.
func (m *Memory) Load(kind string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, types.ErrSlotClosed
	}
	v, ok := m.values[kind]
	if !ok {
		return nil, types.ErrSlotEmpty
	}
	return bytes.Clone(v), nil
}

// Save implements types.Slot.
func (m *Memory) Save(kind string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return types.ErrSlotClosed
	}
	m.values[kind] = bytes.Clone(data)
	return nil
}

// Close implements types.Slot. Stored values are kept.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
