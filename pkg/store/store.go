package store

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/toybox/pkg/types"
)

// Store owns the ordered collection of one entity kind. The collection is
// kept in insertion order and looked up linearly by identity.
type Store[T types.Entity] struct {
	kind   string
	slot   types.Slot
	logger *zap.Logger

	mu      sync.RWMutex
	items   []T
	lastErr error

	subMu     sync.Mutex
	subs      []subscriber[T]
	nextToken int
}

// New creates a store for kind backed by slot and loads the durable copy.
// A missing, unreadable, or undecodable slot leaves the store empty; the
// failure is logged and reported by Err, never returned.
func New[T types.Entity](kind string, slot types.Slot, opts ...Option) *Store[T] {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	s := &Store[T]{
		kind:   kind,
		slot:   slot,
		logger: o.logger.With(zap.String("kind", kind)),
		items:  []T{},
	}
	s.load()
	return s
}

func (s *Store[T]) load() {
	data, err := s.slot.Load(s.kind)
	if errors.Is(err, types.ErrSlotEmpty) {
		s.logger.Debug("slot empty, starting with no records")
		return
	}
	if err != nil {
		s.lastErr = fmt.Errorf("loading %s: %w", s.kind, err)
		s.logger.Warn("slot unreadable, starting with no records", zap.Error(err))
		return
	}
	items, err := Decode[T](data)
	if err != nil {
		s.lastErr = fmt.Errorf("loading %s: %w", s.kind, err)
		s.logger.Warn("slot malformed, starting with no records", zap.Error(err))
		return
	}
	s.items = items
	s.logger.Debug("loaded records", zap.Int("count", len(items)))
}

// Kind returns the entity kind, which is also the slot key.
func (s *Store[T]) Kind() string { return s.kind }

// All returns a copy of the collection in insertion order.
func (s *Store[T]) All() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.items)
}

// Len returns the number of entities.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Get returns the entity with the given ID.
func (s *Store[T]) Get(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexLocked(id); i >= 0 {
		return s.items[i], true
	}
	var zero T
	return zero, false
}

// Index returns the position of the entity with the given ID, or -1.
func (s *Store[T]) Index(id string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexLocked(id)
}

func (s *Store[T]) indexLocked(id string) int {
	return slices.IndexFunc(s.items, func(e T) bool { return e.EntityID() == id })
}

// Add appends e. The identity must already be set; duplicates are not
// checked.
func (s *Store[T]) Add(e T) {
	s.apply(OpAdd, false, func() ([]string, bool) {
		s.items = append(s.items, e)
		return []string{e.EntityID()}, true
	})
}

// Update replaces the entity that has e's identity with e, keeping its
// position. If no entity matches, the collection is unchanged and no change
// is published, but the collection is still written out.
func (s *Store[T]) Update(e T) {
	s.apply(OpUpdate, true, func() ([]string, bool) {
		i := s.indexLocked(e.EntityID())
		if i < 0 {
			return nil, false
		}
		s.items[i] = e
		return []string{e.EntityID()}, true
	})
}

// Delete removes the entity that has e's identity. Absent entities are
// ignored.
func (s *Store[T]) Delete(e T) {
	s.DeleteID(e.EntityID())
}

// DeleteID removes the entity with the given ID. An absent ID is ignored and
// nothing is written.
func (s *Store[T]) DeleteID(id string) {
	s.apply(OpDelete, false, func() ([]string, bool) {
		i := s.indexLocked(id)
		if i < 0 {
			return nil, false
		}
		return s.removeLocked(map[int]bool{i: true}), true
	})
}

// DeleteAt removes the entities at the given positions. Positions refer to
// the order before the call; out-of-range positions are ignored. The
// collection is written out even when nothing was removed.
func (s *Store[T]) DeleteAt(positions ...int) {
	s.apply(OpDelete, true, func() ([]string, bool) {
		drop := make(map[int]bool, len(positions))
		for _, p := range positions {
			if p >= 0 && p < len(s.items) {
				drop[p] = true
			}
		}
		if len(drop) == 0 {
			return nil, false
		}
		return s.removeLocked(drop), true
	})
}

// removeLocked drops the marked positions and returns the removed IDs.
func (s *Store[T]) removeLocked(drop map[int]bool) []string {
	kept := make([]T, 0, len(s.items)-len(drop))
	ids := make([]string, 0, len(drop))
	for i, e := range s.items {
		if drop[i] {
			ids = append(ids, e.EntityID())
			continue
		}
		kept = append(kept, e)
	}
	s.items = kept
	return ids
}

// apply runs mutate under the write lock, persists, and then notifies
// subscribers outside the lock. With always set the collection is written
// even when mutate changed nothing; subscribers hear only about changes.
func (s *Store[T]) apply(op Op, always bool, mutate func() ([]string, bool)) {
	s.mu.Lock()
	ids, changed := mutate()
	if changed || always {
		_ = s.persistLocked()
	}
	var snapshot []T
	if changed {
		snapshot = slices.Clone(s.items)
	}
	s.mu.Unlock()

	if changed {
		s.notify(Change[T]{Op: op, IDs: ids, Items: snapshot})
	}
}

// Save writes the whole collection to the slot and returns any failure.
// Mutations call the same write but swallow its error.
func (s *Store[T]) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistLocked()
}

func (s *Store[T]) persistLocked() error {
	data, err := Encode(s.items)
	if err == nil {
		err = s.slot.Save(s.kind, data)
	}
	if err != nil {
		s.lastErr = fmt.Errorf("saving %s: %w", s.kind, err)
		s.logger.Error("persist failed, durable copy is stale", zap.Error(err))
		return s.lastErr
	}
	s.lastErr = nil
	return nil
}

// Err returns the most recent load or save failure, or nil once a later save
// succeeds.
func (s *Store[T]) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Subscribe registers fn to be called synchronously after every mutation that
// changed the collection. Subscribers run in registration order on the
// mutating goroutine. The returned func removes the subscription.
func (s *Store[T]) Subscribe(fn func(Change[T])) (cancel func()) {
	s.subMu.Lock()
	s.nextToken++
	token := s.nextToken
	s.subs = append(s.subs, subscriber[T]{token: token, fn: fn})
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			defer s.subMu.Unlock()
			s.subs = slices.DeleteFunc(s.subs, func(sub subscriber[T]) bool {
				return sub.token == token
			})
		})
	}
}

func (s *Store[T]) notify(c Change[T]) {
	s.subMu.Lock()
	subs := slices.Clone(s.subs)
	s.subMu.Unlock()

	for _, sub := range subs {
		sub.fn(c)
	}
}
