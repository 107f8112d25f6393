// Package redis implements types.Slot on a Redis server. Each entity kind is
// stored under one string key, <prefix><kind>.
package redis

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mesh-intelligence/toybox/pkg/types"
)

// Slot stores slot values in Redis.
type Slot struct {
	client  redis.Cmdable
	closer  func() error
	prefix  string
	timeout time.Duration

	mu     sync.Mutex
	closed bool
}

// Open connects to the server named by cfg.Addr and verifies it with PING.
func Open(cfg types.RedisConfig) (*Slot, error) {
	client := redis.NewClient(&redis.Options{Addr: cfg.Addr})
	s := New(client, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connecting to redis at %s: %w", cfg.Addr, err)
	}
	return s, nil
}

// New wraps an existing client. Close closes the client.
func New(client *redis.Client, cfg types.RedisConfig) *Slot {
	return &Slot{
		client:  client,
		closer:  client.Close,
		prefix:  cfg.GetPrefix(),
		timeout: cfg.GetTimeout(),
	}
}

// Key returns the Redis key that holds kind.
func (s *Slot) Key(kind string) string {
	return s.prefix + kind
}

// Load implements types.Slot. A missing key is ErrSlotEmpty.
func (s *Slot) Load(kind string) ([]byte, error) {
	if s.isClosed() {
		return nil, types.ErrSlotClosed
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	data, err := s.client.Get(ctx, s.Key(kind)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, types.ErrSlotEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("reading slot %s: %w", kind, err)
	}
	return data, nil
}

// Save implements types.Slot. Keys never expire.
func (s *Slot) Save(kind string, data []byte) error {
	if s.isClosed() {
		return types.ErrSlotClosed
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.client.Set(ctx, s.Key(kind), string(data), 0).Err(); err != nil {
		return fmt.Errorf("writing slot %s: %w", kind, err)
	}
	return nil
}

// Close closes the client. Idempotent.
func (s *Slot) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.closer()
}

func (s *Slot) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
