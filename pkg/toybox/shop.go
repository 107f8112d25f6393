// Package toybox opens the shop: it selects the slot backend named by a
// types.Config and builds the toy, customer, and order stores on top of it.
// Callers construct one Shop at startup and pass it to whatever presents it.
package toybox

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/toybox/internal/redis"
	"github.com/mesh-intelligence/toybox/internal/slot"
	"github.com/mesh-intelligence/toybox/internal/sqlite"
	"github.com/mesh-intelligence/toybox/pkg/store"
	"github.com/mesh-intelligence/toybox/pkg/types"
)

// Shop holds the three entity stores and the slot they persist to.
type Shop struct {
	Toys      *store.Store[types.Toy]
	Customers *store.Store[types.Customer]
	Orders    *store.Store[types.Order]

	slot   types.Slot
	logger *zap.Logger

	mu     sync.Mutex
	closed bool
}

type openOptions struct {
	logger *zap.Logger
	slot   types.Slot
}

// Option configures Open.
type Option func(*openOptions)

// WithLogger sets the logger handed to the stores.
func WithLogger(l *zap.Logger) Option {
	return func(o *openOptions) { o.logger = l }
}

// WithSlot uses s instead of opening the backend named in the config.
// The shop takes ownership and closes s on Close.
func WithSlot(s types.Slot) Option {
	return func(o *openOptions) { o.slot = s }
}

// Open validates cfg, opens its backend, and loads all three stores.
func Open(cfg types.Config, opts ...Option) (*Shop, error) {
	o := openOptions{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	s := o.slot
	if s == nil {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		var err error
		s, err = openSlot(cfg)
		if err != nil {
			return nil, fmt.Errorf("open %s backend: %w", cfg.Backend, err)
		}
	}

	logger := o.logger.With(zap.String("backend", cfg.Backend))
	logger.Debug("opening shop", zap.String("data_dir", cfg.DataDir))

	storeOpts := []store.Option{store.WithLogger(logger)}
	return &Shop{
		Toys:      store.New[types.Toy](types.KindToys, s, storeOpts...),
		Customers: store.New[types.Customer](types.KindCustomers, s, storeOpts...),
		Orders:    store.New[types.Order](types.KindOrders, s, storeOpts...),
		slot:      s,
		logger:    logger,
	}, nil
}

// openSlot creates the slot backend named by cfg.Backend.
func openSlot(cfg types.Config) (types.Slot, error) {
	switch cfg.Backend {
	case types.BackendFile:
		return slot.NewFile(cfg.DataDir)
	case types.BackendMemory:
		return slot.NewMemory(), nil
	case types.BackendSQLite:
		return sqlite.Open(cfg.DataDir)
	case types.BackendRedis:
		return redis.Open(cfg.Redis)
	default:
		return nil, types.ErrBackendUnknown
	}
}

// Err returns the first load or save failure recorded by any store.
func (s *Shop) Err() error {
	for _, err := range []error{s.Toys.Err(), s.Customers.Err(), s.Orders.Err()} {
		if err != nil {
			return err
		}
	}
	return nil
}

// Close releases the slot backend. Close is idempotent.
func (s *Shop) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.logger.Debug("closing shop")
	return s.slot.Close()
}
