package types

import (
	"errors"
	"time"
)

// Config holds backend selection and parameters for toybox.Open.
type Config struct {
	Backend string      `json:"backend" yaml:"backend"`
	DataDir string      `json:"data_dir" yaml:"data_dir"`
	Redis   RedisConfig `json:"redis" yaml:"redis"`
}

// RedisConfig holds parameters for the redis backend.
type RedisConfig struct {
	Addr    string        `json:"addr" yaml:"addr"`
	Prefix  string        `json:"prefix" yaml:"prefix"`
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// Supported backend names.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Redis defaults.
const (
	DefaultRedisPrefix  = "toybox:"
	DefaultRedisTimeout = 2 * time.Second
)

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
	ErrRedisAddrEmpty = errors.New("redis address must not be empty")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendFile:   true,
	BackendMemory: true,
	BackendSQLite: true,
	BackendRedis:  true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if c.Backend == BackendRedis && c.Redis.Addr == "" {
		return ErrRedisAddrEmpty
	}
	return nil
}

// GetPrefix returns the key prefix, defaulting to DefaultRedisPrefix.
func (r RedisConfig) GetPrefix() string {
	if r.Prefix == "" {
		return DefaultRedisPrefix
	}
	return r.Prefix
}

// GetTimeout returns the per-call timeout, defaulting to DefaultRedisTimeout.
func (r RedisConfig) GetTimeout() time.Duration {
	if r.Timeout <= 0 {
		return DefaultRedisTimeout
	}
	return r.Timeout
}
