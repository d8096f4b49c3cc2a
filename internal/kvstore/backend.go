// Package kvstore provides string key-value storage backends for persisted analyses.
package kvstore

import (
	"context"
	"fmt"
	"strings"
)

// Backend is a string key-value namespace
type Backend interface {
	// Get returns the value stored under key; ok is false when the key is absent
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set stores value under key, replacing any previous value
	Set(ctx context.Context, key, value string) error
	// Remove deletes key; removing an absent key is not an error
	Remove(ctx context.Context, key string) error
	// Close releases any resources held by the backend
	Close() error
}

// Entry is a single key-value pair for batched writes
type Entry struct {
	Key   string
	Value string
}

// Batcher is implemented by backends that can write several keys atomically.
// Either every entry is stored or none is.
type Batcher interface {
	SetAll(ctx context.Context, entries []Entry) error
}

// Driver names accepted by Open
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

// Options selects and configures a backend
type Options struct {
	Driver        string
	SQLitePath    string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	KeyPrefix     string
	DatabaseURL   string
}

// Open creates the backend named by opts.Driver
func Open(ctx context.Context, opts Options) (Backend, error) {
	switch strings.ToLower(opts.Driver) {
	case DriverMemory:
		return NewMemoryBackend(), nil
	case DriverSQLite, "":
		return NewSQLiteBackend(opts.SQLitePath)
	case DriverRedis:
		return NewRedisBackend(ctx, RedisOptions{
			Addr:      opts.RedisAddr,
			Password:  opts.RedisPassword,
			DB:        opts.RedisDB,
			KeyPrefix: opts.KeyPrefix,
		})
	case DriverPostgres:
		return NewPostgresBackend(ctx, opts.DatabaseURL)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", opts.Driver)
	}
}
