package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jonathan/resume-analyzer/internal/analysis"
	"github.com/jonathan/resume-analyzer/internal/config"
	"github.com/jonathan/resume-analyzer/internal/kvstore"
	"github.com/jonathan/resume-analyzer/internal/store"
)

// loadConfig resolves flags over environment over config file over defaults
func loadConfig() (config.Config, error) {
	var cfg config.Config
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = *loaded
	}

	if err := cfg.ApplyEnv(); err != nil {
		return config.Config{}, err
	}
	if storageFlag != "" {
		cfg.Storage = storageFlag
	}

	cfg = cfg.MergeWithDefaults(config.Defaults())
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// openStore connects the configured backend and wraps it in a store.
// The caller must close the returned backend.
func openStore(ctx context.Context, cfg config.Config) (*store.Store, kvstore.Backend, error) {
	backend, err := kvstore.Open(ctx, kvstore.Options{
		Driver:        cfg.Storage,
		SQLitePath:    cfg.SQLitePath,
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		RedisDB:       cfg.RedisDB,
		KeyPrefix:     cfg.KeyPrefix,
		DatabaseURL:   cfg.DatabaseURL,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s storage: %w", cfg.Storage, err)
	}

	delay, err := cfg.Delay()
	if err != nil {
		backend.Close() //nolint:errcheck
		return nil, nil, err
	}
	provider, err := analysis.NewDefaultMockProvider(analysis.WithDelay(delay))
	if err != nil {
		backend.Close() //nolint:errcheck
		return nil, nil, err
	}

	return store.New(backend, provider), backend, nil
}

// withStore runs fn against the configured store and closes it afterwards
func withStore(ctx context.Context, fn func(st *store.Store, cfg config.Config) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, backend, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer backend.Close() //nolint:errcheck

	return fn(st, cfg)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
