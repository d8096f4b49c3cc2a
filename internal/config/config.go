// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Storage backend names accepted in Config.Storage
const (
	StorageMemory   = "memory"
	StorageSQLite   = "sqlite"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
)

// Config represents the configuration that can be loaded from a JSON file.
// Precedence is CLI flags, then environment, then the file, then Defaults().
type Config struct {
	// Server
	Port int `json:"port,omitempty"` // HTTP listen port

	// Storage
	Storage       string `json:"storage,omitempty"`        // memory, sqlite, redis or postgres
	SQLitePath    string `json:"sqlite_path,omitempty"`    // Database file for the sqlite backend
	RedisAddr     string `json:"redis_addr,omitempty"`     // host:port of the redis server
	RedisPassword string `json:"redis_password,omitempty"` // Optional redis password
	RedisDB       int    `json:"redis_db,omitempty"`       // Redis logical database
	KeyPrefix     string `json:"key_prefix,omitempty"`     // Prefix for redis keys
	DatabaseURL   string `json:"database_url,omitempty"`   // PostgreSQL connection URL

	// Uploads
	MaxUploadBytes int64  `json:"max_upload_bytes,omitempty"` // Largest accepted file
	AnalysisDelay  string `json:"analysis_delay,omitempty"`   // Simulated analysis time, e.g. "2s"
}

// Defaults returns the built-in configuration
func Defaults() Config {
	return Config{
		Port:           8080,
		Storage:        StorageSQLite,
		SQLitePath:     "data/resume_analyzer.db",
		MaxUploadBytes: 10 * 1024 * 1024,
		AnalysisDelay:  "2s",
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// ApplyEnv overrides fields from environment variables that are set
func (c *Config) ApplyEnv() error {
	setString := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}
	setInt := func(key string, dst *int) error {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("config error: %s must be an integer: %w", key, err)
			}
			*dst = n
		}
		return nil
	}

	setString("STORAGE_BACKEND", &c.Storage)
	setString("SQLITE_PATH", &c.SQLitePath)
	setString("REDIS_ADDR", &c.RedisAddr)
	setString("REDIS_PASSWORD", &c.RedisPassword)
	setString("KV_KEY_PREFIX", &c.KeyPrefix)
	setString("DATABASE_URL", &c.DatabaseURL)
	setString("ANALYSIS_DELAY", &c.AnalysisDelay)

	if err := setInt("PORT", &c.Port); err != nil {
		return err
	}
	if err := setInt("REDIS_DB", &c.RedisDB); err != nil {
		return err
	}
	if v, ok := os.LookupEnv("MAX_UPLOAD_BYTES"); ok && v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("config error: MAX_UPLOAD_BYTES must be an integer: %w", err)
		}
		c.MaxUploadBytes = n
	}
	return nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Storage) {
	case "", StorageMemory, StorageSQLite:
	case StorageRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("config error: 'redis_addr' is required for redis storage")
		}
	case StoragePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config error: 'database_url' is required for postgres storage")
		}
	default:
		return fmt.Errorf("config error: unknown storage %q", c.Storage)
	}

	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.RedisDB < 0 {
		return fmt.Errorf("config error: 'redis_db' must be non-negative")
	}
	if c.MaxUploadBytes < 0 {
		return fmt.Errorf("config error: 'max_upload_bytes' must be non-negative")
	}
	if _, err := c.Delay(); err != nil {
		return err
	}

	return nil
}

// Delay parses AnalysisDelay. An empty value means no delay.
func (c *Config) Delay() (time.Duration, error) {
	if c.AnalysisDelay == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.AnalysisDelay)
	if err != nil {
		return 0, fmt.Errorf("config error: invalid 'analysis_delay' %q: %w", c.AnalysisDelay, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("config error: 'analysis_delay' must be non-negative")
	}
	return d, nil
}

// MergeWithDefaults returns a new Config with zero-valued fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.Storage == "" {
		result.Storage = defaults.Storage
	}
	if result.SQLitePath == "" {
		result.SQLitePath = defaults.SQLitePath
	}
	if result.RedisAddr == "" {
		result.RedisAddr = defaults.RedisAddr
	}
	if result.RedisPassword == "" {
		result.RedisPassword = defaults.RedisPassword
	}
	if result.RedisDB == 0 {
		result.RedisDB = defaults.RedisDB
	}
	if result.KeyPrefix == "" {
		result.KeyPrefix = defaults.KeyPrefix
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.MaxUploadBytes == 0 {
		result.MaxUploadBytes = defaults.MaxUploadBytes
	}
	if result.AnalysisDelay == "" {
		result.AnalysisDelay = defaults.AnalysisDelay
	}

	return result
}
