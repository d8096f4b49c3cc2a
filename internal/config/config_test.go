package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	path := writeConfig(t, `{
		"port": 9090,
		"storage": "redis",
		"redis_addr": "localhost:6379",
		"redis_db": 2,
		"key_prefix": "staging:",
		"max_upload_bytes": 5242880,
		"analysis_delay": "500ms"
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, StorageRedis, cfg.Storage)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, "staging:", cfg.KeyPrefix)
	assert.Equal(t, int64(5242880), cfg.MaxUploadBytes)

	d, err := cfg.Delay()
	require.NoError(t, err)
	assert.Equal(t, 500*time.Millisecond, d)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `{ invalid json }`))
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestLoadConfig_RelativePath(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.json"), []byte(`{"port": 7000}`), 0644))
	t.Chdir(dir)

	cfg, err := LoadConfig("app.json")
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Port)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "defaults", cfg: Defaults()},
		{name: "empty", cfg: Config{}},
		{name: "memory", cfg: Config{Storage: "MEMORY"}},
		{name: "redis", cfg: Config{Storage: StorageRedis, RedisAddr: "localhost:6379"}},
		{name: "postgres", cfg: Config{Storage: StoragePostgres, DatabaseURL: "postgres://localhost/db"}},
		{name: "unknown storage", cfg: Config{Storage: "dynamo"}, wantErr: "unknown storage"},
		{name: "redis without address", cfg: Config{Storage: StorageRedis}, wantErr: "redis_addr"},
		{name: "postgres without url", cfg: Config{Storage: StoragePostgres}, wantErr: "database_url"},
		{name: "port out of range", cfg: Config{Port: 70000}, wantErr: "port"},
		{name: "negative redis db", cfg: Config{RedisDB: -1}, wantErr: "redis_db"},
		{name: "negative upload limit", cfg: Config{MaxUploadBytes: -1}, wantErr: "max_upload_bytes"},
		{name: "bad delay", cfg: Config{AnalysisDelay: "soon"}, wantErr: "analysis_delay"},
		{name: "negative delay", cfg: Config{AnalysisDelay: "-1s"}, wantErr: "analysis_delay"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "postgres")
	t.Setenv("DATABASE_URL", "postgres://env/db")
	t.Setenv("PORT", "3000")
	t.Setenv("REDIS_DB", "4")
	t.Setenv("MAX_UPLOAD_BYTES", "1024")
	t.Setenv("ANALYSIS_DELAY", "0s")

	cfg := Config{Storage: StorageSQLite, Port: 8080, KeyPrefix: "kept:"}
	require.NoError(t, cfg.ApplyEnv())

	assert.Equal(t, StoragePostgres, cfg.Storage)
	assert.Equal(t, "postgres://env/db", cfg.DatabaseURL)
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, 4, cfg.RedisDB)
	assert.Equal(t, int64(1024), cfg.MaxUploadBytes)
	assert.Equal(t, "0s", cfg.AnalysisDelay)
}

func TestApplyEnv_InvalidNumber(t *testing.T) {
	t.Setenv("PORT", "eighty")

	cfg := Config{}
	err := cfg.ApplyEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PORT")
}

func TestApplyEnv_InvalidUploadLimit(t *testing.T) {
	t.Setenv("MAX_UPLOAD_BYTES", "10MB")

	cfg := Config{}
	assert.ErrorContains(t, cfg.ApplyEnv(), "MAX_UPLOAD_BYTES")
}

func TestMergeWithDefaults(t *testing.T) {
	partial := Config{Port: 9000, Storage: StorageMemory}

	merged := partial.MergeWithDefaults(Defaults())

	assert.Equal(t, 9000, merged.Port)
	assert.Equal(t, StorageMemory, merged.Storage)
	assert.Equal(t, "data/resume_analyzer.db", merged.SQLitePath)
	assert.Equal(t, int64(10*1024*1024), merged.MaxUploadBytes)
	assert.Equal(t, "2s", merged.AnalysisDelay)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := Config{Port: 1, RedisAddr: "r:6379"}

	merged := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, cfg, merged)
}

func TestDelay_Empty(t *testing.T) {
	d, err := (&Config{}).Delay()
	require.NoError(t, err)
	assert.Zero(t, d)
}
