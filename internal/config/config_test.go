package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"ENVIRONMENT", "TABLE_PREFIX", "STORAGE_BACKEND", "AUTO_MIGRATE", "MAX_UPLOAD_BYTES", "REQUEST_TIMEOUT"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "dev", cfg.Environment)
	assert.Equal(t, "dev_", cfg.TablePrefix)
	assert.Equal(t, "postgres", cfg.StorageBackend)
	assert.True(t, cfg.AutoMigrate)
	assert.Equal(t, int64(DefaultMaxUploadBytes), cfg.MaxUploadBytes)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "prod")
	t.Setenv("TABLE_PREFIX", "")
	t.Setenv("AUTO_MIGRATE", "")
	t.Setenv("MAX_UPLOAD_BYTES", "2048")
	t.Setenv("REQUEST_TIMEOUT", "5s")

	cfg := Load()

	assert.Equal(t, "prod_", cfg.TablePrefix)
	assert.False(t, cfg.AutoMigrate)
	assert.Equal(t, int64(2048), cfg.MaxUploadBytes)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)

	t.Setenv("TABLE_PREFIX", "ci_")
	t.Setenv("MAX_UPLOAD_BYTES", "lots")
	cfg = Load()
	assert.Equal(t, "ci_", cfg.TablePrefix)
	assert.Equal(t, int64(DefaultMaxUploadBytes), cfg.MaxUploadBytes)
}

func TestCleanupOldLogs_KeepsNewest(t *testing.T) {
	dir := t.TempDir()
	names := []string{
		"coursehub-2024-01-01T00-00-00.000.log",
		"coursehub-2024-01-02T00-00-00.000.log",
		"coursehub-2024-01-03T00-00-00.000.log",
		"unrelated.log",
	}
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	require.NoError(t, cleanupOldLogs(dir, 2))

	remaining, err := filepath.Glob(filepath.Join(dir, "*.log"))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "coursehub-2024-01-02T00-00-00.000.log"),
		filepath.Join(dir, "coursehub-2024-01-03T00-00-00.000.log"),
		filepath.Join(dir, "unrelated.log"),
	}, remaining)
}

func TestNewLogger_WritesLogFile(t *testing.T) {
	dir := t.TempDir()
	logger, closer, err := NewLogger(&Config{Environment: "test", LogDir: dir, LogMaxFiles: 3})
	require.NoError(t, err)

	logger.Info("hello")
	require.NoError(t, closer.Close())

	files, err := filepath.Glob(filepath.Join(dir, "coursehub-*.log"))
	require.NoError(t, err)
	require.Len(t, files, 1)
	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
}
