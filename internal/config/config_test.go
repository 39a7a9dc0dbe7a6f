package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, env := range envKeys {
		t.Setenv(env, "")
		os.Unsetenv(env)
	}
}

func TestLoadFileDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFile("")
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 15, cfg.Server.ReadTimeout)
	assert.Equal(t, 60, cfg.Server.IdleTimeout)
	assert.Equal(t, DriverFile, cfg.Storage.Driver)
	assert.Equal(t, "data", cfg.Storage.Dir)
	assert.True(t, cfg.App.Seed)
	assert.False(t, cfg.App.StatusPermissive)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.Telegram.Enabled())
	assert.Equal(t, filepath.Join("data", "devis.db"), cfg.Storage.SQLitePath())
}

func TestLoadFileFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("STORAGE_DRIVER", "SQLite")
	t.Setenv("STORAGE_DSN", "file::memory:")
	t.Setenv("STATUS_PERMISSIVE", "true")
	t.Setenv("SEED", "false")
	t.Setenv("GO_ENV", "production")
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "-100200300")

	cfg, err := LoadFile("")
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "file::memory:", cfg.Storage.SQLitePath())
	assert.True(t, cfg.App.StatusPermissive)
	assert.False(t, cfg.App.Seed)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, int64(-100200300), cfg.Telegram.ChatID)
	assert.True(t, cfg.Telegram.Enabled())
}

func TestLoadFileYAMLWithEnvOverride(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "server:\n  port: \"7000\"\nstorage:\n  driver: memory\napp:\n  log_level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	t.Setenv("PORT", "7001")

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "7001", cfg.Server.Port, "environment wins over the file")
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, "debug", cfg.App.LogLevel)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		storage StorageConfig
		wantErr bool
	}{
		{"memory", StorageConfig{Driver: DriverMemory}, false},
		{"file without dir", StorageConfig{Driver: DriverFile}, true},
		{"sqlite without dsn", StorageConfig{Driver: DriverSQLite, Dir: "data"}, false},
		{"postgres without dsn", StorageConfig{Driver: DriverPostgres}, true},
		{"pgx with dsn", StorageConfig{Driver: DriverPgx, DSN: "postgres://localhost/devis"}, false},
		{"mysql without dsn", StorageConfig{Driver: DriverMySQL}, true},
		{"s3 without bucket", StorageConfig{Driver: DriverS3}, true},
		{"unknown", StorageConfig{Driver: "redis"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Storage: tt.storage}
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateTelegram(t *testing.T) {
	cfg := Config{Storage: StorageConfig{Driver: DriverMemory}, Telegram: TelegramConfig{Token: "123:abc"}}
	assert.Error(t, cfg.Validate())
	cfg.Telegram.ChatID = 42
	assert.NoError(t, cfg.Validate())
}
