package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/profilesvc/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		Addr:            ":3000",
		LogLevel:        "INFO",
		StoreBackend:    config.BackendMemory,
		DBPath:          "",
		AllowedOrigins:  []string{"*"},
		ShutdownTimeout: 10 * time.Second,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_EmptyAddr(t *testing.T) {
	cfg := validConfig()
	cfg.Addr = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR cannot be empty")
}

func TestValidate_InvalidPort(t *testing.T) {
	tests := []struct {
		name string
		addr string
	}{
		{name: "not a number", addr: ":http"},
		{name: "too high", addr: ":70000"},
		{name: "host with bad port", addr: "localhost:abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.Addr = tt.addr

			err := cfg.Validate()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "PORT")
		})
	}
}

func TestValidate_LogLevel(t *testing.T) {
	for _, level := range []string{"DEBUG", "INFO", "WARN", "ERROR", "debug"} {
		t.Run(level, func(t *testing.T) {
			cfg := validConfig()
			cfg.LogLevel = level
			assert.NoError(t, cfg.Validate())
		})
	}

	for _, level := range []string{"", "VERBOSE"} {
		t.Run("invalid "+level, func(t *testing.T) {
			cfg := validConfig()
			cfg.LogLevel = level

			err := cfg.Validate()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "LOG_LEVEL")
		})
	}
}

func TestValidate_StoreBackend(t *testing.T) {
	cfg := validConfig()
	cfg.StoreBackend = "redis"
	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "STORE_BACKEND")

	cfg.StoreBackend = config.BackendSQLite
	cfg.DBPath = ""
	err = cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PATH cannot be empty")

	cfg.DBPath = "file:test?mode=memory"
	assert.NoError(t, cfg.Validate())
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := config.Config{
		Addr:         "",
		LogLevel:     "INVALID",
		StoreBackend: "mongo",
	}

	err := cfg.Validate()
	require.Error(t, err)

	errStr := err.Error()
	assert.Contains(t, errStr, "ADDR cannot be empty")
	assert.Contains(t, errStr, "LOG_LEVEL")
	assert.Contains(t, errStr, "STORE_BACKEND")
	assert.Contains(t, errStr, "SHUTDOWN_TIMEOUT_SECONDS")
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ADDR", "")
	t.Setenv("PORT", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "")

	cfg := config.Load()

	assert.Equal(t, ":3000", cfg.Addr)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, config.BackendMemory, cfg.StoreBackend)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	t.Setenv("ADDR", "")
	t.Setenv("PORT", "8081")
	t.Setenv("STORE_BACKEND", "SQLite")
	t.Setenv("DB_PATH", "custom.db")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "not-a-number")

	cfg := config.Load()

	assert.Equal(t, ":8081", cfg.Addr)
	assert.Equal(t, config.BackendSQLite, cfg.StoreBackend)
	assert.Equal(t, "custom.db", cfg.DBPath)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_AddrOverridesPort(t *testing.T) {
	t.Setenv("ADDR", "127.0.0.1:9090")
	t.Setenv("PORT", "8081")

	cfg := config.Load()
	assert.Equal(t, "127.0.0.1:9090", cfg.Addr)
}
