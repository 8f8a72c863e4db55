package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/vytor/profilesvc/internal/logger"
)

const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

type Config struct {
	Addr            string
	LogLevel        string
	StoreBackend    string
	DBPath          string
	AllowedOrigins  []string
	ShutdownTimeout time.Duration
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":" + envOr("PORT", "3000")
	}

	return Config{
		Addr:            addr,
		LogLevel:        envOr("LOG_LEVEL", "INFO"),
		StoreBackend:    strings.ToLower(envOr("STORE_BACKEND", BackendMemory)),
		DBPath:          envOr("DB_PATH", "file:profiles?mode=memory&cache=shared"),
		AllowedOrigins:  envListOr("CORS_ALLOWED_ORIGINS", []string{"*"}),
		ShutdownTimeout: time.Duration(envIntOr("SHUTDOWN_TIMEOUT_SECONDS", 10)) * time.Second,
	}
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error

	if c.Addr == "" || c.Addr == ":" {
		errs = append(errs, errors.New("ADDR cannot be empty"))
	} else if i := strings.LastIndex(c.Addr, ":"); i >= 0 {
		if port, err := strconv.Atoi(c.Addr[i+1:]); err != nil || port < 0 || port > 65535 {
			errs = append(errs, fmt.Errorf("PORT must be a number between 0 and 65535, got %q", c.Addr[i+1:]))
		}
	}

	if _, ok := logger.LookupLevel(c.LogLevel); !ok {
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR, got %q", c.LogLevel))
	}

	switch c.StoreBackend {
	case BackendMemory:
	case BackendSQLite:
		if c.DBPath == "" {
			errs = append(errs, errors.New("DB_PATH cannot be empty when STORE_BACKEND=sqlite"))
		}
	default:
		errs = append(errs, fmt.Errorf("STORE_BACKEND must be %q or %q, got %q", BackendMemory, BackendSQLite, c.StoreBackend))
	}

	if c.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("SHUTDOWN_TIMEOUT_SECONDS must be positive, got %v", c.ShutdownTimeout))
	}

	return errors.Join(errs...)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envListOr(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
