package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the client and the stub
// backend.
type Config struct {
	API     APIConfig
	Storage StorageConfig
	Redis   RedisConfig
	Logger  LoggerConfig
	Stub    StubConfig
}

// APIConfig points the client at the backend.
type APIConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

// StorageBackend selects the durable client-state implementation.
type StorageBackend string

const (
	StorageFile   StorageBackend = "file"
	StorageRedis  StorageBackend = "redis"
	StorageMemory StorageBackend = "memory"
)

// StorageConfig controls where token and cart state live.
type StorageConfig struct {
	Backend   StorageBackend
	StateDir  string
	KeyPrefix string
}

// RedisConfig holds Redis connection values for the redis storage backend.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior. Development switches to the
// human-readable console encoding for local runs.
type LoggerConfig struct {
	Level       string
	Development bool
}

// StubConfig configures the in-memory stub backend.
type StubConfig struct {
	Addr              string
	JWTSecret         string
	AccessTTLSeconds  int
	RefreshTTLSeconds int
	BcryptCost        int
}

// Load reads configuration from environment variables, applying defaults
// where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	stateDir := os.Getenv("STATE_DIR")
	if stateDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			base = "."
		}
		stateDir = filepath.Join(base, "reserve")
	}

	cfg := &Config{
		API: APIConfig{
			BaseURL:        getEnv("API_BASE_URL", "http://127.0.0.1:8080/v1"),
			TimeoutSeconds: getEnvAsInt("HTTP_TIMEOUT_SECONDS", 15),
		},
		Storage: StorageConfig{
			Backend:   StorageBackend(getEnv("STORAGE_BACKEND", string(StorageFile))),
			StateDir:  stateDir,
			KeyPrefix: getEnv("STORAGE_KEY_PREFIX", "reserve:"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Development: getEnvAsBool("LOG_DEVELOPMENT", false),
		},
		Stub: StubConfig{
			Addr:              getEnv("STUB_ADDR", "127.0.0.1:8080"),
			JWTSecret:         getEnv("STUB_JWT_SECRET", "dev-secret"),
			AccessTTLSeconds:  getEnvAsInt("STUB_ACCESS_TTL_SECONDS", 1800),
			RefreshTTLSeconds: getEnvAsInt("STUB_REFRESH_TTL_SECONDS", 604800),
			BcryptCost:        getEnvAsInt("STUB_BCRYPT_COST", 10),
		},
	}

	switch cfg.Storage.Backend {
	case StorageFile, StorageRedis, StorageMemory:
	default:
		return nil, fmt.Errorf("invalid STORAGE_BACKEND: %q", cfg.Storage.Backend)
	}

	return cfg, nil
}

// Timeout returns the configured request timeout duration.
func (a APIConfig) Timeout() time.Duration {
	if a.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// StateFile returns the path of the JSON state file for the file backend.
func (s StorageConfig) StateFile() string {
	return filepath.Join(s.StateDir, "state.json")
}

// AccessTTL returns the stub access-token lifetime.
func (s StubConfig) AccessTTL() time.Duration {
	return time.Duration(s.AccessTTLSeconds) * time.Second
}

// RefreshTTL returns the stub refresh-token lifetime.
func (s StubConfig) RefreshTTL() time.Duration {
	return time.Duration(s.RefreshTTLSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
