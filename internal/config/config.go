package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store backends
const (
	StoreFile     = "file"
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

var (
	ErrInvalidPort  = errors.New("invalid port")
	ErrInvalidStore = errors.New("invalid store backend")
)

type Config struct {
	Port            int
	Store           string
	DataFile        string
	Redis           RedisConfig
	DatabaseURL     string
	LogLevel        string
	OTLPEndpoint    string
	ShutdownTimeout time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Key      string
}

// Load reads .env when present, then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Store:        strings.ToLower(getEnv("STORE", StoreFile)),
		DataFile:     getEnv("DATA_FILE", "db.json"),
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			Key:      getEnv("REDIS_KEY", "pizzahub:db"),
		},
	}

	port, err := ParsePort(getEnv("PORT", "3000"))
	if err != nil {
		return nil, err
	}
	cfg.Port = port

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("REDIS_DB: %w", err)
	}
	cfg.Redis.DB = redisDB

	timeout, err := strconv.Atoi(getEnv("SHUTDOWN_TIMEOUT", "5"))
	if err != nil || timeout < 0 {
		return nil, fmt.Errorf("SHUTDOWN_TIMEOUT must be a non-negative number of seconds")
	}
	cfg.ShutdownTimeout = time.Duration(timeout) * time.Second

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that flags may have overridden after Load.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%w: %d", ErrInvalidPort, c.Port)
	}
	switch c.Store {
	case StoreFile, StoreMemory, StoreRedis:
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("%w: postgres needs DATABASE_URL", ErrInvalidStore)
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidStore, c.Store)
	}
	return nil
}

// ParsePort parses a TCP port number.
func ParsePort(s string) (int, error) {
	port, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || port < 1 || port > 65535 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPort, s)
	}
	return port, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
