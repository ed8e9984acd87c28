package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port       int    `validate:"min=1,max=65535"`
	LogLevel   string `validate:"oneof=DEBUG INFO WARN ERROR"`
	LogFormat  string `validate:"oneof=json text"`
	LogDir     string `validate:"required"`
	DBUser     string `validate:"required"`
	DBPassword string `validate:"required"`
	DBHost     string `validate:"required"`
	DBPort     string `validate:"required"`
	DBName     string `validate:"required"`
	APIKey     string `validate:"required"` // admin API key

	// Optional content pack directory; empty means compiled-in stock content.
	ContentDir string

	// Seed for the simulation's random source; 0 means time-seeded.
	SimSeed int64

	// How often the running world is persisted, in simulated days.
	SnapshotIntervalDays int `validate:"min=1"`

	// Wall-clock seconds per simulated day when the scheduler drives the
	// tick. 0 disables the automatic tick (admin-driven only).
	TickIntervalSeconds int `validate:"min=0"`

	DeadLetterPath string `validate:"required"`
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:       getEnv("LOG_LEVEL", "INFO"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
		LogDir:         getEnv("LOG_DIR", "logs"),
		DBUser:         getEnv("DB_USER", "postgres"),
		DBPassword:     getEnv("DB_PASSWORD", "postgres"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBName:         getEnv("DB_NAME", "hearthstead"),
		APIKey:         getEnv("API_KEY", ""),
		ContentDir:     getEnv("CONTENT_DIR", ""),
		DeadLetterPath: getEnv("DEAD_LETTER_PATH", "logs/dead_letter.jsonl"),
	}

	var err error
	if cfg.Port, err = getEnvInt("PORT", 8080); err != nil {
		return nil, err
	}
	if cfg.SnapshotIntervalDays, err = getEnvInt("SNAPSHOT_INTERVAL_DAYS", 10); err != nil {
		return nil, err
	}
	if cfg.TickIntervalSeconds, err = getEnvInt("TICK_INTERVAL_SECONDS", 0); err != nil {
		return nil, err
	}

	seedStr := getEnv("SIM_SEED", "0")
	seed, err := strconv.ParseInt(seedStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid SIM_SEED value: %w", err)
	}
	cfg.SimSeed = seed

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return n, nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
