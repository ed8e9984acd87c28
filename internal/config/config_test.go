package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("API_KEY", "test-key")
	t.Setenv("DB_PASSWORD", "secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "hearthstead", cfg.DBName)
	assert.Equal(t, 10, cfg.SnapshotIntervalDays)
	assert.Zero(t, cfg.TickIntervalSeconds)
	assert.Zero(t, cfg.SimSeed)
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("SIM_SEED", "42")
	t.Setenv("SNAPSHOT_INTERVAL_DAYS", "3")
	t.Setenv("TICK_INTERVAL_SECONDS", "30")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, int64(42), cfg.SimSeed)
	assert.Equal(t, 3, cfg.SnapshotIntervalDays)
	assert.Equal(t, 30, cfg.TickIntervalSeconds)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad port", "PORT", "not-a-number"},
		{"bad seed", "SIM_SEED", "abc"},
		{"bad log level", "LOG_LEVEL", "VERBOSE"},
		{"zero snapshot interval", "SNAPSHOT_INTERVAL_DAYS", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingAPIKey(t *testing.T) {
	t.Setenv("API_KEY", "")
	t.Setenv("DB_PASSWORD", "secret")

	_, err := Load()
	assert.Error(t, err)
}

func TestGetDBConnString(t *testing.T) {
	cfg := &Config{
		DBUser:     "app",
		DBPassword: "pw",
		DBHost:     "db",
		DBPort:     "5432",
		DBName:     "hearthstead",
	}
	assert.Equal(t, "postgres://app:pw@db:5432/hearthstead?sslmode=disable", cfg.GetDBConnString())
}
