package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgresql+psycopg://u:p@localhost:5432/ws")
	t.Setenv("OPLOG_BACKEND", "")
	t.Setenv("DISPLAY_TZ", "")
	t.Setenv("SYNC_INTERVAL", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "postgresql://u:p@localhost:5432/ws", cfg.DatabaseURL)
	assert.Equal(t, OpLogPostgres, cfg.OpLogBackend)
	assert.Equal(t, "Europe/Moscow", cfg.Location().String())
	assert.Equal(t, time.Duration(0), cfg.SyncInterval)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing database url", map[string]string{"DATABASE_URL": ""}},
		{"unknown oplog backend", map[string]string{"OPLOG_BACKEND": "redis"}},
		{"bad time zone", map[string]string{"DISPLAY_TZ": "Mars/Olympus"}},
		{"no connections", map[string]string{"DB_MAX_OPEN_CONNS": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DATABASE_URL", "postgresql://localhost/ws")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestNormalizeDatabaseURL(t *testing.T) {
	assert.Equal(t, "postgresql://h/db", normalizeDatabaseURL("postgresql+psycopg2://h/db"))
	assert.Equal(t, "postgres://h/db", normalizeDatabaseURL("postgres://h/db"))
	assert.Equal(t, "host=h dbname=db", normalizeDatabaseURL("host=h dbname=db"))
}

func TestGetEnvAsDuration(t *testing.T) {
	t.Setenv("WS_TEST_DURATION", "90s")
	assert.Equal(t, 90*time.Second, getEnvAsDuration("WS_TEST_DURATION", time.Second))

	t.Setenv("WS_TEST_DURATION", "15")
	assert.Equal(t, 15*time.Second, getEnvAsDuration("WS_TEST_DURATION", time.Second))

	t.Setenv("WS_TEST_DURATION", "soon")
	assert.Equal(t, time.Second, getEnvAsDuration("WS_TEST_DURATION", time.Second))
}

func TestGetEnvAsList(t *testing.T) {
	t.Setenv("WS_TEST_LIST", " https://a.example , ,https://b.example")
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, getEnvAsList("WS_TEST_LIST", nil))

	t.Setenv("WS_TEST_LIST", "")
	assert.Equal(t, []string{"*"}, getEnvAsList("WS_TEST_LIST", []string{"*"}))
}
