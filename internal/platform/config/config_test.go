package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, StoreFile, cfg.MovementStore)
	assert.Equal(t, "deposits.txt", cfg.DepositsLogPath)
	assert.Equal(t, "withdrawals.txt", cfg.WithdrawalsLogPath)
	assert.Equal(t, AccountIDNumeric, cfg.AccountIDFormat)
	assert.Equal(t, "100-M", cfg.RateLimit)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("MOVEMENT_STORE", "POSTGRES")
	t.Setenv("PGSQL_URL", "postgres://localhost/ledger")
	t.Setenv("ACCOUNT_ID_FORMAT", "uuid")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.example, http://b.example")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, StorePostgres, cfg.MovementStore)
	assert.Equal(t, "postgres://localhost/ledger", cfg.DatabaseURL)
	assert.Equal(t, AccountIDUUID, cfg.AccountIDFormat)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.CORSAllowedOrigins)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"postgres without url", map[string]string{"MOVEMENT_STORE": "postgres"}},
		{"unknown store", map[string]string{"MOVEMENT_STORE": "s3"}},
		{"unknown id format", map[string]string{"ACCOUNT_ID_FORMAT": "hex"}},
		{"bad log level", map[string]string{"LOG_LEVEL": "loud"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}
