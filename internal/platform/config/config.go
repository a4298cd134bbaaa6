package config

import (
	"fmt"
	"log"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Movement store backends.
const (
	StoreFile     = "file"
	StorePostgres = "postgres"
)

// Account ID formats.
const (
	AccountIDNumeric = "numeric"
	AccountIDUUID    = "uuid"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool
	LogLevel     slog.Level

	// Movement store
	MovementStore      string
	DepositsLogPath    string
	WithdrawalsLogPath string
	DatabaseURL        string
	MigrationsPath     string

	AccountIDFormat    string
	RateLimit          string // ulule limiter format, e.g. "100-M"
	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MOVEMENT_STORE", StoreFile)
	viper.SetDefault("DEPOSITS_LOG_PATH", "deposits.txt")
	viper.SetDefault("WITHDRAWALS_LOG_PATH", "withdrawals.txt")
	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("ACCOUNT_ID_FORMAT", AccountIDNumeric)
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	viper.AutomaticEnv()

	cfg := &Config{
		Port:               viper.GetString("PORT"),
		IsProduction:       viper.GetBool("IS_PRODUCTION"),
		MovementStore:      strings.ToLower(viper.GetString("MOVEMENT_STORE")),
		DepositsLogPath:    viper.GetString("DEPOSITS_LOG_PATH"),
		WithdrawalsLogPath: viper.GetString("WITHDRAWALS_LOG_PATH"),
		DatabaseURL:        viper.GetString("PGSQL_URL"),
		MigrationsPath:     viper.GetString("MIGRATIONS_PATH"),
		AccountIDFormat:    strings.ToLower(viper.GetString("ACCOUNT_ID_FORMAT")),
		RateLimit:          viper.GetString("RATE_LIMIT"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(viper.GetString("LOG_LEVEL"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	switch cfg.MovementStore {
	case StoreFile:
		if cfg.DepositsLogPath == "" || cfg.WithdrawalsLogPath == "" {
			return nil, fmt.Errorf("DEPOSITS_LOG_PATH and WITHDRAWALS_LOG_PATH are required for the %q store", StoreFile)
		}
	case StorePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("PGSQL_URL is required for the %q store", StorePostgres)
		}
	default:
		return nil, fmt.Errorf("unknown MOVEMENT_STORE %q", cfg.MovementStore)
	}

	switch cfg.AccountIDFormat {
	case AccountIDNumeric, AccountIDUUID:
	default:
		return nil, fmt.Errorf("unknown ACCOUNT_ID_FORMAT %q", cfg.AccountIDFormat)
	}

	for _, origin := range strings.Split(viper.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	return cfg, nil
}
