// Package config builds the explicit process-start configuration of the
// borrowing engine. Business logic never reads ambient global state; every
// adapter receives its settings through these structs.
package config

import (
	"errors"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	jsoniter "github.com/json-iterator/go"
)

// ErrInvalidConfigFile wraps failures to read or decode the config file.
var ErrInvalidConfigFile = errors.New("invalid config file")

// Config carries everything the process needs at start.
type Config struct {
	PostgresDSN string `json:"postgres_dsn"`

	StripeAPIKey     string `json:"stripe_api_key"`
	StripeSuccessURL string `json:"stripe_success_url"`
	StripeCancelURL  string `json:"stripe_cancel_url"`

	TelegramBotToken string `json:"telegram_bot_token"`
	TelegramChatID   int64  `json:"telegram_chat_id"`

	// ScanIntervalHours is the overdue scan schedule; 24 means one scan per day.
	ScanIntervalHours int `json:"scan_interval_hours"`
}

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Load reads and decodes the JSON config file at path.
func Load(path string) (Config, error) {
	var empty Config

	raw, readErr := os.ReadFile(path)
	if readErr != nil {
		return empty, errors.Join(ErrInvalidConfigFile, readErr)
	}

	var cfg Config
	if decodeErr := json.Unmarshal(raw, &cfg); decodeErr != nil {
		return empty, errors.Join(ErrInvalidConfigFile, decodeErr)
	}

	if cfg.ScanIntervalHours <= 0 {
		cfg.ScanIntervalHours = 24
	}

	return cfg, nil
}

// ScanInterval returns the overdue scan schedule as a duration.
func (c Config) ScanInterval() time.Duration {
	return time.Duration(c.ScanIntervalHours) * time.Hour
}

// PGXPoolConfig creates the pgxpool.Config for the configured DSN.
func (c Config) PGXPoolConfig() (*pgxpool.Config, error) {
	const defaultMaxConnections = int32(8)
	const defaultMinConnections = int32(2)
	const defaultMaxConnLifetime = time.Hour
	const defaultMaxConnIdleTime = time.Minute * 5
	const defaultHealthCheckPeriod = time.Minute
	const defaultConnectTimeout = time.Second * 5

	dbConfig, err := pgxpool.ParseConfig(c.PostgresDSN)
	if err != nil {
		return nil, err
	}

	dbConfig.MaxConns = defaultMaxConnections
	dbConfig.MinConns = defaultMinConnections
	dbConfig.MaxConnLifetime = defaultMaxConnLifetime
	dbConfig.MaxConnIdleTime = defaultMaxConnIdleTime
	dbConfig.HealthCheckPeriod = defaultHealthCheckPeriod
	dbConfig.ConnConfig.ConnectTimeout = defaultConnectTimeout

	return dbConfig, nil
}
