package config

import (
	"database/sql"
	"time"

	_ "github.com/lib/pq" // postgres driver
)

// SQLDB creates a configured *sql.DB for the configured DSN, backed by the
// lib/pq driver. The connection is opened lazily; the caller owns pinging
// and closing the handle.
func (c Config) SQLDB() (*sql.DB, error) {
	const defaultMaxOpenConnections = 50
	const defaultMaxIdleConnections = 10
	const defaultMaxConnLifetime = time.Hour
	const defaultMaxConnIdleTime = time.Minute * 5

	db, err := sql.Open("postgres", c.PostgresDSN)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(defaultMaxOpenConnections)
	db.SetMaxIdleConns(defaultMaxIdleConnections)
	db.SetConnMaxLifetime(defaultMaxConnLifetime)
	db.SetConnMaxIdleTime(defaultMaxConnIdleTime)

	return db, nil
}
