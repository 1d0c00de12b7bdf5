package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

type Config struct {
	DbUri string
}

type DB struct {
	*sql.DB
	logger *logrus.Entry
}

func NewConnection(dbUri string, logger *logrus.Entry) (*DB, error) {
	db, err := sql.Open("postgres", dbUri)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(30 * time.Second)

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Database connection established successfully")

	return &DB{
		DB:     db,
		logger: logger,
	}, nil
}

func (db *DB) Close() error {
	db.logger.Info("Closing database connection")
	return db.DB.Close()
}

func (db *DB) HealthCheck() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return db.PingContext(ctx)
}

// Migrate creates the schema if it does not exist yet. The prices table has
// no uniqueness constraint on asset: the one-row-per-asset invariant is
// maintained by the upsert's read-then-write, last write wins.
func (db *DB) Migrate(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS alerts (
			id TEXT PRIMARY KEY,
			asset TEXT NOT NULL,
			entry_date TEXT NOT NULL,
			entry_price DOUBLE PRECISION NOT NULL,
			current_price DOUBLE PRECISION,
			alert_type TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_alerts_alert_type ON alerts (alert_type, created_at DESC)`,
		`CREATE TABLE IF NOT EXISTS prices (
			id BIGSERIAL PRIMARY KEY,
			asset TEXT NOT NULL,
			price DOUBLE PRECISION NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_prices_asset ON prices (asset)`,
	}

	for _, statement := range statements {
		if _, err := db.ExecContext(ctx, statement); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}

	db.logger.Info("Database schema is up to date")
	return nil
}
