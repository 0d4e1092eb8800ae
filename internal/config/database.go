package config

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

// Pool sizing for a single-process API: reservation bursts fan out over a
// handful of short single-statement queries, so a small pool is enough.
const (
	poolMaxOpenConns    = 25
	poolMaxIdleConns    = 5
	poolConnMaxLifetime = 5 * time.Minute
)

// Database wraps the sql.DB pool together with the migration runner.
type Database struct {
	*sql.DB
	logger *logrus.Logger
}

// NewDatabase opens the PostgreSQL pool and verifies the connection.
func NewDatabase(databaseURL string, logger *logrus.Logger) (*Database, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(poolMaxOpenConns)
	db.SetMaxIdleConns(poolMaxIdleConns)
	db.SetConnMaxLifetime(poolConnMaxLifetime)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.WithField("max_open_conns", poolMaxOpenConns).Info("Connected to PostgreSQL")

	return &Database{
		DB:     db,
		logger: logger,
	}, nil
}

// Migrate applies any pending migrations from the given directory. The schema
// constraints (unique username, unique wish_id on reservations, FK cascades)
// live in these files, so the server refuses to start if they cannot be
// applied.
func (d *Database) Migrate(migrationsPath string) error {
	driver, err := postgres.WithInstance(d.DB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsPath),
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	switch err := m.Up(); err {
	case nil:
		d.logger.Info("Applied pending database migrations")
	case migrate.ErrNoChange:
		d.logger.Info("Database schema is up to date")
	default:
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Close closes the database connection pool.
func (d *Database) Close() error {
	if d.DB != nil {
		return d.DB.Close()
	}
	return nil
}
