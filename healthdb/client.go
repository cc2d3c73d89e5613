// Package healthdb is a SQLite catalog of the health dataset. It answers the
// list queries of the dashboard (indicators, countries per indicator) without
// scanning the raw table.
package healthdb

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"whd.healthtrends.org/internal/appconf"
)

//go:embed schema.sql
var ddl string

var ErrFileDBInTest = errors.New("healthdb: test environment must use an in-memory database")

// Client is the main entry point for the catalog
type Client struct {
	config        Config
	DB            *sql.DB
	logger        *slog.Logger
	importRuntime atomic.Int64 // nanoseconds
}

// NewClient opens the database and applies the schema.
func NewClient(config Config) (*Client, error) {
	db, err := createDB(config)
	if err != nil {
		return nil, err
	}

	return &Client{
		config: config,
		DB:     db,
		logger: slog.Default().With(slog.String("component", "healthdb")),
	}, nil
}

// WithLogger replaces the client's logger.
func (c *Client) WithLogger(logger *slog.Logger) *Client {
	if logger != nil {
		c.logger = logger.With(slog.String("component", "healthdb"))
	}
	return c
}

func (c *Client) Close() error {
	return c.DB.Close()
}

// ImportRuntime is how long the last ImportTable took.
func (c *Client) ImportRuntime() time.Duration {
	return time.Duration(c.importRuntime.Load())
}

func createDB(config Config) (*sql.DB, error) {
	if config.Env == appconf.Test && config.DBPath != ":memory:" {
		return nil, fmt.Errorf("%w: %s", ErrFileDBInTest, config.DBPath)
	}

	db, err := sql.Open("sqlite", config.DBPath)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	// Every connection to ":memory:" is a separate database.
	if config.DBPath == ":memory:" {
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	ctx := context.Background()
	if err := performDatabaseMigration(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("error performing database migration: %w", err)
	}

	return db, nil
}

func performDatabaseMigration(ctx context.Context, db *sql.DB) error {
	statements := strings.Split(ddl, "-- migrate")
	for _, stmt := range statements {
		trimmedStmt := strings.TrimSpace(stmt)
		if trimmedStmt == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, trimmedStmt); err != nil {
			return fmt.Errorf("error executing DDL statement [%s]: %w", trimmedStmt, err)
		}
	}
	return nil
}
