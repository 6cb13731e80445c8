// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"embed"
	"fmt"
	"sync"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// goose keeps its dialect and filesystem in package state
var migrateMu sync.Mutex

// Open connects to a sqlite file or a postgres URL and applies all pending
// migrations. dbType is "sqlite" or "postgres".
func Open(dbType, url string) (*sqlx.DB, error) {
	var (
		driver  string
		dialect goose.Dialect
	)
	switch dbType {
	case "sqlite":
		driver, dialect = "sqlite", goose.DialectSQLite3
	case "postgres":
		driver, dialect = "postgres", goose.DialectPostgres
	default:
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}

	conn, err := sqlx.Connect(driver, url)
	if err != nil {
		return nil, fmt.Errorf("connecting to db: %w", err)
	}

	if driver == "sqlite" {
		// one writer; also keeps ":memory:" databases on a single connection
		conn.SetMaxOpenConns(1)
		if _, err := conn.Exec("PRAGMA foreign_keys = ON;"); err != nil {
			conn.Close()
			return nil, fmt.Errorf("enabling foreign keys: %w", err)
		}
	}

	if err := Migrate(conn, dialect); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

// Migrate applies the embedded migrations. Safe to call repeatedly.
func Migrate(conn *sqlx.DB, dialect goose.Dialect) error {
	migrateMu.Lock()
	defer migrateMu.Unlock()

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(string(dialect)); err != nil {
		return fmt.Errorf("setting dialect for migrations: %w", err)
	}
	if err := goose.Up(conn.DB, "migrations"); err != nil {
		return fmt.Errorf("applying migrations: %w", err)
	}
	return nil
}
