package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// ErrNotFound: the referenced row does not exist.
var ErrNotFound = errors.New("store: not found")

// DB wraps the shared database handle. Postgres via the pgx stdlib driver.
type DB struct {
	sql *sql.DB
}

func Open(dsn string) (*DB, error) {
	db, err := sql.Open("pgx", strings.TrimSpace(dsn))
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &DB{sql: db}, nil
}

func (d *DB) Close() error { return d.sql.Close() }

// EnsureSchema creates the applications and requests tables when absent.
func (d *DB) EnsureSchema(ctx context.Context) error {
	_, err := d.sql.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS applications (
	id INTEGER PRIMARY KEY,
	full_name TEXT NOT NULL,
	date_of_birth TEXT NOT NULL,
	address TEXT NOT NULL,
	national_id TEXT NOT NULL,
	income DOUBLE PRECISION NOT NULL,
	expenses DOUBLE PRECISION NOT NULL,
	credit_score INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS requests (
	id SERIAL PRIMARY KEY,
	request_body TEXT NOT NULL,
	summary TEXT,
	response TEXT,
	processed_at TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`)
	return err
}
