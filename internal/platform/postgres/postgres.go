// Package postgres owns the sql.DB lifecycle: opened once at process start,
// injected into stores, closed at shutdown. Nothing else holds connection
// state.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/Rishov2004/Blood-Donation/internal/platform/config"
)

// Schema is the registry's relational shape. The UNIQUE constraint on phone
// is the uniqueness invariant: concurrent registrations with the same phone
// race at the index, and exactly one insert wins.
const Schema = `
CREATE TABLE IF NOT EXISTS donors (
	id            BIGSERIAL PRIMARY KEY,
	name          TEXT        NOT NULL,
	age           INTEGER     NOT NULL CHECK (age > 0),
	blood_group   TEXT        NOT NULL,
	phone         TEXT        NOT NULL UNIQUE,
	email         TEXT        NOT NULL,
	address       TEXT        NOT NULL DEFAULT '',
	latitude      DOUBLE PRECISION NOT NULL CHECK (latitude  BETWEEN -90  AND 90),
	longitude     DOUBLE PRECISION NOT NULL CHECK (longitude BETWEEN -180 AND 180),
	registered_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS donors_blood_group_idx ON donors (blood_group);
`

// Open connects to Postgres and verifies the connection.
func Open(ctx context.Context, cfg config.PostgresConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// EnsureSchema applies the donor table schema. Idempotent.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("ensure donors schema: %w", err)
	}
	return nil
}
