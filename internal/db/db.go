// internal/db/db.go
package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// Open connects to Postgres and verifies the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open DB: %w", err)
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}
	return conn, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS contacts (
    id         TEXT PRIMARY KEY,
    seq        BIGSERIAL,
    first_name TEXT NOT NULL,
    last_name  TEXT NOT NULL,
    headline   TEXT,
    company    TEXT,
    industry   TEXT,
    location   TEXT,
    synced_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS campaigns (
    seq        BIGSERIAL PRIMARY KEY,
    name       TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS campaign_messages (
    campaign_seq BIGINT NOT NULL REFERENCES campaigns(seq),
    position     INTEGER NOT NULL,
    contact_id   TEXT NOT NULL,
    send_at      TIMESTAMPTZ NOT NULL,
    body         TEXT NOT NULL,
    PRIMARY KEY (campaign_seq, position)
);
`

// EnsureSchema creates the tables the repositories use.
func EnsureSchema(ctx context.Context, conn *sql.DB) error {
	if _, err := conn.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
