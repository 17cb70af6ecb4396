// internal/db/db.go
package db

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/unclebandit/customers-dashboard/internal/config"
)

const (
	Postgres = "postgres"
	SQLite   = "sqlite"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS customers (
    id                SERIAL PRIMARY KEY,
    first_name        TEXT NOT NULL,
    last_name         TEXT NOT NULL DEFAULT '',
    email             TEXT NOT NULL DEFAULT '',
    phone             TEXT NOT NULL DEFAULT '',
    location          TEXT NOT NULL DEFAULT '',
    preferred_product TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS customers_name_idx ON customers (last_name, first_name);
`

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS customers (
    id                INTEGER PRIMARY KEY AUTOINCREMENT,
    first_name        TEXT NOT NULL,
    last_name         TEXT NOT NULL DEFAULT '',
    email             TEXT NOT NULL DEFAULT '',
    phone             TEXT NOT NULL DEFAULT '',
    location          TEXT NOT NULL DEFAULT '',
    preferred_product TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS customers_name_idx ON customers (last_name, first_name);
`

// Open connects to the configured database and pings it.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	conn, err := sql.Open(cfg.Driver, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}
	if cfg.Driver == SQLite {
		// sqlite serializes writers; one connection avoids SQLITE_BUSY
		conn.SetMaxOpenConns(1)
	} else {
		conn.SetMaxOpenConns(20)
		conn.SetConnMaxIdleTime(5 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping %s: %w", cfg.Driver, err)
	}
	return conn, nil
}

// Migrate creates the customers table if it does not exist yet.
func Migrate(ctx context.Context, conn *sql.DB, driver string) error {
	schema := postgresSchema
	if driver == SQLite {
		schema = sqliteSchema
	}
	if _, err := conn.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate customers schema: %w", err)
	}
	return nil
}

// Rebind rewrites ? placeholders into $N for postgres. Queries must not
// contain literal question marks.
func Rebind(driver, query string) string {
	if driver != Postgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
