package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unclebandit/customers-dashboard/internal/config"
)

func TestRebind(t *testing.T) {
	q := "UPDATE customers SET first_name=?, last_name=? WHERE id=?"
	assert.Equal(t, "UPDATE customers SET first_name=$1, last_name=$2 WHERE id=$3", Rebind(Postgres, q))
	assert.Equal(t, q, Rebind(SQLite, q))
}

func TestOpenAndMigrateSQLite(t *testing.T) {
	ctx := context.Background()
	conn, err := Open(ctx, config.DatabaseConfig{Driver: SQLite, SQLitePath: ":memory:"})
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, Migrate(ctx, conn, SQLite))
	// idempotent
	require.NoError(t, Migrate(ctx, conn, SQLite))

	var n int
	require.NoError(t, conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM customers").Scan(&n))
	assert.Zero(t, n)
}
