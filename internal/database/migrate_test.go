package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/geotreasure/migrations"
)

func TestMigrate_AppliesSchemaIdempotently(t *testing.T) {
	requireDB(t)
	pool := newTestPool(t, 5)

	ctx := context.Background()
	require.NoError(t, Migrate(ctx, pool, migrations.FS))
	require.NoError(t, Migrate(ctx, pool, migrations.FS), "second run should be a no-op")

	for _, table := range []string{"treasures", "profiles", "reward_records", "events"} {
		var exists bool
		err := pool.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = $1)`, table,
		).Scan(&exists)
		require.NoError(t, err)
		assert.True(t, exists, table)
	}
}
