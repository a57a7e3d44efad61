package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bluepython508/tsql/config"
	"github.com/bluepython508/tsql/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	ctx := context.Background()

	db, err := sqlite.InMemory(ctx)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, run(ctx, db))

	items, err := ItemRecord.Select(db).FetchAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestLoadConfig(t *testing.T) {
	for _, key := range []string{`TSQL_DRIVER`, `TSQL_DSN`, `TSQL_MAX_OPEN_CONNS`, `TSQL_MAX_IDLE_CONNS`} {
		t.Setenv(key, ``)
	}

	path := filepath.Join(t.TempDir(), `tsql.yaml`)
	require.NoError(t, os.WriteFile(path, []byte("driver: sqlite\ndsn: \":memory:\"\n"), 0o600))

	cfg, err := loadConfig(path, ``)
	require.NoError(t, err)
	assert.Equal(t, config.DriverSqlite, cfg.Driver)

	db, closer, err := open(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer closer()

	assert.NoError(t, run(context.Background(), db))
}
