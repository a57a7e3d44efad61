// Package sqlite provides a tsql.Db backend for SQLite, using
// github.com/mattn/go-sqlite3. Statements use "?" placeholders and every
// connection enforces foreign keys.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/bluepython508/tsql"
	"github.com/bluepython508/tsql/config"
	"github.com/bluepython508/tsql/internal/dbsql"
	"github.com/mattn/go-sqlite3"
)

// DriverName is the "database/sql" driver registered by go-sqlite3.
const DriverName = `sqlite3`

// Options configures a database.
type Options struct {
	// Pool settings, applied after opening
	Pool config.Pool

	// Logger is optional
	Logger dbsql.Logger
}

// Db is a SQLite database. Implements tsql.Db.
type Db struct {
	dbsql.Db
}

var _ tsql.Db = (*Db)(nil)

/*
Open opens the database at path, creating it if necessary, and verifies the
connection. The path ":memory:" opens a private in-memory database, see
InMemory.
*/
func Open(ctx context.Context, path string, opts Options) (*Db, error) {
	if path == `` {
		return nil, tsql.ErrConfiguration.WithWhile(`opening sqlite database`).WithCause(errEmptyPath)
	}

	memory := path == `:memory:`
	db, err := sql.Open(DriverName, DSN(path))
	if err != nil {
		return nil, tsql.ErrConfiguration.WithWhile(`opening sqlite database`).WithCause(err)
	}

	dbsql.ApplyPool(db, opts.Pool)
	if memory {
		// Each connection to ":memory:" is a separate database.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
		db.SetConnMaxIdleTime(0)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, tsql.ErrBackend.WithWhile(`connecting to sqlite database`).WithCause(err)
	}

	return &Db{dbsql.Db{
		DB:           db,
		Placeholders: func() tsql.Params { return tsql.Positional{} },
		Logger:       opts.Logger,
	}}, nil
}

// InMemory opens a private in-memory database, which lives as long as the
// returned Db.
func InMemory(ctx context.Context) (*Db, error) {
	return Open(ctx, `:memory:`, Options{})
}

// FromConfig opens the database described by cfg, which must use the sqlite
// driver.
func FromConfig(ctx context.Context, cfg *config.Config, logger dbsql.Logger) (*Db, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Driver != config.DriverSqlite {
		return nil, tsql.ErrConfiguration.WithWhile(`opening sqlite database`).WithCause(errWrongDriver)
	}
	return Open(ctx, cfg.DSN, Options{Pool: cfg.Pool, Logger: logger})
}

// DSN returns the go-sqlite3 data source name for path, with foreign keys
// enabled.
func DSN(path string) string {
	if path == `:memory:` {
		return `file::memory:?_foreign_keys=on`
	}
	if !strings.HasPrefix(path, `file:`) {
		path = `file:` + path
	}
	if strings.Contains(path, `?`) {
		return path + `&_foreign_keys=on`
	}
	return path + `?_foreign_keys=on`
}

// IsConstraint reports whether err wraps a SQLite constraint violation, such
// as a broken foreign key or a duplicate unique value.
func IsConstraint(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint
}
