// Package postgres provides a tsql.Db backend for PostgreSQL, using
// github.com/lib/pq. Statements use "$1", "$2", ... placeholders.
package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/bluepython508/tsql"
	"github.com/bluepython508/tsql/config"
	"github.com/bluepython508/tsql/internal/dbsql"
	"github.com/lib/pq"
)

// Options configures a connection pool.
type Options struct {
	// Pool settings, applied after connecting
	Pool config.Pool

	// Logger is optional
	Logger dbsql.Logger
}

// Db is a PostgreSQL connection pool. Implements tsql.Db.
type Db struct {
	dbsql.Db
}

var _ tsql.Db = (*Db)(nil)

/*
Connect parses dsn, which may be a URL ("postgres://user@host/db") or a
key/value string ("host=localhost dbname=test"), opens a pool and verifies the
connection. A malformed dsn is reported as tsql.ErrConfiguration, an
unreachable server as tsql.ErrBackend.
*/
func Connect(ctx context.Context, dsn string, opts Options) (*Db, error) {
	connector, err := pq.NewConnector(dsn)
	if err != nil {
		return nil, tsql.ErrConfiguration.WithWhile(`parsing postgres dsn`).WithCause(err)
	}

	db := sql.OpenDB(connector)
	dbsql.ApplyPool(db, opts.Pool)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, tsql.ErrBackend.WithWhile(`connecting to postgres`).WithCause(err)
	}

	return &Db{dbsql.Db{
		DB:           db,
		Placeholders: func() tsql.Params { return new(tsql.Ordinal) },
		Logger:       opts.Logger,
	}}, nil
}

// FromConfig connects to the database described by cfg, which must use the
// postgres driver.
func FromConfig(ctx context.Context, cfg *config.Config, logger dbsql.Logger) (*Db, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Driver != config.DriverPostgres {
		return nil, tsql.ErrConfiguration.WithWhile(`connecting to postgres`).WithCause(errWrongDriver)
	}
	return Connect(ctx, cfg.DSN, Options{Pool: cfg.Pool, Logger: logger})
}

// Code returns the SQLSTATE code of a postgres error, if err wraps one.
// For example, "23505" is a unique violation.
func Code(err error) (string, bool) {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return ``, false
	}
	return string(pqErr.Code), true
}
