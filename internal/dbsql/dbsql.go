// Package dbsql adapts "database/sql" pools to the tsql.Db capability. Shared
// by the sqlite and postgres backends, which differ only in drivers, DSNs and
// placeholder syntax.
package dbsql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bluepython508/tsql"
	"github.com/bluepython508/tsql/config"
)

// Logger receives one line per dispatched statement. Satisfied by *log.Logger.
type Logger interface {
	Printf(format string, args ...any)
}

// Db implements tsql.Db over a "database/sql" pool.
type Db struct {
	// DB is the underlying pool, shared by every statement
	DB *sql.DB

	// Placeholders returns a fresh placeholder context for one statement
	Placeholders func() tsql.Params

	// Logger is optional
	Logger Logger
}

// Params implements tsql.Db.
func (self *Db) Params() tsql.Params { return self.Placeholders() }

// Exec implements tsql.Db.
func (self *Db) Exec(ctx context.Context, stmt tsql.Stmt) error {
	self.log(`exec`, stmt)
	_, err := self.DB.ExecContext(ctx, stmt.Text, Args(stmt.Args)...)
	return err
}

// Query implements tsql.Db. Every row is scanned into tsql.Value before the
// callback runs.
func (self *Db) Query(ctx context.Context, stmt tsql.Stmt, fun func(tsql.Supplier) error) error {
	self.log(`query`, stmt)

	rows, err := self.DB.QueryContext(ctx, stmt.Text, Args(stmt.Args)...)
	if err != nil {
		return err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return err
	}

	row := make(Row, len(cols))
	dest := make([]any, len(cols))
	for i := range row {
		dest[i] = &row[i]
	}

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return err
		}
		if err := fun(row.Supplier()); err != nil {
			return err
		}
	}
	return rows.Err()
}

// Close closes the underlying pool.
func (self *Db) Close() error { return self.DB.Close() }

func (self *Db) log(kind string, stmt tsql.Stmt) {
	if self.Logger != nil {
		self.Logger.Printf(`tsql: %s %s (%d args)`, kind, stmt.Text, len(stmt.Args))
	}
}

// Args converts statement args to the form accepted by "database/sql".
// tsql.Value implements driver.Valuer.
func Args(vals []tsql.Value) []any {
	out := make([]any, len(vals))
	for i, val := range vals {
		out[i] = val
	}
	return out
}

// Row holds the raw values of one scanned result row.
type Row []tsql.Value

/*
Supplier returns a supplier that yields the row's values left to right, each
reinterpreted for the type the reader expects. Reading past the end of the row
panics, since it means the column tuple and the statement disagree.
*/
func (self Row) Supplier() tsql.Supplier {
	var next int
	return func(typ tsql.Type) tsql.Value {
		if next >= len(self) {
			panic(tsql.ErrInternal.WithWhile(`reading result row`).WithCause(
				fmt.Errorf(`column %d requested, row has %d columns`, next, len(self)),
			))
		}
		val := self[next].Coerce(typ)
		next++
		return val
	}
}

// ApplyPool applies pool settings. Zero values keep the current settings.
func ApplyPool(db *sql.DB, pool config.Pool) {
	if pool.MaxOpenConns > 0 {
		db.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns > 0 {
		db.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(pool.ConnMaxLifetime)
	}
	if pool.ConnMaxIdleTime > 0 {
		db.SetConnMaxIdleTime(pool.ConnMaxIdleTime)
	}
}
