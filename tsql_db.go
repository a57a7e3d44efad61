package tsql

import "context"

/*
Backend capability required by the query builders. Implemented by the
"sqlite" and "postgres" packages of this module, and easy to implement over
any other driver.

`Params` returns a fresh placeholder context for one statement.

`Exec` executes a statement that returns no rows.

`Query` executes a statement and invokes the callback once per result row, in
row order, with a supplier that yields the row's raw values by position. An
error returned by the callback aborts the query and is returned as-is.

Implementations should be safe for concurrent use when the underlying pool is.
*/
type Db interface {
	Params() Params
	Exec(ctx context.Context, stmt Stmt) error
	Query(ctx context.Context, stmt Stmt, row func(Supplier) error) error
}
