package tsql

import (
	"context"
	"fmt"
)

/*
Accumulates an `INSERT` of rows of type `R` into the columns of `cols`.
Persistent, like `SelectBuilder`. Args are ordered row-major: for each row in
the order it was added, for each column in tuple order.

	INSERT INTO "person"("id", "name") VALUES ($1, $2), ($3, $4)
*/
type InsertBuilder[T Table, R any] struct {
	db   Db
	cols ColumnTuple[T, R]
	rows [][]Value
}

// Starts an `INSERT` of the given column tuple, with no rows.
func InsertInto[T Table, R any](db Db, cols ColumnTuple[T, R]) InsertBuilder[T, R] {
	return InsertBuilder[T, R]{db: db, cols: cols}
}

// Appends rows. Values are encoded immediately.
func (self InsertBuilder[T, R]) Values(rows ...R) InsertBuilder[T, R] {
	out := make([][]Value, len(self.rows), len(self.rows)+len(rows))
	copy(out, self.rows)
	for _, row := range rows {
		out = append(out, self.cols.ToValues(row))
	}
	self.rows = out
	return self
}

// Number of accumulated rows.
func (self InsertBuilder[T, R]) Len() int { return len(self.rows) }

/*
Lowers the builder into a statement, using the backend's placeholders. Without
rows there's nothing to lower, and the result is a zero `Stmt`.
*/
func (self InsertBuilder[T, R]) Build() Stmt {
	if len(self.rows) == 0 {
		return Stmt{}
	}
	return self.build(self.db.Params())
}

func (self InsertBuilder[T, R]) build(params Params) Stmt {
	bui := MakeBui(params, 128, len(self.rows)*self.cols.Len())
	bui.Str(`INSERT INTO`)
	bui.Ident(TableName[T]())
	bui.Raw(`(`)
	bui.Idents(ColumnNames(self.cols)...)
	bui.Raw(`)`)
	bui.Str(`VALUES`)

	for ind, row := range self.rows {
		if ind > 0 {
			bui.Raw(`,`)
		}
		bui.Str(`(`)
		for ind, val := range row {
			if ind > 0 {
				bui.Raw(`,`)
			}
			bui.Arg(val)
		}
		bui.Raw(`)`)
	}

	return bui.Reify().check()
}

/*
Executes the statement. Inserting zero rows is a no-op that doesn't reach the
backend, since `VALUES` requires at least one row.
*/
func (self InsertBuilder[T, R]) Exec(ctx context.Context) error {
	if len(self.rows) == 0 {
		return nil
	}
	return backendErr(`inserting rows`, self.db.Exec(ctx, self.Build()))
}

// Same as `InsertInto(db, self)`.
func (self Column[T, S, A]) InsertInto(db Db) InsertBuilder[T, A] {
	return InsertInto[T, A](db, self)
}

// Same as `InsertInto(db, self)`.
func (self Tuple2[T, S0, A0, S1, A1]) InsertInto(db Db) InsertBuilder[T, Row2[A0, A1]] {
	return InsertInto[T, Row2[A0, A1]](db, self)
}

// Same as `InsertInto(db, self)`.
func (self Tuple3[T, S0, A0, S1, A1, S2, A2]) InsertInto(db Db) InsertBuilder[T, Row3[A0, A1, A2]] {
	return InsertInto[T, Row3[A0, A1, A2]](db, self)
}

// Same as `InsertInto(db, self)`.
func (self Record[T, R]) InsertInto(db Db) InsertBuilder[T, R] {
	return InsertInto[T, R](db, self)
}

/*
Accumulates an `UPDATE` of table `T`. Persistent, like `SelectBuilder`. Args
are ordered: assignments in the order they were added, then the condition.

	UPDATE "person" SET "name" = $1, "score" = $2 WHERE "id" = $3
*/
type UpdateBuilder[T Table] struct {
	db    Db
	sets  []Assignment[T]
	where Cond[T]
}

// Starts an `UPDATE` with no assignments. The condition defaults to `TRUE`.
func Update[T Table](db Db) UpdateBuilder[T] {
	return UpdateBuilder[T]{db: db}
}

// Appends assignments, usually obtained via `Column.Assign`.
func (self UpdateBuilder[T]) Set(vals ...Assignment[T]) UpdateBuilder[T] {
	out := make([]Assignment[T], len(self.sets), len(self.sets)+len(vals))
	copy(out, self.sets)
	self.sets = append(out, vals...)
	return self
}

// Replaces the condition.
func (self UpdateBuilder[T]) Where(cond Cond[T]) UpdateBuilder[T] {
	self.where = cond
	return self
}

/*
Lowers the builder into a statement, using the backend's placeholders. Without
assignments there's nothing to lower, and the result is a zero `Stmt`.
*/
func (self UpdateBuilder[T]) Build() Stmt {
	if len(self.sets) == 0 {
		return Stmt{}
	}
	return self.build(self.db.Params())
}

func (self UpdateBuilder[T]) build(params Params) Stmt {
	bui := MakeBui(params, 128, len(self.sets)+2)
	bui.Str(`UPDATE`)
	bui.Ident(TableName[T]())
	bui.Str(`SET`)

	for ind, set := range self.sets {
		if ind > 0 {
			bui.Raw(`,`)
		}
		bui.Ident(set.Col.Name())
		bui.Str(`=`)
		bui.Arg(set.Val)
	}

	bui.Str(`WHERE`)
	self.where.Append(&bui)
	return bui.Reify().check()
}

// Executes the statement. Without assignments, this is a no-op that succeeds
// without reaching the backend.
func (self UpdateBuilder[T]) Exec(ctx context.Context) error {
	if len(self.sets) == 0 {
		return nil
	}
	return backendErr(`updating rows`, self.db.Exec(ctx, self.Build()))
}

/*
`DELETE` of the rows of table `T` matching a condition. The condition is
required: to delete every row, pass `True`.

	DELETE FROM "person" WHERE "id" = $1
*/
type DeleteBuilder[T Table] struct {
	db    Db
	where Cond[T]
}

// Starts a `DELETE` with the given condition.
func DeleteWhere[T Table](db Db, cond Cond[T]) DeleteBuilder[T] {
	return DeleteBuilder[T]{db: db, where: cond}
}

// Lowers the builder into a statement, using the backend's placeholders.
func (self DeleteBuilder[T]) Build() Stmt {
	return self.build(self.db.Params())
}

func (self DeleteBuilder[T]) build(params Params) Stmt {
	bui := MakeBui(params, 64, 2)
	bui.Str(`DELETE FROM`)
	bui.Ident(TableName[T]())
	bui.Str(`WHERE`)
	self.where.Append(&bui)
	return bui.Reify().check()
}

// Executes the statement.
func (self DeleteBuilder[T]) Exec(ctx context.Context) error {
	return backendErr(`deleting rows`, self.db.Exec(ctx, self.Build()))
}

/*
Table that declares its own columns, in the order `CREATE TABLE` renders them.
The method is called on the zero value, like `TableName`. Columns usually live
in package variables, so the method must not be called while those variables
are being initialized.

	func (Person) Columns() []DynCol[Person] {
		return []DynCol[Person]{PersonId, PersonName, PersonAge}
	}
*/
type Schema[T Table] interface {
	Table
	Columns() []DynCol[T]
}

/*
`CREATE TABLE` of table `T` with the given columns, in order. Each column
renders its name, type, foreign key clause and uniqueness:

	CREATE TABLE IF NOT EXISTS "pet"("id" INT8 NOT NULL UNIQUE, "owner" INT8 REFERENCES "person"("id") ON UPDATE NO ACTION ON DELETE CASCADE)

The column list must be non-empty, with distinct names. Otherwise `Build`
panics and `Exec` returns an `ErrInvalidInput` without reaching the backend.
*/
type CreateBuilder[T Table] struct {
	db          Db
	cols        []DynCol[T]
	ifNotExists bool
}

// Starts a `CREATE TABLE` with the columns declared by `T`.
func CreateTable[T Schema[T]](db Db) CreateBuilder[T] {
	var zero T
	return CreateTableOf[T](db, zero.Columns()...)
}

// Starts a `CREATE TABLE` with an explicit column list, for tables that don't
// implement `Schema`.
func CreateTableOf[T Table](db Db, cols ...DynCol[T]) CreateBuilder[T] {
	return CreateBuilder[T]{db: db, cols: append([]DynCol[T](nil), cols...)}
}

// Adds `IF NOT EXISTS`.
func (self CreateBuilder[T]) IfNotExists() CreateBuilder[T] {
	self.ifNotExists = true
	return self
}

func (self CreateBuilder[T]) validate() error {
	if len(self.cols) == 0 {
		return ErrInvalidInput.WithWhile(`creating table`).WithCause(fmt.Errorf(
			`table %q has no columns`, TableName[T](),
		))
	}

	seen := make(map[string]struct{}, len(self.cols))
	for _, col := range self.cols {
		name := col.Name()
		if _, ok := seen[name]; ok {
			return ErrInvalidInput.WithWhile(`creating table`).WithCause(fmt.Errorf(
				`table %q has duplicate column %q`, TableName[T](), name,
			))
		}
		seen[name] = struct{}{}
	}
	return nil
}

// Lowers the builder into a statement. Has no args.
func (self CreateBuilder[T]) Build() Stmt {
	try(self.validate())

	var bui Bui
	bui.Str(`CREATE TABLE`)
	if self.ifNotExists {
		bui.Str(`IF NOT EXISTS`)
	}
	bui.Ident(TableName[T]())
	bui.Raw(`(`)

	for ind, col := range self.cols {
		if ind > 0 {
			bui.Raw(`,`)
		}
		bui.Ident(col.Name())
		bui.Str(col.Type().Name())
		bui.Str(col.ForeignKeyClause())
		if col.IsUnique() {
			bui.Str(`UNIQUE`)
		}
	}

	bui.Raw(`)`)
	return bui.Reify()
}

// Executes the statement.
func (self CreateBuilder[T]) Exec(ctx context.Context) error {
	if err := self.validate(); err != nil {
		return err
	}
	return backendErr(`creating table`, self.db.Exec(ctx, self.Build()))
}
