package tsql

import "context"

/*
Accumulates a `SELECT` over the columns of `cols`, decoding rows into values of
type `R`. Persistent: every option method returns a modified copy and leaves
the receiver unchanged, so partially configured builders may be reused.
Lowered and dispatched by `FetchAll`.

	SELECT "id", "name" FROM "person" WHERE "id" = $1 ORDER BY "name" DESC LIMIT 10
*/
type SelectBuilder[T Table, R any] struct {
	db       Db
	cols     ColumnTuple[T, R]
	where    Cond[T]
	order    DynCol[T]
	dir      Dir
	limit    uint64
	hasLimit bool
}

/*
Starts a `SELECT` of the given column tuple. The condition defaults to `TRUE`.
Type arguments can't be inferred from interface arguments, which makes the
`Select` methods of tuples more convenient:

	tsql.Select[Person, Row2[int64, string]](db, tsql.Cols2(PersonId, PersonName))
	tsql.Cols2(PersonId, PersonName).Select(db)
*/
func Select[T Table, R any](db Db, cols ColumnTuple[T, R]) SelectBuilder[T, R] {
	return SelectBuilder[T, R]{db: db, cols: cols}
}

// Replaces the condition.
func (self SelectBuilder[T, R]) Where(cond Cond[T]) SelectBuilder[T, R] {
	self.where = cond
	return self
}

// Sets the single-column ordering.
func (self SelectBuilder[T, R]) OrderBy(col DynCol[T], dir Dir) SelectBuilder[T, R] {
	self.order = col
	self.dir = dir
	return self
}

// Limits the number of returned rows.
func (self SelectBuilder[T, R]) Limit(val uint64) SelectBuilder[T, R] {
	self.limit = val
	self.hasLimit = true
	return self
}

// Lowers the builder into a statement, using the backend's placeholders.
func (self SelectBuilder[T, R]) Build() Stmt {
	return self.build(self.db.Params())
}

func (self SelectBuilder[T, R]) build(params Params) Stmt {
	bui := MakeBui(params, 128, 4)
	bui.Str(`SELECT`)
	bui.Idents(ColumnNames(self.cols)...)
	bui.Str(`FROM`)
	bui.Ident(TableName[T]())
	bui.Str(`WHERE`)
	self.where.Append(&bui)

	if self.order != nil {
		bui.Str(`ORDER BY`)
		bui.Ident(self.order.Name())
		bui.Text = self.dir.Append(bui.Text)
	}

	if self.hasLimit {
		bui.Str(`LIMIT`)
		bui.Space()
		bui.Text = appendUint(bui.Text, self.limit)
	}

	return bui.Reify().check()
}

/*
Executes the query and decodes every row, preserving row order. Fails on the
first row that can't be decoded, returning no rows.
*/
func (self SelectBuilder[T, R]) FetchAll(ctx context.Context) ([]R, error) {
	var out []R
	err := self.db.Query(ctx, self.Build(), func(next Supplier) error {
		row, err := self.cols.TryFromValues(next)
		if err != nil {
			return err
		}
		out = append(out, row)
		return nil
	})
	if err != nil {
		return nil, backendErr(`fetching rows`, err)
	}
	return out, nil
}

// Same as `Select(db, self)`.
func (self Column[T, S, A]) Select(db Db) SelectBuilder[T, A] {
	return Select[T, A](db, self)
}

// Same as `Select(db, self)`.
func (self Tuple2[T, S0, A0, S1, A1]) Select(db Db) SelectBuilder[T, Row2[A0, A1]] {
	return Select[T, Row2[A0, A1]](db, self)
}

// Same as `Select(db, self)`.
func (self Tuple3[T, S0, A0, S1, A1, S2, A2]) Select(db Db) SelectBuilder[T, Row3[A0, A1, A2]] {
	return Select[T, Row3[A0, A1, A2]](db, self)
}

// Same as `Select(db, self)`.
func (self Record[T, R]) Select(db Db) SelectBuilder[T, R] {
	return Select[T, R](db, self)
}
