package tsql

/*
Yields the raw values of one result row, left to right. Each call is told the
storage type the next column expects, which lets backends reinterpret
ambiguous driver values (see `Value.Coerce`). Calling it more times than the
row has columns is a programming error and panics.
*/
type Supplier func(Type) Value

/*
Fixed-arity ordered group of columns of table `T`, used both as a projection
list and as the shape of one row of application values `R`. The order in which
`ApplyColumns` visits columns is authoritative: it's the order of column names
in SQL text, of encoded values, and of decoded row slots.

Implemented by `Column` (arity 1), `Tuple2`, `Tuple3` and `Record`.
*/
type ColumnTuple[T Table, R any] interface {
	Len() int
	ApplyColumns(func(DynCol[T]))
	ToValues(R) []Value
	TryFromValues(Supplier) (R, error)
}

// Returns the names of the tuple's columns, in order.
func ColumnNames[T Table, R any](cols ColumnTuple[T, R]) []string {
	out := make([]string, 0, cols.Len())
	cols.ApplyColumns(func(col DynCol[T]) { out = append(out, col.Name()) })
	return out
}

// Implement `ColumnTuple`. Always 1.
func (self Column[T, S, A]) Len() int { return 1 }

// Implement `ColumnTuple`.
func (self Column[T, S, A]) ApplyColumns(fun func(DynCol[T])) { fun(self) }

// Implement `ColumnTuple`.
func (self Column[T, S, A]) ToValues(val A) []Value { return []Value{self.ToDb(val)} }

// Implement `ColumnTuple`.
func (self Column[T, S, A]) TryFromValues(next Supplier) (A, error) {
	return self.FromDb(next(self.Type()))
}

// Row of two application values.
type Row2[A0, A1 any] struct {
	V0 A0
	V1 A1
}

// Row of three application values.
type Row3[A0, A1, A2 any] struct {
	V0 A0
	V1 A1
	V2 A2
}

// Column tuple of arity 2. See `Cols2`.
type Tuple2[T Table, S0, A0, S1, A1 any] struct {
	C0 Column[T, S0, A0]
	C1 Column[T, S1, A1]
}

// Groups two columns of the same table into a tuple with rows of type `Row2`.
func Cols2[T Table, S0, A0, S1, A1 any](
	c0 Column[T, S0, A0],
	c1 Column[T, S1, A1],
) Tuple2[T, S0, A0, S1, A1] {
	return Tuple2[T, S0, A0, S1, A1]{c0, c1}
}

// Implement `ColumnTuple`.
func (self Tuple2[T, S0, A0, S1, A1]) Len() int { return 2 }

// Implement `ColumnTuple`.
func (self Tuple2[T, S0, A0, S1, A1]) ApplyColumns(fun func(DynCol[T])) {
	fun(self.C0)
	fun(self.C1)
}

// Implement `ColumnTuple`.
func (self Tuple2[T, S0, A0, S1, A1]) ToValues(row Row2[A0, A1]) []Value {
	return []Value{self.C0.ToDb(row.V0), self.C1.ToDb(row.V1)}
}

// Implement `ColumnTuple`. Stops at the first failure.
func (self Tuple2[T, S0, A0, S1, A1]) TryFromValues(next Supplier) (out Row2[A0, A1], err error) {
	v0, err := self.C0.TryFromValues(next)
	if err != nil {
		return
	}
	v1, err := self.C1.TryFromValues(next)
	if err != nil {
		return
	}
	return Row2[A0, A1]{v0, v1}, nil
}

// Column tuple of arity 3. See `Cols3`.
type Tuple3[T Table, S0, A0, S1, A1, S2, A2 any] struct {
	C0 Column[T, S0, A0]
	C1 Column[T, S1, A1]
	C2 Column[T, S2, A2]
}

// Groups three columns of the same table into a tuple with rows of type
// `Row3`.
func Cols3[T Table, S0, A0, S1, A1, S2, A2 any](
	c0 Column[T, S0, A0],
	c1 Column[T, S1, A1],
	c2 Column[T, S2, A2],
) Tuple3[T, S0, A0, S1, A1, S2, A2] {
	return Tuple3[T, S0, A0, S1, A1, S2, A2]{c0, c1, c2}
}

// Implement `ColumnTuple`.
func (self Tuple3[T, S0, A0, S1, A1, S2, A2]) Len() int { return 3 }

// Implement `ColumnTuple`.
func (self Tuple3[T, S0, A0, S1, A1, S2, A2]) ApplyColumns(fun func(DynCol[T])) {
	fun(self.C0)
	fun(self.C1)
	fun(self.C2)
}

// Implement `ColumnTuple`.
func (self Tuple3[T, S0, A0, S1, A1, S2, A2]) ToValues(row Row3[A0, A1, A2]) []Value {
	return []Value{self.C0.ToDb(row.V0), self.C1.ToDb(row.V1), self.C2.ToDb(row.V2)}
}

// Implement `ColumnTuple`. Stops at the first failure.
func (self Tuple3[T, S0, A0, S1, A1, S2, A2]) TryFromValues(next Supplier) (out Row3[A0, A1, A2], err error) {
	v0, err := self.C0.TryFromValues(next)
	if err != nil {
		return
	}
	v1, err := self.C1.TryFromValues(next)
	if err != nil {
		return
	}
	v2, err := self.C2.TryFromValues(next)
	if err != nil {
		return
	}
	return Row3[A0, A1, A2]{v0, v1, v2}, nil
}

/*
Binding of one column to one field of the application row type `R`. Created
by `Bind`, used by `Record`.
*/
type Field[T Table, R any] struct {
	col    DynCol[T]
	encode func(*R) Value
	decode func(*R, Value) error
}

/*
Binds a column to the field of `R` returned by `ptr`. The field type must be
the column's application type, which is checked statically:

	tsql.Bind(PersonName, func(val *Person) *string { return &val.Name })
*/
func Bind[T Table, R, S, A any](col Column[T, S, A], ptr func(*R) *A) Field[T, R] {
	return Field[T, R]{
		col:    col,
		encode: func(row *R) Value { return col.ToDb(*ptr(row)) },
		decode: func(row *R, val Value) (err error) {
			*ptr(row), err = col.FromDb(val)
			return
		},
	}
}

// Column of this binding.
func (self Field[T, R]) Col() DynCol[T] { return self.col }

/*
Column tuple of any arity whose rows are values of an application struct `R`,
usually the struct describing the table. Each column is bound to one field,
either explicitly via `Bind` or by struct tags via `StructRecord`.
*/
type Record[T Table, R any] struct{ fields []Field[T, R] }

// Makes a record from explicit field bindings, in column order.
func MakeRecord[T Table, R any](fields ...Field[T, R]) Record[T, R] {
	return Record[T, R]{fields: append([]Field[T, R](nil), fields...)}
}

// Implement `ColumnTuple`.
func (self Record[T, R]) Len() int { return len(self.fields) }

// Implement `ColumnTuple`.
func (self Record[T, R]) ApplyColumns(fun func(DynCol[T])) {
	for _, field := range self.fields {
		fun(field.col)
	}
}

// Implement `ColumnTuple`.
func (self Record[T, R]) ToValues(row R) []Value {
	out := make([]Value, len(self.fields))
	for ind, field := range self.fields {
		out[ind] = field.encode(&row)
	}
	return out
}

// Implement `ColumnTuple`. Stops at the first failure and returns a zero row.
func (self Record[T, R]) TryFromValues(next Supplier) (out R, err error) {
	for _, field := range self.fields {
		err = field.decode(&out, next(field.col.Type()))
		if err != nil {
			var zero R
			return zero, err
		}
	}
	return
}
