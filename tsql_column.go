package tsql

import (
	"errors"
	"fmt"
	r "reflect"
	"strings"
)

/*
Table identity. Implemented by a user-defined type, usually an empty struct or
the struct that describes one row. Used only as a type parameter that scopes
columns, conditions and builders to one table; the zero value of the type must
be able to answer `TableName`.

	type Person struct{}

	func (Person) TableName() string { return `person` }
*/
type Table interface{ TableName() string }

// Returns the name of the table identified by the type `T`.
func TableName[T Table]() string {
	var zero T
	return zero.TableName()
}

/*
Pair of pure conversion functions between a column's storage type `S` and its
application type `A`. `To` must be total. `From` may fail, for example when
parsing text. For every value the application submits, `From(To(val))` must
reproduce `val`.
*/
type Conv[S, A any] struct {
	To   func(A) S
	From func(S) (A, error)
}

// Conversion that uses the storage type as the application type.
func Identity[S any]() Conv[S, S] {
	return Conv[S, S]{To: identity[S], From: identityErr[S]}
}

/*
Stores an application type as text, using its `String` method for encoding
and the given parse function for decoding. Decoding is the fallible direction:
parse errors are reported as `ErrConversionFailure`. Works with many standard
and third-party types out of the box:

	Stringify(netip.ParseAddr)
	Stringify(uuid.Parse)
*/
func Stringify[A fmt.Stringer](parse func(string) (A, error)) Conv[string, A] {
	return Conv[string, A]{
		To:   func(val A) string { return val.String() },
		From: parse,
	}
}

const (
	ActionDefault Action = iota
	ActionCascade
	ActionRestrict
	ActionSetNull
	ActionSetDefault
	ActionNoAction
)

/*
Referential action for `ON UPDATE` and `ON DELETE` clauses of a foreign key.
`ActionDefault` renders as "NO ACTION", which is also the SQL default.
*/
type Action byte

// Renders the SQL spelling, for example "SET NULL".
func (self Action) String() string {
	switch self {
	case ActionCascade:
		return `CASCADE`
	case ActionRestrict:
		return `RESTRICT`
	case ActionSetNull:
		return `SET NULL`
	case ActionSetDefault:
		return `SET DEFAULT`
	default:
		return `NO ACTION`
	}
}

/*
Parses an action from one of the spellings "cascade", "restrict", "set null",
"set default", "no action", ignoring case. An empty string is `ActionDefault`.
*/
func ParseAction(src string) (Action, error) {
	switch strings.ToLower(src) {
	case ``:
		return ActionDefault, nil
	case `cascade`:
		return ActionCascade, nil
	case `restrict`:
		return ActionRestrict, nil
	case `set null`:
		return ActionSetNull, nil
	case `set default`:
		return ActionSetDefault, nil
	case `no action`:
		return ActionNoAction, nil
	default:
		return ActionDefault, Err{
			Code:  ErrCodeInvalidInput,
			While: `parsing referential action`,
			Cause: fmt.Errorf(`invalid action %q`, src),
		}
	}
}

// Implement `encoding.TextUnmarshaler`.
func (self *Action) UnmarshalText(src []byte) (err error) {
	*self, err = ParseAction(string(src))
	return
}

// Foreign-key reference from a column to a column of another (or the same)
// table.
type ForeignKey struct {
	Table    string
	Column   string
	OnUpdate Action
	OnDelete Action
}

/*
Renders the clause used in `CREATE TABLE`:

	REFERENCES "person"("id") ON UPDATE NO ACTION ON DELETE CASCADE
*/
func (self ForeignKey) String() string {
	var buf []byte
	buf = append(buf, `REFERENCES `...)
	buf = appendIdent(buf, self.Table)
	buf = append(buf, '(')
	buf = appendIdent(buf, self.Column)
	buf = append(buf, `) ON UPDATE `...)
	buf = append(buf, self.OnUpdate.String()...)
	buf = append(buf, ` ON DELETE `...)
	buf = append(buf, self.OnDelete.String()...)
	return bytesToMutableString(buf)
}

/*
Uniform view of any column of table `T`, regardless of its storage and
application types. Used for rendering column lists, `ORDER BY`, `SET` and
`CREATE TABLE` clauses. Implemented only by `Column`.
*/
type DynCol[T Table] interface {
	Name() string
	Type() Type
	ForeignKeyClause() string
	IsUnique() bool

	table(T)
	appType() r.Type
	encodeAny(any) (Value, error)
	decodeAny(Value) (any, error)
}

/*
Target of a foreign-key reference. Implemented by every `Column` with storage
type `S` and application type `A`, regardless of its table, which ensures that
a column may only reference a column of the same types.
*/
type Ref[S, A any] interface {
	TableName() string
	Name() string
	refOf(S, A)
}

/*
Typed column handle binding table `T`, storage type `S` and application type
`A`. Columns are immutable values; methods that configure a column return a
modified copy. A column is identified by its table and name.

Columns are usually declared once, as package-level variables:

	var (
		PersonId   = tsql.Col[Person](`id`, tsql.Int64)
		PersonName = tsql.Col[Person](`name`, tsql.String).Unique()
		PersonAddr = tsql.ColAs[Person](`addr`, tsql.String, tsql.Stringify(netip.ParseAddr))
	)
*/
type Column[T Table, S, A any] struct {
	name    string
	storage Storage[S]
	conv    Conv[S, A]
	unique  bool
	ref     *ForeignKey
}

// Declares a column whose application type is its storage type.
func Col[T Table, S any](name string, storage Storage[S]) Column[T, S, S] {
	return ColAs[T](name, storage, Identity[S]())
}

/*
Declares a column with a custom conversion between the storage type `S` and
the application type `A`. Panics if the storage codec or either conversion
function is missing, since that's a mistake in a static declaration.
*/
func ColAs[T Table, S, A any](name string, storage Storage[S], conv Conv[S, A]) Column[T, S, A] {
	if storage == nil || conv.To == nil || conv.From == nil {
		panic(Err{
			Code:  ErrCodeInvalidInput,
			While: `declaring column`,
			Cause: fmt.Errorf(`column %q requires a storage codec and both conversion functions`, name),
		})
	}
	return Column[T, S, A]{name: name, storage: storage, conv: conv}
}

// Returns a copy marked as `UNIQUE`.
func (self Column[T, S, A]) Unique() Column[T, S, A] {
	self.unique = true
	return self
}

/*
Returns a copy that references the target column. The target must have the
same storage and application types, which is enforced statically.
*/
func (self Column[T, S, A]) References(target Ref[S, A], onUpdate, onDelete Action) Column[T, S, A] {
	self.ref = &ForeignKey{
		Table:    target.TableName(),
		Column:   target.Name(),
		OnUpdate: onUpdate,
		OnDelete: onDelete,
	}
	return self
}

// Column name.
func (self Column[T, S, A]) Name() string { return self.name }

// Name of the table the column belongs to.
func (self Column[T, S, A]) TableName() string { return TableName[T]() }

// Storage type, including nullability.
func (self Column[T, S, A]) Type() Type { return self.storage.Type() }

// True if the column is `UNIQUE`.
func (self Column[T, S, A]) IsUnique() bool { return self.unique }

// Returns the foreign-key reference, if any.
func (self Column[T, S, A]) ForeignKey() (ForeignKey, bool) {
	if self.ref == nil {
		return ForeignKey{}, false
	}
	return *self.ref, true
}

// Returns the `REFERENCES` clause, or an empty string.
func (self Column[T, S, A]) ForeignKeyClause() string {
	if self.ref == nil {
		return ``
	}
	return self.ref.String()
}

// Encodes an application value: converts it to the storage type, then to
// `Value`.
func (self Column[T, S, A]) ToDb(val A) Value {
	return self.storage.ToDb(self.conv.To(val))
}

/*
Decodes a `Value` into the application type. Fails with `ErrTypeMismatch` if
the value's tag doesn't match the storage type, or with
`ErrConversionFailure` if the conversion from storage fails.
*/
func (self Column[T, S, A]) FromDb(val Value) (A, error) {
	stored, err := self.storage.FromDb(val)
	if err != nil {
		var zero A
		return zero, self.decodeErr(err)
	}

	out, err := self.conv.From(stored)
	if err != nil {
		var zero A
		return zero, self.decodeErr(err)
	}
	return out, nil
}

func (self Column[T, S, A]) decodeErr(err error) Err {
	while := `decoding column ` + string(appendIdent(nil, self.name))

	var own Err
	if errors.As(err, &own) {
		return own.WithWhile(while)
	}
	return Err{Code: ErrCodeConversionFailure, While: while, Cause: err}
}

// Builds the condition `"name" = <value>`. The value is encoded immediately.
func (self Column[T, S, A]) Equals(val A) Cond[T] {
	return Cond[T]{kind: condEquals, col: self, val: self.ToDb(val)}
}

// Builds an assignment for `UPDATE ... SET`. The value is encoded immediately.
func (self Column[T, S, A]) Assign(val A) Assignment[T] {
	return Assignment[T]{Col: self, Val: self.ToDb(val)}
}

func (self Column[T, S, A]) table(T) {}

func (self Column[T, S, A]) refOf(S, A) {}

func (self Column[T, S, A]) appType() r.Type { return r.TypeOf((*A)(nil)).Elem() }

func (self Column[T, S, A]) encodeAny(src any) (Value, error) {
	if src == nil {
		var zero A
		return self.ToDb(zero), nil
	}
	val, ok := src.(A)
	if !ok {
		return Value{}, Err{
			Code:  ErrCodeInvalidInput,
			While: `encoding column ` + string(appendIdent(nil, self.name)),
			Cause: fmt.Errorf(`expected %v, got %T`, self.appType(), src),
		}
	}
	return self.ToDb(val), nil
}

func (self Column[T, S, A]) decodeAny(src Value) (any, error) {
	return self.FromDb(src)
}

/*
Assignment of an encoded value to a column, used by `UpdateBuilder.Set`.
Usually obtained via `Column.Assign`.
*/
type Assignment[T Table] struct {
	Col DynCol[T]
	Val Value
}

func identity[A any](val A) A { return val }

func identityErr[A any](val A) (A, error) { return val, nil }
