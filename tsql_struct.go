package tsql

import (
	"fmt"
	"reflect"

	"github.com/mitranim/refut"
)

/*
Makes a `Record` that binds each given column to the field of the struct `R`
whose "db" tag matches the column's name. Embedded structs are traversed.
Fails with `ErrInvalidInput` when `R` isn't a struct, when a column has no
matching field, when the field is reached through an embedded pointer, or when
the field's type differs from the column's application type. Columns keep the
given order.

	type Person struct {
		Id   int64  `db:"id"`
		Name string `db:"name"`
	}

	var PersonRecord = tsql.MustStructRecord[Person, Person](PersonId, PersonName)
*/
func StructRecord[T Table, R any](cols ...DynCol[T]) (Record[T, R], error) {
	rtype := refut.RtypeDeref(reflect.TypeOf((*R)(nil)).Elem())
	if rtype.Kind() != reflect.Struct || rtype != reflect.TypeOf((*R)(nil)).Elem() {
		return Record[T, R]{}, ErrInvalidInput.WithWhile(`making struct record`).WithCause(
			fmt.Errorf(`expected struct type, got %v`, rtype),
		)
	}

	paths, err := structFieldPaths(rtype)
	if err != nil {
		return Record[T, R]{}, err
	}

	fields := make([]Field[T, R], 0, len(cols))
	for _, col := range cols {
		field, ok := paths[col.Name()]
		if !ok {
			return Record[T, R]{}, ErrInvalidInput.WithWhile(`making struct record`).WithCause(
				fmt.Errorf(`type %v has no field tagged db:%q`, rtype, col.Name()),
			)
		}
		if field.viaPtr {
			return Record[T, R]{}, ErrInvalidInput.WithWhile(`making struct record`).WithCause(fmt.Errorf(
				`field %v.%v is reached through an embedded pointer, which may be nil`,
				rtype, field.Name,
			))
		}
		if field.Type != col.appType() {
			return Record[T, R]{}, ErrInvalidInput.WithWhile(`making struct record`).WithCause(fmt.Errorf(
				`field %v.%v has type %v, column %q expects %v`,
				rtype, field.Name, field.Type, col.Name(), col.appType(),
			))
		}
		fields = append(fields, structField[T, R](col, field.Index))
	}
	return Record[T, R]{fields: fields}, nil
}

// Same as `StructRecord` but panics on error. Intended for package-level
// declarations.
func MustStructRecord[T Table, R any](cols ...DynCol[T]) Record[T, R] {
	return try1(StructRecord[T, R](cols...))
}

type structPath struct {
	Name   string
	Type   reflect.Type
	Index  []int
	viaPtr bool
}

func structFieldPaths(rtype reflect.Type) (map[string]structPath, error) {
	out := map[string]structPath{}

	err := refut.TraverseStructRtype(rtype, func(sfield reflect.StructField, path []int) error {
		name := refut.TagIdent(sfield.Tag.Get("db"))
		if name == `` || sfield.PkgPath != `` {
			return nil
		}
		if _, ok := out[name]; ok {
			return ErrInvalidInput.WithWhile(`making struct record`).WithCause(
				fmt.Errorf(`type %v has more than one field tagged db:%q`, rtype, name),
			)
		}
		out[name] = structPath{
			Name:   sfield.Name,
			Type:   sfield.Type,
			Index:  append([]int(nil), path...),
			viaPtr: hasPtrHop(rtype, path),
		}
		return nil
	})
	return out, err
}

// True if any embedded struct on the path, excluding the field itself, is a
// pointer.
func hasPtrHop(rtype reflect.Type, path []int) bool {
	for _, ind := range path[:len(path)-1] {
		field := rtype.Field(ind)
		if field.Type.Kind() == reflect.Ptr {
			return true
		}
		rtype = field.Type
	}
	return false
}

func structField[T Table, R any](col DynCol[T], index []int) Field[T, R] {
	return Field[T, R]{
		col: col,
		encode: func(row *R) Value {
			return try1(col.encodeAny(reflect.ValueOf(row).Elem().FieldByIndex(index).Interface()))
		},
		decode: func(row *R, val Value) error {
			out, err := col.decodeAny(val)
			if err != nil {
				return err
			}
			field := reflect.ValueOf(row).Elem().FieldByIndex(index)
			if out == nil {
				field.Set(reflect.Zero(field.Type()))
			} else {
				field.Set(reflect.ValueOf(out))
			}
			return nil
		},
	}
}
