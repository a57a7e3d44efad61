package tsql

import "strings"

const (
	typeInteger typeKind = iota + 1
	typeReal
	typeText
	typeNullable
)

type typeKind byte

/*
Schema-level storage type: integer, real, text, or nullable wrapping another
type. Describes column storage for `CREATE TABLE` and guides decoding of raw
driver values. Never used for application values directly.

The zero value is invalid and renders as an empty string.
*/
type Type struct {
	kind typeKind
	elem *Type
}

var (
	TypeInteger = Type{kind: typeInteger}
	TypeReal    = Type{kind: typeReal}
	TypeText    = Type{kind: typeText}
)

// Wraps the given type, making it nullable. Nesting is allowed.
func TypeNullable(elem Type) Type { return Type{kind: typeNullable, elem: &elem} }

// True if the type is nullable.
func (self Type) IsNullable() bool { return self.kind == typeNullable }

// For nullable types, returns the wrapped type. Otherwise returns the type
// itself.
func (self Type) Elem() Type {
	if self.kind == typeNullable && self.elem != nil {
		return *self.elem
	}
	return self
}

// Unwraps every nullable layer.
func (self Type) Base() Type {
	for self.kind == typeNullable && self.elem != nil {
		self = *self.elem
	}
	return self
}

/*
Renders the SQL type clause, including nullability:

	TypeInteger.Name()               -> `INT8 NOT NULL`
	TypeNullable(TypeInteger).Name() -> `INT8`
*/
func (self Type) Name() string {
	switch self.kind {
	case typeInteger:
		return `INT8 NOT NULL`
	case typeReal:
		return `DOUBLE PRECISION NOT NULL`
	case typeText:
		return `TEXT NOT NULL`
	case typeNullable:
		if self.elem == nil {
			return ``
		}
		return strings.TrimSuffix(self.elem.Name(), ` NOT NULL`)
	default:
		return ``
	}
}

// Implement `fmt.Stringer` for debug purposes.
func (self Type) String() string { return self.Name() }

// True if a value with the given tag may be stored in a column of this type.
func (self Type) Accepts(val Value) bool {
	switch self.kind {
	case typeInteger:
		return val.kind == KindInteger
	case typeReal:
		return val.kind == KindReal
	case typeText:
		return val.kind == KindText
	case typeNullable:
		return val.kind == KindNull || (self.elem != nil && self.elem.Accepts(val))
	default:
		return false
	}
}

func (self Type) kindName() string {
	switch self.kind {
	case typeInteger:
		return `integer`
	case typeReal:
		return `real`
	case typeText:
		return `text`
	case typeNullable:
		if self.elem == nil {
			return `nullable`
		}
		return `nullable ` + self.elem.kindName()
	default:
		return `invalid type`
	}
}
