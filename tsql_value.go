package tsql

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"time"
)

const (
	KindNull Kind = iota
	KindInteger
	KindReal
	KindText
	KindBlob
)

// Runtime tag of a `Value`.
type Kind byte

// Implement `fmt.Stringer` for debug purposes.
func (self Kind) String() string {
	switch self {
	case KindNull:
		return `null`
	case KindInteger:
		return `integer`
	case KindReal:
		return `real`
	case KindText:
		return `text`
	case KindBlob:
		return `blob`
	default:
		return `Kind(` + strconv.Itoa(int(self)) + `)`
	}
}

/*
Runtime-tagged database value: null, 64-bit integer, 64-bit float, text or
blob. This is the only type that crosses the backend boundary: columns encode
application values into `Value` before they reach a driver, and decode them
back after scanning.

The zero value is null. Implements `driver.Valuer` and `sql.Scanner`, which
allows passing it directly to "database/sql".
*/
type Value struct {
	kind Kind
	int  int64
	real float64
	text string
	blob []byte
}

// Returns a null value. Equivalent to `Value{}`.
func Null() Value { return Value{} }

// Returns an integer value.
func Integer(val int64) Value { return Value{kind: KindInteger, int: val} }

// Returns a real value.
func Real(val float64) Value { return Value{kind: KindReal, real: val} }

// Returns a text value.
func Text(val string) Value { return Value{kind: KindText, text: val} }

// Returns a blob value. The slice is not copied.
func Blob(val []byte) Value { return Value{kind: KindBlob, blob: val} }

// Returns the runtime tag.
func (self Value) Kind() Kind { return self.kind }

// True if the value is null.
func (self Value) IsNull() bool { return self.kind == KindNull }

// Returns the integer payload, if any.
func (self Value) AsInt() (int64, bool) { return self.int, self.kind == KindInteger }

// Returns the real payload, if any.
func (self Value) AsReal() (float64, bool) { return self.real, self.kind == KindReal }

// Returns the text payload, if any.
func (self Value) AsText() (string, bool) { return self.text, self.kind == KindText }

// Returns the blob payload, if any.
func (self Value) AsBlob() ([]byte, bool) { return self.blob, self.kind == KindBlob }

// Implement `driver.Valuer`.
func (self Value) Value() (driver.Value, error) {
	switch self.kind {
	case KindInteger:
		return self.int, nil
	case KindReal:
		return self.real, nil
	case KindText:
		return self.text, nil
	case KindBlob:
		return self.blob, nil
	default:
		return nil, nil
	}
}

/*
Implement `sql.Scanner`. Accepts the value types produced by "database/sql"
drivers. Booleans become integers 0/1, and times become RFC 3339 text, which
keeps the set of tags closed.
*/
func (self *Value) Scan(src any) error {
	switch src := src.(type) {
	case nil:
		*self = Null()
	case int64:
		*self = Integer(src)
	case float64:
		*self = Real(src)
	case string:
		*self = Text(src)
	case []byte:
		*self = Blob(append([]byte(nil), src...))
	case bool:
		if src {
			*self = Integer(1)
		} else {
			*self = Integer(0)
		}
	case time.Time:
		*self = Text(src.Format(time.RFC3339Nano))
	default:
		return Err{
			Code:  ErrCodeTypeMismatch,
			While: `scanning database value`,
			Cause: fmt.Errorf(`unsupported source type %T`, src),
		}
	}
	return nil
}

/*
Reinterprets a raw driver value as the given storage type where the driver's
representation is ambiguous: blobs become text when text is expected, and
integers become reals when reals are expected (SQLite stores integral reals as
integers under some affinities). Null is kept as-is. Any other combination is
returned unchanged, leaving the mismatch to be reported by decoding.
*/
func (self Value) Coerce(typ Type) Value {
	if self.kind == KindNull {
		return self
	}
	switch typ.Base().kind {
	case typeText:
		if self.kind == KindBlob {
			return Text(string(self.blob))
		}
	case typeReal:
		if self.kind == KindInteger {
			return Real(float64(self.int))
		}
	}
	return self
}

// Implement `fmt.Stringer` for debug purposes.
func (self Value) String() string {
	switch self.kind {
	case KindInteger:
		return strconv.FormatInt(self.int, 10)
	case KindReal:
		return strconv.FormatFloat(self.real, 'g', -1, 64)
	case KindText:
		return self.text
	case KindBlob:
		return fmt.Sprintf(`%x`, self.blob)
	default:
		return `NULL`
	}
}

// Implement `fmt.GoStringer` for debug purposes. Returns valid Go code
// representing this value.
func (self Value) GoString() string {
	switch self.kind {
	case KindInteger:
		return `tsql.Integer(` + strconv.FormatInt(self.int, 10) + `)`
	case KindReal:
		return `tsql.Real(` + strconv.FormatFloat(self.real, 'g', -1, 64) + `)`
	case KindText:
		return `tsql.Text(` + strconv.Quote(self.text) + `)`
	case KindBlob:
		return fmt.Sprintf(`tsql.Blob(%#v)`, self.blob)
	default:
		return `tsql.Null()`
	}
}
