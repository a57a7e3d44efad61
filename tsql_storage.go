package tsql

import (
	"fmt"
	"math"
)

/*
Storage codec for a Go type `S` used as a column's storage type. Encoding is
total. Decoding fails with `ErrTypeMismatch` when the value's runtime tag
doesn't match `Type()`.

This package provides codecs for the common scalar types and `Nullable` for
composing them with null. Custom codecs may be implemented by user code.
*/
type Storage[S any] interface {
	Type() Type
	ToDb(S) Value
	FromDb(Value) (S, error)
}

var (
	Int64   Storage[int64]   = int64Storage{}
	Int32   Storage[int32]   = int32Storage{}
	Int     Storage[int]     = intStorage{}
	Float64 Storage[float64] = float64Storage{}
	Float32 Storage[float32] = float32Storage{}
	String  Storage[string]  = stringStorage{}
	Bool    Storage[bool]    = boolStorage{}
)

type int64Storage struct{}

func (int64Storage) Type() Type            { return TypeInteger }
func (int64Storage) ToDb(val int64) Value { return Integer(val) }
func (int64Storage) FromDb(val Value) (int64, error) {
	out, ok := val.AsInt()
	if !ok {
		return 0, errTypeMismatch(`decoding int64`, TypeInteger, val)
	}
	return out, nil
}

type int32Storage struct{}

func (int32Storage) Type() Type            { return TypeInteger }
func (int32Storage) ToDb(val int32) Value { return Integer(int64(val)) }
func (int32Storage) FromDb(val Value) (int32, error) {
	out, ok := val.AsInt()
	if !ok {
		return 0, errTypeMismatch(`decoding int32`, TypeInteger, val)
	}
	if out < math.MinInt32 || out > math.MaxInt32 {
		return 0, ErrConversionFailure.WithWhile(`decoding int32`).WithCause(
			fmt.Errorf(`integer %v overflows int32`, out),
		)
	}
	return int32(out), nil
}

type intStorage struct{}

func (intStorage) Type() Type          { return TypeInteger }
func (intStorage) ToDb(val int) Value { return Integer(int64(val)) }
func (intStorage) FromDb(val Value) (int, error) {
	out, ok := val.AsInt()
	if !ok {
		return 0, errTypeMismatch(`decoding int`, TypeInteger, val)
	}
	if int64(int(out)) != out {
		return 0, ErrConversionFailure.WithWhile(`decoding int`).WithCause(
			fmt.Errorf(`integer %v overflows int`, out),
		)
	}
	return int(out), nil
}

type float64Storage struct{}

func (float64Storage) Type() Type              { return TypeReal }
func (float64Storage) ToDb(val float64) Value { return Real(val) }
func (float64Storage) FromDb(val Value) (float64, error) {
	out, ok := val.AsReal()
	if !ok {
		return 0, errTypeMismatch(`decoding float64`, TypeReal, val)
	}
	return out, nil
}

// Decoding narrows to float32 with ordinary rounding, which is lossless for
// every value that was encoded from a float32.
type float32Storage struct{}

func (float32Storage) Type() Type              { return TypeReal }
func (float32Storage) ToDb(val float32) Value { return Real(float64(val)) }
func (float32Storage) FromDb(val Value) (float32, error) {
	out, ok := val.AsReal()
	if !ok {
		return 0, errTypeMismatch(`decoding float32`, TypeReal, val)
	}
	return float32(out), nil
}

type stringStorage struct{}

func (stringStorage) Type() Type             { return TypeText }
func (stringStorage) ToDb(val string) Value { return Text(val) }
func (stringStorage) FromDb(val Value) (string, error) {
	out, ok := val.AsText()
	if !ok {
		return ``, errTypeMismatch(`decoding string`, TypeText, val)
	}
	return out, nil
}

// Stored as integer 0 or 1. Any non-zero integer decodes as true.
type boolStorage struct{}

func (boolStorage) Type() Type { return TypeInteger }

func (boolStorage) ToDb(val bool) Value {
	if val {
		return Integer(1)
	}
	return Integer(0)
}

func (boolStorage) FromDb(val Value) (bool, error) {
	out, ok := val.AsInt()
	if !ok {
		return false, errTypeMismatch(`decoding bool`, TypeInteger, val)
	}
	return out != 0, nil
}

/*
Composes a codec with null. The resulting storage type is a pointer: nil
encodes as null, and null decodes as nil. Every other value goes through the
inner codec. The resulting `Type()` is `TypeNullable(inner.Type())`.
*/
func Nullable[S any](inner Storage[S]) Storage[*S] { return nullableStorage[S]{inner} }

type nullableStorage[S any] struct{ inner Storage[S] }

func (self nullableStorage[S]) Type() Type { return TypeNullable(self.inner.Type()) }

func (self nullableStorage[S]) ToDb(val *S) Value {
	if val == nil {
		return Null()
	}
	return self.inner.ToDb(*val)
}

func (self nullableStorage[S]) FromDb(val Value) (*S, error) {
	if val.IsNull() {
		return nil, nil
	}
	out, err := self.inner.FromDb(val)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
